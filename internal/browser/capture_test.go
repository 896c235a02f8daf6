package browser

import (
	"fmt"
	"sync"
	"testing"

	"github.com/surajroboto/cookie-trac/internal/model"
)

func TestCaptureBuffer_PreservesArrivalOrder(t *testing.T) {
	t.Parallel()
	buf := newCaptureBuffer()
	for i := 0; i < 5; i++ {
		buf.appendRequest(model.CapturedRequest{URL: fmt.Sprintf("https://example.com/%d", i)})
	}
	buf.appendResponse(model.CapturedResponse{URL: "https://example.com/0", Status: 200})

	reqs, ress := buf.snapshot()
	if len(reqs) != 5 || len(ress) != 1 {
		t.Fatalf("snapshot sizes = %d/%d, want 5/1", len(reqs), len(ress))
	}
	for i, r := range reqs {
		want := fmt.Sprintf("https://example.com/%d", i)
		if r.URL != want {
			t.Fatalf("request %d = %q, want %q", i, r.URL, want)
		}
	}
}

func TestCaptureBuffer_SnapshotIsIsolated(t *testing.T) {
	t.Parallel()
	buf := newCaptureBuffer()
	buf.appendRequest(model.CapturedRequest{URL: "https://example.com/a"})

	reqs, _ := buf.snapshot()
	buf.appendRequest(model.CapturedRequest{URL: "https://example.com/b"})

	if len(reqs) != 1 {
		t.Fatalf("snapshot grew after later appends: %v", reqs)
	}

	later, _ := buf.snapshot()
	if len(later) != 2 {
		t.Fatalf("buffer lost an append: %v", later)
	}
}

func TestCaptureBuffer_ConcurrentAppends(t *testing.T) {
	t.Parallel()
	buf := newCaptureBuffer()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				buf.appendRequest(model.CapturedRequest{URL: fmt.Sprintf("https://example.com/%d/%d", n, j)})
			}
		}(i)
	}
	wg.Wait()

	reqs, _ := buf.snapshot()
	if len(reqs) != 200 {
		t.Fatalf("lost appends under concurrency: got %d, want 200", len(reqs))
	}
}
