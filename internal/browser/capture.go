package browser

import (
	"sync"

	"github.com/surajroboto/cookie-trac/internal/model"
)

// captureBuffer accumulates observed requests and responses in arrival
// order. Driver event callbacks may fire from I/O goroutines, so appends are
// mutex-guarded; the buffer is read once, after the settle period.
type captureBuffer struct {
	mu        sync.Mutex
	requests  []model.CapturedRequest
	responses []model.CapturedResponse
}

func newCaptureBuffer() *captureBuffer {
	return &captureBuffer{}
}

func (b *captureBuffer) appendRequest(req model.CapturedRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, req)
}

func (b *captureBuffer) appendResponse(res model.CapturedResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses = append(b.responses, res)
}

// snapshot returns copies of both buffers so later event arrivals cannot
// mutate a capture that has already been handed out.
func (b *captureBuffer) snapshot() ([]model.CapturedRequest, []model.CapturedResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()
	reqs := make([]model.CapturedRequest, len(b.requests))
	copy(reqs, b.requests)
	ress := make([]model.CapturedResponse, len(b.responses))
	copy(ress, b.responses)
	return reqs, ress
}
