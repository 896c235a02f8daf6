package app_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/surajroboto/cookie-trac/internal/app"
	"github.com/surajroboto/cookie-trac/internal/model"
	"github.com/surajroboto/cookie-trac/internal/testutil"
)

func fixtureCapture() *model.Capture {
	return &model.Capture{
		FinalURL: "https://example.com/",
		Requests: []model.CapturedRequest{
			{URL: "https://example.com/app.js", Method: "GET"},
			{URL: "https://www.google-analytics.com/collect", Method: "POST"},
		},
		Responses: []model.CapturedResponse{
			{URL: "https://example.com/app.js", Status: 200},
		},
		Cookies: []model.Cookie{
			{Name: "preferences", Value: "light", Domain: "example.com"},
			{Name: "tracking_id", Value: "abc", Domain: "example.com"},
			{Name: "ide", Value: "x", Domain: "doubleclick.net"},
		},
		Started: time.Now().UTC(),
		Settled: time.Now().UTC(),
	}
}

func newTestScanner(t *testing.T, driver *testutil.DummyDriver) *app.Scanner {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.OutDir = t.TempDir()
	s, err := app.NewScanner(cfg, driver, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	return s
}

func TestScanner_ScanProducesReport(t *testing.T) {
	t.Parallel()
	driver := &testutil.DummyDriver{Capture: fixtureCapture()}
	s := newTestScanner(t, driver)

	result, err := s.Scan(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	rep := result.Report
	if rep.TotalCookies != 3 {
		t.Fatalf("total_cookies = %d, want 3", rep.TotalCookies)
	}
	// tracking_id (keyword) and the doubleclick.net cookie (third-party).
	if rep.SuspiciousCookieCount != 2 {
		t.Fatalf("suspicious_cookie_count = %d, want 2", rep.SuspiciousCookieCount)
	}
	if len(rep.TrackingRequests) != 1 {
		t.Fatalf("tracking_requests = %d, want 1", len(rep.TrackingRequests))
	}
	if len(rep.Recommendations) < 2 {
		t.Fatalf("recommendations missing: %v", rep.Recommendations)
	}

	if _, err := os.Stat(result.ReportPath); err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	if len(driver.Visited) != 1 || driver.Visited[0] != "https://example.com" {
		t.Fatalf("unexpected driver visits: %v", driver.Visited)
	}
}

func TestScanner_RejectsMalformedURLBeforeVisiting(t *testing.T) {
	t.Parallel()
	driver := &testutil.DummyDriver{Capture: fixtureCapture()}
	s := newTestScanner(t, driver)

	for _, bad := range []string{"", "example.com", "ftp://example.com"} {
		if _, err := s.Scan(context.Background(), bad); err == nil {
			t.Fatalf("expected validation error for %q", bad)
		}
	}
	if len(driver.Visited) != 0 {
		t.Fatalf("driver must not be touched on validation errors, visited %v", driver.Visited)
	}
}

func TestScanner_DriverErrorYieldsNoReport(t *testing.T) {
	t.Parallel()
	driver := &testutil.DummyDriver{Err: errors.New("net::ERR_NAME_NOT_RESOLVED")}

	cfg := app.DefaultConfig()
	outDir := t.TempDir()
	cfg.OutDir = outDir
	s, err := app.NewScanner(cfg, driver, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}

	if _, err := s.Scan(context.Background(), "https://no-such-host.example"); err == nil {
		t.Fatal("expected driver error to propagate")
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("reading out dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("no partial report may be written, found %d files", len(entries))
	}
}

func TestScanner_EmptyCaptureStillReports(t *testing.T) {
	t.Parallel()
	driver := &testutil.DummyDriver{Capture: &model.Capture{FinalURL: "https://example.com/"}}
	s := newTestScanner(t, driver)

	result, err := s.Scan(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	rep := result.Report
	if rep.TotalCookies != 0 || rep.SuspiciousCookieCount != 0 {
		t.Fatalf("empty capture must produce zero counts: %+v", rep)
	}
	if len(rep.Recommendations) != 2 {
		t.Fatalf("expected only the closing recommendations, got %v", rep.Recommendations)
	}
}
