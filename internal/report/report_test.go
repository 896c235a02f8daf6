package report_test

import (
	"testing"

	"github.com/surajroboto/cookie-trac/internal/model"
	"github.com/surajroboto/cookie-trac/internal/report"
)

func TestBuild_CountsMatch(t *testing.T) {
	t.Parallel()

	verdicts := []model.CookieVerdict{
		{Name: "a", Suspicious: true, Reasons: []string{"r1"}},
		{Name: "b", Suspicious: false},
		{Name: "c", Suspicious: true, Reasons: []string{"r2", "r3"}},
	}
	flagged := []model.CapturedRequest{{URL: "https://mixpanel.com/track"}}
	recs := []string{"one", "two"}

	rep := report.Build("https://example.com", verdicts, flagged, recs)

	if rep.Website != "https://example.com" {
		t.Fatalf("website = %q", rep.Website)
	}
	if rep.TotalCookies != 3 {
		t.Fatalf("total_cookies = %d, want 3", rep.TotalCookies)
	}
	if rep.SuspiciousCookieCount != 2 {
		t.Fatalf("suspicious_cookie_count = %d, want 2", rep.SuspiciousCookieCount)
	}
	if rep.ScanID == "" {
		t.Fatal("scan_id must be set")
	}
	if rep.Timestamp == "" {
		t.Fatal("timestamp must be set")
	}
	if len(rep.TrackingRequests) != 1 || len(rep.Recommendations) != 2 {
		t.Fatalf("unexpected report contents: %+v", rep)
	}
}

func TestBuild_EmptyInputs(t *testing.T) {
	t.Parallel()

	rep := report.Build("https://example.com", nil, nil, nil)

	if rep.TotalCookies != 0 || rep.SuspiciousCookieCount != 0 {
		t.Fatalf("empty scan must count zero: %+v", rep)
	}
	// Slices must be present (serialize as [] rather than null).
	if rep.Cookies == nil || rep.TrackingRequests == nil || rep.Recommendations == nil {
		t.Fatalf("nil slices in report: %+v", rep)
	}
}

func TestBuild_InvariantHoldsForAnyInput(t *testing.T) {
	t.Parallel()

	sets := [][]model.CookieVerdict{
		nil,
		{{Suspicious: false}},
		{{Suspicious: true, Reasons: []string{"x"}}},
		{{Suspicious: true, Reasons: []string{"x"}}, {Suspicious: false}, {Suspicious: true, Reasons: []string{"y"}}},
	}

	for _, verdicts := range sets {
		rep := report.Build("https://example.com", verdicts, nil, nil)
		count := 0
		for _, v := range rep.Cookies {
			if v.Suspicious {
				count++
			}
		}
		if rep.SuspiciousCookieCount != count {
			t.Fatalf("invariant broken: count=%d field=%d", count, rep.SuspiciousCookieCount)
		}
	}
}
