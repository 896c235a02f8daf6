package classifier_test

import (
	"strings"
	"testing"

	"github.com/surajroboto/cookie-trac/internal/classifier"
	"github.com/surajroboto/cookie-trac/internal/model"
)

func closingRecommendationsPresent(recs []string) bool {
	n := len(recs)
	if n < 2 {
		return false
	}
	return strings.Contains(recs[n-2], "Regularly audit") &&
		strings.Contains(recs[n-1], "Content Security Policy")
}

func TestRecommend_EmptyInputsYieldOnlyClosers(t *testing.T) {
	t.Parallel()

	recs := classifier.Recommend(nil, nil)
	if len(recs) != 2 {
		t.Fatalf("expected exactly the 2 closing recommendations, got %v", recs)
	}
	if !closingRecommendationsPresent(recs) {
		t.Fatalf("closing recommendations missing: %v", recs)
	}
}

func TestRecommend_SuspiciousCookies(t *testing.T) {
	t.Parallel()

	verdicts := []model.CookieVerdict{
		{Name: "ok", Suspicious: false},
		{Name: "bad", Suspicious: true, Reasons: []string{"contains tracking keyword 'track'"}},
	}

	recs := classifier.Recommend(verdicts, nil)
	if len(recs) != 4 {
		t.Fatalf("expected 4 recommendations, got %v", recs)
	}
	if !strings.Contains(recs[0], "Review suspicious cookies") {
		t.Fatalf("expected the review recommendation first, got %q", recs[0])
	}
	if !strings.Contains(recs[1], "consent") {
		t.Fatalf("expected the consent recommendation second, got %q", recs[1])
	}
	if !closingRecommendationsPresent(recs) {
		t.Fatalf("closing recommendations missing: %v", recs)
	}
}

func TestRecommend_HighTrackingRequestThreshold(t *testing.T) {
	t.Parallel()

	mkReqs := func(n int) []model.CapturedRequest {
		reqs := make([]model.CapturedRequest, n)
		for i := range reqs {
			reqs[i] = model.CapturedRequest{URL: "https://mixpanel.com/track"}
		}
		return reqs
	}

	hasHighCount := func(recs []string) bool {
		for _, r := range recs {
			if strings.Contains(r, "High number of tracking requests") {
				return true
			}
		}
		return false
	}

	// Exactly 10: must not fire.
	if hasHighCount(classifier.Recommend(nil, mkReqs(10))) {
		t.Fatal("threshold recommendation fired at exactly 10 flagged requests")
	}

	// Exactly 11: must fire.
	if !hasHighCount(classifier.Recommend(nil, mkReqs(11))) {
		t.Fatal("threshold recommendation missing at 11 flagged requests")
	}
}

func TestRecommend_ThirdPartyCookies(t *testing.T) {
	t.Parallel()

	verdicts := []model.CookieVerdict{
		{
			Name:       "x",
			Suspicious: true,
			Reasons:    []string{classifier.ThirdPartyReasonPrefix + "doubleclick.net"},
		},
	}

	recs := classifier.Recommend(verdicts, nil)
	found := false
	for _, r := range recs {
		if strings.Contains(r, "Third-party cookies detected") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the third-party recommendation, got %v", recs)
	}
	if !closingRecommendationsPresent(recs) {
		t.Fatalf("closing recommendations missing: %v", recs)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	t.Parallel()

	verdicts := []model.CookieVerdict{
		{Name: "bad", Suspicious: true, Reasons: []string{classifier.ThirdPartyReasonPrefix + "hotjar.com"}},
	}
	reqs := []model.CapturedRequest{{URL: "https://hotjar.com/x"}}

	a := classifier.Recommend(verdicts, reqs)
	b := classifier.Recommend(verdicts, reqs)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at %d: %q vs %q", i, a[i], b[i])
		}
	}
}
