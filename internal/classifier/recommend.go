package classifier

import (
	"strings"

	"github.com/surajroboto/cookie-trac/internal/model"
)

// highTrackingRequestThreshold is the flagged-request count above which the
// audit recommendation triggers (strictly greater than).
const highTrackingRequestThreshold = 10

// Recommend derives advisory strings from the classifier outputs. The result
// is a pure function of its inputs: rules fire independently, in a fixed
// order, and the two closing recommendations are always present.
func Recommend(verdicts []model.CookieVerdict, flagged []model.CapturedRequest) []string {
	recs := make([]string, 0, 6)

	anySuspicious := false
	anyThirdParty := false
	for _, v := range verdicts {
		if v.Suspicious {
			anySuspicious = true
		}
		for _, r := range v.Reasons {
			if strings.HasPrefix(r, ThirdPartyReasonPrefix) {
				anyThirdParty = true
			}
		}
	}

	if anySuspicious {
		recs = append(recs,
			"Review suspicious cookies and verify they are intentionally added",
			"Check if cookie consent mechanisms are properly implemented")
	}

	if len(flagged) > highTrackingRequestThreshold {
		recs = append(recs, "High number of tracking requests detected: consider auditing third-party scripts")
	}

	if anyThirdParty {
		recs = append(recs, "Third-party cookies detected: ensure privacy regulation compliance")
	}

	recs = append(recs,
		"Regularly audit cookies and tracking mechanisms",
		"Implement a Content Security Policy to control resource loading")

	return recs
}
