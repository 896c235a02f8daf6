package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/surajroboto/cookie-trac/internal/model"
)

// Build assembles the final report from the classifier outputs. Pure
// aggregation: no I/O, no mutation of its inputs.
func Build(siteURL string, verdicts []model.CookieVerdict, flagged []model.CapturedRequest, recommendations []string) *model.Report {
	suspicious := 0
	for _, v := range verdicts {
		if v.Suspicious {
			suspicious++
		}
	}

	if verdicts == nil {
		verdicts = []model.CookieVerdict{}
	}
	if flagged == nil {
		flagged = []model.CapturedRequest{}
	}
	if recommendations == nil {
		recommendations = []string{}
	}

	return &model.Report{
		Website:               siteURL,
		ScanID:                uuid.New().String(),
		Timestamp:             time.Now().UTC().Format(time.RFC3339),
		TotalCookies:          len(verdicts),
		SuspiciousCookieCount: suspicious,
		Cookies:               verdicts,
		TrackingRequests:      flagged,
		Recommendations:       recommendations,
	}
}
