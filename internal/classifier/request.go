package classifier

import (
	"strings"

	"github.com/surajroboto/cookie-trac/internal/model"
)

// FlagRequests filters captured requests down to the tracking-flagged
// subset. Order is preserved and no duplicates are introduced: each request
// appears at most once no matter how many entries it matches.
//
// A request is flagged when its URL contains a known tracker domain, or one
// of the configured keywords as a case-sensitive substring.
func (c *Classifier) FlagRequests(requests []model.CapturedRequest) []model.CapturedRequest {
	flagged := make([]model.CapturedRequest, 0)
	for _, req := range requests {
		if c.isTrackingURL(req.URL) {
			flagged = append(flagged, req)
		}
	}
	return flagged
}

func (c *Classifier) isTrackingURL(url string) bool {
	for _, domain := range c.cfg.TrackerDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}
	for _, kw := range c.cfg.RequestKeywords {
		if strings.Contains(url, kw) {
			return true
		}
	}
	return false
}
