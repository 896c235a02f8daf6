package model

// CookieVerdict is the classification outcome for a single cookie.
// Invariant: Suspicious == (len(Reasons) > 0).
type CookieVerdict struct {
	Name       string   `json:"name"`
	Value      string   `json:"value"`
	Domain     string   `json:"domain"`
	Path       string   `json:"path"`
	Expires    string   `json:"expires"`
	HTTPOnly   bool     `json:"http_only"`
	Secure     bool     `json:"secure"`
	SameSite   string   `json:"same_site,omitempty"`
	SizeBytes  int      `json:"size_bytes"`
	Suspicious bool     `json:"suspicious"`
	Reasons    []string `json:"reasons,omitempty"`
}

// Report is the final artifact of a scan run. Built exactly once, written
// exactly once, never mutated afterwards.
// Invariant: SuspiciousCookieCount == count of Cookies with Suspicious set.
type Report struct {
	Website               string            `json:"website"`
	ScanID                string            `json:"scan_id"`
	Timestamp             string            `json:"timestamp"`
	TotalCookies          int               `json:"total_cookies"`
	SuspiciousCookieCount int               `json:"suspicious_cookie_count"`
	Cookies               []CookieVerdict   `json:"cookies"`
	TrackingRequests      []CapturedRequest `json:"tracking_requests"`
	Recommendations       []string          `json:"recommendations"`
}
