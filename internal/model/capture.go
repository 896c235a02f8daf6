package model

import "time"

// CapturedRequest is one outgoing network request observed while the target
// page was live. Immutable once recorded.
type CapturedRequest struct {
	URL          string            `json:"url"`
	Method       string            `json:"method"`
	Headers      map[string]string `json:"headers,omitempty"`
	ResourceType string            `json:"resource_type,omitempty"`
}

// CapturedResponse is one incoming response observed while the target page
// was live. Recorded alongside requests but not consumed by any heuristic
// yet; surfaced only through scan logs.
type CapturedResponse struct {
	URL       string            `json:"url"`
	Status    int               `json:"status"`
	Headers   map[string]string `json:"headers,omitempty"`
	FromCache bool              `json:"from_cache"`
}

// Cookie is a read-only snapshot of one browser cookie, taken once after the
// settle period. Expires is epoch seconds; 0 means a session cookie.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires,omitempty"`
	HTTPOnly bool    `json:"http_only"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"same_site,omitempty"`
}

// Session is the rendered expiry for cookies without an expiration time.
const Session = "Session"

// ExpiresISO renders the cookie expiry as an ISO-8601 UTC timestamp, or
// "Session" when the cookie has no expiry.
func (c Cookie) ExpiresISO() string {
	if c.Expires <= 0 {
		return Session
	}
	sec := int64(c.Expires)
	nsec := int64((c.Expires - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC().Format(time.RFC3339)
}

// Capture is everything one page visit produced: the buffered network
// traffic plus the cookie jar snapshot.
type Capture struct {
	FinalURL  string             `json:"final_url"`
	Requests  []CapturedRequest  `json:"requests"`
	Responses []CapturedResponse `json:"responses"`
	Cookies   []Cookie           `json:"cookies"`
	Started   time.Time          `json:"started"`
	Settled   time.Time          `json:"settled"`
}
