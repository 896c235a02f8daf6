package classifier

// CookieRule is one heuristic pattern checked against cookie names and
// values. Regex is compiled once at constructor time, case-insensitively.
type CookieRule struct {
	// ID is a short stable identifier (eg. "keyword:track").
	ID string

	// Regex is tested against the cookie name and value independently.
	Regex string

	// Reason is the human-readable explanation appended on a match.
	Reason string
}

// Config carries the rule tables for both classifiers. Tables are plain data
// so tests can inject their own rule sets and deployments can extend them
// without code changes.
type Config struct {
	// RulesetVersion identifies the heuristics version for auditability.
	RulesetVersion string

	// CookieRules is the ordered pattern table for cookie classification.
	CookieRules []CookieRule

	// HighEntropyMinLen is the minimum value length before the encoded-value
	// heuristic applies.
	HighEntropyMinLen int

	// TrackerDomains are substrings matched against request URLs.
	TrackerDomains []string

	// RequestKeywords are substrings matched against request URLs. Unlike
	// CookieRules these match case-sensitively.
	RequestKeywords []string
}

// DefaultConfig returns the built-in rule tables.
func DefaultConfig() *Config {
	return &Config{
		RulesetVersion:    "v0.1.0",
		HighEntropyMinLen: 20,
		CookieRules: []CookieRule{
			{ID: "keyword:track", Regex: `track`, Reason: "contains tracking keyword 'track'"},
			{ID: "keyword:analytics", Regex: `analytics`, Reason: "contains analytics keyword"},
			{ID: "keyword:pixel", Regex: `pixel`, Reason: "contains pixel keyword"},
			{ID: "vendor:facebook", Regex: `fb`, Reason: "possible Facebook tracking cookie"},
			{ID: "vendor:google", Regex: `google|ga|gtag`, Reason: "possible Google Analytics cookie"},
			{ID: "vendor:doubleclick", Regex: `doubleclick`, Reason: "DoubleClick advertising cookie"},
			{ID: "vendor:adsystem", Regex: `adsystem`, Reason: "ad system cookie"},
			{ID: "keyword:utm", Regex: `_utm`, Reason: "UTM campaign tracking cookie"},
			{ID: "keyword:session-id", Regex: `session.*id`, Reason: "session identifier cookie"},
		},
		TrackerDomains: []string{
			"google-analytics.com",
			"googletagmanager.com",
			"doubleclick.net",
			"facebook.com",
			"connect.facebook.net",
			"hotjar.com",
			"mixpanel.com",
			"segment.com",
			"amplitude.com",
			"fullstory.com",
		},
		RequestKeywords: []string{"track", "analytics", "pixel"},
	}
}
