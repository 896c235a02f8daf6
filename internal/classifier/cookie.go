package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/surajroboto/cookie-trac/internal/logging"
	"github.com/surajroboto/cookie-trac/internal/model"
)

// ReasonHighEntropy is appended when a cookie value looks like a long
// encoded identifier.
const ReasonHighEntropy = "long encoded value (potential tracking ID)"

// ThirdPartyReasonPrefix prefixes the reason appended by the third-party
// domain heuristic. The recommendation engine keys off this prefix.
const ThirdPartyReasonPrefix = "third-party domain: "

// encodedValuePattern matches values made only of base64/url-safe characters.
var encodedValuePattern = regexp.MustCompile(`^[A-Za-z0-9+/=_-]+$`)

type compiledRule struct {
	rule CookieRule
	re   *regexp.Regexp
}

// Classifier evaluates cookies and requests against the configured rule
// tables. All checks are independent and additive: a single cookie may
// collect several reasons.
type Classifier struct {
	cfg    *Config
	logger logging.Logger
	rules  []compiledRule
}

// NewClassifier compiles the configured rule tables. Rules compile
// case-insensitively; a rule that fails to compile is a configuration error.
func NewClassifier(cfg *Config, logger logging.Logger) (*Classifier, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	l := logger.With(logging.Field{Key: "component", Value: "classifier"})

	rules := make([]compiledRule, 0, len(cfg.CookieRules))
	for _, r := range cfg.CookieRules {
		re, err := regexp.Compile("(?i)" + r.Regex)
		if err != nil {
			return nil, fmt.Errorf("classifier: compile rule %q: %w", r.ID, err)
		}
		rules = append(rules, compiledRule{rule: r, re: re})
	}

	l.Info("classifier constructed",
		logging.Field{Key: "ruleset_version", Value: cfg.RulesetVersion},
		logging.Field{Key: "cookie_rules", Value: len(rules)},
		logging.Field{Key: "tracker_domains", Value: len(cfg.TrackerDomains)})

	return &Classifier{cfg: cfg, logger: l, rules: rules}, nil
}

// ClassifyCookie evaluates one cookie against the full rule set. siteHost is
// the hostname of the visited page, used by the third-party heuristic.
func (c *Classifier) ClassifyCookie(cookie model.Cookie, siteHost string) model.CookieVerdict {
	verdict := model.CookieVerdict{
		Name:      cookie.Name,
		Value:     cookie.Value,
		Domain:    cookie.Domain,
		Path:      cookie.Path,
		Expires:   cookie.ExpiresISO(),
		HTTPOnly:  cookie.HTTPOnly,
		Secure:    cookie.Secure,
		SameSite:  cookie.SameSite,
		SizeBytes: len(cookie.Value),
	}

	// Each rule tests the name and the value independently; one reason per
	// rule even when both match.
	for _, cr := range c.rules {
		if cr.re.MatchString(cookie.Name) || cr.re.MatchString(cookie.Value) {
			verdict.Reasons = append(verdict.Reasons, cr.rule.Reason)
		}
	}

	// A long value drawn entirely from the base64/url-safe alphabet is
	// usually an opaque identifier. Short and empty values never qualify.
	if len(cookie.Value) > c.cfg.HighEntropyMinLen && encodedValuePattern.MatchString(cookie.Value) {
		verdict.Reasons = append(verdict.Reasons, ReasonHighEntropy)
	}

	if c.isThirdParty(cookie.Domain, siteHost) {
		verdict.Reasons = append(verdict.Reasons, ThirdPartyReasonPrefix+cookie.Domain)
	}

	verdict.Suspicious = len(verdict.Reasons) > 0
	return verdict
}

// ClassifyCookies runs ClassifyCookie over a snapshot, preserving order.
func (c *Classifier) ClassifyCookies(cookies []model.Cookie, siteHost string) []model.CookieVerdict {
	verdicts := make([]model.CookieVerdict, 0, len(cookies))
	for _, ck := range cookies {
		verdicts = append(verdicts, c.ClassifyCookie(ck, siteHost))
	}
	return verdicts
}

// isThirdParty applies the loose containment check: a cookie counts as
// first-party when its domain is a substring of the site host or vice versa.
// This is intentionally not an eTLD+1 comparison; tightening it changes
// classification results.
func (c *Classifier) isThirdParty(cookieDomain, siteHost string) bool {
	d := strings.ToLower(strings.TrimPrefix(cookieDomain, "."))
	h := strings.ToLower(siteHost)
	if d == "" || h == "" {
		return false
	}
	return !strings.Contains(h, d) && !strings.Contains(d, h)
}
