package urlutil

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// URLTools wraps a parsed URL with the normalizations the scanner relies on.
type URLTools struct {
	URL *url.URL
}

func NewURLTools(raw string) (*URLTools, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse url %s: %w", raw, err)
	}

	urlTools := &URLTools{
		URL: u,
	}
	urlTools.normalize()

	return urlTools, nil
}

func (u *URLTools) normalize() {
	u.URL.Fragment = ""
	u.URL.Scheme = strings.ToLower(u.URL.Scheme)
	u.URL.Host = strings.ToLower(u.URL.Host)

	if (u.URL.Scheme == "http" && strings.HasSuffix(u.URL.Host, ":80")) ||
		(u.URL.Scheme == "https" && strings.HasSuffix(u.URL.Host, ":443")) {
		u.URL.Host, _, _ = strings.Cut(u.URL.Host, ":")
	}
}

// Hostname returns the normalized hostname, punycoded when the host carries
// non-ASCII labels so it compares cleanly against cookie domains.
func (u *URLTools) Hostname() string {
	host := u.URL.Hostname()
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		return ascii
	}
	return host
}

// Hostname is a convenience wrapper that parses raw and returns its
// normalized hostname.
func Hostname(raw string) (string, error) {
	u, err := NewURLTools(raw)
	if err != nil {
		return "", err
	}
	return u.Hostname(), nil
}

// ValidateTarget checks that raw is usable as a scan target: it must start
// with "http" and parse to a URL with a host.
func ValidateTarget(raw string) error {
	if !strings.HasPrefix(raw, "http") {
		return fmt.Errorf("target URL must start with http: %q", raw)
	}
	u, err := NewURLTools(raw)
	if err != nil {
		return err
	}
	if u.URL.Hostname() == "" {
		return fmt.Errorf("target URL has no host: %q", raw)
	}
	return nil
}
