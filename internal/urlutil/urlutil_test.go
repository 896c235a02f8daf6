package urlutil_test

import (
	"testing"

	"github.com/surajroboto/cookie-trac/internal/urlutil"
)

func TestNewURLTools_Normalizes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want string
	}{
		{"HTTPS://Example.COM/path#frag", "https://example.com/path"},
		{"http://example.com:80/x", "http://example.com/x"},
		{"https://example.com:443/", "https://example.com/"},
		{"https://example.com:8443/", "https://example.com:8443/"},
		{"http://example.com:8080/a?b=c", "http://example.com:8080/a?b=c"},
	}
	for _, tc := range tests {
		u, err := urlutil.NewURLTools(tc.raw)
		if err != nil {
			t.Fatalf("NewURLTools(%q): %v", tc.raw, err)
		}
		if got := u.URL.String(); got != tc.want {
			t.Fatalf("normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestHostname(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want string
	}{
		{"https://Example.com/path", "example.com"},
		{"https://example.com:8443/", "example.com"},
		{"https://bücher.example/", "xn--bcher-kva.example"},
	}
	for _, tc := range tests {
		got, err := urlutil.Hostname(tc.raw)
		if err != nil {
			t.Fatalf("Hostname(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("Hostname(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestValidateTarget(t *testing.T) {
	t.Parallel()
	valid := []string{
		"http://example.com",
		"https://example.com/path?q=1",
		"https://sub.example.com:8443/",
	}
	for _, raw := range valid {
		if err := urlutil.ValidateTarget(raw); err != nil {
			t.Fatalf("ValidateTarget(%q) = %v, want nil", raw, err)
		}
	}

	invalid := []string{
		"",
		"example.com",
		"ftp://example.com",
		"file:///etc/passwd",
		"http://",
	}
	for _, raw := range invalid {
		if err := urlutil.ValidateTarget(raw); err == nil {
			t.Fatalf("ValidateTarget(%q) = nil, want error", raw)
		}
	}
}
