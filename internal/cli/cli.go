package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

// CLIArgs are the command-line arguments for a single scan or a server run.
// Keep this small for now; add fields as modules need them.
type CLIArgs struct {
	// URL is the page to scan. Required unless Serve is set; must start
	// with "http".
	URL string

	// Backend selects the browser driver ("chromedp" or "nethttp").
	Backend string

	// Settle is the quiescence window after navigation.
	Settle time.Duration

	// SettleStrategy is "fixed" or "idle".
	SettleStrategy string

	// Timeout bounds the whole visit, navigation included.
	Timeout time.Duration

	// Headless toggles headless mode for the chromedp backend.
	Headless bool

	// UserAgent overrides the browsing context user agent when non-empty.
	UserAgent string

	// OutDir is where report files land.
	OutDir string

	// Serve starts the HTTP API server instead of a one-shot scan.
	Serve bool

	// Addr is the server listen address when Serve is set.
	Addr string

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by
// passing arbitrary slices. The function is deterministic and does not read
// os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("cookie-trac", flag.ContinueOnError)
	var (
		rawURL         = fs.String("url", "", "Page URL to scan (required unless -serve; must start with http)")
		backend        = fs.String("backend", "chromedp", "Browser backend: chromedp|nethttp")
		settle         = fs.Duration("settle", 5*time.Second, "Quiescence window after navigation")
		settleStrategy = fs.String("settle-strategy", "fixed", "Settle strategy: fixed|idle")
		timeout        = fs.Duration("timeout", 60*time.Second, "Overall visit timeout")
		headless       = fs.Bool("headless", true, "Run the browser headless")
		userAgent      = fs.String("user-agent", "", "Override the browser user agent")
		outDir         = fs.String("out", ".", "Directory for report files")
		serve          = fs.Bool("serve", false, "Start the HTTP API server instead of scanning")
		addr           = fs.String("addr", ":8080", "Listen address for -serve")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		// Flag parsing errors are useful to return to caller
		return nil, err
	}

	url := strings.TrimSpace(*rawURL)
	if !*serve {
		if url == "" {
			return nil, fmt.Errorf("missing required -url argument")
		}
		if !strings.HasPrefix(url, "http") {
			return nil, fmt.Errorf("-url must start with http, got %q", url)
		}
	}

	switch *settleStrategy {
	case "fixed", "idle":
	default:
		return nil, fmt.Errorf("invalid -settle-strategy %q (want fixed or idle)", *settleStrategy)
	}

	return &CLIArgs{
		URL:            url,
		Backend:        *backend,
		Settle:         *settle,
		SettleStrategy: *settleStrategy,
		Timeout:        *timeout,
		Headless:       *headless,
		UserAgent:      *userAgent,
		OutDir:         *outDir,
		Serve:          *serve,
		Addr:           *addr,
		RawArgs:        args,
	}, nil
}
