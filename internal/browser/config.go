package browser

import "time"

type Backend string

const (
	BackendChromedp Backend = "chromedp"
	BackendNetHTTP  Backend = "nethttp"
)

// SettleStrategy selects how the driver decides the page has gone quiet
// before taking the cookie snapshot.
type SettleStrategy string

const (
	// SettleFixed sleeps for the full Settle duration after navigation.
	// This is the default.
	SettleFixed SettleStrategy = "fixed"

	// SettleIdle waits until no network activity has been observed for the
	// Settle window. May settle earlier or later than SettleFixed.
	SettleIdle SettleStrategy = "idle"
)

// Config controls driver construction and per-visit behavior.
type Config struct {
	Backend Backend

	// Headless toggles the browser's headless mode.
	Headless bool

	// UserAgent overrides the browsing context user agent when non-empty.
	UserAgent string

	// AcceptDownloads allows the page to trigger downloads during the visit.
	AcceptDownloads bool

	// NavTimeout bounds the whole visit, navigation included. A timeout is a
	// navigation error; there are no retries.
	NavTimeout time.Duration

	// Settle is the quiescence window applied after navigation, before the
	// cookie snapshot. Late-firing trackers inside this window are captured;
	// anything slower is missed. That imprecision is documented behavior.
	Settle time.Duration

	// SettleStrategy picks the quiescence mechanism. Empty means SettleFixed.
	SettleStrategy SettleStrategy
}

// DefaultConfig returns sensible scan defaults.
func DefaultConfig() Config {
	return Config{
		Backend:        BackendChromedp,
		Headless:       true,
		NavTimeout:     60 * time.Second,
		Settle:         5 * time.Second,
		SettleStrategy: SettleFixed,
	}
}
