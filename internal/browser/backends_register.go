package browser

import (
	"github.com/surajroboto/cookie-trac/internal/logging"
)

// RegisterDefaultBackends registers the chromedp and nethttp backends.
// Call this from init() or early in main() to make backends available to New.
func RegisterDefaultBackends() {
	Register(BackendChromedp, func(cfg Config, logger logging.Logger) (Driver, error) {
		return NewChromedpDriver(cfg, logger)
	})

	Register(BackendNetHTTP, func(cfg Config, logger logging.Logger) (Driver, error) {
		return NewNetHTTPDriver(cfg, logger, nil)
	})
}

func init() {
	RegisterDefaultBackends()
}
