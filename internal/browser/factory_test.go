package browser_test

import (
	"context"
	"testing"

	"github.com/surajroboto/cookie-trac/internal/browser"
	"github.com/surajroboto/cookie-trac/internal/logging"
	"github.com/surajroboto/cookie-trac/internal/model"
	"github.com/surajroboto/cookie-trac/internal/testutil"
)

func TestNew_UnregisteredBackend(t *testing.T) {
	cfg := browser.DefaultConfig()
	cfg.Backend = "lynx"
	if _, err := browser.New(cfg, logging.NewNopLogger()); err == nil {
		t.Fatal("expected error for unregistered backend")
	}
}

func TestNew_DefaultBackends(t *testing.T) {
	found := map[string]bool{}
	for _, name := range browser.ListBackends() {
		found[name] = true
	}
	if !found["chromedp"] || !found["nethttp"] {
		t.Fatalf("default backends missing, have %v", browser.ListBackends())
	}
}

func TestRegister_CustomBackend(t *testing.T) {
	fake := &testutil.DummyDriver{Capture: &model.Capture{FinalURL: "https://example.com/"}}
	browser.Register("fake", func(cfg browser.Config, logger logging.Logger) (browser.Driver, error) {
		return fake, nil
	})

	cfg := browser.DefaultConfig()
	cfg.Backend = "FAKE" // names are case-insensitive
	d, err := browser.New(cfg, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	capture, err := d.Visit(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Visit: %v", err)
	}
	if capture.FinalURL != "https://example.com/" {
		t.Fatalf("unexpected capture: %+v", capture)
	}
}

func TestNew_EmptyBackendDefaultsToChromedp(t *testing.T) {
	seen := ""
	browser.Register(browser.BackendChromedp, func(cfg browser.Config, logger logging.Logger) (browser.Driver, error) {
		seen = "chromedp"
		return &testutil.DummyDriver{}, nil
	})
	t.Cleanup(func() {
		// Restore the real constructor for other tests in the package.
		browser.RegisterDefaultBackends()
	})

	cfg := browser.DefaultConfig()
	cfg.Backend = ""
	if _, err := browser.New(cfg, logging.NewNopLogger()); err != nil {
		t.Fatalf("New: %v", err)
	}
	if seen != "chromedp" {
		t.Fatal("empty backend name must fall back to chromedp")
	}
}
