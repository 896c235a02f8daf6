package app

import (
	"github.com/surajroboto/cookie-trac/internal/browser"
	"github.com/surajroboto/cookie-trac/internal/classifier"
)

// Config contains the runtime configuration shared across internal modules.
// Per-module options live on the modules' own Config types; this aggregates
// them for wiring.
type Config struct {
	// BrowserCfg configures the driver backend.
	BrowserCfg browser.Config

	// ClassifierCfg carries the heuristic rule tables.
	ClassifierCfg *classifier.Config

	// OutDir is where report files are written.
	OutDir string

	// ServerAddr is the HTTP listen address for the API server (the CLI
	// scans in-process and does not require the network).
	ServerAddr string
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BrowserCfg:    browser.DefaultConfig(),
		ClassifierCfg: classifier.DefaultConfig(),
		OutDir:        ".",
		ServerAddr:    ":8080",
	}
}
