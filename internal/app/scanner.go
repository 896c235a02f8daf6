package app

import (
	"context"
	"fmt"

	"github.com/surajroboto/cookie-trac/internal/browser"
	"github.com/surajroboto/cookie-trac/internal/classifier"
	"github.com/surajroboto/cookie-trac/internal/logging"
	"github.com/surajroboto/cookie-trac/internal/model"
	"github.com/surajroboto/cookie-trac/internal/report"
	"github.com/surajroboto/cookie-trac/internal/urlutil"
)

// ScanResult pairs the built report with where it was persisted.
type ScanResult struct {
	Report     *model.Report `json:"report"`
	ReportPath string        `json:"report_path"`
}

// Scanner runs the whole pipeline for one URL: visit, classify, recommend,
// build, write. Strictly sequential, one attempt, no partial reports.
type Scanner struct {
	cfg        *Config
	driver     browser.Driver
	classifier *classifier.Classifier
	writer     *report.Writer
	logger     logging.Logger
}

// NewScanner wires the pipeline. Pass a nil driver to have one constructed
// from cfg.BrowserCfg; tests inject a fake driver instead.
func NewScanner(cfg *Config, driver browser.Driver, logger logging.Logger) (*Scanner, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	if driver == nil {
		var err error
		driver, err = browser.New(cfg.BrowserCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("new driver: %w", err)
		}
	}

	cl, err := classifier.NewClassifier(cfg.ClassifierCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("new classifier: %w", err)
	}

	w, err := report.NewWriter(cfg.OutDir, logger)
	if err != nil {
		return nil, fmt.Errorf("new report writer: %w", err)
	}

	return &Scanner{
		cfg:        cfg,
		driver:     driver,
		classifier: cl,
		writer:     w,
		logger:     logger.With(logging.Field{Key: "component", Value: "scanner"}),
	}, nil
}

// Scan visits rawURL and produces the persisted report. Validation errors
// surface before any browser work; driver errors abort the run with no
// report written.
func (s *Scanner) Scan(ctx context.Context, rawURL string) (*ScanResult, error) {
	if err := urlutil.ValidateTarget(rawURL); err != nil {
		return nil, err
	}
	siteHost, err := urlutil.Hostname(rawURL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("scan started", logging.Field{Key: "url", Value: rawURL})

	capture, err := s.driver.Visit(ctx, rawURL)
	if err != nil {
		s.logger.Error("visit failed",
			logging.Field{Key: "url", Value: rawURL},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, err
	}

	verdicts := s.classifier.ClassifyCookies(capture.Cookies, siteHost)
	flagged := s.classifier.FlagRequests(capture.Requests)
	recs := classifier.Recommend(verdicts, flagged)

	rep := report.Build(rawURL, verdicts, flagged, recs)

	path, err := s.writer.Write(rep)
	if err != nil {
		return nil, err
	}

	s.logger.Info("scan complete",
		logging.Field{Key: "url", Value: rawURL},
		logging.Field{Key: "cookies", Value: rep.TotalCookies},
		logging.Field{Key: "suspicious_cookies", Value: rep.SuspiciousCookieCount},
		logging.Field{Key: "tracking_requests", Value: len(rep.TrackingRequests)},
		logging.Field{Key: "report", Value: path})

	return &ScanResult{Report: rep, ReportPath: path}, nil
}

// Close releases the driver's browser session.
func (s *Scanner) Close() error {
	return s.driver.Close()
}
