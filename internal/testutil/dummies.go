// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/surajroboto/cookie-trac/internal/logging"
	"github.com/surajroboto/cookie-trac/internal/model"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── Driver ────────────────────────────────────────────────────────────

// DummyDriver implements browser.Driver by replaying a fixed capture.
// Set Err to force Visit failures, VisitDelay to simulate slow pages.
type DummyDriver struct {
	Capture    *model.Capture
	Err        error
	VisitDelay time.Duration

	mu      sync.Mutex
	Visited []string
	Closed  bool
}

func (d *DummyDriver) Visit(ctx context.Context, url string) (*model.Capture, error) {
	if d.VisitDelay > 0 {
		select {
		case <-time.After(d.VisitDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	d.Visited = append(d.Visited, url)
	d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	if d.Capture != nil {
		return d.Capture, nil
	}
	return &model.Capture{
		FinalURL: url,
		Started:  time.Now().UTC(),
		Settled:  time.Now().UTC(),
	}, nil
}

func (d *DummyDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}
