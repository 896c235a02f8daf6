package browser

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"github.com/surajroboto/cookie-trac/internal/logging"
	"github.com/surajroboto/cookie-trac/internal/model"
)

// scrollToBottomJS nudges lazy-loaded trackers into firing before the settle
// window starts.
const scrollToBottomJS = `window.scrollTo(0, document.body.scrollHeight)`

// ChromedpDriver drives a real Chrome instance over CDP. One exec allocator
// is shared across visits; each Visit gets a fresh tab context.
type ChromedpDriver struct {
	cfg         Config
	logger      logging.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpDriver prepares the exec allocator. Chrome itself is launched
// lazily on the first Visit.
func NewChromedpDriver(cfg Config, logger logging.Logger) (*ChromedpDriver, error) {
	componentLogger := logger.With(logging.Field{Key: "component", Value: "chromedp-driver"})

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	componentLogger.Info("created chromedp driver",
		logging.Field{Key: "headless", Value: cfg.Headless},
		logging.Field{Key: "settle", Value: cfg.Settle.String()},
		logging.Field{Key: "settle_strategy", Value: string(cfg.SettleStrategy)})

	return &ChromedpDriver{
		cfg:         cfg,
		logger:      componentLogger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}, nil
}

// Visit navigates to rawURL, waits out the settle window and returns the
// buffered traffic plus a cookie snapshot. Any driver failure aborts the
// visit; the tab is torn down either way via the deferred cancels.
func (d *ChromedpDriver) Visit(ctx context.Context, rawURL string) (*model.Capture, error) {
	tabCtx, cancel := chromedp.NewContext(d.allocCtx)
	defer cancel()

	if d.cfg.NavTimeout > 0 {
		var tcancel context.CancelFunc
		tabCtx, tcancel = context.WithTimeout(tabCtx, d.cfg.NavTimeout)
		defer tcancel()
	}

	// Propagate caller cancellation into the chromedp context chain.
	stop := propagateCancel(ctx, cancel)
	defer stop()

	started := time.Now().UTC()

	buf := newCaptureBuffer()
	chromedp.ListenTarget(tabCtx, func(ev any) {
		switch e := ev.(type) {
		case *network.EventRequestWillBeSent:
			buf.appendRequest(model.CapturedRequest{
				URL:          e.Request.URL,
				Method:       e.Request.Method,
				Headers:      flattenHeaders(e.Request.Headers),
				ResourceType: string(e.Type),
			})
		case *network.EventResponseReceived:
			buf.appendResponse(model.CapturedResponse{
				URL:       e.Response.URL,
				Status:    int(e.Response.Status),
				Headers:   flattenHeaders(e.Response.Headers),
				FromCache: e.Response.FromDiskCache,
			})
		}
	})

	var idleCh chan struct{}
	if d.cfg.SettleStrategy == SettleIdle {
		// Must be registered before navigation so no request is missed.
		idleCh = waitNetworkIdle(tabCtx, d.cfg.Settle)
	}

	actions := []chromedp.Action{network.Enable()}
	if !d.cfg.AcceptDownloads {
		actions = append(actions, cdpbrowser.SetDownloadBehavior(cdpbrowser.SetDownloadBehaviorBehaviorDeny))
	}
	actions = append(actions, chromedp.Navigate(rawURL))

	d.logger.Debug("navigating", logging.Field{Key: "url", Value: rawURL})
	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", rawURL, err)
	}

	if err := chromedp.Run(tabCtx, chromedp.Evaluate(scrollToBottomJS, nil)); err != nil {
		return nil, fmt.Errorf("scroll %s: %w", rawURL, err)
	}

	if err := d.settle(tabCtx, idleCh); err != nil {
		return nil, fmt.Errorf("settle %s: %w", rawURL, err)
	}

	var (
		finalURL   string
		rawCookies []*network.Cookie
	)
	err := chromedp.Run(tabCtx,
		chromedp.Location(&finalURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			rawCookies, err = storage.GetCookies().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("cookie snapshot %s: %w", rawURL, err)
	}

	requests, responses := buf.snapshot()
	capture := &model.Capture{
		FinalURL:  finalURL,
		Requests:  requests,
		Responses: responses,
		Cookies:   convertCookies(rawCookies),
		Started:   started,
		Settled:   time.Now().UTC(),
	}

	d.logger.Info("visit complete",
		logging.Field{Key: "url", Value: rawURL},
		logging.Field{Key: "requests_seen", Value: len(capture.Requests)},
		logging.Field{Key: "responses_seen", Value: len(capture.Responses)},
		logging.Field{Key: "cookies", Value: len(capture.Cookies)})

	return capture, nil
}

// settle waits for quiescence according to the configured strategy.
func (d *ChromedpDriver) settle(ctx context.Context, idleCh chan struct{}) error {
	if d.cfg.SettleStrategy == SettleIdle && idleCh != nil {
		select {
		case <-idleCh:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	t := time.NewTimer(d.cfg.Settle)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears down the browser session. Safe to call after a failed Visit.
func (d *ChromedpDriver) Close() error {
	d.allocCancel()
	d.logger.Info("chromedp driver closed")
	return nil
}

// waitNetworkIdle signals on the returned channel once no request has been
// in flight for idleAfter. Counting starts immediately, so register this
// before navigating.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) chan struct{} {
	idleChan := make(chan struct{})
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) == 0 {
				once.Do(func() {
					close(idleChan)
				})
			}
		})
	}

	chromedp.ListenTarget(ctx,
		func(ev any) {
			switch ev.(type) {
			case *network.EventRequestWillBeSent:
				atomic.AddInt32(&activeReqs, 1)
			case *network.EventLoadingFinished, *network.EventLoadingFailed:
				if atomic.AddInt32(&activeReqs, -1) == 0 {
					startTimer()
				}
			}
		})

	// Cover pages that load without any observable request.
	startTimer()

	return idleChan
}

func flattenHeaders(h network.Headers) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func convertCookies(raw []*network.Cookie) []model.Cookie {
	cookies := make([]model.Cookie, 0, len(raw))
	for _, c := range raw {
		if c == nil {
			continue
		}
		expires := c.Expires
		if c.Session || expires < 0 {
			expires = 0
		}
		cookies = append(cookies, model.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		})
	}
	return cookies
}

// propagateCancel cancels the chromedp context chain when the caller context
// ends. The returned stop func releases the watcher goroutine.
func propagateCancel(ctx context.Context, cancel context.CancelFunc) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
