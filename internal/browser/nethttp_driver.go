package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/surajroboto/cookie-trac/internal/logging"
	"github.com/surajroboto/cookie-trac/internal/model"
	"github.com/surajroboto/cookie-trac/internal/urlutil"
)

// NetHTTPDriver is a degraded, browser-free backend: it performs a single
// GET and records that one request/response pair plus the cookies the
// response set. No scripts run, so nothing lazy-loaded is ever observed.
// Useful for smoke tests and environments without Chrome.
type NetHTTPDriver struct {
	cfg    Config
	client *http.Client
	logger logging.Logger
}

func NewNetHTTPDriver(cfg Config, logger logging.Logger, httpClient *http.Client) (*NetHTTPDriver, error) {
	componentLogger := logger.With(logging.Field{Key: "component", Value: "nethttp-driver"})

	if httpClient == nil {
		timeout := cfg.NavTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	componentLogger.Info("created nethttp driver",
		logging.Field{Key: "timeout", Value: httpClient.Timeout.String()})

	return &NetHTTPDriver{
		cfg:    cfg,
		client: httpClient,
		logger: componentLogger,
	}, nil
}

func (d *NetHTTPDriver) Visit(ctx context.Context, rawURL string) (*model.Capture, error) {
	started := time.Now().UTC()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if d.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", d.cfg.UserAgent)
	}

	d.logger.Debug("fetching", logging.Field{Key: "url", Value: rawURL})

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	// Body content is irrelevant to classification; drain it so the
	// connection can be reused.
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		d.logger.Warn("draining response body",
			logging.Field{Key: "url", Value: rawURL},
			logging.Field{Key: "error", Value: err.Error()})
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	capture := &model.Capture{
		FinalURL: finalURL,
		Requests: []model.CapturedRequest{{
			URL:          rawURL,
			Method:       http.MethodGet,
			Headers:      firstHeaderValues(req.Header),
			ResourceType: "Document",
		}},
		Responses: []model.CapturedResponse{{
			URL:     finalURL,
			Status:  resp.StatusCode,
			Headers: firstHeaderValues(resp.Header),
		}},
		Cookies: convertHTTPCookies(resp.Cookies(), finalURL),
		Started: started,
		Settled: time.Now().UTC(),
	}

	d.logger.Info("fetch complete",
		logging.Field{Key: "url", Value: rawURL},
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "cookies", Value: len(capture.Cookies)})

	return capture, nil
}

func (d *NetHTTPDriver) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

func firstHeaderValues(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}

func convertHTTPCookies(raw []*http.Cookie, finalURL string) []model.Cookie {
	host, err := urlutil.Hostname(finalURL)
	if err != nil {
		host = ""
	}

	cookies := make([]model.Cookie, 0, len(raw))
	for _, c := range raw {
		if c == nil {
			continue
		}
		domain := c.Domain
		if domain == "" {
			// Host-only cookie: attribute it to the responding host.
			domain = host
		}
		var expires float64
		if !c.Expires.IsZero() {
			expires = float64(c.Expires.Unix())
		}
		cookies = append(cookies, model.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   domain,
			Path:     c.Path,
			Expires:  expires,
			HTTPOnly: c.HttpOnly,
			Secure:   c.Secure,
			SameSite: sameSiteString(c.SameSite),
		})
	}
	return cookies
}

func sameSiteString(s http.SameSite) string {
	switch s {
	case http.SameSiteStrictMode:
		return "Strict"
	case http.SameSiteLaxMode:
		return "Lax"
	case http.SameSiteNoneMode:
		return "None"
	default:
		return ""
	}
}
