// Package upstream provides the shared outbound HTTP client for every
// third-party integration. It retries conflict and rate-limit responses
// with the provider's advertised delay and surfaces everything else as a
// StatusError the modules can map onto their own error taxonomy.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	perr "homeboard/internal/platform/errors"
	"homeboard/internal/platform/logger"
	"homeboard/internal/platform/metrics"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultUA         = "homeboard"
	defaultMaxRetries = 2

	// conflictWait is the pause after a 409; some providers return it while
	// a previous request for the same resource is still settling
	conflictWait = 3 * time.Second

	// rateLimitWait applies when a 429 carries no usable Retry-After
	rateLimitWait = 5 * time.Second

	// suppressEvery throttles repeated failure logs per integration
	suppressEvery = 5 * time.Minute
)

// Options configures a Client
type Options struct {
	Integration string // metrics and log label, required
	UserAgent   string
	Timeout     time.Duration
	// MaxRetries bounds retries of retryable statuses; total attempts is
	// MaxRetries+1. Zero takes the default, negative disables retries.
	MaxRetries int

	// HTTP overrides the transport, used by tests and shared pooling
	HTTP *http.Client

	// Headers are set on every request (auth tokens, API keys)
	Headers map[string]string
}

// Client is a retrying JSON HTTP client for one integration
type Client struct {
	http    *http.Client
	opts    Options
	log     logger.Logger
	limiter *rate.Limiter
	now     func() time.Time
	sleep   func(time.Duration)
}

// New creates a Client with sane defaults
func New(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetries
	} else if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	hc := o.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{
		http:    hc,
		opts:    o,
		log:     *logger.Named(o.Integration),
		limiter: rate.NewLimiter(rate.Every(suppressEvery), 1),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// StatusError reports a non-2xx upstream response
type StatusError struct {
	Integration string
	Status      int
	Body        string
}

func (e *StatusError) Error() string {
	return e.Integration + " responded " + strconv.Itoa(e.Status) + ": " + e.Body
}

// HTTPStatus implements the platform error status hint
func (e *StatusError) HTTPStatus() int { return e.Status }

// Do issues the request and applies the retry policy.
// 409 waits a fixed delay, 429 honors Retry-After, anything else non-2xx
// fails immediately with a StatusError. The caller owns the response body.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		r := req.Clone(ctx)
		if r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", c.opts.UserAgent)
		}
		for k, v := range c.opts.Headers {
			if r.Header.Get(k) == "" {
				r.Header.Set(k, v)
			}
		}
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "%s rewind body", c.opts.Integration)
			}
			r.Body = body
		}

		started := c.now()
		resp, err := c.http.Do(r)
		if err != nil {
			c.logThrottled(func() {
				c.log.Warn().Err(err).Str("url", req.URL.String()).Msg("upstream transport error")
			})
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s unreachable", c.opts.Integration)
		}

		metrics.ObserveUpstream(c.opts.Integration, resp.StatusCode, started)

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		wait, retryable := c.waitFor(resp)
		if !retryable || attempts >= c.opts.MaxRetries {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			serr := &StatusError{Integration: c.opts.Integration, Status: resp.StatusCode, Body: string(body)}
			c.logThrottled(func() {
				c.log.Warn().
					Int("status", resp.StatusCode).
					Int("attempts", attempts+1).
					Str("url", req.URL.String()).
					Msg("upstream request failed")
			})
			return nil, serr
		}

		metrics.UpstreamRetries.WithLabelValues(c.opts.Integration, strconv.Itoa(resp.StatusCode)).Inc()
		c.log.Debug().
			Int("status", resp.StatusCode).
			Dur("wait", wait).
			Int("attempt", attempts).
			Msg("upstream retryable status, backing off")
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		c.sleep(wait)
		attempts++
	}
}

// waitFor maps a response to its retry delay
func (c *Client) waitFor(resp *http.Response) (time.Duration, bool) {
	switch resp.StatusCode {
	case http.StatusConflict:
		return conflictWait, true
	case http.StatusTooManyRequests:
		if s := resp.Header.Get("Retry-After"); s != "" {
			if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second, true
			}
		}
		return rateLimitWait, true
	}
	return 0, false
}

// logThrottled runs fn at most once per suppression window
func (c *Client) logThrottled(fn func()) {
	if c.limiter.Allow() {
		fn()
	}
}

// GetJSON fetches url and decodes the response into out
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "%s new request", c.opts.Integration)
	}
	return c.doJSON(ctx, req, out)
}

// PostJSON posts body as JSON to url and decodes the response into out.
// body and out may each be nil.
func (c *Client) PostJSON(ctx context.Context, url string, body, out any) error {
	return c.sendJSON(ctx, http.MethodPost, url, body, out)
}

// PutJSON puts body as JSON to url and decodes the response into out
func (c *Client) PutJSON(ctx context.Context, url string, body, out any) error {
	return c.sendJSON(ctx, http.MethodPut, url, body, out)
}

func (c *Client) sendJSON(ctx context.Context, method, url string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "%s encode body", c.opts.Integration)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "%s new request", c.opts.Integration)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doJSON(ctx, req, out)
}

func (c *Client) doJSON(ctx context.Context, req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "%s decode response", c.opts.Integration)
	}
	return nil
}

// GetBytes fetches url and returns the raw body, for non-JSON payloads
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "%s new request", c.opts.Integration)
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}
