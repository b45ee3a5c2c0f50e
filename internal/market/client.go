// Package market talks to the trading market API.
package market

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/osse101/RelicWatch_Go/internal/metrics"
)

// Doer sends an HTTP request
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client limits the number of in-flight market requests and retries throttled ones.
//
// Every call holds one permit for its whole duration, including throttle retries.
// A 429 response is drained and the request is sent again after a delay that
// starts at DefaultInitialBackoff and doubles up to MaxBackoff. There is no retry
// limit; only cancellation of the request context ends the loop early.
type Client struct {
	http           Doer
	permits        *semaphore.Weighted
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithBackoff overrides the throttle backoff bounds
func WithBackoff(initial, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.initialBackoff = initial
		c.maxBackoff = maxDelay
	}
}

// WithHTTPClient replaces the underlying transport client
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.http = d
	}
}

// NewClient creates a client allowing permits concurrent requests
func NewClient(permits int64, opts ...Option) *Client {
	if permits <= 0 {
		permits = DefaultPermits
	}
	c := &Client{
		http:           &http.Client{Timeout: DefaultRequestTimeout},
		permits:        semaphore.NewWeighted(permits),
		initialBackoff: DefaultInitialBackoff,
		maxBackoff:     MaxBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends req, waiting for a permit first. Non-2xx responses other than 429
// are returned as a *NetworkError and their body is closed.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	url := req.URL.String()
	endpoint := endpointOf(req.URL.Path)

	if err := c.permits.Acquire(ctx, 1); err != nil {
		return nil, &NetworkError{Kind: MiddlewareFailed, URL: url, Err: err}
	}
	metrics.MarketPermitsInUse.Inc()
	defer func() {
		metrics.MarketPermitsInUse.Dec()
		c.permits.Release(1)
	}()

	start := time.Now()
	defer func() {
		metrics.MarketRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	backoff := c.initialBackoff
	for attempt := 1; ; attempt++ {
		attemptReq, err := replay(req, attempt)
		if err != nil {
			return nil, &NetworkError{Kind: MiddlewareFailed, URL: url, Err: err}
		}

		resp, err := c.http.Do(attemptReq)
		if err != nil {
			metrics.MarketRequestsTotal.WithLabelValues(endpoint, metrics.ResultError).Inc()
			slog.Debug(LogMsgRequestFailed, "url", url, "error", err)
			return nil, &NetworkError{Kind: TransportFailed, URL: url, Err: err}
		}
		metrics.MarketRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode != http.StatusTooManyRequests {
			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				drain(resp)
				return nil, &NetworkError{Kind: TransportFailed, URL: url, Status: resp.StatusCode, Err: ErrUnexpectedStatus}
			}
			return resp, nil
		}

		drain(resp)
		metrics.MarketThrottledTotal.WithLabelValues(endpoint).Inc()
		slog.Debug(LogMsgThrottled, "url", url, "attempt", attempt, "backoff", backoff)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &NetworkError{Kind: TransportFailed, URL: url, Status: http.StatusTooManyRequests, Err: ctx.Err()}
		case <-timer.C:
		}

		backoff = time.Duration(float64(backoff) * BackoffMultiplier)
		if backoff > c.maxBackoff {
			backoff = c.maxBackoff
		}
	}
}

// replay returns the request to send for the given attempt. The first attempt
// uses req as is; later attempts need a fresh body.
func replay(req *http.Request, attempt int) (*http.Request, error) {
	if attempt == 1 || req.Body == nil || req.Body == http.NoBody {
		return req, nil
	}
	if req.GetBody == nil {
		return nil, ErrBodyNotReplayable
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone := req.Clone(req.Context())
	clone.Body = body
	return clone, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func endpointOf(path string) string {
	switch {
	case strings.HasSuffix(path, "/orders"):
		return EndpointOrders
	case strings.TrimSuffix(path, "/") == PathItems:
		return EndpointItems
	default:
		return EndpointItem
	}
}
