// Package client provides the HTTP client shared by all netproto API clients
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/els0r/netproto/pkg/api"
	"github.com/els0r/netproto/pkg/version"
	"github.com/els0r/telemetry/logging"
	"github.com/fako1024/httpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// DefaultClient handles transport, retries, timeouts and authentication for requests
// against a netproto API
type DefaultClient struct {
	client  *http.Client
	timeout time.Duration

	retry          bool
	retryIntervals httpc.Intervals

	addr api.Address
	key  string

	name    string
	headers map[string]string

	requestLogging bool
}

// Option configures a DefaultClient
type Option func(*DefaultClient)

// WithRequestLogging logs every request sent by the client
func WithRequestLogging(b bool) Option {
	return func(c *DefaultClient) {
		c.requestLogging = b
	}
}

// WithRequestTimeout sets the timeout of a single request
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *DefaultClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRetry enables or disables retries of failed requests
func WithRetry(enabled bool, intervals ...time.Duration) Option {
	return func(c *DefaultClient) {
		c.retry = enabled
		if len(intervals) > 0 {
			c.retryIntervals = intervals
		}
	}
}

// WithAPIKey authenticates requests with key
func WithAPIKey(key string) Option {
	return func(c *DefaultClient) {
		if key != "" {
			c.key = key
		}
	}
}

// WithName sets the user agent of the client
func WithName(name string) Option {
	return func(c *DefaultClient) {
		if name != "" {
			c.name = fmt.Sprintf("%s/%s", name, version.Short())
		}
	}
}

// WithHeader adds a header to every request
func WithHeader(key, value string) Option {
	return func(c *DefaultClient) {
		c.headers[key] = value
	}
}

const (
	defaultRequestTimeout = 30 * time.Second
	defaultClientName     = "netproto-client"
)

// NewDefault creates a new default client for the API served at addr. Unix sockets
// are addressed as unix:/path/to/socket
func NewDefault(addr string, opts ...Option) *DefaultClient {
	c := &DefaultClient{
		addr:    api.ParseAddress(addr),
		timeout: defaultRequestTimeout,
		name:    defaultClientName,
		retry:   true,
		retryIntervals: httpc.Intervals{
			// retry three times before giving up
			1 * time.Second, 2 * time.Second, 4 * time.Second,
		},
		headers: map[string]string{
			api.RuntimeIDHeaderKey: api.RuntimeID(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	base := http.DefaultTransport.(*http.Transport)
	c.client = &http.Client{
		Transport: &transport{
			rt:             otelhttp.NewTransport(c.addr.Transport(base)),
			requestLogging: c.requestLogging,
			clientName:     c.name,
			headers:        c.headers,
		},
	}
	return c
}

// Client returns the underlying HTTP client
func (c *DefaultClient) Client() *http.Client {
	return c.client
}

// Addr returns the address of the API
func (c *DefaultClient) Addr() api.Address {
	return c.addr
}

type transport struct {
	rt             http.RoundTripper
	requestLogging bool
	clientName     string
	headers        map[string]string
}

func (t *transport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	r.Header.Set("User-Agent", t.clientName)
	for k, v := range t.headers {
		r.Header.Set(k, v)
	}

	resp, err := t.rt.RoundTrip(r)
	duration := time.Since(start)

	if !t.requestLogging {
		return resp, err
	}

	logger := logging.FromContext(r.Context()).With("req", slog.GroupValue(
		slog.String("method", r.Method),
		slog.String("url", r.URL.String()),
		slog.String("user_agent", r.UserAgent()),
		slog.Duration("duration", duration),
	))
	if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
		logger = logger.With(slog.String("traceID", sc.TraceID().String()))
	}

	switch {
	case err != nil:
		logger.With("error", err).Error("failed to send request")
	case resp == nil:
		logger.Error("empty response")
	default:
		logger = logger.With("resp", slog.GroupValue(slog.Int("status_code", resp.StatusCode)))
		switch {
		case resp.StatusCode < 400:
			logger.Info("completed request")
		case resp.StatusCode < 500:
			logger.Warn("request rejected")
		default:
			logger.Error("server error returned")
		}
	}
	return resp, err
}

// Modify applies the retry, timeout and authentication settings of the client to req
func (c *DefaultClient) Modify(_ context.Context, req *httpc.Request) *httpc.Request {
	if c.retry {
		req = req.RetryBackOff(c.retryIntervals).
			RetryBackOffErrFn(func(resp *http.Response, _ error) bool {
				if resp == nil {
					return true
				}
				switch resp.StatusCode {
				case http.StatusBadGateway, http.StatusInternalServerError,
					http.StatusServiceUnavailable, http.StatusTooManyRequests:
					return true
				}
				return false
			})
	}
	if c.timeout > 0 {
		req = req.Timeout(c.timeout)
	}
	if c.key != "" {
		req = req.AuthToken("digest", c.key)
	}
	return req
}

// NewURL returns the URL of path on the API
func (c *DefaultClient) NewURL(path string) string {
	return c.addr.URL(path)
}
