package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/els0r/netproto/pkg/api"
	"github.com/els0r/netproto/pkg/version"
	"github.com/els0r/telemetry/logging"
	"github.com/els0r/telemetry/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"
)

const (
	maxMultipartMemory = 1 << 20 // 1 MiB

	headerTimeout = 30 * time.Second
)

// Option denotes a functional option for a default server instance
type Option func(*DefaultServer)

// DefaultServer is the default API server, allowing middlewares and settings to be
// re-used by every API served by netproto
type DefaultServer struct {
	debug bool

	// telemetry
	profiling              bool
	metrics                bool
	tracing                bool
	requestDurationBuckets []float64
	collectors             []prometheus.Collector

	serviceName string
	backend     string
	addr        api.Address

	// global rate limiting for lookups
	rateLimiter *rate.Limiter

	readiness api.ReadinessCheck

	srv    *http.Server
	router *gin.Engine
	api    huma.API
}

// WithDebugMode runs the gin server in debug mode (e.g. not setting the release mode)
func WithDebugMode(enabled bool) Option {
	return func(server *DefaultServer) {
		server.debug = enabled
	}
}

// WithProfiling enables runtime profiling endpoints
func WithProfiling(enabled bool) Option {
	return func(server *DefaultServer) {
		server.profiling = enabled
	}
}

// WithMetrics enables prometheus metrics endpoints. The request duration can be provided if they should differ
// from the default duration buckets
func WithMetrics(enabled bool, requestDurationBuckets ...float64) Option {
	return func(server *DefaultServer) {
		server.metrics = enabled
		server.requestDurationBuckets = requestDurationBuckets
	}
}

// WithMetricsCollectors exposes additional collectors on the metrics endpoint
func WithMetricsCollectors(collectors ...prometheus.Collector) Option {
	return func(server *DefaultServer) {
		server.collectors = append(server.collectors, collectors...)
	}
}

// WithTracing enables trace propagation
func WithTracing(enabled bool) Option {
	return func(server *DefaultServer) {
		server.tracing = enabled
	}
}

// WithRateLimit enables a global rate limit of r requests per second with burst b
func WithRateLimit(r rate.Limit, b int) Option {
	return func(server *DefaultServer) {
		if r > 0. {
			server.rateLimiter = rate.NewLimiter(r, b)
		}
	}
}

// WithBackend sets the name of the directory backend reported by the info endpoint
func WithBackend(backend string) Option {
	return func(server *DefaultServer) {
		server.backend = backend
	}
}

// WithReadinessCheck sets the check consulted by the ready endpoint
func WithReadinessCheck(check api.ReadinessCheck) Option {
	return func(server *DefaultServer) {
		server.readiness = check
	}
}

// NewDefault creates a new API server listening on addr, which may be a host:port or a
// unix socket in the form unix:/path/to/socket
func NewDefault(serviceName, addr string, opts ...Option) *DefaultServer {
	s := &DefaultServer{
		addr: api.ParseAddress(addr),
		// prometheus naming convention
		serviceName: strings.ToLower(serviceName),
	}
	for _, opt := range opts {
		opt(s)
	}

	// must happen before gin.New()
	if !s.debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s.router = gin.New()
	s.router.MaxMultipartMemory = maxMultipartMemory

	s.router.Use(gin.Recovery())
	s.router.Use(cors.Default())

	s.api = humagin.New(s.router, huma.DefaultConfig(serviceName, version.Short()))
	s.srv = &http.Server{
		Handler:           s.router.Handler(),
		ReadHeaderTimeout: headerTimeout,
	}

	// info routes are registered before the middlewares so they are exempt from logging
	s.registerInfoRoutes()
	s.registerMiddlewares()

	return s
}

// API returns the huma API server which is used to register and document endpoints
func (server *DefaultServer) API() huma.API {
	return server.api
}

// Router returns the underlying gin engine
func (server *DefaultServer) Router() *gin.Engine {
	return server.router
}

// Addr returns the address the server listens on
func (server *DefaultServer) Addr() api.Address {
	return server.addr
}

// WriteOpenAPISpec writes the full OpenAPI spec to the writer w
func (server *DefaultServer) WriteOpenAPISpec(w io.Writer) error {
	b, err := server.api.OpenAPI().DowngradeYAML()
	if err != nil {
		return fmt.Errorf("failed to generate OpenAPI spec: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// RateLimiter returns the global rate limiter, if enabled (if not it returns nil and false)
func (server *DefaultServer) RateLimiter() (*rate.Limiter, bool) {
	return server.rateLimiter, server.rateLimiter != nil
}

// Middlewares returns the huma middlewares every lookup operation should carry
func (server *DefaultServer) Middlewares() huma.Middlewares {
	var mw huma.Middlewares
	if limiter, enabled := server.RateLimiter(); enabled {
		mw = append(mw, api.RateLimitMiddleware(server.api, limiter))
	}
	return mw
}

func (server *DefaultServer) registerInfoRoutes() {
	huma.Register(server.api, api.GetHealthOperation(), api.GetHealthHandler())
	huma.Register(server.api, api.GetInfoOperation(), api.GetServiceInfoHandler(api.NewServiceInfo(server.serviceName, server.backend)))
	huma.Register(server.api, api.GetReadyOperation(), api.GetReadyHandler(server.readiness))
}

func (server *DefaultServer) registerMiddlewares() {
	var middlewares []gin.HandlerFunc
	if server.tracing {
		middlewares = append(middlewares,
			otelgin.Middleware(server.serviceName, otelgin.WithFilter(
				func(req *http.Request) bool {
					switch req.URL.Path {
					case api.InfoRoute, api.HealthRoute, api.ReadyRoute:
						return false
					}
					return true
				},
			)),
		)
	}

	middlewares = append(middlewares,
		api.TraceIDMiddleware(),
		api.RequestLoggingMiddleware(),
		api.RecursionDetectorMiddleware(api.RuntimeIDHeaderKey, api.RuntimeID()),
	)
	server.router.Use(middlewares...)

	if server.metrics {
		buckets := prometheus.DefBuckets
		if len(server.requestDurationBuckets) > 0 {
			buckets = server.requestDurationBuckets
		}
		metrics.NewPrometheus(server.serviceName, "api", nil, server.collectors...).
			WithRequestDurationBuckets(buckets).
			Register(server.router)
	}
	if server.profiling {
		api.RegisterProfiling(server.router)
	}
}

// Serve starts the API server. It blocks until the server is shut down, in which case
// nil is returned
func (server *DefaultServer) Serve() error {
	listener, err := server.addr.Listen()
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", server.addr, err)
	}
	logging.Logger().With("addr", server.addr.String()).Info("serving API")

	err = server.srv.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown shuts down the API server
func (server *DefaultServer) Shutdown(ctx context.Context) error {
	return server.srv.Shutdown(ctx)
}
