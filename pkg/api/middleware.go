package api

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/els0r/telemetry/logging"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	traceIDKey                  = "traceID"
	contentTypeHeaderKey        = "Content-Type"
	contentTypeHeaderValRFC9457 = "application/problem+json"
	retryAfterHeaderKey         = "Retry-After"
)

// ErrRecursionDetected is returned to requests that originate from the serving process itself
var ErrRecursionDetected = errors.New("lookup recursion detected, the remote backend points back to this server")

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// TraceIDMiddleware attaches the trace ID of the request (if any) to the logger carried
// by the request context
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		sc := trace.SpanContextFromContext(ctx)
		if sc.HasTraceID() {
			ctx = logging.WithFields(ctx, slog.String(traceIDKey, sc.TraceID().String()))
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

const requestMsg = "handled request"

// RequestLoggingMiddleware logs every request passing through the handler chain. Client
// errors are logged as warnings, server errors as errors
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := logging.FromContext(c.Request.Context())

		start := time.Now()
		blw := &bodyLogWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()
		duration := time.Since(start)

		statusCode := c.Writer.Status()

		// size is -1 if nothing was written
		size := max(c.Writer.Size(), 0)

		logger = logger.With("req", slog.GroupValue(
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.RequestURI),
			slog.String("user-agent", c.Request.UserAgent()),
			slog.Duration("duration", duration),
		)).With("resp", slog.GroupValue(
			slog.Int("status_code", statusCode),
			slog.Int("size", size),
		))

		// RFC9457 problem details carry the error message in the body
		if strings.EqualFold(c.Writer.Header().Get(contentTypeHeaderKey), contentTypeHeaderValRFC9457) {
			logger = logger.With("error", blw.body.String())
		}

		switch {
		case statusCode < 400:
			logger.Info(requestMsg)
		case statusCode < 500:
			logger.Warn(requestMsg)
		default:
			logger.Error(requestMsg)
		}
	}
}

// RateLimitMiddleware rejects requests with 429 once the limiter runs out of tokens. The
// Retry-After header tells the client when the next token becomes available
func RateLimitMiddleware(api huma.API, limiter *rate.Limiter) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		res := limiter.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			ctx.SetHeader(retryAfterHeaderKey, strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded, retry later")
			return
		}
		next(ctx)
	}
}

// RecursionDetectorMiddleware aborts requests carrying this process' own runtime ID in
// headerKey. This happens if a server is configured with a remote backend pointing to itself
func RecursionDetectorMiddleware(headerKey, runtimeID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Header.Get(headerKey) == runtimeID {
			_ = c.AbortWithError(http.StatusLoopDetected, ErrRecursionDetected)
			logging.FromContext(c.Request.Context()).With("header", headerKey).Error(ErrRecursionDetected.Error())
			return
		}
		c.Next()
	}
}

// RegisterProfiling registers the pprof endpoints on router
func RegisterProfiling(router *gin.Engine) {
	pprof.Register(router)
}
