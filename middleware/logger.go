// Package middleware provides net/http middleware around the apierrors
// formatter: structured request logging, panic recovery with uniform 500
// payloads, and bearer-token authentication that fails through the
// formatter.
package middleware

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const logContextKey contextKey = "apierrors-middleware-logger"

// RequestIDHeader is the header used to propagate request IDs. A missing
// header gets a generated UUID.
var RequestIDHeader = "X-Request-Id"

// NewLogger returns the logger used by the logging middleware. Replace it
// to plug in a custom logger.
var NewLogger func() (*zap.Logger, error) = NewDefaultLogger

// NewDefaultLogger returns a new low-level `*zap.Logger` instance. If the
// current terminal is a TTY, it will try to use colored output
// automatically.
func NewDefaultLogger() (*zap.Logger, error) {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = iso8601UTCTimeEncoder
		return config.Build()
	}

	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = iso8601UTCTimeEncoder
	return config.Build()
}

// A UTC variation of ZapCore.ISO8601TimeEncoder with millisecond precision.
func iso8601UTCTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// Logger tags each request with an ID, sets a contextual sugared logger in
// the request context and logs request info once the handler has run.
// Client errors log at warn, server errors at error, everything else at
// debug.
func Logger(next http.Handler) http.Handler {
	l, err := NewLogger()
	if err != nil {
		panic(err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		contextLog := l.With(
			zap.String("http.request_id", requestID),
			zap.String("http.method", r.Method),
			zap.String("http.url", r.URL.String()),
			zap.String("network.client.ip", r.RemoteAddr),
		)

		r = r.WithContext(context.WithValue(r.Context(), logContextKey, contextLog.Sugar()))
		nw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(nw, r)

		contextLog = contextLog.With(
			zap.Int("http.status_code", nw.status),
			zap.Duration("duration", time.Since(start)),
		)

		switch {
		case nw.status >= 500:
			contextLog.Error("Request")
		case nw.status >= 400:
			contextLog.Warn("Request")
		default:
			contextLog.Debug("Request")
		}
	})
}

// GetLogger returns the contextual logger for the current request, or nil
// when the logging middleware is not installed.
func GetLogger(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(logContextKey).(*zap.SugaredLogger); ok {
		return l
	}
	return nil
}
