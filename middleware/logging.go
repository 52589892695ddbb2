package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/utmcookie/core/logger"
	"github.com/dmitrymomot/utmcookie/pkg/clientip"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Logger is the structured logger to use (default: slog.Default())
	Logger *slog.Logger
	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level
	// SlowRequestThreshold marks requests slower than this as warnings (default: 5s)
	SlowRequestThreshold time.Duration
	// Component name added to every record (default: "http")
	Component string
}

// Logging creates a request logging middleware that writes to slog.Default().
func Logging() func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{})
}

// LoggingWithLogger creates a request logging middleware with a custom logger.
func LoggingWithLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom configuration.
// One record is written per request after the handler returns. Server errors are
// logged at error level, client errors and slow requests at warn level.
func LoggingWithConfig(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			requestID, _ := GetRequestID(r.Context())
			ip, ok := GetClientIP(r.Context())
			if !ok {
				ip = clientip.GetIP(r)
			}

			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Event("request"),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(wrapped.statusCode),
				logger.Duration(duration),
				logger.RequestID(requestID),
				logger.ClientIP(ip),
			}

			level := cfg.LogLevel
			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				level = slog.LevelError
			case wrapped.statusCode >= http.StatusBadRequest:
				level = slog.LevelWarn
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(r.Context(), level, "HTTP request completed", attrs...)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	headerWritten bool
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.headerWritten {
		rw.statusCode = statusCode
		rw.headerWritten = true
	}
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
