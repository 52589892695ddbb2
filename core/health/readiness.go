package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/utmcookie/core/logger"
)

// Readiness verifies all service dependencies are functioning.
// It answers "READY" if every check passes and 503 Service Unavailable on the
// first failure, which is logged.
//
//	mux.Handle("GET /health/ready", health.Readiness(log, redis.Healthcheck(client)))
func Readiness(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "Readiness check failed",
					logger.Component("health"),
					logger.Error(err),
				)
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("READY"))
	}
}
