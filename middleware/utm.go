package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/utmcookie/core/logger"
	"github.com/dmitrymomot/utmcookie/core/utm"
)

// utmContextKey is used as a key for storing the UTM store in request context.
type utmContextKey struct{}

// UTMConfig configures the UTM middleware.
type UTMConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Options are applied to every per-request store
	Options []utm.Option
	// Logger receives sync failures (default: slog.Default())
	Logger *slog.Logger
}

// UTM creates a UTM middleware with the given store options.
// Every request gets its own utm.Store, synced before the next handler runs.
func UTM(opts ...utm.Option) func(http.Handler) http.Handler {
	return UTMWithConfig(UTMConfig{Options: opts})
}

// UTMWithConfig creates a UTM middleware with custom configuration.
// A failed cookie write is logged and the request continues; the store then
// reports empty parameters through GetUTM.
func UTMWithConfig(cfg UTMConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	opts := make([]utm.Option, 0, len(cfg.Options)+1)
	opts = append(opts, utm.WithLogger(cfg.Logger))
	opts = append(opts, cfg.Options...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			store := utm.New(w, r, opts...)
			if err := store.Sync(); err != nil {
				cfg.Logger.ErrorContext(r.Context(), "failed to sync utm cookie",
					logger.Component("utm"),
					logger.Cookie(store.Name()),
					logger.Path(r.URL.Path),
					logger.Error(err),
				)
			} else if cfg.Logger.Enabled(r.Context(), slog.LevelDebug) {
				p := store.Params()
				cfg.Logger.DebugContext(r.Context(), "utm parameters resolved",
					logger.Component("utm"),
					logger.UTM(p.Keys(), p.Map()),
				)
			}

			ctx := context.WithValue(r.Context(), utmContextKey{}, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUTM retrieves the UTM store from the request context.
// Returns the store and a boolean indicating whether it was found.
func GetUTM(ctx context.Context) (*utm.Store, bool) {
	store, ok := ctx.Value(utmContextKey{}).(*utm.Store)
	return store, ok
}
