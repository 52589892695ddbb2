// Command utmdemo serves a landing page that reports the visitor's campaign
// attribution as JSON. Touches are logged to Redis when UTM_RECORD_TOUCHES is set.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dmitrymomot/utmcookie/core/config"
	"github.com/dmitrymomot/utmcookie/core/health"
	"github.com/dmitrymomot/utmcookie/core/logger"
	"github.com/dmitrymomot/utmcookie/core/utm"
	"github.com/dmitrymomot/utmcookie/integration/database/redis"
	"github.com/dmitrymomot/utmcookie/middleware"
)

type appConfig struct {
	Addr           string        `env:"HTTP_ADDR" envDefault:":8080"`
	Env            string        `env:"APP_ENV" envDefault:"development"`
	RecordTouches  bool          `env:"UTM_RECORD_TOUCHES" envDefault:"false"`
	ShutdownPeriod time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := newLogger(cfg.Env)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(env string) *slog.Logger {
	if env == "production" {
		return logger.New(logger.WithProduction("utmdemo"))
	}
	return logger.New(logger.WithDevelopment("utmdemo"))
}

func run(cfg appConfig, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var utmCfg utm.Config
	if err := config.Load(&utmCfg); err != nil {
		return err
	}
	opts := utmCfg.Options()

	mux := http.NewServeMux()
	var checks []func(context.Context) error

	if cfg.RecordTouches {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}

		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		rec := redis.NewTouchRecorderFromConfig(client, redisCfg)
		opts = append(opts, utm.WithRecorder(rec))

		mux.HandleFunc("GET /touches", func(w http.ResponseWriter, r *http.Request) {
			touches, err := rec.Recent(r.Context(), 50)
			if err != nil {
				log.ErrorContext(r.Context(), "failed to read touches", logger.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			writeJSON(w, touches)
		})

		checks = append(checks, redis.Healthcheck(client))
	}

	mux.HandleFunc("GET /health/live", health.Liveness)
	mux.Handle("GET /health/ready", health.Readiness(log, checks...))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		store, ok := middleware.GetUTM(r.Context())
		if !ok {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeJSON(w, store.Object())
	})

	utmMiddleware := middleware.UTMWithConfig(middleware.UTMConfig{
		Options: opts,
		Logger:  log,
		Skip: func(r *http.Request) bool {
			return strings.HasPrefix(r.URL.Path, "/health/")
		},
	})

	handler := middleware.RequestID()(
		middleware.ClientIP()(
			middleware.LoggingWithLogger(log)(
				utmMiddleware(mux),
			),
		),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("addr", cfg.Addr), logger.Cookie(utmCfg.Name))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()
	log.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
