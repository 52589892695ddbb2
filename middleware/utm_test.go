package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utmcookie/core/utm"
	"github.com/dmitrymomot/utmcookie/middleware"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
}

func TestUTMMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("store is available in handler context", func(t *testing.T) {
		var source string
		h := middleware.UTM(utm.WithClock(fixedClock))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, ok := middleware.GetUTM(r.Context())
			require.True(t, ok, "UTM store should be present in context")
			assert.True(t, store.Initialized())

			var err error
			source, err = store.Get("source")
			require.NoError(t, err)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/landing?utm_source=newsletter", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "newsletter", source)
		assert.Contains(t, w.Header().Values("Set-Cookie"),
			"utm[utm_source]=newsletter; Path=/; Expires=Sat, 24 Oct 2026 12:00:00 GMT; Max-Age=604800")
	})

	t.Run("stored cookie is read without a write", func(t *testing.T) {
		var attr utm.Attribution
		h := middleware.UTM()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, ok := middleware.GetUTM(r.Context())
			require.True(t, ok)

			attr = store.Object()
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "utm[utm_campaign]=spring")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.NotNil(t, attr.Campaign)
		assert.Equal(t, "spring", *attr.Campaign)
		assert.Nil(t, attr.Source)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})

	t.Run("skip bypasses the store", func(t *testing.T) {
		h := middleware.UTMWithConfig(middleware.UTMConfig{
			Skip: func(r *http.Request) bool { return r.URL.Path == "/health" },
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := middleware.GetUTM(r.Context())
			assert.False(t, ok)
		}))

		req := httptest.NewRequest(http.MethodGet, "/health?utm_source=x", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})

	t.Run("sync failure is logged and request continues", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))

		called := false
		h := middleware.UTMWithConfig(middleware.UTMConfig{
			Logger: log,
			Options: []utm.Option{
				utm.WithLifetime(utm.Lifetime{Days: -1}),
				utm.WithClock(fixedClock),
			},
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			store, ok := middleware.GetUTM(r.Context())
			require.True(t, ok)

			assert.Error(t, store.Sync())
			v, err := store.Get("utm_source")
			require.NoError(t, err)
			assert.Empty(t, v, "failed write leaves empty params")
		}))

		req := httptest.NewRequest(http.MethodGet, "/?utm_source=ads", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.True(t, called)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
		assert.Contains(t, buf.String(), "failed to sync utm cookie")
		assert.Contains(t, buf.String(), `"component":"utm"`)
	})

	t.Run("debug log lists resolved parameters", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		h := middleware.UTMWithConfig(middleware.UTMConfig{Logger: log})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "utm[utm_medium]=email")
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, buf.String(), `"utm":{"utm_medium":"email"}`)
	})
}

func TestGetUTMWithoutMiddleware(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	store, ok := middleware.GetUTM(req.Context())
	assert.False(t, ok)
	assert.Nil(t, store)
}
