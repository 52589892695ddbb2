package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utmcookie/core/cookie"
)

func TestManager_SetArray(t *testing.T) {
	t.Parallel()

	t.Run("default attributes", func(t *testing.T) {
		m := cookie.New()
		w := httptest.NewRecorder()

		require.NoError(t, m.SetArray(w, "utm", "utm_source", "google"))

		lines := w.Header().Values("Set-Cookie")
		require.Len(t, lines, 1)
		assert.Equal(t, "utm[utm_source]=google; Path=/", lines[0])
	})

	t.Run("all attributes", func(t *testing.T) {
		m := cookie.New(
			cookie.WithDomain("example.com"),
			cookie.WithSecure(true),
			cookie.WithHTTPOnly(true),
			cookie.WithSameSite(http.SameSiteLaxMode),
		)
		w := httptest.NewRecorder()
		expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

		err := m.SetArray(w, "utm", "utm_medium", "cpc",
			cookie.WithExpires(expires),
			cookie.WithMaxAge(3600),
		)
		require.NoError(t, err)

		assert.Equal(t,
			"utm[utm_medium]=cpc; Path=/; Domain=example.com; Expires=Wed, 02 Jan 2030 03:04:05 GMT; Max-Age=3600; HttpOnly; Secure; SameSite=Lax",
			w.Header().Get("Set-Cookie"),
		)
	})

	t.Run("values are url encoded", func(t *testing.T) {
		m := cookie.New()
		w := httptest.NewRecorder()

		require.NoError(t, m.SetArray(w, "utm", "utm_campaign", "spring sale; 50%"))
		assert.True(t, strings.HasPrefix(w.Header().Get("Set-Cookie"), "utm[utm_campaign]=spring+sale%3B+50%25;"))
	})

	t.Run("per call options override defaults", func(t *testing.T) {
		m := cookie.New(cookie.WithPath("/shop"))
		w := httptest.NewRecorder()

		require.NoError(t, m.SetArray(w, "utm", "utm_term", "x", cookie.WithPath("/")))
		assert.Equal(t, "utm[utm_term]=x; Path=/", w.Header().Get("Set-Cookie"))
		assert.Equal(t, "/shop", m.Defaults().Path)
	})

	t.Run("invalid names", func(t *testing.T) {
		m := cookie.New()
		w := httptest.NewRecorder()

		assert.ErrorIs(t, m.SetArray(w, "", "utm_source", "x"), cookie.ErrInvalidName)
		assert.ErrorIs(t, m.SetArray(w, "utm", "", "x"), cookie.ErrInvalidName)
		assert.ErrorIs(t, m.SetArray(w, "u tm", "utm_source", "x"), cookie.ErrInvalidName)
		assert.ErrorIs(t, m.SetArray(w, "utm", "a]b", "x"), cookie.ErrInvalidName)
		assert.ErrorIs(t, m.SetArray(w, "utm", "a=b", "x"), cookie.ErrInvalidName)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})

	t.Run("too large", func(t *testing.T) {
		m := cookie.NewFromConfig(cookie.Config{Path: "/", MaxSize: 64})
		w := httptest.NewRecorder()

		err := m.SetArray(w, "utm", "utm_content", strings.Repeat("x", 100))
		var tooLarge cookie.ErrCookieTooLarge
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, "utm[utm_content]", tooLarge.Name)
		assert.Equal(t, 64, tooLarge.Max)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})
}

func TestManager_DeleteArray(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithDomain("example.com"))
	w := httptest.NewRecorder()

	require.NoError(t, m.DeleteArray(w, "utm", "utm_source"))
	assert.Equal(t,
		"utm[utm_source]=; Path=/; Domain=example.com; Expires=Thu, 01 Jan 1970 00:00:00 GMT; Max-Age=0",
		w.Header().Get("Set-Cookie"),
	)
}

func TestReadArray(t *testing.T) {
	t.Parallel()

	newRequest := func(cookies ...string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range cookies {
			r.Header.Add("Cookie", c)
		}
		return r
	}

	tests := []struct {
		name    string
		cookies []string
		want    map[string]string
	}{
		{
			name:    "no cookies",
			cookies: nil,
			want:    map[string]string{},
		},
		{
			name:    "array entries",
			cookies: []string{"utm[utm_source]=google; utm[utm_medium]=cpc; session=abc"},
			want:    map[string]string{"utm_source": "google", "utm_medium": "cpc"},
		},
		{
			name:    "multiple cookie headers",
			cookies: []string{"utm[utm_source]=google", "utm[utm_term]=shoes"},
			want:    map[string]string{"utm_source": "google", "utm_term": "shoes"},
		},
		{
			name:    "url decoded and quoted values",
			cookies: []string{`utm[utm_campaign]=spring+sale%21; utm[utm_content]="banner"`},
			want:    map[string]string{"utm_campaign": "spring sale!", "utm_content": "banner"},
		},
		{
			name:    "scalar cookie with same name is ignored",
			cookies: []string{"utm=google"},
			want:    map[string]string{},
		},
		{
			name:    "nested and empty keys are ignored",
			cookies: []string{"utm[a][b]=x; utm[]=y; utm[ok]=z"},
			want:    map[string]string{"ok": "z"},
		},
		{
			name:    "other arrays are ignored",
			cookies: []string{"utmx[utm_source]=x; my_utm[utm_source]=y"},
			want:    map[string]string{},
		},
		{
			name:    "undecodable value skipped",
			cookies: []string{"utm[utm_source]=%zz; utm[utm_medium]=cpc"},
			want:    map[string]string{"utm_medium": "cpc"},
		},
		{
			name:    "first occurrence wins",
			cookies: []string{"utm[utm_source]=first; utm[utm_source]=second"},
			want:    map[string]string{"utm_source": "first"},
		},
		{
			name:    "empty value is kept",
			cookies: []string{"utm[utm_term]="},
			want:    map[string]string{"utm_term": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cookie.ReadArray(newRequest(tt.cookies...), "utm"))
		})
	}

	t.Run("nil request", func(t *testing.T) {
		assert.NotNil(t, cookie.ReadArray(nil, "utm"))
	})
}

func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	w := httptest.NewRecorder()

	require.NoError(t, m.SetArray(w, "utm", "utm_source", "news & letters"))
	require.NoError(t, m.SetArray(w, "utm", "utm_medium", "email"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, line := range w.Header().Values("Set-Cookie") {
		pair, _, _ := strings.Cut(line, ";")
		r.Header.Add("Cookie", pair)
	}

	assert.Equal(t, map[string]string{
		"utm_source": "news & letters",
		"utm_medium": "email",
	}, m.GetArray(r, "utm"))

	v, err := m.Get(r, "utm", "utm_medium")
	require.NoError(t, err)
	assert.Equal(t, "email", v)

	_, err = m.Get(r, "utm", "utm_term")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestSubName(t *testing.T) {
	t.Parallel()

	name, err := cookie.SubName("utm", "utm_source")
	require.NoError(t, err)
	assert.Equal(t, "utm[utm_source]", name)

	_, err = cookie.SubName("utm", "bad key")
	assert.ErrorIs(t, err, cookie.ErrInvalidName)
}

func TestConfig(t *testing.T) {
	t.Parallel()

	t.Run("default config", func(t *testing.T) {
		cfg := cookie.DefaultConfig()
		assert.Equal(t, "/", cfg.Path)
		assert.Equal(t, cookie.MaxCookieSize, cfg.MaxSize)
		assert.False(t, cfg.HttpOnly)
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		m := cookie.NewFromConfig(cookie.Config{})
		assert.Equal(t, cookie.Options{Path: "/"}, m.Defaults())
	})

	t.Run("config attributes", func(t *testing.T) {
		m := cookie.NewFromConfig(cookie.Config{
			Path:     "/app",
			Domain:   "example.com",
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		}, cookie.WithSecure(false))

		d := m.Defaults()
		assert.Equal(t, "/app", d.Path)
		assert.Equal(t, "example.com", d.Domain)
		assert.False(t, d.Secure, "explicit options override config")
		assert.True(t, d.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, d.SameSite)
	})
}

func TestManager_WriteArray(t *testing.T) {
	t.Parallel()

	t.Run("sets and deletes in order", func(t *testing.T) {
		m := cookie.New()
		w := httptest.NewRecorder()

		err := m.WriteArray(w, "utm", []cookie.Entry{
			{Key: "utm_source", Value: "google"},
			{Key: "utm_medium", Delete: true},
		}, cookie.WithMaxAge(60))
		require.NoError(t, err)

		assert.Equal(t, []string{
			"utm[utm_source]=google; Path=/; Max-Age=60",
			"utm[utm_medium]=; Path=/; Expires=Thu, 01 Jan 1970 00:00:00 GMT; Max-Age=0",
		}, w.Header().Values("Set-Cookie"))
	})

	t.Run("nothing written when one entry fails", func(t *testing.T) {
		m := cookie.NewFromConfig(cookie.Config{MaxSize: 80})
		w := httptest.NewRecorder()

		err := m.WriteArray(w, "utm", []cookie.Entry{
			{Key: "utm_source", Value: "google"},
			{Key: "utm_content", Value: strings.Repeat("x", 200)},
		})
		var tooLarge cookie.ErrCookieTooLarge
		require.ErrorAs(t, err, &tooLarge)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})

	t.Run("invalid key", func(t *testing.T) {
		m := cookie.New()
		w := httptest.NewRecorder()

		err := m.WriteArray(w, "utm", []cookie.Entry{{Key: "bad key", Value: "x"}})
		assert.ErrorIs(t, err, cookie.ErrInvalidName)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})
}
