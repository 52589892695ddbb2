package fingerprint_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/utmcookie/pkg/fingerprint"
)

func browserRequest(remote string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = remote
	r.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Firefox/131.0")
	r.Header.Set("Accept-Language", "en-US,en;q=0.5")
	r.Header.Set("Accept", "text/html")
	return r
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("stable across requests", func(t *testing.T) {
		a := fingerprint.Generate(browserRequest("192.0.2.1:1000"))
		b := fingerprint.Generate(browserRequest("192.0.2.1:2000"))
		assert.Equal(t, a, b)
		assert.True(t, fingerprint.Valid(a))
		assert.Len(t, a, 35)
	})

	t.Run("ip ignored by default", func(t *testing.T) {
		a := fingerprint.Generate(browserRequest("192.0.2.1:1000"))
		b := fingerprint.Generate(browserRequest("198.51.100.9:1000"))
		assert.Equal(t, a, b)
	})

	t.Run("ip included on request", func(t *testing.T) {
		a := fingerprint.Generate(browserRequest("192.0.2.1:1000"), fingerprint.WithIP())
		b := fingerprint.Generate(browserRequest("198.51.100.9:1000"), fingerprint.WithIP())
		assert.NotEqual(t, a, b)
	})

	t.Run("user agent changes the key", func(t *testing.T) {
		r := browserRequest("192.0.2.1:1000")
		a := fingerprint.Generate(r)
		r.Header.Set("User-Agent", "curl/8.0")
		assert.NotEqual(t, a, fingerprint.Generate(r))
	})

	t.Run("accept headers can be excluded", func(t *testing.T) {
		r := browserRequest("192.0.2.1:1000")
		a := fingerprint.Generate(r, fingerprint.WithoutAcceptHeaders())
		r.Header.Set("Accept-Language", "de-DE")
		assert.Equal(t, a, fingerprint.Generate(r, fingerprint.WithoutAcceptHeaders()))
	})
}

func TestValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"generated", fingerprint.Generate(browserRequest("192.0.2.1:1")), true},
		{"no prefix", "0123456789abcdef0123456789abcdef", false},
		{"short", "v1:abcd", false},
		{"not hex", "v1:zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fingerprint.Valid(tt.in))
		})
	}
}
