package utm

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/utmcookie/core/cookie"
	"github.com/dmitrymomot/utmcookie/pkg/fingerprint"
)

// DefaultCookieName is the array cookie used when no name is configured.
const DefaultCookieName = "utm"

// DefaultMaxValueLength caps each parameter value, in runes.
const DefaultMaxValueLength = 256

// settings holds the configuration of a Store.
type settings struct {
	name           string
	lifetime       Lifetime
	overwrite      bool
	allowedKeys    []string
	cookie         cookie.Config
	maxValueLength int
	consent        func(r *http.Request) bool
	recorder       Recorder
	fingerprint    []fingerprint.Option
	logger         *slog.Logger
	now            func() time.Time

	// reset is set by options that drop resolved parameters.
	reset bool
}

func defaultSettings() settings {
	return settings{
		name:           DefaultCookieName,
		lifetime:       DefaultLifetime,
		overwrite:      true,
		allowedKeys:    CanonicalKeys(),
		cookie:         cookie.DefaultConfig(),
		maxValueLength: DefaultMaxValueLength,
		logger:         slog.Default(),
		now:            time.Now,
	}
}

// withDefaults fills options left unset, e.g. by the plain setters.
func (s settings) withDefaults() settings {
	if s.name == "" {
		s.name = DefaultCookieName
	}
	if s.allowedKeys == nil {
		s.allowedKeys = CanonicalKeys()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Option configures a Store.
type Option func(*settings)

// WithName sets the array cookie name. Passed to Configure it drops
// resolved parameters, even when the name is unchanged.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
		s.reset = true
	}
}

// WithLifetime sets how long the cookie lives after each write.
func WithLifetime(l Lifetime) Option {
	return func(s *settings) {
		s.lifetime = l
	}
}

// WithOverwrite controls whether a single new UTM parameter in the request
// replaces the whole stored set (true) or only the keys it carries (false).
// Passed to Configure it drops resolved parameters.
func WithOverwrite(overwrite bool) Option {
	return func(s *settings) {
		s.overwrite = overwrite
		s.reset = true
	}
}

// WithAllowedKeys sets the keys that may be written to the cookie.
// A nil slice restores the canonical keys.
func WithAllowedKeys(keys ...string) Option {
	return func(s *settings) {
		s.allowedKeys = slices.Clone(keys)
	}
}

// WithPath sets the cookie path attribute.
func WithPath(path string) Option {
	return func(s *settings) {
		s.cookie.Path = path
	}
}

// WithDomain sets the cookie domain attribute.
func WithDomain(domain string) Option {
	return func(s *settings) {
		s.cookie.Domain = domain
	}
}

// WithSecure sets the cookie secure flag.
func WithSecure(secure bool) Option {
	return func(s *settings) {
		s.cookie.Secure = secure
	}
}

// WithHTTPOnly sets the cookie http-only flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(s *settings) {
		s.cookie.HttpOnly = httpOnly
	}
}

// WithSameSite sets the cookie SameSite attribute.
func WithSameSite(sameSite http.SameSite) Option {
	return func(s *settings) {
		s.cookie.SameSite = sameSite
	}
}

// WithCookieConfig replaces all cookie attributes at once.
func WithCookieConfig(cfg cookie.Config) Option {
	return func(s *settings) {
		s.cookie = cfg
	}
}

// WithMaxValueLength caps parameter values in runes. Zero disables the cap.
func WithMaxValueLength(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.maxValueLength = n
		}
	}
}

// WithConsent installs a check for marketing-cookie consent. When it
// returns false, Sync keeps values in memory only and Save fails with
// ErrConsentRequired.
func WithConsent(fn func(r *http.Request) bool) Option {
	return func(s *settings) {
		s.consent = fn
	}
}

// WithRecorder installs a Recorder that is told about every fresh campaign hit.
func WithRecorder(rec Recorder) Option {
	return func(s *settings) {
		s.recorder = rec
	}
}

// WithFingerprint sets how the visitor key of a Touch is derived.
func WithFingerprint(opts ...fingerprint.Option) Option {
	return func(s *settings) {
		s.fingerprint = slices.Clone(opts)
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}
