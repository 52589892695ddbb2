package cookie

import "net/http"

// Config provides environment-based configuration for cookie manager.
type Config struct {
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN" envDefault:""`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"false"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"0"`
	MaxSize  int           `env:"COOKIE_MAX_SIZE" envDefault:"4096"`

	// Consent settings
	ConsentCookieName string `env:"COOKIE_CONSENT_NAME" envDefault:"__cookie_consent"`
	ConsentVersion    string `env:"COOKIE_CONSENT_VERSION" envDefault:"1.0"`
	ConsentMaxAge     int    `env:"COOKIE_CONSENT_MAX_AGE" envDefault:"31536000"` // 1 year
}

// DefaultConfig returns the attributes used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Path:              "/",
		MaxSize:           MaxCookieSize,
		ConsentCookieName: defaultConsentCookie,
		ConsentVersion:    defaultConsentVersion,
		ConsentMaxAge:     defaultConsentMaxAge,
	}
}

// Options converts the config into cookie options.
// Zero values are skipped so they do not override manager defaults.
func (c Config) Options() []Option {
	opts := make([]Option, 0, 5)
	if c.Path != "" {
		opts = append(opts, WithPath(c.Path))
	}
	if c.Domain != "" {
		opts = append(opts, WithDomain(c.Domain))
	}
	if c.Secure {
		opts = append(opts, WithSecure(true))
	}
	if c.HttpOnly {
		opts = append(opts, WithHTTPOnly(true))
	}
	if c.SameSite != 0 {
		opts = append(opts, WithSameSite(c.SameSite))
	}
	return opts
}

// NewFromConfig creates a Manager from configuration.
// User-provided options are applied after the config and win.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	m := New(append(cfg.Options(), opts...)...)
	if cfg.MaxSize > 0 {
		m.maxSize = cfg.MaxSize
	}
	return m.Configure(
		WithConsentCookie(cfg.ConsentCookieName),
		WithConsentVersion(cfg.ConsentVersion),
		WithConsentMaxAge(cfg.ConsentMaxAge),
	)
}
