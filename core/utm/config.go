package utm

import (
	"github.com/dmitrymomot/utmcookie/core/cookie"
	"github.com/dmitrymomot/utmcookie/pkg/fingerprint"
)

// Config provides environment-based configuration for UTM stores.
// Cookie attributes are read with the UTM_ prefix, e.g. UTM_COOKIE_DOMAIN.
type Config struct {
	Name           string        `env:"UTM_COOKIE_NAME" envDefault:"utm"`
	Lifetime       Lifetime      `env:"UTM_COOKIE_LIFETIME" envDefault:"P7D"`
	Overwrite      bool          `env:"UTM_OVERWRITE" envDefault:"true"`
	AllowedKeys    []string      `env:"UTM_ALLOWED_KEYS" envSeparator:","`
	MaxValueLength int           `env:"UTM_MAX_VALUE_LENGTH" envDefault:"256"`
	RequireConsent bool          `env:"UTM_REQUIRE_CONSENT" envDefault:"false"`
	FingerprintIP  bool          `env:"UTM_FINGERPRINT_IP" envDefault:"false"`
	Cookie         cookie.Config `envPrefix:"UTM_"`
}

// DefaultConfig returns the configuration matching the package defaults.
func DefaultConfig() Config {
	return Config{
		Name:           DefaultCookieName,
		Lifetime:       DefaultLifetime,
		Overwrite:      true,
		AllowedKeys:    CanonicalKeys(),
		MaxValueLength: DefaultMaxValueLength,
		Cookie:         cookie.DefaultConfig(),
	}
}

// Options converts the config into store options.
// Overwrite, MaxValueLength and Cookie are always applied; an empty Name,
// a zero Lifetime and an empty AllowedKeys keep the defaults. RequireConsent
// gates writes on the consent cookie described by Cookie.
func (c Config) Options() []Option {
	opts := []Option{
		WithOverwrite(c.Overwrite),
		WithMaxValueLength(c.MaxValueLength),
		WithCookieConfig(c.Cookie),
	}
	if c.Name != "" {
		opts = append(opts, WithName(c.Name))
	}
	if !c.Lifetime.IsZero() {
		opts = append(opts, WithLifetime(c.Lifetime))
	}
	if len(c.AllowedKeys) > 0 {
		opts = append(opts, WithAllowedKeys(c.AllowedKeys...))
	}
	if c.RequireConsent {
		opts = append(opts, WithConsent(cookie.NewFromConfig(c.Cookie).HasConsent))
	}
	if c.FingerprintIP {
		opts = append(opts, WithFingerprint(fingerprint.WithIP()))
	}
	return opts
}
