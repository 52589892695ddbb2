// Package cookie reads and writes "array cookies": sets of cookies named
// name[key] that together carry a small key-indexed mapping, the layout PHP
// and many analytics snippets use for values such as utm[utm_source].
//
// net/http only accepts RFC 6265 token names, which excludes brackets, so the
// package parses the raw Cookie header itself and renders Set-Cookie lines
// with the standard attribute formatting.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/utmcookie/core/cookie"
//
//	m := cookie.New(cookie.WithSecure(true))
//
//	// Set-Cookie: utm[utm_source]=google; Path=/; Max-Age=604800; Secure
//	err := m.SetArray(w, "utm", "utm_source", "google", cookie.WithMaxAge(604800))
//
//	// map[utm_source:google]
//	values := m.GetArray(r, "utm")
//
//	// Expire a single entry
//	err = m.DeleteArray(w, "utm", "utm_source")
//
// Values are URL-encoded on write and decoded on read. Entries that cannot be
// decoded are skipped rather than reported.
//
// # Configuration
//
// Config maps environment variables onto default attributes:
//
//	var cfg cookie.Config
//	config.MustLoad(&cfg) // COOKIE_PATH, COOKIE_DOMAIN, COOKIE_SECURE, ...
//	m := cookie.NewFromConfig(cfg)
//
// # Consent
//
// The manager stores the visitor's cookie consent decision in its own cookie
// (COOKIE_CONSENT_NAME, "__cookie_consent" by default) as base64url JSON with
// a version. Bumping COOKIE_CONSENT_VERSION turns every stored decision back
// into ConsentUnknown.
//
//	err := m.StoreConsent(w, cookie.ConsentAll)
//	if m.HasConsent(r) {
//		// marketing cookies allowed
//	}
//
// HasConsent has the func(*http.Request) bool shape expected by utm.WithConsent.
//
// # Size Limits
//
// Each Set-Cookie line is checked against the configured maximum (4KB by default):
//
//	if e, ok := err.(cookie.ErrCookieTooLarge); ok {
//		log.Printf("%s is %d bytes, limit %d", e.Name, e.Size, e.Max)
//	}
package cookie
