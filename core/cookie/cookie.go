package cookie

import (
	"net/http"
	"net/url"
	"time"
)

// MaxCookieSize is the maximum size for a cookie (4KB).
const MaxCookieSize = 4096

// Manager writes and reads array cookies: groups of cookies named
// name[key] that together represent one key-indexed mapping.
type Manager struct {
	defaults Options
	maxSize  int
	// Consent management fields
	consentCookie  string
	consentVersion string
	consentMaxAge  int
	now            func() time.Time
}

// New creates a cookie manager. Defaults are Path "/" with every flag off;
// opts override them.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path: "/",
	}

	return &Manager{
		defaults:       applyOptions(defaults, opts),
		maxSize:        MaxCookieSize,
		consentCookie:  defaultConsentCookie,
		consentVersion: defaultConsentVersion,
		consentMaxAge:  defaultConsentMaxAge,
		now:            time.Now,
	}
}

// ManagerOption configures manager-level behavior such as consent storage.
type ManagerOption func(*Manager)

// Configure applies manager options and returns m.
//
//	m := cookie.New(cookie.WithSecure(true)).Configure(
//		cookie.WithConsentCookie("gdpr_consent"),
//		cookie.WithConsentVersion("2"),
//	)
func (m *Manager) Configure(opts ...ManagerOption) *Manager {
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Defaults returns a copy of the manager's default cookie attributes.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// SetArray writes the name[key] cookie. The value is URL-encoded.
func (m *Manager) SetArray(w http.ResponseWriter, name, key, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)
	return m.write(w, name, key, url.QueryEscape(value), options)
}

// DeleteArray expires the name[key] cookie in the browser.
func (m *Manager) DeleteArray(w http.ResponseWriter, name, key string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)
	options.MaxAge = -1
	options.Expires = time.Unix(0, 0)
	return m.write(w, name, key, "", options)
}

// GetArray returns the name[key] mapping sent with the request.
// The result is never nil; see ReadArray for parsing rules.
func (m *Manager) GetArray(r *http.Request, name string) map[string]string {
	return ReadArray(r, name)
}

// Get returns a single array entry.
func (m *Manager) Get(r *http.Request, name, key string) (string, error) {
	v, ok := ReadArray(r, name)[key]
	if !ok {
		return "", ErrCookieNotFound
	}
	return v, nil
}

// Entry is a single array cookie entry for WriteArray.
type Entry struct {
	Key   string
	Value string
	// Delete expires the entry instead of setting Value.
	Delete bool
}

// WriteArray writes several entries of the same array cookie. Every
// Set-Cookie line is rendered and checked first; if any entry fails,
// nothing is written.
func (m *Manager) WriteArray(w http.ResponseWriter, name string, entries []Entry, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Delete {
			del := options
			del.MaxAge = -1
			del.Expires = time.Unix(0, 0)
			line, err := m.render(name, e.Key, "", del)
			if err != nil {
				return err
			}
			lines = append(lines, line)
			continue
		}

		line, err := m.render(name, e.Key, url.QueryEscape(e.Value), options)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	for _, line := range lines {
		w.Header().Add("Set-Cookie", line)
	}
	return nil
}

func (m *Manager) write(w http.ResponseWriter, name, key, encoded string, options Options) error {
	line, err := m.render(name, key, encoded, options)
	if err != nil {
		return err
	}

	w.Header().Add("Set-Cookie", line)
	return nil
}

func (m *Manager) render(name, key, encoded string, options Options) (string, error) {
	fullName, err := SubName(name, key)
	if err != nil {
		return "", err
	}

	line := formatSetCookie(fullName, encoded, options)
	if len(line) > m.maxSize {
		return "", ErrCookieTooLarge{
			Name: fullName,
			Size: len(line),
			Max:  m.maxSize,
		}
	}
	return line, nil
}

// formatSetCookie renders a Set-Cookie line. net/http refuses names with
// brackets, so attributes are rendered with a placeholder name and the real
// name is put in front afterwards.
func formatSetCookie(name, value string, o Options) string {
	c := &http.Cookie{
		Name:     "_",
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		Expires:  o.Expires,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
	return name + c.String()[1:]
}
