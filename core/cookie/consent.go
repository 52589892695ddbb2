package cookie

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

const (
	// defaultConsentCookie is the default name for consent storage.
	defaultConsentCookie = "__cookie_consent"
	// defaultConsentVersion is the default consent version.
	defaultConsentVersion = "1.0"
	// defaultConsentMaxAge is the default consent duration (1 year).
	defaultConsentMaxAge = 365 * 24 * 60 * 60
)

// ConsentStatus represents the user's cookie consent state.
type ConsentStatus int

const (
	// ConsentUnknown indicates no consent decision has been made.
	ConsentUnknown ConsentStatus = iota
	// ConsentEssentialOnly allows only essential cookies.
	ConsentEssentialOnly
	// ConsentAll allows all cookies including analytics and marketing.
	ConsentAll
)

// ConsentData stores user's consent preferences with metadata.
type ConsentData struct {
	Status    ConsentStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
}

// WithConsentCookie sets the name of the consent cookie.
func WithConsentCookie(name string) ManagerOption {
	return func(m *Manager) {
		if name != "" {
			m.consentCookie = name
		}
	}
}

// WithConsentVersion sets the consent version. Stored decisions with another
// version read as ConsentUnknown, so bumping it asks every visitor again.
func WithConsentVersion(version string) ManagerOption {
	return func(m *Manager) {
		if version != "" {
			m.consentVersion = version
		}
	}
}

// WithConsentMaxAge sets how long consent is valid in seconds.
func WithConsentMaxAge(seconds int) ManagerOption {
	return func(m *Manager) {
		if seconds > 0 {
			m.consentMaxAge = seconds
		}
	}
}

// GetConsent retrieves the current consent status from cookies.
// A missing or outdated cookie is ConsentUnknown without an error.
func (m *Manager) GetConsent(r *http.Request) (ConsentData, error) {
	c, err := r.Cookie(m.consentCookie)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return ConsentData{Status: ConsentUnknown}, nil
		}
		return ConsentData{Status: ConsentUnknown}, err
	}

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return ConsentData{Status: ConsentUnknown}, errors.Join(ErrInvalidConsent, err)
	}

	var consent ConsentData
	if err := json.Unmarshal(raw, &consent); err != nil {
		return ConsentData{Status: ConsentUnknown}, errors.Join(ErrInvalidConsent, err)
	}

	if consent.Version != m.consentVersion {
		return ConsentData{Status: ConsentUnknown}, nil
	}

	return consent, nil
}

// StoreConsent saves the user's consent decision. The consent cookie itself
// is essential and is written regardless of the current decision.
func (m *Manager) StoreConsent(w http.ResponseWriter, status ConsentStatus) error {
	data, err := json.Marshal(ConsentData{
		Status:    status,
		Timestamp: m.now().UTC(),
		Version:   m.consentVersion,
	})
	if err != nil {
		return err
	}

	options := m.defaults
	options.MaxAge = m.consentMaxAge
	options.Expires = time.Time{}
	return m.writePlain(w, m.consentCookie, base64.RawURLEncoding.EncodeToString(data), options)
}

// ClearConsent removes the consent cookie.
func (m *Manager) ClearConsent(w http.ResponseWriter) error {
	options := m.defaults
	options.MaxAge = -1
	options.Expires = time.Unix(0, 0)
	return m.writePlain(w, m.consentCookie, "", options)
}

// HasConsent reports whether non-essential cookies are allowed. Unreadable
// consent cookies count as no consent.
func (m *Manager) HasConsent(r *http.Request) bool {
	consent, err := m.GetConsent(r)
	if err != nil {
		return false
	}
	return consent.Status == ConsentAll
}

func (m *Manager) writePlain(w http.ResponseWriter, name, value string, options Options) error {
	if !validNamePart(name) {
		return ErrInvalidName
	}

	line := formatSetCookie(name, value, options)
	if len(line) > m.maxSize {
		return ErrCookieTooLarge{Name: name, Size: len(line), Max: m.maxSize}
	}

	w.Header().Add("Set-Cookie", line)
	return nil
}
