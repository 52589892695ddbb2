package utm

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/utmcookie/core/cookie"
	"github.com/dmitrymomot/utmcookie/core/logger"
	"github.com/dmitrymomot/utmcookie/core/sanitizer"
	"github.com/dmitrymomot/utmcookie/pkg/clientip"
	"github.com/dmitrymomot/utmcookie/pkg/fingerprint"
)

// Store holds the UTM parameters of one request: the values stored in the
// array cookie merged with the values in the query string.
//
// Parameters are resolved lazily on first read (or an explicit Sync) and
// kept until the cookie name or overwrite policy changes. A Store belongs to
// a single request and is not safe for concurrent use.
type Store struct {
	w        http.ResponseWriter
	r        *http.Request
	settings settings
	params   *Params
	err      error
}

// New creates a Store for the request. w receives the Set-Cookie headers
// and may be nil for read-only use.
func New(w http.ResponseWriter, r *http.Request, opts ...Option) *Store {
	s := &Store{
		w:        w,
		r:        r,
		settings: defaultSettings(),
	}
	for _, opt := range opts {
		opt(&s.settings)
	}
	s.settings.reset = false
	return s
}

// Configure applies options. WithName and WithOverwrite drop already
// resolved parameters, whether or not they change the value.
func (s *Store) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(&s.settings)
	}
	if s.settings.reset {
		s.settings.reset = false
		s.invalidate()
	}
}

// SetName sets the cookie name and drops resolved parameters.
func (s *Store) SetName(name string) {
	s.settings.name = name
	s.invalidate()
}

// SetOverwrite sets the overwrite policy and drops resolved parameters.
func (s *Store) SetOverwrite(overwrite bool) {
	s.settings.overwrite = overwrite
	s.invalidate()
}

func (s *Store) invalidate() {
	s.params = nil
	s.err = nil
}

// SetLifetime sets the cookie lifetime used by later writes.
func (s *Store) SetLifetime(l Lifetime) {
	s.settings.lifetime = l
}

// SetAllowedKeys sets the keys that may be written to the cookie.
func (s *Store) SetAllowedKeys(keys ...string) {
	s.settings.allowedKeys = slices.Clone(keys)
}

// SetPath sets the cookie path.
func (s *Store) SetPath(path string) {
	s.settings.cookie.Path = path
}

// SetDomain sets the cookie domain.
func (s *Store) SetDomain(domain string) {
	s.settings.cookie.Domain = domain
}

// SetSecure sets the cookie secure flag.
func (s *Store) SetSecure(secure bool) {
	s.settings.cookie.Secure = secure
}

// SetHTTPOnly sets the cookie http-only flag.
func (s *Store) SetHTTPOnly(httpOnly bool) {
	s.settings.cookie.HttpOnly = httpOnly
}

// Name returns the configured cookie name.
func (s *Store) Name() string {
	return s.settings.withDefaults().name
}

// Initialized reports whether parameters are resolved.
func (s *Store) Initialized() bool {
	return s.params != nil
}

// Init is an alias for Sync.
func (s *Store) Init() error {
	return s.Sync()
}

// Sync resolves the parameters once. Later calls are no-ops until the
// cookie name or overwrite policy changes.
//
// Any canonical UTM key in the query string counts as a campaign hit and
// rewrites the cookie. With overwrite enabled a hit replaces every stored
// value; otherwise it only replaces the keys it carries. Without a hit the
// stored values are used as they are and nothing is written. A Store built
// without a response writer merges in memory and never writes.
//
// If the cookie cannot be written, the parameters fall back to the empty
// canonical set and every later Sync returns the same error until the store
// is invalidated. Reads never report it.
func (s *Store) Sync() error {
	if s.params != nil {
		return s.err
	}

	s.settings = s.settings.withDefaults()

	defaults := nullParams(canonicalKeys)
	stored := s.readCookie()
	incoming := s.readQuery()

	var merged Params
	if s.settings.overwrite && incoming.Len() > 0 {
		merged = mergeParams(defaults, incoming)
	} else {
		merged = mergeParams(defaults, stored, incoming)
	}

	if incoming.Len() == 0 || s.w == nil {
		s.params = &merged
		return nil
	}

	if !s.consented() {
		s.settings.logger.Debug("utm cookie not written: no consent",
			logger.Component("utm"),
			logger.Cookie(s.settings.name),
		)
		s.params = &merged
		return nil
	}

	if err := s.save(merged); err != nil {
		s.params = &defaults
		s.err = err
		return err
	}

	s.record(merged)
	return nil
}

// resolve syncs for readers. Persistence errors stay with Sync.
func (s *Store) resolve() {
	_ = s.Sync()
}

// Params returns all parameters.
func (s *Store) Params() Params {
	s.resolve()
	return s.params.Clone()
}

// Lookup returns a single value. Short names such as "source" are accepted
// for canonical keys. ok is false when the key holds no value; unknown keys
// fail with ErrUnknownKey.
func (s *Store) Lookup(key string) (value string, ok bool, err error) {
	s.resolve()

	key = ExpandKey(key)
	if !s.params.Has(key) {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	value, ok = s.params.Lookup(key)
	return value, ok, nil
}

// Get is Lookup without the presence flag.
func (s *Store) Get(key string) (string, error) {
	v, _, err := s.Lookup(key)
	return v, err
}

// Object returns all parameters as an Attribution.
func (s *Store) Object() Attribution {
	return NewAttribution(s.Params())
}

// Save writes values as the new parameter set. Only allowed keys are written
// to the cookie, but the in-memory set becomes exactly values. Empty values
// expire their cookie.
//
// Nothing is written and the current parameters are kept when the lifetime
// is invalid, consent is missing or a cookie cannot be encoded.
func (s *Store) Save(values map[string]string) error {
	s.settings = s.settings.withDefaults()

	if !s.consented() {
		return ErrConsentRequired
	}
	return s.save(NewParams(values, canonicalKeys...))
}

func (s *Store) save(p Params) error {
	if s.w == nil {
		return ErrNoResponseWriter
	}

	now := s.settings.now()
	expires, err := s.settings.lifetime.Expiry(now)
	if err != nil {
		return err
	}

	entries := make([]cookie.Entry, 0, p.Len())
	for _, k := range p.keys {
		if !slices.Contains(s.settings.allowedKeys, k) {
			continue
		}
		v, ok := p.Lookup(k)
		entries = append(entries, cookie.Entry{
			Key:    k,
			Value:  v,
			Delete: !ok || v == "",
		})
	}

	m := cookie.NewFromConfig(s.settings.cookie)
	err = m.WriteArray(s.w, s.settings.name, entries,
		cookie.WithExpires(expires),
		cookie.WithMaxAge(maxAge(expires.Sub(now))),
	)
	if err != nil {
		return errors.Join(ErrSaveFailed, err)
	}

	saved := p.Clone()
	s.params = &saved
	s.err = nil
	return nil
}

func (s *Store) readCookie() Params {
	if s.r == nil {
		return Params{}
	}

	raw := cookie.ReadArray(s.r, s.settings.name)
	for k, v := range raw {
		raw[k] = sanitizer.UTMValue(v, s.settings.maxValueLength)
	}
	return NewParams(raw, canonicalKeys...)
}

// readQuery picks the canonical keys from the query string. A key that is
// present with an empty value still counts.
func (s *Store) readQuery() Params {
	var p Params
	if s.r == nil || s.r.URL == nil {
		return p
	}

	q := s.r.URL.Query()
	for _, k := range canonicalKeys {
		if q.Has(k) {
			p.Set(k, sanitizer.UTMValue(q.Get(k), s.settings.maxValueLength))
		}
	}
	return p
}

func (s *Store) consented() bool {
	if s.settings.consent == nil || s.r == nil {
		return true
	}
	return s.settings.consent(s.r)
}

func (s *Store) record(p Params) {
	if s.settings.recorder == nil || s.r == nil {
		return
	}

	t := Touch{
		ID:        uuid.New(),
		Cookie:    s.settings.name,
		Params:    p.Map(),
		URL:       s.r.URL.String(),
		Referrer:  s.r.Referer(),
		ClientIP:  clientip.GetIP(s.r),
		UserAgent: s.r.UserAgent(),
		Visitor:   fingerprint.Generate(s.r, s.settings.fingerprint...),
		At:        s.settings.now().UTC(),
	}

	if err := s.settings.recorder.Record(s.r.Context(), t); err != nil {
		s.settings.logger.WarnContext(s.r.Context(), "failed to record utm touch",
			logger.Component("utm"),
			logger.TouchID(t.ID.String()),
			logger.Error(err),
		)
	}
}

func maxAge(d time.Duration) int {
	secs := int(d / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
