package utm

import "errors"

var (
	// ErrUnknownKey is returned when looking up a key that is not part of the parameter set.
	ErrUnknownKey = errors.New("unrecognized UTM key")
	// ErrInvalidLifetime is returned when the configured lifetime cannot produce a future expiry.
	ErrInvalidLifetime = errors.New("invalid UTM cookie lifetime")
	// ErrSaveFailed is returned when the parameter cookies could not be written.
	ErrSaveFailed = errors.New("failed to save UTM cookie")
	// ErrConsentRequired is returned by Save when the consent check rejects marketing cookies.
	ErrConsentRequired = errors.New("user consent required for UTM cookies")
	// ErrNoResponseWriter is returned when saving on a store built without a response writer.
	ErrNoResponseWriter = errors.New("UTM store has no response writer")
)
