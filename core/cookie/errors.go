package cookie

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName indicates a cookie name or array key contains characters
	// that cannot appear in a Set-Cookie header.
	ErrInvalidName = errors.New("invalid cookie name")

	// ErrCookieNotFound indicates the requested cookie doesn't exist in the request.
	ErrCookieNotFound = errors.New("cookie not found in request")

	// ErrInvalidConsent indicates the consent cookie could not be decoded.
	ErrInvalidConsent = errors.New("invalid consent cookie")
)

// ErrCookieTooLarge indicates the cookie exceeds the maximum allowed size.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

// Error implements the error interface.
func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}
