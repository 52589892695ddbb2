package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/utmcookie/pkg/clientip"
)

// clientIPContextKey is used as a key for storing client IP in request context.
type clientIPContextKey struct{}

// ClientIPConfig configures the client IP extraction middleware.
type ClientIPConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// HeaderName specifies the response header name for the client IP (default: "X-Client-IP")
	HeaderName string
	// StoreInHeader determines whether to include the IP in response headers
	StoreInHeader bool
}

// ClientIP creates a client IP extraction middleware with default configuration.
// The extracted IP is stored in the request context.
func ClientIP() func(http.Handler) http.Handler {
	return ClientIPWithConfig(ClientIPConfig{})
}

// ClientIPWithConfig creates a client IP extraction middleware with custom configuration.
// It resolves the real client IP from proxy headers and stores it in context,
// optionally echoing it in a response header.
func ClientIPWithConfig(cfg ClientIPConfig) func(http.Handler) http.Handler {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Client-IP"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientip.GetIP(r)
			if cfg.StoreInHeader && ip != "" {
				w.Header().Set(cfg.HeaderName, ip)
			}

			ctx := context.WithValue(r.Context(), clientIPContextKey{}, ip)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientIP retrieves the client IP from the request context.
// Returns the IP and a boolean indicating whether it was found.
func GetClientIP(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}
