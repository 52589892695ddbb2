package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/utmcookie/pkg/clientip"
)

const (
	prefix = "v1:"
	// hashLen is the number of hash bytes kept before hex encoding.
	hashLen = 16
)

// stableHeaders are the headers whose presence, not value, is hashed.
var stableHeaders = []string{
	"accept", "accept-encoding", "accept-language", "cache-control",
	"connection", "sec-fetch-dest", "sec-fetch-mode", "sec-fetch-site",
	"upgrade-insecure-requests", "user-agent",
}

type options struct {
	ip     bool
	accept bool
}

// Option configures Generate.
type Option func(*options)

// WithIP mixes the client IP into the fingerprint. Mobile networks and VPNs
// change it often, so visitors split into several fingerprints.
func WithIP() Option {
	return func(o *options) { o.ip = true }
}

// WithoutAcceptHeaders leaves Accept, Accept-Language and Accept-Encoding out.
func WithoutAcceptHeaders() Option {
	return func(o *options) { o.accept = false }
}

// Generate returns an anonymous device key for r in the form "v1:<hex>".
// The same browser yields the same key across requests, which lets
// attribution touches of one visitor be grouped without storing identifiers.
func Generate(r *http.Request, opts ...Option) string {
	o := options{accept: true}
	for _, opt := range opts {
		opt(&o)
	}

	parts := []string{r.UserAgent()}
	if o.accept {
		parts = append(parts,
			r.Header.Get("Accept-Language"),
			r.Header.Get("Accept-Encoding"),
			r.Header.Get("Accept"),
		)
	}
	if o.ip {
		parts = append(parts, clientip.GetIP(r))
	}
	parts = append(parts, headerSet(r))

	// Empty parts are dropped so a missing header hashes like a disabled one.
	parts = slices.DeleteFunc(parts, func(s string) bool { return s == "" })
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return prefix + hex.EncodeToString(sum[:hashLen])
}

// Valid reports whether s has the shape produced by Generate.
func Valid(s string) bool {
	hash, ok := strings.CutPrefix(s, prefix)
	if !ok || len(hash) != hashLen*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}

func headerSet(r *http.Request) string {
	names := make([]string, 0, len(stableHeaders))
	for name := range r.Header {
		name = strings.ToLower(name)
		if slices.Contains(stableHeaders, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return strings.Join(names, ",")
}
