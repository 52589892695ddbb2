// Package fingerprint derives an anonymous device key from request headers.
//
// The key hashes the User-Agent, the Accept headers and the set of stable
// browser headers present on the request. The client IP is left out unless
// WithIP is given. Keys look like "v1:<32 hex chars>" and carry no raw header
// data, so they can be stored next to attribution touches.
//
//	key := fingerprint.Generate(r)
//	if fingerprint.Valid(key) {
//		// ...
//	}
package fingerprint
