// Package clientip extracts the real client address from an HTTP request.
//
// Proxy headers are checked in priority order, and the first one holding a
// valid address wins:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry, the original client)
//  4. X-Real-IP (nginx and other proxies)
//  5. RemoteAddr (direct connection)
//
// Addresses are parsed with net.ParseIP and normalized with net.IP.String, so
// IPv6 and IPv4-mapped forms come back in canonical shape. The unspecified
// address 0.0.0.0 is rejected. When nothing parses, GetIP returns the raw
// RemoteAddr and never panics.
//
//	touch.ClientIP = clientip.GetIP(r)
//
// Headers are trusted as sent; deploy behind a proxy that overwrites them.
package clientip
