package clientip

import (
	"net"
	"net/http"
	"strings"
)

// headers are checked in order; the first valid address wins.
var headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client address of r. Proxy headers are preferred over
// RemoteAddr. When nothing parses, the raw RemoteAddr is returned.
func GetIP(r *http.Request) string {
	for _, h := range headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		if h == "X-Forwarded-For" {
			// "client, proxy1, proxy2": the leftmost entry is the client.
			v, _, _ = strings.Cut(v, ",")
		}
		if ip := normalize(v); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
