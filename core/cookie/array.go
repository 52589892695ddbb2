package cookie

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SubName builds the name[key] cookie name for an array entry.
func SubName(name, key string) (string, error) {
	if !validNamePart(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !validNamePart(key) {
		return "", fmt.Errorf("%w: key %q", ErrInvalidName, key)
	}
	return name + "[" + key + "]", nil
}

// ReadArray collects name[key]=value pairs from the request's Cookie headers.
//
// A scalar cookie called name, nested keys (name[a][b]), empty keys and
// values that fail URL decoding are ignored. When the same key is sent
// twice, the first one wins. The result is never nil.
func ReadArray(r *http.Request, name string) map[string]string {
	result := make(map[string]string)
	if r == nil || name == "" {
		return result
	}

	prefix := name + "["
	for _, line := range r.Header.Values("Cookie") {
		for _, part := range strings.Split(line, ";") {
			part = strings.TrimSpace(part)
			rawName, rawValue, ok := strings.Cut(part, "=")
			if !ok {
				continue
			}

			key, ok := arrayKey(strings.TrimSpace(rawName), prefix)
			if !ok {
				continue
			}
			if _, seen := result[key]; seen {
				continue
			}

			value, err := url.QueryUnescape(unquote(strings.TrimSpace(rawValue)))
			if err != nil {
				continue
			}
			result[key] = value
		}
	}

	return result
}

// arrayKey extracts key from "prefix key]".
func arrayKey(cookieName, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(cookieName, prefix)
	if !ok {
		return "", false
	}
	key, ok := strings.CutSuffix(rest, "]")
	if !ok || key == "" || strings.ContainsAny(key, "[]") {
		return "", false
	}
	return key, true
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

// validNamePart reports whether s can be used as a cookie name or array key.
func validNamePart(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c >= 0x7f {
			return false
		}
		switch c {
		case '=', ';', ',', '"', '\\', '[', ']':
			return false
		}
	}
	return true
}
