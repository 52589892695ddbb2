package sanitizer

import "html"

// UTMValue cleans a single campaign parameter taken from a query string or
// a cookie. Entities are decoded first, so the cap counts decoded runes and
// an already cleaned value comes out unchanged. Control characters and line
// breaks are dropped, the result is capped at maxLen runes (0 disables the
// cap) and HTML specials are escaped.
//
// Empty input stays empty: a present but empty parameter is still a value.
func UTMValue(s string, maxLen int) string {
	if s == "" {
		return s
	}

	s = RemoveControlChars(SingleLine(html.UnescapeString(s)))
	if maxLen > 0 {
		s = MaxLength(s, maxLen)
	}

	return EscapeHTML(s)
}
