package sanitizer

import (
	"html"
	"strings"
	"unicode"
)

// specialChars mirrors the full special-chars filter used by most web stacks:
// both quote styles are encoded so values are safe in any attribute context.
var specialChars = strings.NewReplacer(
	"&", "&amp;",
	"\"", "&quot;",
	"'", "&#039;",
	"<", "&lt;",
	">", "&gt;",
)

// Trim removes leading and trailing whitespace from the string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// MaxLength handles Unicode properly and prevents buffer overflows from malicious input.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen])
}

// RemoveControlChars prevents injection attacks while preserving common whitespace.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// SingleLine converts multi-line strings to single line by replacing line breaks with spaces.
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\t", " ")
}

// EscapeHTML encodes &, <, >, " and ' as HTML entities.
func EscapeHTML(s string) string {
	return specialChars.Replace(s)
}

// NormalizeHTML decodes any entities first and escapes the result again.
// Applying it to an already normalized string is a no-op, so values that
// travel back and forth through cookies never get double-escaped.
func NormalizeHTML(s string) string {
	return EscapeHTML(html.UnescapeString(s))
}
