// Package sanitizer provides string filters for untrusted request input.
//
// The filters are small, composable functions. They never fail: malformed input
// is normalized instead of rejected.
//
// # String Filters
//
//	import "github.com/dmitrymomot/utmcookie/core/sanitizer"
//
//	clean := sanitizer.RemoveControlChars(input)
//	short := sanitizer.MaxLength(input, 64)
//	line := sanitizer.SingleLine("first\nsecond") // "first second"
//
// # HTML Escaping
//
// EscapeHTML encodes the five HTML special characters, including both quote
// styles. NormalizeHTML decodes before escaping, which makes it idempotent:
//
//	sanitizer.EscapeHTML(`<b>"hi"</b>`)   // &lt;b&gt;&quot;hi&quot;&lt;/b&gt;
//	sanitizer.NormalizeHTML("a &amp; b")  // a &amp; b (not a &amp;amp; b)
//
// # Campaign Values
//
// UTMValue combines the filters above for campaign parameters read from query
// strings and cookies:
//
//	v := sanitizer.UTMValue(r.URL.Query().Get("utm_source"), 256)
package sanitizer
