package validation

import (
	"html"
	"strings"
)

// Sanitize trims s and HTML-escapes it so stored text is safe to render.
// Existing entities are decoded before escaping, which keeps the function
// idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(html.UnescapeString(s)))
}
