package habr

import "strings"

var sourceEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&#x27;",
)

// EscapeString escapes the characters that can not appear verbatim inside a source block
func EscapeString(s string) string {
	return sourceEscaper.Replace(s)
}
