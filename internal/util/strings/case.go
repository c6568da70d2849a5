// Package strings holds the naming helpers shared by scaffolding and
// document generation. Entity and field names are snake_case on the wire.
package strings

import (
	"strings"
	"unicode"
)

// ToSnakeCase normalizes a name to snake_case. Runs of uppercase are
// treated as acronyms: "HTTPRequest" becomes "http_request", and
// already-snake_case input passes through unchanged.
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(strings.TrimSpace(s))

	for i, r := range runes {
		switch {
		case r == ' ' || r == '-':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				boundary := unicode.IsLower(prev) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && prev != '_')
				if boundary && prev != '_' && prev != ' ' && prev != '-' {
					b.WriteRune('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
