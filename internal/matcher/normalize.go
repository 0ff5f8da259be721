package matcher

import (
	"strings"
	"unicode"
)

// Normalize lowercases s, drops everything except letters, digits, spaces and
// hyphens, collapses whitespace runs to a single space and trims the result.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}

// tokens splits a normalized string on spaces and hyphens into a set.
func tokens(normalized string) map[string]struct{} {
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == '-'
	})

	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
