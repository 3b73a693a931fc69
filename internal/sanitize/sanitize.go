// Package sanitize normalizes client-supplied text before it is logged,
// forwarded upstream, or echoed back.
//
// This is defense-in-depth normalization, not a security boundary: it
// strips the common HTML/script metacharacters and bounds length, nothing
// more. Contexts with stricter requirements (SQL, shell, HTML rendering)
// must apply their own escaping.
package sanitize

import (
	"strings"
	"unicode/utf8"
)

// DefaultMax is the length cap, in characters, applied when no
// field-specific override is given.
const DefaultMax = 500

// Field-specific length caps.
const (
	MaxProductID = 120
	MaxName      = 100
	MaxEmail     = 100
	MaxMessage   = 1000
	MaxNote      = 60 // Square caps payment notes at 60 characters
)

const stripped = `<>"'`

// Clean trims surrounding whitespace, removes HTML/script metacharacters
// and truncates to DefaultMax characters. Applying Clean twice yields the
// same result as applying it once.
func Clean(s string) string {
	return CleanMax(s, DefaultMax)
}

// CleanMax is Clean with an explicit character cap. The cap counts runes,
// not bytes, so multi-byte input is not shortchanged.
func CleanMax(s string, max int) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripped, r) {
			return -1
		}
		return r
	}, s)
	if max > 0 && utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max])
	}
	return strings.TrimSpace(s)
}
