// Package slug turns arbitrary text into filesystem- and URL-safe tokens.
//
// A slug is lower-case ASCII: accents are stripped by Unicode decomposition,
// apostrophes are dropped, and every run of characters outside [a-z0-9]
// collapses into a single separator. Leading and trailing separators are
// trimmed, so "Timepoint (s)" becomes "timepoint-s" and
// "teed.set_yscale('log')" becomes "teed-set-yscale-log".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the alphanumeric runs of a slug.
const Separator = "-"

// Make returns the slug of s.
func Make(s string) string {
	return MakeSep(s, Separator)
}

// MakeSep returns the slug of s using sep between alphanumeric runs.
func MakeSep(s, sep string) string {
	s = fold(s)

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteString(sep)
			}
			pending = false
			b.WriteRune(r)
		case r == '\'' || r == '’':
			// apostrophes join words: "don't" -> "dont"
		default:
			pending = true
		}
	}
	return b.String()
}

// fold lower-cases s and removes combining marks left over after
// compatibility decomposition ("Ü" -> "u", "ﬁ" -> "fi").
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
