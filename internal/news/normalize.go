package news

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"‘", "'", // left single quotation mark
	"ʼ", "'", // modifier letter apostrophe
	"´", "'", // acute accent used as apostrophe
	"`", "'",
)

// Normalize canonicalizes raw text for keyword matching: lowercase,
// plain apostrophes, accents stripped via NFD decomposition, every
// character that is not a letter, digit, apostrophe or '%' replaced by a
// space, whitespace collapsed. Pure and idempotent; both sides of every
// keyword comparison go through it.
func Normalize(text string) string {
	lowered := apostrophes.Replace(strings.ToLower(text))
	decomposed := norm.NFD.String(lowered)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from decomposition
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '%' || r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// ContainsAny reports whether normalized text contains at least one of
// the given normalized terms.
func ContainsAny(normalized string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}
