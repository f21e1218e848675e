package analysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases text and removes every rune that is not a letter,
// number, underscore or whitespace.
//
// Text is composed to NFC first so precomposed and decomposed umlauts
// normalise identically, and again at the end so the result is stable.
// Normalize is total and idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	composed := norm.NFC.String(text)
	lowered := cases.Lower(language.Und).String(composed)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}

	return norm.NFC.String(b.String())
}

func keepRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r)
}
