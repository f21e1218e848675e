package lexicon

import (
	"unicode"
	"unicode/utf8"
)

// Tokenize splits text into words on Unicode word boundaries.
// Tokens keep their original form.
func Tokenize(text string) []string {
	var tokens []string
	i := 0

	for i < len(text) {
		// Skip non-word characters.
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isWordRune(r) {
			i += size
			continue
		}

		// Collect word characters.
		start := i
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if !isWordRune(r) {
				break
			}
			i += size
		}
		tokens = append(tokens, text[start:i])
	}

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) || r == '_'
}
