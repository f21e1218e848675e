package domain

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a short language tag such as "de", "en" or "id".
type Language string

// Default translation languages.
const (
	DefaultSourceLanguage Language = "de"
	DefaultTargetLanguage Language = "id"
)

// DefaultLanguages returns the language tags offered for translation.
func DefaultLanguages() []Language {
	return []Language{"de", "id", "en"}
}

// ParseLanguage normalises a language tag.
func ParseLanguage(s string) (Language, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if tag == "" {
		return "", ErrUnsupportedLanguage
	}
	return Language(tag), nil
}

// String returns the string representation.
func (l Language) String() string {
	return string(l)
}

// Name returns the English name of the language, or the tag itself when it
// is unknown.
func (l Language) Name() string {
	tag, err := language.Parse(string(l))
	if err != nil {
		return string(l)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return string(l)
}

// TranslationRequest is the input to a translation backend.
type TranslationRequest struct {
	// Text is the original, un-normalised text.
	Text string

	// Source is the language of Text.
	Source Language

	// Target is the language to translate into.
	Target Language
}

// TranslationErrorPrefix starts every recovered translation failure shown to users.
const TranslationErrorPrefix = "Error: "

// TranslationFailureText renders a translation failure in place of the translated text.
func TranslationFailureText(err error) string {
	return TranslationErrorPrefix + err.Error()
}
