package lexicon

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// Ensure Model implements the interface.
var _ driven.Tagger = (*Model)(nil)

// File is the TOML representation of a model.
type File struct {
	Name       string              `toml:"name"`
	Language   string              `toml:"language"`
	Version    string              `toml:"version"`
	DefaultTag string              `toml:"default_tag"`
	NumberTag  string              `toml:"number_tag"`
	Lexicon    map[string][]string `toml:"lexicon"`
	Suffixes   []SuffixRule        `toml:"suffix"`
}

// SuffixRule tags words ending in Suffix, provided at least MinStem runes
// precede the suffix.
type SuffixRule struct {
	Suffix  string `toml:"suffix"`
	Tag     string `toml:"tag"`
	MinStem int    `toml:"min_stem"`
}

// Model is a loaded lexicon tagger. It is immutable and safe for concurrent use.
type Model struct {
	name       string
	language   domain.Language
	version    string
	defaultTag domain.Category
	numberTag  domain.Category
	words      map[string]domain.Category
	suffixes   []compiledSuffix
}

type compiledSuffix struct {
	suffix  string
	runes   int
	minStem int
	tag     domain.Category
}

// Parse decodes and validates a TOML model.
func Parse(data []byte) (*Model, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	return Compile(f)
}

// Compile validates a decoded model file and builds its lookup tables.
// A word listed under two tags is rejected.
func Compile(f File) (*Model, error) {
	if strings.TrimSpace(f.Name) == "" {
		return nil, fmt.Errorf("model: name is required")
	}
	if strings.TrimSpace(f.DefaultTag) == "" {
		return nil, fmt.Errorf("model %s: default_tag is required", f.Name)
	}

	m := &Model{
		name:       f.Name,
		language:   domain.Language(strings.ToLower(f.Language)),
		version:    f.Version,
		defaultTag: domain.Category(strings.ToUpper(f.DefaultTag)),
		numberTag:  domain.Category(strings.ToUpper(f.NumberTag)),
		words:      make(map[string]domain.Category),
	}
	if m.numberTag == "" {
		m.numberTag = domain.CategoryNumeral
	}

	tags := make([]string, 0, len(f.Lexicon))
	for tag := range f.Lexicon {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		category := domain.Category(strings.ToUpper(tag))
		for _, word := range f.Lexicon[tag] {
			key := strings.ToLower(strings.TrimSpace(word))
			if key == "" {
				continue
			}
			if prev, ok := m.words[key]; ok && prev != category {
				return nil, fmt.Errorf("model %s: %q listed under %s and %s", f.Name, key, prev, category)
			}
			m.words[key] = category
		}
	}

	for i, rule := range f.Suffixes {
		suffix := strings.ToLower(strings.TrimSpace(rule.Suffix))
		if suffix == "" || strings.TrimSpace(rule.Tag) == "" {
			return nil, fmt.Errorf("model %s: suffix rule %d needs suffix and tag", f.Name, i+1)
		}
		m.suffixes = append(m.suffixes, compiledSuffix{
			suffix:  suffix,
			runes:   utf8.RuneCountInString(suffix),
			minStem: rule.MinStem,
			tag:     domain.Category(strings.ToUpper(rule.Tag)),
		})
	}
	// Longest suffix first; equal lengths keep file order.
	sort.SliceStable(m.suffixes, func(i, j int) bool {
		return m.suffixes[i].runes > m.suffixes[j].runes
	})

	return m, nil
}

// Tag tokenizes text and tags every token.
func (m *Model) Tag(ctx context.Context, text string) ([]domain.TaggedToken, error) {
	words := Tokenize(text)
	tokens := make([]domain.TaggedToken, 0, len(words))
	for i, word := range words {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		tokens = append(tokens, domain.TaggedToken{
			Text:     word,
			Category: m.TagWord(word),
			Index:    i,
		})
	}
	return tokens, nil
}

// TagWord returns the category for a single word.
func (m *Model) TagWord(word string) domain.Category {
	key := strings.ToLower(word)
	if c, ok := m.words[key]; ok {
		return c
	}

	length := utf8.RuneCountInString(key)
	for _, s := range m.suffixes {
		if length-s.runes >= s.minStem && strings.HasSuffix(key, s.suffix) {
			return s.tag
		}
	}

	if isNumeric(key) {
		return m.numberTag
	}
	return m.defaultTag
}

// ModelName returns the name of the loaded model.
func (m *Model) ModelName() string {
	return m.name
}

// Language returns the language the model tags.
func (m *Model) Language() domain.Language {
	return m.language
}

// Version returns the model data version.
func (m *Model) Version() string {
	return m.version
}

// Entries returns the number of lexicon entries.
func (m *Model) Entries() int {
	return len(m.words)
}

// Rules returns the number of suffix rules.
func (m *Model) Rules() int {
	return len(m.suffixes)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
