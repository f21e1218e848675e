package domain

import (
	"sort"
	"strings"
)

// Category is a grammatical category label emitted by an NLP model.
// The set is open: any label the model emits is a valid category.
type Category string

// Universal part-of-speech categories recognised by the bundled model.
const (
	CategoryNoun         Category = "NOUN"
	CategoryProperNoun   Category = "PROPN"
	CategoryVerb         Category = "VERB"
	CategoryAuxiliary    Category = "AUX"
	CategoryAdjective    Category = "ADJ"
	CategoryAdverb       Category = "ADV"
	CategoryPronoun      Category = "PRON"
	CategoryDeterminer   Category = "DET"
	CategoryAdposition   Category = "ADP"
	CategoryCoordConj    Category = "CCONJ"
	CategorySubordConj   Category = "SCONJ"
	CategoryParticle     Category = "PART"
	CategoryNumeral      Category = "NUM"
	CategoryInterjection Category = "INTJ"
	CategoryOther        Category = "X"
)

// categoryAliases maps friendly, lower-cased names to category labels.
var categoryAliases = map[string]Category{
	"noun":         CategoryNoun,
	"propernoun":   CategoryProperNoun,
	"verb":         CategoryVerb,
	"auxiliary":    CategoryAuxiliary,
	"adjective":    CategoryAdjective,
	"adverb":       CategoryAdverb,
	"pronoun":      CategoryPronoun,
	"determiner":   CategoryDeterminer,
	"article":      CategoryDeterminer,
	"preposition":  CategoryAdposition,
	"adposition":   CategoryAdposition,
	"conjunction":  CategoryCoordConj,
	"particle":     CategoryParticle,
	"number":       CategoryNumeral,
	"numeral":      CategoryNumeral,
	"interjection": CategoryInterjection,
	"other":        CategoryOther,
}

// categoryNames are the display names of the known labels.
var categoryNames = map[Category]string{
	CategoryNoun:         "noun",
	CategoryProperNoun:   "proper noun",
	CategoryVerb:         "verb",
	CategoryAuxiliary:    "auxiliary",
	CategoryAdjective:    "adjective",
	CategoryAdverb:       "adverb",
	CategoryPronoun:      "pronoun",
	CategoryDeterminer:   "determiner",
	CategoryAdposition:   "adposition",
	CategoryCoordConj:    "coordinating conjunction",
	CategorySubordConj:   "subordinating conjunction",
	CategoryParticle:     "particle",
	CategoryNumeral:      "numeral",
	CategoryInterjection: "interjection",
	CategoryOther:        "other",
}

// SelectableCategories returns the categories offered for expansion in
// interactive views.
func SelectableCategories() []Category {
	return []Category{
		CategoryNoun, CategoryVerb, CategoryAdjective,
		CategoryAdverb, CategoryPronoun, CategoryDeterminer,
	}
}

// DefaultCategories returns the categories expanded when the caller does not choose.
func DefaultCategories() []Category {
	return []Category{CategoryNoun, CategoryVerb, CategoryAdjective}
}

// ParseCategory converts user input into a category label.
// Friendly names ("Adjective") and labels in any case ("adj") are accepted.
// Unrecognised non-empty input is upper-cased and accepted as an open label.
func ParseCategory(s string) (Category, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrInvalidInput
	}
	key := strings.ToLower(strings.ReplaceAll(trimmed, " ", ""))
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return Category(strings.ToUpper(trimmed)), nil
}

// ParseCategories parses a list of category names, dropping duplicates while
// preserving the order of first appearance.
func ParseCategories(names []string) ([]Category, error) {
	seen := make(map[Category]bool, len(names))
	result := make([]Category, 0, len(names))
	for _, name := range names {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		result = append(result, c)
	}
	return result, nil
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Name returns the display name of a known label, or "" for open labels.
func (c Category) Name() string {
	return categoryNames[c]
}

// TaggedToken is a token paired with the category assigned by the NLP model.
// It is recomputed on every analysis request.
type TaggedToken struct {
	// Text is the token in the form the model emitted it.
	Text string

	// Category is the assigned grammatical category.
	Category Category

	// Index is the token's position in the model's token stream.
	Index int
}

// FrequencyTable maps a token to its number of occurrences.
type FrequencyTable map[string]int

// FrequencyEntry is one row of a sorted frequency table.
type FrequencyEntry struct {
	Word  string `json:"word"`
	Count int    `json:"frequency"`
}

// Total returns the sum of all counts.
func (t FrequencyTable) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Sorted returns entries descending by count. Ties are ordered by word so the
// result is deterministic.
func (t FrequencyTable) Sorted() []FrequencyEntry {
	entries := make([]FrequencyEntry, 0, len(t))
	for word, n := range t {
		entries = append(entries, FrequencyEntry{Word: word, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// Top returns at most n sorted entries. n <= 0 returns all entries.
func (t FrequencyTable) Top(n int) []FrequencyEntry {
	entries := t.Sorted()
	if n > 0 && n < len(entries) {
		return entries[:n]
	}
	return entries
}

// POSCounts maps a category to its number of tagged tokens.
type POSCounts map[Category]int

// POSEntry is one row of sorted POS counts.
type POSEntry struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Sorted returns entries descending by count, ties ordered by label.
func (c POSCounts) Sorted() []POSEntry {
	entries := make([]POSEntry, 0, len(c))
	for cat, n := range c {
		entries = append(entries, POSEntry{Category: cat, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Category < entries[j].Category
	})
	return entries
}

// CategoryMap maps each requested category to its tokens in first-seen order.
type CategoryMap map[Category][]string

// Head returns at most n words for the category. n <= 0 returns all words.
func (m CategoryMap) Head(c Category, n int) []string {
	words := m[c]
	if n > 0 && n < len(words) {
		return words[:n]
	}
	return words
}

// TextStats summarises the size of a text.
type TextStats struct {
	Characters     int     `json:"characters"`
	Sentences      int     `json:"sentences"`
	Tokens         int     `json:"tokens"`
	DistinctTokens int     `json:"distinct_tokens"`
	LexicalDensity float64 `json:"lexical_density"`
}

// ReportOptions controls which parts of a report are computed.
type ReportOptions struct {
	// Top limits the frequency rows. Zero means all rows.
	Top int

	// Categories are expanded. Empty means no expansion.
	Categories []Category

	// IncludePOS enables tagging. It requires a loaded NLP model.
	IncludePOS bool
}

// Report is the complete analysis of one text.
type Report struct {
	Stats      TextStats        `json:"stats"`
	Frequency  []FrequencyEntry `json:"frequency"`
	POS        []POSEntry       `json:"pos,omitempty"`
	Categories CategoryMap      `json:"categories,omitempty"`
}
