package analysis

import (
	"strings"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// Tokens splits normalised text on runs of Unicode whitespace.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// TokenCount returns the number of whitespace-delimited tokens.
func TokenCount(normalized string) int {
	return len(Tokens(normalized))
}

// AnalyzeFrequency counts occurrences of each token.
// The counts sum to TokenCount(normalized).
func AnalyzeFrequency(normalized string) domain.FrequencyTable {
	table := make(domain.FrequencyTable)
	for _, tok := range Tokens(normalized) {
		table[tok]++
	}
	return table
}
