// Package segment splits text into sentences and into size-bounded chunks
// that break between sentences.
package segment

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/data"
	"github.com/neurosnap/sentences/english"

	"github.com/custodia-labs/wortlens/internal/logger"
)

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
	tokenizerMu   sync.Mutex
)

// sentenceTokenizer returns the shared punkt tokenizer. German training data
// is preferred; the English tokenizer is the fallback.
func sentenceTokenizer() *sentences.DefaultSentenceTokenizer {
	tokenizerOnce.Do(func() {
		if b, err := data.Asset("data/german.json"); err == nil {
			if training, err := sentences.LoadTraining(b); err == nil {
				tokenizer = sentences.NewSentenceTokenizer(training)
				return
			}
		}
		t, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			logger.Warn("Sentence tokenizer unavailable: %v", err)
			return
		}
		tokenizer = t
	})
	return tokenizer
}

// Sentences returns the trimmed, non-empty sentences of text.
func Sentences(text string) []string {
	var result []string
	for _, span := range spans(text) {
		if s := strings.TrimSpace(text[span[0]:span[1]]); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// Count returns the number of non-empty sentences in text.
func Count(text string) int {
	return len(Sentences(text))
}

// spans returns contiguous [start, end) byte ranges covering text, one per sentence.
func spans(text string) [][2]int {
	if text == "" {
		return nil
	}

	tok := sentenceTokenizer()
	if tok == nil {
		return [][2]int{{0, len(text)}}
	}

	tokenizerMu.Lock()
	sents := tok.Tokenize(text)
	tokenizerMu.Unlock()

	result := make([][2]int, 0, len(sents))
	cursor := 0
	for _, s := range sents {
		if s.Text == "" {
			continue
		}
		idx := strings.Index(text[cursor:], s.Text)
		if idx < 0 {
			continue
		}
		end := cursor + idx + len(s.Text)
		result = append(result, [2]int{cursor, end})
		cursor = end
	}
	if cursor < len(text) {
		if len(result) > 0 && strings.TrimSpace(text[cursor:]) == "" {
			result[len(result)-1][1] = len(text)
		} else {
			result = append(result, [2]int{cursor, len(text)})
		}
	}
	return result
}

// Chunk splits text into pieces of at most size runes, breaking between
// sentences where possible and at whitespace otherwise. Concatenating the
// chunks yields text. size <= 0 returns text as a single chunk.
func Chunk(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 || utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	runes := 0
	for _, span := range spans(text) {
		piece := text[span[0]:span[1]]
		n := utf8.RuneCountInString(piece)

		if runes > 0 && runes+n > size {
			chunks = append(chunks, text[start:span[0]])
			start = span[0]
			runes = 0
		}
		if n > size {
			// A single sentence longer than size is cut at whitespace.
			parts := hardSplit(piece, size)
			chunks = append(chunks, parts[:len(parts)-1]...)
			last := parts[len(parts)-1]
			start = span[1] - len(last)
			runes = utf8.RuneCountInString(last)
			continue
		}
		runes += n
	}
	if start < len(text) {
		chunks = append(chunks, text[start:])
	}
	return chunks
}

// hardSplit cuts s into pieces of at most size runes, preferring the last
// whitespace before the limit.
func hardSplit(s string, size int) []string {
	var parts []string
	for utf8.RuneCountInString(s) > size {
		cut := byteOffset(s, size)
		if ws := strings.LastIndexFunc(s[:cut], unicode.IsSpace); ws > 0 {
			_, width := utf8.DecodeRuneInString(s[ws:])
			cut = ws + width
		}
		parts = append(parts, s[:cut])
		s = s[cut:]
	}
	return append(parts, s)
}

// byteOffset returns the byte index of the n-th rune of s.
func byteOffset(s string, n int) int {
	i := 0
	for pos := range s {
		if i == n {
			return pos
		}
		i++
	}
	return len(s)
}
