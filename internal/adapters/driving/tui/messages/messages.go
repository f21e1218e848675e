// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// Tab identifies which tab is currently active.
type Tab int

const (
	// TabText shows the original or normalised text.
	TabText Tab = iota
	// TabFrequency shows the word frequency table.
	TabFrequency
	// TabPOS shows part-of-speech counts.
	TabPOS
	// TabCategories lists words by grammatical category.
	TabCategories
	// TabTranslate translates the text and exports the result.
	TabTranslate
)

// Tabs lists the tabs in display order.
func Tabs() []Tab {
	return []Tab{TabText, TabFrequency, TabPOS, TabCategories, TabTranslate}
}

// String returns the tab title.
func (t Tab) String() string {
	switch t {
	case TabText:
		return "Text"
	case TabFrequency:
		return "Frequency"
	case TabPOS:
		return "Parts of Speech"
	case TabCategories:
		return "Categories"
	case TabTranslate:
		return "Translate"
	default:
		return "Unknown"
	}
}

// Next returns the tab to the right, wrapping around.
func (t Tab) Next() Tab {
	return Tab((int(t) + 1) % len(Tabs()))
}

// Prev returns the tab to the left, wrapping around.
func (t Tab) Prev() Tab {
	n := len(Tabs())
	return Tab((int(t) + n - 1) % n)
}

// OpenRequested asks the app to load the file at Path.
type OpenRequested struct {
	Path string
}

// DocumentLoaded carries a freshly loaded session.
type DocumentLoaded struct {
	Session *domain.Session
	Err     error
}

// ReportReady carries the analysis of the loaded document.
type ReportReady struct {
	SessionID string
	Report    *domain.Report
	Err       error
}

// TranslationRequested asks for the loaded text to be translated.
type TranslationRequested struct {
	Source domain.Language
	Target domain.Language
}

// TranslationCompleted carries the result of a translation.
// On failure Text holds the "Error: ..." display text.
type TranslationCompleted struct {
	Text   string
	Source domain.Language
	Target domain.Language
	Err    error
}

// ExportKind identifies what is exported.
type ExportKind int

const (
	// ExportFrequency writes the frequency table as CSV.
	ExportFrequency ExportKind = iota
	// ExportTranslation writes the latest translation as text.
	ExportTranslation
)

// String returns the kind name.
func (k ExportKind) String() string {
	switch k {
	case ExportFrequency:
		return "frequency"
	case ExportTranslation:
		return "translation"
	default:
		return "unknown"
	}
}

// ExportRequested asks for a download file to be written.
type ExportRequested struct {
	Kind ExportKind
}

// ExportCompleted reports where an export was written.
type ExportCompleted struct {
	Kind ExportKind
	Path string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
