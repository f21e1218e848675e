package domain

import "time"

// Session is the in-process record of one loaded document.
// It lives until the process exits or the session is discarded.
type Session struct {
	// ID is the unique session identifier.
	ID string

	// Name is the uploaded file name.
	Name string

	// Format is the detected document format.
	Format Format

	// Size is the number of uploaded bytes.
	Size int

	// Text is the extracted, original text.
	Text string

	// Normalized is Text after punctuation removal and case folding.
	Normalized string

	// Translation is the most recent translation, empty until requested.
	Translation string

	// TranslationSource and TranslationTarget describe Translation.
	TranslationSource Language
	TranslationTarget Language

	// CreatedAt is when the document was loaded.
	CreatedAt time.Time

	// AccessedAt is when the session was last read.
	AccessedAt time.Time
}
