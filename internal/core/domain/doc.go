// Package domain defines the core business entities for wortlens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It depends only on the standard library and golang.org/x/text, and
// defines the fundamental types:
//
//   - Document: Uploaded bytes plus the format derived from the file name
//   - TaggedToken: A token with the grammatical category assigned by an NLP model
//   - FrequencyTable, POSCounts, CategoryMap: Analysis results
//   - Session: An in-process record of one loaded document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend
// on domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, golang.org/x/text
//   - Cannot Import: Any internal/ package
package domain
