// Package analysis implements the text pipeline as pure functions:
// normalisation, frequency counting, part-of-speech counting and
// category expansion.
//
// Tokenization and tagging for POS and expansion are delegated to an
// injected driven.Tagger. Frequency counting splits on whitespace.
package analysis
