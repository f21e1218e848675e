// Package lexicon implements a dictionary and suffix-rule part-of-speech
// tagger whose data is described in TOML.
//
// A model file has this shape:
//
//	name        = "de_core_lexicon"
//	language    = "de"
//	version     = "1.0.0"
//	default_tag = "NOUN"
//	number_tag  = "NUM"
//
//	[lexicon]
//	DET  = ["der", "die", "das"]
//	VERB = ["läuft", "bellt"]
//
//	[[suffix]]
//	suffix     = "ung"
//	tag        = "NOUN"
//	min_stem   = 2
//
// Tagging tries, in order: the exact lower-cased form in the lexicon, the
// longest matching suffix rule, a numeric check, then the default tag.
package lexicon
