// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Turns one document format into text
//   - ExtractorRegistry: Selects the extractor for a document
//   - Translator: Translates text between languages
//   - SessionStore: Holds loaded documents between actions
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the affected features report ErrModelUnavailable:
//
//   - Tagger: Part-of-speech tagging by a loaded NLP model
//   - ModelLoader: Resolves and loads the NLP model once at startup
//   - LLMService: Chat completions used by the LLM translation backends
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
