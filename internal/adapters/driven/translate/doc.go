// Package translate provides the translation backends behind driven.Translator.
//
// Backends:
//   - google: the public Google Translate web endpoint, chunked at sentence boundaries
//   - openai, gemini, ollama, anthropic: LLM chat completions driven by the prompt store
package translate
