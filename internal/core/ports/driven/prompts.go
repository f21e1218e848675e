package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names.
const (
	// PromptTranslateSystem is the system prompt for the LLM translation backends.
	// This prompt has no format placeholders.
	PromptTranslateSystem = "translate_system"

	// PromptTranslate wraps the text to translate.
	// The template expects %s (source language), %s (target language) and %s (text).
	PromptTranslate = "translate"
)
