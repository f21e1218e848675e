// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML-based settings storage
//   - PromptStore: user-editable LLM translation prompts
package file
