package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
	"github.com/custodia-labs/wortlens/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// builtinPrompt is a default template and the number of %s verbs it takes.
type builtinPrompt struct {
	text  string
	verbs int
}

//nolint:lll // prompt text
var builtinPrompts = map[string]builtinPrompt{
	driven.PromptTranslateSystem: {
		text: `You are a professional translator. Translate the user's text faithfully and completely.
Keep the original paragraph breaks and punctuation. Do not add explanations, notes, transliterations or quotation marks.
Return ONLY the translation.`,
	},
	driven.PromptTranslate: {
		text: `Translate the following text from %s to %s.

Text:
%s`,
		verbs: 3,
	},
}

const promptsReadme = `# Wortlens Prompts

These prompts are used when translating with an LLM provider
(openai, gemini, anthropic, ollama).

- translate_system.txt: system prompt sent with every translation
- translate.txt: wraps the text to translate

translate.txt takes three %s placeholders, in order: source language,
target language, text. A file with a different number of placeholders is
ignored and the built-in prompt is used instead.

Edits take effect on the next command, or after restarting the TUI.
`

// PromptStore serves the translation prompts from user-editable files in a
// directory, seeding the directory with the built-in prompts on first use.
type PromptStore struct {
	dir string

	seedOnce sync.Once
	seedErr  error

	mu    sync.RWMutex
	cache map[string]string
}

// NewPromptStore returns a store rooted at dir (default ~/.wortlens/prompts).
// Nothing is written until the first Load.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".wortlens", "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]string)}, nil
}

// Load returns the named prompt. A missing, unreadable or malformed file
// yields the built-in prompt; unknown names are an error.
func (s *PromptStore) Load(name string) (string, error) {
	builtin, known := builtinPrompts[name]
	s.seedOnce.Do(s.seed)

	s.mu.RLock()
	cached, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	prompt, err := s.read(name)
	switch {
	case err != nil && !known:
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	case err != nil:
		prompt = builtin.text
	case known && strings.Count(prompt, "%s") != builtin.verbs:
		logger.Warn("Prompt %s needs %d %%s placeholders, using the built-in prompt", s.path(name), builtin.verbs)
		prompt = builtin.text
	}

	s.mu.Lock()
	if existing, ok := s.cache[name]; ok {
		prompt = existing
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()
	return prompt, nil
}

// Reload drops cached prompts so edited files are read again.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

func (s *PromptStore) read(name string) (string, error) {
	if s.seedErr != nil {
		return "", s.seedErr
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// seed writes the built-in prompts and a README without touching existing files.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.seedErr = fmt.Errorf("create prompt directory: %w", err)
		logger.Debug("Prompt directory unavailable, using built-in prompts: %v", err)
		return
	}

	files := map[string]string{"README.md": promptsReadme}
	for name, p := range builtinPrompts {
		files[name+".txt"] = p.text
	}
	for file, content := range files {
		path := filepath.Join(s.dir, file)
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			s.seedErr = fmt.Errorf("write %s: %w", file, err)
			return
		}
	}
}
