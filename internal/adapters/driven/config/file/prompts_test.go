package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

const customTranslatePrompt = "Übersetze von %s nach %s:\n%s"

func writePrompt(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".txt"), []byte(content), 0600))
}

func TestNewPromptStore_Dir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}
	store, err = NewPromptStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".wortlens", "prompts"), store.Dir())
}

func TestNewPromptStore_NoIOUntilLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")

	_, err := NewPromptStore(dir)
	require.NoError(t, err)

	assert.NoDirExists(t, dir)
}

func TestPromptStore_SeedsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptTranslate)
	require.NoError(t, err)

	for _, f := range []string{"translate.txt", "translate_system.txt", "README.md"} {
		assert.FileExists(t, filepath.Join(dir, f))
	}
}

func TestPromptStore_Load(t *testing.T) {
	tests := []struct {
		name     string
		prompt   string
		file     string
		expected string
	}{
		{
			name:     "built-in translate prompt",
			prompt:   driven.PromptTranslate,
			expected: builtinPrompts[driven.PromptTranslate].text,
		},
		{
			name:     "built-in system prompt",
			prompt:   driven.PromptTranslateSystem,
			expected: builtinPrompts[driven.PromptTranslateSystem].text,
		},
		{
			name:     "edited translate prompt",
			prompt:   driven.PromptTranslate,
			file:     customTranslatePrompt,
			expected: customTranslatePrompt,
		},
		{
			name:     "edited prompt is trimmed",
			prompt:   driven.PromptTranslateSystem,
			file:     "\n\n  Du bist Übersetzer.  \n\n",
			expected: "Du bist Übersetzer.",
		},
		{
			name:     "too few placeholders falls back",
			prompt:   driven.PromptTranslate,
			file:     "Translate: %s",
			expected: builtinPrompts[driven.PromptTranslate].text,
		},
		{
			name:     "placeholder in system prompt falls back",
			prompt:   driven.PromptTranslateSystem,
			file:     "Translate into %s",
			expected: builtinPrompts[driven.PromptTranslateSystem].text,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.file != "" {
				writePrompt(t, dir, tc.prompt, tc.file)
			}
			store, err := NewPromptStore(dir)
			require.NoError(t, err)

			prompt, err := store.Load(tc.prompt)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, prompt)
		})
	}
}

func TestPromptStore_BuiltinsMatchPlaceholderCounts(t *testing.T) {
	for name, p := range builtinPrompts {
		assert.Equal(t, p.verbs, strings.Count(p.text, "%s"), name)
	}
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("summarise")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "summarise")
}

func TestPromptStore_Load_DeletedFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptTranslate)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "translate.txt")))
	store.Reload()

	prompt, err := store.Load(driven.PromptTranslate)
	require.NoError(t, err)
	assert.Equal(t, builtinPrompts[driven.PromptTranslate].text, prompt)
}

func TestPromptStore_UnwritableDirUsesBuiltins(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	store, err := NewPromptStore(filepath.Join(blocker, "prompts"))
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptTranslate)
	require.NoError(t, err)
	assert.Equal(t, builtinPrompts[driven.PromptTranslate].text, prompt)

	_, err = store.Load("unknown")
	assert.Error(t, err)
}

func TestPromptStore_CacheAndReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptTranslate)
	require.NoError(t, err)

	writePrompt(t, dir, driven.PromptTranslate, customTranslatePrompt)

	cached, err := store.Load(driven.PromptTranslate)
	require.NoError(t, err)
	assert.Equal(t, first, cached, "edits are not seen before Reload")

	store.Reload()
	reloaded, err := store.Load(driven.PromptTranslate)
	require.NoError(t, err)
	assert.Equal(t, customTranslatePrompt, reloaded)
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, driven.PromptTranslate, customTranslatePrompt)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	_, err = store.Load(driven.PromptTranslateSystem)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "translate.txt"))
	require.NoError(t, err)
	assert.Equal(t, customTranslatePrompt, string(data))
}

func TestPromptStore_ConcurrentLoad(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	const goroutines = 50
	results := make([]string, goroutines)
	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := store.Load(driven.PromptTranslate)
			assert.NoError(t, err)
			results[i] = p
		}()
	}
	wg.Wait()

	for _, p := range results {
		assert.Equal(t, results[0], p)
	}
}
