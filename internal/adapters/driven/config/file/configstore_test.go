package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), store.Path())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("this is [not toml"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SetMany(map[string]any{
		"str":   "hello",
		"int":   42,
		"bool":  true,
		"slice": []string{"NOUN", "VERB"},
	}))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("str"), "hello"},
		{"string wrong type", store.GetString("int"), ""},
		{"string missing", store.GetString("nope"), ""},
		{"int", store.GetInt("int"), 42},
		{"int wrong type", store.GetInt("str"), 0},
		{"bool", store.GetBool("bool"), true},
		{"bool wrong type", store.GetBool("str"), false},
		{"slice", store.GetStringSlice("slice"), []string{"NOUN", "VERB"}},
		{"slice missing", store.GetStringSlice("nope"), []string(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.SetMany(map[string]any{
		"translation.provider": "google",
		"translation.target":   "id",
		"analysis.top":         10,
		"analysis.categories":  []string{"NOUN", "ADJ"},
	}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[translation]")
	assert.Contains(t, string(data), "[analysis]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "google", reloaded.GetString("translation.provider"))
	assert.Equal(t, "id", reloaded.GetString("translation.target"))
	assert.Equal(t, 10, reloaded.GetInt("analysis.top"))
	assert.Equal(t, []string{"NOUN", "ADJ"}, reloaded.GetStringSlice("analysis.categories"))
	assert.Equal(t, []string{"analysis.categories", "analysis.top", "translation.provider", "translation.target"}, reloaded.Keys())
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[translation]
provider = "openai"

[translation.openai]
model = "gpt-4o"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "openai", store.GetString("translation.provider"))
	assert.Equal(t, "gpt-4o", store.GetString("translation.openai.model"))
}

func TestConfigStore_SetMany_ConflictKeepsPreviousState(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("translation", "google"))

	err = store.SetMany(map[string]any{"translation.provider": "openai"})

	require.Error(t, err)
	_, ok := store.Get("translation.provider")
	assert.False(t, ok)
	assert.Equal(t, "google", store.GetString("translation"))
}

func TestConfigStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.SetMany(map[string]any{"a": "1", "b": "2"}))

	require.NoError(t, store.Delete("a", "missing"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reloaded.Get("a")
	assert.False(t, ok)
	assert.Equal(t, "2", reloaded.GetString("b"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("key", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Load_NonExistentStartsEmpty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Load())
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("key", "value")
			_ = store.GetString("key")
		}()
	}
	wg.Wait()

	assert.Equal(t, "value", store.GetString("key"))
}

func TestNestMap(t *testing.T) {
	tree, err := nestMap(map[string]any{"a.b.c": 1, "a.d": "x", "e": true})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
			"d": "x",
		},
		"e": true,
	}, tree)
	assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "e": true}, flattenMap(tree, ""))
}
