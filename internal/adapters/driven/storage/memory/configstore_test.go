package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("translate.provider", "google"))

	val, ok := store.Get("translate.provider")
	assert.True(t, ok)
	assert.Equal(t, "google", val)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.SetMany(map[string]any{
		"str":     "hello",
		"int":     42,
		"int64":   int64(7),
		"float":   3.0,
		"bool":    true,
		"strings": []string{"NOUN", "VERB"},
		"anys":    []any{"ADJ", 1, "ADV"},
	}))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("str"), "hello"},
		{"string wrong type", store.GetString("int"), ""},
		{"int", store.GetInt("int"), 42},
		{"int64", store.GetInt("int64"), 7},
		{"float", store.GetInt("float"), 3},
		{"int missing", store.GetInt("missing"), 0},
		{"bool", store.GetBool("bool"), true},
		{"bool wrong type", store.GetBool("str"), false},
		{"string slice", store.GetStringSlice("strings"), []string{"NOUN", "VERB"}},
		{"any slice keeps strings", store.GetStringSlice("anys"), []string{"ADJ", "ADV"}},
		{"slice wrong type", store.GetStringSlice("str"), []string(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_GetStringSliceReturnsCopy(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("cats", []string{"NOUN"}))

	got := store.GetStringSlice("cats")
	got[0] = "VERB"

	assert.Equal(t, []string{"NOUN"}, store.GetStringSlice("cats"))
}

func TestConfigStore_Delete(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.SetMany(map[string]any{"a": 1, "b": 2}))

	require.NoError(t, store.Delete("a", "missing"))

	_, ok := store.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, store.GetInt("b"))
}

func TestConfigStore_FailWrites(t *testing.T) {
	store := NewConfigStore()
	store.FailWrites = errors.New("disk full")

	assert.Error(t, store.Set("a", 1))
	assert.Error(t, store.Delete("a"))
	_, ok := store.Get("a")
	assert.False(t, ok)
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("key", n)
			_ = store.GetInt("key")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("key")
	assert.True(t, ok)
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.SetMany(map[string]any{"b": 1, "a": 2}))

	assert.Equal(t, []string{"a", "b"}, store.Keys())
}
