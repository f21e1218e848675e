package text

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

func testSession() *domain.Session {
	return &domain.Session{
		ID:         "s-1",
		Name:       "hund.txt",
		Format:     domain.FormatPlainText,
		Size:       31,
		Text:       "Der Hund läuft. Der Hund bellt.",
		Normalized: "der hund läuft der hund bellt",
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)
	require.NotNil(t, v)
	assert.Nil(t, v.Init())
	assert.False(t, v.Normalized())
	assert.Contains(t, v.View(), "No document loaded")
}

func TestView_SetSession(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 20)
	v.SetSession(testSession())

	assert.Equal(t, "Der Hund läuft. Der Hund bellt.", v.Content())
	view := v.View()
	assert.Contains(t, view, "Original text")
	assert.Contains(t, view, "hund.txt")
	assert.Contains(t, view, "Der Hund läuft.")
}

func TestView_ToggleNormalized(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 20)
	v.SetSession(testSession())

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.Nil(t, cmd)
	assert.True(t, v.Normalized())
	assert.Equal(t, "der hund läuft der hund bellt", v.Content())
	assert.Contains(t, v.View(), "Normalized text")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.False(t, v.Normalized())
	assert.Equal(t, "Der Hund läuft. Der Hund bellt.", v.Content())
}

func TestView_ToggleKeepsModeForNextDocument(t *testing.T) {
	v := NewView(nil, nil)
	v.SetSession(testSession())
	v.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})

	next := testSession()
	next.Normalized = "guten tag"
	v.SetSession(next)
	assert.Equal(t, "guten tag", v.Content())
}
