// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the full help.
	Help key.Binding

	// Back closes a prompt or the help.
	Back key.Binding

	// NextTab and PrevTab cycle through the tabs.
	NextTab key.Binding
	PrevTab key.Binding

	// Up and Down scroll or move the selection.
	Up   key.Binding
	Down key.Binding

	// PageUp and PageDown scroll by a screen.
	PageUp   key.Binding
	PageDown key.Binding

	// Toggle switches original/normalised text or a category.
	Toggle key.Binding

	// More and Less change the number of frequency rows.
	More key.Binding
	Less key.Binding

	// Open prompts for another document.
	Open key.Binding

	// Translate runs the translation.
	Translate key.Binding

	// Source and Target cycle the translation languages.
	Source key.Binding
	Target key.Binding

	// Swap exchanges source and target.
	Swap key.Binding

	// Export writes the current tab's download file.
	Export key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "toggle"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more rows"),
		),
		Less: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer rows"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		Translate: key.NewBinding(
			key.WithKeys("enter", "t"),
			key.WithHelp("enter", "translate"),
		),
		Source: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "source language"),
		),
		Target: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "target language"),
		),
		Swap: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "swap languages"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Open, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Open, k.Help, k.Quit},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Toggle, k.More, k.Less, k.Export},
		{k.Translate, k.Source, k.Target, k.Swap},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
