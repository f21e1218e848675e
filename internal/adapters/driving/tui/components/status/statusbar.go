// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady       State = "ready"
	StateLoading     State = "loading"
	StateTranslating State = "translating"
	StateError       State = "error"
	StateInfo        State = "info"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	document string
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render(s.withDefault("Loading..."))
	case StateTranslating:
		return s.styles.Muted.Render(s.withDefault("Translating..."))
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateInfo:
		return s.styles.Success.Render(s.message)
	case StateReady:
	}
	if s.document != "" {
		return s.styles.Normal.Render(s.document)
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) withDefault(text string) string {
	if s.message != "" {
		return s.message
	}
	return text
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// Bindings returns the hinted bindings.
func (s *Bar) Bindings() []key.Binding {
	return s.keymap.ShortHelp()
}

// SetState sets the current state and message.
func (s *Bar) SetState(state State, message string) {
	s.state = state
	s.message = message
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetDocument sets the name shown while ready.
func (s *Bar) SetDocument(name string) {
	s.document = name
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to the ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
