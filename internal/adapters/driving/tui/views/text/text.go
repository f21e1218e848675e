// Package text provides the Text tab: the extracted document text.
package text

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/components/pager"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// View shows the original or normalised text of the loaded document.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	pager  *pager.Pager

	session    *domain.Session
	normalized bool
	width      int
	height     int
}

// NewView creates a new text view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		pager:  pager.New(s),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetSession shows a newly loaded document.
func (v *View) SetSession(session *domain.Session) {
	v.session = session
	v.refresh()
}

// Update handles key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && keymap.Matches(km.String(), v.keymap.Toggle) {
		v.normalized = !v.normalized
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.pager, cmd = v.pager.Update(msg)
	return v, cmd
}

func (v *View) refresh() {
	if v.session == nil {
		v.pager.SetContent("")
		return
	}
	if v.normalized {
		v.pager.SetContent(v.session.Normalized)
		return
	}
	v.pager.SetContent(v.session.Text)
}

// View renders the text tab.
func (v *View) View() string {
	var b strings.Builder

	if v.session == nil {
		b.WriteString(v.styles.Muted.Render("No document loaded. Press o to open one."))
		return b.String()
	}

	mode := "Original text"
	if v.normalized {
		mode = "Normalized text"
	}
	b.WriteString(v.styles.Subtitle.Render(mode))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %s · %s · %d bytes",
		v.session.Name, v.session.Format, v.session.Size)))
	b.WriteString("\n\n")
	b.WriteString(v.pager.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[space] original/normalized  [↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// Heading and help take four lines.
	v.pager.SetDimensions(width, max(height-4, 1))
}

// Normalized reports whether the normalised text is shown.
func (v *View) Normalized() bool {
	return v.normalized
}

// Content returns the text currently shown.
func (v *View) Content() string {
	return v.pager.Content()
}
