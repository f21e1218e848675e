// Package pos provides the Parts of Speech tab.
package pos

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// View shows how many tokens the model assigned to each category.
type View struct {
	styles *styles.Styles
	list   *list.CountList

	entries  []domain.POSEntry
	modelErr error
	loaded   bool
}

// NewView creates a new parts-of-speech view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, list: list.NewCountList(s)}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetReport shows the POS counts of a report. modelErr explains why no
// counts are available.
func (v *View) SetReport(report *domain.Report, modelErr error) {
	v.loaded = report != nil
	v.modelErr = modelErr
	v.entries = nil
	if report != nil {
		v.entries = report.POS
	}

	rows := make([]list.Row, len(v.entries))
	for i, e := range v.entries {
		rows[i] = list.Row{Label: describe(e.Category), Count: e.Count}
	}
	v.list.SetRows(rows)
}

// Update handles key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the tab.
func (v *View) View() string {
	if v.modelErr != nil {
		return v.styles.Warning.Render("Part-of-speech analysis is unavailable: "+domain.UserMessage(v.modelErr)) +
			"\n\n" + v.styles.Help.Render("Run 'wortlens model pull' to download the model.")
	}
	if !v.loaded {
		return v.styles.Muted.Render("Analysing...")
	}

	total := 0
	for _, e := range v.entries {
		total += e.Count
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Parts of speech"))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %d tagged tokens", total)))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, max(height-2, 1))
}

// Entries returns the counts shown.
func (v *View) Entries() []domain.POSEntry {
	return v.entries
}

// describe renders a label with its friendly name, e.g. "NOUN (noun)".
func describe(c domain.Category) string {
	if name := c.Name(); name != "" {
		return fmt.Sprintf("%s (%s)", c, name)
	}
	return c.String()
}
