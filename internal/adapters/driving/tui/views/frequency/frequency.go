// Package frequency provides the Frequency tab: the most common words.
package frequency

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

const step = 5

// View shows the top N entries of the frequency table.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	list   *list.CountList

	entries []domain.FrequencyEntry
	stats   domain.TextStats
	top     int
	loaded  bool
	width   int
	height  int
}

// NewView creates a frequency view showing top rows by default.
func NewView(s *styles.Styles, km *keymap.KeyMap, top int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if top <= 0 {
		top = 10
	}
	return &View{
		styles: s,
		keymap: km,
		list:   list.NewCountList(s),
		top:    top,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetReport shows the frequency table of a report. The report must hold
// every entry; the view trims to the chosen top N.
func (v *View) SetReport(report *domain.Report) {
	v.loaded = report != nil
	v.entries = nil
	v.stats = domain.TextStats{}
	if report != nil {
		v.entries = report.Frequency
		v.stats = report.Stats
	}
	v.refresh()
}

// Update handles key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch {
	case keymap.Matches(km.String(), v.keymap.More):
		v.top += step
		v.refresh()
		return v, nil
	case keymap.Matches(km.String(), v.keymap.Less):
		v.top = max(v.top-step, 1)
		v.refresh()
		return v, nil
	case keymap.Matches(km.String(), v.keymap.Export):
		if len(v.entries) == 0 {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ExportRequested{Kind: messages.ExportFrequency}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *View) refresh() {
	shown := v.entries
	if v.top < len(shown) {
		shown = shown[:v.top]
	}
	rows := make([]list.Row, len(shown))
	for i, e := range shown {
		rows[i] = list.Row{Label: e.Word, Count: e.Count}
	}
	v.list.SetRows(rows)
}

// View renders the frequency tab.
func (v *View) View() string {
	if !v.loaded {
		return v.styles.Muted.Render("Analysing...")
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Top %d words", min(v.top, len(v.entries)))))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %d tokens · %d distinct · %d sentences · %d characters",
		v.stats.Tokens, v.stats.DistinctTokens, v.stats.Sentences, v.stats.Characters)))
	if v.stats.LexicalDensity > 0 {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf(" · lexical density %.0f%%", v.stats.LexicalDensity*100)))
	}
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[+/-] more/fewer rows  [↑/↓] select  [e] export word_frequency.csv"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, max(height-4, 1))
}

// Top returns the number of rows shown.
func (v *View) Top() int {
	return v.top
}

// Table rebuilds the full frequency table for export.
func (v *View) Table() domain.FrequencyTable {
	table := make(domain.FrequencyTable, len(v.entries))
	for _, e := range v.entries {
		table[e.Word] = e.Count
	}
	return table
}

// Rows returns the rows currently listed.
func (v *View) Rows() []list.Row {
	return v.list.Rows()
}
