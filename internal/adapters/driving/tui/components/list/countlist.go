// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/styles"
)

// Row is one labelled count.
type Row struct {
	Label string
	Count int
}

// CountList displays labelled counts with proportional bars in a navigable list.
type CountList struct {
	rows     []Row
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewCountList creates a new count list component.
func NewCountList(s *styles.Styles) *CountList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CountList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *CountList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *CountList) Update(msg tea.Msg) (*CountList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.rows) > 0 {
				l.selected = len(l.rows) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible rows.
func (l *CountList) View() string {
	if len(l.rows) == 0 {
		return l.styles.Muted.Render("(no words)")
	}

	labelWidth := 0
	maxCount := 0
	for _, r := range l.rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
		maxCount = max(maxCount, r.Count)
	}
	labelWidth = min(labelWidth, max(l.width/3, 10))
	countWidth := len(fmt.Sprint(maxCount))
	barWidth := max(l.width-labelWidth-countWidth-8, 0)

	start, end := l.visibleRange()
	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i, labelWidth, countWidth, barWidth, maxCount))
	}
	if end-start < len(l.rows) {
		lines = append(lines, l.styles.Muted.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(l.rows))))
	}
	return strings.Join(lines, "\n")
}

func (l *CountList) renderRow(i, labelWidth, countWidth, barWidth, maxCount int) string {
	r := l.rows[i]

	indicator := "  "
	if i == l.selected {
		indicator = "> "
	}
	label := truncate(r.Label, labelWidth)
	text := fmt.Sprintf("%s%-*s  %*d ", indicator, labelWidth, label, countWidth, r.Count)

	filled := 0
	if maxCount > 0 {
		filled = r.Count * barWidth / maxCount
	}
	bar := l.styles.Bar.Render(strings.Repeat("█", filled))

	if i == l.selected {
		return l.styles.Selected.Render(text) + bar
	}
	return l.styles.Normal.Render(text) + bar
}

// visibleRange returns the [start, end) rows that fit the height and keep
// the selection in view.
func (l *CountList) visibleRange() (int, int) {
	visible := max(l.height-1, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.rows))
	return start, end
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width || width < 2 {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// SetRows replaces the rows and resets the selection.
func (l *CountList) SetRows(rows []Row) {
	l.rows = rows
	l.selected = 0
}

// Rows returns the current rows.
func (l *CountList) Rows() []Row {
	return l.rows
}

// Selected returns the index of the selected row.
func (l *CountList) Selected() int {
	return l.selected
}

// SelectedRow returns the selected row, or nil if the list is empty.
func (l *CountList) SelectedRow() *Row {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return nil
	}
	return &l.rows[l.selected]
}

// MoveUp moves selection up.
func (l *CountList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *CountList) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *CountList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of rows.
func (l *CountList) Count() int {
	return len(l.rows)
}
