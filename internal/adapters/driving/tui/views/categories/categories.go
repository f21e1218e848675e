// Package categories provides the Categories tab: words grouped by
// grammatical category, each category toggled on or off.
package categories

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

const limitStep = 5

// View lists the words of the enabled categories.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	categories []domain.Category
	enabled    map[domain.Category]bool
	groups     domain.CategoryMap
	modelErr   error
	loaded     bool
	cursor     int
	limit      int
	width      int
}

// NewView creates a categories view. enabled are switched on initially;
// categories outside domain.SelectableCategories are appended to the list.
func NewView(s *styles.Styles, km *keymap.KeyMap, enabled []domain.Category, limit int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if len(enabled) == 0 {
		enabled = domain.DefaultCategories()
	}
	if limit <= 0 {
		limit = 10
	}

	v := &View{
		styles:     s,
		keymap:     km,
		categories: domain.SelectableCategories(),
		enabled:    make(map[domain.Category]bool, len(enabled)),
		limit:      limit,
		width:      80,
	}
	for _, c := range enabled {
		if !v.has(c) {
			v.categories = append(v.categories, c)
		}
		v.enabled[c] = true
	}
	return v
}

func (v *View) has(c domain.Category) bool {
	for _, known := range v.categories {
		if known == c {
			return true
		}
	}
	return false
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Categories returns every category the view can show. The app requests
// all of them at once so toggling never re-tags the text.
func (v *View) Categories() []domain.Category {
	return append([]domain.Category(nil), v.categories...)
}

// Enabled returns the switched-on categories in display order.
func (v *View) Enabled() []domain.Category {
	var out []domain.Category
	for _, c := range v.categories {
		if v.enabled[c] {
			out = append(out, c)
		}
	}
	return out
}

// SetReport shows the category groups of a report.
func (v *View) SetReport(report *domain.Report, modelErr error) {
	v.loaded = report != nil
	v.modelErr = modelErr
	v.groups = nil
	if report != nil {
		v.groups = report.Categories
	}
}

// Update handles key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	key := km.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.cursor = max(v.cursor-1, 0)
	case keymap.Matches(key, v.keymap.Down):
		v.cursor = min(v.cursor+1, len(v.categories)-1)
	case keymap.Matches(key, v.keymap.Toggle):
		c := v.categories[v.cursor]
		v.enabled[c] = !v.enabled[c]
	case keymap.Matches(key, v.keymap.More):
		v.limit += limitStep
	case keymap.Matches(key, v.keymap.Less):
		v.limit = max(v.limit-limitStep, 1)
	}
	return v, nil
}

// View renders the tab.
func (v *View) View() string {
	if v.modelErr != nil {
		return v.styles.Warning.Render("Category expansion is unavailable: " + domain.UserMessage(v.modelErr))
	}
	if !v.loaded {
		return v.styles.Muted.Render("Analysing...")
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Words by category"))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  up to %d per category", v.limit)))
	b.WriteString("\n\n")

	for i, c := range v.categories {
		b.WriteString(v.renderCategory(i, c))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] select  [space] show/hide  [+/-] more/fewer words"))
	return b.String()
}

func (v *View) renderCategory(i int, c domain.Category) string {
	indicator := "  "
	if i == v.cursor {
		indicator = "> "
	}

	chip := v.styles.Chip.Render(c.String())
	if v.enabled[c] {
		chip = v.styles.ActiveChip.Render(c.String())
	}

	words := v.groups[c]
	header := fmt.Sprintf("%s%s %s", indicator, chip, v.styles.Muted.Render(fmt.Sprintf("%d", len(words))))
	if !v.enabled[c] {
		return header
	}
	return header + "  " + v.styles.Normal.Render(formatWords(words, v.limit))
}

// formatWords joins the first limit words, noting how many were left out.
func formatWords(words []string, limit int) string {
	if len(words) == 0 {
		return "(none)"
	}
	if limit <= 0 || limit >= len(words) {
		return strings.Join(words, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(words[:limit], ", "), len(words)-limit)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
}

// Limit returns the number of words shown per category.
func (v *View) Limit() int {
	return v.limit
}

// Cursor returns the index of the selected category.
func (v *View) Cursor() int {
	return v.cursor
}
