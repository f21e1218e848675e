// Package pager provides a scrollable, word-wrapped text pane.
package pager

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/styles"
)

// Pager shows long text one screen at a time.
type Pager struct {
	styles  *styles.Styles
	content string
	lines   []string
	offset  int
	width   int
	height  int
}

// New creates an empty pager.
func New(s *styles.Styles) *Pager {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Pager{styles: s, width: 80, height: 10}
}

// SetContent replaces the text and scrolls to the top.
func (p *Pager) SetContent(content string) {
	p.content = content
	p.offset = 0
	p.wrap()
}

// Content returns the unwrapped text.
func (p *Pager) Content() string {
	return p.content
}

// SetDimensions sets the pane size and rewraps the text.
func (p *Pager) SetDimensions(width, height int) {
	p.width = width
	p.height = height
	p.wrap()
	p.offset = min(p.offset, p.maxOffset())
}

// Update handles scrolling keys.
func (p *Pager) Update(msg tea.Msg) (*Pager, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch km.String() {
	case "up", "k":
		p.offset = max(p.offset-1, 0)
	case "down", "j":
		p.offset = min(p.offset+1, p.maxOffset())
	case "pgup", "ctrl+u":
		p.offset = max(p.offset-p.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		p.offset = min(p.offset+p.visibleLines(), p.maxOffset())
	case "home", "g":
		p.offset = 0
	case "end", "G":
		p.offset = p.maxOffset()
	}
	return p, nil
}

// View renders the visible lines and a position indicator.
func (p *Pager) View() string {
	if len(p.lines) == 0 {
		return p.styles.Muted.Render("(no text)")
	}

	visible := p.visibleLines()
	end := min(p.offset+visible, len(p.lines))

	var b strings.Builder
	for i := p.offset; i < end; i++ {
		b.WriteString(p.styles.Normal.Render(p.lines[i]))
		b.WriteString("\n")
	}
	if len(p.lines) > visible {
		percentage := 0
		if p.maxOffset() > 0 {
			percentage = p.offset * 100 / p.maxOffset()
		}
		b.WriteString(p.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage, p.offset+1, end, len(p.lines))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Offset returns the first visible line.
func (p *Pager) Offset() int {
	return p.offset
}

// LineCount returns the number of wrapped lines.
func (p *Pager) LineCount() int {
	return len(p.lines)
}

// visibleLines reserves one line for the position indicator.
func (p *Pager) visibleLines() int {
	return max(p.height-1, 1)
}

func (p *Pager) maxOffset() int {
	return max(len(p.lines)-p.visibleLines(), 0)
}

func (p *Pager) wrap() {
	p.lines = Wrap(p.content, max(p.width-2, 20))
}

// Wrap breaks text into lines of at most width runes, splitting at spaces
// where possible. Existing line breaks are kept.
func Wrap(text string, width int) []string {
	if text == "" {
		return nil
	}

	var lines []string
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if utf8.RuneCountInString(raw) <= width {
			lines = append(lines, raw)
			continue
		}

		var line strings.Builder
		n := 0
		for _, word := range strings.Fields(raw) {
			wn := utf8.RuneCountInString(word)
			if n > 0 && n+1+wn > width {
				lines = append(lines, line.String())
				line.Reset()
				n = 0
			}
			for wn > width {
				runes := []rune(word)
				lines = append(lines, string(runes[:width]))
				word = string(runes[width:])
				wn -= width
			}
			if n > 0 {
				line.WriteByte(' ')
				n++
			}
			line.WriteString(word)
			n += wn
		}
		if n > 0 {
			lines = append(lines, line.String())
		}
	}
	return lines
}
