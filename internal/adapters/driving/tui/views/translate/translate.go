// Package translate provides the Translate tab.
package translate

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/components/pager"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// View selects the languages, runs the translation and shows the result.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	pager  *pager.Pager

	languages   []domain.Language
	source      domain.Language
	target      domain.Language
	provider    string
	hasDocument bool
	translating bool
	translated  bool
	failed      bool
}

// Config sets the languages offered and the initial pair.
type Config struct {
	Languages []domain.Language
	Source    domain.Language
	Target    domain.Language
	Provider  string
}

// NewView creates a new translate view.
func NewView(s *styles.Styles, km *keymap.KeyMap, cfg Config) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = domain.DefaultLanguages()
	}
	if cfg.Source == "" {
		cfg.Source = domain.DefaultSourceLanguage
	}
	if cfg.Target == "" {
		cfg.Target = domain.DefaultTargetLanguage
	}
	return &View{
		styles:    s,
		keymap:    km,
		pager:     pager.New(s),
		languages: cfg.Languages,
		source:    cfg.Source,
		target:    cfg.Target,
		provider:  cfg.Provider,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Reset clears the previous result when a new document is loaded.
func (v *View) Reset(hasDocument bool) {
	v.hasDocument = hasDocument
	v.translating = false
	v.translated = false
	v.failed = false
	v.pager.SetContent("")
}

// Update handles key presses and translation results.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.TranslationCompleted:
		v.translating = false
		v.translated = msg.Err == nil
		v.failed = msg.Err != nil
		v.pager.SetContent(msg.Text)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Translate):
		if !v.hasDocument || v.translating {
			return v, nil
		}
		v.translating = true
		source, target := v.source, v.target
		return v, func() tea.Msg {
			return messages.TranslationRequested{Source: source, Target: target}
		}
	case keymap.Matches(key, v.keymap.Source):
		v.source = v.cycle(v.source)
	case keymap.Matches(key, v.keymap.Target):
		v.target = v.cycle(v.target)
	case keymap.Matches(key, v.keymap.Swap):
		v.source, v.target = v.target, v.source
	case keymap.Matches(key, v.keymap.Export):
		if !v.translated {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ExportRequested{Kind: messages.ExportTranslation}
		}
	default:
		var cmd tea.Cmd
		v.pager, cmd = v.pager.Update(msg)
		return v, cmd
	}
	return v, nil
}

// cycle returns the language after current in the offered list.
func (v *View) cycle(current domain.Language) domain.Language {
	for i, l := range v.languages {
		if l == current {
			return v.languages[(i+1)%len(v.languages)]
		}
	}
	return v.languages[0]
}

// View renders the tab.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Translate"))
	b.WriteString("  ")
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s → %s", languageLabel(v.source), languageLabel(v.target))))
	if v.provider != "" {
		b.WriteString(v.styles.Muted.Render("  via " + v.provider))
	}
	b.WriteString("\n\n")

	switch {
	case !v.hasDocument:
		b.WriteString(v.styles.Muted.Render("No document loaded. Press o to open one."))
	case v.translating:
		b.WriteString(v.styles.Muted.Render("Translating..."))
	case v.failed:
		b.WriteString(v.styles.Error.Render(v.pager.Content()))
	case v.translated:
		b.WriteString(v.pager.View())
	default:
		b.WriteString(v.styles.Muted.Render("Press enter to translate the original text."))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] translate  [s/d] source/target  [x] swap  [e] export translated_text.txt"))
	return b.String()
}

func languageLabel(l domain.Language) string {
	if name := l.Name(); name != "" && name != l.String() {
		return fmt.Sprintf("%s (%s)", name, l)
	}
	return l.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.pager.SetDimensions(width, max(height-4, 1))
}

// Languages returns the selected source and target.
func (v *View) Languages() (source, target domain.Language) {
	return v.source, v.target
}

// Translation returns the last successful translation.
func (v *View) Translation() string {
	if !v.translated {
		return ""
	}
	return v.pager.Content()
}

// Translating reports whether a translation is in flight.
func (v *View) Translating() bool {
	return v.translating
}
