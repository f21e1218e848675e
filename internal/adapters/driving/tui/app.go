package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/views/categories"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/views/frequency"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/views/pos"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/views/text"
	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui/views/translate"
	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
	"github.com/custodia-labs/wortlens/internal/logger"
)

// chromeHeight is the number of lines used by the tab bar, status bar and help line.
const chromeHeight = 5

// Options configures the initial state of the TUI.
type Options struct {
	// Path is loaded on start when set.
	Path string

	// Top is the initial number of frequency rows.
	Top int

	// Categories are enabled on the Categories tab.
	Categories []domain.Category

	// Limit caps the words shown per category. Zero shows all.
	Limit int

	// Source and Target are the initial translation languages.
	Source domain.Language
	Target domain.Language

	// Languages are offered on the Translate tab.
	Languages []domain.Language

	// ExportDir receives exported files. Defaults to the working directory.
	ExportDir string

	// ModelErr explains why no NLP model is loaded, if any.
	ModelErr error
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports   *Ports
	options Options
	ctx     context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	statusBar *status.Bar
	prompt    *input.PathInput

	textView       *text.View
	frequencyView  *frequency.View
	posView        *pos.View
	categoriesView *categories.View
	translateView  *translate.View

	// session is the loaded document, nil until one is opened.
	session *domain.Session

	tab       messages.Tab
	prompting bool
	showHelp  bool
	err       error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if len(opts.Languages) == 0 {
		opts.Languages = ports.Translation.Languages()
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.ShowAll = true

	return &App{
		ports:          ports,
		options:        opts,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		help:           h,
		statusBar:      status.NewBar(s, km),
		prompt:         input.NewPathInput(s),
		textView:       text.NewView(s, km),
		frequencyView:  frequency.NewView(s, km, opts.Top),
		posView:        pos.NewView(s),
		categoriesView: categories.NewView(s, km, opts.Categories, opts.Limit),
		translateView: translate.NewView(s, km, translate.Config{
			Languages: opts.Languages,
			Source:    opts.Source,
			Target:    opts.Target,
			Provider:  ports.Translation.Provider(),
		}),
		tab: messages.TabText,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("wortlens")}
	if a.options.Path != "" {
		a.statusBar.SetState(status.StateLoading, "Opening "+filepath.Base(a.options.Path))
		cmds = append(cmds, a.openCmd(a.options.Path))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.OpenRequested:
		a.statusBar.SetState(status.StateLoading, "Opening "+filepath.Base(msg.Path))
		return a, a.openCmd(msg.Path)

	case messages.DocumentLoaded:
		return a.handleDocumentLoaded(msg)

	case messages.ReportReady:
		a.handleReportReady(msg)
		return a, nil

	case messages.TranslationRequested:
		if a.session == nil {
			return a, errorCmd(ErrNoDocument)
		}
		a.statusBar.SetState(status.StateTranslating,
			fmt.Sprintf("Translating %s → %s", msg.Source, msg.Target))
		return a, a.translateCmd(a.session.ID, a.session.Text, msg.Source, msg.Target)

	case messages.TranslationCompleted:
		var cmd tea.Cmd
		a.translateView, cmd = a.translateView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError, "Translation failed")
		} else {
			a.statusBar.SetState(status.StateReady, "Translation ready")
		}
		return a, cmd

	case messages.ExportRequested:
		return a, a.exportCmd(msg.Kind)

	case messages.ExportCompleted:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError, domain.UserMessage(msg.Err))
		} else {
			a.statusBar.SetState(status.StateInfo, fmt.Sprintf("Saved %s to %s", msg.Kind, msg.Path))
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError, domain.UserMessage(msg.Err))
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	if a.prompting {
		var cmd tea.Cmd
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.prompting {
		return a.handlePromptKey(msg)
	}

	if a.showHelp {
		switch {
		case keymap.Matches(key, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(key, a.keymap.Help), keymap.Matches(key, a.keymap.Back):
			a.showHelp = false
		}
		return a, nil
	}

	switch {
	case keymap.Matches(key, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(key, a.keymap.Help):
		a.showHelp = true
		return a, nil
	case keymap.Matches(key, a.keymap.Open):
		a.prompting = true
		a.prompt.Reset()
		return a, a.prompt.Focus()
	case keymap.Matches(key, a.keymap.NextTab):
		a.tab = a.tab.Next()
		return a, nil
	case keymap.Matches(key, a.keymap.PrevTab):
		a.tab = a.tab.Prev()
		return a, nil
	}

	return a, a.forwardToTab(msg)
}

func (a *App) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.prompting = false
		a.prompt.Blur()
		return a, nil
	case tea.KeyEnter:
		path := a.prompt.Value()
		if path == "" {
			return a, nil
		}
		a.prompting = false
		a.prompt.Blur()
		return a, func() tea.Msg {
			return messages.OpenRequested{Path: path}
		}
	}

	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return a, cmd
}

// forwardToTab passes msg to the active tab.
func (a *App) forwardToTab(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.tab {
	case messages.TabText:
		a.textView, cmd = a.textView.Update(msg)
	case messages.TabFrequency:
		a.frequencyView, cmd = a.frequencyView.Update(msg)
	case messages.TabPOS:
		a.posView, cmd = a.posView.Update(msg)
	case messages.TabCategories:
		a.categoriesView, cmd = a.categoriesView.Update(msg)
	case messages.TabTranslate:
		a.translateView, cmd = a.translateView.Update(msg)
	}
	return cmd
}

func (a *App) handleDocumentLoaded(msg messages.DocumentLoaded) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.err = msg.Err
		a.statusBar.SetState(status.StateError, domain.UserMessage(msg.Err))
		return a, nil
	}

	if a.session != nil && a.session.ID != msg.Session.ID {
		if err := a.ports.Documents.Discard(a.ctx, a.session.ID); err != nil {
			logger.Debug("Discarding session %s: %v", a.session.ID, err)
		}
	}

	a.session = msg.Session
	a.err = nil
	a.textView.SetSession(msg.Session)
	a.translateView.Reset(true)
	a.statusBar.SetDocument(msg.Session.Name)
	a.statusBar.SetState(status.StateLoading, "Analysing")

	return a, a.reportCmd(msg.Session)
}

func (a *App) handleReportReady(msg messages.ReportReady) {
	if a.session == nil || msg.SessionID != a.session.ID {
		return
	}
	if msg.Err != nil {
		a.err = msg.Err
		a.statusBar.SetState(status.StateError, domain.UserMessage(msg.Err))
		return
	}

	modelErr := a.modelErr()
	a.frequencyView.SetReport(msg.Report)
	a.posView.SetReport(msg.Report, modelErr)
	a.categoriesView.SetReport(msg.Report, modelErr)

	if modelErr != nil {
		a.statusBar.SetState(status.StateInfo, "No NLP model: frequency only")
		return
	}
	a.statusBar.SetState(status.StateReady, "")
}

// modelErr returns nil when tagging is available.
func (a *App) modelErr() error {
	if a.ports.Analysis.ModelAvailable() {
		return nil
	}
	if a.options.ModelErr != nil {
		return a.options.ModelErr
	}
	return domain.ErrModelUnavailable
}

// openCmd reads and loads the file at path.
func (a *App) openCmd(path string) tea.Cmd {
	ctx := a.ctx
	documents := a.ports.Documents
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return messages.DocumentLoaded{Err: err}
		}
		session, err := documents.Load(ctx, filepath.Base(path), data)
		return messages.DocumentLoaded{Session: session, Err: err}
	}
}

// reportCmd analyses the whole session. Every frequency row and every
// category the Categories tab can show are computed once so the tabs can
// change their view without another pass.
func (a *App) reportCmd(session *domain.Session) tea.Cmd {
	ctx := a.ctx
	analysis := a.ports.Analysis
	opts := domain.ReportOptions{Top: 0}
	if analysis.ModelAvailable() {
		opts.IncludePOS = true
		opts.Categories = a.categoriesView.Categories()
	}
	id, original, normalized := session.ID, session.Text, session.Normalized

	return func() tea.Msg {
		report, err := analysis.Report(ctx, original, normalized, opts)
		return messages.ReportReady{SessionID: id, Report: report, Err: err}
	}
}

// translateCmd translates the original text and stores the result on the session.
func (a *App) translateCmd(id, original string, source, target domain.Language) tea.Cmd {
	ctx := a.ctx
	translation := a.ports.Translation
	documents := a.ports.Documents
	return func() tea.Msg {
		translated, err := translation.Translate(ctx, original, source, target)
		if err != nil {
			return messages.TranslationCompleted{
				Text:   domain.TranslationFailureText(err),
				Source: source,
				Target: target,
				Err:    err,
			}
		}
		if err := documents.SetTranslation(ctx, id, translated, source, target); err != nil {
			logger.Warn("Storing translation for %s: %v", id, err)
		}
		return messages.TranslationCompleted{Text: translated, Source: source, Target: target}
	}
}

// exportCmd writes the requested download into the export directory.
func (a *App) exportCmd(kind messages.ExportKind) tea.Cmd {
	var (
		name  string
		write func(f *os.File) error
	)
	switch kind {
	case messages.ExportFrequency:
		table := a.frequencyView.Table()
		name = driving.DefaultFrequencyFile
		write = func(f *os.File) error { return a.ports.Export.WriteFrequencyCSV(f, table) }
	case messages.ExportTranslation:
		translation := a.translateView.Translation()
		name = driving.DefaultTranslationFile
		write = func(f *os.File) error { return a.ports.Export.WriteTranslation(f, translation) }
	default:
		return errorCmd(fmt.Errorf("export %s: %w", kind, domain.ErrInvalidInput))
	}

	path := filepath.Join(a.options.ExportDir, name)
	return func() tea.Msg {
		return messages.ExportCompleted{Kind: kind, Path: path, Err: writeExport(path, write)}
	}
}

func writeExport(path string, write func(f *os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return messages.ErrorOccurred{Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	switch {
	case a.showHelp:
		b.WriteString(a.styles.Subtitle.Render("Keys"))
		b.WriteString("\n\n")
		b.WriteString(a.help.View(a.keymap))
	case a.prompting:
		b.WriteString(a.styles.Subtitle.Render("Open document"))
		b.WriteString("\n\n")
		b.WriteString(a.prompt.View())
		b.WriteString("\n\n")
		b.WriteString(a.styles.Help.Render("[enter] open  [esc] cancel"))
	default:
		b.WriteString(a.activeView())
	}

	body := lipgloss.NewStyle().Height(max(a.height-chromeHeight, 1)).Render(b.String())
	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		a.statusBar.View(),
		a.help.ShortHelpView(a.keymap.ShortHelp()),
	)
}

func (a *App) renderTabs() string {
	title := a.styles.Title.Render("wortlens")
	parts := make([]string, 0, len(messages.Tabs()))
	for _, t := range messages.Tabs() {
		if t == a.tab {
			parts = append(parts, a.styles.ActiveTab.Render(t.String()))
			continue
		}
		parts = append(parts, a.styles.Tab.Render(t.String()))
	}
	return title + "  " + strings.Join(parts, a.styles.Muted.Render(" │ "))
}

func (a *App) activeView() string {
	switch a.tab {
	case messages.TabFrequency:
		return a.frequencyView.View()
	case messages.TabPOS:
		return a.posView.View()
	case messages.TabCategories:
		return a.categoriesView.View()
	case messages.TabTranslate:
		return a.translateView.View()
	default:
		return a.textView.View()
	}
}

// Run starts the TUI application and discards the session on exit.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if a.session != nil {
		if derr := a.ports.Documents.Discard(context.Background(), a.session.ID); derr != nil &&
			!errors.Is(derr, domain.ErrNotFound) {
			logger.Debug("Discarding session %s: %v", a.session.ID, derr)
		}
	}
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	contentHeight := max(height-chromeHeight-2, 1)
	a.statusBar.SetWidth(width)
	a.prompt.SetWidth(width)
	a.help.Width = width
	a.textView.SetDimensions(width, contentHeight)
	a.frequencyView.SetDimensions(width, contentHeight)
	a.posView.SetDimensions(width, contentHeight)
	a.categoriesView.SetDimensions(width, contentHeight)
	a.translateView.SetDimensions(width, contentHeight)
}

// Tab returns the active tab.
func (a *App) Tab() messages.Tab {
	return a.tab
}

// Session returns the loaded document, or nil.
func (a *App) Session() *domain.Session {
	return a.session
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// Prompting reports whether the open prompt is shown.
func (a *App) Prompting() bool {
	return a.prompting
}

// ShowingHelp reports whether the help overlay is shown.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// StatusMessage returns the status bar message.
func (a *App) StatusMessage() string {
	return a.statusBar.Message()
}
