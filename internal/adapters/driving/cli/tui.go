package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/tui"
	"github.com/custodia-labs/wortlens/internal/app"
)

var tuiExportDir string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [FILE]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface. FILE is opened on start;
press o to open another document.

Tabs:
  Text        original text, space toggles the normalised form
  Frequency   most frequent words, +/- change the row count
  Parts of speech
  Categories  space toggles NOUN, VERB, ADJ, ADV, PRON, DET
  Translate   s/d cycle source/target, x swaps, enter translates

Controls:
  tab/shift+tab  Switch tab
  e              Export (frequency CSV or translation)
  ?              Toggle help
  q              Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiExportDir, "export-dir", "o", ".", "directory exported files are written to")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	a, err := requireApp()
	if err != nil {
		return err
	}

	opts, err := tuiOptions(a, args)
	if err != nil {
		return err
	}

	ui, err := tui.NewApp(tuiPorts(a), opts)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	ui.WithContext(cmd.Context())

	if err := ui.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func tuiPorts(a *app.App) *tui.Ports {
	return &tui.Ports{
		Documents:   a.Documents,
		Analysis:    a.Analysis,
		Translation: a.Translation,
		Export:      a.Export,
	}
}

func tuiOptions(a *app.App, args []string) (tui.Options, error) {
	categories, err := a.Config.Categories()
	if err != nil {
		return tui.Options{}, err
	}
	languages, err := a.Config.Languages()
	if err != nil {
		return tui.Options{}, err
	}
	source, target := a.DefaultLanguages()

	opts := tui.Options{
		Top:        a.Config.Analysis.Top,
		Categories: categories,
		Limit:      a.Config.Display.ExpandLimit,
		Source:     source,
		Target:     target,
		Languages:  languages,
		ExportDir:  tuiExportDir,
		ModelErr:   a.ModelErr,
	}
	if len(args) > 0 {
		opts.Path = args[0]
	}
	return opts, nil
}
