// Package cli provides the cobra command tree for wortlens.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/wortlens/internal/app"
	"github.com/custodia-labs/wortlens/internal/config"
	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=1.2.3".
var version = "dev"

var (
	cfgFile string
	homeDir string
	verbose bool
)

// application is built once per process by the root PersistentPreRunE.
var application *app.App

// flagBindings maps config keys to the command flags that override them.
// Each command registers its own bindings in init.
var flagBindings = map[string][]*pflag.Flag{}

// commands that never need the NLP model.
var skipModel = map[string]bool{
	"extract":     true,
	"frequency":   true,
	"translate":   true,
	"translation": true,
	"settings":    true,
	"show":        true,
	"set":         true,
	"reset":       true,
	"wizard":      true,
	"pull":        true,
}

// requiresModel reports whether cmd aborts when no model could be loaded.
// model info reports the failure itself.
func requiresModel(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "info":
		return false
	case "analyze":
		return !analyzeNoPOS
	}
	return !skipModel[cmd.Name()]
}

var rootCmd = &cobra.Command{
	Use:   "wortlens",
	Short: "Analyse and translate German documents",
	Long: `wortlens extracts text from .txt, .pdf and .docx documents, counts word
frequencies, tags parts of speech, groups words by grammatical category
and translates the text.

Run 'wortlens tui FILE' for the interactive interface or 'wortlens serve'
for the HTTP API.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.wortlens/config.toml)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "wortlens home directory (default ~/.wortlens)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// bindFlag registers a command flag as an override for a config key.
func bindFlag(key string, cmd *cobra.Command, name string) {
	if f := cmd.Flags().Lookup(name); f != nil {
		flagBindings[key] = append(flagBindings[key], f)
	}
}

func initApp(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if application != nil {
		return nil
	}
	switch cmd.Name() {
	case "help", "version", "completion":
		return nil
	}

	flags := make(map[string]*pflag.Flag)
	for key, bound := range flagBindings {
		for _, f := range bound {
			if f.Changed {
				flags[key] = f
			}
		}
	}

	cfg, err := config.Load(config.Options{Dir: homeDir, File: cfgFile, Flags: flags})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := app.New(cmd.Context(), cfg, app.Options{SkipModel: skipModel[cmd.Name()]})
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	if a.ModelErr != nil && cfg.NLP.Required && requiresModel(cmd) {
		_ = a.Close()
		return fmt.Errorf("%w (set nlp.required = false to run without parts of speech)", a.ModelErr)
	}
	application = a
	return nil
}

// SetApp injects a prepared application, bypassing configuration loading.
func SetApp(a *app.App) {
	application = a
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()
	if application != nil {
		if cerr := application.Close(); cerr != nil {
			logger.Warn("Close: %v", cerr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), domain.UserMessage(err))
		os.Exit(1)
	}
}

// requireApp returns the application or an error when initialisation was skipped.
func requireApp() (*app.App, error) {
	if application == nil {
		return nil, errors.New("application not initialised")
	}
	return application, nil
}

