package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the defaults used by every command: expansion categories,
translation languages and backend, and the number of frequency rows.

Settings are stored in ~/.wortlens/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"get"},
	Short:   "Show current settings",
	RunE:    runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE...",
	Short: "Change a setting",
	Long: `Change one setting.

Keys:
  categories NOUN VERB ...   default expansion categories
  languages  SOURCE TARGET   default translation languages
  provider   NAME            google, openai, gemini, ollama or anthropic
  top        N               default number of frequency rows
  model      NAME            LLM model (empty value clears it)
  base-url   URL             backend endpoint (empty value clears it)
  api-key    [KEY]           API key, prompted for when omitted`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	RunE:  runSettingsReset,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func settingsService() (driving.SettingsService, error) {
	a, err := requireApp()
	if err != nil {
		return nil, err
	}
	if a.SettingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return a.SettingsService, nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Analysis]")
	cmd.Printf("  Categories: %s\n", joinCategories(settings.Categories))
	cmd.Printf("  Top: %d\n", settings.Top)
	cmd.Println()

	cmd.Println("[Translation]")
	cmd.Printf("  Languages: %s -> %s\n", settings.SourceLanguage, settings.TargetLanguage)
	cmd.Printf("  Provider: %s\n", settings.Provider.Description())
	if settings.Model != "" {
		cmd.Printf("  Model: %s\n", settings.Model)
	}
	if settings.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.BaseURL)
	}
	if settings.Provider.RequiresAPIKey() {
		if settings.APIKey != "" {
			cmd.Printf("  API Key: %s\n", settings.MaskedAPIKey())
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	key, values := args[0], args[1:]
	if err := applySetting(cmd, svc, key, values); err != nil {
		return err
	}
	cmd.Printf("Updated %s.\n", key)
	return nil
}

func applySetting(cmd *cobra.Command, svc driving.SettingsService, key string, values []string) error {
	switch key {
	case "categories":
		categories, err := domain.ParseCategories(values)
		if err != nil {
			return err
		}
		return svc.SetCategories(categories)

	case "languages":
		if len(values) != 2 {
			return errors.New("languages needs SOURCE and TARGET")
		}
		source, err := domain.ParseLanguage(values[0])
		if err != nil {
			return err
		}
		target, err := domain.ParseLanguage(values[1])
		if err != nil {
			return err
		}
		return svc.SetLanguages(source, target)

	case "provider":
		if len(values) != 1 {
			return errors.New("provider needs exactly one NAME")
		}
		return svc.SetProvider(domain.TranslationProvider(strings.ToLower(values[0])))

	case "top":
		if len(values) != 1 {
			return errors.New("top needs exactly one number")
		}
		n, err := strconv.Atoi(values[0])
		if err != nil {
			return fmt.Errorf("top: %w", domain.ErrInvalidInput)
		}
		return svc.SetTop(n)

	case "model", "base-url", "api-key":
		settings, err := svc.Get()
		if err != nil {
			return err
		}
		value := strings.Join(values, " ")
		switch key {
		case "model":
			settings.Model = value
		case "base-url":
			settings.BaseURL = value
		default:
			if len(values) == 0 {
				cmd.Print("Enter API key: ")
				value = readSecret(cmd, bufio.NewReader(cmd.InOrStdin()))
				cmd.Println()
			}
			settings.APIKey = value
		}
		return svc.SetBackendOptions(settings.Model, settings.BaseURL, settings.APIKey)

	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	if err := svc.Reset(); err != nil {
		return err
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	current, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("wortlens Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Translation provider
	cmd.Println("Step 1: Select Translation Provider")
	cmd.Println("-----------------------------------")
	providers := domain.AllTranslationProviders()
	defaultIdx := 1
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
		if p == current.Provider {
			defaultIdx = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultIdx)
	current.Provider = providers[parseChoice(readLine(reader), len(providers), defaultIdx)-1]

	if current.Provider != domain.ProviderGoogle {
		cmd.Printf("Enter model name [%s]: ", current.Model)
		if model := readLine(reader); model != "" {
			current.Model = model
		}
	}
	if current.Provider.RequiresAPIKey() {
		cmd.Print("Enter API key (leave empty to keep): ")
		if key := readSecret(cmd, reader); key != "" {
			current.APIKey = key
		}
		cmd.Println()
		if current.APIKey == "" {
			return errors.New("API key is required for this provider")
		}
	}
	cmd.Println()

	// Step 2: Languages
	cmd.Println("Step 2: Translation Languages")
	cmd.Println("-----------------------------")
	cmd.Printf("Source language [%s]: ", current.SourceLanguage)
	if l, err := domain.ParseLanguage(readLine(reader)); err == nil {
		current.SourceLanguage = l
	}
	cmd.Printf("Target language [%s]: ", current.TargetLanguage)
	if l, err := domain.ParseLanguage(readLine(reader)); err == nil {
		current.TargetLanguage = l
	}
	cmd.Println()

	// Step 3: Analysis
	cmd.Println("Step 3: Analysis Defaults")
	cmd.Println("-------------------------")
	cmd.Printf("Categories [%s]: ", joinCategories(current.Categories))
	if input := readLine(reader); input != "" {
		categories, err := domain.ParseCategories(strings.FieldsFunc(input, isListSeparator))
		if err != nil {
			return err
		}
		current.Categories = categories
	}
	cmd.Printf("Frequency rows [%d]: ", current.Top)
	current.Top = parseChoice(readLine(reader), 1<<20, current.Top)

	if err := svc.Save(current); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println()
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readSecret reads without echo when stdin is a terminal.
func readSecret(cmd *cobra.Command, reader *bufio.Reader) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func joinCategories(categories []domain.Category) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}

func isListSeparator(r rune) bool {
	return r == ',' || r == ' '
}
