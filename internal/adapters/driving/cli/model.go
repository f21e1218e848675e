package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage the NLP model",
	Long: `Show or download the NLP model used for part-of-speech tagging.

The model is resolved once at startup: a copy in ~/.wortlens/models is
preferred, then the model built into the binary, then nlp.model_url.
nlp.model_url has no default; set it to pull a model from a mirror.`,
}

var modelInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the loaded model",
	RunE:  runModelInfo,
}

var modelPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the model from nlp.model_url",
	RunE:  runModelPull,
}

func init() {
	modelCmd.AddCommand(modelInfoCmd)
	modelCmd.AddCommand(modelPullCmd)
	rootCmd.AddCommand(modelCmd)
}

func runModelInfo(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if !a.ModelLoaded() {
		cmd.Printf("Model %s is not available.\n", a.Config.NLP.Model)
		if a.ModelErr != nil {
			cmd.Printf("  Reason: %v\n", a.ModelErr)
		}
		cmd.Println("Run 'wortlens model pull' to download it.")
		return nil
	}

	printModelInfo(cmd, a.ModelInfo)
	return nil
}

func runModelPull(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if a.Config.NLP.ModelURL == "" {
		return fmt.Errorf("model pull: set nlp.model_url in config.toml or WORTLENS_NLP_MODEL_URL: %w",
			domain.ErrInvalidInput)
	}

	cmd.Printf("Downloading %s from %s...\n", a.Config.NLP.Model, a.Config.NLP.ModelURL)
	info, err := a.Models.Pull(cmd.Context())
	if err != nil {
		return fmt.Errorf("model pull failed: %w", err)
	}

	printModelInfo(cmd, info)
	if info.Path == "" {
		cmd.Println("Warning: the model could not be saved and will be downloaded again next time.")
	}
	return nil
}

func printModelInfo(cmd *cobra.Command, info driven.ModelInfo) {
	heading(cmd, "Model: "+info.Name)
	lang := info.Language
	if lang == "" {
		lang = domain.Language("unknown")
	}
	cmd.Printf("  Language: %s\n", lang)
	if info.Version != "" {
		cmd.Printf("  Version:  %s\n", info.Version)
	}
	cmd.Printf("  Source:   %s\n", info.Source)
	if info.Path != "" {
		cmd.Printf("  Path:     %s\n", info.Path)
	}
	cmd.Printf("  Entries:  %d\n", info.Entries)
	cmd.Printf("  Rules:    %d\n", info.Rules)
}
