package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wortlens/internal/app"
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

var (
	translateFrom string
	translateTo   string
	translateOut  string
)

var translateCmd = &cobra.Command{
	Use:   "translate FILE",
	Short: "Translate a document",
	Long: `Translate the extracted text of a document with the configured backend.

The backend is chosen with translate.provider (google, openai, gemini,
ollama or anthropic). A failed translation is printed as text starting
with "Error:" and the command still succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().StringVarP(&translateFrom, "from", "f", "de", "source language")
	translateCmd.Flags().StringVarP(&translateTo, "to", "t", "id", "target language")
	translateCmd.Flags().StringVarP(&translateOut, "out", "o", "-", "output file (- for stdout)")
	bindFlag("translate.source", translateCmd, "from")
	bindFlag("translate.target", translateCmd, "to")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	text, err := extractFile(cmd, a, args[0])
	if err != nil {
		return err
	}

	source, target := a.DefaultLanguages()
	translated := a.Translation.TranslateForDisplay(cmd.Context(), text, source, target)

	return writeOutput(cmd, translateOut, func(w io.Writer) error {
		_, err := io.WriteString(w, translated)
		if err == nil && !strings.HasSuffix(translated, "\n") {
			_, err = io.WriteString(w, "\n")
		}
		return err
	})
}

// extractFile reads and extracts a document argument.
func extractFile(cmd *cobra.Command, a *app.App, path string) (string, error) {
	name, content, err := readDocument(path)
	if err != nil {
		return "", err
	}
	return a.Documents.Extract(cmd.Context(), domain.NewDocument(name, content))
}
