package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wortlens/internal/core/analysis"
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

var extractNormalized bool

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Print the text of a document",
	Long: `Extract the plain text of a .txt, .pdf or .docx document.

With --normalized the text is lower-cased and stripped of punctuation, as
used for frequency analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVarP(&extractNormalized, "normalized", "n", false, "print the normalised text")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	name, content, err := readDocument(args[0])
	if err != nil {
		return err
	}

	text, err := a.Documents.Extract(cmd.Context(), domain.NewDocument(name, content))
	if err != nil {
		return err
	}
	if extractNormalized {
		text = analysis.Normalize(text)
	}

	cmd.Print(text)
	if !strings.HasSuffix(text, "\n") {
		cmd.Println()
	}
	return nil
}
