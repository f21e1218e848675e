package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wortlens/internal/core/analysis"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
)

var (
	exportFrequencyOut   string
	exportTranslationOut string
	exportFrom           string
	exportTo             string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export analysis results",
	Long:  `Write the word frequency table as CSV or the translation as UTF-8 text.`,
}

var exportFrequencyCmd = &cobra.Command{
	Use:   "frequency FILE",
	Short: "Export word frequencies as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportFrequency,
}

var exportTranslationCmd = &cobra.Command{
	Use:   "translation FILE",
	Short: "Export the translated text",
	Long: `Translate a document and write the result to a text file.

Unlike 'wortlens translate', a failed translation is an error and no file
is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportTranslation,
}

func init() {
	exportFrequencyCmd.Flags().StringVarP(&exportFrequencyOut, "out", "o", driving.DefaultFrequencyFile, "output file (- for stdout)")
	exportTranslationCmd.Flags().StringVarP(&exportTranslationOut, "out", "o", driving.DefaultTranslationFile, "output file (- for stdout)")
	exportTranslationCmd.Flags().StringVarP(&exportFrom, "from", "f", "de", "source language")
	exportTranslationCmd.Flags().StringVarP(&exportTo, "to", "t", "id", "target language")
	bindFlag("translate.source", exportTranslationCmd, "from")
	bindFlag("translate.target", exportTranslationCmd, "to")

	exportCmd.AddCommand(exportFrequencyCmd)
	exportCmd.AddCommand(exportTranslationCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportFrequency(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	text, err := extractFile(cmd, a, args[0])
	if err != nil {
		return err
	}
	table, err := a.Analysis.Frequency(cmd.Context(), analysis.Normalize(text))
	if err != nil {
		return err
	}

	return writeOutput(cmd, exportFrequencyOut, func(w io.Writer) error {
		return a.Export.WriteFrequencyCSV(w, table)
	})
}

func runExportTranslation(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	text, err := extractFile(cmd, a, args[0])
	if err != nil {
		return err
	}

	source, target := a.DefaultLanguages()
	translated, err := a.Translation.Translate(cmd.Context(), text, source, target)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	return writeOutput(cmd, exportTranslationOut, func(w io.Writer) error {
		return a.Export.WriteTranslation(w, translated)
	})
}
