package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wortlens/internal/app"
	"github.com/custodia-labs/wortlens/internal/core/analysis"
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

var (
	analyzeTop        int
	analyzeCategories []string
	analyzeLimit      int
	analyzeJSON       bool
	analyzeWatch      bool
	analyzeNoPOS      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Word frequency, parts of speech and category expansion",
	Long: `Analyse a document: text statistics, the most frequent words, counts per
part of speech and the words of selected grammatical categories.

Categories accept labels (NOUN, VERB, ADJ) or names (noun, adjective).
With --watch the analysis is repeated whenever the file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeTop, "top", "t", 10, "number of frequency rows (0 = all)")
	analyzeCmd.Flags().StringSliceVarP(&analyzeCategories, "categories", "c", nil, "categories to expand (default NOUN,VERB,ADJ)")
	analyzeCmd.Flags().IntVarP(&analyzeLimit, "limit", "l", 10, "words shown per category (0 = all)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the report as JSON")
	analyzeCmd.Flags().BoolVarP(&analyzeWatch, "watch", "w", false, "re-run when the file changes")
	analyzeCmd.Flags().BoolVar(&analyzeNoPOS, "no-pos", false, "skip part-of-speech analysis")
	bindFlag("analysis.top", analyzeCmd, "top")
	bindFlag("analysis.categories", analyzeCmd, "categories")
	bindFlag("display.expand_limit", analyzeCmd, "limit")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	path := args[0]

	if !analyzeWatch {
		return analyzeFile(cmd, a, path)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := analyzeFile(cmd, a, path); err != nil {
		cmd.PrintErrln("Error:", domain.UserMessage(err))
	}
	cmd.PrintErrf("Watching %s (Ctrl+C to stop)\n", path)

	err = watchFile(ctx, path, func() {
		cmd.Println()
		if err := analyzeFile(cmd, a, path); err != nil {
			cmd.PrintErrln("Error:", domain.UserMessage(err))
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func analyzeFile(cmd *cobra.Command, a *app.App, path string) error {
	name, content, err := readDocument(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	text, err := a.Documents.Extract(ctx, domain.NewDocument(name, content))
	if err != nil {
		return err
	}

	opts, err := reportOptions(a)
	if err != nil {
		return err
	}

	report, err := a.Analysis.Report(ctx, text, analysis.Normalize(text), opts)
	if err != nil {
		return err
	}

	if analyzeJSON {
		return printJSON(cmd, report)
	}
	printReport(cmd, name, report, opts, a.Config.Display.ExpandLimit)
	if !opts.IncludePOS && !analyzeNoPOS {
		cmd.PrintErrln("Note: no NLP model loaded, parts of speech skipped. Run 'wortlens model pull'.")
	}
	return nil
}

func reportOptions(a *app.App) (domain.ReportOptions, error) {
	opts := domain.ReportOptions{Top: a.Config.Analysis.Top}
	if analyzeNoPOS || !a.ModelLoaded() {
		return opts, nil
	}

	categories, err := a.Config.Categories()
	if err != nil {
		return opts, err
	}
	opts.IncludePOS = true
	opts.Categories = categories
	return opts, nil
}

func printReport(cmd *cobra.Command, name string, report *domain.Report, opts domain.ReportOptions, limit int) {
	heading(cmd, "Document: "+name)
	s := report.Stats
	cmd.Printf("  Characters: %d\n", s.Characters)
	cmd.Printf("  Sentences:  %d\n", s.Sentences)
	cmd.Printf("  Tokens:     %d (%d distinct)\n", s.Tokens, s.DistinctTokens)
	if opts.IncludePOS {
		cmd.Printf("  Lexical density: %.2f\n", s.LexicalDensity)
	}
	cmd.Println()

	heading(cmd, "Word frequency")
	if len(report.Frequency) == 0 {
		cmd.Println("  (no words)")
	} else {
		rows := make([][]string, len(report.Frequency))
		for i, e := range report.Frequency {
			rows[i] = []string{e.Word, strconv.Itoa(e.Count)}
		}
		renderTable(cmd.OutOrStdout(), []string{"Word", "Frequency"}, rows)
	}

	if !opts.IncludePOS {
		return
	}

	cmd.Println()
	heading(cmd, "Parts of speech")
	rows := make([][]string, len(report.POS))
	for i, e := range report.POS {
		rows[i] = []string{e.Category.String(), strconv.Itoa(e.Count)}
	}
	renderTable(cmd.OutOrStdout(), []string{"Category", "Count"}, rows)

	if len(opts.Categories) == 0 {
		return
	}
	cmd.Println()
	heading(cmd, "Categories")
	for _, c := range opts.Categories {
		cmd.Printf("  %s: %s\n", c, formatWords(report.Categories, c, limit))
	}
}

// formatWords joins the first limit words of a category.
func formatWords(m domain.CategoryMap, c domain.Category, limit int) string {
	words := m.Head(c, limit)
	if len(words) == 0 {
		return "(none)"
	}
	out := strings.Join(words, ", ")
	if rest := len(m[c]) - len(words); rest > 0 {
		out += fmt.Sprintf(" (+%d more)", rest)
	}
	return out
}
