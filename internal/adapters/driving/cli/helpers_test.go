package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wortlens/internal/app"
	"github.com/custodia-labs/wortlens/internal/config"
	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/logger"
)

const sampleText = "Der Hund läuft. Der Hund bellt."

// stubTranslator upper-cases text or fails with err.
type stubTranslator struct{ err error }

func (s *stubTranslator) Translate(_ context.Context, req domain.TranslationRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return strings.ToUpper(req.Text), nil
}

func (s *stubTranslator) Name() string { return "stub" }

func (s *stubTranslator) Close() error { return nil }

// setupTestApp builds an application rooted in a temporary directory and
// injects it. configure may adjust the configuration first.
func setupTestApp(t *testing.T, configure func(*config.Config), opts app.Options) *app.App {
	t.Helper()

	cfg := config.Default(t.TempDir())
	cfg.NLP.ModelURL = ""
	if configure != nil {
		configure(cfg)
	}
	if opts.Translator == nil {
		opts.Translator = &stubTranslator{}
	}

	a, err := app.New(context.Background(), cfg, opts)
	require.NoError(t, err)

	old := application
	SetApp(a)
	t.Cleanup(func() {
		application = old
		_ = a.Close()
		logger.SetOutput(os.Stderr)
	})
	return a
}

// withoutModel disables every model source.
func withoutModel(cfg *config.Config) {
	cfg.NLP.DisableBundled = true
}

// runCLI executes the root command with args and returns everything written
// to stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIWithInput(t, "", args...)
}

func runCLIWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
