package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/wortlens/internal/app"
)

var (
	serveAddr string
	serveJSON bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API.

Upload a document to POST /api/v1/documents (multipart field "file") and use
the returned session ID with the analysis, translation and export endpoints.
Sessions are kept in memory and expire after server.session_ttl.

Examples:
  wortlens serve
  wortlens serve --addr 127.0.0.1:9000 --json-logs`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveJSON, "json-logs", false, "log requests as JSON")
	bindFlag("server.addr", serveCmd, "addr")
	bindFlag("server.json_logs", serveCmd, "json-logs")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	server, err := newHTTPServer(a)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !a.ModelLoaded() {
		cmd.PrintErrln("Note: NLP model not loaded, part-of-speech endpoints return 503")
	}
	cmd.Printf("wortlens API listening on %s (translation: %s)\n", a.Config.Server.Addr, a.Translation.Provider())
	return server.Run(ctx, a.Config.Server.Addr)
}

// newHTTPServer wires the application services into the HTTP API.
func newHTTPServer(a *app.App) (*httpapi.Server, error) {
	source, target := a.DefaultLanguages()
	return httpapi.NewServer(&httpapi.Ports{
		Documents:   a.Documents,
		Analysis:    a.Analysis,
		Translation: a.Translation,
		Export:      a.Export,
	}, httpapi.Config{
		MaxUploadBytes: a.Config.Extract.MaxBytes,
		CORSOrigins:    a.Config.Server.CORSOrigins,
		Top:            a.Config.Analysis.Top,
		Source:         source,
		Target:         target,
		JSONLogs:       a.Config.Server.JSONLogs,
	})
}
