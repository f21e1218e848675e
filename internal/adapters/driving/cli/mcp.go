package cli

import (
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wortlens/internal/adapters/driving/mcp"
	"github.com/custodia-labs/wortlens/internal/app"
	"github.com/custodia-labs/wortlens/internal/config"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can analyse
and translate German text with wortlens.

Tools: analyze_text, expand_categories, translate_text, load_document.

By default the server communicates over stdio. Use --port to serve
streamable HTTP instead, e.g. for the MCP Inspector. HTTP listens on
127.0.0.1 unless --host says otherwise; load_document reads local files,
so only widen it on a trusted network.

Examples:
  # Stdio mode (default)
  wortlens mcp serve

  # HTTP mode
  wortlens mcp serve --port 8090

Client configuration:
  {
    "mcpServers": {
      "wortlens": {
        "command": "/path/to/wortlens",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "127.0.0.1", "HTTP listen host")
	bindFlag("mcp.port", mcpServeCmd, "port")
	bindFlag("mcp.host", mcpServeCmd, "host")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	server, err := newMCPServer(a)
	if err != nil {
		return err
	}

	if addr := mcpAddr(a.Config); addr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

// mcpAddr returns the HTTP listen address, or "" for stdio.
func mcpAddr(cfg *config.Config) string {
	if cfg.MCP.Port <= 0 {
		return ""
	}
	host := cfg.MCP.Host
	if host == "" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, strconv.Itoa(cfg.MCP.Port))
}

func newMCPServer(a *app.App) (*mcp.Server, error) {
	source, target := a.DefaultLanguages()
	return mcp.NewServer(&mcp.Ports{
		Analysis:    a.Analysis,
		Translation: a.Translation,
		Documents:   a.Documents,
	}, mcp.Defaults{
		Top:    a.Config.Analysis.Top,
		Source: source,
		Target: target,
	})
}
