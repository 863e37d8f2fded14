package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/encephalon/internal/adapters/driving/mcp"
	"github.com/custodia-labs/encephalon/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server exposing the search, ask and
ingestions tools.

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead.

Client configuration:
  {
    "mcpServers": {
      "encephalon": {
        "command": "/path/to/encephalon",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	b, err := getBackend()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	ports := &mcp.Ports{}
	if ports.Search, err = b.Search(ctx); err != nil {
		return err
	}
	if ports.Ingest, err = b.Ingest(ctx); err != nil {
		return err
	}
	// The server still serves search without a model.
	if ports.Answer, err = b.Answer(ctx); err != nil {
		logger.Warn("ask tool disabled: %v", err)
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}
	return server.Run(ctx)
}
