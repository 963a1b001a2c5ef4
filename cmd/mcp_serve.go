package cmd

import (
	"github.com/chris-regnier/diarybook/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes diary tools
over stdio transport.

Available tools:
  - list_entries: List entries in chronological order
  - search_entries: Substring or fuzzy search over identifiers and content
  - get_entry: Read one entry
  - create_entry: Create an entry stamped with the current minute
  - save_entry: Replace an entry's content
  - export_entry: Write an entry to a file

Example client config:
  {
    "mcpServers": {
      "diarybook": {
        "command": "/path/to/diarybook",
        "args": ["mcp-serve", "--data-dir", "/home/me/diary_entries"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	// Storage is already initialized in PersistentPreRunE
	if store == nil {
		return cmd.Help()
	}

	server := mcptools.CreateMCPServer(store, Version)

	// stdout is reserved for the protocol; logs go to stderr or log_file
	logger.Info("starting MCP server",
		"transport", "stdio",
		"storage", appConfig.Storage,
		"data_dir", appConfig.DataDir,
		"entries", store.Len(),
	)

	// Blocks until the client closes the transport
	err := server.Run(cmd.Context(), &mcp.StdioTransport{})
	logger.Info("MCP server stopped", "error", err)
	return err
}
