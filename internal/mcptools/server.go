package mcptools

import (
	"context"

	"github.com/chris-regnier/diarybook/internal/diary"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewDiaryMCPServer creates an in-memory MCP server exposing diary tools.
// Returns the server and a client transport for connecting to it.
func NewDiaryMCPServer(store *diary.Store) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(store, "dev")

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered diary tools.
func CreateMCPServer(store *diary.Store, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "diarybook",
		Version: version,
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_entries",
		Description: "List diary entries in chronological order with a short preview",
	}, ListHandler(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_entries",
		Description: "Find diary entries whose identifier or content contains the query",
	}, SearchHandler(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_entry",
		Description: "Read the full content of one diary entry",
	}, GetHandler(store))

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_entry",
		Description: "Create a diary entry stamped with the current minute",
	}, CreateEntryHandler(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_entry",
		Description: "Replace the content of a diary entry and persist it",
	}, SaveEntryHandler(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_entry",
		Description: "Write a diary entry to a file as text, markdown or JSON",
	}, ExportEntryHandler(store))

	return server
}
