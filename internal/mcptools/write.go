package mcptools

import (
	"context"

	"github.com/chris-regnier/diarybook/internal/diary"
	"github.com/chris-regnier/diarybook/internal/export"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateEntryHandler returns the handler function for the create_entry MCP tool.
func CreateEntryHandler(store *diary.Store) func(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, CreateEntryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, CreateEntryOutput, error) {
		id, err := store.Create()
		if err != nil {
			return nil, CreateEntryOutput{}, err
		}
		if input.Content == "" {
			return nil, CreateEntryOutput{ID: id}, nil
		}
		if err := store.Save(id, input.Content); err != nil {
			return nil, CreateEntryOutput{}, err
		}
		return nil, CreateEntryOutput{ID: id, Saved: true}, nil
	}
}

// SaveEntryHandler returns the handler function for the save_entry MCP tool.
func SaveEntryHandler(store *diary.Store) func(ctx context.Context, req *mcp.CallToolRequest, input SaveEntryInput) (*mcp.CallToolResult, SaveEntryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SaveEntryInput) (*mcp.CallToolResult, SaveEntryOutput, error) {
		if err := store.Save(input.ID, input.Content); err != nil {
			return nil, SaveEntryOutput{}, err
		}
		return nil, SaveEntryOutput{ID: input.ID, Bytes: len(input.Content)}, nil
	}
}

// ExportEntryHandler returns the handler function for the export_entry MCP tool.
func ExportEntryHandler(store *diary.Store) func(ctx context.Context, req *mcp.CallToolRequest, input ExportEntryInput) (*mcp.CallToolResult, ExportEntryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ExportEntryInput) (*mcp.CallToolResult, ExportEntryOutput, error) {
		var f export.Format
		switch {
		case input.Format != "":
			parsed, err := export.ParseFormat(input.Format)
			if err != nil {
				return nil, ExportEntryOutput{}, err
			}
			f = parsed
		case input.Path != "":
			f = export.FormatFromPath(input.Path)
		default:
			f = export.FormatText
		}

		path := input.Path
		if path == "" {
			path = export.DefaultFilename(input.ID, f)
		}
		if err := store.Export(input.ID, path, f); err != nil {
			return nil, ExportEntryOutput{}, err
		}
		return nil, ExportEntryOutput{ID: input.ID, Path: path, Format: string(f)}, nil
	}
}
