package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chris-regnier/diarybook/internal/diary"
	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultSearchLimit = 10
	previewLen         = 100
)

func result(store *diary.Store, e entry.Entry, score int) EntryResult {
	return EntryResult{
		ID:      e.ID,
		Preview: e.Preview(previewLen),
		Score:   score,
		Unsaved: store.Unsaved(e.ID),
	}
}

// ListHandler returns the handler function for the list_entries MCP tool.
func ListHandler(store *diary.Store) func(ctx context.Context, req *mcp.CallToolRequest, input ListEntriesInput) (*mcp.CallToolResult, ListEntriesOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListEntriesInput) (*mcp.CallToolResult, ListEntriesOutput, error) {
		entries := store.Entries()
		if input.Limit > 0 && len(entries) > input.Limit {
			entries = entries[:input.Limit]
		}
		results := make([]EntryResult, 0, len(entries))
		for _, e := range entries {
			results = append(results, result(store, e, 0))
		}
		return nil, ListEntriesOutput{Entries: results}, nil
	}
}

// SearchHandler returns the handler function for the search_entries MCP tool.
func SearchHandler(store *diary.Store) func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = defaultSearchLimit
		}

		results := make([]EntryResult, 0, limit)
		if input.Fuzzy && strings.TrimSpace(input.Query) != "" {
			for _, m := range store.Fuzzy(input.Query) {
				if len(results) >= limit {
					break
				}
				results = append(results, result(store, m.Entry, m.Score))
			}
			return nil, SearchOutput{Entries: results}, nil
		}

		for _, id := range store.Filter(input.Query) {
			if len(results) >= limit {
				break
			}
			content, _ := store.Content(id)
			results = append(results, result(store, entry.Entry{ID: id, Content: content}, 0))
		}
		return nil, SearchOutput{Entries: results}, nil
	}
}

// GetHandler returns the handler function for the get_entry MCP tool.
func GetHandler(store *diary.Store) func(ctx context.Context, req *mcp.CallToolRequest, input GetEntryInput) (*mcp.CallToolResult, GetEntryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetEntryInput) (*mcp.CallToolResult, GetEntryOutput, error) {
		content, err := store.Get(input.ID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, GetEntryOutput{}, fmt.Errorf("%w: no entry %q", storage.ErrNotFound, input.ID)
		}
		if err != nil {
			return nil, GetEntryOutput{}, err
		}
		return nil, GetEntryOutput{
			ID:      input.ID,
			Content: content,
			Unsaved: store.Unsaved(input.ID),
		}, nil
	}
}
