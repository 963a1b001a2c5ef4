package mcptools

// ListEntriesInput is the input schema for the list_entries MCP tool.
type ListEntriesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of entries to return, oldest first"`
}

// ListEntriesOutput is the output schema for the list_entries MCP tool.
type ListEntriesOutput struct {
	Entries []EntryResult `json:"entries"`
}

// SearchInput is the input schema for the search_entries MCP tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"Text to look for in entry identifiers and content"`
	Fuzzy bool   `json:"fuzzy,omitempty" jsonschema:"Rank by fuzzy match instead of exact substring"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return"`
}

// SearchOutput is the output schema for the search_entries MCP tool.
type SearchOutput struct {
	Entries []EntryResult `json:"entries"`
}

// EntryResult is the common output format for entry listings.
type EntryResult struct {
	ID      string `json:"id"`
	Preview string `json:"preview"`
	Score   int    `json:"score,omitempty"`
	Unsaved bool   `json:"unsaved,omitempty"`
}

// GetEntryInput is the input schema for the get_entry MCP tool.
type GetEntryInput struct {
	ID string `json:"id" jsonschema:"Entry identifier, e.g. 2024-01-01 10:00"`
}

// GetEntryOutput is the output schema for the get_entry MCP tool.
type GetEntryOutput struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Unsaved bool   `json:"unsaved,omitempty"`
}

// CreateEntryInput is the input schema for the create_entry MCP tool.
type CreateEntryInput struct {
	Content string `json:"content,omitempty" jsonschema:"Initial content; the entry is saved immediately when set"`
}

// CreateEntryOutput is the output schema for the create_entry MCP tool.
type CreateEntryOutput struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}

// SaveEntryInput is the input schema for the save_entry MCP tool.
type SaveEntryInput struct {
	ID      string `json:"id" jsonschema:"Entry identifier to write"`
	Content string `json:"content" jsonschema:"Full replacement content"`
}

// SaveEntryOutput is the output schema for the save_entry MCP tool.
type SaveEntryOutput struct {
	ID    string `json:"id"`
	Bytes int    `json:"bytes"`
}

// ExportEntryInput is the input schema for the export_entry MCP tool.
type ExportEntryInput struct {
	ID     string `json:"id" jsonschema:"Entry identifier to export"`
	Path   string `json:"path,omitempty" jsonschema:"Destination file; defaults to the identifier with the format's extension"`
	Format string `json:"format,omitempty" jsonschema:"text, markdown or json; inferred from the path when empty"`
}

// ExportEntryOutput is the output schema for the export_entry MCP tool.
type ExportEntryOutput struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Format string `json:"format"`
}
