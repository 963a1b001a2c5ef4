package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chris-regnier/diarybook/internal/entry"
)

// previewLen is the rune width of list previews.
const previewLen = 60

// FormatEntryCreated formats a creation confirmation message.
func FormatEntryCreated(w io.Writer, id string) {
	fmt.Fprintf(w, "Created entry %s\n", id)
}

// FormatEntrySaved formats a save confirmation message.
func FormatEntrySaved(w io.Writer, id string) {
	fmt.Fprintf(w, "Saved entry %s\n", id)
}

// FormatNoChanges formats a "no changes" message.
func FormatNoChanges(w io.Writer, id string) {
	fmt.Fprintf(w, "No changes detected for entry %s.\n", id)
}

// FormatEntryFull formats an entry with its identifier as a header.
// The markdownStyle parameter controls glamour rendering (e.g. "dark", "light").
func FormatEntryFull(w io.Writer, e entry.Entry, markdownStyle string) {
	fmt.Fprintf(w, "Entry: %s\n\n", e.ID)
	if e.Content == "" {
		fmt.Fprintln(w, "(empty)")
		return
	}
	fmt.Fprintln(w, RenderMarkdownWithStyle(e.Content, 80, markdownStyle))
}

// FormatEntryList formats entries one per line with a content preview.
func FormatEntryList(w io.Writer, entries []entry.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No diary entries found.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", e.ID, e.Preview(previewLen))
	}
}

// FormatIDs writes one identifier per line.
func FormatIDs(w io.Writer, ids []string) {
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
}

// FormatExported reports a file export.
func FormatExported(w io.Writer, id, path string) {
	fmt.Fprintf(w, "Exported entry %s to %s\n", id, path)
}

// FormatCopied reports a clipboard export.
func FormatCopied(w io.Writer, id string) {
	fmt.Fprintf(w, "Copied entry %s to clipboard\n", id)
}

// ImportResult describes what happened to one imported file.
type ImportResult struct {
	File     string `json:"file"`
	ID       string `json:"id,omitempty"`
	Imported bool   `json:"imported"`
	Error    string `json:"error,omitempty"`
}

// FormatImportReport writes one line per file and a closing tally.
func FormatImportReport(w io.Writer, results []ImportResult) {
	var imported, skipped, failed int
	for _, r := range results {
		switch {
		case r.Error != "":
			failed++
			fmt.Fprintf(w, "failed   %s: %s\n", r.File, r.Error)
		case r.Imported:
			imported++
			fmt.Fprintf(w, "imported %s as %s\n", r.File, r.ID)
		default:
			skipped++
			fmt.Fprintf(w, "skipped  %s (duplicate of %s)\n", r.File, r.ID)
		}
	}
	fmt.Fprintf(w, "%d imported, %d skipped, %d failed\n", imported, skipped, failed)
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EntrySummary is a JSON representation for list output.
type EntrySummary struct {
	ID      string `json:"id"`
	Preview string `json:"preview"`
}

// ToSummaries converts entries to summary format for JSON list output.
func ToSummaries(entries []entry.Entry) []EntrySummary {
	summaries := make([]EntrySummary, len(entries))
	for i, e := range entries {
		summaries[i] = EntrySummary{ID: e.ID, Preview: e.Preview(previewLen)}
	}
	return summaries
}
