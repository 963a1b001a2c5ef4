package cmd

import (
	"bytes"
	"io"

	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/ui"
	"github.com/spf13/cobra"
)

var (
	searchFuzzy  bool
	searchIDOnly bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find entries by identifier or content",
	Long: `List entries whose identifier or content contains the query,
ignoring case. With --fuzzy, entries are ranked by fuzzy match instead.`,
	Example: `  diarybook search grocery
  diarybook search 2024-01
  diarybook search --fuzzy mtgnts`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return searchRun(cmd.OutOrStdout(), query, searchFuzzy, searchIDOnly)
	},
}

func searchRun(w io.Writer, query string, fuzzy, idOnly bool) error {
	var entries []entry.Entry
	if fuzzy {
		for _, m := range store.Fuzzy(query) {
			entries = append(entries, m.Entry)
		}
	} else {
		for _, id := range store.Filter(query) {
			content, _ := store.Content(id)
			entries = append(entries, entry.Entry{ID: id, Content: content})
		}
	}

	if idOnly {
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		ui.FormatIDs(w, ids)
		return nil
	}
	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(entries))
	}

	var buf bytes.Buffer
	ui.FormatEntryList(&buf, entries)
	return pager().OutputOrPage(w, buf.String(), false)
}

func init() {
	searchCmd.Flags().BoolVar(&searchFuzzy, "fuzzy", false, "rank entries by fuzzy match")
	searchCmd.Flags().BoolVar(&searchIDOnly, "id-only", false, "print just entry IDs, one per line")
	rootCmd.AddCommand(searchCmd)
}
