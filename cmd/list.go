package cmd

import (
	"bytes"
	"io"

	"github.com/chris-regnier/diarybook/internal/ui"
	"github.com/spf13/cobra"
)

var listIDOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries",
	Long:  "List every diary entry with a preview, oldest first.",
	Example: `  diarybook list
  diarybook list --id-only
  diarybook list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun(cmd.OutOrStdout(), listIDOnly)
	},
}

func listRun(w io.Writer, idOnly bool) error {
	entries := store.Entries()

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
	listCmd.Flags().BoolVar(&listIDOnly, "id-only", false, "print just entry IDs, one per line")
	rootCmd.AddCommand(listCmd)
}
