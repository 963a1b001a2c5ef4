package cmd

import (
	"io"

	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/ui"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <id> <content...|->",
	Short: "Save content under an entry identifier",
	Long: `Write content for the given identifier, replacing whatever was stored
before. Use "-" to read the content from stdin.`,
	Example: `  diarybook save "2024-01-01 10:00" "Hello"
  diarybook save "2024-01-01 10:00" - < notes.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveRun(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], args[1:])
	},
}

func saveRun(w io.Writer, r io.Reader, id string, args []string) error {
	content, err := readContent(r, args)
	if err != nil {
		return err
	}
	if err := store.Save(id, content); err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, entry.Entry{ID: id, Content: content})
	}
	ui.FormatEntrySaved(w, id)
	return nil
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
