package cmd

import (
	"fmt"
	"io"

	"github.com/chris-regnier/diarybook/internal/editor"
	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a diary entry in your editor",
	Long: `Open an entry in your configured editor and save it when the content
changes. The editor comes from the editor config key, then $EDITOR, then
$VISUAL, falling back to vi.`,
	Example: `  diarybook edit "2024-01-01 10:00"
  EDITOR="code --wait" diarybook edit "2024-01-01 10:00"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editRun(cmd.OutOrStdout(), args[0], editor.ResolveEditor(appConfig.Editor))
	},
}

func editRun(w io.Writer, id, editorCmd string) error {
	original, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("entry %s: %w", id, err)
	}

	content, changed, err := editor.Edit(editorCmd, original)
	if err != nil {
		return &editorError{err}
	}

	if !changed {
		if jsonOutput {
			return ui.FormatJSON(w, entry.Entry{ID: id, Content: original})
		}
		ui.FormatNoChanges(w, id)
		return nil
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
	rootCmd.AddCommand(editCmd)
}
