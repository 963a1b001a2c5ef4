package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chris-regnier/diarybook/internal/editor"
	"github.com/chris-regnier/diarybook/internal/ui"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [content...|-]",
	Short: "Create a diary entry",
	Long: `Create an entry stamped with the current minute.

Content may be given as arguments or read from stdin with "-". Without
content the entry is opened in your editor and saved when you write
something.`,
	Example: `  diarybook new "Met with the team"
  echo "from a pipe" | diarybook new -
  diarybook new`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newRun(cmd.OutOrStdout(), cmd.InOrStdin(), args)
	},
}

// readContent joins args into entry content; a lone "-" reads r instead.
func readContent(r io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return strings.Join(args, " "), nil
}

func newRun(w io.Writer, r io.Reader, args []string) error {
	content, err := readContent(r, args)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		edited, changed, err := editor.Edit(editor.ResolveEditor(appConfig.Editor), "")
		if err != nil {
			return &editorError{err}
		}
		if !changed {
			fmt.Fprintln(os.Stderr, "No content written; entry discarded.")
			return nil
		}
		content = edited
	}

	id, err := store.Create()
	if err != nil {
		return err
	}
	if err := store.Save(id, content); err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, newResult{ID: id, Saved: true})
	}
	ui.FormatEntryCreated(w, id)
	return nil
}

type newResult struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}

func init() {
	rootCmd.AddCommand(newCmd)
}
