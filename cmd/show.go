package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/ui"
	"github.com/spf13/cobra"
)

var showContentOnly bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a diary entry",
	Long:  "Display an entry with its content rendered as markdown.",
	Example: `  diarybook show "2024-01-01 10:00"
  diarybook show "2024-01-01 10:00" --content-only
  diarybook show "2024-01-01 10:00" --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRun(cmd.OutOrStdout(), args[0], showContentOnly)
	},
}

func showRun(w io.Writer, id string, contentOnly bool) error {
	content, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("entry %s: %w", id, err)
	}
	e := entry.Entry{ID: id, Content: content}

	if jsonOutput {
		return ui.FormatJSON(w, e)
	}
	if contentOnly {
		fmt.Fprintln(w, e.Content)
		return nil
	}

	var buf bytes.Buffer
	ui.FormatEntryFull(&buf, e, markdownStyle())
	return pager().OutputOrPage(w, buf.String(), false)
}

func markdownStyle() string {
	return ui.ResolveTheme(appConfig.Theme).MarkdownStyle
}

func pager() ui.Pager {
	return ui.Pager{Theme: ui.ResolveTheme(appConfig.Theme)}
}

func init() {
	showCmd.Flags().BoolVar(&showContentOnly, "content-only", false, "print just the entry content")
	rootCmd.AddCommand(showCmd)
}
