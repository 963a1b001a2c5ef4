package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/diarybook/internal/export"
	"github.com/chris-regnier/diarybook/internal/storage"
	"github.com/chris-regnier/diarybook/internal/ui"
	"github.com/spf13/cobra"
)

var (
	exportFormat    string
	exportForce     bool
	exportClipboard bool
)

var exportCmd = &cobra.Command{
	Use:   "export <id> [path]",
	Short: "Export a diary entry",
	Long: `Write an entry to a file. The default text format is the identifier, a
blank line, then the content. Markdown adds a front-matter header and JSON
uses the entry file layout.

Without a path the file is named after the identifier ("-" writes to
stdout). The format defaults to the path's extension, then export_format.`,
	Example: `  diarybook export "2024-01-01 10:00"
  diarybook export "2024-01-01 10:00" notes/monday.md
  diarybook export "2024-01-01 10:00" - --format json
  diarybook export "2024-01-01 10:00" --clipboard`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 2 {
			path = args[1]
		}
		opts := exportOptions{
			format:    exportFormat,
			force:     exportForce,
			clipboard: exportClipboard,
			confirm:   confirmOverwrite,
		}
		return exportRun(cmd.OutOrStdout(), args[0], path, opts)
	},
}

type exportOptions struct {
	format    string
	force     bool
	clipboard bool
	// confirm asks whether an existing file may be replaced.
	confirm func(path string) (bool, error)
}

type exportResult struct {
	ID     string `json:"id"`
	Path   string `json:"path,omitempty"`
	Format string `json:"format"`
}

func confirmOverwrite(path string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}
	return ui.Confirm(fmt.Sprintf("%s exists. Overwrite?", path), ui.ResolveTheme(appConfig.Theme))
}

func resolveExportFormat(flag, path string) (export.Format, error) {
	switch {
	case flag != "":
		return export.ParseFormat(flag)
	case path != "" && path != "-":
		return export.FormatFromPath(path), nil
	default:
		return export.ParseFormat(appConfig.ExportFormat)
	}
}

func exportRun(w io.Writer, id, path string, opts exportOptions) error {
	content, ok := store.Content(id)
	if !ok {
		return fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
	}

	if opts.clipboard {
		if err := export.Clipboard(id, content); err != nil {
			return err
		}
		if jsonOutput {
			return ui.FormatJSON(w, exportResult{ID: id, Format: string(export.FormatText)})
		}
		ui.FormatCopied(w, id)
		return nil
	}

	f, err := resolveExportFormat(opts.format, path)
	if err != nil {
		return err
	}

	if path == "-" {
		data, err := export.Render(id, content, f)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	if path == "" {
		path = export.DefaultFilename(id, f)
	}
	if !opts.force {
		if _, err := os.Stat(path); err == nil {
			ok, err := opts.confirm(path)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s already exists (use --force to replace it)", storage.ErrValidation, path)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %v", storage.ErrStorage, err)
		}
	}

	if err := store.Export(id, path, f); err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, exportResult{ID: id, Path: path, Format: string(f)})
	}
	ui.FormatExported(w, id, path)
	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "export format (text|markdown|json)")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "replace an existing file without asking")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "copy the text export to the clipboard instead")
	rootCmd.AddCommand(exportCmd)
}
