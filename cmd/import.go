package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/export"
	"github.com/chris-regnier/diarybook/internal/storage"
	"github.com/chris-regnier/diarybook/internal/storage/jsonfile"
	"github.com/chris-regnier/diarybook/internal/ui"
	"github.com/spf13/cobra"
)

var importOverwrite bool

var importCmd = &cobra.Command{
	Use:   "import <glob>...",
	Short: "Import entries from files",
	Long: `Import entries from text, markdown and JSON files matched by the given
patterns. Patterns support ** for recursive matching.

  .txt       text exports: identifier line, blank line, content
  .md        markdown with an optional timestamp front-matter key
  .json      entry files from another data directory

Files without a usable timestamp are named after their modification time.
Entries identical to an existing one are skipped; different content under
an existing identifier is imported with a numbered suffix unless
--overwrite is given.`,
	Example: `  diarybook import "old-notes/**/*.md"
  diarybook import backup/*.json --overwrite`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return importRun(cmd.OutOrStdout(), args, importOverwrite)
	},
}

// expandPatterns resolves every pattern to its matching files, in order and
// without repeats.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		if !doublestar.ValidatePathPattern(p) {
			return nil, fmt.Errorf("%w: invalid pattern %q", storage.ErrValidation, p)
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrStorage, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// readImport decodes one file into an entry.
func readImport(path string) (entry.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %v", storage.ErrStorage, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %v", storage.ErrStorage, err)
	}
	fallbackID := entry.NewID(info.ModTime())

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return jsonfile.Unmarshal(data)
	case ".md", ".markdown":
		e, err := export.ParseMarkdown(data)
		if err != nil {
			return entry.Entry{}, err
		}
		if e.ID == "" {
			e.ID = fallbackID
		}
		return e, nil
	case ".txt":
		if e, err := export.ParseText(data); err == nil {
			if _, _, ok := entry.ParseID(e.ID); ok {
				return e, nil
			}
		}
		return entry.Entry{ID: fallbackID, Content: strings.TrimRight(string(data), "\r\n")}, nil
	default:
		return entry.Entry{}, fmt.Errorf("%w: unsupported file type %q", storage.ErrValidation, filepath.Ext(path))
	}
}

func importRun(w io.Writer, patterns []string, overwrite bool) error {
	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no files match %s", storage.ErrNotFound, strings.Join(patterns, " "))
	}

	results := make([]ui.ImportResult, 0, len(files))
	failed := 0
	for _, f := range files {
		r := ui.ImportResult{File: f}
		e, err := readImport(f)
		if err == nil {
			r.ID, r.Imported, err = store.Import(e, overwrite)
		}
		if err != nil {
			r.Error = err.Error()
			failed++
			logger.Warn("import failed", "file", f, "error", err)
		}
		results = append(results, r)
	}

	if jsonOutput {
		if err := ui.FormatJSON(w, results); err != nil {
			return err
		}
	} else {
		ui.FormatImportReport(w, results)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be imported", failed, len(files))
	}
	return nil
}

func init() {
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "replace existing entries with the same identifier")
	rootCmd.AddCommand(importCmd)
}
