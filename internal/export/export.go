// Package export writes single diary entries to human-readable files and
// reads them back for import.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/atotto/clipboard"
	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/storage"
	"github.com/chris-regnier/diarybook/internal/storage/jsonfile"
	"gopkg.in/yaml.v3"
)

// Format selects the layout of an exported entry.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ErrUnknownFormat is returned for unsupported export formats.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (use text, markdown or json)", ErrUnknownFormat, s)
	}
}

// FormatFromPath guesses the format from a destination file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// DefaultFilename is the suggested export file name for an identifier.
func DefaultFilename(id string, f Format) string {
	switch f {
	case FormatMarkdown:
		return id + ".md"
	case FormatJSON:
		return id + ".json"
	default:
		return id + ".txt"
	}
}

// Text renders the plain-text export: identifier, blank line, content.
func Text(id, content string) string {
	return id + "\n\n" + content
}

type markdownFrontMatter struct {
	Timestamp string `yaml:"timestamp"`
}

// Markdown renders the entry as a markdown document with YAML front-matter.
func Markdown(id, content string) (string, error) {
	var b bytes.Buffer
	b.WriteString("---\n")
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(markdownFrontMatter{Timestamp: id}); err != nil {
		return "", fmt.Errorf("encoding front-matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding front-matter: %w", err)
	}
	b.WriteString("---\n\n")
	b.WriteString(content)
	return b.String(), nil
}

// Render formats an entry in the given format.
func Render(id, content string, f Format) ([]byte, error) {
	switch f {
	case FormatText, "":
		return []byte(Text(id, content)), nil
	case FormatMarkdown:
		s, err := Markdown(id, content)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case FormatJSON:
		return jsonfile.Marshal(entry.Entry{ID: id, Content: content})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Export writes the plain-text export of an entry to path.
func Export(id, content, path string) error {
	return ToFile(id, content, path, FormatText)
}

// ToFile writes an entry to path in the given format, replacing any
// existing file.
func ToFile(id, content, path string, f Format) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: export path must not be empty", storage.ErrValidation)
	}
	data, err := Render(id, content, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing export: %v", storage.ErrStorage, err)
	}
	return nil
}

// Clipboard copies the plain-text export to the system clipboard.
func Clipboard(id, content string) error {
	if err := clipboard.WriteAll(Text(id, content)); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// ParseText reads a plain-text export back. The first line is the
// identifier; a single blank line separates it from the content.
func ParseText(data []byte) (entry.Entry, error) {
	s := string(data)
	id, rest, found := strings.Cut(s, "\n")
	id = strings.TrimSuffix(id, "\r")
	if strings.TrimSpace(id) == "" {
		return entry.Entry{}, fmt.Errorf("%w: missing identifier line", storage.ErrMalformed)
	}
	if !found {
		return entry.Entry{ID: id}, nil
	}
	return entry.Entry{ID: id, Content: trimSeparator(rest)}, nil
}

// trimSeparator drops the single blank line written between the header and
// the content. Further leading newlines belong to the content.
func trimSeparator(s string) string {
	if r, ok := strings.CutPrefix(s, "\n"); ok {
		return r
	}
	if r, ok := strings.CutPrefix(s, "\r\n"); ok {
		return r
	}
	return s
}

// ParseMarkdown reads a markdown document with front-matter. The timestamp
// key is optional; an empty ID is returned when it is absent.
func ParseMarkdown(data []byte) (entry.Entry, error) {
	var fm markdownFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrMalformed, err)
	}
	content := string(body)
	if len(body) < len(data) {
		content = trimSeparator(content)
	}
	return entry.Entry{ID: strings.TrimSpace(fm.Timestamp), Content: content}, nil
}
