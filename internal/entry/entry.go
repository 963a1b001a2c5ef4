package entry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// IDLayout is the timestamp layout used for entry identifiers.
const IDLayout = "2006-01-02 15:04"

var suffixPattern = regexp.MustCompile(`^(.*) \((\d+)\)$`)

// Entry represents a single diary entry. The identifier doubles as the
// display label and the storage key.
type Entry struct {
	ID      string `json:"timestamp"`
	Content string `json:"content"`
}

// NewID formats t at minute resolution in local time.
func NewID(t time.Time) string {
	return t.Local().Format(IDLayout)
}

// WithSuffix returns the n-th disambiguated form of id. n < 2 returns id unchanged.
func WithSuffix(id string, n int) string {
	if n < 2 {
		return id
	}
	return fmt.Sprintf("%s (%d)", id, n)
}

// ParseID splits an identifier into its timestamp and disambiguation suffix.
// ok is false when the identifier does not carry a timestamp in IDLayout.
func ParseID(id string) (t time.Time, n int, ok bool) {
	base, n := id, 1
	if m := suffixPattern.FindStringSubmatch(id); m != nil {
		if v, err := strconv.Atoi(m[2]); err == nil && v >= 2 {
			base, n = m[1], v
		}
	}
	t, err := time.ParseInLocation(IDLayout, base, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return t, n, true
}

// Compare orders identifiers by parsed timestamp, then by suffix. Identifiers
// without a timestamp sort after all timestamped ones, lexicographically.
func Compare(a, b string) int {
	ta, na, oka := ParseID(a)
	tb, nb, okb := ParseID(b)
	switch {
	case oka && okb:
		if c := ta.Compare(tb); c != 0 {
			return c
		}
		if na != nb {
			if na < nb {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	case oka:
		return -1
	case okb:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// ValidateID checks whether an identifier can be used as a filename stem.
func ValidateID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("entry identifier must not be empty")
	case strings.TrimSpace(id) != id:
		return fmt.Errorf("invalid entry identifier %q: leading or trailing whitespace", id)
	case strings.ContainsAny(id, "/\\\x00"):
		return fmt.Errorf("invalid entry identifier %q: must not contain path separators", id)
	case strings.HasPrefix(id, "."):
		return fmt.Errorf("invalid entry identifier %q: must not start with a dot", id)
	}
	return nil
}

// Preview returns a truncated single-line preview of the entry content.
func (e *Entry) Preview(maxLen int) string {
	content := strings.Join(strings.Fields(e.Content), " ")
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
