// Package filter selects diary entries by query.
package filter

import (
	"slices"
	"strings"

	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/sahilm/fuzzy"
)

// Matches reports whether query occurs in the entry's identifier or content,
// ignoring case. The empty query matches everything.
func Matches(e entry.Entry, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.ID), q) ||
		strings.Contains(strings.ToLower(e.Content), q)
}

// Filter returns the identifiers of matching entries in ascending order.
// The input slice is not modified.
func Filter(entries []entry.Entry, query string) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if Matches(e, query) {
			ids = append(ids, e.ID)
		}
	}
	slices.SortFunc(ids, entry.Compare)
	return ids
}

// Match is a ranked fuzzy search hit.
type Match struct {
	Entry entry.Entry
	Score int
}

type source []entry.Entry

func (s source) String(i int) string { return s[i].ID + " " + s[i].Content }
func (s source) Len() int            { return len(s) }

// Fuzzy ranks entries whose identifier and content fuzzily match query,
// best match first. The empty query returns every entry in ascending order
// with a zero score.
func Fuzzy(entries []entry.Entry, query string) []Match {
	if query == "" {
		sorted := slices.Clone(entries)
		slices.SortFunc(sorted, func(a, b entry.Entry) int { return entry.Compare(a.ID, b.ID) })
		out := make([]Match, len(sorted))
		for i, e := range sorted {
			out[i] = Match{Entry: e}
		}
		return out
	}

	found := fuzzy.FindFrom(query, source(entries))
	out := make([]Match, 0, len(found))
	for _, m := range found {
		out = append(out, Match{Entry: entries[m.Index], Score: m.Score})
	}
	return out
}
