package storage

import (
	"context"
	"errors"

	"github.com/chris-regnier/diarybook/internal/entry"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("entry not found")
	ErrStorage    = errors.New("storage error")
	ErrMalformed  = errors.New("malformed entry")
	ErrValidation = errors.New("validation error")
)

// Skipped records a persisted entry that could not be read during a scan.
type Skipped struct {
	Name string // file name or row key
	Err  error
}

// ListResult is the outcome of scanning a backend.
type ListResult struct {
	Entries []entry.Entry
	Skipped []Skipped
}

// Backend defines the interface for diary entry persistence.
type Backend interface {
	// Put writes an entry, overwriting any existing entry with the same ID.
	Put(e entry.Entry) error

	// Get returns the persisted entry for id.
	// Returns ErrNotFound if nothing is stored under id and ErrMalformed if
	// the stored record cannot be decoded.
	Get(id string) (entry.Entry, error)

	// Exists reports whether an entry is persisted under id.
	Exists(id string) (bool, error)

	// List scans every persisted entry. Unreadable records are reported in
	// ListResult.Skipped; only a failure of the scan itself returns an error.
	List() (ListResult, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Watcher is implemented by backends that can report external changes.
// The returned channel receives a value after one or more changes and is
// closed when ctx is done.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}
