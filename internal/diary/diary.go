// Package diary owns the in-memory set of diary entries and keeps it in step
// with a persistence backend.
package diary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/export"
	"github.com/chris-regnier/diarybook/internal/filter"
	"github.com/chris-regnier/diarybook/internal/storage"
)

// maxSuffix bounds the search for a free identifier within one minute.
const maxSuffix = 10000

// Store maps entry identifiers to content. Entries created with Create live
// only in memory until they are saved.
type Store struct {
	mu      sync.RWMutex
	backend storage.Backend
	entries map[string]string
	unsaved map[string]bool
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for skipped files and write events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used to generate identifiers.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns an empty Store over backend. Call LoadAll to read what is
// already persisted.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		entries: make(map[string]string),
		unsaved: make(map[string]bool),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Backend returns the persistence backend.
func (s *Store) Backend() storage.Backend {
	return s.backend
}

// taken reports whether id is in memory or persisted. Callers hold s.mu.
func (s *Store) taken(id string) (bool, error) {
	if _, ok := s.entries[id]; ok {
		return true, nil
	}
	return s.backend.Exists(id)
}

// freeID returns base or the first suffixed form of base not yet in use.
// Callers hold s.mu.
func (s *Store) freeID(base string) (string, error) {
	for n := 1; n <= maxSuffix; n++ {
		id := entry.WithSuffix(base, n)
		used, err := s.taken(id)
		if err != nil {
			return "", err
		}
		if !used {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no free identifier for %q", storage.ErrValidation, base)
}

// Create adds an empty entry stamped with the current minute and returns its
// identifier. Nothing is written until Save.
func (s *Store) Create() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.freeID(entry.NewID(s.now()))
	if err != nil {
		return "", err
	}
	s.entries[id] = ""
	s.unsaved[id] = true
	s.logger.Debug("created entry", "id", id)
	return id, nil
}

// Save stores content under id and persists it, replacing any previous file.
// The in-memory content is updated even when persisting fails.
func (s *Store) Save(id, content string) error {
	if err := entry.ValidateID(id); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = content
	if err := s.backend.Put(entry.Entry{ID: id, Content: content}); err != nil {
		s.logger.Error("saving entry failed", "id", id, "error", err)
		return err
	}
	delete(s.unsaved, id)
	s.logger.Debug("saved entry", "id", id, "bytes", len(content))
	return nil
}

// Load reads the persisted content for id and refreshes the in-memory copy.
// Returns storage.ErrNotFound when nothing is persisted under id.
func (s *Store) Load(id string) (string, error) {
	// Held across the read so a concurrent Save cannot be replaced by older
	// content.
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.backend.Get(id)
	if err != nil {
		return "", err
	}
	s.entries[id] = e.Content
	delete(s.unsaved, id)
	return e.Content, nil
}

// Get returns the content to show for id: the persisted content for saved
// entries and the in-memory content for entries that were never saved.
func (s *Store) Get(id string) (string, error) {
	if s.Unsaved(id) {
		content, _ := s.Content(id)
		return content, nil
	}
	content, err := s.Load(id)
	if errors.Is(err, storage.ErrNotFound) {
		if c, ok := s.Content(id); ok {
			return c, nil
		}
	}
	return content, err
}

// LoadAll discards the in-memory entries and rebuilds them from the backend.
// Records that cannot be decoded are logged and skipped.
func (s *Store) LoadAll() ([]string, error) {
	return s.reload(false)
}

// Refresh rebuilds from the backend like LoadAll but keeps entries that were
// created and never saved.
func (s *Store) Refresh() ([]string, error) {
	return s.reload(true)
}

func (s *Store) reload(keepUnsaved bool) ([]string, error) {
	res, err := s.backend.List()
	if err != nil {
		return nil, err
	}
	skipped := res.Skipped
	entries := make(map[string]string, len(res.Entries))
	for _, e := range res.Entries {
		if err := entry.ValidateID(e.ID); err != nil {
			skipped = append(skipped, storage.Skipped{
				Name: e.ID,
				Err:  fmt.Errorf("%w: %v", storage.ErrMalformed, err),
			})
			continue
		}
		if _, dup := entries[e.ID]; dup {
			s.logger.Warn("duplicate entry identifier on disk", "id", e.ID)
		}
		entries[e.ID] = e.Content
	}
	for _, sk := range skipped {
		s.logger.Warn("skipping unreadable entry", "file", sk.Name, "error", sk.Err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unsaved := make(map[string]bool)
	if keepUnsaved {
		for id := range s.unsaved {
			if _, onDisk := entries[id]; !onDisk {
				entries[id] = s.entries[id]
				unsaved[id] = true
			}
		}
	}
	s.entries = entries
	s.unsaved = unsaved
	s.logger.Debug("loaded entries", "count", len(entries), "skipped", len(skipped))
	return s.idsLocked(), nil
}

func (s *Store) idsLocked() []string {
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, entry.Compare)
	return ids
}

// IDs returns every identifier in ascending order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idsLocked()
}

// Entries returns every entry in ascending identifier order.
func (s *Store) Entries() []entry.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entry.Entry, 0, len(s.entries))
	for _, id := range s.idsLocked() {
		out = append(out, entry.Entry{ID: id, Content: s.entries[id]})
	}
	return out
}

// Content returns the in-memory content for id.
func (s *Store) Content(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.entries[id]
	return c, ok
}

// Unsaved reports whether id was created and never saved.
func (s *Store) Unsaved(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unsaved[id]
}

// Len returns the number of entries in memory.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Filter returns the identifiers whose identifier or content contains query,
// case-insensitively, in ascending order.
func (s *Store) Filter(query string) []string {
	return filter.Filter(s.Entries(), query)
}

// Fuzzy ranks entries against query, best match first.
func (s *Store) Fuzzy(query string) []filter.Match {
	return filter.Fuzzy(s.Entries(), query)
}

// Export writes the in-memory content of id to path in format f.
func (s *Store) Export(id, path string, f export.Format) error {
	content, ok := s.Content(id)
	if !ok {
		return storage.ErrNotFound
	}
	if err := export.ToFile(id, content, path, f); err != nil {
		return err
	}
	s.logger.Debug("exported entry", "id", id, "path", path, "format", string(f))
	return nil
}

// Import adds an externally sourced entry. A colliding identifier with the
// same content is reported as a duplicate and left alone; different content
// is saved under the next free suffix unless overwrite is set.
func (s *Store) Import(e entry.Entry, overwrite bool) (id string, imported bool, err error) {
	if err := entry.ValidateID(e.ID); err != nil {
		return "", false, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	s.mu.Lock()
	id = e.ID
	if !overwrite {
		existing, inMemory := s.entries[id]
		if !inMemory {
			if persisted, gerr := s.backend.Get(id); gerr == nil {
				existing, inMemory = persisted.Content, true
			} else if !errors.Is(gerr, storage.ErrNotFound) {
				s.mu.Unlock()
				return "", false, gerr
			}
		}
		if inMemory {
			if existing == e.Content {
				s.mu.Unlock()
				return id, false, nil
			}
			if id, err = s.freeID(e.ID); err != nil {
				s.mu.Unlock()
				return "", false, err
			}
		}
	}
	s.mu.Unlock()

	if err := s.Save(id, e.Content); err != nil {
		return "", false, err
	}
	return id, true, nil
}

// Watch returns change notifications from the backend, or a nil channel when
// the backend cannot watch.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, ok := s.backend.(storage.Watcher)
	if !ok {
		return nil, nil
	}
	return w.Watch(ctx)
}
