package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/storage"
)

const fileExt = ".json"

// Store implements storage.Backend with one JSON file per entry.
type Store struct {
	dir string // e.g. ./diary_entries
}

// record is the on-disk shape. Pointers distinguish missing keys from empty values.
type record struct {
	Timestamp *string `json:"timestamp"`
	Content   *string `json:"content"`
}

// New creates the data directory if needed and returns a JSON file backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}
	return &Store{dir: dataDir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Close is a no-op for the JSON file backend.
func (s *Store) Close() error {
	return nil
}

// Path returns the file an entry is stored in.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

// Marshal encodes an entry in the on-disk format.
func Marshal(e entry.Entry) ([]byte, error) {
	return json.MarshalIndent(e, "", "    ")
}

// Unmarshal decodes the on-disk format. A missing timestamp is malformed;
// a missing content key decodes as empty content.
func Unmarshal(data []byte) (entry.Entry, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %v", storage.ErrMalformed, err)
	}
	if r.Timestamp == nil || *r.Timestamp == "" {
		return entry.Entry{}, fmt.Errorf("%w: missing timestamp", storage.ErrMalformed)
	}
	e := entry.Entry{ID: *r.Timestamp}
	if r.Content != nil {
		e.Content = *r.Content
	}
	return e, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	// CreateTemp uses 0600; entry files are world-readable like any other document.
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: setting permissions: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

// Put writes an entry to <id>.json, replacing any previous version.
func (s *Store) Put(e entry.Entry) error {
	if err := entry.ValidateID(e.ID); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	data, err := Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: encoding entry: %v", storage.ErrStorage, err)
	}
	return s.atomicWrite(s.Path(e.ID), data)
}

// Get reads and decodes <id>.json.
func (s *Store) Get(id string) (entry.Entry, error) {
	if err := entry.ValidateID(id); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entry.Entry{}, storage.ErrNotFound
		}
		return entry.Entry{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	e, err := Unmarshal(data)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%s: %w", filepath.Base(s.Path(id)), err)
	}
	return e, nil
}

// Exists reports whether <id>.json is present.
func (s *Store) Exists(id string) (bool, error) {
	if err := entry.ValidateID(id); err != nil {
		return false, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	_, err := os.Stat(s.Path(id))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: checking file: %v", storage.ErrStorage, err)
	}
}

// isEntryFile matches <stem>.json, excluding hidden and temp files.
func isEntryFile(d fs.DirEntry) bool {
	name := d.Name()
	return !d.IsDir() && strings.HasSuffix(name, fileExt) && !strings.HasPrefix(name, ".")
}

// List decodes every entry file in filename order. Entries are keyed by their
// timestamp field, not the filename.
func (s *Store) List() (storage.ListResult, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return storage.ListResult{}, fmt.Errorf("%w: reading data directory: %v", storage.ErrStorage, err)
	}

	res := storage.ListResult{Entries: []entry.Entry{}}
	for _, de := range dirEntries {
		if !isEntryFile(de) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, de.Name()))
		if err != nil {
			res.Skipped = append(res.Skipped, storage.Skipped{
				Name: de.Name(),
				Err:  fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err),
			})
			continue
		}
		e, err := Unmarshal(data)
		if err != nil {
			res.Skipped = append(res.Skipped, storage.Skipped{Name: de.Name(), Err: err})
			continue
		}
		res.Entries = append(res.Entries, e)
	}
	return res, nil
}
