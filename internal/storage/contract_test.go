package storage_test

import (
	"errors"
	"testing"

	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/storage"
	"github.com/chris-regnier/diarybook/internal/storage/jsonfile"
	"github.com/chris-regnier/diarybook/internal/storage/sqlite"
)

type backendFactory func(t *testing.T) storage.Backend

func jsonfileFactory(t *testing.T) storage.Backend {
	t.Helper()
	dir := t.TempDir()
	s, err := jsonfile.New(dir)
	if err != nil {
		t.Fatalf("creating jsonfile storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sqliteFactory(t *testing.T) storage.Backend {
	t.Helper()
	dir := t.TempDir()
	s, err := sqlite.New(dir)
	if err != nil {
		t.Fatalf("creating sqlite storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func runContractTests(t *testing.T, name string, factory backendFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Put and Get", func(t *testing.T) {
			s := factory(t)
			e := entry.Entry{ID: "2024-01-01 10:00", Content: "Hello diary"}
			if err := s.Put(e); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, err := s.Get(e.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got != e {
				t.Errorf("got %+v, want %+v", got, e)
			}
		})

		t.Run("Put empty content", func(t *testing.T) {
			s := factory(t)
			e := entry.Entry{ID: "2024-01-01 10:00"}
			if err := s.Put(e); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, err := s.Get(e.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Content != "" {
				t.Errorf("content = %q, want empty", got.Content)
			}
		})

		t.Run("Put overwrites", func(t *testing.T) {
			s := factory(t)
			id := "2024-01-01 10:00"
			if err := s.Put(entry.Entry{ID: id, Content: "first"}); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := s.Put(entry.Entry{ID: id, Content: "second"}); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, err := s.Get(id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Content != "second" {
				t.Errorf("content = %q, want %q", got.Content, "second")
			}
			res, err := s.List()
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(res.Entries) != 1 {
				t.Errorf("expected 1 entry after overwrite, got %d", len(res.Entries))
			}
		})

		t.Run("Content preserved verbatim", func(t *testing.T) {
			s := factory(t)
			content := "  leading space\n\n\"quotes\" and unicode: älskling 日記\n"
			e := entry.Entry{ID: "2024-01-01 10:00", Content: content}
			if err := s.Put(e); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, err := s.Get(e.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Content != content {
				t.Errorf("content = %q, want %q", got.Content, content)
			}
		})

		t.Run("Get not found", func(t *testing.T) {
			s := factory(t)
			_, err := s.Get("2000-01-01 00:00")
			if err != storage.ErrNotFound {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
		})

		t.Run("Invalid identifier", func(t *testing.T) {
			s := factory(t)
			err := s.Put(entry.Entry{ID: "../escape", Content: "x"})
			if !errors.Is(err, storage.ErrValidation) {
				t.Errorf("expected ErrValidation, got: %v", err)
			}
		})

		t.Run("Exists", func(t *testing.T) {
			s := factory(t)
			id := "2024-01-01 10:00"
			ok, err := s.Exists(id)
			if err != nil {
				t.Fatalf("Exists: %v", err)
			}
			if ok {
				t.Error("expected Exists=false before Put")
			}
			if err := s.Put(entry.Entry{ID: id}); err != nil {
				t.Fatalf("Put: %v", err)
			}
			ok, err = s.Exists(id)
			if err != nil {
				t.Fatalf("Exists: %v", err)
			}
			if !ok {
				t.Error("expected Exists=true after Put")
			}
		})

		t.Run("List empty", func(t *testing.T) {
			s := factory(t)
			res, err := s.List()
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(res.Entries) != 0 {
				t.Errorf("expected empty list, got %d entries", len(res.Entries))
			}
		})

		t.Run("List returns all", func(t *testing.T) {
			s := factory(t)
			ids := []string{"2024-01-02 09:00", "2024-01-01 10:00", "2024-01-01 10:00 (2)"}
			for _, id := range ids {
				if err := s.Put(entry.Entry{ID: id, Content: "c " + id}); err != nil {
					t.Fatalf("Put %s: %v", id, err)
				}
			}
			res, err := s.List()
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(res.Entries) != len(ids) {
				t.Fatalf("expected %d entries, got %d", len(ids), len(res.Entries))
			}
			got := map[string]string{}
			for _, e := range res.Entries {
				got[e.ID] = e.Content
			}
			for _, id := range ids {
				if got[id] != "c "+id {
					t.Errorf("entry %q content = %q", id, got[id])
				}
			}
		})
	})
}

func TestJSONFileContract(t *testing.T) {
	runContractTests(t, "jsonfile", jsonfileFactory)
}

func TestSQLiteContract(t *testing.T) {
	runContractTests(t, "sqlite", sqliteFactory)
}
