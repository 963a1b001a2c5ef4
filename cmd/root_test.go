package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/chris-regnier/diarybook/internal/config"
	"github.com/chris-regnier/diarybook/internal/export"
	"github.com/chris-regnier/diarybook/internal/logging"
	"github.com/chris-regnier/diarybook/internal/storage"
	"github.com/chris-regnier/diarybook/internal/storage/sqlite"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{storage.ErrNotFound, 1},
		{fmt.Errorf("entry x: %w", storage.ErrNotFound), 1},
		{fmt.Errorf("%w: bad id", storage.ErrValidation), 1},
		{fmt.Errorf("%w: \"pdf\"", export.ErrUnknownFormat), 1},
		{&editorError{errors.New("exit status 1")}, 3},
		{fmt.Errorf("%w: disk full", storage.ErrStorage), 2},
		{fmt.Errorf("%w: broken.json", storage.ErrMalformed), 2},
		{errors.New("anything else"), 2},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Errorf("ExitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	_, err := openBackend(&config.Config{Storage: "mongo", DataDir: t.TempDir()})
	if !errors.Is(err, storage.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestOpenStoreLoadsExistingEntries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "diary_entries")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data := `{"timestamp": "2024-01-01 10:00", "content": "Hello"}`
	if err := os.WriteFile(filepath.Join(dir, "2024-01-01 10:00.json"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := openStore(&config.Config{Storage: "json", DataDir: dir}, logging.Discard())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer s.Close()
	if c, ok := s.Content("2024-01-01 10:00"); !ok || c != "Hello" {
		t.Errorf("Content = %q, %v", c, ok)
	}
}

func TestOpenStoreSQLite(t *testing.T) {
	dir := t.TempDir()
	s, err := openStore(&config.Config{Storage: "sqlite", DataDir: dir}, logging.Discard())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	if err := s.Save("2024-01-01 10:00", "in sqlite"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	if _, err := os.Stat(filepath.Join(dir, sqlite.DBName)); err != nil {
		t.Errorf("expected database file: %v", err)
	}
	s, err = openStore(&config.Config{Storage: "sqlite", DataDir: dir}, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if c, _ := s.Content("2024-01-01 10:00"); c != "in sqlite" {
		t.Errorf("reopened content = %q", c)
	}
}

func TestRootCommandsRegistered(t *testing.T) {
	want := []string{"new", "save", "show", "list", "search", "edit", "export", "import", "mcp-serve"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestHelpAndCompletionSkipStore(t *testing.T) {
	for _, args := range [][]string{{"help"}, {"completion", "bash"}} {
		dir := filepath.Join(t.TempDir(), "diary_entries")
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(append([]string{"--data-dir", dir}, args...))
		t.Cleanup(func() {
			dataDir = ""
			rootCmd.SetOut(nil)
			rootCmd.SetArgs(nil)
		})

		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if out.Len() == 0 {
			t.Errorf("%v: expected output", args)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("%v: data directory was created", args)
		}
	}
}

func TestNeedsStore(t *testing.T) {
	for _, name := range []string{"list", "export", "mcp-serve"} {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil {
			t.Fatal(err)
		}
		if !needsStore(c) {
			t.Errorf("%s should open the store", name)
		}
	}
}
