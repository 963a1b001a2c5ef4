package cmd

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/chris-regnier/diarybook/internal/config"
	"github.com/chris-regnier/diarybook/internal/diary"
	"github.com/chris-regnier/diarybook/internal/logging"
	"github.com/chris-regnier/diarybook/internal/storage/jsonfile"
)

var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

// setupTestEnv points the package globals at a fresh data directory and
// returns that directory.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "diary_entries")
	backend, err := jsonfile.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	store = diary.New(backend, diary.WithClock(func() time.Time { return testNow }))
	t.Cleanup(func() {
		store.Close()
		store = nil
	})
	appConfig = &config.Config{
		Storage:      "json",
		DataDir:      dir,
		ExportFormat: "text",
		Theme:        config.ThemeConfig{Preset: "default-dark", MarkdownStyle: "notty"},
	}
	logger = logging.Discard()
	jsonOutput = false
	return dir
}

func mustSave(t *testing.T, id, content string) {
	t.Helper()
	if err := store.Save(id, content); err != nil {
		t.Fatalf("Save(%q): %v", id, err)
	}
}

// fakeEditor writes an executable editor stand-in that runs body with the file as $1.
func fakeEditor(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-editor.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}
