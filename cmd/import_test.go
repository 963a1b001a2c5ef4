package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/diarybook/internal/ui"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestImportFormats(t *testing.T) {
	setupTestEnv(t)
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.txt"), "2024-02-01 08:00\n\nfrom text")
	writeFile(t, filepath.Join(src, "nested", "b.md"), "---\ntimestamp: \"2024-02-02 08:00\"\n---\n\nfrom markdown")
	writeFile(t, filepath.Join(src, "nested", "deeper", "c.json"), `{"timestamp": "2024-02-03 08:00", "content": "from json"}`)

	var buf bytes.Buffer
	if err := importRun(&buf, []string{filepath.Join(src, "**", "*.{txt,md,json}")}, false); err != nil {
		t.Fatalf("importRun: %v\n%s", err, buf.String())
	}
	for id, want := range map[string]string{
		"2024-02-01 08:00": "from text",
		"2024-02-02 08:00": "from markdown",
		"2024-02-03 08:00": "from json",
	} {
		got, err := store.Load(id)
		if err != nil {
			t.Errorf("Load(%q): %v", id, err)
			continue
		}
		if got != want {
			t.Errorf("Load(%q) = %q, want %q", id, got, want)
		}
	}
	if !strings.Contains(buf.String(), "3 imported, 0 skipped, 0 failed") {
		t.Errorf("report = %q", buf.String())
	}
}

func TestImportUsesModTimeWithoutTimestamp(t *testing.T) {
	setupTestEnv(t)
	path := filepath.Join(t.TempDir(), "loose.txt")
	writeFile(t, path, "just some thoughts\n")
	mtime := time.Date(2023, 6, 15, 21, 45, 30, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	if err := importRun(&bytes.Buffer{}, []string{path}, false); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Load("2023-06-15 21:45"); got != "just some thoughts" {
		t.Errorf("content = %q", got)
	}
}

func TestImportDuplicatesAndConflicts(t *testing.T) {
	setupTestEnv(t)
	mustSave(t, "2024-02-01 08:00", "same")
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "dup.txt"), "2024-02-01 08:00\n\nsame")
	writeFile(t, filepath.Join(src, "conflict.txt"), "2024-02-01 08:00\n\ndifferent")
	jsonOutput = true

	var buf bytes.Buffer
	if err := importRun(&buf, []string{filepath.Join(src, "*.txt")}, false); err != nil {
		t.Fatal(err)
	}
	var results []ui.ImportResult
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	byFile := map[string]ui.ImportResult{}
	for _, r := range results {
		byFile[filepath.Base(r.File)] = r
	}
	if r := byFile["dup.txt"]; r.Imported || r.ID != "2024-02-01 08:00" {
		t.Errorf("dup.txt = %+v", r)
	}
	if r := byFile["conflict.txt"]; !r.Imported || r.ID != "2024-02-01 08:00 (2)" {
		t.Errorf("conflict.txt = %+v", r)
	}
}

func TestImportOverwrite(t *testing.T) {
	setupTestEnv(t)
	mustSave(t, "2024-02-01 08:00", "old")
	path := filepath.Join(t.TempDir(), "new.txt")
	writeFile(t, path, "2024-02-01 08:00\n\nnew")

	if err := importRun(&bytes.Buffer{}, []string{path}, true); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Load("2024-02-01 08:00"); got != "new" {
		t.Errorf("content = %q", got)
	}
	if store.Len() != 1 {
		t.Errorf("expected overwrite in place, store has %d entries", store.Len())
	}
}

func TestImportFailures(t *testing.T) {
	setupTestEnv(t)
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "bad.json"), "{not json")
	writeFile(t, filepath.Join(src, "good.json"), `{"timestamp": "2024-02-03 08:00", "content": "ok"}`)

	var buf bytes.Buffer
	err := importRun(&buf, []string{filepath.Join(src, "*.json")}, false)
	if err == nil || ExitCode(err) != 2 {
		t.Errorf("expected partial failure exit code 2, got %v", err)
	}
	if !strings.Contains(buf.String(), "1 imported, 0 skipped, 1 failed") {
		t.Errorf("report = %q", buf.String())
	}

	err = importRun(&bytes.Buffer{}, []string{filepath.Join(src, "*.nothing")}, false)
	if ExitCode(err) != 1 {
		t.Errorf("no matches: exit code %d (%v)", ExitCode(err), err)
	}
	err = importRun(&bytes.Buffer{}, []string{filepath.Join(src, "[")}, false)
	if ExitCode(err) != 1 {
		t.Errorf("bad pattern: exit code %d (%v)", ExitCode(err), err)
	}
}
