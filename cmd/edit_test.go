package cmd

import (
	"bytes"
	"testing"
)

func TestEditSavesChanges(t *testing.T) {
	setupTestEnv(t)
	mustSave(t, "2024-01-01 10:00", "original")

	var buf bytes.Buffer
	ed := fakeEditor(t, `printf 'edited content\n' > "$1"`)
	if err := editRun(&buf, "2024-01-01 10:00", ed); err != nil {
		t.Fatalf("editRun: %v", err)
	}
	if buf.String() != "Saved entry 2024-01-01 10:00\n" {
		t.Errorf("output = %q", buf.String())
	}
	if got, _ := store.Load("2024-01-01 10:00"); got != "edited content" {
		t.Errorf("content = %q", got)
	}
}

func TestEditNoChanges(t *testing.T) {
	setupTestEnv(t)
	mustSave(t, "2024-01-01 10:00", "original")

	var buf bytes.Buffer
	if err := editRun(&buf, "2024-01-01 10:00", "true"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "No changes detected for entry 2024-01-01 10:00.\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestEditNotFound(t *testing.T) {
	setupTestEnv(t)

	err := editRun(&bytes.Buffer{}, "2030-01-01 00:00", "true")
	if ExitCode(err) != 1 {
		t.Errorf("expected exit code 1, got %d (%v)", ExitCode(err), err)
	}
}

func TestEditEditorFailure(t *testing.T) {
	setupTestEnv(t)
	mustSave(t, "2024-01-01 10:00", "original")

	err := editRun(&bytes.Buffer{}, "2024-01-01 10:00", "false")
	if ExitCode(err) != 3 {
		t.Errorf("expected exit code 3, got %d (%v)", ExitCode(err), err)
	}
	if got, _ := store.Load("2024-01-01 10:00"); got != "original" {
		t.Errorf("content changed after editor failure: %q", got)
	}
}
