package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithContent(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := newRun(&buf, strings.NewReader(""), []string{"Met", "the", "team"}); err != nil {
		t.Fatalf("newRun: %v", err)
	}
	if buf.String() != "Created entry 2024-01-01 10:00\n" {
		t.Errorf("output = %q", buf.String())
	}
	got, err := store.Load("2024-01-01 10:00")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Met the team" {
		t.Errorf("content = %q", got)
	}
}

func TestNewFromStdin(t *testing.T) {
	setupTestEnv(t)
	jsonOutput = true

	var buf bytes.Buffer
	if err := newRun(&buf, strings.NewReader("line one\nline two\n"), []string{"-"}); err != nil {
		t.Fatalf("newRun: %v", err)
	}
	var res newResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if res.ID != "2024-01-01 10:00" || !res.Saved {
		t.Errorf("result = %+v", res)
	}
	if got, _ := store.Content(res.ID); got != "line one\nline two" {
		t.Errorf("content = %q", got)
	}
}

func TestNewSameMinuteGetsSuffix(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	for _, text := range []string{"first", "second"} {
		if err := newRun(&buf, strings.NewReader(""), []string{text}); err != nil {
			t.Fatal(err)
		}
	}
	if got, _ := store.Content("2024-01-01 10:00 (2)"); got != "second" {
		t.Errorf("second entry content = %q", got)
	}
}

func TestNewWithEditor(t *testing.T) {
	setupTestEnv(t)
	appConfig.Editor = fakeEditor(t, `printf 'written in editor\n' > "$1"`)

	var buf bytes.Buffer
	if err := newRun(&buf, strings.NewReader(""), nil); err != nil {
		t.Fatalf("newRun: %v", err)
	}
	if got, _ := store.Content("2024-01-01 10:00"); got != "written in editor" {
		t.Errorf("content = %q", got)
	}
}

func TestNewEditorUntouchedDiscards(t *testing.T) {
	setupTestEnv(t)
	appConfig.Editor = "true"

	var buf bytes.Buffer
	if err := newRun(&buf, strings.NewReader(""), nil); err != nil {
		t.Fatalf("newRun: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected no entry, store has %d", store.Len())
	}
}

func TestNewEditorFailure(t *testing.T) {
	setupTestEnv(t)
	appConfig.Editor = "false"

	err := newRun(&bytes.Buffer{}, strings.NewReader(""), nil)
	if ExitCode(err) != 3 {
		t.Errorf("expected editor exit code 3, got %d (%v)", ExitCode(err), err)
	}
}
