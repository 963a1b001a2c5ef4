package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Command builds the editor process for path. The editor string may carry
// arguments, e.g. "code --wait".
func Command(editorCmd, path string) (*exec.Cmd, error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty editor command")
	}
	args := append(parts[1:], path)
	return exec.Command(parts[0], args...), nil
}

// Edit opens content in an editor and returns the result. Trailing newlines
// are ignored when comparing, since most editors append one on save; an
// unchanged file returns the original content and changed=false. Emptying
// the file is a change.
func Edit(editorCmd string, initialContent string) (content string, changed bool, err error) {
	tmp, err := os.CreateTemp("", "diarybook-*.txt")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(initialContent); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}
	tmp.Close()

	cmd, err := Command(editorCmd, tmpName)
	if err != nil {
		return "", false, err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(tmpName)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}

	result := strings.TrimRight(string(data), "\r\n")
	if result == strings.TrimRight(initialContent, "\r\n") {
		return initialContent, false, nil
	}
	return result, true, nil
}
