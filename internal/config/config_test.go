package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "json" {
		t.Errorf("expected storage 'json', got %q", cfg.Storage)
	}
	if cfg.DataDir != "diary_entries" {
		t.Errorf("expected data_dir 'diary_entries', got %q", cfg.DataDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log_level 'warn', got %q", cfg.LogLevel)
	}
	if cfg.ExportFormat != "text" {
		t.Errorf("expected export_format 'text', got %q", cfg.ExportFormat)
	}
	if cfg.Theme.Preset != "default-dark" {
		t.Errorf("expected preset 'default-dark', got %q", cfg.Theme.Preset)
	}
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
storage = "sqlite"
data_dir = "/tmp/journal"
log_level = "debug"

[theme]
preset = "default-light"
primary = "#FF0000"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "sqlite" {
		t.Errorf("expected storage 'sqlite', got %q", cfg.Storage)
	}
	if cfg.DataDir != "/tmp/journal" {
		t.Errorf("expected data_dir '/tmp/journal', got %q", cfg.DataDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log_level 'debug', got %q", cfg.LogLevel)
	}
	if cfg.Theme.Preset != "default-light" {
		t.Errorf("expected preset 'default-light', got %q", cfg.Theme.Preset)
	}
	if cfg.Theme.Primary != "#FF0000" {
		t.Errorf("expected primary '#FF0000', got %q", cfg.Theme.Primary)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("DIARYBOOK_DATA_DIR", "/env/entries")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir != "/env/entries" {
		t.Errorf("expected data_dir from env, got %q", cfg.DataDir)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for explicit missing config file")
	}
}
