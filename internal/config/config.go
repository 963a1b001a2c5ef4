package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultDataDir is the entry directory used when none is configured,
// relative to the working directory.
const DefaultDataDir = "diary_entries"

// ThemeConfig holds TUI color overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// Config holds the application configuration.
type Config struct {
	Storage      string      `mapstructure:"storage"`
	DataDir      string      `mapstructure:"data_dir"`
	Editor       string      `mapstructure:"editor"`
	LogLevel     string      `mapstructure:"log_level"`
	LogFile      string      `mapstructure:"log_file"`
	ExportFormat string      `mapstructure:"export_format"`
	Theme        ThemeConfig `mapstructure:"theme"`
}

// HomeConfigDir returns ~/.diarybook, falling back to ./.diarybook.
func HomeConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".diarybook")
	}
	return filepath.Join(home, ".diarybook")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "json")
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("editor", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("export_format", "text")
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.primary", "")
	v.SetDefault("theme.accent", "")
	v.SetDefault("theme.muted", "")
	v.SetDefault("theme.danger", "")
	v.SetDefault("theme.markdown_style", "")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "diarybook"))
		}
		v.AddConfigPath(HomeConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: DIARYBOOK_STORAGE, DIARYBOOK_DATA_DIR, etc.
	v.SetEnvPrefix("DIARYBOOK")
	v.AutomaticEnv()

	// A missing config file is only an error when one was asked for explicitly.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
