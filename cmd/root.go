package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chris-regnier/diarybook/internal/config"
	"github.com/chris-regnier/diarybook/internal/diary"
	"github.com/chris-regnier/diarybook/internal/export"
	"github.com/chris-regnier/diarybook/internal/logging"
	"github.com/chris-regnier/diarybook/internal/storage"
	"github.com/chris-regnier/diarybook/internal/storage/jsonfile"
	"github.com/chris-regnier/diarybook/internal/storage/sqlite"
	"github.com/chris-regnier/diarybook/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is reported by mcp-serve; overridden at build time with -ldflags.
var Version = "dev"

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	dataDir        string
	appConfig      *config.Config
	store          *diary.Store
	logger         *slog.Logger
	logCloser      io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "diarybook",
	Short: "A minimal timestamped diary",
	Long: `diarybook keeps diary entries named by the minute they were created,
one JSON file per entry in the data directory.

Run without a subcommand in a terminal to open the interactive shell.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}
		if dataDir != "" {
			appConfig.DataDir = dataDir
		}

		if err := setupLogger(cmd); err != nil {
			return err
		}
		if !needsStore(cmd) {
			return nil
		}

		s, err := openStore(appConfig, logger)
		if err != nil {
			return err
		}
		store = s
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal() {
			return listRun(cmd.OutOrStdout(), false)
		}
		return ui.RunShell(cmd.Context(), store, ui.ShellConfig{
			Theme: ui.ResolveTheme(appConfig.Theme),
		})
	},
}

// needsStore reports whether cmd touches diary entries. Help and shell
// completion run without opening the data directory.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// setupLogger sends logs to log_file when configured. Otherwise the
// interactive shell discards them and every other command writes to stderr.
func setupLogger(cmd *cobra.Command) error {
	if appConfig.LogFile != "" {
		l, c, err := logging.OpenFile(appConfig.LogFile, appConfig.LogLevel)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logger, logCloser = l, c
		return nil
	}
	if cmd == rootCmd && isTerminal() {
		logger = logging.Discard()
		return nil
	}
	l, err := logging.New(os.Stderr, appConfig.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	logger = l
	return nil
}

// openBackend builds the persistence backend named by cfg.Storage.
func openBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage {
	case "json", "":
		b, err := jsonfile.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing json storage: %w", err)
		}
		return b, nil
	case "sqlite":
		b, err := sqlite.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q (use json or sqlite)", storage.ErrValidation, cfg.Storage)
	}
}

// openStore opens the backend and reads every persisted entry into memory.
func openStore(cfg *config.Config, l *slog.Logger) (*diary.Store, error) {
	backend, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	s := diary.New(backend, diary.WithLogger(l))
	if _, err := s.LoadAll(); err != nil {
		s.Close()
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	l.Debug("store opened", "storage", cfg.Storage, "data_dir", cfg.DataDir, "entries", s.Len())
	return s, nil
}

func closeAll() error {
	var errs []error
	if store != nil {
		errs = append(errs, store.Close())
		store = nil
	}
	if logCloser != nil {
		errs = append(errs, logCloser.Close())
		logCloser = nil
	}
	return errors.Join(errs...)
}

// editorError marks failures of the external editor process.
type editorError struct{ err error }

func (e *editorError) Error() string { return "editor: " + e.err.Error() }
func (e *editorError) Unwrap() error { return e.err }

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	var ee *editorError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return 3
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrValidation),
		errors.Is(err, export.ErrUnknownFormat):
		return 1
	default:
		return 2
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer closeAll()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (json|sqlite)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding diary entries")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	})

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
