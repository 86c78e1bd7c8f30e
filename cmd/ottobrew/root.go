package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottobrew/internal/config"
	"github.com/hammamikhairi/ottobrew/internal/dataset"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/engine"
	"github.com/hammamikhairi/ottobrew/internal/grinder"
	"github.com/hammamikhairi/ottobrew/internal/logger"
	"github.com/hammamikhairi/ottobrew/internal/recipe"
	"github.com/hammamikhairi/ottobrew/internal/storage"
	"github.com/hammamikhairi/ottobrew/internal/troubleshoot"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries an exit code out of a RunE. A nil err exits silently.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// app holds what the subcommands share: configuration, the logger and
// lazily loaded data.
type app struct {
	flagConfigDir string
	flagDataDir   string
	flagLogFile   string
	flagVerbose   bool
	flagQuiet     bool

	cfg     *config.Config
	log     *logger.Logger
	errOut  io.Writer
	closers []io.Closer

	catalog *grinder.Catalog
	recipes *recipe.Table
	tree    *troubleshoot.Tree
}

func newApp() *app {
	return &app{log: logger.New(logger.LevelOff, nil), errOut: os.Stderr}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "ottobrew",
		Short:         "A coffee brew guide and taste troubleshooter",
		Long:          "ottobrew walks you from brew method, roast and grinder to a recipe,\nand helps fix a cup that tastes off.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			a.close()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: $OTTOBREW_CONFIG_DIR or .ottobrew)")
	root.PersistentFlags().StringVar(&a.flagDataDir, "data-dir", "", "directory with YAML tables overriding the built-in data")
	root.PersistentFlags().StringVar(&a.flagLogFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	root.PersistentFlags().BoolVar(&a.flagVerbose, "verbose", false, "enable verbose/debug logging")
	root.PersistentFlags().BoolVar(&a.flagQuiet, "quiet", false, "disable all logging")

	root.AddCommand(
		newGuideCmd(a),
		newRecipeCmd(a),
		newGrindersCmd(a),
		newTroubleshootCmd(a),
		newCheckCmd(a),
		newSessionCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and opens the log.
func (a *app) setup() error {
	cfg, err := config.Load(config.ResolveDir(a.flagConfigDir))
	if err != nil {
		return sysError(err)
	}
	if a.flagDataDir != "" {
		cfg.DataDir = a.flagDataDir
	}
	if a.flagLogFile != "" {
		cfg.LogFile = a.flagLogFile
	}
	if a.flagVerbose {
		cfg.LogLevel = logger.LevelVerbose
	}
	if a.flagQuiet {
		cfg.LogLevel = logger.LevelOff
	}
	a.cfg = cfg

	// Logs go to a file by default so the terminal UI stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" && cfg.LogFile != "stderr" && cfg.LogLevel != logger.LevelOff {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(a.errOut, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			logOut = f
			a.closers = append(a.closers, f)
		}
	}
	a.log = logger.New(cfg.LogLevel, logOut)
	a.log.Debug("config loaded from %s (backend=%s, session=%s)", cfg.Dir, cfg.StateBackend, cfg.Session)
	return nil
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
	a.closers = nil
}

// loadData loads and validates the tables. Integrity failures are system
// errors.
func (a *app) loadData() error {
	if a.catalog != nil {
		return nil
	}
	dataDir := ""
	if a.cfg != nil {
		dataDir = a.cfg.DataDir
	}

	ds, err := dataset.LoadDir(dataDir)
	if err != nil {
		return sysError(fmt.Errorf("loading data: %w", err))
	}

	tree := troubleshoot.NewTree(ds.Nodes, a.log)
	if err := tree.Validate(); err != nil {
		return sysError(err)
	}

	a.catalog = grinder.NewCatalog(ds.Grinders, a.log)
	a.recipes = recipe.NewTable(ds.Recipes, a.log)
	a.tree = tree
	return nil
}

// openStore opens the configured session slot.
func (a *app) openStore(ctx context.Context) (domain.StateStore, error) {
	if a.cfg == nil || a.cfg.StateBackend == config.BackendMemory {
		return storage.NewMemoryStore(a.log), nil
	}
	store, err := storage.OpenSQLite(ctx, a.cfg.StatePath, a.log)
	if err != nil {
		return nil, sysError(err)
	}
	a.closers = append(a.closers, store)
	return store, nil
}

// engine builds a guide engine over the loaded data and the session slot.
func (a *app) engine(ctx context.Context) (*engine.Engine, error) {
	if err := a.loadData(); err != nil {
		return nil, err
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	session := config.DefaultSession
	if a.cfg != nil {
		session = a.cfg.Session
	}
	return engine.New(a.catalog, a.recipes, store, a.log, engine.WithSessionID(session)), nil
}
