// Package config resolves the ottobrew configuration directory and loads
// config.yaml with viper. Environment variables prefixed OTTOBREW_
// override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/hammamikhairi/ottobrew/internal/logger"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "OTTOBREW"
	// EnvConfigDir selects the configuration directory.
	EnvConfigDir = EnvPrefix + "_CONFIG_DIR"
	// DefaultDir is used when neither flag nor env names a directory.
	DefaultDir = ".ottobrew"

	KeyLogLevel     = "log_level"
	KeyLogFile      = "log_file"
	KeyStateBackend = "state_backend"
	KeyStatePath    = "state_path"
	KeyDataDir      = "data_dir"
	KeySession      = "session"

	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	// DefaultSession is the slot the guide resumes when none is configured.
	DefaultSession = "default"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# ottobrew configuration

# Log verbosity: quiet, normal or verbose
log_level: normal

# Log destination; "stderr" logs to the console
# log_file: .ottobrew/ottobrew.log

# Where the guide keeps its progress: sqlite or memory
state_backend: sqlite

# SQLite database for the session slot
# state_path: .ottobrew/state.db

# Directory with grinders.yaml, recipes.yaml or troubleshooting.yaml
# overriding the built-in tables (optional)
# data_dir:

# Session slot the guide resumes
session: default
`

// Config is the resolved configuration.
type Config struct {
	Dir          string
	LogLevel     logger.Level
	LogFile      string
	StateBackend string
	StatePath    string
	DataDir      string
	Session      string
}

// ResolveDir returns the configuration directory: flag value, then
// OTTOBREW_CONFIG_DIR, then DefaultDir.
func ResolveDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return env
	}
	return DefaultDir
}

// Load reads config.yaml from dir, creating the directory and a default
// file on first run. A missing config.yaml is not an error.
func Load(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(dir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyLogLevel, "normal")
	v.SetDefault(KeyLogFile, filepath.Join(dir, "ottobrew.log"))
	v.SetDefault(KeyStateBackend, BackendSQLite)
	v.SetDefault(KeyStatePath, filepath.Join(dir, "state.db"))
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeySession, DefaultSession)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(dir, v)
}

func fromViper(dir string, v *viper.Viper) (*Config, error) {
	level, err := logger.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", KeyLogLevel, err)
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString(KeyStateBackend)))
	switch backend {
	case BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("config %s: unknown backend %q (want sqlite or memory)", KeyStateBackend, backend)
	}

	session := strings.TrimSpace(v.GetString(KeySession))
	if session == "" {
		session = DefaultSession
	}

	return &Config{
		Dir:          dir,
		LogLevel:     level,
		LogFile:      v.GetString(KeyLogFile),
		StateBackend: backend,
		StatePath:    v.GetString(KeyStatePath),
		DataDir:      v.GetString(KeyDataDir),
		Session:      session,
	}, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in dir.
func ensureDefaultConfigFile(dir string) error {
	path := filepath.Join(dir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
