package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quocvuong92/cmdtree/internal/constants"
	"github.com/quocvuong92/cmdtree/internal/logging"
)

// Environment variable names
const (
	// Interpreter settings
	EnvPrompt      = "CMDTREE_PROMPT"
	EnvDelimiters  = "CMDTREE_DELIMITERS"
	EnvComment     = "CMDTREE_COMMENT"
	EnvMaxDepth    = "CMDTREE_MAX_DEPTH"
	EnvHistoryFile = "CMDTREE_HISTORY_FILE"
	EnvEditor      = "CMDTREE_EDITOR"
	EnvRender      = "CMDTREE_RENDER"
	EnvStartup     = "CMDTREE_STARTUP"

	// Logging settings
	EnvLogLevel  = "CMDTREE_LOG_LEVEL"
	EnvLogFormat = "CMDTREE_LOG_FORMAT"
	EnvLogFile   = "CMDTREE_LOG_FILE"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultPrompt        = constants.DefaultPrompt
	DefaultDelimiters    = constants.DefaultDelimiters
	DefaultCommentMarker = constants.DefaultCommentMarker
	DefaultMaxDepth      = constants.DefaultMaxDepth
	DefaultEditor        = constants.DefaultEditor
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
	DefaultLogFile       = "-"
)

// Errors
var (
	ErrInvalidMaxDepth  = errors.New("max_depth must be at least 1")
	ErrEmptyDelimiters  = errors.New("delimiters cannot be empty")
	ErrInvalidEditor    = errors.New("invalid editor. Use 'prompt' or 'liner'")
	ErrInvalidLogLevel  = errors.New("invalid log level. Use 'debug', 'info', 'warn', 'error' or 'none'")
	ErrInvalidLogFormat = errors.New("invalid log format. Use 'text' or 'json'")
	ErrInvalidEnvValue  = errors.New("invalid environment value")
)

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"` // "-" for stderr
}

// Config holds the application configuration
type Config struct {
	Prompt      string    `yaml:"prompt"`
	Delimiters  string    `yaml:"delimiters"`
	Comment     string    `yaml:"comment"` // "" disables comments
	MaxDepth    int       `yaml:"max_depth"`
	HistoryFile string    `yaml:"history_file"` // "" disables persistence
	Editor      string    `yaml:"editor"`       // "prompt" or "liner"
	Render      bool      `yaml:"render"`
	Log         LogConfig `yaml:"log"`
	Startup     []string  `yaml:"startup,omitempty"`

	// Source is the config file the settings were read from, if any
	Source string `yaml:"-"`
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{
		Prompt:      DefaultPrompt,
		Delimiters:  DefaultDelimiters,
		Comment:     DefaultCommentMarker,
		MaxDepth:    DefaultMaxDepth,
		HistoryFile: DefaultHistoryPath(),
		Editor:      DefaultEditor,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   DefaultLogFile,
		},
	}
}

// Load builds the configuration from defaults, the config file and the
// environment, in increasing priority. path selects the config file; an
// empty path searches GetConfigPaths. The result is not validated yet so
// callers can apply flags first.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	var (
		fc  *FileConfig
		err error
	)
	if path != "" {
		fc, err = loadConfigFromPath(path)
	} else {
		fc, path, err = LoadConfigFile()
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyFileConfig(fc)
	if fc != nil && path != "" {
		cfg.Source = path
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings with any CMDTREE_* variables that are set.
// CMDTREE_COMMENT may be set to the empty string to disable comments.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvPrompt); v != "" {
		c.Prompt = v
	}
	if v := os.Getenv(EnvDelimiters); v != "" {
		c.Delimiters = v
	}
	if v, ok := os.LookupEnv(EnvComment); ok {
		c.Comment = v
	}
	if v := os.Getenv(EnvMaxDepth); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnvValue, EnvMaxDepth, v)
		}
		c.MaxDepth = n
	}
	if v, ok := os.LookupEnv(EnvHistoryFile); ok {
		c.HistoryFile = v
	}
	if v := os.Getenv(EnvEditor); v != "" {
		c.Editor = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvRender); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnvValue, EnvRender, v)
		}
		c.Render = b
	}
	if list := getListFromEnv(EnvStartup); len(list) > 0 {
		c.Startup = list
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	return nil
}

// getListFromEnv retrieves a comma-separated list from an environment variable
func getListFromEnv(envVar string) []string {
	raw := os.Getenv(envVar)
	if raw == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// Validate checks the configuration and normalizes enumerated values
func (c *Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidMaxDepth, c.MaxDepth)
	}
	if c.Delimiters == "" {
		return ErrEmptyDelimiters
	}

	c.Editor = strings.ToLower(strings.TrimSpace(c.Editor))
	if c.Editor == "" {
		c.Editor = DefaultEditor
	}
	if c.Editor != constants.EditorPrompt && c.Editor != constants.EditorLiner {
		return fmt.Errorf("%w: %q", ErrInvalidEditor, c.Editor)
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if _, err := logging.ParseLevelStrict(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}
	return nil
}

// LogLevel returns the parsed log level. Call after Validate.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

// LogFormat returns the parsed log format. Call after Validate.
func (c *Config) LogFormat() logging.Format {
	f, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		return logging.FormatText
	}
	return f
}

// DefaultHistoryPath returns the history file under the user config
// directory, or "" if no such directory can be determined.
func DefaultHistoryPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, constants.AppName, constants.HistoryFileName)
}

// configDir returns the user config directory, falling back to ~/.config
func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err == nil {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(homeDir, ".config"), nil
}
