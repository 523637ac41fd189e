package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/cmdtree/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// ErrConfigExists is returned when CreateDefaultConfigFile finds a file in place
var ErrConfigExists = errors.New("config file already exists")

// FileConfig represents the configuration file structure. Pointer fields
// distinguish "not set" from an explicit zero value.
type FileConfig struct {
	// Interpreter settings
	Prompt     *string `yaml:"prompt,omitempty"`
	Delimiters *string `yaml:"delimiters,omitempty"`
	Comment    *string `yaml:"comment,omitempty"`
	MaxDepth   *int    `yaml:"max_depth,omitempty"`

	// Line editing
	HistoryFile *string `yaml:"history_file,omitempty"`
	Editor      *string `yaml:"editor,omitempty"` // "prompt", "liner"
	Render      *bool   `yaml:"render,omitempty"`

	// Logging
	Log *LogFileConfig `yaml:"log,omitempty"`

	// Scripts sourced before the first prompt
	Startup []string `yaml:"startup,omitempty"`
}

// LogFileConfig holds logger settings from the config file
type LogFileConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	File   string `yaml:"file,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile loads the first config file found in GetConfigPaths. It
// returns an empty config and an empty path when there is none.
func LoadConfigFile() (*FileConfig, string, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			cfg, err := loadConfigFromPath(path)
			return cfg, path, err
		}
	}

	// No config file found, return empty config
	return &FileConfig{}, "", nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and CLI flags,
// so it is applied right after the defaults.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if fc.Prompt != nil {
		c.Prompt = *fc.Prompt
	}
	if fc.Delimiters != nil {
		c.Delimiters = *fc.Delimiters
	}
	if fc.Comment != nil {
		c.Comment = *fc.Comment
	}
	if fc.MaxDepth != nil {
		c.MaxDepth = *fc.MaxDepth
	}
	if fc.HistoryFile != nil {
		c.HistoryFile = *fc.HistoryFile
	}
	if fc.Editor != nil {
		c.Editor = *fc.Editor
	}
	if fc.Render != nil {
		c.Render = *fc.Render
	}

	if fc.Log != nil {
		if fc.Log.Level != "" {
			c.Log.Level = fc.Log.Level
		}
		if fc.Log.Format != "" {
			c.Log.Format = fc.Log.Format
		}
		if fc.Log.File != "" {
			c.Log.File = fc.Log.File
		}
	}

	if len(fc.Startup) > 0 {
		c.Startup = fc.Startup
	}
}

// Marshal renders the effective configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// CreateDefaultConfigFile creates a default config file at the user config directory
func CreateDefaultConfigFile() (string, error) {
	configDir, err := configDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, constants.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%w at %s", ErrConfigExists, path)
	}

	defaultConfig := `# cmdtree configuration
# Location: ~/.config/cmdtree/config.yaml
# Environment variables (CMDTREE_*) and command-line flags override these values.

# Text shown before every interactive line
# prompt: "cmdtree> "

# Characters that separate tokens (default: space, tab, CR, LF)
# delimiters: " \t\r\n"

# Token prefix that starts a comment; "" disables comments
# comment: "#"

# Maximum nesting of dispatch calls (source running source ...)
# max_depth: 32

# Line history file; "" disables persistence
# history_file: ~/.config/cmdtree/history

# Line editor: "prompt" (completion menu, hints) or "liner" (plain)
# editor: prompt

# Render help output as markdown
# render: false

# Logging
# log:
#   level: warn    # debug, info, warn, error, none
#   format: text   # text or json
#   file: "-"      # "-" for stderr

# Scripts sourced before the first prompt
# startup:
#   - ~/.config/cmdtree/init.cmd
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
