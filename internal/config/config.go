// Package config provides configuration types and defaults for ordo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ordolab/ordo/internal/log"
	"github.com/ordolab/ordo/selexpr"
)

// Config holds all configuration options for the ordo CLI.
type Config struct {
	// Defs is the path to the variable definitions file.
	Defs string `mapstructure:"defs"`

	// Context restricts commands to one registration context.
	// Empty means the default context.
	Context string `mapstructure:"context"`

	// SelectionMode is the selection dialect definitions load with when
	// they name none: "root" or "numexpr".
	SelectionMode string `mapstructure:"selection_mode"`

	// AutoReload keeps the validate command running and re-validates the
	// definitions file when it changes; the --watch flag overrides it.
	AutoReload bool `mapstructure:"auto_reload"`

	// ReloadDebounce is the quiet period before a reload triggers.
	ReloadDebounce time.Duration `mapstructure:"reload_debounce"`

	// Output selects the list output format: "text" or "json".
	Output string `mapstructure:"output"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Defs:           "variables.yml",
		Context:        "",
		SelectionMode:  string(selexpr.DefaultMode),
		AutoReload:     true,
		ReloadDebounce: 500 * time.Millisecond,
		Output:         "text",
	}
}

// Validate checks the configuration for errors. Empty values use defaults.
func (c Config) Validate() error {
	if c.SelectionMode != "" {
		if err := selexpr.Mode(c.SelectionMode).Validate(); err != nil {
			return fmt.Errorf("selection_mode: %w", err)
		}
	}
	switch c.Output {
	case "", "text", "json":
	default:
		return fmt.Errorf("output must be \"text\" or \"json\", got %q", c.Output)
	}
	if c.ReloadDebounce < 0 {
		return fmt.Errorf("reload_debounce must not be negative, got %v", c.ReloadDebounce)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Ordo Configuration

# Path to the variable definitions file
defs: variables.yml

# Restrict commands to one registration context (empty: default context)
# context: run2

# Selection dialect for definitions that name none: root or numexpr
selection_mode: root

# Keep validate running and re-validate when the file changes
# (the --watch flag overrides this)
auto_reload: true
reload_debounce: 500ms

# Output format for list commands: text or json
output: text
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
