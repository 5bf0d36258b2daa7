package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/christianwengert/mcp-cyberchef/internal/logging"
	"github.com/christianwengert/mcp-cyberchef/internal/resolve"
	"github.com/christianwengert/mcp-cyberchef/internal/upstream"
	"github.com/christianwengert/mcp-cyberchef/pkg/fileops"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "opextract" // application name used for config directory

const (
	DefaultOperationsDir = "./src/core/operations"
	DefaultOutput        = "operations.json"
	ConfigVersion        = "1.0"
)

// Config holds the extractor settings. Every field has a default, so a config file
// only needs the values it changes.
type Config struct {
	// OperationsDir is the directory holding one operation definition per file.
	OperationsDir string `yaml:"operations_dir"`
	// Output is the catalog file written by the extract command.
	Output string `yaml:"output"`
	// Extensions selects which files in OperationsDir are read.
	Extensions []string `yaml:"extensions"`
	// EvalTimeout bounds the evaluation of one imported module.
	EvalTimeout time.Duration `yaml:"eval_timeout"`
	// MaxFileSize bounds a single operation source file, in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`
	// Repository is the upstream checkout used by fetch and extract --fetch.
	Repository RepositoryConfig `yaml:"repository"`
	Version    string           `yaml:"version"`
}

// RepositoryConfig describes the upstream CyberChef checkout.
type RepositoryConfig struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch,omitempty"`
	// Path is the local clone directory. Empty selects a directory under the user's
	// data directory.
	Path string `yaml:"path,omitempty"`
}

// CheckoutPath returns the configured clone directory, or the default one for URL.
func (r RepositoryConfig) CheckoutPath() (string, error) {
	if r.Path != "" {
		return r.Path, nil
	}
	return upstream.DefaultCheckoutPath(r.URL)
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() string {
	configPath := filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
	logging.Debug("Determined config path", "path", configPath)
	return configPath
}

// Load loads the config from the standard location. A missing file yields the
// defaults.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	if !exists {
		logging.Debug("No config file, using defaults", "path", configPath)
		cfg := DefaultConfig()
		return &cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path. Fields absent from the file keep their
// default values.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultConfig().Extensions
	}
	if cfg.Repository.URL == "" {
		cfg.Repository.URL = upstream.DefaultRemote
	}

	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary := ConfigPath()
	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		OperationsDir: DefaultOperationsDir,
		Output:        DefaultOutput,
		Extensions:    []string{".mjs", ".js"},
		EvalTimeout:   resolve.DefaultEvalTimeout,
		MaxFileSize:   fileops.DefaultMaxFileSize,
		Repository:    RepositoryConfig{URL: upstream.DefaultRemote},
		Version:       ConfigVersion,
	}
}

// Resolve makes OperationsDir, Output and a set Repository.Path absolute, relative
// to cwd.
func (c *Config) Resolve(cwd string) {
	c.OperationsDir = fileops.ResolvePath(c.OperationsDir, cwd)
	c.Output = fileops.ResolvePath(c.Output, cwd)
	if c.Repository.Path != "" {
		c.Repository.Path = fileops.ResolvePath(c.Repository.Path, cwd)
	}
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	if c.Version == "" {
		c.Version = ConfigVersion
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
