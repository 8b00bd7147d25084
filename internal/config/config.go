// Package config provides configuration management for vendorscore.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the vendorscore configuration.
type Config struct {
	Vendorscore VendorscoreConfig `yaml:"vendorscore"`
}

// VendorscoreConfig contains the main settings.
type VendorscoreConfig struct {
	// Dataset is the path to the master pricing CSV file.
	Dataset string `yaml:"dataset"`

	// OrderQuantity is the default order quantity for total-cost
	// projection. Must be positive.
	OrderQuantity int `yaml:"order_quantity"`

	// ScoreDecimals is the number of decimal places vendor scores are
	// rounded to.
	ScoreDecimals int `yaml:"score_decimals"`

	// Badges are the labels for ranks 1-3.
	Badges []string `yaml:"badges"`

	// Auth configures the dashboard login gate.
	Auth AuthConfig `yaml:"auth"`

	// History configures run-snapshot recording.
	History HistoryConfig `yaml:"history"`
}

// AuthConfig contains dashboard authentication settings. The shared secret
// itself lives in the named environment variable, never in the file.
type AuthConfig struct {
	PasswordEnv string `yaml:"password_env"`
}

// HistoryConfig contains run-history settings.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Vendorscore: VendorscoreConfig{
			Dataset:       "master_pricing_clean.csv",
			OrderQuantity: 1,
			ScoreDecimals: 4,
			Badges:        []string{"🥇", "🥈", "🥉"},
			Auth: AuthConfig{
				PasswordEnv: "VENDORSCORE_PASSWORD",
			},
			History: HistoryConfig{
				Enabled: false,
				Path:    ".vendorscore/history.db",
			},
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the loaded configuration for values the engine cannot
// work with.
func (c *Config) Validate() error {
	if c.Vendorscore.OrderQuantity < 1 {
		return fmt.Errorf("order_quantity must be a positive integer, got %d", c.Vendorscore.OrderQuantity)
	}
	if c.Vendorscore.ScoreDecimals < 0 {
		return fmt.Errorf("score_decimals cannot be negative, got %d", c.Vendorscore.ScoreDecimals)
	}
	if len(c.Vendorscore.Badges) != 3 {
		return fmt.Errorf("badges must list exactly 3 labels, got %d", len(c.Vendorscore.Badges))
	}
	return nil
}

// FindConfig searches for a configuration file starting from the given path
// and walking upward.
func FindConfig(startPath string) (string, error) {
	candidates := []string{
		".vendorscore/config.yaml",
		"vendorscore.yaml",
		"vendorscore.yml",
	}

	dir := startPath
	for {
		for _, candidate := range candidates {
			path := filepath.Join(dir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no vendorscore configuration found")
}

// LoadFromDir loads configuration from the given directory, falling back to
// defaults when no config file exists.
func LoadFromDir(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// DatasetPath returns the resolved dataset path.
func (c *Config) DatasetPath(baseDir string) string {
	if filepath.IsAbs(c.Vendorscore.Dataset) {
		return c.Vendorscore.Dataset
	}
	return filepath.Join(baseDir, c.Vendorscore.Dataset)
}

// HistoryPath returns the resolved history database path.
func (c *Config) HistoryPath(baseDir string) string {
	if filepath.IsAbs(c.Vendorscore.History.Path) {
		return c.Vendorscore.History.Path
	}
	return filepath.Join(baseDir, c.Vendorscore.History.Path)
}

// BadgeLabels returns the configured badges as a fixed-size array for the
// engine.
func (c *Config) BadgeLabels() [3]string {
	var b [3]string
	copy(b[:], c.Vendorscore.Badges)
	return b
}

// Password returns the shared secret from the configured environment
// variable. An empty value means the login gate is open.
func (c *Config) Password() string {
	if c.Vendorscore.Auth.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(c.Vendorscore.Auth.PasswordEnv)
}
