package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete SUA configuration (v1 schema)
type Config struct {
	Version     int    `json:"version" mapstructure:"version"`
	ProjectRoot string `json:"projectRoot" mapstructure:"projectRoot"`

	Registry RegistryConfig `json:"registry" mapstructure:"registry"`
	Scan     ScanConfig     `json:"scan" mapstructure:"scan"`
	Report   ReportConfig   `json:"report" mapstructure:"report"`
	History  HistoryConfig  `json:"history" mapstructure:"history"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// RegistryConfig controls how application roots are resolved
type RegistryConfig struct {
	// Roots lists explicit app root directories relative to the project root.
	// When set, file- and convention-based resolution are skipped.
	Roots []string `json:"roots" mapstructure:"roots"`
	// File points at a registry file (TOML or YAML). Empty means try
	// apps.toml then apps.yaml in the project root.
	File string `json:"file" mapstructure:"file"`
}

// ScanConfig controls file tree traversal
type ScanConfig struct {
	// Extension selects which files are scanned, e.g. ".py"
	Extension string `json:"extension" mapstructure:"extension"`
	// Ignore holds glob patterns matched against both an entry's name and
	// its project-relative path
	Ignore []string `json:"ignore" mapstructure:"ignore"`
}

// ReportConfig controls batch reporting
type ReportConfig struct {
	// Threshold marks a serializer unused when total usages <= Threshold
	Threshold int `json:"threshold" mapstructure:"threshold"`
	// SnapshotEvery writes a progress snapshot after this many candidates
	SnapshotEvery int `json:"snapshotEvery" mapstructure:"snapshotEvery"`
}

// HistoryConfig controls batch-run history recording
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		ProjectRoot: ".",
		Registry: RegistryConfig{
			Roots: []string{},
			File:  "",
		},
		Scan: ScanConfig{
			Extension: ".py",
			Ignore:    []string{"__pycache__", ".git"},
		},
		Report: ReportConfig{
			Threshold:     0,
			SnapshotEvery: 10,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .sua/config.json
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	// Set defaults so partial config files keep sane values
	v.SetDefault("version", 1)
	v.SetDefault("projectRoot", ".")
	v.SetDefault("registry.roots", []string{})
	v.SetDefault("registry.file", "")
	v.SetDefault("scan.extension", ".py")
	v.SetDefault("scan.ignore", []string{"__pycache__", ".git"})
	v.SetDefault("report.threshold", 0)
	v.SetDefault("report.snapshotEvery", 10)
	v.SetDefault("history.enabled", true)
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".sua"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .sua/config.json
func (c *Config) Save(projectRoot string) error {
	configDir := filepath.Join(projectRoot, ".sua")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Scan.Extension == "" || !strings.HasPrefix(c.Scan.Extension, ".") {
		return &ConfigError{Field: "scan.extension", Message: "extension must start with a dot"}
	}
	if c.Report.SnapshotEvery < 1 {
		return &ConfigError{Field: "report.snapshotEvery", Message: "must be at least 1"}
	}
	switch c.Logging.Format {
	case "json", "human":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be json or human"}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "must be debug, info, warn or error"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
