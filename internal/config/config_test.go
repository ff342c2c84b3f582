package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Check version
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}

	if cfg.ProjectRoot != "." {
		t.Errorf("ProjectRoot = %q, want %q", cfg.ProjectRoot, ".")
	}

	// Scan defaults
	if cfg.Scan.Extension != ".py" {
		t.Errorf("Scan.Extension = %q, want %q", cfg.Scan.Extension, ".py")
	}
	if len(cfg.Scan.Ignore) == 0 {
		t.Error("Scan.Ignore should have defaults")
	}

	// Report defaults
	if cfg.Report.Threshold != 0 {
		t.Errorf("Report.Threshold = %d, want 0", cfg.Report.Threshold)
	}
	if cfg.Report.SnapshotEvery != 10 {
		t.Errorf("Report.SnapshotEvery = %d, want 10", cfg.Report.SnapshotEvery)
	}

	// History is on by default
	if !cfg.History.Enabled {
		t.Error("History should be enabled by default")
	}

	// Logging defaults
	if cfg.Logging.Format != "human" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "human")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	// Defaults must validate
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should validate, got: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{"default config", func(cfg *Config) {}, false},
		{"version 0 unsupported", func(cfg *Config) { cfg.Version = 0 }, true},
		{"version 2 unsupported", func(cfg *Config) { cfg.Version = 2 }, true},
		{"empty extension", func(cfg *Config) { cfg.Scan.Extension = "" }, true},
		{"extension without dot", func(cfg *Config) { cfg.Scan.Extension = "py" }, true},
		{"zero snapshot interval", func(cfg *Config) { cfg.Report.SnapshotEvery = 0 }, true},
		{"negative snapshot interval", func(cfg *Config) { cfg.Report.SnapshotEvery = -3 }, true},
		{"bad logging format", func(cfg *Config) { cfg.Logging.Format = "text" }, true},
		{"bad logging level", func(cfg *Config) { cfg.Logging.Level = "trace" }, true},
		{"json format ok", func(cfg *Config) { cfg.Logging.Format = "json" }, false},
		{"debug level ok", func(cfg *Config) { cfg.Logging.Level = "debug" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr && err == nil {
				t.Error("Validate() should return error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() returned unexpected error: %v", err)
			}

			// Check error type
			if err != nil {
				if _, ok := err.(*ConfigError); !ok {
					t.Errorf("Validate() error type = %T, want *ConfigError", err)
				}
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{
		Field:   "version",
		Message: "unsupported config version",
	}

	got := err.Error()
	want := "config error in field 'version': unsupported config version"

	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	// Create a temp directory without config
	tmpDir := t.TempDir()

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Should return default config when no config file exists
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1 (default)", cfg.Version)
	}
	if cfg.Scan.Extension != ".py" {
		t.Errorf("Scan.Extension = %q, want %q (default)", cfg.Scan.Extension, ".py")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	// Create a temp directory with config
	tmpDir := t.TempDir()
	suaDir := filepath.Join(tmpDir, ".sua")
	if err := os.MkdirAll(suaDir, 0755); err != nil {
		t.Fatalf("Failed to create .sua dir: %v", err)
	}

	configContent := `{
		"version": 1,
		"registry": {
			"roots": ["billing", "accounts"],
			"file": "myapps.toml"
		},
		"report": {
			"threshold": 2
		},
		"logging": {"level": "debug"}
	}`

	configPath := filepath.Join(suaDir, "config.json")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Check custom values were loaded
	if len(cfg.Registry.Roots) != 2 || cfg.Registry.Roots[0] != "billing" {
		t.Errorf("Registry.Roots = %v, want [billing accounts]", cfg.Registry.Roots)
	}
	if cfg.Registry.File != "myapps.toml" {
		t.Errorf("Registry.File = %q, want %q", cfg.Registry.File, "myapps.toml")
	}
	if cfg.Report.Threshold != 2 {
		t.Errorf("Report.Threshold = %d, want 2", cfg.Report.Threshold)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}

	// Unset keys fall back to defaults
	if cfg.Scan.Extension != ".py" {
		t.Errorf("Scan.Extension = %q, want %q (default)", cfg.Scan.Extension, ".py")
	}
	if cfg.Report.SnapshotEvery != 10 {
		t.Errorf("Report.SnapshotEvery = %d, want 10 (default)", cfg.Report.SnapshotEvery)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	suaDir := filepath.Join(tmpDir, ".sua")
	if err := os.MkdirAll(suaDir, 0755); err != nil {
		t.Fatalf("Failed to create .sua dir: %v", err)
	}

	configPath := filepath.Join(suaDir, "config.json")
	if err := os.WriteFile(configPath, []byte("{ invalid json }"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(tmpDir); err == nil {
		t.Error("LoadConfig() should return error for invalid JSON")
	}
}

func TestConfig_Save(t *testing.T) {
	// Create a temp directory
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Report.Threshold = 3
	cfg.Registry.Roots = []string{"store"}

	err := cfg.Save(tmpDir)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Verify file was created (Save creates .sua itself)
	configPath := filepath.Join(tmpDir, ".sua", "config.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	// Load it back and verify
	loaded, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() after save error = %v", err)
	}

	if loaded.Report.Threshold != 3 {
		t.Errorf("Loaded Report.Threshold = %d, want 3", loaded.Report.Threshold)
	}
	if len(loaded.Registry.Roots) != 1 || loaded.Registry.Roots[0] != "store" {
		t.Errorf("Loaded Registry.Roots = %v, want [store]", loaded.Registry.Roots)
	}
}
