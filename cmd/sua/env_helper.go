package main

import (
	"context"
	"fmt"
	"sync"

	"sua/internal/config"
	"sua/internal/logging"
	"sua/internal/registry"
	"sua/internal/scan"
)

// auditEnv bundles what every scan command needs: the loaded configuration,
// the resolved application roots and the indexed file tree.
type auditEnv struct {
	projectRoot string
	cfg         *config.Config
	resolution  *registry.Resolution
	tree        *scan.FileTree
	logger      *logging.Logger
}

var (
	envOnce   sync.Once
	sharedEnv *auditEnv
	envErr    error

	// envLogger is set as soon as the configured logger exists, so error
	// paths can log even when the rest of the environment fails to load.
	envLogger *logging.Logger
)

// getAuditEnv returns a shared audit environment.
// The environment is lazily initialized on first use.
func getAuditEnv() (*auditEnv, error) {
	envOnce.Do(func() {
		projectRoot, err := resolveProjectRoot()
		if err != nil {
			envErr = fmt.Errorf("failed to resolve project root: %w", err)
			return
		}

		// Load configuration
		cfg, err := config.LoadConfig(projectRoot)
		if err != nil {
			bootstrap := logging.NewLogger(logging.Config{
				Format: logging.HumanFormat,
				Level:  logging.InfoLevel,
			})
			bootstrap.Warn("Failed to load config, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
			cfg = config.DefaultConfig()
		}
		if err := cfg.Validate(); err != nil {
			envErr = fmt.Errorf("invalid configuration: %w", err)
			return
		}

		logger := newLogger(cfg)
		envLogger = logger

		// Resolve application roots
		res, err := registry.Resolve(projectRoot, cfg.Registry, logger)
		if err != nil {
			envErr = err
			return
		}

		roots := make([]string, 0, len(res.Apps))
		for _, app := range res.Apps {
			roots = append(roots, app.Root)
		}

		// Index the file tree
		tree, err := scan.NewFileTree(projectRoot, roots, scan.TreeOptions{
			Extension: cfg.Scan.Extension,
			Ignore:    cfg.Scan.Ignore,
		}, logger)
		if err != nil {
			envErr = fmt.Errorf("failed to index project files: %w", err)
			return
		}

		sharedEnv = &auditEnv{
			projectRoot: projectRoot,
			cfg:         cfg,
			resolution:  res,
			tree:        tree,
			logger:      logger,
		}
	})

	return sharedEnv, envErr
}

// mustGetAuditEnv returns the shared audit environment or exits on error.
func mustGetAuditEnv() *auditEnv {
	env, err := getAuditEnv()
	if err != nil {
		exitWithError("", err)
	}
	return env
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// newLogger creates a logger from the logging section of the config.
func newLogger(cfg *config.Config) *logging.Logger {
	format := logging.HumanFormat
	if parsed, err := logging.ParseFormat(cfg.Logging.Format); err == nil {
		format = parsed
	}
	level := logging.InfoLevel
	if parsed, err := logging.ParseLevel(cfg.Logging.Level); err == nil {
		level = parsed
	}
	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  level,
	})
}
