package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sua/internal/version"
)

var (
	// projectRootFlag is the CLI --project-root flag value
	projectRootFlag string
)

var rootCmd = &cobra.Command{
	Use:   "sua",
	Short: "SUA - Serializer Usage Auditor",
	Long: `SUA (Serializer Usage Auditor) scans a Django project for usages of REST
framework serializer classes. It reports where a serializer is imported,
assigned as serializer_class, nested as a field, inherited from, instantiated
or picked dynamically in get_serializer_class, and can sweep the whole project
for serializers nothing references anymore.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("SUA version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&projectRootFlag, "project-root", "",
		"Django project root (default: $SUA_PROJECT_ROOT or the current directory)")
}

// resolveProjectRoot determines the project root from CLI flag, env var, and cwd.
// Precedence: CLI flag > SUA_PROJECT_ROOT env var > current directory
func resolveProjectRoot() (string, error) {
	// 1. CLI flag (highest priority)
	if projectRootFlag != "" {
		return filepath.Abs(projectRootFlag)
	}

	// 2. Environment variable
	if env := os.Getenv("SUA_PROJECT_ROOT"); env != "" {
		return filepath.Abs(env)
	}

	// 3. Current directory (default)
	return os.Getwd()
}
