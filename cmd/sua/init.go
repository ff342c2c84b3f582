package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sua/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to .sua/config.json in the project
root. An existing config file is left untouched.

Examples:
  sua init
  sua init --project-root /srv/shop`,
	Run: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	projectRoot, err := resolveProjectRoot()
	if err != nil {
		exitWithError("", err)
	}

	configPath := filepath.Join(projectRoot, ".sua", "config.json")
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists at %s\n", configPath)
		return
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(projectRoot); err != nil {
		exitWithError("writing config", err)
	}

	fmt.Printf("Wrote default config to %s\n", configPath)
}
