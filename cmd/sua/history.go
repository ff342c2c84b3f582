package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sua/internal/config"
	"sua/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded find-unused runs",
	Long: `List past find-unused runs recorded in the history database, newest
first.

Examples:
  sua history
  sua history --limit 5`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	projectRoot, err := resolveProjectRoot()
	if err != nil {
		exitWithError("", err)
	}

	cfg, err := config.LoadConfig(projectRoot)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	logger := newLogger(cfg)

	store, err := history.Open(projectRoot, logger)
	if err != nil {
		exitWithError("opening run history", err)
	}
	defer store.Close()

	runs, err := store.List(historyLimit)
	if err != nil {
		exitWithError("listing run history", err)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return
	}

	for _, run := range runs {
		line := fmt.Sprintf("%s  analyzed=%d unused=%d threshold=%d elapsed=%.1fs",
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Analyzed, run.Unused, run.Threshold, run.ElapsedSeconds)
		if run.Group != "" {
			line += "  app=" + run.Group
		}
		fmt.Println(line)
	}
}
