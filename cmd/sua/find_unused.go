package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sua/internal/errors"
	"sua/internal/history"
	"sua/internal/report"
)

var (
	findUnusedThreshold int
	findUnusedLimit     int
	findUnusedApp       string
	findUnusedJSON      bool
	findUnusedOutput    string
	findUnusedVerbose   bool
	findUnusedNoHistory bool
)

var findUnusedCmd = &cobra.Command{
	Use:   "find-unused",
	Short: "Find serializers nothing in the project uses",
	Long: `Sweep the project for serializer classes, analyze each one and report
those whose total usage count is at or below the threshold.

Long batches write a progress snapshot beside the output file every few
candidates, so partial results survive an interrupted run.

Examples:
  sua find-unused
  sua find-unused --threshold 2 --app billing
  sua find-unused --json --output unused.json
  sua find-unused --limit 50 --verbose`,
	Run: runFindUnused,
}

func init() {
	findUnusedCmd.Flags().IntVar(&findUnusedThreshold, "threshold", 0, "Report serializers with this many usages or fewer")
	findUnusedCmd.Flags().IntVar(&findUnusedLimit, "limit", 0, "Analyze at most this many serializers (0 = all)")
	findUnusedCmd.Flags().StringVar(&findUnusedApp, "app", "", "Only analyze serializers under this application")
	findUnusedCmd.Flags().BoolVar(&findUnusedJSON, "json", false, "Emit JSON instead of text")
	findUnusedCmd.Flags().StringVar(&findUnusedOutput, "output", "", "Write results to a file instead of stdout (.zst compresses)")
	findUnusedCmd.Flags().BoolVar(&findUnusedVerbose, "verbose", false, "Include a usage breakdown per serializer")
	findUnusedCmd.Flags().BoolVar(&findUnusedNoHistory, "no-history", false, "Skip recording this run in the history database")
	rootCmd.AddCommand(findUnusedCmd)
}

func runFindUnused(cmd *cobra.Command, args []string) {
	env := mustGetAuditEnv()

	// CLI flag > config default
	threshold := findUnusedThreshold
	if !cmd.Flags().Changed("threshold") {
		threshold = env.cfg.Report.Threshold
	}

	agg := report.NewAggregator(env.tree, env.logger)
	batch, err := agg.Run(newContext(), report.Options{
		Threshold:     threshold,
		Limit:         findUnusedLimit,
		Group:         findUnusedApp,
		Output:        findUnusedOutput,
		JSON:          findUnusedJSON,
		SnapshotEvery: env.cfg.Report.SnapshotEvery,
	})
	if err != nil {
		exitWithError("running batch analysis", err)
	}

	var data []byte
	if findUnusedJSON {
		data, err = report.BatchJSON(batch)
		if err != nil {
			exitWithError("", errors.NewAuditError(errors.InternalError,
				"could not encode batch report", err))
		}
	} else {
		data = []byte(report.BatchText(batch, findUnusedVerbose))
	}

	if findUnusedOutput != "" {
		if err := report.WriteOutput(findUnusedOutput, data); err != nil {
			exitWithError("", errors.NewAuditError(errors.OutputWriteFailed,
				fmt.Sprintf("could not write %s", findUnusedOutput), err))
		}
		fmt.Printf("Results saved to %s\n", findUnusedOutput)
	} else {
		fmt.Println(string(data))
	}

	if !findUnusedNoHistory && env.cfg.History.Enabled {
		recordRun(env, batch, threshold)
	}
}

// recordRun stores the batch outcome in the run history. Failures degrade to
// a warning.
func recordRun(env *auditEnv, batch *report.BatchReport, threshold int) {
	store, err := history.Open(env.projectRoot, env.logger)
	if err != nil {
		env.logger.Warn("Could not open run history", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer store.Close()

	run := history.Run{
		RunID:          batch.RunID,
		ElapsedSeconds: batch.Elapsed.Seconds(),
		Analyzed:       len(batch.Results),
		Unused:         len(batch.Unused),
		Threshold:      threshold,
		Group:          findUnusedApp,
	}
	if err := store.Record(run); err != nil {
		env.logger.Warn("Could not record run history", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
