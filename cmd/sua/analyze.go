package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sua/internal/errors"
	"sua/internal/report"
	"sua/internal/scan"
)

var (
	analyzeVerbose bool
	analyzeOutput  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <app.module.ClassName>",
	Short: "Analyze usage of a single serializer class",
	Long: `Analyze how one serializer class is used across the project.

The serializer is referenced by its dotted import path. The report counts
imports, serializer_class assignments in views, usage as a field in other
serializers, inheritance, direct instantiations, many=True usage, inner
class references and Meta references.

Examples:
  sua analyze billing.serializers.invoices.InvoiceSerializer
  sua analyze billing.invoices.InvoiceSerializer --verbose
  sua analyze billing.invoices.InvoiceSerializer --output report.txt`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "Show every usage with file and line")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "Write the report to a file instead of stdout (.zst compresses)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	start := time.Now()

	env := mustGetAuditEnv()

	ref, err := scan.ParseReference(args[0])
	if err != nil {
		exitWithError("", err)
	}

	result, err := scan.NewScanner(env.tree, env.logger).Analyze(newContext(), ref)
	if err != nil {
		exitWithError("analyzing serializer", err)
	}

	if !result.DefinitionLocated {
		warn := errors.NewAuditError(errors.ClassNotFound,
			fmt.Sprintf("no definition found for %s", ref.Class), nil)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", warn)
		writeSuggestedFixes(os.Stderr, warn.SuggestedFixes)
	}

	text := report.AnalysisText(args[0], result, analyzeVerbose)
	if analyzeOutput != "" {
		if err := report.WriteOutput(analyzeOutput, []byte(text)); err != nil {
			exitWithError("", errors.NewAuditError(errors.OutputWriteFailed,
				fmt.Sprintf("could not write %s", analyzeOutput), err))
		}
		fmt.Printf("Results saved to %s\n", analyzeOutput)
	} else {
		fmt.Println(text)
	}

	env.logger.Debug("Analysis completed", map[string]interface{}{
		"target":   args[0],
		"usages":   result.Total(),
		"duration": time.Since(start).Milliseconds(),
	})
}
