package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootsVerbose bool

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "Show the application roots a scan would walk",
	Long: `Show the application roots the registry resolves for this project,
along with the resolution method (explicit config, registry file or
convention autodetection).

Examples:
  sua roots
  sua roots --verbose
  sua roots --project-root /srv/shop`,
	Run: runRoots,
}

func init() {
	rootsCmd.Flags().BoolVar(&rootsVerbose, "verbose", false, "Also list every indexed file")
	rootCmd.AddCommand(rootsCmd)
}

func runRoots(cmd *cobra.Command, args []string) {
	env := mustGetAuditEnv()

	res := env.resolution
	fmt.Printf("Resolved %d application roots (method: %s)\n", len(res.Apps), res.Method)
	if res.Source != "" {
		fmt.Printf("Registry file: %s\n", res.Source)
	}
	for _, app := range res.Apps {
		fmt.Printf("  %s -> %s\n", app.Name, app.Root)
	}

	fmt.Printf("\nIndexed %d %s files\n", env.tree.Len(), env.cfg.Scan.Extension)
	if rootsVerbose {
		for _, rel := range env.tree.Files() {
			fmt.Printf("  %s\n", rel)
		}
	}
}
