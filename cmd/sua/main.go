package main

import (
	"os"

	"sua/internal/errors"
	"sua/internal/logging"
)

func main() {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", map[string]interface{}{
			"error": err.Error(),
		})
		if ae, ok := errors.AsAuditError(err); ok {
			writeSuggestedFixes(os.Stderr, ae.SuggestedFixes)
		}
		os.Exit(1)
	}
}
