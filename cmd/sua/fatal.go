package main

import (
	"fmt"
	"io"
	"os"

	"sua/internal/errors"
)

// exitWithError prints err to stderr and exits with status 1. Errors carrying
// suggested fixes get them printed below the message, and structured details
// go to the debug log. An empty action drops the prefix.
func exitWithError(action string, err error) {
	if action != "" {
		fmt.Fprintf(os.Stderr, "Error %s: %v\n", action, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	if ae, ok := errors.AsAuditError(err); ok {
		writeSuggestedFixes(os.Stderr, ae.SuggestedFixes)
		if ae.Details != nil && envLogger != nil {
			envLogger.Debug("Error details", map[string]interface{}{
				"code":    string(ae.Code),
				"details": ae.Details,
			})
		}
	}

	os.Exit(1)
}

// writeSuggestedFixes renders fix actions as an indented block under an error
// or warning message.
func writeSuggestedFixes(w io.Writer, fixes []errors.FixAction) {
	if len(fixes) == 0 {
		return
	}

	fmt.Fprintln(w, "  Suggested fixes:")
	for _, fix := range fixes {
		fmt.Fprintf(w, "    - %s\n", fix.Description)
		if fix.Command != "" {
			fmt.Fprintf(w, "      $ %s\n", fix.Command)
		}
	}
}
