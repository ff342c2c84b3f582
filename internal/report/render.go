package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sua/internal/scan"
)

const timestampLayout = "2006-01-02 15:04:05"

// summaryLabels names the categories in presentation order, aligned with
// ScanResult.Categories().
var summaryLabels = []string{
	"Direct imports",
	"Used as serializer_class",
	"Used as a field",
	"Other serializers inherit from it",
	"Direct instantiations",
	"Used with many=True",
	"Inner class usages",
	"Meta class references",
}

type verboseSection struct {
	header string
	empty  string
}

var verboseSections = []verboseSection{
	{"Direct imports:", "No direct imports found."},
	{"Used as serializer_class in views:", "Not used as serializer_class in any view."},
	{"Used as a field in other serializers:", "Not used as a field in other serializers."},
	{"Other serializers inherit from this serializer:", "No serializers inherit from this serializer."},
	{"Direct instantiations:", "No direct instantiations found."},
	{"Used with many=True:", "Not used with many=True."},
	{"Inner class usages:", "No inner class usages found."},
	{"Meta class references:", "No Meta class references found."},
}

// AnalysisText renders a single-serializer analysis. Import records carry no
// line number and render as file: statement; everything else as
// file:line: content.
func AnalysisText(reference string, result *scan.ScanResult, verbose bool) string {
	lines := []string{"Analysis of serializer " + reference + ":"}

	lines = append(lines, "\nSummary:")
	for i, c := range result.Categories() {
		lines = append(lines, fmt.Sprintf("  - %s: %d", summaryLabels[i], len(c.Occurrences)))
	}

	if !verbose {
		lines = append(lines, "\nRun with --verbose to see details of each usage.")
		return strings.Join(lines, "\n")
	}

	for i, c := range result.Categories() {
		if len(c.Occurrences) == 0 {
			lines = append(lines, "\n"+verboseSections[i].empty)
			continue
		}
		lines = append(lines, "\n"+verboseSections[i].header)
		for _, o := range c.Occurrences {
			if c.Key == "direct_imports" {
				lines = append(lines, fmt.Sprintf("  - %s: %s", o.File, o.Content))
			} else {
				lines = append(lines, fmt.Sprintf("  - %s:%d: %s", o.File, o.Line, o.Content))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// BatchText renders a find-unused report, least used serializers first.
func BatchText(report *BatchReport, verbose bool) string {
	lines := []string{
		"Potentially unused serializers in the project:",
		fmt.Sprintf("Analysis completed in %s (h:m:s)", formatElapsed(report.Elapsed)),
	}

	if len(report.Unused) > 0 {
		for _, r := range report.Unused {
			lines = append(lines, fmt.Sprintf("\n%s - %s - Total usages: %d", r.Name, r.File, r.TotalUsages))
			if verbose {
				lines = append(lines, "  Usage breakdown:")
				for i, c := range r.Details.Categories() {
					lines = append(lines, fmt.Sprintf("  - %s: %d", summaryLabels[i], len(c.Occurrences)))
				}
			}
		}
	} else {
		lines = append(lines, "\nNo unused serializers found in the project.")
	}

	lines = append(lines, fmt.Sprintf("\nTotal serializers found: %d", report.TotalCandidates))
	lines = append(lines, fmt.Sprintf("Potentially unused serializers: %d", len(report.Unused)))

	return strings.Join(lines, "\n")
}

type batchStats struct {
	TotalSerializers   int     `json:"total_serializers"`
	UnusedSerializers  int     `json:"unused_serializers"`
	ElapsedTimeSeconds float64 `json:"elapsed_time_seconds"`
	Timestamp          string  `json:"timestamp"`
}

// BatchJSON renders a find-unused report as indented JSON.
func BatchJSON(report *BatchReport) ([]byte, error) {
	data := struct {
		Stats             batchStats `json:"stats"`
		UnusedSerializers []Result   `json:"unused_serializers"`
	}{
		Stats: batchStats{
			TotalSerializers:   report.TotalCandidates,
			UnusedSerializers:  len(report.Unused),
			ElapsedTimeSeconds: report.Elapsed.Seconds(),
			Timestamp:          time.Now().Format(timestampLayout),
		},
		UnusedSerializers: report.Unused,
	}
	return json.MarshalIndent(data, "", "  ")
}

// snapshotJSON renders an in-flight progress snapshot. Unused entries are
// still in discovery order here; sorting happens once at the end of the run.
func snapshotJSON(report *BatchReport) ([]byte, error) {
	data := struct {
		UnusedSerializers []Result `json:"unused_serializers"`
		AnalyzedSoFar     int      `json:"analyzed_so_far"`
		TotalFound        int      `json:"total_found"`
		Timestamp         string   `json:"timestamp"`
	}{
		UnusedSerializers: report.Unused,
		AnalyzedSoFar:     len(report.Results),
		// counts the candidate being processed next
		TotalFound: len(report.Results) + 1,
		Timestamp:  time.Now().Format(timestampLayout),
	}
	return json.MarshalIndent(data, "", "  ")
}

func snapshotText(report *BatchReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Progress update - %s\n", time.Now().Format(timestampLayout))
	fmt.Fprintf(&b, "Analyzed %d serializers so far\n", len(report.Results))
	fmt.Fprintf(&b, "Found %d unused serializers so far\n\n", len(report.Unused))
	for _, r := range report.Unused {
		fmt.Fprintf(&b, "%s - %s - Total usages: %d\n", r.Name, r.File, r.TotalUsages)
	}
	return b.String()
}

// formatElapsed renders a duration as h:mm:ss, dropping the hour part when
// it is zero.
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
