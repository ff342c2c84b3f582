// Package report runs the batch unused-serializer analysis and renders
// results as text or JSON.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sua/internal/enumerate"
	"sua/internal/errors"
	"sua/internal/logging"
	"sua/internal/scan"
)

// Result is the analysis outcome for one discovered serializer.
type Result struct {
	Name        string           `json:"name"`
	Path        string           `json:"path"`
	File        string           `json:"file"`
	TotalUsages int              `json:"total_usages"`
	Details     *scan.ScanResult `json:"details"`
}

// BatchReport aggregates a full find-unused run.
type BatchReport struct {
	RunID           string
	TotalCandidates int
	Results         []Result
	Unused          []Result
	Elapsed         time.Duration
}

// Options control candidate selection and snapshot behavior for a run.
type Options struct {
	// Threshold is the usage count at or below which a serializer counts
	// as unused.
	Threshold int
	// Limit caps the number of candidates analyzed; zero means no cap.
	Limit int
	// Group restricts analysis to candidates whose path starts with
	// "<Group>.".
	Group string
	// Output enables progress snapshots beside the eventual output file.
	Output string
	// JSON selects the snapshot format.
	JSON bool
	// SnapshotEvery is the number of analyzed candidates between progress
	// snapshots; values below 1 fall back to 10.
	SnapshotEvery int
}

// Aggregator runs the scanner over every discovered serializer.
type Aggregator struct {
	tree    *scan.FileTree
	scanner *scan.Scanner
	logger  *logging.Logger
}

func NewAggregator(tree *scan.FileTree, logger *logging.Logger) *Aggregator {
	return &Aggregator{
		tree:    tree,
		scanner: scan.NewScanner(tree, logger),
		logger:  logger,
	}
}

// Run enumerates serializer candidates, analyzes each one and collects those
// at or below the usage threshold. A failed candidate is logged and skipped;
// the batch continues.
func (a *Aggregator) Run(ctx context.Context, opts Options) (*BatchReport, error) {
	start := time.Now()

	candidates := enumerate.FindAll(a.tree, a.logger)

	if opts.Group != "" {
		filtered := make([]enumerate.Serializer, 0, len(candidates))
		for _, c := range candidates {
			if strings.HasPrefix(c.Path, opts.Group+".") {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
		a.logger.Info("Filtered serializers by app", map[string]interface{}{
			"app":       opts.Group,
			"remaining": len(candidates),
		})
	}

	if opts.Limit > 0 && opts.Limit < len(candidates) {
		candidates = candidates[:opts.Limit]
		a.logger.Info("Limiting analysis", map[string]interface{}{
			"limit": opts.Limit,
		})
	}

	report := &BatchReport{
		RunID:           uuid.NewString(),
		TotalCandidates: len(candidates),
		Results:         make([]Result, 0, len(candidates)),
		Unused:          make([]Result, 0),
	}

	progressPath := ""
	if opts.Output != "" {
		progressPath = ProgressPath(opts.Output)
	}
	snapshotEvery := opts.SnapshotEvery
	if snapshotEvery < 1 {
		snapshotEvery = 10
	}

	for i, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := a.analyzeCandidate(ctx, cand)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			scanErr := errors.NewAuditError(errors.ScanFailed,
				fmt.Sprintf("could not analyze %s", cand.Name), err)
			a.logger.Warn(scanErr.Error(), map[string]interface{}{
				"path": cand.Path,
			})
			continue
		}

		result := Result{
			Name:        cand.Name,
			Path:        cand.Path,
			File:        cand.File,
			TotalUsages: res.Total(),
			Details:     res,
		}
		report.Results = append(report.Results, result)
		if result.TotalUsages <= opts.Threshold {
			report.Unused = append(report.Unused, result)
		}

		a.logger.Debug("Analyzed serializer", map[string]interface{}{
			"name":     cand.Name,
			"usages":   result.TotalUsages,
			"progress": fmt.Sprintf("%d/%d", i+1, len(candidates)),
		})

		if progressPath != "" && (i+1)%snapshotEvery == 0 {
			a.writeSnapshot(progressPath, report, opts.JSON)
		}
	}

	// least used first; ties keep discovery order
	sort.SliceStable(report.Unused, func(i, j int) bool {
		return report.Unused[i].TotalUsages < report.Unused[j].TotalUsages
	})

	report.Elapsed = time.Since(start)

	a.logger.Info("Batch analysis complete", map[string]interface{}{
		"run_id":   report.RunID,
		"analyzed": len(report.Results),
		"unused":   len(report.Unused),
		"elapsed":  report.Elapsed.String(),
	})
	return report, nil
}

func (a *Aggregator) analyzeCandidate(ctx context.Context, cand enumerate.Serializer) (*scan.ScanResult, error) {
	ref, err := scan.ParseReference(cand.Path)
	if err != nil {
		return nil, err
	}
	return a.scanner.Analyze(ctx, ref)
}

// writeSnapshot persists intermediate results; failures degrade to a warning
// so a long batch is never interrupted by a bad snapshot path.
func (a *Aggregator) writeSnapshot(path string, report *BatchReport, asJSON bool) {
	var data []byte
	var err error
	if asJSON {
		data, err = snapshotJSON(report)
	} else {
		data = []byte(snapshotText(report))
	}
	if err == nil {
		err = WriteOutput(path, data)
	}
	if err != nil {
		a.logger.Warn("Could not save progress snapshot", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return
	}
	a.logger.Debug("Saved progress snapshot", map[string]interface{}{
		"path":     path,
		"analyzed": len(report.Results),
	})
}
