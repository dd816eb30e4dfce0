package preflight

import (
	"context"
	"errors"
	"fmt"

	"matchday/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the directory checks for the given config. The snapshot
// directory is only checked when snapshots are enabled.
func RunAll(_ context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDirectoryAccess("Backup directory", cfg.Paths.BackupDir),
	}
	if cfg.Sources.SaveSnapshots {
		results = append(results, CheckDirectoryAccess("Snapshot directory", cfg.Paths.SnapshotDir))
	}
	return results
}

// Err joins the failed results into one error, or returns nil.
func Err(results []Result) error {
	var errs []error
	for _, r := range results {
		if !r.Passed {
			errs = append(errs, fmt.Errorf("%s: %s", r.Name, r.Detail))
		}
	}
	return errors.Join(errs...)
}
