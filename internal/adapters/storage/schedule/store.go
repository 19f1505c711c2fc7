package schedule

import (
	"context"

	domain "clubroll/internal/domain/schedule"
)

// Store persists the activity schedule.
type Store interface {
	// ReadMonth returns only the days that have a matching row; gap
	// filling is the caller's concern.
	ReadMonth(ctx context.Context, year, month int) (map[int]domain.Day, error)
	// ApplyPatch folds a sparse per-day patch into the table and writes
	// the whole table back once.
	ApplyPatch(ctx context.Context, year, month int, patch domain.Patch) error
	// Snapshot returns the raw table for callers that read several
	// months from one load.
	Snapshot(ctx context.Context) ([][]string, error)
}
