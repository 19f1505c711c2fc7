package attendance

import (
	"context"

	domain "clubroll/internal/domain/attendance"
)

// Store persists per-day attendance name-sets.
type Store interface {
	// ReadMonth returns the attendance view for every day of the month
	// that has a matching row.
	ReadMonth(ctx context.Context, year, month int) (map[int]domain.Day, error)
	// ReadDay returns the four persisted sets for one day; all empty
	// when there is no table, no resolvable header, or no matching row.
	ReadDay(ctx context.Context, year, month, day int) (domain.Sets, error)
	// UpsertDay overwrites the four set columns of one day's row,
	// appending the row when the day is new.
	UpsertDay(ctx context.Context, year, month, day int, sets domain.Sets) error
	// UpsertMemberDay reconciles a single member's response for one day
	// and returns the resulting day view.
	UpsertMemberDay(ctx context.Context, name string, year, month, day int, times []string) (domain.Day, error)
	// UpsertMemberBatch folds many day responses for one member into a
	// single load and a single bulk write.
	UpsertMemberBatch(ctx context.Context, name string, year, month int, changes []domain.Change) (map[int]domain.Day, error)
	// UpsertMemberMonth rewrites a member's responses for the whole
	// month: the member is stripped from every day first, then re-added
	// for the supplied days.
	UpsertMemberMonth(ctx context.Context, name string, year, month int, responses map[int][]string) error
	// Snapshot returns the raw table for callers that read several
	// months from one load.
	Snapshot(ctx context.Context) ([][]string, error)
}
