package orchestrators

import (
	"context"
	"log/slog"
	"sort"

	"clubroll/internal/domain/audit"
	"clubroll/internal/domain/schedule"
)

// SchedulePatcher is the schedule store interface needed for saves.
type SchedulePatcher interface {
	ScheduleReader
	ApplyPatch(ctx context.Context, year, month int, patch schedule.Patch) error
}

// AuditAppender accepts change record batches.
type AuditAppender interface {
	Append(ctx context.Context, entries []audit.Entry) error
}

// SaveSchedulePatchInput carries a sparse per-day schedule update.
type SaveSchedulePatchInput struct {
	Year  int
	Month int
	Patch schedule.Patch
	Actor string
}

// SaveSchedulePatchResult returns the gap-filled month after the save.
type SaveSchedulePatchResult struct {
	OK       bool                 `json:"ok"`
	Schedule map[int]schedule.Day `json:"schedule"`
}

// SaveSchedulePatchDeps holds dependencies for schedule saves.
type SaveSchedulePatchDeps struct {
	Schedule SchedulePatcher
	Audit    AuditAppender // optional: nil skips audit logging
}

// ExecuteSaveSchedulePatch applies the patch in one bulk write, logs
// one change record per patched field, and returns the refreshed
// month. Audit logging is best-effort: its failure never fails a save
// that already committed.
// POST: Every patched field is persisted; untouched fields are not
func ExecuteSaveSchedulePatch(ctx context.Context, input SaveSchedulePatchInput, deps SaveSchedulePatchDeps) (SaveSchedulePatchResult, error) {
	if err := deps.Schedule.ApplyPatch(ctx, input.Year, input.Month, input.Patch); err != nil {
		return SaveSchedulePatchResult{}, err
	}

	if deps.Audit != nil {
		if entries := patchEntries(input); len(entries) > 0 {
			if err := deps.Audit.Append(ctx, entries); err != nil {
				slog.Warn("audit append failed", "year", input.Year, "month", input.Month, "error", err.Error())
			}
		}
	}

	sched, err := deps.Schedule.ReadMonth(ctx, input.Year, input.Month)
	if err != nil {
		return SaveSchedulePatchResult{}, err
	}
	return SaveSchedulePatchResult{
		OK:       true,
		Schedule: schedule.FillMonth(sched, input.Year, input.Month),
	}, nil
}

func patchEntries(input SaveSchedulePatchInput) []audit.Entry {
	days := make([]int, 0, len(input.Patch))
	for d := range input.Patch {
		days = append(days, d)
	}
	sort.Ints(days)

	var entries []audit.Entry
	for _, day := range days {
		for _, ch := range input.Patch[day].Changes() {
			entries = append(entries, audit.NewEntry(input.Actor, input.Year, input.Month, day, ch.Field, "", ch.Value))
		}
	}
	return entries
}
