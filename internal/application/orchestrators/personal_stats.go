package orchestrators

import (
	"context"
	"math"
	"strconv"

	attendanceStore "clubroll/internal/adapters/storage/attendance"
	scheduleStore "clubroll/internal/adapters/storage/schedule"
	"clubroll/internal/domain/schedule"
)

// TableSnapshotter loads one raw table snapshot.
type TableSnapshotter interface {
	Snapshot(ctx context.Context) ([][]string, error)
}

// PersonalStatsInput selects the member and the rolling month window.
type PersonalStatsInput struct {
	Name       string
	StartYear  int
	StartMonth int
	Count      int
}

// PersonalStatsResult is one (label, rate) pair per month in
// chronological order. Rates are percentages with one decimal place.
type PersonalStatsResult struct {
	Months []string  `json:"months"`
	Rates  []float64 `json:"rates"`
}

// PersonalStatsDeps holds dependencies for stats derivation.
type PersonalStatsDeps struct {
	Schedule   TableSnapshotter
	Attendance TableSnapshotter
}

// ExecutePersonalStats derives a member's attendance rate for Count
// consecutive months starting at (StartYear, StartMonth), rolling over
// year ends. Both backing tables are loaded once for the whole run. A
// month with no active days rates 0.
// An empty Name yields an empty result regardless of Count; otherwise
// len(Months) == len(Rates) == max(Count, 0).
func ExecutePersonalStats(ctx context.Context, input PersonalStatsInput, deps PersonalStatsDeps) (PersonalStatsResult, error) {
	result := PersonalStatsResult{Months: []string{}, Rates: []float64{}}
	if input.Name == "" {
		return result, nil
	}

	schedRows, err := deps.Schedule.Snapshot(ctx)
	if err != nil {
		return PersonalStatsResult{}, err
	}
	attRows, err := deps.Attendance.Snapshot(ctx)
	if err != nil {
		return PersonalStatsResult{}, err
	}

	year, month := input.StartYear, input.StartMonth
	for i := 0; i < input.Count; i++ {
		sched := scheduleStore.MonthFromSnapshot(schedRows, year, month)
		att := attendanceStore.MonthFromSnapshot(attRows, year, month)

		active, present := 0, 0
		for d := 1; d <= schedule.DaysIn(year, month); d++ {
			if !sched[d].Active() {
				continue
			}
			active++
			day := att[d]
			if containsName(day.Morning, input.Name) ||
				containsName(day.Afternoon, input.Name) ||
				containsName(day.After, input.Name) {
				present++
			}
		}

		rate := 0.0
		if active > 0 {
			rate = math.Round(float64(present)/float64(active)*1000) / 10
		}
		result.Months = append(result.Months, strconv.Itoa(month))
		result.Rates = append(result.Rates, rate)

		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return result, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
