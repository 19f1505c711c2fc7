package orchestrators

import (
	"context"

	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/schedule"
)

// ScheduleReader is the schedule store interface needed for month
// assembly.
type ScheduleReader interface {
	ReadMonth(ctx context.Context, year, month int) (map[int]schedule.Day, error)
}

// AttendanceReader is the attendance store interface needed for month
// assembly.
type AttendanceReader interface {
	ReadMonth(ctx context.Context, year, month int) (map[int]attendance.Day, error)
}

// HolidayProvider supplies day → label maps for a month. It is
// best-effort: faults surface as an empty map, never an error.
type HolidayProvider interface {
	MonthHolidays(ctx context.Context, year, month int) map[int]string
}

// MonthDataInput carries the target month.
type MonthDataInput struct {
	Year  int
	Month int
}

// MonthDataResult is the assembled view of one month for the member
// and admin pages.
type MonthDataResult struct {
	Schedule   map[int]schedule.Day   `json:"schedule"`
	Attendance map[int]attendance.Day `json:"attendance"`
	Roster     []string               `json:"roster"`
	Holidays   map[int]string         `json:"holidays"`
}

// MonthDataDeps holds dependencies for month assembly.
type MonthDataDeps struct {
	Schedule   ScheduleReader
	Attendance AttendanceReader
	Holidays   HolidayProvider
	Roster     []string
}

// ExecuteGetMemberData assembles the member view of one month: the
// gap-filled schedule, the attendance rows that exist, the roster, and
// the month's holidays.
// PRE: Year and Month identify a valid month
// POST: Schedule contains every day of the month
func ExecuteGetMemberData(ctx context.Context, input MonthDataInput, deps MonthDataDeps) (MonthDataResult, error) {
	sched, err := deps.Schedule.ReadMonth(ctx, input.Year, input.Month)
	if err != nil {
		return MonthDataResult{}, err
	}
	att, err := deps.Attendance.ReadMonth(ctx, input.Year, input.Month)
	if err != nil {
		return MonthDataResult{}, err
	}

	holidays := map[int]string{}
	if deps.Holidays != nil {
		holidays = deps.Holidays.MonthHolidays(ctx, input.Year, input.Month)
	}

	roster := deps.Roster
	if roster == nil {
		roster = []string{}
	}

	return MonthDataResult{
		Schedule:   schedule.FillMonth(sched, input.Year, input.Month),
		Attendance: att,
		Roster:     roster,
		Holidays:   holidays,
	}, nil
}

// ExecuteGetAdminData assembles the admin view of one month. It is the
// same data set as the member view; the pages differ only in what they
// let the caller do with it.
func ExecuteGetAdminData(ctx context.Context, input MonthDataInput, deps MonthDataDeps) (MonthDataResult, error) {
	return ExecuteGetMemberData(ctx, input, deps)
}
