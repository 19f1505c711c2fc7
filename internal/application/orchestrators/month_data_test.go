package orchestrators

import (
	"context"
	"testing"

	attendanceStore "clubroll/internal/adapters/storage/attendance"
	scheduleStore "clubroll/internal/adapters/storage/schedule"
	"clubroll/internal/adapters/storage/sheet"
	"clubroll/internal/domain/attendance"
	"clubroll/internal/domain/schedule"
)

type stubHolidays struct {
	days map[int]string
}

func (s stubHolidays) MonthHolidays(context.Context, int, int) map[int]string {
	return s.days
}

func TestExecuteGetMemberData(t *testing.T) {
	ctx := context.Background()
	wb := sheet.NewMemoryWorkbook()
	sched := scheduleStore.NewSheetStore(wb)
	att := attendanceStore.NewSheetStore(wb)

	on := true
	note := "合宿"
	if err := sched.ApplyPatch(ctx, 2025, 8, schedule.Patch{11: {Morning: &on, Note: &note}}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	if _, err := att.UpsertMemberDay(ctx, "結衣", 2025, 8, 11, []string{attendance.TokenMorning}); err != nil {
		t.Fatalf("UpsertMemberDay: %v", err)
	}

	deps := MonthDataDeps{
		Schedule:   sched,
		Attendance: att,
		Holidays:   stubHolidays{days: map[int]string{11: "山の日"}},
		Roster:     []string{"結衣", "舞"},
	}
	got, err := ExecuteGetMemberData(ctx, MonthDataInput{Year: 2025, Month: 8}, deps)
	if err != nil {
		t.Fatalf("ExecuteGetMemberData: %v", err)
	}

	if len(got.Schedule) != 31 {
		t.Fatalf("schedule has %d days, want 31", len(got.Schedule))
	}
	if !got.Schedule[11].Morning || got.Schedule[11].Note != "合宿" {
		t.Fatalf("day 11 = %+v, want morning with note", got.Schedule[11])
	}
	if got.Schedule[12].Active() {
		t.Fatalf("untouched day 12 should be inactive, got %+v", got.Schedule[12])
	}
	if len(got.Attendance[11].Morning) != 1 || got.Attendance[11].Morning[0] != "結衣" {
		t.Fatalf("attendance day 11 = %+v", got.Attendance[11])
	}
	if got.Holidays[11] != "山の日" {
		t.Fatalf("holidays = %v", got.Holidays)
	}
	if len(got.Roster) != 2 {
		t.Fatalf("roster = %v", got.Roster)
	}
}

func TestExecuteGetMemberData_NilHolidayProvider(t *testing.T) {
	ctx := context.Background()
	wb := sheet.NewMemoryWorkbook()
	deps := MonthDataDeps{
		Schedule:   scheduleStore.NewSheetStore(wb),
		Attendance: attendanceStore.NewSheetStore(wb),
	}

	got, err := ExecuteGetMemberData(ctx, MonthDataInput{Year: 2025, Month: 2}, deps)
	if err != nil {
		t.Fatalf("ExecuteGetMemberData: %v", err)
	}
	if got.Holidays == nil || len(got.Holidays) != 0 {
		t.Fatalf("holidays = %v, want empty map", got.Holidays)
	}
	if got.Roster == nil || len(got.Roster) != 0 {
		t.Fatalf("roster = %v, want empty slice", got.Roster)
	}
	if len(got.Schedule) != 28 {
		t.Fatalf("schedule has %d days, want 28", len(got.Schedule))
	}
}

func TestExecuteGetAdminData_MatchesMemberData(t *testing.T) {
	ctx := context.Background()
	wb := sheet.NewMemoryWorkbook()
	deps := MonthDataDeps{
		Schedule:   scheduleStore.NewSheetStore(wb),
		Attendance: attendanceStore.NewSheetStore(wb),
		Roster:     []string{"結衣"},
	}

	member, err := ExecuteGetMemberData(ctx, MonthDataInput{Year: 2025, Month: 8}, deps)
	if err != nil {
		t.Fatalf("ExecuteGetMemberData: %v", err)
	}
	admin, err := ExecuteGetAdminData(ctx, MonthDataInput{Year: 2025, Month: 8}, deps)
	if err != nil {
		t.Fatalf("ExecuteGetAdminData: %v", err)
	}
	if len(admin.Schedule) != len(member.Schedule) || len(admin.Roster) != len(member.Roster) {
		t.Fatalf("admin view diverges from member view")
	}
}
