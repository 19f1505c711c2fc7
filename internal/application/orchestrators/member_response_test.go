package orchestrators

import (
	"context"
	"testing"

	attendanceStore "clubroll/internal/adapters/storage/attendance"
	"clubroll/internal/adapters/storage/sheet"
	"clubroll/internal/domain/attendance"
)

func TestExecuteSaveMemberResponseDay(t *testing.T) {
	ctx := context.Background()
	store := attendanceStore.NewSheetStore(sheet.NewMemoryWorkbook())
	deps := MemberResponseDeps{Attendance: store}

	got, err := ExecuteSaveMemberResponseDay(ctx, SaveMemberResponseDayInput{
		Name: "結衣", Year: 2025, Month: 8, Day: 11,
		Times: []string{attendance.TokenMorning, attendance.TokenTardy},
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteSaveMemberResponseDay: %v", err)
	}
	if !got.OK || got.Message != "saved" {
		t.Fatalf("result = %+v", got)
	}
	if got.Day != 11 {
		t.Fatalf("day = %d", got.Day)
	}
	if len(got.DayData.Morning) != 1 || got.DayData.Morning[0] != "結衣" {
		t.Fatalf("morning = %v", got.DayData.Morning)
	}
	if len(got.DayData.Tardy) != 1 {
		t.Fatalf("tardy = %v", got.DayData.Tardy)
	}
}

func TestExecuteSaveMemberResponseDay_EmptyName(t *testing.T) {
	ctx := context.Background()
	store := attendanceStore.NewSheetStore(sheet.NewMemoryWorkbook())

	got, err := ExecuteSaveMemberResponseDay(ctx, SaveMemberResponseDayInput{
		Year: 2025, Month: 8, Day: 1, Times: []string{attendance.TokenMorning},
	}, MemberResponseDeps{Attendance: store})
	if err != nil {
		t.Fatalf("invalid input must not surface as an error, got %v", err)
	}
	if got.OK || got.Message != "name is required" {
		t.Fatalf("result = %+v", got)
	}
}

func TestExecuteSaveMemberResponseBatch(t *testing.T) {
	ctx := context.Background()
	store := attendanceStore.NewSheetStore(sheet.NewMemoryWorkbook())
	deps := MemberResponseDeps{Attendance: store}

	got, err := ExecuteSaveMemberResponseBatch(ctx, SaveMemberResponseBatchInput{
		Name: "舞", Year: 2025, Month: 8,
		Changes: []attendance.Change{
			{Day: 3, Times: []string{attendance.TokenAbsent}},
			{Day: 4, Times: []string{attendance.TokenAfternoon, attendance.TokenEarly}},
		},
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteSaveMemberResponseBatch: %v", err)
	}
	if !got.OK || got.Message != "saved" {
		t.Fatalf("result = %+v", got)
	}
	if len(got.Days) != 2 {
		t.Fatalf("days = %v", got.Days)
	}
	if len(got.Days[3].Absent) != 1 || got.Days[3].Absent[0] != "舞" {
		t.Fatalf("day 3 = %+v", got.Days[3])
	}
	if len(got.Days[4].Afternoon) != 1 || len(got.Days[4].Early) != 1 {
		t.Fatalf("day 4 = %+v", got.Days[4])
	}
}

func TestExecuteSaveMemberResponseBatch_NoChanges(t *testing.T) {
	ctx := context.Background()
	store := attendanceStore.NewSheetStore(sheet.NewMemoryWorkbook())

	got, err := ExecuteSaveMemberResponseBatch(ctx, SaveMemberResponseBatchInput{
		Name: "舞", Year: 2025, Month: 8,
	}, MemberResponseDeps{Attendance: store})
	if err != nil {
		t.Fatalf("ExecuteSaveMemberResponseBatch: %v", err)
	}
	if got.OK || got.Message != "no changes to save" {
		t.Fatalf("result = %+v", got)
	}
}

func TestExecuteSaveMemberResponseMonth(t *testing.T) {
	ctx := context.Background()
	store := attendanceStore.NewSheetStore(sheet.NewMemoryWorkbook())
	deps := MemberResponseDeps{Attendance: store}

	got, err := ExecuteSaveMemberResponseMonth(ctx, SaveMemberResponseMonthInput{
		Name: "結衣", Year: 2025, Month: 8,
		Responses: map[int][]string{
			5: {attendance.TokenMorning},
			6: {attendance.TokenAbsent},
		},
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteSaveMemberResponseMonth: %v", err)
	}
	if !got.OK || got.Message != "saved" {
		t.Fatalf("result = %+v", got)
	}

	month, err := store.ReadMonth(ctx, 2025, 8)
	if err != nil {
		t.Fatalf("ReadMonth: %v", err)
	}
	if len(month[5].Morning) != 1 || month[5].Morning[0] != "結衣" {
		t.Fatalf("day 5 = %+v", month[5])
	}
	if len(month[6].Absent) != 1 {
		t.Fatalf("day 6 = %+v", month[6])
	}
}
