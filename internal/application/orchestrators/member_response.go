package orchestrators

import (
	"context"
	"errors"

	"clubroll/internal/domain/attendance"
)

// Result messages for structured save outcomes.
const (
	msgSaved        = "saved"
	msgNameRequired = "name is required"
	msgNoChanges    = "no changes to save"
	msgNoDateColumn = "date column not found"
)

// MemberResponder is the attendance store interface needed for member
// response saves.
type MemberResponder interface {
	UpsertMemberDay(ctx context.Context, name string, year, month, day int, times []string) (attendance.Day, error)
	UpsertMemberBatch(ctx context.Context, name string, year, month int, changes []attendance.Change) (map[int]attendance.Day, error)
	UpsertMemberMonth(ctx context.Context, name string, year, month int, responses map[int][]string) error
}

// MemberResponseDeps holds dependencies for member response saves.
type MemberResponseDeps struct {
	Attendance MemberResponder
}

// SaveMemberResponseDayInput is one member's response for one day.
type SaveMemberResponseDayInput struct {
	Name  string
	Year  int
	Month int
	Day   int
	Times []string
}

// SaveMemberResponseDayResult carries the structured outcome and the
// resulting day view.
type SaveMemberResponseDayResult struct {
	OK      bool           `json:"ok"`
	Message string         `json:"message"`
	Day     int            `json:"day"`
	DayData attendance.Day `json:"dayData"`
}

// ExecuteSaveMemberResponseDay reconciles one member's response for a
// single day. Invalid input yields a structured failure, not an error;
// errors are reserved for backing-store faults.
func ExecuteSaveMemberResponseDay(ctx context.Context, input SaveMemberResponseDayInput, deps MemberResponseDeps) (SaveMemberResponseDayResult, error) {
	day, err := deps.Attendance.UpsertMemberDay(ctx, input.Name, input.Year, input.Month, input.Day, input.Times)
	if err != nil {
		if msg, ok := inputFailure(err); ok {
			return SaveMemberResponseDayResult{Message: msg}, nil
		}
		return SaveMemberResponseDayResult{}, err
	}
	return SaveMemberResponseDayResult{OK: true, Message: msgSaved, Day: input.Day, DayData: day}, nil
}

// SaveMemberResponseBatchInput is one member's responses for several
// days of one month.
type SaveMemberResponseBatchInput struct {
	Name    string
	Year    int
	Month   int
	Changes []attendance.Change
}

// SaveMemberResponseBatchResult carries the structured outcome and the
// resulting view of every changed day.
type SaveMemberResponseBatchResult struct {
	OK      bool                   `json:"ok"`
	Message string                 `json:"message"`
	Days    map[int]attendance.Day `json:"days"`
}

// ExecuteSaveMemberResponseBatch folds all changes into a single load
// and a single bulk write. Empty input fails fast with a structured
// result and no storage touch.
func ExecuteSaveMemberResponseBatch(ctx context.Context, input SaveMemberResponseBatchInput, deps MemberResponseDeps) (SaveMemberResponseBatchResult, error) {
	days, err := deps.Attendance.UpsertMemberBatch(ctx, input.Name, input.Year, input.Month, input.Changes)
	if err != nil {
		if msg, ok := inputFailure(err); ok {
			return SaveMemberResponseBatchResult{Message: msg}, nil
		}
		return SaveMemberResponseBatchResult{}, err
	}
	return SaveMemberResponseBatchResult{OK: true, Message: msgSaved, Days: days}, nil
}

// SaveMemberResponseMonthInput is the legacy month-wide submission.
type SaveMemberResponseMonthInput struct {
	Name      string
	Year      int
	Month     int
	Responses map[int][]string
}

// SaveMemberResponseMonthResult is the structured outcome of a
// month-wide save.
type SaveMemberResponseMonthResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// ExecuteSaveMemberResponseMonth rewrites a member's whole month in
// one bulk write.
func ExecuteSaveMemberResponseMonth(ctx context.Context, input SaveMemberResponseMonthInput, deps MemberResponseDeps) (SaveMemberResponseMonthResult, error) {
	if err := deps.Attendance.UpsertMemberMonth(ctx, input.Name, input.Year, input.Month, input.Responses); err != nil {
		if msg, ok := inputFailure(err); ok {
			return SaveMemberResponseMonthResult{Message: msg}, nil
		}
		return SaveMemberResponseMonthResult{}, err
	}
	return SaveMemberResponseMonthResult{OK: true, Message: msgSaved}, nil
}

// inputFailure maps domain input errors to their structured message.
func inputFailure(err error) (string, bool) {
	switch {
	case errors.Is(err, attendance.ErrEmptyName):
		return msgNameRequired, true
	case errors.Is(err, attendance.ErrNoChanges):
		return msgNoChanges, true
	case errors.Is(err, attendance.ErrNoDateColumn):
		return msgNoDateColumn, true
	}
	return "", false
}
