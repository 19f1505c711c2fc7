package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"clubroll/internal/adapters/storage/sheet"
	domain "clubroll/internal/domain/schedule"
	"clubroll/internal/domain/table"
)

// SheetCandidates are the sheet names accepted for the schedule table,
// scanned in order. A sheet created on demand uses the first entry.
var SheetCandidates = []string{"活動予定", "スケジュール", "Schedule", "schedule"}

// writeColumns are the canonical columns ensured before any write, in
// sheet order.
var writeColumns = []table.Column{
	{Field: table.FieldDate, Title: "日付"},
	{Field: table.FieldOff, Title: "休み"},
	{Field: table.FieldMorning, Title: "午前"},
	{Field: table.FieldAfternoon, Title: "午後"},
	{Field: table.FieldAfter, Title: "業後"},
	{Field: table.FieldNote, Title: "メモ"},
	{Field: table.FieldPlace, Title: "場所"},
	{Field: table.FieldTime, Title: "時間"},
}

var headerFields = []table.Field{
	table.FieldDate, table.FieldOff, table.FieldMorning, table.FieldAfternoon,
	table.FieldAfter, table.FieldNote, table.FieldPlace, table.FieldTime,
}

// SheetStore implements Store over a spreadsheet workbook.
type SheetStore struct {
	wb sheet.Workbook
}

// NewSheetStore creates a schedule store over the given workbook.
func NewSheetStore(wb sheet.Workbook) *SheetStore {
	return &SheetStore{wb: wb}
}

// Snapshot loads the raw schedule table. A missing sheet yields an
// empty snapshot.
func (s *SheetStore) Snapshot(ctx context.Context) ([][]string, error) {
	rows, _, err := s.wb.LoadSheet(ctx, SheetCandidates)
	if err != nil {
		return nil, fmt.Errorf("load schedule sheet: %w", err)
	}
	return rows, nil
}

// ReadMonth returns the sparse schedule for one month.
func (s *SheetStore) ReadMonth(ctx context.Context, year, month int) (map[int]domain.Day, error) {
	rows, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return MonthFromSnapshot(rows, year, month), nil
}

// MonthFromSnapshot reads one month's schedule out of a raw table
// snapshot. Rows with missing or unparseable dates, and rows outside
// the target month, are skipped. On duplicate days the later row wins.
func MonthFromSnapshot(rows [][]string, year, month int) map[int]domain.Day {
	out := make(map[int]domain.Day)
	if len(rows) < 2 {
		return out
	}
	m := table.ResolveHeaders(rows[0], table.HeaderAliases, headerFields...)
	if m.Col(table.FieldDate) < 0 {
		return out
	}
	for r := 1; r < len(rows); r++ {
		row := rows[r]
		d, ok := table.ParseDateCell(table.CellAt(row, m.Col(table.FieldDate)))
		if !ok || d.Year() != year || int(d.Month()) != month {
			continue
		}
		out[d.Day()] = domain.Day{
			Off:       table.Truthy(table.CellAt(row, m.Col(table.FieldOff))),
			Morning:   table.Truthy(table.CellAt(row, m.Col(table.FieldMorning))),
			Afternoon: table.Truthy(table.CellAt(row, m.Col(table.FieldAfternoon))),
			After:     table.Truthy(table.CellAt(row, m.Col(table.FieldAfter))),
			Note:      table.CellAt(row, m.Col(table.FieldNote)),
			Place:     table.CellAt(row, m.Col(table.FieldPlace)),
			Time:      table.CellAt(row, m.Col(table.FieldTime)),
		}
	}
	return out
}

// ApplyPatch loads the table, ensures all canonical columns, indexes
// rows by date, folds every patched day into memory (creating rows as
// needed), and writes the table back in one bulk operation.
func (s *SheetStore) ApplyPatch(ctx context.Context, year, month int, patch domain.Patch) error {
	rows, _, err := s.wb.LoadSheet(ctx, SheetCandidates)
	if err != nil {
		return fmt.Errorf("load schedule sheet: %w", err)
	}

	m := table.ResolveHeaders(headerRow(rows), table.HeaderAliases, headerFields...)
	rows = table.EnsureColumns(rows, m, writeColumns)
	idx := table.DateIndex(rows, m.Col(table.FieldDate), year, month)

	days := make([]int, 0, len(patch))
	for d := range patch {
		days = append(days, d)
	}
	sort.Ints(days)

	for _, day := range days {
		if day < 1 {
			continue
		}
		r, ok := idx[day]
		if !ok {
			row := make([]string, len(rows[0]))
			date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			row[m.Col(table.FieldDate)] = table.FormatDate(date)
			rows = append(rows, row)
			r = len(rows) - 1
			idx[day] = r
		}
		applyDayPatch(rows[r], m, patch[day])
	}

	if err := s.wb.WriteSheet(ctx, SheetCandidates, rows, m.Col(table.FieldDate)); err != nil {
		return fmt.Errorf("write schedule sheet: %w", err)
	}
	return nil
}

// applyDayPatch assigns only the fields the patch names, leaving every
// other cell on the row untouched.
func applyDayPatch(row []string, m table.HeaderMap, p domain.DayPatch) {
	setBool := func(f table.Field, v *bool) {
		if v != nil && m.Col(f) >= 0 {
			row[m.Col(f)] = table.FormatBool(*v)
		}
	}
	setStr := func(f table.Field, v *string) {
		if v != nil && m.Col(f) >= 0 {
			row[m.Col(f)] = *v
		}
	}
	setBool(table.FieldOff, p.Off)
	setBool(table.FieldMorning, p.Morning)
	setBool(table.FieldAfternoon, p.Afternoon)
	setBool(table.FieldAfter, p.After)
	setStr(table.FieldNote, p.Note)
	setStr(table.FieldPlace, p.Place)
	setStr(table.FieldTime, p.Time)
}

func headerRow(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}
