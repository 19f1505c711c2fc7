package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"clubroll/internal/adapters/storage/sheet"
	domain "clubroll/internal/domain/attendance"
	"clubroll/internal/domain/table"
)

// SheetCandidates are the sheet names accepted for the attendance
// table, scanned in order. A sheet created on demand uses the first
// entry.
var SheetCandidates = []string{"出欠", "出席", "Attendance", "attendance"}

var writeColumns = []table.Column{
	{Field: table.FieldDate, Title: "日付"},
	{Field: table.FieldPresent, Title: "出席"},
	{Field: table.FieldAbsent, Title: "欠席"},
	{Field: table.FieldTardy, Title: "遅刻"},
	{Field: table.FieldEarly, Title: "早退"},
}

var headerFields = []table.Field{
	table.FieldDate, table.FieldPresent, table.FieldAbsent, table.FieldTardy, table.FieldEarly,
}

// SheetStore implements Store over a spreadsheet workbook.
type SheetStore struct {
	wb sheet.Workbook
}

// NewSheetStore creates an attendance store over the given workbook.
func NewSheetStore(wb sheet.Workbook) *SheetStore {
	return &SheetStore{wb: wb}
}

// Snapshot loads the raw attendance table. A missing sheet yields an
// empty snapshot.
func (s *SheetStore) Snapshot(ctx context.Context) ([][]string, error) {
	rows, _, err := s.wb.LoadSheet(ctx, SheetCandidates)
	if err != nil {
		return nil, fmt.Errorf("load attendance sheet: %w", err)
	}
	return rows, nil
}

// ReadMonth returns the attendance view for one month.
func (s *SheetStore) ReadMonth(ctx context.Context, year, month int) (map[int]domain.Day, error) {
	rows, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return MonthFromSnapshot(rows, year, month), nil
}

// MonthFromSnapshot reads one month's attendance out of a raw table
// snapshot. On duplicate days the later row wins.
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
		d, ok := table.ParseDateCell(table.CellAt(rows[r], m.Col(table.FieldDate)))
		if !ok || d.Year() != year || int(d.Month()) != month {
			continue
		}
		out[d.Day()] = setsFromRow(rows[r], m).Day()
	}
	return out
}

// ReadDay returns the persisted sets for one day.
func (s *SheetStore) ReadDay(ctx context.Context, year, month, day int) (domain.Sets, error) {
	rows, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Sets{}, err
	}
	if len(rows) < 2 {
		return domain.Sets{}, nil
	}
	m := table.ResolveHeaders(rows[0], table.HeaderAliases, headerFields...)
	if m.Col(table.FieldDate) < 0 {
		return domain.Sets{}, nil
	}
	idx := table.DateIndex(rows, m.Col(table.FieldDate), year, month)
	r, ok := idx[day]
	if !ok {
		return domain.Sets{}, nil
	}
	return setsFromRow(rows[r], m), nil
}

// UpsertDay writes the four set columns of one day and bulk-writes the
// table back, re-applying the date display format.
func (s *SheetStore) UpsertDay(ctx context.Context, year, month, day int, sets domain.Sets) error {
	rows, _, err := s.wb.LoadSheet(ctx, SheetCandidates)
	if err != nil {
		return fmt.Errorf("load attendance sheet: %w", err)
	}

	m := table.ResolveHeaders(headerRow(rows), table.HeaderAliases, headerFields...)
	rows = table.EnsureColumns(rows, m, writeColumns)
	idx := table.DateIndex(rows, m.Col(table.FieldDate), year, month)

	rows, r := findOrAppendRow(rows, idx, m, year, month, day)
	writeSets(rows[r], m, sets)

	if err := s.wb.WriteSheet(ctx, SheetCandidates, rows, m.Col(table.FieldDate)); err != nil {
		return fmt.Errorf("write attendance sheet: %w", err)
	}
	return nil
}

// UpsertMemberDay reconciles one member's response for one day. An
// empty times list clears the member from the day entirely.
func (s *SheetStore) UpsertMemberDay(ctx context.Context, name string, year, month, day int, times []string) (domain.Day, error) {
	if name == "" {
		return domain.Day{}, domain.ErrEmptyName
	}
	cur, err := s.ReadDay(ctx, year, month, day)
	if err != nil {
		return domain.Day{}, err
	}
	sets := cur.Reconcile(name, domain.ParseTimes(times))
	if err := s.UpsertDay(ctx, year, month, day, sets); err != nil {
		return domain.Day{}, err
	}
	return sets.Day(), nil
}

// UpsertMemberBatch applies many day responses for one member against
// a single loaded snapshot and performs exactly one bulk write. It
// fails fast, without touching storage, on empty input or an
// unresolvable date column.
func (s *SheetStore) UpsertMemberBatch(ctx context.Context, name string, year, month int, changes []domain.Change) (map[int]domain.Day, error) {
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	if len(changes) == 0 {
		return nil, domain.ErrNoChanges
	}

	rows, _, err := s.wb.LoadSheet(ctx, SheetCandidates)
	if err != nil {
		return nil, fmt.Errorf("load attendance sheet: %w", err)
	}
	m := table.ResolveHeaders(headerRow(rows), table.HeaderAliases, headerFields...)
	// An existing header that resolves no date column means the sheet
	// is laid out in some way this code does not understand. Refuse to
	// guess rather than grow a second date column.
	if len(rows) > 0 && m.Col(table.FieldDate) < 0 {
		return nil, domain.ErrNoDateColumn
	}
	rows = table.EnsureColumns(rows, m, writeColumns)
	idx := table.DateIndex(rows, m.Col(table.FieldDate), year, month)

	result := make(map[int]domain.Day, len(changes))
	for _, change := range changes {
		if change.Day < 1 {
			continue
		}
		var r int
		rows, r = findOrAppendRow(rows, idx, m, year, month, change.Day)
		sets := setsFromRow(rows[r], m).Reconcile(name, domain.ParseTimes(change.Times))
		writeSets(rows[r], m, sets)
		result[change.Day] = sets.Day()
	}

	if err := s.wb.WriteSheet(ctx, SheetCandidates, rows, m.Col(table.FieldDate)); err != nil {
		return nil, fmt.Errorf("write attendance sheet: %w", err)
	}
	return result, nil
}

// UpsertMemberMonth rewrites one member's responses for a whole month.
// Days listed in responses re-add the member (absent wins over session
// tokens, modifiers are ignored); every other day of the month loses
// the member.
func (s *SheetStore) UpsertMemberMonth(ctx context.Context, name string, year, month int, responses map[int][]string) error {
	if name == "" {
		return domain.ErrEmptyName
	}

	rows, _, err := s.wb.LoadSheet(ctx, SheetCandidates)
	if err != nil {
		return fmt.Errorf("load attendance sheet: %w", err)
	}
	m := table.ResolveHeaders(headerRow(rows), table.HeaderAliases, headerFields...)
	rows = table.EnsureColumns(rows, m, writeColumns)
	idx := table.DateIndex(rows, m.Col(table.FieldDate), year, month)

	// Strip the member from every existing row of the month.
	for _, r := range idx {
		writeSets(rows[r], m, setsFromRow(rows[r], m).Reconcile(name, domain.Response{Status: domain.StatusNone}))
	}

	days := make([]int, 0, len(responses))
	for d := range responses {
		days = append(days, d)
	}
	sort.Ints(days)

	for _, day := range days {
		if day < 1 {
			continue
		}
		var r int
		rows, r = findOrAppendRow(rows, idx, m, year, month, day)
		sets := setsFromRow(rows[r], m).Reconcile(name, monthResponse(responses[day]))
		writeSets(rows[r], m, sets)
	}

	if err := s.wb.WriteSheet(ctx, SheetCandidates, rows, m.Col(table.FieldDate)); err != nil {
		return fmt.Errorf("write attendance sheet: %w", err)
	}
	return nil
}

// monthResponse is the legacy month-wide token rule: absent wins, any
// session token means present, tardy/early are not carried.
func monthResponse(times []string) domain.Response {
	present := false
	for _, tok := range times {
		switch tok {
		case domain.TokenAbsent:
			return domain.Response{Status: domain.StatusAbsent}
		case domain.TokenMorning, domain.TokenAfternoon, domain.TokenAfter:
			present = true
		}
	}
	if present {
		return domain.Response{Status: domain.StatusPresent}
	}
	return domain.Response{Status: domain.StatusNone}
}

func setsFromRow(row []string, m table.HeaderMap) domain.Sets {
	get := func(f table.Field) []string {
		return table.Uniq(table.SplitNames(table.CellAt(row, m.Col(f))))
	}
	return domain.Sets{
		Present: get(table.FieldPresent),
		Absent:  get(table.FieldAbsent),
		Tardy:   get(table.FieldTardy),
		Early:   get(table.FieldEarly),
	}
}

func writeSets(row []string, m table.HeaderMap, sets domain.Sets) {
	set := func(f table.Field, names []string) {
		if m.Col(f) >= 0 {
			row[m.Col(f)] = table.JoinNames(names)
		}
	}
	set(table.FieldPresent, sets.Present)
	set(table.FieldAbsent, sets.Absent)
	set(table.FieldTardy, sets.Tardy)
	set(table.FieldEarly, sets.Early)
}

func headerRow(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// findOrAppendRow returns the row index for a day, appending a fresh
// row with the constructed date when the day has none yet.
func findOrAppendRow(rows [][]string, idx map[int]int, m table.HeaderMap, year, month, day int) ([][]string, int) {
	if r, ok := idx[day]; ok {
		return rows, r
	}
	row := make([]string, len(rows[0]))
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	row[m.Col(table.FieldDate)] = table.FormatDate(date)
	rows = append(rows, row)
	r := len(rows) - 1
	idx[day] = r
	return rows, r
}
