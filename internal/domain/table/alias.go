package table

import "strings"

// Field is the canonical name of a table column, independent of the
// localized header text that happens to label it in the sheet.
type Field string

const (
	FieldDate      Field = "date"
	FieldOff       Field = "off"
	FieldMorning   Field = "morning"
	FieldAfternoon Field = "afternoon"
	FieldAfter     Field = "after"
	FieldNote      Field = "note"
	FieldPlace     Field = "place"
	FieldTime      Field = "time"
	FieldPresent   Field = "present"
	FieldAbsent    Field = "absent"
	FieldTardy     Field = "tardy"
	FieldEarly     Field = "early"
)

// AliasTable maps a canonical field to the ordered list of header
// spellings accepted for it.
type AliasTable map[Field][]string

// HeaderAliases is the accepted bilingual header spellings for both the
// schedule and attendance sheets.
var HeaderAliases = AliasTable{
	FieldDate:      {"日付", "日", "Date", "date", "DATE", "日にち"},
	FieldOff:       {"休み", "オフ", "OFF", "off", "Off", "中止"},
	FieldMorning:   {"午前", "AM", "am", "朝", "morning", "Morning"},
	FieldAfternoon: {"午後", "PM", "pm", "afternoon", "Afternoon"},
	FieldAfter:     {"業後", "after", "After", "afterWork", "夜", "夜間", "ナイター"},
	FieldNote:      {"メモ", "備考", "内容", "note", "Note"},
	FieldPlace:     {"場所", "会場", "place", "Place", "グラウンド"},
	FieldTime:      {"時間", "活動時間", "集合", "集合時間", "gather", "gatherAt", "time", "Time"},
	FieldPresent:   {"出席", "参加", "present", "Present"},
	FieldAbsent:    {"欠席", "不参加", "absent", "Absent"},
	FieldTardy:     {"遅刻", "tardy", "Tardy", "Late", "遅参"},
	FieldEarly:     {"早退", "early", "Early", "早上がり"},
}

// HeaderMap binds canonical fields to column indexes for one loaded
// snapshot. A field that resolved to no column maps to -1.
type HeaderMap map[Field]int

// Col returns the column index for f, or -1 if the field is unbound.
func (m HeaderMap) Col(f Field) int {
	if c, ok := m[f]; ok {
		return c
	}
	return -1
}

// ResolveHeaders matches a raw header row against the alias table and
// returns the resulting field bindings. Matching is a case-insensitive
// exact comparison of the trimmed cell text against each alias; the
// leftmost matching column wins per field.
func ResolveHeaders(header []string, aliases AliasTable, fields ...Field) HeaderMap {
	find := func(spellings []string) int {
		for c := 0; c < len(header); c++ {
			t := strings.TrimSpace(header[c])
			if t == "" {
				continue
			}
			for _, a := range spellings {
				if strings.EqualFold(t, a) {
					return c
				}
			}
		}
		return -1
	}
	m := make(HeaderMap, len(fields))
	for _, f := range fields {
		m[f] = find(aliases[f])
	}
	return m
}

// Column names a required field together with the canonical title a
// newly created column receives.
type Column struct {
	Field Field
	Title string
}

// Normalize pads every row to the width of the widest row so that later
// column appends keep all rows in step.
func Normalize(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}

// EnsureColumns appends a column for every required field that resolved
// to no existing column, padding the new column into every loaded row,
// and updates the header map in place. All missing columns are created
// before any row value is written so row widths stay consistent.
func EnsureColumns(rows [][]string, m HeaderMap, required []Column) [][]string {
	if len(rows) == 0 {
		rows = [][]string{{}}
	}
	rows = Normalize(rows)
	for _, col := range required {
		if m.Col(col.Field) >= 0 {
			continue
		}
		idx := len(rows[0])
		rows[0] = append(rows[0], col.Title)
		for r := 1; r < len(rows); r++ {
			rows[r] = append(rows[r], "")
		}
		m[col.Field] = idx
	}
	return rows
}
