package schedule

import (
	"strconv"
	"time"
)

// Day represents one activity day in the schedule. Absence of a row in
// the sheet reads as the zero Day: no sessions, empty strings.
type Day struct {
	Off       bool   `json:"off"`
	Morning   bool   `json:"morning"`
	Afternoon bool   `json:"afternoon"`
	After     bool   `json:"after"`
	Note      string `json:"note"`
	Place     string `json:"place"`
	Time      string `json:"time"`
}

// Active reports whether any session runs on this day.
func (d Day) Active() bool {
	return d.Morning || d.Afternoon || d.After
}

// DayPatch is a partial update to one schedule day. Nil fields are left
// untouched on the stored row.
type DayPatch struct {
	Off       *bool   `json:"off,omitempty"`
	Morning   *bool   `json:"morning,omitempty"`
	Afternoon *bool   `json:"afternoon,omitempty"`
	After     *bool   `json:"after,omitempty"`
	Note      *string `json:"note,omitempty"`
	Place     *string `json:"place,omitempty"`
	Time      *string `json:"time,omitempty"`
}

// Patch maps day-of-month to the partial update for that day.
type Patch map[int]DayPatch

// FieldChange is one patched field in serialized form, used for audit
// records.
type FieldChange struct {
	Field string
	Value string
}

// Changes lists the fields the patch actually sets, in a fixed order.
func (p DayPatch) Changes() []FieldChange {
	var out []FieldChange
	addBool := func(name string, v *bool) {
		if v != nil {
			out = append(out, FieldChange{Field: name, Value: strconv.FormatBool(*v)})
		}
	}
	addStr := func(name string, v *string) {
		if v != nil {
			out = append(out, FieldChange{Field: name, Value: *v})
		}
	}
	addBool("off", p.Off)
	addBool("morning", p.Morning)
	addBool("afternoon", p.Afternoon)
	addBool("after", p.After)
	addStr("note", p.Note)
	addStr("place", p.Place)
	addStr("time", p.Time)
	return out
}

// DaysIn returns the number of days in the given month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FillMonth returns a dense copy of a sparse month: every day of the
// month is present, missing days carry the zero Day.
func FillMonth(days map[int]Day, year, month int) map[int]Day {
	out := make(map[int]Day, DaysIn(year, month))
	for d := 1; d <= DaysIn(year, month); d++ {
		out[d] = days[d]
	}
	return out
}
