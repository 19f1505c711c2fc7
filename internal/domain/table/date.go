package table

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DisplayDateLayout is the fixed display pattern re-applied to the date
// column after every bulk write.
const DisplayDateLayout = "2006/01/02"

// Spreadsheet serial numbers for plausible calendar dates. Guards
// against reading a plain small integer cell as a date.
const (
	minDateSerial = 1
	maxDateSerial = 300000
)

// dateLayouts are the string forms accepted for date cells, tried in
// order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"2006.01.02",
	"2006年1月2日",
	"1/2/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDateCell converts one date cell to a calendar date. Numeric
// cells are treated as spreadsheet date serials; anything else goes
// through the permissive layout list. The second return is false for
// empty or unparseable cells.
func ParseDateCell(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < minDateSerial || serial > maxDateSerial {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return midnight(t), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date in the fixed display pattern.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// DateKey renders a date as its canonical YYYY-MM-DD key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateIndex reads the date column of every body row and maps
// day-of-month to row index, restricted to rows whose year and month
// match the targets. Unparseable and empty cells are skipped. When two
// rows resolve to the same day the later row wins.
func DateIndex(rows [][]string, dateCol, year, month int) map[int]int {
	idx := make(map[int]int)
	if dateCol < 0 {
		return idx
	}
	for r := 1; r < len(rows); r++ {
		d, ok := ParseDateCell(CellAt(rows[r], dateCol))
		if !ok {
			continue
		}
		if d.Year() != year || int(d.Month()) != month {
			continue
		}
		idx[d.Day()] = r
	}
	return idx
}
