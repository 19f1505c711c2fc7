package sheet

import "context"

// Workbook is whole-sheet snapshot access to the externally owned
// spreadsheet. There are no native transactions: callers load the full
// sheet, reconcile in memory, and write everything back in one bulk
// operation. Two overlapping writers race at the granularity of
// WriteSheet and the later write wins in full.
type Workbook interface {
	// LoadSheet returns the full contents of the first sheet whose name
	// matches one of candidates, scanned in order. found is false when
	// no sheet matches; that is not an error.
	LoadSheet(ctx context.Context, candidates []string) (rows [][]string, found bool, err error)

	// WriteSheet replaces the matched sheet's contents with rows,
	// creating the sheet under candidates[0] when none exists. When
	// dateCol is non-negative the fixed display date format is
	// re-applied to that column for every body row.
	WriteSheet(ctx context.Context, candidates []string, rows [][]string, dateCol int) error
}
