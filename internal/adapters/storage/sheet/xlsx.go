package sheet

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"clubroll/internal/domain/table"
)

// dateNumFmt is the display number format applied to the date column
// after every bulk write.
const dateNumFmt = "yyyy/mm/dd"

// XLSXWorkbook backs the Workbook interface with a single .xlsx file on
// disk. Every operation opens the file fresh so each caller observes
// the latest committed state; the mutex only serializes writers within
// this process.
type XLSXWorkbook struct {
	mu   sync.Mutex
	path string
}

// NewXLSXWorkbook creates a workbook over the given file path. The file
// is created lazily on first write.
func NewXLSXWorkbook(path string) *XLSXWorkbook {
	return &XLSXWorkbook{path: path}
}

// LoadSheet reads the full contents of the first matching sheet.
func (w *XLSXWorkbook) LoadSheet(_ context.Context, candidates []string) ([][]string, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, ok, err := w.open()
	if err != nil || !ok {
		return nil, false, err
	}
	defer f.Close()

	name, found := findSheet(f, candidates)
	if !found {
		return nil, false, nil
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, false, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return rows, true, nil
}

// WriteSheet writes the whole snapshot back in one pass and re-applies
// the date display format.
func (w *XLSXWorkbook) WriteSheet(_ context.Context, candidates []string, rows [][]string, dateCol int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, exists, err := w.open()
	if err != nil {
		return err
	}
	if !exists {
		f = excelize.NewFile()
	}
	defer f.Close()

	name, found := findSheet(f, candidates)
	if !found {
		name = candidates[0]
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
		if !exists && name != "Sheet1" {
			// Drop the default sheet from a freshly created file.
			_ = f.DeleteSheet("Sheet1")
		}
	}

	for r, row := range rows {
		cells := make([]interface{}, len(row))
		for c, v := range row {
			if r > 0 && c == dateCol {
				if d, ok := table.ParseDateCell(v); ok {
					cells[c] = d
					continue
				}
			}
			cells[c] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, axis, &cells); err != nil {
			return fmt.Errorf("write row %d of %q: %w", r+1, name, err)
		}
	}

	if dateCol >= 0 && len(rows) > 1 {
		numFmt := dateNumFmt
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
		if err != nil {
			return fmt.Errorf("date style: %w", err)
		}
		top, err := excelize.CoordinatesToCellName(dateCol+1, 2)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(dateCol+1, len(rows))
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, top, bottom, style); err != nil {
			return fmt.Errorf("format date column of %q: %w", name, err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %q: %w", w.path, err)
	}
	return nil
}

// open opens the backing file when it exists. The bool is false when
// there is no file yet.
func (w *XLSXWorkbook) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(w.path); err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stat workbook %q: %w", w.path, err)
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, false, fmt.Errorf("open workbook %q: %w", w.path, err)
	}
	return f, true, nil
}

func findSheet(f *excelize.File, candidates []string) (string, bool) {
	for _, name := range candidates {
		idx, err := f.GetSheetIndex(name)
		if err == nil && idx >= 0 {
			return name, true
		}
	}
	return "", false
}
