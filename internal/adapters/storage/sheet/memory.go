package sheet

import (
	"context"
	"sync"

	"clubroll/internal/domain/table"
)

// MemoryWorkbook is an in-process Workbook used by unit tests and
// throwaway environments. It mirrors the bulk load/write semantics of
// the xlsx adapter, including the date display format pass.
type MemoryWorkbook struct {
	mu     sync.Mutex
	sheets map[string][][]string
}

// NewMemoryWorkbook creates an empty in-memory workbook.
func NewMemoryWorkbook() *MemoryWorkbook {
	return &MemoryWorkbook{sheets: make(map[string][][]string)}
}

// LoadSheet returns a copy of the first matching sheet.
func (w *MemoryWorkbook) LoadSheet(_ context.Context, candidates []string) ([][]string, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, name := range candidates {
		if rows, ok := w.sheets[name]; ok {
			return copyRows(rows), true, nil
		}
	}
	return nil, false, nil
}

// WriteSheet stores a copy of rows under the first matching (or first
// candidate) sheet name.
func (w *MemoryWorkbook) WriteSheet(_ context.Context, candidates []string, rows [][]string, dateCol int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	name := candidates[0]
	for _, c := range candidates {
		if _, ok := w.sheets[c]; ok {
			name = c
			break
		}
	}
	stored := copyRows(rows)
	if dateCol >= 0 {
		for r := 1; r < len(stored); r++ {
			if d, ok := table.ParseDateCell(table.CellAt(stored[r], dateCol)); ok {
				stored[r][dateCol] = table.FormatDate(d)
			}
		}
	}
	w.sheets[name] = stored
	return nil
}

// Seed replaces a sheet's contents directly, bypassing the format
// pass. Test helper.
func (w *MemoryWorkbook) Seed(name string, rows [][]string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sheets[name] = copyRows(rows)
}

// Rows returns a copy of a sheet's current contents. Test helper.
func (w *MemoryWorkbook) Rows(name string) ([][]string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	rows, ok := w.sheets[name]
	if !ok {
		return nil, false
	}
	return copyRows(rows), true
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		copy(out[i], row)
	}
	return out
}
