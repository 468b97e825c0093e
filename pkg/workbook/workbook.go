// Package workbook owns all xlsx access: loading student tabs and room
// sheets, and writing roster exports. The rest of the system never touches
// a spreadsheet cell directly.
package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/examdesk/seatmap/internal/config"
	"github.com/examdesk/seatmap/pkg/core/allocator"
	"github.com/examdesk/seatmap/pkg/core/model"
)

// Room sheets declare their grid size in two fixed cells.
const (
	rowCountCell    = "A2"
	columnCountCell = "B2"
)

// Workbook wraps an open xlsx file.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{f: f, path: path}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Path returns the workbook's file path.
func (w *Workbook) Path() string {
	return w.path
}

// StudentRows reads one student tab and returns its rows keyed by the
// allocator's canonical column names. The first sheet row is the header;
// the configured name/class/ID/seat headers must all be present, the flex
// header is optional (no flag means nobody is exempt).
//
// Returns *allocator.MissingColumnError when a required header is absent.
func (w *Workbook) StudentRows(tab string, cols config.Columns) ([]allocator.RawStudent, error) {
	rows, err := w.f.GetRows(tab)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", tab, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", tab)
	}

	header := rows[0]
	indexOf := func(name string) int {
		for i, cell := range header {
			if strings.TrimSpace(cell) == name {
				return i
			}
		}
		return -1
	}

	required := map[string]string{
		allocator.ColName:       cols.Name,
		allocator.ColClass:      cols.Class,
		allocator.ColStudentID:  cols.StudentID,
		allocator.ColSeatNumber: cols.SeatNumber,
	}
	indexes := make(map[string]int, len(required)+1)
	for key, headerName := range required {
		idx := indexOf(headerName)
		if idx == -1 {
			return nil, &allocator.MissingColumnError{Column: headerName, Sheet: tab}
		}
		indexes[key] = idx
	}
	if idx := indexOf(cols.Flex); idx != -1 {
		indexes[allocator.ColFlex] = idx
	}

	cellAt := func(row []string, idx int) string {
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	students := make([]allocator.RawStudent, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		raw := allocator.RawStudent{}
		for key, idx := range indexes {
			raw[key] = cellAt(row, idx)
		}
		students = append(students, raw)
	}

	return students, nil
}

// Rooms returns one Room per sheet that is not a student tab, in workbook
// sheet order. Each room sheet carries its row count in A2 and its column
// count in B2; anything missing, non-numeric or non-positive fails the load
// with *allocator.InvalidTopologyError.
func (w *Workbook) Rooms(cfg *config.Config) ([]model.Room, error) {
	var rooms []model.Room

	for _, sheet := range w.f.GetSheetList() {
		if sheet == cfg.StudentTabs.Group1 || sheet == cfg.StudentTabs.Group2 {
			continue
		}

		rows, err := w.readDimension(sheet, rowCountCell, "row count")
		if err != nil {
			return nil, err
		}
		columns, err := w.readDimension(sheet, columnCountCell, "column count")
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, model.Room{
			Name:    sheet,
			Rows:    rows,
			Columns: columns,
			Blocked: cfg.BlockedSeatsFor(sheet),
		})
	}

	return rooms, nil
}

// readDimension reads and parses one of the grid-size cells of a room sheet.
func (w *Workbook) readDimension(sheet, cell, what string) (int, error) {
	value, err := w.f.GetCellValue(sheet, cell)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s of room %q: %w", what, sheet, err)
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, &allocator.InvalidTopologyError{Room: sheet, Reason: fmt.Sprintf("%s missing in cell %s", what, cell)}
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &allocator.InvalidTopologyError{Room: sheet, Reason: fmt.Sprintf("%s %q is not a number", what, trimmed)}
	}
	if n <= 0 {
		return 0, &allocator.InvalidTopologyError{Room: sheet, Reason: fmt.Sprintf("%s must be positive, got %d", what, n)}
	}

	return n, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
