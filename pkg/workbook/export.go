package workbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/examdesk/seatmap/pkg/core/model"
	"github.com/examdesk/seatmap/pkg/core/report"
)

const rosterSheet = "Roster"

var rosterHeader = []any{
	"class", "name", "student_id", "seat_number", "room", "row", "column", "exam_date",
}

// buildRoster fills a new workbook with one row per placement, in the order
// given (the flat roster is already in allocation traversal order).
func buildRoster(placements []model.Placement) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), rosterSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name roster sheet: %w", err)
	}

	if err := f.SetSheetRow(rosterSheet, "A1", &rosterHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write roster header: %w", err)
	}

	for i, p := range placements {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to compute roster cell: %w", err)
		}
		row := []any{p.Class, p.Name, p.StudentID, p.SeatNumber, p.Room, p.RowNumber, p.ColumnNumber, p.ExamDate}
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write roster row %d: %w", i+1, err)
		}
	}

	return f, nil
}

// WriteRoster writes a roster xlsx to path.
func WriteRoster(path string, placements []model.Placement) error {
	f, err := buildRoster(placements)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save roster %s: %w", path, err)
	}
	return nil
}

// RosterBytes returns a roster xlsx as in-memory bytes, for download
// endpoints that never touch disk.
func RosterBytes(placements []model.Placement) ([]byte, error) {
	f, err := buildRoster(placements)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialise roster: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteGroupedRosters writes one roster file per group into dir, named
// <prefix>_<key>.xlsx. Returns the written paths in group order.
func WriteGroupedRosters(dir, prefix string, groups []report.Group) ([]string, error) {
	paths := make([]string, 0, len(groups))

	for _, group := range groups {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", prefix, sanitizeFileName(group.Key)))
		if err := WriteRoster(path, group.Placements); err != nil {
			return nil, fmt.Errorf("failed to write roster for %q: %w", group.Key, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// sanitizeFileName keeps group keys safe to use as file names.
func sanitizeFileName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		case ' ':
			return '_'
		default:
			return r
		}
	}, name)

	if mapped == "" {
		return "unnamed"
	}
	return mapped
}
