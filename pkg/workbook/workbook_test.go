package workbook

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/examdesk/seatmap/internal/config"
	"github.com/examdesk/seatmap/pkg/core/allocator"
	"github.com/examdesk/seatmap/pkg/core/model"
)

// writeTestWorkbook builds a minimal workbook: two student tabs and two room
// sheets, the layout the loader expects in production.
func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Room 1"))
	require.NoError(t, f.SetSheetRow("Room 1", "A1", &[]any{"rows", "columns"}))
	require.NoError(t, f.SetSheetRow("Room 1", "A2", &[]any{3, 2}))

	_, err := f.NewSheet("Room 2")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Room 2", "A2", &[]any{2, 4}))

	_, err = f.NewSheet("alunos_1")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("alunos_1", "A1",
		&[]any{"name", "class", "student_id", "seat_number", "flex"}))
	require.NoError(t, f.SetSheetRow("alunos_1", "A2", &[]any{"Ana", "3A", 1001, 1, ""}))
	require.NoError(t, f.SetSheetRow("alunos_1", "A3", &[]any{"Bruno", "3A", 1002, 2, 1}))

	_, err = f.NewSheet("alunos_2")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("alunos_2", "A1",
		&[]any{"name", "class", "student_id", "seat_number"}))
	require.NoError(t, f.SetSheetRow("alunos_2", "A2", &[]any{"Carla", "3B", 2001, 1}))

	path := filepath.Join(t.TempDir(), "exam.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestStudentRows_MapsHeadersToCanonicalKeys(t *testing.T) {
	wb, err := Open(writeTestWorkbook(t))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.StudentRows("alunos_1", config.Default().Columns)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Ana", rows[0][allocator.ColName])
	assert.Equal(t, "3A", rows[0][allocator.ColClass])
	assert.Equal(t, "1001", rows[0][allocator.ColStudentID])
	assert.Equal(t, "1", rows[1][allocator.ColFlex], "Flex flag cell should come through")
}

func TestStudentRows_FlexColumnIsOptional(t *testing.T) {
	wb, err := Open(writeTestWorkbook(t))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.StudentRows("alunos_2", config.Default().Columns)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, hasFlex := rows[0][allocator.ColFlex]
	assert.False(t, hasFlex, "A tab without a flex column keeps everyone")

	pool, err := allocator.BuildPool(rows)
	require.NoError(t, err)
	assert.Equal(t, 1, pool.Len())
}

func TestStudentRows_MissingHeader(t *testing.T) {
	wb, err := Open(writeTestWorkbook(t))
	require.NoError(t, err)
	defer wb.Close()

	cols := config.Default().Columns
	cols.SeatNumber = "desk"

	_, err = wb.StudentRows("alunos_1", cols)
	require.Error(t, err)

	var missingErr *allocator.MissingColumnError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, "desk", missingErr.Column)
	assert.Equal(t, "alunos_1", missingErr.Sheet)
}

func TestRooms_ReadsEverySheetExceptStudentTabs(t *testing.T) {
	wb, err := Open(writeTestWorkbook(t))
	require.NoError(t, err)
	defer wb.Close()

	cfg := config.Default()
	cfg.BlockedSeats = map[string][]string{"Room 1": {"1,2"}}

	rooms, err := wb.Rooms(cfg)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Equal(t, "Room 1", rooms[0].Name)
	assert.Equal(t, 3, rooms[0].Rows)
	assert.Equal(t, 2, rooms[0].Columns)
	assert.Equal(t, map[model.Seat]bool{{Row: 0, Col: 1}: true}, rooms[0].Blocked)

	assert.Equal(t, "Room 2", rooms[1].Name)
	assert.Equal(t, 2, rooms[1].Rows)
	assert.Equal(t, 4, rooms[1].Columns)
	assert.Empty(t, rooms[1].Blocked)
}

func TestRooms_InvalidDimension(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Broken"))
	require.NoError(t, f.SetSheetRow("Broken", "A2", &[]any{"lots", 4}))
	for _, tab := range []string{"alunos_1", "alunos_2"} {
		_, err := f.NewSheet(tab)
		require.NoError(t, err)
	}
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, f.SaveAs(path))

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.Rooms(config.Default())
	require.Error(t, err)

	var topoErr *allocator.InvalidTopologyError
	require.True(t, errors.As(err, &topoErr))
	assert.Equal(t, "Broken", topoErr.Room)
}

func TestWriteRoster_RoundTrip(t *testing.T) {
	placements := []model.Placement{
		{Class: "3A", Name: "Ana", StudentID: "1001", SeatNumber: "1", Room: "Room 1", RowNumber: 1, ColumnNumber: 1, ExamDate: "15/06/2026"},
		{Class: "3B", Name: "Carla", StudentID: "2001", SeatNumber: "2", Room: "Room 1", RowNumber: 2, ColumnNumber: 1, ExamDate: "15/06/2026"},
	}

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, WriteRoster(path, placements))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(rosterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "Header plus one row per placement")

	assert.Equal(t, "class", rows[0][0])
	assert.Equal(t, "Ana", rows[1][1])
	assert.Equal(t, "Room 1", rows[2][4])
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "3A", sanitizeFileName("3A"))
	assert.Equal(t, "Room_1", sanitizeFileName("Room 1"))
	assert.Equal(t, "a-b", sanitizeFileName("a/b"))
	assert.Equal(t, "unnamed", sanitizeFileName(""))
}
