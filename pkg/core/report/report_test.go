package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examdesk/seatmap/pkg/core/allocator"
	"github.com/examdesk/seatmap/pkg/core/model"
)

var examDate = time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

func twoRoomResult(t *testing.T) *allocator.Result {
	t.Helper()

	pool1 := allocator.NewPool([]model.Student{
		{Name: "Ana", Class: "3A", StudentID: "1001", SeatNumber: "1"},
		{Name: "Bruno", Class: "3B", StudentID: "1002", SeatNumber: "2"},
		{Name: "Carla", Class: "3A", StudentID: "1003", SeatNumber: "3"},
	})
	pool2 := allocator.NewPool([]model.Student{
		{Name: "Diego", Class: "3C", StudentID: "2001", SeatNumber: "4"},
		{Name: "Elisa", Class: "3C", StudentID: "2002", SeatNumber: "5"},
	})

	result, err := allocator.Allocate(pool1, pool2, []model.Room{
		{Name: "Lab", Rows: 2, Columns: 2},
		{Name: "Aula 1", Rows: 1, Columns: 2},
	})
	require.NoError(t, err)
	return result
}

func TestFlatten_EmitsOneRowPerOccupiedSeat(t *testing.T) {
	result := twoRoomResult(t)

	placements := Flatten(result, examDate)

	assert.Len(t, placements, 5, "One roster row per seated student")
	for _, p := range placements {
		assert.Equal(t, "15/06/2026", p.ExamDate)
		assert.GreaterOrEqual(t, p.RowNumber, 1, "Roster numbering is 1-based")
		assert.GreaterOrEqual(t, p.ColumnNumber, 1, "Roster numbering is 1-based")
	}
}

func TestFlatten_FollowsAllocationTraversalOrder(t *testing.T) {
	result := twoRoomResult(t)

	placements := Flatten(result, examDate)
	require.Len(t, placements, 5)

	// Lab first (allocation order), its rows ascending, columns ascending
	// within each row; then Aula 1.
	assert.Equal(t, "Ana", placements[0].Name)   // Lab (1,1)
	assert.Equal(t, "Diego", placements[1].Name) // Lab (1,2)
	assert.Equal(t, "Bruno", placements[2].Name) // Lab (2,1)
	assert.Equal(t, "Elisa", placements[3].Name) // Lab (2,2)
	assert.Equal(t, "Carla", placements[4].Name) // Aula 1 (1,1)

	assert.Equal(t, "Lab", placements[0].Room)
	assert.Equal(t, "Aula 1", placements[4].Room)
	assert.Equal(t, 1, placements[4].RowNumber)
	assert.Equal(t, 1, placements[4].ColumnNumber)
}

func TestFlatten_SkipsEmptyAndBlockedSeats(t *testing.T) {
	pool1 := allocator.NewPool([]model.Student{{Name: "Ana", Class: "3A"}})
	pool2 := allocator.NewPool(nil)

	result, err := allocator.Allocate(pool1, pool2, []model.Room{{
		Name:    "Lab",
		Rows:    2,
		Columns: 2,
		Blocked: map[model.Seat]bool{{Row: 1, Col: 0}: true},
	}})
	require.NoError(t, err)

	placements := Flatten(result, examDate)
	require.Len(t, placements, 1, "Blocked and exhausted seats produce no roster rows")
	assert.Equal(t, "Ana", placements[0].Name)
}

func TestGroupByClass_SortsKeysKeepsRowOrder(t *testing.T) {
	result := twoRoomResult(t)
	placements := Flatten(result, examDate)

	groups := GroupByClass(placements)
	require.Len(t, groups, 3)

	assert.Equal(t, "3A", groups[0].Key)
	assert.Equal(t, "3B", groups[1].Key)
	assert.Equal(t, "3C", groups[2].Key)

	require.Len(t, groups[0].Placements, 2)
	assert.Equal(t, "Ana", groups[0].Placements[0].Name, "Rows keep flatten order inside a group")
	assert.Equal(t, "Carla", groups[0].Placements[1].Name)
}

func TestGroupByRoom_SortsKeysLexicographically(t *testing.T) {
	result := twoRoomResult(t)
	placements := Flatten(result, examDate)

	groups := GroupByRoom(placements)
	require.Len(t, groups, 2)

	// Sorted keys, independent of allocation order (Lab was allocated first).
	assert.Equal(t, "Aula 1", groups[0].Key)
	assert.Equal(t, "Lab", groups[1].Key)
	assert.Len(t, groups[0].Placements, 1)
	assert.Len(t, groups[1].Placements, 4)
}

func TestGroupByClass_EmptyRoster(t *testing.T) {
	groups := GroupByClass(nil)
	assert.Empty(t, groups)
}
