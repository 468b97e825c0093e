package model

import "fmt"

// Student represents one exam-taker ready to be seated.
// Records are immutable once built: the allocator consumes them from a pool
// and snapshots them into grid cells, never editing fields.
type Student struct {
	Name       string
	Class      string
	StudentID  string
	SeatNumber string
}

// Seat is one position in a room grid. Row and Col are 0-based internally;
// reports convert to 1-based numbering on the way out.
type Seat struct {
	Row int
	Col int
}

func (s Seat) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Room describes one exam room's seating topology.
// Blocked holds seats excluded from allocation by the operator.
type Room struct {
	Name    string
	Rows    int
	Columns int
	Blocked map[Seat]bool
}

// Capacity returns the number of seats available for allocation,
// i.e. the grid size minus blocked positions.
func (r Room) Capacity() int {
	return r.Rows*r.Columns - len(r.Blocked)
}

// IsBlocked reports whether the given position is excluded from allocation.
func (r Room) IsBlocked(row, col int) bool {
	return r.Blocked[Seat{Row: row, Col: col}]
}

// Placement is one row of the flattened allocation roster:
// a single student assigned to a single seat. RowNumber and ColumnNumber
// are 1-based for presentation.
type Placement struct {
	Class        string
	Name         string
	StudentID    string
	SeatNumber   string
	Room         string
	RowNumber    int
	ColumnNumber int
	ExamDate     string
}
