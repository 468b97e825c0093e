package allocator

import "github.com/examdesk/seatmap/pkg/core/model"

// Grid is one room's seat assignment, indexed [row][column]. A nil cell is
// an empty seat: either blocked by the operator or left over after the pools
// ran dry. Cells hold snapshots; the grid never aliases a pool entry.
type Grid [][]*model.Student

// FilledSeats counts the occupied cells of the grid.
func (g Grid) FilledSeats() int {
	count := 0
	for _, row := range g {
		for _, cell := range row {
			if cell != nil {
				count++
			}
		}
	}
	return count
}

// Result is the outcome of one allocation run.
//
// RoomOrder preserves the caller's room iteration order; Grids alone cannot,
// being a map. Leftover counts are informational: a nonzero leftover means
// total capacity fell short, not that the run failed.
type Result struct {
	Grids     map[string]Grid
	RoomOrder []string

	LeftoverGroup1 int
	LeftoverGroup2 int
}

// FilledSeats counts the occupied cells across all rooms.
func (r *Result) FilledSeats() int {
	total := 0
	for _, grid := range r.Grids {
		total += grid.FilledSeats()
	}
	return total
}

// HasLeftovers reports whether either pool still held students after every
// room was processed.
func (r *Result) HasLeftovers() bool {
	return r.LeftoverGroup1 > 0 || r.LeftoverGroup2 > 0
}
