// Package allocator seats two shuffled student pools into room grids.
// It is the pure core of the tool: no I/O, no clock, no configuration,
// just pools in, grids and leftover counts out. Bad topology and missing
// source columns are the only errors; running out of students is not.
package allocator

import (
	"fmt"

	"github.com/examdesk/seatmap/pkg/core/model"
)

// Allocate fills every room's grid from the two pools in a single pass.
//
// Rooms are processed in the given order, and within a room column by column,
// front row to back row. Even columns seat students from pool1, odd columns
// from pool2, so neighbouring columns always hold different exam groups.
// Blocked seats are skipped without consuming a student; once a pool runs
// dry its columns stay empty for the rest of the run.
//
// Pool consumption is global across rooms: a student not seated in the first
// room is the next candidate for the second. Whatever remains in the pools
// afterwards is reported as leftover counts on the Result.
//
// Allocate drains the pools. Re-running it on the same pool instances yields
// empty grids; callers wanting a fresh map must rebuild (re-shuffle) pools.
func Allocate(pool1, pool2 *Pool, rooms []model.Room) (*Result, error) {
	if err := validateRooms(rooms); err != nil {
		return nil, err
	}

	result := &Result{
		Grids:     make(map[string]Grid, len(rooms)),
		RoomOrder: make([]string, 0, len(rooms)),
	}

	for _, room := range rooms {
		grid := make(Grid, room.Rows)
		for r := range grid {
			grid[r] = make([]*model.Student, room.Columns)
		}

		for col := 0; col < room.Columns; col++ {
			active := pool1
			if col%2 != 0 {
				active = pool2
			}

			for row := 0; row < room.Rows; row++ {
				if room.IsBlocked(row, col) {
					continue
				}
				student, ok := active.Pop()
				if !ok {
					continue
				}
				snapshot := student
				grid[row][col] = &snapshot
			}
		}

		result.Grids[room.Name] = grid
		result.RoomOrder = append(result.RoomOrder, room.Name)
	}

	result.LeftoverGroup1 = pool1.Len()
	result.LeftoverGroup2 = pool2.Len()

	return result, nil
}

// validateRooms rejects rooms whose dimensions make no sense before any pool
// is touched. Duplicate names are also rejected: the result keys grids by
// room name, so a duplicate would silently overwrite a grid.
func validateRooms(rooms []model.Room) error {
	seen := make(map[string]bool, len(rooms))

	for _, room := range rooms {
		if room.Rows <= 0 {
			return &InvalidTopologyError{Room: room.Name, Reason: fmt.Sprintf("row count must be positive, got %d", room.Rows)}
		}
		if room.Columns <= 0 {
			return &InvalidTopologyError{Room: room.Name, Reason: fmt.Sprintf("column count must be positive, got %d", room.Columns)}
		}
		for seat := range room.Blocked {
			if seat.Row < 0 || seat.Row >= room.Rows || seat.Col < 0 || seat.Col >= room.Columns {
				return &InvalidTopologyError{Room: room.Name, Reason: fmt.Sprintf("blocked seat %s outside %dx%d grid", seat, room.Rows, room.Columns)}
			}
		}
		if seen[room.Name] {
			return &InvalidTopologyError{Room: room.Name, Reason: "duplicate room name"}
		}
		seen[room.Name] = true
	}

	return nil
}
