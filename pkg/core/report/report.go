// Package report flattens allocation grids into roster rows and groups them
// for per-class and per-room listings.
package report

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/examdesk/seatmap/pkg/core/allocator"
	"github.com/examdesk/seatmap/pkg/core/model"
)

// DateLayout is the display format for exam dates on rosters.
const DateLayout = "02/01/2006"

// Group is one partition of the flat roster, e.g. all placements of a class.
type Group struct {
	Key        string
	Placements []model.Placement
}

// Flatten walks every room grid in allocation order (rooms as allocated,
// rows ascending, columns ascending) and emits one roster row per occupied
// seat. Row and column numbers are 1-based in the output. The flat roster is
// not sorted; grouped views sort their keys instead.
func Flatten(result *allocator.Result, examDate time.Time) []model.Placement {
	date := examDate.Format(DateLayout)

	var placements []model.Placement
	for _, roomName := range result.RoomOrder {
		grid := result.Grids[roomName]
		for row := range grid {
			for col, cell := range grid[row] {
				if cell == nil {
					continue
				}
				placements = append(placements, model.Placement{
					Class:        cell.Class,
					Name:         cell.Name,
					StudentID:    cell.StudentID,
					SeatNumber:   cell.SeatNumber,
					Room:         roomName,
					RowNumber:    row + 1,
					ColumnNumber: col + 1,
					ExamDate:     date,
				})
			}
		}
	}
	return placements
}

// GroupByClass partitions the roster by class label, keys sorted
// lexicographically for stable presentation.
func GroupByClass(placements []model.Placement) []Group {
	return groupBy(placements, func(p model.Placement) string { return p.Class })
}

// GroupByRoom partitions the roster by room name, keys sorted
// lexicographically for stable presentation.
func GroupByRoom(placements []model.Placement) []Group {
	return groupBy(placements, func(p model.Placement) string { return p.Room })
}

// groupBy partitions placements by key. Rows keep their flatten order within
// each group; only the group keys are sorted.
func groupBy(placements []model.Placement, key func(model.Placement) string) []Group {
	byKey := lo.GroupBy(placements, key)

	keys := lo.Keys(byKey)
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group{Key: k, Placements: byKey[k]})
	}
	return groups
}
