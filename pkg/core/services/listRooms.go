package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/examdesk/seatmap/internal/config"
	"github.com/examdesk/seatmap/pkg/core/model"
)

// ListRoomsResult contains the room inventory of a workbook
type ListRoomsResult struct {
	Rooms         []model.Room
	TotalSeats    int
	TotalCapacity int // seats minus blocked positions
}

// ListRooms reads the room sheets of a workbook and summarises capacity,
// the pre-flight check an operator runs before generating maps.
func ListRooms(
	ctx context.Context,
	loader WorkbookLoader,
	cfg *config.Config,
	logger *zap.Logger,
) (*ListRoomsResult, error) {
	logger.Debug("Loading rooms")
	rooms, err := loader.Rooms(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("workbook has no room sheets")
	}

	result := &ListRoomsResult{Rooms: rooms}
	for _, room := range rooms {
		result.TotalSeats += room.Rows * room.Columns
		result.TotalCapacity += room.Capacity()
	}

	logger.Info("Rooms loaded",
		zap.Int("rooms", len(rooms)),
		zap.Int("total_seats", result.TotalSeats),
		zap.Int("total_capacity", result.TotalCapacity))

	return result, nil
}
