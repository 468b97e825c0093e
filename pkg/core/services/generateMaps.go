package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/examdesk/seatmap/internal/config"
	"github.com/examdesk/seatmap/pkg/core/allocator"
	"github.com/examdesk/seatmap/pkg/core/model"
	"github.com/examdesk/seatmap/pkg/core/report"
	"github.com/examdesk/seatmap/pkg/workbook"
)

// WorkbookLoader defines the workbook operations needed to generate seat maps
type WorkbookLoader interface {
	StudentRows(tab string, cols config.Columns) ([]allocator.RawStudent, error)
	Rooms(cfg *config.Config) ([]model.Room, error)
}

// GenerateMapsParams controls one seat-map generation run
type GenerateMapsParams struct {
	// ExamDate is stamped onto every roster row
	ExamDate time.Time

	// OutputDir receives the roster xlsx files; empty disables export
	OutputDir string
}

// GenerateMapsResult contains the generated maps and rosters
type GenerateMapsResult struct {
	RunID    string
	ExamDate time.Time

	Rooms      []model.Room
	Allocation *allocator.Result

	Roster  []model.Placement
	ByClass []report.Group
	ByRoom  []report.Group

	// Pool sizes after exemption filtering, before allocation
	Group1Total int
	Group2Total int

	ExportedFiles []string
}

// GenerateMaps runs one full seat-map generation: load both student tabs and
// all room sheets, build shuffled pools, allocate, flatten and group the
// roster, and optionally export xlsx rosters.
//
// Leftover students are a warning, never an error; the result is complete
// for every seat that could be filled. Each call reshuffles, so two runs
// over the same workbook produce different maps.
func GenerateMaps(
	ctx context.Context,
	loader WorkbookLoader,
	cfg *config.Config,
	logger *zap.Logger,
	params GenerateMapsParams,
) (*GenerateMapsResult, error) {
	runID := uuid.New().String()
	logger.Debug("Starting generateMaps",
		zap.String("run_id", runID),
		zap.Time("exam_date", params.ExamDate))

	// Step 1: Load both student tabs
	logger.Debug("Loading student tabs",
		zap.String("group1", cfg.StudentTabs.Group1),
		zap.String("group2", cfg.StudentTabs.Group2))
	rows1, err := loader.StudentRows(cfg.StudentTabs.Group1, cfg.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to load group 1 students: %w", err)
	}
	rows2, err := loader.StudentRows(cfg.StudentTabs.Group2, cfg.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to load group 2 students: %w", err)
	}
	logger.Debug("Loaded student rows",
		zap.Int("group1_rows", len(rows1)),
		zap.Int("group2_rows", len(rows2)))

	// Step 2: Load room topologies
	logger.Debug("Loading rooms")
	rooms, err := loader.Rooms(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("workbook has no room sheets")
	}
	logger.Debug("Loaded rooms", zap.Int("count", len(rooms)))

	// Step 3: Build shuffled pools
	pool1, err := allocator.BuildPool(rows1)
	if err != nil {
		return nil, fmt.Errorf("failed to build group 1 pool: %w", err)
	}
	pool2, err := allocator.BuildPool(rows2)
	if err != nil {
		return nil, fmt.Errorf("failed to build group 2 pool: %w", err)
	}
	group1Total := pool1.Len()
	group2Total := pool2.Len()
	logger.Info("Pools built",
		zap.Int("group1_students", group1Total),
		zap.Int("group2_students", group2Total))

	// Step 4: Run the allocation
	logger.Info("Running seat allocation", zap.Int("rooms", len(rooms)))
	allocation, err := allocator.Allocate(pool1, pool2, rooms)
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	logger.Info("Allocation completed",
		zap.Int("seated", allocation.FilledSeats()),
		zap.Int("leftover_group1", allocation.LeftoverGroup1),
		zap.Int("leftover_group2", allocation.LeftoverGroup2))

	if allocation.HasLeftovers() {
		logger.Warn("Not enough seats for everyone",
			zap.Int("leftover_group1", allocation.LeftoverGroup1),
			zap.Int("leftover_group2", allocation.LeftoverGroup2))
	}

	// Step 5: Build rosters
	roster := report.Flatten(allocation, params.ExamDate)
	byClass := report.GroupByClass(roster)
	byRoom := report.GroupByRoom(roster)
	logger.Debug("Rosters built",
		zap.Int("rows", len(roster)),
		zap.Int("classes", len(byClass)),
		zap.Int("rooms", len(byRoom)))

	result := &GenerateMapsResult{
		RunID:       runID,
		ExamDate:    params.ExamDate,
		Rooms:       rooms,
		Allocation:  allocation,
		Roster:      roster,
		ByClass:     byClass,
		ByRoom:      byRoom,
		Group1Total: group1Total,
		Group2Total: group2Total,
	}

	// Step 6: Export rosters if requested
	if params.OutputDir != "" {
		exported, err := exportRosters(params.OutputDir, result, logger)
		if err != nil {
			return nil, err
		}
		result.ExportedFiles = exported
	}

	return result, nil
}

// exportRosters writes the global, per-class and per-room roster files.
func exportRosters(dir string, result *GenerateMapsResult, logger *zap.Logger) ([]string, error) {
	logger.Info("Exporting rosters", zap.String("dir", dir))

	globalPath := filepath.Join(dir, "roster_global.xlsx")
	if err := workbook.WriteRoster(globalPath, result.Roster); err != nil {
		return nil, fmt.Errorf("failed to export global roster: %w", err)
	}
	files := []string{globalPath}

	classFiles, err := workbook.WriteGroupedRosters(dir, "roster_class", result.ByClass)
	if err != nil {
		return nil, fmt.Errorf("failed to export class rosters: %w", err)
	}
	files = append(files, classFiles...)

	roomFiles, err := workbook.WriteGroupedRosters(dir, "roster_room", result.ByRoom)
	if err != nil {
		return nil, fmt.Errorf("failed to export room rosters: %w", err)
	}
	files = append(files, roomFiles...)

	logger.Info("Rosters exported", zap.Int("files", len(files)))
	return files, nil
}
