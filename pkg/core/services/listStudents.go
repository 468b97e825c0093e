package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/examdesk/seatmap/internal/config"
	"github.com/examdesk/seatmap/pkg/core/allocator"
)

// GroupSummary describes one student tab before allocation
type GroupSummary struct {
	Tab    string
	Total  int
	Exempt int
	ToSeat int
}

// ListStudentsResult contains both group summaries
type ListStudentsResult struct {
	Group1 GroupSummary
	Group2 GroupSummary
}

// ListStudents summarises the student tabs of a workbook: how many rows each
// holds, how many carry the exemption flag and how many will actually be
// seated. Nothing is shuffled or consumed here.
func ListStudents(
	ctx context.Context,
	loader WorkbookLoader,
	cfg *config.Config,
	logger *zap.Logger,
) (*ListStudentsResult, error) {
	group1, err := summariseTab(loader, cfg.StudentTabs.Group1, cfg.Columns)
	if err != nil {
		return nil, err
	}
	group2, err := summariseTab(loader, cfg.StudentTabs.Group2, cfg.Columns)
	if err != nil {
		return nil, err
	}

	logger.Info("Student tabs summarised",
		zap.Int("group1_to_seat", group1.ToSeat),
		zap.Int("group2_to_seat", group2.ToSeat))

	return &ListStudentsResult{Group1: group1, Group2: group2}, nil
}

func summariseTab(loader WorkbookLoader, tab string, cols config.Columns) (GroupSummary, error) {
	rows, err := loader.StudentRows(tab, cols)
	if err != nil {
		return GroupSummary{}, fmt.Errorf("failed to load tab %q: %w", tab, err)
	}

	summary := GroupSummary{Tab: tab, Total: len(rows)}
	for _, row := range rows {
		if allocator.IsExempt(row[allocator.ColFlex]) {
			summary.Exempt++
		}
	}
	summary.ToSeat = summary.Total - summary.Exempt

	return summary, nil
}
