package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/internal/config"
	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/db"
)

// RescoreScheduleStore defines the database operations needed for rescoring
type RescoreScheduleStore interface {
	GetSchedulesForWeek(ctx context.Context, week string) ([]db.Schedule, error)
	UpdateSchedule(schedule *db.Schedule) error
}

// RescoreSchedule recomputes scores and shortfalls of the week's active
// schedule against a current snapshot. Run it after roster changes that
// happened since generation, a new absence or a contract change, to see what
// they do to the stored plan.
func RescoreSchedule(
	ctx context.Context,
	database RescoreScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	snap *model.Snapshot,
) (*db.Schedule, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is required")
	}
	if err := ensureWeekStart(snap); err != nil {
		return nil, err
	}
	cfg.Apply(snap)

	schedule, err := activeScheduleForWeek(ctx, database, snap.Week)
	if err != nil {
		return nil, err
	}

	before := schedule.Scores
	rescore(schedule, snap)

	if err := database.UpdateSchedule(schedule); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	logger.Info("Schedule rescored",
		zap.String("id", schedule.ID),
		zap.String("week", snap.Week),
		zap.Float64("coverage_before", before.Coverage),
		zap.Float64("coverage_after", schedule.Scores.Coverage),
		zap.Float64("compliance_after", schedule.Scores.Compliance))

	return schedule, nil
}
