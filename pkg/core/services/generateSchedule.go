package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/internal/config"
	"github.com/kitawerk/dienstplan/pkg/core/engine"
	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/db"
)

// GenerateScheduleStore defines the database operations needed for generating a schedule
type GenerateScheduleStore interface {
	GetSchedulesForWeek(ctx context.Context, week string) ([]db.Schedule, error)
	InsertSchedule(schedule *db.Schedule) error
	UpdateSchedule(schedule *db.Schedule) error
}

// GenerateSchedule runs the engine over a snapshot and stores the result as
// the week's draft. An existing draft is replaced in place, keeping its
// manually added shifts; published and archived schedules are never touched.
// With dryRun the schedule is built and scored but not stored.
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	snap *model.Snapshot,
	dryRun bool,
) (*db.Schedule, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is required")
	}
	if err := ensureWeekStart(snap); err != nil {
		return nil, err
	}
	cfg.Apply(snap)

	logger.Info("Generating schedule",
		zap.String("week", snap.Week),
		zap.Int("employees", len(snap.Employees)),
		zap.Int("groups", len(snap.Groups)))

	result, err := engine.Generate(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	logger.Debug("Engine run finished",
		zap.Int("shifts", len(result.Shifts)),
		zap.Int("shortfalls", len(result.Shortfalls)),
		zap.Float64("coverage", result.Scores.Coverage))

	shifts, err := storedShifts(snap, result.Shifts, false)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	schedule := &db.Schedule{
		ID:         uuid.New().String(),
		Week:       snap.Week,
		WeekStart:  snap.WeekStart,
		Status:     model.StatusDraft,
		Scores:     result.Scores,
		Shifts:     shifts,
		Shortfalls: result.Shortfalls,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if dryRun {
		logger.Info("Dry run, schedule not stored", zap.String("week", snap.Week))
		return schedule, nil
	}

	existing, err := database.GetSchedulesForWeek(ctx, snap.Week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules for week: %w", err)
	}

	if draft := latestScheduleWithStatus(existing, model.StatusDraft); draft != nil {
		if manual := manualShifts(draft.Shifts); len(manual) > 0 {
			schedule.Shifts = mergeManualShifts(schedule.Shifts, manual)
			assignments := toModelShifts(schedule.Shifts)
			schedule.Scores = engine.Score(snap, assignments)
			schedule.Shortfalls = engine.Shortfalls(snap, assignments)
			logger.Info("Preserved manual shifts from existing draft", zap.Int("count", len(manual)))
		}

		schedule.ID = draft.ID
		schedule.CreatedAt = draft.CreatedAt
		if err := database.UpdateSchedule(schedule); err != nil {
			return nil, fmt.Errorf("failed to replace draft schedule: %w", err)
		}

		logger.Info("Replaced existing draft",
			zap.String("id", schedule.ID),
			zap.String("week", schedule.Week),
			zap.Float64("coverage", schedule.Scores.Coverage))
		return schedule, nil
	}

	if err := database.InsertSchedule(schedule); err != nil {
		return nil, fmt.Errorf("failed to insert schedule: %w", err)
	}

	logger.Info("Schedule stored",
		zap.String("id", schedule.ID),
		zap.String("week", schedule.Week),
		zap.Float64("coverage", schedule.Scores.Coverage),
		zap.Float64("fairness", schedule.Scores.Fairness))

	return schedule, nil
}
