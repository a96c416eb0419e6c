package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/db"
)

// PublishScheduleStore defines the database operations needed for the
// publish, unpublish and archive services
type PublishScheduleStore interface {
	GetSchedulesForWeek(ctx context.Context, week string) ([]db.Schedule, error)
	UpdateSchedule(schedule *db.Schedule) error
}

// PublishSchedule promotes the week's newest draft to published. Any other
// published schedule of the same week is archived first, so a week never has
// two published plans.
func PublishSchedule(ctx context.Context, database PublishScheduleStore, logger *zap.Logger, week string) (*db.Schedule, error) {
	schedules, err := database.GetSchedulesForWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules for week: %w", err)
	}

	draft := latestScheduleWithStatus(schedules, model.StatusDraft)
	if draft == nil {
		return nil, fmt.Errorf("no draft schedule for week %s", week)
	}

	now := time.Now().UTC()
	for i := range schedules {
		if schedules[i].Status != model.StatusPublished || schedules[i].ID == draft.ID {
			continue
		}
		schedules[i].Status = model.StatusArchived
		schedules[i].UpdatedAt = now
		if err := database.UpdateSchedule(&schedules[i]); err != nil {
			return nil, fmt.Errorf("failed to archive previous schedule: %w", err)
		}
		logger.Info("Archived previously published schedule",
			zap.String("id", schedules[i].ID),
			zap.String("week", week))
	}

	draft.Status = model.StatusPublished
	draft.PublishedAt = &now
	draft.UpdatedAt = now
	if err := database.UpdateSchedule(draft); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published",
		zap.String("id", draft.ID),
		zap.String("week", week),
		zap.Float64("coverage", draft.Scores.Coverage))

	return draft, nil
}

// UnpublishSchedule returns the week's published schedule to draft
func UnpublishSchedule(ctx context.Context, database PublishScheduleStore, logger *zap.Logger, week string) (*db.Schedule, error) {
	schedules, err := database.GetSchedulesForWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules for week: %w", err)
	}

	published := latestScheduleWithStatus(schedules, model.StatusPublished)
	if published == nil {
		return nil, fmt.Errorf("no published schedule for week %s", week)
	}

	published.Status = model.StatusDraft
	published.PublishedAt = nil
	published.UpdatedAt = time.Now().UTC()
	if err := database.UpdateSchedule(published); err != nil {
		return nil, fmt.Errorf("failed to unpublish schedule: %w", err)
	}

	logger.Info("Schedule unpublished", zap.String("id", published.ID), zap.String("week", week))
	return published, nil
}

// ArchiveSchedule archives the week's active schedule, the published one if
// it exists, otherwise the newest draft
func ArchiveSchedule(ctx context.Context, database PublishScheduleStore, logger *zap.Logger, week string) (*db.Schedule, error) {
	schedules, err := database.GetSchedulesForWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules for week: %w", err)
	}

	active := activeSchedule(schedules)
	if active == nil {
		return nil, fmt.Errorf("no active schedule for week %s", week)
	}

	active.Status = model.StatusArchived
	active.UpdatedAt = time.Now().UTC()
	if err := database.UpdateSchedule(active); err != nil {
		return nil, fmt.Errorf("failed to archive schedule: %w", err)
	}

	logger.Info("Schedule archived", zap.String("id", active.ID), zap.String("week", week))
	return active, nil
}
