package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/internal/config"
	"github.com/kitawerk/dienstplan/pkg/core/engine"
	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/db"
)

// EditScheduleStore defines the database operations needed for manual plan edits
type EditScheduleStore interface {
	GetSchedulesForWeek(ctx context.Context, week string) ([]db.Schedule, error)
	UpdateSchedule(schedule *db.Schedule) error
}

// AddManualShift appends a planner-chosen shift to the week's active schedule
// and rescores it. The shift is stored with the manual flag so later
// regenerations keep it. Rule conflicts are not rejected here; they surface
// as violations in the compliance score.
func AddManualShift(
	ctx context.Context,
	database EditScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	snap *model.Snapshot,
	employeeID, groupID string,
	day model.Weekday,
	templateID model.TemplateID,
) (*db.Schedule, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is required")
	}
	if err := ensureWeekStart(snap); err != nil {
		return nil, err
	}
	cfg.Apply(snap)

	if snap.EmployeeByID(employeeID) == nil {
		return nil, fmt.Errorf("unknown employee %s", employeeID)
	}
	if snap.GroupByID(groupID) == nil {
		return nil, fmt.Errorf("unknown group %s", groupID)
	}
	if !day.IsValid() {
		return nil, fmt.Errorf("invalid weekday %d", day)
	}
	tpl, err := resolveTemplate(snap, templateID)
	if err != nil {
		return nil, err
	}

	schedule, err := activeScheduleForWeek(ctx, database, snap.Week)
	if err != nil {
		return nil, err
	}

	for _, existing := range schedule.Shifts {
		if existing.EmployeeID == employeeID && existing.GroupID == groupID &&
			existing.Weekday == day && existing.Template == templateID {
			return nil, fmt.Errorf("an identical shift already exists in schedule %s", schedule.ID)
		}
	}

	assignment := model.Shift{EmployeeID: employeeID, GroupID: groupID, Weekday: day, Template: templateID}
	schedule.Shifts = append(schedule.Shifts, db.NewShift(assignment, snap.WeekStart, tpl, true))
	rescore(schedule, snap)

	if err := database.UpdateSchedule(schedule); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	logger.Info("Manual shift added",
		zap.String("schedule_id", schedule.ID),
		zap.String("employee_id", employeeID),
		zap.String("group_id", groupID),
		zap.String("template", string(templateID)),
		zap.Float64("compliance", schedule.Scores.Compliance))

	for _, violation := range engine.ValidateAssignments(snap, toModelShifts(schedule.Shifts)) {
		if violation.EmployeeID != employeeID {
			continue
		}
		logger.Warn("Manual shift breaks a rule", zap.String("detail", violation.Message))
	}

	return schedule, nil
}

// RemoveShift deletes a shift from the week's active schedule by shift ID
// and rescores the remainder
func RemoveShift(
	ctx context.Context,
	database EditScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	snap *model.Snapshot,
	shiftID string,
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

	index := -1
	for i := range schedule.Shifts {
		if schedule.Shifts[i].ID == shiftID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("shift %s not found in the active schedule for week %s", shiftID, snap.Week)
	}

	removed := schedule.Shifts[index]
	schedule.Shifts = append(schedule.Shifts[:index], schedule.Shifts[index+1:]...)
	rescore(schedule, snap)

	if err := database.UpdateSchedule(schedule); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	logger.Info("Shift removed",
		zap.String("schedule_id", schedule.ID),
		zap.String("shift_id", shiftID),
		zap.String("employee_id", removed.EmployeeID),
		zap.Float64("coverage", schedule.Scores.Coverage))

	return schedule, nil
}

// activeScheduleForWeek loads the week's published schedule or newest draft
func activeScheduleForWeek(ctx context.Context, database EditScheduleStore, week string) (*db.Schedule, error) {
	schedules, err := database.GetSchedulesForWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules for week: %w", err)
	}

	schedule := activeSchedule(schedules)
	if schedule == nil {
		return nil, fmt.Errorf("no active schedule for week %s", week)
	}
	return schedule, nil
}

// rescore refreshes scores and shortfalls after a plan change
func rescore(schedule *db.Schedule, snap *model.Snapshot) {
	assignments := toModelShifts(schedule.Shifts)
	schedule.Scores = engine.Score(snap, assignments)
	schedule.Shortfalls = engine.Shortfalls(snap, assignments)
	schedule.UpdatedAt = time.Now().UTC()
}
