package db

import (
	"context"
	"errors"
)

// ErrScheduleNotFound is returned when no schedule matches a lookup
var ErrScheduleNotFound = errors.New("schedule not found")

// ScheduleStore defines the interface for schedule persistence operations
type ScheduleStore interface {
	GetSchedules(ctx context.Context) ([]Schedule, error)
	GetSchedule(ctx context.Context, id string) (*Schedule, error)
	GetSchedulesForWeek(ctx context.Context, week string) ([]Schedule, error)
	InsertSchedule(schedule *Schedule) error
	UpdateSchedule(schedule *Schedule) error
}
