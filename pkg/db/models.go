package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/kitawerk/dienstplan/pkg/core/model"
)

// Schedule represents a stored weekly schedule record
type Schedule struct {
	ID          string               `json:"id"`
	Week        string               `json:"week"`
	WeekStart   model.Date           `json:"weekStart"`
	Status      model.ScheduleStatus `json:"status"`
	Scores      model.Scores         `json:"scores"`
	Shifts      []Shift              `json:"shifts"`
	Shortfalls  []model.Shortfall    `json:"shortfalls"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	PublishedAt *time.Time           `json:"publishedAt,omitempty"`
}

// Shift represents a stored shift record. Clock times are resolved from the
// template at write time so published plans survive later template changes.
type Shift struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employeeId"`
	GroupID      string           `json:"groupId"`
	Weekday      model.Weekday    `json:"weekday"`
	Date         model.Date       `json:"date"`
	Template     model.TemplateID `json:"template"`
	Start        string           `json:"start"`
	End          string           `json:"end"`
	BreakStart   string           `json:"breakStart,omitempty"`
	BreakMinutes int              `json:"breakMinutes,omitempty"`
	Manual       bool             `json:"manual,omitempty"`
}

// NewShift builds a stored shift from an engine assignment, resolving the
// concrete date and clock times
func NewShift(assignment model.Shift, weekStart model.Date, tpl model.ShiftTemplate, manual bool) Shift {
	return Shift{
		ID:           uuid.NewString(),
		EmployeeID:   assignment.EmployeeID,
		GroupID:      assignment.GroupID,
		Weekday:      assignment.Weekday,
		Date:         weekStart.AddDays(int(assignment.Weekday)),
		Template:     assignment.Template,
		Start:        tpl.Start,
		End:          tpl.End,
		BreakStart:   tpl.BreakStart,
		BreakMinutes: tpl.BreakMinutes,
		Manual:       manual,
	}
}

// ToModel reduces the stored shift to its engine form
func (s Shift) ToModel() model.Shift {
	return model.Shift{
		EmployeeID: s.EmployeeID,
		GroupID:    s.GroupID,
		Weekday:    s.Weekday,
		Template:   s.Template,
	}
}
