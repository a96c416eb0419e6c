package services

import (
	"fmt"

	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/db"
)

// ensureWeekStart resolves the snapshot's week start date for callers that
// built the snapshot themselves instead of loading it through pkg/snapshot
func ensureWeekStart(snap *model.Snapshot) error {
	if !snap.WeekStart.IsZero() {
		return nil
	}
	start, err := model.ISOWeekStart(snap.Week)
	if err != nil {
		return fmt.Errorf("invalid week %q: %w", snap.Week, err)
	}
	snap.WeekStart = start
	return nil
}

// latestScheduleWithStatus returns the newest schedule with the given status
func latestScheduleWithStatus(schedules []db.Schedule, status model.ScheduleStatus) *db.Schedule {
	var latest *db.Schedule
	for i := range schedules {
		if schedules[i].Status != status {
			continue
		}
		if latest == nil || schedules[i].CreatedAt.After(latest.CreatedAt) {
			latest = &schedules[i]
		}
	}
	return latest
}

// activeSchedule returns the week's published schedule, falling back to the
// newest draft. Archived schedules are never active.
func activeSchedule(schedules []db.Schedule) *db.Schedule {
	if published := latestScheduleWithStatus(schedules, model.StatusPublished); published != nil {
		return published
	}
	return latestScheduleWithStatus(schedules, model.StatusDraft)
}

// resolveTemplate finds a template in the snapshot catalog, falling back to
// the built-in one
func resolveTemplate(snap *model.Snapshot, id model.TemplateID) (model.ShiftTemplate, error) {
	catalog := snap.Templates
	if len(catalog) == 0 {
		catalog = model.DefaultTemplates()
	}
	for _, tpl := range catalog {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return model.ShiftTemplate{}, fmt.Errorf("unknown template %q", id)
}

// storedShifts converts engine assignments into stored shift records with
// resolved dates and clock times
func storedShifts(snap *model.Snapshot, assignments []model.Shift, manual bool) ([]db.Shift, error) {
	shifts := make([]db.Shift, 0, len(assignments))
	for _, assignment := range assignments {
		tpl, err := resolveTemplate(snap, assignment.Template)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, db.NewShift(assignment, snap.WeekStart, tpl, manual))
	}
	return shifts, nil
}

// toModelShifts reduces stored shifts to their engine form for scoring and
// validation
func toModelShifts(shifts []db.Shift) []model.Shift {
	assignments := make([]model.Shift, len(shifts))
	for i, shift := range shifts {
		assignments[i] = shift.ToModel()
	}
	return assignments
}

type empDay struct {
	employee string
	day      model.Weekday
}

// manualShifts filters a stored plan down to its manually added shifts
func manualShifts(shifts []db.Shift) []db.Shift {
	manual := make([]db.Shift, 0)
	for _, shift := range shifts {
		if shift.Manual {
			manual = append(manual, shift)
		}
	}
	return manual
}

// mergeManualShifts overlays manual shifts onto a generated plan. A manual
// shift wins against any generated shift for the same employee and day.
func mergeManualShifts(generated, manual []db.Shift) []db.Shift {
	if len(manual) == 0 {
		return generated
	}

	occupied := make(map[empDay]bool, len(manual))
	for _, shift := range manual {
		occupied[empDay{employee: shift.EmployeeID, day: shift.Weekday}] = true
	}

	merged := make([]db.Shift, 0, len(generated)+len(manual))
	for _, shift := range generated {
		if occupied[empDay{employee: shift.EmployeeID, day: shift.Weekday}] {
			continue
		}
		merged = append(merged, shift)
	}
	return append(merged, manual...)
}
