package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/db"
)

func TestLatestScheduleWithStatus(t *testing.T) {
	base := time.Date(2025, 2, 24, 9, 0, 0, 0, time.UTC)
	schedules := []db.Schedule{
		{ID: "d1", Status: model.StatusDraft, CreatedAt: base},
		{ID: "d2", Status: model.StatusDraft, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "p1", Status: model.StatusPublished, CreatedAt: base.Add(time.Hour)},
	}

	latest := latestScheduleWithStatus(schedules, model.StatusDraft)
	require.NotNil(t, latest)
	assert.Equal(t, "d2", latest.ID)

	assert.Nil(t, latestScheduleWithStatus(schedules, model.StatusArchived))
}

func TestActiveSchedule(t *testing.T) {
	base := time.Date(2025, 2, 24, 9, 0, 0, 0, time.UTC)

	// published wins even against a newer draft
	schedules := []db.Schedule{
		{ID: "d1", Status: model.StatusDraft, CreatedAt: base.Add(time.Hour)},
		{ID: "p1", Status: model.StatusPublished, CreatedAt: base},
	}
	active := activeSchedule(schedules)
	require.NotNil(t, active)
	assert.Equal(t, "p1", active.ID)

	// without a published plan the newest draft is active
	schedules = []db.Schedule{
		{ID: "d1", Status: model.StatusDraft, CreatedAt: base},
		{ID: "a1", Status: model.StatusArchived, CreatedAt: base.Add(time.Hour)},
	}
	active = activeSchedule(schedules)
	require.NotNil(t, active)
	assert.Equal(t, "d1", active.ID)

	assert.Nil(t, activeSchedule([]db.Schedule{{ID: "a1", Status: model.StatusArchived}}))
}

func TestMergeManualShifts(t *testing.T) {
	generated := []db.Shift{
		{ID: "g1", EmployeeID: "anna", Weekday: model.Monday},
		{ID: "g2", EmployeeID: "ben", Weekday: model.Monday},
	}
	manual := []db.Shift{
		{ID: "m1", EmployeeID: "ben", Weekday: model.Monday, Manual: true},
	}

	merged := mergeManualShifts(generated, manual)
	require.Len(t, merged, 2)
	assert.Equal(t, "g1", merged[0].ID)
	assert.Equal(t, "m1", merged[1].ID)

	// a manual shift on another day displaces nothing
	manual[0].Weekday = model.Tuesday
	merged = mergeManualShifts(generated, manual)
	assert.Len(t, merged, 3)

	assert.Equal(t, generated, mergeManualShifts(generated, nil))
}

func TestResolveTemplate(t *testing.T) {
	snap := &model.Snapshot{Week: "2025-W10"}

	tpl, err := resolveTemplate(snap, model.TemplateEarly)
	require.NoError(t, err)
	assert.Equal(t, "07:00", tpl.Start)

	snap.Templates = []model.ShiftTemplate{
		{ID: model.TemplateEarly, Start: "06:30", End: "15:00", BreakStart: "11:00", BreakMinutes: 30},
	}
	tpl, err = resolveTemplate(snap, model.TemplateEarly)
	require.NoError(t, err)
	assert.Equal(t, "06:30", tpl.Start)

	_, err = resolveTemplate(snap, model.TemplateID("night"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `unknown template "night"`)
}
