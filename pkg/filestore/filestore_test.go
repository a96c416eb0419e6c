package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/db"
)

func testSchedule(id, week string, createdAt time.Time) *db.Schedule {
	return &db.Schedule{
		ID:        id,
		Week:      week,
		WeekStart: model.NewDate(2025, 3, 3),
		Status:    model.StatusDraft,
		Shifts: []db.Shift{
			{
				ID:         "shift-1",
				EmployeeID: "anna",
				GroupID:    "kr1",
				Weekday:    model.Monday,
				Date:       model.NewDate(2025, 3, 3),
				Template:   model.TemplateEarly,
				Start:      "07:00",
				End:        "15:30",
			},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestInsertAndGet(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.InsertSchedule(testSchedule("s1", "2025-W10", created)))

	got, err := store.GetSchedule(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "2025-W10", got.Week)
	assert.Equal(t, model.StatusDraft, got.Status)
	require.Len(t, got.Shifts, 1)
	assert.Equal(t, "anna", got.Shifts[0].EmployeeID)
	assert.Equal(t, model.Monday, got.Shifts[0].Weekday)
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestGetScheduleNotFound(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.GetSchedule(context.Background(), "missing")
	assert.ErrorIs(t, err, db.ErrScheduleNotFound)
}

func TestInsertDuplicateID(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.InsertSchedule(testSchedule("s1", "2025-W10", created)))

	err = store.InsertSchedule(testSchedule("s1", "2025-W11", created))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGetSchedulesNewestFirst(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.InsertSchedule(testSchedule("old", "2025-W10", base)))
	require.NoError(t, store.InsertSchedule(testSchedule("new", "2025-W10", base.Add(time.Hour))))

	schedules, err := store.GetSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, "new", schedules[0].ID)
	assert.Equal(t, "old", schedules[1].ID)
}

func TestGetSchedulesForWeek(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.InsertSchedule(testSchedule("w10-a", "2025-W10", base)))
	require.NoError(t, store.InsertSchedule(testSchedule("w11", "2025-W11", base)))
	require.NoError(t, store.InsertSchedule(testSchedule("w10-b", "2025-W10", base.Add(time.Hour))))

	schedules, err := store.GetSchedulesForWeek(ctx, "2025-W10")
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, "w10-b", schedules[0].ID)
	assert.Equal(t, "w10-a", schedules[1].ID)

	empty, err := store.GetSchedulesForWeek(ctx, "2025-W12")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateSchedule(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	schedule := testSchedule("s1", "2025-W10", created)
	require.NoError(t, store.InsertSchedule(schedule))

	published := created.Add(2 * time.Hour)
	schedule.Status = model.StatusPublished
	schedule.PublishedAt = &published
	require.NoError(t, store.UpdateSchedule(schedule))

	got, err := store.GetSchedule(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, got.Status)
	require.NotNil(t, got.PublishedAt)
	assert.True(t, got.PublishedAt.Equal(published))
}

func TestUpdateMissingSchedule(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	err = store.UpdateSchedule(testSchedule("ghost", "2025-W10", created))
	assert.ErrorIs(t, err, db.ErrScheduleNotFound)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.InsertSchedule(testSchedule("s1", "2025-W10", created)))

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	got, err := reopened.GetSchedule(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "2025-W10", got.Week)
	assert.Equal(t, model.NewDate(2025, 3, 3), got.WeekStart)
}

func TestCorruptStoreFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schedules.json"), []byte("{not json"), 0644))

	store, err := NewStore(dir)
	require.NoError(t, err)

	_, err = store.GetSchedules(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse store file")
}
