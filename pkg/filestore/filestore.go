// Package filestore persists schedules in a single JSON file. One facility's
// schedule history fits comfortably in one file and stays diffable, so this
// is the default ScheduleStore backend.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/kitawerk/dienstplan/pkg/db"
)

const storeFileName = "schedules.json"

// Store is a db.ScheduleStore backed by one JSON file
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store rooted at dataDir, creating the directory if needed
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{path: filepath.Join(dataDir, storeFileName)}, nil
}

func (s *Store) load() ([]db.Schedule, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil // nothing stored yet
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var schedules []db.Schedule
	if err := json.Unmarshal(data, &schedules); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return schedules, nil
}

// save writes then renames so the store stays readable if we crash mid-write
func (s *Store) save(schedules []db.Schedule) error {
	data, err := json.MarshalIndent(schedules, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schedules: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// GetSchedules retrieves all stored schedules, newest first
func (s *Store) GetSchedules(ctx context.Context) ([]db.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedules, err := s.load()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(schedules)
	return schedules, nil
}

// GetSchedule retrieves the schedule with the given ID
func (s *Store) GetSchedule(ctx context.Context, id string) (*db.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedules, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range schedules {
		if schedules[i].ID == id {
			return &schedules[i], nil
		}
	}
	return nil, db.ErrScheduleNotFound
}

// GetSchedulesForWeek retrieves all schedules for an ISO week, newest first
func (s *Store) GetSchedulesForWeek(ctx context.Context, week string) ([]db.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedules, err := s.load()
	if err != nil {
		return nil, err
	}
	matching := make([]db.Schedule, 0)
	for _, schedule := range schedules {
		if schedule.Week == week {
			matching = append(matching, schedule)
		}
	}
	sortNewestFirst(matching)
	return matching, nil
}

// InsertSchedule appends a new schedule record
func (s *Store) InsertSchedule(schedule *db.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedules, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range schedules {
		if existing.ID == schedule.ID {
			return fmt.Errorf("schedule %s already exists", schedule.ID)
		}
	}
	return s.save(append(schedules, *schedule))
}

// UpdateSchedule replaces a stored schedule record in place
func (s *Store) UpdateSchedule(schedule *db.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedules, err := s.load()
	if err != nil {
		return err
	}
	for i := range schedules {
		if schedules[i].ID == schedule.ID {
			schedules[i] = *schedule
			return s.save(schedules)
		}
	}
	return db.ErrScheduleNotFound
}

func sortNewestFirst(schedules []db.Schedule) {
	sort.SliceStable(schedules, func(i, j int) bool {
		return schedules[i].CreatedAt.After(schedules[j].CreatedAt)
	})
}
