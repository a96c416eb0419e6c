package engine

import (
	"sort"

	"github.com/kitawerk/dienstplan/pkg/core/model"
)

// cellKey addresses one (group, weekday) slot of the week
type cellKey struct {
	GroupID string
	Day     model.Weekday
}

// State is the mutable working context of a single generation run. It tracks
// assignments, daily occupancy and fairness while the engine walks the week,
// and is discarded when the run finishes. The snapshot itself is never
// modified.
type State struct {
	snap      *model.Snapshot
	weekStart model.Date
	days      []model.Weekday
	templates []model.ShiftTemplate

	shifts        []model.Shift
	assignedDays  map[string]map[model.Weekday]bool
	shiftCount    map[string]int
	cellAssignees map[cellKey][]string
	cellHasLead   map[cellKey]bool
	absentOn      map[string]map[model.Weekday]bool
	required      map[cellKey]int
	fairness      *FairnessTracker

	// Daily spread of early and late windows across all groups
	earlyCount  map[model.Weekday]int
	lateCount   map[model.Weekday]int
	earlyTarget map[model.Weekday]int
	lateTarget  map[model.Weekday]int
}

// NewState prepares the working context for a run. The snapshot must already
// have passed ValidateSnapshot.
func NewState(snap *model.Snapshot) *State {
	st := &State{
		snap:          snap,
		weekStart:     snap.WeekStart,
		days:          operatingDays(snap),
		templates:     templateCatalog(snap),
		assignedDays:  make(map[string]map[model.Weekday]bool),
		shiftCount:    make(map[string]int),
		cellAssignees: make(map[cellKey][]string),
		cellHasLead:   make(map[cellKey]bool),
		absentOn:      make(map[string]map[model.Weekday]bool),
		required:      make(map[cellKey]int),
		fairness:      NewFairnessTracker(snap.Employees),
		earlyCount:    make(map[model.Weekday]int),
		lateCount:     make(map[model.Weekday]int),
		earlyTarget:   make(map[model.Weekday]int),
		lateTarget:    make(map[model.Weekday]int),
	}

	if st.weekStart.IsZero() {
		if start, err := model.ISOWeekStart(snap.Week); err == nil {
			st.weekStart = start
		}
	}

	// Precompute which employees are absent on which operating days
	for _, day := range st.days {
		date := st.weekStart.AddDays(int(day))
		for _, absence := range snap.Absences {
			if !absence.Covers(date) {
				continue
			}
			if st.absentOn[absence.EmployeeID] == nil {
				st.absentOn[absence.EmployeeID] = make(map[model.Weekday]bool)
			}
			st.absentOn[absence.EmployeeID][day] = true
		}
	}

	// Precompute required staff per cell and the daily early/late targets
	for _, day := range st.days {
		total := 0
		for gi := range snap.Groups {
			grp := &snap.Groups[gi]
			children, ok := snap.ExpectedChildren(grp.ID, day)
			if !ok {
				continue
			}
			count := StaffForChildren(children, grp.Ratio)
			st.required[cellKey{GroupID: grp.ID, Day: day}] = count
			total += count
		}
		if total > 0 {
			target := total / 3
			if target < 1 {
				target = 1
			}
			st.earlyTarget[day] = target
			st.lateTarget[day] = target
		}
	}

	return st
}

// RequiredStaff returns the precomputed staff requirement for a cell
func (st *State) RequiredStaff(groupID string, day model.Weekday) int {
	return st.required[cellKey{GroupID: groupID, Day: day}]
}

// Fairness exposes the run's fairness tracker
func (st *State) Fairness() *FairnessTracker {
	return st.fairness
}

// Shifts returns the assignments made so far, in assignment order
func (st *State) Shifts() []model.Shift {
	return st.shifts
}

// assign records one accepted assignment and updates all running state
func (st *State) assign(emp *model.Employee, grp *model.Group, day model.Weekday, tpl model.ShiftTemplate) {
	st.shifts = append(st.shifts, model.Shift{
		EmployeeID: emp.ID,
		GroupID:    grp.ID,
		Weekday:    day,
		Template:   tpl.ID,
	})

	if st.assignedDays[emp.ID] == nil {
		st.assignedDays[emp.ID] = make(map[model.Weekday]bool)
	}
	st.assignedDays[emp.ID][day] = true
	st.shiftCount[emp.ID]++

	key := cellKey{GroupID: grp.ID, Day: day}
	st.cellAssignees[key] = append(st.cellAssignees[key], emp.ID)
	if emp.Role == model.RoleErstkraft {
		st.cellHasLead[key] = true
	}

	st.fairness.Add(emp.ID, tpl.Hours())

	switch tpl.ID {
	case model.TemplateEarly:
		st.earlyCount[day]++
	case model.TemplateLate:
		st.lateCount[day]++
	}
}

// operatingDays returns the snapshot's operating days sorted ascending with
// duplicates dropped, defaulting to Monday through Friday
func operatingDays(snap *model.Snapshot) []model.Weekday {
	if len(snap.OperatingDays) == 0 {
		return []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}
	}
	seen := make(map[model.Weekday]bool)
	days := make([]model.Weekday, 0, len(snap.OperatingDays))
	for _, day := range snap.OperatingDays {
		if !day.IsValid() || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// templateCatalog returns the snapshot's template catalog, falling back to
// the built-in one
func templateCatalog(snap *model.Snapshot) []model.ShiftTemplate {
	if len(snap.Templates) == 0 {
		return model.DefaultTemplates()
	}
	return snap.Templates
}
