// Package engine generates weekly staff schedules for a daycare facility.
// One call to Generate turns an immutable input snapshot into a set of shift
// assignments, a shortfall report and quality scores. The pass is greedy and
// deterministic: no backtracking, no randomness, identical snapshots produce
// identical results.
package engine

import "github.com/kitawerk/dienstplan/pkg/core/model"

// Generate runs one schedule generation pass over the snapshot.
//
// Weekdays are walked in ascending operating-day order and groups in snapshot
// order. For every cell the first pass guarantees one Erstkraft, the second
// pass fills the remaining required slots. Cells that cannot be fully staffed
// are reported as shortfalls, never as errors; only an invalid snapshot
// aborts the run.
func Generate(snap *model.Snapshot) (*model.Result, error) {
	if err := ValidateSnapshot(snap); err != nil {
		return nil, err
	}

	st := NewState(snap)
	shortfalls := []model.Shortfall{}

	for _, day := range st.days {
		for gi := range snap.Groups {
			grp := &snap.Groups[gi]
			required := st.RequiredStaff(grp.ID, day)
			if required == 0 {
				continue
			}

			assigned := st.fillCell(grp, day, required)
			if assigned < required {
				shortfalls = append(shortfalls, model.Shortfall{
					GroupID: grp.ID,
					Weekday: day,
					Missing: required - assigned,
				})
			}
		}
	}

	shifts := st.shifts
	if shifts == nil {
		shifts = []model.Shift{}
	}

	return &model.Result{
		Week:       snap.Week,
		Shifts:     shifts,
		Shortfalls: shortfalls,
		Scores:     Score(snap, shifts),
	}, nil
}

// fillCell staffs one (group, weekday) cell and returns how many slots were
// filled
func (st *State) fillCell(grp *model.Group, day model.Weekday, required int) int {
	key := cellKey{GroupID: grp.ID, Day: day}
	assigned := len(st.cellAssignees[key])

	// Pass 1: make sure the cell gets a qualified lead
	if !st.cellHasLead[key] {
		if lead := pickBest(st, grp, day, true); lead != nil {
			st.assign(lead, grp, day, st.pickTemplate(lead, day))
			assigned++
		}
	}

	// Pass 2: fill the remaining slots with whoever ranks highest
	for assigned < required {
		emp := pickBest(st, grp, day, false)
		if emp == nil {
			break
		}
		st.assign(emp, grp, day, st.pickTemplate(emp, day))
		assigned++
	}

	return assigned
}
