package engine

import "github.com/kitawerk/dienstplan/pkg/core/model"

// candidate is one rankable employee for a cell
type candidate struct {
	emp     *model.Employee
	deficit float64
	prefs   int
}

// beats implements the strict priority order between two candidates:
// higher fairness deficit first, then more satisfied preferences, then the
// smaller employee ID. The ID tie-break keeps runs reproducible.
func (c candidate) beats(other candidate) bool {
	if c.deficit != other.deficit {
		return c.deficit > other.deficit
	}
	if c.prefs != other.prefs {
		return c.prefs > other.prefs
	}
	return c.emp.ID < other.emp.ID
}

// pickBest returns the highest priority eligible employee for a cell, or nil
// when nobody qualifies. With leadOnly set, only Erstkraft employees are
// considered.
func pickBest(st *State, grp *model.Group, day model.Weekday, leadOnly bool) *model.Employee {
	var best candidate
	found := false

	for i := range st.snap.Employees {
		emp := &st.snap.Employees[i]
		if leadOnly && emp.Role != model.RoleErstkraft {
			continue
		}
		if !isCandidate(st, emp, grp, day) {
			continue
		}
		if len(st.selectableTemplates(emp)) == 0 {
			continue
		}

		cand := candidate{
			emp:     emp,
			deficit: st.fairness.Deficit(emp.ID),
			prefs:   preferenceMatches(st, emp, grp, day),
		}
		if !found || cand.beats(best) {
			best = cand
			found = true
		}
	}

	if !found {
		return nil
	}
	return best.emp
}

// preferenceMatches counts how many of the employee's soft preferences an
// assignment to this cell would satisfy. One point when their preferred
// template is selectable for them, one point when a preferred colleague is
// already working this cell.
func preferenceMatches(st *State, emp *model.Employee, grp *model.Group, day model.Weekday) int {
	score := 0

	if pref, ok := emp.PreferredTemplate(); ok {
		if _, found := findTemplate(st.selectableTemplates(emp), pref); found {
			score++
		}
	}

	assignees := st.cellAssignees[cellKey{GroupID: grp.ID, Day: day}]
	for _, colleague := range emp.PreferredColleagues() {
		if containsID(assignees, colleague) {
			score++
			break
		}
	}

	return score
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
