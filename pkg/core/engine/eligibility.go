package engine

import "github.com/kitawerk/dienstplan/pkg/core/model"

// IsEligible reports whether the employee may be assigned the given template
// in the given group on the given day. It checks every hard constraint
// against the current run state and has no side effects. Soft preferences are
// ignored here, they only influence ranking.
func IsEligible(st *State, emp *model.Employee, grp *model.Group, day model.Weekday, tpl model.ShiftTemplate) bool {
	return isCandidate(st, emp, grp, day) && templateAllowed(emp, tpl)
}

// isCandidate runs the template-independent hard checks for one cell
func isCandidate(st *State, emp *model.Employee, grp *model.Group, day model.Weekday) bool {
	// Area match
	if !emp.Area.Covers(grp.Area) {
		return false
	}
	// An explicit area pin keeps both-area employees out of the other area
	if pinned, ok := emp.OnlyArea(); ok && pinned != grp.Area {
		return false
	}

	// Absent that day
	if st.absentOn[emp.ID][day] {
		return false
	}

	// Already working that day
	if st.assignedDays[emp.ID][day] {
		return false
	}

	// Fixed day off
	for _, off := range emp.FixedDaysOff() {
		if off == day {
			return false
		}
	}

	// Contracted days per week exhausted
	if st.shiftCount[emp.ID] >= emp.ContractDays {
		return false
	}

	// Weekly hours cap, one hour of tolerance
	if emp.ContractHours > 0 && st.fairness.Hours(emp.ID)+emp.DailyTargetHours() > emp.ContractHours+1 {
		return false
	}

	// Consecutive working day limit
	if limit, ok := emp.MaxConsecutiveDays(); ok && st.wouldExceedConsecutive(emp.ID, day, limit) {
		return false
	}

	return true
}

// templateAllowed applies the template-scoped hard restrictions
func templateAllowed(emp *model.Employee, tpl model.ShiftTemplate) bool {
	if emp.NoEarlyShift() && tpl.ID == model.TemplateEarly {
		return false
	}
	if emp.NoLateShift() && tpl.ID == model.TemplateLate {
		return false
	}
	return true
}

// wouldExceedConsecutive checks whether adding the candidate day produces a
// run of working days longer than the limit. Runs that start on Monday are
// extended by the employee's prior-week streak when the snapshot carries one,
// otherwise counting is bounded to the current week.
func (st *State) wouldExceedConsecutive(employeeID string, day model.Weekday, limit int) bool {
	assigned := st.assignedDays[employeeID]

	days := make([]int, 0, len(assigned)+1)
	for d := model.Monday; d <= model.Sunday; d++ {
		if d == day || assigned[d] {
			days = append(days, int(d))
		}
	}

	tail := st.snap.PriorWeekStreak[employeeID]

	longest := 0
	run := 0
	runStart := 0
	prev := -2
	for _, d := range days {
		if d == prev+1 {
			run++
		} else {
			run = 1
			runStart = d
		}
		prev = d

		length := run
		if runStart == int(model.Monday) {
			length += tail
		}
		if length > longest {
			longest = length
		}
	}

	return longest > limit
}
