package engine

import (
	"math"

	"github.com/kitawerk/dienstplan/pkg/core/model"
)

// DefaultFairnessScale converts the utilization ratio spread into score
// points. A standard deviation of 0.1 costs ten points at this scale.
const DefaultFairnessScale = 100.0

// Score computes the quality percentages for a shift set against a snapshot.
// It works for fresh engine output and for stored schedules after manual
// edits, which is why per-cell counts are capped at the requirement.
func Score(snap *model.Snapshot, shifts []model.Shift) model.Scores {
	scale := snap.FairnessScale
	if scale <= 0 {
		scale = DefaultFairnessScale
	}

	cellCounts := make(map[cellKey]int)
	for _, shift := range shifts {
		cellCounts[cellKey{GroupID: shift.GroupID, Day: shift.Weekday}]++
	}

	totalRequired := 0
	totalAssigned := 0
	for _, day := range operatingDays(snap) {
		for gi := range snap.Groups {
			grp := &snap.Groups[gi]
			children, ok := snap.ExpectedChildren(grp.ID, day)
			if !ok {
				continue
			}
			required := StaffForChildren(children, grp.Ratio)
			if required == 0 {
				continue
			}
			totalRequired += required

			assigned := cellCounts[cellKey{GroupID: grp.ID, Day: day}]
			if assigned > required {
				assigned = required
			}
			totalAssigned += assigned
		}
	}

	coverage := 100.0
	if totalRequired > 0 {
		coverage = float64(totalAssigned) / float64(totalRequired) * 100
	}

	fairness := fairnessScore(snap, shifts, scale)
	preference := preferenceScore(snap, shifts)

	// Compliance counts every plan violation against the size of the plan
	violations := len(ValidateAssignments(snap, shifts))
	checks := totalRequired + len(snap.Employees)
	if checks < 1 {
		checks = 1
	}
	compliance := clampScore((1 - float64(violations)/float64(checks)) * 100)

	return model.Scores{
		Coverage:   clampScore(coverage),
		Fairness:   fairness,
		Preference: preference,
		Compliance: compliance,
	}
}

// fairnessScore rewards an even hours-to-contract spread. Only employees
// with contracted hours take part, everyone else has no meaningful ratio.
func fairnessScore(snap *model.Snapshot, shifts []model.Shift, scale float64) float64 {
	templates := templateCatalog(snap)

	hours := make(map[string]float64)
	for _, shift := range shifts {
		if tpl, ok := findTemplate(templates, shift.Template); ok {
			hours[shift.EmployeeID] += tpl.Hours()
		}
	}

	var ratios []float64
	for i := range snap.Employees {
		emp := &snap.Employees[i]
		if emp.ContractHours > 0 {
			ratios = append(ratios, hours[emp.ID]/emp.ContractHours)
		}
	}
	if len(ratios) == 0 {
		return 100
	}

	return clampScore(100 - stdDev(ratios)*scale)
}

func preferenceScore(snap *model.Snapshot, shifts []model.Shift) float64 {
	if len(shifts) == 0 {
		return 100
	}

	satisfied := 0
	for _, shift := range shifts {
		if shiftSatisfiesPreference(snap, shifts, shift) {
			satisfied++
		}
	}
	return clampScore(float64(satisfied) / float64(len(shifts)) * 100)
}

// shiftSatisfiesPreference reports whether at least one of the employee's
// soft preferences is met by this shift
func shiftSatisfiesPreference(snap *model.Snapshot, shifts []model.Shift, shift model.Shift) bool {
	emp := snap.EmployeeByID(shift.EmployeeID)
	if emp == nil {
		return false
	}

	if pref, ok := emp.PreferredTemplate(); ok && pref == shift.Template {
		return true
	}

	for _, colleague := range emp.PreferredColleagues() {
		for _, other := range shifts {
			if other.EmployeeID == colleague && other.GroupID == shift.GroupID && other.Weekday == shift.Weekday {
				return true
			}
		}
	}

	return false
}

// stdDev is the population standard deviation
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
