package engine

import (
	"fmt"

	"github.com/kitawerk/dienstplan/pkg/core/model"
)

// ViolationKind classifies a plan violation
type ViolationKind string

const (
	ViolationUnderStaffed ViolationKind = "under_staffed"
	ViolationNoLead       ViolationKind = "no_lead"
	ViolationDoubleBooked ViolationKind = "double_booked"
	ViolationOverHours    ViolationKind = "over_hours"
	ViolationRestriction  ViolationKind = "restriction"
	ViolationAbsent       ViolationKind = "absent"
)

// Violation is one broken rule in a finished plan. Engine output must never
// contain double bookings or restriction violations, those would be defects.
// Under-staffing and missing leads are expected when the roster is too thin,
// and manually edited schedules can break any rule.
type Violation struct {
	Kind       ViolationKind `json:"kind"`
	GroupID    string        `json:"groupId,omitempty"`
	EmployeeID string        `json:"employeeId,omitempty"`
	Message    string        `json:"message"`
}

// ValidateAssignments checks a complete shift set against the snapshot and
// returns every violation found, in a deterministic order. The messages are
// German, they go straight onto the planner's screen.
func ValidateAssignments(snap *model.Snapshot, shifts []model.Shift) []Violation {
	var violations []Violation

	days := operatingDays(snap)
	templates := templateCatalog(snap)

	weekStart := snap.WeekStart
	if weekStart.IsZero() {
		if start, err := model.ISOWeekStart(snap.Week); err == nil {
			weekStart = start
		}
	}

	cellAssignees := make(map[cellKey][]string)
	for _, shift := range shifts {
		key := cellKey{GroupID: shift.GroupID, Day: shift.Weekday}
		cellAssignees[key] = append(cellAssignees[key], shift.EmployeeID)
	}

	// Coverage and lead presence per cell
	for _, day := range days {
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

			assignees := cellAssignees[cellKey{GroupID: grp.ID, Day: day}]
			if len(assignees) < required {
				violations = append(violations, Violation{
					Kind:    ViolationUnderStaffed,
					GroupID: grp.ID,
					Message: fmt.Sprintf("Unterbesetzung in %s am %s: %d von %d besetzt",
						grp.Name, day.LabelDE(), len(assignees), required),
				})
			}

			hasLead := false
			for _, id := range assignees {
				if emp := snap.EmployeeByID(id); emp != nil && emp.Role == model.RoleErstkraft {
					hasLead = true
					break
				}
			}
			if !hasLead {
				violations = append(violations, Violation{
					Kind:    ViolationNoLead,
					GroupID: grp.ID,
					Message: fmt.Sprintf("Keine Erstkraft in %s am %s", grp.Name, day.LabelDE()),
				})
			}
		}
	}

	// Double bookings
	for i := range snap.Employees {
		emp := &snap.Employees[i]
		for day := model.Monday; day <= model.Sunday; day++ {
			count := 0
			for _, shift := range shifts {
				if shift.EmployeeID == emp.ID && shift.Weekday == day {
					count++
				}
			}
			if count > 1 {
				violations = append(violations, Violation{
					Kind:       ViolationDoubleBooked,
					EmployeeID: emp.ID,
					Message:    fmt.Sprintf("%s ist am %s mehrfach eingeplant", emp.Name, day.LabelDE()),
				})
			}
		}
	}

	// Weekly hours against the contract, half an hour of tolerance
	for i := range snap.Employees {
		emp := &snap.Employees[i]
		if emp.ContractHours <= 0 {
			continue
		}
		total := 0.0
		for _, shift := range shifts {
			if shift.EmployeeID != emp.ID {
				continue
			}
			if tpl, ok := findTemplate(templates, shift.Template); ok {
				total += tpl.Hours()
			}
		}
		if total > emp.ContractHours+0.5 {
			violations = append(violations, Violation{
				Kind:       ViolationOverHours,
				EmployeeID: emp.ID,
				Message: fmt.Sprintf("%s: %.1f Std. geplant bei %.1f Vertragsstunden",
					emp.Name, total, emp.ContractHours),
			})
		}
	}

	// Hard restrictions and absences per shift
	for _, shift := range shifts {
		emp := snap.EmployeeByID(shift.EmployeeID)
		grp := snap.GroupByID(shift.GroupID)
		if emp == nil || grp == nil {
			continue
		}

		if !emp.Area.Covers(grp.Area) {
			violations = append(violations, restrictionViolation(emp, shift,
				fmt.Sprintf("%s gehört nicht zum Bereich %s", emp.Name, grp.Area)))
		}
		if pinned, ok := emp.OnlyArea(); ok && pinned != grp.Area {
			violations = append(violations, restrictionViolation(emp, shift,
				fmt.Sprintf("%s ist auf den Bereich %s festgelegt", emp.Name, pinned)))
		}
		if emp.NoEarlyShift() && shift.Template == model.TemplateEarly {
			violations = append(violations, restrictionViolation(emp, shift,
				fmt.Sprintf("%s darf keinen Frühdienst übernehmen (%s)", emp.Name, shift.Weekday.LabelDE())))
		}
		if emp.NoLateShift() && shift.Template == model.TemplateLate {
			violations = append(violations, restrictionViolation(emp, shift,
				fmt.Sprintf("%s darf keinen Spätdienst übernehmen (%s)", emp.Name, shift.Weekday.LabelDE())))
		}
		for _, off := range emp.FixedDaysOff() {
			if off == shift.Weekday {
				violations = append(violations, restrictionViolation(emp, shift,
					fmt.Sprintf("%s hat am %s einen festen freien Tag", emp.Name, shift.Weekday.LabelDE())))
			}
		}

		if !weekStart.IsZero() {
			date := weekStart.AddDays(int(shift.Weekday))
			for _, absence := range snap.Absences {
				if absence.EmployeeID == emp.ID && absence.Covers(date) {
					violations = append(violations, Violation{
						Kind:       ViolationAbsent,
						EmployeeID: emp.ID,
						GroupID:    shift.GroupID,
						Message:    fmt.Sprintf("%s ist am %s abwesend, aber eingeplant", emp.Name, shift.Weekday.LabelDE()),
					})
					break
				}
			}
		}
	}

	return violations
}

func restrictionViolation(emp *model.Employee, shift model.Shift, message string) Violation {
	return Violation{
		Kind:       ViolationRestriction,
		EmployeeID: emp.ID,
		GroupID:    shift.GroupID,
		Message:    message,
	}
}
