package engine

import (
	"fmt"

	"github.com/kitawerk/dienstplan/pkg/core/model"
)

// ConfigError reports snapshot problems that make a run impossible. It is
// returned before any assignment is attempted.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid snapshot: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid snapshot: %d problems, first: %s", len(e.Problems), e.Problems[0])
}

// ValidateSnapshot checks the snapshot for configuration errors: malformed
// ratios, negative contract hours, broken template definitions and dangling
// references. It returns a ConfigError listing every problem found, or nil.
func ValidateSnapshot(snap *model.Snapshot) error {
	var problems []string

	if snap == nil {
		return &ConfigError{Problems: []string{"snapshot is nil"}}
	}

	if snap.Week == "" {
		problems = append(problems, "week is missing")
	} else if snap.WeekStart.IsZero() {
		if _, err := model.ISOWeekStart(snap.Week); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if snap.FairnessScale < 0 {
		problems = append(problems, "fairnessScale must not be negative")
	}

	problems = append(problems, checkTemplates(snap)...)
	problems = append(problems, checkGroups(snap)...)
	problems = append(problems, checkEmployees(snap)...)
	problems = append(problems, checkAbsences(snap)...)
	problems = append(problems, checkAttendance(snap)...)

	for _, day := range snap.OperatingDays {
		if !day.IsValid() {
			problems = append(problems, fmt.Sprintf("invalid operating day %d", int(day)))
		}
	}

	for id, streak := range snap.PriorWeekStreak {
		if streak < 0 {
			problems = append(problems, fmt.Sprintf("priorWeekStreak for %q must not be negative", id))
		}
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}

func checkTemplates(snap *model.Snapshot) []string {
	if len(snap.Templates) == 0 {
		return nil
	}

	var problems []string
	seen := make(map[model.TemplateID]bool)

	for i, tpl := range snap.Templates {
		where := fmt.Sprintf("template %d (%s)", i, tpl.ID)

		if !tpl.ID.IsValid() {
			problems = append(problems, fmt.Sprintf("%s: unknown template ID", where))
			continue
		}
		if seen[tpl.ID] {
			problems = append(problems, fmt.Sprintf("%s: duplicate template ID", where))
		}
		seen[tpl.ID] = true

		start, startErr := model.ParseClock(tpl.Start)
		if startErr != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", where, startErr))
		}
		end, endErr := model.ParseClock(tpl.End)
		if endErr != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", where, endErr))
		}
		if startErr != nil || endErr != nil {
			continue
		}
		if start >= end {
			problems = append(problems, fmt.Sprintf("%s: start %s is not before end %s", where, tpl.Start, tpl.End))
			continue
		}

		if tpl.BreakMinutes < 0 {
			problems = append(problems, fmt.Sprintf("%s: negative break", where))
		}
		if tpl.BreakMinutes > 0 {
			if tpl.BreakStart == "" {
				problems = append(problems, fmt.Sprintf("%s: break minutes without break start", where))
			} else if breakStart, err := model.ParseClock(tpl.BreakStart); err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", where, err))
			} else if breakStart < start || breakStart+tpl.BreakMinutes > end {
				problems = append(problems, fmt.Sprintf("%s: break outside working window", where))
			}
		}
	}

	// Overrides must replace the whole catalog so every pick has a target
	for _, id := range []model.TemplateID{model.TemplateEarly, model.TemplateMid, model.TemplateLate, model.TemplateShort} {
		if !seen[id] {
			problems = append(problems, fmt.Sprintf("template catalog is missing %q", id))
		}
	}

	return problems
}

func checkGroups(snap *model.Snapshot) []string {
	var problems []string
	seen := make(map[string]bool)

	for i, grp := range snap.Groups {
		where := fmt.Sprintf("group %d (%s)", i, grp.ID)

		if grp.ID == "" {
			problems = append(problems, fmt.Sprintf("%s: missing ID", where))
		} else if seen[grp.ID] {
			problems = append(problems, fmt.Sprintf("%s: duplicate group ID", where))
		}
		seen[grp.ID] = true

		if grp.Area != model.AreaKrippe && grp.Area != model.AreaElementar {
			problems = append(problems, fmt.Sprintf("%s: group area must be krippe or elementar", where))
		}
		if grp.Ratio.Num < 1 || grp.Ratio.Den < 1 {
			problems = append(problems, fmt.Sprintf("%s: invalid staffing ratio %s", where, grp.Ratio))
		}
		if grp.Capacity < 0 {
			problems = append(problems, fmt.Sprintf("%s: negative capacity", where))
		}
	}

	return problems
}

func checkEmployees(snap *model.Snapshot) []string {
	var problems []string
	seen := make(map[string]bool)

	for i := range snap.Employees {
		emp := &snap.Employees[i]
		where := fmt.Sprintf("employee %d (%s)", i, emp.ID)

		if emp.ID == "" {
			problems = append(problems, fmt.Sprintf("%s: missing ID", where))
		} else if seen[emp.ID] {
			problems = append(problems, fmt.Sprintf("%s: duplicate employee ID", where))
		}
		seen[emp.ID] = true

		if !emp.Role.IsValid() {
			problems = append(problems, fmt.Sprintf("%s: unknown role %q", where, emp.Role))
		}
		if !emp.Area.IsValid() {
			problems = append(problems, fmt.Sprintf("%s: unknown area %q", where, emp.Area))
		}
		if emp.ContractHours < 0 {
			problems = append(problems, fmt.Sprintf("%s: negative contract hours", where))
		}
		if emp.ContractDays < 1 || emp.ContractDays > 7 {
			problems = append(problems, fmt.Sprintf("%s: contract days must be between 1 and 7", where))
		}

		problems = append(problems, checkRestrictions(snap, emp, where)...)
	}

	return problems
}

func checkRestrictions(snap *model.Snapshot, emp *model.Employee, where string) []string {
	var problems []string

	for _, r := range emp.Restrictions {
		switch r.Kind {
		case model.RestrictionNoEarlyShift, model.RestrictionNoLateShift:
			// No value needed
		case model.RestrictionFixedDayOff:
			if _, err := model.ParseWeekday(r.Value); err != nil {
				problems = append(problems, fmt.Sprintf("%s: fixed_day_off: %v", where, err))
			}
		case model.RestrictionMaxConsecutiveDays:
			if _, ok := emp.MaxConsecutiveDays(); !ok {
				problems = append(problems, fmt.Sprintf("%s: max_consecutive_days needs a positive number, got %q", where, r.Value))
			}
		case model.RestrictionOnlyArea:
			if _, ok := emp.OnlyArea(); !ok {
				problems = append(problems, fmt.Sprintf("%s: only_area needs krippe or elementar, got %q", where, r.Value))
			}
		case model.RestrictionPreferredTemplate:
			if _, ok := emp.PreferredTemplate(); !ok {
				problems = append(problems, fmt.Sprintf("%s: preferred_template needs a template ID, got %q", where, r.Value))
			}
		case model.RestrictionPreferredColleague:
			if r.Value == "" || snap.EmployeeByID(r.Value) == nil {
				problems = append(problems, fmt.Sprintf("%s: preferred_colleague %q is not on the roster", where, r.Value))
			}
		default:
			problems = append(problems, fmt.Sprintf("%s: unknown restriction kind %q", where, r.Kind))
		}
	}

	return problems
}

func checkAbsences(snap *model.Snapshot) []string {
	var problems []string

	for i, absence := range snap.Absences {
		where := fmt.Sprintf("absence %d", i)

		if snap.EmployeeByID(absence.EmployeeID) == nil {
			problems = append(problems, fmt.Sprintf("%s: employee %q is not on the roster", where, absence.EmployeeID))
		}
		if !absence.Type.IsValid() {
			problems = append(problems, fmt.Sprintf("%s: unknown absence type %q", where, absence.Type))
		}
		if absence.Start.IsZero() || absence.End.IsZero() {
			problems = append(problems, fmt.Sprintf("%s: missing start or end date", where))
		} else if absence.End.Before(absence.Start) {
			problems = append(problems, fmt.Sprintf("%s: end %s before start %s", where, absence.End, absence.Start))
		}
	}

	return problems
}

func checkAttendance(snap *model.Snapshot) []string {
	var problems []string

	for i, att := range snap.Attendance {
		where := fmt.Sprintf("attendance %d", i)

		if snap.GroupByID(att.GroupID) == nil {
			problems = append(problems, fmt.Sprintf("%s: group %q does not exist", where, att.GroupID))
		}
		if !att.Weekday.IsValid() {
			problems = append(problems, fmt.Sprintf("%s: invalid weekday", where))
		}
		if att.Children < 0 {
			problems = append(problems, fmt.Sprintf("%s: negative child count", where))
		}
	}

	return problems
}
