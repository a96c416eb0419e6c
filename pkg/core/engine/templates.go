package engine

import "github.com/kitawerk/dienstplan/pkg/core/model"

// partTimeDailyHours is the daily target below which an employee only works
// the short template. A full early or late shift does not fit into a
// part-time day.
const partTimeDailyHours = 6.5

func isPartTime(emp *model.Employee) bool {
	return emp.DailyTargetHours() < partTimeDailyHours
}

// selectableTemplates lists the templates the picker may choose for an
// employee, in catalog order. Part-timers are limited to the short template,
// everyone else gets the catalog minus their template restrictions. The short
// template cannot be restricted away, so the result is never empty.
func (st *State) selectableTemplates(emp *model.Employee) []model.ShiftTemplate {
	if isPartTime(emp) {
		for _, tpl := range st.templates {
			if tpl.ID == model.TemplateShort {
				return []model.ShiftTemplate{tpl}
			}
		}
	}

	var allowed []model.ShiftTemplate
	for _, tpl := range st.templates {
		if templateAllowed(emp, tpl) {
			allowed = append(allowed, tpl)
		}
	}
	return allowed
}

// pickTemplate chooses the best fitting template for a picked employee.
// Order of precedence: the part-time rule, the employee's own preference,
// the day's unmet early and late coverage targets, then the mid template so
// the edge windows are not over-assigned. Remaining ties fall back to
// catalog order.
func (st *State) pickTemplate(emp *model.Employee, day model.Weekday) model.ShiftTemplate {
	selectable := st.selectableTemplates(emp)
	if len(selectable) == 1 {
		return selectable[0]
	}

	if pref, ok := emp.PreferredTemplate(); ok {
		if tpl, found := findTemplate(selectable, pref); found {
			return tpl
		}
	}

	if st.earlyCount[day] < st.earlyTarget[day] {
		if tpl, found := findTemplate(selectable, model.TemplateEarly); found {
			return tpl
		}
	}
	if st.lateCount[day] < st.lateTarget[day] {
		if tpl, found := findTemplate(selectable, model.TemplateLate); found {
			return tpl
		}
	}

	if tpl, found := findTemplate(selectable, model.TemplateMid); found {
		return tpl
	}
	return selectable[0]
}

func findTemplate(templates []model.ShiftTemplate, id model.TemplateID) (model.ShiftTemplate, bool) {
	for _, tpl := range templates {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return model.ShiftTemplate{}, false
}
