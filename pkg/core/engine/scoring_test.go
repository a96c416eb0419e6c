package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kitawerk/dienstplan/pkg/core/model"
)

func TestScore_Coverage(t *testing.T) {
	// 1:1 ratio, four children every operating day: 20 required slots
	snap := &model.Snapshot{
		Week: "2025-W10",
		Employees: []model.Employee{
			fullTimer("e1", model.RoleErstkraft, model.AreaKrippe),
			fullTimer("e2", model.RoleZweitkraft, model.AreaKrippe),
			fullTimer("e3", model.RoleZweitkraft, model.AreaKrippe),
			fullTimer("e4", model.RoleZweitkraft, model.AreaKrippe),
		},
		Groups: []model.Group{
			{ID: "kr1", Name: "Sonnenkäfer", Area: model.AreaKrippe, Capacity: 4, Ratio: model.Ratio{Num: 1, Den: 1}},
		},
		Attendance: []model.Attendance{
			{GroupID: "kr1", Weekday: model.Monday, Children: 4},
			{GroupID: "kr1", Weekday: model.Tuesday, Children: 4},
			{GroupID: "kr1", Weekday: model.Wednesday, Children: 4},
			{GroupID: "kr1", Weekday: model.Thursday, Children: 4},
			{GroupID: "kr1", Weekday: model.Friday, Children: 4},
		},
	}

	// All four staffed Monday through Thursday, only two on Friday: 18 of 20
	var shifts []model.Shift
	for day := model.Monday; day <= model.Thursday; day++ {
		for _, id := range []string{"e1", "e2", "e3", "e4"} {
			shifts = append(shifts, model.Shift{EmployeeID: id, GroupID: "kr1", Weekday: day, Template: model.TemplateMid})
		}
	}
	shifts = append(shifts,
		model.Shift{EmployeeID: "e1", GroupID: "kr1", Weekday: model.Friday, Template: model.TemplateMid},
		model.Shift{EmployeeID: "e2", GroupID: "kr1", Weekday: model.Friday, Template: model.TemplateMid},
	)

	scores := Score(snap, shifts)
	assert.Equal(t, 90.0, scores.Coverage)
}

func TestScore_CoverageFullWhenNothingRequired(t *testing.T) {
	snap := &model.Snapshot{
		Week:      "2025-W10",
		Employees: []model.Employee{fullTimer("anna", model.RoleErstkraft, model.AreaKrippe)},
		Groups:    []model.Group{krippeGroup()},
	}

	scores := Score(snap, nil)
	assert.Equal(t, 100.0, scores.Coverage)
}

func TestScore_CoverageCapsOverAssignment(t *testing.T) {
	snap := &model.Snapshot{
		Week: "2025-W10",
		Employees: []model.Employee{
			fullTimer("anna", model.RoleErstkraft, model.AreaKrippe),
			fullTimer("ben", model.RoleZweitkraft, model.AreaKrippe),
		},
		Groups: []model.Group{krippeGroup()},
		Attendance: []model.Attendance{
			// 4 children at 1:4 need exactly one educator
			{GroupID: "kr1", Weekday: model.Monday, Children: 4},
		},
	}

	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateMid},
		{EmployeeID: "ben", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateMid},
	}

	scores := Score(snap, shifts)
	assert.Equal(t, 100.0, scores.Coverage)
}

func TestScore_FairnessRewardsEvenSpread(t *testing.T) {
	snap := &model.Snapshot{
		Week: "2025-W10",
		Employees: []model.Employee{
			fullTimer("anna", model.RoleErstkraft, model.AreaKrippe),
			fullTimer("ben", model.RoleZweitkraft, model.AreaKrippe),
		},
		Groups: []model.Group{krippeGroup()},
	}

	even := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
		{EmployeeID: "ben", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
	}
	assert.Equal(t, 100.0, Score(snap, even).Fairness)

	// anna works 8 hours, ben none: ratios 0.2 and 0.0, stddev 0.1
	uneven := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
	}
	assert.InDelta(t, 90.0, Score(snap, uneven).Fairness, 1e-9)
}

func TestScore_FairnessScaleIsConfigurable(t *testing.T) {
	snap := &model.Snapshot{
		Week: "2025-W10",
		Employees: []model.Employee{
			fullTimer("anna", model.RoleErstkraft, model.AreaKrippe),
			fullTimer("ben", model.RoleZweitkraft, model.AreaKrippe),
		},
		Groups:        []model.Group{krippeGroup()},
		FairnessScale: 50,
	}

	// stddev 0.1 at half the default scale only costs five points
	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
	}
	assert.InDelta(t, 95.0, Score(snap, shifts).Fairness, 1e-9)
}

func TestScore_FairnessIgnoresZeroContracts(t *testing.T) {
	mini := fullTimer("mini", model.RoleZweitkraft, model.AreaKrippe)
	mini.ContractHours = 0

	snap := &model.Snapshot{
		Week: "2025-W10",
		Employees: []model.Employee{
			fullTimer("anna", model.RoleErstkraft, model.AreaKrippe),
			fullTimer("ben", model.RoleZweitkraft, model.AreaKrippe),
			mini,
		},
		Groups: []model.Group{krippeGroup()},
	}

	// anna and ben are perfectly even, mini has no meaningful ratio
	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
		{EmployeeID: "ben", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
		{EmployeeID: "mini", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateShort},
	}
	assert.Equal(t, 100.0, Score(snap, shifts).Fairness)
}

func TestScore_PreferenceCountsSatisfiedShifts(t *testing.T) {
	prefEarly := fullTimer("anna", model.RoleErstkraft, model.AreaKrippe)
	prefEarly.Restrictions = []model.Restriction{
		{Kind: model.RestrictionPreferredTemplate, Value: "early"},
	}

	snap := &model.Snapshot{
		Week: "2025-W10",
		Employees: []model.Employee{
			prefEarly,
			fullTimer("ben", model.RoleZweitkraft, model.AreaKrippe),
		},
		Groups: []model.Group{krippeGroup()},
	}

	// anna's early shift satisfies her preference, ben has none to satisfy
	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
		{EmployeeID: "ben", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateMid},
	}
	assert.InDelta(t, 50.0, Score(snap, shifts).Preference, 1e-9)

	assert.Equal(t, 100.0, Score(snap, nil).Preference)
}

func TestScore_PreferenceSeesColleagueInSameCell(t *testing.T) {
	withColleague := fullTimer("anna", model.RoleErstkraft, model.AreaKrippe)
	withColleague.Restrictions = []model.Restriction{
		{Kind: model.RestrictionPreferredColleague, Value: "ben"},
	}

	snap := &model.Snapshot{
		Week: "2025-W10",
		Employees: []model.Employee{
			withColleague,
			fullTimer("ben", model.RoleZweitkraft, model.AreaKrippe),
		},
		Groups: []model.Group{krippeGroup()},
	}

	together := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateMid},
		{EmployeeID: "ben", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateMid},
	}
	assert.InDelta(t, 50.0, Score(snap, together).Preference, 1e-9)

	// On different days the colleague preference is not met
	apart := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateMid},
		{EmployeeID: "ben", GroupID: "kr1", Weekday: model.Tuesday, Template: model.TemplateMid},
	}
	assert.Equal(t, 0.0, Score(snap, apart).Preference)
}

func TestScore_ComplianceCountsViolations(t *testing.T) {
	snap := &model.Snapshot{
		Week: "2025-W10",
		Employees: []model.Employee{
			fullTimer("z1", model.RoleZweitkraft, model.AreaKrippe),
			fullTimer("z2", model.RoleZweitkraft, model.AreaKrippe),
		},
		Groups: []model.Group{krippeGroup()},
		Attendance: []model.Attendance{
			// 12 children at 1:4 need three staff
			{GroupID: "kr1", Weekday: model.Monday, Children: 12},
		},
	}

	// Two assistants and no lead: one under-staffing and one missing-lead
	// violation against 3 required slots + 2 employees
	shifts := []model.Shift{
		{EmployeeID: "z1", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
		{EmployeeID: "z2", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateLate},
	}

	scores := Score(snap, shifts)
	assert.InDelta(t, 60.0, scores.Compliance, 1e-9)
}

func TestScore_CompliancePerfectPlan(t *testing.T) {
	snap := &model.Snapshot{
		Week: "2025-W10",
		Employees: []model.Employee{
			fullTimer("anna", model.RoleErstkraft, model.AreaKrippe),
		},
		Groups: []model.Group{krippeGroup()},
		Attendance: []model.Attendance{
			{GroupID: "kr1", Weekday: model.Monday, Children: 4},
		},
	}

	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateMid},
	}

	scores := Score(snap, shifts)
	assert.Equal(t, 100.0, scores.Compliance)
	assert.Equal(t, 100.0, scores.Coverage)
}
