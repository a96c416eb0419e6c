package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitawerk/dienstplan/pkg/core/model"
)

func TestValidateAssignments_CleanPlan(t *testing.T) {
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

	assert.Empty(t, ValidateAssignments(snap, shifts))
}

func TestValidateAssignments_UnderStaffedAndMissingLead(t *testing.T) {
	snap := &model.Snapshot{
		Week: "2025-W10",
		Employees: []model.Employee{
			fullTimer("z1", model.RoleZweitkraft, model.AreaKrippe),
			fullTimer("z2", model.RoleZweitkraft, model.AreaKrippe),
		},
		Groups: []model.Group{krippeGroup()},
		Attendance: []model.Attendance{
			{GroupID: "kr1", Weekday: model.Monday, Children: 12},
		},
	}
	shifts := []model.Shift{
		{EmployeeID: "z1", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
		{EmployeeID: "z2", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateLate},
	}

	violations := ValidateAssignments(snap, shifts)
	require.Len(t, violations, 2)

	assert.Equal(t, ViolationUnderStaffed, violations[0].Kind)
	assert.Equal(t, "kr1", violations[0].GroupID)
	assert.Equal(t, "Unterbesetzung in Sonnenkäfer am Montag: 2 von 3 besetzt", violations[0].Message)

	assert.Equal(t, ViolationNoLead, violations[1].Kind)
	assert.Equal(t, "Keine Erstkraft in Sonnenkäfer am Montag", violations[1].Message)
}

func TestValidateAssignments_DoubleBooked(t *testing.T) {
	anna := fullTimer("anna", model.RoleErstkraft, model.AreaKrippe)
	anna.Name = "Anna Muster"

	snap := &model.Snapshot{
		Week:      "2025-W10",
		Employees: []model.Employee{anna},
		Groups:    []model.Group{krippeGroup()},
	}
	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateMid},
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateLate},
	}

	violations := ValidateAssignments(snap, shifts)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationDoubleBooked, violations[0].Kind)
	assert.Equal(t, "anna", violations[0].EmployeeID)
	assert.Equal(t, "Anna Muster ist am Montag mehrfach eingeplant", violations[0].Message)
}

func TestValidateAssignments_OverContractHours(t *testing.T) {
	anna := fullTimer("anna", model.RoleZweitkraft, model.AreaKrippe)
	anna.Name = "Anna Muster"
	anna.ContractHours = 8

	snap := &model.Snapshot{
		Week:      "2025-W10",
		Employees: []model.Employee{anna},
		Groups:    []model.Group{krippeGroup()},
	}
	// Two early shifts are 16 hours against an 8 hour contract
	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Tuesday, Template: model.TemplateEarly},
	}

	violations := ValidateAssignments(snap, shifts)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationOverHours, violations[0].Kind)
	assert.Equal(t, "Anna Muster: 16.0 Std. geplant bei 8.0 Vertragsstunden", violations[0].Message)
}

func TestValidateAssignments_HalfHourTolerance(t *testing.T) {
	anna := fullTimer("anna", model.RoleZweitkraft, model.AreaKrippe)
	anna.ContractHours = 7.5

	snap := &model.Snapshot{
		Week:      "2025-W10",
		Employees: []model.Employee{anna},
		Groups:    []model.Group{krippeGroup()},
	}
	// One early shift is 8 hours, exactly at contract + 0.5
	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
	}

	assert.Empty(t, ValidateAssignments(snap, shifts))
}

func TestValidateAssignments_TemplateRestriction(t *testing.T) {
	anna := fullTimer("anna", model.RoleZweitkraft, model.AreaKrippe)
	anna.Name = "Anna Muster"
	anna.Restrictions = []model.Restriction{{Kind: model.RestrictionNoEarlyShift}}

	snap := &model.Snapshot{
		Week:      "2025-W10",
		Employees: []model.Employee{anna},
		Groups:    []model.Group{krippeGroup()},
	}
	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateEarly},
	}

	violations := ValidateAssignments(snap, shifts)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationRestriction, violations[0].Kind)
	assert.Equal(t, "Anna Muster darf keinen Frühdienst übernehmen (Montag)", violations[0].Message)
}

func TestValidateAssignments_FixedDayOffRestriction(t *testing.T) {
	anna := fullTimer("anna", model.RoleZweitkraft, model.AreaKrippe)
	anna.Name = "Anna Muster"
	anna.Restrictions = []model.Restriction{{Kind: model.RestrictionFixedDayOff, Value: "friday"}}

	snap := &model.Snapshot{
		Week:      "2025-W10",
		Employees: []model.Employee{anna},
		Groups:    []model.Group{krippeGroup()},
	}
	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Friday, Template: model.TemplateMid},
	}

	violations := ValidateAssignments(snap, shifts)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationRestriction, violations[0].Kind)
	assert.Equal(t, "Anna Muster hat am Freitag einen festen freien Tag", violations[0].Message)
}

func TestValidateAssignments_AreaMismatch(t *testing.T) {
	anna := fullTimer("anna", model.RoleZweitkraft, model.AreaElementar)
	anna.Name = "Anna Muster"

	snap := &model.Snapshot{
		Week:      "2025-W10",
		Employees: []model.Employee{anna},
		Groups:    []model.Group{krippeGroup()},
	}
	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Monday, Template: model.TemplateMid},
	}

	violations := ValidateAssignments(snap, shifts)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationRestriction, violations[0].Kind)
	assert.Equal(t, "Anna Muster gehört nicht zum Bereich krippe", violations[0].Message)
}

func TestValidateAssignments_AbsentButScheduled(t *testing.T) {
	anna := fullTimer("anna", model.RoleErstkraft, model.AreaKrippe)
	anna.Name = "Anna Muster"

	snap := &model.Snapshot{
		Week:      "2025-W10",
		Employees: []model.Employee{anna},
		Groups:    []model.Group{krippeGroup()},
		Absences: []model.Absence{
			{
				EmployeeID: "anna",
				Start:      model.NewDate(2025, 3, 5),
				End:        model.NewDate(2025, 3, 7),
				Type:       model.AbsenceUrlaub,
			},
		},
	}
	shifts := []model.Shift{
		{EmployeeID: "anna", GroupID: "kr1", Weekday: model.Wednesday, Template: model.TemplateMid},
	}

	violations := ValidateAssignments(snap, shifts)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationAbsent, violations[0].Kind)
	assert.Equal(t, "Anna Muster ist am Mittwoch abwesend, aber eingeplant", violations[0].Message)
}
