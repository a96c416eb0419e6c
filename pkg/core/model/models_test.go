package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("07:00")
	require.NoError(t, err)
	assert.Equal(t, 420, minutes)

	minutes, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, minutes)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("7h30")
	assert.Error(t, err)
}

func TestShiftTemplate_Hours(t *testing.T) {
	byID := map[TemplateID]ShiftTemplate{}
	for _, tpl := range DefaultTemplates() {
		byID[tpl.ID] = tpl
	}

	// Working windows net of the half hour break
	assert.Equal(t, 8.0, byID[TemplateEarly].Hours())
	assert.Equal(t, 7.5, byID[TemplateMid].Hours())
	assert.Equal(t, 8.0, byID[TemplateLate].Hours())
	// The short window has no break
	assert.Equal(t, 6.0, byID[TemplateShort].Hours())

	assert.Equal(t, "07:00-15:30", byID[TemplateEarly].Window())
}

func TestTemplateID_LabelDE(t *testing.T) {
	assert.Equal(t, "Frühdienst", TemplateEarly.LabelDE())
	assert.Equal(t, "Mitteldienst", TemplateMid.LabelDE())
	assert.Equal(t, "Spätdienst", TemplateLate.LabelDE())
	assert.Equal(t, "Kurzdienst", TemplateShort.LabelDE())
}

func TestWeekday_ParseAndLabels(t *testing.T) {
	day, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, Monday, day)

	day, err = ParseWeekday(" Friday ")
	require.NoError(t, err)
	assert.Equal(t, Friday, day)

	_, err = ParseWeekday("montag")
	assert.Error(t, err)

	assert.Equal(t, "Montag", Monday.LabelDE())
	assert.Equal(t, "Mi", Wednesday.ShortDE())
	assert.Equal(t, "sunday", Sunday.String())
}

func TestWeekday_JSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(Wednesday)
	require.NoError(t, err)
	assert.Equal(t, `"wednesday"`, string(out))

	var day Weekday
	require.NoError(t, json.Unmarshal([]byte(`"friday"`), &day))
	assert.Equal(t, Friday, day)

	assert.Error(t, json.Unmarshal([]byte(`"someday"`), &day))
}

func TestDate_ParseAndCompare(t *testing.T) {
	day, err := ParseDate("2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, 3, 3), day)
	assert.Equal(t, "2025-03-03", day.String())

	assert.True(t, day.Before(NewDate(2025, 3, 4)))
	assert.True(t, day.AddDays(4).Equal(NewDate(2025, 3, 7)))

	_, err = ParseDate("03.03.2025")
	assert.Error(t, err)
}

func TestAbsence_CoversInclusiveRange(t *testing.T) {
	absence := Absence{
		EmployeeID: "anna",
		Start:      NewDate(2025, 3, 4),
		End:        NewDate(2025, 3, 6),
		Type:       AbsenceUrlaub,
	}

	assert.False(t, absence.Covers(NewDate(2025, 3, 3)))
	assert.True(t, absence.Covers(NewDate(2025, 3, 4)))
	assert.True(t, absence.Covers(NewDate(2025, 3, 5)))
	assert.True(t, absence.Covers(NewDate(2025, 3, 6)))
	assert.False(t, absence.Covers(NewDate(2025, 3, 7)))
}

func TestEmployee_DailyTargetHours(t *testing.T) {
	emp := Employee{ContractHours: 38.5, ContractDays: 5}
	assert.Equal(t, 7.7, emp.DailyTargetHours())

	zero := Employee{ContractHours: 20, ContractDays: 0}
	assert.Equal(t, 0.0, zero.DailyTargetHours())
}

func TestEmployee_RestrictionAccessors(t *testing.T) {
	emp := Employee{
		ID: "anna",
		Restrictions: []Restriction{
			{Kind: RestrictionNoEarlyShift},
			{Kind: RestrictionFixedDayOff, Value: "friday"},
			{Kind: RestrictionFixedDayOff, Value: "saturday"},
			{Kind: RestrictionMaxConsecutiveDays, Value: "4"},
			{Kind: RestrictionOnlyArea, Value: "krippe"},
			{Kind: RestrictionPreferredTemplate, Value: "early"},
			{Kind: RestrictionPreferredColleague, Value: "ben"},
			{Kind: RestrictionPreferredColleague, Value: "carla"},
		},
	}

	assert.True(t, emp.NoEarlyShift())
	assert.False(t, emp.NoLateShift())
	assert.Equal(t, []Weekday{Friday, Saturday}, emp.FixedDaysOff())

	limit, ok := emp.MaxConsecutiveDays()
	assert.True(t, ok)
	assert.Equal(t, 4, limit)

	area, ok := emp.OnlyArea()
	assert.True(t, ok)
	assert.Equal(t, AreaKrippe, area)

	tpl, ok := emp.PreferredTemplate()
	assert.True(t, ok)
	assert.Equal(t, TemplateEarly, tpl)

	assert.Equal(t, []string{"ben", "carla"}, emp.PreferredColleagues())
}

func TestEmployee_AccessorsOnBadValues(t *testing.T) {
	emp := Employee{
		Restrictions: []Restriction{
			{Kind: RestrictionMaxConsecutiveDays, Value: "many"},
			{Kind: RestrictionOnlyArea, Value: "kitchen"},
			{Kind: RestrictionPreferredTemplate, Value: "night"},
		},
	}

	_, ok := emp.MaxConsecutiveDays()
	assert.False(t, ok)
	_, ok = emp.OnlyArea()
	assert.False(t, ok)
	_, ok = emp.PreferredTemplate()
	assert.False(t, ok)
}

func TestRestrictionKind_Classification(t *testing.T) {
	assert.True(t, RestrictionNoEarlyShift.IsHard())
	assert.True(t, RestrictionFixedDayOff.IsHard())
	assert.True(t, RestrictionOnlyArea.IsHard())
	assert.False(t, RestrictionPreferredTemplate.IsHard())
	assert.False(t, RestrictionPreferredColleague.IsHard())
	assert.False(t, RestrictionKind("no_weekends").IsHard())
}

func TestArea_Covers(t *testing.T) {
	assert.True(t, AreaKrippe.Covers(AreaKrippe))
	assert.False(t, AreaKrippe.Covers(AreaElementar))
	assert.True(t, AreaBoth.Covers(AreaKrippe))
	assert.True(t, AreaBoth.Covers(AreaElementar))
}

func TestQualityLabel(t *testing.T) {
	assert.Equal(t, "Sehr gut", QualityLabel(100))
	assert.Equal(t, "Sehr gut", QualityLabel(90))
	assert.Equal(t, "Gut", QualityLabel(82.5))
	assert.Equal(t, "Ausreichend", QualityLabel(74.9))
	assert.Equal(t, "Ausreichend", QualityLabel(50))
	assert.Equal(t, "Mangelhaft", QualityLabel(49.9))
}

func TestSnapshot_Lookups(t *testing.T) {
	snap := &Snapshot{
		Week: "2025-W10",
		Employees: []Employee{
			{ID: "anna"}, {ID: "ben"},
		},
		Groups: []Group{
			{ID: "kr1"}, {ID: "el1"},
		},
		Attendance: []Attendance{
			{GroupID: "kr1", Weekday: Monday, Children: 12},
		},
	}

	require.NotNil(t, snap.EmployeeByID("ben"))
	assert.Nil(t, snap.EmployeeByID("ghost"))
	require.NotNil(t, snap.GroupByID("el1"))
	assert.Nil(t, snap.GroupByID("ghost"))

	children, ok := snap.ExpectedChildren("kr1", Monday)
	assert.True(t, ok)
	assert.Equal(t, 12, children)

	// No entry means the group is closed that day
	_, ok = snap.ExpectedChildren("kr1", Tuesday)
	assert.False(t, ok)
}
