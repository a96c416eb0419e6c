package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Role is an employee's qualification level
type Role string

const (
	RoleErstkraft  Role = "erstkraft"
	RoleZweitkraft Role = "zweitkraft"
)

func (r Role) IsValid() bool {
	return r == RoleErstkraft || r == RoleZweitkraft
}

// Area is a care area within the facility
type Area string

const (
	AreaKrippe    Area = "krippe"
	AreaElementar Area = "elementar"
	AreaBoth      Area = "both"
)

func (a Area) IsValid() bool {
	return a == AreaKrippe || a == AreaElementar || a == AreaBoth
}

// Covers reports whether an employee with this area may serve the given group area
func (a Area) Covers(groupArea Area) bool {
	return a == AreaBoth || a == groupArea
}

// Weekday numbers days Monday (0) through Sunday (6)
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// German labels used for display, matching the facility's paper plans
var weekdayLabelsDE = [7]string{
	"Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag", "Sonntag",
}

var weekdayShortDE = [7]string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"}

func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// LabelDE returns the full German day name, e.g. "Montag"
func (d Weekday) LabelDE() string {
	if !d.IsValid() {
		return d.String()
	}
	return weekdayLabelsDE[d]
}

// ShortDE returns the two-letter German day abbreviation, e.g. "Mo"
func (d Weekday) ShortDE() string {
	if !d.IsValid() {
		return d.String()
	}
	return weekdayShortDE[d]
}

// ParseWeekday parses a lowercase English day name
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func (d Weekday) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Weekday) MarshalYAML() (interface{}, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return d.String(), nil
}

func (d *Weekday) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Date is a calendar day without a time component, serialized as 2006-01-02
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date at midnight UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a 2006-01-02 string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON overrides the embedded time.Time marshaler, which would emit a
// full RFC 3339 timestamp instead of the plain date
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", data, err)
	}
	return d.UnmarshalText([]byte(s))
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// AddDays returns the date shifted by n calendar days
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// Before reports strict calendar ordering
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// RestrictionKind names a scheduling rule attached to an employee
type RestrictionKind string

const (
	// Hard restrictions, never violated by generated schedules
	RestrictionNoEarlyShift       RestrictionKind = "no_early_shift"
	RestrictionNoLateShift        RestrictionKind = "no_late_shift"
	RestrictionFixedDayOff        RestrictionKind = "fixed_day_off"
	RestrictionMaxConsecutiveDays RestrictionKind = "max_consecutive_days"
	RestrictionOnlyArea           RestrictionKind = "only_area"

	// Soft preferences, only influence candidate ranking
	RestrictionPreferredTemplate  RestrictionKind = "preferred_template"
	RestrictionPreferredColleague RestrictionKind = "preferred_colleague"
)

func (k RestrictionKind) IsValid() bool {
	switch k {
	case RestrictionNoEarlyShift, RestrictionNoLateShift, RestrictionFixedDayOff,
		RestrictionMaxConsecutiveDays, RestrictionOnlyArea,
		RestrictionPreferredTemplate, RestrictionPreferredColleague:
		return true
	}
	return false
}

// IsHard reports whether this kind must never be violated
func (k RestrictionKind) IsHard() bool {
	switch k {
	case RestrictionPreferredTemplate, RestrictionPreferredColleague:
		return false
	}
	return k.IsValid()
}

// Restriction is a single rule for one employee. Value carries the parameter
// for kinds that take one (weekday name, day count, area, template ID or
// colleague ID) and is empty otherwise.
type Restriction struct {
	Kind  RestrictionKind `yaml:"kind" json:"kind" validate:"required"`
	Value string          `yaml:"value,omitempty" json:"value,omitempty"`
}

// Employee is a staff member on the roster
type Employee struct {
	ID            string        `yaml:"id" json:"id" validate:"required"`
	Name          string        `yaml:"name" json:"name" validate:"required"`
	Role          Role          `yaml:"role" json:"role" validate:"required"`
	Area          Area          `yaml:"area" json:"area" validate:"required"`
	ContractHours float64       `yaml:"contractHours" json:"contractHours" validate:"gte=0"`
	ContractDays  int           `yaml:"contractDays" json:"contractDays" validate:"gte=1,lte=7"`
	Restrictions  []Restriction `yaml:"restrictions,omitempty" json:"restrictions,omitempty" validate:"dive"`
}

// DailyTargetHours is the employee's contracted hours spread over their
// contracted days. Zero-hour contracts yield a zero target.
func (e *Employee) DailyTargetHours() float64 {
	if e.ContractDays <= 0 {
		return 0
	}
	return e.ContractHours / float64(e.ContractDays)
}

func (e *Employee) hasRestriction(kind RestrictionKind) bool {
	for _, r := range e.Restrictions {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

// NoEarlyShift reports whether the employee may not take the early template
func (e *Employee) NoEarlyShift() bool {
	return e.hasRestriction(RestrictionNoEarlyShift)
}

// NoLateShift reports whether the employee may not take the late template
func (e *Employee) NoLateShift() bool {
	return e.hasRestriction(RestrictionNoLateShift)
}

// FixedDaysOff returns the weekdays the employee never works.
// Unparseable values are skipped; snapshot validation rejects them upfront.
func (e *Employee) FixedDaysOff() []Weekday {
	var days []Weekday
	for _, r := range e.Restrictions {
		if r.Kind != RestrictionFixedDayOff {
			continue
		}
		if day, err := ParseWeekday(r.Value); err == nil {
			days = append(days, day)
		}
	}
	return days
}

// MaxConsecutiveDays returns the employee's consecutive working day limit
func (e *Employee) MaxConsecutiveDays() (int, bool) {
	for _, r := range e.Restrictions {
		if r.Kind != RestrictionMaxConsecutiveDays {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(r.Value), "%d", &n); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// OnlyArea returns the area the employee is pinned to, if any
func (e *Employee) OnlyArea() (Area, bool) {
	for _, r := range e.Restrictions {
		if r.Kind == RestrictionOnlyArea {
			area := Area(strings.ToLower(strings.TrimSpace(r.Value)))
			if area == AreaKrippe || area == AreaElementar {
				return area, true
			}
		}
	}
	return "", false
}

// PreferredTemplate returns the employee's preferred shift template, if any
func (e *Employee) PreferredTemplate() (TemplateID, bool) {
	for _, r := range e.Restrictions {
		if r.Kind == RestrictionPreferredTemplate {
			id := TemplateID(strings.ToLower(strings.TrimSpace(r.Value)))
			if id.IsValid() {
				return id, true
			}
		}
	}
	return "", false
}

// PreferredColleagues returns the IDs of colleagues the employee likes to work with
func (e *Employee) PreferredColleagues() []string {
	var ids []string
	for _, r := range e.Restrictions {
		if r.Kind == RestrictionPreferredColleague && r.Value != "" {
			ids = append(ids, r.Value)
		}
	}
	return ids
}

// AbsenceType categorizes an absence
type AbsenceType string

const (
	AbsenceUrlaub      AbsenceType = "urlaub"
	AbsenceKrank       AbsenceType = "krank"
	AbsenceFortbildung AbsenceType = "fortbildung"
	AbsenceSonstig     AbsenceType = "sonstig"
)

func (t AbsenceType) IsValid() bool {
	switch t {
	case AbsenceUrlaub, AbsenceKrank, AbsenceFortbildung, AbsenceSonstig:
		return true
	}
	return false
}

// Absence is a date range during which an employee is unavailable
type Absence struct {
	EmployeeID string      `yaml:"employeeId" json:"employeeId" validate:"required"`
	Start      Date        `yaml:"start" json:"start" validate:"required"`
	End        Date        `yaml:"end" json:"end" validate:"required"`
	Type       AbsenceType `yaml:"type" json:"type" validate:"required"`
	Note       string      `yaml:"note,omitempty" json:"note,omitempty"`
}

// Covers reports whether the absence includes the given day (range is inclusive)
func (a Absence) Covers(day Date) bool {
	return !day.Before(a.Start) && !day.After(a.End)
}

// Ratio is a staffing ratio of educators to children, e.g. 1:4
type Ratio struct {
	Num int `yaml:"num" json:"num" validate:"gte=1"`
	Den int `yaml:"den" json:"den" validate:"gte=1"`
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Num, r.Den)
}

// Group is a care group with its legal staffing ratio
type Group struct {
	ID       string `yaml:"id" json:"id" validate:"required"`
	Name     string `yaml:"name" json:"name" validate:"required"`
	Area     Area   `yaml:"area" json:"area" validate:"required"`
	Capacity int    `yaml:"capacity" json:"capacity" validate:"gte=0"`
	Ratio    Ratio  `yaml:"ratio" json:"ratio"`
}

// Attendance is the expected child count for a group on one weekday.
// Weekdays without an entry count as closed for that group.
type Attendance struct {
	GroupID  string  `yaml:"groupId" json:"groupId" validate:"required"`
	Weekday  Weekday `yaml:"weekday" json:"weekday"`
	Children int     `yaml:"children" json:"children" validate:"gte=0"`
}

// TemplateID names one of the fixed shift templates
type TemplateID string

const (
	TemplateEarly TemplateID = "early"
	TemplateMid   TemplateID = "mid"
	TemplateLate  TemplateID = "late"
	TemplateShort TemplateID = "short"
)

func (id TemplateID) IsValid() bool {
	switch id {
	case TemplateEarly, TemplateMid, TemplateLate, TemplateShort:
		return true
	}
	return false
}

// LabelDE returns the German shift name used on printed plans
func (id TemplateID) LabelDE() string {
	switch id {
	case TemplateEarly:
		return "Frühdienst"
	case TemplateMid:
		return "Mitteldienst"
	case TemplateLate:
		return "Spätdienst"
	case TemplateShort:
		return "Kurzdienst"
	}
	return string(id)
}

// ShiftTemplate is a named working window. Times are HH:MM strings,
// BreakStart is empty for templates without a break.
type ShiftTemplate struct {
	ID           TemplateID `yaml:"id" json:"id" validate:"required"`
	Start        string     `yaml:"start" json:"start" validate:"required"`
	End          string     `yaml:"end" json:"end" validate:"required"`
	BreakStart   string     `yaml:"breakStart,omitempty" json:"breakStart,omitempty"`
	BreakMinutes int        `yaml:"breakMinutes,omitempty" json:"breakMinutes,omitempty" validate:"gte=0"`
}

// DefaultTemplates returns the built-in template catalog in canonical order
// (early, mid, late, short)
func DefaultTemplates() []ShiftTemplate {
	return []ShiftTemplate{
		{ID: TemplateEarly, Start: "07:00", End: "15:30", BreakStart: "11:30", BreakMinutes: 30},
		{ID: TemplateMid, Start: "08:00", End: "16:00", BreakStart: "12:00", BreakMinutes: 30},
		{ID: TemplateLate, Start: "08:30", End: "17:00", BreakStart: "12:30", BreakMinutes: 30},
		{ID: TemplateShort, Start: "08:00", End: "14:00"},
	}
}

// ParseClock converts an HH:MM string to minutes since midnight
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// Hours returns the working hours of the template net of its break.
// Templates are validated at snapshot load, so parse failures count as zero.
func (t ShiftTemplate) Hours() float64 {
	start, err := ParseClock(t.Start)
	if err != nil {
		return 0
	}
	end, err := ParseClock(t.End)
	if err != nil {
		return 0
	}
	minutes := end - start - t.BreakMinutes
	if minutes < 0 {
		return 0
	}
	return float64(minutes) / 60
}

// Window formats the template's working window, e.g. "07:00-15:30"
func (t ShiftTemplate) Window() string {
	return t.Start + "-" + t.End
}

// Shift is one assignment of an employee to a group, weekday and template
type Shift struct {
	EmployeeID string     `yaml:"employeeId" json:"employeeId"`
	GroupID    string     `yaml:"groupId" json:"groupId"`
	Weekday    Weekday    `yaml:"weekday" json:"weekday"`
	Template   TemplateID `yaml:"template" json:"template"`
}

// Shortfall reports required slots that no eligible employee could fill
type Shortfall struct {
	GroupID string  `yaml:"groupId" json:"groupId"`
	Weekday Weekday `yaml:"weekday" json:"weekday"`
	Missing int     `yaml:"missing" json:"missing"`
}

// Scores are the schedule quality percentages, each in [0,100]
type Scores struct {
	Coverage   float64 `yaml:"coverage" json:"coverage"`
	Fairness   float64 `yaml:"fairness" json:"fairness"`
	Preference float64 `yaml:"preference" json:"preference"`
	Compliance float64 `yaml:"compliance" json:"compliance"`
}

// QualityLabel maps a score percentage to the German grade shown to planners
func QualityLabel(pct float64) string {
	switch {
	case pct >= 90:
		return "Sehr gut"
	case pct >= 75:
		return "Gut"
	case pct >= 50:
		return "Ausreichend"
	default:
		return "Mangelhaft"
	}
}

// ScheduleStatus is the lifecycle state of a stored schedule
type ScheduleStatus string

const (
	StatusDraft     ScheduleStatus = "draft"
	StatusPublished ScheduleStatus = "published"
	StatusArchived  ScheduleStatus = "archived"
)

func (s ScheduleStatus) IsValid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// Snapshot is the immutable input to one generation run. It is loaded
// wholesale by the caller; the engine reads it and never mutates it.
type Snapshot struct {
	Week            string          `yaml:"week" json:"week" validate:"required"`
	WeekStart       Date            `yaml:"-" json:"-"`
	OperatingDays   []Weekday       `yaml:"operatingDays,omitempty" json:"operatingDays,omitempty"`
	Templates       []ShiftTemplate `yaml:"templates,omitempty" json:"templates,omitempty" validate:"dive"`
	Employees       []Employee      `yaml:"employees" json:"employees" validate:"required,dive"`
	Groups          []Group         `yaml:"groups" json:"groups" validate:"required,dive"`
	Absences        []Absence       `yaml:"absences,omitempty" json:"absences,omitempty" validate:"dive"`
	Attendance      []Attendance    `yaml:"attendance,omitempty" json:"attendance,omitempty" validate:"dive"`
	PriorWeekStreak map[string]int  `yaml:"priorWeekStreak,omitempty" json:"priorWeekStreak,omitempty"`

	// FairnessScale weights the ratio spread in the fairness score.
	// Zero means the default of 100.
	FairnessScale float64 `yaml:"fairnessScale,omitempty" json:"fairnessScale,omitempty" validate:"gte=0"`
}

// EmployeeByID returns the employee with the given ID, or nil
func (s *Snapshot) EmployeeByID(id string) *Employee {
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			return &s.Employees[i]
		}
	}
	return nil
}

// GroupByID returns the group with the given ID, or nil
func (s *Snapshot) GroupByID(id string) *Group {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}
	return nil
}

// TemplateByID returns the template with the given ID, or nil
func (s *Snapshot) TemplateByID(id TemplateID) *ShiftTemplate {
	for i := range s.Templates {
		if s.Templates[i].ID == id {
			return &s.Templates[i]
		}
	}
	return nil
}

// ExpectedChildren returns the attendance entry for a group and weekday.
// The second return is false when no entry exists (group closed that day).
func (s *Snapshot) ExpectedChildren(groupID string, day Weekday) (int, bool) {
	for _, a := range s.Attendance {
		if a.GroupID == groupID && a.Weekday == day {
			return a.Children, true
		}
	}
	return 0, false
}

// DayDate returns the calendar date of a weekday within the snapshot's week
func (s *Snapshot) DayDate(day Weekday) Date {
	return s.WeekStart.AddDays(int(day))
}

// Result is the output of one generation run
type Result struct {
	Week       string      `yaml:"week" json:"week"`
	Shifts     []Shift     `yaml:"shifts" json:"shifts"`
	Shortfalls []Shortfall `yaml:"shortfalls" json:"shortfalls"`
	Scores     Scores      `yaml:"scores" json:"scores"`
}
