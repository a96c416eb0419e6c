package e2e

import (
	"github.com/kitawerk/dienstplan/pkg/core/engine"
	"github.com/kitawerk/dienstplan/pkg/core/model"
)

// Type aliases to avoid prefixing everything with model.
type (
	Snapshot    = model.Snapshot
	Employee    = model.Employee
	Group       = model.Group
	Ratio       = model.Ratio
	Restriction = model.Restriction
	Absence     = model.Absence
	Attendance  = model.Attendance
	Shift       = model.Shift
	Shortfall   = model.Shortfall
	Weekday     = model.Weekday
	TemplateID  = model.TemplateID
)

// Function aliases
var (
	Generate            = engine.Generate
	Score               = engine.Score
	ValidateSnapshot    = engine.ValidateSnapshot
	ValidateAssignments = engine.ValidateAssignments
	NewDate             = model.NewDate
)

// Constant aliases
var (
	Monday    = model.Monday
	Tuesday   = model.Tuesday
	Wednesday = model.Wednesday
	Thursday  = model.Thursday
	Friday    = model.Friday

	RoleErstkraft  = model.RoleErstkraft
	RoleZweitkraft = model.RoleZweitkraft

	AreaKrippe    = model.AreaKrippe
	AreaElementar = model.AreaElementar
	AreaBoth      = model.AreaBoth

	TemplateEarly = model.TemplateEarly
	TemplateMid   = model.TemplateMid
	TemplateLate  = model.TemplateLate
	TemplateShort = model.TemplateShort
)
