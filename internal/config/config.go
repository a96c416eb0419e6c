package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/kitawerk/dienstplan/pkg/core/model"
)

// ErrNotFound is returned by Load when no config file exists. Callers may
// fall back to Default in that case.
var ErrNotFound = errors.New("config file not found in current directory or home directory")

// Config represents the facility-level planning policy. Everything here is
// optional: a snapshot that carries its own operating days, templates or
// fairness scale wins over the config.
type Config struct {
	// OperatingDaysRRule is an iCalendar recurrence rule describing the days
	// the facility is open, e.g. FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR
	OperatingDaysRRule string `yaml:"operatingDaysRRule,omitempty"`

	// ClosureDates lists whole-facility closure days (holidays, staff
	// training). They are dropped from the operating days of any week that
	// contains them.
	ClosureDates []model.Date `yaml:"closureDates,omitempty"`

	// GroupOrder pins the order in which groups are staffed. Groups not
	// listed keep their snapshot order after the listed ones.
	GroupOrder []string `yaml:"groupOrder,omitempty"`

	FairnessScale float64               `yaml:"fairnessScale,omitempty" validate:"gte=0"`
	Templates     []model.ShiftTemplate `yaml:"templates,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{}
}

// Load loads and validates the configuration from dienstplan_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, err
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the recurrence rule syntax
// and the template overrides
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.OperatingDaysRRule != "" {
		if _, err := rrule.StrToRRule(cfg.OperatingDaysRRule); err != nil {
			return fmt.Errorf("invalid rrule in operatingDaysRRule: %w", err)
		}
	}

	if len(cfg.Templates) > 0 {
		seen := make(map[model.TemplateID]bool)
		for i, tpl := range cfg.Templates {
			if !tpl.ID.IsValid() {
				return fmt.Errorf("invalid template id %q in templates[%d]", tpl.ID, i)
			}
			if _, err := model.ParseClock(tpl.Start); err != nil {
				return fmt.Errorf("invalid start in templates[%d]: %w", i, err)
			}
			if _, err := model.ParseClock(tpl.End); err != nil {
				return fmt.Errorf("invalid end in templates[%d]: %w", i, err)
			}
			seen[tpl.ID] = true
		}
		for _, id := range []model.TemplateID{model.TemplateEarly, model.TemplateMid, model.TemplateLate, model.TemplateShort} {
			if !seen[id] {
				return fmt.Errorf("template overrides are missing %q", id)
			}
		}
	}

	return nil
}

// OperatingDays expands the configured recurrence rule into the operating
// weekdays of the given week and drops closure dates that fall inside it.
// Returns nil when the config does not constrain operating days.
func (c *Config) OperatingDays(weekStart model.Date) []model.Weekday {
	if c == nil || (c.OperatingDaysRRule == "" && len(c.ClosureDates) == 0) {
		return nil
	}

	var days []model.Weekday
	if c.OperatingDaysRRule != "" {
		rule, err := rrule.StrToRRule(c.OperatingDaysRRule)
		if err != nil {
			return nil
		}
		searchStart := weekStart.Time
		searchEnd := weekStart.AddDays(6).Time
		rule.DTStart(searchStart)
		for _, occurrence := range rule.Between(searchStart, searchEnd, true) {
			days = append(days, model.Weekday((int(occurrence.Weekday())+6)%7))
		}
	} else {
		days = []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}
	}

	if len(c.ClosureDates) == 0 {
		return days
	}
	kept := make([]model.Weekday, 0, len(days))
	for _, day := range days {
		if !c.closedOn(weekStart.AddDays(int(day))) {
			kept = append(kept, day)
		}
	}
	return kept
}

func (c *Config) closedOn(date model.Date) bool {
	for _, closure := range c.ClosureDates {
		if closure.Equal(date) {
			return true
		}
	}
	return false
}

// Apply fills snapshot gaps from the config. Snapshot values always win;
// the config only supplies defaults the snapshot left out.
func (c *Config) Apply(snap *model.Snapshot) {
	if c == nil || snap == nil {
		return
	}

	if len(snap.OperatingDays) == 0 {
		if days := c.OperatingDays(snap.WeekStart); len(days) > 0 {
			snap.OperatingDays = days
		}
	}
	if len(snap.Templates) == 0 && len(c.Templates) > 0 {
		snap.Templates = c.Templates
	}
	if snap.FairnessScale == 0 && c.FairnessScale > 0 {
		snap.FairnessScale = c.FairnessScale
	}
	if len(c.GroupOrder) > 0 {
		snap.Groups = orderGroups(snap.Groups, c.GroupOrder)
	}
}

// orderGroups moves the listed groups to the front in list order. Groups not
// listed keep their relative order behind them.
func orderGroups(groups []model.Group, order []string) []model.Group {
	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id] = i
	}

	ordered := make([]model.Group, 0, len(groups))
	for _, id := range order {
		for _, g := range groups {
			if g.ID == id {
				ordered = append(ordered, g)
			}
		}
	}
	for _, g := range groups {
		if _, listed := index[g.ID]; !listed {
			ordered = append(ordered, g)
		}
	}
	return ordered
}

// findConfigFile searches for dienstplan_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "dienstplan_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", ErrNotFound
}
