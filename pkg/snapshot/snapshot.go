// Package snapshot loads generation inputs from disk. A snapshot file holds
// the whole planning week: roster, groups, absences and expected attendance.
// YAML is the native format; JSON parses as well since it is a YAML subset.
package snapshot

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kitawerk/dienstplan/pkg/core/engine"
	"github.com/kitawerk/dienstplan/pkg/core/model"
)

var validate = validator.New()

// Load reads and validates a snapshot file
func Load(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	snap, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Parse decodes and validates snapshot data. The returned snapshot has its
// week start resolved and is ready for the engine.
func Parse(data []byte) (*model.Snapshot, error) {
	var snap model.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	if err := validate.Struct(&snap); err != nil {
		return nil, fmt.Errorf("validating: %w", err)
	}
	if err := engine.ValidateSnapshot(&snap); err != nil {
		return nil, err
	}

	start, err := model.ISOWeekStart(snap.Week)
	if err != nil {
		return nil, err
	}
	snap.WeekStart = start

	return &snap, nil
}
