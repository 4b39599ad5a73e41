package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errNoSteps       = errors.New("model: at least one step is required")
	errStepIDMissing = errors.New("model: step id is required")
)

// CheckSteps validates the structural invariants of a step list: at least one
// step, unique non-empty step IDs, unique non-empty field names across the
// whole form, and unique option values per select field.
func CheckSteps(steps []Step) error {
	if len(steps) == 0 {
		return errNoSteps
	}

	stepIDs := make(map[string]struct{}, len(steps))
	fieldNames := make(map[string]string)

	for i, step := range steps {
		id := strings.TrimSpace(step.ID)
		if id == "" {
			return fmt.Errorf("%w (step %d)", errStepIDMissing, i)
		}
		if _, exists := stepIDs[id]; exists {
			return fmt.Errorf("model: duplicate step id %q", id)
		}
		stepIDs[id] = struct{}{}

		for j, field := range step.Fields {
			name := strings.TrimSpace(field.Name)
			if name == "" {
				return fmt.Errorf("model: step %q field %d has no name", id, j)
			}
			if owner, exists := fieldNames[name]; exists {
				return fmt.Errorf("model: field %q declared by steps %q and %q", name, owner, id)
			}
			fieldNames[name] = id

			if err := checkOptions(field); err != nil {
				return fmt.Errorf("model: step %q: %w", id, err)
			}
		}
	}
	return nil
}

func checkOptions(field Field) error {
	if len(field.Options) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(field.Options))
	for _, opt := range field.Options {
		if _, exists := seen[opt.Value]; exists {
			return fmt.Errorf("field %q has duplicate option value %q", field.Name, opt.Value)
		}
		seen[opt.Value] = struct{}{}
	}
	return nil
}
