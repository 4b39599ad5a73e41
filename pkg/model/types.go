package model

import "strings"

// FieldType enumerates the closed set of field types the dispatch table
// understands.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTel      FieldType = "tel"
)

// Known reports whether t belongs to the closed field type set.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeNumber, FieldTypeTextarea, FieldTypeSelect, FieldTypeTel:
		return true
	default:
		return false
	}
}

// DefaultTextareaRows is applied when a textarea field leaves Rows unset.
const DefaultTextareaRows = 4

// Validator inspects a field value (and the full record for cross-field rules)
// and returns an error message. An empty string means the value is valid.
type Validator func(value Value, record Record) string

// Option is a single choice of a select field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field describes a single named input slot.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	HelpText    string    `json:"helpText,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Step        *float64  `json:"step,omitempty"`
	Rows        int       `json:"rows,omitempty"`
	// Validators lists the named rules the field was declared with. They are
	// informational once Validate has been composed from them.
	Validators []string `json:"validators,omitempty"`
	// Validate runs after the required check passes.
	Validate Validator `json:"-"`
}

// TextareaRows returns the configured row count, defaulting to
// DefaultTextareaRows.
func (f Field) TextareaRows() int {
	if f.Rows > 0 {
		return f.Rows
	}
	return DefaultTextareaRows
}

// HasOption reports whether value is one of the field's select options.
func (f Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Step is one page of a multi-step form.
type Step struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	// Component names a custom step body. Renderers resolve it through their
	// component registry and skip iterating Fields; validation still runs
	// over Fields.
	Component string `json:"component,omitempty"`
}

// FieldNames returns the step's field names in declaration order.
func (s Step) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

// FieldByName looks up a field declared on this step.
func (s Step) FieldByName(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Form bundles a step list with presentation metadata. Loaders and the
// built-in marketplace forms return this shape.
type Form struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	SubmitLabel string `json:"submitLabel,omitempty"`
	Steps       []Step `json:"steps"`
	Initial     Record `json:"initial,omitempty"`
}

// FieldIndex maps every field name in steps to the index of the step that
// declares it.
func FieldIndex(steps []Step) map[string]int {
	index := make(map[string]int)
	for i, step := range steps {
		for _, field := range step.Fields {
			name := strings.TrimSpace(field.Name)
			if name == "" {
				continue
			}
			if _, exists := index[name]; !exists {
				index[name] = i
			}
		}
	}
	return index
}
