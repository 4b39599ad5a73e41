package widgets

import (
	"strings"

	"github.com/goliatone/go-stepform/pkg/model"
)

// Control is the shape of the widget a renderer should build.
type Control string

const (
	ControlInput    Control = "input"
	ControlTextarea Control = "textarea"
	ControlSelect   Control = "select"
)

// Built-in widget identifiers, one per field type.
const (
	WidgetText     = "text-input"
	WidgetEmail    = "email-input"
	WidgetTel      = "tel-input"
	WidgetNumber   = "number-input"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
)

// Widget carries the construction parameters of a field control. Numeric
// bounds are presentational; the engine only enforces required-ness and
// custom validators.
type Widget struct {
	Name      string         `json:"name"`
	Control   Control        `json:"control"`
	InputType string         `json:"inputType,omitempty"`
	Rows      int            `json:"rows,omitempty"`
	Options   []model.Option `json:"options,omitempty"`
	Min       *float64       `json:"min,omitempty"`
	Max       *float64       `json:"max,omitempty"`
	Step      *float64       `json:"step,omitempty"`
}

// Resolve maps a field to its widget. The mapping is total: unknown field
// types render as plain single-line text.
func Resolve(field model.Field) Widget {
	switch field.Type {
	case model.FieldTypeTextarea:
		return Widget{
			Name:    WidgetTextarea,
			Control: ControlTextarea,
			Rows:    field.TextareaRows(),
		}
	case model.FieldTypeSelect:
		return Widget{
			Name:    WidgetSelect,
			Control: ControlSelect,
			Options: SelectOptions(field),
		}
	case model.FieldTypeNumber:
		return Widget{
			Name:      WidgetNumber,
			Control:   ControlInput,
			InputType: "number",
			Min:       field.Min,
			Max:       field.Max,
			Step:      field.Step,
		}
	case model.FieldTypeEmail:
		return Widget{Name: WidgetEmail, Control: ControlInput, InputType: "email"}
	case model.FieldTypeTel:
		return Widget{Name: WidgetTel, Control: ControlInput, InputType: "tel"}
	default:
		return Widget{Name: WidgetText, Control: ControlInput, InputType: "text"}
	}
}

// SelectOptions prepends the synthetic unselected option ("Select <label>")
// to the field's choices.
func SelectOptions(field model.Field) []model.Option {
	out := make([]model.Option, 0, len(field.Options)+1)
	out = append(out, UnselectedOption(field))
	out = append(out, field.Options...)
	return out
}

// UnselectedOption is the leading empty choice of a select widget.
func UnselectedOption(field model.Field) model.Option {
	return model.Option{
		Value: "",
		Label: "Select " + strings.ToLower(field.Label),
	}
}
