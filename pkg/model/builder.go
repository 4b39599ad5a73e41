package model

// FieldOption mutates a field during construction.
type FieldOption func(*Field)

// NewStep assembles a step from its fields.
func NewStep(id, title string, fields ...Field) Step {
	return Step{
		ID:     id,
		Title:  title,
		Fields: fields,
	}
}

// NewField constructs a field of the given type.
func NewField(fieldType FieldType, name, label string, options ...FieldOption) Field {
	field := Field{
		Name:  name,
		Label: label,
		Type:  fieldType,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&field)
		}
	}
	return field
}

func Text(name, label string, options ...FieldOption) Field {
	return NewField(FieldTypeText, name, label, options...)
}

func Email(name, label string, options ...FieldOption) Field {
	return NewField(FieldTypeEmail, name, label, options...)
}

func Tel(name, label string, options ...FieldOption) Field {
	return NewField(FieldTypeTel, name, label, options...)
}

func NumberField(name, label string, options ...FieldOption) Field {
	return NewField(FieldTypeNumber, name, label, options...)
}

func Textarea(name, label string, options ...FieldOption) Field {
	return NewField(FieldTypeTextarea, name, label, options...)
}

// Select constructs a select field over the supplied choices.
func Select(name, label string, choices []Option, options ...FieldOption) Field {
	field := NewField(FieldTypeSelect, name, label, options...)
	field.Options = append([]Option(nil), choices...)
	return field
}

// Required marks the field as required.
func Required() FieldOption {
	return func(f *Field) { f.Required = true }
}

// WithPlaceholder sets the placeholder text.
func WithPlaceholder(text string) FieldOption {
	return func(f *Field) { f.Placeholder = text }
}

// WithHelpText sets the help text shown under the control.
func WithHelpText(text string) FieldOption {
	return func(f *Field) { f.HelpText = text }
}

// WithRows sets the textarea row count.
func WithRows(rows int) FieldOption {
	return func(f *Field) { f.Rows = rows }
}

// WithMin sets the numeric lower bound hint.
func WithMin(v float64) FieldOption {
	return func(f *Field) { f.Min = &v }
}

// WithMax sets the numeric upper bound hint.
func WithMax(v float64) FieldOption {
	return func(f *Field) { f.Max = &v }
}

// WithStep sets the numeric increment hint.
func WithStep(v float64) FieldOption {
	return func(f *Field) { f.Step = &v }
}

// WithValidator attaches a custom validator. Repeated calls compose; the first
// failing validator wins.
func WithValidator(fn Validator) FieldOption {
	return func(f *Field) {
		if fn == nil {
			return
		}
		if f.Validate == nil {
			f.Validate = fn
			return
		}
		prev := f.Validate
		f.Validate = func(value Value, record Record) string {
			if msg := prev(value, record); msg != "" {
				return msg
			}
			return fn(value, record)
		}
	}
}

// OptionsFromValues builds options whose labels equal their values.
func OptionsFromValues(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}
