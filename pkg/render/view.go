package render

import (
	"strconv"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/widgets"
)

// StepFieldName is the hidden input carrying the active step index.
const StepFieldName = "_step"

// OptionView is a select choice with its selection state.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FieldView is everything a renderer needs to draw one field.
type FieldView struct {
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	Type        string         `json:"type"`
	Widget      widgets.Widget `json:"widget"`
	Value       string         `json:"value"`
	Required    bool           `json:"required"`
	Placeholder string         `json:"placeholder,omitempty"`
	HelpText    string         `json:"helpText,omitempty"`
	Error       string         `json:"error,omitempty"`
	Options     []OptionView   `json:"options,omitempty"`
}

// Invalid reports whether the field carries an error message.
func (f FieldView) Invalid() bool { return f.Error != "" }

// StepView is the view model of the active step.
type StepView struct {
	FormID      string                `json:"formId,omitempty"`
	FormTitle   string                `json:"formTitle,omitempty"`
	Action      string                `json:"action,omitempty"`
	Method      string                `json:"method"`
	StepIndex   int                   `json:"stepIndex"`
	StepNumber  int                   `json:"stepNumber"`
	StepCount   int                   `json:"stepCount"`
	StepID      string                `json:"stepId"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Component   string                `json:"component,omitempty"`
	Indicator   string                `json:"indicator"`
	Progress    []engine.StepProgress `json:"progress"`
	Fields      []FieldView           `json:"fields"`
	FormErrors  []string              `json:"formErrors,omitempty"`
	Hidden      []HiddenField         `json:"hidden,omitempty"`
	IsFirst     bool                  `json:"isFirst"`
	IsLast      bool                  `json:"isLast"`
	SubmitLabel string                `json:"submitLabel"`
	Submission  string                `json:"submission"`
}

// Field looks up a field view by name.
func (v StepView) Field(name string) (FieldView, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldView{}, false
}

// NewStepView builds the view model of e's active step. Values of fields on
// other steps are carried as hidden inputs so a stateless HTML round trip
// keeps the whole record.
func NewStepView(e *engine.Engine, opts RenderOptions) StepView {
	step := e.Step()
	method := opts.Method
	if method == "" {
		method = "POST"
	}

	view := StepView{
		FormID:      opts.FormID,
		FormTitle:   opts.Title,
		Action:      opts.Action,
		Method:      method,
		StepIndex:   e.CurrentStep(),
		StepNumber:  e.CurrentStep() + 1,
		StepCount:   e.StepCount(),
		StepID:      step.ID,
		Title:       step.Title,
		Description: step.Description,
		Component:   step.Component,
		Indicator:   e.Indicator(),
		Progress:    e.Progress(),
		Fields:      make([]FieldView, 0, len(step.Fields)),
		IsFirst:     e.IsFirstStep(),
		IsLast:      e.IsLastStep(),
		SubmitLabel: e.SubmitLabel(),
		Submission:  string(e.SubmissionState()),
	}

	for _, field := range step.Fields {
		view.Fields = append(view.Fields, NewFieldView(field, e.Value(field.Name), e.ErrorFor(field.Name), opts.Widgets))
	}

	var formErrors []string
	if msg := e.FormError(); msg != "" {
		formErrors = append(formErrors, msg)
	}
	view.FormErrors = MergeFormErrors(formErrors, opts.FormErrors...)

	carried := map[string]string{StepFieldName: strconv.Itoa(e.CurrentStep())}
	data := e.Data()
	for i, other := range e.Steps() {
		if i == e.CurrentStep() {
			continue
		}
		for _, field := range other.Fields {
			if v := data.Get(field.Name); !v.IsAbsent() {
				carried[field.Name] = v.Text()
			}
		}
	}
	view.Hidden = SortedHiddenFields(MergeHiddenFields(carried, SortedHiddenFields(opts.Hidden)...))
	return view
}

// NewFieldView resolves the widget for field and attaches its value and error.
// A nil registry uses the built-in dispatch.
func NewFieldView(field model.Field, value model.Value, errMsg string, reg *widgets.Registry) FieldView {
	widget := reg.Resolve(field)
	view := FieldView{
		Name:        field.Name,
		Label:       field.Label,
		Type:        string(field.Type),
		Widget:      widget,
		Value:       value.Text(),
		Required:    field.Required,
		Placeholder: field.Placeholder,
		HelpText:    field.HelpText,
		Error:       errMsg,
	}
	if widget.Control == widgets.ControlSelect {
		view.Options = make([]OptionView, 0, len(widget.Options))
		for _, opt := range widget.Options {
			view.Options = append(view.Options, OptionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == view.Value,
			})
		}
	}
	return view
}
