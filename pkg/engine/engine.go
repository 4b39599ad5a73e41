package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/goliatone/go-stepform/pkg/model"
)

// Engine drives a linear, validated, multi-step data-entry flow over a step
// schema. It owns the data record, the step cursor and the error record of the
// active step. An Engine is not safe for concurrent use.
type Engine struct {
	steps      []model.Step
	fieldIndex map[string]int

	initial model.Record
	data    model.Record
	errors  map[string]string
	current int

	onComplete     CompletionFunc
	submitLabel    string
	failureMessage string
	logger         *zap.Logger

	submission *submission
}

// New validates the step schema and constructs an engine positioned on the
// first step.
func New(steps []model.Step, options ...Option) (*Engine, error) {
	if err := model.CheckSteps(steps); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		steps:          append([]model.Step(nil), steps...),
		fieldIndex:     model.FieldIndex(steps),
		initial:        model.Record{},
		submitLabel:    "Submit",
		failureMessage: DefaultFailureMessage,
		logger:         zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	sub, err := newSubmission(e.logger)
	if err != nil {
		return nil, fmt.Errorf("engine: submission state: %w", err)
	}
	e.submission = sub
	e.resetState()
	return e, nil
}

func (e *Engine) resetState() {
	e.data = e.initial.Clone()
	e.errors = make(map[string]string)
	e.current = 0
}

// SetField stores value under name and optimistically clears any error the
// field currently carries. The error is not re-validated until the next
// validation pass.
func (e *Engine) SetField(name string, value model.Value) error {
	if _, ok := e.fieldIndex[name]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	e.data[name] = value
	delete(e.errors, name)
	return nil
}

// ValidateStep checks every field of the step in declaration order and
// replaces the error record with the failures. Required fields that are blank
// fail with "<Label> is required" and skip their custom validator. The result
// is true when no field failed. Out-of-range indexes report false and leave
// the error record untouched.
func (e *Engine) ValidateStep(index int) bool {
	if index < 0 || index >= len(e.steps) {
		e.logger.Warn("validate step out of range", zap.Int("index", index), zap.Int("steps", len(e.steps)))
		return false
	}

	stepErrors := make(map[string]string)
	for _, field := range e.steps[index].Fields {
		value := e.data.Get(field.Name)
		if field.Required && value.IsBlank() {
			stepErrors[field.Name] = field.Label + " is required"
			continue
		}
		if field.Validate != nil {
			if msg := field.Validate(value, e.data); msg != "" {
				stepErrors[field.Name] = msg
			}
		}
	}

	e.errors = stepErrors
	if len(stepErrors) > 0 {
		e.logger.Debug("step validation failed",
			zap.String("step", e.steps[index].ID),
			zap.Strings("fields", sortedKeys(stepErrors)),
		)
		return false
	}
	return true
}

// Advance validates the active step and, when it passes, moves the cursor
// forward by one (clamped to the last step). It reports whether validation
// passed.
func (e *Engine) Advance() bool {
	if !e.ValidateStep(e.current) {
		return false
	}
	from := e.current
	e.current = min(e.current+1, len(e.steps)-1)
	if e.current != from {
		e.logger.Debug("step advanced",
			zap.String("from", e.steps[from].ID),
			zap.String("to", e.steps[e.current].ID),
		)
	}
	return true
}

// Retreat moves the cursor back by one (clamped to zero). It never validates
// and never touches the data or error records.
func (e *Engine) Retreat() {
	if e.current == 0 {
		return
	}
	from := e.current
	e.current--
	e.logger.Debug("step retreated",
		zap.String("from", e.steps[from].ID),
		zap.String("to", e.steps[e.current].ID),
	)
}

// Submit finalises the form. It is only allowed on the last step; the step is
// validated and, when it passes, the completion callback receives a snapshot
// of the full record. The boolean reports whether the submission completed.
// Validation failures are reported through the error record, not the error
// return. Callback failures move the submission into the failed state and are
// returned wrapped.
func (e *Engine) Submit(ctx context.Context) (bool, error) {
	if ctx == nil {
		return false, ErrContextRequired
	}
	if !e.IsLastStep() {
		return false, ErrNotLastStep
	}
	if e.submission.current() == SubmissionSubmitting {
		return false, ErrSubmissionPending
	}
	if !e.ValidateStep(e.current) {
		return false, nil
	}

	e.submission.begin()
	if e.onComplete != nil {
		if err := e.onComplete(ctx, e.data.Clone()); err != nil {
			e.submission.fail(err)
			return false, fmt.Errorf("engine: completion callback: %w", err)
		}
	}
	e.submission.succeed()
	return true, nil
}

// Reset discards all input and returns the engine to its initial state.
func (e *Engine) Reset() {
	e.resetState()
	e.submission.reset()
	e.logger.Debug("form reset")
}

// CurrentStep returns the active step index.
func (e *Engine) CurrentStep() int { return e.current }

// Step returns the active step definition.
func (e *Engine) Step() model.Step { return e.steps[e.current] }

// Steps returns the step definitions.
func (e *Engine) Steps() []model.Step { return append([]model.Step(nil), e.steps...) }

// StepCount returns the number of steps.
func (e *Engine) StepCount() int { return len(e.steps) }

// IsFirstStep reports whether the cursor is on the first step.
func (e *Engine) IsFirstStep() bool { return e.current == 0 }

// IsLastStep reports whether the cursor is on the last step.
func (e *Engine) IsLastStep() bool { return e.current == len(e.steps)-1 }

// Value returns the current value of a field (absent when unset).
func (e *Engine) Value(name string) model.Value { return e.data.Get(name) }

// Data returns a snapshot of the full record.
func (e *Engine) Data() model.Record { return e.data.Clone() }

// Errors returns a snapshot of the active step's error record.
func (e *Engine) Errors() map[string]string { return maps.Clone(e.errors) }

// ErrorFor returns the error message currently recorded for name.
func (e *Engine) ErrorFor(name string) string { return e.errors[name] }

// HasField reports whether any step declares name.
func (e *Engine) HasField(name string) bool {
	_, ok := e.fieldIndex[name]
	return ok
}

// SubmitLabel returns the label for the final action.
func (e *Engine) SubmitLabel() string { return e.submitLabel }

// SubmissionState reports the submission lifecycle state.
func (e *Engine) SubmissionState() SubmissionState { return e.submission.current() }

// SubmissionErr returns the error of the last failed completion callback.
func (e *Engine) SubmissionErr() error { return e.submission.lastErr }

// FormError returns the form-level message for a failed submission. It is
// empty unless the submission state is failed.
func (e *Engine) FormError() string {
	if e.submission.current() != SubmissionFailed {
		return ""
	}
	return e.failureMessage
}

// State is a point-in-time copy of the engine state.
type State struct {
	Current    int               `json:"current"`
	Data       model.Record      `json:"data"`
	Errors     map[string]string `json:"errors,omitempty"`
	Submission SubmissionState   `json:"submission"`
	FormError  string            `json:"formError,omitempty"`
}

// Snapshot copies the engine state.
func (e *Engine) Snapshot() State {
	return State{
		Current:    e.current,
		Data:       e.Data(),
		Errors:     e.Errors(),
		Submission: e.SubmissionState(),
		FormError:  e.FormError(),
	}
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
