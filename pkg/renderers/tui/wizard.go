package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/render"
	"github.com/goliatone/go-stepform/pkg/widgets"
)

// Name is the registry key of the terminal wizard.
const Name = "tui"

const (
	actionNext   = "Next"
	actionBack   = "Back"
	actionSubmit = "submit"
)

// Wizard drives an engine interactively: it prompts the active step, offers
// back/next navigation, reports the error record and submits on the last
// step.
type Wizard struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	components   *Components
	widgets      *widgets.Registry
	logger       *zap.Logger
}

var _ render.Renderer = (*Wizard)(nil)

// New constructs a wizard with defaults (survey driver, JSON output).
func New(options ...Option) (*Wizard, error) {
	w := &Wizard{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.driver == nil {
		w.driver = NewSurveyDriver(nil)
	}
	switch w.outputFormat {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", w.outputFormat)
	}
	return w, nil
}

// Name reports the renderer identifier.
func (w *Wizard) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (w *Wizard) ContentType() string {
	switch w.outputFormat {
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs the wizard to completion and serializes the submitted record.
func (w *Wizard) Render(ctx context.Context, e *engine.Engine, _ render.RenderOptions) ([]byte, error) {
	record, err := w.Run(ctx, e)
	if err != nil {
		return nil, err
	}
	return w.serialize(record)
}

// Run drives e until the submission succeeds, the user aborts or declines to
// retry a failed submission. It returns the submitted record.
func (w *Wizard) Run(ctx context.Context, e *engine.Engine) (model.Record, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if e == nil {
		return nil, errors.New("tui: engine is nil")
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.promptStep(ctx, e); err != nil {
			return nil, err
		}

		action, err := w.navigation(ctx, e)
		if err != nil {
			return nil, err
		}

		switch action {
		case actionBack:
			e.Retreat()
		case actionNext:
			if !e.Advance() {
				w.logger.Debug("step rejected", zap.String("step", e.Step().ID), zap.Strings("fields", errorFields(e)))
			}
		case actionSubmit:
			done, err := e.Submit(ctx)
			if err != nil && e.SubmissionState() != engine.SubmissionFailed {
				return nil, err
			}
			if done {
				w.logger.Info("form submitted", zap.Int("fields", len(e.Data())))
				return e.Data(), nil
			}
			if e.SubmissionState() == engine.SubmissionFailed {
				w.logger.Warn("submission failed", zap.Error(e.SubmissionErr()))
				if err := w.driver.Info(ctx, prefixed(w.theme.ErrorPrefix, e.FormError())); err != nil {
					return nil, err
				}
				retry, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
				if err != nil {
					return nil, err
				}
				if !retry {
					return nil, e.SubmissionErr()
				}
			}
		}
	}
}

func (w *Wizard) promptStep(ctx context.Context, e *engine.Engine) error {
	step := e.Step()
	header := fmt.Sprintf("%s: %s", e.Indicator(), step.Title)
	if err := w.driver.Info(ctx, prefixed(w.theme.StepPrefix, header)); err != nil {
		return err
	}
	if step.Description != "" {
		if err := w.driver.Info(ctx, prefixed(w.theme.InfoPrefix, step.Description)); err != nil {
			return err
		}
	}

	prompter := &StepPrompter{engine: e, driver: w.driver, widgets: w.widgets, theme: w.theme}
	if component, ok := w.components.Lookup(step.Component); ok {
		if err := component(ctx, prompter); err != nil {
			return fmt.Errorf("tui: component %q: %w", step.Component, err)
		}
		return nil
	}
	return prompter.Fields(ctx)
}

// navigation asks where to go next. A single available action is taken
// without prompting.
func (w *Wizard) navigation(ctx context.Context, e *engine.Engine) (string, error) {
	var labels, actions []string
	if e.IsLastStep() {
		labels, actions = append(labels, e.SubmitLabel()), append(actions, actionSubmit)
	} else {
		labels, actions = append(labels, actionNext), append(actions, actionNext)
	}
	if !e.IsFirstStep() {
		labels, actions = append(labels, actionBack), append(actions, actionBack)
	}
	if len(actions) == 1 {
		return actions[0], nil
	}

	idx, err := w.driver.Select(ctx, SelectConfig{Message: "Continue", Options: labels})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return "", fmt.Errorf("tui: navigation returned index %d", idx)
	}
	return actions[idx], nil
}

func errorFields(e *engine.Engine) []string {
	errs := e.Errors()
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
