package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/render"
	"github.com/goliatone/go-stepform/pkg/widgets"
)

// StepPrompter prompts fields of the active step and writes the answers into
// the engine.
type StepPrompter struct {
	engine  *engine.Engine
	driver  PromptDriver
	widgets *widgets.Registry
	theme   Theme
}

// Engine returns the engine being driven.
func (p *StepPrompter) Engine() *engine.Engine { return p.engine }

// Driver returns the prompt driver.
func (p *StepPrompter) Driver() PromptDriver { return p.driver }

// Field prompts a field of the active step using its resolved widget.
func (p *StepPrompter) Field(ctx context.Context, name string) error {
	field, ok := p.engine.Step().FieldByName(name)
	if !ok {
		return fmt.Errorf("tui: field %q is not on step %q", name, p.engine.Step().ID)
	}
	return p.prompt(ctx, p.view(field), nil)
}

// Select prompts a select field restricted to choices. The leading unselected
// entry of the field's widget is kept so optional fields can be cleared.
func (p *StepPrompter) Select(ctx context.Context, name string, choices []model.Option) error {
	field, ok := p.engine.Step().FieldByName(name)
	if !ok {
		return fmt.Errorf("tui: field %q is not on step %q", name, p.engine.Step().ID)
	}
	view := p.view(field)
	options := make([]render.OptionView, 0, len(choices)+1)
	if len(view.Options) > 0 && view.Options[0].Value == "" {
		options = append(options, view.Options[0])
	}
	for _, choice := range choices {
		options = append(options, render.OptionView{
			Value:    choice.Value,
			Label:    choice.Label,
			Selected: choice.Value == view.Value,
		})
	}
	return p.prompt(ctx, view, options)
}

// Fields prompts every field of the active step in declaration order.
func (p *StepPrompter) Fields(ctx context.Context) error {
	for _, field := range p.engine.Step().Fields {
		if err := p.prompt(ctx, p.view(field), nil); err != nil {
			return err
		}
	}
	return nil
}

func (p *StepPrompter) view(field model.Field) render.FieldView {
	return render.NewFieldView(field, p.engine.Value(field.Name), p.engine.ErrorFor(field.Name), p.widgets)
}

func (p *StepPrompter) prompt(ctx context.Context, view render.FieldView, options []render.OptionView) error {
	if view.Error != "" {
		if err := p.driver.Info(ctx, prefixed(p.theme.ErrorPrefix, view.Error)); err != nil {
			return err
		}
	}

	message := view.Label
	if view.Required {
		message += " *"
	}
	help := view.HelpText
	if help == "" {
		help = view.Placeholder
	}

	var value model.Value
	switch view.Widget.Control {
	case widgets.ControlSelect:
		if options == nil {
			options = view.Options
		}
		if len(options) == 0 {
			return fmt.Errorf("%w: %s", ErrNoOptions, view.Name)
		}
		labels := make([]string, len(options))
		defaultIndex := 0
		for i, opt := range options {
			labels[i] = opt.Label
			if opt.Selected {
				defaultIndex = i
			}
		}
		idx, err := p.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIndex,
			Help:         help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			return fmt.Errorf("tui: select %q returned index %d", view.Name, idx)
		}
		value = model.String(options[idx].Value)
	case widgets.ControlTextarea:
		raw, err := p.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: view.Value, Help: help})
		if err != nil {
			return err
		}
		value = model.String(raw)
	default:
		raw, err := p.driver.Input(ctx, InputConfig{Message: message, Default: view.Value, Help: help})
		if err != nil {
			return err
		}
		value = inputValue(view.Widget, raw)
	}
	return p.engine.SetField(view.Name, value)
}

// inputValue stores numeric answers as numbers. Anything unparsable is kept
// as text so the field's validators can report it.
func inputValue(widget widgets.Widget, raw string) model.Value {
	if widget.InputType != "number" {
		return model.String(raw)
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.String("")
	}
	if f, ok := model.ParseNumber(trimmed); ok {
		return model.Number(f)
	}
	return model.String(raw)
}

func prefixed(prefix, msg string) string {
	if prefix == "" {
		return msg
	}
	return prefix + " " + msg
}
