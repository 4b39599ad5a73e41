package html

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/render"
)

// Name is the registry key of the HTML renderer.
const Name = "html"

// Renderer draws the active step as an HTML fragment: progress indicator,
// form-level errors, fields, carried hidden inputs and navigation buttons.
type Renderer struct {
	templates  *templateEngine
	components *Components
	theme      *theme.RendererConfig
	policy     *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates, err := newTemplateEngine(cfg.templateFS)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		templates:  templates,
		components: cfg.components,
		theme:      cfg.theme,
		policy:     cfg.policy,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the active step of e.
func (r *Renderer) Render(ctx context.Context, e *engine.Engine, opts render.RenderOptions) ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("html: engine is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := render.NewStepView(e, opts)
	body, err := r.renderBody(view, e)
	if err != nil {
		return nil, err
	}

	out, err := r.templates.render(stepTemplate, map[string]any{
		"step":        view,
		"body":        body,
		"description": sanitizeText(r.policy, view.Description),
		"theme":       newThemeContext(r.themeFor(opts)),
	})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (r *Renderer) themeFor(opts render.RenderOptions) *theme.RendererConfig {
	if opts.Theme != nil {
		return opts.Theme
	}
	return r.theme
}

func (r *Renderer) renderBody(view render.StepView, e *engine.Engine) (string, error) {
	if component, ok := r.components.Lookup(view.Component); ok && view.Component != "" {
		var buf bytes.Buffer
		err := component(&buf, view, ComponentData{Engine: e, RenderField: r.renderField})
		if err != nil {
			return "", fmt.Errorf("html: component %q: %w", view.Component, err)
		}
		return buf.String(), nil
	}

	var b strings.Builder
	for _, field := range view.Fields {
		out, err := r.renderField(field)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func (r *Renderer) renderField(field render.FieldView) (string, error) {
	attrs := map[string]string{}
	if field.Widget.Rows > 0 {
		attrs["rows"] = strconv.Itoa(field.Widget.Rows)
	}
	if field.Widget.Min != nil {
		attrs["min"] = formatNumber(*field.Widget.Min)
	}
	if field.Widget.Max != nil {
		attrs["max"] = formatNumber(*field.Widget.Max)
	}
	if field.Widget.Step != nil {
		attrs["step"] = formatNumber(*field.Widget.Step)
	}
	return r.templates.render(fieldTemplate, map[string]any{
		"field": field,
		"help":  sanitizeText(r.policy, field.HelpText),
		"attrs": attrs,
	})
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
