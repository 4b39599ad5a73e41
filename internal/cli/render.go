package cli

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/render"
	"github.com/goliatone/go-stepform/pkg/renderers/html"
)

type renderOptions struct {
	renderer string
	step     int
	set      []string
	validate bool
	action   string
	tokens   map[string]string
	variant  string
}

func newRenderCommand(app *App, opts *RootOptions) *cobra.Command {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <form>",
		Short: "Render one step of a form",
		Long: `Render a step as an HTML fragment. Values given with --set are applied
first; the wizard then advances towards --step and stops early on the first
step that fails validation, rendering its errors. --renderer tui runs the
terminal wizard from that step instead and prints the submitted record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadForms(cmd.Context(), app, opts)
			if err != nil {
				return err
			}
			form, err := set.get(args[0])
			if err != nil {
				return err
			}
			e, err := newEngine(app, form, nil)
			if err != nil {
				return err
			}

			for _, assignment := range ro.set {
				name, value, err := parseAssignment(form, assignment)
				if err != nil {
					return err
				}
				if err := e.SetField(name, value); err != nil {
					return fmt.Errorf("cli: --set %s: %w", assignment, err)
				}
			}

			target := min(max(ro.step, 1), e.StepCount()) - 1
			for e.CurrentStep() < target {
				if !e.Advance() {
					break
				}
			}
			if ro.validate && e.CurrentStep() == target {
				e.ValidateStep(e.CurrentStep())
			}

			r, err := app.Renderers.Get(ro.renderer)
			if err != nil {
				return fmt.Errorf("cli: %w", err)
			}
			renderOpts := render.RenderOptions{
				FormID:  form.ID,
				Title:   form.Title,
				Action:  ro.action,
				Widgets: app.Widgets,
			}
			if len(ro.tokens) > 0 {
				manifest := &theme.Manifest{Name: "cli", Version: "0.0.0", Tokens: ro.tokens}
				renderOpts.Theme = html.ThemeFromManifest(manifest, ro.variant)
			}

			out, err := r.Render(cmd.Context(), e, renderOpts)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&ro.renderer, "renderer", html.Name, "renderer name (html|tui)")
	cmd.Flags().IntVar(&ro.step, "step", 1, "step number to render (1-based)")
	cmd.Flags().StringArrayVar(&ro.set, "set", nil, "field value as name=value (repeatable)")
	cmd.Flags().BoolVar(&ro.validate, "validate", false, "validate the rendered step to show its errors")
	cmd.Flags().StringVar(&ro.action, "action", "", "form action URL")
	cmd.Flags().StringToStringVar(&ro.tokens, "token", nil, "theme token as name=value, exposed as a CSS variable")
	cmd.Flags().StringVar(&ro.variant, "variant", "", "theme variant")
	return cmd
}

// parseAssignment splits name=value. Number fields receive numeric values
// when the text parses.
func parseAssignment(form model.Form, assignment string) (string, model.Value, error) {
	name, raw, ok := strings.Cut(assignment, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", model.Value{}, fmt.Errorf("cli: invalid --set %q, want name=value", assignment)
	}
	for _, step := range form.Steps {
		field, found := step.FieldByName(name)
		if !found {
			continue
		}
		if field.Type == model.FieldTypeNumber {
			if f, ok := model.ParseNumber(raw); ok {
				return name, model.Number(f), nil
			}
		}
		break
	}
	return name, model.String(raw), nil
}
