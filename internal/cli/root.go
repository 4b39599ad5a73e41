// Package cli wires the stepform command line: form discovery, the terminal
// wizard, HTML step rendering and the sample listing catalog.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-stepform/pkg/listings"
	"github.com/goliatone/go-stepform/pkg/render"
	"github.com/goliatone/go-stepform/pkg/renderers/html"
	"github.com/goliatone/go-stepform/pkg/renderers/tui"
	"github.com/goliatone/go-stepform/pkg/widgets"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Schemas   string
	OpenAPI   string
	Operation string
	Listing   string
	Debug     bool
	Format    string // "json" | "yaml" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "yaml", "text"}

// App carries the collaborators commands share. Zero values are replaced with
// the interactive defaults when the root command runs.
type App struct {
	Driver  tui.PromptDriver
	Catalog *listings.Catalog
	Logger  *zap.Logger
	// Widgets overrides the field-type dispatch for every renderer.
	Widgets *widgets.Registry
	// Renderers holds the html and tui renderers, built on first use.
	Renderers *render.Registry
}

// NewRootCommand creates the stepform root command.
func NewRootCommand(app *App) *cobra.Command {
	if app == nil {
		app = &App{}
	}
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "stepform",
		Short:         "Multi-step form engine for the ad-space marketplace",
		Long:          "Run, render and inspect multi-step forms: the built-in marketplace wizards, YAML/JSON form definitions and OpenAPI operations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("cli: invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if (opts.OpenAPI == "") != (opts.Operation == "") {
				return fmt.Errorf("cli: --openapi and --operation must be used together")
			}
			return app.init(opts)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Schemas, "schemas", "", "directory of YAML/JSON form definitions")
	cmd.PersistentFlags().StringVar(&opts.OpenAPI, "openapi", "", "OpenAPI document to build a form from")
	cmd.PersistentFlags().StringVar(&opts.Operation, "operation", "", "operation id inside --openapi")
	cmd.PersistentFlags().StringVar(&opts.Listing, "listing", "1", "listing whose owner the contact form addresses")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "development logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "json", "output format (json|yaml|text)")

	cmd.AddCommand(newFormsCommand(app, opts))
	cmd.AddCommand(newRunCommand(app, opts))
	cmd.AddCommand(newRenderCommand(app, opts))
	cmd.AddCommand(newBrowseCommand(app, opts))
	return cmd
}

func (a *App) init(opts *RootOptions) error {
	if a.Logger == nil {
		logger, err := newLogger(opts.Debug)
		if err != nil {
			return fmt.Errorf("cli: logger: %w", err)
		}
		a.Logger = logger
	}
	if a.Catalog == nil {
		catalog, err := listings.DefaultCatalog()
		if err != nil {
			return fmt.Errorf("cli: catalog: %w", err)
		}
		a.Catalog = catalog
	}
	if a.Widgets == nil {
		a.Widgets = widgets.NewRegistry()
	}
	if a.Renderers == nil {
		renderers, err := a.newRenderers()
		if err != nil {
			return err
		}
		a.Renderers = renderers
	}
	return nil
}

func (a *App) newRenderers() (*render.Registry, error) {
	htmlRenderer, err := html.New(html.WithComponents(htmlComponents()))
	if err != nil {
		return nil, fmt.Errorf("cli: html renderer: %w", err)
	}
	wizard, err := tui.New(
		tui.WithPromptDriver(a.Driver),
		tui.WithComponents(tuiComponents()),
		tui.WithWidgets(a.Widgets),
		tui.WithLogger(a.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("cli: tui renderer: %w", err)
	}
	registry := render.NewRegistry()
	for _, r := range []render.Renderer{htmlRenderer, wizard} {
		if err := registry.Register(r); err != nil {
			return nil, fmt.Errorf("cli: %w", err)
		}
	}
	return registry, nil
}

// wizard returns the registered terminal wizard.
func (a *App) wizard() (*tui.Wizard, error) {
	r, err := a.Renderers.Get(tui.Name)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	w, ok := r.(*tui.Wizard)
	if !ok {
		return nil, fmt.Errorf("cli: renderer %q is %T, not a wizard", tui.Name, r)
	}
	return w, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopmentConfig().Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
