package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/listings"
	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/renderers/tui"
)

func newRunCommand(app *App, opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <form>",
		Short: "Fill in a form interactively",
		Long: `Run the terminal wizard for a form. The submitted record is printed as
JSON (or YAML with --format yaml). Completing create-listing also adds the
new listing to the catalog and prints it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := loadForms(ctx, app, opts)
			if err != nil {
				return err
			}
			form, err := set.get(args[0])
			if err != nil {
				return err
			}

			var created *listings.Listing
			e, err := newEngine(app, form, func(_ context.Context, record model.Record) error {
				if form.ID != listings.CreateListingFormID {
					return nil
				}
				l, err := listings.FromRecord("", record)
				if err != nil {
					return err
				}
				stored, err := app.Catalog.Add(l)
				if err != nil {
					return err
				}
				created = &stored
				return nil
			})
			if err != nil {
				return err
			}

			wizard, err := app.wizard()
			if err != nil {
				return err
			}
			record, err := wizard.Run(ctx, e)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if created != nil {
				app.Logger.Info("listing created", zap.String("id", created.ID))
				return writeStructured(out, structuredFormat(opts.Format), created)
			}
			if opts.Format == "text" {
				data, err := tui.Serialize(record, tui.OutputFormatPrettyText)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			return writeStructured(out, opts.Format, record.Map())
		},
	}
}

// newEngine builds an engine for form with the per-form settings.
func newEngine(app *App, form model.Form, onComplete engine.CompletionFunc) (*engine.Engine, error) {
	options := []engine.Option{
		engine.WithInitialData(form.Initial),
		engine.WithSubmitLabel(form.SubmitLabel),
		engine.WithLogger(app.Logger.With(zap.String("form", form.ID))),
	}
	if onComplete != nil {
		options = append(options, engine.WithOnComplete(onComplete))
	}
	if form.ID == listings.ContactOwnerFormID {
		options = append(options, engine.WithFailureMessage(listings.ContactFailureMessage))
	}
	e, err := engine.New(form.Steps, options...)
	if err != nil {
		return nil, fmt.Errorf("cli: form %q: %w", form.ID, err)
	}
	return e, nil
}

func structuredFormat(format string) string {
	if format == "text" {
		return "yaml"
	}
	return format
}
