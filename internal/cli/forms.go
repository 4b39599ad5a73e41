package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-stepform/pkg/listings"
	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/openapi"
	"github.com/goliatone/go-stepform/pkg/schema"
	"github.com/goliatone/go-stepform/pkg/validators"
)

// formEntry is a resolvable form and where it came from.
type formEntry struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Steps  int    `json:"steps" yaml:"steps"`
	Source string `json:"source" yaml:"source"`
}

// formSet resolves form ids across the built-in marketplace forms, the
// embedded definitions, --schemas and --openapi.
type formSet struct {
	forms   map[string]model.Form
	sources map[string]string
}

func loadForms(ctx context.Context, app *App, opts *RootOptions) (*formSet, error) {
	set := &formSet{forms: map[string]model.Form{}, sources: map[string]string{}}

	owner := listings.Owner{}
	if l, ok := app.Catalog.Get(opts.Listing); ok {
		owner = l.Owner
	}
	set.add(listings.CreateListingForm(), "builtin")
	set.add(listings.ContactOwnerForm(owner), "builtin")

	reg := validators.NewRegistry()
	embedded, err := schema.LoadFS(schema.EmbeddedFS(), reg)
	if err != nil {
		return nil, fmt.Errorf("cli: embedded forms: %w", err)
	}
	if err := set.merge(embedded, "embedded:"); err != nil {
		return nil, err
	}

	if opts.Schemas != "" {
		store, err := schema.LoadFS(os.DirFS(opts.Schemas), reg)
		if err != nil {
			return nil, fmt.Errorf("cli: load %s: %w", opts.Schemas, err)
		}
		if err := set.merge(store, opts.Schemas+"/"); err != nil {
			return nil, err
		}
	}

	if opts.OpenAPI != "" {
		raw, err := os.ReadFile(opts.OpenAPI)
		if err != nil {
			return nil, fmt.Errorf("cli: read %s: %w", opts.OpenAPI, err)
		}
		form, err := openapi.FormFromOperation(ctx, raw, opts.Operation, openapi.WithRegistry(reg))
		if err != nil {
			return nil, fmt.Errorf("cli: %w", err)
		}
		if _, exists := set.forms[form.ID]; exists {
			return nil, fmt.Errorf("cli: form %q from %s shadows an existing form", form.ID, opts.OpenAPI)
		}
		set.add(form, opts.OpenAPI)
	}

	app.Logger.Debug("forms loaded")
	return set, nil
}

func (s *formSet) add(form model.Form, source string) {
	s.forms[form.ID] = form
	s.sources[form.ID] = source
}

func (s *formSet) merge(store *schema.Store, prefix string) error {
	for _, id := range store.IDs() {
		if _, exists := s.forms[id]; exists {
			return fmt.Errorf("cli: form %q from %s%s shadows an existing form", id, prefix, store.Source(id))
		}
		form, _ := store.Form(id)
		s.add(form, prefix+store.Source(id))
	}
	return nil
}

func (s *formSet) get(id string) (model.Form, error) {
	form, ok := s.forms[id]
	if !ok {
		return model.Form{}, fmt.Errorf("cli: unknown form %q (available: %v)", id, s.ids())
	}
	return form, nil
}

func (s *formSet) ids() []string {
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *formSet) entries() []formEntry {
	out := make([]formEntry, 0, len(s.forms))
	for _, id := range s.ids() {
		form := s.forms[id]
		out = append(out, formEntry{ID: id, Title: form.Title, Steps: len(form.Steps), Source: s.sources[id]})
	}
	return out
}

func newFormsCommand(app *App, opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the available forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := loadForms(cmd.Context(), app, opts)
			if err != nil {
				return err
			}
			entries := set.entries()
			if opts.Format != "text" {
				return writeStructured(cmd.OutOrStdout(), opts.Format, entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tSTEPS\tSOURCE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.ID, e.Title, e.Steps, e.Source)
			}
			return tw.Flush()
		},
	}
}
