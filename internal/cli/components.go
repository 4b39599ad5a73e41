package cli

import (
	"bytes"
	"context"

	"github.com/goliatone/go-stepform/pkg/listings"
	"github.com/goliatone/go-stepform/pkg/render"
	"github.com/goliatone/go-stepform/pkg/renderers/html"
	"github.com/goliatone/go-stepform/pkg/renderers/tui"
)

const subcategoryField = "subcategory"

// htmlComponents narrows the subcategory select of the listing basics step to
// the subtypes of the chosen category.
func htmlComponents() *html.Components {
	c := html.NewComponents()
	c.MustRegister(listings.BasicsComponent, func(buf *bytes.Buffer, view render.StepView, data html.ComponentData) error {
		allowed := map[string]bool{}
		for _, opt := range listings.SubcategoryOptions(data.Engine.Value("category").Text()) {
			allowed[opt.Value] = true
		}
		for _, field := range view.Fields {
			if field.Name == subcategoryField {
				field.Options = narrow(field.Options, allowed)
			}
			out, err := data.RenderField(field)
			if err != nil {
				return err
			}
			buf.WriteString(out)
		}
		return nil
	})
	return c
}

func narrow(options []render.OptionView, allowed map[string]bool) []render.OptionView {
	out := make([]render.OptionView, 0, len(options))
	for _, opt := range options {
		if opt.Value == "" || allowed[opt.Value] {
			out = append(out, opt)
		}
	}
	return out
}

// tuiComponents prompts the listing basics step with the subcategory choices
// restricted to the category answered just before.
func tuiComponents() *tui.Components {
	c := tui.NewComponents()
	c.MustRegister(listings.BasicsComponent, func(ctx context.Context, p *tui.StepPrompter) error {
		for _, field := range p.Engine().Step().Fields {
			var err error
			if field.Name == subcategoryField {
				err = p.Select(ctx, field.Name, listings.SubcategoryOptions(p.Engine().Value("category").Text()))
			} else {
				err = p.Field(ctx, field.Name)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	return c
}
