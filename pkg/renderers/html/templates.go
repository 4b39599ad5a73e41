package html

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

const (
	stepTemplate  = "templates/step.tmpl"
	fieldTemplate = "templates/field.tmpl"
)

// templateEngine wraps a pongo2 template set with a parsed-template cache.
type templateEngine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

func newTemplateEngine(files fs.FS) (*templateEngine, error) {
	if files == nil {
		return nil, errors.New("html: template filesystem is nil")
	}
	registerFilters()
	return &templateEngine{
		set:       pongo2.NewSet("stepform", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// render executes the named template against data. Structs are flattened to
// their JSON shape so templates address fields by their json names.
func (t *templateEngine) render(name string, data map[string]any) (string, error) {
	tmpl, err := t.template(name)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("html: convert data for %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("html: execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (t *templateEngine) template(name string) (*pongo2.Template, error) {
	t.mu.RLock()
	if tmpl, ok := t.templates[name]; ok {
		t.mu.RUnlock()
		return tmpl, nil
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if tmpl, ok := t.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := t.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", name, err)
	}
	t.templates[name] = tmpl
	return tmpl, nil
}

func toContext(data map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(data))
	for key, value := range data {
		if strings.TrimSpace(key) == "" {
			continue
		}
		converted, err := jsonShape(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func jsonShape(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool:
		return v, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var filtersOnce sync.Once

func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("field_id") {
			_ = pongo2.RegisterFilter("field_id", filterFieldID)
		}
	})
}

func filterFieldID(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(controlID(in.String())), nil
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "sf-" + trimmed
}
