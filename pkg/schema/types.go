package schema

import (
	"slices"

	"github.com/goliatone/go-stepform/pkg/model"
)

// Store keeps the parsed forms. It is safe for concurrent readers when treated
// as immutable after construction.
type Store struct {
	forms   map[string]model.Form
	sources map[string]string
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (model.Form, bool) {
	if s == nil {
		return model.Form{}, false
	}
	form, ok := s.forms[id]
	if !ok {
		return model.Form{}, false
	}
	form.Steps = slices.Clone(form.Steps)
	form.Initial = form.Initial.Clone()
	return form, true
}

// Source reports the file a form was loaded from.
func (s *Store) Source(id string) string {
	if s == nil {
		return ""
	}
	return s.sources[id]
}

// IDs lists the loaded form ids sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Title       string         `json:"title" yaml:"title"`
	SubmitLabel string         `json:"submitLabel" yaml:"submitLabel"`
	Initial     map[string]any `json:"initial" yaml:"initial"`
	Steps       []stepFile     `json:"steps" yaml:"steps"`
}

type stepFile struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Component   string      `json:"component" yaml:"component"`
	Fields      []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Name         string         `json:"name" yaml:"name"`
	Label        string         `json:"label" yaml:"label"`
	Type         string         `json:"type" yaml:"type"`
	Required     bool           `json:"required" yaml:"required"`
	Placeholder  string         `json:"placeholder" yaml:"placeholder"`
	HelpText     string         `json:"helpText" yaml:"helpText"`
	Options      []model.Option `json:"options" yaml:"options"`
	OptionValues []string       `json:"optionValues" yaml:"optionValues"`
	Min          *float64       `json:"min" yaml:"min"`
	Max          *float64       `json:"max" yaml:"max"`
	Step         *float64       `json:"step" yaml:"step"`
	Rows         int            `json:"rows" yaml:"rows"`
	Validators   []string       `json:"validators" yaml:"validators"`
}
