package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/validators"
)

// LoadFS walks the provided filesystem and parses JSON/YAML form files. When
// fsys is nil or no form files are present, the returned store is empty. A nil
// registry uses validators.NewRegistry().
func LoadFS(fsys fs.FS, reg *validators.Registry) (*Store, error) {
	store := &Store{
		forms:   make(map[string]model.Form),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}
	if reg == nil {
		reg = validators.NewRegistry()
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawID, raw := range doc.Forms {
			id := strings.TrimSpace(rawID)
			if id == "" {
				return fmt.Errorf("schema: file %s defines an empty form id", path)
			}
			if prev, exists := store.sources[id]; exists {
				return fmt.Errorf("schema: duplicate form %q (files %s and %s)", id, prev, path)
			}
			form, err := buildForm(raw, id, path, reg)
			if err != nil {
				return err
			}
			store.forms[id] = form
			store.sources[id] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("schema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("schema: parse %s: %w", source, err)
	}
	return doc, nil
}

func buildForm(raw formFile, id, source string, reg *validators.Registry) (model.Form, error) {
	form := model.Form{
		ID:          id,
		Title:       strings.TrimSpace(raw.Title),
		SubmitLabel: strings.TrimSpace(raw.SubmitLabel),
		Steps:       make([]model.Step, 0, len(raw.Steps)),
	}

	for i, rawStep := range raw.Steps {
		step := model.Step{
			ID:          strings.TrimSpace(rawStep.ID),
			Title:       rawStep.Title,
			Description: rawStep.Description,
			Component:   strings.TrimSpace(rawStep.Component),
			Fields:      make([]model.Field, 0, len(rawStep.Fields)),
		}
		if step.ID == "" {
			step.ID = fmt.Sprintf("step-%d", i+1)
		}
		for _, rawField := range rawStep.Fields {
			field, err := buildField(rawField, reg)
			if err != nil {
				return model.Form{}, fmt.Errorf("schema: form %q (file %s) step %q: %w", id, source, step.ID, err)
			}
			step.Fields = append(step.Fields, field)
		}
		form.Steps = append(form.Steps, step)
	}

	if err := model.CheckSteps(form.Steps); err != nil {
		return model.Form{}, fmt.Errorf("schema: form %q (file %s): %w", id, source, err)
	}

	if len(raw.Initial) > 0 {
		initial, err := model.RecordFromMap(raw.Initial)
		if err != nil {
			return model.Form{}, fmt.Errorf("schema: form %q (file %s) initial: %w", id, source, err)
		}
		index := model.FieldIndex(form.Steps)
		for key := range initial {
			if _, ok := index[key]; !ok {
				return model.Form{}, fmt.Errorf("schema: form %q (file %s) initial value for undeclared field %q", id, source, key)
			}
		}
		form.Initial = initial
	}

	return form, nil
}

func buildField(raw fieldFile, reg *validators.Registry) (model.Field, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return model.Field{}, fmt.Errorf("field name is required")
	}
	label := raw.Label
	if label == "" {
		label = name
	}
	fieldType := model.FieldType(strings.ToLower(strings.TrimSpace(raw.Type)))
	if fieldType == "" {
		fieldType = model.FieldTypeText
	}

	field := model.Field{
		Name:        name,
		Label:       label,
		Type:        fieldType,
		Required:    raw.Required,
		Placeholder: raw.Placeholder,
		HelpText:    raw.HelpText,
		Options:     append([]model.Option(nil), raw.Options...),
		Min:         raw.Min,
		Max:         raw.Max,
		Step:        raw.Step,
		Rows:        raw.Rows,
		Validators:  append([]string(nil), raw.Validators...),
	}
	if len(raw.OptionValues) > 0 {
		field.Options = append(field.Options, model.OptionsFromValues(raw.OptionValues...)...)
	}
	for i, opt := range field.Options {
		if opt.Label == "" {
			field.Options[i].Label = opt.Value
		}
	}

	validate, err := reg.Compose(field.Validators, field)
	if err != nil {
		return model.Field{}, fmt.Errorf("field %q: %w", name, err)
	}
	field.Validate = validate
	return field, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
