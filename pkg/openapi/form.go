package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-stepform/pkg/model"
)

const (
	stepExtension        = "x-step"
	stepTitleExtension   = "x-step-title"
	stepsExtension       = "x-steps"
	orderExtension       = "x-order"
	placeholderExtension = "x-placeholder"
	submitLabelExtension = "x-submit-label"
	validatorsExtension  = "x-validators"

	detailsStepID = "details"
)

// ErrOperationNotFound is returned when no operation carries the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// StepsFromOperation converts the request body of operationID into steps.
func StepsFromOperation(ctx context.Context, raw []byte, operationID string, options ...Option) ([]model.Step, error) {
	form, err := FormFromOperation(ctx, raw, operationID, options...)
	if err != nil {
		return nil, err
	}
	return form.Steps, nil
}

// FormFromOperation converts the request body of operationID into a form.
// Property defaults become the form's initial data.
func FormFromOperation(ctx context.Context, raw []byte, operationID string, options ...Option) (model.Form, error) {
	cfg := newOptions(options...)
	spec, err := load(ctx, raw, cfg)
	if err != nil {
		return model.Form{}, err
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return model.Form{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema, err := requestSchema(operation)
	if err != nil {
		return model.Form{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}

	steps, initial, err := buildSteps(schema, cfg)
	if err != nil {
		return model.Form{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}

	form := model.Form{
		ID:          operationID,
		Title:       operation.Summary,
		SubmitLabel: stringExtension(operation.Extensions, submitLabelExtension),
		Steps:       steps,
		Initial:     initial,
	}
	if form.Title == "" {
		form.Title = humanize(operationID)
	}
	return form, nil
}

// OperationIDs lists every operation id declared by the document, sorted.
func OperationIDs(ctx context.Context, raw []byte, options ...Option) ([]string, error) {
	cfg := newOptions(options...)
	spec, err := load(ctx, raw, cfg)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, path := range spec.Paths.InMatchingOrder() {
		for _, op := range spec.Paths.Value(path).Operations() {
			if op != nil && op.OperationID != "" {
				ids = append(ids, op.OperationID)
			}
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

func load(ctx context.Context, raw []byte, cfg Options) (*openapi3.T, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.ExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	if cfg.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return spec, nil
}

func findOperation(spec *openapi3.T, id string) *openapi3.Operation {
	paths := make([]string, 0, spec.Paths.Len())
	for path := range spec.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		item := spec.Paths.Value(path)
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == id {
				return op
			}
		}
	}
	return nil
}

func requestSchema(operation *openapi3.Operation) (*openapi3.Schema, error) {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil, errors.New("no request body")
	}
	content := operation.RequestBody.Value.Content
	var media *openapi3.MediaType
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok {
			media = mt
			break
		}
	}
	if media == nil {
		keys := make([]string, 0, len(content))
		for key := range content {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		if len(keys) > 0 {
			media = content[keys[0]]
		}
	}
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("request body has no schema")
	}
	schema := flattenAllOf(media.Schema.Value)
	if len(schema.Properties) == 0 {
		return nil, errors.New("request body schema has no properties")
	}
	return schema, nil
}

// flattenAllOf merges the properties and required lists of allOf members into
// a copy of s.
func flattenAllOf(s *openapi3.Schema) *openapi3.Schema {
	if len(s.AllOf) == 0 {
		return s
	}
	out := *s
	out.Properties = make(openapi3.Schemas, len(s.Properties))
	for name, ref := range s.Properties {
		out.Properties[name] = ref
	}
	out.Required = append([]string(nil), s.Required...)
	for _, member := range s.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		flat := flattenAllOf(member.Value)
		for name, ref := range flat.Properties {
			if _, exists := out.Properties[name]; !exists {
				out.Properties[name] = ref
			}
		}
		out.Required = append(out.Required, flat.Required...)
		if out.Extensions == nil && len(flat.Extensions) > 0 {
			out.Extensions = flat.Extensions
		}
	}
	return &out
}

type property struct {
	name     string
	schema   *openapi3.Schema
	order    float64
	hasOrder bool
}

func sortedProperties(schema *openapi3.Schema) []property {
	props := make([]property, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		p := property{name: name, schema: ref.Value}
		p.order, p.hasOrder = numberExtension(ref.Value.Extensions, orderExtension)
		props = append(props, p)
	}
	sort.SliceStable(props, func(i, j int) bool {
		a, b := props[i], props[j]
		if a.hasOrder != b.hasOrder {
			return a.hasOrder
		}
		if a.hasOrder && a.order != b.order {
			return a.order < b.order
		}
		return a.name < b.name
	})
	return props
}

func buildSteps(schema *openapi3.Schema, cfg Options) ([]model.Step, model.Record, error) {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	groups := make(map[string]*model.Step)
	var order []string
	group := func(id string) *model.Step {
		if step, ok := groups[id]; ok {
			return step
		}
		step := &model.Step{ID: id}
		groups[id] = step
		order = append(order, id)
		return step
	}

	for _, id := range declaredSteps(schema.Extensions) {
		step := group(id.id)
		step.Title = id.title
	}

	var initial model.Record
	for _, prop := range sortedProperties(schema) {
		field, ok, err := fieldFor(prop.name, prop.schema, required[prop.name], cfg)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}

		stepID := stringExtension(prop.schema.Extensions, stepExtension)
		if stepID == "" {
			stepID = detailsStepID
		}
		step := group(stepID)
		if step.Title == "" {
			step.Title = stringExtension(prop.schema.Extensions, stepTitleExtension)
		}
		step.Fields = append(step.Fields, field)

		if prop.schema.Default != nil {
			value, err := model.FromAny(prop.schema.Default)
			if err != nil {
				return nil, nil, fmt.Errorf("property %q default: %w", prop.name, err)
			}
			if initial == nil {
				initial = model.Record{}
			}
			initial[field.Name] = value
		}
	}

	// The ungrouped step always trails unless x-steps placed it explicitly.
	if idx := slices.Index(order, detailsStepID); idx >= 0 && !declaresStep(schema.Extensions, detailsStepID) {
		order = append(slices.Delete(order, idx, idx+1), detailsStepID)
	}

	steps := make([]model.Step, 0, len(order))
	for _, id := range order {
		step := groups[id]
		if len(step.Fields) == 0 {
			continue
		}
		if step.Title == "" {
			if id == detailsStepID {
				step.Title = cfg.DetailsStepTitle
			} else {
				step.Title = humanize(id)
			}
		}
		steps = append(steps, *step)
	}

	if err := model.CheckSteps(steps); err != nil {
		return nil, nil, err
	}
	return steps, initial, nil
}

func fieldFor(name string, s *openapi3.Schema, required bool, cfg Options) (model.Field, bool, error) {
	field := model.Field{
		Name:        name,
		Label:       s.Title,
		Required:    required,
		HelpText:    s.Description,
		Placeholder: stringExtension(s.Extensions, placeholderExtension),
	}
	if field.Label == "" {
		field.Label = humanize(name)
	}

	var rules []string
	schemaType := ""
	if s.Type != nil && len(s.Type.Slice()) > 0 {
		schemaType = s.Type.Slice()[0]
	}

	switch {
	case len(s.Enum) > 0:
		field.Type = model.FieldTypeSelect
		for _, v := range s.Enum {
			value := fmt.Sprint(v)
			field.Options = append(field.Options, model.Option{Value: value, Label: value})
		}
		rules = append(rules, "options")
	case schemaType == openapi3.TypeInteger || schemaType == openapi3.TypeNumber:
		field.Type = model.FieldTypeNumber
		if s.Min != nil {
			v := *s.Min
			field.Min = &v
		}
		if s.Max != nil {
			v := *s.Max
			field.Max = &v
		}
		if schemaType == openapi3.TypeInteger {
			step := 1.0
			field.Step = &step
		}
		if s.MultipleOf != nil {
			v := *s.MultipleOf
			field.Step = &v
		}
		rules = append(rules, "numeric")
		if field.Min != nil || field.Max != nil {
			rules = append(rules, "range")
		}
	case schemaType == openapi3.TypeBoolean:
		field.Type = model.FieldTypeSelect
		field.Options = []model.Option{{Value: "true", Label: "Yes"}, {Value: "false", Label: "No"}}
		rules = append(rules, "options")
	case schemaType == openapi3.TypeObject || schemaType == openapi3.TypeArray:
		return model.Field{}, false, nil
	default:
		switch strings.ToLower(s.Format) {
		case "email":
			field.Type = model.FieldTypeEmail
			rules = append(rules, "email")
		case "tel", "phone":
			field.Type = model.FieldTypeTel
		case "textarea":
			field.Type = model.FieldTypeTextarea
		default:
			field.Type = model.FieldTypeText
			if s.MaxLength != nil && *s.MaxLength > 255 {
				field.Type = model.FieldTypeTextarea
			}
		}
		if s.MinLength > 0 {
			rules = append(rules, "min_length:"+strconv.FormatUint(s.MinLength, 10))
		}
		if s.MaxLength != nil {
			rules = append(rules, "max_length:"+strconv.FormatUint(*s.MaxLength, 10))
		}
		if s.Pattern != "" {
			rules = append(rules, "pattern:"+s.Pattern)
		}
	}

	rules = append(rules, stringListExtension(s.Extensions, validatorsExtension)...)

	field.Validators = rules
	validate, err := cfg.Registry.Compose(rules, field)
	if err != nil {
		return model.Field{}, false, fmt.Errorf("property %q: %w", name, err)
	}
	field.Validate = validate
	return field, true, nil
}

type declaredStep struct {
	id    string
	title string
}

func declaredSteps(ext map[string]any) []declaredStep {
	raw, ok := ext[stepsExtension].([]any)
	if !ok {
		return nil
	}
	out := make([]declaredStep, 0, len(raw))
	for _, entry := range raw {
		switch typed := entry.(type) {
		case string:
			if id := strings.TrimSpace(typed); id != "" {
				out = append(out, declaredStep{id: id})
			}
		case map[string]any:
			id, _ := typed["id"].(string)
			title, _ := typed["title"].(string)
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, declaredStep{id: id, title: title})
			}
		}
	}
	return out
}

func declaresStep(ext map[string]any, id string) bool {
	for _, step := range declaredSteps(ext) {
		if step.id == id {
			return true
		}
	}
	return false
}

func stringExtension(ext map[string]any, key string) string {
	value, _ := ext[key].(string)
	return strings.TrimSpace(value)
}

// stringListExtension reads an extension holding either a single string or a
// list of strings. Blank entries are dropped.
func stringListExtension(ext map[string]any, key string) []string {
	var raw []any
	switch typed := ext[key].(type) {
	case string:
		raw = []any{typed}
	case []any:
		raw = typed
	case []string:
		for _, v := range typed {
			raw = append(raw, v)
		}
	default:
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		value, ok := entry.(string)
		if !ok {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}

func numberExtension(ext map[string]any, key string) (float64, bool) {
	switch v := ext[key].(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return model.ParseNumber(v)
	default:
		return 0, false
	}
}

// humanize turns "footTraffic", "foot_traffic" or "foot-traffic" into
// "Foot Traffic".
func humanize(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}
