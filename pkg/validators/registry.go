package validators

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-stepform/pkg/model"
)

// Factory builds a validator from the argument that follows the rule name
// ("min_length:10" passes "10"). Field is the field the rule is attached to.
type Factory func(arg string, field model.Field) (model.Validator, error)

// Registry maps rule names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry with the built-in rules registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.registerBuiltins()
	return r
}

// Register adds or replaces a named factory.
func (r *Registry) Register(name string, factory Factory) error {
	name = normalize(name)
	if name == "" {
		return fmt.Errorf("validators: rule name is required")
	}
	if factory == nil {
		return fmt.Errorf("validators: factory for %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Names returns the registered rule names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build resolves a rule expression ("name" or "name:arg") for field.
func (r *Registry) Build(expr string, field model.Field) (model.Validator, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(expr), ":")
	name = normalize(name)

	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("validators: unknown rule %q", name)
	}
	fn, err := factory(strings.TrimSpace(arg), field)
	if err != nil {
		return nil, fmt.Errorf("validators: rule %q: %w", name, err)
	}
	return fn, nil
}

// Compose builds every rule expression and combines them with All.
func (r *Registry) Compose(exprs []string, field model.Field) (model.Validator, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	fns := make([]model.Validator, 0, len(exprs))
	for _, expr := range exprs {
		fn, err := r.Build(expr, field)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return All(fns...), nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *Registry) registerBuiltins() {
	r.MustRegister("email", func(arg string, _ model.Field) (model.Validator, error) {
		return Email(arg), nil
	})
	r.MustRegister("min_length", func(arg string, field model.Field) (model.Validator, error) {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid length %q", arg)
		}
		return MinLength(n, fmt.Sprintf("%s must be at least %d characters long", field.Label, n)), nil
	})
	r.MustRegister("max_length", func(arg string, field model.Field) (model.Validator, error) {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid length %q", arg)
		}
		return MaxLength(n, fmt.Sprintf("%s must be at most %d characters long", field.Label, n)), nil
	})
	r.MustRegister("pattern", func(arg string, field model.Field) (model.Validator, error) {
		re, err := regexp.Compile(arg)
		if err != nil {
			return nil, err
		}
		return Pattern(re, field.Label+" has an invalid format"), nil
	})
	r.MustRegister("numeric", func(_ string, field model.Field) (model.Validator, error) {
		return Numeric(field.Label + " must be a number"), nil
	})
	r.MustRegister("positive", func(_ string, field model.Field) (model.Validator, error) {
		return Positive(field.Label + " must be greater than zero"), nil
	})
	r.MustRegister("range", func(_ string, field model.Field) (model.Validator, error) {
		return NumberRange(field.Min, field.Max, ""), nil
	})
	r.MustRegister("options", func(_ string, field model.Field) (model.Validator, error) {
		allowed := make([]string, 0, len(field.Options))
		for _, opt := range field.Options {
			allowed = append(allowed, opt.Value)
		}
		return OneOf(allowed, "Select a valid "+strings.ToLower(field.Label)), nil
	})
	r.MustRegister("after", func(arg string, _ model.Field) (model.Validator, error) {
		other, label, _ := strings.Cut(arg, ",")
		other = strings.TrimSpace(other)
		if other == "" {
			return nil, fmt.Errorf("after requires a field name")
		}
		label = strings.TrimSpace(label)
		if label == "" {
			label = other
		}
		return After(other, label), nil
	})
}
