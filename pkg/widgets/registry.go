package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-stepform/pkg/model"
)

// Matcher decides whether a widget override should handle the supplied field.
type Matcher func(field model.Field) bool

// Builder produces the widget for a matched field. It receives the built-in
// resolution so overrides can adjust rather than rebuild.
type Builder func(field model.Field, base Widget) Widget

type rule struct {
	name     string
	priority int
	match    Matcher
	build    Builder
	order    int
}

// Registry layers caller overrides on top of the built-in dispatch. Higher
// priority wins; ties fall back to registration order. An empty registry
// resolves exactly like Resolve.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an override with the provided name and priority. Registrations
// with an empty name or nil callbacks are ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher, builder Builder) {
	if r == nil || matcher == nil || builder == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		build:    builder,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for a field, applying the highest priority
// matching override. The returned widget's Name is the override's name.
func (r *Registry) Resolve(field model.Field) Widget {
	base := Resolve(field)
	if r == nil {
		return base
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return base
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			widget := entry.build(field, base)
			widget.Name = entry.name
			return widget
		}
	}
	return base
}

// Names lists registered override names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rules))
	for _, entry := range r.rules {
		names = append(names, entry.name)
	}
	return names
}
