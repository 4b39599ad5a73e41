package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Component prompts the fields of a step that names a custom component in
// place of the default field-by-field flow.
type Component func(ctx context.Context, p *StepPrompter) error

// Components tracks step components keyed by name. Steps naming a component
// that is not registered use the default flow.
type Components struct {
	mu         sync.RWMutex
	components map[string]Component
}

// NewComponents creates an empty component registry.
func NewComponents() *Components {
	return &Components{components: make(map[string]Component)}
}

// Register associates a component with name, replacing any existing entry.
func (c *Components) Register(name string, component Component) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("tui: component name is required")
	}
	if component == nil {
		return fmt.Errorf("tui: component %q is nil", name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.components[name] = component
	return nil
}

// MustRegister mirrors Register but panics on error.
func (c *Components) MustRegister(name string, component Component) {
	if err := c.Register(name, component); err != nil {
		panic(err)
	}
}

// Lookup fetches a component by name.
func (c *Components) Lookup(name string) (Component, bool) {
	if c == nil || strings.TrimSpace(name) == "" {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	component, ok := c.components[normalize(name)]
	return component, ok
}

// Names returns the registered component names sorted.
func (c *Components) Names() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.components))
	for name := range c.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
