package html

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/render"
)

// Component draws the body of a step that names a custom component. It
// receives the prepared step view and writes markup into buf. Fields it does
// not handle itself can be delegated to data.RenderField.
type Component func(buf *bytes.Buffer, view render.StepView, data ComponentData) error

// ComponentData carries helpers and live state for component renderers.
type ComponentData struct {
	// Engine is the engine being rendered. Components must treat it as read
	// only.
	Engine *engine.Engine
	// RenderField renders one field with the default field template.
	RenderField func(field render.FieldView) (string, error)
}

// Components tracks step components keyed by name. Steps naming a component
// that is not registered fall back to the default field list.
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
		return fmt.Errorf("html: component name is required")
	}
	if component == nil {
		return fmt.Errorf("html: component %q is nil", name)
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

// Lookup fetches a component by name. A nil registry has no components.
func (c *Components) Lookup(name string) (Component, bool) {
	if c == nil {
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
