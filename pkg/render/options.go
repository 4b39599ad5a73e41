package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-stepform/pkg/widgets"
)

// RenderOptions carry per-request data renderers use without mutating the
// engine.
type RenderOptions struct {
	// FormID and Title identify the form in the rendered chrome.
	FormID string
	Title  string
	// Action and Method populate the HTML form element. Method defaults to
	// POST.
	Action string
	Method string
	// FormErrors are extra form-level messages shown above the fields next to
	// the engine's own submission failure message.
	FormErrors []string
	// Hidden fields are emitted alongside the visible controls.
	Hidden map[string]string
	// Widgets overrides the built-in field-type dispatch.
	Widgets *widgets.Registry
	// Theme replaces the renderer's configured theme for this call.
	Theme *theme.RendererConfig
}
