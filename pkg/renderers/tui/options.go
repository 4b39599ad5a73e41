package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-stepform/pkg/widgets"
)

// OutputFormat controls how the completed record is serialized by Render.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits a YAML document.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the wizard applies to messages.
type Theme struct {
	StepPrefix  string
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is applied when no theme is configured.
var DefaultTheme = Theme{StepPrefix: "==>", InfoPrefix: "", ErrorPrefix: "x"}

// Option configures the wizard.
type Option func(*Wizard)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(w *Wizard) {
		if driver != nil {
			w.driver = driver
		}
	}
}

// WithOutputFormat selects the serialization format used by Render.
func WithOutputFormat(format OutputFormat) Option {
	return func(w *Wizard) {
		if format != "" {
			w.outputFormat = format
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(w *Wizard) {
		w.theme = theme
	}
}

// WithComponents installs the step component registry.
func WithComponents(components *Components) Option {
	return func(w *Wizard) {
		w.components = components
	}
}

// WithWidgets overrides the field-type dispatch.
func WithWidgets(reg *widgets.Registry) Option {
	return func(w *Wizard) {
		w.widgets = reg
	}
}

// WithLogger attaches a zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}
