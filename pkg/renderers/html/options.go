package html

import (
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	components *Components
	theme      *theme.RendererConfig
	policy     *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// templates/step.tmpl and templates/field.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithComponents installs the step component registry.
func WithComponents(components *Components) Option {
	return func(cfg *config) {
		cfg.components = components
	}
}

// WithTheme applies a resolved theme. Its tokens become CSS custom properties
// on the form wrapper.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithSanitizer replaces the policy applied to help text and step
// descriptions.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}
