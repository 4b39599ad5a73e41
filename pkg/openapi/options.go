package openapi

import "github.com/goliatone/go-stepform/pkg/validators"

// Options configures how documents are loaded and converted.
type Options struct {
	// ExternalRefs allows $ref pointers to other documents.
	ExternalRefs bool
	// Validate runs kin-openapi document validation before conversion.
	Validate bool
	// DetailsStepTitle titles the step that collects ungrouped properties.
	DetailsStepTitle string
	// Registry resolves the validator rules derived from schema keywords and
	// the names listed under x-validators.
	Registry *validators.Registry
}

// Option mutates Options.
type Option func(*Options)

// WithExternalRefs toggles loading of external references.
func WithExternalRefs(enabled bool) Option {
	return func(o *Options) { o.ExternalRefs = enabled }
}

// WithValidation toggles document validation.
func WithValidation(enabled bool) Option {
	return func(o *Options) { o.Validate = enabled }
}

// WithDetailsStepTitle overrides the title of the ungrouped step.
func WithDetailsStepTitle(title string) Option {
	return func(o *Options) {
		if title != "" {
			o.DetailsStepTitle = title
		}
	}
}

// WithRegistry supplies the validator registry.
func WithRegistry(reg *validators.Registry) Option {
	return func(o *Options) {
		if reg != nil {
			o.Registry = reg
		}
	}
}

func newOptions(options ...Option) Options {
	cfg := Options{
		Validate:         true,
		DetailsStepTitle: "Details",
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Registry == nil {
		cfg.Registry = validators.NewRegistry()
	}
	return cfg
}
