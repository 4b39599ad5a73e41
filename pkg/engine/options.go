package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-stepform/pkg/model"
)

// CompletionFunc receives a snapshot of the full record after the last step
// validates. A returned error moves the submission into the failed state.
type CompletionFunc func(ctx context.Context, record model.Record) error

// Option configures an Engine.
type Option func(*Engine)

// WithInitialData seeds the record. The map is copied.
func WithInitialData(record model.Record) Option {
	return func(e *Engine) {
		e.initial = record.Clone()
	}
}

// WithOnComplete registers the completion callback.
func WithOnComplete(fn CompletionFunc) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// WithSubmitLabel overrides the submit button label (default "Submit").
func WithSubmitLabel(label string) Option {
	return func(e *Engine) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			e.submitLabel = trimmed
		}
	}
}

// WithFailureMessage overrides the form-level message shown when the
// completion callback fails.
func WithFailureMessage(message string) Option {
	return func(e *Engine) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			e.failureMessage = trimmed
		}
	}
}

// WithLogger attaches a zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
