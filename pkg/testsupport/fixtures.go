package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/model"
)

// MustEngine constructs an engine or fails the test.
func MustEngine(t *testing.T, steps []model.Step, opts ...engine.Option) *engine.Engine {
	t.Helper()
	e, err := engine.New(steps, opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

// MustSet stores values on e, failing the test on unknown fields.
func MustSet(t *testing.T, e *engine.Engine, values map[string]model.Value) {
	t.Helper()
	for name, value := range values {
		if err := e.SetField(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
}

// MustAdvance advances e and fails the test when the step does not validate.
func MustAdvance(t *testing.T, e *engine.Engine) {
	t.Helper()
	if !e.Advance() {
		t.Fatalf("advance from step %d failed: %v", e.CurrentStep(), e.Errors())
	}
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertJSONGolden compares the JSON shape of got with the golden file.
// Both sides are decoded into generic values so formatting and key order do
// not matter.
func AssertJSONGolden(t *testing.T, path string, got any) {
	t.Helper()
	if WriteGolden(t, path, got) {
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	var want any
	if err := json.Unmarshal(raw, &want); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	payload, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var have any
	if err := json.Unmarshal(payload, &have); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Fatalf("golden mismatch %s (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
