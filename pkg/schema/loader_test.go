package schema_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/schema"
	"github.com/goliatone/go-stepform/pkg/widgets"
)

func TestLoadFS_YAML(t *testing.T) {
	store := loadStore(t, "basic")
	form, ok := store.Form("newsletter")
	if !ok {
		t.Fatalf("form newsletter not found")
	}
	if got := len(form.Steps); got != 2 {
		t.Fatalf("expected 2 steps, got %d", got)
	}
	if form.Steps[1].ID != "step-2" {
		t.Fatalf("expected generated step id, got %q", form.Steps[1].ID)
	}

	freq, _ := form.Steps[0].FieldByName("frequency")
	want := []model.Option{{Value: "weekly", Label: "Weekly digest"}, {Value: "monthly", Label: "monthly"}}
	if diff := cmp.Diff(want, freq.Options); diff != "" {
		t.Fatalf("options (-want +got):\n%s", diff)
	}

	interests, _ := form.Steps[1].FieldByName("interests")
	if interests.Label != "interests" || widgets.Resolve(interests).Name != widgets.WidgetText {
		t.Fatalf("unknown type should keep its tag and render as text: %+v", interests)
	}

	email, _ := form.Steps[0].FieldByName("email")
	if email.Validate == nil || email.Validate(model.String("nope"), nil) != "Email is invalid" {
		t.Fatalf("email validator not composed")
	}
	if store.Source("newsletter") != "forms.yaml" {
		t.Fatalf("unexpected source %q", store.Source("newsletter"))
	}
}

func TestLoadFS_JSON(t *testing.T) {
	store := loadStore(t, "json")
	form, ok := store.Form("feedback")
	if !ok {
		t.Fatalf("form feedback not found")
	}
	if form.SubmitLabel != "Send" || form.Steps[0].Component != "star-rating" {
		t.Fatalf("unexpected form metadata %+v", form)
	}

	e, err := engine.New(form.Steps, engine.WithInitialData(form.Initial))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if got := e.Value("rating"); !got.Equal(model.Number(3)) {
		t.Fatalf("initial rating not applied: %v", got)
	}
	_ = e.SetField("rating", model.Number(9))
	_ = e.SetField("comment", model.String("meh"))
	e.ValidateStep(0)
	want := map[string]string{
		"rating":  "Must be between 1 and 5",
		"comment": "Comment must be at least 10 characters long",
	}
	if diff := cmp.Diff(want, e.Errors()); diff != "" {
		t.Fatalf("errors (-want +got):\n%s", diff)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]string{
		"invalid_duplicate": `duplicate form "signup"`,
		"invalid_rule":      `unknown rule "no_such_rule"`,
		"invalid_initial":   `undeclared field "ghost"`,
	}
	for dir, want := range cases {
		t.Run(dir, func(t *testing.T) {
			_, err := schema.LoadFS(subDirFS(t, dir), nil)
			if err == nil || !strings.Contains(err.Error(), want) {
				t.Fatalf("expected error containing %q, got %v", want, err)
			}
		})
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := schema.LoadFS(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() || len(store.IDs()) != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestEmbeddedCampaignBooking(t *testing.T) {
	store, err := schema.LoadFS(schema.EmbeddedFS(), nil)
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if diff := cmp.Diff([]string{"campaign-booking"}, store.IDs()); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	form, _ := store.Form("campaign-booking")
	e, err := engine.New(form.Steps, engine.WithInitialData(form.Initial))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	_ = e.SetField("listingId", model.String("1"))
	_ = e.SetField("campaignName", model.String("Spring launch"))
	if !e.Advance() {
		t.Fatalf("first step should pass: %v", e.Errors())
	}
	_ = e.SetField("startDate", model.String("2025-03-10"))
	_ = e.SetField("endDate", model.String("2025-03-01"))
	if e.Advance() {
		t.Fatalf("end date before start date must block")
	}
	if got := e.ErrorFor("endDate"); got != "Must be after Start Date" {
		t.Fatalf("unexpected end date error %q", got)
	}
	_ = e.SetField("endDate", model.String("31/03/2025"))
	e.ValidateStep(e.CurrentStep())
	if got := e.ErrorFor("endDate"); got != "End Date has an invalid format" {
		t.Fatalf("unexpected format error %q", got)
	}
	if got := e.Value("currency"); got.Text() != "ZAR" {
		t.Fatalf("expected initial currency, got %v", got)
	}
}

func loadStore(t *testing.T, subdir string) *schema.Store {
	t.Helper()
	store, err := schema.LoadFS(subDirFS(t, subdir), nil)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return store
}

func subDirFS(t *testing.T, subdir string) fs.FS {
	t.Helper()
	base := os.DirFS(testdataRoot())
	fsys, err := fs.Sub(base, subdir)
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return fsys
}

func testdataRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "testdata"
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}
