package html

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/render"
	"github.com/goliatone/go-stepform/pkg/testsupport"
)

func testSteps() []model.Step {
	return []model.Step{
		model.NewStep("profile", "Profile",
			model.Text("name", "Name", model.Required(), model.WithHelpText(`Use your <b>legal</b> name<script>alert(1)</script>`)),
			model.NumberField("age", "Age", model.WithMin(0), model.WithMax(120)),
		),
		model.NewStep("details", "Details",
			model.Select("unit", "Unit", model.OptionsFromValues("day", "week")),
			model.Textarea("notes", "Notes", model.WithRows(3)),
		),
	}
}

func mustRender(t *testing.T, r *Renderer, e *engine.Engine, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(context.Background(), e, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_Metadata(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if r.Name() != "html" {
		t.Fatalf("unexpected name %q", r.Name())
	}
	if r.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRenderer_FirstStepWithErrors(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	e := testsupport.MustEngine(t, testSteps())
	if e.Advance() {
		t.Fatalf("advance should fail with blank required field")
	}

	out := mustRender(t, r, e, render.RenderOptions{FormID: "signup", Title: "Sign Up", Action: "/signup"})
	assertContains(t, out,
		`<h1 class="sf-form__title">Sign Up</h1>`,
		`<p class="sf-indicator">Step 1 of 2</p>`,
		`id="sf-signup"`,
		`action="/signup"`,
		`method="POST"`,
		`sf-progress__step--active`,
		`sf-field--invalid`,
		`Name is required`,
		`aria-invalid="true"`,
		`min="0"`,
		`max="120"`,
		`<input type="hidden" name="_step" value="0">`,
		`value="next"`,
	)
	if strings.Contains(out, `value="back"`) {
		t.Fatalf("first step must not render a back button")
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("help text must be sanitised")
	}
	assertContains(t, out, "<b>legal</b>")
}

func TestRenderer_LastStepCarriesEarlierValues(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	e := testsupport.MustEngine(t, testSteps(), engine.WithSubmitLabel("Create"))
	testsupport.MustSet(t, e, map[string]model.Value{
		"name": model.String("Ada <Lovelace>"),
		"unit": model.String("week"),
	})
	testsupport.MustAdvance(t, e)

	out := mustRender(t, r, e, render.RenderOptions{
		FormErrors: []string{"Server unavailable"},
		Hidden:     map[string]string{"csrf": "tok"},
	})
	assertContains(t, out,
		`name="name" value="Ada &lt;Lovelace&gt;"`,
		`name="csrf" value="tok"`,
		`name="_step" value="1"`,
		`<option value="week" selected>week</option>`,
		`rows="3"`,
		`value="back"`,
		`>Create</button>`,
		`Server unavailable`,
		`sf-progress__step--complete`,
	)
}

func TestRenderer_StepComponent(t *testing.T) {
	components := NewComponents()
	components.MustRegister("Profile-Card", func(buf *bytes.Buffer, view render.StepView, data ComponentData) error {
		buf.WriteString(`<div class="card">`)
		field, _ := view.Field("name")
		out, err := data.RenderField(field)
		if err != nil {
			return err
		}
		buf.WriteString(out)
		buf.WriteString(`</div>`)
		return nil
	})

	r, err := New(WithComponents(components))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	steps := testSteps()
	steps[0].Component = "profile-card"
	out := mustRender(t, r, testsupport.MustEngine(t, steps), render.RenderOptions{})
	assertContains(t, out, `<div class="card">`, `name="name"`)
	if strings.Contains(out, `name="age"`) {
		t.Fatalf("component output should replace the default field list")
	}

	steps[0].Component = "missing"
	out = mustRender(t, r, testsupport.MustEngine(t, steps), render.RenderOptions{})
	assertContains(t, out, `name="name"`, `name="age"`)
}

func TestComponents_Register(t *testing.T) {
	c := NewComponents()
	if err := c.Register(" ", func(*bytes.Buffer, render.StepView, ComponentData) error { return nil }); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := c.Register("x", nil); err == nil {
		t.Fatalf("expected nil component error")
	}
	var nilRegistry *Components
	if _, ok := nilRegistry.Lookup("x"); ok {
		t.Fatalf("nil registry must not resolve components")
	}
}

func TestRenderer_Theme(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "market",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456", "radius": "4px"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#000000"}},
		},
	}
	cfg := ThemeFromManifest(manifest, "dark")
	if cfg.CSSVars["--brand"] != "#000000" || cfg.Variant != "dark" {
		t.Fatalf("variant tokens not applied: %+v", cfg)
	}
	if base := ThemeFromManifest(manifest, "sepia"); base.Variant != "" || base.Tokens["brand"] != "#123456" {
		t.Fatalf("unknown variant should resolve the base theme: %+v", base)
	}

	r, err := New(WithTheme(cfg))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out := mustRender(t, r, testsupport.MustEngine(t, testSteps()), render.RenderOptions{})
	assertContains(t, out,
		`data-theme="market"`,
		`data-theme-variant="dark"`,
		`style="--brand: #000000; --radius: 4px;"`,
	)
}

func TestRenderer_ThemeFromRenderOptions(t *testing.T) {
	base := ThemeFromManifest(&theme.Manifest{Name: "market", Tokens: map[string]string{"brand": "#123456"}}, "")
	r, err := New(WithTheme(base))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	override := ThemeFromManifest(&theme.Manifest{Name: "promo", Tokens: map[string]string{"brand": "#ff0000"}}, "")

	out := mustRender(t, r, testsupport.MustEngine(t, testSteps()), render.RenderOptions{Theme: override})
	assertContains(t, out, `data-theme="promo"`, `style="--brand: #ff0000;"`)

	out = mustRender(t, r, testsupport.MustEngine(t, testSteps()), render.RenderOptions{})
	assertContains(t, out, `data-theme="market"`, `style="--brand: #123456;"`)
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/step.tmpl":  {Data: []byte(`[{{ step.title }}]{{ body|safe }}`)},
		"templates/field.tmpl": {Data: []byte(`<{{ field.name }}>`)},
	}
	r, err := New(WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out := mustRender(t, r, testsupport.MustEngine(t, testSteps()), render.RenderOptions{})
	if out != "[Profile]<name><age>" {
		t.Fatalf("unexpected output %q", out)
	}
}
