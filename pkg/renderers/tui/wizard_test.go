package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/render"
	"github.com/goliatone/go-stepform/pkg/testsupport"
	"github.com/goliatone/go-stepform/pkg/validators"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	textAreas []string

	inputErr error

	inputPos   int
	selectPos  int
	confirmPos int
	textPos    int

	selects []SelectConfig
	infos   []string
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func twoSteps() []model.Step {
	return []model.Step{
		model.NewStep("profile", "Profile", model.Text("name", "Name", model.Required())),
		model.NewStep("contact", "Contact", model.Email("email", "Email", model.Required())),
	}
}

func mustWizard(t *testing.T, driver PromptDriver, opts ...Option) *Wizard {
	t.Helper()
	w, err := New(append([]Option{WithPromptDriver(driver)}, opts...)...)
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}
	return w
}

func TestWizard_RepromptsUntilStepIsValid(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Ada", "ada@example.com"},
		selectIdx: []int{0},
	}
	var submitted model.Record
	e := testsupport.MustEngine(t, twoSteps(), engine.WithOnComplete(func(_ context.Context, r model.Record) error {
		submitted = r
		return nil
	}))

	record, err := mustWizard(t, driver).Run(context.Background(), e)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := model.Record{"name": model.String("Ada"), "email": model.String("ada@example.com")}
	if diff := cmp.Diff(want.Map(), record.Map()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Map(), submitted.Map()); diff != "" {
		t.Fatalf("callback record mismatch (-want +got):\n%s", diff)
	}
	if !containsMessage(driver.infos, "x Name is required") {
		t.Fatalf("expected required error to be shown, got %v", driver.infos)
	}
	if !containsMessage(driver.infos, "==> Step 2 of 2: Contact") {
		t.Fatalf("expected step header, got %v", driver.infos)
	}
	if diff := cmp.Diff([]string{"Submit", "Back"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("navigation options (-want +got):\n%s", diff)
	}
}

func TestWizard_NonFiniteNumbersAreRejected(t *testing.T) {
	zero := 0.0
	steps := []model.Step{
		model.NewStep("pricing", "Pricing", model.NumberField("price", "Price",
			model.Required(),
			model.WithValidator(validators.NumberRange(&zero, nil, "")),
			model.WithValidator(validators.Positive("")),
		)),
	}
	driver := &stubDriver{inputs: []string{"NaN", "Inf", "-Inf", "42"}}
	calls := 0
	e := testsupport.MustEngine(t, steps, engine.WithOnComplete(func(context.Context, model.Record) error {
		calls++
		return nil
	}))

	out, err := mustWizard(t, driver).Render(context.Background(), e, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one completion call, got %d", calls)
	}
	if driver.inputPos != 4 {
		t.Fatalf("expected every non-finite answer to be re-prompted, consumed %d inputs", driver.inputPos)
	}
	rejected := 0
	for _, msg := range driver.infos {
		if msg == "x Must be a number" {
			rejected++
		}
	}
	if rejected != 3 {
		t.Fatalf("expected three number errors, got %v", driver.infos)
	}
	if !strings.Contains(string(out), `"price": 42`) {
		t.Fatalf("expected numeric price in output, got %s", out)
	}
}

func TestWizard_BackKeepsValues(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com", "Ada Lovelace", "ada@example.com"},
		selectIdx: []int{1, 0},
	}
	record, err := mustWizard(t, driver).Run(context.Background(), testsupport.MustEngine(t, twoSteps()))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := record.Get("name").Text(); got != "Ada Lovelace" {
		t.Fatalf("expected revised name, got %q", got)
	}
}

func TestWizard_SubmissionFailure(t *testing.T) {
	boom := errors.New("boom")
	steps := []model.Step{model.NewStep("only", "Only", model.Text("name", "Name", model.Required()))}

	t.Run("declined retry returns callback error", func(t *testing.T) {
		driver := &stubDriver{inputs: []string{"Ada"}, confirm: []bool{false}}
		e := testsupport.MustEngine(t, steps, engine.WithOnComplete(func(context.Context, model.Record) error { return boom }))
		_, err := mustWizard(t, driver).Run(context.Background(), e)
		if !errors.Is(err, boom) {
			t.Fatalf("expected callback error, got %v", err)
		}
		if !containsMessage(driver.infos, "x "+engine.DefaultFailureMessage) {
			t.Fatalf("expected form error to be shown, got %v", driver.infos)
		}
	})

	t.Run("retry succeeds", func(t *testing.T) {
		calls := 0
		driver := &stubDriver{inputs: []string{"Ada", "Ada"}, confirm: []bool{true}}
		e := testsupport.MustEngine(t, steps, engine.WithOnComplete(func(context.Context, model.Record) error {
			calls++
			if calls == 1 {
				return boom
			}
			return nil
		}))
		record, err := mustWizard(t, driver).Run(context.Background(), e)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if calls != 2 || record.Get("name").Text() != "Ada" {
			t.Fatalf("unexpected result calls=%d record=%v", calls, record)
		}
		if e.SubmissionState() != engine.SubmissionSucceeded {
			t.Fatalf("expected succeeded state, got %s", e.SubmissionState())
		}
	})
}

func TestWizard_Abort(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	_, err := mustWizard(t, driver).Run(context.Background(), testsupport.MustEngine(t, twoSteps()))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected abort, got %v", err)
	}
}

func TestWizard_WidgetsAndRender(t *testing.T) {
	steps := []model.Step{
		model.NewStep("pricing", "Pricing",
			model.NumberField("price", "Price", model.Required()),
			model.Select("unit", "Unit", model.OptionsFromValues("day", "week")),
			model.Textarea("notes", "Notes"),
		),
	}
	driver := &stubDriver{
		inputs:    []string{"42.5"},
		selectIdx: []int{2},
		textAreas: []string{"weekly only"},
	}
	out, err := mustWizard(t, driver).Render(context.Background(), testsupport.MustEngine(t, steps), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{`"price": 42.5`, `"unit": "week"`, `"notes": "weekly only"`} {
		if !strings.Contains(string(out), fragment) {
			t.Fatalf("expected %s in %s", fragment, out)
		}
	}
	if diff := cmp.Diff([]string{"Select unit", "day", "week"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("select options (-want +got):\n%s", diff)
	}
}

func TestWizard_StepComponent(t *testing.T) {
	steps := []model.Step{
		model.NewStep("basics", "Basics",
			model.Select("category", "Category", model.OptionsFromValues("a", "b"), model.Required()),
			model.Select("sub", "Subcategory", model.OptionsFromValues("a1", "a2", "b1"), model.Required()),
		),
	}
	steps[0].Component = "basics"

	components := NewComponents()
	components.MustRegister("basics", func(ctx context.Context, p *StepPrompter) error {
		if err := p.Field(ctx, "category"); err != nil {
			return err
		}
		var narrowed []model.Option
		for _, opt := range model.OptionsFromValues("a1", "a2", "b1") {
			if strings.HasPrefix(opt.Value, p.Engine().Value("category").Text()) {
				narrowed = append(narrowed, opt)
			}
		}
		return p.Select(ctx, "sub", narrowed)
	})

	driver := &stubDriver{selectIdx: []int{1, 2}}
	record, err := mustWizard(t, driver, WithComponents(components)).Run(context.Background(), testsupport.MustEngine(t, steps))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"Select subcategory", "a1", "a2"}, driver.selects[1].Options); diff != "" {
		t.Fatalf("narrowed options (-want +got):\n%s", diff)
	}
	if record.Get("sub").Text() != "a2" {
		t.Fatalf("unexpected subcategory %q", record.Get("sub").Text())
	}
}

func TestSerialize(t *testing.T) {
	record := model.Record{"b": model.String("x y"), "a": model.Number(2)}
	cases := []struct {
		format OutputFormat
		want   string
	}{
		{format: OutputFormatPrettyText, want: "a=2\nb=x y\n"},
		{format: OutputFormatFormURLEncoded, want: "a=2&b=x+y"},
		{format: OutputFormatYAML, want: "a: 2\nb: x y\n"},
	}
	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			out, err := Serialize(record, tc.format)
			if err != nil {
				t.Fatalf("serialize: %v", err)
			}
			if string(out) != tc.want {
				t.Fatalf("got %q, want %q", out, tc.want)
			}
		})
	}
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func containsMessage(messages []string, want string) bool {
	for _, msg := range messages {
		if msg == want {
			return true
		}
	}
	return false
}
