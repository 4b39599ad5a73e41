package validators

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/goliatone/go-stepform/pkg/model"
)

func TestBuiltinValidators(t *testing.T) {
	ten, hundred := 10.0, 100.0
	record := model.Record{"start": model.String("2024-01-10"), "low": model.Number(5)}

	cases := []struct {
		name string
		fn   model.Validator
		in   model.Value
		want string
	}{
		{name: "email valid", fn: Email(""), in: model.String("a@b.co"), want: ""},
		{name: "email invalid", fn: Email(""), in: model.String("nope"), want: "Email is invalid"},
		{name: "email blank passes", fn: Email(""), in: model.String(""), want: ""},
		{name: "min length short", fn: MinLength(10, "too short"), in: model.String("  hello  "), want: "too short"},
		{name: "min length ok", fn: MinLength(10, "too short"), in: model.String("hello world"), want: ""},
		{name: "max length", fn: MaxLength(3, ""), in: model.String("abcd"), want: "Must be at most 3 characters long"},
		{name: "pattern", fn: Pattern(regexp.MustCompile(`^\d+$`), "digits"), in: model.String("12a"), want: "digits"},
		{name: "numeric", fn: Numeric(""), in: model.String("x"), want: "Must be a number"},
		{name: "range below", fn: NumberRange(&ten, &hundred, ""), in: model.Number(5), want: "Must be between 10 and 100"},
		{name: "range inside", fn: NumberRange(&ten, &hundred, ""), in: model.String("50"), want: ""},
		{name: "range min only", fn: NumberRange(&ten, nil, ""), in: model.Number(1), want: "Must be at least 10"},
		{name: "positive zero", fn: Positive(""), in: model.Number(0), want: "Must be greater than zero"},
		{name: "numeric nan", fn: Numeric(""), in: model.String("NaN"), want: "Must be a number"},
		{name: "numeric inf", fn: Numeric(""), in: model.String("Inf"), want: "Must be a number"},
		{name: "range nan", fn: NumberRange(&ten, nil, ""), in: model.String("NaN"), want: "Must be a number"},
		{name: "range infinity", fn: NumberRange(&ten, nil, ""), in: model.String("+Inf"), want: "Must be a number"},
		{name: "positive nan", fn: Positive(""), in: model.Number(math.NaN()), want: "Must be greater than zero"},
		{name: "positive inf text", fn: Positive(""), in: model.String("Inf"), want: "Must be greater than zero"},
		{name: "one of", fn: OneOf([]string{"day"}, ""), in: model.String("year"), want: "Select a valid option"},
		{name: "after dates", fn: After("start", "start date"), in: model.String("2024-01-09"), want: "Must be after start date"},
		{name: "after dates ok", fn: After("start", "start date"), in: model.String("2024-02-01"), want: ""},
		{name: "after numbers", fn: After("low", "low"), in: model.Number(5), want: "Must be after low"},
		{name: "after missing operand", fn: After("missing", "x"), in: model.Number(1), want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in, record); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAll_FirstMessageWins(t *testing.T) {
	fn := All(nil, MinLength(5, "short"), Email("bad email"))
	if got := fn(model.String("a@b"), nil); got != "short" {
		t.Fatalf("expected first failure, got %q", got)
	}
	if got := fn(model.String("abcdef"), nil); got != "bad email" {
		t.Fatalf("expected second failure, got %q", got)
	}
}

func TestRegistry_Build(t *testing.T) {
	reg := NewRegistry()
	field := model.Textarea("message", "Message")

	fn, err := reg.Compose([]string{"min_length:10"}, field)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if got := fn(model.String("short"), nil); got != "Message must be at least 10 characters long" {
		t.Fatalf("unexpected message %q", got)
	}

	if _, err := reg.Build("nope", field); err == nil || !strings.Contains(err.Error(), `unknown rule "nope"`) {
		t.Fatalf("expected unknown rule error, got %v", err)
	}
	if _, err := reg.Build("min_length:x", field); err == nil {
		t.Fatalf("expected invalid argument error")
	}
	if _, err := reg.Build("after", field); err == nil {
		t.Fatalf("expected after without field to fail")
	}
}

func TestRegistry_OptionsRuleUsesFieldChoices(t *testing.T) {
	reg := NewRegistry()
	field := model.Select("unit", "Unit", model.OptionsFromValues("day", "week"))
	fn, err := reg.Build("options", field)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := fn(model.String("week"), nil); got != "" {
		t.Fatalf("expected valid option, got %q", got)
	}
	if got := fn(model.String("year"), nil); got != "Select a valid unit" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRegistry_CustomRule(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("no_spaces", func(_ string, field model.Field) (model.Validator, error) {
		return func(v model.Value, _ model.Record) string {
			if strings.Contains(v.Text(), " ") {
				return field.Label + " cannot contain spaces"
			}
			return ""
		}, nil
	})
	fn, err := reg.Build("NO_SPACES", model.Text("slug", "Slug"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := fn(model.String("a b"), nil); got != "Slug cannot contain spaces" {
		t.Fatalf("unexpected message %q", got)
	}
}
