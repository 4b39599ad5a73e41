// Package validators provides reusable field validators and a name-keyed
// registry so declarative schemas can reference them ("email",
// "min_length:10", "after:start").
package validators

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-stepform/pkg/model"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Email rejects non-blank values that do not look like an address. Blank
// values pass; combine with Required for mandatory fields.
func Email(message string) model.Validator {
	if message == "" {
		message = "Email is invalid"
	}
	return func(value model.Value, _ model.Record) string {
		if value.IsBlank() {
			return ""
		}
		if !emailPattern.MatchString(value.Text()) {
			return message
		}
		return ""
	}
}

// MinLength requires at least n characters after trimming.
func MinLength(n int, message string) model.Validator {
	if message == "" {
		message = fmt.Sprintf("Must be at least %d characters long", n)
	}
	return func(value model.Value, _ model.Record) string {
		if value.IsBlank() {
			return ""
		}
		if utf8.RuneCountInString(strings.TrimSpace(value.Text())) < n {
			return message
		}
		return ""
	}
}

// MaxLength allows at most n characters after trimming.
func MaxLength(n int, message string) model.Validator {
	if message == "" {
		message = fmt.Sprintf("Must be at most %d characters long", n)
	}
	return func(value model.Value, _ model.Record) string {
		if utf8.RuneCountInString(strings.TrimSpace(value.Text())) > n {
			return message
		}
		return ""
	}
}

// Pattern requires non-blank values to match re.
func Pattern(re *regexp.Regexp, message string) model.Validator {
	if message == "" {
		message = "Invalid format"
	}
	return func(value model.Value, _ model.Record) string {
		if value.IsBlank() || re == nil {
			return ""
		}
		if !re.MatchString(value.Text()) {
			return message
		}
		return ""
	}
}

// Numeric requires non-blank values to parse as numbers.
func Numeric(message string) model.Validator {
	if message == "" {
		message = "Must be a number"
	}
	return func(value model.Value, _ model.Record) string {
		if value.IsBlank() {
			return ""
		}
		if _, ok := value.Float(); !ok {
			return message
		}
		return ""
	}
}

// NumberRange requires non-blank values to be numbers within [min, max]. Nil
// bounds are open.
func NumberRange(min, max *float64, message string) model.Validator {
	return func(value model.Value, _ model.Record) string {
		if value.IsBlank() {
			return ""
		}
		f, ok := value.Float()
		if !ok {
			return "Must be a number"
		}
		if (min != nil && f < *min) || (max != nil && f > *max) {
			if message != "" {
				return message
			}
			return rangeMessage(min, max)
		}
		return ""
	}
}

func rangeMessage(min, max *float64) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("Must be between %s and %s", model.Number(*min).Text(), model.Number(*max).Text())
	case min != nil:
		return fmt.Sprintf("Must be at least %s", model.Number(*min).Text())
	default:
		return fmt.Sprintf("Must be at most %s", model.Number(*max).Text())
	}
}

// Positive requires non-blank values to be numbers greater than zero.
func Positive(message string) model.Validator {
	if message == "" {
		message = "Must be greater than zero"
	}
	return func(value model.Value, _ model.Record) string {
		if value.IsBlank() {
			return ""
		}
		f, ok := value.Float()
		if !ok || f <= 0 {
			return message
		}
		return ""
	}
}

// OneOf restricts non-blank values to the allowed set.
func OneOf(allowed []string, message string) model.Validator {
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	if message == "" {
		message = "Select a valid option"
	}
	return func(value model.Value, _ model.Record) string {
		if value.IsBlank() {
			return ""
		}
		if _, ok := set[value.Text()]; !ok {
			return message
		}
		return ""
	}
}

// After requires the value to be strictly greater than the value stored under
// other. Numbers compare numerically; everything else compares as text, which
// orders ISO-8601 dates correctly. Missing operands pass.
func After(other, otherLabel string) model.Validator {
	return func(value model.Value, record model.Record) string {
		ref := record.Get(other)
		if value.IsBlank() || ref.IsBlank() {
			return ""
		}
		a, okA := value.Float()
		b, okB := ref.Float()
		if okA && okB {
			if a <= b {
				return fmt.Sprintf("Must be after %s", otherLabel)
			}
			return ""
		}
		if strings.TrimSpace(value.Text()) <= strings.TrimSpace(ref.Text()) {
			return fmt.Sprintf("Must be after %s", otherLabel)
		}
		return ""
	}
}

// All runs validators in order and returns the first message.
func All(validators ...model.Validator) model.Validator {
	return func(value model.Value, record model.Record) string {
		for _, fn := range validators {
			if fn == nil {
				continue
			}
			if msg := fn(value, record); msg != "" {
				return msg
			}
		}
		return ""
	}
}
