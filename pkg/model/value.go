package model

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	KindAbsent ValueKind = iota
	KindString
	KindNumber
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "absent"
	}
}

// Value is a tagged field value: absent, a string or a number. The zero Value
// is absent.
type Value struct {
	kind ValueKind
	str  string
	num  float64
}

// Absent returns the empty value.
func Absent() Value { return Value{} }

// String wraps a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether v holds nothing.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsBlank reports whether v is absent, empty or whitespace-only. Numbers are
// never blank, including zero.
func (v Value) IsBlank() bool {
	switch v.kind {
	case KindString:
		return strings.TrimSpace(v.str) == ""
	case KindNumber:
		return false
	default:
		return true
	}
}

// Text renders the value as the string an input control would display.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Float returns the numeric interpretation of v. Strings are parsed after
// trimming; absent values, unparsable strings and non-finite numbers report
// false.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, isFinite(v.num)
	case KindString:
		return ParseNumber(v.str)
	default:
		return 0, false
	}
}

// ParseNumber parses s as a finite float after trimming. "NaN" and the
// infinities are rejected.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Any converts v into its untyped form: nil, string or float64.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	default:
		return nil
	}
}

// Equal compares kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	default:
		return true
	}
}

func (v Value) String() string {
	if v.kind == KindAbsent {
		return "<absent>"
	}
	return v.Text()
}

// MarshalJSON encodes absent as null, strings and numbers natively.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON accepts null, strings and numbers.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (v Value) MarshalYAML() (any, error) {
	return v.Any(), nil
}

// FromAny converts decoded JSON/YAML scalars into a Value.
func FromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Absent(), nil
	case Value:
		return typed, nil
	case string:
		return String(typed), nil
	case float64:
		return Number(typed), nil
	case float32:
		return Number(float64(typed)), nil
	case int:
		return Number(float64(typed)), nil
	case int64:
		return Number(float64(typed)), nil
	case uint64:
		return Number(float64(typed)), nil
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("model: invalid number %q: %w", typed, err)
		}
		return Number(f), nil
	case bool:
		return String(strconv.FormatBool(typed)), nil
	default:
		return Value{}, fmt.Errorf("model: unsupported value type %T", raw)
	}
}

// Record maps field names to values. Missing keys read as absent.
type Record map[string]Value

// Get returns the value stored under name or an absent value.
func (r Record) Get(name string) Value {
	if r == nil {
		return Absent()
	}
	return r[name]
}

// Clone returns an independent copy.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// Keys returns the record keys sorted.
func (r Record) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

// Map converts the record to untyped values suitable for serialisation. Absent
// values are dropped.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r))
	for key, value := range r {
		if value.IsAbsent() {
			continue
		}
		out[key] = value.Any()
	}
	return out
}

// RecordFromMap converts decoded data into a Record.
func RecordFromMap(src map[string]any) (Record, error) {
	out := make(Record, len(src))
	for key, raw := range src {
		value, err := FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("model: key %q: %w", key, err)
		}
		out[key] = value
	}
	return out, nil
}
