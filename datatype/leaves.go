package datatype

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
)

// String stores the first raw value as-is.
func String() Datatype[*string] {
	return stringType{}
}

type stringType struct{}

func (stringType) Name() string {
	return "String"
}

func (stringType) Parse(values []string) (*string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	return &values[0], nil
}

func (stringType) Serialize(value *string) []string {
	if value == nil {
		return nil
	}

	return []string{*value}
}

// Int stores a decimal integer.
func Int() Datatype[*int] {
	return intType{}
}

type intType struct{}

func (intType) Name() string {
	return "Integer"
}

func (intType) Parse(values []string) (*int, error) {
	if len(values) == 0 {
		return nil, nil
	}

	n, err := strconv.Atoi(values[0])
	if err != nil {
		return nil, fmt.Errorf("not a valid integer: %q", values[0])
	}

	return &n, nil
}

func (intType) Serialize(value *int) []string {
	if value == nil {
		return nil
	}

	return []string{strconv.Itoa(*value)}
}

// Float stores a decimal floating-point number.
func Float() Datatype[*float64] {
	return floatType{}
}

type floatType struct{}

func (floatType) Name() string {
	return "Float"
}

func (floatType) Parse(values []string) (*float64, error) {
	if len(values) == 0 {
		return nil, nil
	}

	f, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return nil, fmt.Errorf("not a valid number: %q", values[0])
	}

	return &f, nil
}

func (floatType) Serialize(value *float64) []string {
	if value == nil {
		return nil
	}

	return []string{strconv.FormatFloat(*value, 'g', -1, 64)}
}

// Bool stores an explicit true/false value, accepting true, false, 1 and 0.
func Bool() Datatype[*bool] {
	return boolType{}
}

type boolType struct{}

func (boolType) Name() string {
	return "Boolean"
}

func (boolType) Parse(values []string) (*bool, error) {
	if len(values) == 0 {
		return nil, nil
	}

	var b bool

	switch values[0] {
	case "true", "1":
		b = true
	case "false", "0":
	default:
		return nil, fmt.Errorf("not a valid boolean: %q", values[0])
	}

	return &b, nil
}

func (boolType) Serialize(value *bool) []string {
	if value == nil {
		return nil
	}

	return []string{strconv.FormatBool(*value)}
}

// Flag interprets the bare presence of a key as true. Serializing false produces no
// entries at all.
func Flag() Datatype[bool] {
	return flagType{}
}

type flagType struct{}

func (flagType) Name() string {
	return "Flag"
}

func (flagType) Parse(values []string) (bool, error) {
	return len(values) > 0, nil
}

func (flagType) Serialize(value bool) []string {
	if !value {
		return nil
	}

	return []string{""}
}

// Enum admits only the listed options.
func Enum(options ...string) Datatype[*string] {
	return enumType{options}
}

type enumType struct {
	options []string
}

func (enumType) Name() string {
	return "Enum"
}

func (e enumType) Parse(values []string) (*string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	for _, option := range e.options {
		if values[0] == option {
			return &values[0], nil
		}
	}

	return nil, fmt.Errorf(
		"must be one of %s, got %q", strings.Join(e.options, ", "), values[0],
	)
}

func (e enumType) Serialize(value *string) []string {
	if value == nil {
		return nil
	}

	return []string{*value}
}

// Regex admits only values matching the expression.
func Regex(expr *regexp.Regexp) Datatype[*string] {
	return regexType{expr}
}

type regexType struct {
	expr *regexp.Regexp
}

func (regexType) Name() string {
	return "Regex"
}

func (r regexType) Parse(values []string) (*string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	if !r.expr.MatchString(values[0]) {
		return nil, fmt.Errorf("%q doesn't match %s", values[0], r.expr)
	}

	return &values[0], nil
}

func (r regexType) Serialize(value *string) []string {
	if value == nil {
		return nil
	}

	return []string{*value}
}

// Time stores a timestamp in the given layout.
func Time(layout string) Datatype[*time.Time] {
	return timeType{layout}
}

type timeType struct {
	layout string
}

func (timeType) Name() string {
	return "Time"
}

func (t timeType) Parse(values []string) (*time.Time, error) {
	if len(values) == 0 {
		return nil, nil
	}

	stamp, err := time.Parse(t.layout, values[0])
	if err != nil {
		return nil, fmt.Errorf("not a valid timestamp in layout %s: %q", t.layout, values[0])
	}

	return &stamp, nil
}

func (t timeType) Serialize(value *time.Time) []string {
	if value == nil {
		return nil
	}

	return []string{value.Format(t.layout)}
}

// UUID stores an RFC 4122 identifier in its canonical textual form.
func UUID() Datatype[*uuid.UUID] {
	return uuidType{}
}

type uuidType struct{}

func (uuidType) Name() string {
	return "UUID"
}

func (uuidType) Parse(values []string) (*uuid.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}

	id, err := uuid.Parse(values[0])
	if err != nil {
		return nil, fmt.Errorf("not a valid UUID: %q", values[0])
	}

	return &id, nil
}

func (uuidType) Serialize(value *uuid.UUID) []string {
	if value == nil {
		return nil
	}

	return []string{value.String()}
}

// JSON stores an arbitrary model as a single JSON-encoded raw value.
//
// Serialize panics if the model cannot be marshalled, which can only be caused by an
// unmarshallable type and is thereby a programmer error.
func JSON[T any]() Datatype[*T] {
	return jsonType[T]{}
}

type jsonType[T any] struct{}

func (jsonType[T]) Name() string {
	return "JSON"
}

func (jsonType[T]) Parse(values []string) (*T, error) {
	if len(values) == 0 {
		return nil, nil
	}

	var model T
	if err := json.UnmarshalFromString(values[0], &model); err != nil {
		return nil, fmt.Errorf("not a valid JSON document: %v", err)
	}

	return &model, nil
}

func (jsonType[T]) Serialize(value *T) []string {
	if value == nil {
		return nil
	}

	encoded, err := json.MarshalToString(*value)
	if err != nil {
		panic(fmt.Errorf("typedquery: unmarshallable JSON model: %v", err))
	}

	return []string{encoded}
}
