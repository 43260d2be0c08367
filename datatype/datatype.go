package datatype

import "errors"

// Datatype is a named bidirectional converter between the complete ordered list of raw
// string values stored under one query key and a single typed value.
//
// Parse receives every raw value currently stored under a key, possibly none and
// possibly more than one. Malformed input is an expected outcome and is reported via
// the error return, never via a panic. Single-valued datatypes consume only the first
// raw value and ignore the rest.
//
// Serialize renders one typed value back into the raw values to be stored under a
// key. An empty result means "no entries for this key".
//
// Implementations must be pure: no shared state, same output for same input. A parsed
// value, re-serialized, is expected to yield the raw values it was parsed from;
// datatypes with lossy normalization are legal, but callers must be aware of them.
type Datatype[T any] interface {
	Name() string
	Parse(values []string) (T, error)
	Serialize(value T) []string
}

var ErrMissingValue = errors.New("missing a required value")

type required[T any] struct {
	base Datatype[*T]
}

// Required turns absence into an error: the wrapped datatype is consulted first, and
// its successfully parsed nil becomes ErrMissingValue. A parse failure of the wrapped
// datatype is passed through unchanged.
func Required[T any](base Datatype[*T]) Datatype[T] {
	return required[T]{base}
}

func (r required[T]) Name() string {
	return r.base.Name()
}

func (r required[T]) Parse(values []string) (value T, err error) {
	parsed, err := r.base.Parse(values)
	if err != nil {
		return value, err
	}

	if parsed == nil {
		return value, ErrMissingValue
	}

	return *parsed, nil
}

func (r required[T]) Serialize(value T) []string {
	return r.base.Serialize(&value)
}

type multiple[T any] struct {
	base Datatype[*T]
}

// Multiple applies a single-valued datatype independently to each raw value,
// producing all of them in their stored order. A single malformed element fails the
// whole list, with no partial results.
func Multiple[T any](base Datatype[*T]) Datatype[[]T] {
	return multiple[T]{base}
}

func (m multiple[T]) Name() string {
	return m.base.Name()
}

func (m multiple[T]) Parse(values []string) ([]T, error) {
	if len(values) == 0 {
		return nil, nil
	}

	parsed := make([]T, 0, len(values))

	for _, raw := range values {
		value, err := m.base.Parse([]string{raw})
		if err != nil {
			return nil, err
		}

		if value == nil {
			return nil, ErrMissingValue
		}

		parsed = append(parsed, *value)
	}

	return parsed, nil
}

func (m multiple[T]) Serialize(values []T) (raw []string) {
	for _, value := range values {
		raw = append(raw, m.base.Serialize(&value)...)
	}

	return raw
}
