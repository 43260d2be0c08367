package typedquery

import (
	"fmt"
	"slices"

	"github.com/indigo-web/typedquery/datatype"
)

// Field is the type-erased view of a datatype bound to a property name. Schemas mix
// differently typed fields, so the concrete value type is hidden behind it.
type Field struct {
	name      string
	datatype  string
	parse     func(values []string) (any, error)
	serialize func(value any) ([]string, bool)
}

// F binds a datatype to a property name for use in a Schema.
func F[T any](name string, dt datatype.Datatype[T]) Field {
	return Field{
		name:     name,
		datatype: dt.Name(),
		parse: func(values []string) (any, error) {
			value, err := dt.Parse(values)
			if err != nil {
				var zero T
				return zero, err
			}

			return value, nil
		},
		serialize: func(value any) ([]string, bool) {
			typed, ok := value.(T)
			if !ok {
				return nil, false
			}

			return dt.Serialize(typed), true
		},
	}
}

// Schema is an ordered list of named fields. The order is meaningful: strict batch
// reads visit fields in it, and batch updates append surplus entries in it.
type Schema []Field

func (s Schema) field(name string) (Field, bool) {
	for _, f := range s {
		if f.name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Object reads every schema field leniently: a field that is absent or malformed
// appears in the result with the zero value of its type, and no field aborts the
// others.
func (q *Query) Object(schema Schema) map[string]any {
	object := make(map[string]any, len(schema))

	for _, f := range schema {
		value, _ := f.parse(q.values(f.name))
		object[f.name] = value
	}

	return object
}

// ObjectStrict reads the schema fields in their schema order, aborting on the first
// malformed one with its *ValidationError. No partial object is returned on failure.
func (q *Query) ObjectStrict(schema Schema) (map[string]any, error) {
	object := make(map[string]any, len(schema))

	for _, f := range schema {
		raw := q.values(f.name)

		value, err := f.parse(raw)
		if err != nil {
			return nil, &ValidationError{
				Property: f.name,
				Datatype: f.datatype,
				Values:   slices.Clone(raw),
				Reason:   err.Error(),
			}
		}

		object[f.name] = value
	}

	return object, nil
}

// SetObject serializes every given value with its schema field and merges all of
// them into the sequence in a single pass, with the guarantees of Set applied to the
// whole batch at once. An untyped nil value serializes into no entries, removing its
// key.
//
// Supplying a value under a name the schema doesn't contain, or a value of a type
// incompatible with its field's datatype, is a contract violation and panics.
func (q *Query) SetObject(schema Schema, values map[string]any) *Query {
	for name := range values {
		if _, found := schema.field(name); !found {
			panic(fmt.Sprintf("typedquery: property %q is not in the schema", name))
		}
	}

	updates := make([]update, 0, len(values))

	for _, f := range schema {
		value, given := values[f.name]
		if !given {
			continue
		}

		if value == nil {
			updates = append(updates, update{f.name, nil})
			continue
		}

		raw, ok := f.serialize(value)
		if !ok {
			panic(fmt.Sprintf(
				"typedquery: property %q holds a %T, incompatible with its %s datatype",
				f.name, value, f.datatype,
			))
		}

		updates = append(updates, update{f.name, raw})
	}

	return q.apply(updates)
}
