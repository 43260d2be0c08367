// Package typedquery implements a typed, order-preserving codec over query strings.
// Values at named keys are read and written through datatypes without losing
// unrelated keys, duplicate values or the original entry order.
package typedquery

import (
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/indigo-web/typedquery/datatype"
	"github.com/indigo-web/typedquery/internal/qparse"
	"github.com/indigo-web/typedquery/kv"
)

// Query is an immutable typed view over an ordered multi-valued query sequence.
// Every mutating operation leaves the receiver untouched and returns a new instance,
// so a Query can be freely shared across goroutines. Lookups are memoized in a
// per-instance cache, which is never shared between instances.
type Query struct {
	pairs *kv.Storage // frozen after construction

	mu    sync.Mutex
	cache map[string][]string
}

func wrap(pairs *kv.Storage) *Query {
	return &Query{pairs: pairs}
}

// New returns an empty query.
func New() *Query {
	return wrap(kv.New())
}

// Parse parses a delimited query string, a leading '?' permitted. The parser is
// tolerant and never fails: empty segments and segments with an empty key are
// skipped, a bare key becomes an entry with an empty value, and malformed
// percent-encoded sequences are kept literally.
func Parse(raw string) *Query {
	pairs := kv.New()
	qparse.Parse(strings.TrimPrefix(raw, "?"), qparse.Into(pairs))

	return wrap(pairs)
}

// FromPairs builds a query from an already ordered list of pairs. The input is
// copied.
func FromPairs(pairs []kv.Pair) *Query {
	return wrap(kv.FromPairs(slices.Clone(pairs)))
}

// FromMap builds a query from a flat key-to-value mapping. As maps are unordered,
// entries are sorted by key to keep the result deterministic.
func FromMap(m map[string]string) *Query {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	slices.Sort(keys)
	pairs := kv.NewPrealloc(len(m))

	for _, key := range keys {
		pairs.Add(key, m[key])
	}

	return wrap(pairs)
}

// Clone returns an independent query backed by the same entries.
func (q *Query) Clone() *Query {
	return wrap(q.pairs.Clone())
}

// Values returns a copy of all raw values stored under the key, in their stored
// order.
func (q *Query) Values(key string) []string {
	return slices.Clone(q.values(key))
}

// Keys returns all unique keys in order of their first occurrence.
func (q *Query) Keys() []string {
	return q.pairs.Keys()
}

// Pairs returns an iterator over the entries in their stored order.
func (q *Query) Pairs() iter.Seq2[string, string] {
	return q.pairs.Pairs()
}

// Len returns the number of stored entries.
func (q *Query) Len() int {
	return q.pairs.Len()
}

func (q *Query) Empty() bool {
	return q.pairs.Empty()
}

// Delete returns a query without any entries of the key. The order of the remaining
// entries is untouched.
func (q *Query) Delete(name string) *Query {
	return wrap(q.pairs.Clone().Delete(name))
}

// Sort returns a query with entries stably sorted by key: entries sharing a key keep
// their relative order.
func (q *Query) Sort() *Query {
	pairs := slices.Clone(q.pairs.Expose())
	slices.SortStableFunc(pairs, func(a, b kv.Pair) int {
		return strings.Compare(a.Key, b.Key)
	})

	return wrap(kv.FromPairs(pairs))
}

// String renders the canonical delimited form of the query, escaping both keys and
// values.
func (q *Query) String() string {
	return qparse.Encode(q.pairs.Expose())
}

// values routes lookups through the per-instance cache. Safe for concurrent use, as
// the backing pairs never change after construction.
func (q *Query) values(key string) []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if values, cached := q.cache[key]; cached {
		return values
	}

	if q.cache == nil {
		q.cache = make(map[string][]string)
	}

	values := q.pairs.Values(key)
	q.cache[key] = values

	return values
}

// Get parses the values stored under name with the datatype, returning the zero
// value of T both when the key is absent and when its values are malformed. The two
// cases are deliberately indistinguishable here, making optional reads ergonomic;
// use GetStrict to tell them apart.
func Get[T any](q *Query, name string, dt datatype.Datatype[T]) (value T) {
	parsed, err := dt.Parse(q.values(name))
	if err != nil {
		return value
	}

	return parsed
}

// GetStrict parses the values stored under name with the datatype, reporting
// malformed values via a *ValidationError carrying the raw values seen. The parsed
// value may itself represent absence (a nil pointer), which is distinct from a parse
// failure.
func GetStrict[T any](q *Query, name string, dt datatype.Datatype[T]) (value T, err error) {
	raw := q.values(name)

	parsed, err := dt.Parse(raw)
	if err != nil {
		return value, &ValidationError{
			Property: name,
			Datatype: dt.Name(),
			Values:   slices.Clone(raw),
			Reason:   err.Error(),
		}
	}

	return parsed, nil
}

// Has tells whether at least one value is stored under name and the stored values
// parse successfully. Absence of the key is always false, no matter how tolerant the
// datatype is to empty input.
func Has[T any](q *Query, name string, dt datatype.Datatype[T]) bool {
	raw := q.values(name)
	if len(raw) == 0 {
		return false
	}

	_, err := dt.Parse(raw)
	return err == nil
}

// Append serializes the value and adds the resulting entries at the very end of the
// sequence, leaving every other entry untouched.
func Append[T any](q *Query, name string, dt datatype.Datatype[T], value T) *Query {
	pairs := q.pairs.Clone()

	for _, raw := range dt.Serialize(value) {
		pairs.Add(name, raw)
	}

	return wrap(pairs)
}

// Set replaces the values stored under name: the Nth existing occurrence of the key
// keeps its position and receives the Nth new value, surplus new values are appended
// at the end, and surplus old occurrences are dropped. Serializing into no values at
// all is thereby equivalent to Delete.
func Set[T any](q *Query, name string, dt datatype.Datatype[T], value T) *Query {
	return q.apply([]update{{name, dt.Serialize(value)}})
}
