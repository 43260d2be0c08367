package kv

import "iter"

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a
// multi-map but uses linear search instead, which proves to be more efficient on
// relatively low amount of entries, which for query strings is practically always the
// case. Entries keep their insertion order, and duplicate keys are permitted. Keys are
// matched case-sensitively.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// NewFromMap returns a new instance with already inserted values from given map.
// Note: as maps are unordered, resulting underlying structure will also contain
// unordered pairs.
func NewFromMap(m map[string][]string) *Storage {
	// this doesn't always allocate exactly enough sized slice, as we count the amount
	// of keys, not values. Good enough for a cold path anyway
	s := NewPrealloc(len(m))

	for key, values := range m {
		for _, value := range values {
			s.Add(key, value)
		}
	}

	return s
}

// FromPairs wraps an already assembled pairs slice without copying it. The caller
// must not retain the slice.
func FromPairs(pairs []Pair) *Storage {
	return &Storage{pairs: pairs}
}

// Add adds a new pair of key and value.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is
// returned.
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom value,
// defined via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. If it
// wasn't, it'll be an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return "", false
}

// Values returns all values by the key in their insertion order. Returns nil if the
// key doesn't exist.
func (s *Storage) Values(key string) (values []string) {
	for _, pair := range s.pairs {
		if pair.Key == key {
			values = append(values, pair.Value)
		}
	}

	return values
}

// Keys returns all unique presented keys in order of their first occurrence.
func (s *Storage) Keys() (keys []string) {
	for _, pair := range s.pairs {
		if contains(keys, pair.Key) {
			continue
		}

		keys = append(keys, pair.Key)
	}

	return keys
}

// Pairs returns an iterator over the pairs.
func (s *Storage) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	for _, pair := range s.pairs {
		if pair.Key == key {
			return true
		}
	}

	return false
}

// Delete removes all entries of the key in place, leaving the order of the rest
// untouched.
func (s *Storage) Delete(key string) *Storage {
	retained := s.pairs[:0]

	for _, pair := range s.pairs {
		if pair.Key != key {
			retained = append(retained, pair)
		}
	}

	s.pairs = retained
	return s
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Clone creates a deep copy, which may be used later or stored somewhere safely.
// However, it comes at cost of an allocation.
func (s *Storage) Clone() *Storage {
	return &Storage{
		pairs: clone(s.pairs),
	}
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func contains(collection []string, key string) bool {
	for _, element := range collection {
		if element == key {
			return true
		}
	}

	return false
}

func clone[T any](source []T) []T {
	if len(source) == 0 {
		return nil
	}

	newSlice := make([]T, len(source))
	copy(newSlice, source)

	return newSlice
}
