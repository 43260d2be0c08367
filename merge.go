package typedquery

import (
	"slices"

	"github.com/indigo-web/typedquery/kv"
)

type update struct {
	key    string
	values []string
}

// queue is a private cursor over the new values of one key.
type queue struct {
	values []string
	head   int
}

func (u *queue) pop() (string, bool) {
	if u.head == len(u.values) {
		return "", false
	}

	value := u.values[u.head]
	u.head++

	return value, true
}

// apply merges the updates into the sequence in a single walk over it. Entries of
// untouched keys stay in place. The Nth occurrence of an updated key is replaced in
// place by the Nth new value; occurrences beyond the amount of new values are
// dropped from wherever they sat; new values beyond the amount of occurrences are
// appended at the very end, grouped by key in the order of the updates. Applying
// a batch in one walk keeps the relative order of retained entries across different
// keys stable, which applying single-key updates one by one wouldn't.
func (q *Query) apply(updates []update) *Query {
	queues := make(map[string]*queue, len(updates))
	for _, u := range updates {
		queues[u.key] = &queue{values: slices.Clone(u.values)}
	}

	original := q.pairs.Expose()
	merged := make([]kv.Pair, 0, len(original))

	for _, pair := range original {
		line, touched := queues[pair.Key]
		if !touched {
			merged = append(merged, pair)
			continue
		}

		if value, ok := line.pop(); ok {
			merged = append(merged, kv.Pair{Key: pair.Key, Value: value})
		}
		// an exhausted queue drops the occurrence
	}

	for _, u := range updates {
		line := queues[u.key]

		for value, ok := line.pop(); ok; value, ok = line.pop() {
			merged = append(merged, kv.Pair{Key: u.key, Value: value})
		}
	}

	return wrap(kv.FromPairs(merged))
}
