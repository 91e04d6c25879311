package interval

import (
	"sort"
	"time"
)

// Indexed is an ordered map of transition timestamps to values, where
// Lookup(t) returns the value associated with the greatest transition
// <= t. It is used to attach per-rev duty-cycle budgets, with one
// transition at each rev's start, so any instant inside a rev (its
// start or its midpoint alike) looks up that rev's budget.
type Indexed[V any] struct {
	at  []time.Time
	val []V
}

// NewIndexed builds an Indexed from a sorted sequence of transition
// instants and their values, prepending a sentinel at the Unix epoch
// carrying zero.
func NewIndexed[V any](transitions []time.Time, values []V) *Indexed[V] {
	idx := &Indexed[V]{}
	idx.at = append(idx.at, time.Unix(0, 0).UTC())
	var zero V
	idx.val = append(idx.val, zero)
	for i, t := range transitions {
		idx.at = append(idx.at, t)
		idx.val = append(idx.val, values[i])
	}
	return idx
}

// Lookup returns the value for the greatest transition <= t, via
// binary search over the sorted transitions.
func (idx *Indexed[V]) Lookup(t time.Time) V {
	i := sort.Search(len(idx.at), func(i int) bool { return idx.at[i].After(t) })
	return idx.val[i-1]
}

// Set mutates the value attached to the interval containing t,
// inserting a new transition at t if t is not already a transition
// point.
func (idx *Indexed[V]) Set(t time.Time, v V) {
	i := sort.Search(len(idx.at), func(i int) bool { return !idx.at[i].Before(t) })
	if i < len(idx.at) && idx.at[i].Equal(t) {
		idx.val[i] = v
		return
	}
	idx.at = append(idx.at, time.Time{})
	idx.val = append(idx.val, v)
	copy(idx.at[i+1:], idx.at[i:])
	copy(idx.val[i+1:], idx.val[i:])
	idx.at[i] = t
	idx.val[i] = v
}

// Transitions returns the sorted transition instants, excluding the
// epoch sentinel.
func (idx *Indexed[V]) Transitions() []time.Time {
	if len(idx.at) <= 1 {
		return nil
	}
	out := make([]time.Time, len(idx.at)-1)
	copy(out, idx.at[1:])
	return out
}
