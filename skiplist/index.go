// Package skiplist provides an in-memory, ordered key–value index
// implemented as a probabilistically balanced skip list.
package skiplist

import (
	"cmp"
	"iter"
)

// Entry is one ordered key–value pair held by the index.
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// OrderedIndex is the surface the index exposes to its collaborators.
// Absent keys are reported as (zero, false) / false, never as errors.
type OrderedIndex[K cmp.Ordered, V any] interface {
	Put(key K, value V)
	Get(key K) (V, bool)
	Remove(key K) bool
	Size() int
	Empty() bool
	All() iter.Seq2[K, V]
}
