package skiplist

import (
	"cmp"
	"fmt"
	"iter"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

type node[K cmp.Ordered, V any] struct {
	entry   Entry[K, V]
	forward []*node[K, V]
}

func newNode[K cmp.Ordered, V any](key K, value V, level int) *node[K, V] {
	return &node[K, V]{
		entry:   Entry[K, V]{Key: key, Value: value},
		forward: make([]*node[K, V], level+1),
	}
}

// SkipList is an ordered map with expected O(log n) search, insert and
// delete. A single mutex guards every operation, so each completed call
// is fully linearized relative to other callers; the lock belongs to the
// instance, independent lists never share one.
type SkipList[K cmp.Ordered, V any] struct {
	mu       sync.Mutex
	head     *node[K, V] // sentinel, linked at every level
	maxLevel int
	level    int // highest level currently populated
	size     int
	rng      *rand.Rand
	filter   *bloom.BloomFilter
}

var _ OrderedIndex[int, string] = (*SkipList[int, string])(nil)

// New builds an empty list. maxLevel caps the level of any node; pick
// roughly log2 of the expected element count. A maxLevel of 0 still
// works but degrades the list to a sorted linked chain.
func New[K cmp.Ordered, V any](maxLevel int, options ...Option) *SkipList[K, V] {
	if maxLevel < 0 {
		maxLevel = 0
	}
	if maxLevel == 0 {
		slog.Warn("skiplist: max level 0 degrades search to a linear scan",
			slog.Int("maxLevel", maxLevel))
	}

	var c config
	for _, option := range options {
		option(&c)
	}
	c.applyDefaults()

	sl := &SkipList[K, V]{
		head:     newNode(*new(K), *new(V), maxLevel),
		maxLevel: maxLevel,
		rng:      rand.New(rand.NewSource(c.seed)),
	}
	if c.bloomN > 0 {
		sl.filter = bloom.NewWithEstimates(c.bloomN, c.bloomFP)
	}
	return sl
}

// findPredecessors descends from the current top level, recording at
// each level the last node whose key is strictly below key. After it
// returns, preds[0].forward[0] is the only candidate for key itself.
func (sl *SkipList[K, V]) findPredecessors(key K, preds []*node[K, V]) {
	x := sl.head
	for level := sl.level; level >= 0; level-- {
		for x.forward[level] != nil && x.forward[level].entry.Key < key {
			x = x.forward[level]
		}
		preds[level] = x
	}
}

// randomLevel draws the level of a new node by fair coin flips, capped
// at maxLevel. Callers must hold mu: the generator is shared state and
// the draw belongs to the same critical section as the splice it feeds.
func (sl *SkipList[K, V]) randomLevel() int {
	level := 0
	for sl.rng.Int63()&1 == 0 && level < sl.maxLevel {
		level++
	}
	return level
}

// Put inserts key with value, or overwrites the value in place if key
// is already present. An overwrite changes no structure: the node keeps
// the level it was born with.
func (sl *SkipList[K, V]) Put(key K, value V) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	preds := make([]*node[K, V], sl.maxLevel+1)
	sl.findPredecessors(key, preds)

	if next := preds[0].forward[0]; next != nil && next.entry.Key == key {
		next.entry.Value = value
		return
	}

	newLevel := sl.randomLevel()
	if newLevel > sl.level {
		for level := sl.level + 1; level <= newLevel; level++ {
			preds[level] = sl.head
		}
		sl.level = newLevel
	}

	x := newNode(key, value, newLevel)
	for level := 0; level <= newLevel; level++ {
		x.forward[level] = preds[level].forward[level]
		preds[level].forward[level] = x
	}
	sl.size++

	if sl.filter != nil {
		sl.filter.Add(keyBytes(key))
	}
}

// Get returns the value stored under key.
func (sl *SkipList[K, V]) Get(key K) (V, bool) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	// A negative filter answer proves the key was never inserted.
	// Removed keys still test positive and fall through to the descent.
	if sl.filter != nil && !sl.filter.Test(keyBytes(key)) {
		return *new(V), false
	}

	x := sl.head
	for level := sl.level; level >= 0; level-- {
		for x.forward[level] != nil && x.forward[level].entry.Key < key {
			x = x.forward[level]
		}
	}
	if next := x.forward[0]; next != nil && next.entry.Key == key {
		return next.entry.Value, true
	}
	return *new(V), false
}

// Contains reports whether key is present.
func (sl *SkipList[K, V]) Contains(key K) bool {
	_, ok := sl.Get(key)
	return ok
}

// Remove unlinks key from every level it participates in and reports
// whether it was present. Removing an absent key is a no-op.
func (sl *SkipList[K, V]) Remove(key K) bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	preds := make([]*node[K, V], sl.maxLevel+1)
	sl.findPredecessors(key, preds)

	victim := preds[0].forward[0]
	if victim == nil || victim.entry.Key != key {
		return false
	}

	for level := 0; level <= sl.level; level++ {
		if preds[level].forward[level] == victim {
			preds[level].forward[level] = victim.forward[level]
		}
	}
	// Keep the descent entry point tied to the actual height, not the
	// historical peak.
	for sl.level > 0 && sl.head.forward[sl.level] == nil {
		sl.level--
	}
	sl.size--
	return true
}

// Size returns the number of entries. O(1).
func (sl *SkipList[K, V]) Size() int {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.size
}

// Empty reports whether the list holds no entries.
func (sl *SkipList[K, V]) Empty() bool {
	return sl.Size() == 0
}

// Level returns the highest level currently populated.
func (sl *SkipList[K, V]) Level() int {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.level
}

// MaxLevel returns the level cap fixed at construction.
func (sl *SkipList[K, V]) MaxLevel() int {
	return sl.maxLevel
}

// All iterates every entry in ascending key order along the level-0
// chain. The sequence is lazy and restartable. It takes no lock; a
// caller that must not observe concurrent mutation holds the instance
// lock for the whole traversal.
func (sl *SkipList[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for x := sl.head.forward[0]; x != nil; x = x.forward[0] {
			if !yield(x.entry.Key, x.entry.Value) {
				return
			}
		}
	}
}

// Levels snapshots the entries reachable at each level, index 0 being
// the full chain. Taken under the lock so tooling sees one consistent
// picture of the whole structure.
func (sl *SkipList[K, V]) Levels() [][]Entry[K, V] {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	levels := make([][]Entry[K, V], sl.level+1)
	for level := sl.level; level >= 0; level-- {
		for x := sl.head.forward[level]; x != nil; x = x.forward[level] {
			levels[level] = append(levels[level], x.entry)
		}
	}
	return levels
}

// Clear drops every entry. The chain is unlinked iteratively, never by
// recursion, so arbitrarily long lists release without growing the
// stack.
func (sl *SkipList[K, V]) Clear() {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	x := sl.head.forward[0]
	for x != nil {
		next := x.forward[0]
		for level := range x.forward {
			x.forward[level] = nil
		}
		x = next
	}
	for level := range sl.head.forward {
		sl.head.forward[level] = nil
	}
	sl.level = 0
	sl.size = 0
	if sl.filter != nil {
		sl.filter.ClearAll()
	}
}

func keyBytes[K cmp.Ordered](key K) []byte {
	return fmt.Appendf(nil, "%v", key)
}
