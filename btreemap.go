// Package btreemap implements an in-memory ordered map backed by a B-tree
// with pre-emptive splitting: full nodes are split on the way down the
// insertion path, so a single top-to-bottom traversal with O(1) auxiliary
// state suffices and no split ever propagates back up.
//
// Deleting a key does not restructure the tree. The entry stays in place
// with its value marked absent (a tombstone) and is resurrected if the same
// key is put again. Len counts live entries only.
//
// A Map is not safe for concurrent use. Iterators are invalidated by any
// mutation made through the Map rather than through the iterator's own
// Remove; using an invalidated iterator is undefined.
package btreemap

import (
	"cmp"
	"iter"
)

// DefaultLeafDegree is the leaf capacity used by New and NewFunc.
const DefaultLeafDegree = 32

// Map is an ordered map from K to V. Create one with New, NewFunc,
// NewDegree or NewDegreeFunc; the zero value is not usable.
type Map[K, V any] struct {
	cmp       func(K, K) int
	root      *node[K, V]
	height    int
	size      int
	leafM     int
	internalM int
}

// New returns an empty map ordered by the natural ordering of K, with the
// default node capacities.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	return NewDegreeFunc[K, V](DefaultLeafDegree, cmp.Compare[K])
}

// NewFunc returns an empty map ordered by the given three-way comparison.
func NewFunc[K, V any](cmp func(K, K) int) *Map[K, V] {
	return NewDegreeFunc[K, V](DefaultLeafDegree, cmp)
}

// NewDegree is New with an explicit leaf capacity.
func NewDegree[K cmp.Ordered, V any](leafM int) *Map[K, V] {
	return NewDegreeFunc[K, V](leafM, cmp.Compare[K])
}

// NewDegreeFunc returns an empty map with leaf capacity leafM and the given
// comparison. Internal nodes get roughly two thirds of the leaf capacity so
// the two node kinds occupy comparable memory. Capacities below 2 are
// raised to 2.
func NewDegreeFunc[K, V any](leafM int, cmp func(K, K) int) *Map[K, V] {
	if leafM < 2 {
		leafM = 2
	}
	internalM := (leafM*2 + 2) / 3
	if internalM < 2 {
		internalM = 2
	}
	return &Map[K, V]{
		cmp:       cmp,
		root:      newLeaf[K, V](leafM),
		leafM:     leafM,
		internalM: internalM,
	}
}

// Len returns the number of live keys.
func (m *Map[K, V]) Len() int { return m.size }

// IsEmpty reports whether the map holds no live keys.
func (m *Map[K, V]) IsEmpty() bool { return m.size == 0 }

// Height returns the number of internal levels above the leaves. A map
// whose root is a leaf has height 0.
func (m *Map[K, V]) Height() int { return m.height }

// Clear discards all entries, tombstones included, resetting the map to a
// fresh empty leaf root.
func (m *Map[K, V]) Clear() {
	m.root = newLeaf[K, V](m.leafM)
	m.height = 0
	m.size = 0
}

// find descends from the root to the entry holding key, tombstoned or not,
// or nil if no entry with that key exists.
func (m *Map[K, V]) find(key K) *entry[K, V] {
	for n := m.root; n != nil; {
		i := n.search(m.cmp, key)
		if i >= 0 {
			return &n.entries[i]
		}
		n = n.child(-i - 2)
	}
	return nil
}

// Get returns the value stored for key. The second return is false if key
// is not in the map, including when its entry is a tombstone.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if e := m.find(key); e != nil && e.present {
		return e.val, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is live in the map.
func (m *Map[K, V]) Contains(key K) bool {
	e := m.find(key)
	return e != nil && e.present
}

// Put stores val under key and returns the value it replaced, if any.
// Putting over a tombstone resurrects the key and grows Len by one, exactly
// as inserting a never-seen key does; overwriting a live key leaves Len
// unchanged.
//
// Splitting happens only here: a full root is split before the descent
// begins, and searchAndSplit splits full children on the way down, so every
// node examined by the loop has room for one more entry.
func (m *Map[K, V]) Put(key K, val V) (prev V, replaced bool) {
	if m.root.isFull() {
		promoted := m.root.split()
		root := &node[K, V]{left: m.root, entries: make([]entry[K, V], 0, m.internalM)}
		root.entries = append(root.entries, promoted)
		m.root = root
		m.height++
	}
	n := m.root
	for {
		i := n.searchAndSplit(m.cmp, key)
		if i >= 0 {
			e := &n.entries[i]
			if e.present {
				prev, replaced = e.val, true
			} else {
				m.size++
			}
			e.val, e.present = val, true
			return prev, replaced
		}
		if n.leaf {
			n.insert(-i-1, key, val)
			m.size++
			return prev, false
		}
		n = n.child(-i - 2)
	}
}

// Delete removes key, returning the value it held. The entry itself stays
// in the tree as a tombstone, so Delete never splits or merges nodes.
// Deleting a missing or already-deleted key is a no-op.
func (m *Map[K, V]) Delete(key K) (prev V, deleted bool) {
	e := m.find(key)
	if e == nil || !e.present {
		return prev, false
	}
	prev = e.val
	var zero V
	e.val, e.present = zero, false
	m.size--
	return prev, true
}

// All returns an in-order sequence of the live entries. The map must not be
// mutated while ranging.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := m.Iter(); it.HasNext(); {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
