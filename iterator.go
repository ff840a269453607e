package btreemap

// cursor records how far iteration has progressed through one node's
// entries. pos is the index of the next entry to hand out.
type cursor[K, V any] struct {
	n   *node[K, V]
	pos int
}

// Iterator walks the live entries of a Map in ascending key order. The
// traversal state is an explicit stack of per-node cursors, one frame per
// level currently being walked, so the iterator is resumable across calls.
//
// An Iterator observes one snapshot of the tree's structure. Any mutation
// through the Map while the iterator is live, other than this iterator's
// own Remove, invalidates it; further use is undefined.
type Iterator[K, V any] struct {
	m     *Map[K, V]
	stack []cursor[K, V]
	next  *entry[K, V] // pending candidate, nil when exhausted
	prev  *entry[K, V] // most recently returned, target of Remove
}

// Iter returns an iterator positioned before the first live entry.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	it := &Iterator[K, V]{m: m}
	if m.size == 0 {
		return it
	}
	it.descend(m.root)
	it.advance()
	return it
}

// descend pushes cursors for n and its whole leftmost-child chain, ending
// at a leaf. A nil n (leaf entry's right child) pushes nothing.
func (it *Iterator[K, V]) descend(n *node[K, V]) {
	for n != nil {
		it.stack = append(it.stack, cursor[K, V]{n: n})
		n = n.left
	}
}

// step yields the next entry in key order, tombstones included, or nil when
// the stack is exhausted. Consuming an internal entry queues its right
// subtree's leftmost chain so the subtree is walked before this node's next
// entry.
func (it *Iterator[K, V]) step() *entry[K, V] {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.pos == len(top.n.entries) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		e := &top.n.entries[top.pos]
		top.pos++
		it.descend(e.right)
		return e
	}
	return nil
}

// advance shifts the pending candidate into prev and finds the next live
// entry, skipping tombstones.
func (it *Iterator[K, V]) advance() {
	it.prev = it.next
	for {
		e := it.step()
		if e == nil || e.present {
			it.next = e
			return
		}
	}
}

// HasNext reports whether another live entry is pending.
func (it *Iterator[K, V]) HasNext() bool { return it.next != nil }

// Next returns the next live entry in key order. It panics if the iterator
// is exhausted; guard with HasNext.
func (it *Iterator[K, V]) Next() (K, V) {
	if it.next == nil {
		panic("btreemap: Next past end of iteration")
	}
	it.advance()
	return it.prev.key, it.prev.val
}

// Remove deletes the entry most recently returned by Next from the map,
// tombstoning it in place. It panics if Next has not been called, or if
// Remove was already called for that entry.
func (it *Iterator[K, V]) Remove() {
	if it.prev == nil {
		panic("btreemap: Remove without a preceding Next")
	}
	if it.prev.present {
		var zero V
		it.prev.val, it.prev.present = zero, false
		it.m.size--
	}
	it.prev = nil
}
