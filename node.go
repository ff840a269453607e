package btreemap

import "slices"

// entry is a single slot in a node. The key never changes once the entry is
// created; the value is mutable and may be tombstoned (present == false),
// which removes the key from the map without touching the tree structure.
// In internal nodes right points at the subtree holding keys greater than
// key (and less than the next entry's key); in leaves right is always nil.
type entry[K, V any] struct {
	key     K
	val     V
	present bool
	right   *node[K, V]
}

// node is either a leaf or an internal node, distinguished by the leaf tag.
// Internal nodes additionally hold left, the child with keys less than
// entries[0].key. The entries slice is allocated once with the node's fixed
// capacity (LeafM or InternalM), so cap(entries) is the capacity query.
//
// Keys are strictly increasing by index. A node owns left and every
// entries[i].right exclusively; the structure is a strict tree.
type node[K, V any] struct {
	leaf    bool
	left    *node[K, V]
	entries []entry[K, V]
}

func newLeaf[K, V any](capacity int) *node[K, V] {
	return &node[K, V]{leaf: true, entries: make([]entry[K, V], 0, capacity)}
}

func (n *node[K, V]) isFull() bool {
	return len(n.entries) == cap(n.entries)
}

// search locates key among this node's own entries; it never descends.
// Result encoding is that of searchEntries.
func (n *node[K, V]) search(cmp func(K, K) int, key K) int {
	return searchEntries(n.entries, cmp, key)
}

// child returns the subtree to descend into: the leftmost child for i == -1,
// otherwise the right child of entries[i]. Leaves return nil, terminating
// the descent. A negative search result r maps to the child index -r-2.
func (n *node[K, V]) child(i int) *node[K, V] {
	if n.leaf {
		return nil
	}
	if i < 0 {
		return n.left
	}
	return n.entries[i].right
}

// insert places a fresh live entry at index i. Only leaves accept direct
// insertion; internal entries come into existence through promotion alone.
func (n *node[K, V]) insert(i int, key K, val V) {
	if !n.leaf {
		panic("btreemap: insert into internal node")
	}
	if n.isFull() {
		panic("btreemap: insert into full node")
	}
	n.entries = slices.Insert(n.entries, i, entry[K, V]{key: key, val: val, present: true})
}

// split divides a full node around its midpoint. Entries above the midpoint
// move into a new sibling of the same kind; for internal nodes the
// midpoint's right subtree becomes the sibling's leftmost child. The node
// keeps the entries below the midpoint. The midpoint entry itself is
// returned with its right pointer rewired to the sibling, ready to be
// inserted into the parent (or to seed a new root).
func (n *node[K, V]) split() entry[K, V] {
	if !n.isFull() {
		panic("btreemap: split of non-full node")
	}
	mid := len(n.entries) / 2
	promoted := n.entries[mid]
	sibling := &node[K, V]{
		leaf:    n.leaf,
		left:    promoted.right,
		entries: make([]entry[K, V], 0, cap(n.entries)),
	}
	sibling.entries = append(sibling.entries, n.entries[mid+1:]...)
	clear(n.entries[mid:]) // drop moved entries so the hidden tail holds no references
	n.entries = n.entries[:mid]
	promoted.right = sibling
	return promoted
}

// searchAndSplit is search with the pre-emptive splitting step folded in.
// The receiver must not be full. If key matches at this level the index is
// returned as-is. Otherwise the target child is located and, if full, split
// now: the promoted entry joins this node and the needle is re-compared
// against the promoted key, which may surface the match at this level or
// redirect the descent into the new sibling. Whatever negative encoding
// comes back, the child it designates is not full.
func (n *node[K, V]) searchAndSplit(cmp func(K, K) int, key K) int {
	i := n.search(cmp, key)
	if i >= 0 || n.leaf {
		return i
	}
	ins := -i - 1
	child := n.child(ins - 1)
	if !child.isFull() {
		return i
	}
	promoted := child.split()
	n.entries = slices.Insert(n.entries, ins, promoted)
	switch c := cmp(key, promoted.key); {
	case c == 0:
		return ins
	case c > 0:
		return -(ins + 1) - 1 // the new sibling, entries[ins].right
	default:
		return i // the original child, now holding only its left half
	}
}
