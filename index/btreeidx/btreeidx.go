// Package btreeidx exposes the pre-emptive-splitting B-tree map behind the
// common Index interface so it can be benchmarked against the reference
// structures.
package btreeidx

import (
	"github.com/btree-query-bench/btreemap"
	"github.com/btree-query-bench/btreemap/index"
)

var _ index.Index = (*BTreeIndex)(nil)

type BTreeIndex struct {
	m *btreemap.Map[int64, []byte]
}

// New returns an index backed by a B-tree map with leaf capacity leafM.
func New(leafM int) *BTreeIndex {
	return &BTreeIndex{m: btreemap.NewDegree[int64, []byte](leafM)}
}

func (b *BTreeIndex) Insert(key int64, value []byte) error {
	b.m.Put(key, value)
	return nil
}

func (b *BTreeIndex) Get(key int64) ([]byte, error) {
	v, ok := b.m.Get(key)
	if !ok {
		return nil, index.ErrNotFound
	}
	return v, nil
}

func (b *BTreeIndex) Delete(key int64) error {
	if _, ok := b.m.Delete(key); !ok {
		return index.ErrNotFound
	}
	return nil
}

// Range walks the map in order and keeps the keys in [start, end]. The map
// offers plain in-order iteration only, so the scan starts from the first
// key; the iterator stops pulling once past end.
func (b *BTreeIndex) Range(start, end int64) (index.Iterator, error) {
	return &rangeIterator{it: b.m.Iter(), start: start, end: end}, nil
}

func (b *BTreeIndex) Close() error { return nil }

type rangeIterator struct {
	it         *btreemap.Iterator[int64, []byte]
	start, end int64
	key        int64
	val        []byte
}

func (it *rangeIterator) Next() bool {
	for it.it.HasNext() {
		k, v := it.it.Next()
		if k > it.end {
			return false
		}
		if k >= it.start {
			it.key, it.val = k, v
			return true
		}
	}
	return false
}

func (it *rangeIterator) Key() int64    { return it.key }
func (it *rangeIterator) Value() []byte { return it.val }
func (it *rangeIterator) Error() error  { return nil }
func (it *rangeIterator) Close() error  { return nil }
