// Package hashmap wraps the built-in Go map behind the common Index
// interface. It is the unordered baseline: O(1) point operations, but Range
// must collect and sort the keys on every call.
package hashmap

import (
	"slices"

	"github.com/btree-query-bench/btreemap/index"
)

var _ index.Index = (*HashMap)(nil)

type HashMap struct {
	data map[int64][]byte
}

func New() *HashMap {
	return &HashMap{data: make(map[int64][]byte)}
}

func (h *HashMap) Insert(key int64, value []byte) error {
	h.data[key] = value
	return nil
}

func (h *HashMap) Get(key int64) ([]byte, error) {
	v, ok := h.data[key]
	if !ok {
		return nil, index.ErrNotFound
	}
	return v, nil
}

func (h *HashMap) Delete(key int64) error {
	if _, ok := h.data[key]; !ok {
		return index.ErrNotFound
	}
	delete(h.data, key)
	return nil
}

func (h *HashMap) Range(start, end int64) (index.Iterator, error) {
	keys := make([]int64, 0, len(h.data))
	for k := range h.data {
		if k >= start && k <= end {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return &mapIterator{m: h.data, keys: keys, cur: -1}, nil
}

func (h *HashMap) Close() error { return nil }

type mapIterator struct {
	m    map[int64][]byte
	keys []int64
	cur  int
}

func (it *mapIterator) Next() bool {
	it.cur++
	return it.cur < len(it.keys)
}

func (it *mapIterator) Key() int64    { return it.keys[it.cur] }
func (it *mapIterator) Value() []byte { return it.m[it.keys[it.cur]] }
func (it *mapIterator) Error() error  { return nil }
func (it *mapIterator) Close() error  { return nil }
