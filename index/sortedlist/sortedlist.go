// Package sortedlist implements the simplest ordered reference index: a
// single sorted slice with binary search. O(n) inserts, O(log n) lookups,
// trivially correct iteration — the baseline the tree structures are
// measured against.
package sortedlist

import (
	"slices"

	"github.com/btree-query-bench/btreemap/index"
)

var _ index.Index = (*SortedList)(nil)

type Data struct {
	Key int64
	Val []byte
}

type SortedList struct {
	Data []Data
}

func New() *SortedList {
	return &SortedList{Data: make([]Data, 0)}
}

func (l *SortedList) search(key int64) (int, bool) {
	return slices.BinarySearchFunc(l.Data, key, func(d Data, k int64) int {
		switch {
		case d.Key < k:
			return -1
		case d.Key > k:
			return 1
		default:
			return 0
		}
	})
}

func (l *SortedList) Insert(key int64, value []byte) error {
	i, found := l.search(key)
	if found {
		l.Data[i].Val = value
		return nil
	}
	l.Data = slices.Insert(l.Data, i, Data{Key: key, Val: value})
	return nil
}

func (l *SortedList) Get(key int64) ([]byte, error) {
	i, found := l.search(key)
	if !found {
		return nil, index.ErrNotFound
	}
	return l.Data[i].Val, nil
}

func (l *SortedList) Delete(key int64) error {
	i, found := l.search(key)
	if !found {
		return index.ErrNotFound
	}
	l.Data = slices.Delete(l.Data, i, i+1)
	return nil
}

func (l *SortedList) Range(start, end int64) (index.Iterator, error) {
	i, _ := l.search(start)
	return &ListIterator{data: l.Data, cur: i - 1, end: end}, nil
}

func (l *SortedList) Close() error { return nil }

type ListIterator struct {
	data []Data
	cur  int
	end  int64
}

func (it *ListIterator) Next() bool {
	it.cur++
	return it.cur < len(it.data) && it.data[it.cur].Key <= it.end
}

func (it *ListIterator) Key() int64    { return it.data[it.cur].Key }
func (it *ListIterator) Value() []byte { return it.data[it.cur].Val }
func (it *ListIterator) Error() error  { return nil }
func (it *ListIterator) Close() error  { return nil }
