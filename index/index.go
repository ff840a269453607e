// Package index defines the common contract the benchmark driver uses to
// exercise every key/value structure under comparison.
package index

import "errors"

// Index is the common interface for all implementations. Get and Delete
// report a missing key as ErrNotFound; every implementation honors this,
// including ones whose backing store would otherwise delete blindly.
type Index interface {
	Insert(key int64, value []byte) error
	Get(key int64) ([]byte, error)
	Delete(key int64) error
	Range(start, end int64) (Iterator, error)
	Close() error
}

// Iterator allows scanning over a range of key-value pairs in ascending
// key order.
type Iterator interface {
	Next() bool
	Key() int64
	Value() []byte
	Error() error
	Close() error
}

// ErrNotFound is returned by Get when no live entry exists for the key.
var ErrNotFound = errors.New("index: key not found")
