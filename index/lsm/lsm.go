// Package lsm wraps Pebble (CockroachDB's LSM storage engine) behind the
// common Index interface. It is the industrial-strength reference the
// in-memory structures are compared against.
package lsm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cockroachdb/pebble"

	"github.com/btree-query-bench/btreemap/index"
)

var _ index.Index = (*LSM)(nil)

type LSM struct {
	db *pebble.DB
}

// Open opens (or creates) a Pebble database at the given directory path.
func Open(dir string) (*LSM, error) {
	opts := &pebble.Options{
		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 4,
		L0CompactionThreshold:       4,
		L0StopWritesThreshold:       12,
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("lsm: open: %w", err)
	}
	return &LSM{db: db}, nil
}

// Close shuts down Pebble, flushing any in-memory state.
func (l *LSM) Close() error {
	return l.db.Close()
}

func (l *LSM) Insert(key int64, value []byte) error {
	return l.db.Set(encodeKey(key), value, pebble.NoSync)
}

func (l *LSM) Get(key int64) ([]byte, error) {
	val, closer, err := l.db.Get(encodeKey(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, index.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lsm: get: %w", err)
	}
	// val is only valid until closer.Close(), so copy it out.
	result := make([]byte, len(val))
	copy(result, val)
	closer.Close()
	return result, nil
}

// Delete removes the key. Pebble deletes are blind, so the key is looked up
// first to keep the Index contract: ErrNotFound for a key that is not there.
func (l *LSM) Delete(key int64) error {
	ek := encodeKey(key)
	_, closer, err := l.db.Get(ek)
	if errors.Is(err, pebble.ErrNotFound) {
		return index.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lsm: delete: %w", err)
	}
	closer.Close()
	if err := l.db.Delete(ek, pebble.NoSync); err != nil {
		return fmt.Errorf("lsm: delete: %w", err)
	}
	return nil
}

// Range returns an iterator over all keys in [start, end] inclusive.
// Pebble's UpperBound is exclusive, hence the +1; at MaxInt64 the increment
// would overflow and wrap the bound below LowerBound, so the scan is left
// unbounded instead (a nil UpperBound means no upper limit).
func (l *LSM) Range(start, end int64) (index.Iterator, error) {
	opts := &pebble.IterOptions{LowerBound: encodeKey(start)}
	if end != math.MaxInt64 {
		opts.UpperBound = encodeKey(end + 1)
	}
	iter, err := l.db.NewIter(opts)
	if err != nil {
		return nil, fmt.Errorf("lsm: range: %w", err)
	}
	iter.First()
	return &rangeIterator{iter: iter, first: true}, nil
}

// encodeKey encodes an int64 as a big-endian 8-byte slice. Big-endian
// preserves sort order, which Pebble relies on; flipping the sign bit keeps
// negative keys ordered before positive ones under unsigned comparison.
func encodeKey(k int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(k)^(1<<63))
	return b
}

func decodeKey(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b) ^ (1 << 63))
}

type rangeIterator struct {
	iter  *pebble.Iterator
	first bool
	key   int64
	val   []byte
	err   error
}

func (it *rangeIterator) Next() bool {
	var valid bool
	if it.first {
		// iter.First() already ran in Range(); just check validity.
		it.first = false
		valid = it.iter.Valid()
	} else {
		valid = it.iter.Next()
	}
	if !valid {
		return false
	}
	k := it.iter.Key()
	if len(k) != 8 {
		it.err = fmt.Errorf("lsm: unexpected key length %d", len(k))
		return false
	}
	it.key = decodeKey(k)
	// Copy the value — Pebble reuses the buffer on Next().
	v := it.iter.Value()
	it.val = make([]byte, len(v))
	copy(it.val, v)
	return true
}

func (it *rangeIterator) Key() int64    { return it.key }
func (it *rangeIterator) Value() []byte { return it.val }
func (it *rangeIterator) Error() error  { return it.err }
func (it *rangeIterator) Close() error  { return it.iter.Close() }
