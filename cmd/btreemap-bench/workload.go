package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"github.com/btree-query-bench/btreemap/index"
)

type kv struct {
	key int64
	val []byte
}

// Workload holds pre-generated operation streams, so every structure in a
// run executes the identical sequence: the pairs to insert, the inserted
// keys in shuffled order (guaranteed hits) and a stream of random probe
// keys (mostly misses). Generation is deterministic for a fixed seed.
type Workload struct {
	iters    int
	contents []kv
	found    []int64
	probes   []int64
}

func NewWorkload(iters int, seed int64) *Workload {
	w := &Workload{iters: iters}
	w.gen(rand.New(rand.NewSource(seed)))
	return w
}

func (w *Workload) gen(rng *rand.Rand) {
	w.contents = make([]kv, 0, w.iters)
	w.found = make([]int64, 0, w.iters)
	w.probes = make([]int64, 0, w.iters)
	for i := 0; i < w.iters; i++ {
		val := make([]byte, 8)
		binary.LittleEndian.PutUint64(val, rng.Uint64())
		w.contents = append(w.contents, kv{key: rng.Int63(), val: val})
	}
	for _, item := range w.contents {
		w.found = append(w.found, item.key)
	}
	rng.Shuffle(len(w.found), func(i, j int) {
		w.found[i], w.found[j] = w.found[j], w.found[i]
	})
	for i := 0; i < w.iters; i++ {
		w.probes = append(w.probes, rng.Int63())
	}
}

// Insert loads every generated pair.
func (w *Workload) Insert(idx index.Index) error {
	for _, item := range w.contents {
		if err := idx.Insert(item.key, item.val); err != nil {
			return err
		}
	}
	return nil
}

// LookupFound looks up every inserted key in shuffled order and folds the
// values into a checksum, so runs can be cross-checked between structures
// and the reads cannot be elided.
func (w *Workload) LookupFound(idx index.Index) (uint64, error) {
	var sum uint64
	for _, k := range w.found {
		v, err := idx.Get(k)
		if err != nil {
			return 0, fmt.Errorf("lookup of inserted key %d: %w", k, err)
		}
		sum ^= binary.LittleEndian.Uint64(v)
	}
	return sum, nil
}

// LookupRand probes random keys and counts the hits. With a 63-bit
// keyspace nearly all of them miss.
func (w *Workload) LookupRand(idx index.Index) int {
	count := 0
	for _, k := range w.probes {
		if _, err := idx.Get(k); err == nil {
			count++
		}
	}
	return count
}

// Scan walks the whole structure in key order and returns the number of
// entries seen.
func (w *Workload) Scan(idx index.Index) (int, error) {
	it, err := idx.Range(0, math.MaxInt64)
	if err != nil {
		return 0, err
	}
	defer it.Close()
	count := 0
	for it.Next() {
		count++
	}
	return count, it.Error()
}

// MixType selects the read/write ratio of a mixed workload.
type MixType string

const (
	OLTP MixType = "OLTP (90/10)"
	OLAP MixType = "OLAP (10/90)"
)

// ExecuteMix runs a mixed distribution of point reads and writes over the
// already-loaded keys, on an independent generator so repeated runs stay
// deterministic.
func (w *Workload) ExecuteMix(idx index.Index, mix MixType, ops int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	readPct := 90
	if mix == OLAP {
		readPct = 10
	}
	for i := 0; i < ops; i++ {
		k := w.found[rng.Intn(len(w.found))]
		if rng.Intn(100) < readPct {
			_, _ = idx.Get(k)
		} else if err := idx.Insert(k, []byte("x")); err != nil {
			return err
		}
	}
	return nil
}
