package btreemap

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorEmpty(t *testing.T) {
	m := New[int, int]()
	it := m.Iter()
	assert.False(t, it.HasNext())
	assert.Panics(t, func() { it.Next() })
}

func TestIteratorAscendingOrder(t *testing.T) {
	m := NewDegree[int64, int](4)
	rng := rand.New(rand.NewSource(7))
	seen := map[int64]bool{}
	for i := 0; i < 2000; i++ {
		k := rng.Int63n(1000)
		seen[k] = true
		m.Put(k, i)
	}

	prev := int64(-1)
	count := 0
	for it := m.Iter(); it.HasNext(); {
		k, _ := it.Next()
		require.Greater(t, k, prev, "keys must be strictly increasing")
		require.True(t, seen[k])
		prev = k
		count++
	}
	assert.Equal(t, len(seen), count)
	assert.Equal(t, m.Len(), count)
}

func TestIteratorSkipsTombstones(t *testing.T) {
	m := NewDegree[int, string](4)
	for i := 0; i < 50; i++ {
		m.Put(i, "v")
	}
	for i := 0; i < 50; i += 2 {
		m.Delete(i)
	}

	var got []int
	for k := range m.All() {
		got = append(got, k)
	}
	var want []int
	for i := 1; i < 50; i += 2 {
		want = append(want, i)
	}
	assert.Equal(t, want, got)
}

func TestIteratorFirstEntryTombstoned(t *testing.T) {
	m := NewDegree[int, string](4)
	for i := 0; i < 20; i++ {
		m.Put(i, "v")
	}
	m.Delete(0)
	m.Delete(1)

	it := m.Iter()
	require.True(t, it.HasNext())
	k, _ := it.Next()
	assert.Equal(t, 2, k)
}

func TestIteratorRemove(t *testing.T) {
	m := NewDegree[int, string](4)
	for i := 0; i < 30; i++ {
		m.Put(i, "v")
	}

	// Remove every key divisible by three through the iterator itself.
	for it := m.Iter(); it.HasNext(); {
		k, _ := it.Next()
		if k%3 == 0 {
			it.Remove()
		}
	}
	assert.Equal(t, 20, m.Len())
	for i := 0; i < 30; i++ {
		assert.Equal(t, i%3 != 0, m.Contains(i), "key %d", i)
	}
}

func TestIteratorRemoveMisuse(t *testing.T) {
	m := NewDegree[int, string](4)
	m.Put(1, "a")
	m.Put(2, "b")

	it := m.Iter()
	assert.Panics(t, func() { it.Remove() }, "Remove before any Next")

	it.Next()
	it.Remove()
	assert.Equal(t, 1, m.Len())
	assert.Panics(t, func() { it.Remove() }, "second Remove without Next")

	it.Next()
	it.Remove()
	assert.True(t, m.IsEmpty())
}

func TestIteratorExhaustion(t *testing.T) {
	m := New[int, string]()
	m.Put(1, "a")

	it := m.Iter()
	k, v := it.Next()
	assert.Equal(t, 1, k)
	assert.Equal(t, "a", v)
	assert.False(t, it.HasNext())
	assert.PanicsWithValue(t, "btreemap: Next past end of iteration", func() { it.Next() })
}

func TestAllEarlyBreak(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 10; i++ {
		m.Put(i, i)
	}
	var got []int
	for k := range m.All() {
		got = append(got, k)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, got)
}

// Interleaved iterator removal must keep the remaining contents and order
// consistent with a reference model.
func TestIteratorRemoveRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m := NewDegree[int, int](4)
	ref := map[int]int{}
	for i := 0; i < 500; i++ {
		k := rng.Intn(300)
		m.Put(k, i)
		ref[k] = i
	}

	for it := m.Iter(); it.HasNext(); {
		k, _ := it.Next()
		if rng.Intn(2) == 0 {
			it.Remove()
			delete(ref, k)
		}
	}

	wantKeys := make([]int, 0, len(ref))
	for k := range ref {
		wantKeys = append(wantKeys, k)
	}
	slices.Sort(wantKeys)

	var gotKeys []int
	for k, v := range m.All() {
		gotKeys = append(gotKeys, k)
		require.Equal(t, ref[k], v)
	}
	assert.Equal(t, wantKeys, gotKeys)
	assert.Equal(t, len(ref), m.Len())
}
