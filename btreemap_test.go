package btreemap

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	m := New[string, int]()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Height())
	assert.True(t, m.IsEmpty())
	assert.False(t, m.Contains("what"))
	_, ok := m.Get("what")
	assert.False(t, ok)
}

func TestSingleKey(t *testing.T) {
	m := New[string, int]()

	prev, replaced := m.Put("cool", 10)
	assert.False(t, replaced)
	assert.Zero(t, prev)
	assert.False(t, m.IsEmpty())

	v, ok := m.Get("cool")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	_, ok = m.Get("strange")
	assert.False(t, ok)

	prev, replaced = m.Put("cool", 20)
	assert.True(t, replaced)
	assert.Equal(t, 10, prev)
	assert.Equal(t, 1, m.Len())

	prev, deleted := m.Delete("cool")
	assert.True(t, deleted)
	assert.Equal(t, 20, prev)
	assert.True(t, m.IsEmpty())
}

func TestRootSplitScenario(t *testing.T) {
	// LeafM = 4: the first four fruit exactly fill the root leaf and the
	// fifth forces a root split.
	m := NewDegree[string, int](4)
	for i, k := range []string{"apple", "banana", "carrot", "date"} {
		m.Put(k, i+1)
	}
	assert.Equal(t, 0, m.Height())
	assert.Equal(t, 4, m.Len())

	m.Put("elderberry", 5)
	assert.Equal(t, 1, m.Height())
	assert.Equal(t, 5, m.Len())

	want := []string{"apple", "banana", "carrot", "date", "elderberry"}
	for i, k := range want {
		v, ok := m.Get(k)
		require.True(t, ok, "key %q", k)
		assert.Equal(t, i+1, v)
	}

	var got []string
	for k := range m.All() {
		got = append(got, k)
	}
	assert.Equal(t, want, got)
}

func TestTombstoneSemantics(t *testing.T) {
	m := NewDegree[string, int](4)
	for i, k := range []string{"apple", "banana", "carrot", "date", "elderberry", "fungus", "grape"} {
		m.Put(k, i)
	}
	require.Equal(t, 7, m.Len())

	prev, deleted := m.Delete("carrot")
	assert.True(t, deleted)
	assert.Equal(t, 2, prev)
	assert.Equal(t, 6, m.Len())
	assert.False(t, m.Contains("carrot"))
	_, ok := m.Get("carrot")
	assert.False(t, ok)

	// Deleting again, or deleting a never-inserted key, changes nothing.
	_, deleted = m.Delete("carrot")
	assert.False(t, deleted)
	_, deleted = m.Delete("zucchini")
	assert.False(t, deleted)
	assert.Equal(t, 6, m.Len())

	// A later put resurrects the tombstoned slot.
	prev, replaced := m.Put("carrot", 99)
	assert.False(t, replaced)
	assert.Zero(t, prev)
	assert.Equal(t, 7, m.Len())
	v, ok := m.Get("carrot")
	require.True(t, ok)
	assert.Equal(t, 99, v)
}

func TestHeightGrowsOnAscendingInserts(t *testing.T) {
	m := NewDegree[int, int](4)
	for i := 0; i < 1000; i++ {
		m.Put(i, i)
	}
	assert.Equal(t, 1000, m.Len())
	assert.Greater(t, m.Height(), 2)
	for i := 0; i < 1000; i++ {
		v, ok := m.Get(i)
		require.True(t, ok, "key %d", i)
		require.Equal(t, i, v)
	}
}

func TestClear(t *testing.T) {
	m := NewDegree[int, int](4)
	for i := 0; i < 100; i++ {
		m.Put(i, i)
	}
	require.Greater(t, m.Height(), 0)

	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Height())
	assert.True(t, m.IsEmpty())
	assert.False(t, m.Iter().HasNext())

	// Clear is idempotent and the map is immediately reusable.
	m.Clear()
	m.Put(1, 1)
	assert.Equal(t, 1, m.Len())
}

func TestCustomComparison(t *testing.T) {
	// Reverse ordering; iteration follows the supplied comparison.
	m := NewFunc[int, string](func(a, b int) int { return b - a })
	for _, k := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		m.Put(k, "x")
	}
	var got []int
	for k := range m.All() {
		got = append(got, k)
	}
	assert.Equal(t, []int{9, 6, 5, 4, 3, 2, 1}, got)
}

// Randomized cross-check against the built-in map, mirroring observable
// behavior on every operation over several degrees.
func TestRandomizedAgainstReference(t *testing.T) {
	for _, degree := range []int{2, 3, 4, 8, 32} {
		rng := rand.New(rand.NewSource(int64(degree)))
		m := NewDegree[int64, float64](degree)
		ref := map[int64]float64{}

		const n = 5000
		keyspace := int64(n / 2) // force collisions, overwrites and resurrections
		for i := 0; i < n; i++ {
			k := rng.Int63n(keyspace)
			switch rng.Intn(10) {
			case 0, 1, 2: // delete
				wantPrev, wantOK := ref[k]
				delete(ref, k)
				prev, ok := m.Delete(k)
				require.Equal(t, wantOK, ok, "degree %d delete %d", degree, k)
				require.Equal(t, wantPrev, prev)
			case 3: // lookup, hit or miss
				wantV, wantOK := ref[k]
				v, ok := m.Get(k)
				require.Equal(t, wantOK, ok, "degree %d get %d", degree, k)
				require.Equal(t, wantV, v)
				require.Equal(t, wantOK, m.Contains(k))
			default: // insert or overwrite
				v := rng.Float64()
				wantPrev, wantOK := ref[k]
				ref[k] = v
				prev, replaced := m.Put(k, v)
				require.Equal(t, wantOK, replaced, "degree %d put %d", degree, k)
				require.Equal(t, wantPrev, prev)
			}
			require.Equal(t, len(ref), m.Len())
		}

		// Final sweep: contents and order match the reference exactly.
		wantKeys := make([]int64, 0, len(ref))
		for k := range ref {
			wantKeys = append(wantKeys, k)
		}
		slices.Sort(wantKeys)

		var gotKeys []int64
		for k, v := range m.All() {
			gotKeys = append(gotKeys, k)
			require.Equal(t, ref[k], v)
		}
		require.Equal(t, wantKeys, gotKeys, "degree %d iteration order", degree)
	}
}
