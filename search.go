package btreemap

// searchEntries binary-searches ents, which is ordered ascending by key,
// using the three-way comparison cmp. It returns the index of an exact match
// if one exists, and otherwise -(p)-1 where p is the position needle would
// occupy to keep ents ordered. The caller recovers p as -result-1.
//
// This is the slices.BinarySearchFunc contract flattened into a single int so
// search results compose directly with the descent index arithmetic in Map.
func searchEntries[K, V any](ents []entry[K, V], cmp func(K, K) int, needle K) int {
	lo, hi := 0, len(ents)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch c := cmp(needle, ents[mid].key); {
		case c > 0:
			lo = mid + 1
		case c < 0:
			hi = mid - 1
		default:
			return mid
		}
	}
	return -(lo + 1)
}
