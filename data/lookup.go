package data

// LookupTable is a map with a fall-back value fixed at construction.
// Get on a missing key returns the fallback instead of the zero value,
// which is the usual shape for token-to-index tables where unknown
// tokens map to a shared UNK index.
type LookupTable[K comparable, V any] struct {
	entries  map[K]V
	fallback V
}

// NewLookupTable creates a LookupTable with the given fallback. The
// entries map is copied; a nil map starts an empty table.
func NewLookupTable[K comparable, V any](fallback V, entries map[K]V) *LookupTable[K, V] {
	t := &LookupTable[K, V]{
		entries:  make(map[K]V, len(entries)),
		fallback: fallback,
	}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// Get returns the value for key, or the fallback when key is absent.
func (t *LookupTable[K, V]) Get(key K) V {
	if v, ok := t.entries[key]; ok {
		return v
	}
	return t.fallback
}

// Lookup returns the value for key and whether it was present.
func (t *LookupTable[K, V]) Lookup(key K) (V, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Set stores a value for key.
func (t *LookupTable[K, V]) Set(key K, value V) {
	t.entries[key] = value
}

// Len returns the number of stored entries, excluding the fallback.
func (t *LookupTable[K, V]) Len() int {
	return len(t.entries)
}
