package typemeta

// WriteCache tracks which TypeMeta values have already been written to
// the current envelope, so repeat occurrences of the same type emit a
// back-reference instead of the full block, per §4.5's envelope-scoped
// cache. Keyed by Hash: two distinct field sets colliding on a 64-bit
// FNV hash is not a case the wire format guards against, since type
// identity is defined by content hash in the first place.
type WriteCache struct {
	index map[uint64]int
	next  int
}

// NewWriteCache creates an empty WriteCache.
func NewWriteCache() *WriteCache {
	return &WriteCache{index: make(map[uint64]int)}
}

// Lookup returns the cached index and true if tm was already written
// this envelope; otherwise it assigns and reserves the next index,
// returning it with false.
func (c *WriteCache) Lookup(tm TypeMeta) (idx int, cached bool) {
	if idx, ok := c.index[tm.Hash]; ok {
		return idx, true
	}

	idx = c.next
	c.next++
	c.index[tm.Hash] = idx

	return idx, false
}

// Reset clears the cache for reuse across envelopes.
func (c *WriteCache) Reset() {
	for k := range c.index {
		delete(c.index, k)
	}

	c.next = 0
}

// ReadCache mirrors WriteCache on the read side: an append-only table of
// TypeMeta values indexed by the order they first appeared in the
// envelope.
type ReadCache struct {
	table []TypeMeta
}

// NewReadCache creates an empty ReadCache.
func NewReadCache() *ReadCache {
	return &ReadCache{}
}

// Add appends a newly-read TypeMeta, returning its assigned index.
func (c *ReadCache) Add(tm TypeMeta) int {
	c.table = append(c.table, tm)

	return len(c.table) - 1
}

// Get returns the TypeMeta previously stored at idx.
func (c *ReadCache) Get(idx int) (TypeMeta, bool) {
	if idx < 0 || idx >= len(c.table) {
		return TypeMeta{}, false
	}

	return c.table[idx], true
}

// Reset clears the cache for reuse across envelopes.
func (c *ReadCache) Reset() {
	c.table = c.table[:0]
}
