package buffer

import "sync"

// DefaultPoolCapacity is the initial capacity of a Buffer obtained from
// the default pool.
const DefaultPoolCapacity = 1024

// MaxPoolThreshold is the capacity above which Put discards a buffer
// instead of returning it to the pool, to avoid memory bloat from a few
// oversized envelopes pinning large backing arrays.
const MaxPoolThreshold = 1024 * 1024

// Pool is a sync.Pool of Buffers, adapted from mebo's
// internal/pool.ByteBufferPool free-list idiom: a context's per-call
// scratch Buffer is borrowed from the pool and returned once the
// top-level serialize/deserialize call completes.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose buffers start at defaultCapacity bytes.
func NewPool(defaultCapacity, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return NewWithCapacity(defaultCapacity)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a reset Buffer from the pool.
func (p *Pool) Get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)
	buf.Reset()

	return buf
}

// Put returns buf to the pool for reuse, unless it has grown past the
// pool's max threshold.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}

	if p.maxThreshold > 0 && buf.Cap() > p.maxThreshold {
		return
	}

	buf.Reset()
	p.pool.Put(buf)
}

var defaultPool = NewPool(DefaultPoolCapacity, MaxPoolThreshold)

// GetPooled retrieves a Buffer from the package-wide default pool.
func GetPooled() *Buffer { return defaultPool.Get() }

// PutPooled returns a Buffer to the package-wide default pool.
func PutPooled(buf *Buffer) { defaultPool.Put(buf) }
