// Package buffer implements the byte store, variable-length integer
// codecs, and streaming read adapter every xwire component is built on: a
// bounded byte region with an independent write cursor and read cursor,
// in-place fixed-width/varint/zig-zag/tagged/length-prefixed codecs, and
// an optional backing StreamSource for incrementally-readable sources.
//
// Buffer is the xwire analogue of mebo's internal/pool.ByteBuffer, grown
// from "amortized append target for one columnar blob" into "general
// random-access codec target with an independent read cursor and an
// optional streaming source".
package buffer

import (
	"encoding/hex"

	"github.com/arloliu/xwire/endian"
	"github.com/arloliu/xwire/errs"
)

// wordSize is the machine word size (bytes) capacity growth rounds up to,
// per §4.1's grow policy.
const wordSize = 8

// defaultCapacity is the initial capacity for a Buffer created empty.
const defaultCapacity = 64

// StreamSource produces bytes incrementally for a Buffer backed by an
// external, non-random-access source (a socket, a decompression pipe, ...).
// Implementations must not retain references to the destination slice
// past the call.
type StreamSource interface {
	// ReadInto copies up to len(dst) bytes into dst and returns the number
	// of bytes actually read. A return of (0, nil) signals end-of-stream.
	ReadInto(dst []byte) (int, error)
}

// Buffer owns or borrows a contiguous byte region and tracks an
// independent write cursor and read cursor over it.
//
// A Buffer backed by a StreamSource holds a non-owning handle to that
// source; the caller must keep the source alive for the Buffer's entire
// lifetime. Buffers are not safe for concurrent use.
type Buffer struct {
	data        []byte
	writerIndex int
	readerIndex int
	source      StreamSource
	engine      endian.EndianEngine
}

// New creates an empty Buffer with a small default capacity.
func New() *Buffer {
	return &Buffer{
		data:   make([]byte, 0, defaultCapacity),
		engine: endian.GetLittleEndianEngine(),
	}
}

// NewWithCapacity creates an empty Buffer pre-sized to at least capacity
// bytes.
func NewWithCapacity(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}

	return &Buffer{
		data:   make([]byte, 0, capacity),
		engine: endian.GetLittleEndianEngine(),
	}
}

// Wrap creates a Buffer borrowing an existing byte region for reading. The
// writer cursor starts at len(data) (the region is considered fully
// written); ResetWith(data) can be used to start writing into it instead.
func Wrap(data []byte) *Buffer {
	return &Buffer{
		data:        data,
		writerIndex: len(data),
		engine:      endian.GetLittleEndianEngine(),
	}
}

// NewStream creates a Buffer with no initial content that tops up its
// window on demand from source.
func NewStream(source StreamSource) *Buffer {
	b := New()
	b.source = source

	return b
}

// SetEngine overrides the byte order used for fixed-width reads/writes.
// The default is little-endian, matching the xwire wire format (§6.2).
func (b *Buffer) SetEngine(engine endian.EndianEngine) { b.engine = engine }

// SetSource attaches a StreamSource for on-demand top-up reads.
func (b *Buffer) SetSource(source StreamSource) { b.source = source }

// Reset clears the buffer to empty, retaining its backing array, and
// detaches any stream source.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.writerIndex = 0
	b.readerIndex = 0
	b.source = nil
}

// ResetWith clears the buffer and starts writing fresh into data (data is
// taken by reference, not copied).
func (b *Buffer) ResetWith(data []byte) {
	b.data = data[:0]
	b.writerIndex = 0
	b.readerIndex = 0
	b.source = nil
}

// Bytes returns the valid written region, data[:writerIndex]. The
// returned slice aliases the Buffer's storage and is invalidated by the
// next Grow.
func (b *Buffer) Bytes() []byte { return b.data[:b.writerIndex] }

// Size returns the number of valid (written) bytes.
func (b *Buffer) Size() int { return b.writerIndex }

// Cap returns the buffer's current capacity.
func (b *Buffer) Cap() int { return cap(b.data) }

// WriterIndex returns the current write cursor position.
func (b *Buffer) WriterIndex() int { return b.writerIndex }

// ReaderIndex returns the current read cursor position.
func (b *Buffer) ReaderIndex() int { return b.readerIndex }

// SetReaderIndex repositions the read cursor directly. Used by callers
// that need to re-read a region (e.g. back-reference resolution).
func (b *Buffer) SetReaderIndex(pos int) { b.readerIndex = pos }

// Remaining returns the number of unread bytes between the read cursor
// and the end of the valid region.
func (b *Buffer) Remaining() int { return b.writerIndex - b.readerIndex }

// Grow ensures the buffer's capacity is at least minCapacity, doubling the
// current capacity and rounding up to the machine word size, per §4.1.
// Reallocation may move the backing array; any previously returned slices
// from Bytes/Slice are invalidated.
func (b *Buffer) Grow(minCapacity int) {
	if cap(b.data) >= minCapacity {
		return
	}

	newCap := cap(b.data)
	if newCap == 0 {
		newCap = defaultCapacity
	}

	for newCap < minCapacity {
		newCap *= 2
	}

	newCap = roundUpToWord(newCap)

	newData := make([]byte, len(b.data), newCap)
	copy(newData, b.data)
	b.data = newData
}

func roundUpToWord(n int) int {
	if rem := n % wordSize; rem != 0 {
		n += wordSize - rem
	}

	return n
}

// reserve ensures there is room for n more bytes past the write cursor,
// growing the buffer unconditionally (writes never fail on capacity).
func (b *Buffer) reserve(n int) {
	need := b.writerIndex + n
	if need <= cap(b.data) {
		return
	}

	b.Grow(need)
}

// advanceWriter grows the valid (len) region to cover the just-written n
// bytes and advances the write cursor.
func (b *Buffer) advanceWriter(n int) {
	b.writerIndex += n
	if b.writerIndex > len(b.data) {
		b.data = b.data[:b.writerIndex]
	}
}

// Slice returns data[start:start+n], growing the backing array first if
// necessary so the range is addressable. It does not move the write
// cursor; callers that want the region counted as written must advance
// the writer index themselves.
func (b *Buffer) Slice(start, n int) []byte {
	b.Grow(start + n)
	if start+n > len(b.data) {
		b.data = b.data[:start+n]
	}

	return b.data[start : start+n]
}

// Copy returns a freshly allocated copy of data[start:start+n].
func (b *Buffer) Copy(start, n int) ([]byte, error) {
	if start < 0 || n < 0 || start+n > b.writerIndex {
		return nil, errs.NewBoundsError(start, n, b.writerIndex)
	}

	out := make([]byte, n)
	copy(out, b.data[start:start+n])

	return out, nil
}

// Equals reports whether two buffers contain the same valid bytes.
func (b *Buffer) Equals(other *Buffer) bool {
	if other == nil {
		return false
	}

	return string(b.Bytes()) == string(other.Bytes())
}

// Hex returns the valid region hex-encoded, for diagnostics.
func (b *Buffer) Hex() string { return hex.EncodeToString(b.Bytes()) }

// Skip advances the read cursor by n bytes, topping up from the stream
// source if necessary. It fails with a bounds error if n would move the
// cursor past the valid region and no source can supply more.
func (b *Buffer) Skip(n int) error {
	if n < 0 {
		return errs.NewInvalidDataError("skip: negative length")
	}

	if err := b.ensureReadable(n); err != nil {
		return err
	}

	b.readerIndex += n

	return nil
}

// ensureReadable guarantees Remaining() >= n, pulling more bytes from the
// stream source (if any) when the valid region is too short. It returns a
// bounds error, leaving the cursor unchanged, when n bytes will never be
// available.
func (b *Buffer) ensureReadable(n int) error {
	if b.Remaining() >= n {
		return nil
	}

	if b.source == nil {
		return errs.NewBoundsError(b.readerIndex, n, b.writerIndex)
	}

	if err := b.fillBuffer(n); err != nil {
		return err
	}

	if b.Remaining() < n {
		return errs.NewBoundsError(b.readerIndex, n, b.writerIndex)
	}

	return nil
}
