package buffer

import "github.com/arloliu/xwire/errs"

// shrinkThresholdDivisor: shrinkBuffer releases capacity once remaining
// usage drops below 1/shrinkThresholdDivisor of the capacity the window
// had right after its last fill, per §4.2.
const shrinkThresholdDivisor = 4

// fillBuffer guarantees Remaining() >= minFill after it returns
// successfully, pulling bytes from the attached StreamSource. It may
// reallocate the backing array (growing it) and compacts already-consumed
// bytes to the front first via shrinkBuffer.
//
// Growth policy: need = size + (minFill - remaining); if need exceeds the
// current capacity, grow to max(need, 2*capacity).
func (b *Buffer) fillBuffer(minFill int) error {
	b.shrinkBuffer()

	need := b.writerIndex + (minFill - b.Remaining())
	if need > cap(b.data) {
		target := need
		if doubled := cap(b.data) * 2; doubled > target {
			target = doubled
		}

		b.Grow(target)
	}

	for b.Remaining() < minFill {
		free := cap(b.data) - b.writerIndex
		if free <= 0 {
			b.Grow(cap(b.data) + minFill)
			free = cap(b.data) - b.writerIndex
		}

		dst := b.data[b.writerIndex : b.writerIndex+free]

		n, err := b.source.ReadInto(dst)
		if err != nil {
			return errs.NewIOError("stream source read failed", err)
		}

		if n < 0 || n > len(dst) {
			return errs.NewIOError("stream source violated contract: bytes_read out of range", nil)
		}

		if n == 0 {
			// End of stream: the source cannot supply more bytes. The
			// caller's ensureReadable will turn this into a bounds error.
			return nil
		}

		b.advanceWriter(n)
	}

	return nil
}

// shrinkBuffer compacts already-consumed bytes (data[:readerIndex]) out of
// the window and may release capacity once remaining usage drops below a
// quarter of capacity, per §4.2.
func (b *Buffer) shrinkBuffer() {
	if b.readerIndex == 0 {
		return
	}

	remaining := b.Remaining()
	copy(b.data, b.data[b.readerIndex:b.writerIndex])
	b.writerIndex = remaining
	b.readerIndex = 0
	b.data = b.data[:b.writerIndex]

	if cap(b.data) > 0 && remaining < cap(b.data)/shrinkThresholdDivisor {
		newCap := roundUpToWord(remaining * 2)
		if newCap < defaultCapacity {
			newCap = defaultCapacity
		}

		newData := make([]byte, remaining, newCap)
		copy(newData, b.data)
		b.data = newData
	}
}

// Unread moves the read cursor back by n bytes. It fails if that would
// move the cursor below zero.
func (b *Buffer) Unread(n int) error {
	if n < 0 {
		return errs.NewInvalidDataError("unread: negative length")
	}

	if b.readerIndex-n < 0 {
		return errs.NewBoundsError(b.readerIndex, -n, b.writerIndex)
	}

	b.readerIndex -= n

	return nil
}

// Rewind sets the read cursor back to zero.
func (b *Buffer) Rewind() { b.readerIndex = 0 }
