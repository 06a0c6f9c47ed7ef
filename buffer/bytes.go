package buffer

// WriteBytes appends src verbatim with no length framing; the caller is
// responsible for writing any length prefix separately.
func (b *Buffer) WriteBytes(src []byte) {
	b.reserve(len(src))
	copy(b.data[b.writerIndex:], src)
	b.advanceWriter(len(src))
}

// ReadBytes reads n raw bytes, returning a freshly allocated copy. The
// caller is responsible for having read any length prefix separately.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if err := b.ensureReadable(n); err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, b.data[b.readerIndex:b.readerIndex+n])
	b.readerIndex += n

	return out, nil
}

// ReadBytesView reads n raw bytes and returns a view aliasing the buffer's
// backing storage, avoiding a copy. The returned slice is only valid until
// the next Grow.
func (b *Buffer) ReadBytesView(n int) ([]byte, error) {
	if err := b.ensureReadable(n); err != nil {
		return nil, err
	}

	view := b.data[b.readerIndex : b.readerIndex+n]
	b.readerIndex += n

	return view, nil
}
