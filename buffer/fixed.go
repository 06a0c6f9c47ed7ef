package buffer

import "math"

// Fixed-width writes append len(T) bytes in the buffer's configured byte
// order (little-endian by default, per §6.2) with no length framing.
// Writes grow the buffer unconditionally and never fail.

func (b *Buffer) WriteFixedU8(v uint8) {
	b.reserve(1)
	b.data[b.writerIndex] = v
	b.advanceWriter(1)
}

func (b *Buffer) WriteFixedI8(v int8) { b.WriteFixedU8(uint8(v)) }

func (b *Buffer) WriteFixedU16(v uint16) {
	b.reserve(2)
	b.engine.PutUint16(b.data[b.writerIndex:b.writerIndex+2], v)
	b.advanceWriter(2)
}

func (b *Buffer) WriteFixedI16(v int16) { b.WriteFixedU16(uint16(v)) }

func (b *Buffer) WriteFixedU32(v uint32) {
	b.reserve(4)
	b.engine.PutUint32(b.data[b.writerIndex:b.writerIndex+4], v)
	b.advanceWriter(4)
}

func (b *Buffer) WriteFixedI32(v int32) { b.WriteFixedU32(uint32(v)) }

func (b *Buffer) WriteFixedU64(v uint64) {
	b.reserve(8)
	b.engine.PutUint64(b.data[b.writerIndex:b.writerIndex+8], v)
	b.advanceWriter(8)
}

func (b *Buffer) WriteFixedI64(v int64) { b.WriteFixedU64(uint64(v)) }

func (b *Buffer) WriteFixedF32(v float32) { b.WriteFixedU32(math.Float32bits(v)) }

func (b *Buffer) WriteFixedF64(v float64) { b.WriteFixedU64(math.Float64bits(v)) }

// Fixed-width reads consult the reader cursor and top up from the stream
// source (if any) before failing with a bounds error.

func (b *Buffer) ReadFixedU8() (uint8, error) {
	if err := b.ensureReadable(1); err != nil {
		return 0, err
	}

	v := b.data[b.readerIndex]
	b.readerIndex++

	return v, nil
}

func (b *Buffer) ReadFixedI8() (int8, error) {
	v, err := b.ReadFixedU8()
	return int8(v), err
}

func (b *Buffer) ReadFixedU16() (uint16, error) {
	if err := b.ensureReadable(2); err != nil {
		return 0, err
	}

	v := b.engine.Uint16(b.data[b.readerIndex : b.readerIndex+2])
	b.readerIndex += 2

	return v, nil
}

func (b *Buffer) ReadFixedI16() (int16, error) {
	v, err := b.ReadFixedU16()
	return int16(v), err
}

func (b *Buffer) ReadFixedU32() (uint32, error) {
	if err := b.ensureReadable(4); err != nil {
		return 0, err
	}

	v := b.engine.Uint32(b.data[b.readerIndex : b.readerIndex+4])
	b.readerIndex += 4

	return v, nil
}

func (b *Buffer) ReadFixedI32() (int32, error) {
	v, err := b.ReadFixedU32()
	return int32(v), err
}

func (b *Buffer) ReadFixedU64() (uint64, error) {
	if err := b.ensureReadable(8); err != nil {
		return 0, err
	}

	v := b.engine.Uint64(b.data[b.readerIndex : b.readerIndex+8])
	b.readerIndex += 8

	return v, nil
}

func (b *Buffer) ReadFixedI64() (int64, error) {
	v, err := b.ReadFixedU64()
	return int64(v), err
}

func (b *Buffer) ReadFixedF32() (float32, error) {
	v, err := b.ReadFixedU32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

func (b *Buffer) ReadFixedF64() (float64, error) {
	v, err := b.ReadFixedU64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

// WriteInt24 writes a three-byte little-endian signed integer. v must fit
// in [-2^23, 2^23-1]; out-of-range values are truncated to their low 24
// bits, matching two's complement wraparound.
func (b *Buffer) WriteInt24(v int32) {
	b.reserve(3)
	u := uint32(v)
	b.data[b.writerIndex+0] = byte(u)
	b.data[b.writerIndex+1] = byte(u >> 8)
	b.data[b.writerIndex+2] = byte(u >> 16)
	b.advanceWriter(3)
}

// ReadInt24 reads a three-byte little-endian signed integer, sign-extending
// bit 23 into the result.
func (b *Buffer) ReadInt24() (int32, error) {
	if err := b.ensureReadable(3); err != nil {
		return 0, err
	}

	u := uint32(b.data[b.readerIndex]) | uint32(b.data[b.readerIndex+1])<<8 | uint32(b.data[b.readerIndex+2])<<16
	b.readerIndex += 3

	if u&0x800000 != 0 {
		u |= 0xFF000000
	}

	return int32(u), nil
}

// UnsafeReadFixedU8 reads one byte without a bounds check. The caller must
// have already validated that Remaining() >= 1; used only in hot paths
// (e.g. the varint fast path) that have pre-validated the length.
func (b *Buffer) UnsafeReadFixedU8() uint8 {
	v := b.data[b.readerIndex]
	b.readerIndex++

	return v
}
