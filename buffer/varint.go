package buffer

import "github.com/arloliu/xwire/errs"

// Unsigned LEB128-style varints: 7 data bits per byte, continuation bit in
// bit 7. var_uint32 uses 1-5 bytes; var_uint64 uses 1-9 bytes, where the
// 9th byte carries bits 56-63 with no continuation bit (per §4.1).

const (
	maxVarUint32Bytes = 5
	maxVarUint64Bytes = 9
)

// WriteVarUint32 writes v as an unsigned varint and returns the number of
// bytes written.
func (b *Buffer) WriteVarUint32(v uint32) int {
	b.reserve(maxVarUint32Bytes)
	n := putVarUint32(b.data[b.writerIndex:b.writerIndex+maxVarUint32Bytes], v)
	b.advanceWriter(n)

	return n
}

// PutVarUint32 writes v as an unsigned varint at the given absolute offset
// into the buffer's backing storage (growing it if necessary) without
// touching the write cursor, returning the number of bytes written.
func (b *Buffer) PutVarUint32(offset int, v uint32) int {
	dst := b.Slice(offset, maxVarUint32Bytes)
	return putVarUint32(dst, v)
}

func putVarUint32(dst []byte, v uint32) int {
	i := 0
	for v >= 0x80 {
		dst[i] = byte(v) | 0x80
		v >>= 7
		i++
	}

	dst[i] = byte(v)

	return i + 1
}

// varUint32ByteLen returns the number of bytes WriteVarUint32 would emit
// for v, matching the ceiling table in §8.
func varUint32ByteLen(v uint32) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	default:
		return 5
	}
}

// VarUint32Len returns the number of bytes WriteVarUint32(v) would emit.
func VarUint32Len(v uint32) int { return varUint32ByteLen(v) }

// ReadVarUint32 decodes an unsigned varint, consuming 1-5 bytes.
func (b *Buffer) ReadVarUint32() (uint32, error) {
	start := b.readerIndex

	if b.Remaining() >= maxVarUint32Bytes {
		v, n, ok := decodeVarUint32Fast(b.data[b.readerIndex:])
		if ok {
			b.readerIndex += n
			return v, nil
		}

		b.readerIndex = start

		return 0, errs.NewInvalidDataError("var_uint32: malformed (no terminator within 5 bytes)")
	}

	var (
		result uint32
		shift  uint
	)

	for i := 0; i < maxVarUint32Bytes; i++ {
		by, err := b.ReadFixedU8()
		if err != nil {
			b.readerIndex = start
			return 0, err
		}

		result |= uint32(by&0x7F) << shift
		if by&0x80 == 0 {
			return result, nil
		}

		shift += 7
	}

	b.readerIndex = start

	return 0, errs.NewInvalidDataError("var_uint32: malformed (no terminator within 5 bytes)")
}

// decodeVarUint32Fast decodes from a slice known to hold at least 5 bytes,
// using a single unrolled mask/shift pass.
func decodeVarUint32Fast(src []byte) (uint32, int, bool) {
	var result uint32

	for i := 0; i < maxVarUint32Bytes; i++ {
		by := src[i]
		result |= uint32(by&0x7F) << (7 * uint(i))

		if by&0x80 == 0 {
			return result, i + 1, true
		}
	}

	return 0, 0, false
}

// WriteVarUint64 writes v as an unsigned varint (1-9 bytes) and returns
// the number of bytes written.
func (b *Buffer) WriteVarUint64(v uint64) int {
	b.reserve(maxVarUint64Bytes)
	n := putVarUint64(b.data[b.writerIndex:b.writerIndex+maxVarUint64Bytes], v)
	b.advanceWriter(n)

	return n
}

// PutVarUint64 writes v as an unsigned varint at the given absolute offset,
// returning the number of bytes written.
func (b *Buffer) PutVarUint64(offset int, v uint64) int {
	dst := b.Slice(offset, maxVarUint64Bytes)
	return putVarUint64(dst, v)
}

func putVarUint64(dst []byte, v uint64) int {
	i := 0
	for i < 8 && v >= 0x80 {
		dst[i] = byte(v) | 0x80
		v >>= 7
		i++
	}

	if i == 8 {
		// 9th byte carries all 8 remaining bits, no continuation marker.
		dst[8] = byte(v)
		return 9
	}

	dst[i] = byte(v)

	return i + 1
}

// VarUint64Len returns the number of bytes WriteVarUint64(v) would emit,
// matching the ceiling table in §8.
func VarUint64Len(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	default:
		return 9
	}
}

// ReadVarUint64 decodes an unsigned varint, consuming 1-9 bytes.
func (b *Buffer) ReadVarUint64() (uint64, error) {
	start := b.readerIndex

	if b.Remaining() >= maxVarUint64Bytes {
		v, n, ok := decodeVarUint64Fast(b.data[b.readerIndex:])
		if ok {
			b.readerIndex += n
			return v, nil
		}

		b.readerIndex = start

		return 0, errs.NewInvalidDataError("var_uint64: malformed (no terminator within 9 bytes)")
	}

	var (
		result uint64
		shift  uint
	)

	for i := 0; i < 8; i++ {
		by, err := b.ReadFixedU8()
		if err != nil {
			b.readerIndex = start
			return 0, err
		}

		result |= uint64(by&0x7F) << shift
		if by&0x80 == 0 {
			return result, nil
		}

		shift += 7
	}

	by, err := b.ReadFixedU8()
	if err != nil {
		b.readerIndex = start
		return 0, err
	}

	result |= uint64(by) << 56

	return result, nil
}

func decodeVarUint64Fast(src []byte) (uint64, int, bool) {
	var result uint64

	for i := 0; i < 8; i++ {
		by := src[i]
		result |= uint64(by&0x7F) << (7 * uint(i))

		if by&0x80 == 0 {
			return result, i + 1, true
		}
	}

	result |= uint64(src[8]) << 56

	return result, 9, true
}

// WriteVarInt32 zig-zag encodes v, then writes it as an unsigned varint.
func (b *Buffer) WriteVarInt32(v int32) int {
	return b.WriteVarUint32(zigzag32(v))
}

// ReadVarInt32 reads an unsigned varint and reverses the zig-zag encoding.
func (b *Buffer) ReadVarInt32() (int32, error) {
	u, err := b.ReadVarUint32()
	if err != nil {
		return 0, err
	}

	return unzigzag32(u), nil
}

// WriteVarInt64 zig-zag encodes v, then writes it as an unsigned varint.
func (b *Buffer) WriteVarInt64(v int64) int {
	return b.WriteVarUint64(zigzag64(v))
}

// ReadVarInt64 reads an unsigned varint and reverses the zig-zag encoding.
func (b *Buffer) ReadVarInt64() (int64, error) {
	u, err := b.ReadVarUint64()
	if err != nil {
		return 0, err
	}

	return unzigzag64(u), nil
}

func zigzag32(v int32) uint32 { return uint32((v << 1) ^ (v >> 31)) }
func unzigzag32(u uint32) int32 { return int32(u>>1) ^ -int32(u&1) }

func zigzag64(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }
func unzigzag64(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }
