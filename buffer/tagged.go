package buffer

// Tagged i64/u64 encoding: an LSB-discriminated integer that is 4 bytes
// when the value fits in signed 31 bits, or 9 bytes (a 0x01 flag byte plus
// the full 8-byte little-endian value) otherwise, per §4.1/§6.2.

const (
	taggedI64Min = -(1 << 30)
	taggedI64Max = 1<<30 - 1
	taggedU64Max = 1<<31 - 1

	taggedWideFlag = 0x01
)

// WriteTaggedU64 writes v using the tagged discriminator encoding.
func (b *Buffer) WriteTaggedU64(v uint64) {
	if v <= taggedU64Max {
		b.WriteFixedU32(uint32(v) << 1)
		return
	}

	b.WriteFixedU8(taggedWideFlag)
	b.WriteFixedU64(v)
}

// ReadTaggedU64 decodes the tagged discriminator encoding by peeking the
// low bit of the first byte.
func (b *Buffer) ReadTaggedU64() (uint64, error) {
	first, err := b.ReadFixedU8()
	if err != nil {
		return 0, err
	}

	if first&1 == 0 {
		if err := b.Unread(1); err != nil {
			return 0, err
		}

		raw, err := b.ReadFixedU32()
		if err != nil {
			return 0, err
		}

		return uint64(raw >> 1), nil
	}

	return b.ReadFixedU64()
}

// WriteTaggedI64 writes v using the tagged discriminator encoding.
func (b *Buffer) WriteTaggedI64(v int64) {
	if v >= taggedI64Min && v <= taggedI64Max {
		b.WriteFixedU32(uint32(int32(v)) << 1)
		return
	}

	b.WriteFixedU8(taggedWideFlag)
	b.WriteFixedI64(v)
}

// ReadTaggedI64 decodes the tagged discriminator encoding by peeking the
// low bit of the first byte.
func (b *Buffer) ReadTaggedI64() (int64, error) {
	first, err := b.ReadFixedU8()
	if err != nil {
		return 0, err
	}

	if first&1 == 0 {
		if err := b.Unread(1); err != nil {
			return 0, err
		}

		raw, err := b.ReadFixedU32()
		if err != nil {
			return 0, err
		}

		return int64(int32(raw) >> 1), nil
	}

	return b.ReadFixedI64()
}

// TaggedU64Len returns the number of bytes WriteTaggedU64(v) would emit.
func TaggedU64Len(v uint64) int {
	if v <= taggedU64Max {
		return 4
	}

	return 9
}

// TaggedI64Len returns the number of bytes WriteTaggedI64(v) would emit.
func TaggedI64Len(v int64) int {
	if v >= taggedI64Min && v <= taggedI64Max {
		return 4
	}

	return 9
}
