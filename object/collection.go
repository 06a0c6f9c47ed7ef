package object

import (
	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/errs"
)

// Collection header flag bits, per §4.7.
const (
	CollectionTrackingRef          = 1 << 0
	CollectionHasNull              = 1 << 1
	CollectionIsDeclaredElementType = 1 << 2
	CollectionIsSameType           = 1 << 3
)

// CollectionHeader describes one list/set's framing, per §4.7.
type CollectionHeader struct {
	Length                int
	TrackingRef           bool
	HasNull               bool
	IsDeclaredElementType bool
	IsSameType            bool
}

// WriteCollectionHeader writes a list/set's length and, if non-empty,
// its header byte.
func WriteCollectionHeader(buf *buffer.Buffer, h CollectionHeader) {
	buf.WriteVarUint32(uint32(h.Length))

	if h.Length == 0 {
		return
	}

	var flags uint8
	if h.TrackingRef {
		flags |= CollectionTrackingRef
	}

	if h.HasNull {
		flags |= CollectionHasNull
	}

	if h.IsDeclaredElementType {
		flags |= CollectionIsDeclaredElementType
	}

	if h.IsSameType {
		flags |= CollectionIsSameType
	}

	buf.WriteFixedU8(flags)
}

// ReadCollectionHeader reads a list/set's length and, if non-empty, its
// header byte.
func ReadCollectionHeader(buf *buffer.Buffer) (CollectionHeader, error) {
	length, err := buf.ReadVarUint32()
	if err != nil {
		return CollectionHeader{}, err
	}

	h := CollectionHeader{Length: int(length)}
	if h.Length == 0 {
		return h, nil
	}

	flags, err := buf.ReadFixedU8()
	if err != nil {
		return CollectionHeader{}, err
	}

	h.TrackingRef = flags&CollectionTrackingRef != 0
	h.HasNull = flags&CollectionHasNull != 0
	h.IsDeclaredElementType = flags&CollectionIsDeclaredElementType != 0
	h.IsSameType = flags&CollectionIsSameType != 0

	return h, nil
}

// MapChunkHeader flag bits, per §4.7.
const (
	MapChunkKeyNull          = 1 << 0
	MapChunkValueNull        = 1 << 1
	MapChunkDeclaredKeyType  = 1 << 2
	MapChunkDeclaredValueType = 1 << 3
	MapChunkKeySameType      = 1 << 4
	MapChunkValueSameType    = 1 << 5
)

// MaxMapChunkSize is the largest number of entries a single chunk may
// group, per §4.7.
const MaxMapChunkSize = 255

// WriteMapSize writes a map's entry count.
func WriteMapSize(buf *buffer.Buffer, size int) { buf.WriteVarUint32(uint32(size)) }

// ReadMapSize reads a map's entry count.
func ReadMapSize(buf *buffer.Buffer) (int, error) {
	n, err := buf.ReadVarUint32()
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// WriteMapChunkHeader writes one chunk's size and shared flag byte. A
// chunk groups up to MaxMapChunkSize consecutive entries whose key/value
// type shape matches, per §4.7.
func WriteMapChunkHeader(buf *buffer.Buffer, chunkSize int, flags uint8) error {
	if chunkSize <= 0 || chunkSize > MaxMapChunkSize {
		return errs.NewInvalidDataError("map chunk size out of range [1, 255]")
	}

	buf.WriteFixedU8(uint8(chunkSize))
	buf.WriteFixedU8(flags)

	return nil
}

// ReadMapChunkHeader reads one chunk's size and shared flag byte.
func ReadMapChunkHeader(buf *buffer.Buffer) (chunkSize int, flags uint8, err error) {
	sizeByte, err := buf.ReadFixedU8()
	if err != nil {
		return 0, 0, err
	}

	flags, err = buf.ReadFixedU8()
	if err != nil {
		return 0, 0, err
	}

	return int(sizeByte), flags, nil
}
