package xwire

import "github.com/arloliu/xwire/object"

// MapEntryShape describes one map entry's null/type-declaration shape —
// the per-entry facts WriteMap groups consecutive entries on to build
// chunks, per §4.7/§6.2's chunked map framing.
type MapEntryShape struct {
	KeyNull, ValueNull                 bool
	KeyDeclaredType, ValueDeclaredType bool
	KeySameType, ValueSameType         bool
}

func (s MapEntryShape) flags() uint8 {
	var f uint8

	if s.KeyNull {
		f |= object.MapChunkKeyNull
	}

	if s.ValueNull {
		f |= object.MapChunkValueNull
	}

	if s.KeyDeclaredType {
		f |= object.MapChunkDeclaredKeyType
	}

	if s.ValueDeclaredType {
		f |= object.MapChunkDeclaredValueType
	}

	if s.KeySameType {
		f |= object.MapChunkKeySameType
	}

	if s.ValueSameType {
		f |= object.MapChunkValueSameType
	}

	return f
}

// WriteMap writes a map's size followed by its chunked entry framing.
// Consecutive entries sharing the same MapEntryShape are grouped into one
// chunk of up to object.MaxMapChunkSize entries; a shape change — or
// hitting the cap — starts a new chunk with its own header. writeEntry
// writes entry i's key and value payloads; it is called once per entry,
// in order, after that entry's chunk header has already been written.
func (w *Writer) WriteMap(shapes []MapEntryShape, writeEntry func(i int) error) error {
	object.WriteMapSize(w.ctx.Buf, len(shapes))

	for i := 0; i < len(shapes); {
		flags := shapes[i].flags()

		j := i + 1
		for j < len(shapes) && j-i < object.MaxMapChunkSize && shapes[j].flags() == flags {
			j++
		}

		if err := object.WriteMapChunkHeader(w.ctx.Buf, j-i, flags); err != nil {
			return err
		}

		for k := i; k < j; k++ {
			if err := writeEntry(k); err != nil {
				return err
			}
		}

		i = j
	}

	return nil
}

// ReadMap reads a map's size and chunked entry framing, invoking
// readEntry once per entry in order with that entry's index and the
// shared chunk flags byte (decode it against the MapChunk* bit
// constants in package object to recover null/type-declaration shape).
// It returns the total entry count read.
func (r *Reader) ReadMap(readEntry func(i int, flags uint8) error) (int, error) {
	size, err := object.ReadMapSize(r.ctx.Buf)
	if err != nil {
		return 0, err
	}

	read := 0
	for read < size {
		chunkSize, flags, err := object.ReadMapChunkHeader(r.ctx.Buf)
		if err != nil {
			return 0, err
		}

		for k := 0; k < chunkSize; k++ {
			if err := readEntry(read, flags); err != nil {
				return 0, err
			}

			read++
		}
	}

	return read, nil
}
