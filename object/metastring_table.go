package object

import (
	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/errs"
	"github.com/arloliu/xwire/metastring"
)

// metaStringShortLen is the cutoff below which a new MetaString table
// entry's header packs its encoding tag and byte length into one byte;
// at or above it the header falls back to a sentinel plus a varint
// length. Only the varint back-reference tag is wire-fixed; this header
// layout is this implementation's own choice.
const (
	metaStringShortLen   = 32
	metaStringLenSentinel = 0xFF
)

// MetaStringWriteTable is the envelope-scoped cache of MetaString values
// already written, so repeat occurrences of the same identifier emit a
// back-reference instead of the full payload, per §6.2.
type MetaStringWriteTable struct {
	index map[string]int // keyed by Data as a string, distinguished further by Encoding below
	next  int
}

// NewMetaStringWriteTable creates an empty MetaStringWriteTable.
func NewMetaStringWriteTable() *MetaStringWriteTable {
	return &MetaStringWriteTable{index: make(map[string]int)}
}

func (t *MetaStringWriteTable) key(ms metastring.MetaString) string {
	return string(ms.Encoding) + string(ms.Data)
}

// Write emits ms's table entry: a varint tag of (index<<1)|back_ref_flag,
// followed on a cache miss by the entry header and raw encoded bytes.
func (t *MetaStringWriteTable) Write(buf *buffer.Buffer, ms metastring.MetaString) error {
	k := t.key(ms)

	if idx, ok := t.index[k]; ok {
		buf.WriteVarUint32(uint32(idx)<<1 | 1)
		return nil
	}

	idx := t.next
	t.next++
	t.index[k] = idx

	buf.WriteVarUint32(uint32(idx) << 1)

	n := len(ms.Data)
	if n < metaStringShortLen {
		buf.WriteFixedU8(byte(ms.Encoding) | byte(n<<3))
	} else {
		buf.WriteFixedU8(metaStringLenSentinel)
		buf.WriteVarUint32(uint32(n))
		buf.WriteFixedU8(byte(ms.Encoding))
	}

	if ms.Encoding == metastring.EncodingLowerUpperDigitSpecial || ms.Encoding == metastring.EncodingFirstToLowerSpecial {
		buf.WriteFixedU8(ms.Special1)
		buf.WriteFixedU8(ms.Special2)
	}

	buf.WriteBytes(ms.Data)

	return nil
}

// Reset clears the table for reuse across envelopes.
func (t *MetaStringWriteTable) Reset() {
	for k := range t.index {
		delete(t.index, k)
	}

	t.next = 0
}

// MetaStringReadTable mirrors MetaStringWriteTable on the read side.
type MetaStringReadTable struct {
	table []metastring.MetaString
}

// NewMetaStringReadTable creates an empty MetaStringReadTable.
func NewMetaStringReadTable() *MetaStringReadTable {
	return &MetaStringReadTable{}
}

// Read decodes one MetaString table entry, resolving back-references
// against previously read entries.
func (t *MetaStringReadTable) Read(buf *buffer.Buffer) (metastring.MetaString, error) {
	tag, err := buf.ReadVarUint32()
	if err != nil {
		return metastring.MetaString{}, err
	}

	idx := int(tag >> 1)
	backRef := tag&1 != 0

	if backRef {
		if idx < 0 || idx >= len(t.table) {
			return metastring.MetaString{}, errs.NewInvalidDataError("meta-string table: back-reference to unknown index")
		}

		return t.table[idx], nil
	}

	header, err := buf.ReadFixedU8()
	if err != nil {
		return metastring.MetaString{}, err
	}

	var (
		encoding metastring.Encoding
		length   int
	)

	if header == metaStringLenSentinel {
		n, err := buf.ReadVarUint32()
		if err != nil {
			return metastring.MetaString{}, err
		}

		encByte, err := buf.ReadFixedU8()
		if err != nil {
			return metastring.MetaString{}, err
		}

		encoding = metastring.Encoding(encByte)
		length = int(n)
	} else {
		encoding = metastring.Encoding(header & 0x07)
		length = int(header >> 3)
	}

	ms := metastring.MetaString{Encoding: encoding}

	if encoding == metastring.EncodingLowerUpperDigitSpecial || encoding == metastring.EncodingFirstToLowerSpecial {
		s1, err := buf.ReadFixedU8()
		if err != nil {
			return metastring.MetaString{}, err
		}

		s2, err := buf.ReadFixedU8()
		if err != nil {
			return metastring.MetaString{}, err
		}

		ms.Special1, ms.Special2 = s1, s2
	}

	data, err := buf.ReadBytes(length)
	if err != nil {
		return metastring.MetaString{}, err
	}

	ms.Data = data
	t.table = append(t.table, ms)

	return ms, nil
}

// Reset clears the table for reuse across envelopes.
func (t *MetaStringReadTable) Reset() {
	t.table = t.table[:0]
}
