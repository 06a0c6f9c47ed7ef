// Package object implements the object protocol: the envelope header,
// per-value ref/type-info/payload framing, collection and map framing,
// and the primitive/string/binary/option payload codecs (§4.7, §4.8).
//
// Every operation here is a free function taking the buffer and whatever
// narrow piece of per-call state it needs (a reference tracker, a
// MetaString table, a TypeMeta cache) explicitly, rather than a bundled
// stateful type. xwire.Context composes these plus a registry.Resolver
// into the package's Writer/Reader, which back the public
// Serialize/Deserialize entry points.
package object

import (
	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/errs"
)

// Envelope header bits, per §6.2.
const (
	envelopeIsNull  = 0x01
	envelopeIsXLang = 0x02
)

// WriteEnvelope writes the one-byte envelope header.
func WriteEnvelope(buf *buffer.Buffer, isNull, isXLang bool) {
	var header uint8
	if isNull {
		header |= envelopeIsNull
	}

	if isXLang {
		header |= envelopeIsXLang
	}

	buf.WriteFixedU8(header)
}

// ReadEnvelope reads and decodes the one-byte envelope header.
// expectXLang is the reader's own configuration; a mismatch against the
// header's IS_XLANG bit is an InvalidData error, per §4.7.
func ReadEnvelope(buf *buffer.Buffer, expectXLang bool) (isNull bool, err error) {
	header, err := buf.ReadFixedU8()
	if err != nil {
		return false, err
	}

	if header&^(envelopeIsNull|envelopeIsXLang) != 0 {
		return false, errs.NewInvalidDataError("envelope: reserved bits must be zero")
	}

	gotXLang := header&envelopeIsXLang != 0
	if gotXLang != expectXLang {
		return false, errs.NewInvalidDataError("envelope: IS_XLANG mismatch between writer and reader")
	}

	return header&envelopeIsNull != 0, nil
}
