package xwire

import (
	"github.com/arloliu/xwire/object"
	"github.com/arloliu/xwire/refs"
	"github.com/arloliu/xwire/typemeta"
	"github.com/arloliu/xwire/wire"
)

// Marshaler is implemented by a value that knows how to write its own
// payload once the caller (WriteValue) has already handled the ref
// prefix and type info for it.
type Marshaler interface {
	MarshalXWire(w *Writer) error
}

// Writer drives the write side of one top-level call: an envelope
// followed by one top-level value. Lower-level field/element values are
// framed through WriteValue, which any Marshaler implementation should
// call recursively for nested values.
type Writer struct {
	ctx *Context
}

// NewWriter wraps ctx for use as a write-side driver.
func NewWriter(ctx *Context) *Writer { return &Writer{ctx: ctx} }

// Context returns the underlying Context.
func (w *Writer) Context() *Context { return w.ctx }

// WriteEnvelope writes the top-level envelope header. isNull
// short-circuits: when true, no value follows.
func (w *Writer) WriteEnvelope(isNull bool) {
	object.WriteEnvelope(w.ctx.Buf, isNull, w.ctx.Config.xlang)
}

// Scalar payload writers. These write raw payload bytes only; callers
// that need ref/type-info framing around a scalar should go through
// WriteValue.

func (w *Writer) WriteBool(v bool) {
	if v {
		w.ctx.Buf.WriteFixedU8(1)
	} else {
		w.ctx.Buf.WriteFixedU8(0)
	}
}

func (w *Writer) WriteInt8(v int8)     { w.ctx.Buf.WriteFixedI8(v) }
func (w *Writer) WriteInt16(v int16)   { w.ctx.Buf.WriteFixedI16(v) }
func (w *Writer) WriteInt32(v int32)   { w.ctx.Buf.WriteFixedI32(v) }
func (w *Writer) WriteInt64(v int64)   { w.ctx.Buf.WriteFixedI64(v) }
func (w *Writer) WriteUint8(v uint8)   { w.ctx.Buf.WriteFixedU8(v) }
func (w *Writer) WriteUint16(v uint16) { w.ctx.Buf.WriteFixedU16(v) }
func (w *Writer) WriteUint32(v uint32) { w.ctx.Buf.WriteFixedU32(v) }
func (w *Writer) WriteUint64(v uint64) { w.ctx.Buf.WriteFixedU64(v) }
func (w *Writer) WriteFloat32(v float32) { w.ctx.Buf.WriteFixedF32(v) }
func (w *Writer) WriteFloat64(v float64) { w.ctx.Buf.WriteFixedF64(v) }
func (w *Writer) WriteVarInt32(v int32)  { w.ctx.Buf.WriteVarInt32(v) }
func (w *Writer) WriteVarInt64(v int64)  { w.ctx.Buf.WriteVarInt64(v) }

// WriteString writes a string payload, selecting Latin-1, UTF-16LE, or
// UTF-8 per the encoding rule.
func (w *Writer) WriteString(s string) error { return object.WriteString(w.ctx.Buf, s) }

// WriteBinary writes a length-prefixed binary blob.
func (w *Writer) WriteBinary(data []byte) { object.WriteBinary(w.ctx.Buf, data) }

// WriteValue frames one value: the ref-byte (per mode), optional type
// info, the struct-evolution prefix (see below), then the payload
// callback. identity is consulted only under refs.ModeTracking and
// should be a stable, comparable handle (a pointer) for the value being
// written. payload is skipped entirely when the ref prefix alone
// determines the outcome (NULL or a back-reference).
//
// structMeta identifies a struct-kind value's field layout and is
// consulted per §4.7 step 2's compatibility prefix: when the Context's
// Config has Compatible set, the full TypeMeta block is written (cached
// per envelope) ahead of the payload; otherwise, when CheckStructVersion
// is set, a 4-byte truncation of structMeta.Hash is written instead.
// Pass nil for non-struct kinds, or when neither option is enabled.
func (w *Writer) WriteValue(kind wire.Kind, mode refs.Mode, identity any, isNull, wantType bool, ref object.TypeRef, structMeta *typemeta.TypeMeta, payload func(*Writer) error) error {
	writePayload, err := object.WriteValuePrefix(w.ctx.Buf, w.ctx.WriteRefs(), mode, identity, isNull)
	if err != nil {
		return err
	}

	if !writePayload {
		return nil
	}

	if wantType {
		if err := object.WriteTypeInfo(w.ctx.Buf, w.ctx.MetaStringWriteTable(), kind, ref); err != nil {
			return err
		}
	}

	if structMeta != nil {
		switch {
		case w.ctx.Config.compatible:
			if err := w.WriteTypeMeta(*structMeta); err != nil {
				return err
			}

		case w.ctx.Config.checkStructVersion:
			w.ctx.Buf.WriteFixedU32(uint32(structMeta.Hash))
		}
	}

	return payload(w)
}

// WriteTypeMeta writes a compatibility-mode TypeMeta block ahead of a
// struct's payload, honoring the envelope-scoped cache.
func (w *Writer) WriteTypeMeta(tm typemeta.TypeMeta) error {
	return object.WriteTypeMetaBlock(w.ctx.Buf, w.ctx.TypeMetaWriteCache(), w.ctx.MetaStringWriteTable(), tm)
}

// WriteList writes a homogeneous list/set: all elements share elemKind
// and are written with the element writer in turn. elements carrying
// nulls should use WriteValue per element instead; this helper covers
// the common non-nullable, same-type case directly.
func (w *Writer) WriteList(elemKind wire.Kind, length int, elem func(i int) error) error {
	object.WriteCollectionHeader(w.ctx.Buf, object.CollectionHeader{
		Length:                length,
		IsDeclaredElementType: true,
		IsSameType:            true,
	})

	for i := 0; i < length; i++ {
		if err := elem(i); err != nil {
			return err
		}
	}

	return nil
}
