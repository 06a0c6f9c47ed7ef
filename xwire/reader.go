package xwire

import (
	"github.com/arloliu/xwire/errs"
	"github.com/arloliu/xwire/object"
	"github.com/arloliu/xwire/refs"
	"github.com/arloliu/xwire/typemeta"
	"github.com/arloliu/xwire/wire"
)

// Unmarshaler is implemented by a value that knows how to read its own
// payload once ReadValue has already resolved the ref prefix and type
// info for it.
type Unmarshaler interface {
	UnmarshalXWire(r *Reader, kind wire.Kind, ref object.TypeRef) error
}

// Reader drives the read side of one top-level call, mirroring Writer.
type Reader struct {
	ctx *Context
}

// NewReader wraps ctx for use as a read-side driver.
func NewReader(ctx *Context) *Reader { return &Reader{ctx: ctx} }

// Context returns the underlying Context.
func (r *Reader) Context() *Context { return r.ctx }

// ReadEnvelope reads the top-level envelope header, validating the
// IS_XLANG bit against the Context's configuration.
func (r *Reader) ReadEnvelope() (isNull bool, err error) {
	return object.ReadEnvelope(r.ctx.Buf, r.ctx.Config.xlang)
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ctx.Buf.ReadFixedU8()
	return v != 0, err
}

func (r *Reader) ReadInt8() (int8, error)     { return r.ctx.Buf.ReadFixedI8() }
func (r *Reader) ReadInt16() (int16, error)   { return r.ctx.Buf.ReadFixedI16() }
func (r *Reader) ReadInt32() (int32, error)   { return r.ctx.Buf.ReadFixedI32() }
func (r *Reader) ReadInt64() (int64, error)   { return r.ctx.Buf.ReadFixedI64() }
func (r *Reader) ReadUint8() (uint8, error)   { return r.ctx.Buf.ReadFixedU8() }
func (r *Reader) ReadUint16() (uint16, error) { return r.ctx.Buf.ReadFixedU16() }
func (r *Reader) ReadUint32() (uint32, error) { return r.ctx.Buf.ReadFixedU32() }
func (r *Reader) ReadUint64() (uint64, error) { return r.ctx.Buf.ReadFixedU64() }
func (r *Reader) ReadFloat32() (float32, error) { return r.ctx.Buf.ReadFixedF32() }
func (r *Reader) ReadFloat64() (float64, error) { return r.ctx.Buf.ReadFixedF64() }
func (r *Reader) ReadVarInt32() (int32, error)  { return r.ctx.Buf.ReadVarInt32() }
func (r *Reader) ReadVarInt64() (int64, error)  { return r.ctx.Buf.ReadVarInt64() }

// ReadString reads a string payload written by Writer.WriteString.
func (r *Reader) ReadString() (string, error) { return object.ReadString(r.ctx.Buf) }

// ReadBinary reads a length-prefixed binary blob.
func (r *Reader) ReadBinary() ([]byte, error) { return object.ReadBinary(r.ctx.Buf) }

// ReadValue drives one value's ref-flag/type-info state machine and
// invokes payload once a payload is actually present. It returns the
// value: either the freshly decoded payload result, a resolved
// back-reference, or nil for a NULL value — the caller distinguishes
// these with the returned flags.
//
// expectedMeta mirrors Writer.WriteValue's structMeta: pass the
// locally-known TypeMeta for a struct-kind value (nil for non-struct
// values, or when neither Compatible nor CheckStructVersion is set). In
// Compatible mode the TypeMeta actually found on the wire is decoded and
// passed to payload, which may differ in field layout from expectedMeta —
// that's the whole point of carrying it. In CheckStructVersion mode the
// 4-byte hash truncation on the wire is compared against
// expectedMeta.Hash and a TypeMismatch error is returned on divergence.
func (r *Reader) ReadValue(mode refs.Mode, wantType bool, expectedMeta *typemeta.TypeMeta, payload func(r *Reader, kind wire.Kind, ref object.TypeRef, meta *typemeta.TypeMeta) (any, error)) (value any, isNull, isBackRef bool, err error) {
	vr := object.NewValueReader(r.ctx.Buf, r.ctx.ReadRefs(), r.ctx.MetaStringReadTable(), r.ctx.TypeMetaReadCache(), mode, wantType)

	needPayload, kind, ref, err := vr.Advance()
	if err != nil {
		return nil, false, false, err
	}

	if vr.IsDefault() {
		return nil, true, false, nil
	}

	if resolved, ok := vr.Resolved(); ok {
		return resolved, false, true, nil
	}

	if !needPayload {
		return nil, false, false, nil
	}

	var meta *typemeta.TypeMeta

	if expectedMeta != nil {
		switch {
		case r.ctx.Config.compatible:
			tm, err := r.ReadTypeMeta()
			if err != nil {
				return nil, false, false, err
			}

			meta = &tm

		case r.ctx.Config.checkStructVersion:
			hash, err := r.ctx.Buf.ReadFixedU32()
			if err != nil {
				return nil, false, false, err
			}

			if hash != uint32(expectedMeta.Hash) {
				return nil, false, false, errs.NewTypeMismatchError(uint32(expectedMeta.Hash), hash)
			}
		}
	}

	v, err := payload(r, kind, ref, meta)
	if err != nil {
		return nil, false, false, err
	}

	vr.Finish(v)

	return v, false, false, nil
}

// ReadTypeMeta reads a compatibility-mode TypeMeta block, resolving
// cache hits against the Context's envelope-scoped read cache.
func (r *Reader) ReadTypeMeta() (typemeta.TypeMeta, error) {
	return object.ReadTypeMetaBlock(r.ctx.Buf, r.ctx.TypeMetaReadCache(), r.ctx.MetaStringReadTable())
}

// ReadList reads a homogeneous list/set header and drains length
// elements through elem, mirroring Writer.WriteList.
func (r *Reader) ReadList(elem func(i int) error) (int, error) {
	hdr, err := object.ReadCollectionHeader(r.ctx.Buf)
	if err != nil {
		return 0, err
	}

	for i := 0; i < hdr.Length; i++ {
		if err := elem(i); err != nil {
			return 0, err
		}
	}

	return hdr.Length, nil
}
