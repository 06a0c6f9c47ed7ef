package object

import (
	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/errs"
	"github.com/arloliu/xwire/metastring"
	"github.com/arloliu/xwire/typemeta"
	"github.com/arloliu/xwire/wire"
)

// TypeRef identifies a user type by one of two forms: a numeric user id,
// or a (namespace, type_name) MetaString pair. Exactly one form is valid
// at a time, selected by ByID.
type TypeRef struct {
	ByID      bool
	UserID    uint32
	Namespace metastring.MetaString
	TypeName  metastring.MetaString
}

// WriteTypeInfo writes the type-info prefix for one value, per §4.7 step
// 2. For user-type kinds (struct/enum/named-struct/union) it writes the
// kind tag, then a form byte (1 = by id, 0 = by name), then either a
// numeric user id or two meta-string table references. For every other
// kind it writes only the kind tag.
func WriteTypeInfo(buf *buffer.Buffer, msTable *MetaStringWriteTable, kind wire.Kind, ref TypeRef) error {
	buf.WriteFixedU8(byte(kind))

	if !kind.IsUserType() {
		return nil
	}

	if ref.ByID {
		buf.WriteFixedU8(1)
		buf.WriteVarUint32(ref.UserID)

		return nil
	}

	buf.WriteFixedU8(0)

	if err := msTable.Write(buf, ref.Namespace); err != nil {
		return err
	}

	return msTable.Write(buf, ref.TypeName)
}

// ReadTypeInfo reads the type-info prefix, returning the wire kind and,
// for user types, the identifying TypeRef.
func ReadTypeInfo(buf *buffer.Buffer, msTable *MetaStringReadTable) (wire.Kind, TypeRef, error) {
	kindByte, err := buf.ReadFixedU8()
	if err != nil {
		return 0, TypeRef{}, err
	}

	kind := wire.Kind(kindByte)
	if kind > wire.KindUnknown {
		return 0, TypeRef{}, errs.NewInvalidDataError("type info: unknown wire kind tag")
	}

	if !kind.IsUserType() {
		return kind, TypeRef{}, nil
	}

	form, err := buf.ReadFixedU8()
	if err != nil {
		return 0, TypeRef{}, err
	}

	if form == 1 {
		id, err := buf.ReadVarUint32()
		if err != nil {
			return 0, TypeRef{}, err
		}

		return kind, TypeRef{ByID: true, UserID: id}, nil
	}

	namespace, err := msTable.Read(buf)
	if err != nil {
		return 0, TypeRef{}, err
	}

	typeName, err := msTable.Read(buf)
	if err != nil {
		return 0, TypeRef{}, err
	}

	return kind, TypeRef{Namespace: namespace, TypeName: typeName}, nil
}

// WriteTypeMetaBlock writes a TypeMeta block for compatibility-mode
// structs, per §4.5/§6.2: a varint tag of (index<<1)|back_ref_flag,
// followed by the full descriptor on first occurrence, or nothing more
// on a cache hit.
func WriteTypeMetaBlock(buf *buffer.Buffer, cache *typemeta.WriteCache, msTable *MetaStringWriteTable, tm typemeta.TypeMeta) error {
	idx, cached := cache.Lookup(tm)

	tag := uint32(idx) << 1
	if cached {
		tag |= 1
	}

	buf.WriteVarUint32(tag)

	if cached {
		return nil
	}

	if err := msTable.Write(buf, tm.Namespace); err != nil {
		return err
	}

	if err := msTable.Write(buf, tm.TypeName); err != nil {
		return err
	}

	buf.WriteFixedU64(tm.Hash)
	buf.WriteVarUint32(uint32(len(tm.Fields)))

	for _, f := range tm.Fields {
		if err := msTable.Write(buf, f.Name); err != nil {
			return err
		}

		buf.WriteFixedU8(byte(f.WireKind))
		buf.WriteFixedU8(f.Flags)
	}

	return nil
}

// ReadTypeMetaBlock reads a TypeMeta block, resolving cache hits against
// cache.
func ReadTypeMetaBlock(buf *buffer.Buffer, cache *typemeta.ReadCache, msTable *MetaStringReadTable) (typemeta.TypeMeta, error) {
	tag, err := buf.ReadVarUint32()
	if err != nil {
		return typemeta.TypeMeta{}, err
	}

	idx := int(tag >> 1)
	backRef := tag&1 != 0

	if backRef {
		tm, ok := cache.Get(idx)
		if !ok {
			return typemeta.TypeMeta{}, errs.NewInvalidDataError("type meta: back-reference to unknown index")
		}

		return tm, nil
	}

	namespace, err := msTable.Read(buf)
	if err != nil {
		return typemeta.TypeMeta{}, err
	}

	typeName, err := msTable.Read(buf)
	if err != nil {
		return typemeta.TypeMeta{}, err
	}

	hash, err := buf.ReadFixedU64()
	if err != nil {
		return typemeta.TypeMeta{}, err
	}

	fieldCount, err := buf.ReadVarUint32()
	if err != nil {
		return typemeta.TypeMeta{}, err
	}

	fields := make([]typemeta.FieldDescriptor, 0, fieldCount)

	for i := uint32(0); i < fieldCount; i++ {
		name, err := msTable.Read(buf)
		if err != nil {
			return typemeta.TypeMeta{}, err
		}

		kindByte, err := buf.ReadFixedU8()
		if err != nil {
			return typemeta.TypeMeta{}, err
		}

		flags, err := buf.ReadFixedU8()
		if err != nil {
			return typemeta.TypeMeta{}, err
		}

		fields = append(fields, typemeta.FieldDescriptor{Name: name, WireKind: wire.Kind(kindByte), Flags: flags})
	}

	tm := typemeta.TypeMeta{Namespace: namespace, TypeName: typeName, Hash: hash, Fields: fields}
	cache.Add(tm)

	return tm, nil
}
