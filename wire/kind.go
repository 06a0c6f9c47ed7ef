// Package wire defines the small, cross-language enumeration of wire type
// kinds shared by every xwire peer. A Kind is the one-byte tag written on
// the wire to identify the general shape of a value's representation.
package wire

// Kind enumerates the wire-level value categories. The numeric values are
// part of the wire format and must never be renumbered once a peer
// implementation ships.
type Kind uint8

const (
	KindNone Kind = iota // the null sentinel; carries no payload

	KindBool

	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64

	KindFloat32
	KindFloat64

	KindVarInt32 // zig-zag varint32
	KindVarInt64 // zig-zag varint64

	KindString
	KindBinary

	KindList
	KindSet
	KindMap

	KindEnum
	KindStruct
	KindNamedStruct
	KindUnion

	KindUnknown // runtime polymorphic / opaque value
)

// IsUserType reports whether values of this kind carry registered type
// information (a user-type-id or namespace/name pair) in their type-info
// prefix, as opposed to scalar/string/binary/collection kinds which only
// ever write the one-byte kind tag.
func (k Kind) IsUserType() bool {
	switch k {
	case KindEnum, KindStruct, KindNamedStruct, KindUnion:
		return true
	default:
		return false
	}
}

// IsStaticallyDecodable reports whether a payload of this kind can be
// skipped by a reader that does not know the declared value type — true
// for scalars, strings and binary, false for anything that needs a
// registered reader to interpret its bytes.
func (k Kind) IsStaticallyDecodable() bool {
	switch k {
	case KindBool,
		KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64,
		KindVarInt32, KindVarInt64,
		KindString, KindBinary:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBool:
		return "Bool"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUint8:
		return "Uint8"
	case KindUint16:
		return "Uint16"
	case KindUint32:
		return "Uint32"
	case KindUint64:
		return "Uint64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindVarInt32:
		return "VarInt32"
	case KindVarInt64:
		return "VarInt64"
	case KindString:
		return "String"
	case KindBinary:
		return "Binary"
	case KindList:
		return "List"
	case KindSet:
		return "Set"
	case KindMap:
		return "Map"
	case KindEnum:
		return "Enum"
	case KindStruct:
		return "Struct"
	case KindNamedStruct:
		return "NamedStruct"
	case KindUnion:
		return "Union"
	case KindUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}
