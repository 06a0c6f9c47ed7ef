package object

import "github.com/arloliu/xwire/wire"

// Default returns the declared default value for kind, per §4.8:
// numerics zero, bool false, string/binary empty, list/set/map an empty
// container, enum the zero ordinal, struct/named-struct/union the zero
// value (the caller's registered type supplies its own declared
// default, since the core has no knowledge of struct layout).
func Default(kind wire.Kind) any {
	switch kind {
	case wire.KindBool:
		return false
	case wire.KindInt8:
		return int8(0)
	case wire.KindInt16:
		return int16(0)
	case wire.KindInt32, wire.KindVarInt32:
		return int32(0)
	case wire.KindInt64, wire.KindVarInt64:
		return int64(0)
	case wire.KindUint8:
		return uint8(0)
	case wire.KindUint16:
		return uint16(0)
	case wire.KindUint32:
		return uint32(0)
	case wire.KindUint64:
		return uint64(0)
	case wire.KindFloat32:
		return float32(0)
	case wire.KindFloat64:
		return float64(0)
	case wire.KindString:
		return ""
	case wire.KindBinary:
		return []byte{}
	case wire.KindList, wire.KindSet:
		return []any{}
	case wire.KindMap:
		return map[any]any{}
	case wire.KindEnum:
		return 0
	default:
		return nil
	}
}
