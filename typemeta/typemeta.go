// Package typemeta implements the structural schema descriptor that lets
// compatibility-mode readers drive field-by-field decoding across schema
// changes (§4.5). A TypeMeta names a composite type and lists its fields
// in declared order; its Hash lets a reader cheaply decide whether a
// writer's schema matches its own without comparing every field.
package typemeta

import (
	"hash/fnv"

	"github.com/arloliu/xwire/metastring"
	"github.com/arloliu/xwire/wire"
)

// Field flag bits, per §4.5.
const (
	FlagNullable        = 1 << 0
	FlagTrackRef        = 1 << 1
	FlagHasGenericParams = 1 << 2
)

// FieldDescriptor describes one field of a composite type: its
// meta-string-encoded name, its wire kind, and its flag bits.
type FieldDescriptor struct {
	Name     metastring.MetaString
	WireKind wire.Kind
	Flags    uint8
}

// Nullable reports whether FlagNullable is set.
func (f FieldDescriptor) Nullable() bool { return f.Flags&FlagNullable != 0 }

// TrackRef reports whether FlagTrackRef is set.
func (f FieldDescriptor) TrackRef() bool { return f.Flags&FlagTrackRef != 0 }

// HasGenericParams reports whether FlagHasGenericParams is set.
func (f FieldDescriptor) HasGenericParams() bool { return f.Flags&FlagHasGenericParams != 0 }

// TypeMeta is the structural schema descriptor for one composite type.
type TypeMeta struct {
	Namespace metastring.MetaString
	TypeName  metastring.MetaString
	Hash      uint64
	Fields    []FieldDescriptor
}

// New builds a TypeMeta from its namespace, type name, and fields,
// computing Hash from the field list.
func New(namespace, typeName metastring.MetaString, fields []FieldDescriptor) TypeMeta {
	return TypeMeta{
		Namespace: namespace,
		TypeName:  typeName,
		Hash:      ComputeHash(fields),
		Fields:    fields,
	}
}

// ComputeHash computes the FNV-64 content hash of a field list, per
// §4.5: starting from the FNV offset basis, it mixes in each field's
// encoded MetaString name bytes, wire kind byte, and flags byte, in
// declared order. It operates on the *encoded* MetaString bytes rather
// than the decoded name; since Encode picks the sub-encoding
// deterministically from the name and special characters, the same
// field set hashes identically on every peer.
func ComputeHash(fields []FieldDescriptor) uint64 {
	h := fnv.New64()

	for _, f := range fields {
		_, _ = h.Write(f.Name.Data)
		_, _ = h.Write([]byte{byte(f.WireKind), f.Flags})
	}

	return h.Sum64()
}

// Matches reports whether other describes the same field set as t, by
// comparing content hashes.
func (t TypeMeta) Matches(other TypeMeta) bool {
	return t.Hash == other.Hash
}

// FieldByName looks up a field descriptor by its decoded name. It
// decodes each field name on demand; callers doing many lookups against
// the same TypeMeta should build their own index.
func (t TypeMeta) FieldByName(name string) (FieldDescriptor, bool) {
	for _, f := range t.Fields {
		decoded, err := metastring.Decode(f.Name)
		if err != nil {
			continue
		}

		if decoded == name {
			return f, true
		}
	}

	return FieldDescriptor{}, false
}
