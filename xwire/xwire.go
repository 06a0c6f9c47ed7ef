// Package xwire implements a cross-language binary serialization core:
// a varint/fixed-width buffer codec, a compact MetaString identifier
// encoding, a type registry and resolver, schema-evolution TypeMeta
// descriptors, reference/cycle tracking, and the envelope and per-value
// framing that ties them together.
//
// # Core Features
//
//   - LEB128-style varints, zig-zag signed varints, and a four-byte/
//     nine-byte tagged integer encoding for small-valued fields
//   - MetaString: a bit-packed identifier codec with five sub-encodings
//     chosen automatically from the input's character set
//   - A type registry mapping Go types to wire kinds, addressable either
//     by a numeric user id or a (namespace, name) pair
//   - TypeMeta schema descriptors with FNV-64 content hashing, letting a
//     reader decode a payload written by a different field layout
//   - A reference tracker supporting shared identity and object cycles
//   - A one-byte envelope and per-value framing (ref byte, type info,
//     payload) shared by every value in a call
//
// # Basic Usage
//
// Serializing and deserializing a single string value:
//
//	buf := buffer.New()
//	cfg, _ := xwire.NewConfig(xwire.WithTrackRef())
//	ctx := xwire.NewContext(buf, cfg)
//
//	w := xwire.NewWriter(ctx)
//	w.WriteEnvelope(false)
//	if err := w.WriteString("hello"); err != nil {
//	    // handle err
//	}
//
//	buf.SetReaderIndex(0)
//	ctx.Reset()
//	r := xwire.NewReader(ctx)
//	isNull, _ := r.ReadEnvelope()
//	s, _ := r.ReadString()
//
// # Package Structure
//
// This package provides the top-level Context/Writer/Reader driving
// API. The individual wire components — buffer, metastring, registry,
// typemeta, refs, object — are usable directly for callers that need
// finer control than the Writer/Reader pair offers, the same way mebo
// exposes its blob package underneath the top-level facade.
package xwire

import (
	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/registry"
)

// Serialize writes a single top-level value through marshal and returns
// the resulting bytes. marshal receives a ready-to-use Writer with the
// envelope already written; it is responsible for writing exactly one
// top-level value's ref prefix (if wanted) and payload.
//
// isNull writes the envelope's IS_NULL bit and skips marshal entirely —
// per §8 Scenario 6, the result is exactly the one envelope byte. Use
// SerializeNull for the common case of a top-level null with no value
// type to speak of.
//
// Parameters:
//   - isNull: true to produce a null top-level value; marshal is not
//     called in that case and may be nil.
//   - marshal: called once with a fresh Writer to produce the payload.
//   - opts: Config options (see WithXLang, WithTrackRef, WithCompatible,
//     WithCheckStructVersion).
//
// Returns the encoded bytes, or an error if configuration or encoding
// failed.
func Serialize(isNull bool, marshal func(w *Writer) error, opts ...Option) ([]byte, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	buf := buffer.New()
	ctx := NewContext(buf, cfg)
	w := NewWriter(ctx)

	w.WriteEnvelope(isNull)

	if isNull {
		return buf.Bytes(), nil
	}

	if err := marshal(w); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// SerializeNull produces the one-byte envelope for a top-level null
// value, per §8 Scenario 6.
func SerializeNull(opts ...Option) ([]byte, error) {
	return Serialize(true, nil, opts...)
}

// Deserialize reads a single top-level value previously written by
// Serialize. unmarshal receives a Reader positioned right after the
// envelope. When the envelope declares the whole value absent (IS_NULL),
// unmarshal is not called and Deserialize returns nil; the caller's
// target is left as it was.
//
// Parameters:
//   - data: bytes produced by Serialize (or any conforming writer).
//   - unmarshal: called once with a Reader to consume the payload.
//   - resolver: optional registry.Resolver for decoding user types by
//     id or name; pass nil when the payload contains no user types.
//   - opts: Config options; must match the writer's for xlang.
func Deserialize(data []byte, unmarshal func(r *Reader) error, resolver *registry.Resolver, opts ...Option) error {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return err
	}

	buf := buffer.Wrap(data)
	ctx := NewContext(buf, cfg).WithResolver(resolver)
	r := NewReader(ctx)

	isNull, err := r.ReadEnvelope()
	if err != nil {
		return err
	}

	if isNull {
		return nil
	}

	return unmarshal(r)
}
