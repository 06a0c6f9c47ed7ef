package object

import (
	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/errs"
	"github.com/arloliu/xwire/refs"
	"github.com/arloliu/xwire/typemeta"
	"github.com/arloliu/xwire/wire"
)

// state names the read-side state machine's states, per §4.8.
type state int

const (
	stateAwaitingRefFlag state = iota
	stateAwaitingTypeInfo
	stateAwaitingPayload
	stateDone
)

// ValueReader drives one value's read-side state machine: ref flag,
// type info, payload, and (for REF_VALUE) id binding.
type ValueReader struct {
	buf      *buffer.Buffer
	refs     *refs.ReadTracker
	msTable  *MetaStringReadTable
	meta     *typemeta.ReadCache
	mode     refs.Mode
	wantType bool

	state      state
	reservedID refs.RefID
	hasID      bool
	resolved   any
	isResolved bool
	isDefault  bool
}

// NewValueReader starts the state machine for one value. wantType
// mirrors the call site's declaration of whether type info follows the
// ref byte, per §4.7 step 2.
func NewValueReader(buf *buffer.Buffer, tracker *refs.ReadTracker, msTable *MetaStringReadTable, meta *typemeta.ReadCache, mode refs.Mode, wantType bool) *ValueReader {
	return &ValueReader{buf: buf, refs: tracker, msTable: msTable, meta: meta, mode: mode, wantType: wantType}
}

// Advance drives the state machine through awaiting_ref_flag and, if
// applicable, awaiting_type_info. It returns needPayload, the wire kind
// and TypeRef read from the type info (zero values when no type info was
// read), and an error. needPayload is false when the value resolved to a
// default or a back-reference and the caller must not read a payload.
func (vr *ValueReader) Advance() (needPayload bool, kind wire.Kind, ref TypeRef, err error) {
	if vr.state != stateAwaitingRefFlag {
		return false, 0, TypeRef{}, errs.NewInvalidDataError("value reader: Advance called out of order")
	}

	result, err := ReadValuePrefix(vr.buf, vr.refs, vr.mode)
	if err != nil {
		return false, 0, TypeRef{}, err
	}

	switch {
	case result.IsDefault:
		vr.isDefault = true
		vr.state = stateDone

		return false, 0, TypeRef{}, nil

	case result.IsResolved:
		vr.resolved = result.Resolved
		vr.isResolved = true
		vr.state = stateDone

		return false, 0, TypeRef{}, nil

	case result.HasReservedID:
		vr.reservedID = result.ReservedID
		vr.hasID = true
	}

	vr.state = stateAwaitingTypeInfo

	if !vr.wantType {
		vr.state = stateAwaitingPayload

		return true, 0, TypeRef{}, nil
	}

	kind, ref, err = ReadTypeInfo(vr.buf, vr.msTable)
	if err != nil {
		return false, 0, TypeRef{}, err
	}

	vr.state = stateAwaitingPayload

	return true, kind, ref, nil
}

// IsDefault reports whether the value resolved to NULL without a
// payload.
func (vr *ValueReader) IsDefault() bool { return vr.isDefault }

// Resolved reports a REF back-reference's bound value, if any.
func (vr *ValueReader) Resolved() (any, bool) { return vr.resolved, vr.isResolved }

// Finish binds the decoded payload to the reserved ref id, if this value
// was a REF_VALUE, and transitions to done.
func (vr *ValueReader) Finish(value any) {
	if vr.hasID {
		vr.refs.Bind(vr.reservedID, value)
	}

	vr.state = stateDone
}
