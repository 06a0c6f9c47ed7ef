package object

import (
	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/errs"
	"github.com/arloliu/xwire/refs"
)

// WriteValuePrefix emits the ref-byte for one value per the call site's
// ref.Mode and returns whether the caller must still write the payload.
// identity is consulted only in refs.ModeTracking. isNull selects the NULL
// flag when mode != refs.ModeNone; under refs.ModeNone a null value is an
// InvalidData error, since that mode has no flag byte to carry it.
//
// Per §4.7 step 1: NULL or REF consume no further bytes for this value;
// REF_VALUE or NOT_NULL_VALUE are followed by type info and payload.
func WriteValuePrefix(buf *buffer.Buffer, tracker *refs.WriteTracker, mode refs.Mode, identity any, isNull bool) (writePayload bool, err error) {
	switch mode {
	case refs.ModeNone:
		if isNull {
			return false, errs.NewInvalidDataError("mode None cannot serialize a missing value")
		}

		return true, nil

	case refs.ModeNullOnly:
		if isNull {
			buf.WriteFixedI8(refs.FlagNull)
			return false, nil
		}

		buf.WriteFixedI8(refs.FlagNotNullValue)

		return true, nil

	case refs.ModeTracking:
		if isNull {
			buf.WriteFixedI8(refs.FlagNull)
			return false, nil
		}

		if identity == nil {
			buf.WriteFixedI8(refs.FlagNotNullValue)
			return true, nil
		}

		id, first := tracker.Visit(identity)
		if first {
			buf.WriteFixedI8(refs.FlagRefValue)
			return true, nil
		}

		buf.WriteFixedI8(refs.FlagRef)
		buf.WriteVarUint32(id)

		return false, nil

	default:
		return false, errs.NewInvalidDataError("unknown ref mode")
	}
}

// ReadValuePrefixResult reports what the reader must do next for one
// value, mirroring the awaiting_ref_flag state in §4.8's state machine.
type ReadValuePrefixResult struct {
	// IsDefault is true when the value is NULL; the caller should bind
	// the declared default and skip type info/payload entirely.
	IsDefault bool
	// Resolved holds the value when the flag was REF; the caller should
	// bind it and skip type info/payload.
	Resolved    any
	IsResolved  bool
	// ReservedID is valid only when the flag was REF_VALUE; the caller
	// must Bind this id once the payload finishes decoding.
	ReservedID   refs.RefID
	HasReservedID bool
}

// ReadValuePrefix reads and interprets the ref-byte for one value.
func ReadValuePrefix(buf *buffer.Buffer, tracker *refs.ReadTracker, mode refs.Mode) (ReadValuePrefixResult, error) {
	if mode == refs.ModeNone {
		return ReadValuePrefixResult{}, nil
	}

	flag, err := buf.ReadFixedI8()
	if err != nil {
		return ReadValuePrefixResult{}, err
	}

	switch flag {
	case refs.FlagNull:
		return ReadValuePrefixResult{IsDefault: true}, nil

	case refs.FlagNotNullValue:
		return ReadValuePrefixResult{}, nil

	case refs.FlagRef:
		if mode != refs.ModeTracking {
			return ReadValuePrefixResult{}, errs.NewInvalidDataError("REF flag seen outside tracking mode")
		}

		id, err := buf.ReadVarUint32()
		if err != nil {
			return ReadValuePrefixResult{}, err
		}

		val, err := tracker.Resolve(id)
		if err != nil {
			return ReadValuePrefixResult{}, err
		}

		return ReadValuePrefixResult{Resolved: val, IsResolved: true}, nil

	case refs.FlagRefValue:
		if mode != refs.ModeTracking {
			return ReadValuePrefixResult{}, errs.NewInvalidDataError("REF_VALUE flag seen outside tracking mode")
		}

		id := tracker.Reserve()

		return ReadValuePrefixResult{ReservedID: id, HasReservedID: true}, nil

	default:
		return ReadValuePrefixResult{}, errs.NewInvalidDataError("invalid ref flag byte")
	}
}
