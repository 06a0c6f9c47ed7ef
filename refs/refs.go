// Package refs implements the write-side and read-side reference
// trackers that preserve object identity across a call when tracking is
// enabled (§4.6). Adapted from mebo's internal/collision.Tracker: same
// "map keyed by identity plus an ordered/append-only list, Reset() for
// per-call reuse" shape, repurposed from name-collision bookkeeping to
// identity-to-id and id-to-value bookkeeping.
package refs

import "github.com/arloliu/xwire/errs"

// RefID is a reference identifier assigned to a tracked value, starting
// at zero on first sighting.
type RefID = uint32

// Mode selects how much ref-flag machinery a given call site uses, per
// §4.6.
type Mode uint8

const (
	// ModeNone writes no flag byte; the value is never null and never
	// shared.
	ModeNone Mode = iota
	// ModeNullOnly writes a flag byte encoding only null vs not-null.
	ModeNullOnly
	// ModeTracking writes the full four-state flag byte with ids
	// honored.
	ModeTracking
)

// Flag byte values, signed 8-bit, per §4.6.
const (
	FlagNull         int8 = -3
	FlagRef          int8 = -2
	FlagNotNullValue int8 = -1
	FlagRefValue     int8 = 0
)

// WriteTracker assigns ref ids to identities on first sighting and
// reports back-references on subsequent sightings.
type WriteTracker struct {
	ids  map[any]RefID
	next RefID
}

// NewWriteTracker creates an empty WriteTracker.
func NewWriteTracker() *WriteTracker {
	return &WriteTracker{ids: make(map[any]RefID)}
}

// Visit records a sighting of identity. It returns (id, true) if this is
// the first sighting (the caller must emit FlagRefValue and then the
// payload), or (id, false) if identity was already seen (the caller must
// emit FlagRef followed by the existing id and no payload).
func (w *WriteTracker) Visit(identity any) (id RefID, first bool) {
	if id, ok := w.ids[identity]; ok {
		return id, false
	}

	id = w.next
	w.next++
	w.ids[identity] = id

	return id, true
}

// Reset clears all tracked identities for reuse across calls.
func (w *WriteTracker) Reset() {
	for k := range w.ids {
		delete(w.ids, k)
	}

	w.next = 0
}

// ReadTracker is an append-only vector of read values indexed by ref-id,
// supporting cycles by letting the caller reserve an id before the
// referenced value has finished decoding.
type ReadTracker struct {
	values []any
}

// NewReadTracker creates an empty ReadTracker.
func NewReadTracker() *ReadTracker {
	return &ReadTracker{}
}

// Reserve reserves the next id before reading a REF_VALUE's payload, so
// that a self-referential or cyclic payload can resolve its own id
// mid-decode via Resolve.
func (r *ReadTracker) Reserve() RefID {
	id := RefID(len(r.values))
	r.values = append(r.values, nil)

	return id
}

// Bind attaches the completed value to a previously reserved id.
func (r *ReadTracker) Bind(id RefID, value any) {
	r.values[id] = value
}

// Resolve returns the value bound to id, per a REF flag. An id outside
// the reserved range is a RefError.
func (r *ReadTracker) Resolve(id RefID) (any, error) {
	if int(id) >= len(r.values) {
		return nil, errs.NewRefError("ref id out of range")
	}

	return r.values[id], nil
}

// Reset clears all tracked values for reuse across calls.
func (r *ReadTracker) Reset() {
	r.values = r.values[:0]
}
