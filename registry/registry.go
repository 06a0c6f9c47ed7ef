// Package registry maps between language types, user-assigned type ids,
// and wire dispatch (§4.4). Registry is the write-side table a caller
// populates once at startup; Resolver is the read-side view a Context
// consults during deserialization.
//
// Grounded on mebo's internal/collision.Tracker: a map keyed by a hashed
// identity plus an ordered list, generalized here from metric-name
// collision bookkeeping to type registration bookkeeping. The
// (namespace, name) interning key is hashed with xxhash the way
// internal/hash.ID hashes metric names; the wire format itself never
// sees this hash; it is purely an in-process lookup accelerator.
package registry

import (
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/xwire/errs"
	"github.com/arloliu/xwire/wire"
)

// Registered describes one registered language type: its wire kind and
// the identifying key callers used to register it.
type Registered struct {
	Type      reflect.Type
	Kind      wire.Kind
	UserID    uint32
	Namespace string
	Name      string
	ByID      bool
}

// Registry is the write-side registration table. The zero value is not
// usable; construct with New.
type Registry struct {
	byType   map[reflect.Type]*Registered
	byID     map[uint32]*Registered
	byName   map[uint64]*Registered // key: nameKey(namespace, name)
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*Registered),
		byID:   make(map[uint32]*Registered),
		byName: make(map[uint64]*Registered),
	}
}

func nameKey(namespace, name string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(namespace)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(name)

	return h.Sum64()
}

// RegisterByID registers typ under a numeric user id. Idempotent when
// called again with the same type and id; conflicting re-registration
// (same type, different id, or same id, different type) is an error.
func (r *Registry) RegisterByID(typ reflect.Type, kind wire.Kind, userID uint32) error {
	if existing, ok := r.byType[typ]; ok {
		if existing.ByID && existing.UserID == userID {
			return nil
		}

		return errs.NewInvalidDataError("type already registered under a different key")
	}

	if existing, ok := r.byID[userID]; ok && existing.Type != typ {
		return errs.NewInvalidDataError("user id already registered to a different type")
	}

	reg := &Registered{Type: typ, Kind: kind, UserID: userID, ByID: true}
	r.byType[typ] = reg
	r.byID[userID] = reg

	return nil
}

// RegisterByName registers typ under a (namespace, name) pair. Idempotent
// when called again with the same type and names; conflicting
// re-registration is an error.
func (r *Registry) RegisterByName(typ reflect.Type, kind wire.Kind, namespace, name string) error {
	key := nameKey(namespace, name)

	if existing, ok := r.byType[typ]; ok {
		if !existing.ByID && existing.Namespace == namespace && existing.Name == name {
			return nil
		}

		return errs.NewInvalidDataError("type already registered under a different key")
	}

	if existing, ok := r.byName[key]; ok && existing.Type != typ {
		return errs.NewInvalidDataError("namespace/name already registered to a different type")
	}

	reg := &Registered{Type: typ, Kind: kind, Namespace: namespace, Name: name}
	r.byType[typ] = reg
	r.byName[key] = reg

	return nil
}

// LookupByTypeHandle returns the Registered entry for typ, used during
// write to determine the wire dispatch for a value.
func (r *Registry) LookupByTypeHandle(typ reflect.Type) (*Registered, error) {
	reg, ok := r.byType[typ]
	if !ok {
		return nil, errs.NewTypeNotRegisteredError(typ)
	}

	return reg, nil
}

// NewResolver binds a read-side Resolver to this Registry. The registry
// is treated as read-only for the lifetime of any resolver bound to it,
// per §5.
func (r *Registry) NewResolver() *Resolver {
	return &Resolver{reg: r}
}

// Resolver is the read-side view of a Registry, consulted during
// deserialization once the wire kind and identifying key have been
// peeked from the object protocol.
type Resolver struct {
	reg *Registry
}

// LookupByUserID resolves a numeric user type id to its Registered entry.
func (res *Resolver) LookupByUserID(id uint32) (*Registered, error) {
	reg, ok := res.reg.byID[id]
	if !ok {
		return nil, errs.NewTypeNotRegisteredError(id)
	}

	return reg, nil
}

// LookupByName resolves a (namespace, name) pair to its Registered entry.
func (res *Resolver) LookupByName(namespace, name string) (*Registered, error) {
	reg, ok := res.reg.byName[nameKey(namespace, name)]
	if !ok {
		return nil, errs.NewTypeNotRegisteredError(namespace + "." + name)
	}

	return reg, nil
}
