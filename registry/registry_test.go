package registry

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/xwire/wire"
)

type sampleStruct struct{ A int }

func TestRegisterByIDAndLookup(t *testing.T) {
	require := require.New(t)

	reg := New()
	typ := reflect.TypeOf(sampleStruct{})

	require.NoError(reg.RegisterByID(typ, wire.KindNamedStruct, 7))
	require.NoError(reg.RegisterByID(typ, wire.KindNamedStruct, 7)) // idempotent

	got, err := reg.LookupByTypeHandle(typ)
	require.NoError(err)
	require.Equal(uint32(7), got.UserID)

	res := reg.NewResolver()
	got2, err := res.LookupByUserID(7)
	require.NoError(err)
	require.Same(got, got2)
}

func TestRegisterByIDConflict(t *testing.T) {
	require := require.New(t)

	reg := New()
	typ := reflect.TypeOf(sampleStruct{})

	require.NoError(reg.RegisterByID(typ, wire.KindNamedStruct, 1))
	require.Error(reg.RegisterByID(typ, wire.KindNamedStruct, 2))

	type other struct{}
	require.Error(reg.RegisterByID(reflect.TypeOf(other{}), wire.KindNamedStruct, 1))
}

func TestRegisterByNameAndLookup(t *testing.T) {
	require := require.New(t)

	reg := New()
	typ := reflect.TypeOf(sampleStruct{})

	require.NoError(reg.RegisterByName(typ, wire.KindNamedStruct, "example.pkg", "Sample"))

	res := reg.NewResolver()
	got, err := res.LookupByName("example.pkg", "Sample")
	require.NoError(err)
	require.Equal(typ, got.Type)

	_, err = res.LookupByName("example.pkg", "Missing")
	require.Error(err)
}

func TestLookupUnregisteredType(t *testing.T) {
	require := require.New(t)

	reg := New()
	_, err := reg.LookupByTypeHandle(reflect.TypeOf(sampleStruct{}))
	require.Error(err)
}
