package structures

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarConstructorsSetKind(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		kind Kind
	}{
		{"byte", NewByte(-7), KindByte},
		{"short", NewShort(1000), KindShort},
		{"int", NewInt(-12345), KindInt},
		{"long", NewLong(1 << 40), KindLong},
		{"float", NewFloat(3.5), KindFloat},
		{"double", NewDouble(2.25), KindDouble},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.kind, tt.tag.Kind())
		})
	}
}

func TestNewStringRejectsOversizedPayload(t *testing.T) {
	_, err := NewString(string(make([]byte, 65536)))
	require.Error(t, err)

	_, err = NewString(string(make([]byte, 65535)))
	require.NoError(t, err)
}

func TestListAppendFixesElementKind(t *testing.T) {
	list := NewList(KindEnd)
	require.Equal(t, KindEnd, list.ElementKind())

	require.NoError(t, list.ListAppend(NewInt(1)))
	require.Equal(t, KindInt, list.ElementKind())

	nope, err := NewString("nope")
	require.NoError(t, err)
	err = list.ListAppend(nope)
	require.Error(t, err)
	require.Equal(t, 1, list.Len())
}

func TestListGetSet(t *testing.T) {
	list := NewList(KindEnd)
	require.NoError(t, list.ListAppend(NewInt(1)))
	require.NoError(t, list.ListAppend(NewInt(2)))

	v, ok := list.ListGet(1)
	require.True(t, ok)
	iv, _ := v.AsInt()
	require.Equal(t, int32(2), iv)

	require.NoError(t, list.ListSet(0, NewInt(9)))
	v, _ = list.ListGet(0)
	iv, _ = v.AsInt()
	require.Equal(t, int32(9), iv)

	x, err := NewString("x")
	require.NoError(t, err)
	require.Error(t, list.ListSet(0, x))

	_, ok = list.ListGet(5)
	require.False(t, ok)
}

func TestCompoundPutAndPutNew(t *testing.T) {
	c := NewCompound()
	require.NoError(t, c.CompoundPut("a", NewInt(1)))
	require.NoError(t, c.CompoundPut("a", NewInt(2))) // upsert never errors

	v, ok := c.CompoundGet("a")
	require.True(t, ok)
	iv, _ := v.AsInt()
	require.Equal(t, int32(2), iv)

	require.Error(t, c.CompoundPutNew("a", NewInt(3)))
	require.NoError(t, c.CompoundPutNew("b", NewInt(3)))

	require.Equal(t, []string{"a", "b"}, c.CompoundKeys())
}

func TestCompoundDeletePreservesOrder(t *testing.T) {
	c := NewCompound()
	require.NoError(t, c.CompoundPut("a", NewInt(1)))
	require.NoError(t, c.CompoundPut("b", NewInt(2)))
	require.NoError(t, c.CompoundPut("c", NewInt(3)))

	require.True(t, c.CompoundDelete("b"))
	require.Equal(t, []string{"a", "c"}, c.CompoundKeys())
	require.False(t, c.CompoundDelete("b"))
}

func TestEqualTreatsNaNAsEqualToItself(t *testing.T) {
	nan := NewDouble(math.NaN())
	require.True(t, nan.Equal(nan))

	require.False(t, NewDouble(1.0).Equal(NewDouble(2.0)))
	require.True(t, NewFloat(0).Equal(NewFloat(0)))
}

func TestEqualCompoundRequiresSameKeyOrder(t *testing.T) {
	a := NewCompound()
	require.NoError(t, a.CompoundPut("x", NewInt(1)))
	require.NoError(t, a.CompoundPut("y", NewInt(2)))

	b := NewCompound()
	require.NoError(t, b.CompoundPut("y", NewInt(2)))
	require.NoError(t, b.CompoundPut("x", NewInt(1)))

	// Equal compares keys in insertion order as well as values, so the
	// same entries inserted in a different order do not compare equal.
	require.False(t, a.Equal(b))
}

func TestEqualListRequiresSameElementKindAndOrder(t *testing.T) {
	a := NewList(KindEnd)
	require.NoError(t, a.ListAppend(NewInt(1)))
	require.NoError(t, a.ListAppend(NewInt(2)))

	b := NewList(KindEnd)
	require.NoError(t, b.ListAppend(NewInt(2)))
	require.NoError(t, b.ListAppend(NewInt(1)))

	require.False(t, a.Equal(b))
}

func TestKindStringAndValid(t *testing.T) {
	require.Equal(t, "Compound", KindCompound.String())
	require.True(t, KindCompound.Valid())
	require.False(t, Kind(200).Valid())
	require.Equal(t, "Kind(200)", Kind(200).String())
}
