package snbt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/nbt/internal/structures"
	"github.com/scigolib/nbt/internal/utils"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		src  string
		kind structures.Kind
	}{
		{"5b", structures.KindByte},
		{"5s", structures.KindShort},
		{"5", structures.KindInt},
		{"5l", structures.KindLong},
		{"5.5f", structures.KindFloat},
		{"5.5d", structures.KindDouble},
		{"5.5", structures.KindDouble},
		{`"hello"`, structures.KindString},
		{"bareword", structures.KindString},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tag, err := NewParser(tt.src).Parse()
			require.NoError(t, err)
			require.Equal(t, tt.kind, tag.Kind())
		})
	}
}

func TestParseQuotedStringNeverBecomesANumber(t *testing.T) {
	tag, err := NewParser(`"5"`).Parse()
	require.NoError(t, err)
	require.Equal(t, structures.KindString, tag.Kind())
	s, _ := tag.AsString()
	require.Equal(t, "5", s)
}

func TestParseCompound(t *testing.T) {
	tag, err := NewParser(`{a:1,b:"two",c:{d:3b}}`).Parse()
	require.NoError(t, err)
	require.Equal(t, structures.KindCompound, tag.Kind())

	a, ok := tag.CompoundGet("a")
	require.True(t, ok)
	v, _ := a.AsInt()
	require.Equal(t, int32(1), v)

	c, ok := tag.CompoundGet("c")
	require.True(t, ok)
	d, ok := c.CompoundGet("d")
	require.True(t, ok)
	db, _ := d.AsByte()
	require.Equal(t, int8(3), db)
}

func TestParseCompoundRejectsDuplicateKey(t *testing.T) {
	_, err := NewParser(`{a:1,a:2}`).Parse()
	require.Error(t, err)
}

func TestParseGenericList(t *testing.T) {
	tag, err := NewParser(`[1,2,3]`).Parse()
	require.NoError(t, err)
	require.Equal(t, structures.KindList, tag.Kind())
	require.Equal(t, structures.KindInt, tag.ElementKind())
	require.Equal(t, 3, tag.Len())
}

func TestParseListRejectsMixedKinds(t *testing.T) {
	_, err := NewParser(`[1,"two"]`).Parse()
	require.Error(t, err)
}

func TestParseListMixedKindErrorPointsAtOffendingElement(t *testing.T) {
	// "[1b, 2s]": the mismatching element "2s" starts at byte offset 5
	// (column 6), not at the preceding comma (offset 3, column 4).
	_, err := NewParser(`[1b, 2s]`).Parse()
	require.Error(t, err)

	var parseErr *utils.ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, 6, parseErr.Column)
}

func TestParseEmptyList(t *testing.T) {
	tag, err := NewParser(`[]`).Parse()
	require.NoError(t, err)
	require.Equal(t, 0, tag.Len())
}

func TestParseTypedArrays(t *testing.T) {
	tag, err := NewParser(`[B;1b,2b,3b]`).Parse()
	require.NoError(t, err)
	require.Equal(t, structures.KindByteArray, tag.Kind())
	vals, _ := tag.AsByteArray()
	require.Equal(t, []int8{1, 2, 3}, vals)

	tag, err = NewParser(`[I;1,2,3]`).Parse()
	require.NoError(t, err)
	require.Equal(t, structures.KindIntArray, tag.Kind())

	tag, err = NewParser(`[L;1,2,3]`).Parse()
	require.NoError(t, err)
	require.Equal(t, structures.KindLongArray, tag.Kind())
}

func TestParseEmptyTypedArray(t *testing.T) {
	tag, err := NewParser(`[I;]`).Parse()
	require.NoError(t, err)
	require.Equal(t, structures.KindIntArray, tag.Kind())
	require.Equal(t, 0, tag.Len())
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := NewParser(`1 2`).Parse()
	require.Error(t, err)
}

func TestParseRootWithName(t *testing.T) {
	name, tag, err := NewParser(`level:{a:1}`).ParseRoot()
	require.NoError(t, err)
	require.Equal(t, "level", name)
	require.Equal(t, structures.KindCompound, tag.Kind())
}

func TestParseRootBareValueHasEmptyName(t *testing.T) {
	name, tag, err := NewParser(`{a:1}`).ParseRoot()
	require.NoError(t, err)
	require.Equal(t, "", name)
	require.Equal(t, structures.KindCompound, tag.Kind())
}

func TestParseEnforcesMaxDepth(t *testing.T) {
	_, err := NewParser(`{a:{b:{c:1}}}`, WithParserMaxDepth(1)).Parse()
	require.Error(t, err)
}

func TestParseNegativeNumbers(t *testing.T) {
	tag, err := NewParser("-42b").Parse()
	require.NoError(t, err)
	v, _ := tag.AsByte()
	require.Equal(t, int8(-42), v)
}
