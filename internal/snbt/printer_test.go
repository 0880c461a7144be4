package snbt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/nbt/internal/structures"
)

func TestPrintCompactScalars(t *testing.T) {
	require.Equal(t, "5b", Print(structures.NewByte(5)))
	require.Equal(t, "-5s", Print(structures.NewShort(-5)))
	require.Equal(t, "5", Print(structures.NewInt(5)))
	require.Equal(t, "5l", Print(structures.NewLong(5)))
	require.Equal(t, `"hi"`, Print(mustString(t, "hi")))
}

func TestPrintCompactEscapesQuotes(t *testing.T) {
	require.Equal(t, `"a\"b"`, Print(mustString(t, `a"b`)))
}

func TestPrintCompoundAndList(t *testing.T) {
	c := structures.NewCompound()
	require.NoError(t, c.CompoundPut("a", structures.NewInt(1)))
	require.NoError(t, c.CompoundPut("b", structures.NewByte(2)))
	require.Equal(t, "{a:1,b:2b}", Print(c))

	list := structures.NewList(structures.KindEnd)
	require.NoError(t, list.ListAppend(structures.NewInt(1)))
	require.NoError(t, list.ListAppend(structures.NewInt(2)))
	require.Equal(t, "[1,2]", Print(list))
}

func TestPrintTypedArraysCompact(t *testing.T) {
	require.Equal(t, "[B;1b,2b]", Print(structures.NewByteArray([]int8{1, 2})))
	require.Equal(t, "[I;1,2]", Print(structures.NewIntArray([]int32{1, 2})))
	require.Equal(t, "[L;1l,2l]", Print(structures.NewLongArray([]int64{1, 2})))
}

func TestPrintKeyQuotingRules(t *testing.T) {
	c := structures.NewCompound()
	require.NoError(t, c.CompoundPut("plain_key", structures.NewInt(1)))
	require.NoError(t, c.CompoundPut("has space", structures.NewInt(2)))
	got := Print(c)
	require.Contains(t, got, "plain_key:1")
	require.Contains(t, got, `"has space":2`)
}

func TestPrintFormattedEmptyContainers(t *testing.T) {
	out, err := PrintFormatted(structures.NewCompound(), 4)
	require.NoError(t, err)
	require.Equal(t, "{}", out)

	out, err = PrintFormatted(structures.NewList(structures.KindEnd), 4)
	require.NoError(t, err)
	require.Equal(t, "[]", out)
}

func TestPrintFormattedShortNumericListStaysOneLine(t *testing.T) {
	list := structures.NewList(structures.KindEnd)
	for i := int32(1); i <= 3; i++ {
		require.NoError(t, list.ListAppend(structures.NewInt(i)))
	}
	out, err := PrintFormatted(list, 4)
	require.NoError(t, err)
	require.Equal(t, "[1,2,3]", out)
}

func TestPrintFormattedLongNumericListUsesGrid(t *testing.T) {
	list := structures.NewList(structures.KindEnd)
	for i := int32(0); i < 16; i++ {
		require.NoError(t, list.ListAppend(structures.NewInt(i)))
	}
	out, err := PrintFormatted(list, 2)
	require.NoError(t, err)
	require.Contains(t, out, "[\n")
	require.Contains(t, out, "\n]")
	// 16 elements => width = height = 4, so four rows of four.
	require.Equal(t, 6, countLines(out))
}

func TestPrintFormattedGridHandlesPartiallyFilledLastRow(t *testing.T) {
	list := structures.NewList(structures.KindEnd)
	for i := int32(0); i < 17; i++ {
		require.NoError(t, list.ListAppend(structures.NewInt(i)))
	}
	out, err := PrintFormatted(list, 2)
	require.NoError(t, err)
	// width = ceil(sqrt(17)) = 5, so 17 elements wrap into 4 rows (5,5,5,2),
	// not 5 rows with a dangling empty fifth row.
	require.Equal(t, 6, countLines(out))
	require.NotContains(t, out, "\n\n")
	require.Contains(t, out, "16\n]")
}

func TestPrintFormattedSingleNumericEntryCompound(t *testing.T) {
	c := structures.NewCompound()
	require.NoError(t, c.CompoundPut("x", structures.NewInt(7)))
	out, err := PrintFormatted(c, 4)
	require.NoError(t, err)
	require.Equal(t, "{x: 7}", out)
}

func TestPrintFormattedRejectsIndentOutOfRange(t *testing.T) {
	_, err := PrintFormatted(structures.NewCompound(), 0)
	require.Error(t, err)
	_, err = PrintFormatted(structures.NewCompound(), 17)
	require.Error(t, err)
}

func TestPrintRootRoundTripsThroughParser(t *testing.T) {
	c := structures.NewCompound()
	require.NoError(t, c.CompoundPut("a", structures.NewInt(1)))
	text := PrintRoot(c, "level")

	name, tag, err := NewParser(text).ParseRoot()
	require.NoError(t, err)
	require.Equal(t, "level", name)
	require.True(t, tag.Equal(c))
}

func mustString(t *testing.T, s string) structures.Tag {
	t.Helper()
	tag, err := structures.NewString(s)
	require.NoError(t, err)
	return tag
}

func countLines(s string) int {
	n := 1
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}
