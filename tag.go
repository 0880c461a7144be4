package nbt

import "github.com/scigolib/nbt/internal/structures"

// Tag is a single NBT value of any of the thirteen kinds. The zero value is
// not meaningful; construct one with a New* function.
type Tag = structures.Tag

// Kind identifies which of the thirteen NBT tag variants a Tag holds.
type Kind = structures.Kind

const (
	KindEnd       = structures.KindEnd
	KindByte      = structures.KindByte
	KindShort     = structures.KindShort
	KindInt       = structures.KindInt
	KindLong      = structures.KindLong
	KindFloat     = structures.KindFloat
	KindDouble    = structures.KindDouble
	KindByteArray = structures.KindByteArray
	KindString    = structures.KindString
	KindList      = structures.KindList
	KindCompound  = structures.KindCompound
	KindIntArray  = structures.KindIntArray
	KindLongArray = structures.KindLongArray
)

var (
	NewEnd       = structures.NewEnd
	NewByte      = structures.NewByte
	NewShort     = structures.NewShort
	NewInt       = structures.NewInt
	NewLong      = structures.NewLong
	NewFloat     = structures.NewFloat
	NewDouble    = structures.NewDouble
	NewString    = structures.NewString
	NewByteArray = structures.NewByteArray
	NewIntArray  = structures.NewIntArray
	NewLongArray = structures.NewLongArray
	NewList      = structures.NewList
	NewCompound  = structures.NewCompound
)
