package structures

import "fmt"

// Kind identifies one of the thirteen NBT tag variants. Its numeric value is
// also the tag's wire id.
type Kind uint8

const (
	KindEnd       Kind = 0
	KindByte      Kind = 1
	KindShort     Kind = 2
	KindInt       Kind = 3
	KindLong      Kind = 4
	KindFloat     Kind = 5
	KindDouble    Kind = 6
	KindByteArray Kind = 7
	KindString    Kind = 8
	KindList      Kind = 9
	KindCompound  Kind = 10
	KindIntArray  Kind = 11
	KindLongArray Kind = 12
)

// kindNames indexes directly by wire id; kept in sync with the Kind consts.
var kindNames = [...]string{
	"End", "Byte", "Short", "Int", "Long", "Float", "Double",
	"ByteArray", "String", "List", "Compound", "IntArray", "LongArray",
}

// Valid reports whether k is one of the thirteen defined wire ids.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// IsNumeric reports whether k is one of the six scalar numeric kinds.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindByte, KindShort, KindInt, KindLong, KindFloat, KindDouble:
		return true
	default:
		return false
	}
}

// IsInteger reports whether k is one of the four signed integer kinds.
func (k Kind) IsInteger() bool {
	switch k {
	case KindByte, KindShort, KindInt, KindLong:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}
