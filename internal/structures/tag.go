// Package structures holds the NBT tagged-value model: the thirteen-variant
// Tag, its List/Compound/Array containers, and the invariants (list
// homogeneity, compound key uniqueness) that every codec in this module
// builds on. Neither the binary codec nor the SNBT codec knows about the
// other; both only ever produce and consume a Tag.
package structures

import (
	"fmt"
	"math"
	"strings"
)

// Tag is a single NBT value. Its zero value is not meaningful on its own;
// use one of the New* constructors. Dispatch on the concrete variant is by
// an exhaustive switch on Kind(), matching the rest of this package.
type Tag struct {
	kind Kind

	i8  int8
	i16 int16
	i32 int32
	i64 int64
	f32 float32
	f64 float64
	str string

	byteArr []int8
	intArr  []int32
	longArr []int64

	list     []Tag
	listKind Kind

	compound *compound
}

// Kind reports which of the thirteen variants t holds.
func (t Tag) Kind() Kind {
	return t.kind
}

// NewEnd returns the End sentinel tag. It never appears as a Compound entry
// or List element; it only appears as an empty List's element kind.
func NewEnd() Tag {
	return Tag{kind: KindEnd}
}

func NewByte(v int8) Tag   { return Tag{kind: KindByte, i8: v} }
func NewShort(v int16) Tag { return Tag{kind: KindShort, i16: v} }
func NewInt(v int32) Tag   { return Tag{kind: KindInt, i32: v} }
func NewLong(v int64) Tag  { return Tag{kind: KindLong, i64: v} }
func NewFloat(v float32) Tag {
	return Tag{kind: KindFloat, f32: v}
}
func NewDouble(v float64) Tag {
	return Tag{kind: KindDouble, f64: v}
}

// NewString wraps s as a KindString tag. s is treated as a raw byte payload
// (Go strings are already byte sequences with no UTF-8 validity
// requirement), so arbitrary byte payloads round-trip without translation;
// see DESIGN.md for why this module does not implement Java's modified
// UTF-8. An error is returned if s is longer than the 16-bit wire length
// prefix can hold.
func NewString(s string) (Tag, error) {
	if len(s) > 0xFFFF {
		return Tag{}, fmt.Errorf("string payload of %d bytes exceeds the 65535-byte wire limit", len(s))
	}
	return Tag{kind: KindString, str: s}, nil
}

// NewByteArray copies v into a new KindByteArray tag.
func NewByteArray(v []int8) Tag {
	return Tag{kind: KindByteArray, byteArr: append([]int8(nil), v...)}
}

// NewIntArray copies v into a new KindIntArray tag.
func NewIntArray(v []int32) Tag {
	return Tag{kind: KindIntArray, intArr: append([]int32(nil), v...)}
}

// NewLongArray copies v into a new KindLongArray tag.
func NewLongArray(v []int64) Tag {
	return Tag{kind: KindLongArray, longArr: append([]int64(nil), v...)}
}

// NewList returns an empty List whose elements must all be elementKind.
// elementKind may be KindEnd, meaning the list's element kind is not yet
// fixed; the first Append then fixes it.
func NewList(elementKind Kind) Tag {
	return Tag{kind: KindList, listKind: elementKind}
}

// NewCompound returns an empty Compound.
func NewCompound() Tag {
	return Tag{kind: KindCompound, compound: newCompound()}
}

// --- scalar accessors ---

func (t Tag) AsByte() (int8, bool) {
	if t.kind != KindByte {
		return 0, false
	}
	return t.i8, true
}

func (t Tag) AsShort() (int16, bool) {
	if t.kind != KindShort {
		return 0, false
	}
	return t.i16, true
}

func (t Tag) AsInt() (int32, bool) {
	if t.kind != KindInt {
		return 0, false
	}
	return t.i32, true
}

func (t Tag) AsLong() (int64, bool) {
	if t.kind != KindLong {
		return 0, false
	}
	return t.i64, true
}

func (t Tag) AsFloat() (float32, bool) {
	if t.kind != KindFloat {
		return 0, false
	}
	return t.f32, true
}

func (t Tag) AsDouble() (float64, bool) {
	if t.kind != KindDouble {
		return 0, false
	}
	return t.f64, true
}

func (t Tag) AsString() (string, bool) {
	if t.kind != KindString {
		return "", false
	}
	return t.str, true
}

func (t Tag) AsByteArray() ([]int8, bool) {
	if t.kind != KindByteArray {
		return nil, false
	}
	return t.byteArr, true
}

func (t Tag) AsIntArray() ([]int32, bool) {
	if t.kind != KindIntArray {
		return nil, false
	}
	return t.intArr, true
}

func (t Tag) AsLongArray() ([]int64, bool) {
	if t.kind != KindLongArray {
		return nil, false
	}
	return t.longArr, true
}

// Len reports the element/entry count for a List, Compound, or Array tag,
// and 0 for any scalar kind.
func (t Tag) Len() int {
	switch t.kind {
	case KindList:
		return len(t.list)
	case KindCompound:
		if t.compound == nil {
			return 0
		}
		return t.compound.len()
	case KindByteArray:
		return len(t.byteArr)
	case KindIntArray:
		return len(t.intArr)
	case KindLongArray:
		return len(t.longArr)
	default:
		return 0
	}
}

// ElementKind reports a List's fixed element kind (KindEnd for an empty
// list whose kind has not yet been fixed by an Append). Returns KindEnd for
// any non-List tag.
func (t Tag) ElementKind() Kind {
	if t.kind != KindList {
		return KindEnd
	}
	return t.listKind
}

// --- List operations ---

// ListAppend appends elem, fixing the list's element kind on the first call
// if it was still KindEnd. Returns an error, leaving the list unchanged, if
// elem's kind differs from an already-fixed element kind.
func (t *Tag) ListAppend(elem Tag) error {
	if t.kind != KindList {
		return fmt.Errorf("ListAppend: tag is %s, not List", t.kind)
	}
	if t.listKind == KindEnd && len(t.list) == 0 {
		t.listKind = elem.kind
	} else if elem.kind != t.listKind {
		return fmt.Errorf("list element kind mismatch: list holds %s, got %s", t.listKind, elem.kind)
	}
	t.list = append(t.list, elem)
	return nil
}

// ListGet returns the element at i, or (Tag{}, false) if out of range.
func (t Tag) ListGet(i int) (Tag, bool) {
	if t.kind != KindList || i < 0 || i >= len(t.list) {
		return Tag{}, false
	}
	return t.list[i], true
}

// ListSet replaces the element at i. i must be in range and elem's kind
// must match the list's element kind.
func (t *Tag) ListSet(i int, elem Tag) error {
	if t.kind != KindList {
		return fmt.Errorf("ListSet: tag is %s, not List", t.kind)
	}
	if i < 0 || i >= len(t.list) {
		return fmt.Errorf("ListSet: index %d out of range [0,%d)", i, len(t.list))
	}
	if elem.kind != t.listKind {
		return fmt.Errorf("list element kind mismatch: list holds %s, got %s", t.listKind, elem.kind)
	}
	t.list[i] = elem
	return nil
}

// ListElements returns the list's backing slice directly, without copying.
// It is intended for the codec and snbt packages to iterate without
// allocating; callers outside this module's own packages should treat the
// result as read-only.
func (t Tag) ListElements() []Tag {
	if t.kind != KindList {
		return nil
	}
	return t.list
}

// --- Compound operations ---

// CompoundGet looks up key.
func (t Tag) CompoundGet(key string) (Tag, bool) {
	if t.kind != KindCompound || t.compound == nil {
		return Tag{}, false
	}
	return t.compound.get(key)
}

// CompoundPut is an upsert: it never fails, since replacing an existing
// key's value cannot introduce a duplicate.
func (t *Tag) CompoundPut(key string, val Tag) error {
	if t.kind != KindCompound {
		return fmt.Errorf("CompoundPut: tag is %s, not Compound", t.kind)
	}
	if t.compound == nil {
		t.compound = newCompound()
	}
	t.compound.put(key, val)
	return nil
}

// CompoundPutNew inserts key, failing if it is already present. The binary
// decoder and SNBT parser use this to reject a key repeated within one
// serialized Compound body.
func (t *Tag) CompoundPutNew(key string, val Tag) error {
	if t.kind != KindCompound {
		return fmt.Errorf("CompoundPutNew: tag is %s, not Compound", t.kind)
	}
	if t.compound == nil {
		t.compound = newCompound()
	}
	return t.compound.putNew(key, val)
}

// CompoundDelete removes key, reporting whether it was present.
func (t *Tag) CompoundDelete(key string) bool {
	if t.kind != KindCompound || t.compound == nil {
		return false
	}
	return t.compound.delete(key)
}

// CompoundKeys returns the Compound's keys in insertion order.
func (t Tag) CompoundKeys() []string {
	if t.kind != KindCompound || t.compound == nil {
		return nil
	}
	return append([]string(nil), t.compound.keys...)
}

// CompoundEach visits entries in insertion order, stopping early if visit
// returns false. It is the iteration primitive the encoder and printer use
// so that neither has to copy the key slice.
func (t Tag) CompoundEach(visit func(key string, val Tag) bool) {
	if t.kind != KindCompound || t.compound == nil {
		return
	}
	t.compound.each(visit)
}

// Equal reports whether t and other are structurally identical: same kind,
// same payload, same Compound key order, and (for Float/Double) the same
// bit pattern so that NaN compares equal to itself as the round-trip
// property requires.
func (t Tag) Equal(other Tag) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindEnd:
		return true
	case KindByte:
		return t.i8 == other.i8
	case KindShort:
		return t.i16 == other.i16
	case KindInt:
		return t.i32 == other.i32
	case KindLong:
		return t.i64 == other.i64
	case KindFloat:
		return math.Float32bits(t.f32) == math.Float32bits(other.f32)
	case KindDouble:
		return math.Float64bits(t.f64) == math.Float64bits(other.f64)
	case KindString:
		return t.str == other.str
	case KindByteArray:
		return equalSlice(t.byteArr, other.byteArr)
	case KindIntArray:
		return equalSlice(t.intArr, other.intArr)
	case KindLongArray:
		return equalSlice(t.longArr, other.longArr)
	case KindList:
		if t.listKind != other.listKind || len(t.list) != len(other.list) {
			return false
		}
		for i := range t.list {
			if !t.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindCompound:
		tKeys, oKeys := t.CompoundKeys(), other.CompoundKeys()
		if len(tKeys) != len(oKeys) {
			return false
		}
		for i, k := range tKeys {
			if k != oKeys[i] {
				return false
			}
			tv, _ := t.CompoundGet(k)
			ov, ok := other.CompoundGet(k)
			if !ok || !tv.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer with a short, single-line repr suitable
// for %v and log lines; it is not SNBT and is never parsed back.
func (t Tag) String() string {
	switch t.kind {
	case KindEnd:
		return "<End>"
	case KindByte:
		return fmt.Sprintf("<Byte %d>", t.i8)
	case KindShort:
		return fmt.Sprintf("<Short %d>", t.i16)
	case KindInt:
		return fmt.Sprintf("<Int %d>", t.i32)
	case KindLong:
		return fmt.Sprintf("<Long %d>", t.i64)
	case KindFloat:
		return fmt.Sprintf("<Float %v>", t.f32)
	case KindDouble:
		return fmt.Sprintf("<Double %v>", t.f64)
	case KindString:
		s := t.str
		if len(s) > 20 {
			s = s[:17] + "..."
		}
		return fmt.Sprintf("<String %q>", s)
	case KindByteArray:
		return fmt.Sprintf("<ByteArray len=%d>", len(t.byteArr))
	case KindIntArray:
		return fmt.Sprintf("<IntArray len=%d>", len(t.intArr))
	case KindLongArray:
		return fmt.Sprintf("<LongArray len=%d>", len(t.longArr))
	case KindList:
		return fmt.Sprintf("<List of %s len=%d>", t.listKind, len(t.list))
	case KindCompound:
		return fmt.Sprintf("<Compound len=%d>", t.Len())
	default:
		return fmt.Sprintf("<Kind(%d)>", uint8(t.kind))
	}
}

// DebugString returns a verbose, multi-line diagnostic dump distinct from
// SNBT: a List, Compound, or Array holding 10 or fewer entries lists every
// entry on its own line; a longer one shows the first and last 5 entries
// with an elision count in between. Scalars fall back to String(). This is
// diagnostic-only and is never parsed back.
func (t Tag) DebugString() string {
	switch t.kind {
	case KindList:
		return debugContainer("List", len(t.list), func(i int) string {
			return t.list[i].DebugString()
		})
	case KindCompound:
		keys := t.CompoundKeys()
		return debugContainer("Compound", len(keys), func(i int) string {
			v, _ := t.CompoundGet(keys[i])
			return keys[i] + ": " + v.DebugString()
		})
	case KindByteArray:
		return debugContainer("ByteArray", len(t.byteArr), func(i int) string {
			return fmt.Sprintf("%d", t.byteArr[i])
		})
	case KindIntArray:
		return debugContainer("IntArray", len(t.intArr), func(i int) string {
			return fmt.Sprintf("%d", t.intArr[i])
		})
	case KindLongArray:
		return debugContainer("LongArray", len(t.longArr), func(i int) string {
			return fmt.Sprintf("%d", t.longArr[i])
		})
	default:
		return t.String()
	}
}

// Info prints DebugString to stdout, mirroring the original implementation's
// print_info/get_info split (get_info builds the string, print_info prints
// it).
func (t Tag) Info() {
	fmt.Println(t.DebugString())
}

// debugContainer renders name's entries the way DebugString does: every
// entry on its own indented line when there are 10 or fewer, otherwise the
// first and last 5 with an elision count in between.
func debugContainer(name string, n int, entry func(i int) string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	if n <= 10 {
		for i := 0; i < n; i++ {
			b.WriteString("\n    ")
			b.WriteString(entry(i))
		}
	} else {
		for i := 0; i < 5; i++ {
			b.WriteString("\n    ")
			b.WriteString(entry(i))
		}
		fmt.Fprintf(&b, "\n    ...more %d", n-10)
		for i := n - 5; i < n; i++ {
			b.WriteString("\n    ")
			b.WriteString(entry(i))
		}
	}
	b.WriteString("\n)")
	return b.String()
}
