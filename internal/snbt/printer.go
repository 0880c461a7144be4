package snbt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/scigolib/nbt/internal/structures"
)

// suffix returns the numeric literal suffix Minecraft uses for kind (empty
// for Int, which carries no suffix).
func suffix(kind structures.Kind) string {
	switch kind {
	case structures.KindByte:
		return "b"
	case structures.KindShort:
		return "s"
	case structures.KindLong:
		return "l"
	case structures.KindFloat:
		return "f"
	case structures.KindDouble:
		return "d"
	default:
		return ""
	}
}

// scalarLiteral renders a non-container tag's SNBT literal: a quoted string
// for String, otherwise the numeric value plus its suffix.
func scalarLiteral(t structures.Tag) string {
	switch t.Kind() {
	case structures.KindByte:
		v, _ := t.AsByte()
		return strconv.FormatInt(int64(v), 10) + "b"
	case structures.KindShort:
		v, _ := t.AsShort()
		return strconv.FormatInt(int64(v), 10) + "s"
	case structures.KindInt:
		v, _ := t.AsInt()
		return strconv.FormatInt(int64(v), 10)
	case structures.KindLong:
		v, _ := t.AsLong()
		return strconv.FormatInt(v, 10) + "l"
	case structures.KindFloat:
		v, _ := t.AsFloat()
		return formatFloat(float64(v), 32) + "f"
	case structures.KindDouble:
		v, _ := t.AsDouble()
		return formatFloat(v, 64) + "d"
	case structures.KindString:
		s, _ := t.AsString()
		return quoteString(s)
	default:
		return ""
	}
}

func formatFloat(v float64, bitSize int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	if math.IsInf(v, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, bitSize)
}

// quoteString renders s as a double-quoted SNBT string literal, escaping
// backslashes and double quotes. Bare (unquoted) keys use quoteKey instead.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// quoteKey renders a compound key bare if every character is a legal bare
// word character, quoted otherwise.
func quoteKey(key string) string {
	if key != "" && allBareChars(key) {
		return key
	}
	return quoteString(key)
}

func allBareChars(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isBareChar(s[i]) {
			return false
		}
	}
	return true
}

// Print renders tag as compact, single-line SNBT: no extra whitespace, the
// form used on the wire and in commands.
func Print(tag structures.Tag) string {
	var b strings.Builder
	writeCompact(&b, tag)
	return b.String()
}

// PrintRoot renders tag prefixed with "name:", the shape a root SNBT
// document takes. An empty name still gets the "" prefix so the document
// round-trips through ParseRoot.
func PrintRoot(tag structures.Tag, name string) string {
	var b strings.Builder
	b.WriteString(quoteKey(name))
	b.WriteByte(':')
	writeCompact(&b, tag)
	return b.String()
}

// PrintRootFormatted is PrintRoot's multi-line counterpart.
func PrintRootFormatted(tag structures.Tag, name string, indentSize int) (string, error) {
	if indentSize < 1 || indentSize > 16 {
		return "", fmt.Errorf("indent size %d out of range (1-16)", indentSize)
	}
	var b strings.Builder
	b.WriteString(quoteKey(name))
	b.WriteString(": ")
	writeFormatted(&b, tag, 1, indentSize)
	return b.String(), nil
}

func writeCompact(b *strings.Builder, t structures.Tag) {
	switch t.Kind() {
	case structures.KindByteArray:
		vals, _ := t.AsByteArray()
		b.WriteString("[B;")
		for i, v := range vals {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%db", v)
		}
		b.WriteByte(']')
	case structures.KindIntArray:
		vals, _ := t.AsIntArray()
		b.WriteString("[I;")
		for i, v := range vals {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%d", v)
		}
		b.WriteByte(']')
	case structures.KindLongArray:
		vals, _ := t.AsLongArray()
		b.WriteString("[L;")
		for i, v := range vals {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%dl", v)
		}
		b.WriteByte(']')
	case structures.KindList:
		b.WriteByte('[')
		for i, elem := range t.ListElements() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCompact(b, elem)
		}
		b.WriteByte(']')
	case structures.KindCompound:
		b.WriteByte('{')
		first := true
		t.CompoundEach(func(key string, val structures.Tag) bool {
			if !first {
				b.WriteByte(',')
			}
			first = false
			b.WriteString(quoteKey(key))
			b.WriteByte(':')
			writeCompact(b, val)
			return true
		})
		b.WriteByte('}')
	default:
		b.WriteString(scalarLiteral(t))
	}
}

// PrintFormatted renders tag as Minecraft's multi-line formatted SNBT,
// indenting by indentSize spaces (1-16) per level and using the near-square
// grid layout for numeric lists of 16 or more elements.
func PrintFormatted(tag structures.Tag, indentSize int) (string, error) {
	if indentSize < 1 || indentSize > 16 {
		return "", fmt.Errorf("indent size %d out of range (1-16)", indentSize)
	}
	var b strings.Builder
	writeFormatted(&b, tag, 1, indentSize)
	return b.String(), nil
}

func tab(size, indent int) string {
	return strings.Repeat(" ", size*indent)
}

// shortListLimit reports how many elements a list of kind may hold and
// still be printed on one line: byte/short lists up to 5 elements, the
// other four numeric kinds up to 3, string lists 1. ok is false for every
// other element kind.
func shortListLimit(kind structures.Kind) (limit int, ok bool) {
	switch kind {
	case structures.KindByte, structures.KindShort:
		return 5, true
	case structures.KindInt, structures.KindLong, structures.KindFloat, structures.KindDouble:
		return 3, true
	case structures.KindString:
		return 1, true
	default:
		return 0, false
	}
}

func writeFormatted(b *strings.Builder, t structures.Tag, indent, size int) {
	switch t.Kind() {
	case structures.KindByteArray, structures.KindIntArray, structures.KindLongArray:
		writeCompact(b, t) // typed arrays are always rendered on one line
	case structures.KindList:
		writeFormattedList(b, t, indent, size)
	case structures.KindCompound:
		writeFormattedCompound(b, t, indent, size)
	default:
		b.WriteString(scalarLiteral(t))
	}
}

func writeFormattedList(b *strings.Builder, t structures.Tag, indent, size int) {
	elems := t.ListElements()
	count := len(elems)
	if count == 0 {
		b.WriteString("[]")
		return
	}
	kind := t.ElementKind()

	if limit, ok := shortListLimit(kind); ok && count <= limit {
		writeCompact(b, t)
		return
	}

	if count >= 16 && kind.IsNumeric() {
		writeGrid(b, t, indent, size)
		return
	}

	b.WriteString("[\n")
	for i, elem := range elems {
		b.WriteString(tab(size, indent))
		writeFormatted(b, elem, indent+1, size)
		if i < count-1 {
			b.WriteString(",\n")
		}
	}
	b.WriteString("\n" + tab(size, indent-1) + "]")
}

// writeGrid lays out a numeric list of 16+ elements as a near-square grid,
// width = ceil(sqrt(count)), wrapped into as many rows as that width
// actually needs (the last row may be partly empty), trimming the trailing
// separator on the last element of the last row.
func writeGrid(b *strings.Builder, t structures.Tag, indent, size int) {
	elems := t.ListElements()
	count := len(elems)
	width := int(math.Ceil(math.Sqrt(float64(count))))
	sfx := suffix(t.ElementKind())
	last := count - 1
	numRows := (count + width - 1) / width
	lastRowStart := numRows - 2

	b.WriteString("[\n")
	for row := 0; row < numRows; row++ {
		b.WriteString(tab(size, indent))
		stopped := false
		for col := 0; col < width; col++ {
			idx := row*width + col
			if idx >= count {
				break
			}
			if row >= lastRowStart && idx == last {
				b.WriteString(numericLiteral(elems[idx], sfx))
				stopped = true
				break
			}
			b.WriteString(numericLiteral(elems[idx], sfx))
			b.WriteString(", ")
		}
		if !stopped {
			b.WriteByte('\n')
		}
	}
	b.WriteString("\n" + tab(size, indent-1) + "]")
}

func numericLiteral(t structures.Tag, sfx string) string {
	switch t.Kind() {
	case structures.KindByte:
		v, _ := t.AsByte()
		return strconv.FormatInt(int64(v), 10) + sfx
	case structures.KindShort:
		v, _ := t.AsShort()
		return strconv.FormatInt(int64(v), 10) + sfx
	case structures.KindInt:
		v, _ := t.AsInt()
		return strconv.FormatInt(int64(v), 10) + sfx
	case structures.KindLong:
		v, _ := t.AsLong()
		return strconv.FormatInt(v, 10) + sfx
	case structures.KindFloat:
		v, _ := t.AsFloat()
		return formatFloat(float64(v), 32) + sfx
	case structures.KindDouble:
		v, _ := t.AsDouble()
		return formatFloat(v, 64) + sfx
	default:
		return ""
	}
}

func writeFormattedCompound(b *strings.Builder, t structures.Tag, indent, size int) {
	count := t.Len()
	if count == 0 {
		b.WriteString("{}")
		return
	}
	if count == 1 {
		var onlyKey string
		var onlyVal structures.Tag
		t.CompoundEach(func(key string, val structures.Tag) bool {
			onlyKey, onlyVal = key, val
			return false
		})
		if onlyVal.Kind().IsNumeric() {
			b.WriteByte('{')
			b.WriteString(quoteKey(onlyKey))
			b.WriteString(": ")
			b.WriteString(scalarLiteral(onlyVal))
			b.WriteByte('}')
			return
		}
	}

	b.WriteString("{\n")
	i, last := 0, count-1
	t.CompoundEach(func(key string, val structures.Tag) bool {
		b.WriteString(tab(size, indent))
		b.WriteString(quoteKey(key))
		b.WriteString(": ")
		writeFormatted(b, val, indent+1, size)
		if i < last {
			b.WriteString(",\n")
		}
		i++
		return true
	})
	b.WriteString("\n" + tab(size, indent-1) + "}")
}
