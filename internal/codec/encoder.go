package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/philhofer/fwd"

	"github.com/scigolib/nbt/internal/structures"
	"github.com/scigolib/nbt/internal/utils"
)

// Encoder writes a Tag tree to the NBT binary wire format.
type Encoder struct {
	w     *fwd.Writer
	order binary.ByteOrder
}

// EncoderOption configures an Encoder built by NewEncoder.
type EncoderOption func(*Encoder)

// WithEncodeByteOrder selects the wire byte order; binary.BigEndian (Java
// edition) is the default.
func WithEncodeByteOrder(order binary.ByteOrder) EncoderOption {
	return func(e *Encoder) { e.order = order }
}

// NewEncoder returns an Encoder writing to the buffered fwd.Writer w.
// Callers must call Flush once done, since fwd.Writer buffers internally.
func NewEncoder(w *fwd.Writer, opts ...EncoderOption) *Encoder {
	e := &Encoder{w: w, order: binary.BigEndian}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Flush writes any buffered bytes to the underlying io.Writer.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

// Encode writes tag as a named root tag: one kind byte, the name string,
// then the payload. Passing structures.KindEnd as tag's kind writes just
// the single End byte.
func (e *Encoder) Encode(tag structures.Tag, name string) error {
	if err := e.writeKind(tag.Kind()); err != nil {
		return utils.NewEncodingError("write root tag id", err)
	}
	if tag.Kind() == structures.KindEnd {
		return nil
	}
	if err := writeWireString(e.w, name, e.order); err != nil {
		return utils.NewEncodingError("write root tag name", err)
	}
	return e.writePayload(tag)
}

// EncodeUnnamed writes tag in network format: a kind byte followed directly
// by the payload, without a name.
func (e *Encoder) EncodeUnnamed(tag structures.Tag) error {
	if err := e.writeKind(tag.Kind()); err != nil {
		return utils.NewEncodingError("write root tag id", err)
	}
	if tag.Kind() == structures.KindEnd {
		return nil
	}
	return e.writePayload(tag)
}

func (e *Encoder) writeKind(k structures.Kind) error {
	return e.w.WriteByte(byte(k))
}

func (e *Encoder) writePayload(tag structures.Tag) error {
	switch tag.Kind() {
	case structures.KindEnd:
		return nil

	case structures.KindByte:
		v, _ := tag.AsByte()
		return wrapEnc("write byte payload", writeI8(e.w, v))

	case structures.KindShort:
		v, _ := tag.AsShort()
		return wrapEnc("write short payload", writeI16(e.w, v, e.order))

	case structures.KindInt:
		v, _ := tag.AsInt()
		return wrapEnc("write int payload", writeI32(e.w, v, e.order))

	case structures.KindLong:
		v, _ := tag.AsLong()
		return wrapEnc("write long payload", writeI64(e.w, v, e.order))

	case structures.KindFloat:
		v, _ := tag.AsFloat()
		return wrapEnc("write float payload", writeF32(e.w, v, e.order))

	case structures.KindDouble:
		v, _ := tag.AsDouble()
		return wrapEnc("write double payload", writeF64(e.w, v, e.order))

	case structures.KindString:
		s, _ := tag.AsString()
		return wrapEnc("write string payload", writeWireString(e.w, s, e.order))

	case structures.KindByteArray:
		return e.writeByteArray(tag)

	case structures.KindIntArray:
		return e.writeIntArray(tag)

	case structures.KindLongArray:
		return e.writeLongArray(tag)

	case structures.KindList:
		return e.writeList(tag)

	case structures.KindCompound:
		return e.writeCompound(tag)

	default:
		return utils.NewEncodingError("write payload", fmt.Errorf("unhandled tag kind %s", tag.Kind()))
	}
}

func wrapEnc(context string, err error) error {
	return utils.NewEncodingError(context, err)
}

func (e *Encoder) writeCount(n int) error {
	if int64(n) > utils.MaxArrayLen {
		return utils.NewEncodingError("write length", fmt.Errorf("count %d exceeds the 32-bit signed wire limit", n))
	}
	return wrapEnc("write length", writeI32(e.w, int32(n), e.order))
}

func (e *Encoder) writeByteArray(tag structures.Tag) error {
	vals, _ := tag.AsByteArray()
	if err := e.writeCount(len(vals)); err != nil {
		return err
	}
	for i, v := range vals {
		if err := writeI8(e.w, v); err != nil {
			return wrapEnc(fmt.Sprintf("write byte array element %d", i), err)
		}
	}
	return nil
}

func (e *Encoder) writeIntArray(tag structures.Tag) error {
	vals, _ := tag.AsIntArray()
	if err := e.writeCount(len(vals)); err != nil {
		return err
	}
	for i, v := range vals {
		if err := writeI32(e.w, v, e.order); err != nil {
			return wrapEnc(fmt.Sprintf("write int array element %d", i), err)
		}
	}
	return nil
}

func (e *Encoder) writeLongArray(tag structures.Tag) error {
	vals, _ := tag.AsLongArray()
	if err := e.writeCount(len(vals)); err != nil {
		return err
	}
	for i, v := range vals {
		if err := writeI64(e.w, v, e.order); err != nil {
			return wrapEnc(fmt.Sprintf("write long array element %d", i), err)
		}
	}
	return nil
}

func (e *Encoder) writeList(tag structures.Tag) error {
	elemKind := tag.ElementKind()
	if err := e.writeKind(elemKind); err != nil {
		return wrapEnc("write list element kind", err)
	}
	elems := tag.ListElements()
	if err := e.writeCount(len(elems)); err != nil {
		return err
	}
	for i, elem := range elems {
		if err := e.writePayload(elem); err != nil {
			return wrapEnc(fmt.Sprintf("write list element %d", i), err)
		}
	}
	return nil
}

func (e *Encoder) writeCompound(tag structures.Tag) error {
	var firstErr error
	tag.CompoundEach(func(key string, val structures.Tag) bool {
		if err := e.writeKind(val.Kind()); err != nil {
			firstErr = wrapEnc(fmt.Sprintf("write compound entry %q id", key), err)
			return false
		}
		if err := writeWireString(e.w, key, e.order); err != nil {
			firstErr = wrapEnc(fmt.Sprintf("write compound entry %q name", key), err)
			return false
		}
		if err := e.writePayload(val); err != nil {
			firstErr = wrapEnc(fmt.Sprintf("write compound entry %q", key), err)
			return false
		}
		return true
	})
	if firstErr != nil {
		return firstErr
	}
	return wrapEnc("write compound terminator", e.writeKind(structures.KindEnd))
}
