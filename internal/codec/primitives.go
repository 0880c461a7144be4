// Package codec implements the NBT binary wire format: reading and writing
// a Tag tree as the length-prefixed, tag-id-tagged byte stream described by
// the Minecraft NBT format, in both Java (big-endian) and Bedrock
// (little-endian) byte orders.
package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/philhofer/fwd"

	"github.com/scigolib/nbt/internal/utils"
)

// readByte, readI16, ... do no byte accounting of their own: the Decoder
// calls account before each read, so a budget violation is reported
// before any short read confuses the caller with an unrelated io error.

func readByte(r *fwd.Reader) (byte, error) {
	return r.ReadByte()
}

func readI8(r *fwd.Reader) (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

func readFixed(r *fwd.Reader, n int) ([]byte, error) {
	buf := utils.GetScratch(n)
	defer utils.ReleaseScratch(buf)
	if _, err := r.ReadFull(buf); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, buf)
	return out, nil
}

func readI16(r *fwd.Reader, order binary.ByteOrder) (int16, error) {
	buf, err := readFixed(r, 2)
	if err != nil {
		return 0, err
	}
	return int16(order.Uint16(buf)), nil
}

func readI32(r *fwd.Reader, order binary.ByteOrder) (int32, error) {
	buf, err := readFixed(r, 4)
	if err != nil {
		return 0, err
	}
	return int32(order.Uint32(buf)), nil
}

func readI64(r *fwd.Reader, order binary.ByteOrder) (int64, error) {
	buf, err := readFixed(r, 8)
	if err != nil {
		return 0, err
	}
	return int64(order.Uint64(buf)), nil
}

func readF32(r *fwd.Reader, order binary.ByteOrder) (float32, error) {
	buf, err := readFixed(r, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(order.Uint32(buf)), nil
}

func readF64(r *fwd.Reader, order binary.ByteOrder) (float64, error) {
	buf, err := readFixed(r, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(order.Uint64(buf)), nil
}

// readWireString reads the 16-bit-length-prefixed byte payload used for
// both a String tag's value and a named tag's name. The payload is kept as
// raw bytes; this module makes no claim about Java's modified UTF-8 and
// treats the string as an opaque byte sequence, same as Tag.AsString.
func readWireString(r *fwd.Reader, order binary.ByteOrder) (string, error) {
	n, err := readI16(r, order)
	if err != nil {
		return "", err
	}
	length := int(uint16(n))
	if length == 0 {
		return "", nil
	}
	buf := make([]byte, length)
	if _, err := r.ReadFull(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeI8(w *fwd.Writer, v int8) error {
	return w.WriteByte(byte(v))
}

func writeI16(w *fwd.Writer, v int16, order binary.ByteOrder) error {
	var buf [2]byte
	order.PutUint16(buf[:], uint16(v))
	_, err := w.Write(buf[:])
	return err
}

func writeI32(w *fwd.Writer, v int32, order binary.ByteOrder) error {
	var buf [4]byte
	order.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

func writeI64(w *fwd.Writer, v int64, order binary.ByteOrder) error {
	var buf [8]byte
	order.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

func writeF32(w *fwd.Writer, v float32, order binary.ByteOrder) error {
	var buf [4]byte
	order.PutUint32(buf[:], math.Float32bits(v))
	_, err := w.Write(buf[:])
	return err
}

func writeF64(w *fwd.Writer, v float64, order binary.ByteOrder) error {
	var buf [8]byte
	order.PutUint64(buf[:], math.Float64bits(v))
	_, err := w.Write(buf[:])
	return err
}

// writeWireString writes s with its 16-bit length prefix. Callers must
// already have checked len(s) against utils.MaxStringLen; this is enforced
// by structures.NewString and checked again defensively here.
func writeWireString(w *fwd.Writer, s string, order binary.ByteOrder) error {
	if len(s) > utils.MaxStringLen {
		return utils.NewEncodingError("write string", fmt.Errorf("payload of %d bytes exceeds the 65535-byte wire limit", len(s)))
	}
	if err := writeI16(w, int16(uint16(len(s))), order); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	_, err := w.WriteString(s)
	return err
}
