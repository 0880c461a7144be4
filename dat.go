package nbt

import (
	"bytes"
	"io"
	"os"

	"github.com/scigolib/nbt/internal/utils"
)

// DatHeader is the 8-byte prelude a ".dat" file carries ahead of its NBT
// payload: a legacy tool-version marker followed by the payload's byte
// length. The original implementation parses and discards both fields,
// re-deriving the payload length from the stream itself; this one keeps
// them on RootNBT.DatHeader so callers (nbtool's "info" subcommand, for
// instance) can inspect them.
type DatHeader struct {
	ToolVersion   int32
	PayloadLength int32
}

// datLegacyMarker is the fixed marker historically written in the
// tool-version field of a .dat file's prelude.
var datLegacyMarker = [4]byte{0x0A, 0x00, 0x00, 0x00}

// FromDat reads a RootNBT from r in the ".dat" envelope: an 8-byte prelude
// (tool version + payload length, parsed into the returned RootNBT's
// DatHeader) wrapping a standard NBT payload, inside the given compression
// envelope.
func FromDat(r io.Reader, mode CompressionMode, order ByteOrder) (*RootNBT, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, utils.NewFileError("read dat", err)
	}
	payload, err := decompress(raw, mode)
	if err != nil {
		return nil, err
	}
	if len(payload) < 8 {
		return nil, utils.NewFileError("read dat", io.ErrUnexpectedEOF)
	}
	body := payload[8:]
	tag, name, err := ReadNBT(bytes.NewReader(body), ReadOptions{Order: order})
	if err != nil {
		return nil, err
	}
	header := parseDatHeader(payload[:8], order)
	return &RootNBT{tag: tag, rootName: name, DatHeader: header}, nil
}

// parseDatHeader decodes an 8-byte ".dat" prelude (tool version, payload
// length) using order, defaulting to big-endian when order is nil.
func parseDatHeader(prelude []byte, order ByteOrder) *DatHeader {
	if order == nil {
		order = BigEndian
	}
	return &DatHeader{
		ToolVersion:   int32(order.Uint32(prelude[0:4])),
		PayloadLength: int32(order.Uint32(prelude[4:8])),
	}
}

// ToDat writes r to w in the ".dat" envelope, prefixing the encoded NBT
// payload with the legacy marker and its length, then applying mode's
// compression.
func (r *RootNBT) ToDat(w io.Writer, mode CompressionMode, order ByteOrder) error {
	var body bytes.Buffer
	if err := WriteNBT(&body, r.tag, r.rootName, WriteOptions{Order: order}); err != nil {
		return err
	}

	var framed bytes.Buffer
	framed.Write(datLegacyMarker[:])
	var lenBuf [4]byte
	byteOrder := order
	if byteOrder == nil {
		byteOrder = BigEndian
	}
	byteOrder.PutUint32(lenBuf[:], uint32(body.Len()))
	framed.Write(lenBuf[:])
	framed.Write(body.Bytes())

	out, err := compress(framed.Bytes(), mode)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return utils.NewFileError("write dat", err)
	}
	return nil
}

// ReadDatFile opens path, applies decompression (sniffed if mode is
// CompressionNone), and decodes a RootNBT from the .dat envelope.
func ReadDatFile(path string, mode CompressionMode, order ByteOrder) (*RootNBT, error) {
	//nolint:gosec // user-supplied path is the point of a file-format library
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.NewFileError("read dat file", err)
	}
	if mode == CompressionNone {
		mode = sniffCompression(data)
	}
	return FromDat(bytes.NewReader(data), mode, order)
}

// WriteDatFile writes r to path in the .dat envelope.
func WriteDatFile(path string, r *RootNBT, mode CompressionMode, order ByteOrder) error {
	f, err := os.Create(path)
	if err != nil {
		return utils.NewFileError("write dat file", err)
	}
	defer f.Close()
	return r.ToDat(f, mode, order)
}
