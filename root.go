package nbt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scigolib/nbt/internal/snbt"
	"github.com/scigolib/nbt/internal/structures"
	"github.com/scigolib/nbt/internal/utils"
)

// ErrNotImplemented is returned by RootNBT.Path, which this module
// deliberately leaves unimplemented; see DESIGN.md.
var ErrNotImplemented = errors.New("nbt: not implemented")

// Error kinds returned by this package, re-exported from internal/utils so
// callers can match them with errors.As.
type (
	ParseError    = utils.ParseError
	EncodingError = utils.EncodingError
	BufferError   = utils.BufferError
	FileError     = utils.FileError
	DataError     = utils.DataError
)

// RootNBT pairs a root Tag (normally a Compound) with the name the binary
// and SNBT root formats carry alongside it.
type RootNBT struct {
	tag      Tag
	rootName string

	// DatHeader holds the ".dat" envelope's 8-byte prelude when r was read
	// with FromDat/ReadDatFile, or by AutoReadFile from a .dat payload; nil
	// otherwise. The prelude is never required
	// to round-trip byte-for-byte on write: ToDat/WriteDatFile always emit
	// the legacy marker, matching the format's original writer.
	DatHeader *DatHeader
}

// NewRootNBT wraps tag under rootName. If tag is the zero Tag (or any End
// tag), an empty Compound is used instead, so the result is ready to build
// on immediately.
func NewRootNBT(tag Tag, rootName string) *RootNBT {
	if tag.Kind() == structures.KindEnd {
		tag = NewCompound()
	}
	return &RootNBT{tag: tag, rootName: rootName}
}

// Tag returns the wrapped root tag.
func (r *RootNBT) Tag() Tag { return r.tag }

// RootName returns the root tag's name.
func (r *RootNBT) RootName() string { return r.rootName }

// FromNBT reads a RootNBT from r in the binary wire format, inside the
// given compression envelope.
func FromNBT(r io.Reader, mode CompressionMode, order ByteOrder) (*RootNBT, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, utils.NewFileError("read nbt", err)
	}
	payload, err := decompress(raw, mode)
	if err != nil {
		return nil, err
	}
	tag, name, err := ReadNBT(bytes.NewReader(payload), ReadOptions{Order: order})
	if err != nil {
		return nil, err
	}
	return &RootNBT{tag: tag, rootName: name}, nil
}

// ToNBT writes r to w in the binary wire format, inside the given
// compression envelope.
func (r *RootNBT) ToNBT(w io.Writer, mode CompressionMode, order ByteOrder) error {
	var buf bytes.Buffer
	if err := WriteNBT(&buf, r.tag, r.rootName, WriteOptions{Order: order}); err != nil {
		return err
	}
	out, err := compress(buf.Bytes(), mode)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return utils.NewFileError("write nbt", err)
	}
	return nil
}

// FromSNBT parses src as a root SNBT document: an optional "name:" prefix
// followed by one value.
func FromSNBT(src string) (*RootNBT, error) {
	name, tag, err := snbt.NewParser(src).ParseRoot()
	if err != nil {
		return nil, err
	}
	return &RootNBT{tag: tag, rootName: name}, nil
}

// ToSNBT renders r as a root SNBT document, compact or formatted.
func (r *RootNBT) ToSNBT(format bool, indentSize int) (string, error) {
	if !format {
		return snbt.PrintRoot(r.tag, r.rootName), nil
	}
	return snbt.PrintRootFormatted(r.tag, r.rootName, indentSize)
}

// Path is intentionally unimplemented; see DESIGN.md's Open Questions
// section. It always returns ErrNotImplemented.
func (r *RootNBT) Path(path string) (Tag, error) {
	return Tag{}, ErrNotImplemented
}

// --- convenience file helpers ---

// ReadNBTFile opens path, applies decompression (sniffed if mode is
// CompressionNone), and decodes a RootNBT.
func ReadNBTFile(path string, mode CompressionMode, order ByteOrder) (*RootNBT, error) {
	//nolint:gosec // user-supplied path is the point of a file-format library
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.NewFileError("read nbt file", err)
	}
	if mode == CompressionNone {
		mode = sniffCompression(data)
	}
	return FromNBT(bytes.NewReader(data), mode, order)
}

// WriteNBTFile writes r to path in the binary wire format.
func WriteNBTFile(path string, r *RootNBT, mode CompressionMode, order ByteOrder) error {
	f, err := os.Create(path)
	if err != nil {
		return utils.NewFileError("write nbt file", err)
	}
	defer f.Close()
	return r.ToNBT(f, mode, order)
}

// AutoReadFile reads path as NBT data of unknown shape: compression is
// sniffed from the leading bytes, then the ".dat" envelope, plain binary,
// and SNBT text are each attempted in turn, trying both Java (big-endian)
// and Bedrock (little-endian) byte order for the two binary shapes. It
// exists for tools like nbtool that accept arbitrary input without the
// caller already knowing the file's shape; library callers who already know
// their input's shape should call FromNBT/FromDat/FromSNBT directly.
func AutoReadFile(path string) (*RootNBT, error) {
	//nolint:gosec // user-supplied path is the point of a file-format library
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.NewFileError("auto-detect file", err)
	}

	mode := sniffCompression(data)
	payload, err := decompress(data, mode)
	if err != nil {
		return nil, err
	}

	// A payload that carries the legacy ".dat" marker would also happen to
	// decode as a (spurious, empty) plain-NBT Compound root: 0x0A is
	// KindCompound's wire id, and the marker's trailing zero bytes look
	// like a zero-length name followed by an immediate End tag. Check for
	// the marker first and prefer the ".dat" interpretation whenever it
	// matches, instead of letting the ambiguity resolve to whichever shape
	// happens to be tried first.
	if root, ok := tryAutoReadDat(payload); ok {
		return root, nil
	}
	if root, ok := tryAutoReadPlain(payload); ok {
		return root, nil
	}
	if root, err := FromSNBT(string(payload)); err == nil {
		return root, nil
	}

	return nil, utils.NewFileError("auto-detect file", fmt.Errorf("could not parse %q as NBT, .dat, or SNBT", path))
}

func tryAutoReadPlain(payload []byte) (*RootNBT, bool) {
	for _, order := range []ByteOrder{BigEndian, LittleEndian} {
		if tag, name, err := ReadNBT(bytes.NewReader(payload), ReadOptions{Order: order}); err == nil {
			return &RootNBT{tag: tag, rootName: name}, true
		}
	}
	return nil, false
}

func tryAutoReadDat(payload []byte) (*RootNBT, bool) {
	if len(payload) < 8 || !bytes.Equal(payload[:4], datLegacyMarker[:]) {
		return nil, false
	}
	for _, order := range []ByteOrder{BigEndian, LittleEndian} {
		if tag, name, err := ReadNBT(bytes.NewReader(payload[8:]), ReadOptions{Order: order}); err == nil {
			return &RootNBT{tag: tag, rootName: name, DatHeader: parseDatHeader(payload[:8], order)}, true
		}
	}
	return nil, false
}

// ReadSNBTFile reads path as a root SNBT document.
func ReadSNBTFile(path string) (*RootNBT, error) {
	//nolint:gosec // user-supplied path is the point of a file-format library
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.NewFileError("read snbt file", err)
	}
	return FromSNBT(string(data))
}

// WriteSNBTFile writes r to path as a root SNBT document.
func WriteSNBTFile(path string, r *RootNBT, format bool, indentSize int) error {
	text, err := r.ToSNBT(format, indentSize)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
