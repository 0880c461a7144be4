package nbt

import (
	"encoding/binary"
	"io"

	"github.com/philhofer/fwd"

	"github.com/scigolib/nbt/internal/codec"
	"github.com/scigolib/nbt/internal/utils"
)

// ByteOrder selects Java (big-endian) or Bedrock (little-endian) wire
// encoding for the binary codec.
type ByteOrder = binary.ByteOrder

// BigEndian is Java edition's wire byte order.
var BigEndian = binary.BigEndian

// LittleEndian is Bedrock edition's wire byte order.
var LittleEndian = binary.LittleEndian

// ReadOptions configures ReadNBT.
type ReadOptions struct {
	Order ByteOrder
	// Network selects network (nameless root) format when true; file
	// format (named root) otherwise.
	Network  bool
	MaxDepth int
	MaxBytes int64
}

// ReadNBT decodes one root tag from r in the binary wire format. The
// returned name is empty when opts.Network is set, since network format
// carries no root name.
func ReadNBT(r io.Reader, opts ReadOptions) (Tag, string, error) {
	order := opts.Order
	if order == nil {
		order = BigEndian
	}
	var decOpts []codec.DecoderOption
	decOpts = append(decOpts, codec.WithByteOrder(order))
	if opts.MaxDepth > 0 {
		decOpts = append(decOpts, codec.WithMaxDepth(opts.MaxDepth))
	}
	if opts.MaxBytes > 0 {
		decOpts = append(decOpts, codec.WithMaxBytes(opts.MaxBytes))
	}
	dec := codec.NewDecoder(fwd.NewReader(r), decOpts...)
	if opts.Network {
		tag, err := dec.DecodeUnnamed()
		return tag, "", err
	}
	return dec.Decode()
}

// WriteOptions configures WriteNBT.
type WriteOptions struct {
	Order ByteOrder
	// Network selects network (nameless root) format when true.
	Network bool
}

// WriteNBT encodes tag (with root name, unless opts.Network is set) to w in
// the binary wire format and flushes the internal buffer.
func WriteNBT(w io.Writer, tag Tag, name string, opts WriteOptions) error {
	order := opts.Order
	if order == nil {
		order = BigEndian
	}
	enc := codec.NewEncoder(fwd.NewWriter(w), codec.WithEncodeByteOrder(order))
	var err error
	if opts.Network {
		err = enc.EncodeUnnamed(tag)
	} else {
		err = enc.Encode(tag, name)
	}
	if err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return utils.NewBufferError("flush encoder", err)
	}
	return nil
}
