package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/philhofer/fwd"

	"github.com/scigolib/nbt/internal/structures"
	"github.com/scigolib/nbt/internal/utils"
)

// Decoder reads a Tag tree from the NBT binary wire format. Its zero value
// is not usable; construct one with NewDecoder.
type Decoder struct {
	r        *fwd.Reader
	order    binary.ByteOrder
	maxDepth int
	maxBytes int64
	depth    int
	read     int64
}

// DecoderOption configures a Decoder built by NewDecoder.
type DecoderOption func(*Decoder)

// WithByteOrder selects the wire byte order: binary.BigEndian for Java
// edition (the default), binary.LittleEndian for Bedrock edition.
func WithByteOrder(order binary.ByteOrder) DecoderOption {
	return func(d *Decoder) { d.order = order }
}

// WithMaxDepth overrides utils.DefaultMaxDepth.
func WithMaxDepth(depth int) DecoderOption {
	return func(d *Decoder) { d.maxDepth = depth }
}

// WithMaxBytes caps the total number of bytes (tag ids, names, and payloads)
// the Decoder may consume over its lifetime. Zero (the default) means
// unlimited.
func WithMaxBytes(n int64) DecoderOption {
	return func(d *Decoder) { d.maxBytes = n }
}

// NewDecoder returns a Decoder reading from the buffered fwd.Reader r, ready
// to read one root tag. r is read lazily; nothing is consumed until Decode is
// called.
func NewDecoder(r *fwd.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		r:        r,
		order:    binary.BigEndian,
		maxDepth: utils.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads one complete named root tag: a one-byte kind, a name string,
// then the payload. It is the file-format entry point (as opposed to
// network format, which omits the name); see DecodeUnnamed. A root kind
// other than Compound, List, or a lone End byte is rejected.
func (d *Decoder) Decode() (structures.Tag, string, error) {
	kind, err := d.readKind()
	if err != nil {
		return structures.Tag{}, "", d.wrapErr("read root tag id", err)
	}
	if kind == structures.KindEnd {
		return structures.NewEnd(), "", nil
	}
	if kind != structures.KindCompound && kind != structures.KindList {
		return structures.Tag{}, "", d.wrapErr("read root tag id", fmt.Errorf("root must be Compound or List, got %s", kind))
	}
	name, err := d.readName()
	if err != nil {
		return structures.Tag{}, "", d.wrapErr("read root tag name", err)
	}
	tag, err := d.readPayload(kind)
	if err != nil {
		return structures.Tag{}, "", err
	}
	return tag, name, nil
}

// DecodeUnnamed reads one complete tag in network format: a one-byte kind
// followed directly by the payload, with no name string. This is the shape
// used on the play-protocol wire, as opposed to the file/.dat format.
func (d *Decoder) DecodeUnnamed() (structures.Tag, error) {
	kind, err := d.readKind()
	if err != nil {
		return structures.Tag{}, d.wrapErr("read root tag id", err)
	}
	if kind == structures.KindEnd {
		return structures.NewEnd(), nil
	}
	return d.readPayload(kind)
}

func (d *Decoder) wrapErr(context string, err error) error {
	return utils.NewBinaryParseError(context, err, d.read, nil)
}

func (d *Decoder) account(n int64) error {
	d.read += n
	if d.maxBytes > 0 && d.read > d.maxBytes {
		return utils.NewBinaryParseError("account bytes", fmt.Errorf("payload exceeds configured limit of %d bytes", d.maxBytes), d.read, nil)
	}
	return nil
}

func (d *Decoder) pushDepth() error {
	d.depth++
	if d.maxDepth > 0 && d.depth > d.maxDepth {
		return utils.NewBinaryParseError("push depth", fmt.Errorf("nesting exceeds configured maximum of %d", d.maxDepth), d.read, nil)
	}
	return nil
}

func (d *Decoder) popDepth() {
	d.depth--
}

func (d *Decoder) readKind() (structures.Kind, error) {
	if err := d.account(1); err != nil {
		return 0, err
	}
	b, err := readByte(d.r)
	if err != nil {
		return 0, err
	}
	k := structures.Kind(b)
	if !k.Valid() {
		return 0, fmt.Errorf("unknown tag id %d", b)
	}
	return k, nil
}

func (d *Decoder) readName() (string, error) {
	if err := d.account(2); err != nil {
		return "", err
	}
	s, err := readWireString(d.r, d.order)
	if err != nil {
		return "", err
	}
	if err := d.account(int64(len(s))); err != nil {
		return "", err
	}
	return s, nil
}

// readPayload dispatches on kind and reads just the payload, with no
// preceding id byte or name: this is the shape of a List element and of a
// Compound entry's value once its id and name have already been consumed.
func (d *Decoder) readPayload(kind structures.Kind) (structures.Tag, error) {
	switch kind {
	case structures.KindEnd:
		return structures.NewEnd(), nil

	case structures.KindByte:
		if err := d.account(1); err != nil {
			return structures.Tag{}, err
		}
		v, err := readI8(d.r)
		if err != nil {
			return structures.Tag{}, d.wrapErr("read byte payload", err)
		}
		return structures.NewByte(v), nil

	case structures.KindShort:
		if err := d.account(2); err != nil {
			return structures.Tag{}, err
		}
		v, err := readI16(d.r, d.order)
		if err != nil {
			return structures.Tag{}, d.wrapErr("read short payload", err)
		}
		return structures.NewShort(v), nil

	case structures.KindInt:
		if err := d.account(4); err != nil {
			return structures.Tag{}, err
		}
		v, err := readI32(d.r, d.order)
		if err != nil {
			return structures.Tag{}, d.wrapErr("read int payload", err)
		}
		return structures.NewInt(v), nil

	case structures.KindLong:
		if err := d.account(8); err != nil {
			return structures.Tag{}, err
		}
		v, err := readI64(d.r, d.order)
		if err != nil {
			return structures.Tag{}, d.wrapErr("read long payload", err)
		}
		return structures.NewLong(v), nil

	case structures.KindFloat:
		if err := d.account(4); err != nil {
			return structures.Tag{}, err
		}
		v, err := readF32(d.r, d.order)
		if err != nil {
			return structures.Tag{}, d.wrapErr("read float payload", err)
		}
		return structures.NewFloat(v), nil

	case structures.KindDouble:
		if err := d.account(8); err != nil {
			return structures.Tag{}, err
		}
		v, err := readF64(d.r, d.order)
		if err != nil {
			return structures.Tag{}, d.wrapErr("read double payload", err)
		}
		return structures.NewDouble(v), nil

	case structures.KindString:
		return d.readStringTag()

	case structures.KindByteArray:
		return d.readByteArray()

	case structures.KindIntArray:
		return d.readIntArray()

	case structures.KindLongArray:
		return d.readLongArray()

	case structures.KindList:
		return d.readList()

	case structures.KindCompound:
		return d.readCompound()

	default:
		return structures.Tag{}, fmt.Errorf("unhandled tag kind %s", kind)
	}
}

func (d *Decoder) readStringTag() (structures.Tag, error) {
	if err := d.account(2); err != nil {
		return structures.Tag{}, err
	}
	s, err := readWireString(d.r, d.order)
	if err != nil {
		return structures.Tag{}, d.wrapErr("read string payload", err)
	}
	if err := d.account(int64(len(s))); err != nil {
		return structures.Tag{}, err
	}
	tag, err := structures.NewString(s)
	if err != nil {
		return structures.Tag{}, d.wrapErr("read string payload", err)
	}
	return tag, nil
}

func (d *Decoder) readCount() (int, error) {
	if err := d.account(4); err != nil {
		return 0, err
	}
	n, err := readI32(d.r, d.order)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length %d", n)
	}
	return int(n), nil
}

func (d *Decoder) readByteArray() (structures.Tag, error) {
	n, err := d.readCount()
	if err != nil {
		return structures.Tag{}, d.wrapErr("read byte array length", err)
	}
	if err := d.account(int64(n)); err != nil {
		return structures.Tag{}, err
	}
	vals := make([]int8, n)
	for i := range vals {
		v, err := readI8(d.r)
		if err != nil {
			return structures.Tag{}, d.wrapErr(fmt.Sprintf("read byte array element %d", i), err)
		}
		vals[i] = v
	}
	return structures.NewByteArray(vals), nil
}

func (d *Decoder) readIntArray() (structures.Tag, error) {
	n, err := d.readCount()
	if err != nil {
		return structures.Tag{}, d.wrapErr("read int array length", err)
	}
	if err := d.account(int64(n) * 4); err != nil {
		return structures.Tag{}, err
	}
	vals := make([]int32, n)
	for i := range vals {
		v, err := readI32(d.r, d.order)
		if err != nil {
			return structures.Tag{}, d.wrapErr(fmt.Sprintf("read int array element %d", i), err)
		}
		vals[i] = v
	}
	return structures.NewIntArray(vals), nil
}

func (d *Decoder) readLongArray() (structures.Tag, error) {
	n, err := d.readCount()
	if err != nil {
		return structures.Tag{}, d.wrapErr("read long array length", err)
	}
	if err := d.account(int64(n) * 8); err != nil {
		return structures.Tag{}, err
	}
	vals := make([]int64, n)
	for i := range vals {
		v, err := readI64(d.r, d.order)
		if err != nil {
			return structures.Tag{}, d.wrapErr(fmt.Sprintf("read long array element %d", i), err)
		}
		vals[i] = v
	}
	return structures.NewLongArray(vals), nil
}

func (d *Decoder) readList() (structures.Tag, error) {
	if err := d.pushDepth(); err != nil {
		return structures.Tag{}, err
	}
	defer d.popDepth()

	elemKind, err := d.readKind()
	if err != nil {
		return structures.Tag{}, d.wrapErr("read list element kind", err)
	}
	n, err := d.readCount()
	if err != nil {
		return structures.Tag{}, d.wrapErr("read list length", err)
	}

	list := structures.NewList(elemKind)
	for i := 0; i < n; i++ {
		elem, err := d.readPayload(elemKind)
		if err != nil {
			return structures.Tag{}, d.wrapErr(fmt.Sprintf("read list element %d", i), err)
		}
		if err := list.ListAppend(elem); err != nil {
			return structures.Tag{}, d.wrapErr(fmt.Sprintf("append list element %d", i), err)
		}
	}
	return list, nil
}

func (d *Decoder) readCompound() (structures.Tag, error) {
	if err := d.pushDepth(); err != nil {
		return structures.Tag{}, err
	}
	defer d.popDepth()

	c := structures.NewCompound()
	for {
		kind, err := d.readKind()
		if err != nil {
			return structures.Tag{}, d.wrapErr("read compound entry kind", err)
		}
		if kind == structures.KindEnd {
			break
		}
		name, err := d.readName()
		if err != nil {
			return structures.Tag{}, d.wrapErr("read compound entry name", err)
		}
		val, err := d.readPayload(kind)
		if err != nil {
			return structures.Tag{}, d.wrapErr(fmt.Sprintf("read compound entry %q", name), err)
		}
		if err := c.CompoundPutNew(name, val); err != nil {
			return structures.Tag{}, d.wrapErr(fmt.Sprintf("insert compound entry %q", name), err)
		}
	}
	return c, nil
}
