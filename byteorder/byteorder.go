// Package byteorder carries a per-file endianness as a value: a
// pack/unpack routine for fixed-width integers, a text encoding
// label, and the matching byte-order mark.
//
// This extends the pattern in the teacher's endian package (which
// combines binary.ByteOrder and binary.AppendByteOrder into a single
// EndianEngine) by pairing the numeric byte order with the wide-char
// text encoding and BOM the container/MSF formats also key off of.
// All values are immutable and safe for concurrent use.
package byteorder

import (
	"encoding/binary"

	"github.com/msgstudio/lms/errs"
)

// Engine combines binary.ByteOrder and binary.AppendByteOrder,
// exactly as the teacher's endian.EndianEngine does, so both
// binary.LittleEndian and binary.BigEndian satisfy it directly.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Order is a value describing one of the two supported byte orders,
// along with the wide-char encoding suffix and BOM bytes that go with
// it in the on-wire formats this module parses.
type Order struct {
	engine Engine
	suffix string // "le" or "be", used to build utf-16-<suffix>/utf-32-<suffix> labels
	bom    [2]byte
}

// LittleEndian is the little-endian Order: BOM FF FE, suffix "le".
var LittleEndian = Order{engine: binary.LittleEndian, suffix: "le", bom: [2]byte{0xFF, 0xFE}}

// BigEndian is the big-endian Order: BOM FE FF, suffix "be".
var BigEndian = Order{engine: binary.BigEndian, suffix: "be", bom: [2]byte{0xFE, 0xFF}}

// FromBOM classifies a 2-byte BOM into an Order, or returns
// errs.ErrBadBOM if it is neither FF FE nor FE FF.
func FromBOM(bom [2]byte) (Order, error) {
	switch bom {
	case LittleEndian.bom:
		return LittleEndian, nil
	case BigEndian.bom:
		return BigEndian, nil
	default:
		return Order{}, errs.ErrBadBOM
	}
}

// BOM returns the two-byte byte-order mark for this Order.
func (o Order) BOM() [2]byte { return o.bom }

// IsLittle returns whether this is the little-endian Order.
func (o Order) IsLittle() bool { return o.bom == LittleEndian.bom }

// WideCharSuffix returns "le" or "be", used to build encoding labels
// like "utf-16-le".
func (o Order) WideCharSuffix() string { return o.suffix }

// Uint16 decodes a uint16 at ord's byte order.
func (o Order) Uint16(b []byte) uint16 { return o.engine.Uint16(b) }

// Uint32 decodes a uint32 at ord's byte order.
func (o Order) Uint32(b []byte) uint32 { return o.engine.Uint32(b) }

// Uint64 decodes a uint64 at ord's byte order.
func (o Order) Uint64(b []byte) uint64 { return o.engine.Uint64(b) }

// PutUint16 encodes v into b at ord's byte order.
func (o Order) PutUint16(b []byte, v uint16) { o.engine.PutUint16(b, v) }

// PutUint32 encodes v into b at ord's byte order.
func (o Order) PutUint32(b []byte, v uint32) { o.engine.PutUint32(b, v) }

// PutUint64 encodes v into b at ord's byte order.
func (o Order) PutUint64(b []byte, v uint64) { o.engine.PutUint64(b, v) }

// AppendUint16 appends v to b at ord's byte order.
func (o Order) AppendUint16(b []byte, v uint16) []byte { return o.engine.AppendUint16(b, v) }

// AppendUint32 appends v to b at ord's byte order.
func (o Order) AppendUint32(b []byte, v uint32) []byte { return o.engine.AppendUint32(b, v) }

// AppendUint64 appends v to b at ord's byte order.
func (o Order) AppendUint64(b []byte, v uint64) []byte { return o.engine.AppendUint64(b, v) }

// TextEncoding names one of the three text encodings an MSF header
// can declare, paired with the file's byte Order to fully determine
// how wide characters are packed.
type TextEncoding uint8

const (
	EncodingUTF8 TextEncoding = 0
	EncodingUTF16 TextEncoding = 1
	EncodingUTF32 TextEncoding = 2
)

// Label returns the Go-importable-style encoding label for enc under
// the given byte order, e.g. "utf-16-le".
func (enc TextEncoding) Label(ord Order) (string, error) {
	switch enc {
	case EncodingUTF8:
		return "utf-8", nil
	case EncodingUTF16:
		return "utf-16-" + ord.suffix, nil
	case EncodingUTF32:
		return "utf-32-" + ord.suffix, nil
	default:
		return "", errs.ErrBadEncoding
	}
}

// CharWidth returns the number of bytes per code unit for enc: 1 for
// UTF-8, 2 for UTF-16, 4 for UTF-32.
func (enc TextEncoding) CharWidth() int {
	switch enc {
	case EncodingUTF16:
		return 2
	case EncodingUTF32:
		return 4
	default:
		return 1
	}
}

// FromEncodingCode validates a raw header encoding code (0/1/2) and
// returns the corresponding TextEncoding.
func FromEncodingCode(code uint8) (TextEncoding, error) {
	switch code {
	case 0, 1, 2:
		return TextEncoding(code), nil
	default:
		return 0, errs.ErrBadEncoding
	}
}
