package msf

import (
	"fmt"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

// CLR1Block is an ordered sequence of RGBA colors.
type CLR1Block struct {
	Colors []Color
}

// Color is a single RGBA color (4x u8), per spec.md §3.
type Color struct{ R, G, B, A uint8 }

func parseCLR1(data []byte, ord byteorder.Order, _ byteorder.TextEncoding) (Block, error) {
	if len(data) < 4 {
		return nil, errs.ErrTruncated
	}
	count := ord.Uint32(data[0:4])
	colors := make([]Color, 0, count)
	pos := 4
	for i := uint32(0); i < count; i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("color %d: %w", i, errs.ErrTruncated)
		}
		colors = append(colors, Color{R: data[pos], G: data[pos+1], B: data[pos+2], A: data[pos+3]})
		pos += 4
	}
	return CLR1Block{Colors: colors}, nil
}

func (b CLR1Block) Marshal(ord byteorder.Order, _ byteorder.TextEncoding) []byte {
	buf := make([]byte, 4, 4+len(b.Colors)*4)
	ord.PutUint32(buf[0:4], uint32(len(b.Colors)))
	for _, c := range b.Colors {
		buf = append(buf, c.R, c.G, c.B, c.A)
	}
	return buf
}

// ATI2Block is an ordered sequence of attribute descriptors.
type ATI2Block struct {
	Attributes []Attribute
}

// Attribute is (u8, u8, u16, u32), per spec.md §3.
type Attribute struct {
	A, B uint8
	C    uint16
	D    uint32
}

func parseATI2(data []byte, ord byteorder.Order, _ byteorder.TextEncoding) (Block, error) {
	if len(data) < 4 {
		return nil, errs.ErrTruncated
	}
	count := ord.Uint32(data[0:4])
	attrs := make([]Attribute, 0, count)
	pos := 4
	for i := uint32(0); i < count; i++ {
		if pos+8 > len(data) {
			return nil, fmt.Errorf("attribute %d: %w", i, errs.ErrTruncated)
		}
		attrs = append(attrs, Attribute{
			A: data[pos],
			B: data[pos+1],
			C: ord.Uint16(data[pos+2 : pos+4]),
			D: ord.Uint32(data[pos+4 : pos+8]),
		})
		pos += 8
	}
	return ATI2Block{Attributes: attrs}, nil
}

func (b ATI2Block) Marshal(ord byteorder.Order, _ byteorder.TextEncoding) []byte {
	buf := make([]byte, 4, 4+len(b.Attributes)*8)
	ord.PutUint32(buf[0:4], uint32(len(b.Attributes)))
	for _, a := range b.Attributes {
		rec := make([]byte, 8)
		rec[0], rec[1] = a.A, a.B
		ord.PutUint16(rec[2:4], a.C)
		ord.PutUint32(rec[4:8], a.D)
		buf = append(buf, rec...)
	}
	return buf
}

// SYL3Block is an ordered sequence of style records.
type SYL3Block struct {
	Styles []Style
}

// Style is (u32, u32, u32, i32) — the last field is signed, per
// spec.md §3.
type Style struct {
	A, B, C uint32
	D       int32
}

func parseSYL3(data []byte, ord byteorder.Order, _ byteorder.TextEncoding) (Block, error) {
	if len(data) < 4 {
		return nil, errs.ErrTruncated
	}
	count := ord.Uint32(data[0:4])
	styles := make([]Style, 0, count)
	pos := 4
	for i := uint32(0); i < count; i++ {
		if pos+16 > len(data) {
			return nil, fmt.Errorf("style %d: %w", i, errs.ErrTruncated)
		}
		styles = append(styles, Style{
			A: ord.Uint32(data[pos : pos+4]),
			B: ord.Uint32(data[pos+4 : pos+8]),
			C: ord.Uint32(data[pos+8 : pos+12]),
			D: int32(ord.Uint32(data[pos+12 : pos+16])),
		})
		pos += 16
	}
	return SYL3Block{Styles: styles}, nil
}

func (b SYL3Block) Marshal(ord byteorder.Order, _ byteorder.TextEncoding) []byte {
	buf := make([]byte, 4, 4+len(b.Styles)*16)
	ord.PutUint32(buf[0:4], uint32(len(b.Styles)))
	for _, s := range b.Styles {
		rec := make([]byte, 16)
		ord.PutUint32(rec[0:4], s.A)
		ord.PutUint32(rec[4:8], s.B)
		ord.PutUint32(rec[8:12], s.C)
		ord.PutUint32(rec[12:16], uint32(s.D))
		buf = append(buf, rec...)
	}
	return buf
}
