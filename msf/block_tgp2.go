package msf

import (
	"fmt"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

// paramTypeList is the TGP2 discriminant value that carries an
// inline list of u16 selection items alongside its name.
const paramTypeList = 9

// TGP2Block lists tag parameters: each has a type discriminant, a
// name, and — for the list discriminant — an ordered set of u16
// selection items, per spec.md §4.3.
type TGP2Block struct {
	Params []Param
}

// Param is one TGP2 entry.
type Param struct {
	Type  uint8
	Name  string
	Items []uint16 // only meaningful when Type == 9
}

func parseTGP2(data []byte, ord byteorder.Order, enc byteorder.TextEncoding) (Block, error) {
	if len(data) < 4 {
		return nil, errs.ErrTruncated
	}
	count := ord.Uint16(data[0:2])

	offsets := make([]uint32, count)
	pos := 4
	for i := uint16(0); i < count; i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("offset %d: %w", i, errs.ErrTruncated)
		}
		offsets[i] = ord.Uint32(data[pos : pos+4])
		pos += 4
	}

	params := make([]Param, count)
	for i, off := range offsets {
		p := int(off)
		if p+1 > len(data) {
			return nil, fmt.Errorf("param %d: %w", i, errs.ErrTruncated)
		}
		ptype := data[p]
		p++

		var items []uint16
		if ptype == paramTypeList {
			if p+3 > len(data) {
				return nil, fmt.Errorf("param %d list header: %w", i, errs.ErrTruncated)
			}
			p++ // pad byte
			itemCount := ord.Uint16(data[p : p+2])
			p += 2
			items = make([]uint16, itemCount)
			for j := uint16(0); j < itemCount; j++ {
				if p+2 > len(data) {
					return nil, fmt.Errorf("param %d item %d: %w", i, j, errs.ErrTruncated)
				}
				items[j] = ord.Uint16(data[p : p+2])
				p += 2
			}
		}

		name, _, err := readCString(data[p:], ord, enc)
		if err != nil {
			return nil, fmt.Errorf("param %d name: %w", i, err)
		}

		params[i] = Param{Type: ptype, Name: name, Items: items}
	}

	return TGP2Block{Params: params}, nil
}

func (b TGP2Block) Marshal(ord byteorder.Order, enc byteorder.TextEncoding) []byte {
	count := len(b.Params)
	header := make([]byte, alignUp(4+count*4, 4))
	ord.PutUint16(header[0:2], uint16(count))

	var body []byte
	bodyBase := len(header)
	for i, pr := range b.Params {
		offHdr := 4 + i*4
		ord.PutUint32(header[offHdr:offHdr+4], uint32(bodyBase+len(body)))

		rec := []byte{pr.Type}
		if pr.Type == paramTypeList {
			rec = append(rec, 0)
			itemCountBuf := make([]byte, 2)
			ord.PutUint16(itemCountBuf, uint16(len(pr.Items)))
			rec = append(rec, itemCountBuf...)
			for _, item := range pr.Items {
				itemBuf := make([]byte, 2)
				ord.PutUint16(itemBuf, item)
				rec = append(rec, itemBuf...)
			}
		}
		rec = append(rec, encodeCString(pr.Name, ord, enc)...)

		if pad := alignUp(len(rec), 4) - len(rec); pad > 0 {
			rec = append(rec, make([]byte, pad)...)
		}
		body = append(body, rec...)
	}

	return append(header, body...)
}
