package msf

import (
	"fmt"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

// TGL2Block is a flat offset table of NUL-terminated strings, per
// spec.md §4.3.
type TGL2Block struct {
	Strings []string
}

func parseTGL2(data []byte, ord byteorder.Order, enc byteorder.TextEncoding) (Block, error) {
	if len(data) < 4 {
		return nil, errs.ErrTruncated
	}
	count := ord.Uint16(data[0:2])

	strs := make([]string, count)
	pos := 4
	for i := uint16(0); i < count; i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("offset %d: %w", i, errs.ErrTruncated)
		}
		off := int(ord.Uint32(data[pos : pos+4]))
		pos += 4

		if off >= len(data) {
			return nil, fmt.Errorf("string %d: %w", i, errs.ErrTruncated)
		}
		s, _, err := readCString(data[off:], ord, enc)
		if err != nil {
			return nil, fmt.Errorf("string %d: %w", i, err)
		}
		strs[i] = s
	}

	return TGL2Block{Strings: strs}, nil
}

func (b TGL2Block) Marshal(ord byteorder.Order, enc byteorder.TextEncoding) []byte {
	count := len(b.Strings)
	header := make([]byte, alignUp(4+count*4, 4))
	ord.PutUint16(header[0:2], uint16(count))

	var body []byte
	bodyBase := len(header)
	for i, s := range b.Strings {
		offHdr := 4 + i*4
		ord.PutUint32(header[offHdr:offHdr+4], uint32(bodyBase+len(body)))
		body = append(body, encodeCString(s, ord, enc)...)
	}

	return append(header, body...)
}

// CTI1Block is a flat offset table of filenames, per spec.md §4.3.
type CTI1Block struct {
	Filenames []string
}

func parseCTI1(data []byte, ord byteorder.Order, enc byteorder.TextEncoding) (Block, error) {
	if len(data) < 4 {
		return nil, errs.ErrTruncated
	}
	count := ord.Uint32(data[0:4])

	names := make([]string, count)
	pos := 4
	for i := uint32(0); i < count; i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("offset %d: %w", i, errs.ErrTruncated)
		}
		off := int(ord.Uint32(data[pos : pos+4]))
		pos += 4

		if off >= len(data) {
			return nil, fmt.Errorf("filename %d: %w", i, errs.ErrTruncated)
		}
		s, _, err := readCString(data[off:], ord, enc)
		if err != nil {
			return nil, fmt.Errorf("filename %d: %w", i, err)
		}
		names[i] = s
	}

	return CTI1Block{Filenames: names}, nil
}

func (b CTI1Block) Marshal(ord byteorder.Order, enc byteorder.TextEncoding) []byte {
	count := len(b.Filenames)
	header := make([]byte, 4+count*4)
	ord.PutUint32(header[0:4], uint32(count))

	var body []byte
	bodyBase := len(header)
	for i, s := range b.Filenames {
		offHdr := 4 + i*4
		ord.PutUint32(header[offHdr:offHdr+4], uint32(bodyBase+len(body)))
		body = append(body, encodeCString(s, ord, enc)...)
	}

	return append(header, body...)
}

// ALI2Block is a nested offset table: each top-level entry is itself
// an offset table of NUL-terminated strings, per spec.md §4.3.
type ALI2Block struct {
	Lists [][]string
}

func parseALI2(data []byte, ord byteorder.Order, enc byteorder.TextEncoding) (Block, error) {
	if len(data) < 4 {
		return nil, errs.ErrTruncated
	}
	numLists := ord.Uint32(data[0:4])

	lists := make([][]string, numLists)
	pos := 4
	for i := uint32(0); i < numLists; i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("list %d offset: %w", i, errs.ErrTruncated)
		}
		listBase := int(ord.Uint32(data[pos : pos+4]))
		pos += 4

		if listBase+4 > len(data) {
			return nil, fmt.Errorf("list %d: %w", i, errs.ErrTruncated)
		}
		itemCount := ord.Uint32(data[listBase : listBase+4])
		items := make([]string, itemCount)
		p := listBase + 4
		for j := uint32(0); j < itemCount; j++ {
			if p+4 > len(data) {
				return nil, fmt.Errorf("list %d item %d offset: %w", i, j, errs.ErrTruncated)
			}
			nameOff := listBase + int(ord.Uint32(data[p:p+4]))
			p += 4

			if nameOff >= len(data) {
				return nil, fmt.Errorf("list %d item %d: %w", i, j, errs.ErrTruncated)
			}
			s, _, err := readCString(data[nameOff:], ord, enc)
			if err != nil {
				return nil, fmt.Errorf("list %d item %d: %w", i, j, err)
			}
			items[j] = s
		}
		lists[i] = items
	}

	return ALI2Block{Lists: lists}, nil
}

func (b ALI2Block) Marshal(ord byteorder.Order, enc byteorder.TextEncoding) []byte {
	numLists := len(b.Lists)
	header := make([]byte, 4+numLists*4)
	ord.PutUint32(header[0:4], uint32(numLists))

	var body []byte
	bodyBase := len(header)
	for i, items := range b.Lists {
		listBase := bodyBase + len(body)
		offHdr := 4 + i*4
		ord.PutUint32(header[offHdr:offHdr+4], uint32(listBase))

		listHeader := make([]byte, 4+len(items)*4)
		ord.PutUint32(listHeader[0:4], uint32(len(items)))

		var names []byte
		namesBase := len(listHeader)
		for j, s := range items {
			offHdr := 4 + j*4
			ord.PutUint32(listHeader[offHdr:offHdr+4], uint32(namesBase+len(names)))
			names = append(names, encodeCString(s, ord, enc)...)
		}

		body = append(body, listHeader...)
		body = append(body, names...)

		if padded := alignUp(len(body), 4); padded > len(body) {
			body = append(body, make([]byte, padded-len(body))...)
		}
	}

	return append(header, body...)
}
