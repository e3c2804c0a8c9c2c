package msf

import (
	"fmt"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

// NameListEntry is one named, u16-indexed record shared by the TGG2
// (tag groups) and TAG2 (tags) blocks, per spec.md §4.3.
type NameListEntry struct {
	Name  string
	Items []uint16
}

// TGG2Block lists tag groups, each naming its member tag indices.
type TGG2Block struct{ Entries []NameListEntry }

// TAG2Block lists tags, each naming its member parameter indices.
type TAG2Block struct{ Entries []NameListEntry }

func parseNameList(data []byte, ord byteorder.Order, enc byteorder.TextEncoding) ([]NameListEntry, error) {
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

	entries := make([]NameListEntry, count)
	for i, off := range offsets {
		p := int(off)
		if p+2 > len(data) {
			return nil, fmt.Errorf("record %d: %w", i, errs.ErrTruncated)
		}
		itemCount := ord.Uint16(data[p : p+2])
		p += 2
		items := make([]uint16, itemCount)
		for j := uint16(0); j < itemCount; j++ {
			if p+2 > len(data) {
				return nil, fmt.Errorf("record %d item %d: %w", i, j, errs.ErrTruncated)
			}
			items[j] = ord.Uint16(data[p : p+2])
			p += 2
		}
		name, n, err := readCString(data[p:], ord, enc)
		if err != nil {
			return nil, fmt.Errorf("record %d name: %w", i, err)
		}
		p += n
		entries[i] = NameListEntry{Name: name, Items: items}
	}

	return entries, nil
}

func marshalNameList(entries []NameListEntry, ord byteorder.Order, enc byteorder.TextEncoding) []byte {
	count := len(entries)
	header := make([]byte, alignUp(4+count*4, 4))
	ord.PutUint16(header[0:2], uint16(count))

	var body []byte
	bodyBase := len(header)
	for i, e := range entries {
		offHdr := 4 + i*4
		ord.PutUint32(header[offHdr:offHdr+4], uint32(bodyBase+len(body)))

		rec := make([]byte, 2)
		ord.PutUint16(rec[0:2], uint16(len(e.Items)))
		for _, item := range e.Items {
			itemBuf := make([]byte, 2)
			ord.PutUint16(itemBuf, item)
			rec = append(rec, itemBuf...)
		}
		rec = append(rec, encodeCString(e.Name, ord, enc)...)

		if pad := alignUp(len(rec), 4) - len(rec); pad > 0 {
			rec = append(rec, make([]byte, pad)...)
		}
		body = append(body, rec...)
	}

	return append(header, body...)
}

func parseTGG2(data []byte, ord byteorder.Order, enc byteorder.TextEncoding) (Block, error) {
	entries, err := parseNameList(data, ord, enc)
	if err != nil {
		return nil, err
	}
	return TGG2Block{Entries: entries}, nil
}

func (b TGG2Block) Marshal(ord byteorder.Order, enc byteorder.TextEncoding) []byte {
	return marshalNameList(b.Entries, ord, enc)
}

func parseTAG2(data []byte, ord byteorder.Order, enc byteorder.TextEncoding) (Block, error) {
	entries, err := parseNameList(data, ord, enc)
	if err != nil {
		return nil, err
	}
	return TAG2Block{Entries: entries}, nil
}

func (b TAG2Block) Marshal(ord byteorder.Order, enc byteorder.TextEncoding) []byte {
	return marshalNameList(b.Entries, ord, enc)
}
