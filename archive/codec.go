package archive

import (
	"fmt"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

const (
	headerSize      = 28
	headerLength    = 0x001C
	version         = 0x01000000
	fileTableOffset = 0x001C
	entrySize       = 12
	dataAlignment   = 32
	dirFlag         = 0x01000000
)

var magic = [4]byte{'d', 'a', 'r', 'c'}

// Parse decodes a `darc` archive, per spec.md §4.1.
func Parse(data []byte) (*Tree, error) {
	if len(data) < headerSize {
		return nil, errs.ErrTruncated
	}
	if [4]byte(data[0:4]) != magic {
		return nil, fmt.Errorf("%w: expected %q", errs.ErrBadMagic, magic)
	}

	ord, err := byteorder.FromBOM([2]byte(data[4:6]))
	if err != nil {
		return nil, err
	}

	if ord.Uint16(data[6:8]) != headerLength {
		return nil, fmt.Errorf("%w: bad header length", errs.ErrTruncated)
	}
	if ord.Uint32(data[8:12]) != version {
		return nil, fmt.Errorf("%w: archive version", errs.ErrBadVersion)
	}
	fileTabOff := ord.Uint32(data[16:20])
	fileTabLen := ord.Uint32(data[20:24])

	tableStart := int(fileTabOff)
	if tableStart+entrySize > len(data) {
		return nil, errs.ErrTruncated
	}

	readEntry := func(i int) (nameField, second, third uint32, err error) {
		off := tableStart + i*entrySize
		if off+entrySize > len(data) {
			return 0, 0, 0, errs.ErrTruncated
		}
		return ord.Uint32(data[off : off+4]), ord.Uint32(data[off+4 : off+8]), ord.Uint32(data[off+8 : off+12]), nil
	}

	_, _, rootEnd, err := readEntry(0)
	if err != nil {
		return nil, err
	}
	entryCount := int(rootEnd)
	if entryCount < 1 {
		return nil, fmt.Errorf("%w: archive root end-index", errs.ErrTruncated)
	}

	nameTableBase := tableStart + entryCount*entrySize
	if nameTableBase > len(data) {
		return nil, errs.ErrTruncated
	}
	// fileTabLen covers both the entry table and the name table; the
	// per-entry readName below bounds-checks against len(data)
	// directly, so the table length itself is only used for sanity.
	if fileTabLen < uint32(entryCount*entrySize) {
		return nil, fmt.Errorf("%w: file-table length shorter than entry table", errs.ErrTruncated)
	}

	readName := func(nameOffset uint32) (string, error) {
		pos := nameTableBase + int(nameOffset)
		if pos > len(data) {
			return "", errs.ErrTruncated
		}
		width := 2
		var sb []uint16
		for pos+width <= len(data) {
			u := ord.Uint16(data[pos : pos+2])
			if u == 0 {
				break
			}
			sb = append(sb, u)
			pos += width
		}
		return string(utf16Decode(sb)), nil
	}

	t := NewTree()

	type frame struct {
		dirID EntryID
		end   int
	}
	stack := []frame{{dirID: RootID, end: entryCount}}

	for i := 1; i < entryCount; i++ {
		for len(stack) > 0 && stack[len(stack)-1].end == i {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return nil, fmt.Errorf("%w: file-table underflow at entry %d", errs.ErrTruncated, i)
		}

		nameField, second, third, err := readEntry(i)
		if err != nil {
			return nil, err
		}

		isDir := nameField&dirFlag != 0
		nameOffset := nameField &^ dirFlag

		name, err := readName(nameOffset)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		parentDir := stack[len(stack)-1].dirID

		if isDir {
			id := t.addChild(parentDir, node{name: name, isDir: true})
			stack = append(stack, frame{dirID: id, end: int(third)})
		} else {
			fileOff := int(second)
			fileLen := int(third)
			if fileOff+fileLen > len(data) {
				return nil, fmt.Errorf("entry %d (%s): %w", i, name, errs.ErrTruncated)
			}
			payload := make([]byte, fileLen)
			copy(payload, data[fileOff:fileOff+fileLen])
			t.addChild(parentDir, node{name: name, isDir: false, data: payload})
		}
	}

	return t, nil
}

// Emit encodes t as a `darc` archive using little-endian byte order,
// per spec.md §4.1.
func Emit(t *Tree) ([]byte, error) {
	return EmitOrder(t, byteorder.LittleEndian)
}

// EmitOrder encodes t using the given byte order.
func EmitOrder(t *Tree, ord byteorder.Order) ([]byte, error) {
	buf := make([]byte, headerSize)
	copy(buf[0:4], magic[:])
	bom := ord.BOM()
	buf[4], buf[5] = bom[0], bom[1]
	ord.PutUint16(buf[6:8], headerLength)
	ord.PutUint32(buf[8:12], version)
	ord.PutUint32(buf[16:20], fileTableOffset)

	index := map[EntryID]int{}
	order := make([]Entry, 0)
	for e := range t.Preorder() {
		index[e.ID()] = len(order)
		order = append(order, e)
	}

	entryTableStart := len(buf)
	nameTable := make([]byte, 0, 256)

	type patch struct {
		nameFieldOff, secondOff, thirdOff int
	}
	patches := make([]patch, len(order))

	for i, e := range order {
		nameOff := uint32(len(nameTable))
		nameTable = append(nameTable, encodeName(e.Name(), ord)...)

		nameField := nameOff
		if e.IsDir() {
			nameField |= dirFlag
		}

		var second, third uint32
		if e.IsDir() {
			parentIdx := 0
			if p, ok := e.Parent(); ok {
				parentIdx = index[p.ID()]
			}
			second = uint32(parentIdx)
			third = uint32(i + e.subtreeSize())
		} else {
			data, _ := e.Data()
			third = uint32(len(data))
		}

		entryOff := len(buf)
		patches[i] = patch{nameFieldOff: entryOff, secondOff: entryOff + 4, thirdOff: entryOff + 8}
		buf = append(buf, make([]byte, entrySize)...)
		ord.PutUint32(buf[entryOff:entryOff+4], nameField)
		ord.PutUint32(buf[entryOff+4:entryOff+8], second)
		ord.PutUint32(buf[entryOff+8:entryOff+12], third)
	}

	buf = append(buf, nameTable...)

	fileTableLen := uint32(len(buf) - entryTableStart)
	ord.PutUint32(buf[20:24], fileTableLen)

	align(&buf, dataAlignment)
	fileDataOff := len(buf)
	ord.PutUint32(buf[24:28], uint32(fileDataOff))

	for e := range breadthEmitOrder(t) {
		if e.IsDir() {
			continue
		}
		align(&buf, dataAlignment)
		data, _ := e.Data()
		pos := len(buf)
		buf = append(buf, data...)

		i := index[e.ID()]
		ord.PutUint32(buf[patches[i].secondOff:patches[i].secondOff+4], uint32(pos))
		ord.PutUint32(buf[patches[i].thirdOff:patches[i].thirdOff+4], uint32(len(data)))
	}

	ord.PutUint32(buf[12:16], uint32(len(buf)))

	return buf, nil
}

func align(buf *[]byte, n int) {
	extra := len(*buf) % n
	if extra > 0 {
		*buf = append(*buf, make([]byte, n-extra)...)
	}
}

func encodeName(name string, ord byteorder.Order) []byte {
	units := utf16Encode(name)
	out := make([]byte, 0, len(units)*2+2)
	for _, u := range units {
		out = ord.AppendUint16(out, u)
	}
	out = ord.AppendUint16(out, 0)
	return out
}

// breadthEmitOrder implements spec.md §4.1's "breadth-emit" order:
// for each directory, recurse into sub-directories first, then emit
// its own files, so a directory's files cluster together.
func breadthEmitOrder(t *Tree) func(func(Entry) bool) {
	return func(yield func(Entry) bool) {
		var walk func(id EntryID) bool
		walk = func(id EntryID) bool {
			e := t.Entry(id)
			if e.IsDir() {
				for _, c := range e.n().children {
					if t.Entry(c).IsDir() {
						if !walk(c) {
							return false
						}
					}
				}
				for _, c := range e.n().children {
					if !t.Entry(c).IsDir() {
						if !walk(c) {
							return false
						}
					}
				}
			}
			return yield(e)
		}
		walk(RootID)
	}
}
