package msf

import (
	"fmt"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

var dispatchTables = map[Kind]map[Tag]parseFunc{
	KindProject: {
		TagCLR1: parseCLR1,
		TagCLB1: parseHashTable,
		TagATI2: parseATI2,
		TagALB1: parseHashTable,
		TagALI2: parseALI2,
		TagTGG2: parseTGG2,
		TagTAG2: parseTAG2,
		TagTGP2: parseTGP2,
		TagTGL2: parseTGL2,
		TagSYL3: parseSYL3,
		TagSLB1: parseHashTable,
		TagCTI1: parseCTI1,
	},
	KindStandard: {
		TagLBL1: parseHashTable,
		TagATR1: parseOpaque,
		TagTXT2: parseTXT2,
	},
	KindFlow: {
		TagFLW3: parseOpaque,
		TagFEN1: parseHashTable,
	},
}

// blockEntry pairs a tag with its decoded block, preserving the
// file's on-wire insertion order.
type blockEntry struct {
	tag   Tag
	block Block
}

// File is a parsed MSF file: a kind, a byte order, a text encoding,
// and the ordered sequence of blocks it contains, per spec.md §3.
type File struct {
	Kind     Kind
	Order    byteorder.Order
	Encoding byteorder.TextEncoding

	entries []blockEntry
	index   map[Tag]int
}

// Get returns the block registered under tag, if any.
func (f *File) Get(tag Tag) (Block, bool) {
	i, ok := f.index[tag]
	if !ok {
		return nil, false
	}
	return f.entries[i].block, true
}

// Tags returns the blocks' tags in on-wire order.
func (f *File) Tags() []Tag {
	tags := make([]Tag, len(f.entries))
	for i, e := range f.entries {
		tags[i] = e.tag
	}
	return tags
}

// Set inserts or replaces the block registered under tag. New tags
// are appended to the end of the emission order.
func (f *File) Set(tag Tag, block Block) {
	if i, ok := f.index[tag]; ok {
		f.entries[i].block = block
		return
	}
	f.index[tag] = len(f.entries)
	f.entries = append(f.entries, blockEntry{tag: tag, block: block})
}

func newFile(kind Kind, ord byteorder.Order, enc byteorder.TextEncoding) *File {
	return &File{Kind: kind, Order: ord, Encoding: enc, index: map[Tag]int{}}
}

// NewFile constructs an empty MSF file of the given kind, ready for
// Set calls and Emit.
func NewFile(kind Kind, ord byteorder.Order, enc byteorder.TextEncoding) (*File, error) {
	if kind != KindProject && kind != KindStandard && kind != KindFlow {
		return nil, errs.ErrBadMagic
	}
	return newFile(kind, ord, enc), nil
}

// Parse decodes an MSF file (Project, Standard, or Flow, selected by
// magic) per spec.md §4.2.
func Parse(data []byte) (*File, error) {
	hdr, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	kind, _ := kindFromMagic(hdr.magic)
	table := dispatchTables[kind]

	f := newFile(kind, hdr.order, hdr.encoding)

	pos := headerSize
	for i := uint16(0); i < hdr.blockCount; i++ {
		if pos+blockHeaderSize > len(data) {
			return nil, fmt.Errorf("block %d header: %w", i, errs.ErrTruncated)
		}

		tagBytes := data[pos : pos+4]
		var tag Tag
		copy(tag[:], tagBytes)
		size := hdr.order.Uint32(data[pos+4 : pos+8])
		pos += blockHeaderSize

		if pos+int(size) > len(data) {
			return nil, fmt.Errorf("block %s body: %w", tag, errs.ErrTruncated)
		}
		body := data[pos : pos+int(size)]
		pos += int(size)

		parse, ok := table[tag]
		if !ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrUnknownBlockTag, tag)
		}

		block, err := parse(body, hdr.order, hdr.encoding)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", tag, err)
		}

		f.Set(tag, block)

		if rem := pos % blockAlignment; rem != 0 {
			pos += blockAlignment - rem
		}
	}

	return f, nil
}

// Emit re-serializes f to bytes, writing blocks in their stored
// insertion order and patching the file size, per spec.md §4.2.
func (f *File) Emit() ([]byte, error) {
	buf := writeHeader(f.Kind.magic(), f.Order, f.Encoding, uint16(len(f.entries)))

	for _, e := range f.entries {
		body := e.block.Marshal(f.Order, f.Encoding)

		blkHdr := make([]byte, blockHeaderSize)
		copy(blkHdr[0:4], e.tag[:])
		f.Order.PutUint32(blkHdr[4:8], uint32(len(body)))
		buf = append(buf, blkHdr...)
		buf = append(buf, body...)

		if rem := len(buf) % blockAlignment; rem != 0 {
			pad := make([]byte, blockAlignment-rem)
			for i := range pad {
				pad[i] = padFillByte
			}
			buf = append(buf, pad...)
		}
	}

	f.Order.PutUint32(buf[18:22], uint32(len(buf)))

	return buf, nil
}
