// Package msf implements the shared header, block-table framework,
// and per-tag block codecs for the three MSF file kinds (Project,
// Standard, Flow), per spec.md §4.2/§4.3.
package msf

import (
	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

// Kind identifies which of the three MSF file families a File is.
type Kind uint8

const (
	KindProject Kind = iota
	KindStandard
	KindFlow
)

const (
	magicProject  = "MsgPrjBn"
	magicStandard = "MsgStdBn"
	magicFlow     = "MsgFlwBn"

	headerSize       = 32
	blockHeaderSize  = 16
	blockAlignment   = 16
	padFillByte      = 0xAB
	supportedVersion = 3
)

func (k Kind) magic() string {
	switch k {
	case KindProject:
		return magicProject
	case KindStandard:
		return magicStandard
	case KindFlow:
		return magicFlow
	default:
		return ""
	}
}

func kindFromMagic(magic string) (Kind, bool) {
	switch magic {
	case magicProject:
		return KindProject, true
	case magicStandard:
		return KindStandard, true
	case magicFlow:
		return KindFlow, true
	default:
		return 0, false
	}
}

// header is the shared 32-byte MSF header, parsed once per file and
// re-emitted with the block-table-derived block count and final
// file size patched back in.
type header struct {
	magic     string
	order     byteorder.Order
	encoding  byteorder.TextEncoding
	blockCount uint16
}

func parseHeader(data []byte) (header, error) {
	if len(data) < headerSize {
		return header{}, errs.ErrTruncated
	}

	magic := string(data[0:8])
	if _, ok := kindFromMagic(magic); !ok {
		return header{}, errs.ErrBadMagic
	}

	ord, err := byteorder.FromBOM([2]byte(data[8:10]))
	if err != nil {
		return header{}, err
	}

	encCode := data[12]
	enc, err := byteorder.FromEncodingCode(encCode)
	if err != nil {
		return header{}, err
	}

	version := data[13]
	if version != supportedVersion {
		return header{}, errs.ErrBadVersion
	}

	blockCount := ord.Uint16(data[14:16])

	return header{magic: magic, order: ord, encoding: enc, blockCount: blockCount}, nil
}

// writeHeader writes a placeholder header (file size left zero) and
// returns the 32-byte buffer; callers patch offset 18 once the final
// size is known.
func writeHeader(magic string, ord byteorder.Order, enc byteorder.TextEncoding, blockCount uint16) []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:8], magic)
	bom := ord.BOM()
	buf[8], buf[9] = bom[0], bom[1]
	buf[12] = byte(enc)
	buf[13] = supportedVersion
	ord.PutUint16(buf[14:16], blockCount)
	// buf[18:22] (file size) patched by caller once total size is known.
	return buf
}
