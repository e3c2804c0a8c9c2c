package msf

import (
	"unicode/utf16"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

// readCString decodes a NUL-terminated string from data[0:] using
// enc/ord and returns the string plus the number of bytes consumed,
// including the terminator.
func readCString(data []byte, ord byteorder.Order, enc byteorder.TextEncoding) (string, int, error) {
	width := enc.CharWidth()

	switch enc {
	case byteorder.EncodingUTF8:
		for i := 0; i < len(data); i++ {
			if data[i] == 0 {
				return string(data[:i]), i + 1, nil
			}
		}
		return "", 0, errs.ErrTruncated

	case byteorder.EncodingUTF16:
		var units []uint16
		pos := 0
		for pos+width <= len(data) {
			u := ord.Uint16(data[pos : pos+width])
			if u == 0 {
				return string(utf16.Decode(units)), pos + width, nil
			}
			units = append(units, u)
			pos += width
		}
		return "", 0, errs.ErrTruncated

	case byteorder.EncodingUTF32:
		var runes []rune
		pos := 0
		for pos+width <= len(data) {
			r := ord.Uint32(data[pos : pos+width])
			if r == 0 {
				return string(runes), pos + width, nil
			}
			runes = append(runes, rune(r))
			pos += width
		}
		return "", 0, errs.ErrTruncated

	default:
		return "", 0, errs.ErrBadEncoding
	}
}

// encodeCString encodes s plus a terminating NUL code unit using
// enc/ord.
func encodeCString(s string, ord byteorder.Order, enc byteorder.TextEncoding) []byte {
	switch enc {
	case byteorder.EncodingUTF8:
		out := make([]byte, 0, len(s)+1)
		out = append(out, s...)
		out = append(out, 0)
		return out

	case byteorder.EncodingUTF16:
		units := utf16.Encode([]rune(s))
		out := make([]byte, 0, len(units)*2+2)
		for _, u := range units {
			out = ord.AppendUint16(out, u)
		}
		return ord.AppendUint16(out, 0)

	case byteorder.EncodingUTF32:
		out := make([]byte, 0, len(s)*4+4)
		for _, r := range s {
			out = ord.AppendUint32(out, uint32(r))
		}
		return ord.AppendUint32(out, 0)

	default:
		return nil
	}
}

func alignUp(n, align int) int {
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}
