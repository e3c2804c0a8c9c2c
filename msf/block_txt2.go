package msf

import (
	"fmt"
	"unicode/utf16"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

const (
	controlMarker   = 0x000E
	buttonLowByte   = 0xE0
	buttonShorthand = -1 // synthetic Group/Tag for the 0xE0 shorthand
)

// TXT2Block is the ordered sequence of messages in a Standard file,
// per spec.md §4.3.
type TXT2Block struct {
	Messages []Message
}

// Message is plain text interleaved with control records.
type Message struct {
	Parts []MessagePart
}

// MessagePart is either a plain-text run (Control == nil) or a
// control record (Text == "").
type MessagePart struct {
	Text    string
	Control *ControlRecord
}

// ControlRecord is an in-line control-tag record. Group and Tag are
// both -1 for the synthetic record produced by the 0xE0 button-label
// shorthand, in which case Param holds exactly one byte.
type ControlRecord struct {
	Group int32
	Tag   int32
	Param []byte
}

// DisplayText renders m with one U+FFFC object-replacement character
// per control record, per spec.md §4.3.
func (m Message) DisplayText() string {
	var out []rune
	for _, p := range m.Parts {
		if p.Control != nil {
			out = append(out, '￼')
			continue
		}
		out = append(out, []rune(p.Text)...)
	}
	return string(out)
}

func parseTXT2(data []byte, ord byteorder.Order, enc byteorder.TextEncoding) (Block, error) {
	if len(data) < 4 {
		return nil, errs.ErrTruncated
	}
	count := ord.Uint32(data[0:4])

	offsets := make([]uint32, count)
	pos := 4
	for i := uint32(0); i < count; i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("offset %d: %w", i, errs.ErrTruncated)
		}
		offsets[i] = ord.Uint32(data[pos : pos+4])
		pos += 4
	}
	endOfArray := pos

	messages := make([]Message, count)
	for i, off := range offsets {
		msg, err := decodeMessage(data, endOfArray+int(off), ord, enc)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		messages[i] = msg
	}

	return TXT2Block{Messages: messages}, nil
}

func readUnit(data []byte, pos int, ord byteorder.Order, width int) (uint32, error) {
	if pos+width > len(data) {
		return 0, errs.ErrTruncated
	}
	switch width {
	case 1:
		return uint32(data[pos]), nil
	case 2:
		return uint32(ord.Uint16(data[pos : pos+width])), nil
	case 4:
		return ord.Uint32(data[pos : pos+width]), nil
	default:
		return 0, errs.ErrBadEncoding
	}
}

func flushRun(units []uint32, enc byteorder.TextEncoding) string {
	if len(units) == 0 {
		return ""
	}
	switch enc {
	case byteorder.EncodingUTF8:
		b := make([]byte, len(units))
		for i, u := range units {
			b[i] = byte(u)
		}
		return string(b)
	case byteorder.EncodingUTF16:
		u16 := make([]uint16, len(units))
		for i, u := range units {
			u16[i] = uint16(u)
		}
		return string(utf16.Decode(u16))
	case byteorder.EncodingUTF32:
		r := make([]rune, len(units))
		for i, u := range units {
			r[i] = rune(u)
		}
		return string(r)
	default:
		return ""
	}
}

func decodeMessage(data []byte, start int, ord byteorder.Order, enc byteorder.TextEncoding) (Message, error) {
	width := enc.CharWidth()
	pos := start
	var parts []MessagePart
	var run []uint32

	flush := func() {
		if len(run) > 0 {
			parts = append(parts, MessagePart{Text: flushRun(run, enc)})
			run = nil
		}
	}

	for {
		u, err := readUnit(data, pos, ord, width)
		if err != nil {
			return Message{}, err
		}

		if u == 0 {
			flush()
			return Message{Parts: parts}, nil
		}

		if u == controlMarker {
			flush()
			if pos+width+6 > len(data) {
				return Message{}, errs.ErrTruncated
			}
			group := ord.Uint16(data[pos+width : pos+width+2])
			tag := ord.Uint16(data[pos+width+2 : pos+width+4])
			paramSize := int(ord.Uint16(data[pos+width+4 : pos+width+6]))
			paramStart := pos + width + 6
			if paramStart+paramSize > len(data) {
				return Message{}, errs.ErrTruncated
			}
			param := make([]byte, paramSize)
			copy(param, data[paramStart:paramStart+paramSize])
			parts = append(parts, MessagePart{Control: &ControlRecord{
				Group: int32(group), Tag: int32(tag), Param: param,
			}})
			pos = paramStart + paramSize
			continue
		}

		if width >= 2 && u&0xFF == buttonLowByte {
			flush()
			btn := byte(u >> 8)
			parts = append(parts, MessagePart{Control: &ControlRecord{
				Group: buttonShorthand, Tag: buttonShorthand, Param: []byte{btn},
			}})
			pos += width
			continue
		}

		run = append(run, u)
		pos += width
	}
}

func appendUnit(buf []byte, ord byteorder.Order, width int, v uint32) []byte {
	switch width {
	case 1:
		return append(buf, byte(v))
	case 2:
		return ord.AppendUint16(buf, uint16(v))
	case 4:
		return ord.AppendUint32(buf, v)
	default:
		return buf
	}
}

func encodeRun(s string, enc byteorder.TextEncoding) []uint32 {
	switch enc {
	case byteorder.EncodingUTF8:
		b := []byte(s)
		out := make([]uint32, len(b))
		for i, c := range b {
			out[i] = uint32(c)
		}
		return out
	case byteorder.EncodingUTF16:
		u16 := utf16.Encode([]rune(s))
		out := make([]uint32, len(u16))
		for i, u := range u16 {
			out[i] = uint32(u)
		}
		return out
	case byteorder.EncodingUTF32:
		r := []rune(s)
		out := make([]uint32, len(r))
		for i, c := range r {
			out[i] = uint32(c)
		}
		return out
	default:
		return nil
	}
}

func marshalMessage(m Message, ord byteorder.Order, enc byteorder.TextEncoding) []byte {
	width := enc.CharWidth()
	var buf []byte

	for _, p := range m.Parts {
		if p.Control == nil {
			for _, u := range encodeRun(p.Text, enc) {
				buf = appendUnit(buf, ord, width, u)
			}
			continue
		}

		c := p.Control
		if c.Group == buttonShorthand && c.Tag == buttonShorthand {
			btn := uint32(0)
			if len(c.Param) > 0 {
				btn = uint32(c.Param[0])
			}
			buf = appendUnit(buf, ord, width, buttonLowByte|(btn<<8))
			continue
		}

		buf = appendUnit(buf, ord, width, controlMarker)
		rec := make([]byte, 6)
		ord.PutUint16(rec[0:2], uint16(c.Group))
		ord.PutUint16(rec[2:4], uint16(c.Tag))
		ord.PutUint16(rec[4:6], uint16(len(c.Param)))
		buf = append(buf, rec...)
		buf = append(buf, c.Param...)
	}

	return appendUnit(buf, ord, width, 0)
}

func (b TXT2Block) Marshal(ord byteorder.Order, enc byteorder.TextEncoding) []byte {
	count := len(b.Messages)
	header := make([]byte, 4+count*4)
	ord.PutUint32(header[0:4], uint32(count))

	var body []byte
	for i, m := range b.Messages {
		off := len(body)
		offHdr := 4 + i*4
		ord.PutUint32(header[offHdr:offHdr+4], uint32(off))
		body = append(body, marshalMessage(m, ord, enc)...)
	}

	return append(header, body...)
}
