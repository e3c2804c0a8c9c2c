package msf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msgstudio/lms/byteorder"
)

func TestTXT2Block_RoundTrip(t *testing.T) {
	b := TXT2Block{Messages: []Message{
		{Parts: []MessagePart{
			{Text: "Hello, "},
			{Control: &ControlRecord{Group: 0, Tag: 3, Param: []byte{0, 0, 0, 0xFF}}},
			{Text: "!"},
		}},
		{Parts: []MessagePart{
			{Text: "plain only"},
		}},
	}}

	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF16)

	got, err := parseTXT2(body, byteorder.LittleEndian, byteorder.EncodingUTF16)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestTXT2Message_DisplayText(t *testing.T) {
	m := Message{Parts: []MessagePart{
		{Text: "a"},
		{Control: &ControlRecord{Group: 1, Tag: 2, Param: []byte{9}}},
		{Text: "b"},
	}}
	require.Equal(t, "a￼b", m.DisplayText())
}

func TestTXT2Block_ButtonShorthand(t *testing.T) {
	b := TXT2Block{Messages: []Message{
		{Parts: []MessagePart{
			{Text: "press "},
			{Control: &ControlRecord{Group: -1, Tag: -1, Param: []byte{0x02}}},
		}},
	}}

	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF16)
	got, err := parseTXT2(body, byteorder.LittleEndian, byteorder.EncodingUTF16)
	require.NoError(t, err)

	msg := got.(TXT2Block).Messages[0]
	require.Len(t, msg.Parts, 2)
	require.Equal(t, int32(-1), msg.Parts[1].Control.Group)
	require.Equal(t, int32(-1), msg.Parts[1].Control.Tag)
	require.Equal(t, []byte{0x02}, msg.Parts[1].Control.Param)
}

func TestTXT2Block_UTF8RoundTrip(t *testing.T) {
	b := TXT2Block{Messages: []Message{
		{Parts: []MessagePart{{Text: "ascii only"}}},
	}}
	body := b.Marshal(byteorder.BigEndian, byteorder.EncodingUTF8)

	got, err := parseTXT2(body, byteorder.BigEndian, byteorder.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, b, got)
}
