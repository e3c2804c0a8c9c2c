package msf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msgstudio/lms/byteorder"
)

func TestTGG2Block_RoundTrip(t *testing.T) {
	b := TGG2Block{Entries: []NameListEntry{
		{Name: "system", Items: []uint16{0, 1}},
	}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF16)

	got, err := parseTGG2(body, byteorder.LittleEndian, byteorder.EncodingUTF16)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestTAG2Block_RoundTrip(t *testing.T) {
	b := TAG2Block{Entries: []NameListEntry{
		{Name: "Ruby", Items: []uint16{0}},
		{Name: "Size", Items: []uint16{1}},
	}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF16)

	got, err := parseTAG2(body, byteorder.LittleEndian, byteorder.EncodingUTF16)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestNameList_EmptyItemsAndName(t *testing.T) {
	b := TGG2Block{Entries: []NameListEntry{{Name: "", Items: nil}}}
	body := b.Marshal(byteorder.BigEndian, byteorder.EncodingUTF8)

	got, err := parseTGG2(body, byteorder.BigEndian, byteorder.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, "", got.(TGG2Block).Entries[0].Name)
	require.Empty(t, got.(TGG2Block).Entries[0].Items)
}
