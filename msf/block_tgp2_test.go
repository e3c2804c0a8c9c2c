package msf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msgstudio/lms/byteorder"
)

func TestTGP2Block_RoundTrip(t *testing.T) {
	b := TGP2Block{Params: []Param{
		{Type: 0, Name: "text"},
		{Type: 0, Name: "pt"},
		{Type: 9, Name: "choice", Items: []uint16{1, 2, 3}},
	}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF16)

	got, err := parseTGP2(body, byteorder.LittleEndian, byteorder.EncodingUTF16)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestTGP2Block_ListTypeWithoutItems(t *testing.T) {
	b := TGP2Block{Params: []Param{{Type: 9, Name: "empty", Items: nil}}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF8)

	got, err := parseTGP2(body, byteorder.LittleEndian, byteorder.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, "empty", got.(TGP2Block).Params[0].Name)
	require.Empty(t, got.(TGP2Block).Params[0].Items)
}
