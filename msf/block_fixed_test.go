package msf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msgstudio/lms/byteorder"
)

func TestCLR1Block_RoundTrip(t *testing.T) {
	b := CLR1Block{Colors: []Color{{R: 1, G: 2, B: 3, A: 4}, {R: 255, G: 0, B: 128, A: 64}}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF16)

	got, err := parseCLR1(body, byteorder.LittleEndian, byteorder.EncodingUTF16)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestATI2Block_RoundTrip(t *testing.T) {
	b := ATI2Block{Attributes: []Attribute{{A: 1, B: 2, C: 300, D: 70000}}}
	body := b.Marshal(byteorder.BigEndian, byteorder.EncodingUTF8)

	got, err := parseATI2(body, byteorder.BigEndian, byteorder.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestSYL3Block_RoundTrip(t *testing.T) {
	b := SYL3Block{Styles: []Style{{A: 1, B: 2, C: 3, D: -7}}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF8)

	got, err := parseSYL3(body, byteorder.LittleEndian, byteorder.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestFixedBlocks_Empty(t *testing.T) {
	b := CLR1Block{}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF8)
	require.Len(t, body, 4)

	got, err := parseCLR1(body, byteorder.LittleEndian, byteorder.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, CLR1Block{Colors: []Color{}}, got)
}
