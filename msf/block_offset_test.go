package msf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msgstudio/lms/byteorder"
)

func TestTGL2Block_RoundTrip(t *testing.T) {
	b := TGL2Block{Strings: []string{"alpha", "beta", ""}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF16)

	got, err := parseTGL2(body, byteorder.LittleEndian, byteorder.EncodingUTF16)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestCTI1Block_RoundTrip(t *testing.T) {
	b := CTI1Block{Filenames: []string{"a.msbt", "b/c.msbt"}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF8)

	got, err := parseCTI1(body, byteorder.LittleEndian, byteorder.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestALI2Block_RoundTrip(t *testing.T) {
	b := ALI2Block{Lists: [][]string{
		{"one", "two"},
		{},
		{"three"},
	}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF16)

	got, err := parseALI2(body, byteorder.LittleEndian, byteorder.EncodingUTF16)
	require.NoError(t, err)

	ali := got.(ALI2Block)
	require.Len(t, ali.Lists, 3)
	require.Equal(t, []string{"one", "two"}, ali.Lists[0])
	require.Empty(t, ali.Lists[1])
	require.Equal(t, []string{"three"}, ali.Lists[2])
}

// TestALI2Block_Marshal_PadsListToU32Alignment covers a list whose
// NUL-terminated string content isn't 4-aligned on its own ("ab" ->
// 3 raw bytes): Marshal must pad the list body out to a 4-byte
// boundary before the next list starts. Asserts
// against an exact byte fixture so a missing pad fails the test
// instead of silently round-tripping through parseALI2.
func TestALI2Block_Marshal_PadsListToU32Alignment(t *testing.T) {
	b := ALI2Block{Lists: [][]string{{"ab"}}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF8)

	want := []byte{
		0x01, 0x00, 0x00, 0x00, // numLists = 1
		0x08, 0x00, 0x00, 0x00, // list 0 offset = 8

		0x01, 0x00, 0x00, 0x00, // list 0 item count = 1
		0x08, 0x00, 0x00, 0x00, // item 0 offset (relative to list base) = 8
		'a', 'b', 0x00, // NUL-terminated "ab"
		0x00, // pad to 4-byte boundary
	}
	require.Equal(t, want, body)

	got, err := parseALI2(body, byteorder.LittleEndian, byteorder.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, b, got.(ALI2Block))
}

// TestALI2Block_Marshal_EachListAlignedToU32 checks every list's
// offset (and the overall body length) lands on a 4-byte boundary
// when list content lengths aren't themselves multiples of 4.
func TestALI2Block_Marshal_EachListAlignedToU32(t *testing.T) {
	b := ALI2Block{Lists: [][]string{
		{"ab"},  // raw cstring length 3
		{"cde"}, // raw cstring length 4
	}}
	body := b.Marshal(byteorder.LittleEndian, byteorder.EncodingUTF8)
	require.Zero(t, len(body)%4)

	list0Off := byteorder.LittleEndian.Uint32(body[4:8])
	list1Off := byteorder.LittleEndian.Uint32(body[8:12])
	require.Zero(t, list0Off%4)
	require.Zero(t, list1Off%4)

	got, err := parseALI2(body, byteorder.LittleEndian, byteorder.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, b, got.(ALI2Block))
}
