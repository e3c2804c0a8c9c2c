package msf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

func TestHeader_RoundTrip(t *testing.T) {
	buf := writeHeader(magicStandard, byteorder.LittleEndian, byteorder.EncodingUTF16, 3)
	require.Len(t, buf, headerSize)

	hdr, err := parseHeader(buf)
	require.NoError(t, err)
	require.Equal(t, magicStandard, hdr.magic)
	require.True(t, hdr.order.IsLittle())
	require.Equal(t, byteorder.EncodingUTF16, hdr.encoding)
	require.Equal(t, uint16(3), hdr.blockCount)
}

func TestParseHeader_BadMagic(t *testing.T) {
	buf := writeHeader(magicStandard, byteorder.LittleEndian, byteorder.EncodingUTF16, 0)
	copy(buf[0:8], "GARBAGE!")

	_, err := parseHeader(buf)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestParseHeader_Truncated(t *testing.T) {
	_, err := parseHeader(make([]byte, 10))
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestKindFromMagic(t *testing.T) {
	k, ok := kindFromMagic(magicProject)
	require.True(t, ok)
	require.Equal(t, KindProject, k)

	_, ok = kindFromMagic("nope")
	require.False(t, ok)
}
