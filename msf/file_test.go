package msf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

func TestFile_StandardRoundTrip(t *testing.T) {
	f := newFile(KindStandard, byteorder.LittleEndian, byteorder.EncodingUTF16)
	f.Set(TagLBL1, HashTableBlock{SlotCount: 3, Entries: []HashEntry{{Label: "Hello", Value: 0}}})
	f.Set(TagATR1, OpaqueBlock{Data: []byte{1, 2, 3, 4}})
	f.Set(TagTXT2, TXT2Block{Messages: []Message{
		{Parts: []MessagePart{{Text: "hi"}}},
	}})

	data, err := f.Emit()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, KindStandard, parsed.Kind)
	require.Equal(t, []Tag{TagLBL1, TagATR1, TagTXT2}, parsed.Tags())

	lbl1, ok := parsed.Get(TagLBL1)
	require.True(t, ok)
	require.Equal(t, uint32(3), lbl1.(HashTableBlock).SlotCount)

	atr1, ok := parsed.Get(TagATR1)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3, 4}, atr1.(OpaqueBlock).Data)
}

func TestFile_Emit_PreservesBlockOrderAndPadding(t *testing.T) {
	f := newFile(KindProject, byteorder.BigEndian, byteorder.EncodingUTF8)
	f.Set(TagCLR1, CLR1Block{Colors: []Color{{R: 1}}})
	f.Set(TagATI2, ATI2Block{Attributes: []Attribute{{A: 1}}})

	data, err := f.Emit()
	require.NoError(t, err)
	require.Zero(t, len(data)%blockAlignment)

	reparsed, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, []Tag{TagCLR1, TagATI2}, reparsed.Tags())
}

func TestFile_Set_ReplacesExisting(t *testing.T) {
	f := newFile(KindProject, byteorder.LittleEndian, byteorder.EncodingUTF8)
	f.Set(TagCLR1, CLR1Block{Colors: []Color{{R: 1}}})
	f.Set(TagCLR1, CLR1Block{Colors: []Color{{R: 9}}})

	require.Len(t, f.Tags(), 1)
	b, _ := f.Get(TagCLR1)
	require.Equal(t, uint8(9), b.(CLR1Block).Colors[0].R)
}

func TestParse_UnknownTag(t *testing.T) {
	f := newFile(KindStandard, byteorder.LittleEndian, byteorder.EncodingUTF16)
	f.Set(TagLBL1, HashTableBlock{SlotCount: 1})

	data, err := f.Emit()
	require.NoError(t, err)

	// corrupt the tag to something unregistered for KindStandard.
	copy(data[headerSize:headerSize+4], "ZZZZ")

	_, err = Parse(data)
	require.ErrorIs(t, err, errs.ErrUnknownBlockTag)
}
