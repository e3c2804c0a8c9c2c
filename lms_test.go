package lms_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msgstudio/lms"
	"github.com/msgstudio/lms/archive"
	"github.com/msgstudio/lms/bundle"
	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/compress"
	"github.com/msgstudio/lms/filetype"
	"github.com/msgstudio/lms/msf"
)

// TestArchive_RootAndSingleFile covers spec.md §8 scenario 1: an
// archive with a root and a single file named a.msbt parses, and on
// emit the first 28 bytes match the documented header, with the
// payload landing at the 32-aligned offset 96 (the 28-byte header,
// two 12-byte entries and a 16-byte name table end at 68).
func TestArchive_RootAndSingleFile(t *testing.T) {
	tree := archive.NewTree()
	tree.AddFile("a.msbt", []byte("MsgStdBn..."))

	require.Equal(t, filetype.Archive, lms.Sniff([]byte("darc\xFF\xFE")))

	data, err := lms.EmitArchive(tree)
	require.NoError(t, err)

	require.Equal(t, []byte("darc"), data[0:4])
	require.Equal(t, []byte{0xFF, 0xFE}, data[4:6])
	require.Equal(t, []byte{0x1C, 0x00}, data[6:8])
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, data[8:12])

	fileDataOff := byteorder.LittleEndian.Uint32(data[24:28])
	require.Equal(t, uint32(96), fileDataOff)
	require.Zero(t, fileDataOff%32)

	parsed, err := lms.ParseArchive(data)
	require.NoError(t, err)

	var names []string
	for e := range parsed.Entries() {
		if !e.IsDir() {
			names = append(names, e.Path())
		}
	}
	require.Equal(t, []string{"a.msbt"}, names)
}

// TestCompressedEnvelope_RoundTrip covers spec.md §8 scenario 5: an
// envelope with a leading 0x11 byte is sniffed as LZ11 and round-trips
// through decompress->parse->emit->compress, with the re-emitted
// archive matching the decompressed original byte-for-byte.
func TestCompressedEnvelope_RoundTrip(t *testing.T) {
	tree := archive.NewTree()
	tree.AddFile("a.msbt", []byte("MsgStdBn..."))
	original, err := lms.EmitArchive(tree)
	require.NoError(t, err)

	codec := compress.NewFlateCodec()
	envelope, err := lms.CompressEnvelope(original, codec)
	require.NoError(t, err)
	require.Equal(t, byte(0x11), envelope[0])
	require.Equal(t, filetype.LZ11, lms.Sniff(envelope))

	parsed, wasCompressed, err := lms.LoadArchive(envelope, codec)
	require.NoError(t, err)
	require.True(t, wasCompressed)

	reEmitted, err := lms.SaveArchive(parsed, wasCompressed, codec)
	require.NoError(t, err)
	require.Equal(t, byte(0x11), reEmitted[0])

	decompressedAgain, gotCompressed, err := lms.LoadArchive(reEmitted, codec)
	require.NoError(t, err)
	require.True(t, gotCompressed)

	reReEmitted, err := archive.Emit(decompressedAgain)
	require.NoError(t, err)
	require.Equal(t, original, reReEmitted)
}

// TestLoadArchive_Uncompressed verifies an archive without the LZ11
// envelope round-trips with wasCompressed == false and no codec work.
func TestLoadArchive_Uncompressed(t *testing.T) {
	tree := archive.NewTree()
	tree.AddFile("a.msbt", []byte("hi"))
	data, err := lms.EmitArchive(tree)
	require.NoError(t, err)

	parsed, wasCompressed, err := lms.LoadArchive(data, compress.NoopCodec{})
	require.NoError(t, err)
	require.False(t, wasCompressed)

	out, err := lms.SaveArchive(parsed, wasCompressed, compress.NoopCodec{})
	require.NoError(t, err)
	require.Equal(t, data, out)
}

// TestEndToEnd_ArchiveToBundle exercises the full façade: an archive
// holding a Project and a Standard file parses, and bundle.FromArchive
// resolves the Standard file's tagged message against the Project's
// tables (spec.md §8 scenario 4).
func TestEndToEnd_ArchiveToBundle(t *testing.T) {
	proj, err := msf.NewFile(msf.KindProject, byteorder.LittleEndian, byteorder.EncodingUTF16)
	require.NoError(t, err)
	proj.Set(msf.TagTGP2, msf.TGP2Block{Params: []msf.Param{{Type: 0, Name: "text"}}})
	proj.Set(msf.TagTAG2, msf.TAG2Block{Entries: []msf.NameListEntry{{Name: "Ruby", Items: []uint16{0}}}})
	proj.Set(msf.TagTGG2, msf.TGG2Block{Entries: []msf.NameListEntry{{Name: "system", Items: []uint16{0}}}})
	projData, err := proj.Emit()
	require.NoError(t, err)

	std, err := msf.NewFile(msf.KindStandard, byteorder.LittleEndian, byteorder.EncodingUTF16)
	require.NoError(t, err)
	std.Set(msf.TagLBL1, msf.HashTableBlock{SlotCount: 3, Entries: []msf.HashEntry{{Label: "Hi", Value: 0}}})
	std.Set(msf.TagATR1, msf.OpaqueBlock{})
	std.Set(msf.TagTXT2, msf.TXT2Block{Messages: []msf.Message{
		{Parts: []msf.MessagePart{{Control: &msf.ControlRecord{Group: 0, Tag: 0, Param: []byte{1}}}}},
	}})
	stdData, err := std.Emit()
	require.NoError(t, err)

	tree := archive.NewTree()
	tree.AddFile("a.msbp", projData)
	tree.AddFile("a.msbt", stdData)

	archived, err := lms.EmitArchive(tree)
	require.NoError(t, err)

	parsedTree, err := lms.ParseArchive(archived)
	require.NoError(t, err)

	b, err := bundle.FromArchive(parsedTree)
	require.NoError(t, err)
	require.Empty(t, b.Unresolved)
	require.Equal(t, "system", b.Texts["a.msbt"].Messages["Hi"].Tags[0].Group.Name)
}

// TestParseMSF_DispatchesByMagic confirms ParseMSF selects the right
// block table for each MSF kind from its header magic alone.
func TestParseMSF_DispatchesByMagic(t *testing.T) {
	f, err := msf.NewFile(msf.KindFlow, byteorder.LittleEndian, byteorder.EncodingUTF8)
	require.NoError(t, err)
	f.Set(msf.TagFLW3, msf.OpaqueBlock{Data: []byte{1, 2}})
	data, err := f.Emit()
	require.NoError(t, err)

	require.Equal(t, filetype.Flow, lms.Sniff(data))

	parsed, err := lms.ParseMSF(data)
	require.NoError(t, err)
	require.Equal(t, msf.KindFlow, parsed.Kind)
}
