// Package lms provides a high-level façade over the Archive container
// codec, the MSF (Message-Studio File) framework, the Bundle
// cross-reference model, and the LZ11 compression wrapper.
//
// # Core Features
//
//   - Byte-prefix sniffing of darc archives, MSF files, and LZ11
//     envelopes, without any structural parsing (filetype.Sniff).
//   - darc archive container codec: an arena-indexed file/directory
//     tree, parsed and re-emitted byte-for-byte (archive package).
//   - MSF framework: headers, a closed per-kind block dispatch table,
//     and one codec per block tag (msf package).
//   - Bundle: joins a Project file's tag tables against Standard
//     files' messages, resolving in-line control records (bundle
//     package).
//   - Pluggable compression backends behind the LZ11 envelope's
//     0x11 leading byte (compress package).
//
// # Basic Usage
//
// Loading an archive and walking its tree:
//
//	data, _ := os.ReadFile("Product.arc")
//	tree, err := lms.ParseArchive(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for e := range tree.Entries() {
//	    fmt.Println(e.Path())
//	}
//
// Resolving a Project/Standard pair into decorated messages:
//
//	b, err := bundle.FromArchive(tree)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for path, text := range b.Texts {
//	    for label, msg := range text.Messages {
//	        fmt.Printf("%s: %s = %q\n", path, label, msg.DisplayText)
//	    }
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the
// archive, msf, bundle, and compress packages for the most common
// use cases: sniffing, loading, and re-emitting a file. For advanced
// usage — custom byte orders, alternate compression backends, or
// direct block-level manipulation — use those packages directly.
package lms

import (
	"fmt"

	"github.com/msgstudio/lms/archive"
	"github.com/msgstudio/lms/compress"
	"github.com/msgstudio/lms/filetype"
	"github.com/msgstudio/lms/msf"
)

// Sniff classifies data by its leading magic bytes, without
// attempting any structural parse. See filetype.Kind for the
// possible classifications.
func Sniff(data []byte) filetype.Kind {
	return filetype.Sniff(data)
}

// ParseArchive decodes a darc archive container into its entry tree.
// data must not carry an LZ11 envelope; unwrap it first with
// DecompressEnvelope.
func ParseArchive(data []byte) (*archive.Tree, error) {
	return archive.Parse(data)
}

// EmitArchive re-serializes t as a darc archive using little-endian
// byte order, the container's conventional order.
func EmitArchive(t *archive.Tree) ([]byte, error) {
	return archive.Emit(t)
}

// ParseMSF decodes an MSF file (Project, Standard, or Flow), selecting
// the block dispatch table from the header's magic bytes.
func ParseMSF(data []byte) (*msf.File, error) {
	return msf.Parse(data)
}

// DecompressEnvelope strips an LZ11 compression envelope if data's
// leading byte is 0x11, using codec for the actual decompression.
// It returns the unwrapped payload and whether unwrapping happened,
// so the caller can thread the flag through to a later
// CompressEnvelope call at emit time, per the compress package's
// Wrap/Unwrap contract.
func DecompressEnvelope(data []byte, codec compress.Codec) (payload []byte, wasCompressed bool, err error) {
	return compress.Wrap(data, codec)
}

// CompressEnvelope re-applies the LZ11 envelope DecompressEnvelope
// stripped, using codec to compress payload. Callers that didn't
// unwrap an envelope (wasCompressed == false from DecompressEnvelope)
// should skip this and emit payload directly.
func CompressEnvelope(payload []byte, codec compress.Codec) ([]byte, error) {
	return compress.Unwrap(payload, codec)
}

// LoadArchive decompresses data if it carries an LZ11 envelope, then
// parses the result as a darc archive. The returned wasCompressed
// flag should be passed to SaveArchive to reproduce the envelope on
// re-emit.
func LoadArchive(data []byte, codec compress.Codec) (t *archive.Tree, wasCompressed bool, err error) {
	payload, wasCompressed, err := compress.Wrap(data, codec)
	if err != nil {
		return nil, false, fmt.Errorf("lms: load archive: %w", err)
	}
	t, err = archive.Parse(payload)
	if err != nil {
		return nil, false, fmt.Errorf("lms: load archive: %w", err)
	}
	return t, wasCompressed, nil
}

// SaveArchive emits t as a darc archive and, if wasCompressed is
// true, re-wraps it in an LZ11 envelope using codec. Pass the
// wasCompressed value LoadArchive returned for the same file to
// preserve its compression state across a load/save round trip.
func SaveArchive(t *archive.Tree, wasCompressed bool, codec compress.Codec) ([]byte, error) {
	data, err := archive.Emit(t)
	if err != nil {
		return nil, fmt.Errorf("lms: save archive: %w", err)
	}
	if !wasCompressed {
		return data, nil
	}
	wrapped, err := compress.Unwrap(data, codec)
	if err != nil {
		return nil, fmt.Errorf("lms: save archive: %w", err)
	}
	return wrapped, nil
}

// LoadMSF decompresses data if it carries an LZ11 envelope, then
// parses the result as an MSF file. Mirrors LoadArchive for the MSF
// family.
func LoadMSF(data []byte, codec compress.Codec) (f *msf.File, wasCompressed bool, err error) {
	payload, wasCompressed, err := compress.Wrap(data, codec)
	if err != nil {
		return nil, false, fmt.Errorf("lms: load msf: %w", err)
	}
	f, err = msf.Parse(payload)
	if err != nil {
		return nil, false, fmt.Errorf("lms: load msf: %w", err)
	}
	return f, wasCompressed, nil
}

// SaveMSF emits f and, if wasCompressed is true, re-wraps it in an
// LZ11 envelope using codec. Mirrors SaveArchive for the MSF family.
func SaveMSF(f *msf.File, wasCompressed bool, codec compress.Codec) ([]byte, error) {
	data, err := f.Emit()
	if err != nil {
		return nil, fmt.Errorf("lms: save msf: %w", err)
	}
	if !wasCompressed {
		return data, nil
	}
	wrapped, err := compress.Unwrap(data, codec)
	if err != nil {
		return nil, fmt.Errorf("lms: save msf: %w", err)
	}
	return wrapped, nil
}
