// Package compress provides the pluggable compression backends behind
// the LZ11-wrapper detection described by the archive/MSF container
// format: a whole-file blob whose leading byte is 0x11 is compressed
// with the Nintendo LZ11 algorithm.
//
// LZ11 itself is an external collaborator — this package doesn't
// implement it. Instead it gives the wrapper a concrete, swappable
// Codec to decompress/compress against, so Wrap/Unwrap are testable
// without a real LZ11 implementation:
//
//	type Codec interface {
//	    Compress(data []byte) ([]byte, error)
//	    Decompress(data []byte) ([]byte, error)
//	}
//
// Backends:
//   - NoopCodec: pass-through, the zero-value default.
//   - FlateCodec: klauspost/compress/flate, a DEFLATE variant.
//   - LZ4Codec: pierrec/lz4, another byte-oriented LZ-family codec.
//   - ZstdCodec: valyala/gozstd under cgo, klauspost/compress/zstd
//     otherwise — selected by build tag exactly like the cgo/no-cgo
//     split a caller would use for any cgo-optional dependency.
package compress
