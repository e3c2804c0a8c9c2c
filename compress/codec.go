package compress

import (
	"fmt"

	"github.com/msgstudio/lms/errs"
)

// Compressor compresses a byte slice.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Every backend in this package
// implements Codec.
type Codec interface {
	Compressor
	Decompressor
}

// Name identifies a registered Codec backend.
type Name string

const (
	NameNoop  Name = "noop"
	NameFlate Name = "flate"
	NameLZ4   Name = "lz4"
	NameZstd  Name = "zstd"
)

// CreateCodec is a factory returning the named backend, mirroring
// the teacher's compress.CreateCodec(compressionType, target) shape.
func CreateCodec(name Name) (Codec, error) {
	switch name {
	case NameNoop, "":
		return NoopCodec{}, nil
	case NameFlate:
		return NewFlateCodec(), nil
	case NameLZ4:
		return NewLZ4Codec(), nil
	case NameZstd:
		return NewZstdCodec(), nil
	default:
		return nil, fmt.Errorf("compress: %w: %q", errs.ErrUnsupportedCompression, name)
	}
}

const lz11Prefix = 0x11

// Wrap inspects data's leading byte per spec.md §4.5: 0x11 marks an
// LZ11-compressed blob. If present, it decompresses via codec and
// returns the unwrapped bytes plus true so the caller can thread the
// flag through to emit time. Otherwise it returns data unchanged and
// false.
func Wrap(data []byte, codec Codec) ([]byte, bool, error) {
	if len(data) == 0 || data[0] != lz11Prefix {
		return data, false, nil
	}
	out, err := codec.Decompress(data[1:])
	if err != nil {
		return nil, false, fmt.Errorf("compress: unwrap: %w", err)
	}
	return out, true, nil
}

// Unwrap re-applies the 0x11 envelope data had before Wrap stripped
// it, using codec to compress the payload.
func Unwrap(data []byte, codec Codec) ([]byte, error) {
	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress: rewrap: %w", err)
	}
	out := make([]byte, 0, len(compressed)+1)
	out = append(out, lz11Prefix)
	out = append(out, compressed...)
	return out, nil
}
