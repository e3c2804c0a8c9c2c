package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// FlateCodec is an LZ11-wrapper backend: a DEFLATE variant,
// same LZ-family shape as the real Nintendo LZ11 algorithm this
// wrapper stands in for.
type FlateCodec struct {
	level int
}

var _ Codec = FlateCodec{}

// NewFlateCodec returns a FlateCodec at klauspost/compress's default
// compression level.
func NewFlateCodec() FlateCodec {
	return FlateCodec{level: flate.DefaultCompression}
}

// Compress compresses data with DEFLATE.
func (c FlateCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress decompresses a DEFLATE stream.
func (c FlateCodec) Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}
	return out, nil
}
