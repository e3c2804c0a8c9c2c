package compress

// NoopCodec passes data through unchanged without copying.
//
// It is the zero-value default backend, so Wrap on a blob that
// doesn't carry the LZ11 envelope never allocates.
type NoopCodec struct{}

var _ Codec = NoopCodec{}

// NewNoopCodec returns a NoopCodec.
func NewNoopCodec() NoopCodec { return NoopCodec{} }

func (NoopCodec) Compress(data []byte) ([]byte, error) { return data, nil }

func (NoopCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
