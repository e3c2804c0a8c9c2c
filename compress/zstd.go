package compress

// ZstdCodec is a pluggable LZ11-wrapper backend favoring compression
// ratio over speed. Compress/Decompress are implemented per build tag
// in zstd_cgo.go (cgo, via valyala/gozstd) and zstd_nocgo.go (no cgo).
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec returns a ZstdCodec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
