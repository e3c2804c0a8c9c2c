package msf

import "github.com/msgstudio/lms/byteorder"

// Block is the tagged-variant interface every known block codec
// implements: a pure (bytes, file-context) <-> (value) pair, per
// spec.md §4.3. One Go type implements Block per known tag, plus
// OpaqueBlock as the explicit catch-all for the two tags (ATR1,
// FLW3) the spec requires to round-trip verbatim without
// interpretation.
type Block interface {
	// Marshal serializes this block's body (not including the
	// 16-byte block header) using the file's byte order and text
	// encoding.
	Marshal(ord byteorder.Order, enc byteorder.TextEncoding) []byte
}

// parseFunc decodes a block body into its typed Block value.
type parseFunc func(data []byte, ord byteorder.Order, enc byteorder.TextEncoding) (Block, error)

// OpaqueBlock preserves a block's body verbatim. Used for ATR1 and
// FLW3, whose layouts are game-specific and not fully understood
// (spec.md §4.3, §9 Open Questions (a)).
type OpaqueBlock struct {
	Data []byte
}

func (b OpaqueBlock) Marshal(byteorder.Order, byteorder.TextEncoding) []byte {
	return b.Data
}

func parseOpaque(data []byte, _ byteorder.Order, _ byteorder.TextEncoding) (Block, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	return OpaqueBlock{Data: cp}, nil
}
