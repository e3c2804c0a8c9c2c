// Package filetype implements the pure byte-prefix sniffer that maps
// a blob's leading bytes to one of the known container/MSF kinds.
package filetype

// Kind identifies what a blob of bytes looks like from its magic
// prefix alone, before any structural parsing happens.
type Kind uint8

const (
	Unknown Kind = iota
	LZ11
	Archive
	Standard
	Project
	Flow
)

// String renders the Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case LZ11:
		return "LZ11"
	case Archive:
		return "Archive"
	case Standard:
		return "Standard"
	case Project:
		return "Project"
	case Flow:
		return "Flow"
	default:
		return "Unknown"
	}
}

var (
	archiveMagic  = []byte("darc")
	standardMagic = []byte("MsgStdBn")
	projectMagic  = []byte("MsgPrjBn")
	flowMagic     = []byte("MsgFlwBn")
)

// Sniff classifies data by magic prefix. It never fails: unrecognized
// or too-short input classifies as Unknown.
func Sniff(data []byte) Kind {
	if len(data) == 0 {
		return Unknown
	}

	if data[0] == 0x11 {
		return LZ11
	}

	if hasPrefix(data, archiveMagic) {
		return Archive
	}
	if hasPrefix(data, standardMagic) {
		return Standard
	}
	if hasPrefix(data, projectMagic) {
		return Project
	}
	if hasPrefix(data, flowMagic) {
		return Flow
	}

	return Unknown
}

func hasPrefix(data, magic []byte) bool {
	if len(data) < len(magic) {
		return false
	}
	for i, b := range magic {
		if data[i] != b {
			return false
		}
	}
	return true
}
