package archive

import "unicode/utf16"

// utf16Decode converts UTF-16 code units to a Go string.
func utf16Decode(units []uint16) []rune {
	return utf16.Decode(units)
}

// utf16Encode converts a Go string to UTF-16 code units.
func utf16Encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}
