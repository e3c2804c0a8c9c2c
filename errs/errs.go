// Package errs collects the sentinel errors returned by the archive,
// msf, and bundle packages.
//
// Callers should compare with errors.Is rather than equality, since
// call sites wrap these with positional context (offsets, tags,
// paths) via fmt.Errorf("...: %w", ...).
package errs

import "errors"

var (
	// ErrBadMagic is returned when a container's leading magic bytes
	// don't match any known format.
	ErrBadMagic = errors.New("lms: bad magic")

	// ErrBadBOM is returned when a byte-order mark is neither FF FE
	// nor FE FF.
	ErrBadBOM = errors.New("lms: bad byte-order mark")

	// ErrBadVersion is returned when an MSF header's version field
	// isn't the supported constant (3).
	ErrBadVersion = errors.New("lms: unsupported MSF version")

	// ErrBadEncoding is returned when an MSF header's encoding code
	// isn't one of {0,1,2}.
	ErrBadEncoding = errors.New("lms: bad text encoding code")

	// ErrTruncated is returned when a parse reads past the end of the
	// supplied buffer.
	ErrTruncated = errors.New("lms: truncated input")

	// ErrUnknownBlockTag is returned when an MSF kind's closed
	// dispatch table has no codec registered for an encountered tag.
	ErrUnknownBlockTag = errors.New("lms: unknown block tag")

	// ErrUnresolvedTagRef is returned (non-fatal, collected onto the
	// Bundle) when a control-tag record's group or tag index doesn't
	// resolve against the Project's tables.
	ErrUnresolvedTagRef = errors.New("lms: unresolved control tag reference")

	// ErrMissingProject is returned when assembling a Bundle from an
	// archive that doesn't contain exactly one *.msbp file.
	ErrMissingProject = errors.New("lms: archive has no project file")

	// ErrInvalidEntry is returned for structurally invalid archive
	// trees (e.g. calling children-only operations on a file entry).
	ErrInvalidEntry = errors.New("lms: invalid archive entry operation")

	// ErrUnsupportedCompression is returned by a compress.Codec
	// factory for an unrecognized backend name.
	ErrUnsupportedCompression = errors.New("lms: unsupported compression backend")
)
