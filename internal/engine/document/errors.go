package document

import "errors"

// Errors returned by document operations.
var (
	// ErrBlockNotFound indicates the addressed block key is not in the document.
	ErrBlockNotFound = errors.New("block not found")

	// ErrOffsetOutOfRange indicates an offset lies outside [0, block length].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrUnknownBlockType indicates a block type outside the supported set.
	ErrUnknownBlockType = errors.New("unknown block type")

	// ErrUnknownStyle indicates an inline style tag outside the supported set.
	ErrUnknownStyle = errors.New("unknown inline style")

	// ErrStylesOverlap indicates two ranges of the same tag overlap.
	ErrStylesOverlap = errors.New("overlapping style ranges")

	// ErrDuplicateKey indicates two blocks share a key.
	ErrDuplicateKey = errors.New("duplicate block key")

	// ErrEmptyDocument indicates a document without blocks.
	ErrEmptyDocument = errors.New("document has no blocks")

	// ErrNoPreviousBlock indicates a merge was requested on the first block.
	ErrNoPreviousBlock = errors.New("no previous block")
)
