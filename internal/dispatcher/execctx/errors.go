package execctx

import "errors"

// Context validation errors.
var (
	// ErrInvalidSelection indicates the selection does not address the document.
	ErrInvalidSelection = errors.New("execution context: invalid selection")

	// ErrReadOnly indicates the document is read-only.
	ErrReadOnly = errors.New("execution context: document is read-only")
)
