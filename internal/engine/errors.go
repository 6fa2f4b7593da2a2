package engine

import (
	"errors"

	"github.com/dshills/inkwell/internal/engine/cursor"
)

// Errors returned by state operations.
var (
	// ErrInvalidSelection indicates the selection does not address the document.
	ErrInvalidSelection = cursor.ErrInvalidSelection

	// ErrAtDocumentStart indicates a backward deletion at the very start of
	// the document.
	ErrAtDocumentStart = errors.New("at start of document")
)
