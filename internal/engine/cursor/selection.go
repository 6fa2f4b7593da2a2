package cursor

import (
	"errors"
	"fmt"

	"github.com/dshills/inkwell/internal/engine/document"
)

// ErrInvalidSelection indicates a selection that references a missing block
// or an offset outside the block.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection represents a range of selected text inside one block.
type Selection struct {
	BlockKey document.Key // Block being edited
	Anchor   int          // Where selection started
	Focus    int          // Current cursor position (where typing occurs)
}

// NewSelection creates a selection from anchor to focus in the given block.
func NewSelection(key document.Key, anchor, focus int) Selection {
	return Selection{BlockKey: key, Anchor: anchor, Focus: focus}
}

// Collapsed creates a selection representing just a cursor (no extent).
func Collapsed(key document.Key, offset int) Selection {
	return Selection{BlockKey: key, Anchor: offset, Focus: offset}
}

// AtStart returns a cursor at the start of the document's first block.
func AtStart(doc document.Document) Selection {
	return Collapsed(doc.First().Key(), 0)
}

// AtEnd returns a cursor at the end of the document's last block.
func AtEnd(doc document.Document) Selection {
	last := doc.Last()
	return Collapsed(last.Key(), last.Len())
}

// IsCollapsed returns true if the selection has no extent (just a cursor).
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// Start returns the lower bound of the selection.
func (s Selection) Start() int {
	if s.Anchor <= s.Focus {
		return s.Anchor
	}
	return s.Focus
}

// End returns the upper bound of the selection.
func (s Selection) End() int {
	if s.Anchor >= s.Focus {
		return s.Anchor
	}
	return s.Focus
}

// Range returns the selection as a range (always Start <= End).
func (s Selection) Range() document.Range {
	return document.NewRange(s.Start(), s.End())
}

// IsBackward returns true if the selection extends backward (focus < anchor).
func (s Selection) IsBackward() bool {
	return s.Focus < s.Anchor
}

// MoveTo returns a new collapsed selection at offset in the same block.
func (s Selection) MoveTo(offset int) Selection {
	return Collapsed(s.BlockKey, offset)
}

// Extend returns a new selection with the anchor fixed and focus at offset.
func (s Selection) Extend(offset int) Selection {
	return Selection{BlockKey: s.BlockKey, Anchor: s.Anchor, Focus: offset}
}

// CollapseToStart collapses the selection to its start position.
func (s Selection) CollapseToStart() Selection {
	return Collapsed(s.BlockKey, s.Start())
}

// CollapseToEnd collapses the selection to its end position.
func (s Selection) CollapseToEnd() Selection {
	return Collapsed(s.BlockKey, s.End())
}

// Validate checks that the selection addresses an existing block of doc and
// that both offsets lie within [0, block length].
func (s Selection) Validate(doc document.Document) error {
	b, ok := doc.Block(s.BlockKey)
	if !ok {
		return fmt.Errorf("%w: block %q not found", ErrInvalidSelection, s.BlockKey)
	}
	if s.Start() < 0 || s.End() > b.Len() {
		return fmt.Errorf("%w: %s outside block %q of length %d", ErrInvalidSelection, s.Range(), s.BlockKey, b.Len())
	}
	return nil
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("Cursor(%s:%d)", s.BlockKey, s.Focus)
	}
	return fmt.Sprintf("Selection(%s:%d->%d)", s.BlockKey, s.Anchor, s.Focus)
}
