package engine

import (
	"errors"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/document"
)

// State is an immutable snapshot of the editor: document, selection and
// pending inline style override.
type State struct {
	doc         document.Document
	sel         cursor.Selection
	override    []document.StyleTag
	hasOverride bool
}

// Option configures a State during creation.
type Option func(*State)

// WithSelection places the initial selection. It is ignored if it does not
// address the document.
func WithSelection(sel cursor.Selection) Option {
	return func(s *State) {
		if sel.Validate(s.doc) == nil {
			s.sel = sel
		}
	}
}

// NewState creates a state for doc with a cursor at the start of the first
// block. A document without blocks is replaced by an empty one.
func NewState(doc document.Document, opts ...Option) State {
	if doc.Len() == 0 {
		doc = document.New()
	}
	s := State{doc: doc, sel: cursor.AtStart(doc)}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Document returns the current document.
func (s State) Document() document.Document { return s.doc }

// Selection returns the current selection.
func (s State) Selection() cursor.Selection { return s.sel }

// InlineOverride returns the pending inline style override, if any.
func (s State) InlineOverride() ([]document.StyleTag, bool) {
	if !s.hasOverride {
		return nil, false
	}
	return copyTags(s.override), true
}

// ActiveBlock returns the block addressed by the selection.
func (s State) ActiveBlock() (document.Block, error) {
	if err := s.sel.Validate(s.doc); err != nil {
		return document.Block{}, err
	}
	b, _ := s.doc.Block(s.sel.BlockKey)
	return b, nil
}

// WithDocument replaces the document and selection, as reported by a
// renderer after a default edit. The override is cleared.
func (s State) WithDocument(doc document.Document, sel cursor.Selection) (State, error) {
	if err := sel.Validate(doc); err != nil {
		return s, err
	}
	return State{doc: doc, sel: sel}, nil
}

// WithSelection moves the selection. The override survives only if the
// selection does not change.
func (s State) WithSelection(sel cursor.Selection) (State, error) {
	if err := sel.Validate(s.doc); err != nil {
		return s, err
	}
	if sel == s.sel {
		return s, nil
	}
	return State{doc: s.doc, sel: sel}, nil
}

// CurrentInlineStyle returns the styles the next typed character receives:
// the override if one is pending, otherwise the style of the character
// before the cursor (or of the first character at the start of a block).
// For a ranged selection the style at its start is used.
func (s State) CurrentInlineStyle() []document.StyleTag {
	if s.hasOverride {
		return copyTags(s.override)
	}
	b, err := s.ActiveBlock()
	if err != nil || b.Len() == 0 {
		return nil
	}

	offset := s.sel.Start()
	if s.sel.IsCollapsed() {
		if offset > 0 {
			return b.StylesAt(offset - 1)
		}
		return b.StylesAt(0)
	}
	if offset == b.Len() {
		offset--
	}
	return b.StylesAt(offset)
}

// InsertText replaces the selection with text styled with
// CurrentInlineStyle and leaves a cursor after the inserted text.
func (s State) InsertText(text string) (State, error) {
	if err := s.sel.Validate(s.doc); err != nil {
		return s, err
	}
	tags := s.CurrentInlineStyle()
	key := s.sel.BlockKey

	doc, err := document.ReplaceRange(s.doc, key, s.sel.Start(), s.sel.End(), "")
	if err != nil {
		return s, err
	}
	doc, err = document.InsertText(doc, key, s.sel.Start(), text, tags...)
	if err != nil {
		return s, err
	}

	offset := s.sel.Start() + len([]rune(text))
	return State{doc: doc, sel: cursor.Collapsed(key, offset)}, nil
}

// DeleteRange removes [start, end) from the active block and leaves a
// cursor at start.
func (s State) DeleteRange(start, end int) (State, error) {
	if err := s.sel.Validate(s.doc); err != nil {
		return s, err
	}
	doc, err := document.ReplaceRange(s.doc, s.sel.BlockKey, start, end, "")
	if err != nil {
		return s, err
	}
	next := State{doc: doc, sel: cursor.Collapsed(s.sel.BlockKey, start)}
	if s.hasOverride {
		next.override, next.hasOverride = s.override, true
	}
	return next, nil
}

// ToggleInlineStyle toggles tag on the selection. A collapsed selection
// toggles the pending override; a ranged selection toggles the document.
func (s State) ToggleInlineStyle(tag document.StyleTag) (State, error) {
	if err := s.sel.Validate(s.doc); err != nil {
		return s, err
	}
	if !tag.IsKnown() {
		return s, document.ErrUnknownStyle
	}

	if s.sel.IsCollapsed() {
		current := s.CurrentInlineStyle()
		next := s
		next.override, next.hasOverride = toggleTag(current, tag), true
		return next, nil
	}

	doc, err := document.ToggleInlineStyle(s.doc, s.sel.BlockKey, s.sel.Range(), tag)
	if err != nil {
		return s, err
	}
	return State{doc: doc, sel: s.sel}, nil
}

// SetBlockType sets the type of the active block.
func (s State) SetBlockType(typ document.BlockType) (State, error) {
	if err := s.sel.Validate(s.doc); err != nil {
		return s, err
	}
	doc, err := document.SetBlockType(s.doc, s.sel.BlockKey, typ)
	if err != nil {
		return s, err
	}
	next := s
	next.doc = doc
	return next, nil
}

// ToggleBlockType sets typ on the active block, or resets it to normal if
// it already has that type.
func (s State) ToggleBlockType(typ document.BlockType) (State, error) {
	b, err := s.ActiveBlock()
	if err != nil {
		return s, err
	}
	if b.Type() == typ {
		typ = document.Normal
	}
	return s.SetBlockType(typ)
}

// SplitBlock replaces the selection with a block break and moves the cursor
// to the start of the new block.
func (s State) SplitBlock() (State, error) {
	if err := s.sel.Validate(s.doc); err != nil {
		return s, err
	}
	doc, err := document.ReplaceRange(s.doc, s.sel.BlockKey, s.sel.Start(), s.sel.End(), "")
	if err != nil {
		return s, err
	}
	doc, key, err := document.SplitBlock(doc, s.sel.BlockKey, s.sel.Start())
	if err != nil {
		return s, err
	}
	return State{doc: doc, sel: cursor.Collapsed(key, 0)}, nil
}

// Backspace performs the default backward deletion: a ranged selection is
// removed, a cursor deletes the rune before it, and a cursor at the start
// of a block joins the block to the previous one.
func (s State) Backspace() (State, error) {
	if err := s.sel.Validate(s.doc); err != nil {
		return s, err
	}
	if !s.sel.IsCollapsed() {
		return s.DeleteRange(s.sel.Start(), s.sel.End())
	}

	offset := s.sel.Focus
	if offset > 0 {
		return s.DeleteRange(offset-1, offset)
	}

	doc, join, err := document.MergeWithPrevious(s.doc, s.sel.BlockKey)
	if errors.Is(err, document.ErrNoPreviousBlock) {
		return s, ErrAtDocumentStart
	}
	if err != nil {
		return s, err
	}
	idx := s.doc.Index(s.sel.BlockKey)
	prev, _ := s.doc.BlockAt(idx - 1)
	return State{doc: doc, sel: cursor.Collapsed(prev.Key(), join)}, nil
}

func toggleTag(tags []document.StyleTag, tag document.StyleTag) []document.StyleTag {
	out := make([]document.StyleTag, 0, len(tags)+1)
	found := false
	for _, t := range tags {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}

func copyTags(tags []document.StyleTag) []document.StyleTag {
	if len(tags) == 0 {
		return []document.StyleTag{}
	}
	out := make([]document.StyleTag, len(tags))
	copy(out, tags)
	return out
}
