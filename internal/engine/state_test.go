package engine

import (
	"errors"
	"testing"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/document"
)

func newTestState(t *testing.T, text string, styles ...document.StyleRange) State {
	t.Helper()
	b, err := document.NewBlock("k", document.Normal, text, styles...)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.FromBlocks(b)
	if err != nil {
		t.Fatal(err)
	}
	return NewState(doc, WithSelection(cursor.Collapsed("k", len([]rune(text)))))
}

func activeBlock(t *testing.T, s State) document.Block {
	t.Helper()
	b, err := s.ActiveBlock()
	if err != nil {
		t.Fatalf("ActiveBlock failed: %v", err)
	}
	return b
}

func TestNewStateEmptyDocument(t *testing.T) {
	s := NewState(document.Document{})
	if s.Document().Len() != 1 {
		t.Fatalf("expected one block, got %d", s.Document().Len())
	}
	if err := s.Selection().Validate(s.Document()); err != nil {
		t.Errorf("expected valid initial selection, got %v", err)
	}
}

func TestOutcomeString(t *testing.T) {
	if Handled.String() != "handled" {
		t.Errorf("unexpected %q", Handled.String())
	}
	if NotHandled.String() != "not-handled" {
		t.Errorf("unexpected %q", NotHandled.String())
	}
}

func TestInsertTextInheritsPreviousStyle(t *testing.T) {
	s := newTestState(t, "ab", document.StyleRange{Start: 0, End: 2, Tag: document.Bold})

	next, err := s.InsertText("c")
	if err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	b := activeBlock(t, next)
	if b.Text() != "abc" {
		t.Errorf("unexpected text %q", b.Text())
	}
	if !b.HasStyle(document.Bold, document.NewRange(0, 3)) {
		t.Errorf("expected inserted char to be bold, got %v", b.Styles())
	}
	if next.Selection() != cursor.Collapsed("k", 3) {
		t.Errorf("unexpected selection %s", next.Selection())
	}
}

func TestToggleInlineStyleCollapsedSetsOverride(t *testing.T) {
	s := newTestState(t, "")

	next, err := s.ToggleInlineStyle(document.Red)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !document.Equal(next.Document(), s.Document()) {
		t.Error("collapsed toggle should not change the document")
	}
	tags, ok := next.InlineOverride()
	if !ok || len(tags) != 1 || tags[0] != document.Red {
		t.Fatalf("expected RED override, got %v %v", tags, ok)
	}

	typed, err := next.InsertText("hi")
	if err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	b := activeBlock(t, typed)
	if !b.HasStyle(document.Red, document.NewRange(0, 2)) {
		t.Errorf("expected typed text to be red, got %v", b.Styles())
	}
	if _, ok := typed.InlineOverride(); ok {
		t.Error("override should be cleared after insertion")
	}
}

func TestToggleInlineStyleCollapsedTwiceClears(t *testing.T) {
	s := newTestState(t, "")

	s, _ = s.ToggleInlineStyle(document.Bold)
	s, _ = s.ToggleInlineStyle(document.Bold)

	tags, ok := s.InlineOverride()
	if !ok || len(tags) != 0 {
		t.Errorf("expected empty override, got %v %v", tags, ok)
	}
}

func TestToggleInlineStyleRanged(t *testing.T) {
	s := newTestState(t, "hello")
	s, err := s.WithSelection(cursor.NewSelection("k", 1, 4))
	if err != nil {
		t.Fatal(err)
	}

	next, err := s.ToggleInlineStyle(document.Italic)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	b := activeBlock(t, next)
	if !b.HasStyle(document.Italic, document.NewRange(1, 4)) {
		t.Errorf("expected italic [1,4), got %v", b.Styles())
	}
	if next.Selection() != s.Selection() {
		t.Error("ranged toggle should keep the selection")
	}
}

func TestWithSelectionClearsOverride(t *testing.T) {
	s := newTestState(t, "abc")
	s, _ = s.ToggleInlineStyle(document.Bold)

	same, err := s.WithSelection(s.Selection())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := same.InlineOverride(); !ok {
		t.Error("override should survive an unchanged selection")
	}

	moved, err := s.WithSelection(cursor.Collapsed("k", 0))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := moved.InlineOverride(); ok {
		t.Error("override should be cleared when the selection moves")
	}
}

func TestWithSelectionInvalid(t *testing.T) {
	s := newTestState(t, "abc")

	_, err := s.WithSelection(cursor.Collapsed("k", 9))
	if !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection, got %v", err)
	}
	_, err = s.WithDocument(document.New(), cursor.Collapsed("k", 0))
	if !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestToggleBlockType(t *testing.T) {
	s := newTestState(t, "title")

	s, err := s.ToggleBlockType(document.HeaderOne)
	if err != nil {
		t.Fatal(err)
	}
	if activeBlock(t, s).Type() != document.HeaderOne {
		t.Error("expected header-one")
	}

	s, err = s.ToggleBlockType(document.HeaderOne)
	if err != nil {
		t.Fatal(err)
	}
	if activeBlock(t, s).Type() != document.Normal {
		t.Error("expected normal after second toggle")
	}
}

func TestSplitAndBackspace(t *testing.T) {
	s := newTestState(t, "abcd")
	s, _ = s.WithSelection(cursor.Collapsed("k", 2))

	split, err := s.SplitBlock()
	if err != nil {
		t.Fatalf("SplitBlock failed: %v", err)
	}
	if split.Document().Len() != 2 {
		t.Fatalf("expected 2 blocks, got %d", split.Document().Len())
	}
	if split.Selection().Focus != 0 || split.Selection().BlockKey == "k" {
		t.Errorf("expected cursor at start of new block, got %s", split.Selection())
	}

	joined, err := split.Backspace()
	if err != nil {
		t.Fatalf("Backspace failed: %v", err)
	}
	if joined.Document().Len() != 1 || joined.Document().PlainText() != "abcd" {
		t.Errorf("unexpected joined document %q", joined.Document().PlainText())
	}
	if joined.Selection() != cursor.Collapsed("k", 2) {
		t.Errorf("unexpected selection %s", joined.Selection())
	}

	deleted, err := joined.Backspace()
	if err != nil {
		t.Fatalf("Backspace failed: %v", err)
	}
	if deleted.Document().PlainText() != "acd" {
		t.Errorf("unexpected text %q", deleted.Document().PlainText())
	}

	start, _ := deleted.WithSelection(cursor.Collapsed("k", 0))
	if _, err := start.Backspace(); !errors.Is(err, ErrAtDocumentStart) {
		t.Errorf("expected ErrAtDocumentStart, got %v", err)
	}
}
