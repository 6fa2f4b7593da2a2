package cursor

import (
	"errors"
	"testing"

	"github.com/dshills/inkwell/internal/engine/document"
)

func testDoc(t *testing.T) document.Document {
	t.Helper()
	a, err := document.NewBlock("a", document.Normal, "hello")
	if err != nil {
		t.Fatal(err)
	}
	b, err := document.NewBlock("b", document.Normal, "")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.FromBlocks(a, b)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCollapsed(t *testing.T) {
	s := Collapsed("a", 3)
	if !s.IsCollapsed() {
		t.Error("expected collapsed selection")
	}
	if s.Start() != 3 || s.End() != 3 {
		t.Errorf("expected [3,3), got %s", s.Range())
	}
}

func TestBackwardSelection(t *testing.T) {
	s := NewSelection("a", 4, 1)

	if s.IsCollapsed() {
		t.Error("expected ranged selection")
	}
	if !s.IsBackward() {
		t.Error("expected backward selection")
	}
	if s.Range() != document.NewRange(1, 4) {
		t.Errorf("expected [1,4), got %s", s.Range())
	}
	if c := s.CollapseToStart(); c.Focus != 1 || !c.IsCollapsed() {
		t.Errorf("unexpected collapse to start %s", c)
	}
	if c := s.CollapseToEnd(); c.Focus != 4 || !c.IsCollapsed() {
		t.Errorf("unexpected collapse to end %s", c)
	}
}

func TestExtend(t *testing.T) {
	s := Collapsed("a", 2).Extend(5)
	if s.Anchor != 2 || s.Focus != 5 {
		t.Errorf("unexpected extend result %s", s)
	}
}

func TestAtStartAtEnd(t *testing.T) {
	doc := testDoc(t)

	if s := AtStart(doc); s.BlockKey != "a" || s.Focus != 0 {
		t.Errorf("unexpected start %s", s)
	}
	if s := AtEnd(doc); s.BlockKey != "b" || s.Focus != 0 {
		t.Errorf("unexpected end %s", s)
	}
}

func TestValidate(t *testing.T) {
	doc := testDoc(t)

	tests := []struct {
		name  string
		sel   Selection
		valid bool
	}{
		{"cursor at start", Collapsed("a", 0), true},
		{"cursor at end", Collapsed("a", 5), true},
		{"full range", NewSelection("a", 5, 0), true},
		{"past end", Collapsed("a", 6), false},
		{"negative", NewSelection("a", -1, 2), false},
		{"missing block", Collapsed("zz", 0), false},
		{"empty block", Collapsed("b", 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate(doc)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("expected ErrInvalidSelection, got %v", err)
			}
		})
	}
}
