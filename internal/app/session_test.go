package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/inkwell/internal/autocorrect"
	"github.com/dshills/inkwell/internal/dispatcher"
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/dispatcher/handlers/editor"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/document"
	"github.com/dshills/inkwell/internal/snapshot"
	"github.com/dshills/inkwell/internal/store"
)

func newTestSession(t *testing.T, st store.Store) *Session {
	t.Helper()
	s, err := NewSession(SessionOptions{
		Autocorrect: autocorrect.NewDefault(),
		Store:       st,
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

// typeText inserts text the way a renderer would: autocorrect first, then
// the default insertion.
func typeText(t *testing.T, s *Session, text string) {
	t.Helper()
	for _, ch := range text {
		if s.HandleBeforeInput(ch) == engine.Handled {
			continue
		}
		res := s.Execute(handler.Command{Name: editor.CommandInsertText, Text: string(ch)})
		if !res.IsHandled() {
			t.Fatalf("insert %q not handled: %v", ch, res.Error)
		}
	}
}

func activeBlock(t *testing.T, s *Session) document.Block {
	t.Helper()
	b, err := s.State().ActiveBlock()
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSessionAutocorrectHeader(t *testing.T) {
	s := newTestSession(t, nil)
	typeText(t, s, "# Title")

	b := activeBlock(t, s)
	if b.Type() != document.HeaderOne {
		t.Errorf("expected header-one, got %s", b.Type())
	}
	if b.Text() != "Title" {
		t.Errorf("expected trigger removed, got %q", b.Text())
	}
	m := s.Metrics().Snapshot()
	if m.Inputs != 7 || m.AutocorrectHits != 1 {
		t.Errorf("unexpected metrics %+v", m)
	}
}

func TestSessionAutocorrectRed(t *testing.T) {
	s := newTestSession(t, nil)
	typeText(t, s, "** hi")

	b := activeBlock(t, s)
	if b.Text() != "hi" {
		t.Fatalf("unexpected text %q", b.Text())
	}
	if !b.HasStyle(document.Red, document.NewRange(0, 2)) {
		t.Errorf("expected red text, got %v", b.Styles())
	}
	if b.HasStyle(document.Bold, document.NewRange(0, 1)) {
		t.Error("text should not be bold")
	}
}

func TestSessionWithoutAutocorrect(t *testing.T) {
	s, err := NewSession(SessionOptions{})
	if err != nil {
		t.Fatal(err)
	}
	typeText(t, s, "# x")
	if got := activeBlock(t, s).Text(); got != "# x" {
		t.Errorf("expected literal text, got %q", got)
	}
}

func TestSessionKeyCommands(t *testing.T) {
	s := newTestSession(t, nil)

	if got := s.HandleKeyCommand("bold"); got != engine.Handled {
		t.Fatalf("bold = %s", got)
	}
	typeText(t, s, "ab")
	if !activeBlock(t, s).HasStyle(document.Bold, document.NewRange(0, 2)) {
		t.Errorf("expected bold text, got %v", activeBlock(t, s).Styles())
	}

	before := s.State()
	if got := s.HandleKeyCommand("no-such-command"); got != engine.NotHandled {
		t.Errorf("unknown command = %s", got)
	}
	if !document.Equal(before.Document(), s.State().Document()) || before.Selection() != s.State().Selection() {
		t.Error("unknown command should not change state")
	}

	if got := s.HandleKeyCommand("header-one"); got != engine.Handled {
		t.Fatalf("header-one = %s", got)
	}
	if activeBlock(t, s).Type() != document.HeaderOne {
		t.Error("expected header-one block")
	}
}

func TestSessionBackspaceResetsBlockType(t *testing.T) {
	s := newTestSession(t, nil)
	typeText(t, s, "# ")
	if activeBlock(t, s).Type() != document.HeaderOne {
		t.Fatal("expected header-one after autocorrect")
	}

	if got := s.HandleKeyCommand("backspace"); got != engine.Handled {
		t.Fatalf("backspace = %s", got)
	}
	if activeBlock(t, s).Type() != document.Normal {
		t.Error("expected block reset to normal")
	}
}

func TestSessionReplace(t *testing.T) {
	s := newTestSession(t, nil)

	b, _ := document.NewBlock("k", document.Normal, "typed")
	doc, _ := document.FromBlocks(b)
	if err := s.Replace(doc, cursor.Collapsed("k", 5)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if !s.Dirty() {
		t.Error("replacing the document should mark the session dirty")
	}
	if s.State().Selection() != cursor.Collapsed("k", 5) {
		t.Errorf("unexpected selection %s", s.State().Selection())
	}

	err := s.Replace(doc, cursor.Collapsed("missing", 0))
	if !errors.Is(err, engine.ErrInvalidSelection) {
		t.Errorf("expected invalid selection error, got %v", err)
	}
	if s.State().Selection() != cursor.Collapsed("k", 5) {
		t.Error("failed Replace should not change state")
	}
}

func TestSessionSaveLoad(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := newTestSession(t, st)

	if err := s.LoadOrNew(ctx); err != nil {
		t.Fatalf("LoadOrNew on empty store failed: %v", err)
	}

	typeText(t, s, "# Notes")
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if s.Dirty() {
		t.Error("save should clear dirty")
	}
	saved := s.State().Document()

	typeText(t, s, " more")
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !document.Equal(saved, s.State().Document()) {
		t.Errorf("loaded %q, want %q", s.State().Document().PlainText(), saved.PlainText())
	}
	if s.State().Selection() != cursor.AtStart(saved) {
		t.Errorf("expected cursor at document start, got %s", s.State().Selection())
	}
	m := s.Metrics().Snapshot()
	if m.Saves != 1 || m.Loads != 1 || m.LastSave.IsZero() {
		t.Errorf("unexpected metrics %+v", m)
	}
}

func TestSessionLoadMalformed(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	bad := snapshot.Snapshot{Blocks: []snapshot.BlockRecord{{Type: "x", Text: "a", Styles: []snapshot.StyleRecord{}}}}
	if err := st.Save(ctx, bad); err != nil {
		t.Fatal(err)
	}

	s := newTestSession(t, st)
	typeText(t, s, "keep")
	err := s.Load(ctx)
	if !errors.Is(err, snapshot.ErrMalformedSnapshot) {
		t.Fatalf("expected ErrMalformedSnapshot, got %v", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "load" {
		t.Errorf("expected load OperationError, got %v", err)
	}
	if s.State().Document().PlainText() != "keep" {
		t.Error("failed load should keep the current document")
	}
}

func TestSessionNoStore(t *testing.T) {
	s := newTestSession(t, nil)
	if err := s.Save(context.Background()); !errors.Is(err, ErrNoStore) {
		t.Errorf("Save: expected ErrNoStore, got %v", err)
	}
	if err := s.Load(context.Background()); !errors.Is(err, ErrNoStore) {
		t.Errorf("Load: expected ErrNoStore, got %v", err)
	}
}

func TestSessionLogsCommandErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})
	d, err := NewDispatcher(dispatcher.DefaultConfig(), logger)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.RegisterHandlerFunc("explode", func(handler.Command, *execctx.ExecutionContext) handler.Result {
		panic("boom")
	}); err != nil {
		t.Fatal(err)
	}

	s, err := NewSession(SessionOptions{Dispatcher: d, Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.HandleKeyCommand("explode"); got != engine.NotHandled {
		t.Errorf("panicking command = %s", got)
	}
	if !strings.Contains(buf.String(), "command explode failed") {
		t.Errorf("expected warning in log, got:\n%s", buf.String())
	}
}
