package execctx_test

import (
	"errors"
	"testing"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/document"
)

func testState(t *testing.T) engine.State {
	t.Helper()
	b, err := document.NewBlock("k", document.Normal, "hello")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.FromBlocks(b)
	if err != nil {
		t.Fatal(err)
	}
	return engine.NewState(doc, engine.WithSelection(cursor.Collapsed("k", 5)))
}

func TestNew(t *testing.T) {
	ctx := execctx.New(testState(t))

	if ctx.Logger == nil {
		t.Error("expected default logger")
	}
	if ctx.Data == nil {
		t.Error("expected Data to be initialized")
	}
	if ctx.HasSelection() {
		t.Error("expected collapsed selection")
	}
	if err := ctx.ValidateForEdit(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWithLoggerNil(t *testing.T) {
	ctx := execctx.New(testState(t)).WithLogger(nil)
	if ctx.Logger == nil {
		t.Fatal("expected nil logger to be replaced")
	}
	ctx.Logger.Debug("ignored %d", 1)
}

func TestValidateForEditReadOnly(t *testing.T) {
	ctx := execctx.New(testState(t)).WithReadOnly(true)

	if err := ctx.Validate(); err != nil {
		t.Errorf("Validate should ignore read-only, got %v", err)
	}
	if err := ctx.ValidateForEdit(); !errors.Is(err, execctx.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}

func TestValidateInvalidSelection(t *testing.T) {
	ctx := execctx.New(engine.State{})

	if err := ctx.Validate(); !errors.Is(err, execctx.ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection, got %v", err)
	}
	if _, err := ctx.ActiveBlock(); !errors.Is(err, execctx.ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection, got %v", err)
	}
	if b, err := execctx.New(testState(t)).ActiveBlock(); err != nil || b.Text() != "hello" {
		t.Errorf("unexpected block %v, %v", b, err)
	}
}

func TestData(t *testing.T) {
	ctx := execctx.New(testState(t))
	ctx.SetData("name", "bold")

	if got := ctx.GetDataString("name"); got != "bold" {
		t.Errorf("expected 'bold', got %q", got)
	}
	if got := ctx.GetDataString("missing"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if _, ok := ctx.GetData("missing"); ok {
		t.Error("expected missing key")
	}
}
