package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/document"
)

func newCtx() *execctx.ExecutionContext {
	return execctx.New(engine.NewState(document.New()))
}

func TestHandlerFunc(t *testing.T) {
	called := false
	fn := handler.NewHandlerFunc(func(cmd handler.Command, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Handled(ctx.State)
	})

	result := fn.Handle(handler.Command{Name: "test"}, newCtx())

	if !called {
		t.Error("expected handler func to be called")
	}
	if result.Status != handler.StatusHandled {
		t.Errorf("expected StatusHandled, got %v", result.Status)
	}
}

func TestHandlerFuncNil(t *testing.T) {
	fn := &handler.HandlerFunc{}
	result := fn.Handle(handler.Command{Name: "test"}, newCtx())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

func TestHandlerFuncCanHandle(t *testing.T) {
	fn := handler.NewHandlerFunc(func(cmd handler.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.NotHandled()
	})

	if !fn.CanHandle("anything") {
		t.Error("expected CanHandle to return true")
	}
	if fn.Priority() != 0 {
		t.Errorf("expected priority 0, got %d", fn.Priority())
	}
}

func TestHandlerFuncWithPriority(t *testing.T) {
	fn := handler.NewHandlerFuncWithPriority(func(cmd handler.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.NotHandled()
	}, 50)

	if fn.Priority() != 50 {
		t.Errorf("expected priority 50, got %d", fn.Priority())
	}
}

func TestBaseNamespaceHandler(t *testing.T) {
	bnh := handler.NewBaseNamespaceHandler("style")
	bnh.Register("style.bold", func(cmd handler.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Handled(ctx.State).WithMessage(cmd.Name)
	})

	if bnh.Namespace() != "style" {
		t.Errorf("expected namespace 'style', got %q", bnh.Namespace())
	}
	if !bnh.CanHandle("style.bold") {
		t.Error("expected CanHandle('style.bold')")
	}
	if bnh.CanHandle("style.blink") {
		t.Error("did not expect CanHandle('style.blink')")
	}
	if len(bnh.Commands()) != 1 {
		t.Errorf("expected 1 command, got %v", bnh.Commands())
	}

	adapter := handler.NewNamespaceAdapter(bnh)
	result := adapter.Handle(handler.Command{Name: "style.bold"}, newCtx())
	if result.Message != "style.bold" {
		t.Errorf("expected message 'style.bold', got %q", result.Message)
	}

	result = bnh.HandleCommand(handler.Command{Name: "style.blink"}, newCtx())
	if result.Status != handler.StatusNotHandled {
		t.Errorf("expected StatusNotHandled, got %v", result.Status)
	}
	if !errors.Is(result.Error, handler.ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", result.Error)
	}
}
