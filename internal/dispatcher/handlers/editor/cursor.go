package editor

import (
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/document"
)

// Cursor command names.
const (
	CommandLeft        = "cursor.left"
	CommandRight       = "cursor.right"
	CommandUp          = "cursor.up"
	CommandDown        = "cursor.down"
	CommandHome        = "cursor.home"
	CommandEnd         = "cursor.end"
	CommandSelectLeft  = "cursor.select-left"
	CommandSelectRight = "cursor.select-right"
)

// NewCursorHandler returns the handler for cursor movement. Moving left or
// right past a block boundary lands in the neighbouring block; moving up or
// down keeps the offset where the target block allows.
func NewCursorHandler() *handler.BaseNamespaceHandler {
	h := handler.NewBaseNamespaceHandler(CursorNamespace)
	h.Register(CommandLeft, move(left))
	h.Register(CommandRight, move(right))
	h.Register(CommandUp, move(up))
	h.Register(CommandDown, move(down))
	h.Register(CommandHome, move(home))
	h.Register(CommandEnd, move(end))
	h.Register(CommandSelectLeft, extend(-1))
	h.Register(CommandSelectRight, extend(1))
	return h
}

type motion func(doc document.Document, idx int, b document.Block, sel cursor.Selection) cursor.Selection

func move(m motion) func(handler.Command, *execctx.ExecutionContext) handler.Result {
	return func(_ handler.Command, ctx *execctx.ExecutionContext) handler.Result {
		b, err := ctx.ActiveBlock()
		if err != nil {
			return handler.NotHandledWithError(err)
		}
		doc := ctx.State.Document()
		sel := ctx.State.Selection()
		return reselect(ctx.State, m(doc, doc.Index(b.Key()), b, sel))
	}
}

func extend(delta int) func(handler.Command, *execctx.ExecutionContext) handler.Result {
	return func(_ handler.Command, ctx *execctx.ExecutionContext) handler.Result {
		b, err := ctx.ActiveBlock()
		if err != nil {
			return handler.NotHandledWithError(err)
		}
		sel := ctx.State.Selection()
		focus := sel.Focus + delta
		if focus < 0 || focus > b.Len() {
			return handler.NotHandled()
		}
		return reselect(ctx.State, sel.Extend(focus))
	}
}

func reselect(st engine.State, sel cursor.Selection) handler.Result {
	if sel == st.Selection() {
		return handler.NotHandled()
	}
	next, err := st.WithSelection(sel)
	if err != nil {
		return handler.NotHandledWithError(err)
	}
	return handler.Handled(next)
}

func left(doc document.Document, idx int, b document.Block, sel cursor.Selection) cursor.Selection {
	if !sel.IsCollapsed() {
		return sel.CollapseToStart()
	}
	if sel.Focus > 0 {
		return cursor.Collapsed(b.Key(), sel.Focus-1)
	}
	if prev, ok := doc.BlockAt(idx - 1); ok {
		return cursor.Collapsed(prev.Key(), prev.Len())
	}
	return sel
}

func right(doc document.Document, idx int, b document.Block, sel cursor.Selection) cursor.Selection {
	if !sel.IsCollapsed() {
		return sel.CollapseToEnd()
	}
	if sel.Focus < b.Len() {
		return cursor.Collapsed(b.Key(), sel.Focus+1)
	}
	if next, ok := doc.BlockAt(idx + 1); ok {
		return cursor.Collapsed(next.Key(), 0)
	}
	return sel
}

func up(doc document.Document, idx int, _ document.Block, sel cursor.Selection) cursor.Selection {
	prev, ok := doc.BlockAt(idx - 1)
	if !ok {
		return cursor.Collapsed(sel.BlockKey, 0)
	}
	return cursor.Collapsed(prev.Key(), min(sel.Focus, prev.Len()))
}

func down(doc document.Document, idx int, b document.Block, sel cursor.Selection) cursor.Selection {
	next, ok := doc.BlockAt(idx + 1)
	if !ok {
		return cursor.Collapsed(b.Key(), b.Len())
	}
	return cursor.Collapsed(next.Key(), min(sel.Focus, next.Len()))
}

func home(_ document.Document, _ int, b document.Block, _ cursor.Selection) cursor.Selection {
	return cursor.Collapsed(b.Key(), 0)
}

func end(_ document.Document, _ int, b document.Block, _ cursor.Selection) cursor.Selection {
	return cursor.Collapsed(b.Key(), b.Len())
}
