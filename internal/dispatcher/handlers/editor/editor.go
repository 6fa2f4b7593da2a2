// Package editor provides the default editing and cursor movement commands
// a renderer falls back to when a keystroke is not handled by the rich-text
// commands.
package editor

import (
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
)

// Namespaces.
const (
	EditNamespace   = "editor"
	CursorNamespace = "cursor"
)

// Edit command names.
const (
	CommandInsertText     = "editor.insert-text"
	CommandSplitBlock     = "editor.split-block"
	CommandDeleteBackward = "editor.delete-backward"
)

// Registrar is the part of the dispatcher Install needs.
type Registrar interface {
	RegisterNamespace(namespace string, h handler.NamespaceHandler)
}

// Install registers the "editor" and "cursor" namespaces.
func Install(r Registrar) {
	r.RegisterNamespace(EditNamespace, NewEditHandler())
	r.RegisterNamespace(CursorNamespace, NewCursorHandler())
}

// NewEditHandler returns the handler for default edits.
func NewEditHandler() *handler.BaseNamespaceHandler {
	h := handler.NewBaseNamespaceHandler(EditNamespace)
	h.Register(CommandInsertText, insertText)
	h.Register(CommandSplitBlock, splitBlock)
	h.Register(CommandDeleteBackward, deleteBackward)
	return h
}

func insertText(cmd handler.Command, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.NotHandledWithError(err)
	}
	if cmd.Text == "" {
		return handler.NotHandled()
	}
	next, err := ctx.State.InsertText(cmd.Text)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Handled(next)
}

func splitBlock(_ handler.Command, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.NotHandledWithError(err)
	}
	next, err := ctx.State.SplitBlock()
	if err != nil {
		return handler.Error(err)
	}
	return handler.Handled(next)
}

func deleteBackward(_ handler.Command, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.NotHandledWithError(err)
	}
	next, err := ctx.State.Backspace()
	if err != nil {
		return handler.NotHandledWithError(err)
	}
	return handler.Handled(next)
}
