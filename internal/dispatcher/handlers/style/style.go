// Package style provides the rich-text key commands: inline style toggles,
// the header toggle and block-style reset on backspace.
package style

import (
	"strings"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/engine/document"
)

// Namespace is the router namespace for "style.<tag>" commands.
const Namespace = "style"

// Command names.
const (
	CommandBold                 = "bold"
	CommandItalic               = "italic"
	CommandUnderline            = "underline"
	CommandCode                 = "code"
	CommandStrikethrough        = "strikethrough"
	CommandHeader               = "header"
	CommandHeaderOne            = "header-one"
	CommandBackspace            = "backspace"
	CommandBackspaceWord        = "backspace-word"
	CommandBackspaceToLineStart = "backspace-to-start-of-line"
)

// inlineCommands maps key commands onto the tags they toggle.
var inlineCommands = map[string]document.StyleTag{
	CommandBold:          document.Bold,
	CommandItalic:        document.Italic,
	CommandUnderline:     document.Underline,
	CommandCode:          document.Code,
	CommandStrikethrough: document.Strikethrough,
}

// Registrar is the part of the dispatcher Install needs.
type Registrar interface {
	RegisterHandler(name string, h handler.Handler) error
	RegisterNamespace(namespace string, h handler.NamespaceHandler)
}

// Install registers the key commands by their plain names and a "style"
// namespace with one "style.<tag>" command per known tag.
func Install(r Registrar) error {
	for name, fn := range commands() {
		if err := r.RegisterHandler(name, handler.NewHandlerFunc(fn)); err != nil {
			return err
		}
	}
	r.RegisterNamespace(Namespace, NewNamespaceHandler())
	return nil
}

// Commands returns the plain command names Install registers.
func Commands() []string {
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	return names
}

// NewNamespaceHandler returns a handler for "style.<tag>" commands, for
// example "style.red".
func NewNamespaceHandler() *handler.BaseNamespaceHandler {
	h := handler.NewBaseNamespaceHandler(Namespace)
	for _, tag := range document.StyleTags() {
		h.Register(Namespace+"."+strings.ToLower(string(tag)), toggleInline(tag))
	}
	return h
}

func commands() map[string]func(handler.Command, *execctx.ExecutionContext) handler.Result {
	cmds := make(map[string]func(handler.Command, *execctx.ExecutionContext) handler.Result)
	for name, tag := range inlineCommands {
		cmds[name] = toggleInline(tag)
	}
	cmds[CommandHeader] = toggleHeader
	cmds[CommandHeaderOne] = toggleHeader
	cmds[CommandBackspace] = backspace
	cmds[CommandBackspaceWord] = backspace
	cmds[CommandBackspaceToLineStart] = backspace
	return cmds
}

func toggleInline(tag document.StyleTag) func(handler.Command, *execctx.ExecutionContext) handler.Result {
	return func(_ handler.Command, ctx *execctx.ExecutionContext) handler.Result {
		next, err := ctx.State.ToggleInlineStyle(tag)
		if err != nil {
			return handler.NotHandledWithError(err)
		}
		return handler.Handled(next)
	}
}

func toggleHeader(_ handler.Command, ctx *execctx.ExecutionContext) handler.Result {
	next, err := ctx.State.ToggleBlockType(document.HeaderOne)
	if err != nil {
		return handler.NotHandledWithError(err)
	}
	return handler.Handled(next)
}

// backspace resets the block type when a cursor sits at the start of an
// empty styled block, or at the start of the first block. Everything else
// is left to the default deletion.
func backspace(_ handler.Command, ctx *execctx.ExecutionContext) handler.Result {
	sel := ctx.State.Selection()
	if !sel.IsCollapsed() || sel.Focus != 0 {
		return handler.NotHandled()
	}
	b, err := ctx.ActiveBlock()
	if err != nil {
		return handler.NotHandledWithError(err)
	}

	doc := ctx.State.Document()
	if b.Len() > 0 && b.Key() != doc.First().Key() {
		return handler.NotHandled()
	}
	if b.Type() == document.CodeBlock {
		if idx := doc.Index(b.Key()); idx > 0 {
			prev, _ := doc.BlockAt(idx - 1)
			if prev.Type() == document.CodeBlock && prev.Len() != 0 {
				return handler.NotHandled()
			}
		}
	}
	if b.Type() == document.Normal {
		return handler.NotHandled()
	}

	next, err := ctx.State.SetBlockType(document.Normal)
	if err != nil {
		return handler.NotHandledWithError(err)
	}
	return handler.Handled(next)
}
