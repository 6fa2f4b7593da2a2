// Package handler provides the handler interface and types for command dispatch.
package handler

import (
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
)

// Command is a symbolic editing command such as "bold" or "backspace".
type Command struct {
	// Name is the command name, optionally namespaced ("style.bold").
	Name string

	// Text is the payload of text insertion commands.
	Text string
}

// Handler processes a specific command or set of commands.
type Handler interface {
	// Handle executes the command and returns a result.
	Handle(cmd Command, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the command.
	CanHandle(name string) bool

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// HandlerFunc is a function adapter for Handler interface.
type HandlerFunc struct {
	fn   func(cmd Command, ctx *execctx.ExecutionContext) Result
	prio int
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn func(cmd Command, ctx *execctx.ExecutionContext) Result) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: 0}
}

// NewHandlerFuncWithPriority creates a HandlerFunc with a specified priority.
func NewHandlerFuncWithPriority(fn func(cmd Command, ctx *execctx.ExecutionContext) Result, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(cmd Command, ctx *execctx.ExecutionContext) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(cmd, ctx)
}

// CanHandle implements Handler.CanHandle.
// HandlerFunc always returns true; caller must ensure correct routing.
func (f *HandlerFunc) CanHandle(name string) bool {
	return true
}

// Priority implements Handler.Priority.
func (f *HandlerFunc) Priority() int {
	return f.prio
}

// NamespaceHandler handles all commands within a namespace.
// A namespace is the prefix before the first dot (e.g., "style" in "style.bold").
type NamespaceHandler interface {
	// HandleCommand handles a command within this namespace.
	HandleCommand(cmd Command, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the command.
	CanHandle(name string) bool

	// Namespace returns the namespace prefix (e.g., "style", "block").
	Namespace() string
}

// namespaceAdapter adapts NamespaceHandler to Handler interface.
type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(cmd Command, ctx *execctx.ExecutionContext) Result {
	return a.h.HandleCommand(cmd, ctx)
}

func (a *namespaceAdapter) CanHandle(name string) bool {
	return a.h.CanHandle(name)
}

func (a *namespaceAdapter) Priority() int {
	return 0
}

// BaseNamespaceHandler provides a base implementation for namespace handlers.
type BaseNamespaceHandler struct {
	namespace string
	commands  map[string]func(cmd Command, ctx *execctx.ExecutionContext) Result
}

// NewBaseNamespaceHandler creates a new BaseNamespaceHandler.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		commands:  make(map[string]func(cmd Command, ctx *execctx.ExecutionContext) Result),
	}
}

// Register registers a handler function for a fully qualified command name.
func (h *BaseNamespaceHandler) Register(name string, fn func(cmd Command, ctx *execctx.ExecutionContext) Result) {
	h.commands[name] = fn
}

// Namespace implements NamespaceHandler.Namespace.
func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

// CanHandle implements NamespaceHandler.CanHandle.
func (h *BaseNamespaceHandler) CanHandle(name string) bool {
	_, ok := h.commands[name]
	return ok
}

// Commands returns the registered command names.
func (h *BaseNamespaceHandler) Commands() []string {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	return names
}

// HandleCommand implements NamespaceHandler.HandleCommand.
func (h *BaseNamespaceHandler) HandleCommand(cmd Command, ctx *execctx.ExecutionContext) Result {
	fn, ok := h.commands[cmd.Name]
	if !ok {
		return NotHandledWithError(ErrUnknownCommand)
	}
	return fn(cmd, ctx)
}
