// Package execctx provides the execution context for command handlers.
package execctx

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/document"
)

// Logger is the logging surface handlers may use.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// ExecutionContext provides context for command execution.
type ExecutionContext struct {
	// State is the editor state the command applies to.
	State engine.State

	// Logger receives handler diagnostics. Never nil.
	Logger Logger

	// ReadOnly marks the document as not editable.
	ReadOnly bool

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context for st.
func New(st engine.State) *ExecutionContext {
	return &ExecutionContext{
		State:  st,
		Logger: nopLogger{},
		Data:   make(map[string]interface{}),
	}
}

// WithLogger returns the context with the logger set.
func (ctx *ExecutionContext) WithLogger(l Logger) *ExecutionContext {
	if l == nil {
		l = nopLogger{}
	}
	ctx.Logger = l
	return ctx
}

// WithReadOnly returns the context with read-only mode set.
func (ctx *ExecutionContext) WithReadOnly(readOnly bool) *ExecutionContext {
	ctx.ReadOnly = readOnly
	return ctx
}

// HasSelection returns true if the selection spans at least one character.
func (ctx *ExecutionContext) HasSelection() bool {
	return !ctx.State.Selection().IsCollapsed()
}

// ActiveBlock returns the block under the selection.
func (ctx *ExecutionContext) ActiveBlock() (document.Block, error) {
	b, err := ctx.State.ActiveBlock()
	if err != nil {
		return document.Block{}, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return b, nil
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (ctx *ExecutionContext) GetDataString(key string) string {
	if v, ok := ctx.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Validate checks that the selection addresses the document.
func (ctx *ExecutionContext) Validate() error {
	if err := ctx.State.Selection().Validate(ctx.State.Document()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.ReadOnly {
		return ErrReadOnly
	}
	return nil
}
