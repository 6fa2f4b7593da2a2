package handler

import (
	"errors"
	"fmt"

	"github.com/dshills/inkwell/internal/engine"
)

// ErrUnknownCommand indicates a command no handler recognizes.
var ErrUnknownCommand = errors.New("unknown command")

// ResultStatus indicates the outcome of a command.
type ResultStatus uint8

const (
	// StatusNotHandled indicates the command did not apply; the state is
	// unchanged and the caller may fall back to default behavior.
	StatusNotHandled ResultStatus = iota
	// StatusHandled indicates the command produced a new state.
	StatusHandled
	// StatusError indicates an error occurred.
	StatusError
	// StatusCancelled indicates a hook cancelled the command.
	StatusCancelled
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusNotHandled:
		return "not-handled"
	case StatusHandled:
		return "handled"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling a command.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// State is the editor state after the command. For anything but
	// StatusHandled it equals the state the command was dispatched with.
	State engine.State

	// Error contains any error that occurred. A not-handled result may carry
	// the reason here for logging.
	Error error

	// Message is an optional status message for display.
	Message string

	// Data holds handler-specific return data.
	Data map[string]interface{}
}

// IsHandled returns true if the command produced a new state.
func (r Result) IsHandled() bool {
	return r.Status == StatusHandled
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Outcome maps the result onto the renderer-facing outcome.
func (r Result) Outcome() engine.Outcome {
	if r.Status == StatusHandled {
		return engine.Handled
	}
	return engine.NotHandled
}

// Handled creates a result carrying the new state.
func Handled(st engine.State) Result {
	return Result{Status: StatusHandled, State: st}
}

// NotHandled creates a not-handled result.
func NotHandled() Result {
	return Result{Status: StatusNotHandled}
}

// NotHandledWithError creates a not-handled result that records why.
func NotHandledWithError(err error) Result {
	return Result{Status: StatusNotHandled, Error: err}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// Cancelled creates a cancelled result.
func Cancelled() Result {
	return Result{Status: StatusCancelled}
}

// CancelledWithMessage creates a cancelled result with a message.
func CancelledWithMessage(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithState returns a copy of the result carrying st.
func (r Result) WithState(st engine.State) Result {
	r.State = st
	return r
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value interface{}) Result {
	if r.Data == nil {
		r.Data = make(map[string]interface{})
	}
	r.Data[key] = value
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (interface{}, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from the result data.
func (r Result) GetDataString(key string) string {
	if v, ok := r.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
