package dispatcher

import (
	"errors"

	"github.com/dshills/inkwell/internal/dispatcher/handler"
)

// Dispatcher errors.
var (
	// ErrUnknownCommand indicates no handler was found for a command.
	ErrUnknownCommand = handler.ErrUnknownCommand

	// ErrCommandCancelled indicates the command was cancelled by a hook.
	ErrCommandCancelled = errors.New("dispatcher: command cancelled by hook")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidCommand indicates an empty or malformed command name.
	ErrInvalidCommand = errors.New("dispatcher: invalid command")
)
