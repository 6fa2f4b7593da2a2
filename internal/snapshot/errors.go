package snapshot

import (
	"errors"
	"fmt"
)

// ErrMalformedSnapshot matches every decoding failure through errors.Is.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// MalformedError describes why a snapshot could not be decoded.
type MalformedError struct {
	// Path locates the offending element, e.g. "blocks[0].styles[1]".
	// Empty for errors about the input as a whole.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *MalformedError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrMalformedSnapshot, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrMalformedSnapshot, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *MalformedError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformedSnapshot.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedSnapshot
}

func malformed(path string, err error) *MalformedError {
	return &MalformedError{Path: path, Err: err}
}

func malformedf(path, format string, args ...any) *MalformedError {
	return &MalformedError{Path: path, Err: fmt.Errorf(format, args...)}
}

func blockPath(i int) string {
	return fmt.Sprintf("blocks[%d]", i)
}

func stylePath(i, j int) string {
	return fmt.Sprintf("blocks[%d].styles[%d]", i, j)
}
