package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/inkwell/internal/snapshot"
)

// Errors returned by stores.
var (
	// ErrNotFound is returned by Load when nothing has been saved yet.
	ErrNotFound = errors.New("store: document not found")

	// ErrUnknownKind is returned by Open for an unsupported backend name.
	ErrUnknownKind = errors.New("store: unknown kind")

	// ErrNoPath is returned when a disk backend is opened without a path.
	ErrNoPath = errors.New("store: path required")
)

// Store saves and loads a document snapshot.
type Store interface {
	Save(ctx context.Context, s snapshot.Snapshot) error
	Load(ctx context.Context) (snapshot.Snapshot, error)
}

// Kind names a store backend.
type Kind string

// Store backends.
const (
	KindDiskv  Kind = "diskv"
	KindFile   Kind = "file"
	KindMemory Kind = "memory"
)

// DefaultDocument is the document name used by named backends when none
// is given.
const DefaultDocument = "default"

// Open creates a store of the given kind. For KindDiskv path is the base
// directory and name selects the document; for KindFile path is the file.
func Open(kind Kind, path, name string) (Store, error) {
	switch kind {
	case KindDiskv:
		if path == "" {
			return nil, ErrNoPath
		}
		return NewDiskvStore(path, name), nil
	case KindFile:
		if path == "" {
			return nil, ErrNoPath
		}
		return NewFileStore(path), nil
	case KindMemory, "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
