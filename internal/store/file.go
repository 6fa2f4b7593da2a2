package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/inkwell/internal/snapshot"
)

// FileStore keeps a single snapshot in a JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store for the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string { return s.path }

// Save writes the snapshot to a temporary file in the same directory and
// renames it over the target, so readers never see a partial write.
func (s *FileStore) Save(ctx context.Context, snap snapshot.Snapshot) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	data, err := snapshot.Encode(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: ensure directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("store: write %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("store: sync %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("store: close %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("store: rename %s: %w", s.path, err)
	}
	return nil
}

// Load reads the snapshot from the file.
func (s *FileStore) Load(ctx context.Context) (snapshot.Snapshot, error) {
	if err := checkContext(ctx); err != nil {
		return snapshot.Snapshot{}, err
	}

	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()

	if errors.Is(err, fs.ErrNotExist) {
		return snapshot.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("store: read %s: %w", s.path, err)
	}
	return snapshot.Decode(data)
}

// EventType describes a change to a watched file.
type EventType int

const (
	// EventChanged indicates the file was written or replaced.
	EventChanged EventType = iota
	// EventRemoved indicates the file was removed.
	EventRemoved
	// EventError carries a watcher error.
	EventError
)

// String returns a readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by FileStore.Watch.
type Event struct {
	Type EventType
	Path string
	Err  error
}

// Watch streams change events for the store's file until ctx is cancelled.
// The parent directory is watched so atomic replacements are seen. Events
// are dropped if the consumer falls behind; the channel is closed when the
// watch ends.
func (s *FileStore) Watch(ctx context.Context) (<-chan Event, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer watcher.Close()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				send(Event{Type: EventError, Path: s.path, Err: err})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != s.path {
					continue
				}
				switch {
				case evt.Has(fsnotify.Remove):
					send(Event{Type: EventRemoved, Path: s.path})
				case evt.Has(fsnotify.Write), evt.Has(fsnotify.Create), evt.Has(fsnotify.Rename):
					send(Event{Type: EventChanged, Path: s.path})
				}
			}
		}
	}()

	return events, nil
}
