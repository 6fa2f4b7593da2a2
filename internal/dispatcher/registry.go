package dispatcher

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/inkwell/internal/dispatcher/handler"
)

// Registry manages handler registration by exact command name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]handler.Handler // sorted by priority, highest first
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string][]handler.Handler),
	}
}

// Register adds a handler for a command name. Handlers of equal priority
// keep registration order.
func (r *Registry) Register(name string, h handler.Handler) error {
	if name == "" || h == nil {
		return fmt.Errorf("%w: %q", ErrInvalidCommand, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	handlers := append(r.handlers[name], h)
	sort.SliceStable(handlers, func(i, j int) bool {
		return handlers[i].Priority() > handlers[j].Priority()
	})
	r.handlers[name] = handlers
	return nil
}

// Unregister removes all handlers for a command name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Get returns the highest priority handler for a command, or nil.
func (r *Registry) Get(name string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.handlers[name] {
		if h.CanHandle(name) {
			return h
		}
	}
	return nil
}

// Has returns true if a handler is registered for the command.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// List returns all registered command names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered command names.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
