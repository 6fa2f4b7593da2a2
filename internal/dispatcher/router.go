package dispatcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/inkwell/internal/dispatcher/handler"
)

// Router routes namespaced commands ("style.bold") to namespace handlers.
type Router struct {
	mu         sync.RWMutex
	namespaces map[string]handler.NamespaceHandler
}

// NewRouter creates a new command router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// RegisterNamespace registers a handler for all commands in a namespace.
func (r *Router) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// Route finds the handler for a namespaced command, or nil.
func (r *Router) Route(name string) handler.Handler {
	namespace := extractNamespace(name)
	if namespace == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if h, ok := r.namespaces[namespace]; ok && h.CanHandle(name) {
		return handler.NewNamespaceAdapter(h)
	}
	return nil
}

// HasNamespace returns true if a handler is registered for the namespace.
func (r *Router) HasNamespace(namespace string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.namespaces[namespace]
	return ok
}

// Namespaces returns all registered namespace names, sorted.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extractNamespace returns the part before the first dot, or "".
func extractNamespace(name string) string {
	idx := strings.Index(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// ExtractCommandName strips the namespace: "style.bold" -> "bold".
func ExtractCommandName(fullName string) string {
	idx := strings.Index(fullName, ".")
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}

// BuildCommandName joins a namespace and command: "style", "bold" -> "style.bold".
func BuildCommandName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
