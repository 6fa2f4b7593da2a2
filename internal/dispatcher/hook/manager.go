package hook

import (
	"sort"
	"sync"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
)

// Manager manages dispatch hooks with priority-based ordering.
type Manager struct {
	mu        sync.RWMutex
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// NewManager creates a new hook manager.
func NewManager() *Manager {
	return &Manager{}
}

// RegisterPre adds a pre-dispatch hook. A hook with the same name is
// replaced.
func (m *Manager) RegisterPre(h PreDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.preHooks = replaceOrAppend(m.preHooks, h)
	sort.SliceStable(m.preHooks, func(i, j int) bool {
		return m.preHooks[i].Priority() > m.preHooks[j].Priority()
	})
}

// RegisterPost adds a post-dispatch hook. A hook with the same name is
// replaced.
func (m *Manager) RegisterPost(h PostDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.postHooks = replaceOrAppend(m.postHooks, h)
	sort.SliceStable(m.postHooks, func(i, j int) bool {
		return m.postHooks[i].Priority() < m.postHooks[j].Priority()
	})
}

// Register adds a hook to every list whose interface it implements.
func (m *Manager) Register(h Hook) {
	if pre, ok := h.(PreDispatchHook); ok {
		m.RegisterPre(pre)
	}
	if post, ok := h.(PostDispatchHook); ok {
		m.RegisterPost(post)
	}
}

// Unregister removes a hook by name from both lists.
func (m *Manager) Unregister(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed bool
	m.preHooks, removed = removeNamed(m.preHooks, name)
	var removedPost bool
	m.postHooks, removedPost = removeNamed(m.postHooks, name)
	return removed || removedPost
}

// RunPreDispatch runs pre-dispatch hooks in priority order. If a hook
// cancels the command, it returns false and the hook's name.
func (m *Manager) RunPreDispatch(cmd *handler.Command, ctx *execctx.ExecutionContext) (bool, string) {
	m.mu.RLock()
	hooks := make([]PreDispatchHook, len(m.preHooks))
	copy(hooks, m.preHooks)
	m.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(cmd, ctx) {
			return false, h.Name()
		}
	}
	return true, ""
}

// RunPostDispatch runs post-dispatch hooks from lowest to highest priority.
func (m *Manager) RunPostDispatch(cmd *handler.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
	m.mu.RLock()
	hooks := make([]PostDispatchHook, len(m.postHooks))
	copy(hooks, m.postHooks)
	m.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(cmd, ctx, result)
	}
}

// PreHookNames returns the names of the pre-dispatch hooks in run order.
func (m *Manager) PreHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return names(m.preHooks)
}

// PostHookNames returns the names of the post-dispatch hooks in run order.
func (m *Manager) PostHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return names(m.postHooks)
}

// Clear removes all hooks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preHooks = nil
	m.postHooks = nil
}

func replaceOrAppend[H Hook](hooks []H, h H) []H {
	for i, existing := range hooks {
		if existing.Name() == h.Name() {
			hooks[i] = h
			return hooks
		}
	}
	return append(hooks, h)
}

func removeNamed[H Hook](hooks []H, name string) ([]H, bool) {
	for i, h := range hooks {
		if h.Name() == name {
			return append(hooks[:i], hooks[i+1:]...), true
		}
	}
	return hooks, false
}

func names[H Hook](hooks []H) []string {
	out := make([]string, len(hooks))
	for i, h := range hooks {
		out[i] = h.Name()
	}
	return out
}
