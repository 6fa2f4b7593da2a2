package hook

import (
	"strings"
	"time"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
)

// Standard hook priorities.
const (
	PriorityAudit    = 1000 // Runs first (pre) / last (post)
	PriorityReadOnly = 900
	PriorityFilter   = 800
)

// AuditHook logs all dispatched commands.
type AuditHook struct {
	logger execctx.Logger
}

// NewAuditHook creates an audit hook with the given logger.
func NewAuditHook(logger execctx.Logger) *AuditHook {
	return &AuditHook{logger: logger}
}

// Name implements Hook.
func (h *AuditHook) Name() string { return "audit" }

// Priority implements Hook.
func (h *AuditHook) Priority() int { return PriorityAudit }

// PreDispatch logs the command being dispatched.
func (h *AuditHook) PreDispatch(cmd *handler.Command, ctx *execctx.ExecutionContext) bool {
	if h.logger != nil {
		h.logger.Debug("dispatch start: %s at %s", cmd.Name, ctx.State.Selection())
	}
	return true
}

// PostDispatch logs the dispatch result.
func (h *AuditHook) PostDispatch(cmd *handler.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
	if h.logger == nil {
		return
	}
	switch {
	case result.Status == handler.StatusError:
		h.logger.Error("dispatch failed: %s: %v", cmd.Name, result.Error)
	case result.Error != nil:
		h.logger.Debug("dispatch complete: %s -> %s (%v)", cmd.Name, result.Status, result.Error)
	default:
		h.logger.Debug("dispatch complete: %s -> %s", cmd.Name, result.Status)
	}
}

// ReadOnlyHook cancels commands while the context is read-only, except
// those whose names start with one of its allowed prefixes.
type ReadOnlyHook struct {
	allowed []string
}

// NewReadOnlyHook creates a read-only enforcement hook. Commands matching
// allowedPrefixes, such as "cursor.", still run.
func NewReadOnlyHook(allowedPrefixes ...string) *ReadOnlyHook {
	return &ReadOnlyHook{allowed: allowedPrefixes}
}

// Name implements Hook.
func (h *ReadOnlyHook) Name() string { return "read-only" }

// Priority implements Hook.
func (h *ReadOnlyHook) Priority() int { return PriorityReadOnly }

// PreDispatch cancels commands on read-only documents.
func (h *ReadOnlyHook) PreDispatch(cmd *handler.Command, ctx *execctx.ExecutionContext) bool {
	if !ctx.ReadOnly {
		return true
	}
	for _, prefix := range h.allowed {
		if strings.HasPrefix(cmd.Name, prefix) {
			return true
		}
	}
	return false
}

// FilterHook allows or blocks commands based on a predicate.
type FilterHook struct {
	name     string
	priority int
	allow    func(cmd *handler.Command, ctx *execctx.ExecutionContext) bool
}

// NewFilterHook creates a command filter hook.
func NewFilterHook(name string, priority int, allow func(*handler.Command, *execctx.ExecutionContext) bool) *FilterHook {
	return &FilterHook{name: name, priority: priority, allow: allow}
}

// NewDisabledCommandsHook creates a filter hook that cancels the named
// commands.
func NewDisabledCommandsHook(disabled []string) *FilterHook {
	set := make(map[string]struct{}, len(disabled))
	for _, name := range disabled {
		set[name] = struct{}{}
	}
	return NewFilterHook("disabled-commands", PriorityFilter, func(cmd *handler.Command, _ *execctx.ExecutionContext) bool {
		_, blocked := set[cmd.Name]
		return !blocked
	})
}

// Name implements Hook.
func (h *FilterHook) Name() string { return h.name }

// Priority implements Hook.
func (h *FilterHook) Priority() int { return h.priority }

// PreDispatch applies the filter.
func (h *FilterHook) PreDispatch(cmd *handler.Command, ctx *execctx.ExecutionContext) bool {
	if h.allow == nil {
		return true
	}
	return h.allow(cmd, ctx)
}

// TimingHook measures command execution time. Start times are stored on
// the ExecutionContext so cancelled dispatches leave nothing behind.
type TimingHook struct {
	callback func(command string, duration time.Duration)
}

const timingStartKey = "_timing_start"

// NewTimingHook creates a timing hook.
func NewTimingHook(callback func(command string, duration time.Duration)) *TimingHook {
	return &TimingHook{callback: callback}
}

// Name implements Hook.
func (h *TimingHook) Name() string { return "timing" }

// Priority implements Hook.
func (h *TimingHook) Priority() int { return PriorityAudit }

// PreDispatch records the start time on the context.
func (h *TimingHook) PreDispatch(cmd *handler.Command, ctx *execctx.ExecutionContext) bool {
	ctx.SetData(timingStartKey, time.Now())
	return true
}

// PostDispatch reports the duration.
func (h *TimingHook) PostDispatch(cmd *handler.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
	v, ok := ctx.GetData(timingStartKey)
	if !ok {
		return
	}
	if start, ok := v.(time.Time); ok && h.callback != nil {
		h.callback(cmd.Name, time.Since(start))
	}
}
