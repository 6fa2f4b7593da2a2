// Package hook provides pre/post dispatch hooks for the command dispatcher.
//
// Hooks intercept command dispatch for logging, filtering and timing. A
// pre-dispatch hook may cancel a command; a post-dispatch hook may inspect
// or amend the result.
//
// # Priority
//
// Pre-hooks run from highest to lowest priority. Post-hooks run from lowest
// to highest, so the highest priority hook sees the final result:
//
//	PriorityAudit      = 1000
//	PriorityReadOnly   = 900
//	PriorityFilter     = 800
//
// # Built-in Hooks
//
//   - AuditHook: logs every command and its outcome
//   - ReadOnlyHook: cancels commands while the context is read-only
//   - FilterHook: cancels commands rejected by a predicate, e.g. commands
//     disabled in configuration
//   - TimingHook: reports how long each command took
//
// # Usage
//
//	manager := hook.NewManager()
//	manager.Register(hook.NewAuditHook(logger))
//	manager.RegisterPre(hook.NewDisabledCommandsHook([]string{"strikethrough"}))
//
//	if ok, _ := manager.RunPreDispatch(&cmd, ctx); ok {
//	    result := h.Handle(cmd, ctx)
//	    manager.RunPostDispatch(&cmd, ctx, &result)
//	}
package hook
