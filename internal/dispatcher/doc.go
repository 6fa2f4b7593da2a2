// Package dispatcher routes editing commands to handlers.
//
// The renderer forwards symbolic commands such as "bold" or "backspace"
// together with the current editor state. The dispatcher finds the handler
// for the command, runs it against the state and returns a handler.Result
// carrying the new state and whether the command was handled.
//
// # Routing
//
// Two tiers are consulted in order:
//
//  1. Namespace Router: "style.bold" is routed to the handler registered
//     for the "style" namespace.
//
//  2. Handler Registry: exact command names ("bold"). Multiple handlers can
//     be registered for one name; the highest priority wins.
//
// # Dispatch
//
// When a command is dispatched:
//
//  1. An ExecutionContext is built around the state
//  2. Pre-dispatch hooks run and may cancel the command
//  3. The handler is looked up; unknown commands are not handled
//  4. The selection is validated; an invalid selection is not handled
//  5. The handler runs, with panic recovery when configured
//  6. Post-dispatch hooks run
//  7. Metrics are recorded when enabled
//
// A result that is not StatusHandled always carries the original state, so
// callers can treat anything but Handled as "apply the default behavior".
//
// # Usage
//
//	d := dispatcher.NewWithDefaults()
//	style.Install(d)
//
//	result := d.Dispatch(state, "bold")
//	if result.IsHandled() {
//	    state = result.State
//	}
package dispatcher
