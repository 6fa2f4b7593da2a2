package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/dispatcher/hook"
	"github.com/dshills/inkwell/internal/engine"
)

// Dispatcher routes commands to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry    *Registry
	router      *Router
	hookManager *hook.Manager
	logger      execctx.Logger

	config  Config
	metrics *Metrics
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry:    NewRegistry(),
		router:      NewRouter(),
		hookManager: hook.NewManager(),
		config:      config,
	}

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	if config.ReadOnly {
		d.hookManager.RegisterPre(hook.NewReadOnlyHook(ReadOnlyAllowedPrefixes...))
	}
	if len(config.DisabledCommands) > 0 {
		d.hookManager.RegisterPre(hook.NewDisabledCommandsHook(config.DisabledCommands))
	}

	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetLogger sets the logger handed to handlers and used for panics.
func (d *Dispatcher) SetLogger(l execctx.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l
}

// Dispatch executes the named command against st.
func (d *Dispatcher) Dispatch(st engine.State, name string) handler.Result {
	return d.DispatchCommand(st, handler.Command{Name: name})
}

// DispatchCommand executes cmd against st. Any result that is not
// StatusHandled carries st unchanged.
func (d *Dispatcher) DispatchCommand(st engine.State, cmd handler.Command) handler.Result {
	start := time.Now()
	ctx := d.buildContext(st)

	result := d.run(&cmd, ctx)
	if result.Status != handler.StatusHandled {
		result.State = st
	}

	d.hookManager.RunPostDispatch(&cmd, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(cmd.Name, time.Since(start), result.Status)
	}
	return result
}

func (d *Dispatcher) run(cmd *handler.Command, ctx *execctx.ExecutionContext) handler.Result {
	if cmd.Name == "" {
		return handler.NotHandledWithError(ErrInvalidCommand)
	}

	if ok, by := d.hookManager.RunPreDispatch(cmd, ctx); !ok {
		r := handler.CancelledWithMessage("cancelled by " + by)
		r.Error = fmt.Errorf("%w: %s", ErrCommandCancelled, by)
		return r
	}

	h := d.router.Route(cmd.Name)
	if h == nil {
		h = d.registry.Get(cmd.Name)
	}
	if h == nil {
		return handler.NotHandledWithError(fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name))
	}

	if err := ctx.Validate(); err != nil {
		return handler.NotHandledWithError(err)
	}

	if d.config.RecoverFromPanic {
		return d.executeWithRecovery(h, *cmd, ctx)
	}
	return h.Handle(*cmd, ctx)
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, cmd handler.Command, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			ctx.Logger.Error("handler panic for %s: %v\n%s", cmd.Name, r, stack[:n])

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, cmd.Name, r))
			if d.metrics != nil {
				d.metrics.RecordPanic(cmd.Name)
			}
		}
	}()

	return h.Handle(cmd, ctx)
}

func (d *Dispatcher) buildContext(st engine.State) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return execctx.New(st).
		WithLogger(d.logger).
		WithReadOnly(d.config.ReadOnly)
}

// RegisterHandler registers a handler for an exact command name.
func (d *Dispatcher) RegisterHandler(name string, h handler.Handler) error {
	return d.registry.Register(name, h)
}

// RegisterHandlerFunc registers a handler function for a command name.
func (d *Dispatcher) RegisterHandlerFunc(name string, fn func(handler.Command, *execctx.ExecutionContext) handler.Result) error {
	return d.registry.Register(name, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.RegisterNamespace(namespace, h)
}

// UnregisterHandler removes the handlers for a command name.
func (d *Dispatcher) UnregisterHandler(name string) {
	d.registry.Unregister(name)
}

// RegisterHook registers a hook with the hook manager.
func (d *Dispatcher) RegisterHook(h hook.Hook) {
	d.hookManager.Register(h)
}

// CanHandle reports whether some handler accepts the command name.
func (d *Dispatcher) CanHandle(name string) bool {
	return d.router.Route(name) != nil || d.registry.Has(name)
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Router returns the command router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// HookManager returns the hook manager.
func (d *Dispatcher) HookManager() *hook.Manager {
	return d.hookManager
}

// Metrics returns the metrics collector (nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
