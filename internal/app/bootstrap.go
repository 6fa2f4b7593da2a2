package app

import (
	"io"

	"github.com/dshills/inkwell/internal/autocorrect"
	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/dispatcher"
	"github.com/dshills/inkwell/internal/dispatcher/handlers/editor"
	"github.com/dshills/inkwell/internal/dispatcher/handlers/style"
	"github.com/dshills/inkwell/internal/dispatcher/hook"
	"github.com/dshills/inkwell/internal/store"
)

// NewFromConfig builds a Session from cfg, logging to logOut.
func NewFromConfig(cfg *config.Config, logOut io.Writer) (*Session, error) {
	logger := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(cfg.Logging.Level),
		Output: logOut,
		Prefix: "inkwell",
	})

	st, err := store.Open(store.Kind(cfg.Store.Kind), cfg.Store.Path, cfg.Store.Name)
	if err != nil {
		return nil, &InitError{Component: "store", Err: err}
	}

	ac, err := NewAutocorrect(cfg.Autocorrect)
	if err != nil {
		return nil, &InitError{Component: "autocorrect", Err: err}
	}

	dcfg := dispatcher.DefaultConfig().
		WithReadOnly(cfg.Dispatcher.ReadOnly).
		WithDisabledCommands(cfg.Dispatcher.DisabledCommands...)
	if cfg.Dispatcher.Metrics {
		dcfg = dcfg.WithMetrics()
	}
	d, err := NewDispatcher(dcfg, logger)
	if err != nil {
		return nil, &InitError{Component: "dispatcher", Err: err}
	}

	logger.Debug("store %s at %q, %d autocorrect rules", cfg.Store.Kind, cfg.Store.Path, ruleCount(ac))
	return NewSession(SessionOptions{
		Autocorrect: ac,
		Dispatcher:  d,
		Store:       st,
		Logger:      logger,
	})
}

// NewAutocorrect builds the autocorrect engine described by cfg. It
// returns nil when autocorrect is disabled.
func NewAutocorrect(cfg config.AutocorrectConfig) (*autocorrect.Engine, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	var rules []autocorrect.Rule
	if cfg.UseDefaults {
		rules = autocorrect.DefaultRules()
	}
	for _, rc := range cfg.Rules {
		r, err := autocorrect.ParseRule(autocorrect.RuleSpec{
			Trigger:   rc.Trigger,
			Char:      rc.Char,
			Style:     rc.Style,
			BlockType: rc.BlockType,
		})
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return autocorrect.New(rules...), nil
}

// NewDispatcher creates a dispatcher with the rich-text and default
// editing commands installed. At debug level an audit hook logs every
// dispatch.
func NewDispatcher(cfg dispatcher.Config, logger *Logger) (*dispatcher.Dispatcher, error) {
	d := dispatcher.New(cfg)
	d.SetLogger(logger.WithComponent("dispatcher"))

	if err := style.Install(d); err != nil {
		return nil, err
	}
	editor.Install(d)

	if logger.Level() == LogLevelDebug {
		d.RegisterHook(hook.NewAuditHook(logger.WithComponent("audit")))
	}
	return d, nil
}

func ruleCount(e *autocorrect.Engine) int {
	if e == nil {
		return 0
	}
	return len(e.Rules())
}
