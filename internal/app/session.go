package app

import (
	"context"
	"errors"
	"sync"

	"github.com/dshills/inkwell/internal/autocorrect"
	"github.com/dshills/inkwell/internal/dispatcher"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/document"
	"github.com/dshills/inkwell/internal/snapshot"
	"github.com/dshills/inkwell/internal/store"
)

// Session holds the current editor state and routes renderer events into
// the core: characters about to be inserted go through autocorrect, key
// commands go through the dispatcher, and default edits made by the
// renderer come back through Replace.
type Session struct {
	mu sync.Mutex

	state engine.State
	dirty bool

	autocorrect *autocorrect.Engine
	dispatcher  *dispatcher.Dispatcher
	store       store.Store
	logger      *Logger
	metrics     *Metrics
}

// SessionOptions configures a Session. Zero values are usable: a nil
// Autocorrect disables autocorrect, a nil Dispatcher gets one with the
// standard commands installed, a nil Store makes Save and Load fail with
// ErrNoStore.
type SessionOptions struct {
	Document    document.Document
	Autocorrect *autocorrect.Engine
	Dispatcher  *dispatcher.Dispatcher
	Store       store.Store
	Logger      *Logger
}

// NewSession creates a session editing opts.Document, or an empty
// document if none is given.
func NewSession(opts SessionOptions) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = NewNullLogger()
	}

	d := opts.Dispatcher
	if d == nil {
		var err error
		d, err = NewDispatcher(dispatcher.DefaultConfig(), logger)
		if err != nil {
			return nil, err
		}
	}

	return &Session{
		state:       engine.NewState(opts.Document),
		autocorrect: opts.Autocorrect,
		dispatcher:  d,
		store:       opts.Store,
		logger:      logger.WithComponent("session"),
		metrics:     NewMetrics(),
	}, nil
}

// State returns the current editor state.
func (s *Session) State() engine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dirty reports whether the document changed since the last save or load.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Metrics returns the session counters.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

// Dispatcher returns the session's command dispatcher.
func (s *Session) Dispatcher() *dispatcher.Dispatcher {
	return s.dispatcher
}

// HandleBeforeInput offers ch, about to be inserted at the cursor, to
// autocorrect. Handled means the state was transformed and ch must not be
// inserted; NotHandled means the renderer inserts ch itself.
func (s *Session) HandleBeforeInput(ch rune) engine.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.autocorrect == nil {
		s.metrics.RecordInput(false)
		return engine.NotHandled
	}

	next, rule, outcome := s.autocorrect.Explain(s.state, ch)
	s.metrics.RecordInput(outcome == engine.Handled)
	if outcome != engine.Handled {
		return engine.NotHandled
	}

	s.logger.Debug("autocorrect rule %s fired", rule)
	s.apply(next)
	return engine.Handled
}

// HandleKeyCommand dispatches a named key command against the current
// state.
func (s *Session) HandleKeyCommand(name string) engine.Outcome {
	return s.Execute(handler.Command{Name: name}).Outcome()
}

// Execute dispatches cmd and adopts the resulting state when the command
// was handled.
func (s *Session) Execute(cmd handler.Command) handler.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.dispatcher.DispatchCommand(s.state, cmd)
	s.metrics.RecordCommand(result.IsHandled())

	switch {
	case result.IsHandled():
		s.apply(result.State)
	case result.IsError():
		s.logger.Warn("command %s failed: %v", cmd.Name, result.Error)
	default:
		s.logger.Debug("command %s not handled", cmd.Name)
	}
	return result
}

// Replace adopts a document and selection produced by the renderer's
// default editing. The pending inline override is cleared.
func (s *Session) Replace(doc document.Document, sel cursor.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.WithDocument(doc, sel)
	if err != nil {
		return err
	}
	s.metrics.RecordReplace()
	s.apply(next)
	return nil
}

// apply adopts next, marking the session dirty if the document changed.
// Callers hold s.mu.
func (s *Session) apply(next engine.State) {
	if !document.Equal(s.state.Document(), next.Document()) {
		s.dirty = true
	}
	s.state = next
}

// Save writes the current document to the store.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.Save(ctx, snapshot.Serialize(s.state.Document())); err != nil {
		return NewOperationError("save", "", err)
	}
	s.dirty = false
	s.metrics.RecordSave()
	s.logger.Info("saved %d blocks", s.state.Document().Len())
	return nil
}

// Load replaces the current document with the stored one and puts the
// cursor at its start. On failure the session is unchanged.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNoStore
	}
	snap, err := s.store.Load(ctx)
	if err != nil {
		return NewOperationError("load", "", err)
	}
	doc, err := snapshot.Deserialize(snap)
	if err != nil {
		return NewOperationError("load", "", err)
	}

	s.state = engine.NewState(doc)
	s.dirty = false
	s.metrics.RecordLoad()
	s.logger.Info("loaded %d blocks", doc.Len())
	return nil
}

// LoadOrNew loads the stored document, keeping the current one if nothing
// has been stored yet.
func (s *Session) LoadOrNew(ctx context.Context) error {
	err := s.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Info("no stored document, starting empty")
		return nil
	}
	return err
}
