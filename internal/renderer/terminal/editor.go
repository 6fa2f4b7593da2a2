// Package terminal provides a full-screen editor for a Session built on
// tcell.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkwell/internal/app"
	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/dispatcher/handlers/editor"
	"github.com/dshills/inkwell/internal/dispatcher/handlers/style"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/store"
)

// selfWriteWindow is how long after a save file change notifications are
// attributed to the save itself.
const selfWriteWindow = time.Second

// Options configures an Editor.
type Options struct {
	// Keymap maps key names such as "ctrl+b" to command names.
	Keymap map[string]string

	// ReadOnly disables text input and autocorrect. Commands are still
	// dispatched so the dispatcher can reject them.
	ReadOnly bool

	// Changes delivers external modifications of the stored document.
	Changes <-chan store.Event

	Logger *app.Logger
}

// Editor drives a Session from terminal events and draws its state.
type Editor struct {
	screen  tcell.Screen
	session *app.Session
	opts    Options
	logger  *app.Logger

	ctx         context.Context
	status      string
	top         int
	pasting     bool
	confirmQuit bool
	lastSave    time.Time
	now         func() time.Time
}

// New creates an editor for session drawing on screen.
func New(screen tcell.Screen, session *app.Session, opts Options) *Editor {
	if opts.Keymap == nil {
		opts.Keymap = config.DefaultKeymap()
	}
	logger := opts.Logger
	if logger == nil {
		logger = app.NewNullLogger()
	}
	return &Editor{
		screen:  screen,
		session: session,
		opts:    opts,
		logger:  logger.WithComponent("terminal"),
		ctx:     context.Background(),
		now:     time.Now,
	}
}

// Status returns the message shown in the status line.
func (e *Editor) Status() string {
	return e.status
}

// Run initializes the screen and processes events until the user quits or
// ctx is done. The screen is restored before Run returns.
func (e *Editor) Run(ctx context.Context) error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer e.screen.Fini()
	e.screen.EnablePaste()
	e.ctx = ctx

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	changes := e.opts.Changes
	e.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !e.HandleEvent(ev) {
				return nil
			}
		case change, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			e.handleStoreEvent(change)
		}
		e.Draw()
	}
}

// HandleEvent applies one terminal event. It returns false when the editor
// should exit.
func (e *Editor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return e.handleKey(ev)
	case *tcell.EventPaste:
		e.pasting = ev.Start()
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventInterrupt:
		if change, ok := ev.Data().(store.Event); ok {
			e.handleStoreEvent(change)
		}
	}
	return true
}

func (e *Editor) handleKey(ev *tcell.EventKey) bool {
	quitting := e.confirmQuit
	e.confirmQuit = false
	e.status = ""

	if !e.pasting {
		for _, name := range KeyNames(ev) {
			if cmd, ok := e.opts.Keymap[name]; ok {
				e.confirmQuit = quitting
				return e.runCommand(cmd)
			}
		}
	}

	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			e.insert(ev.Rune())
		}
	case tcell.KeyEnter:
		e.execute(editor.CommandSplitBlock)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.session.HandleKeyCommand(style.CommandBackspace) == engine.NotHandled {
			e.execute(editor.CommandDeleteBackward)
		}
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModShift != 0 {
			e.execute(editor.CommandSelectLeft)
		} else {
			e.execute(editor.CommandLeft)
		}
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModShift != 0 {
			e.execute(editor.CommandSelectRight)
		} else {
			e.execute(editor.CommandRight)
		}
	case tcell.KeyUp:
		e.execute(editor.CommandUp)
	case tcell.KeyDown:
		e.execute(editor.CommandDown)
	case tcell.KeyHome:
		e.execute(editor.CommandHome)
	case tcell.KeyEnd:
		e.execute(editor.CommandEnd)
	}
	return true
}

// insert offers ch to autocorrect and inserts it when nothing consumed it.
// Pasted text bypasses autocorrect.
func (e *Editor) insert(ch rune) {
	if e.opts.ReadOnly {
		e.status = "read-only"
		return
	}
	if !e.pasting && e.session.HandleBeforeInput(ch) == engine.Handled {
		return
	}
	e.dispatch(handler.Command{Name: editor.CommandInsertText, Text: string(ch)})
}

func (e *Editor) runCommand(name string) bool {
	switch name {
	case config.CommandQuit:
		return e.quit()
	case config.CommandSave:
		e.save()
	default:
		e.execute(name)
	}
	return true
}

func (e *Editor) execute(name string) {
	e.dispatch(handler.Command{Name: name})
}

func (e *Editor) dispatch(cmd handler.Command) {
	result := e.session.Execute(cmd)
	switch result.Status {
	case handler.StatusError:
		e.status = fmt.Sprintf("%s: %v", cmd.Name, result.Error)
	case handler.StatusCancelled:
		e.status = result.Message
		if e.status == "" {
			e.status = cmd.Name + " cancelled"
		}
	}
}

// quit exits unless there are unsaved changes, in which case a second quit
// is required.
func (e *Editor) quit() bool {
	if e.session.Dirty() && !e.confirmQuit {
		e.confirmQuit = true
		e.status = "unsaved changes, quit again to discard"
		return true
	}
	return false
}

func (e *Editor) save() {
	if err := e.session.Save(e.ctx); err != nil {
		e.logger.Error("save failed: %v", err)
		e.status = err.Error()
		return
	}
	e.lastSave = e.now()
	e.status = "saved"
}

func (e *Editor) handleStoreEvent(change store.Event) {
	switch change.Type {
	case store.EventChanged:
		if e.now().Sub(e.lastSave) < selfWriteWindow {
			return
		}
		if e.session.Dirty() {
			e.status = "document changed on disk"
			return
		}
		if err := e.session.Load(e.ctx); err != nil {
			e.logger.Warn("reload failed: %v", err)
			e.status = err.Error()
			return
		}
		e.status = "reloaded"
	case store.EventRemoved:
		e.status = "document removed on disk"
	case store.EventError:
		e.logger.Warn("watch error: %v", change.Err)
	}
}
