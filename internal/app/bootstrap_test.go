package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/inkwell/internal/autocorrect"
	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/dispatcher"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/document"
)

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Kind = "file"
	cfg.Store.Path = filepath.Join(t.TempDir(), "doc.json")
	cfg.Logging.Level = "debug"
	cfg.Autocorrect.Rules = []config.RuleConfig{{Trigger: "~~", Style: "STRIKETHROUGH"}}

	var logs bytes.Buffer
	s, err := NewFromConfig(cfg, &logs)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}

	typeText(t, s, "~~ x")
	b := activeBlock(t, s)
	if !b.HasStyle(document.Strikethrough, document.NewRange(0, 1)) {
		t.Errorf("expected configured rule to fire, got %q %v", b.Text(), b.Styles())
	}

	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.Contains(logs.String(), "component=audit") {
		t.Errorf("expected audit hook output at debug level, got:\n%s", logs.String())
	}
}

func TestNewFromConfigReadOnly(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Kind = "memory"
	cfg.Dispatcher.ReadOnly = true
	cfg.Dispatcher.DisabledCommands = []string{"italic"}

	s, err := NewFromConfig(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.HandleKeyCommand("header-one"); got != engine.NotHandled {
		t.Errorf("read-only session should reject edits, got %s", got)
	}
}

func TestNewFromConfigBadStore(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Kind = "bolt"

	_, err := NewFromConfig(cfg, &bytes.Buffer{})
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "store" {
		t.Errorf("expected store InitError, got %v", err)
	}
}

func TestNewAutocorrect(t *testing.T) {
	e, err := NewAutocorrect(config.AutocorrectConfig{Enabled: false})
	if err != nil || e != nil {
		t.Errorf("disabled autocorrect should be nil, got %v, %v", e, err)
	}

	e, err = NewAutocorrect(config.AutocorrectConfig{Enabled: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Rules()) != 0 {
		t.Errorf("expected no rules without defaults, got %d", len(e.Rules()))
	}

	e, err = NewAutocorrect(config.AutocorrectConfig{
		Enabled:     true,
		UseDefaults: true,
		Rules:       []config.RuleConfig{{Trigger: ">", BlockType: "code-block"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Rules()) != len(autocorrect.DefaultRules())+1 {
		t.Errorf("expected defaults plus one, got %d", len(e.Rules()))
	}

	_, err = NewAutocorrect(config.AutocorrectConfig{
		Enabled: true,
		Rules:   []config.RuleConfig{{Trigger: "!", Style: "BLINK"}},
	})
	if err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestNewDispatcherInstallsCommands(t *testing.T) {
	d, err := NewDispatcher(dispatcher.DefaultConfig(), NewNullLogger())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"bold", "header", "backspace", "style.red", "editor.insert-text", "cursor.left"} {
		if !d.CanHandle(name) {
			t.Errorf("expected %q to be registered", name)
		}
	}
}

func TestOperationError(t *testing.T) {
	err := NewOperationError("save", "file", ErrNoStore)
	if err.Error() != "save file: no store configured" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrNoStore) {
		t.Error("expected to unwrap to ErrNoStore")
	}
}
