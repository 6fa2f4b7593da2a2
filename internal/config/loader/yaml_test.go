package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
logging:
  level: warn
dispatcher:
  disabledCommands: [header, code]
keymap:
  ctrl+b: bold
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := GetByPath(config, "logging.level"); v != "warn" {
		t.Errorf("logging.level = %v", v)
	}
	cmds, _ := GetByPath(config, "dispatcher.disabledCommands")
	if list, ok := cmds.([]any); !ok || len(list) != 2 {
		t.Errorf("disabledCommands = %v", cmds)
	}
	if v, _ := GetByPath(config, "keymap.ctrl+b"); v != "bold" {
		t.Errorf("keymap = %v", config["keymap"])
	}
}

func TestYAMLLoader_Missing(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(NewMemFS(), "/none.yml").Load()
	if err != nil || config != nil {
		t.Errorf("expected nil, nil for missing file, got %v, %v", config, err)
	}
}

func TestYAMLLoader_Invalid(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("logging:\n  level: [\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Path != "<reader>" {
		t.Errorf("Path = %q", perr.Path)
	}
}
