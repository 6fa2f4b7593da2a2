package loader

import (
	"reflect"
	"testing"
)

func newTestEnvLoader(env ...string) *EnvLoader {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := newTestEnvLoader(
		"INKWELL_LOG_LEVEL=debug",
		"INKWELL_STORE_PATH=/tmp/doc.json",
		"INKWELL_READ_ONLY=true",
		"INKWELL_DISPATCHER_DISABLED_COMMANDS=[\"code\"]",
		"HOME=/root",
	)

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"store.path", "/tmp/doc.json"},
		{"dispatcher.readOnly", true},
		{"dispatcher.disabledCommands", []any{"code"}},
	}
	for _, tt := range tests {
		got, ok := GetByPath(config, tt.path)
		if !ok || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variables should be ignored")
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	tests := []struct {
		env  string
		want string
	}{
		{"INKWELL_AUTOCORRECT_ENABLED", "autocorrect.enabled"},
		{"INKWELL_DISPATCHER_DISABLED_COMMANDS", "dispatcher.disabledCommands"},
		{"INKWELL_DEBUG", "debug"},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestEnvLoader_parseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"yes", true},
		{"off", false},
		{"1", true},
		{"42", int64(42)},
		{"1.5", 1.5},
		{`{"a":1}`, map[string]any{"a": float64(1)}},
		{"memory", "memory"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}

func TestEnvLoader_AddRemoveMapping(t *testing.T) {
	l := newTestEnvLoader("INKWELL_THEME=dark")
	l.AddMapping("INKWELL_THEME", "render.theme")

	config, _ := l.Load()
	if v, ok := GetByPath(config, "render.theme"); !ok || v != "dark" {
		t.Errorf("render.theme = %v", v)
	}

	l.RemoveMapping("INKWELL_THEME")
	config, _ = l.Load()
	if v, ok := GetByPath(config, "theme"); !ok || v != "dark" {
		t.Errorf("theme = %v, want fallback path", v)
	}
}
