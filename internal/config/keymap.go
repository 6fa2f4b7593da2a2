package config

import (
	"maps"
	"slices"
)

// Commands handled by the application rather than the dispatcher.
const (
	CommandSave = "app.save"
	CommandQuit = "app.quit"
)

// DefaultKeymap returns the built-in key bindings.
func DefaultKeymap() map[string]string {
	return map[string]string{
		"ctrl+b": "bold",
		"ctrl+i": "italic",
		"ctrl+u": "underline",
		"ctrl+k": "code",
		"ctrl+t": "strikethrough",
		"ctrl+r": "style.red",
		"alt+1":  "header-one",
		"alt+h":  "header",
		"ctrl+s": CommandSave,
		"ctrl+q": CommandQuit,
	}
}

// Bindings returns the keymap keys in sorted order.
func (c *Config) Bindings() []string {
	return slices.Sorted(maps.Keys(c.Keymap))
}

// CommandFor returns the command bound to key.
func (c *Config) CommandFor(key string) (string, bool) {
	cmd, ok := c.Keymap[key]
	return cmd, ok
}
