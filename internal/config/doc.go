// Package config provides the configuration system for Inkwell.
//
// Configuration is assembled from layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← applied by the caller
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← INKWELL_*
//	├─────────────────────────────┤
//	│  2. Config Files            │  ← config.toml / config.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// Files and environment are read by the loader sub-package into nested
// maps, merged, and decoded into the typed Config.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.WithPaths("inkwell.toml"))
//	if err != nil {
//	    return err
//	}
//	level := cfg.Logging.Level
//
// # Example config.toml
//
//	[logging]
//	level = "debug"
//	file = "/tmp/inkwell.log"
//
//	[store]
//	kind = "file"
//	path = "notes.json"
//
//	[autocorrect]
//	enabled = true
//
//	[[autocorrect.rules]]
//	trigger = "~~"
//	style = "STRIKETHROUGH"
//
//	[keymap]
//	"ctrl+e" = "code"
package config
