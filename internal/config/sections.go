package config

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	// Level is the minimum level logged: debug, info, warn or error.
	Level string `yaml:"level"`

	// File is where logs are written. Empty means stderr, except in the
	// terminal editor where logging is discarded.
	File string `yaml:"file"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	// Kind is diskv, file or memory.
	Kind string `yaml:"kind"`

	// Path is the diskv base directory or the snapshot file.
	Path string `yaml:"path"`

	// Name selects the document within a diskv store.
	Name string `yaml:"name"`
}

// AutocorrectConfig controls the autocorrect rule table.
type AutocorrectConfig struct {
	// Enabled turns autocorrect on.
	Enabled bool `yaml:"enabled"`

	// UseDefaults keeps the built-in rules alongside Rules.
	UseDefaults bool `yaml:"useDefaults"`

	// Rules are additional rules.
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig describes one autocorrect rule. Exactly one of Style and
// BlockType is set.
type RuleConfig struct {
	Trigger   string `yaml:"trigger"`
	Char      string `yaml:"char"`
	Style     string `yaml:"style"`
	BlockType string `yaml:"blockType"`
}

// DispatcherConfig controls key command dispatch.
type DispatcherConfig struct {
	// Metrics enables dispatch metrics collection.
	Metrics bool `yaml:"metrics"`

	// ReadOnly rejects commands that would modify the document.
	ReadOnly bool `yaml:"readOnly"`

	// DisabledCommands are never dispatched.
	DisabledCommands []string `yaml:"disabledCommands"`
}
