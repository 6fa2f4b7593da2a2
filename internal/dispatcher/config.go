package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool

	// ReadOnly marks every execution context read-only.
	ReadOnly bool

	// DisabledCommands lists commands that are always cancelled.
	DisabledCommands []string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithReadOnly returns a copy of the config with read-only mode set.
func (c Config) WithReadOnly(readOnly bool) Config {
	c.ReadOnly = readOnly
	return c
}

// WithDisabledCommands returns a copy of the config that cancels the named
// commands.
func (c Config) WithDisabledCommands(names ...string) Config {
	c.DisabledCommands = append(append([]string(nil), c.DisabledCommands...), names...)
	return c
}

// ReadOnlyAllowedPrefixes name the commands that still run on a read-only
// dispatcher. They move the selection without editing the document.
var ReadOnlyAllowedPrefixes = []string{"cursor."}
