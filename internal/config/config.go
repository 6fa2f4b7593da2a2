package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/dshills/inkwell/internal/config/loader"
)

// Config holds all Inkwell settings.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Store       StoreConfig       `yaml:"store"`
	Autocorrect AutocorrectConfig `yaml:"autocorrect"`
	Dispatcher  DispatcherConfig  `yaml:"dispatcher"`

	// Keymap binds key names such as "ctrl+b" to command names. Entries
	// from config files are added to the defaults; an empty command
	// removes a default binding.
	Keymap map[string]string `yaml:"keymap"`

	// Sources lists the config files that were found and applied.
	Sources []string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Store: StoreConfig{
			Kind: "diskv",
			Path: defaultDataDir(),
			Name: "default",
		},
		Autocorrect: AutocorrectConfig{Enabled: true, UseDefaults: true},
		Keymap:      DefaultKeymap(),
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs        loader.FileSystem
	paths     []string
	envPrefix string
	environ   bool
}

// WithFS reads config files from fs.
func WithFS(fs loader.FileSystem) Option {
	return func(o *options) { o.fs = fs }
}

// WithPaths replaces the default config file locations. Missing files are
// skipped; later files override earlier ones.
func WithPaths(paths ...string) Option {
	return func(o *options) { o.paths = paths }
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

// WithoutEnv disables the environment layer.
func WithoutEnv() Option {
	return func(o *options) { o.environ = false }
}

// Load builds a Config from defaults, config files and the environment,
// then validates it.
func Load(opts ...Option) (*Config, error) {
	o := options{
		fs:        loader.DefaultFS(),
		paths:     DefaultPaths(),
		envPrefix: loader.DefaultEnvPrefix,
		environ:   true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)
	var sources []string
	for _, path := range o.paths {
		l, err := loader.ForPath(o.fs, path)
		if err != nil {
			return nil, err
		}
		data, err := l.Load()
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		merged = loader.DeepMerge(merged, data)
		sources = append(sources, path)
	}

	if o.environ {
		env, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ExpandPaths replaces a leading "~" in the store and log file paths with
// the user's home directory.
func (c *Config) ExpandPaths() error {
	paths := []struct {
		name  string
		value *string
	}{
		{"store.path", &c.Store.Path},
		{"logging.file", &c.Logging.File},
	}
	for _, p := range paths {
		expanded, err := homedir.Expand(*p.value)
		if err != nil {
			return &ValidationError{Path: p.name, Message: err.Error(), Value: *p.value}
		}
		*p.value = expanded
	}
	return nil
}

// FromMap decodes a merged settings tree over the defaults. It does not
// validate the result.
func FromMap(data map[string]any) (*Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}

	raw, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	for key, cmd := range cfg.Keymap {
		if cmd == "" {
			delete(cfg.Keymap, key)
		}
	}
	return cfg, nil
}

// Validate checks every section and returns all problems found.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := logLevels[strings.ToLower(c.Logging.Level)]; !ok {
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "unknown log level", Value: c.Logging.Level})
	}

	if !slices.Contains(storeKinds, c.Store.Kind) {
		errs = append(errs, &ValidationError{Path: "store.kind", Message: "must be one of " + strings.Join(storeKinds, ", "), Value: c.Store.Kind})
	}
	if c.Store.Kind != "memory" && c.Store.Path == "" {
		errs = append(errs, &ValidationError{Path: "store.path", Message: "required for disk stores", Value: c.Store.Path})
	}

	for i, r := range c.Autocorrect.Rules {
		path := fmt.Sprintf("autocorrect.rules[%d]", i)
		if r.Trigger == "" {
			errs = append(errs, &ValidationError{Path: path + ".trigger", Message: "must not be empty", Value: r.Trigger})
		}
		if (r.Style == "") == (r.BlockType == "") {
			errs = append(errs, &ValidationError{Path: path, Message: "exactly one of style or blockType is required", Value: r})
		}
	}

	for key := range c.Keymap {
		if strings.TrimSpace(key) == "" {
			errs = append(errs, &ValidationError{Path: "keymap", Message: "empty key name", Value: key})
		}
	}

	return errors.Join(errs...)
}

var (
	logLevels  = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "warning": {}, "error": {}}
	storeKinds = []string{"diskv", "file", "memory"}
)

// DefaultPaths returns the config files read when no paths are given:
// config.toml and config.yaml in the user config directory, then
// .inkwell.toml in the working directory.
func DefaultPaths() []string {
	var paths []string
	if dir := userConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "config.toml"), filepath.Join(dir, "config.yaml"))
	}
	return append(paths, ".inkwell.toml")
}

func userConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "inkwell")
}

func defaultDataDir() string {
	if dir, err := homedir.Dir(); err == nil {
		return filepath.Join(dir, ".local", "share", "inkwell")
	}
	return filepath.Join(os.TempDir(), "inkwell")
}
