// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	applog "lumin/internal/log"
	"lumin/internal/platform"
	"lumin/pkg/align"
	"lumin/pkg/bitint"
	"lumin/pkg/ptrcodec"
)

// Defaults and limits.
const (
	DefaultLogLevel       = "info"
	DefaultCapacity       = 256 // Format buffer, terminator included
	DefaultAlignment      = 64  // Cache line
	DefaultProvider       = platform.ProviderAuto
	DefaultPointerKey1    = 0x5bd1e995
	DefaultPointerKey2    = 0x9e3779b9
	DefaultConfigFilename = "lumin.yaml"

	MinCapacity = 1
	MaxCapacity = 1 << 16
)

// Environment variables applied after the file.
const (
	EnvLogLevel       = "LUMIN_LOG_LEVEL"
	EnvFormatCapacity = "LUMIN_FORMAT_CAPACITY"
	EnvPointerKey1    = "LUMIN_POINTER_KEY1"
	EnvPointerKey2    = "LUMIN_POINTER_KEY2"
	EnvAllocProvider  = "LUMIN_ALLOC_PROVIDER"
)

// Config is the runtime configuration, loaded from YAML.
type Config struct {
	LogLevel string        `yaml:"log_level"` // debug, info, warn, error or fatal
	Verbose  bool          `yaml:"-"`         // Set from the command line only
	Format   FormatConfig  `yaml:"format"`
	Pointer  PointerConfig `yaml:"pointer"`
	Alloc    AllocConfig   `yaml:"alloc"`
}

// FormatConfig sizes the buffers the CLI formats into.
type FormatConfig struct {
	Capacity int `yaml:"capacity"`
}

// PointerConfig holds the two keys used to obfuscate addresses.
type PointerConfig struct {
	Key1 uint64 `yaml:"key1"`
	Key2 uint64 `yaml:"key2"`
}

// AllocConfig selects the raw allocator and its default alignment.
type AllocConfig struct {
	Alignment uint64 `yaml:"alignment"`
	Provider  string `yaml:"provider"` // auto, mmap or heap
}

// NewConfig returns a Config holding the defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Format:   FormatConfig{Capacity: DefaultCapacity},
		Pointer:  PointerConfig{Key1: DefaultPointerKey1, Key2: DefaultPointerKey2},
		Alloc:    AllocConfig{Alignment: DefaultAlignment, Provider: DefaultProvider},
	}
}

// LoadConfig builds the configuration from defaults, the YAML file at path
// and finally the environment. An empty path looks for lumin.yaml in the
// working directory and falls back to the defaults when it is absent.
func LoadConfig(path string, env platform.EnvLookup) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFilename); err == nil {
			path = DefaultConfigFilename
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		applog.Debugf("configuration: loaded %s", path)
	}

	if env != nil {
		if err := cfg.applyEnvOverrides(env); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := applog.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level %q is not a known level", c.LogLevel))
	}
	if c.Format.Capacity < MinCapacity || c.Format.Capacity > MaxCapacity {
		errs = append(errs, fmt.Errorf("format.capacity %d outside [%d, %d]",
			c.Format.Capacity, MinCapacity, MaxCapacity))
	}
	if !bitint.IsPowerOfTwo(c.Alloc.Alignment) {
		errs = append(errs, fmt.Errorf("alloc.alignment %d is not a power of two", c.Alloc.Alignment))
	}
	switch c.Alloc.Provider {
	case platform.ProviderAuto, platform.ProviderMmap, platform.ProviderHeap:
	default:
		errs = append(errs, fmt.Errorf("alloc.provider %q must be auto, mmap or heap", c.Alloc.Provider))
	}

	maxKey := uint64(^uintptr(0))
	if c.Pointer.Key1 > maxKey || c.Pointer.Key2 > maxKey {
		errs = append(errs, fmt.Errorf("pointer keys must fit in %d bits", strconv.IntSize))
	}
	return errors.Join(errs...)
}

// Keys returns the pointer codec keys.
func (c *Config) Keys() ptrcodec.Keys {
	return ptrcodec.Keys{K1: uintptr(c.Pointer.Key1), K2: uintptr(c.Pointer.Key2)}
}

// PlatformOptions returns the provider selection for platform.Resolve.
func (c *Config) PlatformOptions() platform.Options {
	return platform.Options{Allocator: c.Alloc.Provider}
}

// Level returns the parsed log level; Validate guarantees it parses.
func (c *Config) Level() applog.LogLevel {
	if c.Verbose {
		return applog.LevelDebug
	}
	level, _ := applog.ParseLevel(c.LogLevel)
	return level
}

// ClampCapacity bounds n to the allowed format capacity range.
func ClampCapacity(n int) int {
	return align.Clamp(n, MinCapacity, MaxCapacity)
}

func (c *Config) applyEnvOverrides(env platform.EnvLookup) error {
	if val, ok := platform.LookupString(env, EnvLogLevel); ok {
		c.LogLevel = val
		applog.Infof("configuration: overriding log_level from env: %s", val)
	}

	if val, ok := platform.LookupString(env, EnvFormatCapacity); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFormatCapacity, err)
		}
		c.Format.Capacity = n
		applog.Infof("configuration: overriding format.capacity from env: %d", n)
	}

	for _, key := range []struct {
		name string
		dst  *uint64
	}{
		{EnvPointerKey1, &c.Pointer.Key1},
		{EnvPointerKey2, &c.Pointer.Key2},
	} {
		val, ok := platform.LookupString(env, key.name)
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(val, 0, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key.name, err)
		}
		*key.dst = n
		applog.Infof("configuration: overriding pointer key from %s", key.name)
	}

	if val, ok := platform.LookupString(env, EnvAllocProvider); ok {
		c.Alloc.Provider = val
		applog.Infof("configuration: overriding alloc.provider from env: %s", val)
	}
	return nil
}
