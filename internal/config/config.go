// Package config holds the immutable settings passed into every top-level
// format or check call.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File names searched for, in order, in each directory.
const (
	TOMLName = "tptpfmt.toml"
	YAMLName = ".tptpfmt.yaml"
)

// Placeholders substituted in external tool argument templates.
const (
	InputPlaceholder  = "{input}"
	OutputPlaceholder = "{output}"
)

// Config is read once at the start of a call and never mutated afterwards;
// methods take value receivers.
type Config struct {
	External ExternalConfig `toml:"external" yaml:"external"`
	Format   FormatConfig   `toml:"format" yaml:"format"`
	Cache    CacheConfig    `toml:"cache" yaml:"cache"`
}

// ExternalConfig describes an optional TPTP-aware formatter/checker binary.
type ExternalConfig struct {
	Path       string   `toml:"path" yaml:"path"`
	Prefer     bool     `toml:"prefer" yaml:"prefer"`
	Timeout    Duration `toml:"timeout" yaml:"timeout"`
	FormatArgs []string `toml:"format_args" yaml:"format_args"`
	CheckArgs  []string `toml:"check_args" yaml:"check_args"`
}

// FormatConfig controls batch formatting.
type FormatConfig struct {
	Jobs       int      `toml:"jobs" yaml:"jobs"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// CacheConfig controls the on-disk format cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Dir     string `toml:"dir" yaml:"dir"`
}

// Duration wraps time.Duration so it can be written as "10s" in both formats.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler (used by toml).
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		External: ExternalConfig{
			Timeout:    Duration{10 * time.Second},
			FormatArgs: []string{"-f", InputPlaceholder, "-o", OutputPlaceholder},
			CheckArgs:  []string{InputPlaceholder},
		},
		Format: FormatConfig{
			Extensions: []string{".p", ".ax", ".tptp"},
		},
	}
}

// ExternalEnabled reports whether the external tool should be tried first.
func (c Config) ExternalEnabled() bool {
	return c.External.Prefer && strings.TrimSpace(c.External.Path) != ""
}

// HasExtension reports whether path has one of the configured extensions.
func (c Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Format.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Fingerprint is a stable digest of the settings that influence output.
func (c Config) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "path=%s\nprefer=%t\nformat=%s\n",
		c.External.Path, c.External.Prefer, strings.Join(c.External.FormatArgs, "\x00"))
	return hex.EncodeToString(h.Sum(nil))
}

// Find walks up from startDir looking for a config file. ok is false when
// none exists up to the filesystem root.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range []string{TOMLName, YAMLName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads a configuration file. Missing fields keep their defaults.
// The format is chosen by extension: .yaml/.yml use YAML, anything else TOML.
func Load(path string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and fills zero values with defaults.
func (c *Config) Validate() error {
	def := Default()
	if c.External.Timeout.Duration < 0 {
		return fmt.Errorf("[external].timeout must not be negative")
	}
	if c.External.Timeout.Duration == 0 {
		c.External.Timeout = def.External.Timeout
	}
	if len(c.External.FormatArgs) == 0 {
		c.External.FormatArgs = def.External.FormatArgs
	}
	if len(c.External.CheckArgs) == 0 {
		c.External.CheckArgs = def.External.CheckArgs
	}
	if c.Format.Jobs < 0 {
		return fmt.Errorf("[format].jobs must not be negative")
	}
	if len(c.Format.Extensions) == 0 {
		c.Format.Extensions = def.Format.Extensions
	}
	return nil
}

// LoadOrDefault finds and loads the nearest config file, falling back to
// Default when none exists. The returned path is empty in that case.
func LoadOrDefault(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}
