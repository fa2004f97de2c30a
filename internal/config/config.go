// Package config handles fwd.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by FindAndLoad.
const FileName = "fwd.toml"

// Config represents a fwd.toml file.
type Config struct {
	Expand Expand `toml:"expand"`
	Output Output `toml:"output"`

	// Dir is the directory containing the fwd.toml file (empty for Default).
	Dir string `toml:"-"`
}

// Expand configures which invocations are expanded and how the result is laid out.
type Expand struct {
	Macros     []string `toml:"macros"`     // expand to private functions
	PubMacros  []string `toml:"pub_macros"` // expand to pub functions
	Indent     string   `toml:"indent"`     // one level of body indentation
	Extensions []string `toml:"extensions"` // files considered when walking directories
}

// Output configures terminal output.
type Output struct {
	Color *bool `toml:"color"` // nil leaves the decision to the terminal
}

// Default returns the configuration used when no fwd.toml exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if len(c.Expand.Macros) == 0 && !slices.Contains(c.Expand.PubMacros, "fwd") {
		c.Expand.Macros = []string{"fwd"}
	}
	if len(c.Expand.PubMacros) == 0 && !slices.Contains(c.Expand.Macros, "fwd_pub") {
		c.Expand.PubMacros = []string{"fwd_pub"}
	}
	if c.Expand.Indent == "" {
		c.Expand.Indent = "    "
	}
	if len(c.Expand.Extensions) == 0 {
		c.Expand.Extensions = []string{".rs"}
	}
}

// Load parses a fwd.toml file from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// Parse decodes fwd.toml content and fills in defaults.
func Parse(data string) (*Config, error) {
	var c Config
	md, err := toml.Decode(data, &c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

// LoadFile parses the configuration at an explicit path, whatever its name.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find a fwd.toml file, then loads
// and returns it. Without one it returns Default().
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

func (c *Config) validate() error {
	seen := make(map[string]string)
	check := func(key string, names []string) error {
		for _, name := range names {
			if !isIdent(name) {
				return fmt.Errorf("%s: %q is not a valid macro name", key, name)
			}
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("%s: %q is already listed in %s", key, name, prev)
			}
			seen[name] = key
		}
		return nil
	}
	if err := check("expand.macros", c.Expand.Macros); err != nil {
		return err
	}
	if err := check("expand.pub_macros", c.Expand.PubMacros); err != nil {
		return err
	}
	if strings.Trim(c.Expand.Indent, " \t") != "" {
		return fmt.Errorf("expand.indent must contain only spaces or tabs")
	}
	return nil
}

// MacroNames maps every configured macro name to whether it expands to pub functions.
func (c *Config) MacroNames() map[string]bool {
	names := make(map[string]bool, len(c.Expand.Macros)+len(c.Expand.PubMacros))
	for _, m := range c.Expand.Macros {
		names[m] = false
	}
	for _, m := range c.Expand.PubMacros {
		names[m] = true
	}
	return names
}

// HasSourceExtension reports whether path has one of the configured extensions.
func (c *Config) HasSourceExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Expand.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ColorEnabled resolves output.color, falling back to def when unset.
func (c *Config) ColorEnabled(def bool) bool {
	if c.Output.Color == nil {
		return def
	}
	return *c.Output.Color
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}
