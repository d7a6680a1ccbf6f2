package whitespace

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

// Backends.
const (
	Interpret = "interpret"
	Translate = "translate"
)

// Config holds settings for running or translating programs. It is usually
// loaded from a YAML file.
type Config struct {
	// Limit is the maximum number of instructions to execute. Zero means no
	// limit.
	Limit int `yaml:"limit"`
	// Encoding names the output encoding of outc: latin1, windows1252, utf8,
	// or raw.
	Encoding string `yaml:"encoding"`
	// Trace enables logging each executed instruction to standard error.
	Trace bool `yaml:"trace"`
	// RawTerminal puts an interactive standard input into raw mode so that
	// readc receives each key as it is pressed.
	RawTerminal bool `yaml:"raw_terminal"`
	// Backend is either interpret or translate.
	Backend string `yaml:"backend"`
	// Package is the package name of translated programs.
	Package string `yaml:"package"`
}

// DefaultConfig returns the default settings.
func DefaultConfig() *Config {
	return &Config{
		Encoding: "latin1",
		Backend:  Interpret,
		Package:  "main",
	}
}

// ParseConfig parses YAML configuration over the defaults. Unknown keys are
// errors.
func ParseConfig(b []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, fmt.Errorf("whitespace: bad config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that each setting has an allowed value.
func (c *Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("whitespace: negative limit %d", c.Limit)
	}
	if _, err := ParseEncoding(c.Encoding); err != nil {
		return err
	}
	switch c.Backend {
	case "", Interpret, Translate:
	default:
		return fmt.Errorf("whitespace: unknown backend %q", c.Backend)
	}
	return nil
}

// Apply sets a VM's limit, encoding, and trace logger from the config. Trace
// lines go to trace, or nowhere if it is nil.
func (c *Config) Apply(vm *VM, trace io.Writer) error {
	enc, err := ParseEncoding(c.Encoding)
	if err != nil {
		return err
	}
	vm.Limit = c.Limit
	vm.Encoding = enc
	if c.Trace && trace != nil {
		vm.Trace = log.New(trace, "trace: ", 0)
	}
	return nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
