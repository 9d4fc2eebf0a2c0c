// Package config handles countdown.toml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bennorth/countdown-numbers-solver/pprint"
)

// FileName is the configuration file looked up by Load and FindAndLoad.
const FileName = "countdown.toml"

// Config represents a countdown.toml file.
type Config struct {
	Cards   Cards   `toml:"cards"`
	Output  Output  `toml:"output"`
	Decode  Decode  `toml:"decode"`
	Archive Archive `toml:"archive"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the countdown.toml file (set at load time).
	Dir string `toml:"-"`
}

// Cards holds the default card values.
type Cards struct {
	Values []int `toml:"values"`
}

// Output configures how decoded expressions are printed.
type Output struct {
	Format  string `toml:"format"`
	Symbols string `toml:"symbols"`
}

// Decode configures operand ordering and batch parallelism.
type Decode struct {
	CompositeOrder string `toml:"composite-order"`
	LeafOrder      string `toml:"leaf-order"`
	Workers        int    `toml:"workers"`
}

// Archive locates the SQLite archive.
type Archive struct {
	Path string `toml:"path"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no countdown.toml exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Symbols == "" {
		c.Output.Symbols = "unicode"
	}
	if c.Decode.CompositeOrder == "" {
		c.Decode.CompositeOrder = "stable"
	}
	if c.Decode.LeafOrder == "" {
		c.Decode.LeafOrder = "descending"
	}
	if c.Archive.Path == "" {
		c.Archive.Path = "countdown.db"
	}
}

// Load parses a countdown.toml file from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses the configuration file at path. Dir is set to the
// directory holding it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes TOML configuration text and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAndLoad walks up from startDir to find a countdown.toml file,
// then loads and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Validate checks enumerated settings and the card count.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	if _, err := c.DecodeOptions(); err != nil {
		return err
	}
	if n := len(c.Cards.Values); n != 0 && n != len(pprint.Cards{}) {
		return fmt.Errorf("cards.values: got %d values, want %d", n, len(pprint.Cards{}))
	}
	if c.Decode.Workers < 0 {
		return fmt.Errorf("decode.workers: must not be negative, got %d", c.Decode.Workers)
	}
	return nil
}

// DecodeOptions converts the output and decode sections to pprint options.
func (c *Config) DecodeOptions() (pprint.Options, error) {
	sym, err := pprint.SymbolsByName(c.Output.Symbols)
	if err != nil {
		return pprint.Options{}, err
	}
	leaf, err := pprint.ParseLeafOrder(c.Decode.LeafOrder)
	if err != nil {
		return pprint.Options{}, err
	}
	comp, err := pprint.ParseCompositeOrder(c.Decode.CompositeOrder)
	if err != nil {
		return pprint.Options{}, err
	}
	return pprint.Options{Symbols: sym, LeafOrder: leaf, CompositeOrder: comp}, nil
}

// HasCards reports whether default cards are configured.
func (c *Config) HasCards() bool {
	return len(c.Cards.Values) != 0
}

// CardSet returns the configured cards. It fails unless exactly six values
// are set.
func (c *Config) CardSet() (pprint.Cards, error) {
	var cards pprint.Cards
	if len(c.Cards.Values) != len(cards) {
		return cards, fmt.Errorf("cards.values: got %d values, want %d", len(c.Cards.Values), len(cards))
	}
	copy(cards[:], c.Cards.Values)
	return cards, nil
}

// ArchivePath returns the archive path, resolved against Dir when relative.
func (c *Config) ArchivePath() string {
	if c.Archive.Path == ":memory:" || filepath.IsAbs(c.Archive.Path) || c.Dir == "" {
		return c.Archive.Path
	}
	return filepath.Join(c.Dir, c.Archive.Path)
}
