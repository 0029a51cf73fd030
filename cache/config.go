package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// BlockSize is the size of a cache line in bytes.
const BlockSize = 64

// OffsetBits is the number of low address bits that select a byte within a
// block.
const OffsetBits uint = 6

// ErrInvalidConfig is returned when a cache configuration cannot be simulated.
var ErrInvalidConfig = errors.New("invalid cache configuration")

// Mapping selects where a block may be placed in the cache.
type Mapping int

const (
	// DirectMapped places every block in exactly one line.
	DirectMapped Mapping = iota
	// FullyAssociative allows a block to occupy any line.
	FullyAssociative
)

// ParseMapping converts a command-line token ("dm" or "fa") into a Mapping.
func ParseMapping(s string) (Mapping, error) {
	switch s {
	case "dm":
		return DirectMapped, nil
	case "fa":
		return FullyAssociative, nil
	}

	return 0, fmt.Errorf("%w: unknown cache mapping %q", ErrInvalidConfig, s)
}

func (m Mapping) String() string {
	switch m {
	case DirectMapped:
		return "dm"
	case FullyAssociative:
		return "fa"
	}

	return fmt.Sprintf("Mapping(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mapping) MarshalText() ([]byte, error) {
	if m != DirectMapped && m != FullyAssociative {
		return nil, fmt.Errorf("%w: unknown cache mapping %d", ErrInvalidConfig, int(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mapping) UnmarshalText(text []byte) error {
	parsed, err := ParseMapping(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// Organization selects whether instructions and data share the cache.
type Organization int

const (
	// Unified uses one cache for both instruction and data accesses.
	Unified Organization = iota
	// Split gives instructions and data half of the lines each.
	Split
)

// ParseOrganization converts a command-line token ("uc" or "sc") into an
// Organization.
func ParseOrganization(s string) (Organization, error) {
	switch s {
	case "uc":
		return Unified, nil
	case "sc":
		return Split, nil
	}

	return 0, fmt.Errorf("%w: unknown cache organization %q", ErrInvalidConfig, s)
}

func (o Organization) String() string {
	switch o {
	case Unified:
		return "uc"
	case Split:
		return "sc"
	}

	return fmt.Sprintf("Organization(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Organization) MarshalText() ([]byte, error) {
	if o != Unified && o != Split {
		return nil, fmt.Errorf("%w: unknown cache organization %d", ErrInvalidConfig, int(o))
	}

	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Organization) UnmarshalText(text []byte) error {
	parsed, err := ParseOrganization(string(text))
	if err != nil {
		return err
	}

	*o = parsed

	return nil
}

// Config holds cache configuration parameters.
type Config struct {
	// SizeBytes is the total capacity of the cache in bytes.
	SizeBytes uint32 `json:"size_bytes"`

	// Mapping selects direct-mapped or fully-associative placement.
	Mapping Mapping `json:"mapping"`

	// Organization selects a unified or a split instruction/data cache.
	Organization Organization `json:"organization"`
}

// DefaultConfig returns a 1KB direct-mapped unified cache.
func DefaultConfig() Config {
	return Config{
		SizeBytes:    1024,
		Mapping:      DirectMapped,
		Organization: Unified,
	}
}

// BlockCount returns the total number of lines in the cache.
func (c Config) BlockCount() uint32 {
	return c.SizeBytes / BlockSize
}

// LinesPerSet returns the number of lines in each independent region: all of
// them for a unified cache, half of them for each side of a split cache.
func (c Config) LinesPerSet() uint32 {
	if c.Organization == Split {
		return c.BlockCount() / 2
	}

	return c.BlockCount()
}

// Validate checks that the configuration describes a cache that can be
// simulated.
func (c Config) Validate() error {
	if c.Mapping != DirectMapped && c.Mapping != FullyAssociative {
		return fmt.Errorf("%w: unknown cache mapping %d", ErrInvalidConfig, int(c.Mapping))
	}

	if c.Organization != Unified && c.Organization != Split {
		return fmt.Errorf("%w: unknown cache organization %d",
			ErrInvalidConfig, int(c.Organization))
	}

	if c.SizeBytes == 0 {
		return fmt.Errorf("%w: cache size must be > 0", ErrInvalidConfig)
	}

	if c.SizeBytes%BlockSize != 0 {
		return fmt.Errorf("%w: cache size %d is not a multiple of the %d byte block size",
			ErrInvalidConfig, c.SizeBytes, BlockSize)
	}

	blocks := c.BlockCount()
	if !isPowerOfTwo(blocks) {
		return fmt.Errorf("%w: block count %d is not a power of two",
			ErrInvalidConfig, blocks)
	}

	if c.Organization == Split && blocks%2 != 0 {
		return fmt.Errorf("%w: block count %d cannot be split between instructions and data",
			ErrInvalidConfig, blocks)
	}

	return nil
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read cache config file: %w", err)
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse cache config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache config file: %w", err)
	}

	return nil
}

func isPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
