package fsp

import (
	"flag"
	"fmt"
)

const (
	KiB = 1024
	MiB = 1024 * 1024

	// DefaultBufferSize is the initial stream buffer capacity.
	DefaultBufferSize = 64 * KiB

	// DefaultMaxCapacity bounds buffer growth; past it appends
	// report ErrNoMemory instead of asking the runtime for more.
	DefaultMaxCapacity = 1024 * MiB

	// DefaultThreshold is what RecommendThreshold falls back to
	// when a grammar declares no fixed-length delimiters.
	DefaultThreshold = 64
)

// Config holds the tunables of one Context and the Session driving it.
type Config struct {
	// InitialCapacity of the stream buffer. 0 means DefaultBufferSize.
	InitialCapacity int

	// MaxCapacity is the largest buffer we will grow to. 0 means no
	// limit beyond what the runtime can allocate.
	MaxCapacity int

	// Threshold is the minimum count of unread bytes that must be
	// buffered before the lexer may run while more chunks are expected.
	// It must cover the grammar's longest fixed-width delimiter; there
	// is deliberately no default, see RecommendThreshold.
	Threshold int

	// Verbose logs buffer growth and protocol phase changes.
	Verbose bool
}

func NewConfig() *Config {
	return &Config{
		InitialCapacity: DefaultBufferSize,
		MaxCapacity:     DefaultMaxCapacity,
	}
}

// call DefineFlags before fs.Parse()
func (c *Config) DefineFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.InitialCapacity, "bufsize", DefaultBufferSize, "initial stream buffer capacity in bytes")
	fs.IntVar(&c.MaxCapacity, "maxbuf", DefaultMaxCapacity, "largest stream buffer capacity in bytes; 0 for no limit")
	fs.IntVar(&c.Threshold, "threshold", 0, "minimum unread bytes buffered before the lexer runs (0 derives it from the grammar)")
	fs.BoolVar(&c.Verbose, "v", false, "log buffer growth and protocol phase changes")
}

func (c *Config) validateCapacity() error {
	if c.InitialCapacity < 0 {
		return fmt.Errorf("%w: initial capacity %d", ErrBadCapacity, c.InitialCapacity)
	}
	if c.MaxCapacity < 0 {
		return fmt.Errorf("%w: max capacity %d", ErrBadCapacity, c.MaxCapacity)
	}
	if c.MaxCapacity > 0 && c.initialCapacity() > c.MaxCapacity {
		return fmt.Errorf("%w: initial capacity %d exceeds max capacity %d",
			ErrBadCapacity, c.initialCapacity(), c.MaxCapacity)
	}
	return nil
}

func (c *Config) initialCapacity() int {
	if c.InitialCapacity == 0 {
		return DefaultBufferSize
	}
	return c.InitialCapacity
}

// call c.ValidateConfig() after fs.Parse()
func (c *Config) ValidateConfig() error {
	err := c.validateCapacity()
	if err != nil {
		return err
	}
	if c.Threshold <= 0 {
		return ErrNoThreshold
	}
	if c.MaxCapacity > 0 && c.Threshold > c.MaxCapacity {
		return fmt.Errorf("%w: threshold %d exceeds max capacity %d",
			ErrBadCapacity, c.Threshold, c.MaxCapacity)
	}
	return nil
}
