package toylang

import (
	"flag"
	"fmt"

	"github.com/dajobe/libfsp/fsp"
)

// configure a toylang repl or batch parse
type ReplConfig struct {
	fsp.Config

	Flags *flag.FlagSet

	ChunkSize int    // batch mode: bytes per chunk, 0 for 4 KiB
	Format    string // text, json, msgpack or goon
	Recover   bool   // skip to the next ';' after a syntax error
	Digest    bool   // print the statement digest after parsing
	Save      string // write the parsed statements to this greenpack file
	Load      string // print the statements saved in this file, then exit
	Quiet     bool

	// read stdin as a stream instead of starting the repl
	Batch bool

	// liner bombs under emacs, avoid it with this flag.
	NoLiner bool
	Prompt  string // default "fsp> "
}

func NewReplConfig(cmdname string) *ReplConfig {
	return &ReplConfig{
		Config: *fsp.NewConfig(),
		Flags:  flag.NewFlagSet(cmdname, flag.ExitOnError),
	}
}

// call DefineFlags before myflags.Parse()
func (c *ReplConfig) DefineFlags() {
	c.Config.DefineFlags(c.Flags)
	c.Flags.IntVar(&c.ChunkSize, "chunk", 0, "batch mode: feed input in chunks of this many bytes (0 for 4096)")
	c.Flags.StringVar(&c.Format, "format", "text", "output format: text, json, msgpack or goon")
	c.Flags.BoolVar(&c.Recover, "recover", false, "after a syntax error skip to the next ';' and keep parsing")
	c.Flags.BoolVar(&c.Digest, "digest", false, "print the blake2b digest of the parsed statements")
	c.Flags.StringVar(&c.Save, "save", "", "save the parsed statements to this greenpack file (must not exist)")
	c.Flags.StringVar(&c.Load, "load", "", "print the statements saved in this greenpack file and exit")
	c.Flags.BoolVar(&c.Quiet, "quiet", false, "start repl without printing the banner")
	c.Flags.BoolVar(&c.Batch, "batch", false, "parse stdin as one stream instead of starting the repl")
	c.Flags.BoolVar(&c.NoLiner, "noliner", false, "read lines without the liner line editor")
}

// call c.ValidateConfig() after myflags.Parse()
func (c *ReplConfig) ValidateConfig() error {
	if c.Prompt == "" {
		c.Prompt = "fsp> "
	}
	switch c.Format {
	case "", "text":
		c.Format = "text"
	case "json", "msgpack", "goon":
	default:
		return fmt.Errorf("unknown -format '%s'", c.Format)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("-chunk must not be negative, got %d", c.ChunkSize)
	}
	if c.Threshold == 0 {
		c.Threshold = c.defaultThreshold()
	}
	return c.Config.ValidateConfig()
}

// defaultThreshold for the repl is a single byte: every line is
// lexed as soon as it is entered. A stream gets the grammar's
// recommended threshold.
func (c *ReplConfig) defaultThreshold() int {
	if c.interactive() {
		return 1
	}
	return DefaultThreshold
}

func (c *ReplConfig) interactive() bool {
	return !c.Batch && c.Flags != nil && c.Flags.NArg() == 0
}
