package toylang

import (
	"fmt"

	"github.com/dajobe/libfsp/fsp"
)

// DefaultThreshold covers the longest delimiter in Delimiters with room
// to spare.
var DefaultThreshold = fsp.RecommendThreshold(Delimiters)

// NewSession wires a fresh Lexer and a Parser appending to prog into
// an fsp.Session. A zero cfg.Threshold is taken from the grammar. The
// lexer keeps partial tokens across empty refills, so any positive
// threshold is correct for it; smaller ones only lex sooner.
func NewSession(cfg *fsp.Config, prog *Program, recovery bool) (*fsp.Session[Token], error) {
	if cfg == nil {
		cfg = fsp.NewConfig()
	}
	c := *cfg
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	return fsp.NewSession[Token](&c, NewLexer(), NewParser(prog, recovery))
}

// ParseString feeds input to a new session in chunks of chunkSize bytes
// (all at once if chunkSize < 1) and returns the statements parsed.
// On a syntax error the returned Program still holds the statements
// completed before it.
func ParseString(cfg *fsp.Config, input string, chunkSize int) (*Program, error) {
	return ParseBytes(cfg, []byte(input), chunkSize, false)
}

func ParseBytes(cfg *fsp.Config, input []byte, chunkSize int, recovery bool) (*Program, error) {
	prog := &Program{}
	s, err := NewSession(cfg, prog, recovery)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	st, err := fsp.FeedBytes(s, input, chunkSize)
	switch {
	case err != nil:
		return prog, err
	case st != fsp.StatusOK:
		return prog, fmt.Errorf("toylang: parse ended with status %v", st)
	}
	return prog, nil
}
