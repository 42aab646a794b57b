package fsp

import (
	"fmt"
)

// Phase is the state of the chunk accumulation protocol.
type Phase int

const (
	// PhaseFilling accumulates chunks without touching the lexer.
	PhaseFilling Phase = iota
	// PhaseDraining invokes the lexer, which pulls from the buffer.
	PhaseDraining
	// PhaseFinished is terminal.
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseFilling:
		return "FILLING"
	case PhaseDraining:
		return "DRAINING"
	case PhaseFinished:
		return "FINISHED"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// ParseState is what a push parser answers after each token.
type ParseState int

const (
	ParseMore   ParseState = iota // feed the next token
	ParseAccept                   // a complete unit was parsed
	ParseAbort                    // the parser gave up
)

func (s ParseState) String() string {
	switch s {
	case ParseMore:
		return "more"
	case ParseAccept:
		return "accept"
	case ParseAbort:
		return "abort"
	}
	return fmt.Sprintf("ParseState(%d)", int(s))
}

// Lexer is the caller-supplied tokenizer. It must be resumable: when
// refill comes back empty before a token is complete, Lex returns
// ok == false and keeps its partial token for the next call.
type Lexer[T any] interface {
	// Lex returns the next token, pulling bytes through refill as needed.
	Lex(refill Refill) (tok T, ok bool, err error)

	// EndOfInput is called once, after Lex has come back empty and no
	// more chunks will arrive. It flushes a token that was only waiting
	// for its terminator.
	EndOfInput() (tok T, ok bool, err error)
}

// Parser is the caller-supplied push parser.
type Parser[T any] interface {
	Push(tok T) (ParseState, error)

	// PushEOF delivers the terminal end-of-input notification.
	PushEOF() (ParseState, error)
}

// Stats counts what a Session has done so far.
type Stats struct {
	Chunks      int
	Bytes       int
	LexerCalls  int
	Tokens      int
	Drains      int // FILLING -> DRAINING transitions
	Grows       int
	Compactions int
	Capacity    int
}

// Session drives one Context through the chunk accumulation protocol:
// chunks are accumulated until at least Threshold unread bytes are
// buffered (or the final chunk has arrived), only then is the lexer
// allowed to pull from the buffer. A lexer that comes back empty while
// more chunks are expected sends the session back to filling, so a
// starved lexer is never mistaken for end of input.
type Session[T any] struct {
	ctx       *Context
	lex       Lexer[T]
	psr       Parser[T]
	threshold int
	verbose   bool

	phase  Phase
	status Status
	err    error
	stats  Stats
}

// NewSession validates cfg, creates the session's Context, and starts
// in PhaseFilling.
func NewSession[T any](cfg *Config, lex Lexer[T], psr Parser[T]) (*Session[T], error) {
	if cfg == nil {
		return nil, ErrNoThreshold
	}
	if lex == nil || psr == nil {
		return nil, fmt.Errorf("fsp: NewSession needs both a lexer and a parser")
	}
	err := cfg.ValidateConfig()
	if err != nil {
		return nil, err
	}
	ctx, err := NewContext(cfg)
	if err != nil {
		return nil, err
	}
	return &Session[T]{
		ctx:       ctx,
		lex:       lex,
		psr:       psr,
		threshold: cfg.Threshold,
		verbose:   cfg.Verbose,
		phase:     PhaseFilling,
		status:    StatusNeedData,
	}, nil
}

// Feed is the chunk ingestion entry point. It appends chunk, marks the
// end of input if final is set, and runs the protocol as far as the
// buffered bytes allow.
//
// It returns StatusNeedData while more chunks are wanted, StatusOK once
// the parser accepted, StatusError on malformed input, and
// StatusNoMemory when the buffer could not grow. After an out-of-memory
// report the session and its Context are still valid and inspectable.
// Feeding a finished session returns its terminal status with ErrFinished.
func (s *Session[T]) Feed(chunk []byte, final bool) (Status, error) {
	if s == nil {
		return StatusError, ErrNilContext
	}
	if s.phase == PhaseFinished {
		return s.status, ErrFinished
	}

	err := s.ctx.Append(chunk)
	if err != nil {
		return StatusOf(err), err
	}
	s.stats.Chunks++
	s.stats.Bytes += len(chunk)

	if final && s.ctx.MarkFinal() {
		s.vv("final chunk marked, %d bytes unread", s.ctx.Available())
	}
	return s.run()
}

// readyToLex is the FILLING -> DRAINING guard.
func (s *Session[T]) readyToLex() bool {
	return !s.ctx.MoreExpected() || s.ctx.Available() >= s.threshold
}

func (s *Session[T]) run() (Status, error) {
	for {
		switch s.phase {
		case PhaseFilling:
			if !s.readyToLex() {
				return StatusNeedData, nil
			}
			s.stats.Drains++
			s.setPhase(PhaseDraining)

		case PhaseDraining:
			tok, ok, err := s.lex.Lex(s.ctx.Read)
			s.stats.LexerCalls++
			if err != nil {
				return s.finish(StatusError, err)
			}
			if !ok {
				// the lexer drained the buffer; an empty refill is only
				// end of input once the final chunk has been marked.
				if s.ctx.MoreExpected() {
					s.ctx.Compact()
					s.setPhase(PhaseFilling)
					return StatusNeedData, nil
				}
				return s.endOfInput()
			}
			st, done, err := s.push(tok)
			if done {
				return st, err
			}

		case PhaseFinished:
			return s.status, s.err
		}
	}
}

func (s *Session[T]) endOfInput() (Status, error) {
	tok, ok, err := s.lex.EndOfInput()
	if err != nil {
		return s.finish(StatusError, err)
	}
	if ok {
		st, done, err := s.push(tok)
		if done {
			return st, err
		}
	}

	state, err := s.psr.PushEOF()
	switch state {
	case ParseAccept:
		return s.finish(StatusOK, nil)
	case ParseAbort:
		if err == nil {
			err = ErrParseAborted
		}
		return s.finish(StatusError, err)
	}
	if err == nil {
		err = ErrIncompleteParse
	}
	return s.finish(StatusError, err)
}

// push hands one token to the parser; done reports that the session
// reached a terminal state.
func (s *Session[T]) push(tok T) (st Status, done bool, err error) {
	s.stats.Tokens++
	state, err := s.psr.Push(tok)
	switch state {
	case ParseMore:
		return StatusNeedData, false, nil
	case ParseAccept:
		st, err = s.finish(StatusOK, nil)
		return st, true, err
	}
	if err == nil {
		err = ErrParseAborted
	}
	st, err = s.finish(StatusError, err)
	return st, true, err
}

func (s *Session[T]) finish(st Status, err error) (Status, error) {
	s.status = st
	s.err = err
	s.setPhase(PhaseFinished)
	return st, err
}

func (s *Session[T]) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.vv("%s -> %s (available %d, more expected %v)", s.phase, p, s.ctx.Available(), s.ctx.MoreExpected())
	s.phase = p
}

func (s *Session[T]) vv(format string, a ...interface{}) {
	if s.verbose {
		TSPrintf(format, a...)
	} else {
		VPrintf(format, a...)
	}
}

// Phase reports where the protocol currently stands.
func (s *Session[T]) Phase() Phase {
	return s.phase
}

// Status is the last status the protocol settled in, and the error
// that ended the session, if any.
func (s *Session[T]) Status() (Status, error) {
	return s.status, s.err
}

// Context exposes the session's stream buffer, for inspection and for
// the user data handle.
func (s *Session[T]) Context() *Context {
	return s.ctx
}

func (s *Session[T]) Stats() Stats {
	st := s.stats
	st.Grows = s.ctx.Grows()
	st.Compactions = s.ctx.Compactions()
	st.Capacity = s.ctx.Capacity()
	return st
}

// Close destroys the session's Context. There is never an operation in
// flight to cancel; a host simply stops feeding and closes.
func (s *Session[T]) Close() error {
	if s == nil {
		return ErrNilContext
	}
	return s.ctx.Close()
}
