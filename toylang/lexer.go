package toylang

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dajobe/libfsp/fsp"
)

type LexerState int

const (
	LexerNormal LexerState = iota
	LexerIdent
	LexerNumber
	LexerNumberFraction
	LexerMinus          // a '-' that must be followed by a digit
	LexerQuote1         // one '"': a string, or the start of '""' / '"""'
	LexerQuote2         // '""': the empty string, or the opener of '"""'
	LexerStrLit         //
	LexerStrEscaped     //
	LexerTripleStr      //
	LexerTripleQuote1   // one '"' inside a triple quoted string
	LexerTripleQuote2   // two of them
	LexerComment        // '#' to end of line
)

func (s LexerState) String() string {
	switch s {
	case LexerNormal:
		return "normal"
	case LexerIdent:
		return "ident"
	case LexerNumber:
		return "number"
	case LexerNumberFraction:
		return "number-fraction"
	case LexerMinus:
		return "minus"
	case LexerQuote1:
		return "quote1"
	case LexerQuote2:
		return "quote2"
	case LexerStrLit:
		return "string"
	case LexerStrEscaped:
		return "string-escaped"
	case LexerTripleStr:
		return "triple-string"
	case LexerTripleQuote1:
		return "triple-quote1"
	case LexerTripleQuote2:
		return "triple-quote2"
	case LexerComment:
		return "comment"
	}
	return fmt.Sprintf("LexerState(%d)", int(s))
}

// DefaultRefillSize is how many bytes the lexer asks for per refill.
const DefaultRefillSize = 4096

// Lexer is a byte-at-a-time state machine. It never reads ahead of the
// byte it is deciding on, so a token cut by a chunk boundary just stays
// in its state (and its partial text in buffer) until more bytes come.
// A byte that ends a token without belonging to it (the ';' after an
// identifier, say) is left unconsumed and lexed again in LexerNormal.
type Lexer struct {
	state      LexerState
	buffer     bytes.Buffer
	fracDigits int

	start Position // of the pending token
	pos   Position // of the next byte

	in      []byte // refilled, not yet lexed
	next    int
	scratch []byte
}

func NewLexer() *Lexer {
	return NewLexerSize(DefaultRefillSize)
}

// NewLexerSize returns a lexer that pulls at most n bytes per refill.
func NewLexerSize(n int) *Lexer {
	if n < 1 {
		n = DefaultRefillSize
	}
	lx := &Lexer{scratch: make([]byte, n)}
	lx.Reset()
	return lx
}

func (lx *Lexer) Reset() {
	lx.state = LexerNormal
	lx.buffer.Reset()
	lx.fracDigits = 0
	lx.in = nil
	lx.next = 0
	lx.pos = Position{Line: 1, Column: 1}
	lx.start = lx.pos
}

func (lx *Lexer) State() LexerState {
	return lx.state
}

// Pos is the position of the next byte to be lexed.
func (lx *Lexer) Pos() Position {
	return lx.pos
}

// Lex returns the next token, pulling bytes through refill whenever the
// bytes it already holds run out. When refill comes back empty first,
// Lex returns ok == false and keeps any partial token for the next call.
func (lx *Lexer) Lex(refill fsp.Refill) (tok Token, ok bool, err error) {
	for {
		if lx.next == len(lx.in) {
			n := refill(lx.scratch)
			if n == 0 {
				return Token{}, false, nil
			}
			lx.in = lx.scratch[:n]
			lx.next = 0
		}
		c := lx.in[lx.next]
		tok, ok, consumed, err := lx.lexByte(c)
		if consumed {
			lx.advance(c)
		}
		if err != nil {
			lx.abandon()
			return Token{}, false, err
		}
		if ok {
			return tok, true, nil
		}
	}
}

// EndOfInput flushes a token that was only waiting for its terminator.
// An unterminated string or a trailing comment yields nothing; whatever
// the parser was expecting then goes missing and it says so.
func (lx *Lexer) EndOfInput() (tok Token, ok bool, err error) {
	switch lx.state {
	case LexerIdent:
		return lx.dumpIdent(), true, nil
	case LexerNumber:
		return lx.token(TokenNumber, lx.buffer.String()), true, nil
	case LexerNumberFraction:
		if lx.fracDigits == 0 {
			err = lx.errorAt(lx.start, "malformed number %q", lx.buffer.String())
			lx.abandon()
			return Token{}, false, err
		}
		return lx.token(TokenNumber, lx.buffer.String()), true, nil
	case LexerMinus:
		err = lx.errorAt(lx.start, "dangling '-' at end of input")
		lx.abandon()
		return Token{}, false, err
	case LexerQuote2:
		return lx.token(TokenString, ""), true, nil
	}
	lx.abandon()
	return Token{}, false, nil
}

func (lx *Lexer) lexByte(c byte) (tok Token, ok bool, consumed bool, err error) {
	switch lx.state {

	case LexerNormal:
		lx.start = lx.pos
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		case isIdentStart(c):
			lx.buffer.WriteByte(c)
			lx.state = LexerIdent
		case isDigit(c):
			lx.buffer.WriteByte(c)
			lx.state = LexerNumber
		case c == '-':
			lx.buffer.WriteByte(c)
			lx.state = LexerMinus
		case c == '"':
			lx.state = LexerQuote1
		case c == '#':
			lx.state = LexerComment
		case c == '=':
			return lx.token(TokenEquals, "="), true, true, nil
		case c == ';':
			return lx.token(TokenSemicolon, ";"), true, true, nil
		default:
			return Token{}, false, true, lx.errorAt(lx.pos, "unexpected character %q", c)
		}
		return Token{}, false, true, nil

	case LexerIdent:
		if isIdentStart(c) || isDigit(c) {
			lx.buffer.WriteByte(c)
			return Token{}, false, true, nil
		}
		return lx.dumpIdent(), true, false, nil

	case LexerNumber:
		if isDigit(c) {
			lx.buffer.WriteByte(c)
			return Token{}, false, true, nil
		}
		if c == '.' {
			lx.buffer.WriteByte(c)
			lx.fracDigits = 0
			lx.state = LexerNumberFraction
			return Token{}, false, true, nil
		}
		return lx.token(TokenNumber, lx.buffer.String()), true, false, nil

	case LexerNumberFraction:
		if isDigit(c) {
			lx.buffer.WriteByte(c)
			lx.fracDigits++
			return Token{}, false, true, nil
		}
		if lx.fracDigits == 0 {
			return Token{}, false, false, lx.errorAt(lx.start, "malformed number %q", lx.buffer.String())
		}
		return lx.token(TokenNumber, lx.buffer.String()), true, false, nil

	case LexerMinus:
		if isDigit(c) {
			lx.buffer.WriteByte(c)
			lx.state = LexerNumber
			return Token{}, false, true, nil
		}
		return Token{}, false, false, lx.errorAt(lx.start, "expected a digit after '-'")

	case LexerQuote1:
		if c == '"' {
			lx.state = LexerQuote2
			return Token{}, false, true, nil
		}
		lx.state = LexerStrLit
		return lx.lexByte(c)

	case LexerQuote2:
		if c == '"' {
			lx.state = LexerTripleStr
			return Token{}, false, true, nil
		}
		return lx.token(TokenString, ""), true, false, nil

	case LexerStrLit:
		switch c {
		case '\\':
			lx.state = LexerStrEscaped
		case '"':
			return lx.token(TokenString, lx.buffer.String()), true, true, nil
		default:
			lx.buffer.WriteByte(c)
		}
		return Token{}, false, true, nil

	case LexerStrEscaped:
		switch c {
		case 'n':
			lx.buffer.WriteByte('\n')
		case 't':
			lx.buffer.WriteByte('\t')
		case '"', '\\':
			lx.buffer.WriteByte(c)
		default:
			return Token{}, false, true, lx.errorAt(lx.pos, "unknown escape sequence '\\%c'", c)
		}
		lx.state = LexerStrLit
		return Token{}, false, true, nil

	case LexerTripleStr:
		if c == '"' {
			lx.state = LexerTripleQuote1
		} else {
			lx.buffer.WriteByte(c)
		}
		return Token{}, false, true, nil

	case LexerTripleQuote1:
		if c == '"' {
			lx.state = LexerTripleQuote2
			return Token{}, false, true, nil
		}
		lx.buffer.WriteByte('"')
		lx.buffer.WriteByte(c)
		lx.state = LexerTripleStr
		return Token{}, false, true, nil

	case LexerTripleQuote2:
		if c == '"' {
			return lx.token(TokenString, lx.buffer.String()), true, true, nil
		}
		lx.buffer.WriteString(`""`)
		lx.buffer.WriteByte(c)
		lx.state = LexerTripleStr
		return Token{}, false, true, nil

	case LexerComment:
		if c == '\n' {
			lx.state = LexerNormal
		}
		return Token{}, false, true, nil
	}
	return Token{}, false, true, fmt.Errorf("toylang: lexer in unknown state %v", lx.state)
}

func (lx *Lexer) advance(c byte) {
	lx.next++
	lx.pos.Offset++
	if c == '\n' {
		lx.pos.Line++
		lx.pos.Column = 1
	} else {
		lx.pos.Column++
	}
}

// token builds a token starting at lx.start and returns the lexer to
// LexerNormal.
func (lx *Lexer) token(typ TokenType, str string) Token {
	t := Token{
		Type: typ,
		Str:  str,
		Pos:  lx.start,
	}
	lx.buffer.Reset()
	lx.state = LexerNormal
	return t
}

func (lx *Lexer) dumpIdent() Token {
	str := lx.buffer.String()
	switch strings.ToLower(str) {
	case "print":
		return lx.token(TokenPrint, str)
	case "let":
		return lx.token(TokenLet, str)
	}
	return lx.token(TokenIdent, str)
}

func (lx *Lexer) abandon() {
	lx.buffer.Reset()
	lx.state = LexerNormal
}

func (lx *Lexer) errorAt(pos Position, format string, a ...interface{}) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, a...)}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
