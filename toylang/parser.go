package toylang

import (
	"fmt"

	"github.com/dajobe/libfsp/fsp"
)

type ParserState int

const (
	ExpectStatement ParserState = iota
	ExpectPrintValue
	ExpectPrintEnd
	ExpectLetName
	ExpectLetEquals
	ExpectLetValue
	ExpectLetEnd
	SkipToSemicolon // recovering from a syntax error
)

func (s ParserState) String() string {
	switch s {
	case ExpectStatement:
		return "statement"
	case ExpectPrintValue:
		return "print value"
	case ExpectPrintEnd:
		return "';' after print value"
	case ExpectLetName:
		return "name after let"
	case ExpectLetEquals:
		return "'=' after let name"
	case ExpectLetValue:
		return "let value"
	case ExpectLetEnd:
		return "';' after let value"
	case SkipToSemicolon:
		return "skip to ';'"
	}
	return fmt.Sprintf("ParserState(%d)", int(s))
}

var ErrUnexpectedEnd = fmt.Errorf("unexpected end of input")

// Parser is a push parser for
//
//	program   := statement*
//	statement := PRINT value ';' | LET IDENT '=' value ';'
//	value     := NUMBER | STRING | IDENT
//
// Each token is pushed as it is lexed; completed statements are appended
// to the caller's Program. With recovery on, a syntax error is recorded
// and tokens are skipped through the next ';'.
type Parser struct {
	state   ParserState
	prog    *Program
	recover bool
	cur     Statement
	lastPos Position
}

func NewParser(prog *Program, recovery bool) *Parser {
	if prog == nil {
		prog = &Program{}
	}
	return &Parser{prog: prog, recover: recovery}
}

func (p *Parser) Program() *Program {
	return p.prog
}

func (p *Parser) State() ParserState {
	return p.state
}

// Push implements fsp.Parser[Token].
func (p *Parser) Push(tok Token) (fsp.ParseState, error) {
	p.lastPos = tok.Pos

	switch p.state {
	case ExpectStatement:
		switch tok.Type {
		case TokenPrint:
			p.cur = Statement{Kind: KindPrint, Line: tok.Pos.Line, Column: tok.Pos.Column}
			p.state = ExpectPrintValue
		case TokenLet:
			p.cur = Statement{Kind: KindLet, Line: tok.Pos.Line, Column: tok.Pos.Column}
			p.state = ExpectLetName
		case TokenSemicolon:
			// empty statement
		default:
			return p.fail(tok, "expected print or let, got %s %v", tok.Type, tok)
		}

	case ExpectPrintValue:
		if !p.value(tok) {
			return p.fail(tok, "expected a value after print, got %s %v", tok.Type, tok)
		}
		p.state = ExpectPrintEnd

	case ExpectLetName:
		if tok.Type != TokenIdent {
			return p.fail(tok, "expected a name after let, got %s %v", tok.Type, tok)
		}
		p.cur.Name = tok.Str
		p.state = ExpectLetEquals

	case ExpectLetEquals:
		if tok.Type != TokenEquals {
			return p.fail(tok, "expected '=' after let %s, got %s %v", p.cur.Name, tok.Type, tok)
		}
		p.state = ExpectLetValue

	case ExpectLetValue:
		if !p.value(tok) {
			return p.fail(tok, "expected a value after '=', got %s %v", tok.Type, tok)
		}
		p.state = ExpectLetEnd

	case ExpectPrintEnd, ExpectLetEnd:
		if tok.Type != TokenSemicolon {
			return p.fail(tok, "expected ';', got %s %v", tok.Type, tok)
		}
		p.prog.Statements = append(p.prog.Statements, p.cur)
		p.cur = Statement{}
		p.state = ExpectStatement

	case SkipToSemicolon:
		if tok.Type == TokenSemicolon {
			p.state = ExpectStatement
		}
	}
	return fsp.ParseMore, nil
}

// PushEOF accepts only between statements, and only if no error was
// recorded along the way.
func (p *Parser) PushEOF() (fsp.ParseState, error) {
	if p.state != ExpectStatement {
		err := &SyntaxError{Pos: p.lastPos, Msg: fmt.Sprintf("%v, expected %s", ErrUnexpectedEnd, p.state)}
		p.prog.Errors = append(p.prog.Errors, err)
		p.state = ExpectStatement
		return fsp.ParseAbort, p.prog.Err()
	}
	if len(p.prog.Errors) > 0 {
		return fsp.ParseAbort, p.prog.Err()
	}
	return fsp.ParseAccept, nil
}

func (p *Parser) value(tok Token) bool {
	switch tok.Type {
	case TokenNumber, TokenString, TokenIdent:
		p.cur.Value = tok.Str
		p.cur.ValueType = tok.Type.String()
		return true
	}
	return false
}

func (p *Parser) fail(tok Token, format string, a ...interface{}) (fsp.ParseState, error) {
	err := &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf(format, a...)}
	p.prog.Errors = append(p.prog.Errors, err)
	p.cur = Statement{}
	if !p.recover {
		return fsp.ParseAbort, err
	}
	fsp.VPrintf("toylang: recovering from %v", err)
	if tok.Type == TokenSemicolon {
		p.state = ExpectStatement
	} else {
		p.state = SkipToSemicolon
	}
	return fsp.ParseMore, nil
}
