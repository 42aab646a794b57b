package toylang

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	TokenTypeEmpty TokenType = iota
	TokenPrint
	TokenLet
	TokenIdent
	TokenNumber
	TokenString
	TokenEquals
	TokenSemicolon
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeEmpty:
		return "EMPTY"
	case TokenPrint:
		return "PRINT"
	case TokenLet:
		return "LET"
	case TokenIdent:
		return "IDENT"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenEquals:
		return "EQUALS"
	case TokenSemicolon:
		return "SEMI"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Delimiters are the fixed-width lexemes of the grammar. The longest of
// them bounds the lexing threshold, see fsp.RecommendThreshold.
var Delimiters = []string{"print", "let", `"""`, `"`, "=", ";", "#"}

// Position is where a token starts. Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Type TokenType
	Str  string
	Pos  Position
}

func (t Token) String() string {
	switch t.Type {
	case TokenPrint:
		return "print"
	case TokenLet:
		return "let"
	case TokenEquals:
		return "="
	case TokenSemicolon:
		return ";"
	case TokenString:
		return strconv.Quote(t.Str)
	}
	return t.Str
}

// SyntaxError is a lexical or grammatical error at a position in the
// stream.
type SyntaxError struct {
	Pos Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}
