package toylang

import (
	"fmt"
	"strconv"
)

//go:generate msgp

// Statement is one parsed `print value;` or `let name = value;`.
type Statement struct {
	Kind      string `json:"kind" msg:"kind" codec:"kind"`
	Name      string `json:"name" msg:"name" codec:"name"`
	Value     string `json:"value" msg:"value" codec:"value"`
	ValueType string `json:"vtype" msg:"vtype" codec:"vtype"`
	Line      int    `json:"line" msg:"line" codec:"line"`
	Column    int    `json:"col" msg:"col" codec:"col"`
}

const (
	KindPrint = "print"
	KindLet   = "let"
)

func (s Statement) String() string {
	v := s.Value
	if s.ValueType == TokenString.String() {
		v = strconv.Quote(v)
	}
	if s.Kind == KindLet {
		return fmt.Sprintf("let %s = %s;", s.Name, v)
	}
	return fmt.Sprintf("print %s;", v)
}

// Program is what a parse produces. The caller owns it; the parser
// only appends to it.
type Program struct {
	Statements []Statement `json:"stmts" msg:"stmts" codec:"stmts"`

	// Errors recorded while parsing, in order. With recovery off there
	// is at most one.
	Errors []error `json:"-" msg:"-" codec:"-"`
}

func (p *Program) Err() error {
	if p == nil || len(p.Errors) == 0 {
		return nil
	}
	if len(p.Errors) == 1 {
		return p.Errors[0]
	}
	return fmt.Errorf("%w (and %d more errors)", p.Errors[0], len(p.Errors)-1)
}
