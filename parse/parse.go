// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse builds node trees from source text. It is an
// operator-precedence parser driven by the live grammar table.
package parse // import "robpike.io/kelvin/parse"

import (
	"fmt"
	"io"
	"strconv"

	"robpike.io/kelvin/grammar"
	"robpike.io/kelvin/node"
	"robpike.io/kelvin/scan"
)

// Statement is a compiled top-level statement.
type Statement struct {
	Line int
	Node node.Node
}

// Error is a compile error, located in the source.
type Error struct {
	Name string
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// parseError carries an error up the parser's recursion. It is recovered
// at the statement boundary.
type parseError struct {
	err error
}

// Parser stores the state for the parser.
type Parser struct {
	table    *grammar.Table
	scanner  *scan.Scanner
	fileName string
	tokens   []scan.Token // The statement being parsed.
	pos      int
	lineNum  int
}

// NewParser returns a parser for src.
func NewParser(table *grammar.Table, fileName, src string) *Parser {
	return &Parser{
		table:    table,
		scanner:  scan.New(table, fileName, src),
		fileName: fileName,
	}
}

// Trace prints each token to w as it is scanned.
func (p *Parser) Trace(w io.Writer) {
	p.scanner.Trace(w)
}

// Compile parses all of src.
func Compile(table *grammar.Table, name, src string) ([]Statement, error) {
	p := NewParser(table, name, src)
	var stmts []Statement
	for {
		s, err := p.Next()
		if err == io.EOF {
			return stmts, nil
		}
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
}

// Next parses and returns the next statement. It returns io.EOF at the
// end of the input. After an error, parsing resumes at the next line.
func (p *Parser) Next() (Statement, error) {
	for {
		ok, err := p.readStatement()
		if err != nil {
			return Statement{}, err
		}
		if !ok {
			return Statement{}, io.EOF
		}
		if len(p.tokens) == 0 {
			continue
		}
		line := p.tokens[0].Line
		n, err := p.statement()
		if err != nil {
			return Statement{}, &Error{p.fileName, p.lineNum, err}
		}
		return Statement{line, n}, nil
	}
}

// readStatement collects the tokens of the next statement, which ends at a
// newline or semicolon outside brackets. Newlines inside parentheses
// separate statements of a sequence; inside other brackets they are
// ignored. The boolean is false at EOF.
func (p *Parser) readStatement() (bool, error) {
	p.tokens = p.tokens[:0]
	p.pos = 0
	var nest []scan.Type
	for {
		tok := p.scanner.Next()
		p.lineNum = tok.Line
		switch tok.Type {
		case scan.Error:
			if len(nest) > 0 {
				p.skipLine()
			}
			return true, &Error{p.fileName, tok.Line, node.Errorf(node.Syntax, "%s", tok.Text)}
		case scan.EOF:
			if len(nest) > 0 {
				return true, &Error{p.fileName, tok.Line, node.Errorf(node.Syntax, "unexpected EOF: unclosed bracket")}
			}
			return len(p.tokens) > 0, nil
		case scan.Newline:
			switch {
			case len(nest) == 0:
				return true, nil
			case nest[len(nest)-1] == scan.LeftParen:
				tok.Type = scan.Semicolon
			default:
				continue
			}
		case scan.Semicolon:
			if len(nest) == 0 {
				return true, nil
			}
		case scan.LeftParen, scan.LeftBrack, scan.LeftBrace:
			nest = append(nest, tok.Type)
		case scan.RightParen, scan.RightBrack, scan.RightBrace:
			if len(nest) > 0 {
				nest = nest[:len(nest)-1]
			}
		}
		p.tokens = append(p.tokens, tok)
	}
}

// skipLine discards tokens through the end of the line.
func (p *Parser) skipLine() {
	for {
		switch p.scanner.Next().Type {
		case scan.Newline, scan.EOF:
			return
		}
	}
}

// statement parses the collected tokens as one expression.
func (p *Parser) statement() (n node.Node, err error) {
	defer func() {
		if e := recover(); e != nil {
			pe, ok := e.(parseError)
			if !ok {
				panic(e)
			}
			n, err = nil, pe.err
		}
	}()
	n = p.expr(node.PrecLowest)
	if tok := p.peek(); tok.Type != scan.EOF {
		p.errorf(node.Syntax, "unexpected %s", tok)
	}
	return n, nil
}

func (p *Parser) next() scan.Token {
	tok := p.peek()
	if tok.Type != scan.EOF {
		p.pos++
		p.lineNum = tok.Line
	}
	return tok
}

func (p *Parser) peek() scan.Token {
	if p.pos >= len(p.tokens) {
		return scan.Token{Type: scan.EOF, Line: p.lineNum}
	}
	return p.tokens[p.pos]
}

func (p *Parser) errorf(kind node.ErrorKind, format string, args ...interface{}) {
	panic(parseError{node.Errorf(kind, format, args...)})
}

func (p *Parser) need(want scan.Type) scan.Token {
	tok := p.next()
	if tok.Type != want {
		p.errorf(node.Syntax, "expected %s, got %s", want, tok)
	}
	return tok
}

// expr parses an expression whose operators bind at least as tightly as min.
//
//	expr
//		operand
//		expr infix expr
//		expr postfix
//		expr '[' exprList ']'
func (p *Parser) expr(min node.Precedence) node.Node {
	left := p.operand()
	for {
		tok := p.peek()
		switch tok.Type {
		case scan.LeftBrack:
			if node.PrecPostfix < min {
				return left
			}
			p.next()
			args := append([]node.Node{left}, p.list(scan.RightBrack)...)
			left = node.Call(node.IndexOp, args...)
			continue
		case scan.Operator:
			var cands []*grammar.Operator
			for _, op := range p.table.ByCode(tok.Code) {
				if op.Fixity != grammar.Prefix && op.Prec >= min {
					cands = append(cands, op)
				}
			}
			if len(cands) == 0 {
				return left
			}
			left = p.try(cands, func(op *grammar.Operator) node.Node {
				return p.binary(left, op)
			})
			continue
		}
		return left
	}
}

// try applies the first candidate operator that parses, highest
// precedence first. If none parses it reports the first failure.
func (p *Parser) try(cands []*grammar.Operator, fn func(*grammar.Operator) node.Node) node.Node {
	if len(cands) == 1 {
		return fn(cands[0])
	}
	pos := p.pos
	var first *parseError
	for _, op := range cands {
		n, err := p.attempt(op, fn)
		if err == nil {
			return n
		}
		if first == nil {
			first = err
		}
		p.pos = pos
	}
	panic(*first)
}

func (p *Parser) attempt(op *grammar.Operator, fn func(*grammar.Operator) node.Node) (n node.Node, err *parseError) {
	defer func() {
		if e := recover(); e != nil {
			pe, ok := e.(parseError)
			if !ok {
				panic(e)
			}
			err = &pe
		}
	}()
	return fn(op), nil
}

// binary completes an infix or postfix operation whose left operand is
// already parsed.
func (p *Parser) binary(left node.Node, op *grammar.Operator) node.Node {
	p.next()
	if op.Fixity == grammar.Postfix {
		return node.Call(op.Name, left)
	}
	min := op.Prec + 1
	if op.Right {
		min = op.Prec
	}
	right := p.expr(min)
	if op.Prec == node.PrecRelation {
		if mode, ok := node.ParseMode(op.Name); ok {
			return node.Equation{LHS: left, RHS: right, Mode: mode}
		}
	}
	return node.Call(op.Name, left, right)
}

// operand parses a leaf, a bracketed group, a call or a prefix operation.
//
//	operand
//		number | string | $type | identifier
//		identifier '(' exprList ')'
//		'(' ')' | '(' expr ')' | '(' expr ',' exprList ')' | '(' expr ';' ... ')'
//		'[' exprList ']'
//		'{' exprList '}'
//		prefix expr
func (p *Parser) operand() node.Node {
	tok := p.next()
	switch tok.Type {
	case scan.Number:
		n, err := node.ParseNumber(tok.Text)
		if err != nil {
			panic(parseError{err})
		}
		return n
	case scan.String:
		return p.text(tok)
	case scan.TypeName:
		name := tok.Text[1:]
		if _, ok := node.ParseKind(name); !ok && name != "number" && name != "sequence" && name != "any" {
			p.errorf(node.UnknownConstant, "unknown type $%s", name)
		}
		return node.Text(name)
	case scan.Identifier:
		return p.identifier(tok)
	case scan.LeftParen:
		return p.group()
	case scan.LeftBrack:
		return node.NewList(p.list(scan.RightBrack)...)
	case scan.LeftBrace:
		return p.braces()
	case scan.Operator:
		var cands []*grammar.Operator
		for _, op := range p.table.ByCode(tok.Code) {
			if op.Fixity == grammar.Prefix {
				cands = append(cands, op)
			}
		}
		if len(cands) == 0 {
			p.errorf(node.Syntax, "unexpected operator %s", tok.Text)
		}
		p.pos--
		return p.try(cands, p.prefix)
	case scan.EOF:
		p.errorf(node.Syntax, "unexpected end of statement")
	}
	p.errorf(node.Syntax, "unexpected %s", tok)
	panic("not reached")
}

func (p *Parser) prefix(op *grammar.Operator) node.Node {
	p.next()
	arg := p.expr(op.OperandPrec())
	if x, ok := arg.(node.Number); ok && op.Name == node.Minus {
		return node.Neg(x)
	}
	return node.Call(op.Name, arg)
}

func (p *Parser) text(tok scan.Token) node.Node {
	s := tok.Text
	if s[0] == '\'' {
		s = `"` + s[1:len(s)-1] + `"`
	}
	t, err := strconv.Unquote(s)
	if err != nil {
		p.errorf(node.IllegalArgument, "illegal string literal %s", tok.Text)
	}
	return node.Text(t)
}

func (p *Parser) identifier(tok scan.Token) node.Node {
	name := tok.Text
	if p.peek().Type == scan.LeftParen {
		p.next()
		return node.Call(name, p.list(scan.RightParen)...)
	}
	switch name {
	case "true":
		return node.True
	case "false":
		return node.False
	case "break", "continue":
		return node.Call(name)
	}
	return node.Var(name)
}

// group parses what follows a left parenthesis.
func (p *Parser) group() node.Node {
	p.skipSemicolons()
	if p.peek().Type == scan.RightParen {
		p.next()
		return node.NewStatements()
	}
	first := p.expr(node.PrecLowest)
	switch p.peek().Type {
	case scan.RightParen:
		p.next()
		return first
	case scan.Comma:
		p.next()
		elems := append([]node.Node{first}, p.list(scan.RightParen)...)
		return node.NewTuple(elems...)
	case scan.Semicolon:
	default:
		p.errorf(node.Syntax, "expected ), got %s", p.peek())
	}
	stmts := []node.Node{first}
	for {
		p.skipSemicolons()
		if p.peek().Type == scan.RightParen {
			p.next()
			break
		}
		stmts = append(stmts, p.expr(node.PrecLowest))
		if t := p.peek().Type; t != scan.Semicolon && t != scan.RightParen {
			p.errorf(node.Syntax, "expected ; or ), got %s", p.peek())
		}
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	return node.NewStatements(stmts...)
}

func (p *Parser) skipSemicolons() {
	for p.peek().Type == scan.Semicolon {
		p.next()
	}
}

// braces parses a vector literal, or a matrix if every element is itself
// a vector literal.
func (p *Parser) braces() node.Node {
	elems := p.list(scan.RightBrace)
	if len(elems) == 0 {
		return node.NewVector()
	}
	for _, e := range elems {
		if _, ok := e.(node.Vector); !ok {
			return node.NewVector(elems...)
		}
	}
	m, err := node.MatrixFromVectors(elems)
	if err != nil {
		panic(parseError{err})
	}
	return m
}

// list parses a comma-separated list of expressions and the closing token.
func (p *Parser) list(close scan.Type) []node.Node {
	var elems []node.Node
	if p.peek().Type == close {
		p.next()
		return elems
	}
	for {
		elems = append(elems, p.expr(node.PrecLowest))
		tok := p.next()
		switch tok.Type {
		case close:
			return elems
		case scan.Comma:
			continue
		}
		p.errorf(node.Syntax, "expected , or %s, got %s", close, tok)
	}
}
