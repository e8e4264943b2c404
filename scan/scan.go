// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scan turns source text into tokens. Operator spellings are first
// replaced by their one-rune codes from the grammar table, so every
// operator, however it is spelled, reaches the parser as a single rune.
package scan // import "robpike.io/kelvin/scan"

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"robpike.io/kelvin/grammar"
)

// Token represents a token or text string returned from the scanner.
type Token struct {
	Type Type   // The type of this item.
	Line int    // The line number on which this token appears.
	Text string // The text of this item.
	Code rune   // The operator code, for Operator tokens.
}

// Type identifies the type of lex items.
type Type int

const (
	EOF   Type = iota // zero value so closed channel delivers EOF
	Error             // error occurred; value is text of error
	Newline
	// Interesting things
	Identifier // alphanumeric identifier
	Number     // simple number
	String     // quoted string (includes quotes)
	TypeName   // type literal like $integer
	Operator   // operator code from the grammar table
	LeftParen  // '('
	RightParen // ')'
	LeftBrack  // '['
	RightBrack // ']'
	LeftBrace  // '{'
	RightBrace // '}'
	Comma      // ','
	Semicolon  // ';'
)

var typeNames = [...]string{
	EOF:        "EOF",
	Error:      "Error",
	Newline:    "Newline",
	Identifier: "Identifier",
	Number:     "Number",
	String:     "String",
	TypeName:   "TypeName",
	Operator:   "Operator",
	LeftParen:  "LeftParen",
	RightParen: "RightParen",
	LeftBrack:  "LeftBrack",
	RightBrack: "RightBrack",
	LeftBrace:  "LeftBrace",
	RightBrace: "RightBrace",
	Comma:      "Comma",
	Semicolon:  "Semicolon",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func (i Token) String() string {
	switch {
	case i.Type == EOF:
		return "EOF"
	case i.Type == Error:
		return "error: " + i.Text
	case len(i.Text) > 10:
		return fmt.Sprintf("%s: %.10q...", i.Type, i.Text)
	}
	return fmt.Sprintf("%s: %q", i.Type, i.Text)
}

const eof = -1

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*Scanner) stateFn

// Scanner holds the state of the scanner.
type Scanner struct {
	table     *grammar.Table
	name      string // the name of the input; used only for error reports
	src       string // source text not yet loaded
	input     string // the encoded line(s) being scanned
	err       error  // error from encoding the current line
	lastRune  rune   // most recent return from next()
	lastWidth int    // size of that rune
	line      int    // line number in input
	pos       int    // current position in the input
	start     int    // start position of this item
	token     Token
	debug     io.Writer // if non-nil, tokens are traced here
}

// New creates and returns a new scanner for src. Lines are encoded as
// they are reached, so operators registered while earlier statements
// run are recognized in later lines.
func New(table *grammar.Table, name, src string) *Scanner {
	return &Scanner{
		table: table,
		name:  name,
		src:   src,
		line:  1,
	}
}

// Trace makes the scanner print each token to w.
func (l *Scanner) Trace(w io.Writer) {
	l.debug = w
}

// Next returns the next token.
func (l *Scanner) Next() Token {
	l.lastRune = eof
	l.lastWidth = 0
	l.token = Token{Type: EOF, Line: l.line, Text: "EOF"}
	state := lexAny
	for {
		state = state(l)
		if state == nil {
			break
		}
	}
	if l.err != nil {
		l.token = Token{Type: Error, Line: l.line, Text: l.err.Error()}
		l.err = nil
	}
	return l.token
}

// loadLine encodes the next line of source and appends it to the input.
func (l *Scanner) loadLine() {
	text := l.src
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i+1]
	}
	l.src = l.src[len(text):]
	enc, err := Encode(l.table, text)
	if err != nil {
		l.err = err
		enc = ""
		if strings.HasSuffix(text, "\n") {
			enc = "\n"
		}
	}
	// Reset to beginning of input buffer if there is nothing pending.
	if l.start == l.pos {
		l.input = enc
		l.start = 0
		l.pos = 0
	} else {
		l.input += enc
	}
}

// next returns the next rune in the input.
func (l *Scanner) next() rune {
	if l.pos >= len(l.input) && l.src != "" {
		l.loadLine()
	}
	if l.pos >= len(l.input) {
		l.lastRune, l.lastWidth = eof, 0
		return eof
	}
	l.lastRune, l.lastWidth = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.lastWidth
	return l.lastRune
}

// peek returns but does not consume the next rune in the input.
func (l *Scanner) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Should only be called once per call of next.
func (l *Scanner) backup() {
	l.pos -= l.lastWidth
	l.lastWidth = 0
}

// emit passes an item back to the client.
func (l *Scanner) emit(t Type) stateFn {
	text := l.input[l.start:l.pos]
	l.token = Token{Type: t, Line: l.line, Text: text}
	if t == Operator {
		l.token.Code, _ = utf8.DecodeRuneInString(text)
		l.token.Text, _ = l.table.Symbol(l.token.Code)
	}
	if t == Newline {
		l.line++
	}
	if l.debug != nil {
		fmt.Fprintf(l.debug, "%s:%d: emit %s\n", l.name, l.token.Line, l.token)
	}
	l.start = l.pos
	return nil
}

// ignore skips over the pending input.
func (l *Scanner) ignore() {
	l.start = l.pos
}

// accept consumes the next rune if it's from the valid set.
func (l *Scanner) accept(valid string) bool {
	r := l.next()
	for _, v := range valid {
		if r == v {
			return true
		}
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *Scanner) acceptRun(valid string) {
	for l.accept(valid) {
	}
}

// errorf returns an error token and abandons the rest of the line.
func (l *Scanner) errorf(format string, args ...interface{}) stateFn {
	l.token = Token{Type: Error, Line: l.line, Text: fmt.Sprintf(format, args...)}
	for r := l.next(); r != eof && r != '\n'; r = l.next() {
	}
	l.backup()
	l.start = l.pos
	return nil
}

// state functions

// lexComment scans a comment. The comment marker has been consumed.
func lexComment(l *Scanner) stateFn {
	for r := l.next(); r != eof && r != '\n'; r = l.next() {
	}
	l.backup()
	l.ignore()
	return lexAny
}

// lexAny scans non-space items.
func lexAny(l *Scanner) stateFn {
	switch r := l.next(); {
	case r == eof:
		return nil
	case r == '\n':
		return l.emit(Newline)
	case r == ';':
		return l.emit(Semicolon)
	case r == '#':
		return lexComment
	case isSpace(r):
		return lexSpace
	case r == '"' || r == '\'':
		l.backup() // So lexQuote can read the quote character.
		return lexQuote
	case grammar.IsCode(r):
		if _, ok := l.table.Symbol(r); !ok {
			return l.errorf("unknown operator code %#U", r)
		}
		return l.emit(Operator)
	case r == '.' || isDigit(r):
		l.backup()
		return lexNumber
	case r == '$':
		return lexTypeName
	case grammar.IsWordStart(r):
		l.backup()
		return lexIdentifier
	case r == '(':
		return l.emit(LeftParen)
	case r == ')':
		return l.emit(RightParen)
	case r == '[':
		return l.emit(LeftBrack)
	case r == ']':
		return l.emit(RightBrack)
	case r == '{':
		return l.emit(LeftBrace)
	case r == '}':
		return l.emit(RightBrace)
	case r == ',':
		return l.emit(Comma)
	default:
		return l.errorf("unrecognized character: %#U", r)
	}
}

// lexSpace scans a run of space characters.
// One space has already been seen.
func lexSpace(l *Scanner) stateFn {
	for isSpace(l.peek()) {
		l.next()
	}
	l.ignore()
	return lexAny
}

// lexIdentifier scans an alphanumeric.
func lexIdentifier(l *Scanner) stateFn {
	for grammar.IsWordRune(l.peek()) {
		l.next()
	}
	return l.emit(Identifier)
}

// lexTypeName scans a type literal. The $ has been consumed.
func lexTypeName(l *Scanner) stateFn {
	if !grammar.IsWordStart(l.peek()) {
		return l.errorf("bad type literal")
	}
	for grammar.IsWordRune(l.peek()) {
		l.next()
	}
	return l.emit(TypeName)
}

// lexNumber scans a decimal number with optional fraction and exponent.
// The parser, via node.ParseNumber, checks the result.
func lexNumber(l *Scanner) stateFn {
	const digits = "0123456789"
	l.acceptRun(digits)
	if l.accept(".") {
		l.acceptRun(digits)
	}
	if l.accept("eE") {
		l.accept("+-")
		l.acceptRun(digits)
	}
	if r := l.peek(); grammar.IsWordRune(r) || r == '.' {
		l.next()
		return l.errorf("bad number syntax: %s", l.input[l.start:l.pos])
	}
	return l.emit(Number)
}

// lexQuote scans a quoted string.
// The next character is the quote.
func lexQuote(l *Scanner) stateFn {
	quote := l.next()
	for {
		switch l.next() {
		case '\\':
			if r := l.next(); r != eof && r != '\n' {
				break
			}
			fallthrough
		case eof, '\n':
			return l.errorf("unterminated quoted string")
		case quote:
			return l.emit(String)
		}
	}
}

// isSpace reports whether r is a space character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || (r != '\n' && unicode.IsSpace(r))
}

// isDigit reports whether r is an ASCII digit.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
