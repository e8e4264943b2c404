// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grammar holds the live operator table consulted by the scanner
// and the parser. Every spelling in the table is assigned a private one-rune
// code, so the parser sees multi-character keywords as single operators.
package grammar // import "robpike.io/kelvin/grammar"

import (
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"robpike.io/kelvin/node"
)

// Fixity says where an operator sits relative to its operands.
type Fixity int

const (
	Prefix Fixity = iota
	Infix
	Postfix
)

var fixityNames = [...]string{
	Prefix:  "prefix",
	Infix:   "infix",
	Postfix: "postfix",
}

func (f Fixity) String() string {
	return fixityNames[f]
}

// ParseFixity returns the fixity with the given name.
func ParseFixity(s string) (Fixity, bool) {
	for f, name := range fixityNames {
		if s == name {
			return Fixity(f), true
		}
	}
	return 0, false
}

// FirstCode is the first code allocated. Codes come from the Unicode
// private use area, which user input may not contain.
const FirstCode = '\uE000'

// lastCode is the end of the private use area.
const lastCode = '\uF8FF'

// IsCode reports whether r lies in the range of operator codes.
func IsCode(r rune) bool {
	return FirstCode <= r && r <= lastCode
}

// Operator is an entry in the table.
type Operator struct {
	Name   string          // Name of the Function the operator builds.
	Symbol string          // Spelling in source text.
	Fixity Fixity          // Where the operands sit.
	Prec   node.Precedence // Binding strength.
	Right  bool            // Right associative; infix only.
	// Operand is the level at which a prefix operator parses its operand.
	// Zero means the operator's own precedence.
	Operand node.Precedence
	Code    rune
}

// OperandPrec returns the level at which a prefix operator parses its
// operand.
func (op *Operator) OperandPrec() node.Precedence {
	if op.Operand != 0 {
		return op.Operand
	}
	return op.Prec
}

func (op *Operator) String() string {
	return fmt.Sprintf("%s %q (%s, %s)", op.Fixity, op.Symbol, op.Name, op.Prec)
}

// Table is a mutable operator table.
type Table struct {
	ops   map[string][]*Operator // By symbol.
	codes map[rune]string        // Code to symbol.
	next  rune
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		ops:   make(map[string][]*Operator),
		codes: make(map[rune]string),
		next:  FirstCode,
	}
}

// Builtin returns a table holding the built-in operators.
func Builtin() *Table {
	t := NewTable()
	for _, op := range builtins {
		if _, err := t.Register(op); err != nil {
			panic(err)
		}
	}
	return t
}

var builtins = []Operator{
	{Name: "def", Symbol: "def", Fixity: Prefix, Prec: node.PrecAssign},
	{Name: "return", Symbol: "return", Fixity: Prefix, Prec: node.PrecAssign},
	{Name: "throw", Symbol: "throw", Fixity: Prefix, Prec: node.PrecAssign},
	{Name: ":=", Symbol: ":=", Fixity: Infix, Prec: node.PrecAssign, Right: true},
	{Name: "or", Symbol: "or", Fixity: Infix, Prec: node.PrecOr},
	{Name: "or", Symbol: "||", Fixity: Infix, Prec: node.PrecOr},
	{Name: "xor", Symbol: "xor", Fixity: Infix, Prec: node.PrecOr},
	{Name: "and", Symbol: "and", Fixity: Infix, Prec: node.PrecAnd},
	{Name: "and", Symbol: "&&", Fixity: Infix, Prec: node.PrecAnd},
	{Name: "=", Symbol: "=", Fixity: Infix, Prec: node.PrecRelation},
	{Name: "<", Symbol: "<", Fixity: Infix, Prec: node.PrecRelation},
	{Name: ">", Symbol: ">", Fixity: Infix, Prec: node.PrecRelation},
	{Name: "<=", Symbol: "<=", Fixity: Infix, Prec: node.PrecRelation},
	{Name: ">=", Symbol: ">=", Fixity: Infix, Prec: node.PrecRelation},
	{Name: "==", Symbol: "==", Fixity: Infix, Prec: node.PrecRelation},
	{Name: "!=", Symbol: "!=", Fixity: Infix, Prec: node.PrecRelation},
	{Name: "..", Symbol: "..", Fixity: Infix, Prec: node.PrecRange},
	{Name: "+", Symbol: "+", Fixity: Infix, Prec: node.PrecAdditive},
	{Name: "-", Symbol: "-", Fixity: Infix, Prec: node.PrecAdditive},
	{Name: "*", Symbol: "*", Fixity: Infix, Prec: node.PrecMultiplicative},
	{Name: "/", Symbol: "/", Fixity: Infix, Prec: node.PrecMultiplicative},
	{Name: "mod", Symbol: "mod", Fixity: Infix, Prec: node.PrecMultiplicative},
	{Name: "^", Symbol: "^", Fixity: Infix, Prec: node.PrecExponent, Right: true},
	{Name: "-", Symbol: "-", Fixity: Prefix, Prec: node.PrecUnary, Operand: node.PrecExponent},
	{Name: "not", Symbol: "not", Fixity: Prefix, Prec: node.PrecUnary},
	{Name: "not", Symbol: "!", Fixity: Prefix, Prec: node.PrecUnary},
	{Name: "!", Symbol: "!", Fixity: Postfix, Prec: node.PrecPostfix},
}

// Register adds the operator to the table and returns the installed entry,
// whose Code is set. A symbol may carry one operator per fixity.
func (t *Table) Register(op Operator) (*Operator, error) {
	if err := checkSymbol(op.Symbol); err != nil {
		return nil, err
	}
	if op.Name == "" {
		return nil, node.Errorf(node.IllegalArgument, "operator %q has no name", op.Symbol)
	}
	for _, o := range t.ops[op.Symbol] {
		if o.Fixity == op.Fixity {
			return nil, node.Errorf(node.DuplicateKeyword, "duplicate keyword: %s operator %q already defined", op.Fixity, op.Symbol)
		}
	}
	code, err := t.code(op.Symbol)
	if err != nil {
		return nil, err
	}
	op.Code = code
	installed := &op
	list := append(t.ops[op.Symbol], installed)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Prec > list[j].Prec })
	t.ops[op.Symbol] = list
	return installed, nil
}

// code returns the code for symbol, allocating one if needed.
func (t *Table) code(symbol string) (rune, error) {
	if list := t.ops[symbol]; len(list) > 0 {
		return list[0].Code, nil
	}
	if t.next > lastCode {
		return 0, node.Errorf(node.IllegalArgument, "too many operators")
	}
	c := t.next
	t.next++
	t.codes[c] = symbol
	return c, nil
}

// checkSymbol verifies that s is either a word or a run of punctuation
// that doesn't collide with the fixed syntax.
func checkSymbol(s string) error {
	if s == "" {
		return node.Errorf(node.IllegalArgument, "empty operator symbol")
	}
	first, _ := utf8.DecodeRuneInString(s)
	word := IsWordStart(first)
	for _, r := range s {
		switch {
		case IsCode(r):
			return node.Errorf(node.IllegalArgument, "illegal character %#U in operator %q", r, s)
		case word && !IsWordRune(r):
			return node.Errorf(node.IllegalArgument, "illegal operator %q: mixes letters and punctuation", s)
		case !word && (IsWordRune(r) || unicode.IsSpace(r) || reserved(r)):
			return node.Errorf(node.IllegalArgument, "illegal character %#U in operator %q", r, s)
		}
	}
	return nil
}

// reserved reports whether r belongs to the fixed syntax.
func reserved(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', ',', ';', '"', '\'', '#', '$':
		return true
	}
	return false
}

// IsWordStart reports whether r can begin an identifier.
func IsWordStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsWordRune reports whether r can appear in an identifier.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Remove deletes every operator spelled symbol.
func (t *Table) Remove(symbol string) error {
	list, ok := t.ops[symbol]
	if !ok {
		return node.Errorf(node.IllegalArgument, "no operator %q", symbol)
	}
	delete(t.codes, list[0].Code)
	delete(t.ops, symbol)
	return nil
}

// Lookup returns the operators spelled symbol, highest precedence first.
func (t *Table) Lookup(symbol string) []*Operator {
	return t.ops[symbol]
}

// ByCode returns the operators with the given code, highest precedence first.
func (t *Table) ByCode(code rune) []*Operator {
	return t.ops[t.codes[code]]
}

// Symbol returns the spelling of the code.
func (t *Table) Symbol(code rune) (string, bool) {
	s, ok := t.codes[code]
	return s, ok
}

// Find returns the operator spelled symbol with the given fixity.
func (t *Table) Find(symbol string, fixity Fixity) (*Operator, bool) {
	for _, op := range t.ops[symbol] {
		if op.Fixity == fixity {
			return op, true
		}
	}
	return nil, false
}

// Words returns the alphabetic symbols.
func (t *Table) Words() map[string]rune {
	words := make(map[string]rune)
	for s, list := range t.ops {
		r, _ := utf8.DecodeRuneInString(s)
		if IsWordStart(r) {
			words[s] = list[0].Code
		}
	}
	return words
}

// Punctuation returns the non-alphabetic symbols, longest first, so that
// a scan can take the longest match.
func (t *Table) Punctuation() []string {
	var syms []string
	for s := range t.ops {
		r, _ := utf8.DecodeRuneInString(s)
		if !IsWordStart(r) {
			syms = append(syms, s)
		}
	}
	sort.Slice(syms, func(i, j int) bool {
		if len(syms[i]) != len(syms[j]) {
			return len(syms[i]) > len(syms[j])
		}
		return syms[i] < syms[j]
	})
	return syms
}

// Operators returns every entry, ordered by symbol and then precedence.
func (t *Table) Operators() []*Operator {
	var all []*Operator
	for _, list := range t.ops {
		all = append(all, list...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Symbol != all[j].Symbol {
			return all[i].Symbol < all[j].Symbol
		}
		return all[i].Prec > all[j].Prec
	})
	return all
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		ops:   make(map[string][]*Operator, len(t.ops)),
		codes: make(map[rune]string, len(t.codes)),
		next:  t.next,
	}
	for s, list := range t.ops {
		l := make([]*Operator, len(list))
		for i, op := range list {
			o := *op
			l[i] = &o
		}
		c.ops[s] = l
	}
	for r, s := range t.codes {
		c.codes[r] = s
	}
	return c
}
