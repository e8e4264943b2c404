// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

// Mode is the relation of an Equation.
type Mode int

const (
	EqualTo Mode = iota
	LessThan
	GreaterThan
	LessOrEqual
	GreaterOrEqual
)

var modeSymbols = [...]string{
	EqualTo:        "=",
	LessThan:       "<",
	GreaterThan:    ">",
	LessOrEqual:    "<=",
	GreaterOrEqual: ">=",
}

func (m Mode) String() string {
	return modeSymbols[m]
}

// ParseMode returns the mode spelled s.
func ParseMode(s string) (Mode, bool) {
	for m, sym := range modeSymbols {
		if s == sym {
			return Mode(m), true
		}
	}
	return 0, false
}

// Holds reports whether the relation holds for the given comparison
// result, which is -1, 0 or +1.
func (m Mode) Holds(cmp int) bool {
	switch m {
	case EqualTo:
		return cmp == 0
	case LessThan:
		return cmp < 0
	case GreaterThan:
		return cmp > 0
	case LessOrEqual:
		return cmp <= 0
	case GreaterOrEqual:
		return cmp >= 0
	}
	return false
}

// Equation relates two expressions.
type Equation struct {
	LHS, RHS Node
	Mode     Mode
}

// Eq returns the equation lhs = rhs.
func Eq(lhs, rhs Node) Equation {
	return Equation{lhs, rhs, EqualTo}
}

func (e Equation) Kind() Kind             { return EquationKind }
func (e Equation) Precedence() Precedence { return PrecRelation }
func (e Equation) Complexity() int        { return 1 + e.LHS.Complexity() + e.RHS.Complexity() }
func (e Equation) Children() []Node       { return []Node{e.LHS, e.RHS} }

func (e Equation) String() string {
	return paren(e.LHS, PrecRelation+1) + " " + e.Mode.String() + " " + paren(e.RHS, PrecRelation+1)
}

func (e Equation) WithChildren(c []Node) Node {
	mustLen(e, c, 2)
	return Equation{c[0], c[1], e.Mode}
}

func (e Equation) Equals(n Node) bool {
	f, ok := n.(Equation)
	return ok && e.Mode == f.Mode && Equal(e.LHS, f.LHS) && Equal(e.RHS, f.RHS)
}
