// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "strings"

// Function is an operation call. Every operator, built-in and user
// definition is a Function; the name selects the rules that rewrite it.
type Function struct {
	Name string
	Args []Node
}

// Call returns the Function name(args...).
func Call(name string, args ...Node) Function {
	return Function{Name: name, Args: args}
}

// Operation names with special rendering.
const (
	Plus    = "+"
	Times   = "*"
	Power   = "^"
	Minus   = "-"
	Divide  = "/"
	IndexOp = "index"
)

func (f Function) Kind() Kind          { return FunctionKind }
func (f Function) Complexity() int     { return sumComplexity(f.Args) }
func (f Function) Children() []Node    { return clone(f.Args) }
func (f Function) Arity() int          { return len(f.Args) }
func (f Function) Is(name string) bool { return f.Name == name }

func (f Function) WithChildren(c []Node) Node {
	return Function{f.Name, clone(c)}
}

func (f Function) Equals(n Node) bool {
	g, ok := n.(Function)
	return ok && f.Name == g.Name && EqualSlices(f.Args, g.Args)
}

// IsCall reports whether n is a Function with the given name.
func IsCall(n Node, name string) bool {
	f, ok := n.(Function)
	return ok && f.Name == name
}

// notation describes how an operator is rendered.
type notation struct {
	prec   Precedence
	word   bool // Spaced, as in "a and b".
	prefix bool
	suffix bool
}

var notations = map[string]notation{
	"-":   {prec: PrecAdditive},
	"/":   {prec: PrecMultiplicative},
	"mod": {prec: PrecMultiplicative, word: true},
	"==":  {prec: PrecRelation, word: true},
	"!=":  {prec: PrecRelation, word: true},
	"and": {prec: PrecAnd, word: true},
	"or":  {prec: PrecOr, word: true},
	"xor": {prec: PrecOr, word: true},
	"not": {prec: PrecUnary, word: true, prefix: true},
	"!":   {prec: PrecPostfix, suffix: true},
	":=":  {prec: PrecAssign, word: true},
	"..":  {prec: PrecRange},
}

func (f Function) Precedence() Precedence {
	switch {
	case f.Name == Plus && len(f.Args) > 1:
		return PrecAdditive
	case f.Name == Times && len(f.Args) > 1:
		if c, ok := f.Args[0].(Number); ok && c.Sign() < 0 {
			return PrecAdditive
		}
		return PrecMultiplicative
	case f.Name == Power && len(f.Args) == 2:
		if e, ok := f.Args[1].(Number); ok && e.Sign() < 0 {
			return PrecMultiplicative
		}
		return PrecExponent
	case f.Name == Minus && len(f.Args) == 1:
		return PrecAdditive
	case f.Name == IndexOp && len(f.Args) == 2:
		return PrecPostfix
	}
	if n, ok := notations[f.Name]; ok && f.arityFits(n) {
		return n.prec
	}
	return PrecLeaf
}

func (f Function) arityFits(n notation) bool {
	if n.prefix || n.suffix {
		return len(f.Args) == 1
	}
	return len(f.Args) == 2
}

func (f Function) String() string {
	switch {
	case f.Name == Plus && len(f.Args) > 1:
		return f.sumString()
	case f.Name == Times && len(f.Args) > 1:
		return f.productString()
	case f.Name == Power && len(f.Args) == 2:
		return powerString(f.Args[0], f.Args[1])
	case f.Name == Minus && len(f.Args) == 1:
		return "-" + paren(f.Args[0], PrecExponent)
	case f.Name == IndexOp && len(f.Args) == 2:
		return paren(f.Args[0], PrecPostfix) + "[" + f.Args[1].String() + "]"
	}
	if n, ok := notations[f.Name]; ok && f.arityFits(n) {
		switch {
		case n.prefix:
			return f.Name + " " + paren(f.Args[0], n.prec)
		case n.suffix:
			return paren(f.Args[0], n.prec) + f.Name
		}
		sep := f.Name
		if n.word {
			sep = " " + sep + " "
		}
		return paren(f.Args[0], n.prec) + sep + paren(f.Args[1], n.prec+1)
	}
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('(')
	for i, a := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// sumString renders terms with a negative sign as subtractions.
func (f Function) sumString() string {
	var b strings.Builder
	for i, t := range f.Args {
		if i == 0 {
			b.WriteString(paren(t, PrecAdditive))
			continue
		}
		if neg, ok := negateTerm(t); ok {
			b.WriteByte('-')
			b.WriteString(paren(neg, PrecMultiplicative))
			continue
		}
		b.WriteByte('+')
		b.WriteString(paren(t, PrecMultiplicative))
	}
	return b.String()
}

// productString renders factors with negative numeric exponents, and the
// denominator of a fractional coefficient, below a division bar.
func (f Function) productString() string {
	var sign string
	var num, den []Node
	factors := f.Args
	if c, ok := factors[0].(Number); ok {
		factors = factors[1:]
		if c.Sign() < 0 {
			sign = "-"
			c = Neg(c)
		}
		switch c := c.(type) {
		case Rat:
			if !IsOne(c.Num()) {
				num = append(num, c.Num())
			}
			den = append(den, c.Denom())
		default:
			if !IsOne(c) || len(factors) == 0 {
				num = append(num, c)
			}
		}
	}
	for _, x := range factors {
		if p, ok := x.(Function); ok && p.Name == Power && len(p.Args) == 2 {
			if e, ok := p.Args[1].(Number); ok && e.Sign() < 0 {
				den = append(den, powerOf(p.Args[0], Neg(e)))
				continue
			}
		}
		num = append(num, x)
	}
	var b strings.Builder
	b.WriteString(sign)
	if len(num) == 0 {
		b.WriteByte('1')
	}
	for i, x := range num {
		if i == 0 {
			b.WriteString(paren(x, PrecMultiplicative))
			continue
		}
		b.WriteByte('*')
		b.WriteString(paren(x, PrecExponent))
	}
	if len(den) > 0 {
		b.WriteByte('/')
		b.WriteString(denominatorString(den))
	}
	return b.String()
}

func denominatorString(den []Node) string {
	if len(den) == 1 {
		return paren(den[0], PrecExponent)
	}
	s := make([]string, len(den))
	for i, x := range den {
		s[i] = paren(x, PrecExponent)
	}
	return "(" + strings.Join(s, "*") + ")"
}

func powerString(base, exp Node) string {
	if e, ok := exp.(Number); ok && e.Sign() < 0 {
		return "1/" + paren(powerOf(base, Neg(e)), PrecExponent)
	}
	return paren(base, PrecUnary) + "^" + paren(exp, PrecExponent)
}

// powerOf returns base^exp, or base if exp is one.
func powerOf(base Node, exp Number) Node {
	if IsOne(exp) {
		return base
	}
	return Call(Power, base, exp)
}

// negateTerm returns -t if t renders with a leading minus sign.
func negateTerm(t Node) (Node, bool) {
	switch t := t.(type) {
	case Number:
		if t.Sign() < 0 {
			return Neg(t), true
		}
	case Function:
		if t.Name == Minus && len(t.Args) == 1 {
			return t.Args[0], true
		}
		if t.Name != Times || len(t.Args) < 2 {
			break
		}
		c, ok := t.Args[0].(Number)
		if !ok || c.Sign() >= 0 {
			break
		}
		if IsMinusOne(c) {
			if len(t.Args) == 2 {
				return t.Args[1], true
			}
			return Function{Times, clone(t.Args[1:])}, true
		}
		args := clone(t.Args)
		args[0] = Neg(c)
		return Function{Times, args}, true
	}
	return nil, false
}
