// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "strconv"

// Bool is a truth value.
type Bool bool

const (
	True  Bool = true
	False Bool = false
)

func (b Bool) Kind() Kind               { return BoolKind }
func (b Bool) Precedence() Precedence   { return PrecLeaf }
func (b Bool) Complexity() int          { return 1 }
func (b Bool) Children() []Node         { return nil }
func (b Bool) WithChildren([]Node) Node { return b }
func (b Bool) Equals(n Node) bool {
	c, ok := n.(Bool)
	return ok && b == c
}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Text is a string literal.
type Text string

func (t Text) Kind() Kind               { return TextKind }
func (t Text) Precedence() Precedence   { return PrecLeaf }
func (t Text) Complexity() int          { return 1 }
func (t Text) Children() []Node         { return nil }
func (t Text) WithChildren([]Node) Node { return t }
func (t Text) Equals(n Node) bool {
	u, ok := n.(Text)
	return ok && t == u
}

// String returns the quoted literal. Use a conversion to string for the
// unquoted contents.
func (t Text) String() string {
	return strconv.Quote(string(t))
}

// Variable is a named symbol.
type Variable struct {
	Name string
}

// Var returns the variable with the given name.
func Var(name string) Variable {
	return Variable{name}
}

func (v Variable) Kind() Kind               { return VariableKind }
func (v Variable) Precedence() Precedence   { return PrecLeaf }
func (v Variable) Complexity() int          { return 2 }
func (v Variable) Children() []Node         { return nil }
func (v Variable) WithChildren([]Node) Node { return v }
func (v Variable) String() string           { return v.Name }

func (v Variable) Equals(n Node) bool {
	w, ok := n.(Variable)
	return ok && v.Name == w.Name
}

// Void is the result of operations run only for their effect.
type Void struct{}

func (Void) Kind() Kind                 { return VoidKind }
func (Void) Precedence() Precedence     { return PrecLeaf }
func (Void) Complexity() int            { return 1 }
func (Void) Children() []Node           { return nil }
func (v Void) WithChildren([]Node) Node { return v }
func (Void) String() string             { return "" }

func (Void) Equals(n Node) bool {
	_, ok := n.(Void)
	return ok
}

// Final wraps a node that the rewriting engine must leave alone.
type Final struct {
	Inner Node
}

func (f Final) Kind() Kind             { return FinalKind }
func (f Final) Precedence() Precedence { return f.Inner.Precedence() }
func (f Final) Complexity() int        { return 1 + f.Inner.Complexity() }
func (f Final) Children() []Node       { return []Node{f.Inner} }
func (f Final) String() string         { return f.Inner.String() }

func (f Final) WithChildren(c []Node) Node {
	mustLen(f, c, 1)
	return Final{c[0]}
}

func (f Final) Equals(n Node) bool {
	g, ok := n.(Final)
	return ok && Equal(f.Inner, g.Inner)
}

// Closure is a deferred body, evaluated each time it is simplified.
// If CaptureReturn is set, a return signal raised by the body becomes
// the value of the closure.
type Closure struct {
	Body          Node
	CaptureReturn bool
}

func (c Closure) Kind() Kind             { return ClosureKind }
func (c Closure) Precedence() Precedence { return c.Body.Precedence() }
func (c Closure) Complexity() int        { return 1 + c.Body.Complexity() }
func (c Closure) Children() []Node       { return []Node{c.Body} }

func (c Closure) String() string {
	return c.Body.String()
}

func (c Closure) WithChildren(k []Node) Node {
	mustLen(c, k, 1)
	return Closure{k[0], c.CaptureReturn}
}

func (c Closure) Equals(n Node) bool {
	d, ok := n.(Closure)
	return ok && c.CaptureReturn == d.CaptureReturn && Equal(c.Body, d.Body)
}

// mustLen panics if a WithChildren call has the wrong number of children.
func mustLen(n Node, c []Node, want int) {
	if len(c) != want {
		panic("node: " + n.Kind().String() + " given " + strconv.Itoa(len(c)) + " children, want " + strconv.Itoa(want))
	}
}
