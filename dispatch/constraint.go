// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"strings"

	"robpike.io/kelvin/node"
)

// Constraint restricts the argument in one parameter position.
type Constraint struct {
	name  string
	match func(node.Node) bool
}

func (c Constraint) String() string { return c.name }

// Match reports whether n satisfies the constraint.
func (c Constraint) Match(n node.Node) bool {
	return c.match(n)
}

func kindIs(kinds ...node.Kind) func(node.Node) bool {
	return func(n node.Node) bool {
		k := n.Kind()
		for _, kind := range kinds {
			if k == kind {
				return true
			}
		}
		return false
	}
}

var (
	Any      = Constraint{"any", func(node.Node) bool { return true }}
	Number   = Constraint{"number", node.IsNumeric}
	Integer  = Exact(node.IntKind)
	Rational = Constraint{"rational", kindIs(node.IntKind, node.RatKind)}
	Sequence = Constraint{"sequence", func(n node.Node) bool {
		_, ok := n.(node.Sequence)
		return ok
	}}
	List     = Exact(node.ListKind)
	Vector   = Exact(node.VectorKind)
	Matrix   = Exact(node.MatrixKind)
	Function = Exact(node.FunctionKind)
	Variable = Exact(node.VariableKind)
	Equation = Exact(node.EquationKind)
	Closure  = Exact(node.ClosureKind)
	Text     = Exact(node.TextKind)
	Bool     = Exact(node.BoolKind)
	// Symbolic matches anything that is not a number or a sequence.
	Symbolic = Constraint{"symbolic", func(n node.Node) bool {
		if node.IsNumeric(n) {
			return false
		}
		_, seq := n.(node.Sequence)
		return !seq
	}}
)

// Exact matches nodes of one kind.
func Exact(kind node.Kind) Constraint {
	return Constraint{kind.String(), kindIs(kind)}
}

// OneOf matches nodes of any of the kinds.
func OneOf(kinds ...node.Kind) Constraint {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return Constraint{strings.Join(names, "|"), kindIs(kinds...)}
}

// Call matches calls of the named operation.
func Call(name string) Constraint {
	return Constraint{name + "(...)", func(n node.Node) bool {
		return node.IsCall(n, name)
	}}
}

// Not matches what c does not.
func Not(c Constraint) Constraint {
	return Constraint{"not " + c.name, func(n node.Node) bool { return !c.match(n) }}
}

// Params is shorthand for a parameter list.
func Params(c ...Constraint) []Constraint {
	return c
}

// ConstraintFor returns the constraint named by a type literal such as
// $integer, as used by the is operation.
func ConstraintFor(name string) (Constraint, bool) {
	switch name {
	case "number":
		return Number, true
	case "sequence":
		return Sequence, true
	case "any":
		return Any, true
	}
	kind, ok := node.ParseKind(name)
	if !ok {
		return Constraint{}, false
	}
	return Exact(kind), true
}
