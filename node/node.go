// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package node defines the expression tree that the compiler produces and the
// rewriting engine transforms. Nodes are immutable: every operation that looks
// like a mutation returns a new node.
package node // import "robpike.io/kelvin/node"

import "fmt"

// Kind is the discriminant of the closed set of node variants.
type Kind int

const (
	IntKind Kind = iota
	RatKind
	FloatKind
	BoolKind
	TextKind
	VariableKind
	FunctionKind
	ListKind
	VectorKind
	TupleKind
	MatrixKind
	StatementsKind
	EquationKind
	ClosureKind
	VoidKind
	FinalKind
	numKinds
)

var kindNames = [numKinds]string{
	IntKind:        "integer",
	RatKind:        "fraction",
	FloatKind:      "float",
	BoolKind:       "boolean",
	TextKind:       "text",
	VariableKind:   "variable",
	FunctionKind:   "function",
	ListKind:       "list",
	VectorKind:     "vector",
	TupleKind:      "tuple",
	MatrixKind:     "matrix",
	StatementsKind: "statements",
	EquationKind:   "equation",
	ClosureKind:    "closure",
	VoidKind:       "void",
	FinalKind:      "final",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name, as spelled by Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Precedence orders how tightly an expression binds. It decides when
// rendering must parenthesize and drives the parser's operator table.
type Precedence int

const (
	PrecLowest Precedence = iota
	PrecAssign
	PrecOr
	PrecAnd
	PrecRelation
	PrecRange
	PrecAdditive
	PrecMultiplicative
	PrecExponent
	PrecUnary
	PrecPostfix
	PrecLeaf
)

var precNames = map[string]Precedence{
	"lowest":         PrecLowest,
	"assign":         PrecAssign,
	"or":             PrecOr,
	"and":            PrecAnd,
	"relation":       PrecRelation,
	"range":          PrecRange,
	"additive":       PrecAdditive,
	"multiplicative": PrecMultiplicative,
	"exponent":       PrecExponent,
	"unary":          PrecUnary,
	"postfix":        PrecPostfix,
	"leaf":           PrecLeaf,
}

// ParsePrecedence returns the level with the given name, as used by
// the operator built-in.
func ParsePrecedence(name string) (Precedence, bool) {
	p, ok := precNames[name]
	return p, ok
}

func (p Precedence) String() string {
	for name, q := range precNames {
		if p == q {
			return name
		}
	}
	return fmt.Sprintf("Precedence(%d)", int(p))
}

// Node is the universal element of the expression tree.
type Node interface {
	// Kind reports which variant the node is.
	Kind() Kind

	// String returns the canonical rendering of the node.
	String() string

	// Precedence reports how tightly the rendering binds.
	Precedence() Precedence

	// Complexity is a size heuristic used to rank equivalent forms.
	// Leaves score 1 or 2; composites score 1 plus their children.
	Complexity() int

	// Equals reports structural equality, not mathematical equivalence.
	Equals(Node) bool

	// Children returns the immediate sub-nodes. The caller owns the slice.
	Children() []Node

	// WithChildren returns a copy of the node with its children replaced.
	// The argument must have the length returned by Children.
	WithChildren([]Node) Node
}

// Equal reports whether a and b are structurally equal. Either may be nil.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

// EqualSlices reports whether the two slices hold pairwise equal nodes.
func EqualSlices(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// sumComplexity is 1 plus the complexity of the nodes.
func sumComplexity(nodes []Node) int {
	c := 1
	for _, n := range nodes {
		c += n.Complexity()
	}
	return c
}

// clone returns a copy of the slice, so callers can't alter a node's children.
func clone(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	c := make([]Node, len(nodes))
	copy(c, nodes)
	return c
}

// paren renders n, parenthesized if it binds more loosely than min.
func paren(n Node, min Precedence) string {
	if n.Precedence() < min {
		return "(" + n.String() + ")"
	}
	return n.String()
}
