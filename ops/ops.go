// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ops is the library of builtin operations: arithmetic in
// canonical form, comparison and logic, sequences, control flow,
// definitions, and input and output.
package ops // import "robpike.io/kelvin/ops"

import (
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

// Install registers the builtin operations. Rules for one name are tried
// in the order given here, so special cases precede general ones.
func Install(r *dispatch.Registry) {
	installSequences(r)
	installArith(r)
	installFunctions(r)
	installLogic(r)
	installControl(r)
	installDefinitions(r)
	installIO(r)
}

// Shorthand for rule construction.
var (
	any      = dispatch.Any
	number   = dispatch.Number
	integer  = dispatch.Integer
	sequence = dispatch.Sequence
	text     = dispatch.Text
	boolean  = dispatch.Bool
	variable = dispatch.Variable
)

func params(c ...dispatch.Constraint) []dispatch.Constraint {
	return c
}

// fn1 adapts a one-argument function into a rule body.
func fn1(f func(a node.Node) (node.Node, error)) dispatch.Func {
	return func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return result(f(args[0]))
	}
}

// fn2 adapts a two-argument function into a rule body.
func fn2(f func(a, b node.Node) (node.Node, error)) dispatch.Func {
	return func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return result(f(args[0], args[1]))
	}
}

// result converts a function return into a rule result. A nil node with
// no error means the rule does not apply.
func result(n node.Node, err error) (dispatch.Result, error) {
	if err != nil {
		return dispatch.NoMatch, err
	}
	if n == nil {
		return dispatch.NoMatch, nil
	}
	return dispatch.Replace(n), nil
}

// word returns the spelling of a name given as text or as a variable.
func word(n node.Node) (string, bool) {
	switch n := n.(type) {
	case node.Text:
		return string(n), true
	case node.Variable:
		return n.Name, true
	}
	return "", false
}

// smallInt returns the value of an Int that fits in an int.
func smallInt(op string, n node.Node) (int, error) {
	i, ok := n.(node.Int)
	if !ok {
		return 0, node.TypeError(op, "integer", n)
	}
	v, ok := i.Int64()
	if !ok || v != int64(int(v)) {
		return 0, node.Errorf(node.InvalidRange, "%s: %s out of range", op, n)
	}
	return int(v), nil
}

// truth returns the value of a condition.
func truth(op string, n node.Node) (bool, error) {
	b, ok := n.(node.Bool)
	if !ok {
		return false, node.TypeError(op, "boolean", n)
	}
	return bool(b), nil
}
