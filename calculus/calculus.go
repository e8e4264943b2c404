// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calculus implements symbolic differentiation and the
// operations built from it.
//
// While a function is differentiated its variables are withheld, so a
// value bound to them is not substituted until the result is simplified.
package calculus // import "robpike.io/kelvin/calculus"

import (
	"robpike.io/kelvin/algebra"
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

// maxOrder bounds the order of repeated differentiation.
const maxOrder = 64

var (
	any      = dispatch.Any
	variable = dispatch.Variable
)

// Install registers the calculus operations.
func Install(r *dispatch.Registry) {
	r.Register("derivative",
		dispatch.Rule{Params: params(any, variable), PreservesArguments: true, Fn: derivative, Doc: "derivative with respect to a variable"},
		dispatch.Rule{Params: params(any, variable, any), PreservesArguments: true, Fn: derivative, Doc: "nth derivative"},
	)
	r.Register("gradient",
		dispatch.Rule{Params: params(any), PreservesArguments: true, Fn: gradient, Doc: "vector of partial derivatives in the variables of f"},
		dispatch.Rule{Params: params(any, dispatch.Sequence), PreservesArguments: true, Fn: gradient, Doc: "vector of partial derivatives"},
	)
	r.Register("directionalDerivative", dispatch.Rule{Params: params(any, dispatch.Sequence, any), PreservesArguments: true, Fn: directional, Doc: "derivative along a direction"})
	r.Register("implicitDerivative", dispatch.Rule{Params: params(any, variable, variable), PreservesArguments: true, Fn: implicit, Doc: "dy/dx of an equation in x and y"})
	r.Register("tangent", dispatch.Rule{Params: params(any, variable, any), PreservesArguments: true, Fn: tangent, Doc: "tangent line of f at x = a"})
}

func params(c ...dispatch.Constraint) []dispatch.Constraint {
	return c
}

func result(n node.Node, err error) (dispatch.Result, error) {
	if err != nil {
		return dispatch.NoMatch, err
	}
	return dispatch.Replace(n), nil
}

// variables returns the names of a sequence of variables.
func variables(op string, s node.Sequence) ([]string, error) {
	names := make([]string, s.Len())
	for i, e := range s.Elems() {
		v, ok := e.(node.Variable)
		if !ok {
			return nil, node.TypeError(op, "variable", e)
		}
		names[i] = v.Name
	}
	return names, nil
}

// derivative is derivative(f, x) and derivative(f, x, n).
func derivative(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	x := args[1].(node.Variable).Name
	return result(dispatch.Withholding(env, []string{x}, func() (node.Node, error) {
		order := 1
		if len(args) == 3 {
			n, err := env.Simplify(args[2])
			if err != nil {
				return nil, err
			}
			if order, err = orderOf(n); err != nil {
				return nil, err
			}
		}
		f, err := env.Simplify(args[0])
		if err != nil {
			return nil, err
		}
		for i := 0; i < order; i++ {
			if f, err = Derivative(env, f, x); err != nil {
				return nil, err
			}
		}
		return f, nil
	}))
}

func orderOf(n node.Node) (int, error) {
	i, ok := n.(node.Int)
	if !ok {
		return 0, node.TypeError("derivative", "integer order", n)
	}
	k, ok := i.Int64()
	if !ok || k < 0 || k > maxOrder {
		return 0, node.Errorf(node.InvalidRange, "derivative: order %s not in [0, %d]", i, maxOrder)
	}
	return int(k), nil
}

// Gradient returns the vector of the derivatives of f with respect to
// each of the variables.
func Gradient(env dispatch.Env, f node.Node, vars []string) (node.Vector, error) {
	elems := make([]node.Node, len(vars))
	for i, x := range vars {
		d, err := Derivative(env, f, x)
		if err != nil {
			return node.Vector{}, err
		}
		elems[i] = d
	}
	return node.NewVector(elems...), nil
}

// gradient is gradient(f) and gradient(f, [x, y, ...]). Without a list of
// variables it uses those of f in lexical order.
func gradient(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	var vars []string
	if len(args) == 2 {
		var err error
		if vars, err = variables("gradient", args[1].(node.Sequence)); err != nil {
			return dispatch.NoMatch, err
		}
	}
	return result(dispatch.Withholding(env, vars, func() (node.Node, error) {
		f, err := env.Simplify(args[0])
		if err != nil {
			return nil, err
		}
		if vars == nil {
			vars = node.SortedVariables(f)
		}
		return Gradient(env, f, vars)
	}))
}

// Directional returns the derivative of f along the direction, which is
// normalized to unit length.
func Directional(env dispatch.Env, f node.Node, vars []string, dir []node.Node) (node.Node, error) {
	if len(dir) != len(vars) {
		return nil, node.Errorf(node.DimensionMismatch, "directionalDerivative: %d variables, direction of length %d", len(vars), len(dir))
	}
	grad, err := Gradient(env, f, vars)
	if err != nil {
		return nil, err
	}
	squares := make([]node.Node, len(dir))
	for i, d := range dir {
		squares[i] = pow(d, node.Two)
	}
	norm, err := env.Simplify(call("sqrt", plus(squares...)))
	if err != nil {
		return nil, err
	}
	if node.IsZero(norm) {
		return nil, node.Errorf(node.Domain, "directionalDerivative: zero direction")
	}
	terms := make([]node.Node, len(dir))
	for i, d := range dir {
		terms[i] = times(grad.At(i), d, pow(norm, node.MinusOne))
	}
	return env.Simplify(plus(terms...))
}

// directional is directionalDerivative(f, [x, y, ...], direction).
func directional(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	vars, err := variables("directionalDerivative", args[1].(node.Sequence))
	if err != nil {
		return dispatch.NoMatch, err
	}
	return result(dispatch.Withholding(env, vars, func() (node.Node, error) {
		f, err := env.Simplify(args[0])
		if err != nil {
			return nil, err
		}
		d, err := env.Simplify(args[2])
		if err != nil {
			return nil, err
		}
		dir, ok := d.(node.Sequence)
		if !ok {
			return nil, node.TypeError("directionalDerivative", "direction vector", d)
		}
		return Directional(env, f, vars, dir.Elems())
	}))
}

// Implicit returns dy/dx along the curve eq, -Fx/Fy where F is the
// difference of the two sides.
func Implicit(env dispatch.Env, eq node.Node, x, y string) (node.Node, error) {
	f := eq
	if e, ok := eq.(node.Equation); ok {
		if e.Mode != node.EqualTo {
			return nil, node.Errorf(node.IllegalArgument, "implicitDerivative: %s is not an equation", e)
		}
		f = plus(e.LHS, neg(e.RHS))
	}
	fx, err := Derivative(env, f, x)
	if err != nil {
		return nil, err
	}
	fy, err := Derivative(env, f, y)
	if err != nil {
		return nil, err
	}
	if node.IsZero(fy) {
		return nil, node.Errorf(node.Domain, "implicitDerivative: %s does not depend on %s", eq, y)
	}
	return env.Simplify(neg(times(fx, pow(fy, node.MinusOne))))
}

func implicit(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	x, y := args[1].(node.Variable).Name, args[2].(node.Variable).Name
	return result(dispatch.Withholding(env, []string{x, y}, func() (node.Node, error) {
		eq, err := env.Simplify(args[0])
		if err != nil {
			return nil, err
		}
		return Implicit(env, eq, x, y)
	}))
}

// Tangent returns the tangent line of f at x = a, f(a) + f'(a)*(x-a),
// expanded.
func Tangent(env dispatch.Env, f node.Node, x string, a node.Node) (node.Node, error) {
	d, err := Derivative(env, f, x)
	if err != nil {
		return nil, err
	}
	fa, err := env.Simplify(node.Substitute(f, x, a))
	if err != nil {
		return nil, err
	}
	slope, err := env.Simplify(node.Substitute(d, x, a))
	if err != nil {
		return nil, err
	}
	return algebra.Expand(env, plus(fa, times(slope, plus(node.Var(x), neg(a)))))
}

func tangent(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	x := args[1].(node.Variable).Name
	return result(dispatch.Withholding(env, []string{x}, func() (node.Node, error) {
		f, err := env.Simplify(args[0])
		if err != nil {
			return nil, err
		}
		a, err := env.Simplify(args[2])
		if err != nil {
			return nil, err
		}
		return Tangent(env, f, x, a)
	}))
}
