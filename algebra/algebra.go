// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package algebra implements polynomial operations: expansion,
// decomposition into coefficients, rational roots and factorization.
//
// The functions here build their results from calls of the arithmetic
// operations and leave the canonical form to the engine, so they need the
// builtin arithmetic rules to be installed.
package algebra // import "robpike.io/kelvin/algebra"

import (
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

// Install registers the algebra operations.
func Install(r *dispatch.Registry) {
	r.Register("expand", dispatch.Rule{Params: params(dispatch.Any), Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return result(Expand(env, args[0]))
	}, Doc: "distribute products over sums"})

	r.Register("coefficients", dispatch.Rule{Params: params(dispatch.Any, dispatch.Variable), PreservesArguments: true, Fn: inVariable(func(env dispatch.Env, p node.Node, x string) (node.Node, error) {
		coefs, err := Coefficients(env, p, x)
		if err != nil {
			return nil, err
		}
		pairs := make([]node.Node, len(coefs))
		for d, c := range coefs {
			pairs[d] = node.NewTuple(node.NewInt(int64(d)), c)
		}
		return node.NewList(pairs...), nil
	}), Doc: "(degree, coefficient) pairs of a polynomial"})

	r.Register("degree", dispatch.Rule{Params: params(dispatch.Any, dispatch.Variable), PreservesArguments: true, Fn: inVariable(func(env dispatch.Env, p node.Node, x string) (node.Node, error) {
		coefs, err := Coefficients(env, p, x)
		if err != nil {
			return nil, err
		}
		return node.NewInt(int64(len(coefs) - 1)), nil
	}), Doc: "degree of a polynomial"})

	r.Register("polynomial", dispatch.Rule{Params: params(dispatch.Sequence, dispatch.Variable), Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		coefs, err := unpairs(args[0].(node.Sequence))
		if err != nil {
			return dispatch.NoMatch, err
		}
		return dispatch.Replace(Polynomial(coefs, args[1].(node.Variable).Name)), nil
	}, Doc: "polynomial with the given coefficients"})

	r.Register("rationalRoots", dispatch.Rule{Params: params(dispatch.Any, dispatch.Variable), PreservesArguments: true, Fn: inVariable(func(env dispatch.Env, p node.Node, x string) (node.Node, error) {
		roots, err := RationalRoots(env, p, x)
		if err != nil {
			return nil, err
		}
		elems := make([]node.Node, len(roots))
		for i, r := range roots {
			elems[i] = r
		}
		return node.NewList(elems...), nil
	}), Doc: "rational roots of a polynomial"})

	r.Register("factor", dispatch.Rule{Params: params(dispatch.Any), Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return result(Factor(env, args[0], env.Config().FactorBudget()))
	}, Doc: "factor a polynomial"})
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

// inVariable adapts an operation on a polynomial in a variable into a rule
// body. The polynomial is simplified with the variable withheld, so a
// value bound to it is not substituted.
func inVariable(fn func(env dispatch.Env, p node.Node, x string) (node.Node, error)) dispatch.Func {
	return func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		x := args[1].(node.Variable).Name
		return result(dispatch.Withholding(env, []string{x}, func() (node.Node, error) {
			p, err := env.Simplify(args[0])
			if err != nil {
				return nil, err
			}
			return fn(env, p, x)
		}))
	}
}

// unpairs reads a coefficient list, either plain, indexed by degree, or
// made of (degree, coefficient) pairs as produced by coefficients.
func unpairs(s node.Sequence) ([]node.Node, error) {
	var coefs []node.Node
	for i, e := range s.Elems() {
		t, ok := e.(node.Tuple)
		if !ok {
			coefs = append(coefs, e)
			continue
		}
		if t.Len() != 2 {
			return nil, node.TypeError("polynomial", "(degree, coefficient) pair", t)
		}
		d, ok := t.At(0).(node.Int)
		if !ok {
			return nil, node.TypeError("polynomial", "integer degree", t.At(0))
		}
		deg, ok := d.Int64()
		if !ok || deg < 0 || deg > maxDegree {
			return nil, node.Errorf(node.InvalidRange, "polynomial: degree %s out of range at element %d", d, i)
		}
		for int64(len(coefs)) <= deg {
			coefs = append(coefs, node.Zero)
		}
		coefs[deg] = node.Call(node.Plus, coefs[deg], t.At(1))
	}
	return coefs, nil
}
