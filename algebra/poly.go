// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra

import (
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

// maxDegree bounds the degree of the polynomials handled here.
const maxDegree = 1 << 12

// Coefficients expands p and returns its coefficients as a polynomial in
// the variable x, indexed by degree. Missing degrees have coefficient zero.
// It returns a NotPolynomial error if p has a term that is not a product
// of a factor free of x and a non-negative integer power of x.
func Coefficients(env dispatch.Env, p node.Node, x string) ([]node.Node, error) {
	e, err := Expand(env, p)
	if err != nil {
		return nil, err
	}
	groups := make(map[int][]node.Node)
	top := 0
	for _, t := range terms(e) {
		d, c, ok := monomial(t, x)
		if !ok {
			return nil, node.Errorf(node.NotPolynomial, "%s is not a polynomial in %s", p, x)
		}
		groups[d] = append(groups[d], c)
		top = max(top, d)
	}
	coefs := make([]node.Node, top+1)
	for d := range coefs {
		c, err := env.Simplify(node.Call(node.Plus, groups[d]...))
		if err != nil {
			return nil, err
		}
		coefs[d] = c
	}
	return coefs, nil
}

// monomial splits a term into its degree in x and its coefficient.
func monomial(t node.Node, x string) (int, node.Node, bool) {
	if node.FreeOf(t, x) {
		return 0, t, true
	}
	factors := []node.Node{t}
	if f, ok := t.(node.Function); ok && f.Name == node.Times {
		factors = f.Args
	}
	deg := 0
	var rest []node.Node
	for _, f := range factors {
		if node.FreeOf(f, x) {
			rest = append(rest, f)
			continue
		}
		k, ok := powerOf(f, x)
		if !ok {
			return 0, nil, false
		}
		deg += k
	}
	if deg > maxDegree {
		return 0, nil, false
	}
	return deg, node.Call(node.Times, rest...), true
}

// powerOf returns k if f is x^k for a positive integer k.
func powerOf(f node.Node, x string) (int, bool) {
	switch f := f.(type) {
	case node.Variable:
		return 1, f.Name == x
	case node.Function:
		if f.Name != node.Power || len(f.Args) != 2 {
			return 0, false
		}
		if v, ok := f.Args[0].(node.Variable); !ok || v.Name != x {
			return 0, false
		}
		e, ok := f.Args[1].(node.Int)
		if !ok {
			return 0, false
		}
		k, ok := e.Int64()
		if !ok || k < 1 || k > maxDegree {
			return 0, false
		}
		return int(k), true
	}
	return 0, false
}

// Polynomial returns the sum of coefs[d]*x^d. The result is not simplified.
func Polynomial(coefs []node.Node, x string) node.Node {
	v := node.Var(x)
	terms := make([]node.Node, len(coefs))
	for d, c := range coefs {
		switch d {
		case 0:
			terms[d] = c
		case 1:
			terms[d] = node.Call(node.Times, c, v)
		default:
			terms[d] = node.Call(node.Times, c, node.Call(node.Power, v, node.NewInt(int64(d))))
		}
	}
	return node.Call(node.Plus, terms...)
}
