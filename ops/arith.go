// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

func installArith(r *dispatch.Registry) {
	r.Register(node.Plus, dispatch.Rule{
		Params:   params(any),
		Variadic: true,
		Fn: func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
			return dispatch.Replace(sum(args)), nil
		},
		Doc: "sum in canonical form",
	})

	r.Register(node.Times, dispatch.Rule{
		Params:   params(any),
		Variadic: true,
		Fn: func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
			return dispatch.Replace(product(args)), nil
		},
		Doc: "product in canonical form",
	})

	r.Register(node.Minus,
		dispatch.Rule{Params: params(number), Fn: fn1(func(a node.Node) (node.Node, error) {
			return node.Neg(a.(node.Number)), nil
		})},
		dispatch.Rule{Params: params(any), Fn: fn1(func(a node.Node) (node.Node, error) {
			return node.Call(node.Times, node.MinusOne, a), nil
		}), Doc: "negation"},
		dispatch.Rule{Params: params(any, any), Fn: fn2(func(a, b node.Node) (node.Node, error) {
			return node.Call(node.Plus, a, node.Call(node.Times, node.MinusOne, b)), nil
		}), Doc: "difference"},
	)

	r.Register(node.Divide,
		dispatch.Rule{Params: params(number, number), Fn: fn2(func(a, b node.Node) (node.Node, error) {
			return node.Quo(a.(node.Number), b.(node.Number))
		})},
		dispatch.Rule{Params: params(any, any), Fn: fn2(func(a, b node.Node) (node.Node, error) {
			if node.IsZero(b) {
				return nil, node.Errorf(node.DivisionByZero, "division by zero")
			}
			return node.Call(node.Times, a, node.Call(node.Power, b, node.MinusOne)), nil
		}), Doc: "quotient"},
	)

	r.Register(node.Power,
		dispatch.Rule{Params: params(number, number), Fn: fn2(numberPower)},
		dispatch.Rule{Params: params(any, any), Fn: fn2(symbolicPower), Doc: "power"},
	)

	r.Register("mod", dispatch.Rule{Params: params(integer, integer), Fn: fn2(func(a, b node.Node) (node.Node, error) {
		return node.Mod(a.(node.Int), b.(node.Int))
	}), Doc: "remainder with the sign of the divisor"})

	r.Register("!", dispatch.Rule{Params: params(integer), Fn: fn1(func(a node.Node) (node.Node, error) {
		return node.Factorial(a.(node.Int))
	}), Doc: "factorial"})

	r.Register("gcd", dispatch.Rule{Params: params(integer, integer), Fn: fn2(func(a, b node.Node) (node.Node, error) {
		return node.GCD(a.(node.Int), b.(node.Int)), nil
	}), Doc: "greatest common divisor"})
	r.Register("numerator", dispatch.Rule{Params: params(dispatch.Rational), Fn: fn1(func(a node.Node) (node.Node, error) {
		if r, ok := a.(node.Rat); ok {
			return r.Num(), nil
		}
		return a, nil
	})})
	r.Register("denominator", dispatch.Rule{Params: params(dispatch.Rational), Fn: fn1(func(a node.Node) (node.Node, error) {
		if r, ok := a.(node.Rat); ok {
			return r.Denom(), nil
		}
		return node.One, nil
	})})
}

// numberPower evaluates a^b when the result is exact, and otherwise
// leaves it alone.
func numberPower(a, b node.Node) (node.Node, error) {
	z, exact, err := node.Pow(a.(node.Number), b.(node.Number))
	if err != nil || !exact {
		return nil, err
	}
	return z, nil
}

// symbolicPower applies the identities of exponentiation.
func symbolicPower(base, exp node.Node) (node.Node, error) {
	switch {
	case node.IsZero(exp):
		return node.One, nil
	case node.IsOne(exp):
		return base, nil
	case node.IsOne(base):
		return node.One, nil
	case node.IsZero(base):
		if e, ok := exp.(node.Number); ok && e.Sign() > 0 {
			return node.Zero, nil
		}
	}
	_, intExp := exp.(node.Int)
	if b, ok := base.(node.Function); ok {
		switch {
		case b.Name == node.Power && len(b.Args) == 2 && intExp:
			return node.Call(node.Power, b.Args[0], node.Call(node.Times, b.Args[1], exp)), nil
		case b.Name == node.Times && intExp:
			factors := make([]node.Node, len(b.Args))
			for i, f := range b.Args {
				factors[i] = node.Call(node.Power, f, exp)
			}
			return node.Call(node.Times, factors...), nil
		}
	}
	if v, ok := base.(node.Variable); ok && v.Name == "e" && node.IsCall(exp, "ln") {
		if ln := exp.(node.Function); len(ln.Args) == 1 {
			return ln.Args[0], nil
		}
	}
	return nil, nil
}
