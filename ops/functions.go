// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"math"

	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

// piDigits is pi to more digits than any supported precision needs.
const piDigits = "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899862803482534211706798214808651"

// Pi and E are the values of the constants pi and e as Floats.
func Pi() node.Number {
	n, _ := node.ParseNumber(piDigits)
	return node.Mul(n, node.One)
}

func E() (node.Number, error) {
	one, _ := node.ToFloat(node.One)
	return node.Exp(one)
}

var (
	pi = node.Var("pi")
	e  = node.Var("e")
)

// float matches only Float arguments.
var float = dispatch.Exact(node.FloatKind)

// elementary lists the functions evaluated numerically for a Float
// argument through float64.
var elementary = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
}

// special gives exact values of functions at exact arguments.
var special = map[string][]struct{ arg, value node.Node }{
	"sin":  {{node.Zero, node.Zero}, {pi, node.Zero}},
	"cos":  {{node.Zero, node.One}, {pi, node.MinusOne}},
	"tan":  {{node.Zero, node.Zero}, {pi, node.Zero}},
	"asin": {{node.Zero, node.Zero}},
	"acos": {{node.One, node.Zero}},
	"atan": {{node.Zero, node.Zero}},
	"sinh": {{node.Zero, node.Zero}},
	"cosh": {{node.Zero, node.One}},
	"tanh": {{node.Zero, node.Zero}},
	"ln":   {{node.One, node.Zero}, {e, node.One}},
	"exp":  {{node.Zero, node.One}, {node.One, e}},
}

func installFunctions(r *dispatch.Registry) {
	for name, values := range special {
		values := values
		r.Register(name, dispatch.Rule{Params: params(any), Fn: fn1(func(a node.Node) (node.Node, error) {
			for _, v := range values {
				if node.Equal(v.arg, a) {
					return v.value, nil
				}
			}
			return nil, nil
		})})
	}
	for name, f := range elementary {
		f := f
		r.Register(name, dispatch.Rule{Params: params(float), Fn: fn1(func(a node.Node) (node.Node, error) {
			return node.Apply64(a.(node.Number), f)
		})})
	}
	// Odd functions take the sign out; even ones drop it.
	for _, name := range []string{"sin", "tan", "asin", "atan", "sinh", "tanh"} {
		name := name
		r.Register(name, dispatch.Rule{Params: params(any), Fn: fn1(func(a node.Node) (node.Node, error) {
			if neg, ok := negative(a); ok {
				return node.Call(node.Times, node.MinusOne, node.Call(name, neg)), nil
			}
			return nil, nil
		})})
	}
	for _, name := range []string{"cos", "cosh"} {
		name := name
		r.Register(name, dispatch.Rule{Params: params(any), Fn: fn1(func(a node.Node) (node.Node, error) {
			if neg, ok := negative(a); ok {
				return node.Call(name, neg), nil
			}
			return nil, nil
		})})
	}

	r.Register("ln",
		dispatch.Rule{Params: params(float), Fn: fn1(func(a node.Node) (node.Node, error) {
			return node.Ln(a.(node.Float))
		})},
		dispatch.Rule{Params: params(dispatch.Call("exp")), Fn: fn1(func(a node.Node) (node.Node, error) {
			return a.(node.Function).Args[0], nil
		})},
		dispatch.Rule{Params: params(dispatch.Call(node.Power)), Fn: fn1(func(a node.Node) (node.Node, error) {
			p := a.(node.Function)
			if node.Equal(p.Args[0], e) {
				return p.Args[1], nil
			}
			return nil, nil
		})},
		dispatch.Rule{Params: params(number), Fn: fn1(func(a node.Node) (node.Node, error) {
			if a.(node.Number).Sign() <= 0 {
				return nil, node.Errorf(node.Domain, "logarithm of non-positive number %s", a)
			}
			return nil, nil
		})},
	)
	r.Register("exp",
		dispatch.Rule{Params: params(float), Fn: fn1(func(a node.Node) (node.Node, error) {
			return node.Exp(a.(node.Float))
		})},
		dispatch.Rule{Params: params(dispatch.Call("ln")), Fn: fn1(func(a node.Node) (node.Node, error) {
			return a.(node.Function).Args[0], nil
		})},
	)
	r.Register("sqrt",
		dispatch.Rule{Params: params(number), Fn: fn1(func(a node.Node) (node.Node, error) {
			z, exact, err := node.Sqrt(a.(node.Number))
			if err != nil || !exact {
				return nil, err
			}
			return z, nil
		}), Doc: "square root"},
	)
	r.Register("abs",
		dispatch.Rule{Params: params(number), Fn: fn1(func(a node.Node) (node.Node, error) {
			return node.Abs(a.(node.Number)), nil
		}), Doc: "absolute value"},
		dispatch.Rule{Params: params(dispatch.Call("abs")), Fn: fn1(func(a node.Node) (node.Node, error) {
			return a, nil
		})},
		dispatch.Rule{Params: params(any), Fn: fn1(func(a node.Node) (node.Node, error) {
			if neg, ok := negative(a); ok {
				return node.Call("abs", neg), nil
			}
			return nil, nil
		})},
	)
	r.Register("approx", dispatch.Rule{
		Params: params(any),
		Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
			n, err := approx(args[0])
			if err != nil {
				return dispatch.NoMatch, err
			}
			return dispatch.Replace(n), nil
		},
		Doc: "numeric value",
	})
}

// negative reports whether n is a product with a negative coefficient,
// and returns its negation.
func negative(n node.Node) (node.Node, bool) {
	switch n := n.(type) {
	case node.Number:
		if n.Sign() < 0 {
			return node.Neg(n), true
		}
	case node.Function:
		if n.Name != node.Times || len(n.Args) < 2 {
			break
		}
		c, ok := n.Args[0].(node.Number)
		if !ok || c.Sign() >= 0 {
			break
		}
		return scale(node.Neg(c), restOf(n)), true
	}
	return nil, false
}

// restOf returns the product without its leading coefficient.
func restOf(p node.Function) node.Node {
	if len(p.Args) == 2 {
		return p.Args[1]
	}
	return node.Call(node.Times, p.Args[1:]...)
}

// approx replaces the exact numbers and the constants pi and e in n by
// Floats, so simplifying the result evaluates it numerically.
func approx(n node.Node) (node.Node, error) {
	var err error
	out := node.Replacing(n, func(x node.Node) bool {
		switch x := x.(type) {
		case node.Int, node.Rat:
			return true
		case node.Variable:
			return x.Name == "pi" || x.Name == "e"
		}
		return false
	}, func(x node.Node) node.Node {
		var f node.Node
		var ferr error
		switch x := x.(type) {
		case node.Variable:
			if x.Name == "pi" {
				f, ferr = node.ToFloat(Pi())
			} else {
				f, ferr = E()
			}
		case node.Number:
			f, ferr = node.ToFloat(x)
		}
		if ferr != nil {
			err = ferr
			return x
		}
		return f
	})
	return out, err
}
