// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calculus

import (
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

// chain maps a function of one argument to its derivative at u.
var chain = map[string]func(u node.Node) node.Node{
	"sin": func(u node.Node) node.Node { return call("cos", u) },
	"cos": func(u node.Node) node.Node { return neg(call("sin", u)) },
	"tan": func(u node.Node) node.Node { return pow(call("cos", u), node.NewInt(-2)) },
	"ln":  func(u node.Node) node.Node { return pow(u, node.MinusOne) },
	"exp": func(u node.Node) node.Node { return call("exp", u) },
	"sqrt": func(u node.Node) node.Node {
		return times(node.NewRat(1, 2), pow(call("sqrt", u), node.MinusOne))
	},
	"asin": func(u node.Node) node.Node {
		return pow(plus(node.One, neg(pow(u, node.Two))), node.NewRat(-1, 2))
	},
	"acos": func(u node.Node) node.Node {
		return neg(pow(plus(node.One, neg(pow(u, node.Two))), node.NewRat(-1, 2)))
	},
	"atan": func(u node.Node) node.Node { return pow(plus(node.One, pow(u, node.Two)), node.MinusOne) },
	"sinh": func(u node.Node) node.Node { return call("cosh", u) },
	"cosh": func(u node.Node) node.Node { return call("sinh", u) },
	"tanh": func(u node.Node) node.Node { return pow(call("cosh", u), node.NewInt(-2)) },
	"abs":  func(u node.Node) node.Node { return times(u, pow(call("abs", u), node.MinusOne)) },
}

// Derivative returns the simplified derivative of f with respect to x.
func Derivative(env dispatch.Env, f node.Node, x string) (node.Node, error) {
	if err := env.Canceled(); err != nil {
		return nil, err
	}
	d, err := derive(f, x)
	if err != nil {
		return nil, err
	}
	return env.Simplify(d)
}

// derive returns the derivative of n by structural recursion. The result
// is not simplified.
func derive(n node.Node, x string) (node.Node, error) {
	if node.FreeOf(n, x) {
		switch n.(type) {
		case node.List, node.Vector, node.Tuple, node.Matrix, node.Equation:
		default:
			return node.Zero, nil
		}
	}
	switch n := n.(type) {
	case node.Variable:
		return node.One, nil
	case node.List, node.Vector, node.Tuple, node.Matrix, node.Equation:
		kids := n.Children()
		for i, k := range kids {
			d, err := derive(k, x)
			if err != nil {
				return nil, err
			}
			kids[i] = d
		}
		return n.WithChildren(kids), nil
	case node.Function:
		return deriveCall(n, x)
	}
	return nil, node.Errorf(node.Unsupported, "derivative: cannot differentiate %s", n)
}

func deriveCall(f node.Function, x string) (node.Node, error) {
	args := f.Args
	switch {
	case f.Name == node.Plus:
		terms := make([]node.Node, len(args))
		for i, a := range args {
			d, err := derive(a, x)
			if err != nil {
				return nil, err
			}
			terms[i] = d
		}
		return plus(terms...), nil
	case f.Name == node.Times:
		// Each term of the product rule differentiates one factor.
		terms := make([]node.Node, 0, len(args))
		for i, a := range args {
			if node.FreeOf(a, x) {
				continue
			}
			d, err := derive(a, x)
			if err != nil {
				return nil, err
			}
			factors := make([]node.Node, 0, len(args))
			factors = append(factors, args[:i]...)
			factors = append(factors, d)
			factors = append(factors, args[i+1:]...)
			terms = append(terms, times(factors...))
		}
		return plus(terms...), nil
	case f.Name == node.Power && len(args) == 2:
		return derivePower(args[0], args[1], x)
	case f.Name == node.Minus && len(args) == 1:
		d, err := derive(args[0], x)
		if err != nil {
			return nil, err
		}
		return neg(d), nil
	case f.Name == node.Minus && len(args) == 2:
		return derive(plus(args[0], neg(args[1])), x)
	case f.Name == node.Divide && len(args) == 2:
		return derive(times(args[0], pow(args[1], node.MinusOne)), x)
	}
	if outer, ok := chain[f.Name]; ok && len(args) == 1 {
		d, err := derive(args[0], x)
		if err != nil {
			return nil, err
		}
		return times(outer(args[0]), d), nil
	}
	return nil, node.Errorf(node.Unsupported, "derivative: unknown function %s", f.Name)
}

// derivePower differentiates b^e logarithmically: the derivative is
// b^e * (e'*ln(b) + e*b'/b). The terms whose derivative vanishes are
// left out, so a constant exponent gives the power rule.
func derivePower(b, e node.Node, x string) (node.Node, error) {
	db, err := derive(b, x)
	if err != nil {
		return nil, err
	}
	de, err := derive(e, x)
	if err != nil {
		return nil, err
	}
	var terms []node.Node
	if !node.FreeOf(b, x) {
		// e * b^(e-1) * b'
		terms = append(terms, times(e, pow(b, plus(e, node.MinusOne)), db))
	}
	if !node.FreeOf(e, x) {
		terms = append(terms, times(pow(b, e), call("ln", b), de))
	}
	return plus(terms...), nil
}

func call(name string, args ...node.Node) node.Node {
	return node.Call(name, args...)
}

func plus(args ...node.Node) node.Node {
	return node.Call(node.Plus, args...)
}

func times(args ...node.Node) node.Node {
	return node.Call(node.Times, args...)
}

func pow(b, e node.Node) node.Node {
	return node.Call(node.Power, b, e)
}

func neg(n node.Node) node.Node {
	return times(node.MinusOne, n)
}
