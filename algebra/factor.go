// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra

import (
	"math/big"
	"time"

	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

// maxGroupTerms bounds the number of terms whose partitions into two
// groups the factorizer searches.
const maxGroupTerms = 16

// Factor returns an expression equal to p written as a product where it
// can find one. It pulls out the factors common to all terms, splits off
// the linear factors of rational roots of polynomials in one variable, and
// searches the ways to split a sum into two groups with a common factor,
// keeping the least complex product found. The search stops when the
// budget is spent; the best form found so far is returned, which may be p
// itself.
func Factor(env dispatch.Env, p node.Node, budget time.Duration) (node.Node, error) {
	s, err := env.Simplify(p)
	if err != nil {
		return nil, err
	}
	f := &factorer{env: env, deadline: time.Now().Add(budget)}
	return f.factor(s)
}

type factorer struct {
	env      dispatch.Env
	deadline time.Time
}

func (f *factorer) expired() bool {
	return time.Now().After(f.deadline)
}

func (f *factorer) simplify(n node.Node) (node.Node, error) {
	if err := f.env.Canceled(); err != nil {
		return nil, err
	}
	return f.env.Simplify(n)
}

func (f *factorer) factor(n node.Node) (node.Node, error) {
	fn, ok := n.(node.Function)
	if !ok {
		return n, nil
	}
	switch {
	case fn.Name == node.Times:
		args := make([]node.Node, len(fn.Args))
		for i, a := range fn.Args {
			x, err := f.factor(a)
			if err != nil {
				return nil, err
			}
			args[i] = x
		}
		return f.simplify(node.Call(node.Times, args...))
	case fn.Name == node.Power && len(fn.Args) == 2 && node.IsCall(fn.Args[0], node.Plus):
		base, err := f.factor(fn.Args[0])
		if err != nil {
			return nil, err
		}
		return f.simplify(node.Call(node.Power, base, fn.Args[1]))
	case fn.Name != node.Plus:
		return n, nil
	}
	return f.sum(fn.Args)
}

// sum factors the sum of the terms.
func (f *factorer) sum(ts []node.Node) (node.Node, error) {
	whole := node.Call(node.Plus, ts...)
	g, err := f.common(ts)
	if err != nil {
		return nil, err
	}
	if !node.IsOne(g) {
		inner, err := f.divide(ts, g)
		if err != nil {
			return nil, err
		}
		if inner, err = f.factor(inner); err != nil {
			return nil, err
		}
		return f.simplify(node.Call(node.Times, g, inner))
	}
	var best node.Node = whole
	if r, err := f.roots(whole); err != nil {
		return nil, err
	} else if r != nil {
		best = r
	}
	if len(ts) > maxGroupTerms {
		return best, nil
	}
	// Term 0 is always in the first group, so each split is seen once.
	for mask := 1; mask < 1<<(len(ts)-1); mask++ {
		if f.expired() {
			break
		}
		var a, b []node.Node
		a = append(a, ts[0])
		for i, t := range ts[1:] {
			if mask&(1<<i) != 0 {
				b = append(b, t)
			} else {
				a = append(a, t)
			}
		}
		c, err := f.grouping(a, b)
		if err != nil {
			return nil, err
		}
		if c != nil && better(c, best) {
			best = c
		}
	}
	return best, nil
}

// grouping tries to write a+b as a product when the two groups, with
// their common factors ga and gb removed, are the same sum r, or each
// other's negation: ga*r + gb*r is (ga+gb)*r.
func (f *factorer) grouping(a, b []node.Node) (node.Node, error) {
	ga, err := f.common(a)
	if err != nil {
		return nil, err
	}
	gb, err := f.common(b)
	if err != nil {
		return nil, err
	}
	if node.IsOne(ga) && node.IsOne(gb) {
		return nil, nil
	}
	ra, err := f.divide(a, ga)
	if err != nil {
		return nil, err
	}
	rb, err := f.divide(b, gb)
	if err != nil {
		return nil, err
	}
	if node.IsOne(ra) || !node.IsCall(ra, node.Plus) {
		return nil, nil
	}
	var g node.Node
	switch {
	case node.Equal(ra, rb):
		g = node.Call(node.Plus, ga, gb)
	default:
		neg, err := f.simplify(node.Call(node.Plus, ra, rb))
		if err != nil {
			return nil, err
		}
		if !node.IsZero(neg) {
			return nil, nil
		}
		g = node.Call(node.Plus, ga, node.Call(node.Times, node.MinusOne, gb))
	}
	if g, err = f.simplify(g); err != nil {
		return nil, err
	}
	if g, err = f.factor(g); err != nil {
		return nil, err
	}
	if ra, err = f.factor(ra); err != nil {
		return nil, err
	}
	return f.simplify(node.Call(node.Times, g, ra))
}

// better reports whether candidate a is preferred to b: a product beats
// a sum, and otherwise the less complex form wins.
func better(a, b node.Node) bool {
	fa, fb := !node.IsCall(a, node.Plus), !node.IsCall(b, node.Plus)
	if fa != fb {
		return fa
	}
	return a.Complexity() < b.Complexity()
}

// divide returns the sum of the terms each divided by g.
func (f *factorer) divide(ts []node.Node, g node.Node) (node.Node, error) {
	q := make([]node.Node, len(ts))
	for i, t := range ts {
		q[i] = node.Call(node.Divide, t, g)
	}
	return f.simplify(node.Call(node.Plus, q...))
}

// power is a factor of a term.
type power struct {
	base node.Node
	exp  node.Number
}

// split returns the numeric coefficient of a term and its other factors.
func split(t node.Node) (node.Number, []power) {
	var coef node.Number = node.One
	factors := []node.Node{t}
	if fn, ok := t.(node.Function); ok && fn.Name == node.Times {
		factors = fn.Args
	}
	var ps []power
	for _, x := range factors {
		if c, ok := x.(node.Number); ok {
			coef = node.Mul(coef, c)
			continue
		}
		p := power{x, node.One}
		if fn, ok := x.(node.Function); ok && fn.Name == node.Power && len(fn.Args) == 2 {
			if e, ok := fn.Args[1].(node.Number); ok && e.Sign() > 0 {
				p = power{fn.Args[0], e}
			}
		}
		ps = append(ps, p)
	}
	return coef, ps
}

// common returns the greatest factor shared by all the terms: the
// greatest common divisor of their integer coefficients, negated if all
// are negative, times each base present in every term to its least
// power.
func (f *factorer) common(ts []node.Node) (node.Node, error) {
	if len(ts) == 0 {
		return node.One, nil
	}
	gcd := new(big.Int)
	integers, negative := true, true
	var shared []power
	for i, t := range ts {
		c, ps := split(t)
		if ci, ok := c.(node.Int); ok {
			gcd.GCD(nil, nil, gcd, new(big.Int).Abs(ci.Big()))
		} else {
			integers = false
		}
		negative = negative && c.Sign() < 0
		if i == 0 {
			shared = ps
			continue
		}
		var kept []power
		for _, s := range shared {
			for _, p := range ps {
				if node.Equal(s.base, p.base) {
					if node.Cmp(p.exp, s.exp) < 0 {
						s.exp = p.exp
					}
					kept = append(kept, s)
					break
				}
			}
		}
		shared = kept
	}
	args := make([]node.Node, 0, len(shared)+1)
	switch {
	case integers && gcd.Sign() > 0:
		if negative {
			gcd.Neg(gcd)
		}
		args = append(args, node.BigInt(gcd))
	case negative:
		args = append(args, node.MinusOne)
	}
	for _, s := range shared {
		args = append(args, node.Call(node.Power, s.base, s.exp))
	}
	return f.simplify(node.Call(node.Times, args...))
}

// roots factors a polynomial in one variable with rational coefficients
// into the linear factors of its rational roots and a remainder. It
// returns nil if there is no such factorization.
func (f *factorer) roots(p node.Node) (node.Node, error) {
	vars := node.SortedVariables(p)
	if len(vars) != 1 {
		return nil, nil
	}
	x := vars[0]
	coefs, err := Coefficients(f.env, p, x)
	if kind, _ := node.KindOf(err); err != nil && kind == node.NotPolynomial {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(coefs) < 3 {
		return nil, nil
	}
	roots, err := RationalRoots(f.env, p, x)
	if err != nil {
		kind, _ := node.KindOf(err)
		if kind == node.NotPolynomial || kind == node.Unsupported {
			return nil, nil
		}
		return nil, err
	}
	if len(roots) == 0 {
		return nil, nil
	}
	c := make([]*big.Rat, len(coefs))
	for i, k := range coefs {
		c[i] = k.(node.Number).Rat()
	}
	v := node.Var(x)
	var factors []node.Node
	scale := big.NewRat(1, 1)
	for _, r := range roots {
		r := r.Rat()
		// x-a/b is (b*x-a)/b.
		linear := node.Call(node.Plus,
			node.Call(node.Times, node.BigInt(new(big.Int).Set(r.Denom())), v),
			node.BigInt(new(big.Int).Neg(r.Num())))
		for {
			q, exact := divideRoot(c, r)
			if !exact {
				break
			}
			c = q
			factors = append(factors, linear)
			scale.Mul(scale, new(big.Rat).SetInt(r.Denom()))
		}
	}
	rest := make([]node.Node, len(c))
	for i, k := range c {
		rest[i] = node.MakeRat(new(big.Rat).Quo(k, scale))
	}
	q, err := f.simplify(Polynomial(rest, x))
	if err != nil {
		return nil, err
	}
	if q, err = f.factor(q); err != nil {
		return nil, err
	}
	return f.simplify(node.Call(node.Times, append([]node.Node{q}, factors...)...))
}
