// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra

import (
	"math/big"
	"sort"

	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

// maxRootCoefficient bounds the constant and leading coefficients whose
// divisors RationalRoots enumerates.
var maxRootCoefficient = big.NewInt(1 << 40)

// RationalRoots returns the distinct rational roots of the polynomial p in
// x, in increasing order. By the rational root theorem each is a ratio of
// a divisor of the constant coefficient and a divisor of the leading one,
// once the coefficients are cleared to integers.
func RationalRoots(env dispatch.Env, p node.Node, x string) ([]node.Number, error) {
	coefs, err := Coefficients(env, p, x)
	if err != nil {
		return nil, err
	}
	a, err := integerCoefficients(p, coefs)
	if err != nil {
		return nil, err
	}
	if len(a) == 1 {
		if a[0].Sign() == 0 {
			return nil, node.Errorf(node.Domain, "rationalRoots: %s is zero", p)
		}
		return nil, nil
	}
	var roots []*big.Rat
	if a[0].Sign() == 0 {
		roots = append(roots, new(big.Rat))
		for len(a) > 0 && a[0].Sign() == 0 {
			a = a[1:]
		}
	}
	if len(a) > 1 {
		cands, err := candidates(env, a[0], a[len(a)-1])
		if err != nil {
			return nil, err
		}
		for _, r := range cands {
			if horner(a, r).Sign() == 0 {
				roots = append(roots, r)
			}
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Cmp(roots[j]) < 0 })
	out := make([]node.Number, len(roots))
	for i, r := range roots {
		out[i] = node.MakeRat(r)
	}
	return out, nil
}

// integerCoefficients scales rational coefficients to integers.
func integerCoefficients(p node.Node, coefs []node.Node) ([]*big.Int, error) {
	rats := make([]*big.Rat, len(coefs))
	lcm := big.NewInt(1)
	for i, c := range coefs {
		switch c := c.(type) {
		case node.Int, node.Rat:
			rats[i] = c.(node.Number).Rat()
		default:
			return nil, node.Errorf(node.NotPolynomial, "%s does not have rational coefficients", p)
		}
		d := rats[i].Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, g))
	}
	out := make([]*big.Int, len(rats))
	scale := new(big.Rat).SetInt(lcm)
	for i, r := range rats {
		out[i] = new(big.Int).Set(new(big.Rat).Mul(r, scale).Num())
	}
	return out, nil
}

// candidates returns the distinct ratios ±p/q with p dividing a0 and q
// dividing an.
func candidates(env dispatch.Env, a0, an *big.Int) ([]*big.Rat, error) {
	ps, err := divisors(a0)
	if err != nil {
		return nil, err
	}
	qs, err := divisors(an)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []*big.Rat
	for _, p := range ps {
		if err := env.Canceled(); err != nil {
			return nil, err
		}
		for _, q := range qs {
			for _, sign := range []int64{1, -1} {
				r := new(big.Rat).SetFrac(new(big.Int).Mul(p, big.NewInt(sign)), q)
				if key := r.RatString(); !seen[key] {
					seen[key] = true
					out = append(out, r)
				}
			}
		}
	}
	return out, nil
}

// divisors returns the positive divisors of n, which is not zero.
func divisors(n *big.Int) ([]*big.Int, error) {
	n = new(big.Int).Abs(n)
	if n.Cmp(maxRootCoefficient) > 0 {
		return nil, node.Errorf(node.Unsupported, "rationalRoots: coefficient %s too large", n)
	}
	v := n.Int64()
	var small, large []*big.Int
	for i := int64(1); i*i <= v; i++ {
		if v%i != 0 {
			continue
		}
		small = append(small, big.NewInt(i))
		if j := v / i; j != i {
			large = append(large, big.NewInt(j))
		}
	}
	for i := len(large) - 1; i >= 0; i-- {
		small = append(small, large[i])
	}
	return small, nil
}

// horner evaluates the polynomial with coefficients a, lowest degree
// first, at r.
func horner(a []*big.Int, r *big.Rat) *big.Rat {
	v := new(big.Rat)
	for i := len(a) - 1; i >= 0; i-- {
		v.Mul(v, r)
		v.Add(v, new(big.Rat).SetInt(a[i]))
	}
	return v
}

// divideRoot divides the polynomial with rational coefficients c, lowest
// degree first, by x-r. It reports whether the division is exact.
func divideRoot(c []*big.Rat, r *big.Rat) ([]*big.Rat, bool) {
	n := len(c) - 1
	q := make([]*big.Rat, n)
	carry := new(big.Rat)
	for i := n; i >= 1; i-- {
		carry = new(big.Rat).Add(c[i], new(big.Rat).Mul(carry, r))
		q[i-1] = carry
	}
	rem := new(big.Rat).Add(c[0], new(big.Rat).Mul(carry, r))
	return q, rem.Sign() == 0
}
