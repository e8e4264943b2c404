// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"sort"

	"robpike.io/kelvin/node"
)

// Canonical form.
//
// A sum is flat, its like terms are combined, its terms are ordered by
// descending degree and its numeric constant, if any, comes last.
// A product is flat, its numeric coefficient comes first, powers of the
// same base are combined, and its factors are ordered variables first,
// then other functions, then sums. Sequences in a product keep their
// relative order since their products do not commute.

// flatten returns the arguments of fn with nested calls of the same
// operation spliced in.
func flatten(name string, args []node.Node) []node.Node {
	out := make([]node.Node, 0, len(args))
	for _, a := range args {
		if node.IsCall(a, name) {
			out = append(out, flatten(name, a.(node.Function).Args)...)
			continue
		}
		out = append(out, a)
	}
	return out
}

// splitTerm separates a term into its numeric coefficient and the rest.
func splitTerm(t node.Node) (node.Number, node.Node) {
	f, ok := t.(node.Function)
	if !ok || f.Name != node.Times || len(f.Args) < 2 {
		return node.One, t
	}
	c, ok := f.Args[0].(node.Number)
	if !ok {
		return node.One, t
	}
	if len(f.Args) == 2 {
		return c, f.Args[1]
	}
	return c, node.Call(node.Times, f.Args[1:]...)
}

// scale returns c*rest in canonical form.
func scale(c node.Number, rest node.Node) node.Node {
	if node.IsOne(c) {
		return rest
	}
	if node.IsCall(rest, node.Times) {
		return node.Call(node.Times, append([]node.Node{c}, rest.(node.Function).Args...)...)
	}
	return node.Call(node.Times, c, rest)
}

type term struct {
	coef node.Number
	rest node.Node
}

// sum returns the canonical form of the sum of args.
func sum(args []node.Node) node.Node {
	var constant node.Number = node.Zero
	var terms []term
Terms:
	for _, a := range flatten(node.Plus, args) {
		if x, ok := a.(node.Number); ok {
			constant = node.Add(constant, x)
			continue
		}
		c, rest := splitTerm(a)
		for i := range terms {
			if node.Equal(terms[i].rest, rest) {
				terms[i].coef = node.Add(terms[i].coef, c)
				continue Terms
			}
		}
		terms = append(terms, term{c, rest})
	}
	var out []node.Node
	for _, t := range terms {
		if !node.IsZero(t.coef) {
			out = append(out, scale(t.coef, t.rest))
		}
	}
	sortTerms(out)
	if len(out) == 0 || !node.IsZero(constant) {
		out = append(out, constant)
	}
	if len(out) == 1 {
		return out[0]
	}
	return node.Call(node.Plus, out...)
}

// monomial summarizes the variable part of a term for ordering.
type monomial struct {
	degree float64
	powers map[string]float64
	text   string
}

func monomialOf(t node.Node) monomial {
	_, rest := splitTerm(t)
	m := monomial{powers: map[string]float64{}, text: rest.String()}
	var visit func(n node.Node, scale float64)
	visit = func(n node.Node, scale float64) {
		switch n := n.(type) {
		case node.Variable:
			m.powers[n.Name] += scale
			m.degree += scale
		case node.Function:
			switch {
			case n.Name == node.Times:
				for _, a := range n.Args {
					visit(a, scale)
				}
			case n.Name == node.Power && len(n.Args) == 2:
				if e, ok := n.Args[1].(node.Number); ok {
					visit(n.Args[0], scale*e.Float64())
				}
			}
		}
	}
	visit(rest, 1)
	return m
}

// before reports whether a term with monomial a precedes one with b:
// higher degree first, then higher powers of earlier variables.
func (a monomial) before(b monomial) bool {
	if a.degree != b.degree {
		return a.degree > b.degree
	}
	names := make([]string, 0, len(a.powers)+len(b.powers))
	for v := range a.powers {
		names = append(names, v)
	}
	for v := range b.powers {
		if _, ok := a.powers[v]; !ok {
			names = append(names, v)
		}
	}
	sort.Strings(names)
	for _, v := range names {
		if pa, pb := a.powers[v], b.powers[v]; pa != pb {
			return pa > pb
		}
	}
	return a.text < b.text
}

func sortTerms(terms []node.Node) {
	keys := make(map[int]monomial, len(terms))
	idx := make([]int, len(terms))
	for i, t := range terms {
		idx[i] = i
		keys[i] = monomialOf(t)
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return keys[idx[i]].before(keys[idx[j]])
	})
	sorted := make([]node.Node, len(terms))
	for i, k := range idx {
		sorted[i] = terms[k]
	}
	copy(terms, sorted)
}

// splitPower separates a factor into base and exponent.
func splitPower(f node.Node) (node.Node, node.Node) {
	if p, ok := f.(node.Function); ok && p.Name == node.Power && len(p.Args) == 2 {
		return p.Args[0], p.Args[1]
	}
	return f, node.One
}

// power returns base^exp, simplifying the trivial exponents.
func power(base, exp node.Node) node.Node {
	switch {
	case node.IsOne(exp):
		return base
	case node.IsZero(exp):
		return node.One
	}
	return node.Call(node.Power, base, exp)
}

type factor struct {
	base node.Node
	exps []node.Node
}

// product returns the canonical form of the product of args.
func product(args []node.Node) node.Node {
	var coef node.Number = node.One
	var factors []*factor
	var seqs []node.Node
Factors:
	for _, a := range flatten(node.Times, args) {
		switch a := a.(type) {
		case node.Number:
			coef = node.Mul(coef, a)
			continue
		case node.Sequence:
			seqs = append(seqs, a)
			continue
		}
		base, exp := splitPower(a)
		for _, f := range factors {
			if node.Equal(f.base, base) {
				f.exps = append(f.exps, exp)
				continue Factors
			}
		}
		factors = append(factors, &factor{base, []node.Node{exp}})
	}
	if node.IsZero(coef) && len(seqs) == 0 {
		return coef
	}
	var out []node.Node
	for _, f := range factors {
		exp := f.exps[0]
		if len(f.exps) > 1 {
			exp = sumExponents(f.exps)
		}
		if node.IsZero(exp) {
			continue
		}
		out = append(out, power(f.base, exp))
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := factorRank(out[i]), factorRank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i].String() < out[j].String()
	})
	out = append(out, seqs...)
	if !node.IsOne(coef) || len(out) == 0 {
		out = append([]node.Node{coef}, out...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return node.Call(node.Times, out...)
}

// sumExponents adds exponents, exactly when they are all numbers.
func sumExponents(exps []node.Node) node.Node {
	var total node.Number = node.Zero
	for _, e := range exps {
		x, ok := e.(node.Number)
		if !ok {
			return node.Call(node.Plus, exps...)
		}
		total = node.Add(total, x)
	}
	return total
}

// factorRank orders the factors of a product.
func factorRank(f node.Node) int {
	base, _ := splitPower(f)
	switch base := base.(type) {
	case node.Number:
		return 0
	case node.Variable:
		return 1
	case node.Function:
		if base.Name == node.Plus {
			return 3
		}
		return 2
	}
	return 4
}
