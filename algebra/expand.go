// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra

import (
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

const (
	// maxExpandPower bounds the exponents that Expand multiplies out.
	maxExpandPower = 64
	// maxTerms bounds the number of terms of an expansion.
	maxTerms = 1 << 14
)

// Expand distributes products and positive integer powers over sums until
// no product has a sum as a factor. The arguments of other functions are
// expanded in place.
func Expand(env dispatch.Env, n node.Node) (node.Node, error) {
	terms, err := expandTerms(env, n)
	if err != nil {
		return nil, err
	}
	return env.Simplify(node.Call(node.Plus, terms...))
}

// expandTerms returns the terms of the expansion of n.
func expandTerms(env dispatch.Env, n node.Node) ([]node.Node, error) {
	f, ok := n.(node.Function)
	if !ok {
		e, err := expandChildren(env, n)
		if err != nil {
			return nil, err
		}
		return []node.Node{e}, nil
	}
	switch {
	case f.Name == node.Plus:
		var terms []node.Node
		for _, a := range f.Args {
			t, err := expandTerms(env, a)
			if err != nil {
				return nil, err
			}
			terms = append(terms, t...)
		}
		return terms, nil
	case f.Name == node.Times:
		terms := []node.Node{node.One}
		for _, a := range f.Args {
			t, err := expandTerms(env, a)
			if err != nil {
				return nil, err
			}
			if terms, err = distribute(env, terms, t); err != nil {
				return nil, err
			}
		}
		return terms, nil
	case f.Name == node.Power && len(f.Args) == 2:
		k, ok := smallPower(f.Args[1])
		if !ok {
			break
		}
		base, err := expandTerms(env, f.Args[0])
		if err != nil {
			return nil, err
		}
		if len(base) == 1 {
			return []node.Node{node.Call(node.Power, base[0], f.Args[1])}, nil
		}
		terms := []node.Node{node.One}
		for i := 0; i < k; i++ {
			if terms, err = distribute(env, terms, base); err != nil {
				return nil, err
			}
		}
		return terms, nil
	}
	e, err := expandChildren(env, n)
	if err != nil {
		return nil, err
	}
	return []node.Node{e}, nil
}

// expandChildren expands each child of n.
func expandChildren(env dispatch.Env, n node.Node) (node.Node, error) {
	kids := n.Children()
	if len(kids) == 0 {
		return n, nil
	}
	for i, k := range kids {
		e, err := Expand(env, k)
		if err != nil {
			return nil, err
		}
		kids[i] = e
	}
	return n.WithChildren(kids), nil
}

// distribute returns the terms of the product of the sums of a and b,
// with like terms combined.
func distribute(env dispatch.Env, a, b []node.Node) ([]node.Node, error) {
	if err := env.Canceled(); err != nil {
		return nil, err
	}
	if len(a)*len(b) > maxTerms {
		return nil, node.Errorf(node.Unsupported, "expand: more than %d terms", maxTerms)
	}
	prods := make([]node.Node, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			prods = append(prods, node.Call(node.Times, x, y))
		}
	}
	s, err := env.Simplify(node.Call(node.Plus, prods...))
	if err != nil {
		return nil, err
	}
	return terms(s), nil
}

// terms returns the addends of n.
func terms(n node.Node) []node.Node {
	if f, ok := n.(node.Function); ok && f.Name == node.Plus {
		return f.Args
	}
	return []node.Node{n}
}

// smallPower returns the exponent e if it is an integer that Expand
// multiplies out.
func smallPower(e node.Node) (int, bool) {
	i, ok := e.(node.Int)
	if !ok {
		return 0, false
	}
	k, ok := i.Int64()
	if !ok || k < 2 || k > maxExpandPower {
		return 0, false
	}
	return int(k), true
}
