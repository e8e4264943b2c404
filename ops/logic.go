// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

func installLogic(r *dispatch.Registry) {
	r.Register("==",
		dispatch.Rule{Params: params(number, number), Fn: fn2(func(a, b node.Node) (node.Node, error) {
			return node.Bool(node.Cmp(a.(node.Number), b.(node.Number)) == 0), nil
		})},
		dispatch.Rule{Params: params(any, any), Fn: fn2(func(a, b node.Node) (node.Node, error) {
			return node.Bool(node.Equal(a, b)), nil
		}), Doc: "structural equality"},
	)
	r.Register("!=", dispatch.Rule{Params: params(any, any), Fn: fn2(func(a, b node.Node) (node.Node, error) {
		return node.Call("not", node.Call("==", a, b)), nil
	}), Doc: "structural inequality"})

	r.Register("not",
		dispatch.Rule{Params: params(boolean), Fn: fn1(func(a node.Node) (node.Node, error) {
			return !a.(node.Bool), nil
		}), Doc: "logical negation"},
		dispatch.Rule{Params: params(dispatch.Call("not")), Fn: fn1(func(a node.Node) (node.Node, error) {
			return a.(node.Function).Args[0], nil
		})},
	)
	r.Register("and", dispatch.Rule{Params: params(boolean, any), Commutative: true, Fn: fn2(func(a, b node.Node) (node.Node, error) {
		if a.(node.Bool) {
			return b, nil
		}
		return node.False, nil
	}), Doc: "logical and"})
	r.Register("or", dispatch.Rule{Params: params(boolean, any), Commutative: true, Fn: fn2(func(a, b node.Node) (node.Node, error) {
		if a.(node.Bool) {
			return node.True, nil
		}
		return b, nil
	}), Doc: "logical or"})
	r.Register("xor", dispatch.Rule{Params: params(boolean, any), Commutative: true, Fn: fn2(func(a, b node.Node) (node.Node, error) {
		if a.(node.Bool) {
			return node.Call("not", b), nil
		}
		return b, nil
	}), Doc: "exclusive or"})

	r.Register("is", dispatch.Rule{Params: params(any, text), Fn: fn2(func(a, b node.Node) (node.Node, error) {
		c, ok := dispatch.ConstraintFor(string(b.(node.Text)))
		if !ok {
			return nil, node.Errorf(node.UnknownConstant, "unknown type %s", b)
		}
		return node.Bool(c.Match(a)), nil
	}), Doc: "type test"})
}
