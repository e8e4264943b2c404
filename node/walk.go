// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"sort"

	"github.com/hashicorp/go-set/v3"
)

// ForEach calls fn for n and, in preorder, every node below it.
// If fn returns false the children of that node are skipped.
func ForEach(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		ForEach(c, fn)
	}
}

// Contains reports whether pred holds for n or a node below it, looking at
// most depth levels down. A negative depth searches the whole tree.
func Contains(n Node, pred func(Node) bool, depth int) bool {
	if pred(n) {
		return true
	}
	if depth == 0 {
		return false
	}
	for _, c := range n.Children() {
		if Contains(c, pred, depth-1) {
			return true
		}
	}
	return false
}

// Replacing returns n with every maximal subtree for which pred holds
// replaced by fn of that subtree. Replacements are not searched again.
func Replacing(n Node, pred func(Node) bool, fn func(Node) Node) Node {
	r, _ := replacing(n, pred, fn)
	return r
}

func replacing(n Node, pred func(Node) bool, fn func(Node) Node) (Node, bool) {
	if pred(n) {
		return fn(n), true
	}
	children := n.Children()
	changed := false
	for i, c := range children {
		r, ok := replacing(c, pred, fn)
		if ok {
			children[i] = r
			changed = true
		}
	}
	if !changed {
		return n, false
	}
	return n.WithChildren(children), true
}

// Substitute replaces each occurrence of the variable name with value.
func Substitute(n Node, name string, value Node) Node {
	return Replacing(n, isVariable(name), func(Node) Node { return value })
}

// FreeOf reports whether the variable name does not occur in n.
func FreeOf(n Node, name string) bool {
	return !Contains(n, isVariable(name), -1)
}

func isVariable(name string) func(Node) bool {
	return func(n Node) bool {
		v, ok := n.(Variable)
		return ok && v.Name == name
	}
}

// Variables returns the set of variable names occurring in n.
func Variables(n Node) *set.Set[string] {
	s := set.New[string](4)
	ForEach(n, func(x Node) bool {
		if v, ok := x.(Variable); ok {
			s.Insert(v.Name)
		}
		return true
	})
	return s
}

// SortedVariables returns the variable names of n in lexical order.
func SortedVariables(n Node) []string {
	names := Variables(n).Slice()
	sort.Strings(names)
	return names
}

// Evaluate returns the numeric value of n, which is defined only for the
// numeric leaves.
func Evaluate(n Node) (float64, bool) {
	x, ok := n.(Number)
	if !ok {
		return 0, false
	}
	return x.Float64(), true
}

// IsNumeric reports whether n is a numeric leaf.
func IsNumeric(n Node) bool {
	_, ok := n.(Number)
	return ok
}
