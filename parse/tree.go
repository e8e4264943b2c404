// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"
	"strings"

	"robpike.io/kelvin/node"
)

// Tree formats a node in an unambiguous form for debugging.
// It generates the output for the "parse" debug flag.
func Tree(n node.Node) string {
	switch n := n.(type) {
	case node.Int:
		return fmt.Sprintf("<int %s>", n)
	case node.Rat:
		return fmt.Sprintf("<rat %s>", n)
	case node.Float:
		return fmt.Sprintf("<float %s>", n)
	case node.Bool:
		return fmt.Sprintf("<bool %s>", n)
	case node.Text:
		return fmt.Sprintf("<text %s>", n)
	case node.Variable:
		return fmt.Sprintf("<var %s>", n.Name)
	case node.Function:
		return fmt.Sprintf("(%s%s)", n.Name, trees(" ", n.Args))
	case node.Equation:
		return fmt.Sprintf("(%s %s %s)", Tree(n.LHS), n.Mode, Tree(n.RHS))
	case node.List:
		return "[" + strings.TrimPrefix(trees(" ", n.Elems()), " ") + "]"
	case node.Vector:
		return "{" + strings.TrimPrefix(trees(" ", n.Elems()), " ") + "}"
	case node.Matrix:
		return "<matrix " + strings.TrimPrefix(trees(" ", n.Elems()), " ") + ">"
	case node.Tuple:
		return "<tuple" + trees(" ", n.Elems()) + ">"
	case node.Statements:
		return "<" + strings.TrimPrefix(trees("; ", n.Elems()), "; ") + ">"
	case node.Closure:
		return "<closure " + Tree(n.Body) + ">"
	case node.Final:
		return "<final " + Tree(n.Inner) + ">"
	case node.Void:
		return "<void>"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%T", n)
	}
}

func trees(sep string, nodes []node.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(sep)
		b.WriteString(Tree(n))
	}
	return b.String()
}
