// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

var (
	matrix = dispatch.Matrix
	vector = dispatch.Vector
	// vectorLike matches the one-dimensional sequences.
	vectorLike = dispatch.OneOf(node.ListKind, node.VectorKind, node.TupleKind)
	scalar     = dispatch.Not(dispatch.Sequence)
)

func installSequences(r *dispatch.Registry) {
	// Products of matrices do not commute; these rules see adjacent
	// factors only.
	r.Register(node.Times,
		dispatch.Rule{Params: params(matrix, matrix), ForwardCommutative: true, Fn: fn2(matrixProduct), Doc: "matrix product"},
		dispatch.Rule{Params: params(matrix, vector), ForwardCommutative: true, Fn: fn2(matrixVector)},
		dispatch.Rule{Params: params(vector, matrix), ForwardCommutative: true, Fn: fn2(vectorMatrix)},
		dispatch.Rule{Params: params(scalar, sequence), Commutative: true, Fn: fn2(scaleSequence), Doc: "scalar product"},
		dispatch.Rule{Params: params(vectorLike, vectorLike), ForwardCommutative: true, Fn: elementwise(node.Times)},
	)
	r.Register(node.Plus,
		dispatch.Rule{Params: params(matrix, matrix), Commutative: true, Fn: elementwise(node.Plus), Doc: "elementwise sum"},
		dispatch.Rule{Params: params(vectorLike, vectorLike), Commutative: true, Fn: elementwise(node.Plus)},
	)

	r.Register(node.IndexOp,
		dispatch.Rule{Params: params(matrix, integer, integer), Fn: func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
			return result(entry(args[0].(node.Matrix), args[1], args[2]))
		}},
		dispatch.Rule{Params: params(sequence, integer), Fn: fn2(index), Doc: "element of a sequence"},
		dispatch.Rule{Params: params(sequence, vectorLike), Fn: fn2(func(s, idx node.Node) (node.Node, error) {
			is := idx.(node.Sequence).Elems()
			out := make([]node.Node, len(is))
			for k, i := range is {
				var err error
				if out[k], err = index(s, i); err != nil {
					return nil, err
				}
			}
			return idx.WithChildren(out), nil
		})},
	)
	r.Register("size",
		dispatch.Rule{Params: params(matrix), Fn: fn1(func(m node.Node) (node.Node, error) {
			return node.NewList(node.NewInt(int64(m.(node.Matrix).Rows())), node.NewInt(int64(m.(node.Matrix).Cols()))), nil
		})},
		dispatch.Rule{Params: params(sequence), Fn: fn1(func(s node.Node) (node.Node, error) {
			return node.NewInt(int64(s.(node.Sequence).Len())), nil
		}), Doc: "number of elements"},
		dispatch.Rule{Params: params(text), Fn: fn1(func(s node.Node) (node.Node, error) {
			return node.NewInt(int64(len([]rune(string(s.(node.Text)))))), nil
		})},
	)
	r.Register("..", dispatch.Rule{Params: params(integer, integer), Fn: fn2(rangeList), Doc: "integers from a to b inclusive"})
	r.Register("range",
		dispatch.Rule{Params: params(integer), Fn: fn1(func(n node.Node) (node.Node, error) {
			return rangeList(node.Zero, node.Sub(n.(node.Number), node.One))
		}), Doc: "integers from 0 to n-1"},
		dispatch.Rule{Params: params(integer, integer), Fn: fn2(rangeList)},
	)

	r.Register("list", dispatch.Rule{Params: params(any), Variadic: true, Fn: func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return dispatch.Replace(node.NewList(args...)), nil
	}})
	r.Register("vector",
		dispatch.Rule{Params: params(sequence), Fn: fn1(func(s node.Node) (node.Node, error) {
			return node.NewVector(s.(node.Sequence).Elems()...), nil
		})},
		dispatch.Rule{Params: params(any), Variadic: true, Fn: func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
			return dispatch.Replace(node.NewVector(args...)), nil
		}},
	)
	r.Register("matrix", dispatch.Rule{Params: params(sequence), Fn: fn1(func(s node.Node) (node.Node, error) {
		return node.MatrixFromVectors(s.(node.Sequence).Elems())
	}), Doc: "matrix from a sequence of rows"})
	r.Register("append", dispatch.Rule{Params: params(vectorLike, any), Variadic: true, Fn: func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
		s := args[0].(node.Sequence)
		return dispatch.Replace(s.WithChildren(append(s.Elems(), args[1:]...))), nil
	}, Doc: "sequence with elements added"})
	r.Register("first", dispatch.Rule{Params: params(sequence), Fn: fn1(func(s node.Node) (node.Node, error) {
		return node.Index(s.(node.Sequence), 0)
	})})
	r.Register("last", dispatch.Rule{Params: params(sequence), Fn: fn1(func(s node.Node) (node.Node, error) {
		seq := s.(node.Sequence)
		return node.Index(seq, seq.Len()-1)
	})})
	r.Register("reverse", dispatch.Rule{Params: params(vectorLike), Fn: fn1(func(s node.Node) (node.Node, error) {
		elems := s.(node.Sequence).Elems()
		for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
			elems[i], elems[j] = elems[j], elems[i]
		}
		return s.WithChildren(elems), nil
	})})
	r.Register("sum", dispatch.Rule{Params: params(vectorLike), Fn: fn1(func(s node.Node) (node.Node, error) {
		return node.Call(node.Plus, s.(node.Sequence).Elems()...), nil
	}), Doc: "sum of the elements"})
	r.Register("product", dispatch.Rule{Params: params(vectorLike), Fn: fn1(func(s node.Node) (node.Node, error) {
		return node.Call(node.Times, s.(node.Sequence).Elems()...), nil
	}), Doc: "product of the elements"})
	r.Register("transpose", dispatch.Rule{Params: params(matrix), Fn: fn1(transpose), Doc: "matrix transpose"})
	r.Register("dot", dispatch.Rule{Params: params(vectorLike, vectorLike), Fn: fn2(dot), Doc: "inner product"})
	r.Register("identity", dispatch.Rule{Params: params(integer), Fn: fn1(identity), Doc: "identity matrix"})
}

// index returns element i of s.
func index(s, i node.Node) (node.Node, error) {
	n, err := smallInt("index", i)
	if err != nil {
		return nil, err
	}
	return node.Index(s.(node.Sequence), n)
}

// entry returns the element of m at row i, column j.
func entry(m node.Matrix, i, j node.Node) (node.Node, error) {
	row, err := index(m, i)
	if err != nil {
		return nil, err
	}
	return index(row, j)
}

func rangeList(a, b node.Node) (node.Node, error) {
	lo, err := smallInt("range", a)
	if err != nil {
		return nil, err
	}
	hi, err := smallInt("range", b)
	if err != nil {
		return nil, err
	}
	const maxRange = 1 << 20
	if hi-lo >= maxRange {
		return nil, node.Errorf(node.InvalidRange, "range %d..%d too long", lo, hi)
	}
	var elems []node.Node
	for i := lo; i <= hi; i++ {
		elems = append(elems, node.NewInt(int64(i)))
	}
	return node.NewList(elems...), nil
}

// elementwise returns a rule body applying op to corresponding elements
// of two sequences of the same shape.
func elementwise(op string) dispatch.Func {
	return func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
		a, b := args[0], args[1]
		if err := sameShape(op, a, b); err != nil {
			return dispatch.NoMatch, err
		}
		x, y := a.Children(), b.Children()
		out := make([]node.Node, len(x))
		for i := range x {
			out[i] = node.Call(op, x[i], y[i])
		}
		return dispatch.Replace(a.WithChildren(out)), nil
	}
}

func sameShape(op string, a, b node.Node) error {
	if ma, ok := a.(node.Matrix); ok {
		mb := b.(node.Matrix)
		if ma.Rows() != mb.Rows() || ma.Cols() != mb.Cols() {
			return node.Errorf(node.DimensionMismatch, "%s: %dx%d and %dx%d matrices", op, ma.Rows(), ma.Cols(), mb.Rows(), mb.Cols())
		}
		return nil
	}
	la, lb := a.(node.Sequence).Len(), b.(node.Sequence).Len()
	if la != lb {
		return node.Errorf(node.DimensionMismatch, "%s: sequences of length %d and %d", op, la, lb)
	}
	return nil
}

func scaleSequence(c, s node.Node) (node.Node, error) {
	kids := s.Children()
	for i, k := range kids {
		kids[i] = node.Call(node.Times, c, k)
	}
	return s.WithChildren(kids), nil
}

// dotRow returns the sum of the products of corresponding elements.
func dotRow(a, b []node.Node) node.Node {
	terms := make([]node.Node, len(a))
	for i := range a {
		terms[i] = node.Call(node.Times, a[i], b[i])
	}
	return node.Call(node.Plus, terms...)
}

func dot(a, b node.Node) (node.Node, error) {
	if err := sameShape("dot", a, b); err != nil {
		return nil, err
	}
	return dotRow(a.Children(), b.Children()), nil
}

func column(m node.Matrix, j int) []node.Node {
	col := make([]node.Node, m.Rows())
	for i := range col {
		col[i] = m.Entry(i, j)
	}
	return col
}

func matrixProduct(a, b node.Node) (node.Node, error) {
	x, y := a.(node.Matrix), b.(node.Matrix)
	if x.Cols() != y.Rows() {
		return nil, node.Errorf(node.DimensionMismatch, "*: %dx%d times %dx%d matrix", x.Rows(), x.Cols(), y.Rows(), y.Cols())
	}
	rows := make([][]node.Node, x.Rows())
	for i := range rows {
		rows[i] = make([]node.Node, y.Cols())
		for j := range rows[i] {
			rows[i][j] = dotRow(x.Row(i), column(y, j))
		}
	}
	return node.NewMatrix(rows)
}

func matrixVector(a, b node.Node) (node.Node, error) {
	m, v := a.(node.Matrix), b.(node.Vector)
	if m.Cols() != v.Len() {
		return nil, node.Errorf(node.DimensionMismatch, "*: %dx%d matrix times vector of length %d", m.Rows(), m.Cols(), v.Len())
	}
	out := make([]node.Node, m.Rows())
	for i := range out {
		out[i] = dotRow(m.Row(i), v.Elems())
	}
	return node.NewVector(out...), nil
}

func vectorMatrix(a, b node.Node) (node.Node, error) {
	v, m := a.(node.Vector), b.(node.Matrix)
	if m.Rows() != v.Len() {
		return nil, node.Errorf(node.DimensionMismatch, "*: vector of length %d times %dx%d matrix", v.Len(), m.Rows(), m.Cols())
	}
	out := make([]node.Node, m.Cols())
	for j := range out {
		out[j] = dotRow(v.Elems(), column(m, j))
	}
	return node.NewVector(out...), nil
}

func transpose(a node.Node) (node.Node, error) {
	m := a.(node.Matrix)
	rows := make([][]node.Node, m.Cols())
	for j := range rows {
		rows[j] = column(m, j)
	}
	return node.NewMatrix(rows)
}

func identity(a node.Node) (node.Node, error) {
	n, err := smallInt("identity", a)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > 1<<10 {
		return nil, node.Errorf(node.InvalidRange, "identity: bad size %d", n)
	}
	rows := make([][]node.Node, n)
	for i := range rows {
		rows[i] = make([]node.Node, n)
		for j := range rows[i] {
			rows[i][j] = node.Zero
			if i == j {
				rows[i][j] = node.One
			}
		}
	}
	return node.NewMatrix(rows)
}
