// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "strings"

// Sequence is implemented by the indexable containers.
type Sequence interface {
	Node
	// Len returns the number of elements.
	Len() int
	// At returns element i. It panics if i is out of range.
	At(i int) Node
	// Elems returns a copy of the elements.
	Elems() []Node
}

// Index returns element i of s, or an IndexError.
func Index(s Sequence, i int) (Node, error) {
	if i < 0 || i >= s.Len() {
		return nil, &IndexError{Index: i, Max: s.Len() - 1}
	}
	return s.At(i), nil
}

// elems is the representation shared by the one-dimensional sequences.
type elems []Node

func (e elems) Len() int         { return len(e) }
func (e elems) At(i int) Node    { return e[i] }
func (e elems) Elems() []Node    { return clone(e) }
func (e elems) Children() []Node { return clone(e) }
func (e elems) Complexity() int  { return sumComplexity(e) }
func (e elems) Precedence() Precedence {
	return PrecLeaf
}

func (e elems) join(sep string) string {
	var b strings.Builder
	for i, x := range e {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(x.String())
	}
	return b.String()
}

// List is an ordered list, written [a, b].
type List struct{ elems }

// NewList returns a list holding the nodes. The list takes ownership
// of the slice.
func NewList(nodes ...Node) List { return List{nodes} }

func (l List) Kind() Kind                 { return ListKind }
func (l List) String() string             { return "[" + l.join(", ") + "]" }
func (l List) WithChildren(c []Node) Node { return List{clone(c)} }

func (l List) Equals(n Node) bool {
	m, ok := n.(List)
	return ok && EqualSlices(l.elems, m.elems)
}

// Vector is a mathematical vector, written {a, b}.
type Vector struct{ elems }

// NewVector returns a vector holding the nodes. The vector takes ownership
// of the slice.
func NewVector(nodes ...Node) Vector { return Vector{nodes} }

func (v Vector) Kind() Kind                 { return VectorKind }
func (v Vector) String() string             { return "{" + v.join(", ") + "}" }
func (v Vector) WithChildren(c []Node) Node { return Vector{clone(c)} }

func (v Vector) Equals(n Node) bool {
	w, ok := n.(Vector)
	return ok && EqualSlices(v.elems, w.elems)
}

// Tuple is a fixed group of values, written (a, b).
type Tuple struct{ elems }

// NewTuple returns a tuple holding the nodes. The tuple takes ownership
// of the slice.
func NewTuple(nodes ...Node) Tuple { return Tuple{nodes} }

func (t Tuple) Kind() Kind                 { return TupleKind }
func (t Tuple) String() string             { return "(" + t.join(", ") + ")" }
func (t Tuple) WithChildren(c []Node) Node { return Tuple{clone(c)} }

func (t Tuple) Equals(n Node) bool {
	u, ok := n.(Tuple)
	return ok && EqualSlices(t.elems, u.elems)
}

// Statements is a sequence of statements. Its value is the value of the
// last one.
type Statements struct{ elems }

// NewStatements returns the statement sequence. It takes ownership
// of the slice.
func NewStatements(nodes ...Node) Statements { return Statements{nodes} }

func (s Statements) Kind() Kind                 { return StatementsKind }
func (s Statements) String() string             { return "(" + s.join("; ") + ")" }
func (s Statements) WithChildren(c []Node) Node { return Statements{clone(c)} }

func (s Statements) Equals(n Node) bool {
	t, ok := n.(Statements)
	return ok && EqualSlices(s.elems, t.elems)
}

// Matrix is a rectangular grid of nodes. As a Sequence it is a sequence
// of row Vectors; its Children are the entries in row-major order.
type Matrix struct {
	rows, cols int
	entries    []Node
}

// NewMatrix returns the matrix with the given rows, which must all have the
// same length.
func NewMatrix(rows [][]Node) (Matrix, error) {
	m := Matrix{rows: len(rows)}
	if len(rows) > 0 {
		m.cols = len(rows[0])
	}
	m.entries = make([]Node, 0, m.rows*m.cols)
	for i, r := range rows {
		if len(r) != m.cols {
			return Matrix{}, Errorf(DimensionMismatch, "matrix row %d has %d elements, want %d", i, len(r), m.cols)
		}
		m.entries = append(m.entries, r...)
	}
	return m, nil
}

// MatrixFromVectors builds a matrix from a sequence of rows.
func MatrixFromVectors(rows []Node) (Matrix, error) {
	grid := make([][]Node, len(rows))
	for i, r := range rows {
		s, ok := r.(Sequence)
		if !ok {
			return Matrix{}, TypeError("matrix", "row vector", r)
		}
		grid[i] = s.Elems()
	}
	return NewMatrix(grid)
}

func (m Matrix) Kind() Kind             { return MatrixKind }
func (m Matrix) Precedence() Precedence { return PrecLeaf }
func (m Matrix) Complexity() int        { return sumComplexity(m.entries) }
func (m Matrix) Children() []Node       { return clone(m.entries) }
func (m Matrix) Rows() int              { return m.rows }
func (m Matrix) Cols() int              { return m.cols }
func (m Matrix) Len() int               { return m.rows }

// Entry returns the element at row i, column j.
func (m Matrix) Entry(i, j int) Node {
	return m.entries[i*m.cols+j]
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) []Node {
	return clone(m.entries[i*m.cols : (i+1)*m.cols])
}

func (m Matrix) At(i int) Node {
	return Vector{m.Row(i)}
}

func (m Matrix) Elems() []Node {
	rows := make([]Node, m.rows)
	for i := range rows {
		rows[i] = m.At(i)
	}
	return rows
}

func (m Matrix) WithChildren(c []Node) Node {
	mustLen(m, c, len(m.entries))
	return Matrix{m.rows, m.cols, clone(c)}
}

func (m Matrix) Equals(n Node) bool {
	o, ok := n.(Matrix)
	return ok && m.rows == o.rows && m.cols == o.cols && EqualSlices(m.entries, o.entries)
}

func (m Matrix) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.At(i).String())
	}
	b.WriteByte('}')
	return b.String()
}
