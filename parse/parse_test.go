// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"errors"
	"testing"

	"robpike.io/kelvin/grammar"
	"robpike.io/kelvin/node"
)

var parseTests = []struct {
	in   string
	tree string
}{
	{"1+2*3", "(+ <int 1> (* <int 2> <int 3>))"},
	{"x^2^3", "(^ <var x> (^ <int 2> <int 3>))"},
	{"-x^2", "(- (^ <var x> <int 2>))"},
	{"-2*x", "(* <int -2> <var x>)"},
	{"2^-1", "(^ <int 2> <int -1>)"},
	{"a-b-c", "(- (- <var a> <var b>) <var c>)"},
	{"(a+b)*c", "(* (+ <var a> <var b>) <var c>)"},
	{"x = 3", "(<var x> = <int 3>)"},
	{"x := y := 2", "(:= <var x> (:= <var y> <int 2>))"},
	{"not x and y", "(and (not <var x>) <var y>)"},
	{"!x", "(not <var x>)"},
	{"5!", "(! <int 5>)"},
	{"!5!", "(not (! <int 5>))"},
	{"x <= 2 and y > 1", "(and (<var x> <= <int 2>) (<var y> > <int 1>))"},
	{"a == b", "(== <var a> <var b>)"},
	{"f(x, y)", "(f <var x> <var y>)"},
	{"f()", "(f)"},
	{"a[0]", "(index <var a> <int 0>)"},
	{"m[1, 2]^2", "(^ (index <var m> <int 1> <int 2>) <int 2>)"},
	{"[1, 2]", "[<int 1> <int 2>]"},
	{"[]", "[]"},
	{"{1, x}", "{<int 1> <var x>}"},
	{"{{1, 2}, {3, 4}}", "<matrix {<int 1> <int 2>} {<int 3> <int 4>}>"},
	{"(1, 2)", "<tuple <int 1> <int 2>>"},
	{"(a; b)", "<<var a>; <var b>>"},
	{"()", "<>"},
	{"(\n a\n b\n)", "<<var a>; <var b>>"},
	{"def f(x) = x^2", "(def ((f <var x>) = (^ <var x> <int 2>)))"},
	{"return x+1", "(return (+ <var x> <int 1>))"},
	{"x mod 3", "(mod <var x> <int 3>)"},
	{"android", "<var android>"},
	{`"hi"`, `<text "hi">`},
	{`'hi'`, `<text "hi">`},
	{"1..5", "(.. <int 1> <int 5>)"},
	{"1.5e-3", "<float 0.0015>"},
	{"$integer", `<text "integer">`},
	{"true or false", "(or <bool true> <bool false>)"},
	{"break", "(break)"},
	{"x # comment", "<var x>"},
}

func TestParse(t *testing.T) {
	table := grammar.Builtin()
	for _, test := range parseTests {
		stmts, err := Compile(table, "test", test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if len(stmts) != 1 {
			t.Errorf("%q: %d statements", test.in, len(stmts))
			continue
		}
		if got := Tree(stmts[0].Node); got != test.tree {
			t.Errorf("%q: got %s, want %s", test.in, got, test.tree)
		}
	}
}

func TestStatements(t *testing.T) {
	stmts, err := Compile(grammar.Builtin(), "test", "x := 1; y := 2\n\n# comment\nz\nf([a,\n b])\n")
	if err != nil {
		t.Fatal(err)
	}
	wantLines := []int{1, 1, 4, 5}
	if len(stmts) != len(wantLines) {
		t.Fatalf("got %d statements, want %d", len(stmts), len(wantLines))
	}
	for i, s := range stmts {
		if s.Line != wantLines[i] {
			t.Errorf("statement %d (%s) at line %d, want %d", i, s.Node, s.Line, wantLines[i])
		}
	}
}

var errorTests = []struct {
	in   string
	kind node.ErrorKind
	line int
}{
	{"1 +", node.Syntax, 1},
	{"x := 1\n1 +", node.Syntax, 2},
	{"$foo", node.UnknownConstant, 1},
	{"(1, 2", node.Syntax, 1},
	{"a b", node.Syntax, 1},
	{"(a b)", node.Syntax, 1},
	{"x ", node.Syntax, 1},
	{"'abc", node.Syntax, 1},
	{"3x", node.Syntax, 1},
	{"{{1, 2}, {3}}", node.DimensionMismatch, 1},
}

func TestErrors(t *testing.T) {
	for _, test := range errorTests {
		_, err := Compile(grammar.Builtin(), "test", test.in)
		if err == nil {
			t.Errorf("%q: no error", test.in)
			continue
		}
		var perr *Error
		if !errors.As(err, &perr) {
			t.Errorf("%q: error %v is not a parse error", test.in, err)
			continue
		}
		if perr.Line != test.line {
			t.Errorf("%q: error at line %d, want %d", test.in, perr.Line, test.line)
		}
		if kind, _ := node.KindOf(err); kind != test.kind {
			t.Errorf("%q: error kind %s, want %s (%v)", test.in, kind, test.kind, err)
		}
	}
}

func TestLiveTable(t *testing.T) {
	table := grammar.Builtin()
	if _, err := table.Register(grammar.Operator{Name: "concat", Symbol: "<>", Fixity: grammar.Infix, Prec: node.PrecAdditive}); err != nil {
		t.Fatal(err)
	}
	if _, err := table.Register(grammar.Operator{Name: "plus", Symbol: "plus", Fixity: grammar.Infix, Prec: node.PrecAdditive}); err != nil {
		t.Fatal(err)
	}
	stmts, err := Compile(table, "test", "a <> b < c plus d")
	if err != nil {
		t.Fatal(err)
	}
	const want = "((concat <var a> <var b>) < (plus <var c> <var d>))"
	if got := Tree(stmts[0].Node); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if err := table.Remove("<>"); err != nil {
		t.Fatal(err)
	}
	if _, err := Compile(table, "test", "a <> b"); err == nil {
		t.Error("removed operator still parses")
	}
}

// An operator registered by one statement is recognized by the next.
func TestParserSeesNewOperators(t *testing.T) {
	table := grammar.Builtin()
	p := NewParser(table, "test", "a\na ++ b\n")
	if _, err := p.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := table.Register(grammar.Operator{Name: "join", Symbol: "++", Fixity: grammar.Infix, Prec: node.PrecAdditive}); err != nil {
		t.Fatal(err)
	}
	s, err := p.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got := Tree(s.Node); got != "(join <var a> <var b>)" {
		t.Errorf("got %s", got)
	}
}
