// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import (
	"strings"
	"testing"

	"robpike.io/kelvin/grammar"
)

// decode turns codes back into bracketed symbols for comparison.
func decode(table *grammar.Table, s string) string {
	var b strings.Builder
	for _, r := range s {
		if sym, ok := table.Symbol(r); ok {
			b.WriteString("<" + sym + ">")
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var encodeTests = []struct {
	in, out string
}{
	{"x+1", "x<+>1"},
	{"a<=b", "a<<=>b"},
	{"x := y", "x <:=> y"},
	{"android or notable", "android <or> notable"},
	{"not x", "<not> x"},
	{"1e-3-x", "1e-3<->x"},
	{"2.5*x", "2.5<*>x"},
	{"1..5", "1<..>5"},
	{`"a+b" + 'c-d'`, `"a+b" <+> 'c-d'`},
	{"x # a+b", "x # a+b"},
	{"$integer", "$integer"},
	{"x!=y!", "x<!=>y<!>"},
	{"x mod2", "x mod2"},
}

func TestEncode(t *testing.T) {
	table := grammar.Builtin()
	for _, test := range encodeTests {
		enc, err := Encode(table, test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got := decode(table, enc); got != test.out {
			t.Errorf("%q: got %q, want %q", test.in, got, test.out)
		}
	}
	if _, err := Encode(table, "x \uE001"); err == nil {
		t.Error("code rune in input accepted")
	}
}

func TestTokens(t *testing.T) {
	table := grammar.Builtin()
	s := New(table, "test", "f(x, 1.5) <= [y]; {a}\n$list 'q'")
	want := []struct {
		typ  Type
		text string
		line int
	}{
		{Identifier, "f", 1},
		{LeftParen, "(", 1},
		{Identifier, "x", 1},
		{Comma, ",", 1},
		{Number, "1.5", 1},
		{RightParen, ")", 1},
		{Operator, "<=", 1},
		{LeftBrack, "[", 1},
		{Identifier, "y", 1},
		{RightBrack, "]", 1},
		{Semicolon, ";", 1},
		{LeftBrace, "{", 1},
		{Identifier, "a", 1},
		{RightBrace, "}", 1},
		{Newline, "\n", 1},
		{TypeName, "$list", 2},
		{String, "'q'", 2},
		{EOF, "EOF", 2},
	}
	for i, w := range want {
		tok := s.Next()
		if tok.Type != w.typ || tok.Text != w.text || tok.Line != w.line {
			t.Fatalf("token %d: got %s %q line %d, want %s %q line %d", i, tok.Type, tok.Text, tok.Line, w.typ, w.text, w.line)
		}
	}
}

func TestScanErrors(t *testing.T) {
	table := grammar.Builtin()
	for _, src := range []string{"3x", "'abc", "x @ y", "$ x", "1.2.3"} {
		s := New(table, "test", src)
		found := false
		for tok := s.Next(); tok.Type != EOF; tok = s.Next() {
			if tok.Type == Error {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%q: no error token", src)
		}
	}
}
