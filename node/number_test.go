// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in, out string
		kind    Kind
	}{
		{"42", "42", IntKind},
		{"123456789012345678901234567890", "123456789012345678901234567890", IntKind},
		{"1.50", "1.5", FloatKind},
		{"2.0", "2.0", FloatKind},
		{"0.001", "0.001", FloatKind},
		{"1e3", "1000.0", FloatKind},
	}
	for _, test := range tests {
		v, err := ParseNumber(test.in)
		if err != nil {
			t.Errorf("ParseNumber(%q): %v", test.in, err)
			continue
		}
		if v.Kind() != test.kind || v.String() != test.out {
			t.Errorf("ParseNumber(%q) = %s %s, want %s %s", test.in, v.Kind(), v, test.kind, test.out)
		}
	}
	if _, err := ParseNumber("1x"); err == nil {
		t.Error("bad literal accepted")
	}
}

func TestArith(t *testing.T) {
	half := NewRat(1, 2)
	if got := Add(half, half); !got.Equals(One) {
		t.Errorf("1/2+1/2 = %s", got)
	}
	if got := Mul(n(6), NewRat(1, 4)); got.String() != "3/2" {
		t.Errorf("6*1/4 = %s", got)
	}
	if got := Sub(n(2), n(5)); !got.Equals(n(-3)) {
		t.Errorf("2-5 = %s", got)
	}
	q, err := Quo(n(6), n(4))
	if err != nil || q.String() != "3/2" {
		t.Errorf("6/4 = %v, %v", q, err)
	}
	_, err = Quo(n(1), Zero)
	if kind, _ := KindOf(err); kind != DivisionByZero {
		t.Errorf("1/0: %v", err)
	}
	if Cmp(half, n(1)) != -1 || Cmp(n(2), n(2)) != 0 {
		t.Error("Cmp is wrong")
	}
	f, _ := ParseNumber("0.5")
	if Cmp(f, half) != 0 {
		t.Error("0.5 != 1/2")
	}
	if got := Add(f, n(1)); got.Kind() != FloatKind || got.String() != "1.5" {
		t.Errorf("0.5+1 = %s %s", got.Kind(), got)
	}
}

func TestPow(t *testing.T) {
	tests := []struct {
		base, exp Number
		want      string
		exact     bool
	}{
		{n(2), n(10), "1024", true},
		{n(2), n(-2), "1/4", true},
		{NewRat(2, 3), n(2), "4/9", true},
		{n(4), half(), "2", true},
		{NewRat(9, 4), NewRat(-1, 2), "2/3", true},
		{n(2), half(), "", false},
		{n(-4), half(), "", false},
		{n(0), n(3), "0", true},
	}
	for _, test := range tests {
		got, ok, err := Pow(test.base, test.exp)
		if err != nil {
			t.Errorf("%s^%s: %v", test.base, test.exp, err)
			continue
		}
		if ok != test.exact {
			t.Errorf("%s^%s: exact %t, want %t", test.base, test.exp, ok, test.exact)
			continue
		}
		if ok && got.String() != test.want {
			t.Errorf("%s^%s = %s, want %s", test.base, test.exp, got, test.want)
		}
	}
	if _, _, err := Pow(Zero, Zero); err == nil {
		t.Error("0^0 did not fail")
	}
	if _, _, err := Pow(Zero, n(-1)); err == nil {
		t.Error("0^-1 did not fail")
	}
}

func half() Number { return NewRat(1, 2) }

func TestIntegerFunctions(t *testing.T) {
	f, err := Factorial(n(20))
	if err != nil || f.String() != "2432902008176640000" {
		t.Errorf("20! = %v, %v", f, err)
	}
	if f, _ := Factorial(n(0)); !f.Equals(One) {
		t.Errorf("0! = %s", f)
	}
	if _, err := Factorial(n(-1)); err == nil {
		t.Error("(-1)! did not fail")
	}
	for _, test := range []struct{ a, b, want int64 }{
		{7, 3, 1},
		{-7, 3, 2},
		{7, -3, -2},
		{-7, -3, -1},
	} {
		m, err := Mod(n(test.a), n(test.b))
		if err != nil || !m.Equals(n(test.want)) {
			t.Errorf("%d mod %d = %v, %v; want %d", test.a, test.b, m, err, test.want)
		}
	}
	if g := GCD(n(12), n(-18)); !g.Equals(n(6)) {
		t.Errorf("gcd(12, -18) = %s", g)
	}
}
