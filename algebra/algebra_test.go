// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"robpike.io/kelvin/algebra"
	"robpike.io/kelvin/config"
	"robpike.io/kelvin/exec"
	"robpike.io/kelvin/host"
	"robpike.io/kelvin/node"
	"robpike.io/kelvin/ops"
)

func newContext() *exec.Context {
	var out bytes.Buffer
	conf := &config.Config{}
	conf.SetOutput(&out)
	conf.SetErrOutput(&out)
	return exec.NewContext(conf, host.NewConsole(strings.NewReader(""), &out, &out), nil, ops.Install, algebra.Install)
}

func eval(t *testing.T, c *exec.Context, src string) (string, error) {
	t.Helper()
	v, err := c.Source("test", src, false)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

type evalTest struct {
	in  string
	out string
}

func runTests(t *testing.T, tests []evalTest) {
	t.Helper()
	for _, test := range tests {
		got, err := eval(t, newContext(), test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got != test.out {
			t.Errorf("%q = %s, want %s", test.in, got, test.out)
		}
	}
}

func TestExpand(t *testing.T) {
	runTests(t, []evalTest{
		{"expand((x+1)*(x+2))", "x^2+3*x+2"},
		{"expand((x+1)^2)", "x^2+2*x+1"},
		{"expand((x-1)*(x+1))", "x^2-1"},
		{"expand(x*(y+1))", "x*y+x"},
		{"expand(2*(x+3))", "2*x+6"},
		{"expand(sin((x+1)*x))", "sin(x^2+x)"},
		{"expand(x+1)", "x+1"},
		{"expand(7)", "7"},
	})
}

func TestCoefficients(t *testing.T) {
	runTests(t, []evalTest{
		{"coefficients(x^2+3*x+2, x)", "[(0, 2), (1, 3), (2, 1)]"},
		{"coefficients(x^3+1, x)", "[(0, 1), (1, 0), (2, 0), (3, 1)]"},
		{"coefficients(a*x^2+b*x, x)", "[(0, 0), (1, b), (2, a)]"},
		{"coefficients((x+1)*(x-1), x)", "[(0, -1), (1, 0), (2, 1)]"},
		{"coefficients(5, x)", "[(0, 5)]"},
		{"degree(x^4-x, x)", "4"},
		{"degree(5, x)", "0"},
		{"polynomial([2, 3, 1], x)", "x^2+3*x+2"},
		{"polynomial(coefficients(x^3-2*x+5, x), x)", "x^3-2*x+5"},
		// The variable is not replaced by its value.
		{"x := 3\ncoefficients(x^2, x)", "[(0, 0), (1, 0), (2, 1)]"},
	})
}

func TestNotPolynomial(t *testing.T) {
	for _, src := range []string{
		"coefficients(sin(x), x)",
		"coefficients(1/x, x)",
		"degree(x^y, x)",
		"rationalRoots(x^2+sin(x), x)",
	} {
		_, err := eval(t, newContext(), src)
		if kind, ok := node.KindOf(err); !ok || kind != node.NotPolynomial {
			t.Errorf("%q: got %v, want not a polynomial", src, err)
		}
	}
}

func TestRationalRoots(t *testing.T) {
	runTests(t, []evalTest{
		{"rationalRoots(x^2-1, x)", "[-1, 1]"},
		{"rationalRoots(2*x^2-3*x+1, x)", "[1/2, 1]"},
		{"rationalRoots(x^3-x^2, x)", "[0, 1]"},
		{"rationalRoots(x^2+1, x)", "[]"},
		{"rationalRoots(x^2/4-1, x)", "[-2, 2]"},
		{"rationalRoots(x-7, x)", "[7]"},
		{"rationalRoots(3, x)", "[]"},
	})
}

func TestFactor(t *testing.T) {
	runTests(t, []evalTest{
		{"factor(x^2+3*x+2)", "(x+1)*(x+2)"},
		{"factor(x^2-1)", "(x+1)*(x-1)"},
		{"factor(x^2+2*x+1)", "(x+1)^2"},
		{"factor(2*x^2-3*x+1)", "(2*x-1)*(x-1)"},
		{"factor(2*x+2)", "2*(x+1)"},
		{"factor(-x-1)", "-(x+1)"},
		{"factor(x^3-x)", "x*(x+1)*(x-1)"},
		{"factor(x*y+x+y+1)", "(x+1)*(y+1)"},
		{"factor(x^2+1)", "x^2+1"},
		{"factor(x)", "x"},
		{"factor(12)", "12"},
	})
}

// TestRoundTrip checks that factoring does not change the value of a
// polynomial: expanding the factored form gives back the expansion.
func TestRoundTrip(t *testing.T) {
	for _, p := range []string{
		"(x+1)*(x+2)",
		"(x-3)^3",
		"(2*x+1)*(x-5)*x",
		"(x+y)*(x-y)",
		"(a+b)*(c+d)",
		"x^2+x+1",
		"3*x^2*y+6*x*y^2",
	} {
		c := newContext()
		want, err := eval(t, c, "expand("+p+")")
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		got, err := eval(t, c, "expand(factor(expand("+p+")))")
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if got != want {
			t.Errorf("%s: factor round trip gives %s, want %s", p, got, want)
		}
	}
}

// TestFactorBudget factors a sum whose groupings are too many to search
// and checks that the search stops on time with an equal expression.
func TestFactorBudget(t *testing.T) {
	var terms []string
	for i := 0; i < 16; i++ {
		terms = append(terms, "x^"+strconv.Itoa(i)+"*y^"+strconv.Itoa(15-i)+"*z")
	}
	sum := strings.Join(terms, "+")
	c := newContext()
	c.Config().SetFactorBudget(50 * time.Millisecond)
	want, err := eval(t, c, "expand("+sum+")")
	if err != nil {
		t.Fatal(err)
	}
	start := time.Now()
	if _, err := eval(t, c, "f := factor("+sum+")"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("factor took %s with a budget of 50ms", elapsed)
	}
	got, err := eval(t, c, "expand(f)")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("factored form expands to %s, want %s", got, want)
	}
}
