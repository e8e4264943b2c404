// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calculus_test

import (
	"bytes"
	"strings"
	"testing"

	"robpike.io/kelvin/algebra"
	"robpike.io/kelvin/calculus"
	"robpike.io/kelvin/config"
	"robpike.io/kelvin/exec"
	"robpike.io/kelvin/host"
	"robpike.io/kelvin/node"
	"robpike.io/kelvin/ops"
)

func eval(src string) (string, error) {
	var out bytes.Buffer
	conf := &config.Config{}
	conf.SetOutput(&out)
	conf.SetErrOutput(&out)
	c := exec.NewContext(conf, host.NewConsole(strings.NewReader(""), &out, &out), nil, ops.Install, algebra.Install, calculus.Install)
	v, err := c.Source("test", src, false)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

var derivativeTests = []struct {
	in  string
	out string
}{
	{"derivative(sin(x), x)", "cos(x)"},
	{"derivative(x^3, x)", "3*x^2"},
	{"derivative(x^2+3*x+1, x)", "2*x+3"},
	{"derivative(7, x)", "0"},
	{"derivative(y, x)", "0"},
	{"derivative(x, x)", "1"},
	{"derivative(ln(x), x)", "1/x"},
	{"derivative(exp(2*x), x)", "2*exp(2*x)"},
	{"derivative(x*sin(x), x)", "x*cos(x)+sin(x)"},
	{"derivative(cos(x), x)", "-sin(x)"},
	{"derivative(sin(x^2), x)", "2*x*cos(x^2)"},
	{"derivative(x^3, x, 2)", "6*x"},
	{"derivative(x^3, x, 0)", "x^3"},
	{"derivative(x^3, x, 4)", "0"},
	{"derivative([x^2, x], x)", "[2*x, 1]"},
	// The result is evaluated once the variable is no longer withheld.
	{"x := 5\nderivative(x^2, x)", "10"},
	{"gradient(x^2*y, [x, y])", "{2*x*y, x^2}"},
	{"gradient(x*y)", "{y, x}"},
	{"directionalDerivative(x^2+y^2, [x, y], [0, 2])", "2*y"},
	{"implicitDerivative(x^2+y^2 = 1, x, y)", "-x/y"},
	{"tangent(x^2, x, 1)", "2*x-1"},
}

func TestDerivative(t *testing.T) {
	for _, test := range derivativeTests {
		got, err := eval(test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got != test.out {
			t.Errorf("%q = %s, want %s", test.in, got, test.out)
		}
	}
}

func TestDerivativeErrors(t *testing.T) {
	tests := []struct {
		in   string
		kind node.ErrorKind
	}{
		{"derivative(f(x), x)", node.Unsupported},
		{"derivative(x, x, -1)", node.InvalidRange},
		{"derivative(x, x, y)", node.TypeMismatch},
		{"directionalDerivative(x*y, [x, y], [1])", node.DimensionMismatch},
		{"directionalDerivative(x*y, [x, y], [0, 0])", node.Domain},
		{"implicitDerivative(x^2 = 1, x, y)", node.Domain},
		{"gradient(x, [x, 2])", node.TypeMismatch},
	}
	for _, test := range tests {
		_, err := eval(test.in)
		if kind, ok := node.KindOf(err); !ok || kind != test.kind {
			t.Errorf("%q: got %v, want %s", test.in, err, test.kind)
		}
	}
}
