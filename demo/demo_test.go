// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"robpike.io/kelvin/config"
	"robpike.io/kelvin/demo"
	"robpike.io/kelvin/host"
	"robpike.io/kelvin/run"
)

// evaluator returns a function that runs each line in one context,
// writing to out.
func evaluator(out *bytes.Buffer) func(string) {
	conf := &config.Config{}
	conf.SetOutput(out)
	conf.SetErrOutput(out)
	c := run.NewContext(conf, host.NewConsole(strings.NewReader(""), out, out), host.OS{})
	return func(line string) {
		run.Run(context.Background(), c, "demo", line, false)
	}
}

// To update demo.out, run the test, check demo.bad and then
//
//	mv demo.bad demo.out
func TestDemo(t *testing.T) {
	var out bytes.Buffer
	if err := demo.Run(demo.Standard(), nil, evaluator(&out), &out); err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile("demo.out")
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != string(want) {
		os.WriteFile("demo.bad", out.Bytes(), 0o666)
		t.Fatal("test output differs; run\n\tdiff demo.out demo.bad\nfor details")
	}
}

func TestUserInput(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("\n\n6*7\nquit\n")
	if err := demo.Run(demo.Standard(), in, evaluator(&out), &out); err != nil {
		t.Fatal(err)
	}
	lines := strings.SplitN(demo.Text(), "\n", 4)
	want := lines[0] + "\n" + lines[1] + "\n" + lines[2] + "\n1/2\n42\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestScript(t *testing.T) {
	s := demo.New("a\nb\n")
	var got []string
	for {
		line, ok := s.Next()
		if !ok {
			break
		}
		got = append(got, line)
	}
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("lines %q", got)
	}
	if _, ok := demo.New("").Next(); ok {
		t.Error("empty script has a line")
	}
}
