// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"robpike.io/kelvin/config"
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/host"
	"robpike.io/kelvin/node"
	"robpike.io/kelvin/parse"
)

var (
	x   = node.Var("x")
	one = node.One
)

// testLibrary is a handful of rules exercising the engine.
func testLibrary(r *dispatch.Registry) {
	r.Register("inc", dispatch.Rule{Params: dispatch.Params(dispatch.Integer), Fn: func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return dispatch.Replace(node.Add(args[0].(node.Number), node.One)), nil
	}})
	// grow never reaches a fixed point.
	r.Register("grow", dispatch.Rule{Params: dispatch.Params(dispatch.Any), Fn: func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return dispatch.Replace(node.Call("grow", node.Call("wrap", args[0]))), nil
	}})
	r.Register("fail", dispatch.Rule{Params: dispatch.Params(dispatch.Any), Fn: func(dispatch.Env, []node.Node) (dispatch.Result, error) {
		return dispatch.NoMatch, node.Errorf(node.Domain, "bad")
	}})
	r.Register("ret", dispatch.Rule{Params: dispatch.Params(dispatch.Any), Fn: func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return dispatch.NoMatch, &node.Signal{Kind: node.ReturnSignal, Value: args[0]}
	}})
	r.Register("brk", dispatch.Rule{Fn: func(dispatch.Env, []node.Node) (dispatch.Result, error) {
		return dispatch.NoMatch, &node.Signal{Kind: node.BreakSignal}
	}})
	r.Register("set", dispatch.Rule{Params: dispatch.Params(dispatch.Text, dispatch.Any), Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		env.Scope().Define(string(args[0].(node.Text)), args[1])
		return dispatch.Replace(args[1]), nil
	}})
	r.Register("boom", dispatch.Rule{Fn: func(dispatch.Env, []node.Node) (dispatch.Result, error) {
		panic("boom")
	}})
	r.Register("quote", dispatch.Rule{Params: dispatch.Params(dispatch.Any), PreservesArguments: true, Fn: func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return dispatch.Replace(node.Text(args[0].String())), nil
	}})
}

func newContext() (*Context, *bytes.Buffer) {
	var out bytes.Buffer
	conf := &config.Config{}
	conf.SetOutput(&out)
	conf.SetErrOutput(&out)
	return NewContext(conf, host.NewConsole(strings.NewReader(""), &out, &out), nil, testLibrary), &out
}

func TestSimplify(t *testing.T) {
	c, _ := newContext()
	c.Store().Define("y", node.Call("inc", node.Two))
	tests := []struct {
		in   node.Node
		want string
	}{
		{node.Call("inc", node.Call("inc", one)), "3"},
		{node.Call("inc", x), "inc(x)"},
		{node.NewStatements(), ""},
		{node.NewStatements(one, node.Call("inc", one)), "2"},
		{node.NewList(node.Call("inc", one), x), "[2, x]"},
		{node.Var("y"), "3"},
		{node.Call("quote", node.Call("inc", one)), `"inc(1)"`},
		{node.Equation{LHS: one, RHS: node.Two, Mode: node.LessThan}, "true"},
		{node.Equation{LHS: node.Call("inc", one), RHS: node.Two, Mode: node.EqualTo}, "true"},
		{node.Eq(node.Text("a"), node.Text("b")), "false"},
		{node.Eq(x, one), "x = 1"},
		{node.Closure{Body: node.NewStatements(node.Call("ret", one), node.Two), CaptureReturn: true}, "1"},
	}
	for _, test := range tests {
		got, err := c.Simplify(test.in)
		if err != nil {
			t.Errorf("%s: %v", test.in, err)
			continue
		}
		if got.String() != test.want {
			t.Errorf("%s = %s, want %s", test.in, got, test.want)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	c, _ := newContext()
	c.Config().SetMaxDepth(100)
	c.Store().Define("a", node.Var("b"))
	c.Store().Define("b", node.Var("a"))
	tests := []struct {
		in   node.Node
		kind node.ErrorKind
	}{
		{node.Var("a"), node.CircularDefinition},
		{node.Call("grow", one), node.StackOverflow},
		{node.Call("brk"), node.Context},
		{node.Call("ret", one), node.Context},
		{node.Closure{Body: node.Call("ret", one)}, node.Context},
		{node.Call("inc", node.Call("fail", one)), node.Domain},
	}
	for _, test := range tests {
		_, err := c.Eval(test.in)
		if kind, ok := node.KindOf(err); !ok || kind != test.kind {
			t.Errorf("%s: got %v, want %s", test.in, err, test.kind)
		}
	}
	// The failed evaluations leave nothing behind.
	if got, err := c.Simplify(node.Call("inc", one)); err != nil || got.String() != "2" {
		t.Errorf("after errors: %v, %v", got, err)
	}
}

func TestSignalsPassUnwrapped(t *testing.T) {
	c, _ := newContext()
	_, err := c.Simplify(node.NewList(node.Call("inc", node.Call("brk"))))
	sig, ok := node.AsSignal(err)
	if !ok || sig.Kind != node.BreakSignal {
		t.Fatalf("got %v, want bare break signal", err)
	}
}

func TestWithheld(t *testing.T) {
	c, _ := newContext()
	c.Store().Define("x", node.NewInt(5))
	c.Store().Withhold("x")
	if got, _ := c.Simplify(x); got.String() != "x" {
		t.Errorf("withheld x = %s", got)
	}
	c.Store().Release()
	if got, _ := c.Simplify(x); got.String() != "5" {
		t.Errorf("released x = %s", got)
	}
}

func TestScopeDiscipline(t *testing.T) {
	c, _ := newContext()
	s := c.Store()
	s.Save()
	if _, err := c.Simplify(node.Call("set", node.Text("x"), node.NewInt(5))); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.Simplify(x); got.String() != "5" {
		t.Errorf("x = %s inside frame", got)
	}
	if err := s.Restore(); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.Simplify(x); got.String() != "x" {
		t.Errorf("x = %s after restore", got)
	}
}

func statements(nodes ...node.Node) []parse.Statement {
	stmts := make([]parse.Statement, len(nodes))
	for i, n := range nodes {
		stmts[i] = parse.Statement{Line: i + 1, Node: n}
	}
	return stmts
}

func TestRunRetention(t *testing.T) {
	set := func(name string, v int64) node.Node {
		return node.Call("set", node.Text(name), node.NewInt(v))
	}
	tests := []struct {
		opts Options
		a, b string // Values of a and b after the run.
	}{
		{Options{Inherit, KeepAll}, "1", "2"},
		{Options{Inherit, RestorePrevious}, "1", "b"},
		{Options{Inherit, ResetDefault}, "a", "b"},
		{Options{Fresh, KeepAll}, "a", "2"},
		{Options{Fresh, RestorePrevious}, "1", "b"},
	}
	for _, test := range tests {
		c, _ := newContext()
		if _, err := c.Run(statements(set("a", 1)), Options{}); err != nil {
			t.Fatal(err)
		}
		values, err := c.Run(statements(set("b", 2), node.Var("a")), test.opts)
		if err != nil {
			t.Fatal(err)
		}
		if len(values) != 2 {
			t.Fatalf("%v: %d values", test.opts, len(values))
		}
		a, _ := c.Simplify(node.Var("a"))
		b, _ := c.Simplify(node.Var("b"))
		if a.String() != test.a || b.String() != test.b {
			t.Errorf("%v: a=%s b=%s, want a=%s b=%s", test.opts, a, b, test.a, test.b)
		}
	}
}

func TestRunStopsAtError(t *testing.T) {
	c, _ := newContext()
	values, err := c.Run(statements(one, node.Call("fail", one), node.Two), Options{})
	if len(values) != 1 {
		t.Errorf("got %d values before the error", len(values))
	}
	if err == nil || !strings.HasPrefix(err.Error(), "line 2: ") {
		t.Errorf("error %v not located", err)
	}
}

func TestExecute(t *testing.T) {
	c, _ := newContext()
	values, err := c.Execute(context.Background(), statements(node.Call("inc", one)), Options{})
	if err != nil || len(values) != 1 || values[0].String() != "2" {
		t.Errorf("Execute = %v, %v", values, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Execute(ctx, statements(node.Call("inc", one)), Options{})
	if kind, _ := node.KindOf(err); kind != node.Canceled {
		t.Errorf("canceled Execute: %v", err)
	}
	if err := c.Canceled(); err != nil {
		t.Errorf("cancellation outlived Execute: %v", err)
	}

	_, err = c.Execute(context.Background(), statements(node.Call("boom")), Options{})
	if kind, _ := node.KindOf(err); kind != node.Unsupported || !strings.Contains(err.Error(), "boom") {
		t.Errorf("panic: %v", err)
	}
}

func TestSource(t *testing.T) {
	c, _ := newContext()
	v, err := c.Source("t", `set("a", 1)
inc(a)`, false)
	if err != nil || v.String() != "2" {
		t.Fatalf("Source = %v, %v", v, err)
	}
	v, err = c.Source("t", `set("z", 3)`, true)
	if err != nil || v.String() != "3" {
		t.Fatalf("isolated Source = %v, %v", v, err)
	}
	if got, _ := c.Simplify(node.Var("z")); got.String() != "z" {
		t.Errorf("isolated run leaked z = %s", got)
	}
	if got, _ := c.Simplify(node.Var("a")); got.String() != "1" {
		t.Errorf("isolated run lost a = %s", got)
	}
	v, err = c.Source("t", "", false)
	if err != nil || v.String() != "" {
		t.Errorf("empty Source = %v, %v", v, err)
	}
	_, err = c.Source("file.kv", "1\n)", false)
	if err == nil || !strings.Contains(err.Error(), "file.kv:2") {
		t.Errorf("syntax error %v not located", err)
	}
}

func TestMessageAndTrace(t *testing.T) {
	c, _ := newContext()
	_, err := c.Simplify(node.Call("outer", node.Call("fail", one)))
	if err == nil {
		t.Fatal("no error")
	}
	if got := Message(err); got != "bad" {
		t.Errorf("Message = %q", got)
	}
	want := "bad\n\t•> outer(fail(1))\n\t•> fail(1)\n"
	if got := Trace(err); got != want {
		t.Errorf("Trace = %q, want %q", got, want)
	}
}

func TestDebugRules(t *testing.T) {
	c, out := newContext()
	c.Config().SetDebug("rules", true)
	if _, err := c.Simplify(node.Call("inc", node.Call("inc", one))); err != nil {
		t.Fatal(err)
	}
	want := "rewrite inc(1) => 2\nrewrite inc(2) => 3\n"
	if got := out.String(); got != want {
		t.Errorf("log %q, want %q", got, want)
	}
}
