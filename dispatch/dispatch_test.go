// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"testing"

	"robpike.io/kelvin/config"
	"robpike.io/kelvin/grammar"
	"robpike.io/kelvin/host"
	"robpike.io/kelvin/node"
)

// nullEnv satisfies Env for rules that do not call back into the engine.
type nullEnv struct{}

func (nullEnv) Simplify(n node.Node) (node.Node, error)        { return n, nil }
func (nullEnv) Scope() Scope                                   { return nil }
func (nullEnv) Grammar() *grammar.Table                        { return nil }
func (nullEnv) Config() *config.Config                         { return &config.Config{} }
func (nullEnv) IO() host.IO                                    { return nil }
func (nullEnv) FS() host.FileSystem                            { return nil }
func (nullEnv) Source(string, string, bool) (node.Node, error) { return node.Void{}, nil }
func (nullEnv) Canceled() error                                { return nil }

// constant returns a rule body that always produces the text s.
func constant(s string) Func {
	return func(Env, []node.Node) (Result, error) {
		return Replace(node.Text(s)), nil
	}
}

func resolve(t *testing.T, r *Registry, fn node.Function) string {
	t.Helper()
	n, ok, err := r.Resolve(nullEnv{}, fn)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		return "unchanged"
	}
	return n.String()
}

func TestFirstMatchWins(t *testing.T) {
	r := NewRegistry()
	r.Register("f", Rule{Params: Params(Integer), Fn: constant("builtin")})
	r.Register("f", Rule{Params: Params(Integer), Fn: constant("user")})
	if got := resolve(t, r, node.Call("f", node.NewInt(1))); got != `"builtin"` {
		t.Errorf("appended rule overrode existing one: %s", got)
	}
	r.Prepend("f", Rule{Params: Params(Integer), Fn: constant("override")})
	if got := resolve(t, r, node.Call("f", node.NewInt(1))); got != `"override"` {
		t.Errorf("prepended rule did not take priority: %s", got)
	}
}

func TestNoMatchContinues(t *testing.T) {
	r := NewRegistry()
	r.Register("f",
		Rule{Params: Params(Any), Fn: func(Env, []node.Node) (Result, error) { return NoMatch, nil }},
		Rule{Params: Params(Number), Fn: constant("number")},
		Rule{Params: Params(Any), Fn: constant("any")},
	)
	tests := []struct {
		arg  node.Node
		want string
	}{
		{node.NewInt(2), `"number"`},
		{node.Var("x"), `"any"`},
	}
	for _, test := range tests {
		if got := resolve(t, r, node.Call("f", test.arg)); got != test.want {
			t.Errorf("f(%s) = %s, want %s", test.arg, got, test.want)
		}
	}
	if got := resolve(t, r, node.Call("f")); got != "unchanged" {
		t.Errorf("wrong arity matched: %s", got)
	}
	if got := resolve(t, r, node.Call("g", node.NewInt(1))); got != "unchanged" {
		t.Errorf("unknown operation matched: %s", got)
	}
}

// numberAndVar replaces a (number, variable) pair by the text "n·v".
var numberAndVar = Rule{
	Params:      Params(Number, Variable),
	Commutative: true,
	Fn: func(_ Env, args []node.Node) (Result, error) {
		return Replace(node.Text(args[0].String() + "·" + args[1].String())), nil
	},
}

func TestCommutative(t *testing.T) {
	r := NewRegistry()
	r.Register("mul", numberAndVar)
	x := node.Var("x")
	tests := []struct {
		fn   node.Function
		want string
	}{
		{node.Call("mul", node.NewInt(2), x), `"2·x"`},
		{node.Call("mul", x, node.NewInt(2)), `"2·x"`},
		{node.Call("mul", x, node.Text("t"), node.NewInt(3)), `mul("3·x", "t")`},
		{node.Call("mul", x, node.Var("y")), "unchanged"},
	}
	for _, test := range tests {
		if got := resolve(t, r, test.fn); got != test.want {
			t.Errorf("%s: got %s, want %s", test.fn, got, test.want)
		}
	}
}

func TestForwardCommutative(t *testing.T) {
	r := NewRegistry()
	rule := numberAndVar
	rule.Commutative = false
	rule.ForwardCommutative = true
	r.Register("sub", rule)
	x := node.Var("x")
	tests := []struct {
		fn   node.Function
		want string
	}{
		{node.Call("sub", node.NewInt(2), x), `"2·x"`},
		{node.Call("sub", x, node.NewInt(2)), "unchanged"},
		{node.Call("sub", x, node.NewInt(2), x), `sub(x, "2·x")`},
		{node.Call("sub", x, node.Text("t"), node.NewInt(2)), "unchanged"},
	}
	for _, test := range tests {
		if got := resolve(t, r, test.fn); got != test.want {
			t.Errorf("%s: got %s, want %s", test.fn, got, test.want)
		}
	}
}

func TestVariadic(t *testing.T) {
	r := NewRegistry()
	r.Register("max", Rule{
		Params:   Params(Text, Number),
		Variadic: true,
		Fn: func(_ Env, args []node.Node) (Result, error) {
			return Replace(node.NewInt(int64(len(args)))), nil
		},
	})
	tests := []struct {
		fn   node.Function
		want string
	}{
		{node.Call("max", node.Text("a")), "1"},
		{node.Call("max", node.Text("a"), node.NewInt(1), node.NewInt(2)), "3"},
		{node.Call("max", node.Text("a"), node.NewInt(1), node.Var("x")), "unchanged"},
		{node.Call("max"), "unchanged"},
	}
	for _, test := range tests {
		if got := resolve(t, r, test.fn); got != test.want {
			t.Errorf("%s: got %s, want %s", test.fn, got, test.want)
		}
	}
}

func TestRuleError(t *testing.T) {
	r := NewRegistry()
	r.Register("f",
		Rule{Params: Params(Any), Fn: func(Env, []node.Node) (Result, error) {
			return NoMatch, node.Errorf(node.Domain, "bad")
		}},
		Rule{Params: Params(Any), Fn: constant("unreached")},
	)
	_, _, err := r.Resolve(nullEnv{}, node.Call("f", node.One))
	if kind, _ := node.KindOf(err); kind != node.Domain {
		t.Errorf("got %v", err)
	}
}

func TestRegistryOps(t *testing.T) {
	r := NewRegistry()
	r.Register("if", Rule{Params: Params(Any, Any), Fn: constant("if"), PreservesArguments: true})
	r.Register("g", Rule{Params: Params(Any), Fn: constant("g1"), Doc: "g(x)"})
	if !r.Preserves("if") || r.Preserves("g") {
		t.Error("Preserves wrong")
	}
	c := r.Clone()
	c.Register("h", Rule{Params: Params(Any), Fn: constant("h")})
	c.Redefine("g", Rule{Params: Params(Any), Fn: constant("g2"), Doc: "g(x)"})
	if r.Defined("h") {
		t.Error("clone shares names")
	}
	if got := resolve(t, r, node.Call("g", node.One)); got != `"g1"` {
		t.Errorf("clone shares rules: %s", got)
	}
	if got := resolve(t, c, node.Call("g", node.One)); got != `"g2"` {
		t.Errorf("Redefine: %s", got)
	}
	if n := len(c.Rules("g")); n != 1 {
		t.Errorf("Redefine appended: %d rules", n)
	}
	if got := c.Names(); len(got) != 3 || got[0] != "g" || got[2] != "if" {
		t.Errorf("Names = %v", got)
	}
	if !c.Clear("h") || c.Clear("h") {
		t.Error("Clear")
	}
	if got := r.Rules("g")[0].Signature("g"); got != "g(any)" {
		t.Errorf("Signature = %s", got)
	}
}

func TestConstraints(t *testing.T) {
	list := node.NewList(node.One)
	tests := []struct {
		c    Constraint
		n    node.Node
		want bool
	}{
		{Number, node.NewRat(1, 2), true},
		{Integer, node.NewRat(1, 2), false},
		{Rational, node.NewRat(1, 2), true},
		{Sequence, list, true},
		{Sequence, node.Var("x"), false},
		{Symbolic, node.Var("x"), true},
		{Symbolic, list, false},
		{Symbolic, node.Two, false},
		{Call("sin"), node.Call("sin", node.One), true},
		{Call("sin"), node.Call("cos", node.One), false},
		{Not(Number), node.Two, false},
		{OneOf(node.ListKind, node.VectorKind), node.NewVector(), true},
		{OneOf(node.ListKind, node.VectorKind), node.NewTuple(), false},
	}
	for _, test := range tests {
		if got := test.c.Match(test.n); got != test.want {
			t.Errorf("%s.Match(%s) = %t", test.c, test.n, got)
		}
	}
	for _, name := range []string{"integer", "number", "sequence", "matrix", "any"} {
		if _, ok := ConstraintFor(name); !ok {
			t.Errorf("no constraint for %s", name)
		}
	}
	if _, ok := ConstraintFor("widget"); ok {
		t.Error("constraint for widget")
	}
}
