// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"testing"

	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

func builtins() *dispatch.Registry {
	r := dispatch.NewRegistry()
	r.Register("sin", dispatch.Rule{
		Params: dispatch.Params(dispatch.Any),
		Fn: func(dispatch.Env, []node.Node) (dispatch.Result, error) {
			return dispatch.NoMatch, nil
		},
	})
	return r
}

func TestSaveRestore(t *testing.T) {
	s := New(builtins())
	s.Save()
	s.Define("x", node.NewInt(5))
	if v, ok := s.Lookup("x"); !ok || !v.Equals(node.NewInt(5)) {
		t.Fatalf("x = %v, %t", v, ok)
	}
	if err := s.Restore(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Lookup("x"); ok {
		t.Error("x still bound after restore")
	}
	if err := s.Restore(); err == nil {
		t.Error("restore of base frame succeeded")
	}
}

func TestInheritance(t *testing.T) {
	s := New(builtins())
	s.Define("a", node.One)
	s.Save()
	if _, ok := s.Lookup("a"); !ok {
		t.Error("saved frame lost outer binding")
	}
	s.Define("a", node.Two)
	s.Registry().Register("f", dispatch.Rule{
		Params: dispatch.Params(dispatch.Any),
		Fn: func(dispatch.Env, []node.Node) (dispatch.Result, error) {
			return dispatch.NoMatch, nil
		},
	})
	if s.Depth() != 1 {
		t.Errorf("depth %d", s.Depth())
	}
	if err := s.Restore(); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Lookup("a"); !v.Equals(node.One) {
		t.Errorf("a = %s after restore", v)
	}
	if s.Registry().Defined("f") {
		t.Error("definition survived restore")
	}
	if !s.Registry().Defined("sin") {
		t.Error("builtin lost")
	}
}

func TestRestoreDefault(t *testing.T) {
	s := New(builtins())
	s.Define("x", node.One)
	s.Registry().Clear("sin")
	s.Save()
	s.Save()
	s.Withhold("y")
	s.RestoreDefault()
	if s.Depth() != 0 {
		t.Errorf("depth %d", s.Depth())
	}
	if _, ok := s.Lookup("x"); ok {
		t.Error("x survived")
	}
	if !s.Registry().Defined("sin") {
		t.Error("builtin not restored")
	}
	if s.IsWithheld("y") {
		t.Error("withheld set survived")
	}
}

func TestWithhold(t *testing.T) {
	s := New(builtins())
	s.Withhold("x", "y")
	s.Withhold("z")
	for _, name := range []string{"x", "y", "z"} {
		if !s.IsWithheld(name) {
			t.Errorf("%s not withheld", name)
		}
	}
	s.Release()
	if s.IsWithheld("z") || !s.IsWithheld("x") {
		t.Error("release popped the wrong set")
	}
	s.Release()
	s.Release()
	if s.IsWithheld("x") {
		t.Error("x still withheld")
	}
}

func TestWithholdSurvivesRestoreDefault(t *testing.T) {
	s := New(builtins())
	s.Withhold("x")
	s.Define("y", node.NewInt(1))
	s.RestoreDefault()
	if !s.IsWithheld("x") {
		t.Error("restoreDefault released x")
	}
	if _, ok := s.Lookup("y"); ok {
		t.Error("restoreDefault kept y")
	}
	s.Release()
	if s.IsWithheld("x") {
		t.Error("x still withheld after release")
	}
}

func TestSnapshot(t *testing.T) {
	s := New(builtins())
	s.Define("x", node.One)
	snap := s.Snapshot()
	s.Define("x", node.Two)
	s.Define("y", node.Two)
	s.Save()
	s.Reset(snap)
	if v, _ := s.Lookup("x"); !v.Equals(node.One) {
		t.Errorf("x = %s", v)
	}
	if s.Undefine("y") {
		t.Error("y survived reset")
	}
	if s.Depth() != 0 {
		t.Errorf("depth %d", s.Depth())
	}
	if got := s.Names(); len(got) != 1 || got[0] != "x" {
		t.Errorf("names %v", got)
	}
}
