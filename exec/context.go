// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exec is the rewriting engine. A Context simplifies nodes to a
// fixed point under the rules of the operations in its scope.
package exec // import "robpike.io/kelvin/exec"

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"

	"robpike.io/kelvin/config"
	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/grammar"
	"robpike.io/kelvin/host"
	"robpike.io/kelvin/node"
	"robpike.io/kelvin/scope"
)

// pollInterval is the number of simplification steps between checks
// for cancellation.
const pollInterval = 1024

// Library installs a set of operations into a registry.
type Library func(*dispatch.Registry)

// Context holds execution context: the scope of bindings and operations,
// the operator table, and the collaborators for input and output.
// A Context serves one caller at a time.
type Context struct {
	config *config.Config
	scope  *scope.Scope
	table  *grammar.Table
	io     host.IO
	fs     host.FileSystem
	ctx    context.Context

	depth int // Nesting of Simplify.
	steps int // Calls of Simplify, for polling.
	// Variables whose values are being simplified, to catch cycles.
	resolving *set.Set[string]
}

// NewContext returns a context whose builtin operations are those
// installed by the libraries. A nil io or fs is replaced by the console
// on the configured writers or the host file system.
func NewContext(conf *config.Config, io host.IO, fs host.FileSystem, libs ...Library) *Context {
	reg := dispatch.NewRegistry()
	for _, lib := range libs {
		lib(reg)
	}
	if io == nil {
		io = host.NewConsole(nil, conf.Output(), conf.ErrOutput())
	}
	if fs == nil {
		fs = host.OS{}
	}
	node.SetPrecision(conf.Precision())
	return &Context{
		config:    conf,
		scope:     scope.New(reg),
		table:     grammar.Builtin(),
		io:        io,
		fs:        fs,
		ctx:       context.Background(),
		resolving: set.New[string](8),
	}
}

func (c *Context) Config() *config.Config {
	return c.config
}

// Scope returns the scope as seen by rules.
func (c *Context) Scope() dispatch.Scope {
	return c.scope
}

// Store returns the scope itself.
func (c *Context) Store() *scope.Scope {
	return c.scope
}

func (c *Context) Grammar() *grammar.Table {
	return c.table
}

func (c *Context) IO() host.IO {
	return c.io
}

func (c *Context) FS() host.FileSystem {
	return c.fs
}

// Canceled reports whether the current execution has been canceled.
func (c *Context) Canceled() error {
	if err := c.ctx.Err(); err != nil {
		return node.Errorf(node.Canceled, "canceled: %v", err)
	}
	return nil
}

// Simplify rewrites n until no rule applies.
func (c *Context) Simplify(n node.Node) (node.Node, error) {
	c.depth++
	defer func() { c.depth-- }()
	if max := c.config.MaxDepth(); c.depth > max {
		return nil, node.Errorf(node.StackOverflow, "stack overflow: expression nested more than %d deep", max)
	}
	c.steps++
	if c.steps%pollInterval == 0 {
		if err := c.Canceled(); err != nil {
			return nil, err
		}
	}
	switch n := n.(type) {
	case node.Variable:
		return c.variable(n)
	case node.Function:
		return c.call(n)
	case node.Statements:
		return c.statements(n)
	case node.Closure:
		return c.closure(n)
	case node.Equation:
		return c.equation(n)
	case node.List, node.Vector, node.Tuple, node.Matrix:
		return c.container(n)
	}
	return n, nil
}

// variable resolves a bound, unwithheld variable to its simplified value.
func (c *Context) variable(v node.Variable) (node.Node, error) {
	if c.scope.IsWithheld(v.Name) {
		return v, nil
	}
	val, ok := c.scope.Lookup(v.Name)
	if !ok {
		return v, nil
	}
	if c.resolving.Contains(v.Name) {
		return nil, node.Errorf(node.CircularDefinition, "circular definition of %s", v.Name)
	}
	c.resolving.Insert(v.Name)
	defer c.resolving.Remove(v.Name)
	return c.Simplify(val)
}

// call simplifies the arguments, unless the operation preserves them, and
// then rewrites the call by the first rule that applies.
func (c *Context) call(fn node.Function) (node.Node, error) {
	reg := c.scope.Registry()
	if !reg.Preserves(fn.Name) {
		args := make([]node.Node, len(fn.Args))
		for i, a := range fn.Args {
			s, err := c.Simplify(a)
			if err != nil {
				return nil, wrap(err, fn)
			}
			args[i] = s
		}
		fn = node.Call(fn.Name, args...)
	}
	out, ok, err := reg.Resolve(c, fn)
	if err != nil {
		return nil, wrap(err, fn)
	}
	if !ok || node.Equal(out, fn) {
		return fn, nil
	}
	if c.config.Debug("rules") {
		c.io.Log(fmt.Sprintf("rewrite %s => %s", fn, out))
	}
	return c.Simplify(out)
}

// statements simplifies each element in order and yields the last value.
func (c *Context) statements(s node.Statements) (node.Node, error) {
	var last node.Node = node.Void{}
	for _, e := range s.Elems() {
		v, err := c.Simplify(e)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (c *Context) closure(cl node.Closure) (node.Node, error) {
	v, err := c.Simplify(cl.Body)
	if err != nil {
		if sig, ok := node.AsSignal(err); ok && cl.CaptureReturn && sig.Kind == node.ReturnSignal {
			return sig.Value, nil
		}
		return nil, err
	}
	return v, nil
}

// equation simplifies both sides and decides relations between numbers.
func (c *Context) equation(e node.Equation) (node.Node, error) {
	lhs, err := c.Simplify(e.LHS)
	if err != nil {
		return nil, wrap(err, e)
	}
	rhs, err := c.Simplify(e.RHS)
	if err != nil {
		return nil, wrap(err, e)
	}
	a, aok := lhs.(node.Number)
	b, bok := rhs.(node.Number)
	if aok && bok {
		return node.Bool(e.Mode.Holds(node.Cmp(a, b))), nil
	}
	if e.Mode == node.EqualTo && constant(lhs) && constant(rhs) {
		return node.Bool(lhs.Equals(rhs)), nil
	}
	return node.Equation{LHS: lhs, RHS: rhs, Mode: e.Mode}, nil
}

// constant reports whether n is a non-numeric constant leaf.
func constant(n node.Node) bool {
	switch n.(type) {
	case node.Bool, node.Text:
		return true
	}
	return false
}

func (c *Context) container(n node.Node) (node.Node, error) {
	kids := n.Children()
	for i, k := range kids {
		s, err := c.Simplify(k)
		if err != nil {
			return nil, err
		}
		kids[i] = s
	}
	return n.WithChildren(kids), nil
}

// wrap attaches the node to the error as context. Control signals pass
// through untouched so the constructs that catch them can see them.
func wrap(err error, n node.Node) error {
	if _, ok := node.AsSignal(err); ok {
		return err
	}
	return errors.WithMessage(err, short(n.String()))
}

// short returns its argument, truncating if it's too long.
func short(s string) string {
	if len(s) > 50 {
		s = s[:50] + "..."
	}
	return s
}

var _ dispatch.Env = (*Context)(nil)
