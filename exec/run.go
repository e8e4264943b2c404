// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"robpike.io/kelvin/node"
	"robpike.io/kelvin/parse"
)

// Start selects the scope a run begins in.
type Start int

const (
	Inherit Start = iota // The current definitions.
	Fresh                // Only the builtins.
)

// Retain selects what survives a run.
type Retain int

const (
	KeepAll         Retain = iota // Everything the run defined.
	RestorePrevious               // The definitions in place before the run.
	ResetDefault                  // Only the builtins.
)

// Options configure Run.
type Options struct {
	Start  Start
	Retain Retain
}

// Eval simplifies a top-level statement. A control signal that escapes
// it becomes an error.
func (c *Context) Eval(n node.Node) (node.Node, error) {
	v, err := c.Simplify(n)
	if sig, ok := node.AsSignal(err); ok {
		if sig.Kind == node.ThrowSignal {
			return nil, node.Errorf(node.Thrown, "%s", sig)
		}
		return nil, node.Errorf(node.Context, "%s", sig)
	}
	return v, err
}

// Run evaluates the statements in order and returns their values. It
// stops at the first error, which is annotated with the line.
func (c *Context) Run(stmts []parse.Statement, opts Options) ([]node.Node, error) {
	defer c.begin(opts)()
	var values []node.Node
	for _, s := range stmts {
		v, err := c.statement(s)
		if err != nil {
			return values, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (c *Context) statement(s parse.Statement) (node.Node, error) {
	if err := c.Canceled(); err != nil {
		return nil, err
	}
	v, err := c.Eval(s.Node)
	if err != nil {
		return nil, errors.WithMessagef(err, "line %d", s.Line)
	}
	return v, nil
}

// begin prepares the scope for a run and returns the function that
// applies the retention policy at its end.
func (c *Context) begin(opts Options) func() {
	snap := c.scope.Snapshot()
	if opts.Start == Fresh {
		c.scope.RestoreDefault()
	}
	return func() {
		switch opts.Retain {
		case RestorePrevious:
			c.scope.Reset(snap)
		case ResetDefault:
			c.scope.RestoreDefault()
		}
	}
}

// Execute runs the statements on a separate goroutine, so deep
// recursion cannot exhaust the caller's stack, and waits for it. The
// computation stops at the next check once ctx is done.
func (c *Context) Execute(ctx context.Context, stmts []parse.Statement, opts Options) (values []node.Node, err error) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if c.config.Debug("panic") {
				return
			}
			if r := recover(); r != nil {
				err = node.Errorf(node.Unsupported, "internal error: %v", r)
			}
		}()
		prev := c.ctx
		c.ctx = ctx
		defer func() { c.ctx = prev }()
		values, err = c.Run(stmts, opts)
	}()
	<-done
	return values, err
}

// Source compiles and runs src statement by statement, so that operators
// defined by one statement are known to the next. It returns the value of
// the last statement.
func (c *Context) Source(name, src string, isolated bool) (node.Node, error) {
	opts := Options{Start: Inherit, Retain: KeepAll}
	if isolated {
		opts = Options{Start: Fresh, Retain: RestorePrevious}
	}
	defer c.begin(opts)()
	p := parse.NewParser(c.table, name, src)
	var last node.Node = node.Void{}
	for {
		s, err := p.Next()
		if err == io.EOF {
			return last, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := c.statement(s)
		if err != nil {
			return nil, errors.WithMessage(err, name)
		}
		last = v
	}
}

// Message returns the message of the error that started the failure,
// without the context it gathered on the way up.
func Message(err error) string {
	return errors.Cause(err).Error()
}

// maxTrace bounds the number of context lines printed by Trace.
const maxTrace = 25

// Trace describes err and the nodes it passed through, innermost last.
func Trace(err error) string {
	var layers []string
	for {
		c, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		next := c.Cause()
		if next == nil {
			break
		}
		if full, inner := err.Error(), next.Error(); full != inner {
			layers = append(layers, strings.TrimSuffix(full, ": "+inner))
		}
		err = next
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", err)
	if len(layers) > maxTrace {
		fmt.Fprintf(&b, "\t•> trace truncated: %d levels total; showing outermost\n", len(layers))
		layers = layers[:maxTrace]
	}
	for _, l := range layers {
		fmt.Fprintf(&b, "\t•> %s\n", l)
	}
	return b.String()
}
