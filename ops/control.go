// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/pkg/errors"

	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

// Control flow. The constructs take their arguments unsimplified and
// evaluate them as they need to. Break, continue, return and throw are
// signals carried in the error result until the construct that handles
// them.

func installControl(r *dispatch.Registry) {
	r.Register("if",
		dispatch.Rule{Params: params(any, any), PreservesArguments: true, Fn: ifThen, Doc: "conditional"},
		dispatch.Rule{Params: params(any, any, any), PreservesArguments: true, Fn: ifThen},
	)
	r.Register("while", dispatch.Rule{Params: params(any, any), PreservesArguments: true, Fn: while, Doc: "loop while the condition holds"})
	r.Register("for",
		dispatch.Rule{Params: params(variable, any, any), PreservesArguments: true, Fn: forEach, Doc: "loop over the elements of a sequence"},
		dispatch.Rule{Params: params(any, any, any, any), PreservesArguments: true, Fn: forLoop},
	)
	r.Register("break", dispatch.Rule{Fn: signal(node.BreakSignal)})
	r.Register("continue", dispatch.Rule{Fn: signal(node.ContinueSignal)})
	r.Register("return",
		dispatch.Rule{Fn: signal(node.ReturnSignal)},
		dispatch.Rule{Params: params(any), Fn: signal(node.ReturnSignal), Doc: "return from a definition"},
	)
	r.Register("throw", dispatch.Rule{Params: params(any), Fn: signal(node.ThrowSignal), Doc: "raise an error"})
	r.Register("try",
		dispatch.Rule{Params: params(any), PreservesArguments: true, Fn: try, Doc: "catch errors"},
		dispatch.Rule{Params: params(any, any), PreservesArguments: true, Fn: try},
	)
	r.Register("hold", dispatch.Rule{Params: params(any), PreservesArguments: true, Fn: fn1(func(a node.Node) (node.Node, error) {
		return node.Final{Inner: a}, nil
	}), Doc: "argument left unsimplified"})
	r.Register("release", dispatch.Rule{Params: params(dispatch.Exact(node.FinalKind)), Fn: fn1(func(a node.Node) (node.Node, error) {
		return a.(node.Final).Inner, nil
	}), Doc: "simplify a held expression"})
}

func ifThen(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	cond, err := env.Simplify(args[0])
	if err != nil {
		return dispatch.NoMatch, err
	}
	b, ok := cond.(node.Bool)
	if !ok {
		return dispatch.NoMatch, node.TypeError("if", "boolean condition", cond)
	}
	switch {
	case bool(b):
		return dispatch.Replace(args[1]), nil
	case len(args) == 3:
		return dispatch.Replace(args[2]), nil
	}
	return dispatch.Replace(node.Void{}), nil
}

// iterate runs body once, reporting whether the enclosing loop should stop.
func iterate(env dispatch.Env, body node.Node) (stop bool, err error) {
	if err := env.Canceled(); err != nil {
		return true, err
	}
	_, err = env.Simplify(body)
	if sig, ok := node.AsSignal(err); ok {
		switch sig.Kind {
		case node.BreakSignal:
			return true, nil
		case node.ContinueSignal:
			return false, nil
		}
	}
	return err != nil, err
}

func while(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	for {
		cond, err := env.Simplify(args[0])
		if err != nil {
			return dispatch.NoMatch, err
		}
		ok, err := truth("while", cond)
		if err != nil || !ok {
			return dispatch.Replace(node.Void{}), err
		}
		if stop, err := iterate(env, args[1]); stop {
			return dispatch.Replace(node.Void{}), err
		}
	}
}

// forEach binds the variable to each element in turn. The variable's
// previous binding is restored afterwards.
func forEach(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	name := args[0].(node.Variable).Name
	seq, err := env.Simplify(args[1])
	if err != nil {
		return dispatch.NoMatch, err
	}
	s, ok := seq.(node.Sequence)
	if !ok {
		return dispatch.NoMatch, node.TypeError("for", "sequence", seq)
	}
	sc := env.Scope()
	prev, bound := sc.Lookup(name)
	defer func() {
		if bound {
			sc.Define(name, prev)
		} else {
			sc.Undefine(name)
		}
	}()
	for _, e := range s.Elems() {
		sc.Define(name, e)
		if stop, err := iterate(env, args[2]); stop {
			return dispatch.Replace(node.Void{}), err
		}
	}
	return dispatch.Replace(node.Void{}), nil
}

// forLoop is the loop for(init, cond, step, body).
func forLoop(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	if _, err := env.Simplify(args[0]); err != nil {
		return dispatch.NoMatch, err
	}
	for {
		cond, err := env.Simplify(args[1])
		if err != nil {
			return dispatch.NoMatch, err
		}
		ok, err := truth("for", cond)
		if err != nil || !ok {
			return dispatch.Replace(node.Void{}), err
		}
		if stop, err := iterate(env, args[3]); stop {
			return dispatch.Replace(node.Void{}), err
		}
		if _, err := env.Simplify(args[2]); err != nil {
			return dispatch.NoMatch, err
		}
	}
}

func signal(kind node.SignalKind) dispatch.Func {
	return func(_ dispatch.Env, args []node.Node) (dispatch.Result, error) {
		s := &node.Signal{Kind: kind}
		switch {
		case len(args) == 1:
			s.Value = args[0]
		case kind == node.ReturnSignal:
			s.Value = node.Void{}
		}
		return dispatch.NoMatch, s
	}
}

// try evaluates its body. If that throws or fails, the result is the
// thrown value or the error message, or, given a handler, the value of
// the handler with that value substituted for the variable error.
// Cancellation and exhaustion of the stack cannot be caught.
func try(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	v, err := env.Simplify(args[0])
	if err == nil {
		return dispatch.Replace(v), nil
	}
	var caught node.Node
	if sig, ok := node.AsSignal(err); ok {
		if sig.Kind != node.ThrowSignal {
			return dispatch.NoMatch, err
		}
		caught = sig.Value
	} else {
		kind, _ := node.KindOf(err)
		switch kind {
		case node.Canceled, node.StackOverflow:
			return dispatch.NoMatch, err
		}
		caught = node.Text(errors.Cause(err).Error())
	}
	if len(args) == 1 {
		return dispatch.Replace(caught), nil
	}
	return dispatch.Replace(node.Substitute(args[1], "error", caught)), nil
}
