// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"fmt"

	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/grammar"
	"robpike.io/kelvin/node"
)

func installDefinitions(r *dispatch.Registry) {
	r.Register(":=", dispatch.Rule{Params: params(any, any), PreservesArguments: true, Fn: assign, Doc: "assignment"})
	r.Register("def", dispatch.Rule{Params: params(dispatch.Equation), PreservesArguments: true, Fn: def, Doc: "definition"})
	r.Register("define",
		dispatch.Rule{Params: params(dispatch.Equation), PreservesArguments: true, Fn: def, Doc: "definition"},
		dispatch.Rule{Params: params(any, any), PreservesArguments: true, Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
			return def(env, []node.Node{node.Eq(args[0], args[1])})
		}},
	)
	r.Register("undef", dispatch.Rule{Params: params(any), Variadic: true, PreservesArguments: true, Fn: undef, Doc: "remove definitions"})

	r.Register("save", dispatch.Rule{Fn: func(env dispatch.Env, _ []node.Node) (dispatch.Result, error) {
		env.Scope().Save()
		return dispatch.Replace(node.Void{}), nil
	}, Doc: "push a scope"})
	r.Register("restore", dispatch.Rule{Fn: func(env dispatch.Env, _ []node.Node) (dispatch.Result, error) {
		return dispatch.Replace(node.Void{}), env.Scope().Restore()
	}, Doc: "pop a scope"})
	r.Register("restoreDefault", dispatch.Rule{Fn: func(env dispatch.Env, _ []node.Node) (dispatch.Result, error) {
		env.Scope().RestoreDefault()
		return dispatch.Replace(node.Void{}), nil
	}, Doc: "forget all definitions"})

	r.Register("operator",
		dispatch.Rule{Params: params(any, any, any, any), PreservesArguments: true, Fn: operator, Doc: "define an operator"},
		dispatch.Rule{Params: params(any, any, any, any, any), PreservesArguments: true, Fn: operator},
	)
	r.Register("removeOperator", dispatch.Rule{Params: params(text), Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return dispatch.Replace(node.Void{}), env.Grammar().Remove(string(args[0].(node.Text)))
	}, Doc: "remove an operator"})
	r.Register("help",
		dispatch.Rule{Fn: func(env dispatch.Env, _ []node.Node) (dispatch.Result, error) {
			var names []node.Node
			for _, n := range env.Scope().Registry().Names() {
				names = append(names, node.Text(n))
			}
			return dispatch.Replace(node.NewList(names...)), nil
		}, Doc: "list the operations"},
		dispatch.Rule{Params: params(any), PreservesArguments: true, Fn: help},
	)
}

// assign binds the value of the right side to the left, which may be a
// variable, an element of a bound sequence, or a call, which defines a
// function.
func assign(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	lhs, rhs := args[0], args[1]
	if f, ok := lhs.(node.Function); ok && f.Name != node.IndexOp {
		return def(env, []node.Node{node.Eq(lhs, rhs)})
	}
	v, err := env.Simplify(rhs)
	if err != nil {
		return dispatch.NoMatch, err
	}
	if err := store(env, lhs, v); err != nil {
		return dispatch.NoMatch, err
	}
	return dispatch.Replace(v), nil
}

// store assigns v to the target, a variable or an indexed element.
func store(env dispatch.Env, target, v node.Node) error {
	switch t := target.(type) {
	case node.Variable:
		env.Scope().Define(t.Name, v)
		return nil
	case node.Function:
		if t.Name == node.IndexOp && len(t.Args) == 2 {
			return storeElement(env, t.Args[0], t.Args[1], v)
		}
	}
	return node.Errorf(node.IllegalArgument, "cannot assign to %s", target)
}

func storeElement(env dispatch.Env, target, idx, v node.Node) error {
	seq, err := env.Simplify(target)
	if err != nil {
		return err
	}
	s, ok := seq.(node.Sequence)
	if !ok {
		return node.TypeError(":=", "sequence", seq)
	}
	i, err := env.Simplify(idx)
	if err != nil {
		return err
	}
	n, err := smallInt(":=", i)
	if err != nil {
		return err
	}
	if _, err := node.Index(s, n); err != nil {
		return err
	}
	elems := s.Elems()
	elems[n] = v
	var updated node.Node
	if _, ok := s.(node.Matrix); ok {
		if updated, err = node.MatrixFromVectors(elems); err != nil {
			return err
		}
	} else {
		updated = s.WithChildren(elems)
	}
	return store(env, target, updated)
}

// def defines a variable, whose value is simplified when it is used, or a
// function, whose parameters are variables or literal values to match.
// Redefining a function with the same parameters replaces it.
func def(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	eq := args[0].(node.Equation)
	if eq.Mode != node.EqualTo {
		return dispatch.NoMatch, node.Errorf(node.IllegalArgument, "definition must use =: %s", eq)
	}
	switch lhs := eq.LHS.(type) {
	case node.Variable:
		env.Scope().Define(lhs.Name, eq.RHS)
	case node.Function:
		defineFunction(env, lhs, eq.RHS)
	default:
		return dispatch.NoMatch, node.Errorf(node.IllegalArgument, "cannot define %s", eq.LHS)
	}
	return dispatch.Replace(node.Void{}), nil
}

func defineFunction(env dispatch.Env, head node.Function, body node.Node) {
	formals := head.Args
	slot := make(map[string]int)
	for i, f := range formals {
		if v, ok := f.(node.Variable); ok {
			if _, dup := slot[v.Name]; !dup {
				slot[v.Name] = i
			}
		}
	}
	constraints := make([]dispatch.Constraint, len(formals))
	for i := range constraints {
		constraints[i] = dispatch.Any
	}
	env.Scope().Registry().Redefine(head.Name, dispatch.Rule{
		Params: constraints,
		Doc:    pattern(head, slot),
		Fn: func(env dispatch.Env, actuals []node.Node) (dispatch.Result, error) {
			for i, f := range formals {
				v, ok := f.(node.Variable)
				if ok && slot[v.Name] == i {
					continue
				}
				want := f
				if ok {
					want = actuals[slot[v.Name]]
				}
				if !node.Equal(want, actuals[i]) {
					return dispatch.NoMatch, nil
				}
			}
			b := node.Replacing(body, func(n node.Node) bool {
				v, ok := n.(node.Variable)
				if !ok {
					return false
				}
				_, ok = slot[v.Name]
				return ok
			}, func(n node.Node) node.Node {
				return actuals[slot[n.(node.Variable).Name]]
			})
			sc := env.Scope()
			sc.Save()
			v, err := env.Simplify(node.Closure{Body: b, CaptureReturn: true})
			if rerr := sc.Restore(); err == nil {
				err = rerr
			}
			if err != nil {
				return dispatch.NoMatch, err
			}
			return dispatch.Replace(v), nil
		},
	})
}

// pattern describes the formals of a definition with the variables
// replaced by their positions, so f(x) and f(y) are the same pattern.
func pattern(head node.Function, slot map[string]int) string {
	p := node.Replacing(head, func(n node.Node) bool {
		_, ok := n.(node.Variable)
		return ok
	}, func(n node.Node) node.Node {
		return node.Var(fmt.Sprintf("_%d", slot[n.(node.Variable).Name]+1))
	})
	return "defined as " + p.String()
}

func undef(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	sc := env.Scope()
	for _, a := range args {
		name, ok := word(a)
		if f, isCall := a.(node.Function); isCall {
			name, ok = f.Name, true
		}
		if !ok {
			return dispatch.NoMatch, node.TypeError("undef", "name", a)
		}
		sc.Undefine(name)
		sc.Registry().Clear(name)
	}
	return dispatch.Replace(node.Void{}), nil
}

// operator adds an operator to the grammar:
//
//	operator(name, symbol, fixity, precedence[, right])
//
// The name is that of the function the operator builds. The fixity is
// prefix, infix or postfix and the precedence is a level such as additive.
func operator(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	var w [4]string
	for i := range w {
		s, ok := word(args[i])
		if !ok {
			return dispatch.NoMatch, node.TypeError("operator", "name", args[i])
		}
		w[i] = s
	}
	fixity, ok := grammar.ParseFixity(w[2])
	if !ok {
		return dispatch.NoMatch, node.Errorf(node.IllegalArgument, "operator: unknown fixity %s", w[2])
	}
	prec, ok := node.ParsePrecedence(w[3])
	if !ok {
		return dispatch.NoMatch, node.Errorf(node.IllegalArgument, "operator: unknown precedence %s", w[3])
	}
	op := grammar.Operator{Name: w[0], Symbol: w[1], Fixity: fixity, Prec: prec}
	if len(args) == 5 {
		assoc, _ := word(args[4])
		switch assoc {
		case "right":
			op.Right = true
		case "left":
		default:
			return dispatch.NoMatch, node.Errorf(node.IllegalArgument, "operator: associativity must be left or right, not %s", args[4])
		}
	}
	if _, err := env.Grammar().Register(op); err != nil {
		return dispatch.NoMatch, err
	}
	return dispatch.Replace(node.Void{}), nil
}

// help lists the rules of the named operation.
func help(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
	name, ok := word(args[0])
	if !ok {
		return dispatch.NoMatch, node.TypeError("help", "name", args[0])
	}
	var lines []node.Node
	rules := env.Scope().Registry().Rules(name)
	for i := range rules {
		line := rules[i].Signature(name)
		if rules[i].Doc != "" {
			line += ": " + rules[i].Doc
		}
		lines = append(lines, node.Text(line))
	}
	if len(lines) == 0 {
		return dispatch.NoMatch, node.Errorf(node.UnknownConstant, "no operation %s", name)
	}
	return dispatch.Replace(node.NewList(lines...)), nil
}
