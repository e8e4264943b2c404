// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch holds the operation registry. Each operation name maps
// to an ordered list of rules; a rule declares the arity and argument
// types it accepts and a function that rewrites a matching call.
package dispatch // import "robpike.io/kelvin/dispatch"

import (
	"fmt"
	"sort"
	"strings"

	"robpike.io/kelvin/config"
	"robpike.io/kelvin/grammar"
	"robpike.io/kelvin/host"
	"robpike.io/kelvin/node"
)

// Env is what a rule sees of the engine that invoked it.
type Env interface {
	// Simplify rewrites n to its fixed point.
	Simplify(n node.Node) (node.Node, error)
	Scope() Scope
	Grammar() *grammar.Table
	Config() *config.Config
	IO() host.IO
	FS() host.FileSystem
	// Source compiles and runs src. If isolated, it starts from the
	// default definitions and discards everything it defines; otherwise
	// its definitions are kept.
	Source(name, src string, isolated bool) (node.Node, error)
	// Canceled returns a non-nil error once the computation should stop.
	Canceled() error
}

// Scope is the variable and definition store.
type Scope interface {
	Lookup(name string) (node.Node, bool)
	Define(name string, value node.Node)
	Undefine(name string) bool
	// Registry returns the operations visible in the current frame.
	Registry() *Registry
	Save()
	Restore() error
	RestoreDefault()
	// Withhold makes the names resolve to themselves until the matching
	// Release.
	Withhold(names ...string)
	Release()
	IsWithheld(name string) bool
	Depth() int
}

// Result is the outcome of a rule: a replacement node or NoMatch.
type Result struct {
	node node.Node
}

// NoMatch reports that a rule does not apply to its arguments.
var NoMatch = Result{}

// Replace returns a Result replacing the call with n.
func Replace(n node.Node) Result {
	if n == nil {
		panic("dispatch: Replace(nil)")
	}
	return Result{n}
}

// Node returns the replacement, if any.
func (r Result) Node() (node.Node, bool) {
	return r.node, r.node != nil
}

// Func is the body of a rule. It receives the arguments of the call,
// already simplified unless the rule preserves them.
type Func func(env Env, args []node.Node) (Result, error)

// Rule is one way to rewrite a call.
type Rule struct {
	Params []Constraint
	// Variadic makes the last parameter match any number of trailing
	// arguments, including none.
	Variadic bool
	Fn       Func
	// Commutative rules of two parameters also match their arguments
	// swapped and, in a call of more arguments, any pair of them.
	Commutative bool
	// ForwardCommutative rules of two parameters match adjacent pairs of
	// a longer call, left to right, without swapping.
	ForwardCommutative bool
	// PreservesArguments stops the arguments being simplified before the
	// rule runs.
	PreservesArguments bool
	// Doc describes the rule. User definitions use it to recognize a
	// redefinition.
	Doc string
}

// Signature formats the parameter list of the rule for the named operation.
func (r *Rule) Signature(name string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, p := range r.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
		if r.Variadic && i == len(r.Params)-1 {
			b.WriteString("...")
		}
	}
	b.WriteByte(')')
	return b.String()
}

// matches reports whether the arguments satisfy the parameters.
func (r *Rule) matches(args []node.Node) bool {
	if r.Variadic {
		n := len(r.Params) - 1
		if len(args) < n {
			return false
		}
		for i, a := range args {
			p := r.Params[len(r.Params)-1]
			if i < n {
				p = r.Params[i]
			}
			if !p.Match(a) {
				return false
			}
		}
		return true
	}
	if len(args) != len(r.Params) {
		return false
	}
	for i, p := range r.Params {
		if !p.Match(args[i]) {
			return false
		}
	}
	return true
}

func (r *Rule) pairwise() bool {
	return !r.Variadic && len(r.Params) == 2 && (r.Commutative || r.ForwardCommutative)
}

// apply runs the rule on the call if it matches.
func (r *Rule) apply(env Env, fn node.Function) (Result, error) {
	args := fn.Args
	if r.matches(args) {
		res, err := r.Fn(env, args)
		if _, ok := res.Node(); ok || err != nil {
			return res, err
		}
	}
	if !r.pairwise() {
		return NoMatch, nil
	}
	if len(args) == 2 {
		if r.Commutative {
			return r.pair(env, args[1], args[0])
		}
		return NoMatch, nil
	}
	if len(args) < 2 {
		return NoMatch, nil
	}
	if r.ForwardCommutative && !r.Commutative {
		for i := 0; i+1 < len(args); i++ {
			res, err := r.pair(env, args[i], args[i+1])
			if err != nil {
				return NoMatch, err
			}
			if n, ok := res.Node(); ok {
				return Replace(splice(fn, i, i+1, n)), nil
			}
		}
		return NoMatch, nil
	}
	for i := 0; i < len(args); i++ {
		for j := i + 1; j < len(args); j++ {
			for _, swap := range []bool{false, true} {
				a, b := args[i], args[j]
				if swap {
					a, b = b, a
				}
				res, err := r.pair(env, a, b)
				if err != nil {
					return NoMatch, err
				}
				if n, ok := res.Node(); ok {
					return Replace(splice(fn, i, j, n)), nil
				}
			}
		}
	}
	return NoMatch, nil
}

func (r *Rule) pair(env Env, a, b node.Node) (Result, error) {
	if !r.Params[0].Match(a) || !r.Params[1].Match(b) {
		return NoMatch, nil
	}
	return r.Fn(env, []node.Node{a, b})
}

// splice returns fn with argument i replaced by n and argument j removed.
func splice(fn node.Function, i, j int, n node.Node) node.Function {
	args := make([]node.Node, 0, len(fn.Args)-1)
	for k, a := range fn.Args {
		switch k {
		case i:
			args = append(args, n)
		case j:
		default:
			args = append(args, a)
		}
	}
	return node.Call(fn.Name, args...)
}

// Registry maps operation names to their rules.
type Registry struct {
	rules map[string][]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string][]Rule)}
}

// Register appends the rules to those of the named operation. Rules are
// tried in the order they were registered, so an existing rule that
// matches hides a later one.
func (r *Registry) Register(name string, rules ...Rule) {
	for i := range rules {
		check(name, &rules[i])
	}
	r.rules[name] = append(r.rules[name], rules...)
}

// Prepend installs the rules ahead of the existing rules of the named
// operation, so they take priority.
func (r *Registry) Prepend(name string, rules ...Rule) {
	for i := range rules {
		check(name, &rules[i])
	}
	list := make([]Rule, 0, len(rules)+len(r.rules[name]))
	list = append(list, rules...)
	r.rules[name] = append(list, r.rules[name]...)
}

// Redefine replaces the rule of the named operation with the same Doc,
// keeping its position, or appends the rule if there is none.
func (r *Registry) Redefine(name string, rule Rule) {
	check(name, &rule)
	list := r.rules[name]
	for i := range list {
		if rule.Doc != "" && list[i].Doc == rule.Doc {
			l := make([]Rule, len(list))
			copy(l, list)
			l[i] = rule
			r.rules[name] = l
			return
		}
	}
	r.Register(name, rule)
}

func check(name string, rule *Rule) {
	if rule.Fn == nil {
		panic(fmt.Sprintf("dispatch: rule for %s has no function", name))
	}
	if rule.Variadic && len(rule.Params) == 0 {
		panic(fmt.Sprintf("dispatch: variadic rule for %s has no parameters", name))
	}
}

// Clear removes every rule of the named operation. It reports whether
// there were any.
func (r *Registry) Clear(name string) bool {
	_, ok := r.rules[name]
	delete(r.rules, name)
	return ok
}

// Rules returns the rules of the named operation in priority order.
func (r *Registry) Rules(name string) []Rule {
	return r.rules[name]
}

// Defined reports whether the named operation has any rules.
func (r *Registry) Defined(name string) bool {
	return len(r.rules[name]) > 0
}

// Clone returns a copy of the registry. Later registrations in either
// do not affect the other.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for name, list := range r.rules {
		c.rules[name] = append([]Rule(nil), list...)
	}
	return c
}

// Names returns the names of the registered operations in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preserves reports whether calls of the named operation keep their
// arguments unsimplified.
func (r *Registry) Preserves(name string) bool {
	for i := range r.rules[name] {
		if r.rules[name][i].PreservesArguments {
			return true
		}
	}
	return false
}

// Resolve applies the first rule of fn's operation that matches and
// produces a replacement. The boolean is false if no rule did, in which
// case fn is returned unchanged.
func (r *Registry) Resolve(env Env, fn node.Function) (node.Node, bool, error) {
	list := r.rules[fn.Name]
	for i := range list {
		res, err := list[i].apply(env, fn)
		if err != nil {
			return nil, false, err
		}
		if n, ok := res.Node(); ok {
			return n, true, nil
		}
	}
	return fn, false, nil
}

// Withholding runs fn with the named variables resolving to themselves.
func Withholding(env Env, names []string, fn func() (node.Node, error)) (node.Node, error) {
	sc := env.Scope()
	sc.Withhold(names...)
	defer sc.Release()
	return fn()
}
