// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scope implements the stack of variable bindings and operation
// definitions.
package scope // import "robpike.io/kelvin/scope"

import (
	"sort"

	"github.com/hashicorp/go-set/v3"

	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

// Symtab is a symbol table, a map of names to values.
type Symtab map[string]node.Node

// frame is one level of the stack. Each frame owns a copy of the
// bindings and registry of the frame below it, so popping it discards
// everything defined since it was pushed.
type frame struct {
	vars     Symtab
	registry *dispatch.Registry
}

func (f *frame) clone() *frame {
	vars := make(Symtab, len(f.vars))
	for k, v := range f.vars {
		vars[k] = v
	}
	return &frame{vars: vars, registry: f.registry.Clone()}
}

// Scope is a stack of frames plus a stack of withheld name sets.
// It is not safe for concurrent use.
type Scope struct {
	builtins *dispatch.Registry
	stack    []*frame
	withheld []*set.Set[string]
}

// New returns a scope whose base frame holds the builtins. The builtins
// registry is cloned; the argument is not modified later.
func New(builtins *dispatch.Registry) *Scope {
	s := &Scope{builtins: builtins.Clone()}
	s.RestoreDefault()
	return s
}

func (s *Scope) top() *frame {
	return s.stack[len(s.stack)-1]
}

// Lookup returns the value bound to name.
func (s *Scope) Lookup(name string) (node.Node, bool) {
	v, ok := s.top().vars[name]
	return v, ok
}

// Define binds name to value in the current frame.
func (s *Scope) Define(name string, value node.Node) {
	s.top().vars[name] = value
}

// Undefine removes the binding of name in the current frame. It reports
// whether there was one.
func (s *Scope) Undefine(name string) bool {
	vars := s.top().vars
	_, ok := vars[name]
	delete(vars, name)
	return ok
}

// Names returns the bound variable names.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.top().vars))
	for k := range s.top().vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Registry returns the operations of the current frame.
func (s *Scope) Registry() *dispatch.Registry {
	return s.top().registry
}

// Save pushes a frame holding a copy of the current bindings and
// definitions.
func (s *Scope) Save() {
	s.stack = append(s.stack, s.top().clone())
}

// Restore pops the frame pushed by the matching Save.
func (s *Scope) Restore() error {
	if len(s.stack) <= 1 {
		return node.Errorf(node.Context, "restore without save")
	}
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// RestoreDefault discards every frame and definition, leaving only
// the builtins. Withheld names stay withheld until their Release.
func (s *Scope) RestoreDefault() {
	s.stack = []*frame{{vars: make(Symtab), registry: s.builtins.Clone()}}
}

// Depth returns the number of frames above the base.
func (s *Scope) Depth() int {
	return len(s.stack) - 1
}

// Withhold pushes a set of names that resolve to themselves.
func (s *Scope) Withhold(names ...string) {
	s.withheld = append(s.withheld, set.From(names))
}

// Release pops the names pushed by the matching Withhold.
func (s *Scope) Release() {
	if len(s.withheld) > 0 {
		s.withheld = s.withheld[:len(s.withheld)-1]
	}
}

// IsWithheld reports whether name is withheld by any active Withhold.
func (s *Scope) IsWithheld(name string) bool {
	for _, w := range s.withheld {
		if w.Contains(name) {
			return true
		}
	}
	return false
}

// Snapshot is a saved state of a scope.
type Snapshot struct {
	stack    []*frame
	withheld []*set.Set[string]
}

// Snapshot records the state of the scope for a later Reset.
func (s *Scope) Snapshot() Snapshot {
	stack := make([]*frame, len(s.stack))
	for i, f := range s.stack {
		stack[i] = f.clone()
	}
	return Snapshot{stack: stack, withheld: append([]*set.Set[string](nil), s.withheld...)}
}

// Reset returns the scope to a recorded state.
func (s *Scope) Reset(snap Snapshot) {
	s.stack = make([]*frame, len(snap.stack))
	for i, f := range snap.stack {
		s.stack[i] = f.clone()
	}
	s.withheld = append([]*set.Set[string](nil), snap.withheld...)
}

var _ dispatch.Scope = (*Scope)(nil)
