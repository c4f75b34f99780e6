// Copyright (c) 2026, The lcore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lisp

// binding is one (symbol, cell) pair in a frame's association list. Cell is
// a pointer so that closures sharing a frame observe mutation through set.
type binding struct {
	sym  *Symbol
	cell *Value
}

// Env is a chained environment frame: one association list of variable
// bindings, one of function bindings, and a parent link. Frames are
// created by let/let*/lambda-application/each/for/dohash/catch and kept
// alive only by whatever still references them (closures, in-flight
// evaluation).
type Env struct {
	vars   []binding
	funcs  []binding
	parent *Env
}

// NewChildEnv returns a fresh empty frame whose parent is env (env may be
// nil, producing a root frame below the top level).
func NewChildEnv(parent *Env) *Env {
	return &Env{parent: parent}
}

func (e *Env) findVar(sym *Symbol) (*Value, bool) {
	for f := e; f != nil; f = f.parent {
		for i := len(f.vars) - 1; i >= 0; i-- {
			if f.vars[i].sym == sym {
				return f.vars[i].cell, true
			}
		}
	}
	return nil, false
}

func (e *Env) findFunc(sym *Symbol) (*Value, bool) {
	for f := e; f != nil; f = f.parent {
		for i := len(f.funcs) - 1; i >= 0; i-- {
			if f.funcs[i].sym == sym {
				return f.funcs[i].cell, true
			}
		}
	}
	return nil, false
}

// BindVar introduces a new variable binding in this frame (shadowing any
// binding of the same name already present, including in this frame).
func (e *Env) BindVar(sym *Symbol, v Value) {
	cell := new(Value)
	*cell = v
	e.vars = append(e.vars, binding{sym, cell})
}

// BindFunc introduces a new function binding in this frame.
func (e *Env) BindFunc(sym *Symbol, v Value) {
	cell := new(Value)
	*cell = v
	e.funcs = append(e.funcs, binding{sym, cell})
}

// cBackedVar is a top-level variable whose storage lives outside the
// interpreter; lookup calls Get, assignment calls Set, replacing the
// mark-hook/shadow-cell synchronisation of the collaborator runtime with an
// explicit accessor pair (per spec.md §9 DESIGN NOTES).
type cBackedVar struct {
	get func() Value
	set func(Value)
}

// TopLevel holds the two global hash tables (variables, functions) plus the
// registry of C-backed variable accessors.
type TopLevel struct {
	vars     map[*Symbol]*Value
	funcs    map[*Symbol]*Value
	cBacked  map[*Symbol]*cBackedVar
}

func newTopLevel() *TopLevel {
	return &TopLevel{
		vars:    make(map[*Symbol]*Value),
		funcs:   make(map[*Symbol]*Value),
		cBacked: make(map[*Symbol]*cBackedVar),
	}
}

// DefVar implements `defvar`: if sym has no top-level variable binding yet,
// create one with the given value; if it already exists, overwrite the
// value in place (same cell), so existing closures/readers observe the new
// value.
func (tl *TopLevel) DefVar(sym *Symbol, v Value) {
	if _, ok := tl.cBacked[sym]; ok {
		tl.cBacked[sym].set(v)
		return
	}
	if cell, ok := tl.vars[sym]; ok {
		*cell = v
		return
	}
	cell := new(Value)
	*cell = v
	tl.vars[sym] = cell
}

// LookupVar resolves a top-level variable, consulting C-backed accessors
// first.
func (tl *TopLevel) LookupVar(sym *Symbol) (Value, bool) {
	if cb, ok := tl.cBacked[sym]; ok {
		return cb.get(), true
	}
	if cell, ok := tl.vars[sym]; ok {
		return *cell, true
	}
	return Nil, false
}

// SetVar assigns to an existing top-level variable binding (C-backed or
// ordinary). It does not create a new binding; callers should DefVar first.
func (tl *TopLevel) SetVar(sym *Symbol, v Value) bool {
	if cb, ok := tl.cBacked[sym]; ok {
		cb.set(v)
		return true
	}
	if cell, ok := tl.vars[sym]; ok {
		*cell = v
		return true
	}
	return false
}

// VarCell returns a settable pointer to an ordinary (non-C-backed)
// top-level variable's storage, for use by the place engine. C-backed
// variables do not expose a raw cell; place resolution on them goes through
// SetVar.
func (tl *TopLevel) VarCell(sym *Symbol) (*Value, bool) {
	cell, ok := tl.vars[sym]
	return cell, ok
}

// RegisterCBackedVariable installs an externally-backed top-level variable:
// lookups call get, assignments call set.
func (tl *TopLevel) RegisterCBackedVariable(sym *Symbol, get func() Value, set func(Value)) {
	tl.cBacked[sym] = &cBackedVar{get: get, set: set}
}

// DefFun implements `defun`'s binding step: install fn as sym's top-level
// function binding, replacing any prior binding.
func (tl *TopLevel) DefFun(sym *Symbol, fn Value) {
	cell := new(Value)
	*cell = fn
	tl.funcs[sym] = cell
}

// LookupFunc resolves a top-level function binding.
func (tl *TopLevel) LookupFunc(sym *Symbol) (Value, bool) {
	cell, ok := tl.funcs[sym]
	if !ok {
		return Nil, false
	}
	return *cell, true
}

// lookupVariable resolves sym as a variable: environment chain first, then
// the top level. Returns the bound value and whether it was found.
func (ev *Evaluator) lookupVariable(env *Env, sym *Symbol) (Value, bool) {
	if env != nil {
		if cell, ok := env.findVar(sym); ok {
			return *cell, true
		}
	}
	return ev.Top.LookupVar(sym)
}

// lookupFunction resolves sym as a function: environment chain first, then
// the top level.
func (ev *Evaluator) lookupFunction(env *Env, sym *Symbol) (Value, bool) {
	if env != nil {
		if cell, ok := env.findFunc(sym); ok {
			return *cell, true
		}
	}
	return ev.Top.LookupFunc(sym)
}
