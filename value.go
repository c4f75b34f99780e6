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

// Package lisp implements the evaluator core of a small Lisp-family
// interpreter: value model, environments, expander, evaluator, place
// engine, control stack, and lazy sequences.
package lisp

import (
	"fmt"
)

// Value is the single sum type over which the evaluator operates. The
// closed set of concrete types below stands in for a tagged union: nilT
// (Nil), *Symbol, Integer, Character, *StringObj, *Cons, *Vector, *Hash,
// *Function, *StreamObj, and *Foreign.
type Value interface {
	// typeName names the value's dynamic type, used by `type` and by
	// type-error messages.
	typeName() string
}

// Nil is the distinguished empty list, also the canonical false.
type nilT struct{}

func (nilT) typeName() string { return "null" }

// Nil is the single instance of the empty list / false value.
var Nil Value = nilT{}

// IsNil reports whether v is the empty list / false.
func IsNil(v Value) bool {
	_, ok := v.(nilT)
	return ok
}

// Bool converts a Go boolean into Nil or T.
func Bool(b bool) Value {
	if b {
		return T
	}
	return Nil
}

// Truthy reports whether v counts as true: everything except Nil.
func Truthy(v Value) bool {
	return !IsNil(v)
}

// Integer is a signed integer value.
type Integer int64

func (Integer) typeName() string { return "integer" }

// Character is a single Unicode code point.
type Character rune

func (Character) typeName() string { return "character" }

// Symbol is interned within a Package; identity-equal to every other
// reference to the same name in the same package.
type Symbol struct {
	Name string
	Pkg  *Package
}

func (*Symbol) typeName() string { return "symbol" }

func (s *Symbol) String() string {
	if s.Pkg != nil && s.Pkg.Name == "keyword" {
		return ":" + s.Name
	}
	return s.Name
}

// Bindable reports whether s may appear as a binding target: not nil, not
// T, and not a keyword.
func (s *Symbol) Bindable() bool {
	if s == T {
		return false
	}
	if s.Pkg != nil && s.Pkg.Name == "keyword" {
		return false
	}
	return true
}

// SelfEvaluating reports whether s evaluates to itself rather than being
// looked up: T and keywords.
func (s *Symbol) SelfEvaluating() bool {
	return !s.Bindable()
}

// T is the canonical true symbol, interned in the system package.
var T *Symbol

// StringObj is a mutable character buffer.
type StringObj struct {
	Runes []rune
}

func (*StringObj) typeName() string { return "string" }

// NewString builds a StringObj from a Go string.
func NewString(s string) *StringObj {
	return &StringObj{Runes: []rune(s)}
}

func (s *StringObj) String() string {
	return string(s.Runes)
}

func (s *StringObj) Len() int {
	return len(s.Runes)
}

// Cons is a mutable pair. When Thunk is non-nil the pair is a lazy cons:
// forcing calls Thunk, fills Car/Cdr with its result, and nils Thunk. Once
// Thunk is nil the cell is observationally an ordinary cons, forced or not.
type Cons struct {
	Car, Cdr Value
	Thunk    func() (Value, Value)
}

func (*Cons) typeName() string { return "cons" }

// NewCons builds an ordinary (non-lazy) pair.
func NewCons(car, cdr Value) *Cons {
	return &Cons{Car: car, Cdr: cdr}
}

// NewLazyCons builds a pair whose contents are computed on first force.
func NewLazyCons(thunk func() (Value, Value)) *Cons {
	return &Cons{Thunk: thunk}
}

// Force evaluates the thunk (if any) exactly once, filling Car/Cdr. It is
// idempotent and safe to call on an already-forced or ordinary cons.
func (c *Cons) Force() *Cons {
	if c.Thunk == nil {
		return c
	}
	thunk := c.Thunk
	c.Thunk = nil
	c.Car, c.Cdr = thunk()
	return c
}

// List builds a proper list from vs, nil-terminated.
func List(vs ...Value) Value {
	var out Value = Nil
	for i := len(vs) - 1; i >= 0; i-- {
		out = NewCons(vs[i], out)
	}
	return out
}

// ListToSlice walks a proper (or improper) list into a slice, along with the
// improper tail, if any (Nil if the list is proper).
func ListToSlice(v Value) (items []Value, tail Value) {
	for {
		c, ok := v.(*Cons)
		if !ok {
			return items, v
		}
		c.Force()
		items = append(items, c.Car)
		v = c.Cdr
	}
}

// Vector is a resizable array of values.
type Vector struct {
	Items []Value
}

func (*Vector) typeName() string { return "vector" }

// NewVector builds a vector from vs (copied).
func NewVector(vs ...Value) *Vector {
	items := make([]Value, len(vs))
	copy(items, vs)
	return &Vector{Items: items}
}

// Hash is a hash table keyed by structural or identity equality depending
// on configuration (see MakeHash).
type Hash struct {
	// Weak selects weak-key semantics; retained as a documented flag, since
	// this module's GC shim does not implement weak references. Equal
	// selects structural (equal) vs identity (eq) key comparison.
	Weak    bool
	EqualBy func(a, b Value) bool
	keys    []Value
	vals    []Value
	index   map[string]int
}

func (*Hash) typeName() string { return "hash" }

// MakeHash builds a hash table. If equalKeys is true, keys compare with
// Equal; otherwise with Eq.
func MakeHash(equalKeys bool) *Hash {
	h := &Hash{index: make(map[string]int)}
	if equalKeys {
		h.EqualBy = Equal
	} else {
		h.EqualBy = Eq
	}
	return h
}

func hashTag(v Value) string {
	return fmt.Sprintf("%s:%p:%v", v.typeName(), v, PrintRepr(v))
}

// Get returns the value stored under key, and whether it was present.
func (h *Hash) Get(key Value) (Value, bool) {
	tag := hashTag(key)
	if i, ok := h.index[tag]; ok {
		return h.vals[i], true
	}
	for i, k := range h.keys {
		if h.EqualBy(k, key) {
			return h.vals[i], true
		}
	}
	return Nil, false
}

// Set stores value under key, replacing any existing entry.
func (h *Hash) Set(key, value Value) {
	tag := hashTag(key)
	if i, ok := h.index[tag]; ok {
		h.vals[i] = value
		return
	}
	for i, k := range h.keys {
		if h.EqualBy(k, key) {
			h.vals[i] = value
			return
		}
	}
	h.index[tag] = len(h.keys)
	h.keys = append(h.keys, key)
	h.vals = append(h.vals, value)
}

// Del removes key, returning the prior value (or Nil) and whether it was
// present.
func (h *Hash) Del(key Value) (Value, bool) {
	for i, k := range h.keys {
		if h.EqualBy(k, key) {
			old := h.vals[i]
			n := len(h.keys) - 1
			h.keys[i] = h.keys[n]
			h.vals[i] = h.vals[n]
			h.keys = h.keys[:n]
			h.vals = h.vals[:n]
			h.index = make(map[string]int, n)
			for j, kk := range h.keys {
				h.index[hashTag(kk)] = j
			}
			return old, true
		}
	}
	return Nil, false
}

// Len returns the number of entries.
func (h *Hash) Len() int { return len(h.keys) }

// Each calls fn for every (key, value) pair. Iteration order is insertion
// order.
func (h *Hash) Each(fn func(k, v Value) bool) {
	for i := range h.keys {
		if !fn(h.keys[i], h.vals[i]) {
			return
		}
	}
}

// Function is either interpreted (closure over params/body/env) or a
// built-in native dispatch.
type Function struct {
	Name string

	// Interpreted function fields.
	Params Value // possibly-improper parameter list, already expander-checked
	Body   Value // implicit progn body
	Env    *Env

	// Built-in function fields.
	Builtin      BuiltinFn
	FixedParams  int
	OptionalArgs int
	Variadic     bool
}

func (*Function) typeName() string { return "function" }

// BuiltinFn is the native implementation signature for a built-in.
type BuiltinFn func(ev *Evaluator, args []Value) (Value, error)

// IsBuiltin reports whether f is a native function.
func (f *Function) IsBuiltin() bool { return f.Builtin != nil }

// Arity returns the fixed parameter count, optional parameter count, and
// whether f accepts a trailing rest argument.
func (f *Function) Arity() (fixed, optional int, variadic bool) {
	if f.IsBuiltin() {
		return f.FixedParams, f.OptionalArgs, f.Variadic
	}
	fixed, optional, variadic = countParams(f.Params)
	return
}

// Foreign wraps an arbitrary Go value (e.g. a compiled regex) so it can flow
// through Lisp code as an opaque value.
type Foreign struct {
	Tag string
	Obj interface{}
}

func (*Foreign) typeName() string { return "foreign:" + "object" }

// TypeOf returns the printed type name used by the `type` builtin.
func TypeOf(v Value) string {
	switch vv := v.(type) {
	case nilT:
		return "null"
	case *Symbol:
		if vv == T {
			return "sym"
		}
		return "sym"
	default:
		return v.typeName()
	}
}

// Eq is identity equality: for Integer and Character it is value equality
// (these are not heap-allocated in this model and there is no separate
// "same integer object" notion); for nilT/T it is the singleton check; for
// everything else it is pointer identity.
func Eq(a, b Value) bool {
	switch av := a.(type) {
	case nilT:
		_, ok := b.(nilT)
		return ok
	case Integer:
		bv, ok := b.(Integer)
		return ok && av == bv
	case Character:
		bv, ok := b.(Character)
		return ok && av == bv
	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av == bv
	case *StringObj:
		bv, ok := b.(*StringObj)
		return ok && av == bv
	case *Cons:
		bv, ok := b.(*Cons)
		return ok && av == bv
	case *Vector:
		bv, ok := b.(*Vector)
		return ok && av == bv
	case *Hash:
		bv, ok := b.(*Hash)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *Foreign:
		bv, ok := b.(*Foreign)
		return ok && av == bv
	default:
		return a == b
	}
}

// Eql compares numbers and characters by value, falling back to Eq
// (identity) for everything else.
func Eql(a, b Value) bool {
	switch av := a.(type) {
	case Integer:
		bv, ok := b.(Integer)
		return ok && av == bv
	case Character:
		bv, ok := b.(Character)
		return ok && av == bv
	default:
		return Eq(a, b)
	}
}

// Equal is structural equality: conses compared element-wise (forcing lazy
// cells as it walks), strings by content, vectors element-wise, hashes by
// same key/value sets, everything else falls back to Eql.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case *Cons:
		bv, ok := b.(*Cons)
		if !ok {
			return false
		}
		av.Force()
		bv.Force()
		return Equal(av.Car, bv.Car) && Equal(av.Cdr, bv.Cdr)
	case *StringObj:
		bv, ok := b.(*StringObj)
		return ok && av.String() == bv.String()
	case *Vector:
		bv, ok := b.(*Vector)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Hash:
		bv, ok := b.(*Hash)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		eq := true
		av.Each(func(k, v Value) bool {
			bval, found := bv.Get(k)
			if !found || !Equal(v, bval) {
				eq = false
				return false
			}
			return true
		})
		return eq
	default:
		return Eql(a, b)
	}
}

// Length returns the length of a string, vector, or proper list. It is an
// error (type-error) for anything else, or an improper list.
func Length(v Value) (int, error) {
	switch vv := v.(type) {
	case nilT:
		return 0, nil
	case *StringObj:
		return vv.Len(), nil
	case *Vector:
		return len(vv.Items), nil
	case *Cons:
		n := 0
		items, tail := ListToSlice(v)
		n = len(items)
		if !IsNil(tail) {
			return 0, newTypeError("length: improper list")
		}
		return n, nil
	default:
		return 0, newTypeError("length: not a sequence: %s", PrintRepr(v))
	}
}
