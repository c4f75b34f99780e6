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

// RegisterFunction installs fn as sym's top-level function binding, the Go
// equivalent of the original collaborator's reg_fun: the mechanism
// lispext and every registerXBuiltins helper in this package use to add a
// native primitive.
func (ev *Evaluator) RegisterFunction(sym *Symbol, fn *Function) {
	ev.Top.DefFun(sym, fn)
}

// RegisterVariable installs v as sym's top-level variable binding (reg_var),
// creating it if absent and overwriting an existing binding's value in place
// -- the same semantics as `defvar`.
func (ev *Evaluator) RegisterVariable(sym *Symbol, v Value) {
	ev.Top.DefVar(sym, v)
}

// RegisterCBackedVariable installs a top-level variable backed by a Go
// getter/setter pair rather than a plain cell, for values a host
// application computes on demand (spec.md §3/§9).
func (ev *Evaluator) RegisterCBackedVariable(sym *Symbol, get func() Value, set func(Value)) {
	ev.Top.RegisterCBackedVariable(sym, get, set)
}

// NewNativeFunction builds a *Function wrapping a Go implementation, for
// use with RegisterFunction by external packages (lispext) that cannot
// reach this package's unexported nativeFn constructor.
func NewNativeFunction(name string, fixed, optional int, variadic bool, fn BuiltinFn) *Function {
	return nativeFn(name, fixed, optional, variadic, fn)
}
