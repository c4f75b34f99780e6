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

// Package lispext demonstrates registering custom, host-supplied
// primitives into an *lisp.Evaluator from outside the core package, the
// way dlprim registers a custom "=" predicate into a datalog.Engine
// without reaching into the engine's internals. Everything here goes
// through lisp's public reg_fun/reg_var surface
// (RegisterFunction/RegisterVariable/RegisterCBackedVariable).
package lispext

import (
	"time"

	"github.com/kwalsh-lang/lcore"
)

// Identical registers an "identical" predicate: unlike the core's eq
// (pointer/tag identity) and equal (structural equality), identical
// additionally requires both arguments to share the same dynamic Go type,
// which matters for host-defined Foreign values the core itself has no
// opinion about.
func Identical(ev *lisp.Evaluator) {
	ev.RegisterFunction(lisp.Sym("identical"), lisp.NewNativeFunction(
		"identical", 2, 0, false,
		func(ev *lisp.Evaluator, a []lisp.Value) (lisp.Value, error) {
			return lisp.Bool(lisp.TypeOf(a[0]) == lisp.TypeOf(a[1]) && lisp.Equal(a[0], a[1])), nil
		},
	))
}

// Uptime registers a C-backed variable, *uptime*, whose value a host
// application computes on read rather than storing -- the
// RegisterCBackedVariable mechanism spec.md's supplemented surface adds
// for exactly this case. Attempts to set it fail silently, matching a
// read-only C-backed variable in the original collaborator.
func Uptime(ev *lisp.Evaluator) {
	start := time.Now()
	ev.RegisterCBackedVariable(lisp.Sym("*uptime*"),
		func() lisp.Value { return lisp.Integer(time.Since(start).Milliseconds()) },
		func(lisp.Value) {},
	)
}

// Install registers every extension in this package into ev, for host
// applications that want the whole demonstration set at once.
func Install(ev *lisp.Evaluator) {
	Identical(ev)
	Uptime(ev)
}
