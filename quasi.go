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

import "strings"

// specialFormQuasi implements the kernel form produced by expanding a
// surface string-interpolation literal: a sequence of segments, each either
// a literal string/character emitted as-is, a `(sys:var sym [pat])` marker
// naming a variable whose value is interpolated, or an arbitrary
// sub-expression whose evaluated value is interpolated. Interpolated values
// are coerced through PrintDisplay, matching how the surface syntax reads
// back a substituted string unquoted.
//
// The `pat` slot on a `(sys:var sym pat)` marker names a match pattern to
// apply when the interpolated quasi form is later used on the input side
// of a destructuring match; evaluation here only concerns the output side,
// so pat is accepted and ignored.
func specialFormQuasi(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
	var b strings.Builder
	for _, seg := range args {
		switch s := seg.(type) {
		case *StringObj:
			b.WriteString(s.String())
		case Character:
			b.WriteRune(rune(s))
		case *Cons:
			s.Force()
			if headSym, ok := s.Car.(*Symbol); ok && headSym == SysSym("var") {
				rest, _ := ListToSlice(s.Cdr)
				if len(rest) == 0 {
					return Nil, newEvalError("quasi: sys:var marker missing a variable")
				}
				varSym, ok := rest[0].(*Symbol)
				if !ok {
					return Nil, newEvalError("quasi: sys:var marker expects a symbol")
				}
				v, ok := ev.lookupVariable(env, varSym)
				if !ok {
					return Nil, newEvalError("quasi: unbound variable: %s", varSym.Name)
				}
				b.WriteString(PrintDisplay(v))
				continue
			}
			v, err := ev.Eval(seg, env)
			if err != nil {
				return Nil, err
			}
			b.WriteString(PrintDisplay(v))
		default:
			v, err := ev.Eval(seg, env)
			if err != nil {
				return Nil, err
			}
			b.WriteString(PrintDisplay(v))
		}
	}
	return NewString(b.String()), nil
}
