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

// defFn is the shape of registerCoreBuiltins' def closure, reused by the
// numeric and character registration helpers.
type defFn func(name string, fixed, optional int, variadic bool, fn BuiltinFn)

func registerNumericBuiltins(ev *Evaluator, def defFn) {
	def("+", 0, 0, true, foldIntegers(0, func(a, b int64) int64 { return a + b }))
	def("*", 0, 0, true, foldIntegers(1, func(a, b int64) int64 { return a * b }))
	def("-", 0, 0, true, func(ev *Evaluator, a []Value) (Value, error) {
		rest, _ := ListToSlice(a[0])
		ns, err := toInts("-", rest)
		if err != nil {
			return Nil, err
		}
		if len(ns) == 0 {
			return Nil, newEvalError("-: expects at least one argument")
		}
		if len(ns) == 1 {
			return Integer(-ns[0]), nil
		}
		acc := ns[0]
		for _, n := range ns[1:] {
			acc -= n
		}
		return Integer(acc), nil
	})
	def("/", 0, 0, true, func(ev *Evaluator, a []Value) (Value, error) {
		rest, _ := ListToSlice(a[0])
		ns, err := toInts("/", rest)
		if err != nil {
			return Nil, err
		}
		if len(ns) == 0 {
			return Nil, newEvalError("/: expects at least one argument")
		}
		if len(ns) == 1 {
			if ns[0] == 0 {
				return Nil, newNumericError("/: division by zero")
			}
			return Integer(1 / ns[0]), nil
		}
		acc := ns[0]
		for _, n := range ns[1:] {
			if n == 0 {
				return Nil, newNumericError("/: division by zero")
			}
			acc /= n
		}
		return Integer(acc), nil
	})
	def("mod", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		x, ok1 := a[0].(Integer)
		y, ok2 := a[1].(Integer)
		if !ok1 || !ok2 {
			return Nil, newTypeError("mod: expected integers")
		}
		if y == 0 {
			return Nil, newNumericError("mod: division by zero")
		}
		return Integer(((x % y) + y) % y), nil
	})

	def("<", 0, 0, true, numericChain(func(a, b int64) bool { return a < b }))
	def(">", 0, 0, true, numericChain(func(a, b int64) bool { return a > b }))
	def("<=", 0, 0, true, numericChain(func(a, b int64) bool { return a <= b }))
	def(">=", 0, 0, true, numericChain(func(a, b int64) bool { return a >= b }))
	def("=", 0, 0, true, numericChain(func(a, b int64) bool { return a == b }))
	def("/=", 0, 0, true, numericChain(func(a, b int64) bool { return a != b }))

	def("min", 0, 0, true, foldIntegers1(func(a, b int64) int64 {
		if a < b {
			return a
		}
		return b
	}))
	def("max", 0, 0, true, foldIntegers1(func(a, b int64) int64 {
		if a > b {
			return a
		}
		return b
	}))
	def("abs", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		n, ok := a[0].(Integer)
		if !ok {
			return Nil, newTypeError("abs: not an integer")
		}
		if n < 0 {
			return -n, nil
		}
		return n, nil
	})

	def("tostring", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		return NewString(PrintDisplay(a[0])), nil
	})
	def("tostringp", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		return NewString(PrintRepr(a[0])), nil
	})
}

func toInts(who string, vs []Value) ([]int64, error) {
	out := make([]int64, len(vs))
	for i, v := range vs {
		n, ok := v.(Integer)
		if !ok {
			return nil, newTypeError("%s: not an integer: %s", who, PrintRepr(v))
		}
		out[i] = int64(n)
	}
	return out, nil
}

// foldIntegers builds a variadic fold over int64 with the given identity,
// e.g. (+ ) -> 0, (+ 1 2 3) -> 6.
func foldIntegers(identity int64, op func(a, b int64) int64) BuiltinFn {
	return func(ev *Evaluator, a []Value) (Value, error) {
		rest, _ := ListToSlice(a[0])
		ns, err := toInts("arithmetic", rest)
		if err != nil {
			return Nil, err
		}
		acc := identity
		for _, n := range ns {
			acc = op(acc, n)
		}
		return Integer(acc), nil
	}
}

// foldIntegers1 is like foldIntegers but requires at least one argument and
// has no identity element (min/max).
func foldIntegers1(op func(a, b int64) int64) BuiltinFn {
	return func(ev *Evaluator, a []Value) (Value, error) {
		rest, _ := ListToSlice(a[0])
		ns, err := toInts("arithmetic", rest)
		if err != nil {
			return Nil, err
		}
		if len(ns) == 0 {
			return Nil, newEvalError("min/max: expects at least one argument")
		}
		acc := ns[0]
		for _, n := range ns[1:] {
			acc = op(acc, n)
		}
		return Integer(acc), nil
	}
}

// numericChain builds a variadic chained comparison, e.g. (< 1 2 3) tests
// 1<2 and 2<3.
func numericChain(cmp func(a, b int64) bool) BuiltinFn {
	return func(ev *Evaluator, a []Value) (Value, error) {
		rest, _ := ListToSlice(a[0])
		ns, err := toInts("comparison", rest)
		if err != nil {
			return Nil, err
		}
		if len(ns) == 0 {
			return Nil, newEvalError("comparison: expects at least one argument")
		}
		for i := 1; i < len(ns); i++ {
			if !cmp(ns[i-1], ns[i]) {
				return Nil, nil
			}
		}
		return T, nil
	}
}
