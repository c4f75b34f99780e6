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

// registerBuiltins installs every native function into ev.Top's function
// table. It is called once per Evaluator by NewEvaluator. Builtins are
// grouped by category across this file and its siblings
// (builtins_string.go, builtins_collections.go, builtins_io.go,
// builtins_random.go, builtins_match.go); this file carries core list/cons
// operations, predicates, numeric operations, and control builtins
// (apply, throw, error).
func registerBuiltins(ev *Evaluator) {
	registerCoreBuiltins(ev)
	registerStringBuiltins(ev)
	registerCollectionBuiltins(ev)
	registerIOBuiltins(ev)
	registerRandomBuiltins(ev)
	registerMatchBuiltins(ev)
	registerLazyBuiltins(ev)
}

// nativeFn builds a *Function wrapping a native Go implementation with the
// given arity: fixed required parameters, optional further parameters
// (padded with Nil when absent), and whether a trailing rest argument
// collects anything beyond fixed+optional.
func nativeFn(name string, fixed, optional int, variadic bool, fn BuiltinFn) *Function {
	return &Function{
		Name:         name,
		Builtin:      fn,
		FixedParams:  fixed,
		OptionalArgs: optional,
		Variadic:     variadic,
	}
}

func registerCoreBuiltins(ev *Evaluator) {
	def := func(name string, fixed, optional int, variadic bool, fn BuiltinFn) {
		ev.Top.DefFun(Sym(name), nativeFn(name, fixed, optional, variadic, fn))
	}

	def("cons", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		return NewCons(a[0], a[1]), nil
	})
	def("make-lazy-cons", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		thunkFn := a[0]
		return NewLazyCons(func() (Value, Value) {
			pair, err := ev.Apply(thunkFn, nil)
			if err != nil {
				panic(err)
			}
			c, ok := pair.(*Cons)
			if !ok {
				panic(newTypeError("make-lazy-cons: thunk must return a (car . cdr) pair"))
			}
			c.Force()
			return c.Car, c.Cdr
		}), nil
	})
	def("string", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		items, tail := ListToSlice(a[0])
		if !IsNil(tail) {
			return Nil, newTypeError("string: improper list")
		}
		runes := make([]rune, len(items))
		for i, it := range items {
			c, ok := it.(Character)
			if !ok {
				return Nil, newTypeError("string: expected a list of characters")
			}
			runes[i] = rune(c)
		}
		return &StringObj{Runes: runes}, nil
	})
	def("car", 1, 0, false, biCar)
	def("cdr", 1, 0, false, biCdr)
	def("first", 1, 0, false, biCar)
	def("rest", 1, 0, false, biCdr)
	for i, name := range []string{"second", "third", "fourth", "fifth", "sixth"} {
		n := i + 1
		def(name, 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
			items, tail := ListToSlice(a[0])
			if n >= len(items) {
				if !IsNil(tail) {
					return Nil, newTypeError("%s: improper list", name)
				}
				return Nil, nil
			}
			return items[n], nil
		})
	}
	def("rplaca", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		c, ok := a[0].(*Cons)
		if !ok {
			return Nil, newTypeError("rplaca: not a cons")
		}
		c.Force()
		c.Car = a[1]
		return c, nil
	})
	def("rplacd", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		c, ok := a[0].(*Cons)
		if !ok {
			return Nil, newTypeError("rplacd: not a cons")
		}
		c.Force()
		c.Cdr = a[1]
		return c, nil
	})
	def("list", 0, 0, true, func(ev *Evaluator, a []Value) (Value, error) {
		rest, _ := ListToSlice(a[0])
		return List(rest...), nil
	})
	def("append", 0, 0, true, biAppend)
	def("list-vector", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		items, tail := ListToSlice(a[0])
		if !IsNil(tail) {
			return Nil, newTypeError("list-vector: improper list")
		}
		return NewVector(items...), nil
	})
	def("reverse", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		items, tail := ListToSlice(a[0])
		if !IsNil(tail) {
			return Nil, newTypeError("reverse: improper list")
		}
		out := make([]Value, len(items))
		for i, v := range items {
			out[len(items)-1-i] = v
		}
		return List(out...), nil
	})
	def("length", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		n, err := Length(a[0])
		if err != nil {
			return Nil, err
		}
		return Integer(n), nil
	})
	def("type", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		return Sym(TypeOf(a[0])), nil
	})

	def("consp", 1, 0, false, typePredicate(func(v Value) bool { _, ok := v.(*Cons); return ok }))
	def("symbolp", 1, 0, false, typePredicate(func(v Value) bool { _, ok := v.(*Symbol); return ok }))
	def("stringp", 1, 0, false, typePredicate(func(v Value) bool { _, ok := v.(*StringObj); return ok }))
	def("vectorp", 1, 0, false, typePredicate(func(v Value) bool { _, ok := v.(*Vector); return ok }))
	def("hashp", 1, 0, false, typePredicate(func(v Value) bool { _, ok := v.(*Hash); return ok }))
	def("functionp", 1, 0, false, typePredicate(func(v Value) bool { _, ok := v.(*Function); return ok }))
	def("characterp", 1, 0, false, typePredicate(func(v Value) bool { _, ok := v.(Character); return ok }))
	def("integerp", 1, 0, false, typePredicate(func(v Value) bool { _, ok := v.(Integer); return ok }))
	def("nullp", 1, 0, false, typePredicate(IsNil))

	def("eq", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) { return Bool(Eq(a[0], a[1])), nil })
	def("eql", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) { return Bool(Eql(a[0], a[1])), nil })
	def("equal", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) { return Bool(Equal(a[0], a[1])), nil })
	def("not", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) { return Bool(!Truthy(a[0])), nil })

	registerNumericBuiltins(ev, def)

	def("apply", 1, 0, true, func(ev *Evaluator, a []Value) (Value, error) {
		fn := a[0]
		rest, _ := ListToSlice(a[1])
		if len(rest) == 0 {
			return ev.Apply(fn, nil)
		}
		fixedArgs := rest[:len(rest)-1]
		tailArgs, tail := ListToSlice(rest[len(rest)-1])
		if !IsNil(tail) {
			return Nil, newTypeError("apply: final argument is not a proper list")
		}
		callArgs := append(append([]Value{}, fixedArgs...), tailArgs...)
		return ev.Apply(fn, callArgs)
	})
	def("throw", 0, 0, true, func(ev *Evaluator, a []Value) (Value, error) {
		rest, _ := ListToSlice(a[0])
		if len(rest) == 0 {
			return Nil, newEvalError("throw: missing tag")
		}
		Throw(rest[0], rest[1:])
		return Nil, nil // unreachable: Throw always panics
	})
	def("error", 0, 0, true, func(ev *Evaluator, a []Value) (Value, error) {
		args, _ := ListToSlice(a[0])
		if len(args) == 0 {
			return Nil, newEvalError("error")
		}
		return Nil, newEvalError("%s", PrintDisplay(args[0]))
	})
}

// typePredicate adapts a Go predicate over a single Value into a one-arg
// builtin returning t/nil.
func typePredicate(p func(Value) bool) BuiltinFn {
	return func(ev *Evaluator, a []Value) (Value, error) {
		return Bool(p(a[0])), nil
	}
}

// biCar and biCdr force a lazy cons on access, per spec.md §4.1: car/cdr of
// nil is nil (not an error), matching list-processing convention.
func biCar(ev *Evaluator, a []Value) (Value, error) {
	switch v := a[0].(type) {
	case nilT:
		return Nil, nil
	case *Cons:
		v.Force()
		return v.Car, nil
	default:
		return Nil, newTypeError("car: not a list: %s", PrintRepr(v))
	}
}

func biCdr(ev *Evaluator, a []Value) (Value, error) {
	switch v := a[0].(type) {
	case nilT:
		return Nil, nil
	case *Cons:
		v.Force()
		return v.Cdr, nil
	default:
		return Nil, newTypeError("cdr: not a list: %s", PrintRepr(v))
	}
}

// biAppend concatenates zero or more lists, sharing structure with the
// final argument (which need not be a proper list) the way Lisp append
// traditionally does.
func biAppend(ev *Evaluator, a []Value) (Value, error) {
	lists, _ := ListToSlice(a[0])
	if len(lists) == 0 {
		return Nil, nil
	}
	var items []Value
	for _, l := range lists[:len(lists)-1] {
		elems, tail := ListToSlice(l)
		if !IsNil(tail) {
			return Nil, newTypeError("append: improper list in non-final argument")
		}
		items = append(items, elems...)
	}
	last := lists[len(lists)-1]
	var out Value = last
	for i := len(items) - 1; i >= 0; i-- {
		out = NewCons(items[i], out)
	}
	return out, nil
}
