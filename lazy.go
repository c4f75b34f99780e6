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

// This file implements the lazy-sequence builtins (generate, range, range*,
// repeat, force). generate/range/range* build chains of *Cons whose Thunk
// computes one more element on demand (value.go's NewLazyCons/Force); force
// implements the unrelated explicit-promise encoding that `delay` produces:
// a `(cons 'promise thunk-fn)` pair, forced by calling the thunk once and
// overwriting the pair in place.
//
// A thunk built here that needs to report an error (the predicate or
// generator function itself erroring) panics with the *LispError rather
// than returning one, since value.go's Thunk signature has no error
// result. This is not a special case: it is the same non-local unwind the
// rest of the evaluator already uses for throw/return-from, so an active
// unwind-protect or catch still fires correctly around a Force call that
// triggers it. The outermost boundaries (LoadString/LoadFile, the REPL)
// recover any *LispError panic and turn it back into a plain error.

func registerLazyBuiltins(ev *Evaluator) {
	ev.Top.DefFun(Sym("generate"), nativeFn("generate", 2, 0, false, biGenerate))
	ev.Top.DefFun(Sym("range"), nativeFn("range", 0, 3, false, biRange(false)))
	ev.Top.DefFun(Sym("range*"), nativeFn("range*", 0, 3, false, biRange(true)))
	ev.Top.DefFun(Sym("repeat"), nativeFn("repeat", 1, 1, false, biRepeat))
	ev.Top.DefFun(Sym("force"), nativeFn("force", 1, 0, false, biForce))
}

// biGenerate implements `generate(while-pred, gen-fun)`: calls while-pred;
// if false returns nil, else calls gen-fun once and returns a lazy cons
// whose car is that value and whose cdr forces the next step the same way.
func biGenerate(ev *Evaluator, args []Value) (Value, error) {
	return generateStep(ev, args[0], args[1])
}

func generateStep(ev *Evaluator, whilePred, genFun Value) (Value, error) {
	ok, err := ev.Apply(whilePred, nil)
	if err != nil {
		return Nil, err
	}
	if !Truthy(ok) {
		return Nil, nil
	}
	val, err := ev.Apply(genFun, nil)
	if err != nil {
		return Nil, err
	}
	return NewLazyCons(func() (Value, Value) {
		next, err := generateStep(ev, whilePred, genFun)
		if err != nil {
			panic(err)
		}
		return val, next
	}), nil
}

// biRange builds `range(from, to, step)` (or, when exclusive is true,
// `range*`). to may be Nil for an open-ended (infinite) range. step may be
// an Integer or a one-argument function mapping the current value to the
// next; it defaults to 1, or -1 when from is past to and no step was
// given. An from/to pair that is eql-equal yields a one-element sequence
// for range, or an empty one for range*.
func biRange(exclusive bool) BuiltinFn {
	return func(ev *Evaluator, args []Value) (Value, error) {
		from := Value(Integer(0))
		if len(args) > 0 && !IsNil(args[0]) {
			from = args[0]
		}
		var to Value = Nil
		if len(args) > 1 {
			to = args[1]
		}
		var step Value
		if len(args) > 2 && !IsNil(args[2]) {
			step = args[2]
		}
		return rangeStep(ev, from, to, step, exclusive)
	}
}

func rangeStep(ev *Evaluator, from, to, step Value, exclusive bool) (Value, error) {
	if !IsNil(to) {
		fi, ok1 := from.(Integer)
		ti, ok2 := to.(Integer)
		if ok1 && ok2 && step == nil {
			if fi == ti {
				if exclusive {
					return Nil, nil
				}
				return List(from), nil
			}
			if fi > ti {
				step = Integer(-1)
			}
		}
		if Eql(from, to) && exclusive {
			return Nil, nil
		}
		done, err := rangeDone(from, to, step)
		if err != nil {
			return Nil, err
		}
		if done {
			return Nil, nil
		}
	}
	nextVal, err := rangeNext(ev, from, step)
	if err != nil {
		return Nil, err
	}
	return NewLazyCons(func() (Value, Value) {
		rest, err := rangeStep(ev, nextVal, to, step, exclusive)
		if err != nil {
			panic(err)
		}
		return from, rest
	}), nil
}

func rangeDone(from, to Value, step Value) (bool, error) {
	fi, ok1 := from.(Integer)
	ti, ok2 := to.(Integer)
	if !ok1 || !ok2 {
		return false, nil
	}
	if step == nil {
		step = Integer(1)
	}
	si, ok := step.(Integer)
	if !ok {
		return false, nil
	}
	if si >= 0 {
		return fi > ti, nil
	}
	return fi < ti, nil
}

func rangeNext(ev *Evaluator, from, step Value) (Value, error) {
	if step == nil {
		step = Integer(1)
	}
	if fn, ok := step.(*Function); ok {
		return ev.Apply(fn, []Value{from})
	}
	fi, ok1 := from.(Integer)
	si, ok2 := step.(Integer)
	if !ok1 || !ok2 {
		return Nil, newTypeError("range: step must be an integer or a function")
	}
	return fi + si, nil
}

// biRepeat implements `repeat(list, [n])`: cycles list forever if n is
// absent, n times otherwise. An empty list repeats to an empty list.
func biRepeat(ev *Evaluator, args []Value) (Value, error) {
	items, tail := ListToSlice(args[0])
	if !IsNil(tail) {
		return Nil, newTypeError("repeat: not a proper list")
	}
	if len(items) == 0 {
		return Nil, nil
	}
	n := -1
	if len(args) > 1 && !IsNil(args[1]) {
		ni, ok := args[1].(Integer)
		if !ok {
			return Nil, newTypeError("repeat: count must be an integer")
		}
		n = int(ni)
	}
	return repeatFrom(items, 0, n), nil
}

func repeatFrom(items []Value, pos, remaining int) Value {
	if remaining == 0 {
		return Nil
	}
	if pos == len(items) {
		if remaining < 0 {
			return repeatFrom(items, 0, remaining)
		}
		return repeatFrom(items, 0, remaining-1)
	}
	nextRemaining := remaining
	return NewLazyCons(func() (Value, Value) {
		return items[pos], repeatFrom(items, pos+1, nextRemaining)
	})
}

// biForce implements the explicit promise encoding `delay` builds:
// `(cons 'promise thunk-fn)`. Forcing a cons whose car is the `promise`
// sentinel calls the thunk in cdr, stores the result back into cdr, and
// flips car to nil; any other cons (including an already-forced promise)
// returns cdr unchanged, making force idempotent. A non-cons argument is
// returned as-is: forcing a non-promise value is a no-op.
func biForce(ev *Evaluator, args []Value) (Value, error) {
	p := args[0]
	c, ok := p.(*Cons)
	if !ok {
		return p, nil
	}
	c.Force()
	sentinel, ok := c.Car.(*Symbol)
	if !ok || sentinel != Sym("promise") {
		return c.Cdr, nil
	}
	val, err := ev.Apply(c.Cdr, nil)
	if err != nil {
		return Nil, err
	}
	c.Car = Nil
	c.Cdr = val
	return val, nil
}
