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

// specialFormDwim implements the generalised indexing/apply form `[obj
// args...]`, lowered by the expander to `(dwim obj args...)`. The object
// position is resolved with Lisp-1 lookup, since [f x y] must find f
// whether bound as a variable or a function (spec.md §4.3).
func specialFormDwim(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
	if len(args) < 1 {
		return Nil, newEvalError("dwim: missing object")
	}
	obj, err := ev.EvalLisp1(args[0], env)
	if err != nil {
		return Nil, err
	}
	if fn, ok := obj.(*Function); ok {
		callArgs, err := evalDwimArgForms(ev, args[1:], env)
		if err != nil {
			return Nil, err
		}
		return ev.Apply(fn, callArgs)
	}
	idxVals, err := evalDwimArgForms(ev, args[1:], env)
	if err != nil {
		return Nil, err
	}
	return dwimRead(obj, idxVals)
}

// evalDwimArgForms evaluates dwim argument forms left to right. A form
// shaped `(sys:rest-splice s)` -- generated by the `op` expander for a
// referenced or auto-appended `@rest` -- evaluates s and splices its
// elements into the result instead of contributing s's value as a single
// argument.
func evalDwimArgForms(ev *Evaluator, forms []Value, env *Env) ([]Value, error) {
	var out []Value
	for _, f := range forms {
		if c, ok := f.(*Cons); ok {
			c.Force()
			if sym, ok := c.Car.(*Symbol); ok && sym == SysSym("rest-splice") {
				rest, tail := ListToSlice(c.Cdr)
				if len(rest) == 1 && IsNil(tail) {
					v, err := ev.Eval(rest[0], env)
					if err != nil {
						return nil, err
					}
					items, listTail := ListToSlice(v)
					if !IsNil(listTail) {
						return nil, newTypeError("dwim: rest splice value is not a proper list")
					}
					out = append(out, items...)
					continue
				}
			}
		}
		v, err := ev.Eval(f, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// dwimRead implements the read side of §4.4's dwim dispatch.
func dwimRead(obj Value, idx []Value) (Value, error) {
	if len(idx) == 0 {
		return Nil, newEvalError("dwim: missing index")
	}
	switch v := obj.(type) {
	case *StringObj:
		from, to, isRange, err := singleIndexOrRange(idx[0], v.Len())
		if err != nil {
			return Nil, err
		}
		if isRange {
			return NewString(string(v.Runes[from:to])), nil
		}
		return Character(v.Runes[from]), nil
	case *Vector:
		from, to, isRange, err := singleIndexOrRange(idx[0], len(v.Items))
		if err != nil {
			return Nil, err
		}
		if isRange {
			return NewVector(v.Items[from:to]...), nil
		}
		return v.Items[from], nil
	case *Cons:
		items, _ := ListToSlice(v)
		from, to, isRange, err := singleIndexOrRange(idx[0], len(items))
		if err != nil {
			return Nil, err
		}
		if isRange {
			return List(items[from:to]...), nil
		}
		return items[from], nil
	case nilT:
		return Nil, newRangeError("index out of range on empty list")
	case *Hash:
		val, found := v.Get(idx[0])
		if found {
			return val, nil
		}
		if len(idx) > 1 {
			return idx[1], nil
		}
		return Nil, nil
	default:
		return Nil, newTypeError("dwim: cannot index a %s", obj.typeName())
	}
}

// resolveDwimPlace implements the assignable side of §4.4's dwim dispatch.
// Vectors, strings, and hashes are reference types and are mutated
// in-place; list containers are addressed either by direct cons mutation
// (single index) or, for ranges (which may reshape or change the list's
// head), by recursively resolving objForm's own place and reassigning it
// wholesale -- the "container symbol is re-bound via a recursive modplace"
// technique spec.md §4.4 calls for.
func (ev *Evaluator) resolveDwimPlace(objForm Value, idxForms []Value, env *Env) (Location, error) {
	obj, err := ev.EvalLisp1(objForm, env)
	if err != nil {
		return nil, err
	}
	idxVals := make([]Value, 0, len(idxForms))
	for _, f := range idxForms {
		v, err := ev.Eval(f, env)
		if err != nil {
			return nil, err
		}
		idxVals = append(idxVals, v)
	}
	if len(idxVals) == 0 {
		return nil, newEvalError("dwim place: missing index")
	}
	switch v := obj.(type) {
	case *StringObj:
		return &dwimStringLocation{s: v, idx: idxVals[0]}, nil
	case *Vector:
		return &dwimVectorLocation{v: v, idx: idxVals[0]}, nil
	case *Hash:
		loc := &hashLocation{h: v, key: idxVals[0]}
		if len(idxVals) > 1 {
			loc.hasDefault = true
			loc.dflt = idxVals[1]
		}
		return loc, nil
	case *Cons, nilT:
		return &dwimListLocation{ev: ev, env: env, objForm: objForm, idx: idxVals[0]}, nil
	default:
		return nil, newTypeError("dwim place: cannot assign into a %s", obj.typeName())
	}
}

type dwimStringLocation struct {
	s   *StringObj
	idx Value
}

func (l *dwimStringLocation) Get() (Value, error) { return dwimRead(l.s, []Value{l.idx}) }

func (l *dwimStringLocation) Set(v Value) error {
	from, to, isRange, err := singleIndexOrRange(l.idx, l.s.Len())
	if err != nil {
		return err
	}
	var repl []rune
	switch rv := v.(type) {
	case Character:
		repl = []rune{rune(rv)}
	case *StringObj:
		repl = rv.Runes
	default:
		return newTypeError("string place: value must be a character or string")
	}
	if !isRange && len(repl) != 1 {
		return newTypeError("string place: single index requires a character")
	}
	out := make([]rune, 0, len(l.s.Runes)-(to-from)+len(repl))
	out = append(out, l.s.Runes[:from]...)
	out = append(out, repl...)
	out = append(out, l.s.Runes[to:]...)
	l.s.Runes = out
	return nil
}

func (l *dwimStringLocation) Del() (Value, error) {
	from, to, _, err := singleIndexOrRange(l.idx, l.s.Len())
	if err != nil {
		return Nil, err
	}
	removed := NewString(string(l.s.Runes[from:to]))
	l.s.Runes = append(l.s.Runes[:from:from], l.s.Runes[to:]...)
	return removed, nil
}

type dwimVectorLocation struct {
	v   *Vector
	idx Value
}

func (l *dwimVectorLocation) Get() (Value, error) { return dwimRead(l.v, []Value{l.idx}) }

func (l *dwimVectorLocation) Set(v Value) error {
	from, to, isRange, err := singleIndexOrRange(l.idx, len(l.v.Items))
	if err != nil {
		return err
	}
	if !isRange {
		l.v.Items[from] = v
		return nil
	}
	var repl []Value
	switch rv := v.(type) {
	case *Vector:
		repl = rv.Items
	case *Cons, nilT:
		repl, _ = ListToSlice(rv)
	default:
		return newTypeError("vector place: range value must be a vector or list")
	}
	out := make([]Value, 0, len(l.v.Items)-(to-from)+len(repl))
	out = append(out, l.v.Items[:from]...)
	out = append(out, repl...)
	out = append(out, l.v.Items[to:]...)
	l.v.Items = out
	return nil
}

func (l *dwimVectorLocation) Del() (Value, error) {
	from, to, _, err := singleIndexOrRange(l.idx, len(l.v.Items))
	if err != nil {
		return Nil, err
	}
	removed := NewVector(l.v.Items[from:to]...)
	l.v.Items = append(l.v.Items[:from:from], l.v.Items[to:]...)
	if to-from == 1 {
		return removed.Items[0], nil
	}
	return removed, nil
}

// dwimListLocation addresses a list element or sub-range by recomputing
// the whole list and re-assigning it through the object form's own place.
type dwimListLocation struct {
	ev      *Evaluator
	env     *Env
	objForm Value
	idx     Value
}

func (l *dwimListLocation) current() ([]Value, error) {
	obj, err := l.ev.EvalLisp1(l.objForm, l.env)
	if err != nil {
		return nil, err
	}
	items, tail := ListToSlice(obj)
	if !IsNil(tail) {
		return nil, newTypeError("list place: improper list")
	}
	return items, nil
}

func (l *dwimListLocation) Get() (Value, error) {
	items, err := l.current()
	if err != nil {
		return Nil, err
	}
	from, to, isRange, err := singleIndexOrRange(l.idx, len(items))
	if err != nil {
		return Nil, err
	}
	if isRange {
		return List(items[from:to]...), nil
	}
	return items[from], nil
}

func (l *dwimListLocation) Set(v Value) error {
	items, err := l.current()
	if err != nil {
		return err
	}
	from, to, isRange, err := singleIndexOrRange(l.idx, len(items))
	if err != nil {
		return err
	}
	var repl []Value
	if isRange {
		switch rv := v.(type) {
		case *Vector:
			repl = rv.Items
		case *Cons, nilT:
			repl, _ = ListToSlice(rv)
		default:
			return newTypeError("list place: range value must be a list or vector")
		}
	} else {
		repl = []Value{v}
	}
	out := make([]Value, 0, len(items)-(to-from)+len(repl))
	out = append(out, items[:from]...)
	out = append(out, repl...)
	out = append(out, items[to:]...)
	place, err := l.ev.resolvePlace(l.objForm, l.env)
	if err != nil {
		return err
	}
	return place.Set(List(out...))
}

func (l *dwimListLocation) Del() (Value, error) {
	items, err := l.current()
	if err != nil {
		return Nil, err
	}
	from, to, isRange, err := singleIndexOrRange(l.idx, len(items))
	if err != nil {
		return Nil, err
	}
	removed := List(items[from:to]...)
	out := make([]Value, 0, len(items)-(to-from))
	out = append(out, items[:from]...)
	out = append(out, items[to:]...)
	place, err := l.ev.resolvePlace(l.objForm, l.env)
	if err != nil {
		return Nil, err
	}
	if err := place.Set(List(out...)); err != nil {
		return Nil, err
	}
	if !isRange {
		return removed.(*Cons).Car, nil
	}
	return removed, nil
}
