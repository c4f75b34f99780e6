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

// Location is a first-class reference to a mutable cell, the engine's
// stand-in for the collaborator runtime's obj_t** places (spec.md §9
// DESIGN NOTES). set/inc/dec/push/pop/flip/del all resolve their place
// argument to a Location and operate on it uniformly.
type Location interface {
	Get() (Value, error)
	Set(Value) error
}

// Deleter is implemented by locations that support `del`.
type Deleter interface {
	Del() (Value, error)
}

// resolvePlace resolves a syntactic place form to a Location, dispatching
// on its shape: a bindable symbol, (car x), (cdr x), (gethash h k
// [dflt]), (vecref v i), or (dwim obj idx [idx2]).
func (ev *Evaluator) resolvePlace(placeForm Value, env *Env) (Location, error) {
	if sym, ok := placeForm.(*Symbol); ok {
		if !sym.Bindable() {
			return nil, newEvalError("place: non-bindable symbol: %s", sym.Name)
		}
		return &varLocation{ev: ev, env: env, sym: sym}, nil
	}
	cons, ok := placeForm.(*Cons)
	if !ok || IsNil(placeForm) {
		return nil, newEvalError("place: not a recognised place form: %s", PrintRepr(placeForm))
	}
	cons.Force()
	head, ok := cons.Car.(*Symbol)
	if !ok {
		return nil, newEvalError("place: not a recognised place form: %s", PrintRepr(placeForm))
	}
	rest, _ := ListToSlice(cons.Cdr)
	switch head.Name {
	case "car", "cdr":
		if len(rest) != 1 {
			return nil, newEvalError("place: %s expects one argument", head.Name)
		}
		v, err := ev.Eval(rest[0], env)
		if err != nil {
			return nil, err
		}
		target, ok := v.(*Cons)
		if !ok {
			return nil, newTypeError("place: %s: not a cons: %s", head.Name, PrintRepr(v))
		}
		target.Force()
		if head.Name == "car" {
			return &carLocation{target}, nil
		}
		return &cdrLocation{target}, nil
	case "gethash":
		if len(rest) < 2 || len(rest) > 3 {
			return nil, newEvalError("place: gethash expects (h k [dflt])")
		}
		hv, err := ev.Eval(rest[0], env)
		if err != nil {
			return nil, err
		}
		h, ok := hv.(*Hash)
		if !ok {
			return nil, newTypeError("place: gethash: not a hash: %s", PrintRepr(hv))
		}
		kv, err := ev.Eval(rest[1], env)
		if err != nil {
			return nil, err
		}
		loc := &hashLocation{h: h, key: kv}
		if len(rest) == 3 {
			dv, err := ev.Eval(rest[2], env)
			if err != nil {
				return nil, err
			}
			loc.hasDefault = true
			loc.dflt = dv
		}
		return loc, nil
	case "vecref":
		if len(rest) != 2 {
			return nil, newEvalError("place: vecref expects (v i)")
		}
		vv, err := ev.Eval(rest[0], env)
		if err != nil {
			return nil, err
		}
		vec, ok := vv.(*Vector)
		if !ok {
			return nil, newTypeError("place: vecref: not a vector: %s", PrintRepr(vv))
		}
		iv, err := ev.Eval(rest[1], env)
		if err != nil {
			return nil, err
		}
		idx, ok := iv.(Integer)
		if !ok {
			return nil, newTypeError("place: vecref: index not an integer")
		}
		return &vecLocation{vec: vec, idx: int(idx)}, nil
	case "dwim":
		if len(rest) < 2 {
			return nil, newEvalError("place: dwim expects (obj idx...)")
		}
		return ev.resolveDwimPlace(rest[0], rest[1:], env)
	default:
		return nil, newEvalError("place: not a recognised place form: %s", PrintRepr(placeForm))
	}
}

// varLocation addresses a variable binding's cell, in the environment
// chain, the ordinary top-level table, or a C-backed accessor pair.
type varLocation struct {
	ev  *Evaluator
	env *Env
	sym *Symbol
}

func (l *varLocation) Get() (Value, error) {
	if v, ok := l.ev.lookupVariable(l.env, l.sym); ok {
		return v, nil
	}
	return Nil, newEvalError("unbound variable: %s", l.sym.Name)
}

func (l *varLocation) Set(v Value) error {
	if l.env != nil {
		if cell, ok := l.env.findVar(l.sym); ok {
			*cell = v
			return nil
		}
	}
	if l.ev.Top.SetVar(l.sym, v) {
		return nil
	}
	return newEvalError("unbound variable: %s", l.sym.Name)
}

type carLocation struct{ c *Cons }

func (l *carLocation) Get() (Value, error) { l.c.Force(); return l.c.Car, nil }
func (l *carLocation) Set(v Value) error   { l.c.Force(); l.c.Car = v; return nil }

type cdrLocation struct{ c *Cons }

func (l *cdrLocation) Get() (Value, error) { l.c.Force(); return l.c.Cdr, nil }
func (l *cdrLocation) Set(v Value) error   { l.c.Force(); l.c.Cdr = v; return nil }

// hashLocation addresses one key's slot. If absent and hasDefault is set,
// Get first populates the slot with dflt, matching spec.md §4.4.
type hashLocation struct {
	h          *Hash
	key        Value
	hasDefault bool
	dflt       Value
}

func (l *hashLocation) Get() (Value, error) {
	if v, ok := l.h.Get(l.key); ok {
		return v, nil
	}
	if l.hasDefault {
		l.h.Set(l.key, l.dflt)
		return l.dflt, nil
	}
	return Nil, nil
}

func (l *hashLocation) Set(v Value) error {
	l.h.Set(l.key, v)
	return nil
}

func (l *hashLocation) Del() (Value, error) {
	old, _ := l.h.Del(l.key)
	return old, nil
}

type vecLocation struct {
	vec *Vector
	idx int
}

func (l *vecLocation) normIdx() (int, error) {
	i := l.idx
	if i < 0 {
		i += len(l.vec.Items)
	}
	if i < 0 || i >= len(l.vec.Items) {
		return 0, newRangeError("vector index out of range: %d", l.idx)
	}
	return i, nil
}

func (l *vecLocation) Get() (Value, error) {
	i, err := l.normIdx()
	if err != nil {
		return Nil, err
	}
	return l.vec.Items[i], nil
}

func (l *vecLocation) Set(v Value) error {
	i, err := l.normIdx()
	if err != nil {
		return err
	}
	l.vec.Items[i] = v
	return nil
}

func (l *vecLocation) Del() (Value, error) {
	i, err := l.normIdx()
	if err != nil {
		return Nil, err
	}
	old := l.vec.Items[i]
	l.vec.Items = append(l.vec.Items[:i], l.vec.Items[i+1:]...)
	return old, nil
}

// --- place operators: set, inc, dec, push, pop, flip, del ---

func placeOpSet(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
	if len(args) != 2 {
		return Nil, newEvalError("set: expects (place value)")
	}
	loc, err := ev.resolvePlace(args[0], env)
	if err != nil {
		return Nil, err
	}
	v, err := ev.Eval(args[1], env)
	if err != nil {
		return Nil, err
	}
	if err := loc.Set(v); err != nil {
		return Nil, err
	}
	return v, nil
}

func numericDelta(ev *Evaluator, args []Value, env *Env, defaultDelta int64) (int64, error) {
	if len(args) < 2 {
		return defaultDelta, nil
	}
	v, err := ev.Eval(args[1], env)
	if err != nil {
		return 0, err
	}
	i, ok := v.(Integer)
	if !ok {
		return 0, newTypeError("inc/dec: delta not an integer")
	}
	return int64(i), nil
}

func placeOpInc(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
	if len(args) < 1 {
		return Nil, newEvalError("inc: expects (place [delta])")
	}
	loc, err := ev.resolvePlace(args[0], env)
	if err != nil {
		return Nil, err
	}
	cur, err := loc.Get()
	if err != nil {
		return Nil, err
	}
	curI, ok := cur.(Integer)
	if !ok {
		return Nil, newTypeError("inc: place is not an integer: %s", PrintRepr(cur))
	}
	delta, err := numericDelta(ev, args, env, 1)
	if err != nil {
		return Nil, err
	}
	newV := Integer(int64(curI) + delta)
	if err := loc.Set(newV); err != nil {
		return Nil, err
	}
	return newV, nil
}

func placeOpDec(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
	if len(args) < 1 {
		return Nil, newEvalError("dec: expects (place [delta])")
	}
	loc, err := ev.resolvePlace(args[0], env)
	if err != nil {
		return Nil, err
	}
	cur, err := loc.Get()
	if err != nil {
		return Nil, err
	}
	curI, ok := cur.(Integer)
	if !ok {
		return Nil, newTypeError("dec: place is not an integer: %s", PrintRepr(cur))
	}
	delta, err := numericDelta(ev, args, env, 1)
	if err != nil {
		return Nil, err
	}
	newV := Integer(int64(curI) - delta)
	if err := loc.Set(newV); err != nil {
		return Nil, err
	}
	return newV, nil
}

// placeOpPush implements `push value place`: note the value comes first and
// the place second, unlike the rest of the place-taking family (preserved
// deliberately, spec.md §9 Open Questions).
func placeOpPush(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
	if len(args) != 2 {
		return Nil, newEvalError("push: expects (value place)")
	}
	v, err := ev.Eval(args[0], env)
	if err != nil {
		return Nil, err
	}
	loc, err := ev.resolvePlace(args[1], env)
	if err != nil {
		return Nil, err
	}
	cur, err := loc.Get()
	if err != nil {
		return Nil, err
	}
	newList := NewCons(v, cur)
	if err := loc.Set(newList); err != nil {
		return Nil, err
	}
	return newList, nil
}

func placeOpPop(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
	if len(args) != 1 {
		return Nil, newEvalError("pop: expects (place)")
	}
	loc, err := ev.resolvePlace(args[0], env)
	if err != nil {
		return Nil, err
	}
	cur, err := loc.Get()
	if err != nil {
		return Nil, err
	}
	c, ok := cur.(*Cons)
	if !ok {
		return Nil, newTypeError("pop: place is not a list: %s", PrintRepr(cur))
	}
	c.Force()
	if err := loc.Set(c.Cdr); err != nil {
		return Nil, err
	}
	return c.Car, nil
}

func placeOpFlip(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
	if len(args) != 1 {
		return Nil, newEvalError("flip: expects (place)")
	}
	loc, err := ev.resolvePlace(args[0], env)
	if err != nil {
		return Nil, err
	}
	cur, err := loc.Get()
	if err != nil {
		return Nil, err
	}
	newV := Bool(!Truthy(cur))
	if err := loc.Set(newV); err != nil {
		return Nil, err
	}
	return newV, nil
}

func placeOpDel(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
	if len(args) != 1 {
		return Nil, newEvalError("del: expects (place)")
	}
	loc, err := ev.resolvePlace(args[0], env)
	if err != nil {
		return Nil, err
	}
	del, ok := loc.(Deleter)
	if !ok {
		return Nil, newEvalError("del: not supported on this place")
	}
	return del.Del()
}
