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

// registerCollectionBuiltins installs vector, hash, and sub-range/replace
// builtins (spec.md §4.1, §9): constructors, mutators, the sub/sub-str/
// sub-vec/sub-list family of half-open-range readers, the replace family
// of half-open-range writers, and the getplist/getplist-def plist
// accessors over a rest argument list.
func registerCollectionBuiltins(ev *Evaluator) {
	def := func(name string, fixed, optional int, variadic bool, fn BuiltinFn) {
		ev.Top.DefFun(Sym(name), nativeFn(name, fixed, optional, variadic, fn))
	}

	def("vector", 0, 0, true, func(ev *Evaluator, a []Value) (Value, error) {
		items, _ := ListToSlice(a[0])
		return NewVector(items...), nil
	})
	def("vecref", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		v, ok := a[0].(*Vector)
		if !ok {
			return Nil, newTypeError("vecref: not a vector")
		}
		i, ok := a[1].(Integer)
		if !ok {
			return Nil, newTypeError("vecref: index not an integer")
		}
		idx, err := normIndex(int(i), len(v.Items))
		if err != nil || idx >= len(v.Items) {
			return Nil, newRangeError("vecref: index out of range: %d", i)
		}
		return v.Items[idx], nil
	})
	def("vec-set-length", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		v, ok := a[0].(*Vector)
		if !ok {
			return Nil, newTypeError("vec-set-length: not a vector")
		}
		n, ok := a[1].(Integer)
		if !ok || n < 0 {
			return Nil, newTypeError("vec-set-length: length not a non-negative integer")
		}
		switch {
		case int(n) <= len(v.Items):
			v.Items = v.Items[:n]
		default:
			grown := make([]Value, n)
			copy(grown, v.Items)
			for i := len(v.Items); i < int(n); i++ {
				grown[i] = Nil
			}
			v.Items = grown
		}
		return v, nil
	})
	def("vec-push", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		v, ok := a[0].(*Vector)
		if !ok {
			return Nil, newTypeError("vec-push: not a vector")
		}
		v.Items = append(v.Items, a[1])
		return v, nil
	})

	def("make-hash", 3, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		h := MakeHash(Truthy(a[1]))
		h.Weak = Truthy(a[0])
		return h, nil
	})
	def("gethash", 2, 1, false, func(ev *Evaluator, a []Value) (Value, error) {
		h, ok := a[0].(*Hash)
		if !ok {
			return Nil, newTypeError("gethash: not a hash")
		}
		if v, found := h.Get(a[1]); found {
			return v, nil
		}
		return a[2], nil
	})
	def("sethash", 3, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		h, ok := a[0].(*Hash)
		if !ok {
			return Nil, newTypeError("sethash: not a hash")
		}
		h.Set(a[1], a[2])
		return a[2], nil
	})
	def("remhash", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		h, ok := a[0].(*Hash)
		if !ok {
			return Nil, newTypeError("remhash: not a hash")
		}
		old, _ := h.Del(a[1])
		return old, nil
	})
	def("hash-keys", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		h, ok := a[0].(*Hash)
		if !ok {
			return Nil, newTypeError("hash-keys: not a hash")
		}
		var keys []Value
		h.Each(func(k, _ Value) bool { keys = append(keys, k); return true })
		return List(keys...), nil
	})

	def("chr-str-set", 3, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		s, ok := a[0].(*StringObj)
		if !ok {
			return Nil, newTypeError("chr-str-set: not a string")
		}
		i, ok := a[1].(Integer)
		if !ok {
			return Nil, newTypeError("chr-str-set: index not an integer")
		}
		c, ok := a[2].(Character)
		if !ok {
			return Nil, newTypeError("chr-str-set: not a character")
		}
		idx, err := normIndex(int(i), s.Len())
		if err != nil || idx >= s.Len() {
			return Nil, newRangeError("chr-str-set: index out of range: %d", i)
		}
		s.Runes[idx] = rune(c)
		return c, nil
	})

	def("sub", 2, 1, false, biSub)
	def("sub-str", 2, 1, false, biSub)
	def("sub-vec", 2, 1, false, biSub)
	def("sub-list", 2, 1, false, biSub)

	def("replace", 2, 2, false, biReplace)
	def("replace-str", 2, 2, false, biReplace)
	def("replace-vec", 2, 2, false, biReplace)
	def("replace-list", 2, 2, false, biReplace)

	def("getplist", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		return getplist(a[0], a[1], Nil)
	})
	def("getplist-def", 3, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		return getplist(a[0], a[1], a[2])
	})
}

// biSub implements the read side of a half-open range (sub/sub-str/sub-vec/
// sub-list): seq, from, optional to (defaulting to the end). Dispatches on
// the runtime type of seq, which is how the original collaborator's
// type-specific sub-* entry points and its generic `sub` converge.
func biSub(ev *Evaluator, a []Value) (Value, error) {
	seq, from, to := a[0], a[1], a[2]
	switch v := seq.(type) {
	case *StringObj:
		f, t, err := normHalfOpenRange(from, to, v.Len())
		if err != nil {
			return Nil, err
		}
		return NewString(string(v.Runes[f:t])), nil
	case *Vector:
		f, t, err := normHalfOpenRange(from, to, len(v.Items))
		if err != nil {
			return Nil, err
		}
		return NewVector(v.Items[f:t]...), nil
	case *Cons, nilT:
		items, tail := ListToSlice(v)
		if !IsNil(tail) {
			return Nil, newTypeError("sub: improper list")
		}
		f, t, err := normHalfOpenRange(from, to, len(items))
		if err != nil {
			return Nil, err
		}
		return List(items[f:t]...), nil
	default:
		return Nil, newTypeError("sub: not a sequence: %s", PrintRepr(seq))
	}
}

// biReplace implements the write side: seq, newvals, and an index-or-range
// spec. The range is either a (from . to) pair, a bare integer (insert
// before that position -- a zero-width range), or nil (the whole
// sequence). Strings and vectors are mutated in place; lists, which may
// reshape or move their head, are returned as a new list value -- callers
// assigning into a place re-bind the place themselves (spec.md §4.4's
// "container symbol is re-bound via a recursive modplace").
func biReplace(ev *Evaluator, a []Value) (Value, error) {
	seq, newvals, spec, explicitTo := a[0], a[1], a[2], a[3]
	length, err := Length(seq)
	if err != nil {
		return Nil, err
	}
	from, to, err := resolveReplaceRange(spec, explicitTo, length)
	if err != nil {
		return Nil, err
	}
	switch v := seq.(type) {
	case *StringObj:
		var repl []rune
		switch nv := newvals.(type) {
		case *StringObj:
			repl = nv.Runes
		case Character:
			repl = []rune{rune(nv)}
		case *Cons, nilT:
			items, _ := ListToSlice(nv)
			repl = make([]rune, len(items))
			for i, it := range items {
				c, ok := it.(Character)
				if !ok {
					return Nil, newTypeError("replace-str: replacement list must be characters")
				}
				repl[i] = rune(c)
			}
		default:
			return Nil, newTypeError("replace-str: replacement must be a string or list of characters")
		}
		out := make([]rune, 0, len(v.Runes)-(to-from)+len(repl))
		out = append(out, v.Runes[:from]...)
		out = append(out, repl...)
		out = append(out, v.Runes[to:]...)
		v.Runes = out
		return v, nil
	case *Vector:
		var repl []Value
		switch nv := newvals.(type) {
		case *Vector:
			repl = nv.Items
		case *Cons, nilT:
			repl, _ = ListToSlice(nv)
		default:
			return Nil, newTypeError("replace-vec: replacement must be a vector or list")
		}
		out := make([]Value, 0, len(v.Items)-(to-from)+len(repl))
		out = append(out, v.Items[:from]...)
		out = append(out, repl...)
		out = append(out, v.Items[to:]...)
		v.Items = out
		return v, nil
	case *Cons, nilT:
		items, tail := ListToSlice(v)
		if !IsNil(tail) {
			return Nil, newTypeError("replace-list: improper list")
		}
		var repl []Value
		switch nv := newvals.(type) {
		case *Vector:
			repl = nv.Items
		case *Cons, nilT:
			repl, _ = ListToSlice(nv)
		default:
			return Nil, newTypeError("replace-list: replacement must be a vector or list")
		}
		out := make([]Value, 0, len(items)-(to-from)+len(repl))
		out = append(out, items[:from]...)
		out = append(out, repl...)
		out = append(out, items[to:]...)
		return List(out...), nil
	default:
		return Nil, newTypeError("replace: not a sequence: %s", PrintRepr(seq))
	}
}

// resolveReplaceRange interprets the (spec, explicitTo) pair accepted by
// biReplace: spec nil means the whole sequence; spec a (from . to) cons
// means a pair-form range (explicitTo is ignored); otherwise spec is a
// plain index, ranging to explicitTo (or to a zero-width insertion point
// at spec when explicitTo is nil).
func resolveReplaceRange(spec, explicitTo Value, length int) (from, to int, err error) {
	if IsNil(spec) {
		return 0, length, nil
	}
	if c, ok := spec.(*Cons); ok {
		c.Force()
		return normHalfOpenRange(c.Car, c.Cdr, length)
	}
	idx, ok := spec.(Integer)
	if !ok {
		return 0, 0, newTypeError("replace: index must be an integer or a (from . to) pair")
	}
	from, err = normIndex(int(idx), length)
	if err != nil {
		return 0, 0, err
	}
	if IsNil(explicitTo) {
		return from, from, nil
	}
	toI, ok := explicitTo.(Integer)
	if !ok {
		return 0, 0, newTypeError("replace: \"to\" must be an integer")
	}
	to, err = normIndex(int(toI), length)
	if err != nil {
		return 0, 0, err
	}
	if to < from {
		to = from
	}
	return from, to, nil
}

// getplist scans a plist-shaped rest list (k1 v1 k2 v2 ...) for key,
// returning its value or dflt if absent -- the rest-argument-threaded
// keyword-argument convention described in spec.md §9's expansion notes.
func getplist(restList, key, dflt Value) (Value, error) {
	items, tail := ListToSlice(restList)
	if !IsNil(tail) {
		return Nil, newTypeError("getplist: improper list")
	}
	for i := 0; i+1 < len(items); i += 2 {
		if Eq(items[i], key) {
			return items[i+1], nil
		}
	}
	return dflt, nil
}
