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

// A range literal is represented, once evaluated, as a *Cons whose car is
// the "from" index and whose cdr is the "to" index (or Nil, meaning "to the
// end"). This is the runtime shape produced by the (out of scope) pattern
// parser for surface syntax like `0..2`; Go-constructed test/builtin code
// builds the same shape with NewCons(Integer(from), toValueOrNil).

// asRange reports whether v is a range pair, returning its raw (possibly
// negative, possibly absent) endpoints.
func asRange(v Value) (from Value, to Value, isRange bool) {
	c, ok := v.(*Cons)
	if !ok {
		return nil, nil, false
	}
	c.Force()
	return c.Car, c.Cdr, true
}

// normIndex resolves a single (possibly negative) index against length,
// erroring if out of bounds; length itself is accepted, as a range end.
func normIndex(idx int, length int) (int, error) {
	i := idx
	if i < 0 {
		i += length
	}
	if i < 0 || i > length {
		return 0, newRangeError("index out of range: %d", idx)
	}
	return i, nil
}

// normHalfOpenRange resolves a half-open [from, to) range against length,
// handling negative indices and an absent (Nil) "to" meaning "to the end".
func normHalfOpenRange(fromV, toV Value, length int) (from, to int, err error) {
	fi := 0
	if iv, ok := fromV.(Integer); ok {
		fi = int(iv)
	}
	from, err = normIndex(fi, length)
	if err != nil {
		return 0, 0, err
	}
	if IsNil(toV) {
		to = length
	} else {
		ti, ok := toV.(Integer)
		if !ok {
			return 0, 0, newTypeError("range: \"to\" is not an integer")
		}
		to, err = normIndex(int(ti), length)
		if err != nil {
			return 0, 0, err
		}
	}
	if to < from {
		to = from
	}
	return from, to, nil
}

// singleIndexOrRange interprets idx as either a plain integer (single
// element) or a range pair, returning from/to (to == from+1 for a single
// index) against length.
func singleIndexOrRange(idx Value, length int) (from, to int, isRange bool, err error) {
	if fromV, toV, ok := asRange(idx); ok {
		from, to, err = normHalfOpenRange(fromV, toV, length)
		return from, to, true, err
	}
	iv, ok := idx.(Integer)
	if !ok {
		return 0, 0, false, newTypeError("index: expected an integer or a range")
	}
	from, err = normIndex(int(iv), length)
	if err != nil {
		return 0, 0, false, err
	}
	if from >= length {
		return 0, 0, false, newRangeError("index out of range: %d", int(iv))
	}
	return from, from + 1, false, nil
}
