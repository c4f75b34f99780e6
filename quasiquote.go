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

// expandQuasiquoteForm rewrites one quasiquoted form into a tree of `list`
// and `append` calls (spec.md §4.2/§4.5), at the given nesting depth. depth
// starts at 1 for the outermost qquote; a nested qquote increments it, and
// an unquote/splice at depth 1 is the one that actually takes effect --
// deeper ones are left as data, re-wrapped one level shallower.
func expandQuasiquoteForm(form Value, depth int) (Value, error) {
	cons, ok := form.(*Cons)
	if !ok {
		if v, ok := form.(*Vector); ok {
			return expandQuasiquoteVector(v, depth)
		}
		return List(Sym("quote"), form), nil
	}
	cons.Force()
	if sym, ok := cons.Car.(*Symbol); ok {
		rest, tail := ListToSlice(cons.Cdr)
		unary := len(rest) == 1 && IsNil(tail)
		switch {
		case sym.Name == "unquote" && unary:
			if depth == 1 {
				return Expand(rest[0])
			}
			inner, err := expandQuasiquoteForm(rest[0], depth-1)
			if err != nil {
				return nil, err
			}
			return List(Sym("list"), List(Sym("quote"), Sym("unquote")), inner), nil
		case sym.Name == "splice" && unary:
			if depth == 1 {
				return nil, newEvalError("splice: not valid outside a list context")
			}
			inner, err := expandQuasiquoteForm(rest[0], depth-1)
			if err != nil {
				return nil, err
			}
			return List(Sym("list"), List(Sym("quote"), Sym("splice")), inner), nil
		case sym.Name == "qquote" && unary:
			inner, err := expandQuasiquoteForm(rest[0], depth+1)
			if err != nil {
				return nil, err
			}
			return List(Sym("list"), List(Sym("quote"), Sym("qquote")), inner), nil
		}
	}
	return expandQuasiquoteListForm(cons, depth)
}

// expandQuasiquoteListForm walks a quasiquoted cons chain element by
// element, building (append (list e1) (list e2) ... tail) with splice
// elements ,@x contributing their expansion directly (unwrapped) instead
// of through a one-element `list`.
func expandQuasiquoteListForm(cons *Cons, depth int) (Value, error) {
	var appendArgs []Value
	var cur Value = cons
	for {
		cc, ok := cur.(*Cons)
		if !ok {
			if !IsNil(cur) {
				tailExp, err := expandQuasiquoteForm(cur, depth)
				if err != nil {
					return nil, err
				}
				appendArgs = append(appendArgs, tailExp)
			}
			break
		}
		cc.Force()
		if ec, ok := cc.Car.(*Cons); ok {
			ec.Force()
			if sym, ok := ec.Car.(*Symbol); ok && sym.Name == "splice" {
				rest, tail := ListToSlice(ec.Cdr)
				if len(rest) == 1 && IsNil(tail) {
					if depth == 1 {
						expanded, err := Expand(rest[0])
						if err != nil {
							return nil, err
						}
						appendArgs = append(appendArgs, expanded)
					} else {
						inner, err := expandQuasiquoteForm(rest[0], depth-1)
						if err != nil {
							return nil, err
						}
						appendArgs = append(appendArgs, List(Sym("list"), List(Sym("list"), List(Sym("quote"), Sym("splice")), inner)))
					}
					cur = cc.Cdr
					continue
				}
			}
		}
		elemExp, err := expandQuasiquoteForm(cc.Car, depth)
		if err != nil {
			return nil, err
		}
		appendArgs = append(appendArgs, List(Sym("list"), elemExp))
		cur = cc.Cdr
	}
	switch len(appendArgs) {
	case 0:
		return List(Sym("quote"), Nil), nil
	case 1:
		return appendArgs[0], nil
	default:
		return NewCons(Sym("append"), List(appendArgs...)), nil
	}
}

// expandQuasiquoteVector rewrites a quasiquoted vector literal #(...) the
// same way as a list, producing a form that rebuilds the vector from the
// expanded list of elements.
func expandQuasiquoteVector(v *Vector, depth int) (Value, error) {
	if len(v.Items) == 0 {
		return List(Sym("quote"), NewVector()), nil
	}
	asList := List(v.Items...)
	listForm, err := expandQuasiquoteListForm(asList.(*Cons), depth)
	if err != nil {
		return nil, err
	}
	return List(Sym("list-vector"), listForm), nil
}
