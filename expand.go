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

import "fmt"

// gensymCounter backs gensym, used by the op and dotimes expansions to
// manufacture fresh, uncapturable symbols.
var gensymCounter int

func gensym(prefix string) *Symbol {
	gensymCounter++
	return SystemPackage.Intern(fmt.Sprintf("%s%d", prefix, gensymCounter))
}

// Expand lowers a surface form to a kernel form. Atoms pass through
// unchanged; compound forms are rewritten case-by-case on their head
// symbol, defaulting to function-call shape (recurse into the argument
// list, leave the head alone) for anything not named below.
func Expand(form Value) (Value, error) {
	cons, ok := form.(*Cons)
	if !ok {
		return form, nil
	}
	cons.Force()
	head, ok := cons.Car.(*Symbol)
	if !ok {
		return expandCall(cons)
	}

	switch head.Name {
	case "quote", "fun":
		return form, nil

	case "qquote":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) != 1 {
			return nil, newEvalError("qquote: expected exactly one form")
		}
		return expandQuasiquoteForm(args[0], 1)

	case "gen":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) != 2 {
			return nil, newEvalError("gen: expected two forms")
		}
		a, err := Expand(args[0])
		if err != nil {
			return nil, err
		}
		b, err := Expand(args[1])
		if err != nil {
			return nil, err
		}
		return List(Sym("generate"),
			List(Sym("lambda"), Nil, a),
			List(Sym("lambda"), Nil, b)), nil

	case "delay":
		args, _ := ListToSlice(cons.Cdr)
		body, err := expandList(args)
		if err != nil {
			return nil, err
		}
		thunk := NewCons(Sym("lambda"), NewCons(Nil, List(body...)))
		return List(Sym("cons"), List(Sym("quote"), Sym("promise")), thunk), nil

	case "op":
		return expandOp(cons.Cdr)

	case "when":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) == 0 {
			return nil, newEvalError("when: missing test")
		}
		test, err := Expand(args[0])
		if err != nil {
			return nil, err
		}
		body, err := expandList(args[1:])
		if err != nil {
			return nil, err
		}
		return List(Sym("if"), test, NewCons(Sym("progn"), List(body...))), nil

	case "unless":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) == 0 {
			return nil, newEvalError("unless: missing test")
		}
		test, err := Expand(args[0])
		if err != nil {
			return nil, err
		}
		body, err := expandList(args[1:])
		if err != nil {
			return nil, err
		}
		return List(Sym("if"), test, Nil, NewCons(Sym("progn"), List(body...))), nil

	case "dotimes":
		return expandDotimes(cons.Cdr)

	case "let", "let*":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) == 0 {
			return nil, newEvalError("%s: missing binding list", head.Name)
		}
		newBinds, err := expandLetBindings(head.Name, args[0])
		if err != nil {
			return nil, err
		}
		body, err := expandList(args[1:])
		if err != nil {
			return nil, err
		}
		return NewCons(head, NewCons(List(newBinds...), List(body...))), nil

	case "lambda":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) == 0 {
			return nil, newEvalError("lambda: missing parameter list")
		}
		body, err := expandList(args[1:])
		if err != nil {
			return nil, err
		}
		return NewCons(Sym("lambda"), NewCons(args[0], List(body...))), nil

	case "each", "each*", "collect-each", "collect-each*":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) == 0 {
			return nil, newEvalError("%s: missing binding list", head.Name)
		}
		bindForms, _ := ListToSlice(args[0])
		var newBinds []Value
		for _, bf := range bindForms {
			parts, _ := ListToSlice(bf)
			if len(parts) != 2 {
				return nil, newEvalError("%s: bad binding: %s", head.Name, PrintRepr(bf))
			}
			sym, ok := parts[0].(*Symbol)
			if !ok {
				return nil, newEvalError("%s: bad binding target: %s", head.Name, PrintRepr(parts[0]))
			}
			listExp, err := Expand(parts[1])
			if err != nil {
				return nil, err
			}
			newBinds = append(newBinds, List(sym, listExp))
		}
		body, err := expandList(args[1:])
		if err != nil {
			return nil, err
		}
		return NewCons(head, NewCons(List(newBinds...), List(body...))), nil

	case "block":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) == 0 {
			return nil, newEvalError("block: missing name")
		}
		body, err := expandList(args[1:])
		if err != nil {
			return nil, err
		}
		return NewCons(Sym("block"), NewCons(args[0], List(body...))), nil

	case "return-from":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) == 0 {
			return nil, newEvalError("return-from: missing block name")
		}
		var valueExp Value = Nil
		if len(args) > 1 {
			v, err := Expand(args[1])
			if err != nil {
				return nil, err
			}
			valueExp = v
		}
		return List(Sym("return-from"), args[0], valueExp), nil

	case "defvar":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) == 0 {
			return nil, newEvalError("defvar: missing symbol")
		}
		var initExp Value = Nil
		if len(args) > 1 {
			v, err := Expand(args[1])
			if err != nil {
				return nil, err
			}
			initExp = v
		}
		return List(Sym("defvar"), args[0], initExp), nil

	case "defun":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) < 2 {
			return nil, newEvalError("defun: missing parameter list")
		}
		body, err := expandList(args[2:])
		if err != nil {
			return nil, err
		}
		return List(append([]Value{Sym("defun"), args[0], args[1]}, body...)...), nil

	case "cond":
		args, _ := ListToSlice(cons.Cdr)
		var clauses []Value
		for _, cf := range args {
			parts, _ := ListToSlice(cf)
			expParts, err := expandList(parts)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, List(expParts...))
		}
		return NewCons(Sym("cond"), List(clauses...)), nil

	case "for", "for*":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) < 3 {
			return nil, newEvalError("%s: expects (vars) (test result...) (inc...) body...", head.Name)
		}
		newVars, err := expandLetBindings(head.Name, args[0])
		if err != nil {
			return nil, err
		}
		testResult, _ := ListToSlice(args[1])
		expTR, err := expandList(testResult)
		if err != nil {
			return nil, err
		}
		incForms, _ := ListToSlice(args[2])
		expInc, err := expandList(incForms)
		if err != nil {
			return nil, err
		}
		body, err := expandList(args[3:])
		if err != nil {
			return nil, err
		}
		headerParts := []Value{List(newVars...), List(expTR...), List(expInc...)}
		return NewCons(head, List(append(headerParts, body...)...)), nil

	case "dohash":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) == 0 {
			return nil, newEvalError("dohash: missing (k v hash [result])")
		}
		header, _ := ListToSlice(args[0])
		expHeader, err := expandList(header)
		if err != nil {
			return nil, err
		}
		body, err := expandList(args[1:])
		if err != nil {
			return nil, err
		}
		return NewCons(Sym("dohash"), NewCons(List(expHeader...), List(body...))), nil

	case "do":
		args, _ := ListToSlice(cons.Cdr)
		body, err := expandList(args)
		if err != nil {
			return nil, err
		}
		return NewCons(Sym("do"), List(body...)), nil

	case "quasi":
		args, _ := ListToSlice(cons.Cdr)
		segs, err := expandList(args)
		if err != nil {
			return nil, err
		}
		return NewCons(Sym("quasi"), List(segs...)), nil

	case "catch":
		return expandCatch(cons.Cdr)

	case "set":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) != 2 {
			return nil, newEvalError("set: expects (place value)")
		}
		place, err := expandPlace(args[0])
		if err != nil {
			return nil, err
		}
		val, err := Expand(args[1])
		if err != nil {
			return nil, err
		}
		return List(Sym("set"), place, val), nil

	case "inc", "dec":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) < 1 {
			return nil, newEvalError("%s: expects (place [delta])", head.Name)
		}
		place, err := expandPlace(args[0])
		if err != nil {
			return nil, err
		}
		rest, err := expandList(args[1:])
		if err != nil {
			return nil, err
		}
		return NewCons(head, NewCons(place, List(rest...))), nil

	case "push":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) != 2 {
			return nil, newEvalError("push: expects (value place)")
		}
		val, err := Expand(args[0])
		if err != nil {
			return nil, err
		}
		place, err := expandPlace(args[1])
		if err != nil {
			return nil, err
		}
		return List(Sym("push"), val, place), nil

	case "pop", "flip", "del":
		args, _ := ListToSlice(cons.Cdr)
		if len(args) != 1 {
			return nil, newEvalError("%s: expects (place)", head.Name)
		}
		place, err := expandPlace(args[0])
		if err != nil {
			return nil, err
		}
		return List(head, place), nil

	default:
		args, _ := ListToSlice(cons.Cdr)
		expArgs, err := expandList(args)
		if err != nil {
			return nil, err
		}
		return NewCons(head, List(expArgs...)), nil
	}
}

func expandCall(cons *Cons) (Value, error) {
	opExp, err := Expand(cons.Car)
	if err != nil {
		return nil, err
	}
	args, _ := ListToSlice(cons.Cdr)
	expArgs, err := expandList(args)
	if err != nil {
		return nil, err
	}
	return NewCons(opExp, List(expArgs...)), nil
}

func expandList(forms []Value) ([]Value, error) {
	out := make([]Value, len(forms))
	for i, f := range forms {
		e, err := Expand(f)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// expandLetBindings expands the shared let/let*/for/for* binding-list
// shape: each entry is a bare symbol (init defaults to nil) or a (sym
// init) pair whose init gets expanded.
func expandLetBindings(formName string, bindList Value) ([]Value, error) {
	bindForms, _ := ListToSlice(bindList)
	newBinds := make([]Value, 0, len(bindForms))
	for _, bf := range bindForms {
		if sym, ok := bf.(*Symbol); ok {
			newBinds = append(newBinds, sym)
			continue
		}
		parts, _ := ListToSlice(bf)
		if len(parts) == 0 {
			return nil, newEvalError("%s: bad binding", formName)
		}
		sym, ok := parts[0].(*Symbol)
		if !ok {
			return nil, newEvalError("%s: bad binding target: %s", formName, PrintRepr(parts[0]))
		}
		if len(parts) == 1 {
			newBinds = append(newBinds, List(sym))
			continue
		}
		initExp, err := Expand(parts[1])
		if err != nil {
			return nil, err
		}
		newBinds = append(newBinds, List(sym, initExp))
	}
	return newBinds, nil
}

// expandPlace implements the place-specific sub-expander: it accepts a
// bindable symbol or a (dwim|gethash|car|cdr|vecref ...) form and rejects
// anything else at expansion time (spec.md §4.2).
func expandPlace(p Value) (Value, error) {
	if sym, ok := p.(*Symbol); ok {
		if !sym.Bindable() {
			return nil, newEvalError("place: non-bindable symbol: %s", sym.Name)
		}
		return sym, nil
	}
	c, ok := p.(*Cons)
	if !ok {
		return nil, newEvalError("place: not a recognised place form: %s", PrintRepr(p))
	}
	c.Force()
	phead, ok := c.Car.(*Symbol)
	if !ok {
		return nil, newEvalError("place: not a recognised place form: %s", PrintRepr(p))
	}
	switch phead.Name {
	case "dwim", "gethash", "car", "cdr", "vecref":
		args, _ := ListToSlice(c.Cdr)
		expanded, err := expandList(args)
		if err != nil {
			return nil, err
		}
		return NewCons(phead, List(expanded...)), nil
	default:
		return nil, newEvalError("place: unsupported place form: %s", phead.Name)
	}
}

// expandCatch lifts tags out of surface `(catch try-form (tag params
// body...)...)` clauses into the kernel shape `(catch (tags...) try-form
// (tag params body...)...)`.
func expandCatch(argsList Value) (Value, error) {
	args, _ := ListToSlice(argsList)
	if len(args) == 0 {
		return nil, newEvalError("catch: missing try form")
	}
	tryForm, err := Expand(args[0])
	if err != nil {
		return nil, err
	}
	var tags []Value
	var clauses []Value
	for _, cf := range args[1:] {
		parts, _ := ListToSlice(cf)
		if len(parts) < 2 {
			return nil, newEvalError("catch: malformed clause: %s", PrintRepr(cf))
		}
		tagSym, ok := parts[0].(*Symbol)
		if !ok {
			return nil, newEvalError("catch: clause tag must be a symbol")
		}
		tags = append(tags, tagSym)
		clauseBody, err := expandList(parts[2:])
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, List(append([]Value{tagSym, parts[1]}, clauseBody...)...))
	}
	kernelArgs := append([]Value{List(tags...), tryForm}, clauses...)
	return NewCons(Sym("catch"), List(kernelArgs...)), nil
}

// expandDotimes lowers `dotimes (var count [result]) body...` to a kernel
// `for` form, binding count once (so a side-effecting count expression
// does not re-run each iteration).
func expandDotimes(argsList Value) (Value, error) {
	args, _ := ListToSlice(argsList)
	if len(args) == 0 {
		return nil, newEvalError("dotimes: missing (var count [result])")
	}
	header, _ := ListToSlice(args[0])
	if len(header) < 2 {
		return nil, newEvalError("dotimes: expects (var count [result])")
	}
	varSym, ok := header[0].(*Symbol)
	if !ok {
		return nil, newEvalError("dotimes: bad variable")
	}
	countExp, err := Expand(header[1])
	if err != nil {
		return nil, err
	}
	var resultExp Value = Nil
	if len(header) > 2 {
		resultExp, err = Expand(header[2])
		if err != nil {
			return nil, err
		}
	}
	body, err := expandList(args[1:])
	if err != nil {
		return nil, err
	}
	countSym := gensym("dotimes-count-")
	forVars := List(List(varSym, Integer(0)), List(countSym, countExp))
	testResult := List(List(Sym("<"), varSym, countSym), resultExp)
	incForms := List(List(Sym("inc"), varSym))
	forArgs := append([]Value{forVars, testResult, incForms}, body...)
	return NewCons(Sym("for"), List(forArgs...)), nil
}

// --- op: implicit-parameter lambda ---

func isVarMarker(c *Cons) bool {
	sym, ok := c.Car.(*Symbol)
	return ok && sym == SysSym("var")
}

func varMarkerInt(c *Cons) (int, bool) {
	rest, tail := ListToSlice(c.Cdr)
	if len(rest) != 1 || !IsNil(tail) {
		return 0, false
	}
	iv, ok := rest[0].(Integer)
	return int(iv), ok
}

func varMarkerIsRest(c *Cons) bool {
	rest, tail := ListToSlice(c.Cdr)
	if len(rest) != 1 || !IsNil(tail) {
		return false
	}
	sym, ok := rest[0].(*Symbol)
	return ok && sym.Name == "rest"
}

func varMarkerIsRestForm(v Value) bool {
	c, ok := v.(*Cons)
	return ok && isVarMarker(c) && varMarkerIsRest(c)
}

// expandOp implements the `op ...body` implicit-parameter lambda. body's
// forms are treated as the argument list to a `dwim` call (the first form
// is the applied object, the rest its arguments); occurrences of
// `(sys:var N)` become fresh positional parameters and `(sys:var rest)`
// becomes a fresh rest parameter. A bare (not further nested) `(sys:var
// rest)` body form is replaced with a splice marker so all of the caller's
// surplus arguments flow through to the dwim call positionally, rather
// than as a single list argument; if rest was never referenced, the same
// splice marker is appended automatically so extra call arguments are
// still accepted and passed through.
func expandOp(argsList Value) (Value, error) {
	body, tail := ListToSlice(argsList)
	if !IsNil(tail) {
		return nil, newEvalError("op: improper body")
	}
	if len(body) == 0 {
		return nil, newEvalError("op: empty body")
	}

	maxN := 0
	used := map[int]bool{}
	var scan func(Value)
	scan = func(v Value) {
		c, ok := v.(*Cons)
		if !ok {
			return
		}
		c.Force()
		if isVarMarker(c) {
			if n, ok := varMarkerInt(c); ok {
				used[n] = true
				if n > maxN {
					maxN = n
				}
			}
			return
		}
		items, t := ListToSlice(v)
		for _, it := range items {
			scan(it)
		}
		if !IsNil(t) {
			scan(t)
		}
	}
	for _, f := range body {
		scan(f)
	}
	for n := 1; n <= maxN; n++ {
		if !used[n] {
			return nil, newEvalError("op: missing numeric argument @%d", n)
		}
	}

	paramSyms := make([]*Symbol, maxN+1)
	for n := 1; n <= maxN; n++ {
		paramSyms[n] = gensym(fmt.Sprintf("op-arg%d-", n))
	}
	restSym := gensym("op-rest-")
	sawRest := false

	var subst func(Value) (Value, error)
	subst = func(v Value) (Value, error) {
		c, ok := v.(*Cons)
		if !ok {
			return v, nil
		}
		c.Force()
		if isVarMarker(c) {
			if n, ok := varMarkerInt(c); ok {
				return paramSyms[n], nil
			}
			if varMarkerIsRest(c) {
				sawRest = true
				return restSym, nil
			}
		}
		carV, err := subst(c.Car)
		if err != nil {
			return nil, err
		}
		cdrV, err := subst(c.Cdr)
		if err != nil {
			return nil, err
		}
		return NewCons(carV, cdrV), nil
	}

	dwimArgs := make([]Value, 0, len(body)+1)
	for _, bf := range body {
		if varMarkerIsRestForm(bf) {
			sawRest = true
			dwimArgs = append(dwimArgs, List(SysSym("rest-splice"), restSym))
			continue
		}
		substituted, err := subst(bf)
		if err != nil {
			return nil, err
		}
		expanded, err := Expand(substituted)
		if err != nil {
			return nil, err
		}
		dwimArgs = append(dwimArgs, expanded)
	}
	if !sawRest {
		dwimArgs = append(dwimArgs, List(SysSym("rest-splice"), restSym))
	}

	var params Value = Value(restSym)
	for n := maxN; n >= 1; n-- {
		params = NewCons(paramSyms[n], params)
	}

	dwimForm := NewCons(Sym("dwim"), List(dwimArgs...))
	return List(Sym("lambda"), params, dwimForm), nil
}
