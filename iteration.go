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

// anonBlockName is the implicit nil-named block every looping construct
// (for, for*, each, each*, collect-each, collect-each*, dohash) wraps
// itself in, so that a bare `(return v)` exits the whole construct.
var anonBlockName = SysSym("")

func init() {
	registerSpecialForm("return", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		return ev.evalReturnFrom(anonBlockName, arg(args, 0), env)
	})
}

// bindLetStyle binds a let/let*-shaped binding list into target, evaluating
// initialisers against src for `let`-style (parallel) binding, or against
// target itself as it grows for `let*`/sequential binding.
func bindLetStyle(ev *Evaluator, bindForms []Value, src, target *Env, sequential bool) error {
	type pending struct {
		sym  *Symbol
		init Value
	}
	var pendings []pending
	for _, bf := range bindForms {
		var sym *Symbol
		var initForm Value = Nil
		if s, ok := bf.(*Symbol); ok {
			sym = s
		} else {
			parts, _ := ListToSlice(bf)
			if len(parts) == 0 {
				return newEvalError("bad binding form")
			}
			s, ok := parts[0].(*Symbol)
			if !ok {
				return newEvalError("bad binding target")
			}
			sym = s
			if len(parts) > 1 {
				initForm = parts[1]
			}
		}
		if !sym.Bindable() {
			return newEvalError("non-bindable symbol in binding list: %s", sym.Name)
		}
		if sequential {
			v, err := ev.Eval(initForm, target)
			if err != nil {
				return err
			}
			target.BindVar(sym, v)
		} else {
			pendings = append(pendings, pending{sym, initForm})
		}
	}
	if !sequential {
		values := make([]Value, len(pendings))
		for i, p := range pendings {
			v, err := ev.Eval(p.init, src)
			if err != nil {
				return err
			}
			values[i] = v
		}
		for i, p := range pendings {
			target.BindVar(p.sym, values[i])
		}
	}
	return nil
}

// specialFormFor implements `for (vars) (test result...) (inc...) body...`
// and, when sequential is true, `for*` (sequential var init). The whole
// construct runs inside the implicit anonymous block so a bare `return`
// exits the loop immediately.
func specialFormFor(sequential bool) specialFormHandler {
	return func(ev *Evaluator, args []Value, env *Env, form *Cons) (result Value, err error) {
		if len(args) < 3 {
			return Nil, newEvalError("for: expects (vars) (test result...) (inc...) body...")
		}
		varForms, _ := ListToSlice(args[0])
		testResult, _ := ListToSlice(args[1])
		incForms, _ := ListToSlice(args[2])
		body := args[3:]

		loopEnv := NewChildEnv(env)
		if err := bindLetStyle(ev, varForms, env, loopEnv, sequential); err != nil {
			return Nil, err
		}

		var test Value = T
		var results []Value
		if len(testResult) > 0 {
			test = testResult[0]
			results = testResult[1:]
		}

		defer func() {
			if r := recover(); r != nil {
				if bs, ok := r.(blockSignal); ok && bs.Name == anonBlockName {
					result, err = bs.Value, nil
					return
				}
				panic(r)
			}
		}()

		for {
			tv, e := ev.Eval(test, loopEnv)
			if e != nil {
				return Nil, e
			}
			if !Truthy(tv) {
				break
			}
			if _, e := ev.evalProgn(body, loopEnv); e != nil {
				return Nil, e
			}
			for _, incForm := range incForms {
				if _, e := ev.Eval(incForm, loopEnv); e != nil {
					return Nil, e
				}
			}
		}
		return ev.evalProgn(results, loopEnv)
	}
}

// specialFormEach implements each/each*/collect-each/collect-each*:
// parallel (or, for the `*` variants, sequential) iteration of vars over
// one list per var, running body once per position. The collect- variants
// accumulate each iteration's last body value into the returned list.
func specialFormEach(sequential, collect bool) specialFormHandler {
	return func(ev *Evaluator, args []Value, env *Env, form *Cons) (result Value, err error) {
		if len(args) < 1 {
			return Nil, newEvalError("each: expects ((var list)...) body...")
		}
		bindForms, _ := ListToSlice(args[0])
		body := args[1:]

		type loopVar struct {
			sym   *Symbol
			items []Value
		}
		var vars []loopVar
		minLen := -1
		for _, bf := range bindForms {
			parts, _ := ListToSlice(bf)
			if len(parts) != 2 {
				return Nil, newEvalError("each: binding must be (var list-form)")
			}
			sym, ok := parts[0].(*Symbol)
			if !ok || !sym.Bindable() {
				return Nil, newEvalError("each: bad variable in binding")
			}
			lv, e := ev.Eval(parts[1], env)
			if e != nil {
				return Nil, e
			}
			items, tail := ListToSlice(lv)
			if !IsNil(tail) {
				return Nil, newTypeError("each: improper list")
			}
			vars = append(vars, loopVar{sym, items})
			if minLen < 0 || len(items) < minLen {
				minLen = len(items)
			}
		}
		if minLen < 0 {
			minLen = 0
		}

		var collected []Value

		defer func() {
			if r := recover(); r != nil {
				if bs, ok := r.(blockSignal); ok && bs.Name == anonBlockName {
					result, err = bs.Value, nil
					return
				}
				panic(r)
			}
		}()

		iterEnv := NewChildEnv(env)
		for _, v := range vars {
			iterEnv.BindVar(v.sym, Nil)
		}
		for i := 0; i < minLen; i++ {
			if sequential {
				iterEnv = NewChildEnv(env)
				for _, v := range vars {
					iterEnv.BindVar(v.sym, v.items[i])
				}
			} else {
				for _, v := range vars {
					cell, _ := iterEnv.findVar(v.sym)
					*cell = v.items[i]
				}
			}
			v, e := ev.evalProgn(body, iterEnv)
			if e != nil {
				return Nil, e
			}
			if collect {
				collected = append(collected, v)
			}
		}
		if collect {
			return List(collected...), nil
		}
		return Nil, nil
	}
}

// specialFormDohash implements `dohash (k v hash result) body...`.
func specialFormDohash(ev *Evaluator, args []Value, env *Env, form *Cons) (result Value, err error) {
	if len(args) < 1 {
		return Nil, newEvalError("dohash: expects (k v hash [result]) body...")
	}
	header, _ := ListToSlice(args[0])
	if len(header) < 3 {
		return Nil, newEvalError("dohash: expects (k v hash [result])")
	}
	kSym, ok1 := header[0].(*Symbol)
	vSym, ok2 := header[1].(*Symbol)
	if !ok1 || !ok2 {
		return Nil, newEvalError("dohash: k and v must be symbols")
	}
	hv, e := ev.Eval(header[2], env)
	if e != nil {
		return Nil, e
	}
	h, ok := hv.(*Hash)
	if !ok {
		return Nil, newTypeError("dohash: not a hash: %s", PrintRepr(hv))
	}
	var resultForm Value = Nil
	if len(header) > 3 {
		resultForm = header[3]
	}
	body := args[1:]

	loopEnv := NewChildEnv(env)
	loopEnv.BindVar(kSym, Nil)
	loopEnv.BindVar(vSym, Nil)
	kCell, _ := loopEnv.findVar(kSym)
	vCell, _ := loopEnv.findVar(vSym)

	defer func() {
		if r := recover(); r != nil {
			if bs, ok := r.(blockSignal); ok && bs.Name == anonBlockName {
				result, err = bs.Value, nil
				return
			}
			panic(r)
		}
	}()

	var iterErr error
	h.Each(func(k, v Value) bool {
		*kCell = k
		*vCell = v
		if _, e := ev.evalProgn(body, loopEnv); e != nil {
			iterErr = e
			return false
		}
		return true
	})
	if iterErr != nil {
		return Nil, iterErr
	}
	return ev.Eval(resultForm, loopEnv)
}
