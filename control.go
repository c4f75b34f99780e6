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

// Non-local control transfer (block/return-from, unwind-protect,
// catch/throw) is built on Go's panic/recover, the idiomatic stand-in for
// the collaborator runtime's longjump-based unwinder. Each construct pushes
// a dynamic marker by running in a recover-guarded call; a non-local exit
// panics with one of the signal types below and is caught by the matching
// handler, running any intervening unwind-protect cleanups along the way
// via ordinary defer unwinding.

// blockSignal implements return-from: panicking past intervening frames
// until the block named Name recovers it.
type blockSignal struct {
	Name  *Symbol
	Value Value
}

// throwSignal implements throw: panicking past intervening frames until a
// catch whose tag list contains a supertype of Tag recovers it.
type throwSignal struct {
	Tag  Value
	Args []Value
}

// evalBlock implements the `block` special form: name body...
func (ev *Evaluator) evalBlock(name *Symbol, body []Value, env *Env) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if bs, ok := r.(blockSignal); ok && bs.Name == name {
				result = bs.Value
				err = nil
				return
			}
			panic(r)
		}
	}()
	return ev.evalProgn(body, env)
}

// evalReturnFrom implements `return-from name value`.
func (ev *Evaluator) evalReturnFrom(name *Symbol, valueForm Value, env *Env) (Value, error) {
	v, err := ev.Eval(valueForm, env)
	if err != nil {
		return Nil, err
	}
	panic(blockSignal{Name: name, Value: v})
}

// evalUnwindProtect implements `unwind-protect prot cleanup...`: cleanup
// always runs, whether prot returns normally, raises a Go error, or
// triggers a non-local exit (block/catch/panic). An exception raised
// during cleanup supersedes whatever was unwinding before it, per spec.md
// §5/§7.
func (ev *Evaluator) evalUnwindProtect(protForm Value, cleanup []Value, env *Env) (result Value, err error) {
	defer func() {
		r := recover()
		cleanupEnv := NewChildEnv(env)
		_, cerr := ev.evalProgn(cleanup, cleanupEnv)
		if cerr != nil {
			// Cleanup errors supersede the original unwinding, including a
			// panic that was in flight.
			err = cerr
			result = Nil
			return
		}
		if r != nil {
			panic(r)
		}
	}()
	result, err = ev.Eval(protForm, env)
	return
}

// catchClause is one (tag, params, body) arm of a kernel catch form.
type catchClause struct {
	Tag    *Symbol
	Params Value
	Body   []Value
}

// evalCatch implements the kernel `catch (tags...) try (tag params
// body...)...` form produced by the expander from surface `catch`. A
// matching clause fires both for an explicit `throw` (delivered as a
// panicking throwSignal) and for a plain *LispError returned up the normal
// (Value, error) path -- per spec.md §7, programmatic errors are tagged
// exceptions in the same taxonomy a catch clause matches against, not a
// separate channel.
func (ev *Evaluator) evalCatch(tags []*Symbol, tryForm Value, clauses []catchClause, env *Env) (result Value, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ts, ok := r.(throwSignal)
		if !ok {
			panic(r)
		}
		if matched, mres, merr := matchCatchClause(ev, clauses, ts.Tag, ts.Args, env); matched {
			result, err = mres, merr
			return
		}
		panic(r)
	}()
	result, err = ev.Eval(tryForm, env)
	if le, ok := err.(*LispError); ok {
		if matched, mres, merr := matchCatchClause(ev, clauses, Sym(le.Tag), le.Args, env); matched {
			return mres, merr
		}
	}
	return result, err
}

// matchCatchClause finds the first clause whose tag is a supertype of (or
// equal to) tag and runs its body with params bound to args, reporting
// whether a clause matched at all.
func matchCatchClause(ev *Evaluator, clauses []catchClause, tag Value, args []Value, env *Env) (matched bool, result Value, err error) {
	tagSym, ok := tag.(*Symbol)
	if !ok {
		return false, Nil, nil
	}
	for _, clause := range clauses {
		if !ExceptionSubtypeP(tagSym.Name, clause.Tag.Name) {
			continue
		}
		clauseEnv := NewChildEnv(env)
		bindParamsPositional(clauseEnv, clause.Params, args)
		result, err = ev.evalProgn(clause.Body, clauseEnv)
		return true, result, err
	}
	return false, Nil, nil
}

// bindParamsPositional binds a flat, non-dotted parameter list positionally
// against args, padding missing trailing parameters with Nil. Used by
// catch clauses, which take a simple parameter list (no optionals/rest).
func bindParamsPositional(env *Env, params Value, args []Value) {
	items, _ := ListToSlice(params)
	for i, p := range items {
		sym, ok := p.(*Symbol)
		if !ok {
			continue
		}
		if i < len(args) {
			env.BindVar(sym, args[i])
		} else {
			env.BindVar(sym, Nil)
		}
	}
}

// Throw raises a throw signal with the given tag and arguments; it is the
// implementation behind the `throw` builtin.
func Throw(tag Value, args []Value) {
	panic(throwSignal{Tag: tag, Args: args})
}
