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

import (
	"github.com/kwalsh-lang/lcore/internal/collab"
	"github.com/kwalsh-lang/lcore/internal/diag"
)

// Evaluator bundles the top-level environment and collaborator wiring: the
// diagnostic logger, the GC rooting shim, the I/O stream, and the pattern
// matcher/regex collaborator. A fresh Evaluator is the unit of interpreter
// state; spec.md §5 notes this state is process-wide and single-threaded,
// so callers should not share one Evaluator across goroutines.
type Evaluator struct {
	Top     *TopLevel
	Log     diag.Logger
	GC      collab.GC
	Stdio   collab.Stream
	Matcher collab.Matcher
}

// Option configures a new Evaluator.
type Option func(*Evaluator)

// WithLogger overrides the default warn-level stderr logger.
func WithLogger(l diag.Logger) Option {
	return func(ev *Evaluator) { ev.Log = l }
}

// WithStream overrides the default stdio stream.
func WithStream(s collab.Stream) Option {
	return func(ev *Evaluator) { ev.Stdio = s }
}

// NewEvaluator builds a ready-to-use Evaluator with a fresh top level and
// all builtins registered.
func NewEvaluator(opts ...Option) *Evaluator {
	ev := &Evaluator{
		Top:     newTopLevel(),
		Log:     diag.New("lcore", "warn"),
		GC:      collab.NewCountingGC(),
		Stdio:   collab.NewStdStream(),
		Matcher: collab.RegexMatcher{},
	}
	for _, o := range opts {
		o(ev)
	}
	registerBuiltins(ev)
	return ev
}

// Eval evaluates form in env (spec.md §4.3). A nil env means "the top level
// only" — special forms that need to bind create their own child frame.
func (ev *Evaluator) Eval(form Value, env *Env) (Value, error) {
	if IsNil(form) {
		return Nil, nil
	}
	if sym, ok := form.(*Symbol); ok {
		if sym.SelfEvaluating() {
			return sym, nil
		}
		if v, ok := ev.lookupVariable(env, sym); ok {
			return v, nil
		}
		return Nil, newEvalError("unbound variable: %s", sym.Name)
	}
	cons, ok := form.(*Cons)
	if !ok {
		// Non-bindable atom: integer, character, string, vector, etc.
		return form, nil
	}
	cons.Force()
	head := cons.Car
	headSym, headIsSym := head.(*Symbol)
	if headIsSym {
		if h, ok := specialForms[headSym]; ok {
			args, _ := ListToSlice(cons.Cdr)
			return h(ev, args, env, cons)
		}
	}
	fnVal, err := ev.resolveOperator(head, env)
	if err != nil {
		return Nil, err
	}
	argForms, tail := ListToSlice(cons.Cdr)
	if !IsNil(tail) {
		return Nil, newEvalError("improper argument list in call")
	}
	args := make([]Value, len(argForms))
	for i, af := range argForms {
		v, err := ev.Eval(af, env)
		if err != nil {
			return Nil, err
		}
		args[i] = v
	}
	return ev.Apply(fnVal, args)
}

// resolveOperator evaluates the head of a function-call form: if it is a
// symbol, resolve its function binding; otherwise evaluate it directly
// (e.g. ((lambda (x) x) 1)).
func (ev *Evaluator) resolveOperator(head Value, env *Env) (Value, error) {
	if sym, ok := head.(*Symbol); ok {
		if v, ok := ev.lookupFunction(env, sym); ok {
			return v, nil
		}
		return Nil, newEvalError("unbound function: %s", sym.Name)
	}
	return ev.Eval(head, env)
}

// EvalLisp1 performs unified variable-or-function lookup, used by `dwim`
// forms where [f x y] must find f whether it was bound as a variable or a
// function.
func (ev *Evaluator) EvalLisp1(form Value, env *Env) (Value, error) {
	if sym, ok := form.(*Symbol); ok {
		if sym.SelfEvaluating() {
			return sym, nil
		}
		if v, ok := ev.lookupVariable(env, sym); ok {
			return v, nil
		}
		if v, ok := ev.lookupFunction(env, sym); ok {
			return v, nil
		}
		return Nil, newEvalError("unbound variable or function: %s", sym.Name)
	}
	return ev.Eval(form, env)
}

// evalProgn evaluates forms left to right, returning the last value (or Nil
// if forms is empty).
func (ev *Evaluator) evalProgn(forms []Value, env *Env) (Value, error) {
	var result Value = Nil
	for _, f := range forms {
		v, err := ev.Eval(f, env)
		if err != nil {
			return Nil, err
		}
		result = v
	}
	return result, nil
}

// Apply applies fun to an explicit argument list (spec.md §6). A symbol
// argument is coerced by resolving its function binding.
func (ev *Evaluator) Apply(fun Value, args []Value) (Value, error) {
	if sym, ok := fun.(*Symbol); ok {
		v, ok := ev.Top.LookupFunc(sym)
		if !ok {
			return Nil, newEvalError("unbound function: %s", sym.Name)
		}
		fun = v
	}
	fn, ok := fun.(*Function)
	if !ok {
		return Nil, newTypeError("apply: not a function: %s", PrintRepr(fun))
	}
	fixed, optional, variadic := fn.Arity()
	if !variadic {
		if len(args) < fixed || len(args) > fixed+optional {
			return Nil, newEvalError("%s: expected %d-%d arguments, got %d", fn.Name, fixed, fixed+optional, len(args))
		}
	} else {
		if len(args) < fixed {
			return Nil, newEvalError("%s: expected at least %d arguments, got %d", fn.Name, fixed, len(args))
		}
	}
	if fn.IsBuiltin() {
		padded := make([]Value, fixed+optional)
		for i := range padded {
			if i < len(args) {
				padded[i] = args[i]
			} else {
				padded[i] = Nil
			}
		}
		if variadic {
			var rest []Value
			if len(args) > fixed+optional {
				rest = args[fixed+optional:]
			}
			return fn.Builtin(ev, append(padded, List(rest...)))
		}
		return fn.Builtin(ev, padded)
	}
	callEnv := NewChildEnv(fn.Env)
	if err := bindLambdaParams(callEnv, fn.Params, args); err != nil {
		return Nil, err
	}
	body, _ := ListToSlice(fn.Body)
	return ev.evalProgn(body, callEnv)
}

// countParams reports the fixed parameter count, optional parameter count,
// and whether params ends with a rest binding (dotted tail, or a bare
// symbol tail).
func countParams(params Value) (fixed, optional int, variadic bool) {
	seenColon := false
	v := params
	for {
		c, ok := v.(*Cons)
		if !ok {
			if !IsNil(v) {
				variadic = true
			}
			return
		}
		c.Force()
		if isOptionalMarker(c.Car) {
			seenColon = true
			v = c.Cdr
			continue
		}
		if seenColon {
			optional++
		} else {
			fixed++
		}
		v = c.Cdr
	}
}

// optionalMarker is the keyword symbol `:` that marks the start of optional
// parameters in a lambda list (spec.md §4.3).
var optionalMarker = Keyword(":")

func isOptionalMarker(v Value) bool {
	sym, ok := v.(*Symbol)
	return ok && sym == optionalMarker
}

// bindLambdaParams binds an interpreted function's parameter list against
// evaluated args in callEnv (spec.md §4.3 Parameter binding).
func bindLambdaParams(env *Env, params Value, args []Value) error {
	seenColon := false
	i := 0
	v := params
	for {
		c, ok := v.(*Cons)
		if !ok {
			if !IsNil(v) {
				if sym, ok := v.(*Symbol); ok {
					rest := Nil
					if i < len(args) {
						rest = List(args[i:]...)
					}
					env.BindVar(sym, rest)
				}
			}
			return nil
		}
		c.Force()
		if isOptionalMarker(c.Car) {
			seenColon = true
			v = c.Cdr
			continue
		}
		sym, ok := c.Car.(*Symbol)
		if !ok {
			return newEvalError("bad parameter in lambda list: %s", PrintRepr(c.Car))
		}
		if !sym.Bindable() {
			return newEvalError("non-bindable symbol in parameter list: %s", sym.Name)
		}
		if i < len(args) {
			env.BindVar(sym, args[i])
			i++
		} else if seenColon {
			env.BindVar(sym, Nil)
		} else {
			env.BindVar(sym, Nil)
		}
		v = c.Cdr
	}
}

// specialFormHandler implements one kernel special form. args is the
// already-flattened, unevaluated argument list (form's cdr); form is the
// original cons, retained for special forms (e.g. defun) that need it.
type specialFormHandler func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error)

var specialForms map[*Symbol]specialFormHandler

func registerSpecialForm(name string, h specialFormHandler) {
	if specialForms == nil {
		specialForms = make(map[*Symbol]specialFormHandler)
	}
	specialForms[Sym(name)] = h
}

func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Nil
}

func init() {
	registerSpecialForm("quote", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		return arg(args, 0), nil
	})
	registerSpecialForm("progn", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		return ev.evalProgn(args, env)
	})
	registerSpecialForm("prog1", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		if len(args) == 0 {
			return Nil, nil
		}
		first, err := ev.Eval(args[0], env)
		if err != nil {
			return Nil, err
		}
		if _, err := ev.evalProgn(args[1:], env); err != nil {
			return Nil, err
		}
		return first, nil
	})
	registerSpecialForm("if", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		test, err := ev.Eval(arg(args, 0), env)
		if err != nil {
			return Nil, err
		}
		if Truthy(test) {
			return ev.Eval(arg(args, 1), env)
		}
		return ev.Eval(arg(args, 2), env)
	})
	registerSpecialForm("and", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		var result Value = T
		for _, a := range args {
			v, err := ev.Eval(a, env)
			if err != nil {
				return Nil, err
			}
			if !Truthy(v) {
				return Nil, nil
			}
			result = v
		}
		return result, nil
	})
	registerSpecialForm("or", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		for _, a := range args {
			v, err := ev.Eval(a, env)
			if err != nil {
				return Nil, err
			}
			if Truthy(v) {
				return v, nil
			}
		}
		return Nil, nil
	})
	registerSpecialForm("cond", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		for _, clauseForm := range args {
			clause, _ := ListToSlice(clauseForm)
			if len(clause) == 0 {
				continue
			}
			test, err := ev.Eval(clause[0], env)
			if err != nil {
				return Nil, err
			}
			if Truthy(test) {
				if len(clause) == 1 {
					return test, nil
				}
				return ev.evalProgn(clause[1:], env)
			}
		}
		return Nil, nil
	})
	registerSpecialForm("let", specialFormLet(false))
	registerSpecialForm("let*", specialFormLet(true))
	registerSpecialForm("lambda", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		if len(args) == 0 {
			return Nil, newEvalError("lambda: missing parameter list")
		}
		return &Function{Name: "lambda", Params: args[0], Body: List(args[1:]...), Env: env}, nil
	})
	registerSpecialForm("call", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		if len(args) == 0 {
			return Nil, newEvalError("call: missing function")
		}
		fn, err := ev.Eval(args[0], env)
		if err != nil {
			return Nil, err
		}
		callArgs := make([]Value, 0, len(args)-1)
		for _, a := range args[1:] {
			v, err := ev.Eval(a, env)
			if err != nil {
				return Nil, err
			}
			callArgs = append(callArgs, v)
		}
		return ev.Apply(fn, callArgs)
	})
	registerSpecialForm("fun", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		sym, ok := arg(args, 0).(*Symbol)
		if !ok {
			return Nil, newEvalError("fun: expected a symbol")
		}
		v, ok := ev.lookupFunction(env, sym)
		if !ok {
			return Nil, newEvalError("fun: unbound function: %s", sym.Name)
		}
		return v, nil
	})
	registerSpecialForm("defvar", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		sym, ok := arg(args, 0).(*Symbol)
		if !ok || !sym.Bindable() {
			return Nil, newEvalError("defvar: expected a bindable symbol")
		}
		v, err := ev.Eval(arg(args, 1), env)
		if err != nil {
			return Nil, err
		}
		ev.Top.DefVar(sym, v)
		return sym, nil
	})
	registerSpecialForm("defun", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		sym, ok := arg(args, 0).(*Symbol)
		if !ok || !sym.Bindable() {
			return Nil, newEvalError("defun: expected a bindable symbol")
		}
		if len(args) < 2 {
			return Nil, newEvalError("defun: missing parameter list")
		}
		params := args[1]
		body := args[2:]
		blockBody := []Value{NewCons(Sym("block"), NewCons(sym, List(body...)))}
		fn := &Function{Name: sym.Name, Params: params, Body: List(blockBody...), Env: nil}
		ev.Top.DefFun(sym, fn)
		return sym, nil
	})
	registerSpecialForm("block", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		name, _ := arg(args, 0).(*Symbol)
		if IsNil(arg(args, 0)) {
			name = anonBlockName
		}
		return ev.evalBlock(name, args[1:], env)
	})
	registerSpecialForm("return-from", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		name, ok := arg(args, 0).(*Symbol)
		if !ok {
			return Nil, newEvalError("return-from: expected a block name")
		}
		return ev.evalReturnFrom(name, arg(args, 1), env)
	})
	registerSpecialForm("unwind-protect", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		if len(args) == 0 {
			return Nil, newEvalError("unwind-protect: missing protected form")
		}
		return ev.evalUnwindProtect(args[0], args[1:], env)
	})
	registerSpecialForm("catch", specialFormCatch)
	registerSpecialForm("for", specialFormFor(false))
	registerSpecialForm("for*", specialFormFor(true))
	registerSpecialForm("each", specialFormEach(false, false))
	registerSpecialForm("each*", specialFormEach(true, false))
	registerSpecialForm("collect-each", specialFormEach(false, true))
	registerSpecialForm("collect-each*", specialFormEach(true, true))
	registerSpecialForm("dohash", specialFormDohash)
	registerSpecialForm("do", func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		return ev.evalProgn(args, NewChildEnv(env))
	})
	registerSpecialForm("dwim", specialFormDwim)
	registerSpecialForm("quasi", specialFormQuasi)
	registerSpecialForm("set", placeOpSet)
	registerSpecialForm("inc", placeOpInc)
	registerSpecialForm("dec", placeOpDec)
	registerSpecialForm("push", placeOpPush)
	registerSpecialForm("pop", placeOpPop)
	registerSpecialForm("flip", placeOpFlip)
	registerSpecialForm("del", placeOpDel)
}

func specialFormLet(sequential bool) specialFormHandler {
	return func(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
		if len(args) == 0 {
			return Nil, newEvalError("let: missing binding list")
		}
		bindForms, _ := ListToSlice(args[0])
		letEnv := NewChildEnv(env)
		type pending struct {
			sym  *Symbol
			init Value
		}
		var pendings []pending
		initEnv := env
		if sequential {
			initEnv = letEnv
		}
		for _, bf := range bindForms {
			var sym *Symbol
			var initForm Value = Nil
			if s, ok := bf.(*Symbol); ok {
				sym = s
			} else {
				parts, _ := ListToSlice(bf)
				if len(parts) == 0 {
					return Nil, newEvalError("let: bad binding")
				}
				s, ok := parts[0].(*Symbol)
				if !ok {
					return Nil, newEvalError("let: bad binding target")
				}
				sym = s
				if len(parts) > 1 {
					initForm = parts[1]
				}
			}
			if !sym.Bindable() {
				return Nil, newEvalError("let: non-bindable symbol: %s", sym.Name)
			}
			if sequential {
				v, err := ev.Eval(initForm, initEnv)
				if err != nil {
					return Nil, err
				}
				letEnv.BindVar(sym, v)
			} else {
				pendings = append(pendings, pending{sym, initForm})
			}
		}
		if !sequential {
			values := make([]Value, len(pendings))
			for i, p := range pendings {
				v, err := ev.Eval(p.init, env)
				if err != nil {
					return Nil, err
				}
				values[i] = v
			}
			for i, p := range pendings {
				letEnv.BindVar(p.sym, values[i])
			}
		}
		return ev.evalProgn(args[1:], letEnv)
	}
}

func specialFormCatch(ev *Evaluator, args []Value, env *Env, form *Cons) (Value, error) {
	if len(args) < 2 {
		return Nil, newEvalError("catch: malformed kernel catch form")
	}
	tagForms, _ := ListToSlice(args[0])
	tags := make([]*Symbol, 0, len(tagForms))
	for _, tf := range tagForms {
		if s, ok := tf.(*Symbol); ok {
			tags = append(tags, s)
		}
	}
	tryForm := args[1]
	var clauses []catchClause
	for _, cf := range args[2:] {
		parts, _ := ListToSlice(cf)
		if len(parts) < 2 {
			continue
		}
		tagSym, ok := parts[0].(*Symbol)
		if !ok {
			continue
		}
		clauses = append(clauses, catchClause{Tag: tagSym, Params: parts[1], Body: parts[2:]})
	}
	return ev.evalCatch(tags, tryForm, clauses, env)
}
