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

// registerMatchBuiltins wires match-regex, search-regex, and match-fun to
// the Evaluator's collab.Matcher collaborator (spec.md §6 lists matching
// among the built-in surface but treats the matcher itself as an external
// collaborator). Regexes are compiled on every call rather than cached: no
// part of SPEC_FULL.md calls for a compiled-pattern value type, and the
// underlying regexp.Compile is cheap relative to the interpretive overhead
// already present everywhere else in this evaluator.
func registerMatchBuiltins(ev *Evaluator) {
	def := func(name string, fixed, optional int, variadic bool, fn BuiltinFn) {
		ev.Top.DefFun(Sym(name), nativeFn(name, fixed, optional, variadic, fn))
	}

	def("match-regex", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		pat, s, err := regexArgs("match-regex", a[0], a[1])
		if err != nil {
			return Nil, err
		}
		re, err := ev.Matcher.CompileRegex(pat)
		if err != nil {
			return Nil, newQueryError("match-regex: bad pattern: %v", err)
		}
		ok, groups := ev.Matcher.MatchRegex(re, s)
		if !ok {
			return Nil, nil
		}
		return groupsToList(groups), nil
	})

	def("search-regex", 2, 1, false, func(ev *Evaluator, a []Value) (Value, error) {
		pat, s, err := regexArgs("search-regex", a[0], a[1])
		if err != nil {
			return Nil, err
		}
		start := 0
		if n, ok := a[2].(Integer); ok {
			start = int(n)
		}
		re, err := ev.Matcher.CompileRegex(pat)
		if err != nil {
			return Nil, newQueryError("search-regex: bad pattern: %v", err)
		}
		idx, _, groups := ev.Matcher.SearchRegex(re, s, start)
		if idx < 0 {
			return Nil, nil
		}
		return NewCons(Integer(idx), groupsToList(groups)), nil
	})

	def("match-fun", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		_, err := ev.Matcher.MatchFun(a[0], a[1])
		if err != nil {
			return Nil, newQueryError("match-fun: %v", err)
		}
		return Nil, nil
	})
}

func regexArgs(who string, patV, sV Value) (pat, s string, err error) {
	p, ok := patV.(*StringObj)
	if !ok {
		return "", "", newTypeError("%s: pattern must be a string", who)
	}
	str, ok := sV.(*StringObj)
	if !ok {
		return "", "", newTypeError("%s: input must be a string", who)
	}
	return p.String(), str.String(), nil
}

func groupsToList(groups []string) Value {
	items := make([]Value, len(groups))
	for i, g := range groups {
		items[i] = NewString(g)
	}
	return List(items...)
}
