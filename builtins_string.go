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
	"strconv"
	"strings"
	"unicode"
)

// registerStringBuiltins installs the string- and character-level
// operations beyond the sequence-generic sub-str/replace-str/chr-str-set
// already installed by registerCollectionBuiltins: concatenation, case
// conversion, splitting/joining, trimming, lexical comparison, integer
// parsing, and the chr-is*/chr-to* character classification family.
func registerStringBuiltins(ev *Evaluator) {
	def := func(name string, fixed, optional int, variadic bool, fn BuiltinFn) {
		ev.Top.DefFun(Sym(name), nativeFn(name, fixed, optional, variadic, fn))
	}

	def("mkstring", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		n, ok := a[0].(Integer)
		if !ok || n < 0 {
			return Nil, newTypeError("mkstring: length must be a non-negative integer")
		}
		c, ok := a[1].(Character)
		if !ok {
			return Nil, newTypeError("mkstring: fill value must be a character")
		}
		runes := make([]rune, n)
		for i := range runes {
			runes[i] = rune(c)
		}
		return &StringObj{Runes: runes}, nil
	})
	def("copy-str", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		s, ok := a[0].(*StringObj)
		if !ok {
			return Nil, newTypeError("copy-str: not a string")
		}
		runes := make([]rune, len(s.Runes))
		copy(runes, s.Runes)
		return &StringObj{Runes: runes}, nil
	})
	def("upcase-str", 1, 0, false, stringMap(unicode.ToUpper))
	def("downcase-str", 1, 0, false, stringMap(unicode.ToLower))

	def("cat-str", 1, 1, false, func(ev *Evaluator, a []Value) (Value, error) {
		items, tail := ListToSlice(a[0])
		if !IsNil(tail) {
			return Nil, newTypeError("cat-str: improper list")
		}
		sep := ""
		if s, ok := a[1].(*StringObj); ok {
			sep = s.String()
		}
		parts := make([]string, len(items))
		for i, it := range items {
			s, ok := it.(*StringObj)
			if !ok {
				return Nil, newTypeError("cat-str: expected a list of strings")
			}
			parts[i] = s.String()
		}
		return NewString(strings.Join(parts, sep)), nil
	})
	def("split-str", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		s, ok := a[0].(*StringObj)
		if !ok {
			return Nil, newTypeError("split-str: not a string")
		}
		sep, ok := a[1].(*StringObj)
		if !ok {
			return Nil, newTypeError("split-str: separator not a string")
		}
		parts := strings.Split(s.String(), sep.String())
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = NewString(p)
		}
		return List(out...), nil
	})
	def("split-str-set", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		s, ok := a[0].(*StringObj)
		if !ok {
			return Nil, newTypeError("split-str-set: not a string")
		}
		set, ok := a[1].(*StringObj)
		if !ok {
			return Nil, newTypeError("split-str-set: separator set not a string")
		}
		parts := strings.FieldsFunc(s.String(), func(r rune) bool {
			return strings.ContainsRune(set.String(), r)
		})
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = NewString(p)
		}
		return List(out...), nil
	})
	def("list-str", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		s, ok := a[0].(*StringObj)
		if !ok {
			return Nil, newTypeError("list-str: not a string")
		}
		out := make([]Value, len(s.Runes))
		for i, r := range s.Runes {
			out[i] = Character(r)
		}
		return List(out...), nil
	})
	def("trim-str", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		s, ok := a[0].(*StringObj)
		if !ok {
			return Nil, newTypeError("trim-str: not a string")
		}
		return NewString(strings.TrimSpace(s.String())), nil
	})
	def("string-lt", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		x, ok1 := a[0].(*StringObj)
		y, ok2 := a[1].(*StringObj)
		if !ok1 || !ok2 {
			return Nil, newTypeError("string-lt: expected strings")
		}
		return Bool(x.String() < y.String()), nil
	})
	def("int-str", 1, 1, false, func(ev *Evaluator, a []Value) (Value, error) {
		s, ok := a[0].(*StringObj)
		if !ok {
			return Nil, newTypeError("int-str: not a string")
		}
		base := 10
		if b, ok := a[1].(Integer); ok {
			base = int(b)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s.String()), base, 64)
		if err != nil {
			return Nil, nil
		}
		return Integer(n), nil
	})

	def("chr-num", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		c, ok := a[0].(Character)
		if !ok {
			return Nil, newTypeError("chr-num: not a character")
		}
		return Integer(c), nil
	})
	def("chr-str", 2, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		s, ok := a[0].(*StringObj)
		if !ok {
			return Nil, newTypeError("chr-str: not a string")
		}
		i, ok := a[1].(Integer)
		if !ok {
			return Nil, newTypeError("chr-str: index not an integer")
		}
		idx, err := normIndex(int(i), s.Len())
		if err != nil || idx >= s.Len() {
			return Nil, newRangeError("chr-str: index out of range: %d", i)
		}
		return Character(s.Runes[idx]), nil
	})

	for name, pred := range map[string]func(rune) bool{
		"chr-isalnum": func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
		"chr-isalpha": unicode.IsLetter,
		"chr-isdigit": unicode.IsDigit,
		"chr-isspace": unicode.IsSpace,
		"chr-isupper": unicode.IsUpper,
		"chr-islower": unicode.IsLower,
		"chr-ispunct": unicode.IsPunct,
		"chr-isprint": unicode.IsPrint,
		"chr-iscntrl": unicode.IsControl,
		"chr-isascii": func(r rune) bool { return r < 0x80 },
		"chr-isgraph": func(r rune) bool { return unicode.IsGraphic(r) && !unicode.IsSpace(r) },
		"chr-isxdigit": func(r rune) bool {
			return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		},
	} {
		p := pred
		def(name, 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
			c, ok := a[0].(Character)
			if !ok {
				return Nil, newTypeError("%s: not a character", name)
			}
			return Bool(p(rune(c))), nil
		})
	}
	def("chr-toupper", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		c, ok := a[0].(Character)
		if !ok {
			return Nil, newTypeError("chr-toupper: not a character")
		}
		return Character(unicode.ToUpper(rune(c))), nil
	})
	def("chr-tolower", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		c, ok := a[0].(Character)
		if !ok {
			return Nil, newTypeError("chr-tolower: not a character")
		}
		return Character(unicode.ToLower(rune(c))), nil
	})
}

// stringMap builds a one-arg string->string builtin applying f to every
// rune, backing upcase-str/downcase-str.
func stringMap(f func(rune) rune) BuiltinFn {
	return func(ev *Evaluator, a []Value) (Value, error) {
		s, ok := a[0].(*StringObj)
		if !ok {
			return Nil, newTypeError("not a string")
		}
		runes := make([]rune, len(s.Runes))
		for i, r := range s.Runes {
			runes[i] = f(r)
		}
		return &StringObj{Runes: runes}, nil
	}
}
