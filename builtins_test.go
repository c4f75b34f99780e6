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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinNumericArithmetic(t *testing.T) {
	ev := NewEvaluator()
	require.Equal(t, Integer(10), lastResult(t, ev, "(+ 1 2 3 4)"))
	require.Equal(t, Integer(24), lastResult(t, ev, "(* 1 2 3 4)"))
	require.Equal(t, Integer(-4), lastResult(t, ev, "(- 1 2 3)"))
}

func TestBuiltinLengthReverseInvariant(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defvar *l* (list 1 2 3 4 5))
		(= (length *l*) (length (reverse *l*)))
		(equal (reverse (reverse *l*)) *l*)
	`)
	require.NoError(t, err)
	require.True(t, Truthy(report.Results[1]))
	require.True(t, Truthy(report.Results[2]))
}

func TestBuiltinSetVarPersistsTopLevelValue(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defvar *s* 'init)
		(set *s* 7)
		*s*
	`)
	require.NoError(t, err)
	require.Equal(t, Integer(7), report.Results[2])
}

func TestBuiltinStringCaseAndConcat(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(upcase-str "abc")`)
	require.Equal(t, "ABC", v.(*StringObj).String())

	v2 := lastResult(t, ev, `(cat-str (list "a" "b" "c") "-")`)
	require.Equal(t, "a-b-c", v2.(*StringObj).String())
}

func TestBuiltinSplitStr(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(split-str "a,b,c" ",")`)
	require.Equal(t, `("a" "b" "c")`, PrintRepr(v))
}

func TestBuiltinCharacterPredicates(t *testing.T) {
	ev := NewEvaluator()
	require.True(t, Truthy(lastResult(t, ev, `(chr-isdigit #\5)`)))
	require.True(t, IsNil(lastResult(t, ev, `(chr-isdigit #\a)`)))
	require.Equal(t, Character('A'), lastResult(t, ev, `(chr-toupper #\a)`))
}

func TestBuiltinVectorMutation(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(let ((v (vector 1 2 3))) (vec-push v 4) v)`)
	require.Equal(t, "#(1 2 3 4)", PrintRepr(v))
}

func TestBuiltinHashGetSetDel(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defvar *h* (make-hash nil t nil))
		(set (gethash *h* 'a) 1)
		(gethash *h* 'a)
		(del (gethash *h* 'a))
		(gethash *h* 'a)
	`)
	require.NoError(t, err)
	require.Equal(t, Integer(1), report.Results[2])
	require.True(t, IsNil(report.Results[4]))
}

func TestBuiltinStringOutputStreamRoundTrip(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `
		(let ((s (make-string-output-stream)))
		  (put-string "hello" s)
		  (put-line " world" s)
		  (get-string-from-stream s))
	`)
	require.Equal(t, "hello world\n", v.(*StringObj).String())
}

func TestBuiltinStringInputStreamGetLine(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(get-line (make-string-input-stream "one\ntwo\n"))`)
	require.Equal(t, "one\ntwo\n", v.(*StringObj).String())
}

func TestBuiltinRandomWithinBounds(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(random 10)`)
	n, ok := v.(Integer)
	require.True(t, ok)
	require.True(t, n >= 0 && n < 10)
}

func TestBuiltinRandomStateForkIsDeterministic(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defvar *s1* (make-random-state 42))
		(defvar *s2* (make-random-state 42))
		(random 1000 *s1*)
		(random 1000 *s2*)
	`)
	require.NoError(t, err)
	require.Equal(t, report.Results[2], report.Results[3])
}

func TestBuiltinMatchRegex(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(match-regex "[0-9]+" "42")`)
	require.False(t, IsNil(v))
}
