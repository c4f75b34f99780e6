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

func TestExpandLetBasic(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(let ((x 1) (y 2)) (+ x y))`)
	require.Equal(t, Integer(3), v)
}

func TestExpandDefunOptionalMarker(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defun f (a : b) (list a b))
		(f 1)
		(f 1 2)
	`)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	require.Equal(t, "(1 nil)", PrintRepr(report.Results[1]))
	require.Equal(t, "(1 2)", PrintRepr(report.Results[2]))
}

func TestExpandCondFirstMatchingClause(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(cond ((= 1 2) 'a) ((= 1 1) 'b) (t 'c))`)
	require.Equal(t, "b", symbolName(v))
}

func TestExpandWhenUnless(t *testing.T) {
	ev := NewEvaluator()
	v1 := lastResult(t, ev, `(when (= 1 1) 'yes)`)
	require.Equal(t, "yes", symbolName(v1))
	v2 := lastResult(t, ev, `(unless (= 1 1) 'no)`)
	require.True(t, IsNil(v2))
}

func TestExpandDelayProducesForceablePromise(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(force (delay (+ 1 2)))`)
	require.Equal(t, Integer(3), v)
}

func TestExpandDotimesAccumulates(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(let ((total 0)) (dotimes (i 5) (set total (+ total i))) total)`)
	require.Equal(t, Integer(10), v)
}

func TestExpandOpImplicitPositionalArgs(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(dwim (op + @1 @2) 3 4)`)
	require.Equal(t, Integer(7), v)
}

func TestExpandOpImplicitRestArgs(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(dwim (op list @rest) 1 2 3)`)
	require.Equal(t, "(1 2 3)", PrintRepr(v))
}
