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

func lastResult(t *testing.T, ev *Evaluator, src string) Value {
	t.Helper()
	report, err := ev.LoadString("<test>", src)
	require.NoError(t, err)
	require.NotEmpty(t, report.Results)
	return report.Results[len(report.Results)-1]
}

func TestPlaceIdentityThroughCar(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(let ((x (list 1 2 3))) (inc (car x) 10) x)`)
	require.Equal(t, "(11 2 3)", PrintRepr(v))
}

func TestPlaceHashDefaultIncrementsAcrossCalls(t *testing.T) {
	ev := NewEvaluator()
	v1 := lastResult(t, ev, `(defvar h (make-hash nil t nil)) (inc (gethash h 'k 0))`)
	require.Equal(t, Integer(1), v1)
	v2 := lastResult(t, ev, `(inc (gethash h 'k 0))`)
	require.Equal(t, Integer(2), v2)
}

func TestPlaceDwimVectorReadAndRangeWrite(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(dwim (vector 10 20 30) 1)`)
	require.Equal(t, Integer(20), v)

	out := lastResult(t, ev, `(let ((v (vector 1 2 3 4))) (set (dwim v (cons 1 3)) (vector 99)) v)`)
	require.Equal(t, "#(1 99 4)", PrintRepr(out))
}

func TestPlacePushPop(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(let ((l (list 2 3))) (push 1 l) l)`)
	require.Equal(t, "(1 2 3)", PrintRepr(v))

	v2 := lastResult(t, ev, `(let ((l (list 1 2 3))) (list (pop l) l))`)
	require.Equal(t, "(1 (2 3))", PrintRepr(v2))
}

func TestPlaceFlip(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(let ((b t)) (flip b) b)`)
	require.True(t, IsNil(v))
}

func TestPlaceDelRangeOnList(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(let ((l (list 10 20 30 40))) (del (dwim l (cons 1 3))) l)`)
	require.Equal(t, "(10 40)", PrintRepr(v))
}

func TestPlaceDelSingleOnVector(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(let ((v (vector 1 2 3))) (del (dwim v 1)) v)`)
	require.Equal(t, "#(1 3)", PrintRepr(v))
}
