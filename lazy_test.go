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

func TestLazyRangeFirstThreeElements(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(let ((r (range 0 nil 1))) (list (car r) (car (cdr r)) (car (cdr (cdr r)))))`)
	require.Equal(t, "(0 1 2)", PrintRepr(v))
}

func TestLazyRangeForcingTenElements(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defun take-n (l n) (if (= n 0) nil (cons (car l) (take-n (cdr l) (- n 1)))))
		(take-n (range 0 nil 1) 10)
	`)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	require.Equal(t, "(0 1 2 3 4 5 6 7 8 9)", PrintRepr(report.Results[1]))
}

func TestLazyDelayForceIdempotentWithSideEffect(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defvar *n* 0)
		(defvar *p* (delay (progn (set *n* (+ *n* 1)) *n*)))
		(force *p*)
		(force *p*)
		*n*
	`)
	require.NoError(t, err)
	require.Len(t, report.Results, 5)
	require.Equal(t, Integer(1), report.Results[4])
}

func TestLazyRepeatCyclesList(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defun take-n (l n) (if (= n 0) nil (cons (car l) (take-n (cdr l) (- n 1)))))
		(take-n (repeat (list 1 2)) 5)
	`)
	require.NoError(t, err)
	require.Equal(t, "(1 2 1 2 1)", PrintRepr(report.Results[1]))
}
