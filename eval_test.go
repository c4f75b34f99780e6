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

func TestEvalSelfEvaluatingAtoms(t *testing.T) {
	ev := NewEvaluator()
	require.Equal(t, Integer(5), lastResult(t, ev, "5"))
	require.Equal(t, T, lastResult(t, ev, "t"))
	require.True(t, IsNil(lastResult(t, ev, "nil")))
	v := lastResult(t, ev, `"hi"`)
	require.Equal(t, "hi", v.(*StringObj).String())
}

func TestEvalUnboundVariableIsAnError(t *testing.T) {
	ev := NewEvaluator()
	_, err := ev.LoadString("<test>", "nosuchvar")
	require.Error(t, err)
}

func TestEvalUnboundFunctionIsAnError(t *testing.T) {
	ev := NewEvaluator()
	_, err := ev.LoadString("<test>", "(nosuchfun 1 2)")
	require.Error(t, err)
}

func TestEvalLambdaClosureCapturesDefiningEnv(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `
		(let ((make-adder (lambda (n) (lambda (x) (+ x n)))))
		  (let ((add5 (call make-adder 5)))
		    (call add5 10)))
	`)
	require.Equal(t, Integer(15), v)
}

func TestEvalDirectLambdaCallFormHeadNotRequiredToBeSymbol(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `((lambda (x) (* x x)) 6)`)
	require.Equal(t, Integer(36), v)
}

func TestEvalLisp1AndLisp2AreDistinctNamespaces(t *testing.T) {
	ev := NewEvaluator()
	// `list` names a builtin function; binding it as a variable must not
	// shadow the function slot that a call form resolves against.
	v := lastResult(t, ev, `(let ((list 99)) (list list 1 2))`)
	require.Equal(t, "(99 1 2)", PrintRepr(v))
}

func TestEvalApplyArityErrorsOnTooManyArgs(t *testing.T) {
	ev := NewEvaluator()
	_, err := ev.LoadString("<test>", "(car 1 2)")
	require.Error(t, err)
}

func TestEvalApplyArityErrorsOnTooFewArgsForVariadicMinimum(t *testing.T) {
	ev := NewEvaluator()
	_, err := ev.LoadString("<test>", "(apply)")
	require.Error(t, err)
}

func TestEvalDefunRegistersCallableFunction(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defun square (x) (* x x))
		(square 7)
	`)
	require.NoError(t, err)
	require.Equal(t, Integer(49), report.Results[1])
}
