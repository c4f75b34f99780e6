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

func TestBlockReturnFromRunsUnwindProtectExactlyOnce(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defvar *c* 0)
		(block b (unwind-protect (return-from b 1) (set *c* (+ *c* 1))))
		*c*
	`)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	require.Equal(t, Integer(1), report.Results[1])
	require.Equal(t, Integer(1), report.Results[2])
}

func TestCatchCatchesThrowThroughUnwindProtect(t *testing.T) {
	ev := NewEvaluator()
	report, err := ev.LoadString("<test>", `
		(defvar *ran* nil)
		(catch (unwind-protect (throw 'err 'a) (set *ran* 'ran)) (err (x) x))
		*ran*
	`)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	require.Equal(t, "a", symbolName(report.Results[1]))
	require.Equal(t, "ran", symbolName(report.Results[2]))
}

func TestCatchMatchesRegisteredExceptionSubtype(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, `(catch (car 5) (error (x) 'caught))`)
	require.Equal(t, "caught", symbolName(v))
}

func TestCatchUnmatchedTagPropagates(t *testing.T) {
	ev := NewEvaluator()
	_, err := ev.LoadString("<test>", `(catch (throw 'other 1) (err (x) x))`)
	require.Error(t, err)
}

func symbolName(v Value) string {
	sym, ok := v.(*Symbol)
	if !ok {
		return ""
	}
	return sym.Name
}
