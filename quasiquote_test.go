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

func TestQuasiquoteUnquoteAndSplice(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, "`(1 ,(+ 1 1) ,@(list 3 4) 5)")
	require.Equal(t, "(1 2 3 4 5)", PrintRepr(v))
}

func TestQuasiquoteRoundTripWithoutUnquote(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, "(equal `(a b c) '(a b c))")
	require.True(t, Truthy(v))
}

func TestQuasiquoteNestedDepth(t *testing.T) {
	ev := NewEvaluator()
	v := lastResult(t, ev, "``(a ,(b ,(+ 1 2)))")
	require.Equal(t, "(qquote (a ,(b 3)))", PrintRepr(v))
}
