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

func TestEnvShadowing(t *testing.T) {
	parent := NewChildEnv(nil)
	parent.BindVar(Sym("x"), Integer(1))
	child := NewChildEnv(parent)
	child.BindVar(Sym("x"), Integer(2))

	cell, ok := child.findVar(Sym("x"))
	require.True(t, ok)
	require.Equal(t, Integer(2), *cell)

	pcell, ok := parent.findVar(Sym("x"))
	require.True(t, ok)
	require.Equal(t, Integer(1), *pcell)
}

func TestEnvMutationVisibleThroughClosureCell(t *testing.T) {
	env := NewChildEnv(nil)
	env.BindVar(Sym("y"), Integer(1))
	cell, _ := env.findVar(Sym("y"))
	*cell = Integer(42)
	cell2, _ := env.findVar(Sym("y"))
	require.Equal(t, Integer(42), *cell2)
}

func TestTopLevelDefVarOverwritesSameCell(t *testing.T) {
	tl := newTopLevel()
	tl.DefVar(Sym("z"), Integer(1))
	cell, ok := tl.VarCell(Sym("z"))
	require.True(t, ok)
	tl.DefVar(Sym("z"), Integer(2))
	require.Equal(t, Integer(2), *cell, "DefVar on an existing binding must mutate the same cell")
}

func TestTopLevelCBackedVariable(t *testing.T) {
	tl := newTopLevel()
	var stored Value = Integer(1)
	tl.RegisterCBackedVariable(Sym("cb"), func() Value { return stored }, func(v Value) { stored = v })

	v, ok := tl.LookupVar(Sym("cb"))
	require.True(t, ok)
	require.Equal(t, Integer(1), v)

	require.True(t, tl.SetVar(Sym("cb"), Integer(9)))
	require.Equal(t, Integer(9), stored)
}

func TestTopLevelSetVarMissingFails(t *testing.T) {
	tl := newTopLevel()
	require.False(t, tl.SetVar(Sym("missing"), Integer(1)))
}

func TestLookupVariableEnvThenTopLevel(t *testing.T) {
	ev := &Evaluator{Top: newTopLevel()}
	ev.Top.DefVar(Sym("shared"), Integer(100))

	v, ok := ev.lookupVariable(nil, Sym("shared"))
	require.True(t, ok)
	require.Equal(t, Integer(100), v)

	env := NewChildEnv(nil)
	env.BindVar(Sym("shared"), Integer(1))
	v, ok = ev.lookupVariable(env, Sym("shared"))
	require.True(t, ok)
	require.Equal(t, Integer(1), v, "a local binding must shadow the top-level one")
}
