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

func TestListRoundTrip(t *testing.T) {
	l := List(Integer(1), Integer(2), Integer(3))
	items, tail := ListToSlice(l)
	require.True(t, IsNil(tail))
	require.Equal(t, []Value{Integer(1), Integer(2), Integer(3)}, items)
}

func TestLazyConsForceIsIdempotent(t *testing.T) {
	calls := 0
	c := NewLazyCons(func() (Value, Value) {
		calls++
		return Integer(1), Nil
	})
	c.Force()
	c.Force()
	require.Equal(t, 1, calls)
	require.Equal(t, Integer(1), c.Car)
}

func TestEqIdentityVsEqlValue(t *testing.T) {
	a := NewCons(Integer(1), Nil)
	b := NewCons(Integer(1), Nil)
	require.False(t, Eq(a, b))
	require.True(t, Equal(a, b))
	require.True(t, Eql(Integer(7), Integer(7)))
}

func TestEqualStructural(t *testing.T) {
	v1 := NewVector(Integer(1), NewString("x"))
	v2 := NewVector(Integer(1), NewString("x"))
	require.True(t, Equal(v1, v2))
	v2.Items[1] = NewString("y")
	require.False(t, Equal(v1, v2))
}

func TestHashEqualVsEqKeys(t *testing.T) {
	h := MakeHash(true)
	h.Set(NewString("k"), Integer(1))
	v, ok := h.Get(NewString("k"))
	require.True(t, ok)
	require.Equal(t, Integer(1), v)

	h2 := MakeHash(false)
	h2.Set(NewString("k"), Integer(1))
	_, ok = h2.Get(NewString("k"))
	require.False(t, ok, "identity-keyed hash must not match a distinct equal string")
}

func TestHashDel(t *testing.T) {
	h := MakeHash(true)
	h.Set(Integer(1), NewString("a"))
	h.Set(Integer(2), NewString("b"))
	old, ok := h.Del(Integer(1))
	require.True(t, ok)
	require.Equal(t, "a", old.(*StringObj).String())
	require.Equal(t, 1, h.Len())
	_, found := h.Get(Integer(1))
	require.False(t, found)
}

func TestLength(t *testing.T) {
	n, err := Length(List(Integer(1), Integer(2)))
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = Length(NewCons(Integer(1), Integer(2)))
	require.Error(t, err)
}

func TestFunctionArity(t *testing.T) {
	fn := nativeFn("f", 1, 2, true, nil)
	fixed, opt, variadic := fn.Arity()
	require.Equal(t, 1, fixed)
	require.Equal(t, 2, opt)
	require.True(t, variadic)
}
