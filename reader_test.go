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

func readOne(t *testing.T, src string) Value {
	t.Helper()
	v, err := NewReader("<test>", src).Read()
	require.NoError(t, err)
	return v
}

func TestReaderList(t *testing.T) {
	v := readOne(t, "(1 2 3)")
	require.Equal(t, "(1 2 3)", PrintRepr(v))
}

func TestReaderDottedPair(t *testing.T) {
	v := readOne(t, "(1 . 2)")
	require.Equal(t, "(1 . 2)", PrintRepr(v))
}

func TestReaderVectorLiteral(t *testing.T) {
	v := readOne(t, "#(1 2 3)")
	require.Equal(t, "#(1 2 3)", PrintRepr(v))
}

func TestReaderCharacterLiterals(t *testing.T) {
	require.Equal(t, Character('a'), readOne(t, `#\a`))
	require.Equal(t, Character(' '), readOne(t, `#\space`))
	require.Equal(t, Character('\n'), readOne(t, `#\newline`))
	require.Equal(t, Character('\t'), readOne(t, `#\tab`))
}

func TestReaderStringEscapes(t *testing.T) {
	v := readOne(t, `"a\nb\"c"`)
	s, ok := v.(*StringObj)
	require.True(t, ok)
	require.Equal(t, "a\nb\"c", s.String())
}

func TestReaderQuoteSugar(t *testing.T) {
	require.Equal(t, "'a", PrintRepr(readOne(t, "'a")))
	require.Equal(t, "(qquote a)", PrintRepr(readOne(t, "`a")))
	require.Equal(t, ",a", PrintRepr(readOne(t, ",a")))
	require.Equal(t, ",@a", PrintRepr(readOne(t, ",@a")))
}

func TestReaderKeywordAndNilAndT(t *testing.T) {
	kw, ok := readOne(t, ":foo").(*Symbol)
	require.True(t, ok)
	require.True(t, IsNil(readOne(t, "nil")))
	require.Equal(t, T, readOne(t, "t"))
	require.Equal(t, "foo", kw.Name)
}

func TestReaderComment(t *testing.T) {
	v := readOne(t, "; a comment\n42")
	require.Equal(t, Integer(42), v)
}

func TestReaderOpImplicitArgMarkers(t *testing.T) {
	require.Equal(t, "(var 1)", PrintRepr(readOne(t, "@1")))
	require.Equal(t, "(var rest)", PrintRepr(readOne(t, "@rest")))
}

func TestReaderAllMultipleForms(t *testing.T) {
	forms, err := NewReader("<test>", "1 2 3").ReadAll()
	require.NoError(t, err)
	require.Len(t, forms, 3)
}
