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

	"github.com/google/go-cmp/cmp"
)

// structureOf flattens a Value into a plain Go tree (nested []any/strings/
// int64) that cmp.Diff can compare structurally, independent of this
// package's pointer identity for conses/vectors -- used by tests that want
// to assert "same shape" without reaching for Equal's own boolean verdict.
func structureOf(v Value) any {
	switch vv := v.(type) {
	case nilT:
		return nil
	case Integer:
		return int64(vv)
	case Character:
		return rune(vv)
	case *Symbol:
		return vv.String()
	case *StringObj:
		return vv.String()
	case *Cons:
		items, tail := ListToSlice(vv)
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = structureOf(it)
		}
		if !IsNil(tail) {
			return map[string]any{"list": out, "tail": structureOf(tail)}
		}
		return out
	case *Vector:
		out := make([]any, len(vv.Items))
		for i, it := range vv.Items {
			out[i] = structureOf(it)
		}
		return map[string]any{"vector": out}
	default:
		return PrintRepr(v)
	}
}

func requireSameStructure(t *testing.T, want, got Value) {
	t.Helper()
	if diff := cmp.Diff(structureOf(want), structureOf(got)); diff != "" {
		t.Fatalf("structure mismatch (-want +got):\n%s", diff)
	}
}

func TestStructureOfDiffAcceptsMatchingNestedList(t *testing.T) {
	ev := NewEvaluator()
	got := lastResult(t, ev, "(list 1 (list 2 3) 4)")
	want := List(Integer(1), List(Integer(2), Integer(3)), Integer(4))
	requireSameStructure(t, want, got)
}

func TestStructureOfDiffAcceptsMatchingVector(t *testing.T) {
	ev := NewEvaluator()
	got := lastResult(t, ev, "(vector 1 2 3)")
	want := NewVector(Integer(1), Integer(2), Integer(3))
	requireSameStructure(t, want, got)
}
