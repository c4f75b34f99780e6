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
	"io"

	"github.com/kwalsh-lang/lcore/internal/collab"
)

// StreamObj wraps the collab.Stream collaborator as a first-class value,
// the Lisp-level "stream" type spec.md lists in the value model but treats
// as an external collaborator's concern.
type StreamObj struct {
	S collab.Stream
}

func (*StreamObj) typeName() string { return "stream" }

// registerIOBuiltins installs put-string/put-line/put-char, get-line/
// get-char, and the string-stream constructors, plus *stdout*/*stdin*
// bound to the Evaluator's wired collab.Stream (spec.md §7: "I/O failures
// during built-in stream operations fail with file-error or
// process-error"). Every reader/writer takes its stream argument last,
// defaulting to the process stream when omitted.
func registerIOBuiltins(ev *Evaluator) {
	def := func(name string, fixed, optional int, variadic bool, fn BuiltinFn) {
		ev.Top.DefFun(Sym(name), nativeFn(name, fixed, optional, variadic, fn))
	}

	ev.Top.DefVar(Sym("*stdout*"), &StreamObj{S: ev.Stdio})
	ev.Top.DefVar(Sym("*stdin*"), &StreamObj{S: ev.Stdio})

	def("make-string-input-stream", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		s, ok := a[0].(*StringObj)
		if !ok {
			return Nil, newTypeError("make-string-input-stream: not a string")
		}
		return &StreamObj{S: collab.NewStringInputStream(s.String())}, nil
	})
	def("make-string-output-stream", 0, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		return &StreamObj{S: collab.NewStringOutputStream()}, nil
	})
	def("get-string-from-stream", 1, 0, false, func(ev *Evaluator, a []Value) (Value, error) {
		st, ok := a[0].(*StreamObj)
		if !ok {
			return Nil, newTypeError("get-string-from-stream: not a stream")
		}
		ss, ok := st.S.(*collab.StringStream)
		if !ok {
			return Nil, newTypeError("get-string-from-stream: not a string-output-stream")
		}
		return NewString(ss.String()), nil
	})

	def("put-string", 1, 1, false, func(ev *Evaluator, a []Value) (Value, error) {
		st, err := ev.asStream(a[1])
		if err != nil {
			return Nil, err
		}
		if _, werr := st.S.WriteString(PrintDisplay(a[0])); werr != nil {
			return Nil, wrapCollaboratorError("file-error", werr, "put-string")
		}
		return T, nil
	})
	def("put-line", 1, 1, false, func(ev *Evaluator, a []Value) (Value, error) {
		st, err := ev.asStream(a[1])
		if err != nil {
			return Nil, err
		}
		if _, werr := st.S.WriteString(PrintDisplay(a[0]) + "\n"); werr != nil {
			return Nil, wrapCollaboratorError("file-error", werr, "put-line")
		}
		return T, nil
	})
	def("put-char", 1, 1, false, func(ev *Evaluator, a []Value) (Value, error) {
		c, ok := a[0].(Character)
		if !ok {
			return Nil, newTypeError("put-char: not a character")
		}
		st, err := ev.asStream(a[1])
		if err != nil {
			return Nil, err
		}
		if _, werr := st.S.WriteString(string(rune(c))); werr != nil {
			return Nil, wrapCollaboratorError("file-error", werr, "put-char")
		}
		return T, nil
	})
	def("get-line", 0, 1, false, func(ev *Evaluator, a []Value) (Value, error) {
		st, err := ev.asStream(a[0])
		if err != nil {
			return Nil, err
		}
		line, rerr := st.S.ReadLine()
		if rerr != nil && rerr != io.EOF {
			return Nil, wrapCollaboratorError("file-error", rerr, "get-line")
		}
		if rerr == io.EOF && line == "" {
			return Nil, nil
		}
		return NewString(line), nil
	})
	def("get-char", 0, 1, false, func(ev *Evaluator, a []Value) (Value, error) {
		st, err := ev.asStream(a[0])
		if err != nil {
			return Nil, err
		}
		r, rerr := st.S.ReadChar()
		if rerr != nil {
			if rerr == io.EOF {
				return Nil, nil
			}
			return Nil, wrapCollaboratorError("file-error", rerr, "get-char")
		}
		return Character(r), nil
	})
}

// asStream resolves v to a *StreamObj, defaulting Nil to ev's own wired
// process stream.
func (ev *Evaluator) asStream(v Value) (*StreamObj, error) {
	if IsNil(v) {
		return &StreamObj{S: ev.Stdio}, nil
	}
	st, ok := v.(*StreamObj)
	if !ok {
		return nil, newTypeError("not a stream: %s", PrintRepr(v))
	}
	return st, nil
}
