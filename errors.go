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
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// SourceLoc records a file and line recorded by the parser/expander on a
// form, used for error reporting. A zero value means "unknown location".
type SourceLoc struct {
	File string
	Line int
}

func (l SourceLoc) String() string {
	if l.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d: ", l.File, l.Line)
}

// exceptionTree holds the error-tag subtype relation: uw_register_subtype
// declares child as a subtype of parent, and uw_exception_subtype_p tests
// containment.
var exceptionTree = map[string]string{
	"eval-error":    "error",
	"type-error":    "error",
	"file-error":    "error",
	"process-error": "error",
	"numeric-error": "error",
	"range-error":   "error",
	"query-error":   "error",
	"internal-error": "error",
}

// RegisterExceptionSubtype declares child as a subtype of parent, the Go
// equivalent of uw_register_subtype.
func RegisterExceptionSubtype(child, parent string) {
	exceptionTree[child] = parent
}

// ExceptionSubtypeP reports whether tag is the same as, or a registered
// subtype of, ancestor -- the Go equivalent of uw_exception_subtype_p.
func ExceptionSubtypeP(tag, ancestor string) bool {
	if tag == ancestor {
		return true
	}
	for t := tag; t != ""; {
		parent, ok := exceptionTree[t]
		if !ok {
			return false
		}
		if parent == ancestor {
			return true
		}
		t = parent
	}
	return false
}

// LispError is a thrown exception: a tag from the taxonomy in spec.md §7,
// plus an argument list (commonly a single formatted message string) and
// the source location of the offending form, when known.
type LispError struct {
	Tag  string
	Args []Value
	Loc  SourceLoc
	// Cause wraps an underlying Go error (e.g. a collaborator I/O failure),
	// captured with github.com/pkg/errors so the original stack survives
	// across the re-tagging boundary.
	Cause error
}

func (e *LispError) Error() string {
	msg := e.Tag
	if len(e.Args) > 0 {
		if s, ok := e.Args[0].(*StringObj); ok {
			msg = s.String()
		} else {
			msg = PrintRepr(e.Args[0])
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s: %v", e.Loc, e.Tag, msg, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", e.Loc, e.Tag, msg)
}

func (e *LispError) Unwrap() error { return e.Cause }

// newLispError builds a *LispError with a formatted message argument.
func newLispError(tag string, format string, args ...interface{}) *LispError {
	return &LispError{Tag: tag, Args: []Value{NewString(fmt.Sprintf(format, args...))}}
}

func newEvalError(format string, args ...interface{}) *LispError {
	return newLispError("eval-error", format, args...)
}

func newTypeError(format string, args ...interface{}) *LispError {
	return newLispError("type-error", format, args...)
}

func newRangeError(format string, args ...interface{}) *LispError {
	return newLispError("range-error", format, args...)
}

func newNumericError(format string, args ...interface{}) *LispError {
	return newLispError("numeric-error", format, args...)
}

func newQueryError(format string, args ...interface{}) *LispError {
	return newLispError("query-error", format, args...)
}

// wrapCollaboratorError tags an underlying collaborator failure (stream
// I/O, regex compile) as a file-error or process-error, preserving the
// pkg/errors-wrapped cause for diagnostics.
func wrapCollaboratorError(tag string, cause error, context string) *LispError {
	wrapped := pkgerrors.Wrap(cause, context)
	return &LispError{
		Tag:   tag,
		Args:  []Value{NewString(wrapped.Error())},
		Cause: wrapped,
	}
}

// withLoc attaches a source location to an error if it is a *LispError
// without one already set, returning the (possibly unchanged) error.
func withLoc(err error, loc SourceLoc) error {
	if err == nil || loc.File == "" {
		return err
	}
	if le, ok := err.(*LispError); ok && le.Loc.File == "" {
		le.Loc = loc
	}
	return err
}
