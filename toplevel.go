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
	"os"

	"github.com/hashicorp/go-multierror"
)

// Report summarizes a batch load: how many top-level forms were read and
// evaluated, how many raised, and the value each produced (nil entries
// correspond to forms that raised). This is the analogue of
// dlengine.Engine.Process's (assertions, retractions, queries, errors)
// counters, adapted from a Datalog node list to a sequence of Lisp forms.
type Report struct {
	Forms   int
	Failed  int
	Results []Value
}

// LoadString reads every top-level form out of src, expands and evaluates
// each in turn, and continues past individual failures the way
// dlengine.Engine.Process keeps processing a node list after a bad clause.
// Every error encountered (read, expand, or eval) is collected into the
// returned *multierror.Error; a nil error means every form succeeded.
func (ev *Evaluator) LoadString(name, src string) (*Report, error) {
	rdr := NewReader(name, src)
	report := &Report{}
	var errs *multierror.Error

	for {
		form, err := rdr.Read()
		if err != nil {
			errs = multierror.Append(errs, err)
			break
		}
		if form == nil {
			break
		}
		report.Forms++
		v, err := ev.evalTopLevelForm(form)
		if err != nil {
			report.Failed++
			errs = multierror.Append(errs, err)
			ev.Log.Warn("top-level form failed", "source", name, "error", err)
			report.Results = append(report.Results, nil)
			continue
		}
		report.Results = append(report.Results, v)
	}
	return report, errs.ErrorOrNil()
}

// LoadFile reads name from disk and loads it via LoadString.
func (ev *Evaluator) LoadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapCollaboratorError("file-error", err, "LoadFile: "+path)
	}
	return ev.LoadString(path, string(data))
}

// evalTopLevelForm expands and evaluates one form, recovering any stray
// *LispError panic that escaped a lazy-cons thunk (lazy.go's documented
// design: thunks report errors by panicking since Cons.Thunk has no error
// return slot) and converting it back into a normal Go error. This is the
// outermost boundary lazy.go's doc comment calls for.
func (ev *Evaluator) evalTopLevelForm(form Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if le, ok := r.(*LispError); ok {
				err = le
				return
			}
			if ts, ok := r.(throwSignal); ok {
				err = newEvalError("uncaught throw: %s", PrintRepr(ts.Tag))
				return
			}
			if bs, ok := r.(blockSignal); ok {
				err = newEvalError("return-from %s: no enclosing block", bs.Name.Name)
				return
			}
			panic(r)
		}
	}()
	expanded, err := Expand(form)
	if err != nil {
		return Nil, err
	}
	return ev.Eval(expanded, nil)
}
