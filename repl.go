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
	"bufio"
	"fmt"
	"io"

	"github.com/kwalsh-lang/lcore/internal/diag"
)

// NewCLILogger builds a diag.Logger at the given level for cmd/lcore.
func NewCLILogger(level string) diag.Logger {
	return diag.New("lcore", level)
}

// RunREPL reads forms from in, evaluates each against ev's top level, and
// prints its printed representation to out, until EOF. A form that raises
// reports the error and continues with the next form rather than exiting,
// matching LoadString's continue-past-failures behavior.
func RunREPL(ev *Evaluator, in io.Reader, out io.Writer) error {
	br := bufio.NewReader(in)
	fmt.Fprint(out, "> ")
	for {
		src, rerr := br.ReadString('\n')
		if src == "" && rerr != nil {
			return nil
		}
		rdr := NewReader("<repl>", src)
		for {
			form, err := rdr.Read()
			if err != nil {
				fmt.Fprintln(out, err)
				break
			}
			if form == nil {
				break
			}
			v, err := ev.evalTopLevelForm(form)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintln(out, PrintRepr(v))
		}
		if rerr != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
	}
}
