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
	"strconv"
	"strings"
)

// PrintRepr renders v in a readable (prin1-ish) form: strings are quoted,
// characters use #\ notation. It backs `tostringp` and error-message
// formatting; `quasi` segments and `tostring` use PrintDisplay.
func PrintRepr(v Value) string {
	var b strings.Builder
	writeRepr(&b, v, true)
	return b.String()
}

// PrintDisplay renders v the way `princ`/display would: strings and
// characters print their raw contents, without quoting.
func PrintDisplay(v Value) string {
	var b strings.Builder
	writeRepr(&b, v, false)
	return b.String()
}

func writeRepr(b *strings.Builder, v Value, readable bool) {
	switch vv := v.(type) {
	case nilT:
		b.WriteString("nil")
	case Integer:
		b.WriteString(strconv.FormatInt(int64(vv), 10))
	case Character:
		if readable {
			b.WriteString("#\\")
			b.WriteRune(rune(vv))
		} else {
			b.WriteRune(rune(vv))
		}
	case *Symbol:
		b.WriteString(vv.String())
	case *StringObj:
		if readable {
			b.WriteString(strconv.Quote(vv.String()))
		} else {
			b.WriteString(vv.String())
		}
	case *Cons:
		writeConsRepr(b, vv, readable)
	case *Vector:
		b.WriteString("#(")
		for i, item := range vv.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeRepr(b, item, readable)
		}
		b.WriteByte(')')
	case *Hash:
		b.WriteString("#H(")
		first := true
		vv.Each(func(k, val Value) bool {
			if !first {
				b.WriteByte(' ')
			}
			first = false
			writeRepr(b, k, readable)
			b.WriteByte('=')
			writeRepr(b, val, readable)
			return true
		})
		b.WriteByte(')')
	case *Function:
		if vv.IsBuiltin() {
			b.WriteString("#<builtin:" + vv.Name + ">")
		} else {
			b.WriteString("#<function:" + vv.Name + ">")
		}
	case *Foreign:
		b.WriteString("#<" + vv.Tag + ">")
	default:
		b.WriteString("#<object>")
	}
}

func writeConsRepr(b *strings.Builder, c *Cons, readable bool) {
	c.Force()
	if sym, ok := c.Car.(*Symbol); ok {
		if rest, ok2 := c.Cdr.(*Cons); ok2 {
			rest.Force()
			if IsNil(rest.Cdr) {
				switch sym.Name {
				case "quote":
					b.WriteByte('\'')
					writeRepr(b, rest.Car, readable)
					return
				case "unquote":
					b.WriteByte(',')
					writeRepr(b, rest.Car, readable)
					return
				case "splice":
					b.WriteString(",@")
					writeRepr(b, rest.Car, readable)
					return
				}
			}
		}
	}
	b.WriteByte('(')
	writeRepr(b, c.Car, readable)
	rest := c.Cdr
	for {
		switch r := rest.(type) {
		case nilT:
			b.WriteByte(')')
			return
		case *Cons:
			r.Force()
			b.WriteByte(' ')
			writeRepr(b, r.Car, readable)
			rest = r.Cdr
		default:
			b.WriteString(" . ")
			writeRepr(b, rest, readable)
			b.WriteByte(')')
			return
		}
	}
}
