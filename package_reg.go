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

import "sync"

// Package is a symbol-interning namespace, analogous to user_package,
// system_package, and keyword_package in the collaborator runtime.
type Package struct {
	Name string

	mu      sync.Mutex
	symbols map[string]*Symbol
}

func newPackage(name string) *Package {
	return &Package{Name: name, symbols: make(map[string]*Symbol)}
}

// Intern returns the symbol named name in pkg, creating it if absent.
func (pkg *Package) Intern(name string) *Symbol {
	pkg.mu.Lock()
	defer pkg.mu.Unlock()
	if s, ok := pkg.symbols[name]; ok {
		return s
	}
	s := &Symbol{Name: name, Pkg: pkg}
	pkg.symbols[name] = s
	return s
}

// Find looks up name without creating it.
func (pkg *Package) Find(name string) (*Symbol, bool) {
	pkg.mu.Lock()
	defer pkg.mu.Unlock()
	s, ok := pkg.symbols[name]
	return s, ok
}

var (
	// UserPackage holds ordinary user-level symbols.
	UserPackage = newPackage("user")
	// SystemPackage holds the `sys:`-namespaced symbols used internally by
	// the expander (e.g. sys:var).
	SystemPackage = newPackage("sys")
	// KeywordPackage holds self-evaluating keyword symbols.
	KeywordPackage = newPackage("keyword")
)

func init() {
	T = SystemPackage.Intern("t")
}

// Intern returns (creating if absent) the symbol named name in pkg. A nil
// pkg defaults to the user package, matching the collaborator `intern`
// entry point's documented behavior.
func Intern(name string, pkg *Package) *Symbol {
	if pkg == nil {
		pkg = UserPackage
	}
	return pkg.Intern(name)
}

// Sym is a convenience for interning a user-package symbol, used pervasively
// when constructing kernel forms in the expander and builtins.
func Sym(name string) *Symbol {
	return UserPackage.Intern(name)
}

// SysSym interns a system-package symbol.
func SysSym(name string) *Symbol {
	return SystemPackage.Intern(name)
}

// Keyword interns a keyword-package symbol (self-evaluating).
func Keyword(name string) *Symbol {
	return KeywordPackage.Intern(name)
}
