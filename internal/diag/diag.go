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

// Package diag centralises the evaluator's diagnostic logging (uncaught
// exceptions, batch-load summaries) and offers a collaborator error-wrapping
// helper, so the rest of the module does not import
// github.com/hashicorp/go-hclog directly. errors.go wraps collaborator
// errors with github.com/pkg/errors itself rather than through Wrap.
package diag

import (
	"os"

	"github.com/hashicorp/go-hclog"
	pkgerrors "github.com/pkg/errors"
)

// Logger is the evaluator's diagnostic sink.
type Logger = hclog.Logger

// New returns a logger named "lcore" at the given level ("debug", "info",
// "warn", "error"); an empty level defaults to "warn".
func New(name, level string) Logger {
	if level == "" {
		level = "warn"
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.LevelFromString(level),
		Output: os.Stderr,
	})
}

// Wrap annotates cause with context using github.com/pkg/errors, preserving
// a stack trace for the boundary between a collaborator failure and its
// re-tagging into the LispError taxonomy.
func Wrap(cause error, context string) error {
	return pkgerrors.Wrap(cause, context)
}
