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

// Command lcore is a thin driver over the interpreter core's public
// eval/apply/expand surface. It is not the text-extraction tool that
// embeds this interpreter (out of scope); it exists only so the package
// has a runnable consumer, the way txr.c drives eval.c.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kwalsh-lang/lcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "lcore",
		Short:         "drive the lcore interpreter core",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")

	root.AddCommand(newEvalCmd(&logLevel), newExpandCmd(), newReplCmd(&logLevel))
	return root
}

func newEvalCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "eval [file]",
		Short: "load and evaluate a file (or stdin) of top-level forms",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := lisp.NewEvaluator(lisp.WithLogger(lisp.NewCLILogger(*logLevel)))
			var report *lisp.Report
			var err error
			if len(args) == 1 {
				report, err = ev.LoadFile(args[0])
			} else {
				src, rerr := readAll(os.Stdin)
				if rerr != nil {
					return rerr
				}
				report, err = ev.LoadString("<stdin>", src)
			}
			for _, v := range report.Results {
				if v != nil {
					fmt.Fprintln(cmd.OutOrStdout(), lisp.PrintRepr(v))
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d forms, %d failed\n", report.Forms, report.Failed)
			return err
		},
	}
}

func newExpandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand [file]",
		Short: "read forms and print their expansion without evaluating",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src string
			name := "<stdin>"
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				src, name = string(data), args[0]
			} else {
				s, err := readAll(os.Stdin)
				if err != nil {
					return err
				}
				src = s
			}
			rdr := lisp.NewReader(name, src)
			forms, err := rdr.ReadAll()
			if err != nil {
				return err
			}
			for _, f := range forms {
				expanded, eerr := lisp.Expand(f)
				if eerr != nil {
					return eerr
				}
				fmt.Fprintln(cmd.OutOrStdout(), lisp.PrintRepr(expanded))
			}
			return nil
		},
	}
}

func newReplCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "read-eval-print loop over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := lisp.NewEvaluator(lisp.WithLogger(lisp.NewCLILogger(*logLevel)))
			return lisp.RunREPL(ev, os.Stdin, os.Stdout)
		},
	}
}

func readAll(f *os.File) (string, error) {
	buf, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
