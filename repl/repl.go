// Package repl SPDX-License-Identifier: Apache-2.0
//
// repl implements a read-eval-print loop over the same parse/check/lower
// pipeline cmd/ember-cli drives from a file. Unlike a line-oriented
// expression REPL, this language has no bare top-level expression form:
// every compilation unit is a module declaration, so one "eval" step here
// is one module, terminated by a blank line or end of input rather than
// a newline.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ember/internal/ast"
	"ember/internal/errors"
	"ember/internal/ir"
	"ember/internal/parser"
	"ember/internal/semantic"
	"ember/internal/types"
)

const prompt = "ember> "

// Start runs the loop against in, writing prompts and results to out.
// Each accumulated module is parsed, checked, and lowered independently
// against the given target word size; a failure in one module does not
// end the session.
func Start(in io.Reader, out io.Writer, word types.WordSize) {
	scanner := bufio.NewScanner(in)
	var block strings.Builder

	flush := func() {
		src := block.String()
		block.Reset()
		if strings.TrimSpace(src) == "" {
			return
		}
		evalModule(out, src, word)
	}

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			flush()
			return
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block.WriteString(line)
		block.WriteByte('\n')
	}
}

// evalModule parses, checks, and lowers one module's source, printing
// either its IR dump or a diagnostic for the first failure reached.
func evalModule(out io.Writer, src string, word types.WordSize) {
	reporter := errors.NewErrorReporter("<repl>", src)

	mod, parseErrs, scanErrs := parser.ParseSource("<repl>", src)
	if len(scanErrs) > 0 || len(parseErrs) > 0 {
		for _, se := range scanErrs {
			fmt.Fprintln(out, reporter.FormatError(scanErrorToCompilerError(se)))
		}
		for _, pe := range parseErrs {
			fmt.Fprintln(out, reporter.FormatError(parseErrorToCompilerError(pe)))
		}
		return
	}

	lowerModule(out, mod, word)
}

// lowerModule recovers from the core's fatal-assertion panics the same
// way cmd/ember-cli does, so one bad module leaves the session open for
// the next one instead of taking the whole process down.
func lowerModule(out io.Writer, mod *ast.Module, word types.WordSize) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(out, color.RedString("fatal: %v", r))
		}
	}()

	ctx := semantic.NewBuildContext(mod, word)
	if ctx.EntryName() == "" {
		fmt.Fprintln(out, "no entry point found (expected a #[entry] function or `main`)")
		return
	}

	prog := ir.BuildProgram(ctx)
	fmt.Fprint(out, ir.PrintProgram(prog))
}

func scanErrorToCompilerError(se parser.ScanError) errors.CompilerError {
	return errors.CompilerError{
		Level:   errors.Error,
		Code:    "E0100",
		Message: se.Message,
		Position: ast.Position{
			Line:   se.Position.Line,
			Column: se.Position.Column,
			Offset: se.Position.Offset,
		},
		Length: se.Length,
	}
}

func parseErrorToCompilerError(pe parser.ParseError) errors.CompilerError {
	return errors.CompilerError{
		Level:    errors.Error,
		Code:     "E0101",
		Message:  pe.Message,
		Position: pe.Position,
	}
}
