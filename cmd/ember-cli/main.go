// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"ember/internal/ast"
	"ember/internal/errors"
	"ember/internal/ir"
	"ember/internal/parser"
	"ember/internal/semantic"
	"ember/internal/types"
	"ember/repl"
)

func main() {
	wordSizeFlag := flag.Int("word-size", 8, "target word size in bytes (4 or 8)")
	flag.Parse()

	var word types.WordSize
	switch *wordSizeFlag {
	case 4:
		word = types.Word32
	case 8:
		word = types.Word64
	default:
		color.Red("invalid -word-size %d (must be 4 or 8)", *wordSizeFlag)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Println("Usage: ember [-word-size 4|8] <file.ka>")
		fmt.Println("       ember [-word-size 4|8] repl")
		os.Exit(1)
	}

	if args[0] == "repl" {
		repl.Start(os.Stdin, os.Stdout, word)
		return
	}

	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read file: %s", err)
		os.Exit(1)
	}

	reporter := errors.NewErrorReporter(path, string(source))

	module, parseErrs, scanErrs := parser.ParseSource(path, string(source))
	if len(scanErrs) > 0 || len(parseErrs) > 0 {
		for _, se := range scanErrs {
			fmt.Println(reporter.FormatError(scanErrorToCompilerError(se)))
		}
		for _, pe := range parseErrs {
			fmt.Println(reporter.FormatError(parseErrorToCompilerError(pe)))
		}
		os.Exit(1)
	}

	if !run(reporter, module, word) {
		os.Exit(1)
	}

	color.Green("compiled %s", path)
}

// run builds and prints the IR for module, recovering from the fatal-
// assertion panics the core raises on an unreachable shape or a
// declared-but-unimplemented extension point, per §7's error-handling
// discipline: one failure aborts the whole run with a diagnostic, no
// partial output.
func run(reporter *errors.ErrorReporter, module *ast.Module, word types.WordSize) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			color.Red("fatal: %v", r)
			ok = false
		}
	}()

	ctx := semantic.NewBuildContext(module, word)
	if ctx.EntryName() == "" {
		color.Red("no entry point found (expected a #[entry] function or `main`)")
		return false
	}

	prog := ir.BuildProgram(ctx)
	fmt.Print(ir.PrintProgram(prog))
	return true
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
