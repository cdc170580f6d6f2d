package grammar

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var parserInstance = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

// ParseString runs the editor-tooling grammar over source, returning a
// Program tree for internal/lsp to walk. It never touches internal/ast or
// internal/parser: a source file with a diagnostic-worthy error under the
// real compiler's grammar may still parse fine here, since this grammar
// only has to be permissive enough to hand out semantic tokens.
func ParseString(filename, source string) (*Program, error) {
	return parserInstance.ParseString(filename, source)
}

// FormatParseError renders a participle parse error with the same
// caret-under-the-offending-token convention the teacher's original
// grammar package used, for logging alongside the LSP's own diagnostics
// rather than duplicating them on the client.
func FormatParseError(source string, err error) string {
	pe, ok := err.(participle.Error)
	if !ok {
		return err.Error()
	}

	pos := pe.Position()
	lines := strings.Split(source, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return fmt.Sprintf("syntax error at unknown location: %s", err)
	}

	line := lines[pos.Line-1]
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	caret := strings.Repeat(" ", col) + color.RedString("^")

	return fmt.Sprintf("%s:%d:%d: %s\n%s\n%s", pos.Filename, pos.Line, pos.Column, pe.Message(), line, caret)
}
