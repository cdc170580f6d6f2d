package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes source the way internal/parser/scanner.go does, but as a
// single stateful pass participle can drive: keywords aren't split out into
// their own token kind, they're matched as literal terminals against Ident
// in the grammar tags below, same as internal/parser's lookupIdentifier
// table does at the hand-rolled scanner level.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"DocComment", `///[^\n]*`, nil},
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"HexNumber", `0[xX][0-9a-fA-F]+`, nil},
		{"Number", `[0-9]+`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Operator", `(\|\||&&|==|!=|<=|>=|->|::|\+=|-=|\*=|/=|%=|\+\+|--|[-+*/%=<>!&])`, nil},
		{"Punctuation", `[{}\[\]#:,;().]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
