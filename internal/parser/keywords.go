package parser

var KEYWORDS = map[string]TokenType{
	"fn":          FUN,
	"let":         LET,
	"if":          IF,
	"else":        ELSE,
	"for":         FOR,
	"return":      RETURN,
	"module":      MODULE,
	"assert":      ASSERT,
	"use":         USE,
	"struct":      STRUCT,
	"writes":      WRITES,
	"reads":       READS,
	"pub":         PUBLIC,
	"mut":         MUT,
	"break":       BREAK,
	"continue":    CONTINUE,
	"fallthrough": FALLTHROUGH,
	"when":        WHEN,
	"true":        TRUE,
	"false":       FALSE,
}
