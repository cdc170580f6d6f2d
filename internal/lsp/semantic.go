package lsp

import (
	"ember/grammar"

	"github.com/alecthomas/participle/v2/lexer"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into cmd/ember-lsp's semanticTokenTypes array
// TokenModifiers is a bitmask based on cmd/ember-lsp's semanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into semanticTokenTypes
	TokenModifiers int // bitmask
}

func collectSemanticTokens(program *grammar.Program) []SemanticToken {
	var tokens []SemanticToken

	if program == nil {
		return tokens
	}

	for _, se := range program.SourceElements {
		if se != nil && se.Module != nil {
			tokens = append(tokens, walkModule(se.Module)...)
		}
	}

	return tokens
}

func walkModule(m *grammar.Module) []SemanticToken {
	var tokens []SemanticToken

	for _, attr := range m.Attributes {
		tokens = append(tokens, makeToken(attr.Pos, attr.EndPos, attr.Name, "modifier", 0))
	}

	if m.Name.Value != "" {
		tokens = append(tokens, makeToken(m.Name.Pos, m.Name.EndPos, m.Name.Value, "namespace", 1))
	}

	for _, item := range m.Items {
		switch {
		case item.Use != nil:
			tokens = append(tokens, walkUse(item.Use)...)
		case item.Struct != nil:
			tokens = append(tokens, walkStruct(item.Struct)...)
		case item.Function != nil:
			tokens = append(tokens, walkFunction(item.Function)...)
		}
	}

	return tokens
}

func walkUse(u *grammar.Use) []SemanticToken {
	var tokens []SemanticToken
	for _, ns := range u.Namespaces {
		tokens = append(tokens, makeToken(ns.Pos, ns.EndPos, ns.Value, "namespace", 0))
	}
	for _, imp := range u.Imports {
		tokens = append(tokens, makeToken(imp.Pos, imp.EndPos, imp.Value, "type", 0))
	}
	return tokens
}

func walkStruct(s *grammar.Struct) []SemanticToken {
	var tokens []SemanticToken

	if s.Attribute != nil {
		tokens = append(tokens, makeToken(s.Attribute.Pos, s.Attribute.EndPos, s.Attribute.Name, "modifier", 0))
	}
	tokens = append(tokens, makeToken(s.Name.Pos, s.Name.EndPos, s.Name.Value, "type", 1))

	for _, field := range s.Fields {
		tokens = append(tokens, makeToken(field.Name.Pos, field.Name.EndPos, field.Name.Value, "property", 1))
		tokens = append(tokens, typeReferenceToken(field.Type)...)
	}

	return tokens
}

func walkFunction(f *grammar.Function) []SemanticToken {
	var tokens []SemanticToken

	if f.Attribute != nil {
		tokens = append(tokens, makeToken(f.Attribute.Pos, f.Attribute.EndPos, f.Attribute.Name, "modifier", 0))
	}
	tokens = append(tokens, makeToken(f.Name.Pos, f.Name.EndPos, f.Name.Value, "function", 1))

	for _, p := range f.Params {
		tokens = append(tokens, makeToken(p.Name.Pos, p.Name.EndPos, p.Name.Value, "parameter", 0))
		tokens = append(tokens, typeReferenceToken(p.Type)...)
	}
	if f.Return != nil {
		tokens = append(tokens, typeReferenceToken(f.Return)...)
	}
	for _, r := range f.Reads {
		tokens = append(tokens, makeToken(r.Pos, r.EndPos, r.Value, "type", 0))
	}
	for _, w := range f.Writes {
		tokens = append(tokens, makeToken(w.Pos, w.EndPos, w.Value, "type", 0))
	}

	tokens = append(tokens, walkFunctionBlock(f.Body)...)

	return tokens
}

func walkFunctionBlock(fb *grammar.FunctionBlock) []SemanticToken {
	var tokens []SemanticToken

	if fb == nil {
		return tokens
	}

	for _, stmt := range fb.Statements {
		tokens = append(tokens, walkStatement(stmt)...)
	}

	if fb.Tail != nil {
		tokens = append(tokens, walkExpr(fb.Tail.Expr)...)
	}

	return tokens
}

func walkStatement(stmt *grammar.Statement) []SemanticToken {
	var tokens []SemanticToken

	switch {
	case stmt.LetStmt != nil:
		tokens = append(tokens, makeToken(stmt.LetStmt.Name.Pos, stmt.LetStmt.Name.EndPos, stmt.LetStmt.Name.Value, "variable", 1))
		tokens = append(tokens, typeReferenceToken(stmt.LetStmt.Type)...)
		tokens = append(tokens, walkExpr(stmt.LetStmt.Expr)...)
	case stmt.AssignStmt != nil:
		tokens = append(tokens, walkPostfix(stmt.AssignStmt.Target)...)
		tokens = append(tokens, walkExpr(stmt.AssignStmt.Value)...)
	case stmt.ExprStmt != nil:
		tokens = append(tokens, walkExpr(stmt.ExprStmt.Expr)...)
	case stmt.ReturnStmt != nil:
		tokens = append(tokens, walkExpr(stmt.ReturnStmt.Value)...)
	case stmt.AssertStmt != nil:
		for _, arg := range stmt.AssertStmt.Args {
			tokens = append(tokens, walkExpr(arg)...)
		}
	case stmt.IfStmt != nil:
		tokens = append(tokens, walkIf(stmt.IfStmt)...)
	case stmt.ForStmt != nil:
		tokens = append(tokens, walkFor(stmt.ForStmt)...)
	}

	return tokens
}

func walkIf(ifStmt *grammar.IfStmt) []SemanticToken {
	var tokens []SemanticToken

	if ifStmt == nil {
		return tokens
	}

	tokens = append(tokens, walkExpr(ifStmt.Cond)...)
	tokens = append(tokens, walkFunctionBlock(ifStmt.Then)...)

	if ifStmt.Else != nil {
		tokens = append(tokens, walkIf(ifStmt.Else.If)...)
		tokens = append(tokens, walkFunctionBlock(ifStmt.Else.Block)...)
	}

	return tokens
}

func walkFor(forStmt *grammar.ForStmt) []SemanticToken {
	var tokens []SemanticToken

	if forStmt == nil {
		return tokens
	}

	if forStmt.Header != nil {
		tokens = append(tokens, walkSimpleStmt(forStmt.Header.Init)...)
		tokens = append(tokens, walkExpr(forStmt.Header.Cond)...)
		tokens = append(tokens, walkSimpleStmt(forStmt.Header.Post)...)
	}
	tokens = append(tokens, walkFunctionBlock(forStmt.Body)...)

	return tokens
}

func walkSimpleStmt(s *grammar.SimpleStmt) []SemanticToken {
	var tokens []SemanticToken

	if s == nil {
		return tokens
	}

	switch {
	case s.Let != nil:
		tokens = append(tokens, makeToken(s.Let.Name.Pos, s.Let.Name.EndPos, s.Let.Name.Value, "variable", 1))
		tokens = append(tokens, walkExpr(s.Let.Expr)...)
	case s.Assign != nil:
		tokens = append(tokens, walkPostfix(s.Assign.Target)...)
		tokens = append(tokens, walkExpr(s.Assign.Value)...)
	case s.Expr != nil:
		tokens = append(tokens, walkExpr(s.Expr.Expr)...)
	}

	return tokens
}

func walkExpr(expr *grammar.Expr) []SemanticToken {
	var tokens []SemanticToken

	if expr == nil || expr.Binary == nil {
		return tokens
	}

	tokens = append(tokens, walkUnary(expr.Binary.Left)...)
	for _, op := range expr.Binary.Ops {
		tokens = append(tokens, walkUnary(op.Right)...)
	}

	return tokens
}

func walkUnary(ue *grammar.UnaryExpr) []SemanticToken {
	if ue == nil {
		return nil
	}
	return walkPostfix(ue.Value)
}

func walkPostfix(pe *grammar.PostfixExpr) []SemanticToken {
	var tokens []SemanticToken

	if pe == nil {
		return tokens
	}

	tokens = append(tokens, walkPrimary(pe.Primary)...)
	for _, suffix := range pe.Suffix {
		if suffix.Field != nil {
			tokens = append(tokens, makeToken(suffix.Field.Pos, suffix.Field.EndPos, suffix.Field.Value, "property", 0))
		}
		if suffix.Index != nil {
			tokens = append(tokens, walkExpr(suffix.Index)...)
		}
	}

	return tokens
}

func walkPrimary(p *grammar.PrimaryExpr) []SemanticToken {
	var tokens []SemanticToken

	if p == nil {
		return tokens
	}

	switch {
	case p.Call != nil:
		tokens = append(tokens, walkCallExpr(p.Call)...)
	case p.Struct != nil:
		tokens = append(tokens, makeToken(p.Struct.Name.Pos, p.Struct.Name.EndPos, p.Struct.Name.Value, "type", 0))
		for _, f := range p.Struct.Fields {
			tokens = append(tokens, makeToken(f.Name.Pos, f.Name.EndPos, f.Name.Value, "property", 0))
			tokens = append(tokens, walkExpr(f.Value)...)
		}
	case p.Ident != nil:
		tokens = append(tokens, makeToken(p.Ident.Pos, p.Ident.EndPos, p.Ident.Value, "variable", 0))
	case p.Parens != nil:
		tokens = append(tokens, walkExpr(p.Parens)...)
	}

	return tokens
}

func walkCallExpr(call *grammar.CallExpr) []SemanticToken {
	var tokens []SemanticToken

	if call == nil {
		return tokens
	}

	for _, part := range call.Callee.Parts {
		tokens = append(tokens, makeToken(part.Pos, part.EndPos, part.Value, "function", 0))
	}
	for _, g := range call.Generic {
		tokens = append(tokens, typeReferenceToken(g)...)
	}
	for _, arg := range call.Args {
		tokens = append(tokens, walkExpr(arg)...)
	}

	return tokens
}

func makeToken(pos, endPos lexer.Position, value, tokenType string, decl int) SemanticToken {
	length := endPos.Column - pos.Column
	if length <= 0 {
		length = len(value)
	}

	return SemanticToken{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column - 1),
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: decl << indexOf("declaration", SemanticTokenModifiers),
	}
}

// typeReferenceToken collects tokens for type references
// (e.g., parameter types, return types, generic types)
func typeReferenceToken(t *grammar.Type) []SemanticToken {
	if t == nil {
		return nil
	}
	if t.Ref != nil {
		return typeReferenceToken(t.Ref.Target)
	}
	if t.Name == nil || t.Name.Value == "" {
		return nil
	}

	tokens := []SemanticToken{
		makeToken(t.Name.Pos, t.Name.EndPos, t.Name.Value, "type", 0),
	}
	for _, g := range t.Generics {
		tokens = append(tokens, typeReferenceToken(g)...)
	}
	return tokens
}

// indexOf returns the index of a string in a list, or -1 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
