package parser

import "ember/internal/ast"

func (p *Parser) parseFunction(attr *ast.Attribute, isPublic bool) *ast.Function {
	startToken := p.consume(FUN, "expected 'fn' keyword")

	// Parse function name
	name, ok := p.consumeIdent("expected function name")
	if !ok {
		p.synchronize()
		return nil
	}

	// Parse parameters
	params := p.parseFunctionParameters()

	// Parse optional return type
	returnType := p.parseFunctionReturnType()

	// Parse optional reads clause
	reads := p.parseFunctionReadsClause()

	// Parse optional writes clause
	writes := p.parseFunctionWritesClause()

	// Parse function body
	body := p.parseFunctionBlock()
	if body.Pos == (ast.Position{}) { // recovery failed
		p.synchronize()
		return nil
	}

	return &ast.Function{
		Pos:       p.makePos(startToken),
		EndPos:    body.EndPos,
		Attribute: attr,
		Public:    isPublic,
		Name:      name,
		Params:    params,
		Return:    returnType,
		Reads:     reads,
		Writes:    writes,
		Body:      &body,
	}
}

// parseFunctionParameters parses the parameter list in parentheses
func (p *Parser) parseFunctionParameters() []*ast.FunctionParam {
	p.consume(LEFT_PAREN, "expected '(' after function name")
	var params []*ast.FunctionParam

	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		paramName, ok := p.consumeIdent("expected parameter name")
		if !ok {
			break
		}

		p.consume(COLON, "expected ':' after parameter name")
		paramType := p.parseVariableType()

		params = append(params, &ast.FunctionParam{
			Name: paramName,
			Type: paramType,
		})

		if !p.match(COMMA) {
			break
		}
	}

	p.consume(RIGHT_PAREN, "expected ')' after parameter list")
	return params
}

// parseFunctionReturnType parses the optional return type after '->'
func (p *Parser) parseFunctionReturnType() *ast.VariableType {
	if p.match(ARROW) {
		return p.parseVariableType()
	}
	return nil
}

// parseFunctionReadsClause parses the optional 'reads(...)' clause
func (p *Parser) parseFunctionReadsClause() []ast.Ident {
	if p.match(READS) {
		return p.parseOptionalParenIdentifierList()
	}
	return nil
}

// parseFunctionWritesClause parses the optional 'writes(...)' clause
func (p *Parser) parseFunctionWritesClause() []ast.Ident {
	if p.match(WRITES) {
		return p.parseOptionalParenIdentifierList()
	}
	return nil
}

func (p *Parser) parseFunctionBlock() ast.FunctionBlock {
	start := p.consume(LEFT_BRACE, "expected '{' to start function body")
	var items []ast.FunctionBlockItem
	var tail *ast.ExprStmt

parseItems:
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		switch {
		case p.check(RETURN):
			items = append(items, p.parseReturnStmt())
		case p.check(LET):
			items = append(items, p.parseLetStmt())
		case p.check(ASSERT):
			items = append(items, p.parseAssertStmt())
		case p.check(IF):
			items = append(items, p.parseIfStmt())
		case p.check(FOR):
			items = append(items, p.parseForStmt())
		case p.check(WHEN):
			items = append(items, p.parseWhenStmt())
		case p.check(BREAK), p.check(CONTINUE), p.check(FALLTHROUGH):
			items = append(items, p.parseBranchStmt())
		case p.check(COMMENT):
			token := p.advance()
			items = append(items, &ast.Comment{
				Pos:    p.makePos(token),
				EndPos: p.makeEndPos(token),
				Text:   token.Lexeme,
			})
		default:
			item, isTail := p.parseSimpleStmtOrTail()
			if isTail {
				tail = item.(*ast.ExprStmt)
				break parseItems
			}
			if item != nil {
				items = append(items, item)
			}
		}
	}

	end := p.consume(RIGHT_BRACE, "expected '}' to close function body")
	return ast.FunctionBlock{
		Pos:      p.makePos(start),
		EndPos:   p.makeEndPos(end),
		Items:    items,
		TailExpr: tail,
	}
}

// parseSimpleStmtOrTail parses an expression statement, an assignment,
// or an increment/decrement statement; or, if the expression is
// immediately followed by '}', the function's tail expression. The
// second return value is true exactly in the tail-expression case.
func (p *Parser) parseSimpleStmtOrTail() (ast.FunctionBlockItem, bool) {
	expr := p.parseExpr()

	if _, bad := expr.(*ast.BadExpr); bad {
		p.synchronize()
		return nil, false
	}

	if isAssignable(expr) && (p.check(INCREMENT) || p.check(DECREMENT)) {
		opTok := p.advance()
		semi := p.consume(SEMICOLON, "expected ';' after increment/decrement")
		return &ast.IncDecStmt{
			Pos:    expr.NodePos(),
			EndPos: p.makeEndPos(semi),
			Target: expr,
			Op:     opTok.Lexeme,
		}, false
	}

	if isAssignable(expr) && isAssignOperator(p.peek()) {
		opTok := p.advance()
		value := p.parseExpr()
		semi := p.consume(SEMICOLON, "expected ';' after assignment")

		return &ast.AssignStmt{
			Pos:      expr.NodePos(),
			EndPos:   p.makeEndPos(semi),
			Target:   expr,
			Operator: assignOpFromToken(opTok),
			Value:    value,
		}, false
	}

	if p.match(SEMICOLON) {
		return &ast.ExprStmt{
			Pos:       expr.NodePos(),
			EndPos:    p.makeEndPos(p.previous()),
			Expr:      expr,
			Semicolon: true,
		}, false
	}

	if p.check(RIGHT_BRACE) {
		return &ast.ExprStmt{
			Pos:       expr.NodePos(),
			EndPos:    expr.NodeEndPos(),
			Expr:      expr,
			Semicolon: false,
		}, true
	}

	semi := p.consume(SEMICOLON, "expected ';' or '}' after expression")
	return &ast.ExprStmt{
		Pos:       expr.NodePos(),
		EndPos:    p.makeEndPos(semi),
		Expr:      expr,
		Semicolon: true,
	}, false
}

func (p *Parser) parseLetStmt() *ast.LetStmt {
	start := p.consume(LET, "expected 'let'")
	mut := p.match(MUT)

	name, ok := p.consumeIdent("expected variable name after 'let'")
	if !ok {
		return nil
	}

	var typ *ast.VariableType
	if p.match(COLON) {
		typ = p.parseVariableType()
	}

	p.consume(EQUAL, "expected '=' in let statement")
	expr := p.parseExpr()
	semi := p.consume(SEMICOLON, "expected ';' after let statement")

	return &ast.LetStmt{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(semi),
		Mut:    mut,
		Name:   name,
		Type:   typ,
		Expr:   expr,
	}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.consume(RETURN, "expected 'return'")
	var value ast.Expr
	if !p.check(SEMICOLON) {
		value = p.parseExpr()
	}
	end := p.consume(SEMICOLON, "expected ';' after return statement")

	return &ast.ReturnStmt{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(end),
		Value:  value,
	}
}

func (p *Parser) parseAssertStmt() *ast.AssertStmt {
	start := p.consume(ASSERT, "expected 'assert'")
	p.consume(BANG, "expected '!' after 'assert'")
	p.consume(LEFT_PAREN, "expected '(' after 'assert!'")

	var args []ast.Expr
	for {
		args = append(args, p.parseExpr())
		if !p.match(COMMA) {
			break
		}
	}

	end := p.consume(RIGHT_PAREN, "expected ')' to close assert arguments")
	p.consume(SEMICOLON, "expected ';' after assert statement")

	return &ast.AssertStmt{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(end),
		Args:   args,
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.consume(IF, "expected 'if'")
	cond := p.parseExpr()
	then := p.parseFunctionBlock()

	var elseNode ast.Node
	endPos := then.EndPos
	if p.match(ELSE) {
		if p.check(IF) {
			elseIf := p.parseIfStmt()
			elseNode = elseIf
			endPos = elseIf.EndPos
		} else {
			elseBlock := p.parseFunctionBlock()
			elseNode = &elseBlock
			endPos = elseBlock.EndPos
		}
	}

	return &ast.IfStmt{
		Pos:    p.makePos(start),
		EndPos: endPos,
		Cond:   cond,
		Then:   &then,
		Else:   elseNode,
	}
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	start := p.consume(FOR, "expected 'for'")

	var init ast.FunctionBlockItem
	var cond ast.Expr
	var post ast.FunctionBlockItem

	if !p.check(LEFT_BRACE) {
		if p.check(LET) {
			init = p.parseLetStmt()
		} else if !p.check(SEMICOLON) {
			item, _ := p.parseSimpleStmtOrTail()
			init = item
		} else {
			p.consume(SEMICOLON, "expected ';' after empty for-init")
		}

		if !p.check(LEFT_BRACE) {
			cond = p.parseExpr()
			p.consume(SEMICOLON, "expected ';' after for-condition")

			if !p.check(LEFT_BRACE) {
				item, _ := p.parseSimpleStmtOrTail()
				post = item
			}
		}
	}

	body := p.parseFunctionBlock()

	return &ast.ForStmt{
		Pos:    p.makePos(start),
		EndPos: body.EndPos,
		Init:   init,
		Cond:   cond,
		Post:   post,
		Body:   &body,
	}
}

func (p *Parser) parseWhenStmt() *ast.WhenStmt {
	start := p.consume(WHEN, "expected 'when'")
	cond := p.parseExpr()
	body := p.parseFunctionBlock()

	return &ast.WhenStmt{
		Pos:    p.makePos(start),
		EndPos: body.EndPos,
		Cond:   cond,
		Body:   &body,
	}
}

func (p *Parser) parseBranchStmt() *ast.BranchStmt {
	tok := p.advance()
	var kind ast.BranchKind
	switch tok.Type {
	case BREAK:
		kind = ast.BreakBranch
	case CONTINUE:
		kind = ast.ContinueBranch
	case FALLTHROUGH:
		kind = ast.FallthroughBranch
	}

	var label *ast.Ident
	if p.check(IDENTIFIER) {
		id, ok := p.consumeIdent("expected label after branch keyword")
		if ok {
			label = &id
		}
	}

	end := p.consume(SEMICOLON, "expected ';' after branch statement")

	return &ast.BranchStmt{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(end),
		Kind:   kind,
		Label:  label,
	}
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parsePrattExpr(0)
}

func isAssignable(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.IdentExpr, *ast.FieldAccessExpr, *ast.UnaryExpr, *ast.IndexExpr:
		return true
	default:
		return false
	}
}

func isAssignOperator(tok Token) bool {
	switch tok.Type {
	case EQUAL, PLUS_EQUAL, MINUS_EQUAL, STAR_EQUAL, SLASH_EQUAL, PERCENT_EQUAL:
		return true
	default:
		return false
	}
}

func assignOpFromToken(tok Token) ast.AssignType {
	switch tok.Type {
	case EQUAL:
		return ast.ASSIGN
	case PLUS_EQUAL:
		return ast.PLUS_ASSIGN
	case MINUS_EQUAL:
		return ast.MINUS_ASSIGN
	case STAR_EQUAL:
		return ast.STAR_ASSIGN
	case SLASH_EQUAL:
		return ast.SLASH_ASSIGN
	case PERCENT_EQUAL:
		return ast.PERCENT_ASSIGN
	default:
		return ast.ASSIGN
	}
}
