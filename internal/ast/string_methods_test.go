package ast

import (
	"testing"
)

// Tests for auto-generated string methods
func TestNodeTypeStrings(t *testing.T) {
	// Test all NodeType constants to cover nodetype_string.go
	nodeTypes := []NodeType{
		ILLEGAL,
		BAD_MODULE_ITEM,
		BAD_EXPR,
		DOC_COMMENT,
		COMMENT,
		MODULE,
		ATTRIBUTE,
		USE,
		NAMESPACE,
		IMPORT_ITEM,
		STRUCT,
		STRUCT_FIELD,
		TYPE,
		REF_TYPE,
		IDENT,
		FUNCTION,
		FUNCTION_PARAM,
		FUNCTION_BLOCK,
		EXPR_STMT,
		RETURN_STMT,
		LET_STMT,
		ASSIGN_STMT,
		ASSERT_STMT,
		IF_STMT,
		FOR_STMT,
		BRANCH_STMT,
		INCDEC_STMT,
		DEFER_STMT,
		RANGE_STMT,
		MATCH_STMT,
		TYPE_MATCH_STMT,
		USING_STMT,
		WHEN_STMT,
		PUSH_ALLOCATOR_STMT,
		PUSH_CONTEXT_STMT,
		BINARY_EXPR,
		UNARY_EXPR,
		CALL_EXPR,
		FIELD_ACCESS_EXPR,
		INDEX_EXPR,
		STRUCT_LITERAL_EXPR,
		LITERAL_EXPR,
		IDENT_EXPR,
		CALLEE_PATH,
		STRUCT_LITERAL_FIELD,
		PAREN_EXPR,
		TUPLE_EXPR,
	}

	for _, nodeType := range nodeTypes {
		str := nodeType.String()
		if str == "" {
			t.Errorf("NodeType %v should have non-empty string", nodeType)
		}
	}
}

// Test AssignType strings to cover assigntype_string.go
func TestAssignTypeStrings(t *testing.T) {
	assignTypes := []AssignType{
		ILLEGAL_ASSIGN,
		ASSIGN,
		PLUS_ASSIGN,
		MINUS_ASSIGN,
		STAR_ASSIGN,
		SLASH_ASSIGN,
		PERCENT_ASSIGN,
	}

	for _, assignType := range assignTypes {
		str := assignType.String()
		if str == "" {
			t.Errorf("AssignType %v should have non-empty string", assignType)
		}
	}
}

// Test interface methods using the simplest possible constructions
func TestInterfaceMethodsMinimal(t *testing.T) {
	expr := &LiteralExpr{Value: "test"}
	expr.isExpr()

	identExpr := &IdentExpr{Name: "test"}
	identExpr.isExpr()

	stmt := &ExprStmt{Expr: expr}
	stmt.isBlockItem()

	fn := &Function{Name: Ident{Value: "test"}, Body: &FunctionBlock{}}
	fn.isModuleItem()
}

// Test complex string methods for printer functionality
func TestComplexStringMethods(t *testing.T) {
	letStmt := &LetStmt{
		Mut:  true,
		Name: Ident{Value: "x"},
		Expr: &LiteralExpr{Value: "0"},
	}
	letStr := letStmt.String()
	if letStr == "" {
		t.Error("LetStmt string should not be empty")
	}

	assertStmt := &AssertStmt{
		Args: []Expr{&LiteralExpr{Value: "condition"}},
	}
	assertStr := assertStmt.String()
	if assertStr == "" {
		t.Error("AssertStmt string should not be empty")
	}

	multiAssert := &AssertStmt{
		Args: []Expr{
			&LiteralExpr{Value: "condition"},
			&LiteralExpr{Value: "error"},
		},
	}
	multiStr := multiAssert.String()
	if multiStr == "" {
		t.Error("multi-arg AssertStmt string should not be empty")
	}

	allExprs := []Expr{
		&BadExpr{},
		&BinaryExpr{},
		&UnaryExpr{},
		&CallExpr{},
		&FieldAccessExpr{},
		&IndexExpr{},
		&StructLiteralExpr{},
		&LiteralExpr{Value: "test"},
		&IdentExpr{Name: "test"},
		&CalleePath{},
		&StructLiteralField{},
		&ParenExpr{},
		&TupleExpr{},
	}

	for _, expr := range allExprs {
		expr.isExpr()
	}

	allModuleItems := []ModuleItem{
		&BadModuleItem{},
		&DocComment{},
		&Comment{},
		&Attribute{},
		&Function{Name: Ident{Value: "test"}, Body: &FunctionBlock{}},
		&Struct{},
		&Use{},
	}

	for _, item := range allModuleItems {
		item.isModuleItem()
	}

	allBlockItems := []FunctionBlockItem{
		&LetStmt{},
		&AssignStmt{},
		&AssertStmt{},
		&IfStmt{},
		&ReturnStmt{},
		&ExprStmt{},
		&Comment{},
	}

	for _, item := range allBlockItems {
		item.isBlockItem()
	}
}

// findSubstring is shared with printer_test.go.
