package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleString(t *testing.T) {
	module := &Module{
		Name: Ident{Value: "counter"},
		ModuleItems: []ModuleItem{
			&Function{
				Name: Ident{Value: "run"},
				Body: &FunctionBlock{},
			},
		},
	}

	expected := "module counter {\n  fn run() {\n  }\n  \n}"
	assert.Equal(t, expected, module.String())
}

func TestModuleStringWithLeadingComments(t *testing.T) {
	module := &Module{
		Name: Ident{Value: "counter"},
		LeadingComments: []ModuleItem{
			&Comment{Text: "// a license header"},
			&DocComment{Text: "/// entry point lives below"},
		},
		ModuleItems: []ModuleItem{
			&Function{
				Name: Ident{Value: "run"},
				Body: &FunctionBlock{},
			},
		},
	}

	result := module.String()

	assert.Contains(t, result, "// a license header")
	assert.Contains(t, result, "/// entry point lives below")
	assert.Contains(t, result, "module counter {")

	licensePos := findSubstring(result, "// a license header")
	modulePos := findSubstring(result, "module counter")
	assert.True(t, licensePos < modulePos, "leading comment should appear before the module declaration")
}

func TestLetStmtString(t *testing.T) {
	letStmt := &LetStmt{
		Name: Ident{Value: "balance"},
		Expr: &LiteralExpr{Value: "100"},
		Mut:  false,
	}

	expected := "let balance = 100;"
	assert.Equal(t, expected, letStmt.String())
}

func TestLetMutStmtString(t *testing.T) {
	letMutStmt := &LetStmt{
		Name: Ident{Value: "count"},
		Expr: &LiteralExpr{Value: "0"},
		Mut:  true,
	}

	expected := "let mut count = 0;"
	assert.Equal(t, expected, letMutStmt.String())
}

func TestAssertStmtString(t *testing.T) {
	assertStmt := &AssertStmt{
		Args: []Expr{
			&BinaryExpr{
				Left:  &IdentExpr{Name: "amount"},
				Op:    ">",
				Right: &LiteralExpr{Value: "0"},
			},
		},
	}

	expected := "assert!((amount > 0));"
	assert.Equal(t, expected, assertStmt.String())
}

func TestAssertStmtStringMultipleArgs(t *testing.T) {
	assertStmt := &AssertStmt{
		Args: []Expr{
			&BinaryExpr{
				Left:  &IdentExpr{Name: "amount"},
				Op:    ">",
				Right: &LiteralExpr{Value: "0"},
			},
			&FieldAccessExpr{
				Target: &IdentExpr{Name: "errors"},
				Field:  "InvalidAmount",
			},
		},
	}

	expected := "assert!((amount > 0), errors.InvalidAmount);"
	assert.Equal(t, expected, assertStmt.String())
}

func TestComplexModuleString(t *testing.T) {
	module := &Module{
		Name: Ident{Value: "tally"},
		LeadingComments: []ModuleItem{
			&Comment{Text: "// SPDX-License-Identifier: MIT"},
		},
		ModuleItems: []ModuleItem{
			&Use{
				Namespaces: []*Namespace{
					{Name: Ident{Value: "std"}},
					{Name: Ident{Value: "io"}},
				},
				Imports: []*ImportItem{
					{Name: Ident{Value: "println"}},
				},
			},
			&Struct{
				Name:      Ident{Value: "State"},
				Attribute: &Attribute{Name: "storage"},
				Items: []StructItem{
					&StructField{
						Name: Ident{Value: "total"},
						VariableType: &VariableType{
							Name: Ident{Value: "i64"},
						},
					},
				},
			},
			&Function{
				Name:      Ident{Value: "add"},
				Attribute: &Attribute{Name: "entry"},
				Params: []*FunctionParam{
					{
						Name: Ident{Value: "amount"},
						Type: &VariableType{
							Name: Ident{Value: "i64"},
						},
					},
				},
				Writes: []Ident{
					{Value: "State"},
				},
				Body: &FunctionBlock{
					Items: []FunctionBlockItem{
						&LetStmt{
							Name: Ident{Value: "next"},
							Expr: &IdentExpr{Name: "amount"},
							Mut:  true,
						},
						&AssertStmt{
							Args: []Expr{
								&BinaryExpr{
									Left:  &IdentExpr{Name: "next"},
									Op:    ">",
									Right: &LiteralExpr{Value: "0"},
								},
							},
						},
					},
				},
			},
		},
	}

	result := module.String()

	assert.Contains(t, result, "// SPDX-License-Identifier: MIT")
	assert.Contains(t, result, "module tally {")
	assert.Contains(t, result, "use std::io::{println}")
	assert.Contains(t, result, "#[storage]")
	assert.Contains(t, result, "struct State")
	assert.Contains(t, result, "#[entry]")
	assert.Contains(t, result, "fn add(amount: i64) writes(State) {")
	assert.Contains(t, result, "let mut next = amount;")
	assert.Contains(t, result, "assert!((next > 0));")

	licensePos := findSubstring(result, "// SPDX-License-Identifier")
	modulePos := findSubstring(result, "module tally")
	assert.True(t, licensePos < modulePos, "license comment should appear before module declaration")
}

func TestFunctionStringWithReadsWrites(t *testing.T) {
	fn := &Function{
		Name: Ident{Value: "transfer"},
		Params: []*FunctionParam{
			{Name: Ident{Value: "to"}, Type: &VariableType{Name: Ident{Value: "Address"}}},
			{Name: Ident{Value: "amount"}, Type: &VariableType{Name: Ident{Value: "u64"}}},
		},
		Return: &VariableType{Name: Ident{Value: "bool"}},
		Reads:  []Ident{{Value: "Config"}},
		Writes: []Ident{{Value: "State"}},
		Body:   &FunctionBlock{},
	}

	result := fn.String()
	assert.Contains(t, result, "fn transfer(to: Address, amount: u64) -> bool reads(Config) writes(State)")
}

// findSubstring returns the first index where substr occurs in text, or -1.
func findSubstring(text, substr string) int {
	for i := 0; i <= len(text)-len(substr); i++ {
		if text[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
