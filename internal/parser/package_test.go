package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ember/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, parseErrs, scanErrs := ParseSource("test.ka", src)
	require.Empty(t, scanErrs, "unexpected scan errors")
	require.Empty(t, parseErrs, "unexpected parse errors")
	require.NotNil(t, mod)
	return mod
}

func TestParseEmptyModule(t *testing.T) {
	mod := mustParse(t, `
module empty {
}
`)
	assert.Equal(t, "empty", mod.Name.Value)
	assert.Empty(t, mod.ModuleItems)
}

func TestParseUseStatement(t *testing.T) {
	mod := mustParse(t, `
module m {
    use std::io::{print, println};
}
`)
	require.Len(t, mod.ModuleItems, 1)
	use, ok := mod.ModuleItems[0].(*ast.Use)
	require.True(t, ok)
	require.Len(t, use.Namespaces, 2)
	assert.Equal(t, "std", use.Namespaces[0].Name.Value)
	assert.Equal(t, "io", use.Namespaces[1].Name.Value)
	require.Len(t, use.Imports, 2)
	assert.Equal(t, "print", use.Imports[0].Name.Value)
	assert.Equal(t, "println", use.Imports[1].Name.Value)
}

func TestParseStructRequiresTrailingComma(t *testing.T) {
	mod := mustParse(t, `
module m {
    struct Point {
        x: I64,
        y: I64,
    }
}
`)
	require.Len(t, mod.ModuleItems, 1)
	st, ok := mod.ModuleItems[0].(*ast.Struct)
	require.True(t, ok)
	assert.Equal(t, "Point", st.Name.Value)
	require.Len(t, st.Items, 2)

	f0, ok := st.Items[0].(*ast.StructField)
	require.True(t, ok)
	assert.Equal(t, "x", f0.Name.Value)
	assert.Equal(t, "I64", f0.VariableType.Name.Value)
}

func TestParseStructMissingCommaIsAnError(t *testing.T) {
	_, parseErrs, _ := ParseSource("test.ka", `
module m {
    struct Point {
        x: I64
        y: I64,
    }
}
`)
	assert.NotEmpty(t, parseErrs, "a struct field without a trailing comma should fail to parse")
}

func TestParseFunctionSignature(t *testing.T) {
	mod := mustParse(t, `
module m {
    #[entry]
    fn transfer(to: I64, amount: I64) -> Bool reads(Config) writes(State) {
        return true;
    }
}
`)
	require.Len(t, mod.ModuleItems, 1)
	fn, ok := mod.ModuleItems[0].(*ast.Function)
	require.True(t, ok)
	assert.Equal(t, "transfer", fn.Name.Value)
	require.NotNil(t, fn.Attribute)
	assert.Equal(t, "entry", fn.Attribute.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "to", fn.Params[0].Name.Value)
	assert.Equal(t, "I64", fn.Params[0].Type.Name.Value)
	require.NotNil(t, fn.Return)
	assert.Equal(t, "Bool", fn.Return.Name.Value)
	require.Len(t, fn.Reads, 1)
	assert.Equal(t, "Config", fn.Reads[0].Value)
	require.Len(t, fn.Writes, 1)
	assert.Equal(t, "State", fn.Writes[0].Value)
}

func TestParseIfElse(t *testing.T) {
	mod := mustParse(t, `
module m {
    fn main() {
        let mut x = 0;
        if x > 0 {
            x = 1;
        } else {
            x = 2;
        }
    }
}
`)
	fn := mod.ModuleItems[0].(*ast.Function)
	require.Len(t, fn.Body.Items, 2)
	ifStmt, ok := fn.Body.Items[1].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Cond)
	require.NotNil(t, ifStmt.Then)
	require.NotNil(t, ifStmt.Else)
	_, elseIsBlock := ifStmt.Else.(*ast.FunctionBlock)
	assert.True(t, elseIsBlock)
}

func TestParseForLoopRequiresSemicolonAfterPost(t *testing.T) {
	mod := mustParse(t, `
module m {
    fn main() {
        for let mut i = 0; i < 10; i = i + 1; {
        }
    }
}
`)
	fn := mod.ModuleItems[0].(*ast.Function)
	require.Len(t, fn.Body.Items, 1)
	forStmt, ok := fn.Body.Items[0].(*ast.ForStmt)
	require.True(t, ok)
	require.NotNil(t, forStmt.Init)
	require.NotNil(t, forStmt.Cond)
	require.NotNil(t, forStmt.Post)
}

func TestParseForLoopPostMissingSemicolonIsAnError(t *testing.T) {
	_, parseErrs, _ := ParseSource("test.ka", `
module m {
    fn main() {
        for let mut i = 0; i < 10; i = i + 1 {
        }
    }
}
`)
	assert.NotEmpty(t, parseErrs, "the for-post clause requires a trailing semicolon before the body")
}

func TestParseAssertStatement(t *testing.T) {
	mod := mustParse(t, `
module m {
    fn main() {
        assert!(1 > 0);
    }
}
`)
	fn := mod.ModuleItems[0].(*ast.Function)
	require.Len(t, fn.Body.Items, 1)
	assertStmt, ok := fn.Body.Items[0].(*ast.AssertStmt)
	require.True(t, ok)
	require.Len(t, assertStmt.Args, 1)
}

func TestParseAttributeWithValue(t *testing.T) {
	mod := mustParse(t, `
module m {
    #[selector = "custom"]
    fn named() {
    }
}
`)
	fn := mod.ModuleItems[0].(*ast.Function)
	require.NotNil(t, fn.Attribute)
	assert.Equal(t, "selector", fn.Attribute.Name)
	assert.Equal(t, "custom", fn.Attribute.Value)
}
