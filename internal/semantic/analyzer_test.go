package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ember/internal/parser"
	"ember/internal/types"
)

func check(t *testing.T, src string) (*BuildContext, *FuncDecl) {
	t.Helper()
	mod, parseErrs, scanErrs := parser.ParseSource("test.ka", src)
	require.Empty(t, scanErrs)
	require.Empty(t, parseErrs)

	bc := NewBuildContext(mod, types.Word64)
	return bc, bc.FuncDecl(bc.EntryName())
}

func TestEntryResolutionPrefersAttributeOverMainName(t *testing.T) {
	bc, _ := check(t, `
module m {
    fn main() {
    }

    #[entry]
    fn setup() {
    }
}
`)
	assert.Equal(t, "setup", bc.EntryName())
}

func TestEntryResolutionFallsBackToMain(t *testing.T) {
	bc, _ := check(t, `
module m {
    fn main() {
    }
}
`)
	assert.Equal(t, "main", bc.EntryName())
}

func TestMinimumDependencySetIsTransitive(t *testing.T) {
	bc, _ := check(t, `
module m {
    fn helper() {
    }

    fn unreachable() {
    }

    fn main() {
        helper();
    }
}
`)
	deps := bc.MinimumDependencySet()
	assert.True(t, deps["main"])
	assert.True(t, deps["helper"])
	assert.False(t, deps["unreachable"], "a function never called from main should be pruned")
}

func TestStructFieldTypesResolveAcrossDeclarationOrder(t *testing.T) {
	bc, _ := check(t, `
module m {
    struct Box {
        inner: Inner,
    }

    struct Inner {
        value: I64,
    }

    fn main() {
    }
}
`)
	box := bc.StructType("Box")
	require.NotNil(t, box)
	require.Len(t, box.Fields, 1)
	inner, ok := box.Fields[0].Type.(*types.StructType)
	require.True(t, ok, "Box.inner should resolve to the Inner struct type even though Inner is declared later")
	assert.Equal(t, "Inner", inner.Name)
}

func TestFunctionParamsAndResultType(t *testing.T) {
	bc, _ := check(t, `
module m {
    #[entry]
    fn add(a: I64, b: I64) -> I64 {
        return a + b;
    }
}
`)
	decl := bc.FuncDecl("add")
	require.NotNil(t, decl)
	require.Len(t, decl.Params, 2)
	assert.Equal(t, "a", decl.Params[0].Name)
	assert.Equal(t, "b", decl.Params[1].Name)
	require.NotNil(t, decl.ResultType)
	it, ok := decl.ResultType.(*types.IntType)
	require.True(t, ok)
	assert.Equal(t, 64, it.Bits)
}

func TestWordSizeCanonicalizesIntLiteralType(t *testing.T) {
	bc, decl := check(t, `
module m {
    fn main() {
        let x = 1;
    }
}
`)
	letStmt := decl.Func.Body.Items[0]
	entity := bc.EntityFor(letStmt)
	require.NotNil(t, entity)
	it, ok := entity.Type.(*types.IntType)
	require.True(t, ok, "an untyped int literal should canonicalize to a concrete IntType")
	assert.Equal(t, int(bc.WordSize())*8, it.Bits)
}
