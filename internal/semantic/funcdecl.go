package semantic

import (
	"ember/internal/ast"
	"ember/internal/types"
)

// FuncDecl is the declaration info the driver needs for one function:
// its entity, its AST, and its resolved parameter/result types.
type FuncDecl struct {
	Func       *ast.Function
	Entity     *Entity
	Params     []*Entity
	ResultType types.Type // nil for a void function
}
