package semantic

import (
	"ember/internal/ast"
	"ember/internal/types"
)

// EntityKind classifies what an Entity denotes.
type EntityKind int

const (
	EntityInvalid EntityKind = iota
	EntityVar           // a local variable or parameter
	EntityConst         // a compile-time constant binding
	EntityProc          // a function
	EntityTypeName      // a struct/union type name
)

func (k EntityKind) String() string {
	switch k {
	case EntityVar:
		return "var"
	case EntityConst:
		return "const"
	case EntityProc:
		return "proc"
	case EntityTypeName:
		return "type"
	default:
		return "invalid"
	}
}

// Entity is a named thing the checker resolved: a parameter, a
// let-bound local, or a function. IR construction keys its local/global
// value maps on the Entity pointer rather than on the name string, so
// that two same-named locals in different scopes never collide.
type Entity struct {
	Kind EntityKind
	Name string
	Type types.Type
	Node ast.Node // the declaring ast.FunctionParam / ast.LetStmt / ast.Function

	// UsingParent is set for entities introduced by a "using" statement;
	// lowering walks it to project the parent's storage instead of
	// allocating fresh storage of its own.
	UsingParent *Entity

	// Exported mirrors ast.Function.Public for link-name selection.
	Exported bool
	// IsEntry marks the procedure the driver should build: the function
	// named "main" or carrying the #[entry] attribute.
	IsEntry bool
}
