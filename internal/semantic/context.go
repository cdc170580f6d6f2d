package semantic

import (
	"ember/internal/ast"
	"ember/internal/types"
)

// BuildContext is this repository's stand-in for the frontend
// collaborator's "checker info": word size configuration, the
// type-and-value map, entity tables, a selector lookup, and the
// minimum-dependency set the driver filters entity enumeration by.
type BuildContext struct {
	wordSize types.WordSize
	module   *ast.Module

	typesAndValues map[ast.Expr]TypeAndValue
	entities       map[ast.Node]*Entity

	funcs     map[string]*FuncDecl
	funcOrder []string

	structTypes map[string]*types.StructType

	entryName string
	minDeps   map[string]bool
}

// WordSize returns the configured platform word size, which drives
// int/uint canonicalization and the SSA-ability threshold.
func (bc *BuildContext) WordSize() types.WordSize { return bc.wordSize }

// TypeOf returns the resolved type of a checked expression, or nil if
// the expression was never recorded (a parse-error placeholder).
func (bc *BuildContext) TypeOf(e ast.Expr) types.Type {
	if tv, ok := bc.typesAndValues[e]; ok {
		return tv.Type
	}
	return nil
}

// ModeOf returns the expression's mode, defaulting to ModeInvalid.
func (bc *BuildContext) ModeOf(e ast.Expr) Mode {
	if tv, ok := bc.typesAndValues[e]; ok {
		return tv.Mode
	}
	return ModeInvalid
}

// TypeAndValueOf returns the full record and whether it exists.
func (bc *BuildContext) TypeAndValueOf(e ast.Expr) (TypeAndValue, bool) {
	tv, ok := bc.typesAndValues[e]
	return tv, ok
}

// ExactValueOf returns the compile-time value recorded for e, if any.
func (bc *BuildContext) ExactValueOf(e ast.Expr) (ExactValue, bool) {
	tv, ok := bc.typesAndValues[e]
	if !ok || tv.Value == nil {
		return ExactValue{}, false
	}
	return *tv.Value, true
}

// EntityFor returns the entity a given AST node (identifier, param, let
// statement, or function) resolves to.
func (bc *BuildContext) EntityFor(node ast.Node) *Entity {
	return bc.entities[node]
}

// EntityByName looks up a file-scope entity (a function) by name.
func (bc *BuildContext) EntityByName(name string) *Entity {
	if decl, ok := bc.funcs[name]; ok {
		return decl.Entity
	}
	return nil
}

// FuncDecl returns the declaration info for a named function.
func (bc *BuildContext) FuncDecl(name string) *FuncDecl {
	return bc.funcs[name]
}

// Functions returns every function declaration in source order.
func (bc *BuildContext) Functions() []*FuncDecl {
	decls := make([]*FuncDecl, 0, len(bc.funcOrder))
	for _, name := range bc.funcOrder {
		decls = append(decls, bc.funcs[name])
	}
	return decls
}

// EntryName returns the name of the entry procedure ("main", or the
// function carrying the #[entry] attribute).
func (bc *BuildContext) EntryName() string { return bc.entryName }

// ModuleName returns the source module's declared name, the basename
// component of a driver's mangled link names.
func (bc *BuildContext) ModuleName() string { return bc.module.Name.Value }

// SelectorPath resolves field on owner to an index path into its
// representation. Only direct fields are modeled (no field promotion),
// so the path is always a single index; multi-hop selectors apply this
// once per hop in the chain, per the deep-projection helpers in
// internal/ir.
func (bc *BuildContext) SelectorPath(owner types.Type, field string) ([]int, bool) {
	st, ok := types.Deref(owner).(*types.StructType)
	if !ok {
		return nil, false
	}
	idx := st.FieldIndex(field)
	if idx < 0 {
		return nil, false
	}
	return []int{idx}, true
}

// MinimumDependencySet returns the set of function names transitively
// reachable from the entry point. The driver skips any file-scope
// entity not present in this set.
func (bc *BuildContext) MinimumDependencySet() map[string]bool {
	return bc.minDeps
}

// StructType returns the resolved representation of a struct name.
func (bc *BuildContext) StructType(name string) *types.StructType {
	return bc.structTypes[name]
}
