package semantic

import "ember/internal/ast"
import "ember/internal/types"

// NewBuildContext type-checks a parsed module and returns the read-only
// context the IR builder drives off of. It never reports errors to the
// caller: a reference to an unresolved name or type simply leaves no
// TypeAndValue/Entity behind, which the builder's fatal-assertion
// discipline turns into a crash at the point of use.
func NewBuildContext(module *ast.Module, wordSize types.WordSize) *BuildContext {
	bc := &BuildContext{
		wordSize:       wordSize,
		module:         module,
		typesAndValues: make(map[ast.Expr]TypeAndValue),
		entities:       make(map[ast.Node]*Entity),
		funcs:          make(map[string]*FuncDecl),
		structTypes:    make(map[string]*types.StructType),
		minDeps:        make(map[string]bool),
	}

	a := &analyzer{bc: bc}
	a.registerStructs(module)
	a.registerFunctions(module)
	a.resolveEntry(module)
	a.computeMinimumDependencySet()
	a.checkFunctionBodies(module)

	return bc
}

type analyzer struct {
	bc    *BuildContext
	scope []map[string]*Entity
}

func (a *analyzer) registerStructs(module *ast.Module) {
	var structs []*ast.Struct
	for _, item := range module.ModuleItems {
		s, ok := item.(*ast.Struct)
		if !ok {
			continue
		}
		st := &types.StructType{Name: s.Name.Value}
		a.bc.structTypes[s.Name.Value] = st
		a.bc.entities[s] = &Entity{Kind: EntityTypeName, Name: s.Name.Value, Type: st, Node: s}
		structs = append(structs, s)
	}

	// Field types are resolved in a second pass so that a struct field
	// referring to a struct declared later in the module still resolves.
	for _, s := range structs {
		st := a.bc.structTypes[s.Name.Value]
		for _, item := range s.Items {
			field, ok := item.(*ast.StructField)
			if !ok {
				continue
			}
			st.Fields = append(st.Fields, types.Field{
				Name: field.Name.Value,
				Type: a.resolveType(field.VariableType),
			})
		}
	}
}

func (a *analyzer) registerFunctions(module *ast.Module) {
	for _, item := range module.ModuleItems {
		f, ok := item.(*ast.Function)
		if !ok {
			continue
		}

		var params []*Entity
		paramTypes := make([]types.Type, 0, len(f.Params))
		for _, p := range f.Params {
			pt := a.resolveType(p.Type)
			pe := &Entity{Kind: EntityVar, Name: p.Name.Value, Type: pt, Node: p}
			params = append(params, pe)
			paramTypes = append(paramTypes, pt)
			a.bc.entities[p] = pe
		}

		var resultType types.Type
		if f.Return != nil {
			resultType = a.resolveType(f.Return)
		}

		entity := &Entity{
			Kind:     EntityProc,
			Name:     f.Name.Value,
			Type:     &types.ProcType{Params: paramTypes, Result: resultType},
			Node:     f,
			Exported: f.Public,
		}
		a.bc.entities[f] = entity

		a.bc.funcs[f.Name.Value] = &FuncDecl{
			Func:       f,
			Entity:     entity,
			Params:     params,
			ResultType: resultType,
		}
		a.bc.funcOrder = append(a.bc.funcOrder, f.Name.Value)
	}
}

// resolveEntry picks the procedure the driver builds from: the function
// carrying #[entry], or else a function literally named "main".
func (a *analyzer) resolveEntry(module *ast.Module) {
	for _, item := range module.ModuleItems {
		f, ok := item.(*ast.Function)
		if !ok || f.Attribute == nil || f.Attribute.Name != "entry" {
			continue
		}
		a.bc.entryName = f.Name.Value
		a.bc.funcs[f.Name.Value].Entity.IsEntry = true
		return
	}
	if decl, ok := a.bc.funcs["main"]; ok {
		a.bc.entryName = "main"
		decl.Entity.IsEntry = true
	}
}

// computeMinimumDependencySet walks the call graph reachable from the
// entry procedure; the driver skips every function outside this set.
func (a *analyzer) computeMinimumDependencySet() {
	if a.bc.entryName == "" {
		return
	}

	var visit func(name string)
	visit = func(name string) {
		if a.bc.minDeps[name] {
			return
		}
		decl, ok := a.bc.funcs[name]
		if !ok {
			return
		}
		a.bc.minDeps[name] = true
		for _, callee := range calleesOf(decl.Func) {
			if _, known := a.bc.funcs[callee]; known {
				visit(callee)
			}
		}
	}

	visit(a.bc.entryName)
}

// resolveType turns a parsed VariableType into a types.Type. Generic
// parameters are accepted syntactically but not instantiated: this
// builder only ever handles monomorphic procedures.
func (a *analyzer) resolveType(vt *ast.VariableType) types.Type {
	if vt == nil {
		return nil
	}
	if vt.Ref != nil {
		return types.MakePointer(a.resolveType(vt.Ref.Target))
	}
	if vt.TupleElements != nil {
		fields := make([]types.Field, len(vt.TupleElements))
		for i, el := range vt.TupleElements {
			fields[i] = types.Field{Name: tupleFieldName(i), Type: a.resolveType(el)}
		}
		return &types.StructType{Fields: fields, IsTuple: true}
	}
	if bt := types.FromBuiltinName(vt.Name.Value); bt != nil {
		return types.ProperType(bt, a.bc.wordSize)
	}
	if st, ok := a.bc.structTypes[vt.Name.Value]; ok {
		return st
	}
	return nil
}

func tupleFieldName(i int) string {
	digits := []byte{'0' + byte(i%10)}
	for i /= 10; i > 0; i /= 10 {
		digits = append([]byte{'0' + byte(i%10)}, digits...)
	}
	return "_" + string(digits)
}
