package semantic

import (
	"ember/internal/ast"
	"ember/internal/types"
)

// calleesOf collects the name of every function called anywhere in f's
// body, by walking statements and expressions looking for CallExpr
// nodes whose callee resolves to a plain name or a single-segment path.
func calleesOf(f *ast.Function) []string {
	var names []string
	var walkExpr func(e ast.Expr)
	var walkBlock func(b *ast.FunctionBlock)

	record := func(callee ast.Expr) {
		switch c := callee.(type) {
		case *ast.IdentExpr:
			names = append(names, c.Name)
		case *ast.CalleePath:
			if len(c.Parts) > 0 {
				names = append(names, c.Parts[len(c.Parts)-1].Value)
			}
		}
	}

	walkExpr = func(e ast.Expr) {
		switch n := e.(type) {
		case nil:
		case *ast.CallExpr:
			record(n.Callee)
			walkExpr(n.Callee)
			for _, arg := range n.Args {
				walkExpr(arg)
			}
		case *ast.BinaryExpr:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *ast.UnaryExpr:
			walkExpr(n.Value)
		case *ast.ParenExpr:
			walkExpr(n.Value)
		case *ast.TupleExpr:
			for _, el := range n.Elements {
				walkExpr(el)
			}
		case *ast.FieldAccessExpr:
			walkExpr(n.Target)
		case *ast.IndexExpr:
			walkExpr(n.Target)
			walkExpr(n.Index)
		case *ast.StructLiteralExpr:
			for _, field := range n.Fields {
				walkExpr(field.Value)
			}
		}
	}

	walkBlock = func(b *ast.FunctionBlock) {
		if b == nil {
			return
		}
		for _, item := range b.Items {
			switch n := item.(type) {
			case *ast.ExprStmt:
				walkExpr(n.Expr)
			case *ast.LetStmt:
				walkExpr(n.Expr)
			case *ast.AssignStmt:
				walkExpr(n.Target)
				walkExpr(n.Value)
			case *ast.AssertStmt:
				for _, arg := range n.Args {
					walkExpr(arg)
				}
			case *ast.ReturnStmt:
				if n.Value != nil {
					walkExpr(n.Value)
				}
			case *ast.IfStmt:
				walkExpr(n.Cond)
				walkBlock(n.Then)
				switch e := n.Else.(type) {
				case *ast.IfStmt:
					walkBlock(&ast.FunctionBlock{Items: []ast.FunctionBlockItem{e}})
				case *ast.FunctionBlock:
					walkBlock(e)
				}
			case *ast.ForStmt:
				walkBlock(&ast.FunctionBlock{Items: []ast.FunctionBlockItem{n.Init, n.Post}})
				if n.Cond != nil {
					walkExpr(n.Cond)
				}
				walkBlock(n.Body)
			case *ast.IncDecStmt:
				walkExpr(n.Target)
			case *ast.WhenStmt:
				walkExpr(n.Cond)
				walkBlock(n.Body)
			}
		}
		if b.TailExpr != nil {
			walkExpr(b.TailExpr.Expr)
		}
	}

	walkBlock(f.Body)
	return names
}

// checkFunctionBodies walks every function body, binding parameter and
// let-statement names into a lexical scope and recording a TypeAndValue
// for each expression node it visits.
func (a *analyzer) checkFunctionBodies(module *ast.Module) {
	for _, item := range module.ModuleItems {
		f, ok := item.(*ast.Function)
		if !ok {
			continue
		}
		decl := a.bc.funcs[f.Name.Value]

		a.scope = []map[string]*Entity{{}}
		for _, p := range decl.Params {
			a.bind(p.Name, p)
		}
		a.checkBlock(f.Body)
	}
}

func (a *analyzer) pushScope() { a.scope = append(a.scope, map[string]*Entity{}) }
func (a *analyzer) popScope()  { a.scope = a.scope[:len(a.scope)-1] }

func (a *analyzer) bind(name string, e *Entity) {
	a.scope[len(a.scope)-1][name] = e
}

func (a *analyzer) lookup(name string) *Entity {
	for i := len(a.scope) - 1; i >= 0; i-- {
		if e, ok := a.scope[i][name]; ok {
			return e
		}
	}
	if decl, ok := a.bc.funcs[name]; ok {
		return decl.Entity
	}
	return nil
}

func (a *analyzer) record(e ast.Expr, t types.Type, mode Mode, value *ExactValue) {
	a.bc.typesAndValues[e] = TypeAndValue{Type: t, Mode: mode, Value: value}
}

func (a *analyzer) checkBlock(b *ast.FunctionBlock) {
	if b == nil {
		return
	}
	a.pushScope()
	defer a.popScope()

	for _, item := range b.Items {
		a.checkBlockItem(item)
	}
	if b.TailExpr != nil {
		a.checkExpr(b.TailExpr.Expr)
	}
}

func (a *analyzer) checkBlockItem(item ast.FunctionBlockItem) {
	switch n := item.(type) {
	case *ast.ExprStmt:
		a.checkExpr(n.Expr)
	case *ast.LetStmt:
		t := a.checkExpr(n.Expr)
		if n.Type != nil {
			t = a.resolveType(n.Type)
		}
		e := &Entity{Kind: EntityVar, Name: n.Name.Value, Type: t, Node: n}
		a.bc.entities[n] = e
		a.bind(n.Name.Value, e)
	case *ast.AssignStmt:
		a.checkExpr(n.Target)
		a.checkExpr(n.Value)
	case *ast.AssertStmt:
		for _, arg := range n.Args {
			a.checkExpr(arg)
		}
	case *ast.ReturnStmt:
		if n.Value != nil {
			a.checkExpr(n.Value)
		}
	case *ast.IfStmt:
		a.checkExpr(n.Cond)
		a.checkBlock(n.Then)
		switch e := n.Else.(type) {
		case *ast.IfStmt:
			a.checkBlockItem(e)
		case *ast.FunctionBlock:
			a.checkBlock(e)
		}
	case *ast.ForStmt:
		a.pushScope()
		if n.Init != nil {
			a.checkBlockItem(n.Init)
		}
		if n.Cond != nil {
			a.checkExpr(n.Cond)
		}
		if n.Post != nil {
			a.checkBlockItem(n.Post)
		}
		a.checkBlock(n.Body)
		a.popScope()
	case *ast.WhenStmt:
		a.checkExpr(n.Cond)
		a.checkBlock(n.Body)
	case *ast.IncDecStmt:
		a.checkExpr(n.Target)
	}
}

// checkExpr infers and records a TypeAndValue for e, returning the
// inferred type for callers (let-statement annotation, etc).
func (a *analyzer) checkExpr(e ast.Expr) types.Type {
	switch n := e.(type) {
	case nil, *ast.BadExpr:
		return nil

	case *ast.LiteralExpr:
		return a.checkLiteral(n)

	case *ast.IdentExpr:
		entity := a.lookup(n.Name)
		if entity == nil {
			return nil
		}
		a.bc.entities[n] = entity
		mode := ModeVariable
		if entity.Kind == EntityProc {
			mode = ModeValue
		}
		a.record(n, entity.Type, mode, nil)
		return entity.Type

	case *ast.ParenExpr:
		t := a.checkExpr(n.Value)
		a.record(n, t, ModeValue, nil)
		return t

	case *ast.CalleePath:
		if len(n.Parts) == 0 {
			return nil
		}
		name := n.Parts[len(n.Parts)-1].Value
		decl, ok := a.bc.funcs[name]
		if !ok {
			return nil
		}
		a.record(n, decl.Entity.Type, ModeValue, nil)
		return decl.Entity.Type

	case *ast.UnaryExpr:
		vt := a.checkExpr(n.Value)
		rt := vt
		if n.Op == "!" {
			rt = &types.BoolType{}
		} else if n.Op == "&" {
			rt = types.MakePointer(vt)
		}
		a.record(n, rt, ModeValue, nil)
		return rt

	case *ast.BinaryExpr:
		lt := a.checkExpr(n.Left)
		a.checkExpr(n.Right)
		rt := lt
		switch n.Op {
		case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
			rt = &types.BoolType{}
		}
		a.record(n, rt, ModeValue, nil)
		return rt

	case *ast.CallExpr:
		a.checkExpr(n.Callee)
		for _, arg := range n.Args {
			a.checkExpr(arg)
		}
		var rt types.Type
		if name := calleeName(n.Callee); name != "" {
			if decl, ok := a.bc.funcs[name]; ok {
				rt = decl.ResultType
			}
		}
		a.record(n, rt, ModeValue, nil)
		return rt

	case *ast.FieldAccessExpr:
		tt := a.checkExpr(n.Target)
		var ft types.Type
		if st, ok := types.Deref(tt).(*types.StructType); ok {
			if idx := st.FieldIndex(n.Field); idx >= 0 {
				ft = st.Fields[idx].Type
			}
		} else if st, ok := tt.(*types.StructType); ok {
			if idx := st.FieldIndex(n.Field); idx >= 0 {
				ft = st.Fields[idx].Type
			}
		}
		a.record(n, ft, ModeVariable, nil)
		return ft

	case *ast.IndexExpr:
		tt := a.checkExpr(n.Target)
		a.checkExpr(n.Index)
		var et types.Type
		switch t := tt.(type) {
		case *types.ArrayType:
			et = t.Elem
		case *types.DynamicArrayType:
			et = t.Elem
		case *types.PointerType:
			switch pt := t.Elem.(type) {
			case *types.ArrayType:
				et = pt.Elem
			case *types.DynamicArrayType:
				et = pt.Elem
			}
		}
		a.record(n, et, ModeVariable, nil)
		return et

	case *ast.TupleExpr:
		fields := make([]types.Field, len(n.Elements))
		for i, el := range n.Elements {
			fields[i] = types.Field{Name: tupleFieldName(i), Type: a.checkExpr(el)}
		}
		st := &types.StructType{Fields: fields, IsTuple: true}
		a.record(n, st, ModeValue, nil)
		return st

	case *ast.StructLiteralExpr:
		var st *types.StructType
		if n.Type != nil && len(n.Type.Parts) > 0 {
			st = a.bc.structTypes[n.Type.Parts[len(n.Type.Parts)-1].Value]
		} else {
			st = a.bc.structTypes[n.Name]
		}
		for _, field := range n.Fields {
			a.checkExpr(field.Value)
		}
		var t types.Type
		if st != nil {
			t = st
		}
		a.record(n, t, ModeValue, nil)
		return t
	}
	return nil
}

func (a *analyzer) checkLiteral(n *ast.LiteralExpr) types.Type {
	switch n.Kind {
	case ast.LiteralInt, ast.LiteralHex:
		t := types.ProperType(&types.IntType{Bits: 0}, a.bc.wordSize)
		v := &ExactValue{Kind: ExactInteger, Integer: parseLiteralInt(n.Value, n.Kind)}
		a.record(n, t, ModeConstant, v)
		return t
	case ast.LiteralBool:
		t := &types.BoolType{}
		v := &ExactValue{Kind: ExactBool, Bool: n.Value == "true"}
		a.record(n, t, ModeConstant, v)
		return t
	case ast.LiteralString:
		t := &types.StringType{}
		v := &ExactValue{Kind: ExactString, String: n.Value}
		a.record(n, t, ModeConstant, v)
		return t
	}
	return nil
}

func calleeName(callee ast.Expr) string {
	switch c := callee.(type) {
	case *ast.IdentExpr:
		return c.Name
	case *ast.CalleePath:
		if len(c.Parts) > 0 {
			return c.Parts[len(c.Parts)-1].Value
		}
	}
	return ""
}

// parseLiteralInt decodes a literal's text into its int64 value; hex
// literals carry a "0x"/"0X" prefix, decimal literals do not.
func parseLiteralInt(text string, kind ast.LiteralKind) int64 {
	var base int64 = 10
	start := 0
	if kind == ast.LiteralHex {
		base = 16
		if len(text) > 2 && (text[1] == 'x' || text[1] == 'X') {
			start = 2
		}
	}

	var v int64
	for i := start; i < len(text); i++ {
		c := text[i]
		var d int64
		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case c >= 'a' && c <= 'f':
			d = int64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = int64(c-'A') + 10
		default:
			continue
		}
		v = v*base + d
	}
	return v
}
