package ir

import (
	"ember/internal/ast"
	"ember/internal/semantic"
	"ember/internal/types"
)

// newValue allocates a Value from the module's primary arena, assigns
// it the procedure's next id, and appends it to b's instruction list.
func (p *Procedure) newValue(b *Block, op Op, t types.Type) *Value {
	v := p.Module.primaryValues.New()
	v.ID = p.nextValueID
	v.Op = op
	v.Type = t
	v.Block = b
	p.nextValueID++
	b.Values = append(b.Values, v)
	return v
}

// emit is new_value against the currently open block, with convenience
// argument appending; each Append bumps the referent's use count.
func (p *Procedure) emit(op Op, t types.Type, args ...*Value) *Value {
	v := p.newValue(p.curr(), op, t)
	for _, a := range args {
		v.Args.Append(a)
	}
	return v
}

// addEdgeTo links the currently open block to dst as its next
// successor; a no-op if no block is open (terminator already sunk).
func (p *Procedure) addEdgeTo(dst *Block) {
	from := p.curr()
	if from == nil {
		return
	}
	p.addEdgeFromTo(from, dst)
}

// addEdgeFromTo links an explicit (already-closed) block to dst,
// cross-indexing both sides' edge lists.
func (p *Procedure) addEdgeFromTo(from, dst *Block) {
	succIdx := len(from.Succs)
	predIdx := len(dst.Preds)
	from.Succs = append(from.Succs, Edge{Block: dst, Index: predIdx})
	dst.Preds = append(dst.Preds, Edge{Block: from, Index: succIdx})
}

// emitJump is add_edge_to(end_block(proc), to): it closes the current
// block with an edge to dst, leaving no block open.
func (p *Procedure) emitJump(dst *Block) {
	p.addEdgeTo(dst)
	p.endBlock()
}

// setControl installs v as b's control value, maintaining use counts
// for the value it replaces. Only If and Exit blocks carry a control.
func (p *Procedure) setControl(b *Block, v *Value) {
	if b.Control != nil {
		b.Control.uses--
	}
	b.Control = v
	if v != nil {
		v.uses++
	}
}

// ctx is shorthand for the procedure's checker info.
func (p *Procedure) ctx() *semantic.BuildContext { return p.Module.Context }

// properType canonicalizes a checker type against the module's word
// size (spec §4.2.1).
func (p *Procedure) properType(t types.Type) types.Type {
	return types.ProperType(t, p.ctx().WordSize())
}

// inBlock temporarily opens b for insertion, runs fn, then restores
// whatever block (if any) was open beforehand. Local materialization
// always inserts into the entry block regardless of where lowering
// currently stands.
func (p *Procedure) inBlock(b *Block, fn func()) {
	prev := p.curBlock
	p.curBlock = b
	fn()
	p.curBlock = prev
}

// ==========================================================================
// 4.2.6 Local materialization
// ==========================================================================

// addLocal materializes entity's storage: a Local in the entry block,
// an Addr value projecting its address, and a Zero initializer through
// that address. The address is registered in both the procedure-local
// and module-wide entity maps and returned for reuse.
func (p *Procedure) addLocal(entity *semantic.Entity) *Value {
	if v, ok := p.locals[entity]; ok {
		return v
	}
	addrV := p.materializeLocal(entity.Type, entity.Name)
	p.locals[entity] = addrV
	p.Module.globals[entity] = addrV
	return addrV
}

// addLocalGenerated is add_local for a compiler-introduced temporary
// with no source entity: the hidden result slot, or the fresh local
// address_from_load_or_generate_local allocates when it has to.
func (p *Procedure) addLocalGenerated(t types.Type, comment string) *Value {
	return p.materializeLocal(t, comment)
}

func (p *Procedure) materializeLocal(t types.Type, comment string) *Value {
	var addrV *Value
	p.inBlock(p.Entry, func() {
		local := p.newValue(p.Entry, Local, t)
		local.Comment = comment
		addrV = p.newValue(p.Entry, Addr, types.MakePointer(t))
		addrV.Args.Append(local)
		p.newValue(p.Entry, Zero, nil).Args.Append(addrV)
	})
	return addrV
}

// addressFromLocal returns the already-materialized address of entity,
// fatally asserting that addLocal ran for every binding the statement
// walker introduces (parameters at procedure setup, let-statements as
// they are lowered).
func (p *Procedure) addressFromLocal(entity *semantic.Entity) *Address {
	v, ok := p.locals[entity]
	if !ok {
		panic("ir: reference to entity with no materialized local: " + entity.Name)
	}
	return &Address{Addr: v}
}

// addressFromLoadOrGenerateLocal returns v's source address if v is a
// Load, otherwise stores v into a fresh generated local and returns
// that local's address.
func (p *Procedure) addressFromLoadOrGenerateLocal(v *Value) *Address {
	if v.Op == Load {
		return &Address{Addr: v.Args.At(0)}
	}
	addrV := p.addLocalGenerated(v.Type, "")
	p.emit(Store, nil, addrV, v)
	return &Address{Addr: addrV}
}

func (p *Procedure) emitLoad(addr *Address) *Value {
	elem := types.Deref(addr.Addr.Type)
	return p.emit(Load, elem, addr.Addr)
}

func (p *Procedure) emitStore(addr *Address, v *Value) {
	if !addr.Valid() {
		return
	}
	p.emit(Store, nil, addr.Addr, v)
}

// loadOrProject reads through addr: for an SSA-able type it emits a
// Load; a type too large for register treatment has no single value
// that could hold it, so the caller keeps working with the address.
func (p *Procedure) loadOrProject(addr *Address, t types.Type) *Value {
	if !addr.Valid() {
		panic("ir: load from invalid address")
	}
	if types.CanSSA(t, p.ctx().WordSize()) {
		return p.emitLoad(addr)
	}
	return addr.Addr
}

// ==========================================================================
// 4.2.4 Field projection
// ==========================================================================

// emitPtrIndex is the pointer-level field projection: given a pointer
// to an aggregate, returns a pointer to the component at index,
// carrying index as the PtrIndex value's exact integer payload.
func (p *Procedure) emitPtrIndex(addr *Address, index int, elemType types.Type) *Value {
	v := p.emit(PtrIndex, types.MakePointer(elemType), addr.Addr)
	v.Exact = &ExactValue{Kind: ExactInteger, Integer: int64(index)}
	return v
}

// emitValueIndex is the value-level analogue of emitPtrIndex. If s is
// itself a Load of storage too large for SSA treatment, the projection
// is rewritten through the pointer instead, since a too-large aggregate
// never exists as a single register value to index.
func (p *Procedure) emitValueIndex(s *Value, index int, elemType types.Type) *Value {
	if s.Op == Load && !types.CanSSA(s.Type, p.ctx().WordSize()) {
		ptr := p.emitPtrIndex(&Address{Addr: s.Args.At(0)}, index, elemType)
		return p.emitLoad(&Address{Addr: ptr})
	}
	v := p.emit(ValueIndex, elemType, s)
	v.Exact = &ExactValue{Kind: ExactInteger, Integer: int64(index)}
	return v
}

// fieldType resolves field's type on owner, following one pointer
// indirection if owner is itself a pointer to a struct/tuple.
func fieldType(owner types.Type, field string) (types.Type, int) {
	st, ok := types.Deref(owner).(*types.StructType)
	if !ok {
		st, ok = owner.(*types.StructType)
	}
	if !ok {
		panic("ir: field projection on non-aggregate type")
	}
	idx := st.FieldIndex(field)
	if idx < 0 {
		panic("ir: unknown field: " + field)
	}
	return st.Fields[idx].Type, idx
}

// selectorChain flattens a right-leaning FieldAccessExpr chain (x.a.b.c)
// into its innermost non-selector base expression and the ordered list
// of field names applied on top of it.
func selectorChain(e ast.Expr) (ast.Expr, []string) {
	var fields []string
	for {
		fa, ok := e.(*ast.FieldAccessExpr)
		if !ok {
			return e, fields
		}
		fields = append([]string{fa.Field}, fields...)
		e = fa.Target
	}
}

// emitDeepFieldPtrIndex repeats the pointer-level projection once per
// hop in a selector chain's index path, matching the original source's
// ssa_emit_deep_field_ptr_index.
func (p *Procedure) emitDeepFieldPtrIndex(base *Address, baseType types.Type, fields []string) *Address {
	addr := base
	t := baseType
	for _, f := range fields {
		var idx int
		t, idx = fieldType(t, f)
		addr = &Address{Addr: p.emitPtrIndex(addr, idx, t)}
	}
	return addr
}

// emitDeepFieldValueIndex is emitDeepFieldPtrIndex's value-level twin,
// used when the base expression is not addressable.
func (p *Procedure) emitDeepFieldValueIndex(base *Value, baseType types.Type, fields []string) *Value {
	v := base
	t := baseType
	for _, f := range fields {
		var idx int
		t, idx = fieldType(t, f)
		v = p.emitValueIndex(v, idx, t)
	}
	return v
}

// ==========================================================================
// 4.2.3 Address building
// ==========================================================================

// buildAddr returns the Address denoted by an lvalue-shaped expression.
// A nil-addressed result (Valid() == false) denotes the blank
// identifier, whose stores are silently suppressed.
func (p *Procedure) buildAddr(e ast.Expr) *Address {
	switch n := e.(type) {
	case *ast.IdentExpr:
		if n.Name == "_" {
			return &Address{}
		}
		entity := p.ctx().EntityFor(n)
		if entity == nil {
			panic("ir: identifier with no resolved entity: " + n.Name)
		}
		for entity.UsingParent != nil {
			entity = entity.UsingParent
		}
		return p.addressFromLocal(entity)

	case *ast.ParenExpr:
		return p.buildAddr(n.Value)

	case *ast.FieldAccessExpr:
		if p.ctx().ModeOf(n.Target) == semantic.ModeType {
			panic("ir: selector on a type-mode base is not supported")
		}
		base, fields := selectorChain(n)
		baseAddr := p.buildAddr(base)
		baseType := p.ctx().TypeOf(base)
		return p.emitDeepFieldPtrIndex(baseAddr, baseType, fields)

	case *ast.IndexExpr:
		targetAddr := p.buildAddr(n.Target)
		idx := p.buildExpr(n.Index)
		elemType := arrayElemType(p.ctx().TypeOf(n.Target))
		ptr := p.emit(PtrOffset, types.MakePointer(elemType), targetAddr.Addr, idx)
		return &Address{Addr: ptr}
	}
	panic("ir: build_addr: unsupported lvalue shape")
}

func arrayElemType(t types.Type) types.Type {
	switch at := types.Deref(t).(type) {
	case *types.ArrayType:
		return at.Elem
	case *types.DynamicArrayType:
		return at.Elem
	}
	switch at := t.(type) {
	case *types.ArrayType:
		return at.Elem
	case *types.DynamicArrayType:
		return at.Elem
	}
	panic("ir: indexing a non-array type")
}

// ==========================================================================
// 4.2 Expression lowering
// ==========================================================================

// buildExpr lowers an expression to the Value computing it.
func (p *Procedure) buildExpr(e ast.Expr) *Value {
	if pe, ok := e.(*ast.ParenExpr); ok {
		return p.buildExpr(pe.Value)
	}

	if ev, ok := p.ctx().ExactValueOf(e); ok {
		return p.emitConst(p.properType(p.ctx().TypeOf(e)), ev)
	}

	if p.ctx().ModeOf(e) == semantic.ModeVariable {
		return p.loadOrProject(p.buildAddr(e), p.ctx().TypeOf(e))
	}

	switch n := e.(type) {
	case *ast.IdentExpr:
		entity := p.ctx().EntityFor(n)
		if entity == nil {
			panic("ir: identifier with no resolved entity: " + n.Name)
		}
		if entity.Kind == semantic.EntityProc {
			v := p.emit(Proc, entity.Type)
			v.Comment = entity.Name
			return v
		}
		return p.loadOrProject(p.addressFromLocal(entity), entity.Type)

	case *ast.UnaryExpr:
		return p.buildUnary(n)

	case *ast.BinaryExpr:
		return p.buildBinary(n)

	case *ast.FieldAccessExpr:
		base, fields := selectorChain(n)
		baseVal := p.buildExpr(base)
		return p.emitDeepFieldValueIndex(baseVal, p.ctx().TypeOf(base), fields)
	}

	panic("ir: build_expr: unreachable AST shape (extension point)")
}

func (p *Procedure) emitConst(t types.Type, ev semantic.ExactValue) *Value {
	var op Op
	switch {
	case ev.Kind == semantic.ExactBool:
		op = ConstBool
	case ev.Kind == semantic.ExactString:
		op = ConstString
	case types.IsFloat(t):
		if t.(*types.FloatType).Bits == 32 {
			op = Const32F
		} else {
			op = Const64F
		}
	case types.IsInteger(t):
		switch t.(*types.IntType).Bits {
		case 8:
			op = Const8
		case 16:
			op = Const16
		case 32:
			op = Const32
		default:
			op = Const64
		}
	default:
		panic("ir: constant of unsupported type")
	}

	v := p.emit(op, t)
	payload := toIRExact(ev)
	v.Exact = &payload
	return v
}

func toIRExact(sv semantic.ExactValue) ExactValue {
	switch sv.Kind {
	case semantic.ExactBool:
		return ExactValue{Kind: ExactBool, Bool: sv.Bool}
	case semantic.ExactInteger:
		return ExactValue{Kind: ExactInteger, Integer: sv.Integer}
	case semantic.ExactFloat:
		return ExactValue{Kind: ExactFloat, Float: sv.Float}
	case semantic.ExactString:
		return ExactValue{Kind: ExactString, String: sv.String}
	}
	return ExactValue{}
}

func (p *Procedure) buildUnary(n *ast.UnaryExpr) *Value {
	switch n.Op {
	case "&":
		return p.buildAddr(n.Value).Addr
	case "+":
		return p.buildExpr(n.Value)
	}

	operand := p.buildExpr(n.Value)
	t := p.properType(p.ctx().TypeOf(n.Value))

	var op Op
	switch n.Op {
	case "!":
		op = NotB
		t = &types.BoolType{}
	case "~":
		op = widthOp(t, Not8, Not16, Not32, Not64)
	case "-":
		if types.IsFloat(t) {
			if t.(*types.FloatType).Bits == 32 {
				op = Neg32F
			} else {
				op = Neg64F
			}
		} else {
			op = widthOp(t, Neg8, Neg16, Neg32, Neg64)
		}
	default:
		panic("ir: unsupported unary operator: " + n.Op)
	}

	return p.emit(op, t, operand)
}

func widthOp(t types.Type, b8, b16, b32, b64 Op) Op {
	it, ok := t.(*types.IntType)
	if !ok {
		panic("ir: width-dispatched opcode on non-integer type")
	}
	return intOp(it.Bits, b8, b16, b32, b64)
}

func (p *Procedure) buildBinary(n *ast.BinaryExpr) *Value {
	switch n.Op {
	case "&&", "||":
		return p.buildShortCircuit(n)
	case "<<", ">>":
		panic("ir: shift operators are not supported (extension point)")
	}

	left := p.buildExpr(n.Left)
	right := p.buildExpr(n.Right)
	operandType := p.properType(p.ctx().TypeOf(n.Left))

	op, resultType := p.determineOp(n.Op, operandType)
	return p.emit(op, resultType, left, right)
}

// determineOp is §4.2.1: canonicalize operandType via proper_type (the
// caller already did so) and pick the matching width/signedness/float
// opcode for operator.
func (p *Procedure) determineOp(operator string, operandType types.Type) (Op, types.Type) {
	isFloat := types.IsFloat(operandType)
	isUnsigned := types.IsUnsigned(operandType)
	var bits int
	switch t := operandType.(type) {
	case *types.IntType:
		bits = t.Bits
	case *types.FloatType:
		bits = t.Bits
	case *types.BoolType:
		bits = 8
	}

	switch operator {
	case "+":
		if isFloat {
			return floatOp(bits, Add32F, Add64F), operandType
		}
		return intOp(bits, Add8, Add16, Add32, Add64), operandType
	case "-":
		if isFloat {
			return floatOp(bits, Sub32F, Sub64F), operandType
		}
		return intOp(bits, Sub8, Sub16, Sub32, Sub64), operandType
	case "*":
		if isFloat {
			return floatOp(bits, Mul32F, Mul64F), operandType
		}
		return intOp(bits, Mul8, Mul16, Mul32, Mul64), operandType
	case "/":
		if isFloat {
			return floatOp(bits, Div32F, Div64F), operandType
		}
		if isUnsigned {
			return intOp(bits, Div8U, Div16U, Div32U, Div64U), operandType
		}
		return intOp(bits, Div8, Div16, Div32, Div64), operandType
	case "%":
		if isUnsigned {
			return intOp(bits, Mod8U, Mod16U, Mod32U, Mod64U), operandType
		}
		return intOp(bits, Mod8, Mod16, Mod32, Mod64), operandType
	case "&":
		return intOp(bits, And8, And16, And32, And64), operandType
	case "|":
		return intOp(bits, Or8, Or16, Or32, Or64), operandType
	case "^":
		return intOp(bits, Xor8, Xor16, Xor32, Xor64), operandType
	case "&~":
		return intOp(bits, AndNot8, AndNot16, AndNot32, AndNot64), operandType
	case "==", "!=", "<", "<=", ">", ">=":
		return p.emitComp(operator, bits, isFloat, isUnsigned), &types.BoolType{}
	}
	panic("ir: unsupported binary operator: " + operator)
}

// emitComp selects the comparison opcode for operator over an operand
// of the given width/float/unsigned classification.
func (p *Procedure) emitComp(operator string, bits int, isFloat, isUnsigned bool) Op {
	if isFloat {
		switch operator {
		case "==":
			return floatOp(bits, Eq32F, Eq64F)
		case "!=":
			return floatOp(bits, Ne32F, Ne64F)
		case "<":
			return floatOp(bits, Lt32F, Lt64F)
		case "<=":
			return floatOp(bits, Le32F, Le64F)
		case ">":
			return floatOp(bits, Gt32F, Gt64F)
		case ">=":
			return floatOp(bits, Ge32F, Ge64F)
		}
	}
	if isUnsigned {
		switch operator {
		case "<":
			return intOp(bits, Lt8U, Lt16U, Lt32U, Lt64U)
		case "<=":
			return intOp(bits, Le8U, Le16U, Le32U, Le64U)
		case ">":
			return intOp(bits, Gt8U, Gt16U, Gt32U, Gt64U)
		case ">=":
			return intOp(bits, Ge8U, Ge16U, Ge32U, Ge64U)
		}
	}
	switch operator {
	case "==":
		return intOp(bits, Eq8, Eq16, Eq32, Eq64)
	case "!=":
		return intOp(bits, Ne8, Ne16, Ne32, Ne64)
	case "<":
		return intOp(bits, Lt8, Lt16, Lt32, Lt64)
	case "<=":
		return intOp(bits, Le8, Le16, Le32, Le64)
	case ">":
		return intOp(bits, Gt8, Gt16, Gt32, Gt64)
	case ">=":
		return intOp(bits, Ge8, Ge16, Ge32, Ge64)
	}
	panic("ir: unsupported comparison operator: " + operator)
}

func intOp(bits int, b8, b16, b32, b64 Op) Op {
	switch bits {
	case 8:
		return b8
	case 16:
		return b16
	case 32:
		return b32
	default:
		return b64
	}
}

func floatOp(bits int, f32, f64 Op) Op {
	if bits == 32 {
		return f32
	}
	return f64
}

// buildShortCircuit is §4.2.2. L && R allocates two fresh Plain blocks
// rhs/done; if rhs never gets a predecessor the expression reduces to
// a constant false; if done is reached only by fallthrough the result
// is simply build_expr(R); otherwise a Phi in done merges one false
// per existing predecessor with build_expr(R). || is symmetric with
// true as the short-circuit constant.
func (p *Procedure) buildShortCircuit(n *ast.BinaryExpr) *Value {
	rhs := p.newBlock(BlockPlain, "")
	done := p.newBlock(BlockPlain, "")
	shortCircuitVal := n.Op == "||"

	yes, no := rhs, done
	if n.Op == "||" {
		yes, no = done, rhs
	}
	p.buildCond(n.Left, yes, no)

	if len(rhs.Preds) == 0 {
		p.startBlock(done)
		return p.emitConst(&types.BoolType{}, semantic.ExactValue{Kind: semantic.ExactBool, Bool: shortCircuitVal})
	}

	p.startBlock(rhs)
	if len(done.Preds) == 0 {
		right := p.buildExpr(n.Right)
		p.emitJump(done)
		p.startBlock(done)
		return right
	}

	phiArgs := make([]*Value, 0, len(done.Preds)+1)
	for range done.Preds {
		phiArgs = append(phiArgs, p.emitConst(&types.BoolType{}, semantic.ExactValue{Kind: semantic.ExactBool, Bool: shortCircuitVal}))
	}
	right := p.buildExpr(n.Right)
	phiArgs = append(phiArgs, right)
	p.emitJump(done)

	p.startBlock(done)
	phi := p.newValue(done, Phi, &types.BoolType{})
	for _, a := range phiArgs {
		phi.Args.Append(a)
	}
	return phi
}
