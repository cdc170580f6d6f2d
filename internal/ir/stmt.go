package ir

import (
	"ember/internal/ast"
	"ember/internal/semantic"
	"ember/internal/types"
)

// ensureOpenBlock is the statement-lowering entry contract: if no block
// is open, unreachable code after a terminator gets collected into a
// fresh unnamed "dead" Plain block rather than lowering into thin air.
func (p *Procedure) ensureOpenBlock() {
	if p.curr() == nil {
		p.startBlock(p.newBlock(BlockPlain, ""))
	}
}

// buildBlock lowers every item of a braced block in order, followed by
// its optional tail expression (built and discarded, same as an
// ExprStmt — this core assigns no special return-producing meaning to
// a block's trailing expression).
func (p *Procedure) buildBlock(b *ast.FunctionBlock) {
	if b == nil {
		return
	}
	for _, item := range b.Items {
		p.buildStmt(item)
	}
	if b.TailExpr != nil {
		p.ensureOpenBlock()
		p.buildExpr(b.TailExpr.Expr)
	}
}

func (p *Procedure) buildStmt(item ast.FunctionBlockItem) {
	switch n := item.(type) {
	case *ast.Comment:
		// no-op

	case *ast.LetStmt:
		p.ensureOpenBlock()
		p.buildLet(n)

	case *ast.AssignStmt:
		p.ensureOpenBlock()
		p.buildAssign(n)

	case *ast.ExprStmt:
		p.ensureOpenBlock()
		p.buildExpr(n.Expr)

	case *ast.IncDecStmt:
		p.ensureOpenBlock()
		p.buildAddr(n.Target)
		panic("ir: assign-op lowering for ++/-- is a stub (extension point)")

	case *ast.IfStmt:
		p.ensureOpenBlock()
		p.buildIf(n)

	case *ast.ForStmt:
		p.ensureOpenBlock()
		p.buildFor(n)

	case *ast.BranchStmt:
		p.ensureOpenBlock()
		p.buildBranch(n)

	case *ast.UsingStmt:
		// A using-statement only ever aliases a module path in this
		// surface; it introduces no value declarations to lower.

	case *ast.WhenStmt:
		p.ensureOpenBlock()
		p.buildWhen(n)

	case *ast.AssertStmt, *ast.ReturnStmt, *ast.DeferStmt, *ast.RangeStmt,
		*ast.MatchStmt, *ast.TypeMatchStmt, *ast.PushAllocatorStmt, *ast.PushContextStmt:
		p.ensureOpenBlock()
		p.buildExtensionStmt(item)

	default:
		panic("ir: build_stmt: unreachable statement shape")
	}
}

// buildExtensionStmt handles the statement forms this core declares in
// its surface but does not lower, with one supplement: ReturnStmt,
// whose hidden-result-slot lowering is fully implemented below.
func (p *Procedure) buildExtensionStmt(item ast.FunctionBlockItem) {
	if ret, ok := item.(*ast.ReturnStmt); ok {
		p.buildReturn(ret)
		return
	}
	panic("ir: statement form is declared but not lowered in this core (extension point)")
}

// buildReturn evaluates the return value (if any), stores it through
// the hidden result slot materialized at procedure entry, then jumps
// to the procedure's exit block. A bare "return;" jumps directly.
func (p *Procedure) buildReturn(n *ast.ReturnStmt) {
	if n.Value != nil {
		if p.resultSlot == nil {
			panic("ir: return with a value in a void procedure")
		}
		p.assignValueTo(p.resultSlot, p.Decl.ResultType, n.Value)
	}
	p.emitJump(p.Exit)
}

// buildLet materializes the let-bound entity's storage and assigns its
// initializer into it.
func (p *Procedure) buildLet(n *ast.LetStmt) {
	entity := p.ctx().EntityFor(n)
	if entity == nil {
		panic("ir: let-statement with no resolved entity")
	}
	addr := p.addLocal(entity)
	p.assignValueTo(&Address{Addr: addr}, entity.Type, n.Expr)
}

// assignValueTo lowers expr and stores it through addr. SSA-able types
// store directly; larger aggregates are copied field-by-field (or
// element-by-element for fixed-size arrays) since no single Value can
// hold them whole.
func (p *Procedure) assignValueTo(addr *Address, t types.Type, expr ast.Expr) {
	if types.CanSSA(t, p.ctx().WordSize()) {
		v := p.buildExpr(expr)
		p.emitStore(addr, v)
		return
	}
	v := p.buildExpr(expr)
	src := p.addressFromLoadOrGenerateLocal(v)
	p.copyAggregate(addr, src, t)
}

// copyAggregate recursively copies storage of type t from src to dst,
// one SSA-able leaf at a time.
func (p *Procedure) copyAggregate(dst, src *Address, t types.Type) {
	word := p.ctx().WordSize()
	if types.CanSSA(t, word) {
		p.emitStore(dst, p.emitLoad(src))
		return
	}

	switch at := t.(type) {
	case *types.StructType:
		for i, f := range at.Fields {
			fDst := &Address{Addr: p.emitPtrIndex(dst, i, f.Type)}
			fSrc := &Address{Addr: p.emitPtrIndex(src, i, f.Type)}
			p.copyAggregate(fDst, fSrc, f.Type)
		}
	case *types.ArrayType:
		for i := 0; i < at.Len; i++ {
			idx := p.emitConst(types.ProperType(&types.IntType{Bits: 0}, word), semantic.ExactValue{Kind: semantic.ExactInteger, Integer: int64(i)})
			dPtr := p.emit(PtrOffset, types.MakePointer(at.Elem), dst.Addr, idx)
			sPtr := p.emit(PtrOffset, types.MakePointer(at.Elem), src.Addr, idx)
			p.copyAggregate(&Address{Addr: dPtr}, &Address{Addr: sPtr}, at.Elem)
		}
	default:
		panic("ir: aggregate copy of unsupported memory-only type")
	}
}

// buildAssign lowers `=` by building the left-hand lvalue(s) and
// storing the right-hand value(s); compound operators are a declared
// but unimplemented extension point.
func (p *Procedure) buildAssign(n *ast.AssignStmt) {
	if n.Operator != ast.ASSIGN {
		panic("ir: compound assignment is recognized but not implemented (extension point)")
	}

	targetTuple, isTuple := n.Target.(*ast.TupleExpr)
	if !isTuple {
		addr := p.buildAddr(n.Target)
		p.assignValueTo(addr, p.ctx().TypeOf(n.Target), n.Value)
		return
	}

	if valueTuple, ok := n.Value.(*ast.TupleExpr); ok {
		if len(valueTuple.Elements) != len(targetTuple.Elements) {
			panic("ir: tuple assignment arity mismatch")
		}
		addrs := make([]*Address, len(targetTuple.Elements))
		for i, el := range targetTuple.Elements {
			addrs[i] = p.buildAddr(el)
		}
		for i, el := range targetTuple.Elements {
			p.assignValueTo(addrs[i], p.ctx().TypeOf(el), valueTuple.Elements[i])
		}
		return
	}

	// Single right-hand side of tuple type: destructure by flattening.
	rhsType := p.ctx().TypeOf(n.Value)
	st, ok := rhsType.(*types.StructType)
	if !ok || !st.IsTuple || len(st.Fields) != len(targetTuple.Elements) {
		panic("ir: tuple assignment with a non-tuple or mismatched right-hand side")
	}
	rhsVal := p.buildExpr(n.Value)
	srcAddr := p.addressFromLoadOrGenerateLocal(rhsVal)
	for i, el := range targetTuple.Elements {
		dstAddr := p.buildAddr(el)
		fieldAddr := &Address{Addr: p.emitPtrIndex(srcAddr, i, st.Fields[i].Type)}
		p.copyAggregate(dstAddr, fieldAddr, st.Fields[i].Type)
	}
}

// buildWhen evaluates a compile-time constant condition and lowers
// only the taken side; a non-constant condition is a programming
// fault this builder cannot recover from.
func (p *Procedure) buildWhen(n *ast.WhenStmt) {
	ev, ok := p.ctx().ExactValueOf(n.Cond)
	if !ok || ev.Kind != semantic.ExactBool {
		panic("ir: when-statement condition is not a compile-time constant")
	}
	if ev.Bool {
		p.buildBlock(n.Body)
	}
}

// buildIf lowers the then/else arms through build_cond, joining both
// paths into a shared done block.
func (p *Procedure) buildIf(n *ast.IfStmt) {
	thenBlock := p.newBlock(BlockPlain, "if.then")
	doneBlock := p.newBlock(BlockPlain, "if.done")

	var elseBlock *Block
	branchNo := doneBlock
	if n.Else != nil {
		elseBlock = p.newBlock(BlockPlain, "if.else")
		branchNo = elseBlock
	}

	p.buildCond(n.Cond, thenBlock, branchNo)

	p.startBlock(thenBlock)
	p.buildBlock(n.Then)
	p.emitJump(doneBlock)

	if n.Else != nil {
		p.startBlock(elseBlock)
		switch e := n.Else.(type) {
		case *ast.IfStmt:
			p.buildStmt(e)
		case *ast.FunctionBlock:
			p.buildBlock(e)
		}
		p.emitJump(doneBlock)
	}

	p.startBlock(doneBlock)
}

// buildFor lowers a C-style counted loop: optional init, a loop header
// that either tests the condition or falls straight through to the
// body, a body guarded by a break/continue target frame, and an
// optional post-statement before looping back.
func (p *Procedure) buildFor(n *ast.ForStmt) {
	if n.Init != nil {
		p.buildStmt(n.Init)
	}

	bodyBlock := p.newBlock(BlockPlain, "for.body")
	doneBlock := p.newBlock(BlockPlain, "for.done")

	var loopBlock, postBlock *Block
	if n.Cond != nil {
		loopBlock = p.newBlock(BlockPlain, "for.loop")
	}
	if n.Post != nil {
		postBlock = p.newBlock(BlockPlain, "for.post")
	}

	header := loopBlock
	if header == nil {
		header = bodyBlock
	}
	p.emitJump(header)

	if loopBlock != nil {
		p.startBlock(loopBlock)
		p.buildCond(n.Cond, bodyBlock, doneBlock)
	}

	continueTarget := postBlock
	if continueTarget == nil {
		continueTarget = header
	}

	p.startBlock(bodyBlock)
	p.pushTargets(doneBlock, continueTarget, nil)
	p.buildBlock(n.Body)
	p.popTargets()
	p.emitJump(continueTarget)

	if postBlock != nil {
		p.startBlock(postBlock)
		p.buildStmt(n.Post)
		p.emitJump(header)
	}

	p.startBlock(doneBlock)
}

// buildBranch resolves break/continue/fallthrough against the
// enclosing target-list stack and jumps to the resolved block.
func (p *Procedure) buildBranch(n *ast.BranchStmt) {
	var kind branchKind
	switch n.Kind {
	case ast.BreakBranch:
		kind = branchBreak
	case ast.ContinueBranch:
		kind = branchContinue
	case ast.FallthroughBranch:
		kind = branchFallthrough
	}

	target := p.resolveBranch(kind)
	if target == nil {
		panic("ir: branch statement with no enclosing target in scope")
	}
	p.emitJump(target)
}

// buildCond is §4.3.1: rewrite high-level conditional shapes before
// finally emitting a branch. Parens recurse transparently; `!e`
// recurses with yes/no swapped; `&&`/`||` allocate a fresh block for
// the short-circuit continuation and recurse through it.
func (p *Procedure) buildCond(cond ast.Expr, yes, no *Block) {
	switch n := cond.(type) {
	case *ast.ParenExpr:
		p.buildCond(n.Value, yes, no)
		return

	case *ast.UnaryExpr:
		if n.Op == "!" {
			p.buildCond(n.Value, no, yes)
			return
		}

	case *ast.BinaryExpr:
		switch n.Op {
		case "&&":
			and := p.newBlock(BlockPlain, "cmp.and")
			p.buildCond(n.Left, and, no)
			p.startBlock(and)
			p.buildCond(n.Right, yes, no)
			return
		case "||":
			or := p.newBlock(BlockPlain, "cmp.or")
			p.buildCond(n.Left, yes, or)
			p.startBlock(or)
			p.buildCond(n.Right, yes, no)
			return
		}
	}

	v := p.buildExpr(cond)
	b := p.endBlock()
	if b == nil {
		panic("ir: build_cond called with no open block")
	}
	b.Kind = BlockIf
	p.setControl(b, v)
	p.addEdgeFromTo(b, yes)
	p.addEdgeFromTo(b, no)
}
