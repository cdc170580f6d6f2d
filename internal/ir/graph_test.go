package ir

import (
	"strings"
	"testing"

	"ember/internal/parser"
	"ember/internal/semantic"
	"ember/internal/types"
)

// newTestProcedure builds an otherwise-empty Procedure for tests that
// construct a Value/Block graph directly rather than going through the
// parse/check/lower pipeline. The module still needs real checker info
// to answer WordSize(), so it is bound to a trivially empty source.
func newTestProcedure(t *testing.T) *Procedure {
	t.Helper()
	mod, parseErrs, scanErrs := parser.ParseSource("test.ka", "module empty {\n}\n")
	if len(scanErrs) > 0 || len(parseErrs) > 0 {
		t.Fatalf("unexpected parse/scan errors: %v %v", parseErrs, scanErrs)
	}
	bc := semantic.NewBuildContext(mod, types.Word64)
	m := NewModule(bc)
	return m.newProcedure("test", nil, nil)
}

// TestUsesEqualsReferenceCount is property 1: a value's use count
// equals the number of argument slots and control slots referencing
// it, built by hand rather than through lowering.
func TestUsesEqualsReferenceCount(t *testing.T) {
	p := newTestProcedure(t)
	b := p.newBlock(BlockPlain, "")
	p.startBlock(b)

	v := p.emit(Local, types.MakePointer(&types.IntType{Bits: 64}))
	if v.Uses() != 0 {
		t.Fatalf("fresh value should have zero uses, got %d", v.Uses())
	}

	add := p.emit(Add64, &types.IntType{Bits: 64}, v, v)
	if v.Uses() != 2 {
		t.Errorf("v referenced twice in add's args, want 2 uses, got %d", v.Uses())
	}

	p.setControl(b, add)
	if add.Uses() != 1 {
		t.Errorf("add installed as block control, want 1 use, got %d", add.Uses())
	}

	// Replacing the control value should drop the old value's count and
	// raise the new one's.
	other := p.emit(Add64, &types.IntType{Bits: 64}, v, v)
	p.setControl(b, other)
	if add.Uses() != 0 {
		t.Errorf("add displaced as control, want 0 uses, got %d", add.Uses())
	}
	if other.Uses() != 1 {
		t.Errorf("other installed as control, want 1 use, got %d", other.Uses())
	}
}

// TestEdgeReverseIndexInvariant is property 2: every successor edge's
// reverse index names the matching predecessor slot, and vice versa.
func TestEdgeReverseIndexInvariant(t *testing.T) {
	p := newTestProcedure(t)
	a := p.newBlock(BlockPlain, "a")
	b := p.newBlock(BlockPlain, "b")
	c := p.newBlock(BlockPlain, "c")

	// Give b two predecessors (a and c) so its Preds list has more than
	// one entry to index into.
	p.addEdgeFromTo(a, b)
	p.addEdgeFromTo(c, b)

	for i, e := range a.Succs {
		succ := e.Block
		if succ.Preds[e.Index].Block != a || succ.Preds[e.Index].Index != i {
			t.Errorf("a.Succs[%d] -> %s does not reverse-index back to a", i, succ)
		}
	}
	for i, e := range c.Succs {
		succ := e.Block
		if succ.Preds[e.Index].Block != c || succ.Preds[e.Index].Index != i {
			t.Errorf("c.Succs[%d] -> %s does not reverse-index back to c", i, succ)
		}
	}
}

// TestEntryExitUniqueness is property 3, exercised at the procedure
// shell level before any statement lowering runs.
func TestEntryExitUniqueness(t *testing.T) {
	p := newTestProcedure(t)
	entry := p.newBlock(BlockEntry, "")
	exit := p.newBlock(BlockExit, "")
	p.Entry = entry
	p.Exit = exit

	var entries, exits int
	for _, b := range p.Blocks {
		if b.Kind == BlockEntry {
			entries++
		}
		if b.Kind == BlockExit {
			exits++
			if len(b.Succs) != 0 {
				t.Errorf("exit block must have no successors, found %d", len(b.Succs))
			}
		}
	}
	if entries != 1 {
		t.Errorf("expected exactly one Entry block, got %d", entries)
	}
	if exits != 1 {
		t.Errorf("expected exactly one Exit block, got %d", exits)
	}
}

// TestSuccessorCountsPerKind is property 4: Plain exactly one, If
// exactly two, Ret/Exit zero, checked directly against hand-wired
// blocks rather than lowered ones.
func TestSuccessorCountsPerKind(t *testing.T) {
	p := newTestProcedure(t)

	plain := p.newBlock(BlockPlain, "")
	plainTarget := p.newBlock(BlockPlain, "")
	p.addEdgeFromTo(plain, plainTarget)
	if len(plain.Succs) != 1 {
		t.Errorf("Plain block should have exactly one successor, got %d", len(plain.Succs))
	}

	ifBlock := p.newBlock(BlockIf, "")
	thenBlock := p.newBlock(BlockPlain, "")
	elseBlock := p.newBlock(BlockPlain, "")
	p.addEdgeFromTo(ifBlock, thenBlock)
	p.addEdgeFromTo(ifBlock, elseBlock)
	if len(ifBlock.Succs) != 2 {
		t.Errorf("If block should have exactly two successors, got %d", len(ifBlock.Succs))
	}

	ret := p.newBlock(BlockRet, "")
	if len(ret.Succs) != 0 {
		t.Errorf("Ret block should have no successors, got %d", len(ret.Succs))
	}

	exit := p.newBlock(BlockExit, "")
	if len(exit.Succs) != 0 {
		t.Errorf("Exit block should have no successors, got %d", len(exit.Succs))
	}
}

// TestPrinterBreaksGenuineCycle is property 5: a non-phi value that
// transitively references itself within its own block prints once,
// behind a "DepCycle" marker, rather than looping or panicking. This
// can't arise from any real lowering path (the builder never creates a
// cycle), so it is constructed by hand.
func TestPrinterBreaksGenuineCycle(t *testing.T) {
	p := newTestProcedure(t)
	entry := p.newBlock(BlockEntry, "")
	exit := p.newBlock(BlockExit, "")
	p.Entry = entry
	p.Exit = exit
	p.startBlock(entry)

	v1 := p.newValue(entry, Add64, &types.IntType{Bits: 64})
	v2 := p.newValue(entry, Add64, &types.IntType{Bits: 64})
	v1.Args.Append(v2)
	v2.Args.Append(v1)
	p.emitJump(exit)

	ordered := orderValues(entry)
	var sawNilMarker bool
	for _, v := range ordered {
		if v == nil {
			sawNilMarker = true
		}
	}
	if !sawNilMarker {
		t.Fatal("orderValues should emit a nil marker slot ahead of the unresolved cycle")
	}
	if len(ordered) != len(entry.Values)+1 {
		t.Errorf("ordered list should contain every value plus one marker, got %d for %d values", len(ordered), len(entry.Values))
	}

	var sb strings.Builder
	printBlock(&sb, entry)
	if !strings.Contains(sb.String(), "DepCycle") {
		t.Error("printed output should mention DepCycle for the unresolved pair")
	}
}

// TestAddressFromLoadRoundTrips is property 8:
// address_from_load_or_generate_local(emit_load(p)) == p for a pointer
// address, without going through any statement lowering.
func TestAddressFromLoadRoundTrips(t *testing.T) {
	p := newTestProcedure(t)
	b := p.newBlock(BlockPlain, "")
	p.startBlock(b)

	ptrType := types.MakePointer(&types.IntType{Bits: 64})
	storage := p.emit(Local, ptrType)
	addr := &Address{Addr: storage}

	loaded := p.emitLoad(addr)
	roundTripped := p.addressFromLoadOrGenerateLocal(loaded)

	if roundTripped.Addr != addr.Addr {
		t.Errorf("round-tripping a Load should recover the original address, got a different value")
	}
}

// TestAddressFromNonLoadGeneratesLocal covers the other branch of the
// same function: a non-Load value gets spilled into a freshly
// generated local rather than reusing any existing address.
func TestAddressFromNonLoadGeneratesLocal(t *testing.T) {
	p := newTestProcedure(t)
	entry := p.newBlock(BlockEntry, "")
	p.Entry = entry
	b := p.newBlock(BlockPlain, "")
	p.startBlock(b)

	v := p.emit(Add64, &types.IntType{Bits: 64}, nil, nil)
	addr := p.addressFromLoadOrGenerateLocal(v)

	if addr.Addr == nil {
		t.Fatal("expected a generated local address")
	}
	if addr.Addr.Op != Addr || addr.Addr.Args.At(0).Op != Local {
		t.Errorf("generated storage should be an Addr of a Local, got %s", addr.Addr.Op)
	}
	if !types.AreIdentical(types.Deref(addr.Addr.Type), v.Type) {
		t.Errorf("generated local's element type should match the spilled value's type")
	}
}

// TestCanSSAThreshold is property 9: size at most 4 words and the
// per-kind structural rules (empty arrays only, never dynamic arrays
// or unions, <= MaxStructFieldCount SSA-able fields for structs).
func TestCanSSAThreshold(t *testing.T) {
	word := types.Word64

	small := &types.StructType{Fields: []types.Field{
		{Name: "_0", Type: &types.IntType{Bits: 64}},
		{Name: "_1", Type: &types.IntType{Bits: 64}},
	}, IsTuple: true}
	if !types.CanSSA(small, word) {
		t.Error("a two-word struct should be SSA-able")
	}

	// Five single-byte fields stay well under the 4-word size cap, so
	// this isolates the field-count rule from the size rule.
	tooWide := &types.StructType{Fields: []types.Field{
		{Name: "_0", Type: &types.IntType{Bits: 8}},
		{Name: "_1", Type: &types.IntType{Bits: 8}},
		{Name: "_2", Type: &types.IntType{Bits: 8}},
		{Name: "_3", Type: &types.IntType{Bits: 8}},
		{Name: "_4", Type: &types.IntType{Bits: 8}},
	}, IsTuple: true}
	if types.CanSSA(tooWide, word) {
		t.Error("a struct with more than MaxStructFieldCount fields should not be SSA-able")
	}

	oversized := &types.ArrayType{Elem: &types.IntType{Bits: 64}, Len: 5}
	if types.CanSSA(oversized, word) {
		t.Error("a type larger than 4 words should not be SSA-able regardless of shape")
	}

	emptyArray := &types.ArrayType{Elem: &types.IntType{Bits: 64}, Len: 0}
	if !types.CanSSA(emptyArray, word) {
		t.Error("an empty array should be SSA-able")
	}
	nonEmptyArray := &types.ArrayType{Elem: &types.IntType{Bits: 8}, Len: 1}
	if types.CanSSA(nonEmptyArray, word) {
		t.Error("a non-empty array should never be SSA-able, even a tiny one")
	}

	dynArray := &types.DynamicArrayType{Elem: &types.IntType{Bits: 8}}
	if types.CanSSA(dynArray, word) {
		t.Error("a dynamic array should never be SSA-able")
	}

	union := &types.UnionType{Variants: []types.Type{&types.IntType{Bits: 8}}}
	if types.CanSSA(union, word) {
		t.Error("a union should never be SSA-able")
	}
}

// TestSignedUnsignedDivisionOpcode is property 10: division opcode
// selection depends on the operand type's signedness, independent of
// any particular AST shape.
func TestSignedUnsignedDivisionOpcode(t *testing.T) {
	p := newTestProcedure(t)

	op, _ := p.determineOp("/", &types.IntType{Bits: 32, Unsigned: true})
	if op != Div32U {
		t.Errorf("u32 / u32 should select Div32U, got %s", op)
	}

	op, _ = p.determineOp("/", &types.IntType{Bits: 32, Unsigned: false})
	if op != Div32 {
		t.Errorf("i32 / i32 should select Div32, got %s", op)
	}
}
