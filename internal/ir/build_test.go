package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ember/internal/parser"
	"ember/internal/semantic"
	"ember/internal/types"
)

// buildModule runs the full pipeline a driver invocation would: parse,
// type-check, lower. Parse/scan errors fail the test immediately since
// every fixture here is expected to be grammatically valid.
func buildModule(t *testing.T, src string) *Module {
	t.Helper()
	mod, parseErrs, scanErrs := parser.ParseSource("test.ka", src)
	require.Empty(t, scanErrs, "unexpected scan errors")
	require.Empty(t, parseErrs, "unexpected parse errors")

	ctx := semantic.NewBuildContext(mod, types.Word64)
	return BuildProgram(ctx)
}

// TestEmptyMain is the S1 seed scenario: a main with no statements
// still gets a well-formed two-block shell, entry falling straight
// through to exit.
func TestEmptyMain(t *testing.T) {
	m := buildModule(t, `
module s1 {
    fn main() {
    }
}
`)

	require.NotNil(t, m.Entry)
	p := m.Entry
	require.Len(t, p.Blocks, 2)

	assert.Equal(t, BlockEntry, p.Entry.Kind)
	assert.Equal(t, BlockExit, p.Exit.Kind)
	assert.Same(t, p.Blocks[0], p.Entry)
	assert.Same(t, p.Blocks[1], p.Exit)

	require.Len(t, p.Entry.Succs, 1)
	assert.Same(t, p.Exit, p.Entry.Succs[0].Block)
	require.Len(t, p.Exit.Preds, 1)
	assert.Same(t, p.Entry, p.Exit.Preds[0].Block)

	out := PrintProgram(m)
	assert.Contains(t, out, "proc main()")
	assert.Contains(t, out, "b0:\n")
	assert.Contains(t, out, "jump b1")
	assert.Contains(t, out, "b1: <- b0")
	assert.Contains(t, out, "  exit\n}")
}

// TestIfElse is S2: both arms join into a shared done block, and the
// branch reads the condition value as a BlockIf control.
func TestIfElse(t *testing.T) {
	m := buildModule(t, `
module s2 {
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

	p := m.Entry

	var ifBlocks, plainBlocks int
	for _, b := range p.Blocks {
		if b.Kind == BlockIf {
			ifBlocks++
			require.NotNil(t, b.Control)
			require.Len(t, b.Succs, 2)
		}
		if b.Kind == BlockPlain {
			plainBlocks++
		}
	}
	assert.Equal(t, 1, ifBlocks, "exactly one branch point")
	// then, else, done: three Plain blocks beyond entry/exit.
	assert.Equal(t, 3, plainBlocks)

	out := PrintProgram(m)
	assert.Contains(t, out, "branch")
}

// TestShortCircuitAnd is S3: `a && b` used as a value (not as a
// condition) allocates rhs/done blocks and joins through a Phi when
// both the short-circuit-false path and the rhs path reach done.
func TestShortCircuitAnd(t *testing.T) {
	m := buildModule(t, `
module s3 {
    fn main() {
        let mut a = true;
        let mut b = false;
        let mut r = a && b;
    }
}
`)

	p := m.Entry

	var phis int
	for _, b := range p.Blocks {
		for _, v := range b.Values {
			if v.Op == Phi {
				phis++
				assert.Equal(t, 2, v.Args.Len(), "phi should merge the short-circuit constant with the rhs value")
			}
		}
	}
	assert.Equal(t, 1, phis)
}

// TestForLoop is S4: a C-style counted loop builds loop/body/done
// blocks wired so continue re-enters the loop test.
func TestForLoop(t *testing.T) {
	m := buildModule(t, `
module s4 {
    fn main() {
        let mut total = 0;
        for let mut i = 0; i < 10; i = i + 1; {
            total = total + i;
        }
    }
}
`)

	p := m.Entry

	var ifBlocks int
	for _, b := range p.Blocks {
		if b.Kind == BlockIf {
			ifBlocks++
		}
	}
	assert.Equal(t, 1, ifBlocks, "the loop test is the only branch point")

	// entry, exit, loop-test, body, post, done: six blocks total.
	assert.Len(t, p.Blocks, 6)
}

// TestAggregateFieldProjection is S6: reading fields of differing
// width off a struct parameter produces one pointer-level projection
// per field, each carrying the field's own index and type rather than
// the aggregate's.
func TestAggregateFieldProjection(t *testing.T) {
	m := buildModule(t, `
module s6 {
    struct Point {
        x: I32,
        y: I64,
    }

    fn main(p: Point) {
        let a = p.x;
        let b = p.y;
    }
}
`)

	p := m.Entry

	var ptrIdx []*Value
	for _, b := range p.Blocks {
		for _, v := range b.Values {
			if v.Op == PtrIndex {
				ptrIdx = append(ptrIdx, v)
			}
		}
	}
	require.Len(t, ptrIdx, 2)

	assert.Equal(t, int64(0), ptrIdx[0].Exact.Integer)
	assert.Equal(t, int64(1), ptrIdx[1].Exact.Integer)

	var loads []*Value
	for _, b := range p.Blocks {
		for _, v := range b.Values {
			if v.Op == Load {
				loads = append(loads, v)
			}
		}
	}
	require.Len(t, loads, 2)
	assert.True(t, types.IsInteger(loads[0].Type))
	assert.True(t, types.IsInteger(loads[1].Type))
}

// TestDeadBlockAfterTerminator covers the "dead block after terminator"
// edge case directly: a statement following a break still lowers into
// a fresh unreachable block rather than panicking or being dropped.
func TestDeadBlockAfterTerminator(t *testing.T) {
	m := buildModule(t, `
module s7 {
    fn main() {
        for let mut i = 0; i < 10; i = i + 1; {
            break;
            let mut dead = 1;
        }
    }
}
`)

	p := m.Entry
	var unnamedPlain int
	for _, b := range p.Blocks {
		if b.Kind == BlockPlain && b.Name == "" {
			unnamedPlain++
		}
	}
	assert.GreaterOrEqual(t, unnamedPlain, 1, "the statement after break should open a fresh unnamed block")
}

// TestUseCounting exercises the def-use invariant: a value referenced
// by two later statements reports two uses.
func TestUseCounting(t *testing.T) {
	m := buildModule(t, `
module s8 {
    fn main() {
        let mut x = 5;
        let mut y = x + x;
    }
}
`)

	p := m.Entry

	var add *Value
	for _, v := range p.Entry.Values {
		if v.Op == Add64 {
			add = v
		}
	}
	require.NotNil(t, add)
	require.Equal(t, 2, add.Args.Len())

	left, right := add.Args.At(0), add.Args.At(1)
	require.Equal(t, Load, left.Op)
	require.Equal(t, Load, right.Op)
	require.NotSame(t, left, right, "each operand of x + x gets its own Load")

	addr := left.Args.At(0)
	assert.Same(t, addr, right.Args.At(0), "both loads read through the same address")
	// x's address is referenced by its own Zero init, its initializer
	// Store, and now both Loads: four uses in all.
	assert.Equal(t, 4, addr.Uses())
}

// TestParenUnwrapIsIdempotent is property 6: `((e))` and `e` lower to
// the same sequence of opcodes, since ParenExpr unwraps by recursion
// without emitting anything of its own.
func TestParenUnwrapIsIdempotent(t *testing.T) {
	plain := buildModule(t, `
module p1 {
    fn main() {
        let mut x = 1;
        let mut y = x + 1;
    }
}
`)
	parenthesized := buildModule(t, `
module p2 {
    fn main() {
        let mut x = 1;
        let mut y = ((x + 1));
    }
}
`)

	opsOf := func(m *Module) []Op {
		var ops []Op
		for _, b := range m.Entry.Blocks {
			for _, v := range b.Values {
				ops = append(ops, v.Op)
			}
		}
		return ops
	}

	assert.Equal(t, opsOf(plain), opsOf(parenthesized),
		"parenthesizing an expression should not change its lowered op sequence")
}

// TestLinkNameEntryIsMain confirms the driver names a non-exported entry
// procedure "main" regardless of its source-level name.
func TestLinkNameEntryIsMain(t *testing.T) {
	m := buildModule(t, `
module s9 {
    #[entry]
    fn run() {
    }
}
`)

	require.NotNil(t, m.Entry)
	assert.Equal(t, "main", m.Entry.Name)
}
