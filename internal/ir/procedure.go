package ir

import "ember/internal/semantic"

// TargetList is a stack frame of the three block slots a structured
// branch statement may jump to. Entering a loop or match context pushes
// a frame; leaving it pops. A nil slot means "not available here";
// BranchStmt lowering walks outward through the stack until it finds a
// frame with a non-nil slot for the requested kind.
type TargetList struct {
	parent       *TargetList
	Break        *Block
	Continue     *Block
	Fallthrough_ *Block
}

// AddrKind distinguishes how an Address's value should be interpreted.
type AddrKind int

const (
	AddrDefault AddrKind = iota // Addr is a pointer to storage
	AddrMap                     // deferred map-element addressing; not implemented
)

// Address is an lvalue descriptor: a pointer-typed Value plus a kind
// tag. A nil Address (both fields zero) denotes the blank identifier,
// whose stores are silently suppressed.
type Address struct {
	Addr *Value
	Kind AddrKind
}

// Valid reports whether the address names real storage.
func (a *Address) Valid() bool {
	return a != nil && a.Addr != nil
}

// Procedure is a single compilation unit: one function lowered to a
// graph of Blocks rooted at Entry and drained into Exit.
type Procedure struct {
	Module   *Module
	Name     string // mangled link name
	Entity   *semantic.Entity
	Decl     *semantic.FuncDecl
	Blocks   []*Block
	Entry    *Block
	Exit     *Block
	curBlock *Block
	targets  *TargetList

	nextBlockID int
	nextValueID int

	// locals maps a source entity to the SSA value that materializes
	// its address (the Addr over an entry-block Local, for parameters and
	// let-bound variables).
	locals map[*semantic.Entity]*Value

	// resultSlot is the hidden Local a non-void procedure's "return"
	// lowering stores through; nil for void procedures.
	resultSlot *Address
}

// curr reports the block currently open for insertion, or nil.
func (p *Procedure) curr() *Block { return p.curBlock }

// newBlock allocates a block, assigns it a fresh id, and appends it to
// the procedure's block list. It does not open it for insertion.
func (p *Procedure) newBlock(kind BlockKind, name string) *Block {
	b := p.Module.primaryBlocks.New()
	b.ID = p.nextBlockID
	b.Kind = kind
	b.Proc = p
	b.Name = name
	p.nextBlockID++
	p.Blocks = append(p.Blocks, b)
	return b
}

// startBlock opens b for insertion. Starting a block while one is
// already open is a programming fault: exactly one block may be open
// per procedure at a time.
func (p *Procedure) startBlock(b *Block) {
	if p.curBlock != nil {
		panic("ir: start_block called with a block already open")
	}
	p.curBlock = b
}

// endBlock closes whatever block is open (if any) and returns it.
func (p *Procedure) endBlock() *Block {
	b := p.curBlock
	p.curBlock = nil
	return b
}

// pushTargets installs a new target-list frame for a loop or match
// context, returning it so the caller can pop it back out on exit.
func (p *Procedure) pushTargets(brk, cont, fallthru *Block) *TargetList {
	frame := &TargetList{parent: p.targets, Break: brk, Continue: cont, Fallthrough_: fallthru}
	p.targets = frame
	return frame
}

func (p *Procedure) popTargets() {
	if p.targets != nil {
		p.targets = p.targets.parent
	}
}

// resolveBranch walks the target-list stack outward looking for a
// non-nil slot matching kind. Returns nil if none is found in scope,
// which callers must treat as a program error.
func (p *Procedure) resolveBranch(kind branchKind) *Block {
	for t := p.targets; t != nil; t = t.parent {
		switch kind {
		case branchBreak:
			if t.Break != nil {
				return t.Break
			}
		case branchContinue:
			if t.Continue != nil {
				return t.Continue
			}
		case branchFallthrough:
			if t.Fallthrough_ != nil {
				return t.Fallthrough_
			}
		}
	}
	return nil
}

type branchKind int

const (
	branchBreak branchKind = iota
	branchContinue
	branchFallthrough
)
