package ir

import (
	"fmt"

	"ember/internal/semantic"
)

// BuildProgram is the driver: it filters the checker's function table
// down to the minimum-dependency set reachable from the entry point,
// assigns each surviving procedure a link name, and fully lowers the
// entry procedure's body. Non-entry procedures are enumerated (so
// their names and signatures exist for the printer) but this core does
// not descend into their bodies — only the entry point is built.
func BuildProgram(ctx *semantic.BuildContext) *Module {
	m := NewModule(ctx)
	deps := ctx.MinimumDependencySet()
	seen := make(map[string]int)

	for _, decl := range ctx.Functions() {
		if !deps[decl.Entity.Name] {
			continue
		}
		name := linkName(ctx, decl, seen)
		p := m.newProcedure(name, decl.Entity, decl)
		if decl.Entity.IsEntry {
			m.Entry = p
		}
	}

	if m.Entry != nil {
		buildEntryProcedure(m.Entry)
	}

	return m
}

// linkName chooses a procedure's emitted name: an exported function
// keeps its source name (even when it is the entry point), a
// non-exported entry point is named "main", and
// everything else gets a mangled name with an address-derived suffix
// added only when the base mangled form collides with one already
// assigned (the "overloaded" case; this surface has no overloading,
// but the collision path stays exercised for namesakes across what
// would be multiple source files).
func linkName(ctx *semantic.BuildContext, decl *semantic.FuncDecl, seen map[string]int) string {
	if decl.Entity.Exported {
		return decl.Entity.Name
	}
	if decl.Entity.IsEntry {
		return "main"
	}

	mangled := fmt.Sprintf("%s-0.%s", ctx.ModuleName(), decl.Entity.Name)
	n := seen[mangled]
	seen[mangled] = n + 1
	if n == 0 {
		return mangled
	}
	return fmt.Sprintf("%s$%p", mangled, decl.Entity)
}

// buildEntryProcedure sets up the entry procedure's Entry/Exit blocks,
// materializes its parameters and (if non-void) hidden result slot,
// lowers its body, and drains control into Exit.
func buildEntryProcedure(p *Procedure) {
	p.Entry = p.newBlock(BlockEntry, "entry")
	p.Exit = p.newBlock(BlockExit, "exit")
	p.startBlock(p.Entry)

	// Parameters share the local materialization path: each gets a
	// Local/Addr/Zero triple in the entry block, the same as a
	// let-bound variable. No opcode carries an incoming argument value
	// into that storage, so a parameter holds its zero value.
	for _, param := range p.Decl.Params {
		p.addLocal(param)
	}

	if p.Decl.ResultType != nil {
		p.resultSlot = &Address{Addr: p.addLocalGenerated(p.Decl.ResultType, "result")}
	}

	p.buildBlock(p.Decl.Func.Body)

	if p.curr() != nil {
		p.emitJump(p.Exit)
	}
}
