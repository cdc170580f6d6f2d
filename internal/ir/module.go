package ir

import (
	"ember/internal/ir/arena"
	"ember/internal/semantic"
)

// Module is the owning container for an entire IR build: checker info,
// the two arenas, the global entity→value map, and the procedures that
// make it past the minimum-dependency filter.
type Module struct {
	Context *semantic.BuildContext

	primaryBlocks arena.Arena[Block]
	primaryValues arena.Arena[Value]
	primaryProcs  arena.Arena[Procedure]
	scratch       arena.Arena[Value]

	// globals maps a source entity to the module-wide value that
	// materializes it (procedures and file-scope locals).
	globals map[*semantic.Entity]*Value

	Procedures []*Procedure

	// worklist holds entities still pending generation during the
	// driver's enumeration pass.
	worklist []*semantic.Entity

	Entry *Procedure
}

// NewModule creates an empty module bound to the given checker info.
func NewModule(ctx *semantic.BuildContext) *Module {
	return &Module{
		Context: ctx,
		globals: make(map[*semantic.Entity]*Value),
	}
}

// newProcedure allocates a procedure from the primary arena and appends
// it to the module's procedure list.
func (m *Module) newProcedure(name string, entity *semantic.Entity, decl *semantic.FuncDecl) *Procedure {
	p := m.primaryProcs.New()
	p.Module = m
	p.Name = name
	p.Entity = entity
	p.Decl = decl
	p.locals = make(map[*semantic.Entity]*Value)
	m.Procedures = append(m.Procedures, p)
	return p
}
