package ir

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ember/internal/types"
)

// PrintProgram renders every procedure in m in source-enumeration
// order.
func PrintProgram(m *Module) string {
	var sb strings.Builder
	for i, p := range m.Procedures {
		if i > 0 {
			sb.WriteByte('\n')
		}
		printProcedure(&sb, p)
	}
	return sb.String()
}

func printProcedure(sb *strings.Builder, p *Procedure) {
	fmt.Fprintf(sb, "proc %s(", p.Name)
	for i, param := range p.Decl.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%s %s", param.Name, param.Type)
	}
	sb.WriteString(")")
	if p.Decl.ResultType != nil {
		fmt.Fprintf(sb, " %s", p.Decl.ResultType)
	}
	sb.WriteString(" {\n")

	for _, b := range p.Blocks {
		printBlock(sb, b)
	}

	sb.WriteString("}\n")
}

func printBlock(sb *strings.Builder, b *Block) {
	fmt.Fprintf(sb, "%s:", b)
	if len(b.Preds) > 0 {
		sb.WriteString(" <-")
		for _, e := range b.Preds {
			fmt.Fprintf(sb, " %s", e.Block)
		}
	}
	sb.WriteByte('\n')

	for _, v := range orderValues(b) {
		sb.WriteString("  ")
		printValue(sb, v)
		sb.WriteByte('\n')
	}

	sb.WriteString("  ")
	printTerminator(sb, b)
	sb.WriteByte('\n')
}

// orderValues reproduces the printer's dependence ordering: Phi values
// first (their operands may live in a not-yet-printed predecessor),
// then repeated passes over whatever remains, each pass emitting any
// value whose arguments all either live in another block or have
// already been placed in this one. A pass that places nothing despite
// values remaining indicates a same-block dependency cycle; the rest
// print in original order behind a "DepCycle" marker rather than loop
// forever.
func orderValues(b *Block) []*Value {
	ordered := make([]*Value, 0, len(b.Values))
	placed := make(map[*Value]bool, len(b.Values))

	var rest []*Value
	for _, v := range b.Values {
		if v.Op == Phi {
			ordered = append(ordered, v)
			placed[v] = true
		} else {
			rest = append(rest, v)
		}
	}

	ready := func(v *Value) bool {
		for _, a := range v.Args.All() {
			if a == nil {
				continue
			}
			if a.Block == b && !placed[a] {
				return false
			}
		}
		return true
	}

	for len(rest) > 0 {
		var next []*Value
		progressed := false
		for _, v := range rest {
			if ready(v) {
				ordered = append(ordered, v)
				placed[v] = true
				progressed = true
			} else {
				next = append(next, v)
			}
		}
		rest = next
		if !progressed {
			break
		}
	}

	if len(rest) > 0 {
		ordered = append(ordered, nil) // marker slot; printValue renders it as DepCycle
		ordered = append(ordered, rest...)
	}

	return ordered
}

func printValue(sb *strings.Builder, v *Value) {
	if v == nil {
		sb.WriteString("; DepCycle")
		return
	}

	fmt.Fprintf(sb, "%s = %s", v, v.Op)
	if v.Type != nil {
		fmt.Fprintf(sb, " %s", v.Type)
	}
	if v.Exact != nil {
		fmt.Fprintf(sb, " %s", renderExact(v.Exact, v.Type))
	}
	for _, a := range v.Args.All() {
		if a == nil {
			continue
		}
		fmt.Fprintf(sb, " %s", a)
	}
	if v.Comment != "" {
		fmt.Fprintf(sb, " ; %s", v.Comment)
	}
}

func renderExact(e *ExactValue, t types.Type) string {
	switch e.Kind {
	case ExactBool:
		if e.Bool {
			return "[true]"
		}
		return "[false]"
	case ExactInteger:
		if types.IsUnsigned(t) {
			return strconv.FormatUint(uint64(e.Integer), 10)
		}
		return strconv.FormatInt(e.Integer, 10)
	case ExactFloat:
		return fmt.Sprintf("0x%x", math.Float64bits(e.Float))
	case ExactString:
		return strconv.Quote(e.String)
	case ExactPointer:
		return "0x0"
	case ExactSlice:
		return "0x0"
	default:
		return ""
	}
}

func printTerminator(sb *strings.Builder, b *Block) {
	switch b.Kind {
	case BlockPlain, BlockEntry:
		if len(b.Succs) > 0 {
			fmt.Fprintf(sb, "jump %s", b.Succs[0].Block)
		}
	case BlockIf:
		then, els := b.Succs[0].Block, b.Succs[1].Block
		fmt.Fprintf(sb, "branch %s, %s, %s", b.Control, then, els)
	case BlockRet, BlockRetJmp:
		sb.WriteString("ret")
	case BlockExit:
		sb.WriteString("exit")
	}
}
