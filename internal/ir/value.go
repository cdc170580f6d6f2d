package ir

import (
	"fmt"

	"ember/internal/types"
)

// smallBufCap bounds the inline storage of a ValueArgs list. Ops beyond
// arity 4 are rare (struct literals, calls); 8 leaves headroom before
// falling back to a heap slice.
const smallBufCap = 8

// ValueArgs is an ordered list of Value references with small-buffer
// optimization: up to smallBufCap entries live inline, further entries
// promote the whole list to a heap slice. Appending increments the
// referent's use count; Clear decrements every current reference.
type ValueArgs struct {
	inline [smallBufCap]*Value
	n      int
	heap   []*Value
}

// Len returns the number of arguments currently stored.
func (a *ValueArgs) Len() int {
	if a.heap != nil {
		return len(a.heap)
	}
	return a.n
}

// At returns the i'th argument.
func (a *ValueArgs) At(i int) *Value {
	if a.heap != nil {
		return a.heap[i]
	}
	return a.inline[i]
}

// All returns the arguments as a slice. The slice aliases internal
// storage for inline lists and must not be retained across mutation.
func (a *ValueArgs) All() []*Value {
	if a.heap != nil {
		return a.heap
	}
	return a.inline[:a.n]
}

// Append adds v, incrementing its use count. v may be nil for optional
// slots that have not been filled in yet; nil arguments do not affect
// use counts and are skipped when printing.
func (a *ValueArgs) Append(v *Value) {
	if a.heap != nil {
		a.heap = append(a.heap, v)
	} else if a.n < smallBufCap {
		a.inline[a.n] = v
		a.n++
	} else {
		a.heap = make([]*Value, a.n, a.n*2)
		copy(a.heap, a.inline[:a.n])
		a.heap = append(a.heap, v)
	}
	if v != nil {
		v.uses++
	}
}

// Clear decrements the use count of every current reference and empties
// the list, which is then safe to refill via Append.
func (a *ValueArgs) Clear() {
	for _, v := range a.All() {
		if v != nil {
			v.uses--
		}
	}
	a.n = 0
	a.heap = nil
}

// ExactValue carries the compile-time literal payload a Const* Value
// materializes. Exactly one field is meaningful, selected by Kind.
type ExactValueKind int

const (
	ExactInvalid ExactValueKind = iota
	ExactBool
	ExactInteger
	ExactFloat
	ExactString
	ExactPointer
	ExactSlice
)

type ExactValue struct {
	Kind    ExactValueKind
	Bool    bool
	Integer int64
	Float   float64
	String  string
	// Pointer/Slice constants carry no payload beyond the kind tag; the
	// core only ever materializes the nil/empty forms of these.
}

// Value is a single SSA instruction or operand.
//
// Invariants: a value is created in exactly one block and never moves;
// Uses equals the number of argument slots across all values, plus
// control slots across all blocks, that reference it; for non-constant
// ops Exact is nil.
type Value struct {
	ID      int
	Op      Op
	Type    types.Type
	Block   *Block
	Args    ValueArgs
	uses    int
	Exact   *ExactValue
	Comment string
}

// Uses returns the current reference count.
func (v *Value) Uses() int { return v.uses }

func (v *Value) String() string {
	return fmt.Sprintf("v%d", v.ID)
}

// resetArgs decrements all current argument use counts and empties the
// list, without touching Op or Exact.
func (v *Value) resetArgs() {
	v.Args.Clear()
}

// reset clears the argument list and exact payload and installs a new
// opcode. Used by rewrites that replace one operation with another in
// place (so existing use-edges from other values stay valid).
func (v *Value) reset(op Op) {
	v.resetArgs()
	v.Exact = nil
	v.Op = op
}
