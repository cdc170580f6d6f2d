package ir

// Op identifies the operation a Value performs. The catalog mirrors the
// width- and signedness-dispatched arithmetic families a typed SSA form
// needs, plus the addressing, conversion, and control operations the
// builder emits.
type Op int

const (
	Invalid Op = iota

	// Constants, one family member per representable width.
	ConstBool
	Const8
	Const16
	Const32
	Const64
	Const32F
	Const64F
	ConstString
	ConstSlice
	ConstNil

	// Integer arithmetic, split by width and, for Div/Mod, signedness.
	Add8
	Add16
	Add32
	Add64
	Sub8
	Sub16
	Sub32
	Sub64
	Mul8
	Mul16
	Mul32
	Mul64
	Div8
	Div16
	Div32
	Div64
	Div8U
	Div16U
	Div32U
	Div64U
	Mod8
	Mod16
	Mod32
	Mod64
	Mod8U
	Mod16U
	Mod32U
	Mod64U

	// Float arithmetic.
	Add32F
	Add64F
	Sub32F
	Sub64F
	Mul32F
	Mul64F
	Div32F
	Div64F

	// Bitwise family, also used for the boolean and/or/xor/andnot forms.
	And8
	And16
	And32
	And64
	Or8
	Or16
	Or32
	Or64
	Xor8
	Xor16
	Xor32
	Xor64
	AndNot8
	AndNot16
	AndNot32
	AndNot64

	// Comparisons, width-dispatched; signedness matters for Lt/Le/Gt/Ge.
	Eq8
	Eq16
	Eq32
	Eq64
	Eq32F
	Eq64F
	Ne8
	Ne16
	Ne32
	Ne64
	Ne32F
	Ne64F
	Lt8
	Lt16
	Lt32
	Lt64
	Lt8U
	Lt16U
	Lt32U
	Lt64U
	Lt32F
	Lt64F
	Le8
	Le16
	Le32
	Le64
	Le8U
	Le16U
	Le32U
	Le64U
	Le32F
	Le64F
	Gt8
	Gt16
	Gt32
	Gt64
	Gt8U
	Gt16U
	Gt32U
	Gt64U
	Gt32F
	Gt64F
	Ge8
	Ge16
	Ge32
	Ge64
	Ge8U
	Ge16U
	Ge32U
	Ge64U
	Ge32F
	Ge64F

	// Negation family.
	NotB
	Not8
	Not16
	Not32
	Not64
	Neg8
	Neg16
	Neg32
	Neg64
	Neg32F
	Neg64F

	// Memory.
	Load
	Store
	Zero

	// Addressing.
	Addr
	Local
	PtrIndex
	PtrOffset
	ArrayIndex
	ValueIndex

	// Conversion.
	Copy

	// Procedure reference.
	Proc

	// Control.
	Phi
)

var opNames = map[Op]string{
	Invalid: "invalid",

	ConstBool:   "ConstBool",
	Const8:      "Const8",
	Const16:     "Const16",
	Const32:     "Const32",
	Const64:     "Const64",
	Const32F:    "Const32F",
	Const64F:    "Const64F",
	ConstString: "ConstString",
	ConstSlice:  "ConstSlice",
	ConstNil:    "ConstNil",

	Add8: "Add8", Add16: "Add16", Add32: "Add32", Add64: "Add64",
	Sub8: "Sub8", Sub16: "Sub16", Sub32: "Sub32", Sub64: "Sub64",
	Mul8: "Mul8", Mul16: "Mul16", Mul32: "Mul32", Mul64: "Mul64",
	Div8: "Div8", Div16: "Div16", Div32: "Div32", Div64: "Div64",
	Div8U: "Div8U", Div16U: "Div16U", Div32U: "Div32U", Div64U: "Div64U",
	Mod8: "Mod8", Mod16: "Mod16", Mod32: "Mod32", Mod64: "Mod64",
	Mod8U: "Mod8U", Mod16U: "Mod16U", Mod32U: "Mod32U", Mod64U: "Mod64U",

	Add32F: "Add32F", Add64F: "Add64F",
	Sub32F: "Sub32F", Sub64F: "Sub64F",
	Mul32F: "Mul32F", Mul64F: "Mul64F",
	Div32F: "Div32F", Div64F: "Div64F",

	And8: "And8", And16: "And16", And32: "And32", And64: "And64",
	Or8: "Or8", Or16: "Or16", Or32: "Or32", Or64: "Or64",
	Xor8: "Xor8", Xor16: "Xor16", Xor32: "Xor32", Xor64: "Xor64",
	AndNot8: "AndNot8", AndNot16: "AndNot16", AndNot32: "AndNot32", AndNot64: "AndNot64",

	Eq8: "Eq8", Eq16: "Eq16", Eq32: "Eq32", Eq64: "Eq64", Eq32F: "Eq32F", Eq64F: "Eq64F",
	Ne8: "Ne8", Ne16: "Ne16", Ne32: "Ne32", Ne64: "Ne64", Ne32F: "Ne32F", Ne64F: "Ne64F",
	Lt8: "Lt8", Lt16: "Lt16", Lt32: "Lt32", Lt64: "Lt64",
	Lt8U: "Lt8U", Lt16U: "Lt16U", Lt32U: "Lt32U", Lt64U: "Lt64U", Lt32F: "Lt32F", Lt64F: "Lt64F",
	Le8: "Le8", Le16: "Le16", Le32: "Le32", Le64: "Le64",
	Le8U: "Le8U", Le16U: "Le16U", Le32U: "Le32U", Le64U: "Le64U", Le32F: "Le32F", Le64F: "Le64F",
	Gt8: "Gt8", Gt16: "Gt16", Gt32: "Gt32", Gt64: "Gt64",
	Gt8U: "Gt8U", Gt16U: "Gt16U", Gt32U: "Gt32U", Gt64U: "Gt64U", Gt32F: "Gt32F", Gt64F: "Gt64F",
	Ge8: "Ge8", Ge16: "Ge16", Ge32: "Ge32", Ge64: "Ge64",
	Ge8U: "Ge8U", Ge16U: "Ge16U", Ge32U: "Ge32U", Ge64U: "Ge64U", Ge32F: "Ge32F", Ge64F: "Ge64F",

	NotB: "NotB",
	Not8: "Not8", Not16: "Not16", Not32: "Not32", Not64: "Not64",
	Neg8: "Neg8", Neg16: "Neg16", Neg32: "Neg32", Neg64: "Neg64", Neg32F: "Neg32F", Neg64F: "Neg64F",

	Load:  "Load",
	Store: "Store",
	Zero:  "Zero",

	Addr:       "Addr",
	Local:      "Local",
	PtrIndex:   "PtrIndex",
	PtrOffset:  "PtrOffset",
	ArrayIndex: "ArrayIndex",
	ValueIndex: "ValueIndex",

	Copy: "Copy",
	Proc: "Proc",
	Phi:  "Phi",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "invalid"
}

// IsTerminator reports whether op closes a block. The core never
// constructs these as ordinary Values; they exist so callers sharing
// code between value printing and terminator printing can ask.
func (o Op) IsTerminator() bool {
	return false
}
