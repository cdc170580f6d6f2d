package types

import "ember/internal/builtins"

// Re-export the builtin type-name table so callers outside internal/builtins
// don't need to import it directly.
type BuiltinType = builtins.BuiltinType

const (
	I8  = builtins.I8
	I16 = builtins.I16
	I32 = builtins.I32
	I64 = builtins.I64

	U8  = builtins.U8
	U16 = builtins.U16
	U32 = builtins.U32
	U64 = builtins.U64

	F32 = builtins.F32
	F64 = builtins.F64

	Bool   = builtins.Bool
	String = builtins.String
	Int    = builtins.Int
	Uint   = builtins.Uint
)

// BuiltinTypes contains all valid built-in type names.
var BuiltinTypes = builtins.BuiltinTypes

// IsBuiltinType checks if a type name is a built-in type.
func IsBuiltinType(typeName string) bool {
	return builtins.IsBuiltinType(typeName)
}

// IsIntegerTypeName checks if a type name denotes an integer type.
func IsIntegerTypeName(typeName string) bool {
	return builtins.IsIntegerType(typeName)
}

// FromBuiltinName resolves a parsed built-in type name to a concrete Type.
// Int/Uint are left as platform-width placeholders (Bits == 0) for
// ProperType to canonicalize once the target word size is known.
func FromBuiltinName(name string) Type {
	switch BuiltinType(name) {
	case I8:
		return &IntType{Bits: 8}
	case I16:
		return &IntType{Bits: 16}
	case I32:
		return &IntType{Bits: 32}
	case I64:
		return &IntType{Bits: 64}
	case U8:
		return &IntType{Bits: 8, Unsigned: true}
	case U16:
		return &IntType{Bits: 16, Unsigned: true}
	case U32:
		return &IntType{Bits: 32, Unsigned: true}
	case U64:
		return &IntType{Bits: 64, Unsigned: true}
	case F32:
		return &FloatType{Bits: 32}
	case F64:
		return &FloatType{Bits: 64}
	case Bool:
		return &BoolType{}
	case String:
		return &StringType{}
	case Int:
		return &IntType{Bits: 0}
	case Uint:
		return &IntType{Bits: 0, Unsigned: true}
	default:
		return nil
	}
}
