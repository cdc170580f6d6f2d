package builtins

// BuiltinType represents the built-in type names recognized by the parser
// before any type resolution happens.
type BuiltinType string

const (
	I8  BuiltinType = "I8"
	I16 BuiltinType = "I16"
	I32 BuiltinType = "I32"
	I64 BuiltinType = "I64"

	U8  BuiltinType = "U8"
	U16 BuiltinType = "U16"
	U32 BuiltinType = "U32"
	U64 BuiltinType = "U64"

	F32 BuiltinType = "F32"
	F64 BuiltinType = "F64"

	Bool   BuiltinType = "Bool"
	String BuiltinType = "String"

	// Int and Uint are platform-width aliases, canonicalized by
	// semantic.BuildContext.WordSize into I32/I64 or U32/U64.
	Int  BuiltinType = "Int"
	Uint BuiltinType = "Uint"
)

// BuiltinTypes contains all valid built-in type names.
var BuiltinTypes = map[string]bool{
	string(I8): true, string(I16): true, string(I32): true, string(I64): true,
	string(U8): true, string(U16): true, string(U32): true, string(U64): true,
	string(F32): true, string(F64): true,
	string(Bool): true, string(String): true,
	string(Int): true, string(Uint): true,
}

// IsBuiltinType checks if a type name is a built-in type.
func IsBuiltinType(typeName string) bool {
	return BuiltinTypes[typeName]
}

// IsIntegerType checks if a type name denotes an integer type, signed or
// unsigned, fixed-width or platform-width.
func IsIntegerType(typeName string) bool {
	switch BuiltinType(typeName) {
	case I8, I16, I32, I64, U8, U16, U32, U64, Int, Uint:
		return true
	default:
		return false
	}
}

// IsFloatType checks if a type name denotes a floating-point type.
func IsFloatType(typeName string) bool {
	switch BuiltinType(typeName) {
	case F32, F64:
		return true
	default:
		return false
	}
}

// IsUnsigned checks if an integer type name is unsigned.
func IsUnsigned(typeName string) bool {
	switch BuiltinType(typeName) {
	case U8, U16, U32, U64, Uint:
		return true
	default:
		return false
	}
}
