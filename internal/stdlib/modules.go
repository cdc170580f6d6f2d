package stdlib

import "ember/internal/builtins"

// ModuleDefinition defines a standard library module
type ModuleDefinition struct {
	Name      string                        // Module name (e.g., "io", "vector")
	Path      string                        // Full module path (e.g., "std::io")
	Types     map[string]TypeDefinition     // Available types in this module
	Functions map[string]FunctionDefinition // Available functions in this module
}

// TypeDefinition defines a type from a standard library module
type TypeDefinition struct {
	Name      string // Type name (e.g., "vector", "String")
	IsGeneric bool   // Whether the type accepts generic parameters
}

// FunctionDefinition defines a function signature from a standard library module
type FunctionDefinition struct {
	Name       string                // Function name (e.g., "empty", "print")
	Parameters []ParameterDefinition // Function parameters
	ReturnType *TypeRef              // Return type (nil if void)
	IsGeneric  bool                  // Whether the function has generic type parameters
}

// ParameterDefinition defines a function parameter
type ParameterDefinition struct {
	Name string   // Parameter name
	Type *TypeRef // Parameter type
}

// TypeRef represents a type reference that can be generic
type TypeRef struct {
	Name        string     // Base type name (e.g., "vector", "u32", "T")
	IsGeneric   bool       // Whether this is a generic type parameter (T, K, V)
	GenericArgs []*TypeRef // Generic type arguments for parameterized types
}

// Helper functions for creating type references
func NewTypeRef(name string) *TypeRef {
	return &TypeRef{Name: name, IsGeneric: false}
}

// Built-in type references using actual builtins.BuiltinType constants
func BoolType() *TypeRef {
	return &TypeRef{Name: string(builtins.Bool), IsGeneric: false}
}

func StringType() *TypeRef {
	return &TypeRef{Name: string(builtins.String), IsGeneric: false}
}

func U8Type() *TypeRef {
	return &TypeRef{Name: string(builtins.U8), IsGeneric: false}
}

func U32Type() *TypeRef {
	return &TypeRef{Name: string(builtins.U32), IsGeneric: false}
}

func U64Type() *TypeRef {
	return &TypeRef{Name: string(builtins.U64), IsGeneric: false}
}

func I64Type() *TypeRef {
	return &TypeRef{Name: string(builtins.I64), IsGeneric: false}
}

func NewGenericTypeRef(name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Name: name, IsGeneric: false, GenericArgs: args}
}

func NewGenericParam(name string) *TypeRef {
	return &TypeRef{Name: name, IsGeneric: true}
}

// Helper function for creating function definitions
func NewFunction(name string, returnType *TypeRef, params ...ParameterDefinition) FunctionDefinition {
	return FunctionDefinition{
		Name:       name,
		Parameters: params,
		ReturnType: returnType,
		IsGeneric:  false,
	}
}

func NewGenericFunction(name string, returnType *TypeRef, params ...ParameterDefinition) FunctionDefinition {
	return FunctionDefinition{
		Name:       name,
		Parameters: params,
		ReturnType: returnType,
		IsGeneric:  true,
	}
}

// Helper function for creating parameters
func NewParam(name string, typeRef *TypeRef) ParameterDefinition {
	return ParameterDefinition{Name: name, Type: typeRef}
}

// GetStandardModules returns all built-in standard library modules available
// to `use` statements. This plays the role of the frontend collaborator's
// entity tables for imported (as opposed to user-defined) functions: the IR
// builder only ever sees a Proc-typed value for these, never their bodies.
func GetStandardModules() map[string]*ModuleDefinition {
	return map[string]*ModuleDefinition{
		"std::io": {
			Name:  "io",
			Path:  "std::io",
			Types: map[string]TypeDefinition{},
			Functions: map[string]FunctionDefinition{
				"print":   NewFunction("print", nil, NewParam("msg", StringType())),
				"println": NewFunction("println", nil, NewParam("msg", StringType())),
			},
		},
		"std::mem": {
			Name:  "mem",
			Path:  "std::mem",
			Types: map[string]TypeDefinition{},
			Functions: map[string]FunctionDefinition{
				"size_of": NewGenericFunction("size_of", U64Type()),
			},
		},
		"std::process": {
			Name:  "process",
			Path:  "std::process",
			Types: map[string]TypeDefinition{},
			Functions: map[string]FunctionDefinition{
				"exit": NewFunction("exit", nil, NewParam("code", I64Type())),
			},
		},
		"std::table": {
			Name: "table",
			Path: "std::table",
			Types: map[string]TypeDefinition{
				"Table": {Name: "Table", IsGeneric: true},
			},
			Functions: map[string]FunctionDefinition{
				"empty": NewGenericFunction("empty",
					NewGenericTypeRef("Table", NewGenericParam("K"), NewGenericParam("V"))),
				"borrow": NewGenericFunction("borrow",
					NewGenericParam("V"),
					NewParam("table", NewGenericTypeRef("Table", NewGenericParam("K"), NewGenericParam("V"))),
					NewParam("key", NewGenericParam("K"))),
				"borrow_mut": NewGenericFunction("borrow_mut",
					NewGenericParam("V"),
					NewParam("table", NewGenericTypeRef("Table", NewGenericParam("K"), NewGenericParam("V"))),
					NewParam("key", NewGenericParam("K"))),
				"insert": NewGenericFunction("insert",
					nil,
					NewParam("table", NewGenericTypeRef("Table", NewGenericParam("K"), NewGenericParam("V"))),
					NewParam("key", NewGenericParam("K")),
					NewParam("value", NewGenericParam("V"))),
				"delete": NewGenericFunction("delete",
					NewGenericParam("V"),
					NewParam("table", NewGenericTypeRef("Table", NewGenericParam("K"), NewGenericParam("V"))),
					NewParam("key", NewGenericParam("K"))),
			},
		},
		"std::vector": {
			Name: "vector",
			Path: "std::vector",
			Types: map[string]TypeDefinition{
				"vector": {Name: "vector", IsGeneric: true},
			},
			Functions: map[string]FunctionDefinition{
				"empty": NewGenericFunction("empty", NewGenericTypeRef("vector", NewGenericParam("T"))),
				"push_back": NewGenericFunction("push_back", nil,
					NewParam("vec", NewGenericTypeRef("vector", NewGenericParam("T"))),
					NewParam("item", NewGenericParam("T"))),
				"pop_back": NewGenericFunction("pop_back", NewGenericParam("T"),
					NewParam("vec", NewGenericTypeRef("vector", NewGenericParam("T")))),
				"borrow": NewGenericFunction("borrow", NewGenericParam("T"),
					NewParam("vec", NewGenericTypeRef("vector", NewGenericParam("T"))),
					NewParam("index", U64Type())),
				"borrow_mut": NewGenericFunction("borrow_mut", NewGenericParam("T"),
					NewParam("vec", NewGenericTypeRef("vector", NewGenericParam("T"))),
					NewParam("index", U64Type())),
				"len": NewGenericFunction("len", U64Type(),
					NewParam("vec", NewGenericTypeRef("vector", NewGenericParam("T")))),
			},
		},
	}
}

// IsKnownModule checks if a module path is a known standard library module
func IsKnownModule(modulePath string) bool {
	modules := GetStandardModules()
	_, exists := modules[modulePath]
	return exists
}

// GetModuleDefinition returns the definition for a standard library module
func GetModuleDefinition(modulePath string) *ModuleDefinition {
	modules := GetStandardModules()
	return modules[modulePath]
}
