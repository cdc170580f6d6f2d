package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStandardModules(t *testing.T) {
	modules := GetStandardModules()

	assert.NotNil(t, modules["std::io"], "std::io module should exist")
	assert.NotNil(t, modules["std::table"], "std::table module should exist")
	assert.NotNil(t, modules["std::vector"], "std::vector module should exist")
	assert.NotNil(t, modules["std::mem"], "std::mem module should exist")
	assert.NotNil(t, modules["std::process"], "std::process module should exist")

	io := modules["std::io"]
	assert.Equal(t, "io", io.Name)
	assert.Equal(t, "std::io", io.Path)

	_, hasPrint := io.Functions["print"]
	assert.True(t, hasPrint, "std::io should have a print function")

	_, hasPrintln := io.Functions["println"]
	assert.True(t, hasPrintln, "std::io should have a println function")
	assert.Empty(t, io.Types, "std::io should not export types")

	printlnFunc := io.Functions["println"]
	assert.Equal(t, "println", printlnFunc.Name)
	assert.Nil(t, printlnFunc.ReturnType) // void function
	assert.Len(t, printlnFunc.Parameters, 1)
	assert.Equal(t, "msg", printlnFunc.Parameters[0].Name)

	table := modules["std::table"]
	assert.Equal(t, "table", table.Name)
	assert.Equal(t, "std::table", table.Path)
	assert.True(t, table.Types["Table"].IsGeneric, "Table type should be generic")

	vector := modules["std::vector"]
	assert.Equal(t, "vector", vector.Name)
	assert.Equal(t, "std::vector", vector.Path)
	assert.True(t, vector.Types["vector"].IsGeneric, "vector type should be generic")
}

func TestIsKnownModule(t *testing.T) {
	assert.True(t, IsKnownModule("std::io"), "std::io should be known")
	assert.True(t, IsKnownModule("std::table"), "std::table should be known")
	assert.True(t, IsKnownModule("std::vector"), "std::vector should be known")
	assert.False(t, IsKnownModule("UnknownModule"), "UnknownModule should not be known")
}

func TestGetModuleDefinition(t *testing.T) {
	io := GetModuleDefinition("std::io")
	assert.NotNil(t, io, "should return std::io module definition")
	assert.Equal(t, "io", io.Name)

	unknown := GetModuleDefinition("UnknownModule")
	assert.Nil(t, unknown, "should return nil for unknown module")
}
