package grammar_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ember/grammar"
)

func TestParseStringTally(t *testing.T) {
	source, err := os.ReadFile("../examples/tally.ka")
	require.NoError(t, err)

	program, err := grammar.ParseString("tally.ka", string(source))
	require.NoError(t, err)
	require.Len(t, program.SourceElements, 2)

	var comment *grammar.Comment
	var module *grammar.Module
	for _, se := range program.SourceElements {
		if se.Comment != nil {
			comment = se.Comment
		}
		if se.Module != nil {
			module = se.Module
		}
	}

	require.NotNil(t, comment)
	assert.Contains(t, comment.Text, "SPDX-License-Identifier")

	require.NotNil(t, module)
	assert.Equal(t, "tally", module.Name.Value)
	require.Len(t, module.Items, 3)

	use := module.Items[0].Use
	require.NotNil(t, use)
	require.Len(t, use.Namespaces, 2)
	assert.Equal(t, "std", use.Namespaces[0].Value)
	assert.Equal(t, "io", use.Namespaces[1].Value)
	require.Len(t, use.Imports, 1)
	assert.Equal(t, "println", use.Imports[0].Value)

	state := module.Items[1].Struct
	require.NotNil(t, state)
	require.NotNil(t, state.Attribute)
	assert.Equal(t, "storage", state.Attribute.Name)
	assert.Equal(t, "State", state.Name.Value)
	require.Len(t, state.Fields, 1)
	assert.Equal(t, "total", state.Fields[0].Name.Value)
	require.NotNil(t, state.Fields[0].Type.Name)
	assert.Equal(t, "I64", state.Fields[0].Type.Name.Value)

	main := module.Items[2].Function
	require.NotNil(t, main)
	require.NotNil(t, main.Attribute)
	assert.Equal(t, "entry", main.Attribute.Name)
	assert.Equal(t, "main", main.Name.Value)
	require.Len(t, main.Writes, 1)
	assert.Equal(t, "State", main.Writes[0].Value)

	require.Len(t, main.Body.Statements, 3)
	require.NotNil(t, main.Body.Statements[0].LetStmt)
	assert.Equal(t, "total", main.Body.Statements[0].LetStmt.Name.Value)

	forStmt := main.Body.Statements[1].ForStmt
	require.NotNil(t, forStmt)
	require.NotNil(t, forStmt.Header)
	require.NotNil(t, forStmt.Header.Init.Let)
	assert.Equal(t, "i", forStmt.Header.Init.Let.Name.Value)
	require.NotNil(t, forStmt.Header.Post.Assign)

	ifStmt := main.Body.Statements[2].IfStmt
	require.NotNil(t, ifStmt)
	require.NotNil(t, ifStmt.Else)
	require.NotNil(t, ifStmt.Else.Block)
}

func TestFormatParseErrorReportsCaretPosition(t *testing.T) {
	source := "module m {\n    fn broken( {\n    }\n}\n"

	_, err := grammar.ParseString("broken.ka", source)
	require.Error(t, err)

	formatted := grammar.FormatParseError(source, err)
	assert.Contains(t, formatted, "broken.ka")
	assert.Contains(t, formatted, "fn broken(")
}
