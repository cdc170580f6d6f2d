package parser

import "ember/internal/ast"

// ParseSource scans and parses a single source file into a Module,
// assigning source-range metadata to every node it produced.
func ParseSource(path string, source string) (*ast.Module, []ParseError, []ScanError) {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	parser := NewParser(path, tokens)
	module := parser.ParseModule()

	if module != nil {
		mv := ast.NewMetadataVisitor(source)
		for _, item := range module.LeadingComments {
			mv.AssignMetadata(item, 0) // 0 = no parent
		}
		mv.AssignMetadata(module, 0)
	}

	return module, parser.errors, scanner.errors
}
