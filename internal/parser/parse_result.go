package parser

import "ember/internal/ast"

// ParseResult contains the full parsing result including metadata
type ParseResult struct {
	Module          *ast.Module
	ParseErrors     []ParseError
	ScanErrors      []ScanError
	MetadataVisitor *ast.MetadataVisitor
}

// ParseSourceWithMetadata parses source code and returns enhanced result with metadata
func ParseSourceWithMetadata(path string, source string) *ParseResult {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	parser := NewParser(path, tokens)
	module := parser.ParseModule()

	var mv *ast.MetadataVisitor
	if module != nil {
		mv = ast.NewMetadataVisitor(source)
		for _, item := range module.LeadingComments {
			mv.AssignMetadata(item, 0) // 0 = no parent
		}
		mv.AssignMetadata(module, 0)
	}

	return &ParseResult{
		Module:          module,
		ParseErrors:     parser.errors,
		ScanErrors:      scanner.errors,
		MetadataVisitor: mv,
	}
}

// GetSourceMapping returns source-to-bytecode mapping for DAP server
func (pr *ParseResult) GetSourceMapping() map[uint32]ast.Position {
	if pr.Module == nil || pr.MetadataVisitor == nil {
		return nil
	}

	nodes := ast.CollectAllNodes(pr.Module)
	return ast.GetSourceMapping(nodes)
}

// GetReverseMapping returns bytecode-to-source mapping for DAP server
func (pr *ParseResult) GetReverseMapping() map[ast.Position][]uint32 {
	if pr.Module == nil || pr.MetadataVisitor == nil {
		return nil
	}

	nodes := ast.CollectAllNodes(pr.Module)
	return ast.GetReverseMapping(nodes)
}

// FindNodeByPosition finds a node at a specific position (for DAP server)
func (pr *ParseResult) FindNodeByPosition(pos ast.Position) *ast.Metadata {
	if pr.MetadataVisitor == nil {
		return nil
	}
	return pr.MetadataVisitor.FindNodeByPosition(pos)
}

// GetDebugInfo returns debugging information about the parse result
func (pr *ParseResult) GetDebugInfo() string {
	if pr.MetadataVisitor == nil {
		return "No metadata available"
	}
	return pr.MetadataVisitor.PrintDebugInfo()
}
