package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
	"ember/internal/parser"
)

// ConvertParseErrors transforms parser errors into LSP diagnostics for IDE display.
// These provide immediate feedback about syntax issues like missing brackets,
// semicolons, commas in struct declarations, and other parsing problems.
func ConvertParseErrors(parseErrors []parser.ParseError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, parseErr := range parseErrors {
		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(parseErr.Position.Line - 1),   // Convert to 0-based indexing
					Character: uint32(parseErr.Position.Column - 1), // Convert to 0-based indexing
				},
				End: protocol.Position{
					Line:      uint32(parseErr.Position.Line - 1),
					Character: uint32(parseErr.Position.Column + 5), // Rough span for visibility
				},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("parser"),
			Message:  parseErr.Message,
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

// ConvertScanErrors transforms scanner errors into LSP diagnostics for IDE display.
// These handle tokenization issues like invalid characters, unterminated strings, etc.
func ConvertScanErrors(scanErrors []parser.ScanError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, scanErr := range scanErrors {
		// Use the Length field if available, otherwise default span
		endChar := uint32(scanErr.Position.Column - 1 + scanErr.Length)
		if scanErr.Length == 0 {
			endChar = uint32(scanErr.Position.Column + 3) // Default small span
		}

		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(scanErr.Position.Line - 1),   // Convert to 0-based indexing
					Character: uint32(scanErr.Position.Column - 1), // Convert to 0-based indexing
				},
				End: protocol.Position{
					Line:      uint32(scanErr.Position.Line - 1),
					Character: endChar,
				},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("scanner"),
			Message:  scanErr.Message,
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
