package lsp

import (
	"fwdgen/internal/errors"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ConvertDiagnostics transforms expansion diagnostics into LSP diagnostics for IDE display.
// Positions are converted to 0-based lines and characters.
func ConvertDiagnostics(diags []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for _, d := range diags {
		line := uint32(max(0, d.Position.Line-1))
		start := uint32(max(0, d.Position.Column-1))

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: start},
				End:   protocol.Position{Line: line, Character: start + uint32(max(1, d.Length))},
			},
			Severity: ptrSeverity(severityOf(d)),
			Code:     &protocol.IntegerOrString{Value: d.Code},
			Source:   ptrString(serverName),
			Message:  diagnosticMessage(d),
		})
	}

	return diagnostics
}

func severityOf(d errors.CompilerError) protocol.DiagnosticSeverity {
	switch {
	case d.IsWarning():
		return protocol.DiagnosticSeverityWarning
	case d.Level == errors.Note:
		return protocol.DiagnosticSeverityInformation
	case d.Level == errors.Help:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

// diagnosticMessage appends the help text, editors show no other place for it.
func diagnosticMessage(d errors.CompilerError) string {
	if d.HelpText == "" {
		return d.Message
	}
	return d.Message + "\nhelp: " + d.HelpText
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
