package parser

import (
	"fwdgen/internal/ast"
	"fwdgen/internal/errors"
)

// ParseResult contains the full parsing result, tokens included, for
// tooling that needs more than the declaration.
type ParseResult struct {
	Decl        *ast.ForwardDecl
	Tokens      []Token
	ParseErrors []ParseError
	ScanErrors  []ScanError
}

// ParseSourceWithTokens parses source located at base in the file path and
// keeps the token stream.
func ParseSourceWithTokens(path string, source string, base Position) *ParseResult {
	return parse(path, source, base)
}

func parse(path string, source string, base Position) *ParseResult {
	scanner := NewScannerAt(source, base)
	tokens := scanner.ScanTokens()

	res := &ParseResult{Tokens: tokens, ScanErrors: scanner.Errors()}
	if len(res.ScanErrors) > 0 {
		return res
	}

	parser := NewParser(path, tokens)
	res.Decl = parser.ParseForwardDecl()
	res.ParseErrors = parser.Errors()
	return res
}

// HasErrors reports whether scanning or parsing failed.
func (pr *ParseResult) HasErrors() bool {
	return len(pr.ScanErrors) > 0 || len(pr.ParseErrors) > 0
}

// Err returns the first diagnostic, or nil.
func (pr *ParseResult) Err() error {
	if len(pr.ScanErrors) > 0 {
		return pr.ScanErrors[0]
	}
	if len(pr.ParseErrors) > 0 {
		return pr.ParseErrors[0]
	}
	return nil
}

// Diagnostics converts the recorded problems into reporter errors.
func (pr *ParseResult) Diagnostics(filename string) []errors.CompilerError {
	var out []errors.CompilerError
	for _, se := range pr.ScanErrors {
		out = append(out, se.Diagnostic(filename))
	}
	for _, pe := range pr.ParseErrors {
		out = append(out, pe.Diagnostic(filename))
	}
	return out
}

// Diagnostic converts the error for the reporter.
func (e ParseError) Diagnostic(filename string) errors.CompilerError {
	return errors.NewError(e.Code, e.Message, toASTPosition(filename, e.Position)).
		WithLength(e.Length).
		Build()
}

// Diagnostic converts the error for the reporter.
func (e ScanError) Diagnostic(filename string) errors.CompilerError {
	return errors.NewError(errors.ErrorInvalidCharacter, e.Message, toASTPosition(filename, e.Position)).
		WithLength(e.Length).
		Build()
}

func toASTPosition(filename string, pos Position) ast.Position {
	return ast.Position{Filename: filename, Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}
