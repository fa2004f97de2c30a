package errors

import (
	"fmt"

	"fwdgen/internal/ast"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

// NewError creates a new error builder
func NewError(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a new warning builder
func NewWarning(code, message string, pos ast.Position) *DiagnosticBuilder {
	b := NewError(code, message, pos)
	b.err.Level = Warning
	return b
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithSpan sets the length from a start and end position on the same line.
func (b *DiagnosticBuilder) WithSpan(start, end ast.Position) *DiagnosticBuilder {
	if end.Offset > start.Offset {
		b.err.Length = end.Offset - start.Offset
	}
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// DuplicateMethod reports a method name forwarded twice in one declaration.
func DuplicateMethod(name string, pos, end ast.Position, first ast.Position) CompilerError {
	return NewError(ErrorDuplicateDeclaration, fmt.Sprintf("duplicate forwarded method: %s", name), pos).
		WithSpan(pos, end).
		WithSuggestion(fmt.Sprintf("remove the second 'fn %s'", name)).
		WithNote(fmt.Sprintf("first declared at %d:%d", first.Line, first.Column)).
		Build()
}

// CloneOfReference warns that a borrowed accessor clones a reference result.
func CloneOfReference(method, returnType string, pos, end ast.Position) CompilerError {
	return NewWarning(WarningCloneOfReference,
		fmt.Sprintf("method '%s' returns a reference; '.clone()' copies only the reference", method), pos).
		WithSpan(pos, end).
		WithNote(fmt.Sprintf("declared return type is %s", returnType)).
		WithHelp("return an owned type or wrap the result in Option to skip the clone").
		Build()
}

// UnbalancedInvocation reports a macro invocation whose delimiters do not pair up.
func UnbalancedInvocation(message, open string, pos ast.Position) CompilerError {
	return NewError(ErrorUnterminatedInvocation, message, pos).
		WithHelp(fmt.Sprintf("check the delimiters opened by '%s'", open)).
		Build()
}

// HostLexing reports a host file that the lexer could not tokenize.
func HostLexing(message string, pos ast.Position) CompilerError {
	return NewError(ErrorHostLexing, message, pos).Build()
}

// DuplicateParameter reports two parameters of one method sharing a name.
func DuplicateParameter(method, name string, pos, end ast.Position) CompilerError {
	return NewError(ErrorDuplicateDeclaration, fmt.Sprintf("parameter '%s' is bound more than once in '%s'", name, method), pos).
		WithSpan(pos, end).
		WithSuggestion(fmt.Sprintf("rename one of the '%s' parameters", name)).
		Build()
}
