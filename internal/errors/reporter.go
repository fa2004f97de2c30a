package errors

import (
	"fmt"
	"strings"

	"fwdgen/internal/ast"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError is a positioned diagnostic with optional notes and fixes
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0102
	Message     string       // Primary message
	Position    ast.Position // Location in the host file
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

func (e CompilerError) Error() string {
	return e.Message
}

// IsWarning reports whether the diagnostic should not fail a run.
func (e CompilerError) IsWarning() bool {
	return e.Level == Warning || IsWarning(e.Code)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

// ErrorReporter renders diagnostics against the source they refer to
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError formats a diagnostic with Rust-like styling and suggestions
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	lineNumberWidth := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	er.writeHeader(&result, err, indent)
	er.writeSource(&result, err, lineNumberWidth)
	er.writeSuggestions(&result, err.Suggestions, indent)

	dim := color.New(color.Faint).SprintFunc()
	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note)
	}
	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText)
	}

	result.WriteString("\n")
	return result.String()
}

// FormatAll formats every diagnostic in order.
func (er *ErrorReporter) FormatAll(errs []CompilerError) string {
	var result strings.Builder
	for _, err := range errs {
		result.WriteString(er.FormatError(err))
	}
	return result.String()
}

// writeHeader emits "error[E0102]: message" and the "--> file:line:col" line
func (er *ErrorReporter) writeHeader(out *strings.Builder, err CompilerError, indent string) {
	levelColor := er.getLevelColor(err.Level)
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(out, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(out, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	fmt.Fprintf(out, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(out, "%s %s\n", indent, dim("│"))
}

// writeSource shows the offending line between its neighbours with a caret marker
func (er *ErrorReporter) writeSource(out *strings.Builder, err CompilerError, width int) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	indent := strings.Repeat(" ", width)
	line := err.Position.Line

	if line > 1 && line-1 <= len(er.lines) {
		fmt.Fprintf(out, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, line-1)), dim("│"), er.lines[line-2])
	}

	if line > 0 && line <= len(er.lines) {
		fmt.Fprintf(out, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), dim("│"), er.lines[line-1])
		fmt.Fprintf(out, "%s %s %s\n", indent, dim("│"), er.createMarker(err.Position.Column, err.Length, err.Level))
	}

	if line > 0 && line < len(er.lines) {
		fmt.Fprintf(out, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, line+1)), dim("│"), er.lines[line])
	}
}

func (er *ErrorReporter) writeSuggestions(out *strings.Builder, suggestions []Suggestion, indent string) {
	if len(suggestions) == 0 {
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	suggestionColor := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(out, "%s %s\n", indent, dim("│"))
	for i, suggestion := range suggestions {
		if i == 0 {
			fmt.Fprintf(out, "%s %s %s: %s\n", indent, suggestionColor("help"), suggestionColor("try"), suggestion.Message)
		} else {
			fmt.Fprintf(out, "%s %s %s\n", indent, suggestionColor("    "), suggestion.Message)
		}

		if suggestion.Replacement != "" {
			fmt.Fprintf(out, "%s %s\n", indent, dim("│"))
			replacement := strings.ReplaceAll(suggestion.Replacement, "\n", fmt.Sprintf("\n%s %s ", indent, dim("│")))
			fmt.Fprintf(out, "%s %s %s\n", indent, suggestionColor("│"), suggestionColor(replacement))
		}
	}
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker for errors
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	markerColor := er.getLevelColor(level)
	if level != Warning {
		markerColor = er.getLevelColor(Error)
	}
	return spaces + markerColor(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
