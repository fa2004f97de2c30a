package errors

// Error codes for the forwarding generator.
// These codes are used in diagnostics printed by the CLI and published
// by the language server.
//
// Error code ranges:
// E0001-E0099: Semantic checks on a parsed declaration
// E0100-E0199: Declaration parser and scanner errors
// E0200-E0299: Host-file expansion errors
// W0001-W0099: Warnings

const (
	// E0009: Duplicate method inside one declaration
	ErrorDuplicateDeclaration = "E0009"

	// Parser errors (E0100-E0199)

	// E0100: Input does not start with a method list
	ErrorMalformedMethodList = "E0100"

	// E0101: Method without a receiver, or a receiver out of place
	ErrorMissingReceiver = "E0101"

	// E0102: Method list not followed by 'to'
	ErrorMissingTo = "E0102"

	// E0103: Malformed 'self.<member>' target
	ErrorMalformedTarget = "E0103"

	// E0104: Malformed method signature or type
	ErrorMalformedSignature = "E0104"

	// E0105: Tokens left over after the target
	ErrorUnexpectedToken = "E0105"

	// E0106: Character the scanner does not understand
	ErrorInvalidCharacter = "E0106"

	// Expansion errors (E0200-E0299)

	// E0200: Invocation whose delimiters are not balanced
	ErrorUnterminatedInvocation = "E0200"

	// E0201: Host file could not be tokenized
	ErrorHostLexing = "E0201"

	// Warning codes

	// W0001: A cloned result that is itself a reference
	WarningCloneOfReference = "W0001"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorDuplicateDeclaration:
		return "Method is forwarded more than once in the same declaration"
	case ErrorMalformedMethodList:
		return "Delegates must be a list of 'fn' signatures"
	case ErrorMissingReceiver:
		return "Forwarded methods need a receiver as their first parameter"
	case ErrorMissingTo:
		return "The method list must be followed by 'to self.<member>'"
	case ErrorMalformedTarget:
		return "Delegation target is not a field name or index"
	case ErrorMalformedSignature:
		return "Method signature could not be parsed"
	case ErrorUnexpectedToken:
		return "Unexpected input after the delegation target"
	case ErrorInvalidCharacter:
		return "Character is not valid in a forwarding declaration"
	case ErrorUnterminatedInvocation:
		return "Macro invocation is missing its closing delimiter"
	case ErrorHostLexing:
		return "Source file could not be tokenized"
	case WarningCloneOfReference:
		return "Cloning a reference only copies the reference"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code == "":
		return "Unknown"
	case code[0] == 'W':
		return "Warning"
	case code >= "E0001" && code < "E0100":
		return "Semantic Analysis"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Expansion"
	default:
		return "Unknown"
	}
}
