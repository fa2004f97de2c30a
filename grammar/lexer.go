package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// HostLexer tokenizes the source files that carry fwd! invocations. It only
// needs to be precise enough to tell code from comments and literals, so
// every character it does not otherwise recognise becomes a Punct token and
// lexing never fails on well-formed UTF-8.
var HostLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "BlockComment", Pattern: `/\*(?s:.*?)\*/`, Action: nil},
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},

		// Literals that may contain delimiters (order matters: raw and
		// byte strings start with an identifier character)
		{Name: "RawString", Pattern: `b?r##"(?s:.*?)"##|b?r#"(?s:.*?)"#|b?r"[^"]*"`, Action: nil},
		{Name: "String", Pattern: `b?"((?s:\\.)|[^"\\])*"`, Action: nil},
		{Name: "Char", Pattern: `b?'(\\'|\\[^']+|[^'\\])'`, Action: nil},
		{Name: "Lifetime", Pattern: `'[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},

		// Keywords and Identifiers
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},

		// Integer and float literals, suffixes included
		{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_]*`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},

		// Everything else, one character at a time
		{Name: "Punct", Pattern: `[^ \t\r\n]`, Action: nil},
	},
})
