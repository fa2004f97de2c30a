package parser

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	LIFETIME

	// Keywords
	FN
	MUT
	SELF
	IMPL
	DYN
	PUB
	CONST

	// Operators
	ARROW
	AMPERSAND
	STAR
	PLUS
	MINUS
	BANG
	EQUAL
	LESS
	GREATER

	// Separators
	COMMA
	DOT
	SEMICOLON
	COLON
	DOUBLE_COLON

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
)

var tokenTypeNames = [...]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	IDENTIFIER:    "IDENTIFIER",
	NUMBER:        "NUMBER",
	LIFETIME:      "LIFETIME",
	FN:            "FN",
	MUT:           "MUT",
	SELF:          "SELF",
	IMPL:          "IMPL",
	DYN:           "DYN",
	PUB:           "PUB",
	CONST:         "CONST",
	ARROW:         "ARROW",
	AMPERSAND:     "AMPERSAND",
	STAR:          "STAR",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	BANG:          "BANG",
	EQUAL:         "EQUAL",
	LESS:          "LESS",
	GREATER:       "GREATER",
	COMMA:         "COMMA",
	DOT:           "DOT",
	SEMICOLON:     "SEMICOLON",
	COLON:         "COLON",
	DOUBLE_COLON:  "DOUBLE_COLON",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return "TokenType(?)"
	}
	return tokenTypeNames[t]
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}
