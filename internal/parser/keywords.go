package parser

// KEYWORDS are reserved words of the forwarding mini-language. "to" is
// deliberately absent: it is a contextual keyword recognised by the parser,
// so a parameter may still be called "to".
var KEYWORDS = map[string]TokenType{
	"fn":    FN,
	"mut":   MUT,
	"self":  SELF,
	"impl":  IMPL,
	"dyn":   DYN,
	"pub":   PUB,
	"const": CONST,
}

// contextual keyword separating the method list from the target
const toKeyword = "to"
