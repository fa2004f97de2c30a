package parser

import (
	"strconv"

	"fwdgen/internal/ast"
	"fwdgen/internal/errors"
)

// Diagnostics whose wording callers rely on.
const (
	MsgMalformedMethodList = "delegates must be declared as a list of methods in the form 'fn ident(arg1, arg2, ...) -> Return'"
	MsgMissingReceiver     = "method must have a receiver to be forwarded"
	MsgMissingTo           = "malformed delegation: missing 'to' between delegate and target"
)

type ParseError struct {
	Code     string
	Message  string
	Position Position
	Length   int
}

func (e ParseError) Error() string {
	return e.Message
}

// Parser is a recursive-descent parser over the tokens of one declaration.
// It stops at the first error.
type Parser struct {
	filename string
	tokens   []Token
	current  int
	errors   []ParseError
}

func NewParser(filename string, tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		tokens = append(tokens, Token{Type: EOF})
	}
	return &Parser{filename: filename, tokens: tokens}
}

func (p *Parser) Errors() []ParseError {
	return p.errors
}

// ParseForwardDecl parses
//
//	Method ("," Method)* "to" "self" "." Member
//
// and returns nil once an error has been recorded.
func (p *Parser) ParseForwardDecl() *ast.ForwardDecl {
	start := p.peek()

	methods := p.parseMethodList()
	if methods == nil {
		return nil
	}

	if !p.checkContextual(toKeyword) {
		p.errorAtCurrent(errors.ErrorMissingTo, MsgMissingTo)
		return nil
	}
	p.advance()

	if _, ok := p.consume(SELF, errors.ErrorMalformedTarget, "expected 'self' after 'to'"); !ok {
		return nil
	}
	if _, ok := p.consume(DOT, errors.ErrorMalformedTarget, "expected '.' after 'self'"); !ok {
		return nil
	}

	target, ok := p.parseMember()
	if !ok {
		return nil
	}

	if !p.isAtEnd() {
		p.errorAtCurrent(errors.ErrorUnexpectedToken, "unexpected token after delegation target")
		return nil
	}

	return &ast.ForwardDecl{
		Pos:     p.makePos(start),
		EndPos:  target.EndPos,
		Methods: methods,
		Target:  target,
	}
}

// parseMethodList reads methods separated by commas. A comma is only taken
// as a separator when the token after it is 'fn'.
func (p *Parser) parseMethodList() []*ast.Method {
	if !p.check(FN) {
		p.errorAtCurrent(errors.ErrorMalformedMethodList, MsgMalformedMethodList)
		return nil
	}

	first := p.parseMethod()
	if first == nil {
		return nil
	}
	methods := []*ast.Method{first}

	for p.check(COMMA) && p.peekAt(1).Type == FN {
		p.advance()
		m := p.parseMethod()
		if m == nil {
			return nil
		}
		methods = append(methods, m)
	}

	return methods
}

// parseMember parses the field reference after "self.": a name or a
// decimal tuple index without leading zeros.
func (p *Parser) parseMember() (ast.Member, bool) {
	tok := p.peek()
	switch tok.Type {
	case IDENTIFIER:
		p.advance()
		m := ast.NamedMember(tok.Lexeme)
		m.Pos, m.EndPos = p.makePos(tok), p.makeEndPos(tok)
		return m, true
	case NUMBER:
		idx, err := strconv.Atoi(tok.Lexeme)
		if err != nil || idx < 0 || (len(tok.Lexeme) > 1 && tok.Lexeme[0] == '0') {
			p.errorAtCurrent(errors.ErrorMalformedTarget, "tuple index must be a plain decimal integer")
			return ast.Member{}, false
		}
		p.advance()
		m := ast.IndexMember(idx)
		m.Pos, m.EndPos = p.makePos(tok), p.makeEndPos(tok)
		return m, true
	default:
		p.errorAtCurrent(errors.ErrorMalformedTarget, "expected field name or index after 'self.'")
		return ast.Member{}, false
	}
}
