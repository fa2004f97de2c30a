package parser

import "fwdgen/internal/ast"

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances over a token of the given type. On mismatch it records
// the error and leaves the cursor where it is.
func (p *Parser) consume(tt TokenType, code, message string) (Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	p.errorAtCurrent(code, message)
	return Token{Type: ILLEGAL, Position: p.peek().Position}, false
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

// peekAt looks n tokens past the current one without consuming anything.
// Looking past the end yields the EOF token.
func (p *Parser) peekAt(n int) Token {
	idx := p.current + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

// checkContextual reports whether the current token is the identifier word.
func (p *Parser) checkContextual(word string) bool {
	return p.check(IDENTIFIER) && p.peek().Lexeme == word
}

func (p *Parser) errorAtCurrent(code, message string) {
	tok := p.peek()
	length := len(tok.Lexeme)
	if length == 0 {
		length = 1
	}
	p.errors = append(p.errors, ParseError{
		Code:     code,
		Message:  message,
		Position: tok.Position,
		Length:   length,
	})
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

func (p *Parser) makeEndPos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset + len(tok.Lexeme),
		Line:     tok.Position.Line,
		Column:   tok.Position.Column + len(tok.Lexeme),
	}
}

// endOfPrevious is the end position of the most recently consumed token.
func (p *Parser) endOfPrevious() ast.Position {
	return p.makeEndPos(p.previous())
}

// makeIdent creates an ast.Ident from a token
func (p *Parser) makeIdent(tok Token) ast.Ident {
	return ast.Ident{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  tok.Lexeme,
	}
}

// consumeIdent consumes an identifier token and returns an ast.Ident
func (p *Parser) consumeIdent(code, message string) (ast.Ident, bool) {
	tok, ok := p.consume(IDENTIFIER, code, message)
	if !ok {
		return ast.Ident{}, false
	}
	return p.makeIdent(tok), true
}
