package parser

import (
	"fwdgen/internal/ast"
	"fwdgen/internal/errors"
)

func (p *Parser) parseMethod() *ast.Method {
	startToken := p.advance() // fn

	name, ok := p.consumeIdent(errors.ErrorMalformedSignature, "expected method name after 'fn'")
	if !ok {
		return nil
	}

	// "fn name self.field": the parameter list and 'to' are both missing,
	// which reads as a delegation without its 'to'.
	if p.check(SELF) && p.peekAt(1).Type == DOT {
		p.errorAtCurrent(errors.ErrorMissingTo, MsgMissingTo)
		return nil
	}

	if _, ok := p.consume(LEFT_PAREN, errors.ErrorMalformedSignature, "expected '(' after method name"); !ok {
		return nil
	}

	if !p.atReceiver() {
		p.errorAtCurrent(errors.ErrorMissingReceiver, MsgMissingReceiver)
		return nil
	}
	rcv := p.parseReceiver()
	if p.check(COLON) {
		p.errorAtCurrent(errors.ErrorMissingReceiver, "typed receivers such as 'self: Box<Self>' cannot be forwarded")
		return nil
	}

	params, ok := p.parseParams()
	if !ok {
		return nil
	}

	closeParen, ok := p.consume(RIGHT_PAREN, errors.ErrorMalformedSignature, "expected ')' after parameter list")
	if !ok {
		return nil
	}
	end := p.makeEndPos(closeParen)

	var ret ast.Type
	if p.match(ARROW) {
		ret = p.parseType()
		if ret == nil {
			return nil
		}
		end = ret.NodeEndPos()
	}

	return &ast.Method{
		Pos:      p.makePos(startToken),
		EndPos:   end,
		Name:     name,
		Receiver: rcv,
		Params:   params,
		Return:   ret,
	}
}

// atReceiver reports whether the upcoming tokens spell one of
// self, mut self, &self, &mut self, &'a self, &'a mut self.
func (p *Parser) atReceiver() bool {
	switch p.peek().Type {
	case SELF:
		return true
	case MUT:
		return p.peekAt(1).Type == SELF
	case AMPERSAND:
		n := 1
		if p.peekAt(n).Type == LIFETIME {
			n++
		}
		if p.peekAt(n).Type == MUT {
			n++
		}
		return p.peekAt(n).Type == SELF
	}
	return false
}

// parseReceiver expects atReceiver to hold.
func (p *Parser) parseReceiver() ast.Receiver {
	start := p.peek()
	rcv := ast.Receiver{Pos: p.makePos(start), Kind: ast.ByValue}

	if p.match(AMPERSAND) {
		rcv.Kind = ast.ByReference
		if p.match(LIFETIME) {
			rcv.Lifetime = p.previous().Lexeme
		}
		if p.match(MUT) {
			rcv.Kind = ast.ByMutableReference
		}
	} else if p.match(MUT) {
		rcv.Kind = ast.ByValueMutable
	}

	p.advance() // self
	rcv.EndPos = p.endOfPrevious()
	return rcv
}

// parseParams parses the typed parameters after the receiver, allowing a
// trailing comma.
func (p *Parser) parseParams() ([]*ast.Param, bool) {
	var params []*ast.Param

	for p.match(COMMA) {
		if p.check(RIGHT_PAREN) {
			break
		}
		if p.atReceiver() {
			p.errorAtCurrent(errors.ErrorMissingReceiver, "the receiver must be the first parameter")
			return nil, false
		}

		param := p.parseParam()
		if param == nil {
			return nil, false
		}
		params = append(params, param)
	}

	return params, true
}

func (p *Parser) parseParam() *ast.Param {
	start := p.peek()
	pattern := ast.Pattern{Pos: p.makePos(start)}

	if p.match(MUT) {
		pattern.Mut = true
	}

	if p.checkContextual("_") {
		p.errorAtCurrent(errors.ErrorMalformedSignature, "parameters must be named to be forwarded; '_' cannot be passed on")
		return nil
	}
	name, ok := p.consumeIdent(errors.ErrorMalformedSignature, "expected parameter name")
	if !ok {
		return nil
	}
	pattern.Name = name
	pattern.EndPos = name.EndPos

	if _, ok := p.consume(COLON, errors.ErrorMalformedSignature, "expected ':' after parameter name"); !ok {
		return nil
	}

	typ := p.parseType()
	if typ == nil {
		return nil
	}

	return &ast.Param{
		Pos:     p.makePos(start),
		EndPos:  typ.NodeEndPos(),
		Pattern: pattern,
		Type:    typ,
	}
}
