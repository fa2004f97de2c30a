package parser

import (
	"strings"

	"fwdgen/internal/ast"
	"fwdgen/internal/errors"
)

// parseType parses a type expression. It returns nil after recording an error.
func (p *Parser) parseType() ast.Type {
	switch p.peek().Type {
	case AMPERSAND:
		return p.parseRefType()
	case STAR:
		return p.parsePtrType()
	case LEFT_PAREN:
		return p.parseTupleType()
	case LEFT_BRACKET:
		return p.parseSliceOrArrayType()
	case IMPL, DYN:
		return p.parseTraitObjectType()
	case BANG:
		tok := p.advance()
		return &ast.NeverType{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}
	case FN:
		return p.parseFnPtrType(p.peek(), nil)
	case LESS:
		return p.parseQualifiedPathType()
	case IDENTIFIER, DOUBLE_COLON:
		switch {
		case p.startsBinder():
			return p.parseBoundFnPtrType()
		case p.checkContextual("unsafe") && p.peekAt(1).Type == FN:
			return p.parseFnPtrType(p.peek(), nil)
		}
		if path := p.parsePathType(); path != nil {
			return path
		}
		return nil
	default:
		p.errorAtCurrent(errors.ErrorMalformedSignature, "expected type")
		return nil
	}
}

func (p *Parser) parseRefType() ast.Type {
	start := p.advance() // &
	ref := &ast.RefType{Pos: p.makePos(start)}

	if p.match(LIFETIME) {
		ref.Lifetime = p.previous().Lexeme
	}
	ref.Mut = p.match(MUT)

	elem := p.parseType()
	if elem == nil {
		return nil
	}
	ref.Elem = elem
	ref.EndPos = elem.NodeEndPos()
	return ref
}

func (p *Parser) parsePtrType() ast.Type {
	start := p.advance() // *
	ptr := &ast.PtrType{Pos: p.makePos(start)}

	switch {
	case p.match(MUT):
		ptr.Mut = true
	case p.match(CONST):
	default:
		p.errorAtCurrent(errors.ErrorMalformedSignature, "expected 'const' or 'mut' after '*'")
		return nil
	}

	elem := p.parseType()
	if elem == nil {
		return nil
	}
	ptr.Elem = elem
	ptr.EndPos = elem.NodeEndPos()
	return ptr
}

// parseTupleType covers "()", "(T)", "(T,)" and "(A, B, ...)".
func (p *Parser) parseTupleType() ast.Type {
	start := p.advance() // (
	tuple := &ast.TupleType{Pos: p.makePos(start)}

	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		tuple.Elems = append(tuple.Elems, elem)
		tuple.Trailing = false

		if !p.match(COMMA) {
			break
		}
		tuple.Trailing = true
	}

	if _, ok := p.consume(RIGHT_PAREN, errors.ErrorMalformedSignature, "expected ')' to close tuple type"); !ok {
		return nil
	}
	tuple.EndPos = p.endOfPrevious()
	return tuple
}

func (p *Parser) parseSliceOrArrayType() ast.Type {
	start := p.advance() // [

	elem := p.parseType()
	if elem == nil {
		return nil
	}

	var (
		length  string
		isArray bool
	)
	if p.match(SEMICOLON) {
		isArray = true
		run := p.balancedRun()
		if len(run) == 0 {
			p.errorAtCurrent(errors.ErrorMalformedSignature, "expected array length")
			return nil
		}
		length = joinTokens(run)
	}

	if _, ok := p.consume(RIGHT_BRACKET, errors.ErrorMalformedSignature, "expected ']' to close slice type"); !ok {
		return nil
	}

	if isArray {
		return &ast.ArrayType{Pos: p.makePos(start), EndPos: p.endOfPrevious(), Elem: elem, Len: length}
	}
	return &ast.SliceType{Pos: p.makePos(start), EndPos: p.endOfPrevious(), Elem: elem}
}

// parseTraitObjectType parses "impl A + B" and "dyn A + 'a".
func (p *Parser) parseTraitObjectType() ast.Type {
	start := p.advance() // impl | dyn
	obj := &ast.TraitObjectType{Pos: p.makePos(start), Dyn: start.Type == DYN}

	for {
		if p.match(LIFETIME) {
			tok := p.previous()
			obj.Bounds = append(obj.Bounds, &ast.LifetimeArg{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Name: tok.Lexeme})
		} else if p.startsBinder() {
			forTok := p.peek()
			lifetimes, ok := p.parseBinder()
			if !ok {
				return nil
			}
			path := p.parsePathType()
			if path == nil {
				return nil
			}
			path.Pos, path.Lifetimes = p.makePos(forTok), lifetimes
			obj.Bounds = append(obj.Bounds, path)
		} else if p.check(IDENTIFIER) || p.check(DOUBLE_COLON) {
			path := p.parsePathType()
			if path == nil {
				return nil
			}
			obj.Bounds = append(obj.Bounds, path)
		} else {
			p.errorAtCurrent(errors.ErrorMalformedSignature, "expected trait bound after '"+start.Lexeme+"'")
			return nil
		}

		if !p.match(PLUS) {
			break
		}
	}

	obj.EndPos = p.endOfPrevious()
	return obj
}

func (p *Parser) parsePathType() *ast.PathType {
	start := p.peek()
	path := &ast.PathType{Pos: p.makePos(start), Global: p.match(DOUBLE_COLON)}

	for {
		seg := p.parsePathSegment()
		if seg == nil {
			return nil
		}
		path.Segments = append(path.Segments, seg)

		if !p.match(DOUBLE_COLON) {
			break
		}
	}

	path.EndPos = p.endOfPrevious()
	return path
}

// fnTraits take parenthesized sugar instead of angle-bracketed generics.
var fnTraits = map[string]bool{"Fn": true, "FnMut": true, "FnOnce": true}

func (p *Parser) parsePathSegment() *ast.PathSegment {
	name, ok := p.consumeIdent(errors.ErrorMalformedSignature, "expected type name")
	if !ok {
		return nil
	}
	seg := &ast.PathSegment{Pos: name.Pos, Name: name}

	switch {
	case p.check(DOUBLE_COLON) && p.peekAt(1).Type == LESS:
		p.advance() // ::
		generics, ok := p.parseGenericArgs()
		if !ok {
			return nil
		}
		seg.Generics, seg.Turbofish = generics, true
	case p.check(LESS):
		generics, ok := p.parseGenericArgs()
		if !ok {
			return nil
		}
		seg.Generics = generics
	case p.check(LEFT_PAREN) && fnTraits[name.Value]:
		if !p.parseFnSugar(seg) {
			return nil
		}
	}

	seg.EndPos = p.endOfPrevious()
	return seg
}

func (p *Parser) parseGenericArgs() ([]ast.GenericArg, bool) {
	p.advance() // <
	var args []ast.GenericArg

	for !p.check(GREATER) && !p.isAtEnd() {
		arg := p.parseGenericArg()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)

		if !p.match(COMMA) {
			break
		}
	}

	if _, ok := p.consume(GREATER, errors.ErrorMalformedSignature, "expected '>' to close generic arguments"); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseGenericArg() ast.GenericArg {
	tok := p.peek()

	switch {
	case tok.Type == LIFETIME:
		p.advance()
		return &ast.LifetimeArg{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Name: tok.Lexeme}
	case tok.Type == IDENTIFIER && p.peekAt(1).Type == EQUAL:
		name := p.makeIdent(p.advance())
		p.advance() // =
		typ := p.parseType()
		if typ == nil {
			return nil
		}
		return &ast.BindingArg{Pos: name.Pos, EndPos: typ.NodeEndPos(), Name: name, Type: typ}
	case tok.Type == NUMBER:
		p.advance()
		return &ast.ConstArg{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: tok.Lexeme}
	case tok.Type == MINUS && p.peekAt(1).Type == NUMBER:
		p.advance()
		num := p.advance()
		return &ast.ConstArg{Pos: p.makePos(tok), EndPos: p.makeEndPos(num), Value: "-" + num.Lexeme}
	case tok.Type == LEFT_BRACE:
		p.advance()
		run := append([]Token{tok}, p.balancedRun()...)
		closing, ok := p.consume(RIGHT_BRACE, errors.ErrorMalformedSignature, "expected '}' to close const argument")
		if !ok {
			return nil
		}
		run = append(run, closing)
		return &ast.ConstArg{Pos: p.makePos(tok), EndPos: p.endOfPrevious(), Value: joinTokens(run)}
	}

	typ := p.parseType()
	if typ == nil {
		return nil
	}
	return typ.(ast.GenericArg)
}

// parseFnSugar parses "(A, B) -> C" after Fn, FnMut or FnOnce.
func (p *Parser) parseFnSugar(seg *ast.PathSegment) bool {
	p.advance() // (
	seg.FnSugar = true

	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		in := p.parseType()
		if in == nil {
			return false
		}
		seg.Inputs = append(seg.Inputs, in)

		if !p.match(COMMA) {
			break
		}
	}

	if _, ok := p.consume(RIGHT_PAREN, errors.ErrorMalformedSignature, "expected ')' to close Fn arguments"); !ok {
		return false
	}

	if p.match(ARROW) {
		out := p.parseType()
		if out == nil {
			return false
		}
		seg.Output = out
	}
	return true
}

// parseQualifiedPathType parses "<T as Trait>::Name" and "<T>::Name".
func (p *Parser) parseQualifiedPathType() ast.Type {
	start := p.advance() // <
	q := &ast.QualifiedPathType{Pos: p.makePos(start)}

	self := p.parseType()
	if self == nil {
		return nil
	}
	q.Self = self

	if p.checkContextual("as") {
		p.advance()
		trait := p.parsePathType()
		if trait == nil {
			return nil
		}
		q.Trait = trait
	}

	if _, ok := p.consume(GREATER, errors.ErrorMalformedSignature, "expected '>' to close qualified path"); !ok {
		return nil
	}
	if _, ok := p.consume(DOUBLE_COLON, errors.ErrorMalformedSignature, "expected '::' after qualified path"); !ok {
		return nil
	}

	for {
		seg := p.parsePathSegment()
		if seg == nil {
			return nil
		}
		q.Segments = append(q.Segments, seg)

		if !p.match(DOUBLE_COLON) {
			break
		}
	}

	q.EndPos = p.endOfPrevious()
	return q
}

// parseBoundFnPtrType parses a function pointer behind a "for<...>" binder.
func (p *Parser) parseBoundFnPtrType() ast.Type {
	start := p.peek()
	lifetimes, ok := p.parseBinder()
	if !ok {
		return nil
	}
	if !p.check(FN) && !p.checkContextual("unsafe") {
		p.errorAtCurrent(errors.ErrorMalformedSignature, "expected 'fn' after 'for<...>'")
		return nil
	}
	return p.parseFnPtrType(start, lifetimes)
}

// parseFnPtrType parses "unsafe fn(A, name: B) -> C"; start is the first
// token of the type, which may precede the "fn".
func (p *Parser) parseFnPtrType(start Token, lifetimes []string) ast.Type {
	fn := &ast.FnPtrType{Pos: p.makePos(start), Lifetimes: lifetimes}

	if p.checkContextual("unsafe") {
		p.advance()
		fn.Unsafe = true
	}
	if _, ok := p.consume(FN, errors.ErrorMalformedSignature, "expected 'fn'"); !ok {
		return nil
	}
	if _, ok := p.consume(LEFT_PAREN, errors.ErrorMalformedSignature, "expected '(' after 'fn'"); !ok {
		return nil
	}

	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		var arg ast.FnPtrArg
		if p.check(IDENTIFIER) && p.peekAt(1).Type == COLON {
			arg.Name = p.makeIdent(p.advance())
			p.advance() // :
		}
		typ := p.parseType()
		if typ == nil {
			return nil
		}
		arg.Type = typ
		fn.Inputs = append(fn.Inputs, arg)

		if !p.match(COMMA) {
			break
		}
	}

	if _, ok := p.consume(RIGHT_PAREN, errors.ErrorMalformedSignature, "expected ')' to close fn pointer arguments"); !ok {
		return nil
	}
	fn.EndPos = p.endOfPrevious()

	if p.match(ARROW) {
		out := p.parseType()
		if out == nil {
			return nil
		}
		fn.Output = out
		fn.EndPos = out.NodeEndPos()
	}
	return fn
}

// startsBinder reports whether a "for<...>" lifetime binder starts here.
func (p *Parser) startsBinder() bool {
	return p.checkContextual("for") && p.peekAt(1).Type == LESS
}

func (p *Parser) parseBinder() ([]string, bool) {
	p.advance() // for
	p.advance() // <

	var lifetimes []string
	for !p.check(GREATER) && !p.isAtEnd() {
		tok, ok := p.consume(LIFETIME, errors.ErrorMalformedSignature, "expected lifetime in 'for<...>'")
		if !ok {
			return nil, false
		}
		lifetimes = append(lifetimes, tok.Lexeme)

		if !p.match(COMMA) {
			break
		}
	}

	if _, ok := p.consume(GREATER, errors.ErrorMalformedSignature, "expected '>' to close 'for<...>'"); !ok {
		return nil, false
	}
	return lifetimes, true
}

// balancedRun consumes tokens up to the first closing bracket at nesting
// depth zero, which is left unconsumed. Used for const expressions.
func (p *Parser) balancedRun() []Token {
	var run []Token
	depth := 0

	for !p.isAtEnd() {
		switch p.peek().Type {
		case LEFT_PAREN, LEFT_BRACKET, LEFT_BRACE:
			depth++
		case RIGHT_PAREN, RIGHT_BRACKET, RIGHT_BRACE:
			if depth == 0 {
				return run
			}
			depth--
		}
		run = append(run, p.advance())
	}
	return run
}

// joinTokens renders a token run, separating tokens by one space where the
// source had whitespace between them.
func joinTokens(run []Token) string {
	var b strings.Builder

	for i, tok := range run {
		if i > 0 {
			prev := run[i-1]
			if prev.Position.Offset+len(prev.Lexeme) != tok.Position.Offset {
				b.WriteByte(' ')
			}
		}
		b.WriteString(tok.Lexeme)
	}

	return b.String()
}
