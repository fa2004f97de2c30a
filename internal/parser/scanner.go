package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

// Scanner turns the body of a forwarding declaration into tokens.
// Comments and whitespace are dropped.
type Scanner struct {
	source      string
	tokens      []Token
	start       int
	current     int
	line        int
	startColumn int
	column      int
	base        int // offset of source[0] in the enclosing file
	errors      []ScanError
}

type ScanError struct {
	Message  string
	Position Position // line, column, offset
	Length   int      // optional: how many characters it covers
}

func (e ScanError) Error() string {
	return e.Message
}

func NewScanner(source string) *Scanner {
	return NewScannerAt(source, Position{Line: 1, Column: 1})
}

// NewScannerAt creates a scanner whose first character sits at pos, so that
// token positions refer to the enclosing file rather than to source itself.
func NewScannerAt(source string, pos Position) *Scanner {
	if pos.Line < 1 {
		pos.Line = 1
	}
	if pos.Column < 1 {
		pos.Column = 1
	}
	return &Scanner{
		source: source,
		line:   pos.Line,
		column: pos.Column,
		base:   pos.Offset,
	}
}

func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.startColumn = s.column
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Position: Position{Line: s.line, Column: s.column, Offset: s.base + s.current}})
	return s.tokens
}

// Errors returns the problems found during the last ScanTokens call.
func (s *Scanner) Errors() []ScanError {
	return s.errors
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	// Simple single-character tokens
	case '(':
		s.addToken(LEFT_PAREN)
	case ')':
		s.addToken(RIGHT_PAREN)
	case '{':
		s.addToken(LEFT_BRACE)
	case '}':
		s.addToken(RIGHT_BRACE)
	case '[':
		s.addToken(LEFT_BRACKET)
	case ']':
		s.addToken(RIGHT_BRACKET)
	case ',':
		s.addToken(COMMA)
	case '.':
		s.addToken(DOT)
	case ';':
		s.addToken(SEMICOLON)
	case '+':
		s.addToken(PLUS)
	case '*':
		s.addToken(STAR)
	case '!':
		s.addToken(BANG)
	case '=':
		s.addToken(EQUAL)

	// Angle brackets and '&' are never merged ("Vec<Vec<u8>>", "&&str")
	case '<':
		s.addToken(LESS)
	case '>':
		s.addToken(GREATER)
	case '&':
		s.addToken(AMPERSAND)

	// Operators with potential multi-character variants
	case '-':
		s.scanMinusOperator()
	case ':':
		s.scanColonOperator()
	case '/':
		s.scanSlashOperator()
	case '\'':
		s.scanLifetime()

	// Whitespace (ignored)
	case ' ', '\r', '\t':
	case '\n':
		// Handled in advance()

	default:
		s.scanDefault(c)
	}
}

func (s *Scanner) scanMinusOperator() {
	if s.matchNext('>') {
		s.addToken(ARROW)
	} else {
		s.addToken(MINUS)
	}
}

func (s *Scanner) scanColonOperator() {
	if s.matchNext(':') {
		s.addToken(DOUBLE_COLON)
	} else {
		s.addToken(COLON)
	}
}

func (s *Scanner) scanSlashOperator() {
	if s.matchNext('/') {
		s.skipSingleLineComment()
	} else if s.matchNext('*') {
		s.skipBlockComment()
	} else {
		s.reportError("Unexpected character: '/'")
	}
}

func (s *Scanner) scanDefault(c byte) {
	if isDigit(c) {
		s.scanNumber()
		return
	}
	if c < utf8.RuneSelf {
		if isAlpha(c) {
			s.scanIdentifier()
		} else {
			s.reportError(fmt.Sprintf("Unexpected character: %q", c))
		}
		return
	}

	// Multi-byte character: consume the whole rune before deciding.
	r, size := utf8.DecodeRuneInString(s.source[s.start:])
	s.skipBytes(size - 1)
	if r != utf8.RuneError && isIdentStart(r) {
		s.scanIdentifier()
		return
	}
	s.reportError(fmt.Sprintf("Unexpected character: %q", r))
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

// skipBytes advances over n bytes that belong to the current rune.
func (s *Scanner) skipBytes(n int) {
	s.current += n
	s.column += n
}

// peekRune decodes the rune at the cursor; size is 0 at the end of input.
func (s *Scanner) peekRune() (rune, int) {
	if s.isAtEnd() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s.source[s.current:])
}

// skipIdentRunes consumes identifier-continue characters.
func (s *Scanner) skipIdentRunes() {
	for {
		r, size := s.peekRune()
		if size == 0 || r == utf8.RuneError || !isIdentContinue(r) {
			return
		}
		if size == 1 {
			s.advance()
		} else {
			s.skipBytes(size)
		}
	}
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) addToken(tokenType TokenType) {
	text := s.source[s.start:s.current]
	s.tokens = append(s.tokens, Token{
		Type:   tokenType,
		Lexeme: text,
		Position: Position{
			Line:   s.line,
			Column: s.startColumn,
			Offset: s.base + s.start,
		},
	})
}

func (s *Scanner) reportError(message string) {
	s.errors = append(s.errors, ScanError{
		Message:  message,
		Position: Position{Line: s.line, Column: s.startColumn, Offset: s.base + s.start},
		Length:   s.current - s.start,
	})
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func (s *Scanner) scanIdentifier() {
	s.skipIdentRunes()
	text := s.source[s.start:s.current]

	s.addToken(lookupIdentifier(text))
}

// scanNumber accepts literal suffixes ("4usize"); the parser decides whether
// a plain decimal is required.
func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) || isAlpha(s.peek()) {
		s.advance()
	}
	s.addToken(NUMBER)
}

func (s *Scanner) scanLifetime() {
	if r, size := s.peekRune(); size == 0 || !isIdentStart(r) {
		s.reportError("Invalid lifetime: expected identifier after '\\''")
		return
	}
	s.skipIdentRunes()
	s.addToken(LIFETIME)
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return IDENTIFIER
}

func (s *Scanner) skipSingleLineComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *Scanner) skipBlockComment() {
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance() // *
			s.advance() // /
			return
		}
		s.advance()
	}
	s.reportError("Unterminated block comment.")
}
