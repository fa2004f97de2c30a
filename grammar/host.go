package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	symbols        = HostLexer.Symbols()
	identType      = symbols["Ident"]
	punctType      = symbols["Punct"]
	whitespaceType = symbols["Whitespace"]
	commentTypes   = map[lexer.TokenType]bool{
		symbols["Comment"]:      true,
		symbols["BlockComment"]: true,
	}
)

var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

// HostFile is a tokenized source file. Whitespace and comments are dropped;
// literals are kept whole so delimiters inside them are never counted.
type HostFile struct {
	Filename string
	Source   string
	Tokens   []lexer.Token
}

// Invocation is one "name!(...)" call found in a host file.
type Invocation struct {
	Name  string
	Start lexer.Position // first character of the name, or of its path prefix
	Open  lexer.Token    // opening delimiter
	Close lexer.Token    // closing delimiter
	End   int            // offset just past the invocation and a trailing ';'
}

// Body returns the text between the delimiters.
func (inv Invocation) Body(source string) string {
	return source[inv.Open.Pos.Offset+1 : inv.Close.Pos.Offset]
}

// BodyStart is the position of the first character after the opening delimiter.
func (inv Invocation) BodyStart() lexer.Position {
	pos := inv.Open.Pos
	pos.Offset++
	pos.Column++
	return pos
}

// Contains reports whether offset falls inside the invocation text.
func (inv Invocation) Contains(offset int) bool {
	return offset >= inv.Start.Offset && offset < inv.End
}

// UnbalancedError reports an invocation whose delimiters do not pair up.
type UnbalancedError struct {
	Name string
	Open lexer.Token
	Pos  lexer.Position // where the mismatch was detected
	Msg  string
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Msg)
}

// LexHost tokenizes source with HostLexer.
func LexHost(filename, source string) (*HostFile, error) {
	lex, err := HostLexer.Lex(filename, strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	file := &HostFile{Filename: filename, Source: source}
	for _, tok := range all {
		if tok.EOF() || tok.Type == whitespaceType || commentTypes[tok.Type] {
			continue
		}
		file.Tokens = append(file.Tokens, tok)
	}
	return file, nil
}

// LexErrorPosition extracts the position from an error returned by LexHost.
func LexErrorPosition(err error) (lexer.Position, bool) {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return lerr.Pos, true
	}
	return lexer.Position{}, false
}

// FindInvocations returns, in source order, every invocation of one of
// names. Invocations nested inside another match are not reported.
func (f *HostFile) FindInvocations(names map[string]bool) ([]Invocation, []*UnbalancedError) {
	var (
		found []Invocation
		errs  []*UnbalancedError
	)

	for i := 0; i+2 < len(f.Tokens); i++ {
		name, bang, open := f.Tokens[i], f.Tokens[i+1], f.Tokens[i+2]
		if name.Type != identType || !names[name.Value] {
			continue
		}
		if !f.isPunct(bang, "!") {
			continue
		}
		if _, ok := closers[open.Value]; !ok || open.Type != punctType {
			continue
		}

		closeIdx, err := f.matchDelimiter(i+2, name.Value)
		if err != nil {
			errs = append(errs, err)
			// Nothing after an unclosed delimiter can be trusted.
			if closeIdx < 0 {
				break
			}
			i = closeIdx
			continue
		}

		inv := Invocation{
			Name:  name.Value,
			Start: f.pathStart(i),
			Open:  open,
			Close: f.Tokens[closeIdx],
			End:   f.Tokens[closeIdx].Pos.Offset + 1,
		}
		if closeIdx+1 < len(f.Tokens) && f.isPunct(f.Tokens[closeIdx+1], ";") {
			inv.End = f.Tokens[closeIdx+1].Pos.Offset + 1
			closeIdx++
		}
		found = append(found, inv)
		i = closeIdx
	}

	return found, errs
}

// matchDelimiter returns the index of the token closing the delimiter at
// openIdx. On a mismatch it returns the offending index, and -1 when the
// file ends first.
func (f *HostFile) matchDelimiter(openIdx int, name string) (int, *UnbalancedError) {
	open := f.Tokens[openIdx]
	stack := []string{closers[open.Value]}

	for j := openIdx + 1; j < len(f.Tokens); j++ {
		tok := f.Tokens[j]
		if tok.Type != punctType {
			continue
		}
		if closer, ok := closers[tok.Value]; ok {
			stack = append(stack, closer)
			continue
		}
		if tok.Value != ")" && tok.Value != "]" && tok.Value != "}" {
			continue
		}

		want := stack[len(stack)-1]
		if tok.Value != want {
			return j, &UnbalancedError{
				Name: name,
				Open: open,
				Pos:  tok.Pos,
				Msg:  fmt.Sprintf("mismatched '%s' in %s! invocation, expected '%s'", tok.Value, name, want),
			}
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return j, nil
		}
	}

	return -1, &UnbalancedError{
		Name: name,
		Open: open,
		Pos:  open.Pos,
		Msg:  fmt.Sprintf("unterminated %s! invocation, '%s' is never closed", name, open.Value),
	}
}

// pathStart extends an invocation backwards over a "a::b::" path prefix.
func (f *HostFile) pathStart(nameIdx int) lexer.Position {
	start := nameIdx
	for start >= 3 &&
		f.isPunct(f.Tokens[start-1], ":") && f.isPunct(f.Tokens[start-2], ":") &&
		f.adjacent(f.Tokens[start-2], f.Tokens[start-1]) &&
		f.Tokens[start-3].Type == identType {
		start -= 3
	}
	// A leading "::" on its own, as in "::fwdgen::fwd!".
	if start >= 2 && f.isPunct(f.Tokens[start-1], ":") && f.isPunct(f.Tokens[start-2], ":") &&
		f.adjacent(f.Tokens[start-2], f.Tokens[start-1]) {
		start -= 2
	}
	return f.Tokens[start].Pos
}

func (f *HostFile) isPunct(tok lexer.Token, value string) bool {
	return tok.Type == punctType && tok.Value == value
}

// adjacent reports whether b starts right where a ends.
func (f *HostFile) adjacent(a, b lexer.Token) bool {
	return a.Pos.Offset+len(a.Value) == b.Pos.Offset
}

// LineIndent returns the leading whitespace of the line containing offset.
func LineIndent(source string, offset int) string {
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	end := lineStart
	for end < len(source) && (source[end] == ' ' || source[end] == '\t') {
		end++
	}
	return source[lineStart:end]
}
