package parser

import (
	"testing"

	"fwdgen/internal/ast"
	"fwdgen/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, source string) *ast.ForwardDecl {
	t.Helper()
	decl, parseErrors, scanErrors := ParseSource("test.rs", source)
	require.Empty(t, scanErrors, "Should have no scan errors")
	require.Empty(t, parseErrors, "Should have no parse errors")
	require.NotNil(t, decl)
	return decl
}

func TestParseNamedTarget(t *testing.T) {
	decl := parseOK(t, "fn test(self) to self.tester")

	require.Len(t, decl.Methods, 1)
	assert.Equal(t, "test", decl.Methods[0].Name.Value)
	assert.Equal(t, ast.ByValue, decl.Methods[0].Receiver.Kind)
	assert.True(t, decl.Target.Named)
	assert.Equal(t, "tester", decl.Target.Name)
}

func TestParseIndexTarget(t *testing.T) {
	decl := parseOK(t, "fn test(self) to self.42")

	assert.False(t, decl.Target.Named)
	assert.Equal(t, 42, decl.Target.Index)
}

func TestParseReceivers(t *testing.T) {
	tests := []struct {
		source   string
		kind     ast.ReceiverKind
		lifetime string
	}{
		{"fn test(self) to self.a", ast.ByValue, ""},
		{"fn test(mut self) to self.a", ast.ByValueMutable, ""},
		{"fn test(&self) to self.a", ast.ByReference, ""},
		{"fn test(&mut self) to self.a", ast.ByMutableReference, ""},
		{"fn test(&'a self) to self.a", ast.ByReference, "'a"},
		{"fn test(&'a mut self) to self.a", ast.ByMutableReference, "'a"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			decl := parseOK(t, tt.source)
			rcv := decl.Methods[0].Receiver
			assert.Equal(t, tt.kind, rcv.Kind)
			assert.Equal(t, tt.lifetime, rcv.Lifetime)
		})
	}
}

func TestParseParams(t *testing.T) {
	decl := parseOK(t, "fn test(self, arg1: u8, mut arg2: &str,) to self.42")

	params := decl.Methods[0].Params
	require.Len(t, params, 2)
	assert.Equal(t, "arg1", params[0].Pattern.Name.Value)
	assert.Equal(t, "u8", params[0].Type.String())
	assert.True(t, params[1].Pattern.Mut)
	assert.Equal(t, "arg2", params[1].Pattern.Name.Value)
	assert.Equal(t, "&str", params[1].Type.String())
}

func TestParseUnicodeNames(t *testing.T) {
	decl := parseOK(t, "fn tést(self, größe: u8) to self.x")

	assert.Equal(t, "tést", decl.Methods[0].Name.Value)
	assert.Equal(t, "größe", decl.Methods[0].Params[0].Pattern.Name.Value)

	_, parseErrors, scanErrors := ParseSource("test.rs", "fn t©st(self) to self.x")
	require.Len(t, scanErrors, 1)
	assert.Equal(t, "Unexpected character: '©'", scanErrors[0].Message)
	assert.Empty(t, parseErrors)
}

func TestParseParamNamedTo(t *testing.T) {
	decl := parseOK(t, "fn send(&self, to: Address) to self.mailer")

	assert.Equal(t, "to", decl.Methods[0].Params[0].Pattern.Name.Value)
	assert.Equal(t, "mailer", decl.Target.Name)
}

func TestParseReturnTypes(t *testing.T) {
	tests := []string{
		"String",
		"Result<String, Error>",
		"(String, uint)",
		"()",
		"(u8,)",
		"Option<String>",
		"&Option<String>",
		"&mut Option<String>",
		"&'a str",
		"Vec<Vec<u8>>",
		"HashMap<String, Vec<(u8, bool)>>",
		"::std::option::Option<String>",
		"[u8]",
		"[u8; 4]",
		"*const u8",
		"*mut Node",
		"impl Iterator<Item = &'a str> + 'a",
		"Box<dyn Fn(u8, &str) -> bool + Send>",
		"Cow<'static, str>",
		"!",
		"fn(u8) -> bool",
		"fn(x: u8, _: &str)",
		"unsafe fn()",
		"for<'a> fn(&'a str) -> &'a str",
		"Option<<I as Iterator>::Item>",
		"<T>::Output",
		"<Vec<T> as IntoIterator>::IntoIter",
		"[u8; N * 2]",
		"[u8; 4 * (N + 1)]",
		"[u8; {N}]",
		"Box<dyn for<'a> Fn(&'a u8)>",
		"impl for<'a, 'b> FnMut(&'a u8, &'b u8) + Send",
		"Option::<u8>",
		"Vec::<Option::<u8>>",
		"Foo<3, -1, { N + 1 }>",
	}

	for _, want := range tests {
		t.Run(want, func(t *testing.T) {
			decl := parseOK(t, "fn test(&self) -> "+want+" to self.a")
			require.NotNil(t, decl.Methods[0].Return)
			assert.Equal(t, want, decl.Methods[0].Return.String())
		})
	}
}

func TestParseFnPointerParam(t *testing.T) {
	decl := parseOK(t, "fn f(&self, cb: fn(u8) -> bool) to self.x")

	param := decl.Methods[0].Params[0]
	fn, ok := param.Type.(*ast.FnPtrType)
	require.True(t, ok)
	require.Len(t, fn.Inputs, 1)
	assert.Equal(t, "bool", fn.Output.String())
	assert.Equal(t, "cb: fn(u8) -> bool", param.String())
	assert.Equal(t, 17, fn.Pos.Column)
	assert.Equal(t, 31, fn.EndPos.Column)
}

func TestParseQualifiedPath(t *testing.T) {
	decl := parseOK(t, "fn next(&mut self) -> Option<<I as Iterator>::Item> to self.0")

	opt := decl.Methods[0].Return.(*ast.PathType)
	q, ok := opt.LastSegment().Generics[0].(*ast.QualifiedPathType)
	require.True(t, ok)
	assert.Equal(t, "I", q.Self.String())
	assert.Equal(t, "Iterator", q.Trait.String())
	require.Len(t, q.Segments, 1)
	assert.Equal(t, "Item", q.Segments[0].Name.Value)
}

func TestParseTurbofishAndConstArgs(t *testing.T) {
	decl := parseOK(t, "fn f(&self) -> Foo::<3, {N}> to self.x")

	seg := decl.Methods[0].Return.(*ast.PathType).LastSegment()
	assert.True(t, seg.Turbofish)
	require.Len(t, seg.Generics, 2)
	assert.Equal(t, ast.CONST_ARG, seg.Generics[0].NodeType())
	assert.Equal(t, "{N}", seg.Generics[1].String())
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		source  string
		message string
	}{
		{"fn f(&self) -> [u8; ] to self.x", "expected array length"},
		{"fn f(&self) -> [u8; N) to self.x", "expected ']' to close slice type"},
		{"fn f(&self) -> <T as Trait> to self.x", "expected '::' after qualified path"},
		{"fn f(&self) -> <T as Trait::X to self.x", "expected '>' to close qualified path"},
		{"fn f(&self) -> for<'a> Trait to self.x", "expected 'fn' after 'for<...>'"},
		{"fn f(&self) -> for<T> fn() to self.x", "expected lifetime in 'for<...>'"},
		{"fn f(&self) -> fn(u8 to self.x", "expected ')' to close fn pointer arguments"},
		{"fn f(&self) -> Foo<{ N > to self.x", "expected '}' to close const argument"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			decl, parseErrors, _ := ParseSource("test.rs", tt.source)
			assert.Nil(t, decl)
			require.Len(t, parseErrors, 1)
			assert.Equal(t, errors.ErrorMalformedSignature, parseErrors[0].Code)
			assert.Equal(t, tt.message, parseErrors[0].Message)
		})
	}
}

func TestParseNoReturn(t *testing.T) {
	decl := parseOK(t, "fn test(&self) to self.a")
	assert.Nil(t, decl.Methods[0].Return)
}

func TestParseMethodList(t *testing.T) {
	decl := parseOK(t, "fn test_a(self), fn test_b(&self) -> u8, fn test_c(&mut self, x: u8) to self.inner")

	require.Len(t, decl.Methods, 3)
	assert.Equal(t, "test_a", decl.Methods[0].Name.Value)
	assert.Equal(t, "test_b", decl.Methods[1].Name.Value)
	assert.Equal(t, "test_c", decl.Methods[2].Name.Value)
}

func TestParseRoundTrip(t *testing.T) {
	source := "fn get_message(&self) -> String, fn println(&self, msg: impl Into<String>) to self.message"
	decl := parseOK(t, source)

	assert.Equal(t, source, decl.String())

	again := parseOK(t, decl.String())
	assert.True(t, decl.Equal(again))
}

func TestParsePositions(t *testing.T) {
	decl := parseOK(t, "fn test(&self) -> String to self.tester")

	m := decl.Methods[0]
	assert.Equal(t, ast.Position{Filename: "test.rs", Offset: 0, Line: 1, Column: 1}, m.Pos)
	assert.Equal(t, 3, m.Name.Pos.Offset)
	assert.Equal(t, 24, m.EndPos.Offset)
	assert.Equal(t, 33, decl.Target.Pos.Offset)
	assert.Equal(t, 39, decl.EndPos.Offset)
}

func TestParseSourceAtBase(t *testing.T) {
	decl, parseErrors, _ := ParseSourceAt("lib.rs", "fn test(self) ot self.a", Position{Line: 3, Column: 10, Offset: 40})
	assert.Nil(t, decl)
	require.Len(t, parseErrors, 1)
	assert.Equal(t, Position{Line: 3, Column: 24, Offset: 54}, parseErrors[0].Position)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		code    string
		message string
	}{
		{"missing to", "fn test(self) ot self.tester", errors.ErrorMissingTo, MsgMissingTo},
		{"missing to and params", "fn ot self.tester", errors.ErrorMissingTo, MsgMissingTo},
		{"nothing after list", "fn test(self)", errors.ErrorMissingTo, MsgMissingTo},
		{"trailing comma before to", "fn test(self), to self.a", errors.ErrorMissingTo, MsgMissingTo},
		{"not a method list", "invalid", errors.ErrorMalformedMethodList, MsgMalformedMethodList},
		{"empty", "", errors.ErrorMalformedMethodList, MsgMalformedMethodList},
		{"no receiver", "fn test() to self.a", errors.ErrorMissingReceiver, MsgMissingReceiver},
		{"typed first argument", "fn test(x: u8) to self.a", errors.ErrorMissingReceiver, MsgMissingReceiver},
		{"late receiver", "fn test(&self, self) to self.a", errors.ErrorMissingReceiver, "the receiver must be the first parameter"},
		{"typed receiver", "fn test(self: Box<Self>) to self.a", errors.ErrorMissingReceiver, "typed receivers such as 'self: Box<Self>' cannot be forwarded"},
		{"wildcard", "fn test(&self, _: u8) to self.a", errors.ErrorMalformedSignature, "parameters must be named to be forwarded; '_' cannot be passed on"},
		{"missing name", "fn (self) to self.a", errors.ErrorMalformedSignature, "expected method name after 'fn'"},
		{"missing paren", "fn test self) to self.a", errors.ErrorMalformedSignature, "expected '(' after method name"},
		{"missing colon", "fn test(&self, x u8) to self.a", errors.ErrorMalformedSignature, "expected ':' after parameter name"},
		{"bad type", "fn test(&self) -> , to self.a", errors.ErrorMalformedSignature, "expected type"},
		{"unclosed generics", "fn test(&self) -> Vec<u8 to self.a", errors.ErrorMalformedSignature, "expected '>' to close generic arguments"},
		{"missing self", "fn test(&self) to tester", errors.ErrorMalformedTarget, "expected 'self' after 'to'"},
		{"missing dot", "fn test(&self) to self tester", errors.ErrorMalformedTarget, "expected '.' after 'self'"},
		{"missing member", "fn test(&self) to self.", errors.ErrorMalformedTarget, "expected field name or index after 'self.'"},
		{"suffixed index", "fn test(&self) to self.0u8", errors.ErrorMalformedTarget, "tuple index must be a plain decimal integer"},
		{"zero padded index", "fn test(&self) to self.007", errors.ErrorMalformedTarget, "tuple index must be a plain decimal integer"},
		{"chained target", "fn test(&self) to self.a.b", errors.ErrorUnexpectedToken, "unexpected token after delegation target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl, parseErrors, scanErrors := ParseSource("test.rs", tt.source)
			assert.Nil(t, decl, "No partial declaration on error")
			assert.Empty(t, scanErrors)
			require.Len(t, parseErrors, 1, "Parser stops at the first error")
			assert.Equal(t, tt.code, parseErrors[0].Code)
			assert.Equal(t, tt.message, parseErrors[0].Message)
		})
	}
}

func TestParseReturnsErrorText(t *testing.T) {
	_, err := Parse("fn test(self) ot self.tester")
	require.Error(t, err)
	assert.Equal(t, "malformed delegation: missing 'to' between delegate and target", err.Error())

	_, err = Parse("fn test()")
	require.Error(t, err)
	assert.Equal(t, "method must have a receiver to be forwarded", err.Error())

	decl, err := Parse("fn test(self) to self.0")
	require.NoError(t, err)
	assert.Equal(t, 0, decl.Target.Index)
}

func TestParseScanErrorStopsParse(t *testing.T) {
	res := ParseSourceWithTokens("test.rs", "fn test(&self) -> u8 # to self.a", Position{Line: 1, Column: 1})

	assert.Nil(t, res.Decl)
	assert.True(t, res.HasErrors())
	assert.Len(t, res.ScanErrors, 1)
	assert.Empty(t, res.ParseErrors)

	diags := res.Diagnostics("test.rs")
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrorInvalidCharacter, diags[0].Code)
	assert.Equal(t, "test.rs", diags[0].Position.Filename)
}

func TestParseResultKeepsTokens(t *testing.T) {
	res := ParseSourceWithTokens("test.rs", "fn test(self) to self.a", Position{Line: 1, Column: 1})

	require.False(t, res.HasErrors())
	assert.NoError(t, res.Err())
	assert.Equal(t, FN, res.Tokens[0].Type)
	assert.Equal(t, EOF, res.Tokens[len(res.Tokens)-1].Type)
}
