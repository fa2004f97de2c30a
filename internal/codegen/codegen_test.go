package codegen

import (
	"strings"
	"testing"

	"fwdgen/internal/ast"
	"fwdgen/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string) *ast.ForwardDecl {
	t.Helper()
	decl, err := parser.Parse(source)
	require.NoError(t, err)
	return decl
}

func TestEmitPrivate(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			"named member",
			"fn test(self) to self.tester",
			"fn test(self) { self.tester.test() }",
		},
		{
			"positional member",
			"fn test(self) to self.42",
			"fn test(self) { self.42.test() }",
		},
		{
			"arguments",
			"fn test(self, arg1: u8, arg2: &str) to self.42",
			"fn test(self, arg1: u8, arg2: &str) { self.42.test(arg1, arg2) }",
		},
		{
			"owned receiver with return",
			"fn test(self) -> String to self.42",
			"fn test(self) -> String { self.42.test() }",
		},
		{
			"borrowed receiver with return",
			"fn test(&self) -> String to self.42",
			"fn test(&self) -> String { self.42.test().clone() }",
		},
		{
			"option return",
			"fn test(&self) -> Option<String> to self.42",
			"fn test(&self) -> Option<String> { self.42.test() }",
		},
		{
			"option reference return",
			"fn test(&self) -> &Option<String> to self.42",
			"fn test(&self) -> &Option<String> { self.42.test() }",
		},
		{
			"mutable option reference return",
			"fn test(&self) -> &mut Option<String> to self.42",
			"fn test(&self) -> &mut Option<String> { self.42.test() }",
		},
		{
			"mutable borrow",
			"fn push(&mut self, item: u8) -> usize to self.items",
			"fn push(&mut self, item: u8) -> usize { self.items.push(item).clone() }",
		},
		{
			"mut value receiver",
			"fn take(mut self) -> Vec<u8> to self.0",
			"fn take(mut self) -> Vec<u8> { self.0.take() }",
		},
		{
			"borrowed receiver without return",
			"fn println(&self, msg: impl Into<String>) to self.printer",
			"fn println(&self, msg: impl Into<String>) { self.printer.println(msg) }",
		},
		{
			"mut pattern keeps mut in signature only",
			"fn fill(&mut self, mut buf: Vec<u8>) to self.0",
			"fn fill(&mut self, mut buf: Vec<u8>) { self.0.fill(buf) }",
		},
		{
			"lifetime receiver",
			"fn name(&'a self) -> &'a str to self.inner",
			"fn name(&'a self) -> &'a str { self.inner.name().clone() }",
		},
		{
			"qualified option",
			"fn get(&self) -> std::option::Option<u8> to self.inner",
			"fn get(&self) -> std::option::Option<u8> { self.inner.get() }",
		},
		{
			"fn pointer parameter",
			"fn f(&self, cb: fn(u8) -> bool) to self.x",
			"fn f(&self, cb: fn(u8) -> bool) { self.x.f(cb) }",
		},
		{
			"qualified path return",
			"fn next(&mut self) -> Option<<I as Iterator>::Item> to self.0",
			"fn next(&mut self) -> Option<<I as Iterator>::Item> { self.0.next() }",
		},
		{
			"const expression array length",
			"fn buf(&self) -> [u8; N * 2] to self.inner",
			"fn buf(&self) -> [u8; N * 2] { self.inner.buf().clone() }",
		},
		{
			"higher-ranked trait object",
			"fn cb(&self) -> Box<dyn for<'a> Fn(&'a u8)> to self.inner",
			"fn cb(&self) -> Box<dyn for<'a> Fn(&'a u8)> { self.inner.cb().clone() }",
		},
		{
			"turbofish option",
			"fn get(&self) -> Option::<u8> to self.inner",
			"fn get(&self) -> Option::<u8> { self.inner.get() }",
		},
		{
			"non-ascii method name",
			"fn tést(self) to self.x",
			"fn tést(self) { self.x.tést() }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EmitPrivate(mustParse(t, tt.source))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestEmitPublic(t *testing.T) {
	decl := mustParse(t, "fn test1(self), fn test2(self) to self.tester")

	assert.Equal(t,
		"pub fn test1(self) { self.tester.test1() }\npub fn test2(self) { self.tester.test2() }",
		EmitPublic(decl).String())
}

func TestVisibilityOnlyAddsPrefix(t *testing.T) {
	decl := mustParse(t, "fn a(&self) -> String, fn b(mut self, x: u8), fn c(&mut self) -> Option<u8> to self.0")

	private := EmitPrivate(decl)
	public := EmitPublic(decl)
	require.Len(t, public, len(private))

	for i := range private {
		assert.Equal(t, Public, public[i].Visibility)
		assert.Equal(t, "pub "+private[i].String(), public[i].String())
	}
}

func TestDuplicationLaw(t *testing.T) {
	receivers := []string{"self", "mut self", "&self", "&mut self"}
	returns := []string{"", "String", "Option<String>", "&Option<String>", "(u8, u8)"}

	for _, rcv := range receivers {
		for _, ret := range returns {
			source := "fn m(" + rcv + ")"
			if ret != "" {
				source += " -> " + ret
			}
			source += " to self.f"

			decl := mustParse(t, source)
			fn := EmitPrivate(decl)[0]

			borrowed := strings.HasPrefix(rcv, "&")
			option := strings.Contains(ret, "Option")
			want := borrowed && ret != "" && !option

			assert.Equal(t, want, fn.Body.Clone, source)
			assert.Equal(t, want, strings.HasSuffix(fn.String(), ".clone() }"), source)
		}
	}
}

func TestTargetResolution(t *testing.T) {
	decl := mustParse(t, "fn a(self), fn b(&self, x: u8) -> u8, fn c(&mut self) to self.inner")

	for i, fn := range EmitPrivate(decl) {
		assert.Equal(t, "inner", fn.Body.Member)
		assert.Equal(t, decl.Methods[i].Name.Value, fn.Body.Method)
		assert.Equal(t, fn.Name, fn.Body.Method)
	}
}

func TestSignaturePreserved(t *testing.T) {
	decl := mustParse(t, "fn test(&'a mut self, a: &'a [u8], f: Box<dyn Fn(u8) -> bool>) -> Result<(), Error> to self.x")
	fn := EmitPrivate(decl)[0]

	assert.Equal(t, "&'a mut self", fn.Receiver)
	assert.Equal(t, []string{"a: &'a [u8]", "f: Box<dyn Fn(u8) -> bool>"}, fn.Params)
	assert.Equal(t, []string{"a", "f"}, fn.Body.Args)
	assert.Equal(t, "Result<(), Error>", fn.Return)
}

func TestEmitIsDeterministic(t *testing.T) {
	decl := mustParse(t, "fn a(&self) -> String, fn b(self) to self.0")

	assert.Equal(t, EmitPrivate(decl).String(), EmitPrivate(decl).String())
	assert.Equal(t, EmitPrivate(decl), EmitPrivate(mustParse(t, decl.String())))
}

func TestEmitNil(t *testing.T) {
	assert.Empty(t, EmitPrivate(nil))
}

func TestIsOptionType(t *testing.T) {
	tests := []struct {
		typ  ast.Type
		want bool
	}{
		{ast.NewPath("Option", ast.NewPath("String")), true},
		{&ast.RefType{Elem: ast.NewPath("Option")}, true},
		{&ast.RefType{Elem: &ast.RefType{Mut: true, Elem: ast.NewPath("Option")}}, true},
		{ast.NewPath("String"), false},
		{ast.NewPath("Vec", ast.NewPath("Option")), false},
		{&ast.TupleType{Elems: []ast.Type{ast.NewPath("Option")}}, false},
		{&ast.SliceType{Elem: ast.NewPath("Option")}, false},
		{&ast.PathType{Segments: []*ast.PathSegment{{Name: ast.Ident{Value: "Option"}, Turbofish: true}}}, true},
		{&ast.QualifiedPathType{Self: ast.NewPath("T"), Segments: []*ast.PathSegment{{Name: ast.Ident{Value: "Option"}}}}, false},
		{&ast.FnPtrType{Output: ast.NewPath("Option")}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsOptionType(tt.typ), tt.typ.String())
	}
}

func TestFormatBlocks(t *testing.T) {
	decl := mustParse(t, "fn a(&self) -> String, fn b(self, x: u8) to self.inner")

	want := "pub fn a(&self) -> String {\n" +
		"        self.inner.a().clone()\n" +
		"    }\n" +
		"\n" +
		"    pub fn b(self, x: u8) {\n" +
		"        self.inner.b(x)\n" +
		"    }"

	assert.Equal(t, want, EmitPublic(decl).Format("    "))
}

func TestFormatIndentUnit(t *testing.T) {
	decl := mustParse(t, "fn a(self) to self.0")

	assert.Equal(t, "fn a(self) {\n\t\tself.0.a()\n\t}", EmitPrivate(decl).FormatIndent("\t", "\t"))
	assert.Equal(t, "fn a(self) {\n  self.0.a()\n}", EmitPrivate(decl).FormatIndent("", "  "))
}

func TestForwardCallString(t *testing.T) {
	call := ForwardCall{Member: "0", Method: "get", Args: []string{"a", "b"}, Clone: true}
	assert.Equal(t, "self.0.get(a, b).clone()", call.String())
	assert.Equal(t, "pub", Public.String())
	assert.Equal(t, "private", Private.String())
}
