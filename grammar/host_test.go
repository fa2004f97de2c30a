package grammar_test

import (
	"testing"

	"fwdgen/grammar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fwdNames = map[string]bool{"fwd": true, "fwd_pub": true}

func TestFindInvocations(t *testing.T) {
	source := `struct Greeter { message: Message }

impl Greeter {
    fwd!(fn get_message(&self) -> String to self.message);
    fwd_pub![fn len(&self) -> usize to self.message]
}`

	file, err := grammar.LexHost("greeter.rs", source)
	require.NoError(t, err)

	invs, errs := file.FindInvocations(fwdNames)
	require.Empty(t, errs)
	require.Len(t, invs, 2)

	first := invs[0]
	assert.Equal(t, "fwd", first.Name)
	assert.Equal(t, "fn get_message(&self) -> String to self.message", first.Body(source))
	assert.Equal(t, 4, first.Start.Line)
	assert.Equal(t, 5, first.Start.Column)
	assert.Equal(t, ';', rune(source[first.End-1]), "Trailing semicolon belongs to the invocation")

	start := first.BodyStart()
	assert.Equal(t, 4, start.Line)
	assert.Equal(t, 10, start.Column)
	assert.Equal(t, byte('f'), source[start.Offset])

	second := invs[1]
	assert.Equal(t, "fwd_pub", second.Name)
	assert.Equal(t, "fn len(&self) -> usize to self.message", second.Body(source))
	assert.Equal(t, byte(']'), source[second.End-1])
}

func TestInvocationsInCommentsAndStringsAreIgnored(t *testing.T) {
	source := `// fwd!(fn a(self) to self.x);
/* fwd!(fn b(self) to self.x); */
const DOC: &str = "fwd!(fn c(self) to self.x)";
const RAW: &str = r#"fwd!(fn d(self) to self.x)"#;
const C: char = '(';
fwd!(fn e(&self) -> &'static str to self.x);`

	file, err := grammar.LexHost("lib.rs", source)
	require.NoError(t, err)

	invs, errs := file.FindInvocations(fwdNames)
	require.Empty(t, errs)
	require.Len(t, invs, 1)
	assert.Equal(t, "fn e(&self) -> &'static str to self.x", invs[0].Body(source))
}

func TestUnknownMacrosAreIgnored(t *testing.T) {
	source := `println!("{}", x); vec![1, 2]; macro_rules! fwd { () => {} }`

	file, err := grammar.LexHost("lib.rs", source)
	require.NoError(t, err)

	invs, errs := file.FindInvocations(fwdNames)
	assert.Empty(t, errs)
	assert.Empty(t, invs)
}

func TestPathQualifiedInvocation(t *testing.T) {
	source := `    fwdgen::fwd!(fn a(self) to self.x)`

	file, err := grammar.LexHost("lib.rs", source)
	require.NoError(t, err)

	invs, _ := file.FindInvocations(fwdNames)
	require.Len(t, invs, 1)
	assert.Equal(t, 4, invs[0].Start.Offset)
	assert.Equal(t, len(source), invs[0].End)
	assert.True(t, invs[0].Contains(10))
	assert.False(t, invs[0].Contains(2))
}

func TestNestedDelimiters(t *testing.T) {
	source := `fwd!(fn a(&self, f: Box<dyn Fn((u8, u8)) -> [u8; 2]>) to self.x) after`

	file, err := grammar.LexHost("lib.rs", source)
	require.NoError(t, err)

	invs, errs := file.FindInvocations(fwdNames)
	require.Empty(t, errs)
	require.Len(t, invs, 1)
	assert.Equal(t, "fn a(&self, f: Box<dyn Fn((u8, u8)) -> [u8; 2]>) to self.x", invs[0].Body(source))
}

func TestUnterminatedInvocation(t *testing.T) {
	source := "impl A {\n    fwd!(fn a(self) to self.x;\n}"

	file, err := grammar.LexHost("lib.rs", source)
	require.NoError(t, err)

	invs, errs := file.FindInvocations(fwdNames)
	assert.Empty(t, invs)
	require.Len(t, errs, 1)
	assert.Equal(t, "fwd", errs[0].Name)
	assert.Contains(t, errs[0].Msg, "mismatched '}'")
}

func TestInvocationNeverClosed(t *testing.T) {
	source := "fwd!(fn a(self) to self.x"

	file, err := grammar.LexHost("lib.rs", source)
	require.NoError(t, err)

	_, errs := file.FindInvocations(fwdNames)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "lib.rs:1:5")
	assert.Contains(t, errs[0].Msg, "never closed")
}

func TestLineIndent(t *testing.T) {
	source := "impl A {\n\t  fwd!(x)\n}"

	assert.Equal(t, "\t  ", grammar.LineIndent(source, 12))
	assert.Equal(t, "", grammar.LineIndent(source, 3))
}
