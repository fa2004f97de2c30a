package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testMethod(name string, kind ReceiverKind) *Method {
	return &Method{Name: Ident{Value: name}, Receiver: Receiver{Kind: kind}}
}

func TestMethodEqualIgnoresPositions(t *testing.T) {
	a := testMethod("test", ByReference)
	b := testMethod("test", ByReference)
	b.Pos = Position{Line: 3, Column: 7, Offset: 20}
	b.Name.Pos = Position{Line: 3, Column: 10, Offset: 23}

	assert.True(t, a.Equal(b))
}

func TestMethodEqualDetectsDifferences(t *testing.T) {
	base := testMethod("test", ByReference)

	assert.False(t, base.Equal(testMethod("other", ByReference)), "name")
	assert.False(t, base.Equal(testMethod("test", ByMutableReference)), "receiver")

	withParam := testMethod("test", ByReference)
	withParam.Params = []*Param{{Pattern: Pattern{Name: Ident{Value: "x"}}, Type: NewPath("u8")}}
	assert.False(t, base.Equal(withParam), "params")

	withReturn := testMethod("test", ByReference)
	withReturn.Return = NewPath("String")
	assert.False(t, base.Equal(withReturn), "return")
}

func TestForwardDeclEqual(t *testing.T) {
	a := &ForwardDecl{Methods: []*Method{testMethod("test", ByValue)}, Target: IndexMember(0)}
	b := &ForwardDecl{Methods: []*Method{testMethod("test", ByValue)}, Target: IndexMember(0)}
	c := &ForwardDecl{Methods: []*Method{testMethod("test", ByValue)}, Target: NamedMember("inner")}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestMemberEqual(t *testing.T) {
	zero := IndexMember(0)
	named := NamedMember("0")

	assert.False(t, zero.Equal(named), "positional and named members never compare equal")
	assert.True(t, zero.Equal(IndexMember(0)))
}
