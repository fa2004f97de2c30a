package ast

// ForwardDecl represents one forwarding declaration (the body of a fwd! invocation)
// Example: "fn get_message(&self) -> String, fn get_len(&self) -> usize to self.message"
type ForwardDecl struct {
	Pos     Position
	EndPos  Position
	Methods []*Method // never empty once parsed
	Target  Member
}

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Ident represents any identifier like method names, field names, type names, etc.
// Example: "get_message", "tester", "String"
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// ReceiverKind is the calling convention of a method with respect to its owning instance.
type ReceiverKind int

const (
	ByValue            ReceiverKind = iota // self
	ByValueMutable                         // mut self
	ByReference                            // &self
	ByMutableReference                     // &mut self
)

func (k ReceiverKind) String() string {
	switch k {
	case ByValue:
		return "ByValue"
	case ByValueMutable:
		return "ByValueMutable"
	case ByReference:
		return "ByReference"
	case ByMutableReference:
		return "ByMutableReference"
	default:
		return "ReceiverKind(?)"
	}
}

// Receiver represents the first parameter of a forwarded method
// Example: "self", "mut self", "&self", "&'a mut self"
type Receiver struct {
	Pos      Position
	EndPos   Position
	Kind     ReceiverKind
	Lifetime string // "'a" for "&'a self", empty otherwise
}

// IsRef reports whether the receiver borrows the instance.
func (r *Receiver) IsRef() bool {
	return r.Kind == ByReference || r.Kind == ByMutableReference
}

// Pattern is the binding of a typed parameter
// Example: "arg1", "mut buf"
type Pattern struct {
	Pos    Position
	EndPos Position
	Mut    bool
	Name   Ident
}

// Param represents a typed, non-receiver parameter
// Example: "arg1: u8", "msg: impl Into<String>"
type Param struct {
	Pos     Position
	EndPos  Position
	Pattern Pattern
	Type    Type
}

// Method represents a single forwarded method signature
// Example: "fn test(&self, arg1: u8) -> Option<String>"
type Method struct {
	Pos      Position
	EndPos   Position
	Name     Ident
	Receiver Receiver
	Params   []*Param
	Return   Type // nil when the method returns nothing
}

// Member references the field that owns the real implementation
// Example: "tester" in "self.tester", "0" in "self.0"
type Member struct {
	Pos    Position
	EndPos Position
	Named  bool
	Name   string // set when Named
	Index  int    // set when !Named
}

// NamedMember builds a named field reference.
func NamedMember(name string) Member {
	return Member{Named: true, Name: name}
}

// IndexMember builds a positional (tuple field) reference.
func IndexMember(idx int) Member {
	return Member{Index: idx}
}
