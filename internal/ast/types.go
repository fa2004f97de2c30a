package ast

// Type is a parsed type expression. The model keeps enough structure to
// print it back verbatim and to look through reference wrappers.
type Type interface {
	Node
	isType()
}

// GenericArg is anything that may appear between '<' and '>' of a path segment.
type GenericArg interface {
	Node
	isGenericArg()
}

// RefType represents borrowed types
// Example: "&str", "&'a mut Option<String>"
type RefType struct {
	Pos      Position
	EndPos   Position
	Lifetime string
	Mut      bool
	Elem     Type
}

// PtrType represents raw pointers
// Example: "*const u8", "*mut Node"
type PtrType struct {
	Pos    Position
	EndPos Position
	Mut    bool
	Elem   Type
}

// PathType represents named types, possibly qualified and generic
// Example: "String", "std::option::Option<T>", "Result<String, Error>"
type PathType struct {
	Pos       Position
	EndPos    Position
	Lifetimes []string // "for<'a>" binder on a trait bound
	Global    bool     // leading "::"
	Segments  []*PathSegment
}

// PathSegment is one "::"-separated part of a path
// Example: "Option<String>", "Fn(u8) -> bool"
type PathSegment struct {
	Pos       Position
	EndPos    Position
	Name      Ident
	Generics  []GenericArg
	Turbofish bool   // Name::<T> form
	FnSugar   bool   // Fn(A, B) -> C form
	Inputs    []Type // FnSugar only
	Output    Type   // FnSugar only, may be nil
}

// QualifiedPathType is a path rooted at a type, optionally viewed as a trait
// Example: "<I as Iterator>::Item", "<T>::Output"
type QualifiedPathType struct {
	Pos      Position
	EndPos   Position
	Self     Type
	Trait    *PathType // nil for "<T>::Name"
	Segments []*PathSegment
}

// FnPtrType represents function pointers
// Example: "fn(u8) -> bool", "for<'a> unsafe fn(&'a str)"
type FnPtrType struct {
	Pos       Position
	EndPos    Position
	Lifetimes []string
	Unsafe    bool
	Inputs    []FnPtrArg
	Output    Type // may be nil
}

// FnPtrArg is one function pointer argument; the name is optional.
type FnPtrArg struct {
	Name Ident
	Type Type
}

// TupleType represents tuples, the unit type and parenthesized types
// Example: "()", "(String, uint)", "(u8,)"
type TupleType struct {
	Pos      Position
	EndPos   Position
	Elems    []Type
	Trailing bool // trailing comma, distinguishes "(T,)" from "(T)"
}

// SliceType represents unsized slices
// Example: "[u8]"
type SliceType struct {
	Pos    Position
	EndPos Position
	Elem   Type
}

// ArrayType represents fixed-size arrays; the length is kept verbatim
// Example: "[u8; 4]", "[T; N]"
type ArrayType struct {
	Pos    Position
	EndPos Position
	Elem   Type
	Len    string
}

// TraitObjectType represents impl/dyn trait types
// Example: "impl Into<String>", "dyn Fn(u8) + Send + 'static"
type TraitObjectType struct {
	Pos    Position
	EndPos Position
	Dyn    bool
	Bounds []GenericArg // *PathType or *LifetimeArg
}

// NeverType is "!"
type NeverType struct {
	Pos    Position
	EndPos Position
}

// ConstArg is a const generic argument, kept verbatim
// Example: "3" in "Foo<3>", "{ N + 1 }"
type ConstArg struct {
	Pos    Position
	EndPos Position
	Value  string
}

// LifetimeArg is a lifetime used as a generic argument or bound
// Example: "'a", "'static"
type LifetimeArg struct {
	Pos    Position
	EndPos Position
	Name   string
}

// BindingArg is an associated type binding
// Example: "Item = u8" in "Iterator<Item = u8>"
type BindingArg struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Type   Type
}

func (*RefType) isType()           {}
func (*PtrType) isType()           {}
func (*PathType) isType()          {}
func (*TupleType) isType()         {}
func (*SliceType) isType()         {}
func (*ArrayType) isType()         {}
func (*TraitObjectType) isType()   {}
func (*NeverType) isType()         {}
func (*QualifiedPathType) isType() {}
func (*FnPtrType) isType()         {}

func (*RefType) isGenericArg()           {}
func (*PtrType) isGenericArg()           {}
func (*PathType) isGenericArg()          {}
func (*TupleType) isGenericArg()         {}
func (*SliceType) isGenericArg()         {}
func (*ArrayType) isGenericArg()         {}
func (*TraitObjectType) isGenericArg()   {}
func (*NeverType) isGenericArg()         {}
func (*QualifiedPathType) isGenericArg() {}
func (*FnPtrType) isGenericArg()         {}
func (*ConstArg) isGenericArg()          {}
func (*LifetimeArg) isGenericArg()       {}
func (*BindingArg) isGenericArg()        {}

// LastSegment returns the final segment of the path, or nil for an empty path.
func (p *PathType) LastSegment() *PathSegment {
	if len(p.Segments) == 0 {
		return nil
	}
	return p.Segments[len(p.Segments)-1]
}

// StripRefs removes any number of reference wrappers around t.
func StripRefs(t Type) Type {
	for {
		ref, ok := t.(*RefType)
		if !ok {
			return t
		}
		t = ref.Elem
	}
}

// NewPath builds a single-segment path type; handy for tests and tooling.
func NewPath(name string, generics ...GenericArg) *PathType {
	return &PathType{
		Segments: []*PathSegment{{Name: Ident{Value: name}, Generics: generics}},
	}
}
