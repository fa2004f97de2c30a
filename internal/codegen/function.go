package codegen

// Visibility of a generated function
type Visibility int

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "pub"
	}
	return "private"
}

// Function is one generated delegating method.
// Example: pub fn test(&self, arg1: u8) -> String { self.inner.test(arg1).clone() }
type Function struct {
	Visibility Visibility
	Name       string
	Receiver   string   // "self", "&'a mut self", ...
	Params     []string // typed parameters as declared, "mut buf: Vec<u8>"
	Return     string   // empty when the method returns nothing
	Body       ForwardCall
}

// ForwardCall is the single expression making up a generated body
// Example: self.42.test(arg1, arg2).clone()
type ForwardCall struct {
	Member string   // field name or tuple index
	Method string   // method invoked on the member
	Args   []string // binding names, in parameter order
	Clone  bool     // append .clone() to the result
}

// FunctionSet holds the functions generated for one declaration, in
// declaration order.
type FunctionSet []Function

// String renders the compact form, one function per line.
func (s FunctionSet) String() string {
	p := NewPrinter()
	p.printCompact(s)
	return p.output.String()
}

// Format renders the block form used when splicing into a source file.
// The first line carries no indentation; every following line is prefixed
// with indent so the result lines up with the text it replaces.
func (s FunctionSet) Format(indent string) string {
	return s.FormatIndent(indent, defaultUnit)
}

// FormatIndent is Format with unit as one level of body indentation.
func (s FunctionSet) FormatIndent(indent, unit string) string {
	p := NewPrinter()
	p.prefix = indent
	p.unit = unit
	p.printBlocks(s)
	return p.output.String()
}

func (f Function) String() string {
	return FunctionSet{f}.String()
}

func (c ForwardCall) String() string {
	p := NewPrinter()
	p.printCall(c)
	return p.output.String()
}
